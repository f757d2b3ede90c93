package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"hvfpaper/internal/pipeline"
)

var buildFlags struct {
	strict bool
	force  bool
}

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the PDF, regenerating stale figures and tables first",
	Long: `Walks the target graph up to the document: stale figures and tables are
regenerated, fresh ones are skipped, then the typesetter runs. By default a
typesetting failure is reported but does not fail the command; --strict makes
it fatal, which is what a submission build wants.`,
	RunE: runBuild,
}

func init() {
	f := buildCmd.Flags()
	f.BoolVar(&buildFlags.strict, "strict", false, "fail on typesetting errors")
	f.BoolVar(&buildFlags.force, "force", false, "rebuild everything regardless of freshness")
}

func runBuild(cmd *cobra.Command, _ []string) error {
	cfg, err := loadProject()
	if err != nil {
		return err
	}
	p := pipeline.New(cfg, cmd.OutOrStdout())
	outcomes, err := p.Graph(buildFlags.strict).Run(cmd.Context(), "document", buildFlags.force)
	if err != nil {
		return err
	}
	for _, o := range outcomes {
		if o.Err != nil {
			fmt.Fprintf(cmd.OutOrStdout(), "– %s failed (best effort): %v\n", o.Target, o.Err)
		}
	}
	return nil
}

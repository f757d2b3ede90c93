package main

import (
	"github.com/spf13/cobra"

	"hvfpaper/internal/pipeline"
)

var bibCmd = &cobra.Command{
	Use:   "bib",
	Short: "Run the citation resolver against the current aux files",
	Long: `Runs the configured bibliography command (bibtex by default) for the paper
job. Failures are reported but not fatal; unresolved citations show up as [?]
in the next build, which is the author's cue to fix the entry.`,
	RunE: runBib,
}

func runBib(cmd *cobra.Command, _ []string) error {
	cfg, err := loadProject()
	if err != nil {
		return err
	}
	p := pipeline.New(cfg, cmd.OutOrStdout())
	_, err = p.Graph(false).Run(cmd.Context(), "bibliography", true)
	return err
}

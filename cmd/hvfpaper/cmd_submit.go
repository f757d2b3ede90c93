package main

import (
	"github.com/spf13/cobra"

	"hvfpaper/internal/pipeline"
)

var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Full camera-ready flow: patch, rebuild everything, verify the PDF",
	Long: `Applies every document patch, runs the citation resolver, then forces a
strict build of figures, tables, and the document. Any failure aborts with a
non-zero exit; on success the PDF's size and page count are reported.`,
	RunE: runSubmit,
}

func runSubmit(cmd *cobra.Command, _ []string) error {
	cfg, err := loadProject()
	if err != nil {
		return err
	}
	return pipeline.New(cfg, cmd.OutOrStdout()).Submit(cmd.Context())
}

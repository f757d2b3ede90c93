package main

import (
	"github.com/spf13/cobra"

	"hvfpaper/internal/pipeline"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove derived artifacts (PDF, aux files, tables, figures)",
	Long: `Removes everything the pipeline can regenerate. The paper source and the
reference list are never touched.`,
	RunE: runClean,
}

func runClean(cmd *cobra.Command, _ []string) error {
	cfg, err := loadProject()
	if err != nil {
		return err
	}
	return pipeline.New(cfg, cmd.OutOrStdout()).Clean()
}

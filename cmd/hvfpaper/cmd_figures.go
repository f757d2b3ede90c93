package main

import (
	"github.com/spf13/cobra"

	"hvfpaper/internal/pipeline"
)

var figuresFlags struct {
	force bool
}

var figuresCmd = &cobra.Command{
	Use:   "figures",
	Short: "Run the figure generation script when its outputs are stale",
	RunE:  runFigures,
}

func init() {
	figuresCmd.Flags().BoolVar(&figuresFlags.force, "force", false,
		"regenerate even when outputs look fresh")
}

func runFigures(cmd *cobra.Command, _ []string) error {
	cfg, err := loadProject()
	if err != nil {
		return err
	}
	p := pipeline.New(cfg, cmd.OutOrStdout())
	_, err = p.Graph(false).Run(cmd.Context(), "figures", figuresFlags.force)
	return err
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"hvfpaper/internal/metrics"
	"hvfpaper/internal/pipeline"
)

var tablesFlags struct {
	preview bool
}

var tablesCmd = &cobra.Command{
	Use:   "tables",
	Short: "Regenerate the LaTeX table fragment from the metrics JSON",
	Long: `Renders the per-class wins, latency, and SNR-advantage tables into one
LaTeX fragment the paper \input's. A missing or malformed metrics file is a
hard error: a submission must never carry placeholder numbers.`,
	RunE: runTables,
}

func init() {
	tablesCmd.Flags().BoolVar(&tablesFlags.preview, "preview", false,
		"also print a terminal summary of the metrics")
}

func runTables(cmd *cobra.Command, _ []string) error {
	cfg, err := loadProject()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	path, err := pipeline.New(cfg, out).RenderTables()
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "✓ wrote %s\n", path)

	if tablesFlags.preview {
		r, err := metrics.Load(cfg.Metrics)
		if err != nil {
			return err
		}
		metrics.WriteSummary(out, r)
	}
	return nil
}

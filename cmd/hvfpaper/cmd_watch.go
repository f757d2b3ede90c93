package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"hvfpaper/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-render tables whenever the metrics JSON changes",
	Long: `Watches the metrics file and regenerates the LaTeX table fragment after
changes settle. Render failures are reported and watching continues; stop
with Ctrl-C.`,
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, _ []string) error {
	cfg, err := loadProject()
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return watch.New(cfg, cmd.OutOrStdout()).Run(ctx)
}

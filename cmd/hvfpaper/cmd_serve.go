package main

import (
	"context"

	"github.com/spf13/cobra"

	"hvfpaper/internal/logging"
	"hvfpaper/internal/mcp"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server over stdio for editor integration",
	Long: `Starts an MCP server on stdin/stdout exposing apply_patches, render_tables,
pipeline_status, and seed_references, so an editor agent can drive the paper
tooling directly.

The server watches for parent process death and self-terminates when the
editor disconnects, preventing zombie server processes.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadProject()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	mcp.WatchParent(ctx, cancel)

	logging.New("mcp").Info("starting hvfpaper MCP server over stdio (parent watchdog active)")
	return mcp.NewServer(cfg, version).Run(ctx)
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags.
var version = "dev"

var rootFlags struct {
	config string
}

var rootCmd = &cobra.Command{
	Use:   "hvfpaper",
	Short: "Camera-ready automation for the hierarchical-vs-flat modulation paper",
	Long: "hvfpaper keeps the paper's LaTeX source, tables, figures, and PDF in sync\n" +
		"with the evaluation harness output. Document edits are guarded by markers\n" +
		"so every command is safe to run twice.",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootFlags.config, "config", "",
		"project config file (default: probe hvfpaper.{yaml,yml,json})")

	rootCmd.AddCommand(patchCmd)
	rootCmd.AddCommand(tablesCmd)
	rootCmd.AddCommand(figuresCmd)
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(bibCmd)
	rootCmd.AddCommand(submitCmd)
	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(hookCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.Version = version
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

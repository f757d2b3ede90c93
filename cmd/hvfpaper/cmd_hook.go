package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"hvfpaper/internal/hook"
)

var hookCmd = &cobra.Command{
	Use:   "hook",
	Short: "Git pre-commit integration for the table fragment",
}

var hookInstallCmd = &cobra.Command{
	Use:   "install",
	Short: "Install the pre-commit hook into .git/hooks",
	RunE:  runHookInstall,
}

var hookRunCmd = &cobra.Command{
	Use:   "run",
	Short: "Regenerate and stage the table fragment if the metrics JSON is staged",
	Long: `Invoked by the installed pre-commit hook. Checks whether the metrics JSON
is part of the staged change; if so, re-renders the table fragment and stages
it alongside. Never blocks a commit: failures are reported and the commit
proceeds.`,
	RunE: runHookRun,
}

func init() {
	hookCmd.AddCommand(hookInstallCmd)
	hookCmd.AddCommand(hookRunCmd)
}

func runHookInstall(cmd *cobra.Command, _ []string) error {
	if _, err := loadProject(); err != nil {
		return err
	}
	path, err := hook.Install(".")
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ installed %s\n", path)
	return nil
}

func runHookRun(cmd *cobra.Command, _ []string) error {
	cfg, err := loadProject()
	if err != nil {
		return err
	}
	return hook.NewRunner(cfg, cmd.OutOrStdout()).Run(cmd.Context())
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"hvfpaper/internal/pipeline"
)

var patchCmd = &cobra.Command{
	Use:   "patch [title|bib|dataset|all]",
	Short: "Apply the guarded camera-ready patches to the paper",
	Long: `Applies marker-guarded edits to the LaTeX source: the conditional title
swap with abstract tail, the bibliography tail normalization, and the dataset
paragraph. Patches already carrying their marker are skipped, so re-running
is always safe. With no argument, all groups run in order.`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"title", "abstract", "bib", "dataset", "all"},
	RunE:      runPatch,
}

func runPatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadProject()
	if err != nil {
		return err
	}
	p := &pipeline.Patcher{Cfg: cfg, Out: cmd.OutOrStdout()}

	group := "all"
	if len(args) == 1 {
		group = args[0]
	}
	switch group {
	case "title", "abstract":
		return p.PatchTitle()
	case "bib":
		return p.PatchBib()
	case "dataset":
		return p.PatchDataset()
	case "all":
		return p.PatchAll()
	default:
		return fmt.Errorf("unknown patch group %q", group)
	}
}

package main

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"hvfpaper/internal/buildgraph"
	"hvfpaper/internal/pipeline"
	"hvfpaper/internal/texpatch"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show build-target freshness and which patches are in place",
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, _ []string) error {
	cfg, err := loadProject()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	g := pipeline.New(cfg, out).Graph(false)

	w := table.NewWriter()
	w.SetOutputMirror(out)
	w.SetStyle(table.StyleLight)
	w.AppendHeader(table.Row{"Target", "Policy", "State", "Reason"})
	for _, name := range g.Names() {
		t := g.Get(name)
		stale, reason, err := buildgraph.Stale(t)
		state := "fresh"
		switch {
		case err != nil:
			state, reason = "blocked", err.Error()
		case stale:
			state = "stale"
		}
		w.AppendRow(table.Row{name, t.Policy.String(), state, reason})
	}
	w.Render()

	doc, err := texpatch.ReadDocument(cfg.Paper)
	if err != nil {
		fmt.Fprintf(out, "✗ %s: %v\n", cfg.Paper, err)
		return nil
	}
	pw := table.NewWriter()
	pw.SetOutputMirror(out)
	pw.SetStyle(table.StyleLight)
	pw.AppendHeader(table.Row{"Patch", "Marker", "Applied"})
	for _, p := range []struct{ name, marker string }{
		{"flag-hint", texpatch.MarkerFlagHint},
		{"title-swap", texpatch.MarkerTitleSwap},
		{"abstract-tail", texpatch.MarkerAbstractTail},
		{"dataset-note", texpatch.MarkerDatasetNote},
	} {
		applied := "no"
		if texpatch.HasMarker(doc, p.marker) {
			applied = "yes"
		}
		pw.AppendRow(table.Row{p.name, p.marker, applied})
	}
	pw.Render()
	return nil
}

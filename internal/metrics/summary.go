package metrics

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// WriteSummary renders the per-class tallies and latency percentiles as a
// terminal table. Used by `tables --preview` and the MCP status tool so the
// numbers can be eyeballed without opening the rendered LaTeX.
func WriteSummary(w io.Writer, r *Report) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(table.Row{"Class", "Flat OK", "Hier OK", "Flat Wins", "Hier Wins", "Ties"})
	for _, c := range r.PerClass {
		tw.AppendRow(table.Row{c.Label, c.FlatCorrect, c.HierCorrect, c.FlatWins, c.HierWins, c.Ties})
	}
	hier, flat, ties := r.Totals()
	tw.AppendFooter(table.Row{"total", "", "", flat, hier, ties})
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft},
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
		{Number: 6, Align: text.AlignRight},
	})
	tw.Render()

	fmt.Fprintf(w, "samples: %d\n", r.N)
	fmt.Fprintf(w, "latency flat p50/p95: %.1f/%.1f ms\n", r.Latency.Flat.P50, r.Latency.Flat.P95)
	fmt.Fprintf(w, "latency hier p50/p95: %.1f/%.1f ms\n", r.Latency.Hier.P50, r.Latency.Hier.P95)

	if rows := SNRAdvantage(r.Records); len(rows) > 0 {
		st := table.NewWriter()
		st.SetOutputMirror(w)
		st.SetStyle(table.StyleLight)
		st.AppendHeader(table.Row{"SNR (dB)", "Flat Wins", "Hier Wins", "Adv", "N"})
		for _, row := range rows {
			st.AppendRow(table.Row{row.SNR, row.FlatWins, row.HierWins, row.Advantage, row.N})
		}
		st.Render()
	}
}

package textables

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hvfpaper/internal/metrics"
)

func sampleReport() *metrics.Report {
	return &metrics.Report{
		N: 40,
		PerClass: []metrics.ClassRow{
			{Label: "BPSK", FlatCorrect: 10, HierCorrect: 12, HierWins: 2, FlatWins: 0, Ties: 10},
			{Label: "QAM16", FlatCorrect: 7, HierCorrect: 9, HierWins: 3, FlatWins: 1, Ties: 6},
		},
		Latency: metrics.Latency{
			Flat: metrics.Percentiles{P50: 5.25, P95: 12.1},
			Hier: metrics.Percentiles{P50: 7.8, P95: 18.45},
		},
	}
}

func TestRender_EmbeddedTemplate(t *testing.T) {
	out, err := Render(sampleReport(), "")
	require.NoError(t, err)
	tex := string(out)

	assert.Contains(t, tex, `\label{tab:hvf_wins}`)
	assert.Contains(t, tex, `BPSK & 10 & 12 & 0 & 2 & 10 \\`)
	assert.Contains(t, tex, `QAM16 & 7 & 9 & 1 & 3 & 6 \\`)
	assert.Contains(t, tex, `Latency (p50) & 5.25 & 7.80 & ms \\`)
	assert.Contains(t, tex, `Latency (p95) & 12.10 & 18.45 & ms \\`)
	// No records → no SNR table.
	assert.NotContains(t, tex, `tab:hvf_snr_adv`)
}

func TestRender_SNRTableWhenRecordsPresent(t *testing.T) {
	r := sampleReport()
	r.Records = []metrics.Record{
		{SNRdB: 0.2, FlatCorrect: false, HierCorrect: true},
		{SNRdB: -0.3, FlatCorrect: true, HierCorrect: false},
	}
	out, err := Render(r, "")
	require.NoError(t, err)
	tex := string(out)

	assert.Contains(t, tex, `tab:hvf_snr_adv`)
	assert.Contains(t, tex, `0 & 1 & 1 & 0 & 2 \\`)
}

func TestRender_TemplateOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.tmpl")
	require.NoError(t, os.WriteFile(path, []byte("classes: {{len .Report.PerClass}}\n"), 0o644))

	out, err := Render(sampleReport(), path)
	require.NoError(t, err)
	assert.Equal(t, "classes: 2\n", string(out))
}

func TestRenderToDir_WritesFragment(t *testing.T) {
	dir := t.TempDir()
	metricsPath := filepath.Join(dir, "metrics.json")
	require.NoError(t, os.WriteFile(metricsPath, []byte(`{
		"n": 1,
		"per_class": [{"label": "FM", "flat_correct": 1, "hier_correct": 1, "hier_wins": 0, "flat_wins": 0, "ties": 1}],
		"latency_ms": {"flat": {"p50": 1, "p95": 2}, "hier": {"p50": 3, "p95": 4}}
	}`), 0o644))

	outDir := filepath.Join(dir, "tables")
	path, err := RenderToDir(metricsPath, "", outDir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(outDir, OutputName), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), `FM & 1 & 1 & 0 & 0 & 1 \\`))
}

func TestRenderToDir_MissingMetricsFails(t *testing.T) {
	dir := t.TempDir()
	_, err := RenderToDir(filepath.Join(dir, "absent.json"), "", filepath.Join(dir, "tables"))
	require.Error(t, err)

	// No placeholder fragment may appear on failure.
	_, statErr := os.Stat(filepath.Join(dir, "tables", OutputName))
	assert.True(t, os.IsNotExist(statErr))
}

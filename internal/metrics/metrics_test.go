package metrics

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleMetrics = `{
  "n": 120,
  "per_class": [
    {"label": "BPSK", "flat_correct": 10, "hier_correct": 12, "hier_wins": 2, "flat_wins": 0, "ties": 10},
    {"label": "QPSK", "flat_correct": 8, "hier_correct": 11, "hier_wins": 3, "flat_wins": 1, "ties": 7}
  ],
  "latency_ms": {
    "flat": {"p50": 5.2, "p95": 12.1},
    "hier": {"p50": 7.8, "p95": 18.4}
  },
  "confusion_flat": {"BPSK": {"BPSK": 10, "QPSK": 2}},
  "records": [
    {"snr_db": -2.2, "flat_correct": true, "hier_correct": false},
    {"snr_db": -1.8, "flat_correct": false, "hier_correct": true},
    {"snr_db": 6.0, "flat_correct": true, "hier_correct": true},
    {"snr_db": 6.4, "flat_correct": false, "hier_correct": true}
  ],
  "future_key_from_harness": {"ignored": true}
}`

func writeMetrics(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "metrics.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Sample(t *testing.T) {
	r, err := Load(writeMetrics(t, sampleMetrics))
	require.NoError(t, err)

	assert.Equal(t, 120, r.N)
	require.Len(t, r.PerClass, 2)
	assert.Equal(t, "BPSK", r.PerClass[0].Label)
	assert.Equal(t, 12, r.PerClass[0].HierCorrect)
	assert.InDelta(t, 18.4, r.Latency.Hier.P95, 1e-9)
	assert.Equal(t, 10, r.ConfusionFlat["BPSK"]["BPSK"])
	assert.Len(t, r.Records, 4)
}

func TestLoad_MissingFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)
}

func TestLoad_MalformedFails(t *testing.T) {
	_, err := Load(writeMetrics(t, "{not json"))
	require.Error(t, err)
}

func TestSNRAdvantage(t *testing.T) {
	r, err := Load(writeMetrics(t, sampleMetrics))
	require.NoError(t, err)

	rows := SNRAdvantage(r.Records)
	require.Len(t, rows, 2)

	// -2.2 and -1.8 both round to -2; 6.0 and 6.4 both round to 6.
	assert.Equal(t, -2, rows[0].SNR)
	assert.Equal(t, 1, rows[0].FlatWins)
	assert.Equal(t, 1, rows[0].HierWins)
	assert.Equal(t, 0, rows[0].Advantage)
	assert.Equal(t, 2, rows[0].N)

	assert.Equal(t, 6, rows[1].SNR)
	assert.Equal(t, 0, rows[1].FlatWins)
	assert.Equal(t, 1, rows[1].HierWins)
	assert.Equal(t, 1, rows[1].Advantage)
	assert.Equal(t, 2, rows[1].N)
}

func TestSNRAdvantage_NoRecords(t *testing.T) {
	assert.Empty(t, SNRAdvantage(nil))
}

func TestTotals(t *testing.T) {
	r, err := Load(writeMetrics(t, sampleMetrics))
	require.NoError(t, err)

	hier, flat, ties := r.Totals()
	assert.Equal(t, 5, hier)
	assert.Equal(t, 1, flat)
	assert.Equal(t, 17, ties)
}

func TestWriteSummary(t *testing.T) {
	r, err := Load(writeMetrics(t, sampleMetrics))
	require.NoError(t, err)

	var buf bytes.Buffer
	WriteSummary(&buf, r)
	out := buf.String()

	assert.Contains(t, out, "BPSK")
	assert.Contains(t, out, "latency hier p50/p95: 7.8/18.4 ms")
	assert.Contains(t, out, "SNR")
	assert.Contains(t, out, "samples: 120")
}

// Package metrics loads the evaluation harness output. The schema is owned
// by the harness, not by this tool: decoding is tolerant (unknown keys are
// ignored, optional sections may be absent) and only well-formedness is
// enforced.
package metrics

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"sort"
)

// Report is the harness output for one evaluation run.
type Report struct {
	N        int        `json:"n"`
	PerClass []ClassRow `json:"per_class"`
	Latency  Latency    `json:"latency_ms"`

	// Confusion matrices keyed actual → predicted → count.
	ConfusionFlat map[string]map[string]int `json:"confusion_flat,omitempty"`
	ConfusionHier map[string]map[string]int `json:"confusion_hier,omitempty"`

	// Records are optional per-sample rows; present only when the harness
	// ran with record emission on. They feed the SNR advantage table.
	Records []Record `json:"records,omitempty"`
}

// ClassRow tallies one modulation class.
type ClassRow struct {
	Label       string `json:"label"`
	FlatCorrect int    `json:"flat_correct"`
	HierCorrect int    `json:"hier_correct"`
	HierWins    int    `json:"hier_wins"`
	FlatWins    int    `json:"flat_wins"`
	Ties        int    `json:"ties"`
}

// Latency carries p50/p95 for both classifier arms.
type Latency struct {
	Flat Percentiles `json:"flat"`
	Hier Percentiles `json:"hier"`
}

// Percentiles in milliseconds.
type Percentiles struct {
	P50 float64 `json:"p50"`
	P95 float64 `json:"p95"`
}

// Record is one evaluated sample.
type Record struct {
	SNRdB       float64 `json:"snr_db"`
	FlatCorrect bool    `json:"flat_correct"`
	HierCorrect bool    `json:"hier_correct"`
}

// SNRRow is one row of the per-SNR advantage table.
type SNRRow struct {
	SNR       int
	FlatWins  int
	HierWins  int
	Advantage int // HierWins - FlatWins
	N         int
}

// Load reads and decodes the metrics file. A missing or malformed file is
// an error; table rendering must not proceed on guesswork.
func Load(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read metrics: %w", err)
	}
	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parse metrics %s: %w", path, err)
	}
	return &r, nil
}

// SNRAdvantage buckets records by rounded SNR and counts exclusive wins per
// bucket. A win is exclusive: one arm correct, the other wrong. Rows come
// back sorted by SNR ascending; no records means no rows.
func SNRAdvantage(records []Record) []SNRRow {
	buckets := make(map[int]*SNRRow)
	for _, rec := range records {
		snr := int(math.Round(rec.SNRdB))
		row, ok := buckets[snr]
		if !ok {
			row = &SNRRow{SNR: snr}
			buckets[snr] = row
		}
		row.N++
		if rec.FlatCorrect && !rec.HierCorrect {
			row.FlatWins++
		}
		if rec.HierCorrect && !rec.FlatCorrect {
			row.HierWins++
		}
	}

	rows := make([]SNRRow, 0, len(buckets))
	for _, row := range buckets {
		row.Advantage = row.HierWins - row.FlatWins
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].SNR < rows[j].SNR })
	return rows
}

// Totals sums exclusive wins across all classes.
func (r *Report) Totals() (hierWins, flatWins, ties int) {
	for _, c := range r.PerClass {
		hierWins += c.HierWins
		flatWins += c.FlatWins
		ties += c.Ties
	}
	return
}

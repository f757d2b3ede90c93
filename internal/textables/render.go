// Package textables turns the evaluation metrics into LaTeX table
// fragments. The layout lives in a text/template (embedded default,
// overridable from the project config) so the paper's typography can change
// without touching code.
package textables

import (
	"bytes"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"text/template"

	"hvfpaper/internal/metrics"
	"hvfpaper/internal/texpatch"
)

//go:embed templates/hvf_tables.tex.tmpl
var templates embed.FS

// OutputName is the single table fragment file the paper inputs.
const OutputName = "hvf_tables.tex"

// data is the template context.
type data struct {
	Report  *metrics.Report
	SNRRows []metrics.SNRRow
}

// Render produces the LaTeX fragment for the report. templatePath overrides
// the embedded template when non-empty.
func Render(r *metrics.Report, templatePath string) ([]byte, error) {
	var (
		tmpl *template.Template
		err  error
	)
	if templatePath != "" {
		tmpl, err = template.ParseFiles(templatePath)
	} else {
		tmpl, err = template.ParseFS(templates, "templates/hvf_tables.tex.tmpl")
	}
	if err != nil {
		return nil, fmt.Errorf("parse table template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data{Report: r, SNRRows: metrics.SNRAdvantage(r.Records)}); err != nil {
		return nil, fmt.Errorf("render tables: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderToDir loads metrics from metricsPath, renders, and atomically writes
// the fragment into outDir. Returns the written path. A missing or
// malformed metrics file is an error; there is no placeholder fallback.
func RenderToDir(metricsPath, templatePath, outDir string) (string, error) {
	r, err := metrics.Load(metricsPath)
	if err != nil {
		return "", err
	}
	out, err := Render(r, templatePath)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", fmt.Errorf("create tables dir: %w", err)
	}
	path := filepath.Join(outDir, OutputName)
	if err := texpatch.WriteDocument(path, string(out)); err != nil {
		return "", err
	}
	return path, nil
}

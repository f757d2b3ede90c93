package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testPaper = `\documentclass[conference]{IEEEtran}
\title{Hierarchical vs Flat Ensembles}
\begin{document}
\begin{abstract}
Short abstract.
\end{abstract}
\section{Dataset}
Corpus description.
\end{document}
`

func writeTestConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	paper := filepath.Join(dir, "paper.tex")
	if err := os.WriteFile(paper, []byte(testPaper), 0o644); err != nil {
		t.Fatal(err)
	}
	cfgYAML := "paper: " + paper + "\n" +
		"references: " + filepath.Join(dir, "refs.bib") + "\n" +
		"metrics: " + filepath.Join(dir, "metrics.json") + "\n" +
		"tables_dir: " + filepath.Join(dir, "tables") + "\n" +
		"figures_dir: " + filepath.Join(dir, "figs") + "\n" +
		"pdf: " + filepath.Join(dir, "paper.pdf") + "\n"
	cfgPath := filepath.Join(dir, "hvfpaper.yaml")
	if err := os.WriteFile(cfgPath, []byte(cfgYAML), 0o644); err != nil {
		t.Fatal(err)
	}
	return cfgPath
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestPatchCommand_AppliesAndSkips(t *testing.T) {
	cfgPath := writeTestConfig(t)

	out, err := execute(t, "--config", cfgPath, "patch", "all")
	if err != nil {
		t.Fatalf("patch all: %v\n%s", err, out)
	}
	if !strings.Contains(out, "✓") {
		t.Errorf("first run should apply patches, got:\n%s", out)
	}

	out, err = execute(t, "--config", cfgPath, "patch", "all")
	if err != nil {
		t.Fatalf("second patch all: %v", err)
	}
	if strings.Contains(out, "✗") {
		t.Errorf("second run must not fail any step:\n%s", out)
	}
	if !strings.Contains(out, "already applied") {
		t.Errorf("second run should skip via markers:\n%s", out)
	}
}

func TestPatchCommand_RejectsUnknownGroup(t *testing.T) {
	cfgPath := writeTestConfig(t)
	if _, err := execute(t, "--config", cfgPath, "patch", "everything"); err == nil {
		t.Error("invalid patch group must be rejected")
	}
}

func TestTablesCommand_MissingMetricsIsFatal(t *testing.T) {
	cfgPath := writeTestConfig(t)
	if _, err := execute(t, "--config", cfgPath, "tables"); err == nil {
		t.Error("tables without a metrics file must exit non-zero")
	}
}

func TestStatusCommand_ListsTargetsAndPatches(t *testing.T) {
	cfgPath := writeTestConfig(t)

	out, err := execute(t, "--config", cfgPath, "status")
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	for _, want := range []string{"figures", "tables", "document", "bibliography", "title-swap", "dataset-note"} {
		if !strings.Contains(out, want) {
			t.Errorf("status output missing %q:\n%s", want, out)
		}
	}
}

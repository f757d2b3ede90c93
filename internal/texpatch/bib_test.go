package texpatch

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestEnsureNatbib_InjectsAfterDocumentClass(t *testing.T) {
	out, outcome, err := EnsureNatbib(sampleDoc)
	if err != nil {
		t.Fatalf("EnsureNatbib: %v", err)
	}
	if outcome != Applied {
		t.Fatalf("outcome = %v, want Applied", outcome)
	}
	lines := strings.Split(out, "\n")
	if lines[1] != `\usepackage{natbib}` {
		t.Errorf("natbib must follow \\documentclass, got line %q", lines[1])
	}
}

func TestEnsureNatbib_PresenceCheckSkips(t *testing.T) {
	doc := "\\documentclass{article}\n\\usepackage{natbib}\n"
	out, outcome, err := EnsureNatbib(doc)
	if err != nil {
		t.Fatalf("EnsureNatbib: %v", err)
	}
	if outcome != Skipped || out != doc {
		t.Errorf("existing declaration must skip, got outcome=%v", outcome)
	}
}

func TestEnsureNatbib_CommentedDeclarationDoesNotCount(t *testing.T) {
	doc := "\\documentclass{article}\n% \\usepackage{natbib}\n"
	out, outcome, err := EnsureNatbib(doc)
	if err != nil {
		t.Fatalf("EnsureNatbib: %v", err)
	}
	if outcome != Applied {
		t.Error("commented-out declaration must not satisfy the check")
	}
	if got := strings.Count(out, `\usepackage{natbib}`); got != 2 {
		// one live, one in the comment
		t.Errorf("usepackage count = %d, want 2", got)
	}
}

func TestStripTrailing_RemovesStaleTail(t *testing.T) {
	doc := "body\n\\end{document}\nstale bibliography commands\n\\end{document}\n"
	out, outcome := StripTrailing(doc)
	if outcome != Applied {
		t.Fatalf("outcome = %v, want Applied", outcome)
	}
	if got := len(endDocumentRE.FindAllString(out, -1)); got != 0 {
		t.Errorf("terminal marker count = %d, want 0", got)
	}
	if strings.Contains(out, "stale bibliography commands") {
		t.Error("content after the first terminal marker must be gone")
	}
	if !strings.Contains(out, "body") {
		t.Error("content before the terminal marker must survive")
	}
}

func TestStripTrailing_NoMarkerIsNoop(t *testing.T) {
	doc := "body with no terminal marker\n"
	out, outcome := StripTrailing(doc)
	if outcome != Skipped || out != doc {
		t.Errorf("got outcome=%v out=%q", outcome, out)
	}
}

func TestNormalizeTail_OrderingInvariant(t *testing.T) {
	doc := "body\n\\end{document}\nleftover\n\\end{document}\n"
	once := NormalizeTail(doc, "refs")
	twice := NormalizeTail(once, "refs")

	if diff := cmp.Diff(once, twice); diff != "" {
		t.Errorf("NormalizeTail not idempotent (-once +twice):\n%s", diff)
	}
	if got := len(endDocumentRE.FindAllString(twice, -1)); got != 1 {
		t.Errorf("terminal marker count = %d, want exactly 1", got)
	}
	if got := strings.Count(twice, `\bibliographystyle{`); got != 1 {
		t.Errorf("bibliography-style count = %d, want exactly 1", got)
	}
	if !strings.HasSuffix(twice, "\\end{document}\n") {
		t.Errorf("terminal marker must close the document, got tail %q", twice[max(0, len(twice)-40):])
	}
}

func TestEnsureBibliographyBlock_ExistingStyleReappendsMarkerOnly(t *testing.T) {
	doc := "body\n\\bibliographystyle{IEEEtran}\n\\bibliography{refs}\n"
	out, _ := EnsureBibliographyBlock(doc, "refs")
	if got := strings.Count(out, `\bibliographystyle{`); got != 1 {
		t.Errorf("style directive count = %d, want 1", got)
	}
	if !strings.HasSuffix(out, "\\end{document}\n") {
		t.Error("terminal marker must be re-appended")
	}
}

func TestSeedReferences_CreatesDefaultEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "refs.bib")
	outcome, err := SeedReferences(path)
	if err != nil {
		t.Fatalf("SeedReferences: %v", err)
	}
	if outcome != Applied {
		t.Fatalf("outcome = %v, want Applied", outcome)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read seeded file: %v", err)
	}
	content := string(data)
	keys := []string{"oshea2016radioml", "oshea2018over", "guo2017calibration", "scheirer2013openset"}
	for _, k := range keys {
		if !strings.Contains(content, "{"+k+",") {
			t.Errorf("seeded file missing entry %q", k)
		}
	}
	if got := strings.Count(content, "@"); got != len(keys) {
		t.Errorf("entry count = %d, want exactly %d", got, len(keys))
	}
}

func TestSeedReferences_NeverTouchesNonEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "refs.bib")
	existing := "@misc{mine2024, title={Mine}}\n"
	if err := os.WriteFile(path, []byte(existing), 0o644); err != nil {
		t.Fatal(err)
	}

	outcome, err := SeedReferences(path)
	if err != nil {
		t.Fatalf("SeedReferences: %v", err)
	}
	if outcome != Skipped {
		t.Errorf("outcome = %v, want Skipped", outcome)
	}
	data, _ := os.ReadFile(path)
	if diff := cmp.Diff(existing, string(data)); diff != "" {
		t.Errorf("non-empty file was modified (-want +got):\n%s", diff)
	}
}

func TestSeedReferences_EmptyFileIsSeeded(t *testing.T) {
	path := filepath.Join(t.TempDir(), "refs.bib")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	outcome, err := SeedReferences(path)
	if err != nil {
		t.Fatalf("SeedReferences: %v", err)
	}
	if outcome != Applied {
		t.Errorf("outcome = %v, want Applied for zero-size file", outcome)
	}
}

func TestRefName(t *testing.T) {
	cases := map[string]string{
		"refs.bib":       "refs",
		"paper/refs.bib": "refs",
		"refs":           "refs",
	}
	for in, want := range cases {
		if got := RefName(in); got != want {
			t.Errorf("RefName(%q) = %q, want %q", in, got, want)
		}
	}
}

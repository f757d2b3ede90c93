package texpatch

import (
	"fmt"
	"regexp"
	"strings"
)

// Structural anchors. Patchers locate one of these lines before mutating;
// a missing anchor fails the specific patch with an AnchorError.
var (
	documentClassRE = regexp.MustCompile(`(?m)^[ \t]*\\documentclass[^\n]*$`)
	titleLineRE     = regexp.MustCompile(`(?m)^[ \t]*\\title\{(.*)\}[ \t]*$`)
	abstractEndRE   = regexp.MustCompile(`(?m)^[ \t]*\\end\{abstract\}[ \t]*$`)
	endDocumentRE   = regexp.MustCompile(`(?m)^[ \t]*\\end\{document\}[ \t]*$`)
)

// SectionRE builds the anchor pattern for a named section heading, e.g.
// SectionRE("Dataset") matches `\section{Dataset}` and `\section*{Dataset}`.
func SectionRE(name string) *regexp.Regexp {
	return regexp.MustCompile(`(?m)^[ \t]*\\section\*?\{` + regexp.QuoteMeta(name) + `\}[ \t]*$`)
}

// hasDirective reports whether directive occurs on any non-comment line.
// Lines whose first non-blank character is '%' are ignored, so a commented-out
// \usepackage does not satisfy a presence check.
func hasDirective(doc, directive string) bool {
	for _, line := range strings.Split(doc, "\n") {
		trimmed := strings.TrimLeft(line, " \t")
		if strings.HasPrefix(trimmed, "%") {
			continue
		}
		if strings.Contains(line, directive) {
			return true
		}
	}
	return false
}

// insertAfterLine inserts block on its own line(s) directly after the first
// line matched by re. Block should not carry a trailing newline.
func insertAfterLine(doc string, re *regexp.Regexp, block string) (string, bool) {
	loc := re.FindStringIndex(doc)
	if loc == nil {
		return doc, false
	}
	end := loc[1]
	// Step past the matched line's newline, if any.
	if end < len(doc) && doc[end] == '\n' {
		end++
	}
	return doc[:end] + block + "\n" + doc[end:], true
}

// insertBeforeLine inserts block on its own line(s) directly before the
// first line matched by re.
func insertBeforeLine(doc string, re *regexp.Regexp, block string) (string, bool) {
	loc := re.FindStringIndex(doc)
	if loc == nil {
		return doc, false
	}
	return doc[:loc[0]] + block + "\n" + doc[loc[0]:], true
}

// ensureTrailingNewline terminates doc with exactly one final newline run,
// leaving interior blank lines alone.
func ensureTrailingNewline(doc string) string {
	if doc == "" || strings.HasSuffix(doc, "\n") {
		return doc
	}
	return doc + "\n"
}

// flagHintBlock is the informational block inserted after \documentclass.
// The \newif itself is inert (the flag defaults to false), so the insertion
// has no behavioral effect until the author uncomments the enable line.
func flagHintBlock(flag string) string {
	return fmt.Sprintf(`\newif\if%s %s
%% Camera-ready mode is off by default; the document renders unchanged.
%% To enable the revised title and abstract tail, add after this line:
%%   \%strue`, flag, MarkerFlagHint, flag)
}

package texpatch

import (
	"fmt"
	"strings"
)

// Guard markers. One marker per patch; presence anywhere in the document
// means "already applied".
const (
	MarkerTitleSwap    = "%% hvfpaper:title-swap"
	MarkerFlagHint     = "%% hvfpaper:flag-hint"
	MarkerAbstractTail = "%% hvfpaper:abstract-tail"
)

// Default camera-ready text. Overridable from the project config.
const (
	DefaultCameraTitle = "Hierarchical Ensembles Outperform Flat Baselines in RF Modulation Classification"

	DefaultAbstractTail = "Code, evaluation artifacts, and the full per-class result tables are available in the accompanying repository."
)

// WrapTitle returns the patch that makes the title conditionally swappable.
// The single-line \title{...} directive is replaced with a conditional block
// whose else branch carries the original title text verbatim, so leaving the
// flag unset renders the pre-patch document character-for-character.
func WrapTitle(flag, newTitle string) Patch {
	return Patch{
		Name:   "title-swap",
		Marker: MarkerTitleSwap,
		Transform: func(doc string) (string, error) {
			loc := titleLineRE.FindStringSubmatchIndex(doc)
			if loc == nil {
				// Distinguish "no \title at all" from "title not on one line":
				// a multi-line title would silently lose text if we guessed.
				if strings.Contains(doc, `\title{`) {
					return "", &AnchorError{Patch: "title-swap", Anchor: `\title{...}`,
						Detail: "directive does not fit the single-line shape (spans multiple lines?)"}
				}
				return "", &AnchorError{Patch: "title-swap", Anchor: `\title{...}`}
			}

			original := doc[loc[2]:loc[3]]
			block := fmt.Sprintf(`\if%s %s
\title{%s}
\else
\title{%s}
\fi`, flag, MarkerTitleSwap, newTitle, original)

			return doc[:loc[0]] + block + doc[loc[1]:], nil
		},
	}
}

// AppendAbstractTail returns the patch that inserts a conditional emphasized
// sentence immediately before the first \end{abstract} line. Only the first
// occurrence is touched even if the closing line is repeated.
func AppendAbstractTail(flag, tail string) Patch {
	return Patch{
		Name:   "abstract-tail",
		Marker: MarkerAbstractTail,
		Transform: func(doc string) (string, error) {
			block := fmt.Sprintf(`\if%s
\par
\emph{%s} %s
\fi`, flag, tail, MarkerAbstractTail)

			out, ok := insertBeforeLine(doc, abstractEndRE, block)
			if !ok {
				return "", &AnchorError{Patch: "abstract-tail", Anchor: `\end{abstract}`}
			}
			return out, nil
		},
	}
}

// InsertFlagHint returns the patch that adds the \newif declaration and a
// commented how-to-enable note right after \documentclass. Informational:
// the flag defaults to false, so the rendered document is unchanged.
func InsertFlagHint(flag string) Patch {
	return Patch{
		Name:   "flag-hint",
		Marker: MarkerFlagHint,
		Transform: func(doc string) (string, error) {
			out, ok := insertAfterLine(doc, documentClassRE, flagHintBlock(flag))
			if !ok {
				return "", &AnchorError{Patch: "flag-hint", Anchor: `\documentclass`}
			}
			return out, nil
		},
	}
}

// TitlePatches is the ordered set the `patch title` command applies: the
// hint (and \newif) must land before the conditional blocks that use it.
func TitlePatches(flag, newTitle, tail string) []Patch {
	if newTitle == "" {
		newTitle = DefaultCameraTitle
	}
	if tail == "" {
		tail = DefaultAbstractTail
	}
	return []Patch{
		InsertFlagHint(flag),
		WrapTitle(flag, newTitle),
		AppendAbstractTail(flag, tail),
	}
}

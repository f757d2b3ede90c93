// Package texpatch applies guarded, idempotent text substitutions to the
// paper's LaTeX source. Every patch owns a unique marker comment; the
// marker's presence in the document is the sole idempotency signal. Patches
// are pure string transforms; I/O lives in io.go so each transform is
// testable against in-memory documents.
package texpatch

import (
	"errors"
	"fmt"
	"strings"
)

// Outcome reports what Apply did.
type Outcome int

const (
	// Applied means the transform ran and the document changed.
	Applied Outcome = iota
	// Skipped means the guard marker was already present (safe no-op).
	Skipped
)

func (o Outcome) String() string {
	if o == Applied {
		return "applied"
	}
	return "skipped"
}

// Patch is one guarded transform. Transform must embed Marker in its output;
// Apply treats a missing marker as a contract break, not a soft failure,
// because a marker-less result would be re-applied on the next run.
type Patch struct {
	Name      string
	Marker    string
	Transform func(doc string) (string, error)
}

// ErrHeadingNotFound is returned by the paragraph injector when no line
// matches the heading pattern. Callers report it distinctly from success but
// do not abort the pipeline on it.
var ErrHeadingNotFound = errors.New("heading not found")

// ErrAnchorMissing is wrapped by AnchorError; use errors.Is to detect the
// whole class of structural-anchor failures.
var ErrAnchorMissing = errors.New("structural anchor not found")

// AnchorError reports a missing or malformed structural anchor. The patch
// refuses to guess: appending blindly risks corrupting document structure.
type AnchorError struct {
	Patch  string // which patch was looking
	Anchor string // what it was looking for
	Detail string // optional shape diagnostic (e.g. "spans multiple lines")
}

func (e *AnchorError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("patch %s: anchor %q: %s", e.Patch, e.Anchor, e.Detail)
	}
	return fmt.Sprintf("patch %s: anchor %q not found", e.Patch, e.Anchor)
}

func (e *AnchorError) Unwrap() error { return ErrAnchorMissing }

// MarkerError means a transform produced output without its own guard
// marker. This is an implementer bug and always fatal: swallowing it would
// duplicate content on every subsequent run.
type MarkerError struct {
	Patch  string
	Marker string
}

func (e *MarkerError) Error() string {
	return fmt.Sprintf("patch %s: transform did not embed marker %q (idempotence contract broken)", e.Patch, e.Marker)
}

// HasMarker reports whether the document already carries a guard marker.
func HasMarker(doc, marker string) bool {
	return strings.Contains(doc, marker)
}

// Apply runs the guard-marker protocol: skip when the marker is already
// present, otherwise transform and verify the marker landed. On any error
// the input document is returned unchanged.
func Apply(doc string, p Patch) (string, Outcome, error) {
	if strings.Contains(doc, p.Marker) {
		return doc, Skipped, nil
	}
	out, err := p.Transform(doc)
	if err != nil {
		return doc, Skipped, err
	}
	if !strings.Contains(out, p.Marker) {
		return doc, Skipped, &MarkerError{Patch: p.Name, Marker: p.Marker}
	}
	return out, Applied, nil
}

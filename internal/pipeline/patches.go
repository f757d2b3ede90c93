package pipeline

import (
	"errors"
	"fmt"
	"io"

	"hvfpaper/internal/config"
	"hvfpaper/internal/texpatch"
)

// Patcher applies the guarded document patches and reports each sub-step as
// one human-readable line on Out: a checkmark when work was done, a dot when
// the guard marker made it a safe no-op, a cross on failure. Repeated
// invocations are visibly safe.
type Patcher struct {
	Cfg *config.Project
	Out io.Writer
}

func (p *Patcher) step(ok rune, name, detail string) {
	if detail != "" {
		fmt.Fprintf(p.Out, "%c %s: %s\n", ok, name, detail)
		return
	}
	fmt.Fprintf(p.Out, "%c %s\n", ok, name)
}

// applyPatches runs patches in order against the document on disk, writing
// back atomically only when something changed. Structural-anchor failures
// and marker contract breaks abort with the document untouched.
func (p *Patcher) applyPatches(patches []texpatch.Patch) error {
	doc, err := texpatch.ReadDocument(p.Cfg.Paper)
	if err != nil {
		return err
	}

	changed := false
	for _, patch := range patches {
		out, outcome, err := texpatch.Apply(doc, patch)
		if err != nil {
			p.step('✗', patch.Name, err.Error())
			return err
		}
		if outcome == texpatch.Applied {
			p.step('✓', patch.Name, "")
			changed = true
		} else {
			p.step('•', patch.Name, "already applied")
		}
		doc = out
	}

	if !changed {
		return nil
	}
	return texpatch.WriteDocument(p.Cfg.Paper, doc)
}

// PatchTitle wraps the title directive in the camera-ready conditional,
// appends the abstract tail, and inserts the flag hint block.
func (p *Patcher) PatchTitle() error {
	return p.applyPatches(texpatch.TitlePatches(p.Cfg.FlagName, p.Cfg.CameraTitle, p.Cfg.AbstractTail))
}

// PatchBib normalizes the document tail and seeds the reference list. The
// strip step always precedes the ensure step; that ordering is what makes
// re-runs converge.
func (p *Patcher) PatchBib() error {
	doc, err := texpatch.ReadDocument(p.Cfg.Paper)
	if err != nil {
		return err
	}
	orig := doc

	doc, outcome, err := texpatch.EnsureNatbib(doc)
	if err != nil {
		p.step('✗', "ensure-natbib", err.Error())
		return err
	}
	if outcome == texpatch.Applied {
		p.step('✓', "ensure-natbib", "")
	} else {
		p.step('•', "ensure-natbib", "already declared")
	}

	stripped, outcome := texpatch.StripTrailing(doc)
	if outcome == texpatch.Applied {
		p.step('✓', "strip-trailing", "")
	}
	doc, _ = texpatch.EnsureBibliographyBlock(stripped, texpatch.RefName(p.Cfg.References))
	p.step('✓', "ensure-bibliography-block", "")

	if doc != orig {
		if err := texpatch.WriteDocument(p.Cfg.Paper, doc); err != nil {
			return err
		}
	}

	seeded, err := texpatch.SeedReferences(p.Cfg.References)
	if err != nil {
		p.step('✗', "seed-references", err.Error())
		return err
	}
	if seeded == texpatch.Applied {
		p.step('✓', "seed-references", p.Cfg.References)
	} else {
		p.step('•', "seed-references", "file already has entries")
	}
	return nil
}

// PatchDataset inserts the dataset paragraph after its section heading and
// makes sure a bibliography include exists somewhere. A missing heading is
// reported distinctly but does not fail the pipeline.
func (p *Patcher) PatchDataset() error {
	doc, err := texpatch.ReadDocument(p.Cfg.Paper)
	if err != nil {
		return err
	}
	orig := doc

	doc, outcome, err := texpatch.Apply(doc, texpatch.DatasetNote())
	switch {
	case errors.Is(err, texpatch.ErrHeadingNotFound):
		p.step('–', "dataset-note", fmt.Sprintf("no %s section heading; nothing inserted", texpatch.DatasetHeading))
		doc = orig
	case err != nil:
		p.step('✗', "dataset-note", err.Error())
		return err
	case outcome == texpatch.Applied:
		p.step('✓', "dataset-note", "")
	default:
		p.step('•', "dataset-note", "already applied")
	}

	doc, bibOutcome := texpatch.EnsureBibIncluded(doc, texpatch.RefName(p.Cfg.References))
	if bibOutcome == texpatch.Applied {
		p.step('✓', "ensure-bib-included", "")
	} else {
		p.step('•', "ensure-bib-included", "directive present")
	}

	if doc != orig {
		return texpatch.WriteDocument(p.Cfg.Paper, doc)
	}
	return nil
}

// PatchAll runs every patch group in the canonical order.
func (p *Patcher) PatchAll() error {
	if err := p.PatchTitle(); err != nil {
		return err
	}
	if err := p.PatchBib(); err != nil {
		return err
	}
	return p.PatchDataset()
}

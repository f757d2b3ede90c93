// Package pipeline wires the project config into concrete build targets:
// figures, tables, bibliography pass, document, full submission, clean.
// External renderers are invoked by path and judged by exit code only.
package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"hvfpaper/internal/buildgraph"
	"hvfpaper/internal/config"
	"hvfpaper/internal/logging"
	"hvfpaper/internal/textables"
)

// Pipeline builds and runs the target graph for one project.
type Pipeline struct {
	Cfg *config.Project
	Out io.Writer // checkmark/diagnostic lines for the human
}

func New(cfg *config.Project, out io.Writer) *Pipeline {
	if out == nil {
		out = os.Stdout
	}
	return &Pipeline{Cfg: cfg, Out: out}
}

// TablesOutput is the path of the rendered table fragment.
func (p *Pipeline) TablesOutput() string {
	return filepath.Join(p.Cfg.TablesDir, textables.OutputName)
}

func (p *Pipeline) figureOutputs() []string {
	outs := make([]string, 0, len(p.Cfg.Figures))
	for _, f := range p.Cfg.Figures {
		outs = append(outs, filepath.Join(p.Cfg.FiguresDir, f))
	}
	return outs
}

// jobName is the typesetting job name: paper basename without extension.
func (p *Pipeline) jobName() string {
	base := filepath.Base(p.Cfg.Paper)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// runCmd executes an external tool, logging its combined output at debug on
// success and surfacing it in the error on failure.
func (p *Pipeline) runCmd(ctx context.Context, argv []string) error {
	if len(argv) == 0 {
		return fmt.Errorf("empty command")
	}
	log := logging.New("pipeline")
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	var buf bytes.Buffer
	cmd.Stdout = &buf
	cmd.Stderr = &buf
	log.Debug("exec", "argv", strings.Join(argv, " "))
	if err := cmd.Run(); err != nil {
		tail := buf.String()
		if len(tail) > 2000 {
			tail = tail[len(tail)-2000:]
		}
		return fmt.Errorf("%s: %w\n%s", argv[0], err, tail)
	}
	log.Debug("exec ok", "cmd", argv[0])
	return nil
}

// Graph assembles the target graph. strictDoc picks the document target's
// failure policy: a submission build must abort on typesetting errors, a
// day-to-day build shrugs at them.
func (p *Pipeline) Graph(strictDoc bool) *buildgraph.Graph {
	g := buildgraph.New()

	g.MustAdd(&buildgraph.Target{
		Name:    "figures",
		Policy:  buildgraph.Strict,
		Inputs:  []string{p.scriptPath(p.Cfg.FigureScript)},
		Outputs: p.figureOutputs(),
		Run: func(ctx context.Context) error {
			return p.runCmd(ctx, p.Cfg.FigureScript)
		},
	})

	tableInputs := []string{p.Cfg.Metrics}
	if p.Cfg.Template != "" {
		tableInputs = append(tableInputs, p.Cfg.Template)
	}
	g.MustAdd(&buildgraph.Target{
		Name:    "tables",
		Policy:  buildgraph.Strict,
		Inputs:  tableInputs,
		Outputs: []string{p.TablesOutput()},
		Run: func(context.Context) error {
			path, err := p.RenderTables()
			if err != nil {
				return err
			}
			fmt.Fprintf(p.Out, "✓ wrote %s\n", path)
			return nil
		},
	})

	// Citation resolution is best-effort by policy: a bad .bbl shows up as
	// [?] marks in the PDF, which is recoverable; a blocked build is not.
	g.MustAdd(&buildgraph.Target{
		Name:   "bibliography",
		Policy: buildgraph.BestEffort,
		Run: func(ctx context.Context) error {
			argv := append(append([]string{}, p.Cfg.BibCmd...), p.jobName())
			return p.runCmd(ctx, argv)
		},
	})

	docPolicy := buildgraph.BestEffort
	if strictDoc {
		docPolicy = buildgraph.Strict
	}
	g.MustAdd(&buildgraph.Target{
		Name:    "document",
		Policy:  docPolicy,
		Deps:    []string{"figures", "tables"},
		Inputs:  append([]string{p.Cfg.Paper, p.TablesOutput()}, p.figureOutputs()...),
		Outputs: []string{p.Cfg.PDF},
		Run: func(ctx context.Context) error {
			argv := append(append([]string{}, p.Cfg.LatexCmd...), p.Cfg.Paper)
			return p.runCmd(ctx, argv)
		},
	})

	return g
}

// RenderTables renders the LaTeX table fragment from the metrics JSON.
func (p *Pipeline) RenderTables() (string, error) {
	return textables.RenderToDir(p.Cfg.Metrics, p.Cfg.Template, p.Cfg.TablesDir)
}

func (p *Pipeline) scriptPath(argv []string) string {
	// Convention: interpreter first, script second ("python3 scripts/gen.py").
	// A bare command is its own dependency.
	if len(argv) >= 2 {
		return argv[1]
	}
	if len(argv) == 1 {
		return argv[0]
	}
	return ""
}

// Submit is the full-submission flow: apply every patch, force a strict
// document build, then print artifact diagnostics. Any stage failing aborts.
func (p *Pipeline) Submit(ctx context.Context) error {
	patcher := &Patcher{Cfg: p.Cfg, Out: p.Out}
	if err := patcher.PatchAll(); err != nil {
		return err
	}

	g := p.Graph(true)
	if _, err := g.Run(ctx, "bibliography", false); err != nil {
		return err
	}
	if _, err := g.Run(ctx, "document", true); err != nil {
		return err
	}

	p.reportArtifact(ctx)
	return nil
}

// reportArtifact prints size and page-count diagnostics for the PDF. Both
// are best-effort; "unknown" is an acceptable answer.
func (p *Pipeline) reportArtifact(ctx context.Context) {
	info, err := os.Stat(p.Cfg.PDF)
	if err != nil {
		fmt.Fprintf(p.Out, "✗ %s: %v\n", p.Cfg.PDF, err)
		return
	}
	pages := p.pageCount(ctx)
	if pages > 0 {
		fmt.Fprintf(p.Out, "✓ %s: %d bytes, %d pages\n", p.Cfg.PDF, info.Size(), pages)
	} else {
		fmt.Fprintf(p.Out, "✓ %s: %d bytes, pages unknown\n", p.Cfg.PDF, info.Size())
	}
}

// pageCount asks pdfinfo; 0 means unknown.
func (p *Pipeline) pageCount(ctx context.Context) int {
	out, err := exec.CommandContext(ctx, "pdfinfo", p.Cfg.PDF).Output()
	if err != nil {
		logging.New("pipeline").Debug("pdfinfo unavailable", "error", err)
		return 0
	}
	for _, line := range strings.Split(string(out), "\n") {
		if rest, ok := strings.CutPrefix(line, "Pages:"); ok {
			if n, err := strconv.Atoi(strings.TrimSpace(rest)); err == nil {
				return n
			}
		}
	}
	return 0
}

// Clean removes derived artifacts: the PDF, typesetting byproducts, the
// table fragment, and the generated figures. The paper source and the
// reference list are authoritative state and are never touched.
func (p *Pipeline) Clean() error {
	job := p.jobName()
	dir := filepath.Dir(p.Cfg.Paper)
	victims := []string{p.Cfg.PDF, p.TablesOutput()}
	for _, ext := range []string{".aux", ".bbl", ".blg", ".log", ".out", ".fls", ".fdb_latexmk", ".synctex.gz"} {
		victims = append(victims, filepath.Join(dir, job+ext))
	}
	victims = append(victims, p.figureOutputs()...)

	for _, v := range victims {
		if err := os.Remove(v); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return fmt.Errorf("remove %s: %w", v, err)
		}
		fmt.Fprintf(p.Out, "✓ removed %s\n", v)
	}
	return nil
}

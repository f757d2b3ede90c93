package config

// Project describes the paper repository this tool operates on: where the
// LaTeX source, reference list, metrics JSON, and derived artifacts live,
// and which external commands produce figures and the PDF.
//
// Every field is optional; zero values are filled from Default(), which
// matches the layout of the HVF paper repo.
type Project struct {
	Paper      string `json:"paper" yaml:"paper"`             // main LaTeX source
	References string `json:"references" yaml:"references"`   // BibTeX reference list
	Metrics    string `json:"metrics" yaml:"metrics"`         // evaluation harness output JSON
	TablesDir  string `json:"tables_dir" yaml:"tables_dir"`   // rendered table fragments
	FiguresDir string `json:"figures_dir" yaml:"figures_dir"` // rendered figure artifacts
	PDF        string `json:"pdf" yaml:"pdf"`                 // typeset output

	// Template optionally overrides the embedded table template.
	Template string `json:"template,omitempty" yaml:"template,omitempty"`

	// External commands, argv-style. The paper source path is appended to
	// LatexCmd; BibCmd receives the job name (paper basename without .tex).
	FigureScript []string `json:"figure_script" yaml:"figure_script"`
	LatexCmd     []string `json:"latex_cmd" yaml:"latex_cmd"`
	BibCmd       []string `json:"bib_cmd" yaml:"bib_cmd"`

	// Figures the figure script is expected to produce, relative to
	// FiguresDir. Used only for staleness checks.
	Figures []string `json:"figures,omitempty" yaml:"figures,omitempty"`

	// FlagName is the LaTeX conditional gating the camera-ready title swap
	// and abstract tail. The document renders identically to its pre-patch
	// state while the flag stays unset.
	FlagName string `json:"flag_name" yaml:"flag_name"`

	// CameraTitle and AbstractTail override the built-in camera-ready text.
	CameraTitle  string `json:"camera_title,omitempty" yaml:"camera_title,omitempty"`
	AbstractTail string `json:"abstract_tail,omitempty" yaml:"abstract_tail,omitempty"`

	Log LogConfig `json:"log" yaml:"log"`
}

// LogConfig mirrors logging.Init parameters.
type LogConfig struct {
	Level  string `json:"level" yaml:"level"`
	Format string `json:"format" yaml:"format"`
}

// Default returns the project layout of the HVF paper repository.
func Default() *Project {
	return &Project{
		Paper:      "paper.tex",
		References: "refs.bib",
		Metrics:    "data/hier_vs_flat_metrics.json",
		TablesDir:  "tables",
		FiguresDir: "figs",
		PDF:        "paper.pdf",
		FigureScript: []string{
			"python3", "scripts/gen_figs_hier_vs_flat.py",
		},
		LatexCmd: []string{"latexmk", "-pdf", "-interaction=nonstopmode"},
		BibCmd:   []string{"bibtex"},
		Figures: []string{
			"per_class_wins.pdf",
			"confusion_flat.pdf",
			"confusion_hier.pdf",
			"confusion_delta.pdf",
			"agreement_hist.pdf",
			"latency_box.pdf",
		},
		FlagName: "cameraready",
		Log:      LogConfig{Level: "info", Format: "text"},
	}
}

// fillDefaults copies Default() into any zero-valued field of p.
func (p *Project) fillDefaults() {
	d := Default()
	if p.Paper == "" {
		p.Paper = d.Paper
	}
	if p.References == "" {
		p.References = d.References
	}
	if p.Metrics == "" {
		p.Metrics = d.Metrics
	}
	if p.TablesDir == "" {
		p.TablesDir = d.TablesDir
	}
	if p.FiguresDir == "" {
		p.FiguresDir = d.FiguresDir
	}
	if p.PDF == "" {
		p.PDF = d.PDF
	}
	if len(p.FigureScript) == 0 {
		p.FigureScript = d.FigureScript
	}
	if len(p.LatexCmd) == 0 {
		p.LatexCmd = d.LatexCmd
	}
	if len(p.BibCmd) == 0 {
		p.BibCmd = d.BibCmd
	}
	if len(p.Figures) == 0 {
		p.Figures = d.Figures
	}
	if p.FlagName == "" {
		p.FlagName = d.FlagName
	}
	if p.Log.Level == "" {
		p.Log.Level = d.Log.Level
	}
	if p.Log.Format == "" {
		p.Log.Format = d.Log.Format
	}
}

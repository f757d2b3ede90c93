// Package mcp exposes the paper tooling over the Model Context Protocol so
// an editor agent can patch the document, regenerate tables, and inspect
// build freshness without shelling out.
package mcp

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"hvfpaper/internal/buildgraph"
	"hvfpaper/internal/config"
	"hvfpaper/internal/metrics"
	"hvfpaper/internal/pipeline"
	"hvfpaper/internal/texpatch"
)

// Server wraps the MCP SDK server around one project configuration.
type Server struct {
	MCPServer *sdkmcp.Server
	Cfg       *config.Project
}

// NewServer builds the server and registers every tool.
func NewServer(cfg *config.Project, version string) *Server {
	s := &Server{Cfg: cfg}
	s.MCPServer = sdkmcp.NewServer(
		&sdkmcp.Implementation{Name: "hvfpaper", Version: version},
		nil,
	)
	s.registerTools()
	return s
}

func (s *Server) registerTools() {
	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "apply_patches",
		Description: "Apply the guarded camera-ready patches to the paper. Idempotent: patches already carrying their marker are skipped.",
	}, s.handleApplyPatches)

	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "render_tables",
		Description: "Regenerate the LaTeX table fragment from the metrics JSON. Fails if the metrics file is missing or malformed.",
	}, s.handleRenderTables)

	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "pipeline_status",
		Description: "Report per-target staleness of the build graph (figures, tables, bibliography, document).",
	}, s.handlePipelineStatus)

	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "seed_references",
		Description: "Create the BibTeX reference list with the default entries if it is absent or empty. Never overwrites existing entries.",
	}, s.handleSeedReferences)
}

// --- Tool input/output types ---

type applyPatchesInput struct {
	Group string `json:"group,omitempty" jsonschema:"patch group: title, bib, dataset, or all (default all)"`
}

type applyPatchesOutput struct {
	Applied bool   `json:"applied"` // false = every patch was already in place
	Log     string `json:"log"`     // per-step checkmark lines
}

type renderTablesInput struct {
	Preview bool `json:"preview,omitempty" jsonschema:"include the rendered fragment in the response"`
}

type renderTablesOutput struct {
	Path     string `json:"path"`
	Fragment string `json:"fragment,omitempty"`
}

type pipelineStatusInput struct{}

type targetStatus struct {
	Name   string `json:"name"`
	Policy string `json:"policy"`
	Stale  bool   `json:"stale"`
	Reason string `json:"reason"`
}

type pipelineStatusOutput struct {
	Targets []targetStatus `json:"targets"`
	// MetricsSummary is the terminal rendering of the current metrics file,
	// empty when the file is missing or malformed.
	MetricsSummary string `json:"metrics_summary,omitempty"`
}

type seedReferencesInput struct{}

type seedReferencesOutput struct {
	Seeded bool   `json:"seeded"` // false = the file already had entries
	Path   string `json:"path"`
}

// --- Tool handlers ---

func (s *Server) handleApplyPatches(_ context.Context, _ *sdkmcp.CallToolRequest, input applyPatchesInput) (*sdkmcp.CallToolResult, applyPatchesOutput, error) {
	var log bytes.Buffer
	p := &pipeline.Patcher{Cfg: s.Cfg, Out: &log}

	var err error
	switch input.Group {
	case "", "all":
		err = p.PatchAll()
	case "title", "abstract":
		err = p.PatchTitle()
	case "bib":
		err = p.PatchBib()
	case "dataset":
		err = p.PatchDataset()
	default:
		return nil, applyPatchesOutput{}, fmt.Errorf("unknown patch group %q (want title, bib, dataset, or all)", input.Group)
	}
	if err != nil {
		return nil, applyPatchesOutput{Log: log.String()}, fmt.Errorf("apply_patches: %w", err)
	}

	return nil, applyPatchesOutput{
		Applied: strings.Contains(log.String(), "✓"),
		Log:     log.String(),
	}, nil
}

func (s *Server) handleRenderTables(_ context.Context, _ *sdkmcp.CallToolRequest, input renderTablesInput) (*sdkmcp.CallToolResult, renderTablesOutput, error) {
	var out bytes.Buffer
	p := pipeline.New(s.Cfg, &out)
	path, err := p.RenderTables()
	if err != nil {
		return nil, renderTablesOutput{}, fmt.Errorf("render_tables: %w", err)
	}

	result := renderTablesOutput{Path: path}
	if input.Preview {
		frag, err := texpatch.ReadDocument(path)
		if err != nil {
			return nil, renderTablesOutput{}, err
		}
		result.Fragment = frag
	}
	return nil, result, nil
}

func (s *Server) handlePipelineStatus(_ context.Context, _ *sdkmcp.CallToolRequest, _ pipelineStatusInput) (*sdkmcp.CallToolResult, pipelineStatusOutput, error) {
	var out bytes.Buffer
	g := pipeline.New(s.Cfg, &out).Graph(false)

	var statuses []targetStatus
	for _, name := range g.Names() {
		t := g.Get(name)
		stale, reason, err := buildgraph.Stale(t)
		if err != nil {
			// A missing input is itself status, not a tool failure.
			stale, reason = true, err.Error()
		}
		statuses = append(statuses, targetStatus{
			Name:   name,
			Policy: t.Policy.String(),
			Stale:  stale,
			Reason: reason,
		})
	}

	result := pipelineStatusOutput{Targets: statuses}
	if r, err := metrics.Load(s.Cfg.Metrics); err == nil {
		var sum bytes.Buffer
		metrics.WriteSummary(&sum, r)
		result.MetricsSummary = sum.String()
	}
	return nil, result, nil
}

func (s *Server) handleSeedReferences(_ context.Context, _ *sdkmcp.CallToolRequest, _ seedReferencesInput) (*sdkmcp.CallToolResult, seedReferencesOutput, error) {
	outcome, err := texpatch.SeedReferences(s.Cfg.References)
	if err != nil {
		return nil, seedReferencesOutput{}, fmt.Errorf("seed_references: %w", err)
	}
	return nil, seedReferencesOutput{
		Seeded: outcome == texpatch.Applied,
		Path:   s.Cfg.References,
	}, nil
}

// Run serves MCP over stdio until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.MCPServer.Run(ctx, &sdkmcp.StdioTransport{})
}

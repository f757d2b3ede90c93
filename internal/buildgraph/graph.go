// Package buildgraph is a small declarative target graph: each target names
// its file inputs and outputs, is rebuilt only when stale, and carries a
// failure policy. Execution is strictly sequential; the only ordering is the
// declared dependency edges.
package buildgraph

import (
	"context"
	"fmt"

	"hvfpaper/internal/logging"
)

// Policy decides what a target's failure does to the overall run.
type Policy int

const (
	// Strict failures propagate and abort the run with an error.
	Strict Policy = iota
	// BestEffort failures are logged and the run continues.
	BestEffort
)

func (p Policy) String() string {
	if p == BestEffort {
		return "best-effort"
	}
	return "strict"
}

// Target is one node of the graph. A target with no Outputs is always
// considered stale (it runs every time, like a phony make target).
type Target struct {
	Name    string
	Policy  Policy
	Deps    []string // targets that must run (or be fresh) first
	Inputs  []string // source files the outputs are derived from
	Outputs []string // derived files
	Run     func(ctx context.Context) error
}

// Graph holds targets in registration order.
type Graph struct {
	targets map[string]*Target
	order   []string
}

func New() *Graph {
	return &Graph{targets: make(map[string]*Target)}
}

// Add registers a target. Duplicate names are a programming error.
func (g *Graph) Add(t *Target) error {
	if _, ok := g.targets[t.Name]; ok {
		return fmt.Errorf("target %q already registered", t.Name)
	}
	g.targets[t.Name] = t
	g.order = append(g.order, t.Name)
	return nil
}

// MustAdd is Add for static graph construction.
func (g *Graph) MustAdd(t *Target) {
	if err := g.Add(t); err != nil {
		panic(err)
	}
}

// Get returns the named target or nil.
func (g *Graph) Get(name string) *Target {
	return g.targets[name]
}

// Names returns target names in registration order.
func (g *Graph) Names() []string {
	out := make([]string, len(g.order))
	copy(out, g.order)
	return out
}

// Outcome records what happened to one target during a run.
type Outcome struct {
	Target  string
	Ran     bool   // false = fresh, skipped
	Skipped string // human reason when Ran is false
	Err     error  // non-nil only for best-effort failures that were absorbed
}

// Run executes the named target and its dependencies depth-first. Fresh
// targets are skipped unless force is set. Best-effort failures are logged
// and recorded; a strict failure aborts immediately with the outcomes
// gathered so far.
func (g *Graph) Run(ctx context.Context, name string, force bool) ([]Outcome, error) {
	var outcomes []Outcome
	visited := make(map[string]bool)
	inStack := make(map[string]bool)

	var walk func(string) error
	walk = func(n string) error {
		if visited[n] {
			return nil
		}
		if inStack[n] {
			return fmt.Errorf("dependency cycle through target %q", n)
		}
		t := g.targets[n]
		if t == nil {
			return fmt.Errorf("unknown target %q", n)
		}
		inStack[n] = true
		for _, dep := range t.Deps {
			if err := walk(dep); err != nil {
				return err
			}
		}
		inStack[n] = false
		visited[n] = true

		log := logging.New("buildgraph")

		if !force {
			stale, reason, err := Stale(t)
			if err != nil {
				if t.Policy == BestEffort {
					log.Warn("staleness check failed, continuing", "target", n, "error", err)
					outcomes = append(outcomes, Outcome{Target: n, Err: err})
					return nil
				}
				return fmt.Errorf("target %s: %w", n, err)
			}
			if !stale {
				outcomes = append(outcomes, Outcome{Target: n, Skipped: reason})
				return nil
			}
			log.Debug("target stale", "target", n, "reason", reason)
		}

		if err := t.Run(ctx); err != nil {
			if t.Policy == BestEffort {
				log.Warn("best-effort target failed, continuing", "target", n, "error", err)
				outcomes = append(outcomes, Outcome{Target: n, Ran: true, Err: err})
				return nil
			}
			outcomes = append(outcomes, Outcome{Target: n, Ran: true})
			return fmt.Errorf("target %s: %w", n, err)
		}
		outcomes = append(outcomes, Outcome{Target: n, Ran: true})
		return nil
	}

	err := walk(name)
	return outcomes, err
}

// Package watch re-renders the LaTeX table fragment whenever the metrics
// JSON changes on disk. Meant for the edit loop: run the evaluation harness
// in one terminal, keep watch in another, and the paper's tables follow.
package watch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/sync/errgroup"

	"hvfpaper/internal/config"
	"hvfpaper/internal/logging"
	"hvfpaper/internal/pipeline"
)

// Watcher follows the metrics file (and the template override, when set) and
// triggers a table render after events settle.
type Watcher struct {
	Cfg *config.Project
	Out io.Writer

	// Debounce is how long events must settle before a render. Editors and
	// the evaluation harness both write in bursts.
	Debounce time.Duration

	// Rebuild renders the fragment; replaceable in tests.
	Rebuild func() (string, error)
}

func New(cfg *config.Project, out io.Writer) *Watcher {
	if out == nil {
		out = os.Stdout
	}
	w := &Watcher{Cfg: cfg, Out: out, Debounce: 500 * time.Millisecond}
	w.Rebuild = func() (string, error) {
		return pipeline.New(cfg, out).RenderTables()
	}
	return w
}

// Run blocks until ctx is cancelled. The watch survives render failures: a
// broken metrics file mid-write is normal, the next settled event retries.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fsw.Close()

	// Watch directories, not files: editors replace files by rename, which
	// silently drops a file-level watch.
	dir := filepath.Dir(w.Cfg.Metrics)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	if err := fsw.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	if w.Cfg.Template != "" {
		if err := fsw.Add(filepath.Dir(w.Cfg.Template)); err != nil {
			logging.New("watch").Warn("cannot watch template dir", "error", err)
		}
	}

	log := logging.New("watch")
	log.Info("watching for metric changes", "metrics", w.Cfg.Metrics)
	fmt.Fprintf(w.Out, "watching %s\n", w.Cfg.Metrics)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		timer := time.NewTimer(w.Debounce)
		if !timer.Stop() {
			<-timer.C
		}
		defer timer.Stop()

		for {
			select {
			case <-ctx.Done():
				return nil

			case ev, ok := <-fsw.Events:
				if !ok {
					return nil
				}
				if !w.relevant(ev) {
					continue
				}
				log.Debug("event", "op", ev.Op.String(), "path", ev.Name)
				timer.Reset(w.Debounce)

			case err, ok := <-fsw.Errors:
				if !ok {
					return nil
				}
				log.Warn("watch error", "error", err)

			case <-timer.C:
				w.render(log)
			}
		}
	})
	return g.Wait()
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return false
	}
	name := filepath.Clean(ev.Name)
	if name == filepath.Clean(w.Cfg.Metrics) {
		return true
	}
	return w.Cfg.Template != "" && name == filepath.Clean(w.Cfg.Template)
}

func (w *Watcher) render(log *slog.Logger) {
	path, err := w.Rebuild()
	if err != nil {
		log.Warn("render failed, waiting for next change", "error", err)
		fmt.Fprintf(w.Out, "✗ %v\n", err)
		return
	}
	fmt.Fprintf(w.Out, "✓ wrote %s\n", path)
}

// Package hook keeps the committed table fragment in sync with the metrics
// JSON via a Git pre-commit hook. The hook is advisory: it regenerates and
// stages the fragment when it can, and never blocks a commit.
package hook

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"hvfpaper/internal/config"
	"hvfpaper/internal/logging"
	"hvfpaper/internal/pipeline"
)

// scriptTag identifies a pre-commit file as ours, so install can safely
// replace an earlier version but refuses to clobber a foreign hook.
const scriptTag = "hvfpaper pre-commit hook"

const script = `#!/bin/sh
# ` + scriptTag + `
# Regenerates the LaTeX table fragment when the metrics JSON is staged.
exec hvfpaper hook run
`

// Install writes the pre-commit script into repoDir's .git/hooks and returns
// its path. An existing hook is replaced only when it carries our tag.
func Install(repoDir string) (string, error) {
	gitDir := filepath.Join(repoDir, ".git")
	info, err := os.Stat(gitDir)
	if err != nil || !info.IsDir() {
		return "", fmt.Errorf("%s is not a git repository", repoDir)
	}

	hooksDir := filepath.Join(gitDir, "hooks")
	if err := os.MkdirAll(hooksDir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(hooksDir, "pre-commit")

	if existing, err := os.ReadFile(path); err == nil {
		if !bytes.Contains(existing, []byte(scriptTag)) {
			return "", fmt.Errorf("%s exists and was not installed by this tool; remove it first", path)
		}
	} else if !os.IsNotExist(err) {
		return "", err
	}

	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		return "", err
	}
	return path, nil
}

// Runner is the hook's commit-time half. The git interactions are function
// fields so tests can run without a repository.
type Runner struct {
	Cfg *config.Project
	Out io.Writer

	// Staged lists repo-relative paths of files staged for commit.
	Staged func(ctx context.Context) ([]string, error)
	// AddPath stages one path.
	AddPath func(ctx context.Context, path string) error
}

func NewRunner(cfg *config.Project, out io.Writer) *Runner {
	if out == nil {
		out = os.Stdout
	}
	return &Runner{
		Cfg:     cfg,
		Out:     out,
		Staged:  gitStaged,
		AddPath: gitAdd,
	}
}

func gitStaged(ctx context.Context) ([]string, error) {
	out, err := exec.CommandContext(ctx, "git", "diff", "--cached", "--name-only").Output()
	if err != nil {
		return nil, fmt.Errorf("git diff --cached: %w", err)
	}
	var files []string
	for _, line := range strings.Split(string(out), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			files = append(files, line)
		}
	}
	return files, nil
}

func gitAdd(ctx context.Context, path string) error {
	if out, err := exec.CommandContext(ctx, "git", "add", "--", path).CombinedOutput(); err != nil {
		return fmt.Errorf("git add %s: %w\n%s", path, err, out)
	}
	return nil
}

// Run checks whether the metrics JSON is part of the staged change and, if
// so, regenerates the table fragment and stages it too. Failures are logged
// and the commit proceeds; a half-updated paper is the author's problem to
// notice, a blocked commit is worse.
func (r *Runner) Run(ctx context.Context) error {
	log := logging.New("hook")

	staged, err := r.Staged(ctx)
	if err != nil {
		log.Warn("cannot list staged files, skipping", "error", err)
		return nil
	}
	if !containsPath(staged, r.Cfg.Metrics) {
		log.Debug("metrics not staged, nothing to do")
		return nil
	}

	p := pipeline.New(r.Cfg, r.Out)
	frag, err := p.RenderTables()
	if err != nil {
		log.Warn("table regeneration failed, committing without it", "error", err)
		fmt.Fprintf(r.Out, "– tables not regenerated: %v\n", err)
		return nil
	}
	fmt.Fprintf(r.Out, "✓ regenerated %s\n", frag)

	if err := r.AddPath(ctx, frag); err != nil {
		log.Warn("could not stage regenerated fragment", "error", err)
		fmt.Fprintf(r.Out, "– %s regenerated but not staged: %v\n", frag, err)
	}
	return nil
}

func containsPath(files []string, want string) bool {
	want = filepath.Clean(want)
	for _, f := range files {
		if filepath.Clean(f) == want {
			return true
		}
	}
	return false
}

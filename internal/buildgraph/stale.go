package buildgraph

import (
	"fmt"
	"os"
	"time"
)

// Stale reports whether the target's outputs need regenerating: any output
// missing, or the newest input newer than the oldest output. A target
// without outputs is always stale. A missing input is an error; the
// caller's policy decides whether that aborts the run.
func Stale(t *Target) (bool, string, error) {
	if len(t.Outputs) == 0 {
		return true, "no declared outputs", nil
	}

	var oldestOut time.Time
	for _, out := range t.Outputs {
		info, err := os.Stat(out)
		if err != nil {
			if os.IsNotExist(err) {
				return true, fmt.Sprintf("output %s missing", out), nil
			}
			return false, "", fmt.Errorf("stat output %s: %w", out, err)
		}
		if oldestOut.IsZero() || info.ModTime().Before(oldestOut) {
			oldestOut = info.ModTime()
		}
	}

	for _, in := range t.Inputs {
		info, err := os.Stat(in)
		if err != nil {
			if os.IsNotExist(err) {
				return false, "", fmt.Errorf("input %s missing: %w", in, err)
			}
			return false, "", fmt.Errorf("stat input %s: %w", in, err)
		}
		if info.ModTime().After(oldestOut) {
			return true, fmt.Sprintf("input %s newer than outputs", in), nil
		}
	}

	return false, "outputs up to date", nil
}

package mcp

import (
	"context"
	"os"
	"time"

	"hvfpaper/internal/logging"
)

// WatchParent polls for parent process death in a background goroutine and
// calls cancel when the parent PID changes, so an orphaned stdio server does
// not linger after the editor that spawned it exits.
//
// It must never read stdin: the SDK's StdioTransport owns stdin exclusively
// and a stray read would corrupt the JSON-RPC stream.
func WatchParent(ctx context.Context, cancel context.CancelFunc) {
	ppid := os.Getppid()
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-time.After(2 * time.Second):
				if os.Getppid() != ppid {
					logging.New("mcp").Warn("parent process died, shutting down", "was_pid", ppid)
					cancel()
					return
				}
			}
		}
	}()
}

package main

import (
	"hvfpaper/internal/config"
	"hvfpaper/internal/logging"
)

// loadProject resolves the project config (explicit --config path or probed
// defaults) and initializes logging from it. Called at the top of every RunE.
func loadProject() (*config.Project, error) {
	cfg, err := config.Discover(rootFlags.config)
	if err != nil {
		return nil, err
	}
	logging.Init(cfg.Log.Level, cfg.Log.Format)
	return cfg, nil
}

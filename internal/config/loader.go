package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	yaml "gopkg.in/yaml.v3"
)

// DefaultFilenames are probed, in order, when no explicit config path is given.
var DefaultFilenames = []string{"hvfpaper.yaml", "hvfpaper.yml", "hvfpaper.json"}

// LoadFromPath reads a project file (YAML or JSON) and returns the parsed
// Project with defaults filled in. Format is detected by extension
// (.yaml/.yml, .json) or by content (first non-whitespace char).
func LoadFromPath(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read project config: %w", err)
	}
	return Load(data, filepath.Ext(path))
}

// Discover loads the project config from path if given, otherwise probes
// DefaultFilenames in the working directory. When nothing is found the
// built-in defaults are returned; a missing config file is not an error.
func Discover(path string) (*Project, error) {
	if path != "" {
		return LoadFromPath(path)
	}
	for _, name := range DefaultFilenames {
		if _, err := os.Stat(name); err == nil {
			return LoadFromPath(name)
		}
	}
	return Default(), nil
}

// Load parses a project config from bytes. ext is the file extension for a
// format hint; empty = detect from content.
func Load(data []byte, ext string) (*Project, error) {
	ext = strings.ToLower(ext)
	if ext == ".yml" {
		ext = ".yaml"
	}

	var p Project
	switch {
	case ext == ".yaml":
		if err := yaml.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("parse project yaml: %w", err)
		}
	case ext == ".json":
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("parse project json: %w", err)
		}
	case strings.HasPrefix(strings.TrimSpace(string(data)), "{"):
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("parse project json: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("parse project yaml: %w", err)
		}
	}

	p.fillDefaults()
	return &p, nil
}

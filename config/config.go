// Package config loads the scheduling problem and runtime settings from a
// YAML or JSON file, with environment overrides.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/rj25031/FCH-pyomo/core/metrics"
)

type Config struct {
	Problem ProblemConfig  `json:"problem"`
	Solver  SolverConfig   `json:"solver"`
	Logging LoggingConfig  `json:"logging"`
	Metrics metrics.Config `json:"metrics"`
}

// Load reads the file at path, applies FCH_-prefixed environment overrides
// (FCH_SOLVER__MAX_NODES=50000 sets solver.max_nodes), fills defaults and
// validates every section.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	// Optional environment overrides. The callback maps FCH_SOLVER__MAX_NODES
	// to solver.max_nodes; the provider splits on the dots.
	if err := k.Load(env.Provider("FCH_", ".", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "fch_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.Solver.SetDefaults()
	cfg.Logging.SetDefaults()
	if err := cfg.Logging.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Problem.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SolverConfig tunes the built-in branch-and-bound engine.
type SolverConfig struct {
	// MaxNodes caps the number of branch-and-bound nodes explored.
	MaxNodes int `json:"max_nodes"`
}

// SetDefaults applies sane defaults.
func (c *SolverConfig) SetDefaults() {
	if c.MaxNodes == 0 {
		c.MaxNodes = 200000
	}
}

// LoggingConfig selects the log level.
type LoggingConfig struct {
	Level string `json:"level"`
}

// SetDefaults applies sane defaults.
func (c *LoggingConfig) SetDefaults() {
	if c.Level == "" {
		c.Level = "info"
	}
}

// Validate checks the level is one zerolog understands.
func (c LoggingConfig) Validate() error {
	switch c.Level {
	case "trace", "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("unknown log level %s", c.Level)
	}
}

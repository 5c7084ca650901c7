package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	LatticePath string // hcl lattice description file or directory
	BeamPath    string // optional yaml beam configuration
	OutputPath  string // rendered gmad destination; .gz selects compression

	LogFormat string
	LogLevel  string
}

// NewConfig validates and returns a Config.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.LatticePath == "" {
		return nil, errors.New("LatticePath is a required configuration field and cannot be empty")
	}
	if cfg.OutputPath == "" {
		cfg.OutputPath = "machine.gmad"
	}
	return &cfg, nil
}

package app

import (
	"fmt"
	"time"
)

// Config holds everything an App needs to run.
type Config struct {
	ManifestPath string
	LogFormat    string
	LogLevel     string
	StopTimeout  time.Duration
}

// NewConfig validates a Config and applies defaults.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.ManifestPath == "" {
		return nil, fmt.Errorf("manifest path is required")
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.StopTimeout <= 0 {
		cfg.StopTimeout = 30 * time.Second
	}
	return &cfg, nil
}

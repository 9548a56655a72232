package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Settings holds tuning knobs read from the environment.
type Settings struct {
	// MaxRetries caps process table re-reads when the table keeps growing.
	// Zero retries until the table is stable.
	MaxRetries int `env:"BSDPROC_MAX_RETRIES" envDefault:"0"`
	// MaxBufferBytes is the largest single kernel read buffer.
	MaxBufferBytes int `env:"BSDPROC_MAX_BUFFER_BYTES" envDefault:"268435456"`
	// Workers bounds concurrent per-process metadata reads.
	Workers int `env:"BSDPROC_WORKERS" envDefault:"8"`
}

// ParseSettings parses Settings from environment variables.
func ParseSettings() (*Settings, error) {
	var s Settings
	if err := env.Parse(&s); err != nil {
		return nil, fmt.Errorf("failed to parse settings: %w", err)
	}
	if s.MaxRetries < 0 {
		return nil, fmt.Errorf("BSDPROC_MAX_RETRIES must not be negative, got %d", s.MaxRetries)
	}
	if s.MaxBufferBytes < 0 {
		return nil, fmt.Errorf("BSDPROC_MAX_BUFFER_BYTES must not be negative, got %d", s.MaxBufferBytes)
	}
	if s.Workers < 1 {
		return nil, fmt.Errorf("BSDPROC_WORKERS must be at least 1, got %d", s.Workers)
	}
	return &s, nil
}

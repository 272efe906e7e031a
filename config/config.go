package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config is the environment-backed configuration for the client.
type Config struct {
	APIBaseURL  string        `env:"PRAGATI_API_URL" envDefault:"http://localhost:8000"`
	HTTPTimeout time.Duration `env:"PRAGATI_HTTP_TIMEOUT" envDefault:"30s"`
	Difficulty  string        `env:"PRAGATI_DIFFICULTY" envDefault:"intermediate"`
	LogLevel    string        `env:"LOG_LEVEL" envDefault:"info"`
}

// DurationPresets are the selectable target durations, in minutes.
var DurationPresets = []int{5, 15, 40}

func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}

// IsDurationPreset reports whether minutes is one of the selectable presets.
func IsDurationPreset(minutes int) bool {
	for _, preset := range DurationPresets {
		if preset == minutes {
			return true
		}
	}
	return false
}

// Package config holds the classifier thresholds. All values have defaults
// and can be overridden by a TOML file or environment variables without code
// changes.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/pelletier/go-toml/v2"
)

// Config carries the analysis thresholds.
type Config struct {
	// SignificantSample is the minimum games for a pick to count as
	// statistically meaningful.
	SignificantSample int `toml:"significant_sample"`

	// HighConfidenceWinRate is the win-rate cutoff for HIGH-tier alerts.
	HighConfidenceWinRate float64 `toml:"high_confidence_winrate"`

	// EarlyGameCutoffSeconds is the boundary between early-ending and
	// standard-length games. 1800s is the usual 3-item power-spike mark.
	EarlyGameCutoffSeconds int `toml:"early_game_cutoff_seconds"`
}

// Default returns the built-in thresholds.
func Default() Config {
	return Config{
		SignificantSample:      3,
		HighConfidenceWinRate:  0.60,
		EarlyGameCutoffSeconds: 1800,
	}
}

// Load reads a TOML config file and applies environment overrides on top of
// the defaults. A missing file is not an error; the defaults are used.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			if err := toml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if raw := os.Getenv("SCOUT_SIGNIFICANT_SAMPLE"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("invalid SCOUT_SIGNIFICANT_SAMPLE %q: %w", raw, err)
		}
		c.SignificantSample = v
	}
	if raw := os.Getenv("SCOUT_HIGH_CONFIDENCE_WINRATE"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return fmt.Errorf("invalid SCOUT_HIGH_CONFIDENCE_WINRATE %q: %w", raw, err)
		}
		c.HighConfidenceWinRate = v
	}
	if raw := os.Getenv("SCOUT_EARLY_GAME_CUTOFF_SECONDS"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("invalid SCOUT_EARLY_GAME_CUTOFF_SECONDS %q: %w", raw, err)
		}
		c.EarlyGameCutoffSeconds = v
	}
	return nil
}

// Validate rejects threshold values that would make the classifiers
// meaningless.
func (c Config) Validate() error {
	if c.SignificantSample < 1 {
		return fmt.Errorf("significant_sample must be >= 1, got %d", c.SignificantSample)
	}
	if c.HighConfidenceWinRate <= 0 || c.HighConfidenceWinRate > 1 {
		return fmt.Errorf("high_confidence_winrate must be in (0, 1], got %g", c.HighConfidenceWinRate)
	}
	if c.EarlyGameCutoffSeconds <= 0 {
		return fmt.Errorf("early_game_cutoff_seconds must be positive, got %d", c.EarlyGameCutoffSeconds)
	}
	return nil
}

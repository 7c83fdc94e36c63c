package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg != Default() {
		t.Errorf("Expected defaults %+v, got %+v", Default(), cfg)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Missing config file must not be an error: %v", err)
	}
	if cfg != Default() {
		t.Errorf("Expected defaults, got %+v", cfg)
	}
}

func TestLoad_TOMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scout.toml")
	content := "significant_sample = 5\nhigh_confidence_winrate = 0.55\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.SignificantSample != 5 {
		t.Errorf("Expected significant_sample 5, got %d", cfg.SignificantSample)
	}
	if cfg.HighConfidenceWinRate != 0.55 {
		t.Errorf("Expected high_confidence_winrate 0.55, got %g", cfg.HighConfidenceWinRate)
	}
	if cfg.EarlyGameCutoffSeconds != 1800 {
		t.Errorf("Unset key must keep its default, got %d", cfg.EarlyGameCutoffSeconds)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scout.toml")
	if err := os.WriteFile(path, []byte("significant_sample = 5\n"), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	t.Setenv("SCOUT_SIGNIFICANT_SAMPLE", "7")
	t.Setenv("SCOUT_EARLY_GAME_CUTOFF_SECONDS", "1500")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.SignificantSample != 7 {
		t.Errorf("Env must win over file, got %d", cfg.SignificantSample)
	}
	if cfg.EarlyGameCutoffSeconds != 1500 {
		t.Errorf("Expected cutoff 1500, got %d", cfg.EarlyGameCutoffSeconds)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{
			name: "non-numeric env",
			env:  map[string]string{"SCOUT_SIGNIFICANT_SAMPLE": "three"},
			want: "SCOUT_SIGNIFICANT_SAMPLE",
		},
		{
			name: "zero sample",
			env:  map[string]string{"SCOUT_SIGNIFICANT_SAMPLE": "0"},
			want: "significant_sample",
		},
		{
			name: "winrate above one",
			env:  map[string]string{"SCOUT_HIGH_CONFIDENCE_WINRATE": "1.5"},
			want: "high_confidence_winrate",
		},
		{
			name: "negative cutoff",
			env:  map[string]string{"SCOUT_EARLY_GAME_CUTOFF_SECONDS": "-5"},
			want: "early_game_cutoff_seconds",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load("")
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Expected error mentioning %s, got %v", tt.want, err)
			}
		})
	}
}

func TestLoad_MalformedTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scout.toml")
	if err := os.WriteFile(path, []byte("significant_sample = ["), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Expected a parse error for malformed TOML")
	}
}

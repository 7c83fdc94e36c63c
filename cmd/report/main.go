package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"scout-analyzer/internal/analysis"
	"scout-analyzer/internal/cache"
	"scout-analyzer/internal/config"
	"scout-analyzer/internal/match"
	"scout-analyzer/internal/report"

	"github.com/joho/godotenv"
)

func main() {
	team := flag.String("team", "", "Team ID or name to scout (required)")
	csvPath := flag.String("csv", "data/sample_matches.csv", "Normalized match CSV")
	cachePath := flag.String("cache", "data/matches.db", "SQLite observation cache")
	configPath := flag.String("config", "scout.toml", "Thresholds config file")
	flag.Parse()

	// Load .env - try multiple locations
	for _, path := range []string{".env", "../.env", "../../.env"} {
		if err := godotenv.Load(path); err == nil {
			break
		}
	}

	if *team == "" {
		fmt.Println("Usage:")
		fmt.Println("  report --team='Team Name' [--csv=data/sample_matches.csv] [--cache=data/matches.db] [--config=scout.toml]")
		fmt.Println()
		fmt.Println("Observations are read from the SQLite cache when present,")
		fmt.Println("falling back to the normalized CSV.")
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	observations, err := loadObservations(*cachePath, *csvPath, *team)
	if err != nil {
		if errors.Is(err, match.ErrNoData) {
			log.Fatalf("Cannot generate report: no match data for %q", *team)
		}
		log.Fatalf("Failed to load match data: %v", err)
	}

	teamObs := match.FilterTeam(observations, *team)
	if len(teamObs) == 0 {
		log.Fatalf("Cannot generate report: no match data for %q", *team)
	}

	rules, err := analysis.LoadRules()
	if err != nil {
		log.Fatalf("Failed to load archetype rules: %v", err)
	}

	agg := analysis.Aggregate(teamObs, cfg)
	alerts := analysis.ClassifyComfortPicks(agg.LaneStats, cfg)
	samples := analysis.BuildCompositions(teamObs)
	archetype := analysis.ClassifyArchetype(samples, rules, cfg)

	recommendations, err := analysis.BuildRecommendations(agg, alerts, archetype)
	if err != nil {
		if errors.Is(err, analysis.ErrInsufficientData) {
			log.Fatalf("Cannot generate report: insufficient data for %q", *team)
		}
		log.Fatalf("Failed to build recommendations: %v", err)
	}

	report.Render(os.Stdout, *team, agg, alerts, archetype, recommendations)
}

// loadObservations prefers the SQLite cache and falls back to the CSV.
func loadObservations(cachePath, csvPath, team string) ([]match.Observation, error) {
	if _, err := os.Stat(cachePath); err == nil {
		store, err := cache.Open(cachePath)
		if err != nil {
			return nil, err
		}
		defer store.Close()

		observations, err := store.ObservationsByTeam(context.Background(), team)
		if err != nil {
			return nil, err
		}
		if len(observations) > 0 {
			return observations, nil
		}
		// Cache exists but has nothing for this team; the CSV may be newer.
	}
	return match.LoadCSV(csvPath)
}

package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"scout-analyzer/internal/analysis"
	"scout-analyzer/internal/cache"
	"scout-analyzer/internal/config"
	"scout-analyzer/internal/db"

	"github.com/joho/godotenv"
)

func main() {
	cachePath := flag.String("cache", "data/matches.db", "SQLite observation cache")
	configPath := flag.String("config", "scout.toml", "Thresholds config file")
	flag.Parse()

	for _, path := range []string{".env", "../.env", "../../.env"} {
		if err := godotenv.Load(path); err == nil {
			fmt.Printf("Loaded .env from: %s\n", path)
			break
		}
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	store, err := cache.Open(*cachePath)
	if err != nil {
		log.Fatalf("Failed to open cache: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	teams, err := store.Teams(ctx)
	if err != nil {
		log.Fatalf("Failed to list teams: %v", err)
	}
	if len(teams) == 0 {
		log.Fatal("Observation cache is empty. Run the ingest step first.")
	}

	database, err := db.New(ctx)
	if err != nil {
		log.Fatalf("Failed to connect to Postgres: %v", err)
	}
	defer database.Close()

	if err := database.CreateTables(ctx); err != nil {
		log.Fatalf("Failed to create tables: %v", err)
	}

	for _, team := range teams {
		observations, err := store.ObservationsByTeam(ctx, team)
		if err != nil {
			log.Fatalf("Failed to load team %s: %v", team, err)
		}

		agg := analysis.Aggregate(observations, cfg)
		if err := database.ReplaceTeamAggregates(ctx, team, agg); err != nil {
			log.Fatalf("Failed to publish team %s: %v", team, err)
		}
		fmt.Printf("Published %s: %d matches across %d lanes\n", team, agg.Matches, len(agg.LaneStats))
	}

	fmt.Println("Publish complete")
}

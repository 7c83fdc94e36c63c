package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"scout-analyzer/internal/cache"
	"scout-analyzer/internal/grid"
	"scout-analyzer/internal/match"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	rawDir := flag.String("raw-dir", "data/raw", "Directory of raw end-state files")
	csvPath := flag.String("csv", "data/sample_matches.csv", "Normalized CSV output")
	cachePath := flag.String("cache", "data/matches.db", "SQLite observation cache")
	flag.Parse()

	for _, path := range []string{".env", "../.env", "../../.env"} {
		if err := godotenv.Load(path); err == nil {
			fmt.Printf("Loaded .env from: %s\n", path)
			break
		}
	}

	files, err := filepath.Glob(filepath.Join(*rawDir, "series_*.json"))
	if err != nil {
		log.Fatalf("Failed to scan raw directory: %v", err)
	}
	if len(files) == 0 {
		log.Fatal("No raw end-state files found. Run the fetcher first.")
	}
	fmt.Printf("Found %d raw series files\n", len(files))

	var observations []match.Observation
	for i, path := range files {
		fmt.Printf("[%d/%d] Parsing %s\n", i+1, len(files), filepath.Base(path))

		data, err := os.ReadFile(path)
		if err != nil {
			logrus.WithError(err).WithField("file", path).Warn("skipping unreadable file")
			continue
		}

		seriesID := strings.TrimSuffix(strings.TrimPrefix(filepath.Base(path), "series_"), ".json")
		obs, err := grid.ParseEndState(seriesID, data)
		if err != nil {
			logrus.WithError(err).WithField("file", path).Warn("skipping unparseable end state")
			continue
		}
		fmt.Printf("  %d observations\n", len(obs))
		observations = append(observations, obs...)
	}

	if len(observations) == 0 {
		log.Fatal("No valid observations parsed from raw files")
	}

	if err := match.WriteCSV(*csvPath, observations); err != nil {
		log.Fatalf("Failed to write CSV: %v", err)
	}
	fmt.Printf("Wrote %d observations to %s\n", len(observations), *csvPath)

	store, err := cache.Open(*cachePath)
	if err != nil {
		log.Fatalf("Failed to open cache: %v", err)
	}
	defer store.Close()

	if err := store.Upsert(context.Background(), observations); err != nil {
		log.Fatalf("Failed to update cache: %v", err)
	}
	fmt.Printf("Updated observation cache at %s\n", *cachePath)
}

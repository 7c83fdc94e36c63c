package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"scout-analyzer/internal/grid"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/joho/godotenv"
)

const expectedSeries = 10000

func main() {
	seriesFile := flag.String("series", "data/series_ids.json", "Series cache file from the discover step")
	rawDir := flag.String("raw-dir", "data/raw", "Directory for raw end-state files")
	limit := flag.Int("limit", 5, "Maximum series to download this run")
	flag.Parse()

	for _, path := range []string{".env", "../.env", "../../.env"} {
		if err := godotenv.Load(path); err == nil {
			fmt.Printf("Loaded .env from: %s\n", path)
			break
		}
	}

	series, err := loadSeries(*seriesFile)
	if err != nil {
		log.Fatalf("Failed to load series cache: %v", err)
	}
	if len(series) == 0 {
		log.Fatal("No series to fetch. Run the discover step first.")
	}

	if err := os.MkdirAll(*rawDir, 0755); err != nil {
		log.Fatalf("Failed to create raw directory: %v", err)
	}

	// Seed the dedup filter with already-fetched series so reruns only
	// download what is missing.
	fetched := bloom.NewWithEstimates(expectedSeries, 0.001)
	existing, err := filepath.Glob(filepath.Join(*rawDir, "series_*.json"))
	if err != nil {
		log.Fatalf("Failed to scan raw directory: %v", err)
	}
	for _, path := range existing {
		id := strings.TrimSuffix(strings.TrimPrefix(filepath.Base(path), "series_"), ".json")
		fetched.AddString(id)
	}
	fmt.Printf("Raw cache holds %d series\n", len(existing))

	client, err := grid.NewClient()
	if err != nil {
		log.Fatalf("Failed to create GRID client: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\n[Shutdown] Gracefully shutting down...")
		cancel()
	}()

	downloaded := 0
	for _, s := range series {
		if downloaded >= *limit {
			break
		}
		if fetched.TestString(s.ID) {
			continue
		}

		fmt.Printf("Downloading end-state for series %s (%s)...\n", s.ID, s.Tournament)
		data, err := client.DownloadEndState(ctx, s.ID)
		if err != nil {
			if ctx.Err() != nil {
				break
			}
			log.Printf("  Failed to download series %s: %v", s.ID, err)
			continue
		}

		outPath := filepath.Join(*rawDir, fmt.Sprintf("series_%s.json", s.ID))
		if err := os.WriteFile(outPath, data, 0644); err != nil {
			log.Printf("  Failed to save series %s: %v", s.ID, err)
			continue
		}
		fetched.AddString(s.ID)
		downloaded++
		fmt.Printf("  Saved to %s\n", outPath)
	}

	fmt.Printf("Fetch complete: %d new series\n", downloaded)
}

func loadSeries(path string) ([]grid.Series, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var series []grid.Series
	if err := json.Unmarshal(data, &series); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return series, nil
}

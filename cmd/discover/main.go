package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"scout-analyzer/internal/grid"

	"github.com/joho/godotenv"
)

func main() {
	limit := flag.Int("limit", 15, "Number of recent series to discover")
	outPath := flag.String("out", "data/series_ids.json", "Series cache file")
	flag.Parse()

	for _, path := range []string{".env", "../.env", "../../.env"} {
		if err := godotenv.Load(path); err == nil {
			fmt.Printf("Loaded .env from: %s\n", path)
			break
		}
	}

	client, err := grid.NewClient()
	if err != nil {
		log.Fatalf("Failed to create GRID client: %v", err)
	}

	fmt.Println("Querying GRID Central Data API for recent series...")
	series, err := client.DiscoverSeries(context.Background(), *limit)
	if err != nil {
		log.Fatalf("Series discovery failed: %v", err)
	}
	fmt.Printf("Discovered %d series\n", len(series))

	if err := os.MkdirAll(filepath.Dir(*outPath), 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}
	f, err := os.Create(*outPath)
	if err != nil {
		log.Fatalf("Failed to create %s: %v", *outPath, err)
	}
	defer f.Close()

	encoder := json.NewEncoder(f)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(series); err != nil {
		log.Fatalf("Failed to write series cache: %v", err)
	}

	fmt.Printf("Saved series IDs to %s\n", *outPath)
	for _, s := range series {
		fmt.Printf("  %s  %s\n", s.ID, s.Tournament)
	}
}

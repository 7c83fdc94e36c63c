package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

func main() {
	team := flag.String("team", "", "Team ID or name to scout (required)")
	limit := flag.Int("limit", 5, "Series to download")
	skipFetch := flag.Bool("report-only", false, "Skip discovery and fetching, only ingest and report")
	flag.Parse()

	for _, path := range []string{".env", "../.env", "../../.env"} {
		if err := godotenv.Load(path); err == nil {
			fmt.Printf("Loaded .env from: %s\n", path)
			break
		}
	}

	if *team == "" {
		log.Fatal("--team is required")
	}

	startTime := time.Now()

	if !*skipFetch {
		fmt.Println("\n========================================")
		fmt.Println("STEP 1: DISCOVERING SERIES")
		fmt.Println("========================================")
		if err := runCommand("go", "run", "./cmd/discover"); err != nil {
			log.Fatalf("Discovery failed: %v", err)
		}

		fmt.Println("\n========================================")
		fmt.Println("STEP 2: FETCHING END STATES")
		fmt.Println("========================================")
		if err := runCommand("go", "run", "./cmd/fetcher", fmt.Sprintf("--limit=%d", *limit)); err != nil {
			log.Fatalf("Fetch failed: %v", err)
		}
	}

	fmt.Println("\n========================================")
	fmt.Println("STEP 3: INGESTING MATCH DATA")
	fmt.Println("========================================")
	if err := runCommand("go", "run", "./cmd/ingest"); err != nil {
		log.Fatalf("Ingest failed: %v", err)
	}

	fmt.Println("\n========================================")
	fmt.Println("STEP 4: GENERATING REPORT")
	fmt.Println("========================================")
	if err := runCommand("go", "run", "./cmd/report", "--team="+*team); err != nil {
		log.Fatalf("Report failed: %v", err)
	}

	fmt.Println("\n========================================")
	fmt.Println("PIPELINE COMPLETE")
	fmt.Println("========================================")
	fmt.Printf("Total time: %s\n", time.Since(startTime).Round(time.Second))
}

func runCommand(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin

	fmt.Printf("Running: %s %s\n\n", name, strings.Join(args, " "))
	return cmd.Run()
}

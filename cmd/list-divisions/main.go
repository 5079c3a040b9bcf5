package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/okvist/crewdesk/internal/diag"
	"github.com/okvist/crewdesk/internal/services"
)

func main() {
	_ = godotenv.Load()

	base := "http://localhost:3000"
	if v := os.Getenv("VERCEL_URL"); v != "" {
		if !strings.HasPrefix(v, "http") {
			v = "https://" + v
		}
		base = strings.TrimRight(v, "/")
	}

	rows, err := diag.FetchAPIEstimates(context.Background(), base)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	summary := services.SummarizeDivisions(rows)

	fmt.Printf("=== Divisions across %d estimates (%s) ===\n", len(rows), base)
	for _, d := range summary {
		fmt.Printf("  %-24s %4d  (%.1f%%)\n", d.Division, d.Count, d.Percent)
	}
}

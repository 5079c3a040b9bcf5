package main

import (
	"context"
	"fmt"
	"os"

	"github.com/okvist/crewdesk/config"
	"github.com/okvist/crewdesk/internal/diag"
	"github.com/okvist/crewdesk/internal/supabase"
)

// Estimate numbers reported missing from the frontend dropdown; the
// script tells us whether each is absent or just filtered out.
var wanted = []string{
	"EST-2024-0117",
	"EST-2024-0142",
	"EST-2024-0163",
	"EST-2025-0008",
	"EST-2025-0031",
}

func main() {
	cfg, err := config.LoadScript()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	client, err := supabase.New(cfg.SupabaseURL, cfg.APIKey)
	if err != nil {
		fmt.Fprintf(os.Stderr, "client error: %v\n", err)
		os.Exit(1)
	}

	results, err := diag.CrossCheck(context.Background(), client, wanted)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("=== Estimate membership check ===")
	for _, r := range results {
		switch {
		case r.InActive:
			fmt.Printf("  %s: OK (division %q)\n", r.Number, r.Division)
		case r.Exists:
			fmt.Printf("  %s: MISSING from active set, exists with status %q (division %q)\n",
				r.Number, r.Status, r.Division)
		default:
			fmt.Printf("  %s: NOT FOUND in estimates table\n", r.Number)
		}
	}
}

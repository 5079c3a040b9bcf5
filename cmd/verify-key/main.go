package main

import (
	"fmt"
	"os"

	"github.com/okvist/crewdesk/internal/diag"
)

func main() {
	if len(os.Args) < 2 || os.Args[1] == "" {
		fmt.Fprintln(os.Stderr, "usage: verify-key <supabase-jwt>")
		os.Exit(1)
	}

	info, err := diag.DescribeKey(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("=== Supabase key check ===")
	fmt.Printf("Project ref: %s\n", info.ProjectRef)
	fmt.Printf("Role:        %s\n", info.Role)
	if !info.ExpiresAt.IsZero() {
		fmt.Printf("Expires:     %s\n", info.ExpiresAt.Format("2006-01-02 15:04:05 MST"))
	}

	switch {
	case info.Privileged():
		fmt.Println("Type:        service role (privileged)")
		fmt.Println("WARNING: this key bypasses row level security. Keep it server-side only.")
	case info.Role == diag.RoleAnon:
		fmt.Println("Type:        anonymous (safe for browser use)")
	default:
		fmt.Printf("Type:        custom role %q\n", info.Role)
	}
}

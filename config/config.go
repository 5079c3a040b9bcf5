package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	BackendSupabase = "supabase"
	BackendGCS      = "gcs"
)

// DefaultAllowedOrigins is the fixed set of origins the API will echo
// back in CORS responses: local dev servers plus the deployed frontends.
var DefaultAllowedOrigins = []string{
	"http://localhost:3000",
	"http://localhost:5173",
	"https://crewdesk.vercel.app",
	"https://crewdesk-git-main-okvist.vercel.app",
	"https://crewdesk-okvist.vercel.app",
}

// Config holds everything the server needs, resolved once at startup.
type Config struct {
	SupabaseURL    string
	ServiceKey     string
	Port           string
	AllowedOrigins []string
	StorageBackend string
	GCSBucket      string
}

// Load reads configuration from the process environment, after merging
// in a local .env file if one exists (existing process values win).
// It fails fast when the required Supabase credentials are missing.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		SupabaseURL:    strings.TrimRight(os.Getenv("SUPABASE_URL"), "/"),
		ServiceKey:     os.Getenv("SUPABASE_SERVICE_ROLE_KEY"),
		Port:           os.Getenv("PORT"),
		AllowedOrigins: originsFromEnv(),
		StorageBackend: os.Getenv("STORAGE_BACKEND"),
		GCSBucket:      os.Getenv("GCS_BUCKET"),
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.StorageBackend == "" {
		cfg.StorageBackend = BackendSupabase
	}

	var missing []string
	if cfg.SupabaseURL == "" {
		missing = append(missing, "SUPABASE_URL")
	}
	if cfg.ServiceKey == "" {
		missing = append(missing, "SUPABASE_SERVICE_ROLE_KEY")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%s must be set", strings.Join(missing, " and "))
	}

	if cfg.StorageBackend == BackendGCS && cfg.GCSBucket == "" {
		return nil, fmt.Errorf("GCS_BUCKET must be set when STORAGE_BACKEND=gcs")
	}

	return cfg, nil
}

// ScriptConfig is the diagnostic-script variant of Config. Scripts run
// outside the hosted platform, so they also accept the VITE_-prefixed
// variables the frontend build uses.
type ScriptConfig struct {
	SupabaseURL string
	APIKey      string
}

// LoadScript resolves credentials for the operator scripts. The service
// key is preferred; the anon key is an accepted fallback since the
// scripts only read data.
func LoadScript() (*ScriptConfig, error) {
	_ = godotenv.Load()

	url := os.Getenv("SUPABASE_URL")
	if url == "" {
		url = os.Getenv("VITE_SUPABASE_URL")
	}
	key := os.Getenv("SUPABASE_SERVICE_ROLE_KEY")
	if key == "" {
		key = os.Getenv("VITE_SUPABASE_ANON_KEY")
	}

	var missing []string
	if url == "" {
		missing = append(missing, "SUPABASE_URL (or VITE_SUPABASE_URL)")
	}
	if key == "" {
		missing = append(missing, "SUPABASE_SERVICE_ROLE_KEY (or VITE_SUPABASE_ANON_KEY)")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%s must be set", strings.Join(missing, " and "))
	}

	return &ScriptConfig{SupabaseURL: strings.TrimRight(url, "/"), APIKey: key}, nil
}

func originsFromEnv() []string {
	raw := os.Getenv("ALLOWED_ORIGINS")
	if raw == "" {
		return DefaultAllowedOrigins
	}
	var out []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, strings.TrimRight(o, "/"))
		}
	}
	if len(out) == 0 {
		return DefaultAllowedOrigins
	}
	return out
}

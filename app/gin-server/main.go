package main

import (
	"context"
	"log"

	"github.com/okvist/crewdesk/config"
	"github.com/okvist/crewdesk/internal/api/handlers"
	"github.com/okvist/crewdesk/internal/api/routes"
	"github.com/okvist/crewdesk/internal/logger"
	"github.com/okvist/crewdesk/internal/services"
	"github.com/okvist/crewdesk/internal/storage"
	"github.com/okvist/crewdesk/internal/supabase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	l := logger.New()

	client, err := supabase.New(cfg.SupabaseURL, cfg.ServiceKey)
	if err != nil {
		log.Fatalf("supabase init error: %v", err)
	}

	var signer storage.Signer
	switch cfg.StorageBackend {
	case config.BackendGCS:
		g, err := storage.NewGCSSigner(context.Background(), cfg.GCSBucket)
		if err != nil {
			log.Fatalf("gcs init error: %v", err)
		}
		defer g.Close()
		signer = g
	default:
		signer = storage.NewSupabaseSigner(client)
	}

	r := routes.New(routes.Deps{
		Storage:        handlers.NewStorageHandler(services.NewStorageService(signer)),
		Estimates:      handlers.NewEstimatesHandler(services.NewEstimateService(client)),
		AllowedOrigins: cfg.AllowedOrigins,
		Logger:         l,
		StaticDir:      "web/static",
	})

	l.WithField("port", cfg.Port).Info("server starting")
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

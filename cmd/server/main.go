package main

import (
	"fmt"
	"log"

	"clausegenie/internal/analyzer/gemini"
	"clausegenie/internal/config"
	"clausegenie/internal/handler"
	"clausegenie/internal/port"
	"clausegenie/internal/repository/postgres"
	"clausegenie/internal/router"
	"clausegenie/internal/service"
	"clausegenie/internal/storage/noop"
	s3storage "clausegenie/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	historyRepo := postgres.NewHistoryRepo(db)

	// Initialize storage; archival is best-effort and optional
	var store port.ObjectStorage
	if cfg.Archive.Enabled() {
		store, err = s3storage.NewS3Client(&cfg.Archive)
		if err != nil {
			return fmt.Errorf("failed to initialize S3 client: %w", err)
		}
	} else {
		log.Println("document archival disabled; no bucket configured")
		store = noop.NewStorage()
	}

	// Initialize analyzer and services
	llm := gemini.NewClient(&cfg.Analyzer)
	sessionSvc := service.NewSessionService(llm, historyRepo, store, cfg.Archive.Bucket)

	// Initialize handlers
	sessionH := handler.NewSessionHandler(sessionSvc)
	historyH := handler.NewHistoryHandler(sessionSvc)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r := router.Setup(cfg, sessionH, historyH, healthH)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}

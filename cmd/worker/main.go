package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"cloversync/internal/annotations"
	"cloversync/internal/auditlog"
	"cloversync/internal/config"
	"cloversync/internal/database"
	"cloversync/internal/logger"
	"cloversync/internal/metrics"
	"cloversync/internal/services/clover"
	"cloversync/internal/sync"
	"cloversync/internal/worker"
	"cloversync/internal/worker/processors"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Initialize logger
	logger := logger.NewWithFile(cfg.LogLevel, cfg.LogFile)
	defer logger.Sync()

	// Initialize database
	db, err := database.New(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Initialize audit log
	audit, err := auditlog.New(cfg.AuditLogFile, cfg.DebugMode, cfg.AuditLogDB)
	if err != nil {
		logger.Fatal("Failed to initialize audit log: %v", err)
	}
	defer audit.Close()

	// Sync workflow
	client := clover.NewClient(cfg.CloverAccessToken, cfg.CloverMerchantID, cfg.CloverSandbox, logger)
	store := annotations.NewStore(db.DB)
	orchestrator := sync.NewOrchestrator(sync.Config{
		ClientID:     cfg.CloverClientID,
		ClientSecret: cfg.CloverClientSecret,
		AccessToken:  cfg.CloverAccessToken,
		MerchantID:   cfg.CloverMerchantID,
		AutoPrint:    cfg.AutoPrint,
		RoundCents:   cfg.RoundCents,
	}, client, store, audit)
	syncer := sync.NewIdempotent(orchestrator, store, audit)

	registry := metrics.NewRegistry()
	processor := processors.NewSyncProcessor(db.DB, logger, syncer, registry)

	// Initialize worker
	w := worker.New(cfg, logger, processor)

	// Start worker
	logger.Info("Starting worker...")
	go w.Start()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down worker...")
	w.Stop()
}

package main

import (
	"log"

	"cloversync/internal/annotations"
	"cloversync/internal/api"
	"cloversync/internal/auditlog"
	"cloversync/internal/config"
	"cloversync/internal/database"
	"cloversync/internal/events"
	"cloversync/internal/logger"
	"cloversync/internal/metrics"
	"cloversync/internal/services/clover"
	"cloversync/internal/sync"
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

	// Kafka producer for webhook intake
	producer := events.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic, logger)
	defer producer.Close()

	// Sync workflow for the manual sync endpoint
	syncer := buildSyncer(cfg, db, audit, logger)

	registry := metrics.NewRegistry()

	// Initialize API server
	server := api.New(cfg, logger, db, audit, producer, syncer, registry)

	// Start server
	logger.Info("Starting API server on port " + cfg.APIPort)
	if err := server.Start(); err != nil {
		logger.Fatal("Failed to start server: %v", err)
	}
}

func buildSyncer(cfg *config.Config, db *database.Database, audit *auditlog.Log, logger *logger.Logger) sync.OrderSyncer {
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

	return sync.NewIdempotent(orchestrator, store, audit)
}

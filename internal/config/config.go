package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	// Database
	DatabaseURL string `validate:"required"`

	// Kafka
	KafkaBrokers string `validate:"required"`
	KafkaTopic   string `validate:"required"`
	KafkaGroupID string `validate:"required"`

	// API Configuration
	APIPort string `validate:"required"`
	APIHost string `validate:"required"`

	// Clover
	CloverClientID     string
	CloverClientSecret string
	CloverAccessToken  string
	CloverMerchantID   string
	CloverSandbox      bool

	// Sync behavior
	AutoPrint  bool
	DebugMode  bool
	RoundCents bool

	// Audit log
	AuditLogFile string `validate:"required"`
	AuditLogDB   string

	// Environment
	Env      string `validate:"oneof=development staging production"`
	LogLevel string `validate:"oneof=debug info warn error"`
	LogFile  string
}

func Load() (*Config, error) {
	// Load .env file
	godotenv.Load()

	cfg := &Config{
		DatabaseURL:        getEnv("DATABASE_URL", "sqlite://cloversync.db"),
		KafkaBrokers:       getEnv("KAFKA_BROKERS", "localhost:9092"),
		KafkaTopic:         getEnv("KAFKA_TOPIC", "order-events"),
		KafkaGroupID:       getEnv("KAFKA_GROUP_ID", "cloversync-worker"),
		APIPort:            getEnv("API_PORT", "8080"),
		APIHost:            getEnv("API_HOST", "0.0.0.0"),
		CloverClientID:     getEnv("CLOVER_CLIENT_ID", ""),
		CloverClientSecret: getEnv("CLOVER_CLIENT_SECRET", ""),
		CloverAccessToken:  getEnv("CLOVER_ACCESS_TOKEN", ""),
		CloverMerchantID:   getEnv("CLOVER_MERCHANT_ID", ""),
		CloverSandbox:      getEnvAsBool("CLOVER_SANDBOX", false),
		AutoPrint:          getEnvAsBool("CLOVER_AUTO_PRINT", false),
		DebugMode:          getEnvAsBool("CLOVER_DEBUG", false),
		// Cent conversion truncates toward zero by default; flip this only
		// once the POS-side reconciliation is ready for rounded amounts.
		RoundCents:   getEnvAsBool("CLOVER_ROUND_CENTS", false),
		AuditLogFile: getEnv("AUDIT_LOG_FILE", "logs/cloversync-audit.log"),
		AuditLogDB:   getEnv("AUDIT_LOG_DB", ""),
		Env:          getEnv("ENV", "development"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		LogFile:      getEnv("LOG_FILE", ""),
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

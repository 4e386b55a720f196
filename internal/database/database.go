package database

import (
	"fmt"
	"strings"

	"cloversync/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Database struct {
	DB *gorm.DB
}

func New(databaseURL string) (*Database, error) {
	var db *gorm.DB
	var err error

	if strings.HasPrefix(databaseURL, "sqlite://") {
		// SQLite for development
		dbPath := strings.TrimPrefix(databaseURL, "sqlite://")
		db, err = gorm.Open(sqlite.Open(dbPath), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Warn),
		})
	} else {
		// PostgreSQL for production
		db, err = gorm.Open(postgres.Open(databaseURL), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Warn),
		})
	}

	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Create tables manually with raw SQL
	createTablesSQL := `
	CREATE TABLE IF NOT EXISTS sync_records (
		id UUID PRIMARY KEY,
		order_id TEXT NOT NULL,
		order_number TEXT,
		status TEXT DEFAULT 'PENDING',
		clover_order_id TEXT,
		error TEXT,
		printed BOOLEAN DEFAULT false,
		payload TEXT,
		created_at TIMESTAMPTZ DEFAULT NOW(),
		updated_at TIMESTAMPTZ DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_sync_records_order_id ON sync_records (order_id);

	CREATE TABLE IF NOT EXISTS order_meta (
		id UUID PRIMARY KEY,
		order_id TEXT NOT NULL,
		meta_key TEXT NOT NULL,
		meta_value TEXT,
		created_at TIMESTAMPTZ DEFAULT NOW(),
		updated_at TIMESTAMPTZ DEFAULT NOW(),
		UNIQUE (order_id, meta_key)
	);

	CREATE TABLE IF NOT EXISTS order_notes (
		id UUID PRIMARY KEY,
		order_id TEXT NOT NULL,
		note TEXT NOT NULL,
		created_at TIMESTAMPTZ DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_order_notes_order_id ON order_notes (order_id);

	CREATE TABLE IF NOT EXISTS connections (
		id UUID PRIMARY KEY,
		merchant_id TEXT UNIQUE NOT NULL,
		client_id TEXT NOT NULL,
		access_token TEXT NOT NULL,
		sandbox BOOLEAN DEFAULT false,
		created_at TIMESTAMPTZ DEFAULT NOW(),
		updated_at TIMESTAMPTZ DEFAULT NOW()
	);
	`

	if strings.HasPrefix(databaseURL, "sqlite://") {
		// SQLite has no TIMESTAMPTZ/NOW(); let gorm manage the schema there.
		err = db.AutoMigrate(tables()...)
	} else {
		err = db.Exec(createTablesSQL).Error
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return &Database{DB: db}, nil
}

func tables() []interface{} {
	return []interface{}{
		&models.SyncRecord{},
		&models.OrderMeta{},
		&models.OrderNote{},
		&models.Connection{},
	}
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

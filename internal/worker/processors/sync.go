package processors

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"cloversync/internal/events"
	"cloversync/internal/logger"
	"cloversync/internal/metrics"
	"cloversync/internal/models"
	"cloversync/internal/sync"

	"gorm.io/gorm"
)

// SyncProcessor replays stored order payloads through the sync workflow.
type SyncProcessor struct {
	db      *gorm.DB
	logger  *logger.Logger
	syncer  sync.OrderSyncer
	metrics *metrics.Registry
}

func NewSyncProcessor(db *gorm.DB, logger *logger.Logger, syncer sync.OrderSyncer, metrics *metrics.Registry) *SyncProcessor {
	return &SyncProcessor{
		db:      db,
		logger:  logger,
		syncer:  syncer,
		metrics: metrics,
	}
}

func (p *SyncProcessor) Process(ctx context.Context, event events.Event) error {
	if event.Type != events.TypeOrderSync {
		p.logger.Debug("Skipping event of type %s", event.Type)
		return nil
	}

	var record models.SyncRecord
	err := p.db.WithContext(ctx).First(&record, "id = ?", event.RecordID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("sync record %s not found", event.RecordID)
	}
	if err != nil {
		return fmt.Errorf("failed to load sync record %s: %w", event.RecordID, err)
	}

	if record.Status == models.SyncStatusSynced {
		p.logger.Debug("Sync record %s already completed, skipping", record.ID)
		return nil
	}

	var order models.SourceOrder
	if err := json.Unmarshal([]byte(record.Payload), &order); err != nil {
		return fmt.Errorf("failed to decode stored order for record %s: %w", record.ID, err)
	}

	start := time.Now()
	result := p.syncer.SyncOrder(ctx, &order)
	p.metrics.SyncLatencySec.Observe(time.Since(start).Seconds())

	if result.Succeeded() {
		record.Status = models.SyncStatusSynced
		record.CloverOrderID = result.CloverOrderID
		record.Printed = result.Printed
		record.Error = ""
		p.metrics.OrdersSynced.Inc()
		if result.PrintFailed {
			p.metrics.PrintsFailed.Inc()
		}
	} else {
		record.Status = models.SyncStatusFailed
		record.Error = result.Err.Error()
		p.metrics.OrdersFailed.Inc()
	}

	if err := p.db.WithContext(ctx).Save(&record).Error; err != nil {
		return fmt.Errorf("failed to update sync record %s: %w", record.ID, err)
	}

	return nil
}

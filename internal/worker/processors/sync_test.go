package processors_test

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"cloversync/internal/database"
	"cloversync/internal/events"
	"cloversync/internal/logger"
	"cloversync/internal/metrics"
	"cloversync/internal/models"
	"cloversync/internal/sync"
	"cloversync/internal/worker/processors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeSyncer struct {
	calls  int
	result sync.Result
}

func (f *fakeSyncer) SyncOrder(ctx context.Context, order *models.SourceOrder) sync.Result {
	f.calls++
	return f.result
}

func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := database.New("sqlite://" + dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return db.DB
}

func seedRecord(t *testing.T, db *gorm.DB, status string) models.SyncRecord {
	t.Helper()

	payload, err := json.Marshal(&models.SourceOrder{ID: "1042", OrderNumber: "1042"})
	require.NoError(t, err)

	record := models.SyncRecord{
		ID:          uuid.NewString(),
		OrderID:     "1042",
		OrderNumber: "1042",
		Status:      status,
		Payload:     string(payload),
	}
	require.NoError(t, db.Create(&record).Error)
	return record
}

func orderEvent(recordID string) events.Event {
	return events.Event{
		Type:      events.TypeOrderSync,
		OrderID:   "1042",
		RecordID:  recordID,
		Timestamp: time.Now(),
	}
}

func TestProcess_SuccessMarksRecordSynced(t *testing.T) {
	db := testDB(t)
	record := seedRecord(t, db, models.SyncStatusPending)
	syncer := &fakeSyncer{result: sync.Result{CloverOrderID: "CLV42", Printed: true}}
	processor := processors.NewSyncProcessor(db, logger.New("error"), syncer, metrics.NewRegistry())

	require.NoError(t, processor.Process(context.Background(), orderEvent(record.ID)))
	require.Equal(t, 1, syncer.calls)

	var updated models.SyncRecord
	require.NoError(t, db.First(&updated, "id = ?", record.ID).Error)
	require.Equal(t, models.SyncStatusSynced, updated.Status)
	require.Equal(t, "CLV42", updated.CloverOrderID)
	require.True(t, updated.Printed)
	require.Empty(t, updated.Error)
}

func TestProcess_FailureMarksRecordFailed(t *testing.T) {
	db := testDB(t)
	record := seedRecord(t, db, models.SyncStatusPending)
	syncer := &fakeSyncer{result: sync.Result{Err: errors.New("create clover order: boom")}}
	processor := processors.NewSyncProcessor(db, logger.New("error"), syncer, metrics.NewRegistry())

	require.NoError(t, processor.Process(context.Background(), orderEvent(record.ID)))

	var updated models.SyncRecord
	require.NoError(t, db.First(&updated, "id = ?", record.ID).Error)
	require.Equal(t, models.SyncStatusFailed, updated.Status)
	require.Equal(t, "create clover order: boom", updated.Error)
}

func TestProcess_SkipsAlreadySyncedRecord(t *testing.T) {
	db := testDB(t)
	record := seedRecord(t, db, models.SyncStatusSynced)
	syncer := &fakeSyncer{}
	processor := processors.NewSyncProcessor(db, logger.New("error"), syncer, metrics.NewRegistry())

	require.NoError(t, processor.Process(context.Background(), orderEvent(record.ID)))
	require.Zero(t, syncer.calls)
}

func TestProcess_SkipsUnknownEventType(t *testing.T) {
	db := testDB(t)
	syncer := &fakeSyncer{}
	processor := processors.NewSyncProcessor(db, logger.New("error"), syncer, metrics.NewRegistry())

	require.NoError(t, processor.Process(context.Background(), events.Event{Type: "product.update"}))
	require.Zero(t, syncer.calls)
}

func TestProcess_MissingRecordReturnsError(t *testing.T) {
	db := testDB(t)
	processor := processors.NewSyncProcessor(db, logger.New("error"), &fakeSyncer{}, metrics.NewRegistry())

	err := processor.Process(context.Background(), orderEvent(uuid.NewString()))
	require.Error(t, err)
	require.Contains(t, err.Error(), "not found")
}

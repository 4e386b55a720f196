package annotations

import (
	"context"
	"errors"
	"fmt"

	"cloversync/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Store persists order annotations (metadata and notes) the way the
// WooCommerce side keeps them on the order record.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// RecordAnnotation upserts a metadata value keyed by (order, key).
func (s *Store) RecordAnnotation(ctx context.Context, orderID, key, value string) error {
	var meta models.OrderMeta
	err := s.db.WithContext(ctx).
		Where("order_id = ? AND meta_key = ?", orderID, key).
		First(&meta).Error

	switch {
	case err == nil:
		meta.MetaValue = value
		if err := s.db.WithContext(ctx).Save(&meta).Error; err != nil {
			return fmt.Errorf("failed to update order meta: %w", err)
		}
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		meta = models.OrderMeta{
			ID:        uuid.NewString(),
			OrderID:   orderID,
			MetaKey:   key,
			MetaValue: value,
		}
		if err := s.db.WithContext(ctx).Create(&meta).Error; err != nil {
			return fmt.Errorf("failed to create order meta: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("failed to look up order meta: %w", err)
	}
}

// AddNote appends a human-readable note to the order.
func (s *Store) AddNote(ctx context.Context, orderID, note string) error {
	row := models.OrderNote{
		ID:      uuid.NewString(),
		OrderID: orderID,
		Note:    note,
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("failed to add order note: %w", err)
	}
	return nil
}

// LookupAnnotation returns the stored value and whether it exists.
func (s *Store) LookupAnnotation(ctx context.Context, orderID, key string) (string, bool, error) {
	var meta models.OrderMeta
	err := s.db.WithContext(ctx).
		Where("order_id = ? AND meta_key = ?", orderID, key).
		First(&meta).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to look up order meta: %w", err)
	}
	return meta.MetaValue, true, nil
}

// NotesFor lists the notes recorded for an order, newest first.
func (s *Store) NotesFor(ctx context.Context, orderID string) ([]models.OrderNote, error) {
	var notes []models.OrderNote
	err := s.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at DESC").
		Find(&notes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list order notes: %w", err)
	}
	return notes, nil
}

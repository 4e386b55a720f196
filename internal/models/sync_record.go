package models

import (
	"time"
)

const (
	SyncStatusPending = "PENDING"
	SyncStatusSynced  = "SYNCED"
	SyncStatusFailed  = "FAILED"
)

// SyncRecord tracks one sync attempt for a source order, including the raw
// order payload so the worker can replay it without calling back into the
// store.
type SyncRecord struct {
	ID            string    `json:"id" gorm:"type:uuid;primary_key"`
	OrderID       string    `json:"order_id" gorm:"not null;index"`
	OrderNumber   string    `json:"order_number"`
	Status        string    `json:"status" gorm:"default:PENDING"`
	CloverOrderID string    `json:"clover_order_id"`
	Error         string    `json:"error"`
	Printed       bool      `json:"printed"`
	Payload       string    `json:"-" gorm:"type:jsonb"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (SyncRecord) TableName() string {
	return "sync_records"
}

// OrderMeta mirrors the order metadata the WooCommerce side keeps, keyed by
// (order, meta key). The Clover order id annotation lives here.
type OrderMeta struct {
	ID        string    `json:"id" gorm:"type:uuid;primary_key"`
	OrderID   string    `json:"order_id" gorm:"not null;index"`
	MetaKey   string    `json:"meta_key" gorm:"not null"`
	MetaValue string    `json:"meta_value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (OrderMeta) TableName() string {
	return "order_meta"
}

// OrderNote is a human-readable note attached to an order, like the notes
// shown on the WooCommerce order screen.
type OrderNote struct {
	ID        string    `json:"id" gorm:"type:uuid;primary_key"`
	OrderID   string    `json:"order_id" gorm:"not null;index"`
	Note      string    `json:"note" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
}

func (OrderNote) TableName() string {
	return "order_notes"
}

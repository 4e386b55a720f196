package events

import "time"

const TypeOrderSync = "order.sync"

// Event is the message exchanged between the webhook intake and the sync
// worker.
type Event struct {
	Type      string    `json:"type"`
	OrderID   string    `json:"order_id"`
	RecordID  string    `json:"record_id"`
	Timestamp time.Time `json:"timestamp"`
}

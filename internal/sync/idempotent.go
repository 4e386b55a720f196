package sync

import (
	"context"
	"fmt"

	"cloversync/internal/models"
)

// AnnotationStore extends the sink with the lookup the idempotent path
// needs.
type AnnotationStore interface {
	AnnotationSink
	LookupAnnotation(ctx context.Context, orderID, key string) (string, bool, error)
}

// Idempotent wraps an Orchestrator with a check-then-act guard on the
// recorded Clover order id. The Clover orders endpoint accepts no client
// idempotency token, so this is the only dedup available; concurrent calls
// for the same order can still race through the check window, and callers
// needing a hard guarantee must serialize per order id.
type Idempotent struct {
	inner *Orchestrator
	store AnnotationStore
	audit AuditLog
}

func NewIdempotent(inner *Orchestrator, store AnnotationStore, audit AuditLog) *Idempotent {
	return &Idempotent{
		inner: inner,
		store: store,
		audit: audit,
	}
}

// SyncOrder returns the previously recorded Clover order id without touching
// the API when the order was already synced.
func (s *Idempotent) SyncOrder(ctx context.Context, order *models.SourceOrder) Result {
	cloverOrderID, found, err := s.store.LookupAnnotation(ctx, order.ID, MetaKeyCloverOrderID)
	if err != nil {
		// A broken lookup must not block the sync; worst case is the known
		// duplicate-order window.
		s.audit.Log(fmt.Sprintf("Annotation lookup failed for order #%s: %v", order.ID, err), "error")
	} else if found && cloverOrderID != "" {
		s.audit.Log(fmt.Sprintf("Order #%s already synced to Clover (ID: %s), skipping", order.ID, cloverOrderID), "debug")
		return success(cloverOrderID)
	}

	return s.inner.SyncOrder(ctx, order)
}

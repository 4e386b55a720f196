package sync

import (
	"context"
	"errors"
	"fmt"

	"cloversync/internal/models"
	"cloversync/internal/services/clover"
)

// MetaKeyCloverOrderID is the annotation key under which a successful sync
// records the remote order id.
const MetaKeyCloverOrderID = "_clover_order_id"

// ErrNotConfigured is returned before any network call when one of the four
// required credentials is missing.
var ErrNotConfigured = errors.New("clover API not properly configured")

// Config is the immutable per-call configuration for a sync. There is no
// process-wide settings state.
type Config struct {
	ClientID     string
	ClientSecret string
	AccessToken  string
	MerchantID   string
	AutoPrint    bool
	RoundCents   bool
}

func (c Config) complete() bool {
	return c.ClientID != "" && c.ClientSecret != "" && c.AccessToken != "" && c.MerchantID != ""
}

// Result is the outcome of one sync attempt. A print failure after a
// successful order creation does not turn the result into a failure.
type Result struct {
	CloverOrderID string
	Printed       bool
	PrintFailed   bool
	Err           error
}

func (r Result) Succeeded() bool {
	return r.Err == nil
}

func success(cloverOrderID string) Result {
	return Result{CloverOrderID: cloverOrderID}
}

func failure(err error) Result {
	return Result{Err: err}
}

// PosClient is the slice of the Clover API the orchestrator needs.
type PosClient interface {
	CreateOrder(ctx context.Context, order *clover.Order) (*clover.OrderResponse, error)
	PrintBill(ctx context.Context, orderID string) error
}

// AnnotationSink writes durable annotations back onto the source order.
// Writes are fire-and-forget from the orchestrator's perspective.
type AnnotationSink interface {
	RecordAnnotation(ctx context.Context, orderID, key, value string) error
	AddNote(ctx context.Context, orderID, note string) error
}

// AuditLog matches the plugin-style leveled log sink. Debug entries are
// suppressed unless debug mode is on; error entries are always recorded.
type AuditLog interface {
	Log(message, level string)
}

// OrderSyncer is implemented by both the plain and the idempotent
// orchestrator.
type OrderSyncer interface {
	SyncOrder(ctx context.Context, order *models.SourceOrder) Result
}

// Orchestrator runs the create-then-print workflow for one order per call.
// It keeps no idempotence state: calling SyncOrder twice for the same order
// creates two remote orders. Use Idempotent when at-most-once semantics are
// required.
type Orchestrator struct {
	config     Config
	client     PosClient
	sink       AnnotationSink
	audit      AuditLog
	translator *clover.Translator
}

func NewOrchestrator(cfg Config, client PosClient, sink AnnotationSink, audit AuditLog) *Orchestrator {
	return &Orchestrator{
		config:     cfg,
		client:     client,
		sink:       sink,
		audit:      audit,
		translator: clover.NewTranslator(cfg.RoundCents),
	}
}

// SyncOrder translates the order, creates it on Clover and optionally prints
// a receipt. Single pass, no retries; every failure is terminal for this
// attempt.
func (o *Orchestrator) SyncOrder(ctx context.Context, order *models.SourceOrder) Result {
	o.audit.Log(fmt.Sprintf("Processing order #%s for Clover sync", order.ID), "info")

	if !o.config.complete() {
		o.audit.Log(fmt.Sprintf("Error processing order #%s: %v", order.ID, ErrNotConfigured), "error")
		return failure(ErrNotConfigured)
	}

	note := clover.ComposeOrderNote(order)
	payload := o.translator.Translate(order, note)

	resp, err := o.client.CreateOrder(ctx, payload)
	if err != nil {
		o.audit.Log(fmt.Sprintf("Error processing order #%s: %v", order.ID, err), "error")
		o.noteOrError(ctx, order.ID, fmt.Sprintf("Error syncing to Clover POS: %v", err))
		return failure(fmt.Errorf("create clover order: %w", err))
	}

	cloverOrderID := resp.ID

	if err := o.sink.RecordAnnotation(ctx, order.ID, MetaKeyCloverOrderID, cloverOrderID); err != nil {
		// The remote order exists; a failed annotation write must not undo
		// that.
		o.audit.Log(fmt.Sprintf("Failed to record Clover order id for order #%s: %v", order.ID, err), "error")
	}
	o.noteOrError(ctx, order.ID,
		fmt.Sprintf("Order successfully synced to Clover POS. Clover Order ID: %s", cloverOrderID))

	result := success(cloverOrderID)

	if o.config.AutoPrint {
		result.Printed = o.printBill(ctx, order.ID, cloverOrderID)
		result.PrintFailed = !result.Printed
	}

	o.audit.Log(fmt.Sprintf("Order #%s successfully synced to Clover (ID: %s)", order.ID, cloverOrderID), "info")
	return result
}

// printBill is fire-and-forget relative to the sync outcome: a failed print
// is logged and annotated but never invalidates the created order.
func (o *Orchestrator) printBill(ctx context.Context, orderID, cloverOrderID string) bool {
	if err := o.client.PrintBill(ctx, cloverOrderID); err != nil {
		o.audit.Log(fmt.Sprintf("Error printing bill for order #%s: %v", orderID, err), "error")
		o.noteOrError(ctx, orderID, fmt.Sprintf("Error printing bill from Clover POS: %v", err))
		return false
	}

	o.audit.Log(fmt.Sprintf("Bill printed successfully for order #%s", orderID), "info")
	o.noteOrError(ctx, orderID, "Bill printed successfully from Clover POS.")
	return true
}

func (o *Orchestrator) noteOrError(ctx context.Context, orderID, note string) {
	if err := o.sink.AddNote(ctx, orderID, note); err != nil {
		o.audit.Log(fmt.Sprintf("Failed to add note to order #%s: %v", orderID, err), "error")
	}
}

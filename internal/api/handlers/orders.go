package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"cloversync/internal/connectors/woocommerce"
	"cloversync/internal/events"
	"cloversync/internal/logger"
	"cloversync/internal/metrics"
	"cloversync/internal/models"
	"cloversync/internal/sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderHandler struct {
	db        *gorm.DB
	logger    *logger.Logger
	connector *woocommerce.Connector
	producer  *events.Producer
	syncer    sync.OrderSyncer
	metrics   *metrics.Registry
}

func NewOrderHandler(
	db *gorm.DB,
	logger *logger.Logger,
	connector *woocommerce.Connector,
	producer *events.Producer,
	syncer sync.OrderSyncer,
	metrics *metrics.Registry,
) *OrderHandler {
	return &OrderHandler{
		db:        db,
		logger:    logger,
		connector: connector,
		producer:  producer,
		syncer:    syncer,
		metrics:   metrics,
	}
}

// Webhook ingests a WooCommerce order webhook, stores the parsed order as a
// pending sync record and hands it to the worker via Kafka.
func (h *OrderHandler) Webhook(c *gin.Context) {
	h.metrics.WebhooksReceived.Inc()

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read request body"})
		return
	}

	order, err := h.connector.ParseOrder(body)
	if err != nil {
		h.logger.Error("Failed to parse webhook order: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	payload, err := json.Marshal(order)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to serialize order"})
		return
	}

	record := &models.SyncRecord{
		ID:          uuid.NewString(),
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
		Status:      models.SyncStatusPending,
		Payload:     string(payload),
	}
	if err := h.db.Create(record).Error; err != nil {
		h.logger.Error("Failed to save sync record: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save sync record"})
		return
	}

	event := events.Event{
		Type:      events.TypeOrderSync,
		OrderID:   order.ID,
		RecordID:  record.ID,
		Timestamp: time.Now().UTC(),
	}
	if err := h.producer.Publish(c.Request.Context(), event); err != nil {
		h.logger.Error("Failed to publish sync event for order %s: %v", order.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to queue order for sync"})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"record_id": record.ID,
		"order_id":  order.ID,
		"status":    record.Status,
	})
}

// Sync runs the sync synchronously for an already-received order. This is
// the manual retry path; it goes through the idempotent syncer, so an
// already-synced order returns its recorded Clover id without a second
// remote order.
func (h *OrderHandler) Sync(c *gin.Context) {
	orderID := c.Param("id")

	record, err := h.latestRecord(orderID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "No sync record for order"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch sync record"})
		return
	}

	var order models.SourceOrder
	if err := json.Unmarshal([]byte(record.Payload), &order); err != nil {
		h.logger.Error("Failed to decode stored order %s: %v", orderID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Stored order payload is unreadable"})
		return
	}

	start := time.Now()
	result := h.syncer.SyncOrder(c.Request.Context(), &order)
	h.metrics.SyncLatencySec.Observe(time.Since(start).Seconds())

	applyResult(record, result)
	if err := h.db.Save(record).Error; err != nil {
		h.logger.Error("Failed to update sync record %s: %v", record.ID, err)
	}

	if !result.Succeeded() {
		h.metrics.OrdersFailed.Inc()
		c.JSON(http.StatusBadGateway, gin.H{
			"status": record.Status,
			"error":  result.Err.Error(),
		})
		return
	}

	h.metrics.OrdersSynced.Inc()
	c.JSON(http.StatusOK, gin.H{
		"status":          record.Status,
		"clover_order_id": result.CloverOrderID,
		"printed":         result.Printed,
	})
}

// Status returns the latest sync record for an order.
func (h *OrderHandler) Status(c *gin.Context) {
	orderID := c.Param("id")

	record, err := h.latestRecord(orderID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "No sync record for order"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch sync record"})
		return
	}

	c.JSON(http.StatusOK, record)
}

func (h *OrderHandler) latestRecord(orderID string) (*models.SyncRecord, error) {
	var record models.SyncRecord
	err := h.db.Where("order_id = ?", orderID).
		Order("created_at DESC").
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func applyResult(record *models.SyncRecord, result sync.Result) {
	if result.Succeeded() {
		record.Status = models.SyncStatusSynced
		record.CloverOrderID = result.CloverOrderID
		record.Printed = result.Printed
		record.Error = ""
		return
	}
	record.Status = models.SyncStatusFailed
	record.Error = result.Err.Error()
}

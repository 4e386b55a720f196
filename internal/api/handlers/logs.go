package handlers

import (
	"net/http"
	"strconv"

	"cloversync/internal/auditlog"
	"cloversync/internal/logger"

	"github.com/gin-gonic/gin"
)

type LogsHandler struct {
	audit  *auditlog.Log
	logger *logger.Logger
}

func NewLogsHandler(audit *auditlog.Log, logger *logger.Logger) *LogsHandler {
	return &LogsHandler{
		audit:  audit,
		logger: logger,
	}
}

// List returns recent audit log entries, newest first.
func (h *LogsHandler) List(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil || limit < 1 {
		limit = 50
	}

	entries, err := h.audit.Recent(limit)
	if err != nil {
		h.logger.Error("Failed to read audit log: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read audit log"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

// Clear truncates the audit log.
func (h *LogsHandler) Clear(c *gin.Context) {
	if err := h.audit.Clear(); err != nil {
		h.logger.Error("Failed to clear audit log: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear audit log"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Audit log cleared"})
}

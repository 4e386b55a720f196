package handlers

import (
	"errors"
	"net/http"

	"cloversync/internal/config"
	"cloversync/internal/logger"
	"cloversync/internal/models"
	"cloversync/internal/services/clover"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CloverHandler struct {
	db           *gorm.DB
	logger       *logger.Logger
	config       *config.Config
	oauthService *clover.OAuthService
}

func NewCloverHandler(db *gorm.DB, logger *logger.Logger, config *config.Config) *CloverHandler {
	return &CloverHandler{
		db:           db,
		logger:       logger,
		config:       config,
		oauthService: clover.NewOAuthService(config, logger),
	}
}

// Install initiates the Clover OAuth flow
func (h *CloverHandler) Install(c *gin.Context) {
	var request struct {
		RedirectURI string `json:"redirect_uri" binding:"required"`
	}

	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	authURL, state, err := h.oauthService.GenerateAuthURL(request.RedirectURI)
	if err != nil {
		h.logger.Error("Failed to generate auth URL: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate authorization URL"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"auth_url": authURL,
		"state":    state,
		"message":  "Redirect user to the auth_url to complete OAuth flow",
	})
}

// Callback handles the OAuth callback
func (h *CloverHandler) Callback(c *gin.Context) {
	code := c.Query("code")
	redirectURI := c.Query("redirect_uri")

	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required parameters"})
		return
	}

	tokenResp, err := h.oauthService.ExchangeCodeForToken(c.Request.Context(), code, redirectURI)
	if err != nil {
		h.logger.Error("Failed to exchange code for token: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to exchange authorization code"})
		return
	}

	connection := &models.Connection{
		MerchantID:  tokenResp.MerchantID,
		ClientID:    h.config.CloverClientID,
		AccessToken: tokenResp.AccessToken,
		Sandbox:     h.config.CloverSandbox,
	}

	var existing models.Connection
	err = h.db.Where("merchant_id = ?", connection.MerchantID).First(&existing).Error
	switch {
	case err == nil:
		existing.ClientID = connection.ClientID
		existing.AccessToken = connection.AccessToken
		existing.Sandbox = connection.Sandbox
		err = h.db.Save(&existing).Error
		connection = &existing
	case errors.Is(err, gorm.ErrRecordNotFound):
		connection.ID = uuid.NewString()
		err = h.db.Create(connection).Error
	}
	if err != nil {
		h.logger.Error("Failed to save connection: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save connection"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Clover merchant connected successfully",
		"merchant_id": connection.MerchantID,
	})
}

// Printers lists the printers registered to the configured merchant.
func (h *CloverHandler) Printers(c *gin.Context) {
	client := h.client()

	printers, err := client.GetPrinters(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to fetch printers: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"printers": printers})
}

// Status verifies the configured credentials against the merchant endpoint.
func (h *CloverHandler) Status(c *gin.Context) {
	client := h.client()

	merchant, err := client.TestConnection(c.Request.Context())
	if err != nil {
		h.logger.Error("Clover connection test failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"connected": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"connected": true,
		"merchant":  merchant,
	})
}

// Inventory returns the merchant's inventory items, useful when mapping
// store products to Clover items.
func (h *CloverHandler) Inventory(c *gin.Context) {
	client := h.client()

	items, err := client.GetInventoryItems(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to fetch inventory: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *CloverHandler) client() *clover.Client {
	return clover.NewClient(
		h.config.CloverAccessToken,
		h.config.CloverMerchantID,
		h.config.CloverSandbox,
		h.logger,
	)
}

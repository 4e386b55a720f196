package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"cloversync/internal/api/handlers"
	"cloversync/internal/api/middleware"
	"cloversync/internal/auditlog"
	"cloversync/internal/config"
	"cloversync/internal/connectors/woocommerce"
	"cloversync/internal/database"
	"cloversync/internal/events"
	"cloversync/internal/logger"
	"cloversync/internal/metrics"
	"cloversync/internal/sync"

	"github.com/gin-gonic/gin"
)

type Server struct {
	config *config.Config
	logger *logger.Logger
	db     *database.Database
	router *gin.Engine
	server *http.Server
}

func New(
	cfg *config.Config,
	logger *logger.Logger,
	db *database.Database,
	audit *auditlog.Log,
	producer *events.Producer,
	syncer sync.OrderSyncer,
	registry *metrics.Registry,
) *Server {
	// Set Gin mode
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(middleware.Logger(logger))
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.CORS())
	router.Use(middleware.RequestID())

	// Initialize handlers
	connector := woocommerce.New(logger)
	orderHandler := handlers.NewOrderHandler(db.DB, logger, connector, producer, syncer, registry)
	cloverHandler := handlers.NewCloverHandler(db.DB, logger, cfg)
	logsHandler := handlers.NewLogsHandler(audit, logger)

	// Routes
	v1 := router.Group("/api/v1")
	{
		// Order intake and sync
		webhooks := v1.Group("/webhooks")
		{
			webhooks.POST("/woocommerce", orderHandler.Webhook)
		}

		orders := v1.Group("/orders")
		{
			orders.POST("/:id/sync", orderHandler.Sync)
			orders.GET("/:id/sync", orderHandler.Status)
		}

		// Clover Integration
		cloverGroup := v1.Group("/clover")
		{
			cloverGroup.POST("/install", cloverHandler.Install)
			cloverGroup.GET("/callback", cloverHandler.Callback)
			cloverGroup.GET("/printers", cloverHandler.Printers)
			cloverGroup.GET("/inventory", cloverHandler.Inventory)
			cloverGroup.GET("/status", cloverHandler.Status)
		}

		// Audit log
		logs := v1.Group("/logs")
		{
			logs.GET("", logsHandler.List)
			logs.DELETE("", logsHandler.Clear)
		}
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(registry.Handler()))

	return &Server{
		config: cfg,
		logger: logger,
		db:     db,
		router: router,
	}
}

func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%s", s.config.APIHost, s.config.APIPort)

	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Info("Starting server on " + addr)
	return s.server.ListenAndServe()
}

func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Shutting down server...")
	return s.server.Shutdown(ctx)
}

// GetRouter returns the Gin router, mainly for handler tests.
func (s *Server) GetRouter() *gin.Engine {
	return s.router
}

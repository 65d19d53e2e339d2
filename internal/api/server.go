// Package api provides the HTTP server for the tallyd stub pipeline endpoint.
// This server exposes the pipeline submission contract over REST so tallyctl
// and integration tests can exercise the full review/commit loop locally
// without a production ledger behind the endpoint.
package api

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/tally-dev/tally/internal/api/handlers"
	"github.com/tally-dev/tally/internal/logging"
	"github.com/tally-dev/tally/internal/review"
	"github.com/tally-dev/tally/internal/version"
)

// Config holds the API server configuration.
type Config struct {
	BindAddr      string          // Address to bind the HTTP server to
	BindPort      int             // Port to bind the HTTP server to
	WarnThreshold decimal.Decimal // Amount above which review answers suggest-skip
	Schema        *review.Schema  // Record schema; nil selects the default
}

// Server is the tallyd HTTP endpoint server.
type Server struct {
	engine     *handlers.Engine
	httpServer *http.Server
	bindAddr   string
	bindPort   int
	startTime  time.Time
}

// NewServer creates a new stub endpoint server instance.
func NewServer(config *Config) *Server {
	// Set Gin to release mode for production
	gin.SetMode(gin.ReleaseMode)

	return &Server{
		engine:   handlers.NewEngine(config.Schema, config.WarnThreshold),
		bindAddr: config.BindAddr,
		bindPort: config.BindPort,
	}
}

// Start starts the stub endpoint server.
func (s *Server) Start() error {
	logging.Info("Starting HTTP endpoint server on %s:%d", s.bindAddr, s.bindPort)
	s.startTime = time.Now()

	// Create Gin router
	router := gin.New()

	// Route Gin's own output through structured logging unless a CLI tool
	// already configured suppression.
	if !logging.IsConfiguredByCLI() {
		gin.DefaultWriter = logging.NewLevelWriter("INFO", "gin")
		gin.DefaultErrorWriter = logging.NewLevelWriter("ERROR", "gin")
	}

	router.Use(s.loggingMiddleware())
	router.Use(gin.Recovery())

	s.setupRoutes(router)

	s.httpServer = &http.Server{
		Addr:    fmt.Sprintf("%s:%d", s.bindAddr, s.bindPort),
		Handler: router,
		// Timeouts for production
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Test binding first to catch errors immediately
	listener, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("failed to bind to %s: %w", s.httpServer.Addr, err)
	}
	listener.Close() // Close the test listener

	// Start server in goroutine now that we know binding works
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Error("HTTP server failed: %v", err)
		}
	}()

	logging.Success("HTTP endpoint server started successfully")
	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	logging.Info("Shutting down HTTP endpoint server...")

	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}

// setupRoutes registers the versioned API surface.
func (s *Server) setupRoutes(router *gin.Engine) {
	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", handlers.HandleHealth(version.TallydVersion, s.startTime))
		v1.POST("/pipeline/submit", handlers.HandleSubmit(s.engine))
	}
}

// loggingMiddleware emits one structured line per request with latency and
// status, replacing Gin's default access log format.
func (s *Server) loggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logging.Debug("%s %s -> %d (%v)",
			c.Request.Method, c.Request.URL.Path,
			c.Writer.Status(), time.Since(start))
	}
}

// Package handlers provides HTTP request handlers for the tallyd stub endpoint.
// This file implements the health endpoint used by tallyctl connectivity checks.
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tally-dev/tally/internal/pipeline"
)

// HandleHealth returns a handler reporting endpoint liveness, version, and
// uptime since daemon start.
func HandleHealth(version string, startTime time.Time) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, pipeline.HealthResponse{
			Status:    "healthy",
			Version:   version,
			Timestamp: time.Now(),
			Uptime:    time.Since(startTime).Round(time.Second).String(),
		})
	}
}

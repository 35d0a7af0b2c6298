package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthCheck reports whether a dependency is reachable.
type HealthCheck func(ctx context.Context) error

// HealthController handles health check endpoints.
type HealthController struct {
	dbCheck    HealthCheck
	cacheCheck HealthCheck
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	Cache     string `json:"cache"`
	Timestamp string `json:"timestamp"`
}

// NewHealthController creates a new health controller instance.
// cacheCheck is nil when Redis is not configured.
func NewHealthController(dbCheck, cacheCheck HealthCheck) *HealthController {
	return &HealthController{
		dbCheck:    dbCheck,
		cacheCheck: cacheCheck,
	}
}

// Check handles GET /health requests.
func (h *HealthController) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	response := HealthResponse{
		Status:    "ok",
		Database:  "connected",
		Cache:     "disabled",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	status := http.StatusOK

	if h.dbCheck == nil || h.dbCheck(ctx) != nil {
		response.Status = "degraded"
		response.Database = "disconnected"
		status = http.StatusServiceUnavailable
	}
	if h.cacheCheck != nil {
		response.Cache = "connected"
		if err := h.cacheCheck(ctx); err != nil {
			response.Cache = "disconnected"
			response.Status = "degraded"
		}
	}

	c.JSON(status, response)
}

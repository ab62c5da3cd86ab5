package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	statusHealthy   = "healthy"
	statusDegraded  = "degraded"
	statusUnhealthy = "unhealthy"

	pingTimeout = 2 * time.Second
)

// Pinger reports database reachability
type Pinger interface {
	PingContext(ctx context.Context) error
}

// QueueStats reports the audit queue state
type QueueStats interface {
	GetQueueStats() map[string]int
}

// HealthHandler handles health check endpoints
type HealthHandler struct {
	db        Pinger
	queue     QueueStats
	startTime time.Time
}

// NewHealthHandler creates a new health handler. queue may be nil.
func NewHealthHandler(db Pinger, queue QueueStats) *HealthHandler {
	return &HealthHandler{db: db, queue: queue, startTime: time.Now()}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string           `json:"status"`
	Timestamp string           `json:"timestamp"`
	Uptime    string           `json:"uptime"`
	Database  DependencyHealth `json:"database"`
	Audit     map[string]int   `json:"audit,omitempty"`
}

// DependencyHealth is the probe result of one dependency
type DependencyHealth struct {
	Status  string `json:"status"`
	Latency string `json:"latency"`
	Error   string `json:"error,omitempty"`
}

func (h *HealthHandler) pingDB(ctx context.Context) DependencyHealth {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	start := time.Now()
	err := h.db.PingContext(ctx)
	result := DependencyHealth{Status: "up", Latency: time.Since(start).String()}
	if err != nil {
		result.Status = "down"
		result.Error = err.Error()
	}
	return result
}

// Health handles GET /health. A database outage is unhealthy (503); an audit
// queue at capacity is degraded but still served with 200.
func (h *HealthHandler) Health(c *gin.Context) {
	response := HealthResponse{
		Status:    statusHealthy,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Uptime:    time.Since(h.startTime).String(),
		Database:  h.pingDB(c.Request.Context()),
	}

	if h.queue != nil {
		response.Audit = h.queue.GetQueueStats()
		if capacity := response.Audit["audit_queue_cap"]; capacity > 0 && response.Audit["audit_queue_size"] >= capacity {
			response.Status = statusDegraded
		}
	}

	statusCode := http.StatusOK
	if response.Database.Status != "up" {
		response.Status = statusUnhealthy
		statusCode = http.StatusServiceUnavailable
	}
	c.JSON(statusCode, response)
}

// Ready handles GET /ready
func (h *HealthHandler) Ready(c *gin.Context) {
	if db := h.pingDB(c.Request.Context()); db.Status != "up" {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready", "database": db})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}

// Live handles GET /live
func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "alive"})
}

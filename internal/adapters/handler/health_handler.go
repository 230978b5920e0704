package handler

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

const probeTimeout = 5 * time.Second

// HealthHandler serves the liveness and readiness probes. Liveness only
// confirms the process; readiness additionally pings the stores queue
// operations cannot run without.
type HealthHandler struct {
	db        *sql.DB
	redis     *redis.Client
	startTime time.Time
	version   string
}

func NewHealthHandler(db *sql.DB, redisClient *redis.Client) *HealthHandler {
	version := os.Getenv("APP_VERSION")
	if version == "" {
		version = "dev"
	}
	return &HealthHandler{
		db:        db,
		redis:     redisClient,
		startTime: time.Now(),
		version:   version,
	}
}

type probeResult struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

type healthResponse struct {
	Service   string                 `json:"service"`
	Status    string                 `json:"status"`
	Version   string                 `json:"version"`
	Uptime    string                 `json:"uptime"`
	Timestamp string                 `json:"timestamp"`
	Checks    map[string]probeResult `json:"checks,omitempty"`
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.response("UP", nil))
}

func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	h.Health(w, r)
}

// Ready reports DOWN with 503 when Postgres or Redis cannot be reached.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	checks := map[string]probeResult{
		"postgres": h.checkPostgres(r.Context()),
		"redis":    h.checkRedis(r.Context()),
	}

	status, httpStatus := "UP", http.StatusOK
	for _, c := range checks {
		if c.Status != "UP" {
			status, httpStatus = "DOWN", http.StatusServiceUnavailable
		}
	}

	writeJSON(w, httpStatus, h.response(status, checks))
}

func (h *HealthHandler) response(status string, checks map[string]probeResult) healthResponse {
	return healthResponse{
		Service:   "queue-service",
		Status:    status,
		Version:   h.version,
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
	}
}

func (h *HealthHandler) checkPostgres(ctx context.Context) probeResult {
	if h.db == nil {
		return probeResult{Status: "DOWN", Message: "database handle not initialized"}
	}
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()
	if err := h.db.PingContext(ctx); err != nil {
		return probeResult{Status: "DOWN", Message: "cannot reach postgres"}
	}
	return probeResult{Status: "UP"}
}

func (h *HealthHandler) checkRedis(ctx context.Context) probeResult {
	if h.redis == nil {
		return probeResult{Status: "DOWN", Message: "redis client not initialized"}
	}
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()
	if err := h.redis.Ping(ctx).Err(); err != nil {
		return probeResult{Status: "DOWN", Message: "cannot reach redis"}
	}
	return probeResult{Status: "UP"}
}

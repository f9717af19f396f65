package rest

import (
	"context"
	"net/http"
	"strings"
	"time"
)

const pingTimeout = 3 * time.Second

// dbPinger is the minimal interface for DB health checks.
type dbPinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves the liveness, readiness and health endpoints.
type HealthHandler struct {
	db        dbPinger
	noteTypes []string
	version   string
}

// NewHealthHandler creates a HealthHandler. noteTypes are the note types the
// server can compile and are reported by Health.
func NewHealthHandler(db dbPinger, noteTypes []string, version string) *HealthHandler {
	return &HealthHandler{db: db, noteTypes: noteTypes, version: version}
}

// HealthResponse is the JSON response of every health endpoint.
type HealthResponse struct {
	Status     string                `json:"status"`
	Version    string                `json:"version,omitempty"`
	Components map[string]CompStatus `json:"components,omitempty"`
	Timestamp  time.Time             `json:"timestamp"`
}

// CompStatus is the status of one component.
type CompStatus struct {
	Status  string `json:"status"`
	Latency string `json:"latency,omitempty"`
	Detail  string `json:"detail,omitempty"`
}

// Live always returns 200.
// GET /live
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Timestamp: time.Now()})
}

// Ready returns 200 when the database answers a ping and 503 otherwise.
// GET /ready
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	if _, err := h.ping(r.Context()); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, HealthResponse{Status: "down", Timestamp: time.Now()})
		return
	}
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Timestamp: time.Now()})
}

// Health reports every component with the database ping latency and the
// build version.
// GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{
		Status:     "ok",
		Version:    h.version,
		Components: make(map[string]CompStatus, 2),
	}

	if latency, err := h.ping(r.Context()); err != nil {
		resp.Components["database"] = CompStatus{Status: "down"}
		resp.Status = "down"
	} else {
		resp.Components["database"] = CompStatus{Status: "ok", Latency: latency.String()}
	}

	if len(h.noteTypes) == 0 {
		resp.Components["processors"] = CompStatus{Status: "down", Detail: "no note types registered"}
		resp.Status = "down"
	} else {
		resp.Components["processors"] = CompStatus{Status: "ok", Detail: strings.Join(h.noteTypes, ",")}
	}

	status := http.StatusOK
	if resp.Status != "ok" {
		status = http.StatusServiceUnavailable
	}
	resp.Timestamp = time.Now()
	writeJSON(w, status, resp)
}

func (h *HealthHandler) ping(ctx context.Context) (time.Duration, error) {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	start := time.Now()
	err := h.db.Ping(ctx)
	return time.Since(start), err
}

package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"time"
)

// Ping timeout for the readiness and health checks. Kubernetes probes fire
// on short periods, so the check must fail fast rather than queue behind a
// saturated pool.
const healthPingTimeout = 3 * time.Second

type dbPinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves the liveness, readiness, and full health probes.
// Postgres is the only backing dependency of the study service, so the
// readiness of the pool decides the readiness of the whole process.
type HealthHandler struct {
	db      dbPinger
	version string
}

func NewHealthHandler(db dbPinger, version string) *HealthHandler {
	return &HealthHandler{db: db, version: version}
}

type healthResponse struct {
	Status    string                 `json:"status"`
	Version   string                 `json:"version,omitempty"`
	Checks    map[string]healthCheck `json:"checks,omitempty"`
	CheckedAt time.Time              `json:"checked_at"`
}

type healthCheck struct {
	Status    string `json:"status"`
	LatencyMS int64  `json:"latency_ms"`
	Error     string `json:"error,omitempty"`
}

// Live reports process liveness. It never touches the database: a wedged
// pool should fail readiness, not trigger a restart loop.
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:    "ok",
		CheckedAt: time.Now().UTC(),
	})
}

// Ready reports whether the service can take traffic: 200 when Postgres
// answers a ping within the timeout, 503 otherwise.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthPingTimeout)
	defer cancel()

	status, code := "ok", http.StatusOK
	if err := h.db.Ping(ctx); err != nil {
		status, code = "down", http.StatusServiceUnavailable
	}

	writeJSON(w, code, healthResponse{
		Status:    status,
		CheckedAt: time.Now().UTC(),
	})
}

// Health is the diagnostic endpoint: per-dependency check results with
// measured latency, plus the build version.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthPingTimeout)
	defer cancel()

	checks := map[string]healthCheck{
		"postgres": h.checkPostgres(ctx),
	}

	status, code := "ok", http.StatusOK
	for _, c := range checks {
		if c.Status != "ok" {
			status, code = "down", http.StatusServiceUnavailable
			break
		}
	}

	writeJSON(w, code, healthResponse{
		Status:    status,
		Version:   h.version,
		Checks:    checks,
		CheckedAt: time.Now().UTC(),
	})
}

func (h *HealthHandler) checkPostgres(ctx context.Context) healthCheck {
	start := time.Now()
	err := h.db.Ping(ctx)
	latency := time.Since(start).Milliseconds()

	if err != nil {
		return healthCheck{Status: "down", LatencyMS: latency, Error: err.Error()}
	}
	return healthCheck{Status: "ok", LatencyMS: latency}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

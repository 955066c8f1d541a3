package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/msomdec/newsdesk/internal/domain"
)

// HealthHandler reports whether the server can reach its store.
type HealthHandler struct {
	db domain.Database
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(db domain.Database) *HealthHandler {
	return &HealthHandler{db: db}
}

// HandleHealthz responds with 200 and {"status":"ok"} when the store
// answers a ping, and 503 otherwise.
func (h *HealthHandler) HandleHealthz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		slog.Warn("health check failed", "error", err)
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

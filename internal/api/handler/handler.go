// Package handler provides HTTP handlers for all API endpoints.
// Handlers talk to the record store directly; aggregation runs in-process
// through the scout package and its results are cached per defense.
package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/albapepper/gvg-tracker/internal/api/respond"
	"github.com/albapepper/gvg-tracker/internal/cache"
	"github.com/albapepper/gvg-tracker/internal/config"
	"github.com/albapepper/gvg-tracker/internal/store"
)

// Handler holds shared dependencies for all endpoint handlers.
type Handler struct {
	store  store.Store
	cache  *cache.Cache
	cfg    *config.Config
	logger *slog.Logger
	now    func() time.Time
}

// New creates a Handler with shared dependencies.
func New(st store.Store, c *cache.Cache, cfg *config.Config, logger *slog.Logger) *Handler {
	return &Handler{
		store:  st,
		cache:  c,
		cfg:    cfg,
		logger: logger,
		now:    time.Now,
	}
}

// changed is called after every successful write.
func (h *Handler) changed() {
	h.cache.Purge()
}

func (h *Handler) storeError(w http.ResponseWriter, r *http.Request, op string, err error) {
	h.logger.Error("Store operation failed", "op", op, "path", r.URL.Path, "error", err)
	respond.WriteError(w, http.StatusInternalServerError, respond.CodeStoreError, "Record store unavailable")
}

// Root serves API info at /.
// @Summary API root info
// @Description Returns API name, version, status and the active store driver.
// @Tags meta
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSON(w, http.StatusOK, map[string]any{
		"name":    "GvG 3v3 Tracker API",
		"version": "1.0.0",
		"status":  "running",
		"docs":    "/docs",
		"store":   h.cfg.StoreDriver,
	})
}

// HealthCheck returns basic health status.
// @Summary Health check
// @Description Returns basic health status and timestamp.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSON(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"timestamp": h.now().UTC().Format(time.RFC3339),
	})
}

// HealthCheckDB verifies the record store is reachable.
// @Summary Store health check
// @Description Pings the configured record store. Postgres also reports pool statistics.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health/db [get]
func (h *Handler) HealthCheckDB(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Ping(r.Context()); err != nil {
		h.logger.Warn("Store ping failed", "error", err)
		respond.WriteJSON(w, http.StatusServiceUnavailable, map[string]any{
			"status":    "unhealthy",
			"store":     h.cfg.StoreDriver,
			"error":     "Record store check failed",
			"timestamp": h.now().UTC().Format(time.RFC3339),
		})
		return
	}
	body := map[string]any{
		"status":    "healthy",
		"store":     h.cfg.StoreDriver,
		"timestamp": h.now().UTC().Format(time.RFC3339),
	}
	if pg, ok := h.store.(*store.Postgres); ok {
		stat := pg.Pool().Stat()
		body["pool"] = map[string]any{
			"total_conns":    stat.TotalConns(),
			"idle_conns":     stat.IdleConns(),
			"acquired_conns": stat.AcquiredConns(),
			"max_conns":      stat.MaxConns(),
		}
	}
	respond.WriteJSON(w, http.StatusOK, body)
}

// HealthCheckCache returns cache statistics.
// @Summary Cache health check
// @Description Returns in-memory cache statistics (active keys, expired keys, purges).
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health/cache [get]
func (h *Handler) HealthCheckCache(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSON(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"cache":     h.cache.Stats(),
		"timestamp": h.now().UTC().Format(time.RFC3339),
	})
}

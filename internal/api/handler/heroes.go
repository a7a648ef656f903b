package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/albapepper/gvg-tracker/internal/api/respond"
	"github.com/albapepper/gvg-tracker/internal/cache"
	"github.com/albapepper/gvg-tracker/internal/roster"
)

// Heroes returns autocomplete suggestions from the known roster.
// @Summary Hero name suggestions
// @Description Prefix matches first, then substring matches, alphabetical within each group.
// @Tags heroes
// @Produce json
// @Param q query string false "Partial name"
// @Param limit query int false "Max suggestions (default 30)"
// @Success 200 {object} map[string]interface{}
// @Success 304 "Not modified"
// @Failure 400 {object} respond.ErrorResponse
// @Router /heroes [get]
func (h *Handler) Heroes(w http.ResponseWriter, r *http.Request) {
	limit := roster.DefaultSuggestLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			respond.WriteError(w, http.StatusBadRequest, respond.CodeBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}
	q := strings.TrimSpace(r.URL.Query().Get("q"))

	cacheKey := "heroes:" + strings.ToLower(q) + ":" + strconv.Itoa(limit)
	if data, etag, ok := h.cache.Get(cacheKey); ok {
		if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
			respond.WriteNotModified(w, etag)
			return
		}
		respond.WriteCached(w, data, etag, cache.TTLHeroes, true)
		return
	}

	data, err := json.Marshal(map[string]any{
		"query":  q,
		"heroes": roster.Suggest(q, limit),
	})
	if err != nil {
		respond.WriteError(w, http.StatusInternalServerError, "ENCODE_ERROR", err.Error())
		return
	}
	etag := h.cache.Set(cacheKey, data, cache.TTLHeroes)
	if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
		respond.WriteNotModified(w, etag)
		return
	}
	respond.WriteCached(w, data, etag, cache.TTLHeroes, false)
}

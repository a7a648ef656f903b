package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/albapepper/gvg-tracker/internal/api/respond"
	"github.com/albapepper/gvg-tracker/internal/cache"
	"github.com/albapepper/gvg-tracker/internal/roster"
	"github.com/albapepper/gvg-tracker/internal/scout"
)

// SearchResponse wraps an aggregation. When fewer than three defender names
// resolve, Complete is false and only Resolved is set.
type SearchResponse struct {
	Complete bool     `json:"complete"`
	Resolved []string `json:"resolved"`
	*scout.Result
}

// Search aggregates history against one defending team.
// @Summary Search by defending team
// @Description Returns per-attacker-team statistics (matches, wins, win rate, notes, tags, top pick combos) against the given defenders. Name order and spelling variants do not matter.
// @Tags search
// @Produce json
// @Param defenders query string false "Comma separated defender names"
// @Param d query []string false "Defender name, repeatable" collectionFormat(multi)
// @Success 200 {object} SearchResponse
// @Success 304 "Not modified"
// @Failure 400 {object} respond.ErrorResponse
// @Router /search [get]
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	names := defenderParams(r)
	resolved := roster.NormalizeTeam(names)
	if len(resolved) > roster.TeamSize {
		respond.WriteErrorDetail(w, http.StatusBadRequest, respond.CodeBadRequest,
			"Too many defenders", "a defending team has exactly 3 characters")
		return
	}
	if len(resolved) < roster.TeamSize {
		respond.WriteJSON(w, http.StatusOK, SearchResponse{Complete: false, Resolved: resolved})
		return
	}

	key := roster.TeamKey(names)
	cacheKey := "search:" + key
	if data, etag, ok := h.cache.Get(cacheKey); ok {
		if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
			respond.WriteNotModified(w, etag)
			return
		}
		respond.WriteCached(w, data, etag, cache.TTLSearch, true)
		return
	}

	gen := h.cache.Generation()
	recs, err := h.store.ListByDefender(r.Context(), key)
	if err != nil {
		h.storeError(w, r, "search", err)
		return
	}
	data, err := json.Marshal(SearchResponse{
		Complete: true,
		Resolved: resolved,
		Result:   scout.Query(recs, names),
	})
	if err != nil {
		respond.WriteError(w, http.StatusInternalServerError, "ENCODE_ERROR", err.Error())
		return
	}

	// A write that purged the cache after the read above made data stale.
	etag := h.cache.SetIfCurrent(gen, cacheKey, data, cache.TTLSearch)
	if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
		respond.WriteNotModified(w, etag)
		return
	}
	respond.WriteCached(w, data, etag, cache.TTLSearch, false)
}

// defenderParams reads ?defenders=a,b,c and/or repeated ?d=.
func defenderParams(r *http.Request) []string {
	q := r.URL.Query()
	var names []string
	if v := q.Get("defenders"); v != "" {
		names = append(names, strings.Split(v, ",")...)
	}
	names = append(names, q["d"]...)
	return names
}

package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/albapepper/gvg-tracker/internal/api/respond"
	"github.com/albapepper/gvg-tracker/internal/match"
	"github.com/albapepper/gvg-tracker/internal/roster"
	"github.com/albapepper/gvg-tracker/internal/store"
)

// DefaultRecentLimit is how many matches the recent list shows by default.
const DefaultRecentLimit = 30

const maxBodyBytes = 10 << 20

// CreateMatchRequest is the body of POST /matches. Names and picks are
// normalized server side, so any spelling the roster knows is accepted.
type CreateMatchRequest struct {
	Attackers     []string      `json:"attackers"`
	Defenders     []string      `json:"defenders"`
	Result        string        `json:"result"`
	AttackerPicks []roster.Pick `json:"attackerPicks,omitempty"`
	DefenderPicks []roster.Pick `json:"defenderPicks,omitempty"`
	Notes         string        `json:"notes,omitempty"`
	Tags          []string      `json:"tags,omitempty"`
}

// MatchList is the body of GET /matches.
type MatchList struct {
	Count   int            `json:"count"`
	Matches []match.Record `json:"matches"`
}

// ListMatches returns the most recent matches.
// @Summary Recent matches
// @Description Newest first. limit=0 returns everything.
// @Tags matches
// @Produce json
// @Param limit query int false "Max records (default 30)"
// @Success 200 {object} MatchList
// @Failure 400 {object} respond.ErrorResponse
// @Router /matches [get]
func (h *Handler) ListMatches(w http.ResponseWriter, r *http.Request) {
	limit := DefaultRecentLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			respond.WriteError(w, http.StatusBadRequest, respond.CodeBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = n
	}
	recs, err := store.Recent(r.Context(), h.store, limit)
	if err != nil {
		h.storeError(w, r, "list", err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, MatchList{Count: len(recs), Matches: recs})
}

// GetMatch returns one record.
// @Summary Get a match
// @Tags matches
// @Produce json
// @Param id path string true "Record id"
// @Success 200 {object} match.Record
// @Failure 404 {object} respond.ErrorResponse
// @Router /matches/{id} [get]
func (h *Handler) GetMatch(w http.ResponseWriter, r *http.Request) {
	rec, err := h.store.Get(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, store.ErrNotFound) {
		respond.WriteError(w, http.StatusNotFound, respond.CodeNotFound, "Match not found")
		return
	}
	if err != nil {
		h.storeError(w, r, "get", err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, rec)
}

// CreateMatch records one battle.
// @Summary Record a match
// @Description Both teams need exactly 3 distinct characters; each side takes at most 3 picks, all from that side's team.
// @Tags matches
// @Accept json
// @Produce json
// @Param body body CreateMatchRequest true "Match"
// @Success 201 {object} match.Record
// @Failure 400 {object} respond.ErrorResponse
// @Failure 422 {object} respond.ErrorResponse
// @Router /matches [post]
func (h *Handler) CreateMatch(w http.ResponseWriter, r *http.Request) {
	var req CreateMatchRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		respond.WriteErrorDetail(w, http.StatusBadRequest, respond.CodeBadRequest, "Invalid JSON body", err.Error())
		return
	}

	result, err := match.ParseResult(req.Result)
	if err != nil {
		respond.WriteErrorDetail(w, http.StatusUnprocessableEntity, respond.CodeInvalidRecord, "Invalid match", err.Error())
		return
	}
	rec, err := match.New(match.Draft{
		Attackers:     req.Attackers,
		Defenders:     req.Defenders,
		Result:        result,
		AttackerPicks: req.AttackerPicks,
		DefenderPicks: req.DefenderPicks,
		Notes:         req.Notes,
		Tags:          req.Tags,
	}, h.now())
	if err != nil {
		respond.WriteErrorDetail(w, http.StatusUnprocessableEntity, respond.CodeInvalidRecord, "Invalid match", err.Error())
		return
	}

	if err := h.store.Create(r.Context(), rec); err != nil {
		h.storeError(w, r, "create", err)
		return
	}
	h.changed()
	h.logger.Info("Match recorded", "id", rec.ID, "attackers", rec.AttackerKey(), "defenders", rec.DefenderKey(), "result", rec.Result)
	respond.WriteJSON(w, http.StatusCreated, rec)
}

// DeleteMatch removes one record.
// @Summary Delete a match
// @Tags matches
// @Param id path string true "Record id"
// @Success 204
// @Failure 404 {object} respond.ErrorResponse
// @Router /matches/{id} [delete]
func (h *Handler) DeleteMatch(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	err := h.store.Delete(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		respond.WriteError(w, http.StatusNotFound, respond.CodeNotFound, "Match not found")
		return
	}
	if err != nil {
		h.storeError(w, r, "delete", err)
		return
	}
	h.changed()
	w.WriteHeader(http.StatusNoContent)
}

// ClearMatches removes every record. Requires confirm=true.
// @Summary Clear all matches
// @Tags matches
// @Produce json
// @Param confirm query bool true "Must be true"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} respond.ErrorResponse
// @Router /matches [delete]
func (h *Handler) ClearMatches(w http.ResponseWriter, r *http.Request) {
	if ok, _ := strconv.ParseBool(r.URL.Query().Get("confirm")); !ok {
		respond.WriteErrorDetail(w, http.StatusBadRequest, respond.CodeBadRequest,
			"Confirmation required", "pass confirm=true to delete every match")
		return
	}
	before, err := h.store.Summary(r.Context())
	if err != nil {
		h.storeError(w, r, "summary", err)
		return
	}
	if err := h.store.Replace(r.Context(), nil); err != nil {
		h.storeError(w, r, "clear", err)
		return
	}
	h.changed()
	h.logger.Info("All matches cleared", "deleted", before.Count)
	respond.WriteJSON(w, http.StatusOK, map[string]any{"deleted": before.Count})
}

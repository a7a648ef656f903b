package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/albapepper/gvg-tracker/internal/api/respond"
	"github.com/albapepper/gvg-tracker/internal/exchange"
	"github.com/albapepper/gvg-tracker/internal/seed"
)

// Export downloads every record as a portable JSON file.
// @Summary Export all matches
// @Tags transfer
// @Produce json
// @Success 200 {object} exchange.Envelope
// @Router /export [get]
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	recs, err := h.store.List(r.Context())
	if err != nil {
		h.storeError(w, r, "export", err)
		return
	}
	now := h.now()
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf(`attachment; filename="gvg-3v3-%s.json"`, now.UTC().Format("2006-01-02")))
	if err := exchange.Export(w, recs, now); err != nil {
		h.logger.Warn("Export write failed", "error", err)
	}
}

// Import loads an exported file (or a bare JSON array of records).
// @Summary Import matches
// @Description mode=merge (default) deduplicates against stored records; mode=replace discards them. Invalid elements are skipped and reported.
// @Tags transfer
// @Accept json
// @Produce json
// @Param mode query string false "merge or replace"
// @Param body body exchange.Envelope true "Export envelope or array of records"
// @Success 200 {object} seed.Result
// @Failure 400 {object} respond.ErrorResponse
// @Failure 422 {object} respond.ErrorResponse
// @Router /import [post]
func (h *Handler) Import(w http.ResponseWriter, r *http.Request) {
	mode, err := seed.ParseMode(r.URL.Query().Get("mode"))
	if err != nil {
		respond.WriteError(w, http.StatusBadRequest, respond.CodeBadRequest, err.Error())
		return
	}

	res, err := seed.Import(r.Context(), h.store, http.MaxBytesReader(w, r.Body, maxBodyBytes), mode, h.now(), h.logger)
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		respond.WriteError(w, http.StatusRequestEntityTooLarge, "IMPORT_TOO_LARGE",
			fmt.Sprintf("Import exceeds %d bytes", tooLarge.Limit))
		return
	case errors.Is(err, exchange.ErrMalformed):
		respond.WriteErrorDetail(w, http.StatusBadRequest, "MALFORMED_IMPORT", "Import is not valid JSON", err.Error())
		return
	case errors.Is(err, exchange.ErrEmptyImport):
		respond.WriteError(w, http.StatusUnprocessableEntity, "EMPTY_IMPORT", err.Error())
		return
	case errors.Is(err, exchange.ErrNothingValid):
		respond.WriteErrorDetail(w, http.StatusUnprocessableEntity, "NOTHING_VALID", err.Error(),
			fmt.Sprintf("%d of %d records rejected", res.Rejected, res.Read))
		return
	case err != nil:
		h.storeError(w, r, "import", err)
		return
	}
	h.changed()
	respond.WriteJSON(w, http.StatusOK, res)
}

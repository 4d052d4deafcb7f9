package handle

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"speciesnet-api/api/internal/store"
)

const listLimit = 100

// Predictions handles GET /predictions.
func (h *Handle) Predictions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.methodNotAllowed(w)
		return
	}
	recs, err := h.preds.List(r.Context(), listLimit)
	if err != nil {
		h.internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, recs)
}

// Prediction handles GET /predictions/{id}.
func (h *Handle) Prediction(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.methodNotAllowed(w)
		return
	}
	idPart := strings.TrimPrefix(r.URL.Path, "/predictions/")
	id, err := strconv.ParseInt(idPart, 10, 64)
	if err != nil || id <= 0 {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":   "Invalid prediction id",
			"message": "The prediction id must be a positive integer",
		})
		return
	}
	rec, err := h.preds.Find(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]any{
				"error":   "Prediction not found",
				"message": "No prediction exists with id " + idPart,
			})
			return
		}
		h.internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

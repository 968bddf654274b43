package handlers

import (
	"net/http"

	"placetrack/internal/ledger"
	"placetrack/internal/middleware"
	"placetrack/internal/repo"
)

// ==========================
// StatsHandler
// ==========================
type StatsHandler struct {
	Places  *repo.PlaceRepo
	Records *repo.RecordRepo
}

// GetStats returns the global summary across all of the caller's places.
func (h *StatsHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		JSONError(w, "invalid token", http.StatusUnauthorized)
		return
	}

	placeCount, err := h.Places.CountByUser(r.Context(), userID)
	if err != nil {
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	records, err := h.Records.ListByUser(r.Context(), userID)
	if err != nil {
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	JSONResponse(w, ledger.Summarize(placeCount, records))
}

package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"placetrack/internal/ledger"
	"placetrack/internal/metrics"
	"placetrack/internal/middleware"
	"placetrack/internal/models"
	"placetrack/internal/repo"
)

// ==========================
// PlaceHandler
// ==========================
type PlaceHandler struct {
	Repo      *repo.PlaceRepo
	Records   *repo.RecordRepo
	AuditRepo *repo.AuditRepo
}

// placeWithStats is the list/detail shape: the place plus its aggregated totals.
type placeWithStats struct {
	models.Place
	ledger.PlaceStats
}

// ==========================
// Create Place
// ==========================
func (h *PlaceHandler) CreatePlace(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		JSONError(w, "invalid token", http.StatusUnauthorized)
		return
	}

	var input struct {
		Name string `json:"name" validate:"required,min=1,max=255"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(input); err != nil {
		JSONValidationError(w, "validation failed", map[string]string{"name": "required"}, http.StatusBadRequest)
		return
	}

	place, err := h.Repo.Create(r.Context(), userID, input.Name)
	if errors.Is(err, repo.ErrDuplicate) {
		JSONError(w, "place already exists", http.StatusBadRequest)
		return
	}
	if err != nil {
		slog.Error("create place failed", "error", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	if h.AuditRepo != nil {
		if err := h.AuditRepo.Log(r.Context(), userID, "create", "place", place.ID, place.Name); err != nil {
			slog.Warn("audit log failed", "action", "create place", "error", err)
		}
	}
	metrics.IncPlaces("created")

	JSONResponse(w, map[string]interface{}{"place": place})
}

// ==========================
// List Places (with stats)
// ==========================
func (h *PlaceHandler) ListPlaces(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		JSONError(w, "invalid token", http.StatusUnauthorized)
		return
	}

	places, err := h.Repo.ListByUser(r.Context(), userID)
	if err != nil {
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	// One query for every record the user owns; grouping happens in memory.
	records, err := h.Records.ListByUser(r.Context(), userID)
	if err != nil {
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}
	statsByPlace := ledger.ComputeByPlace(records)

	out := make([]placeWithStats, 0, len(places))
	for _, p := range places {
		out = append(out, placeWithStats{Place: p, PlaceStats: statsByPlace[p.ID]})
	}

	JSONResponse(w, map[string]interface{}{"places": out})
}

// ==========================
// Get Place (with records)
// ==========================
func (h *PlaceHandler) GetPlace(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		JSONError(w, "invalid token", http.StatusUnauthorized)
		return
	}

	slug := chi.URLParam(r, "slug")

	place, err := h.Repo.GetBySlug(r.Context(), userID, slug)
	if err != nil {
		JSONError(w, "place not found", http.StatusNotFound)
		return
	}

	records, err := h.Records.ListByPlace(r.Context(), place.ID)
	if err != nil {
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}
	if records == nil {
		records = []models.Record{}
	}

	JSONResponse(w, map[string]interface{}{
		"place":   placeWithStats{Place: *place, PlaceStats: ledger.Compute(records)},
		"records": records,
	})
}

// ==========================
// Delete Place (cascades records)
// ==========================
func (h *PlaceHandler) DeletePlace(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		JSONError(w, "invalid token", http.StatusUnauthorized)
		return
	}

	slug := chi.URLParam(r, "slug")

	place, err := h.Repo.GetBySlug(r.Context(), userID, slug)
	if err != nil {
		JSONError(w, "place not found", http.StatusNotFound)
		return
	}

	if err := h.Repo.Delete(r.Context(), userID, place.ID); err != nil {
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	if h.AuditRepo != nil {
		if err := h.AuditRepo.Log(r.Context(), userID, "delete", "place", place.ID, place.Name); err != nil {
			slog.Warn("audit log failed", "action", "delete place", "error", err)
		}
	}
	metrics.IncPlaces("deleted")

	JSONResponse(w, map[string]string{"message": "place deleted"})
}

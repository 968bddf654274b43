package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"placetrack/internal/metrics"
	"placetrack/internal/middleware"
	"placetrack/internal/models"
	"placetrack/internal/repo"
)

// ==========================
// RecordHandler
// ==========================
type RecordHandler struct {
	Repo      *repo.RecordRepo
	Places    *repo.PlaceRepo
	AuditRepo *repo.AuditRepo
}

// ==========================
// Create Record
// ==========================
func (h *RecordHandler) CreateRecord(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		JSONError(w, "invalid token", http.StatusUnauthorized)
		return
	}

	var input struct {
		PlaceID    string  `json:"placeId"`
		Date       string  `json:"date"`
		MoneyGiven float64 `json:"moneyGiven"`
		MoneyUsed  float64 `json:"moneyUsed"`
		PowerUnits float64 `json:"powerUnits"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	fields := make(map[string]string)
	if input.PlaceID == "" {
		fields["placeId"] = "required"
	}
	var date time.Time
	if input.Date == "" {
		fields["date"] = "required"
	} else {
		var err error
		date, err = models.ParseRecordDate(input.Date)
		if err != nil {
			fields["date"] = "must be an ISO-8601 date"
		}
	}
	if input.MoneyGiven < 0 {
		fields["moneyGiven"] = "must not be negative"
	}
	if input.MoneyUsed < 0 {
		fields["moneyUsed"] = "must not be negative"
	}
	if input.PowerUnits < 0 {
		fields["powerUnits"] = "must not be negative"
	}
	if len(fields) > 0 {
		JSONValidationError(w, "validation failed", fields, http.StatusBadRequest)
		return
	}

	// Ownership check doubles as existence check: a foreign place is a 404.
	place, err := h.Places.GetByID(r.Context(), userID, input.PlaceID)
	if err != nil {
		JSONError(w, "place not found", http.StatusNotFound)
		return
	}

	record, err := h.Repo.Create(r.Context(), place.ID, date, input.MoneyGiven, input.MoneyUsed, input.PowerUnits)
	if err != nil {
		slog.Error("create record failed", "error", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	if h.AuditRepo != nil {
		if err := h.AuditRepo.Log(r.Context(), userID, "create", "record", record.ID, place.Name); err != nil {
			slog.Warn("audit log failed", "action", "create record", "error", err)
		}
	}
	metrics.IncRecords("created")

	JSONResponse(w, map[string]interface{}{"record": record})
}

// ==========================
// Delete Record
// ==========================
func (h *RecordHandler) DeleteRecord(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		JSONError(w, "invalid token", http.StatusUnauthorized)
		return
	}

	id := chi.URLParam(r, "id")

	if err := h.Repo.Delete(r.Context(), userID, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			JSONError(w, "record not found", http.StatusNotFound)
			return
		}
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	if h.AuditRepo != nil {
		if err := h.AuditRepo.Log(r.Context(), userID, "delete", "record", id, ""); err != nil {
			slog.Warn("audit log failed", "action", "delete record", "error", err)
		}
	}
	metrics.IncRecords("deleted")

	JSONResponse(w, map[string]string{"message": "record deleted"})
}

package handler

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"mindtrack/internal/api"
	"mindtrack/internal/domain/entity"
	"mindtrack/internal/domain/errs"
	"mindtrack/internal/domain/service"
	"mindtrack/internal/middleware"
)

// RecordHandler serves the habit catalog and raw record sets
type RecordHandler struct {
	records service.RecordService
	logger  *zap.Logger
}

// NewRecordHandler creates a new record handler
func NewRecordHandler(records service.RecordService, logger *zap.Logger) *RecordHandler {
	return &RecordHandler{
		records: records,
		logger:  logger.Named("record_handler"),
	}
}

// Catalog returns the caller's habits and open goal count
// @Summary Habit catalog
// @Tags records
// @Produce json
// @Security CookieAuth
// @Success 200 {object} api.CatalogResponse
// @Failure 401 {object} api.ErrorResponse
// @Router /api/catalog [get]
func (h *RecordHandler) Catalog(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r)
	if !ok {
		api.WriteError(w, errs.ErrUnauthenticated)
		return
	}

	catalog, err := h.records.Catalog(r.Context(), principal.UserID)
	if err != nil {
		h.logger.Error("failed to load catalog", zap.Error(err))
		api.WriteError(w, err)
		return
	}

	api.WriteJSON(w, http.StatusOK, api.CatalogResponse(*catalog))
}

// HabitRecords returns the caller's habit records
// @Summary Habit records
// @Tags records
// @Produce json
// @Security CookieAuth
// @Param start_date query string false "First day, YYYY-MM-DD"
// @Param end_date query string false "Last day, YYYY-MM-DD"
// @Success 200 {object} api.HabitRecordsResponse
// @Failure 400 {object} api.ErrorResponse
// @Failure 401 {object} api.ErrorResponse
// @Router /api/habit_records [get]
func (h *RecordHandler) HabitRecords(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r)
	if !ok {
		api.WriteError(w, errs.ErrUnauthenticated)
		return
	}

	rng, err := parseRange(r)
	if err != nil {
		api.WriteError(w, err)
		return
	}

	records, err := h.records.HabitRecords(r.Context(), principal.UserID, rng)
	if err != nil {
		api.WriteError(w, err)
		return
	}

	api.WriteJSON(w, http.StatusOK, api.HabitRecordsResponse{Records: records})
}

// MoodRecords returns the caller's mood records
// @Summary Mood records
// @Tags records
// @Produce json
// @Security CookieAuth
// @Param start_date query string false "First day, YYYY-MM-DD"
// @Param end_date query string false "Last day, YYYY-MM-DD"
// @Success 200 {object} api.MoodRecordsResponse
// @Failure 400 {object} api.ErrorResponse
// @Failure 401 {object} api.ErrorResponse
// @Router /api/mood_records [get]
func (h *RecordHandler) MoodRecords(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r)
	if !ok {
		api.WriteError(w, errs.ErrUnauthenticated)
		return
	}

	rng, err := parseRange(r)
	if err != nil {
		api.WriteError(w, err)
		return
	}

	moods, err := h.records.MoodRecords(r.Context(), principal.UserID, rng)
	if err != nil {
		api.WriteError(w, err)
		return
	}

	api.WriteJSON(w, http.StatusOK, api.MoodRecordsResponse{Records: moods})
}

// parseRange reads start_date and end_date. Both absent yields the zero range.
func parseRange(r *http.Request) (entity.DateRange, error) {
	q := r.URL.Query()
	start, end := q.Get(api.ParamStartDate), q.Get(api.ParamEndDate)

	switch {
	case start == "" && end == "":
		return entity.DateRange{}, nil
	case start == "" || end == "":
		return entity.DateRange{}, errs.New(errs.ErrInvalidRange, "Both start_date and end_date are required.")
	}
	return entity.ParseDateRange(start, end)
}

// parseHabitIDs reads the comma separated habit_ids parameter
func parseHabitIDs(r *http.Request) ([]uuid.UUID, error) {
	raw := r.URL.Query().Get(api.ParamHabitIDs)
	if raw == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ",")
	ids := make([]uuid.UUID, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := uuid.Parse(part)
		if err != nil {
			return nil, errs.Wrap(errs.ErrValidation, "Invalid habit id: "+part, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

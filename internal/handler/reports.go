package handler

import (
	"net/http"

	"go.uber.org/zap"

	"mindtrack/internal/api"
	"mindtrack/internal/domain/errs"
	"mindtrack/internal/domain/service"
	"mindtrack/internal/middleware"
)

// ReportHandler serves the derived reports
type ReportHandler struct {
	reports service.ReportService
	logger  *zap.Logger
}

// NewReportHandler creates a new report handler
func NewReportHandler(reports service.ReportService, logger *zap.Logger) *ReportHandler {
	return &ReportHandler{
		reports: reports,
		logger:  logger.Named("report_handler"),
	}
}

// DashboardSummary returns the per-day activity series
// @Summary Dashboard summary
// @Description Habits completed and mood per day; defaults to the last 7 days including today
// @Tags reports
// @Produce json
// @Security CookieAuth
// @Param start_date query string false "First day, YYYY-MM-DD"
// @Param end_date query string false "Last day, YYYY-MM-DD"
// @Success 200 {object} entity.DashboardSummary
// @Failure 400 {object} api.ErrorResponse
// @Failure 401 {object} api.ErrorResponse
// @Router /api/reports/dashboard_summary [get]
func (h *ReportHandler) DashboardSummary(w http.ResponseWriter, r *http.Request) {
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

	summary, err := h.reports.DashboardSummary(r.Context(), principal.UserID, rng)
	if err != nil {
		h.fail(w, "dashboard summary failed", err)
		return
	}

	api.WriteJSON(w, http.StatusOK, summary)
}

// CorrelationReport returns the mood means of the selected habits
// @Summary Habit/mood correlation
// @Description Mean mood on days each selected habit was completed and missed
// @Tags reports
// @Produce json
// @Security CookieAuth
// @Param start_date query string false "First day, YYYY-MM-DD"
// @Param end_date query string false "Last day, YYYY-MM-DD"
// @Param habit_ids query string true "Comma separated habit ids"
// @Success 200 {object} entity.CorrelationReport
// @Failure 400 {object} api.ErrorResponse
// @Failure 401 {object} api.ErrorResponse
// @Failure 403 {object} api.ErrorResponse
// @Router /api/reports/correlation_report [get]
func (h *ReportHandler) CorrelationReport(w http.ResponseWriter, r *http.Request) {
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

	habitIDs, err := parseHabitIDs(r)
	if err != nil {
		api.WriteError(w, err)
		return
	}

	report, err := h.reports.CorrelationReport(r.Context(), principal.UserID, rng, habitIDs)
	if err != nil {
		h.fail(w, "correlation report failed", err)
		return
	}

	api.WriteJSON(w, http.StatusOK, report)
}

// DailyData returns the consolidated per-day habits and mood
// @Summary Daily data
// @Tags reports
// @Produce json
// @Security CookieAuth
// @Param start_date query string false "First day, YYYY-MM-DD"
// @Param end_date query string false "Last day, YYYY-MM-DD"
// @Success 200 {object} api.DailyDataResponse
// @Failure 400 {object} api.ErrorResponse
// @Failure 401 {object} api.ErrorResponse
// @Router /api/reports/daily_data [get]
func (h *ReportHandler) DailyData(w http.ResponseWriter, r *http.Request) {
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

	days, err := h.reports.DailyData(r.Context(), principal.UserID, rng)
	if err != nil {
		h.fail(w, "daily data failed", err)
		return
	}

	api.WriteJSON(w, http.StatusOK, api.DailyDataResponse{Days: days})
}

func (h *ReportHandler) fail(w http.ResponseWriter, msg string, err error) {
	if api.StatusCode(err) >= http.StatusInternalServerError {
		h.logger.Error(msg, zap.Error(err))
	}
	api.WriteError(w, err)
}

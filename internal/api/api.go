// Package api holds the HTTP paths and JSON bodies shared by the mindtrack
// service and its client.
package api

import (
	"mindtrack/internal/domain/entity"
)

// CookieName is the bearer cookie carrying the access token
const CookieName = "access_token_cookie"

// Query parameter names
const (
	ParamStartDate = "start_date"
	ParamEndDate   = "end_date"
	ParamHabitIDs  = "habit_ids"
)

// Endpoint paths
const (
	PathVerifyToken      = "/api/auth/verify_token"
	PathLogin            = "/api/auth/login"
	PathLogout           = "/api/auth/logout"
	PathProfile          = "/api/users/profile"
	PathCatalog          = "/api/catalog"
	PathHabitRecords     = "/api/habit_records"
	PathMoodRecords      = "/api/mood_records"
	PathDashboardSummary = "/api/reports/dashboard_summary"
	PathCorrelation      = "/api/reports/correlation_report"
	PathDailyData        = "/api/reports/daily_data"
	PathAdminUsers       = "/api/admin/users"
	PathAdminUser        = "/api/admin/users/{id}"
	PathHealth           = "/health"
	PathMetrics          = "/metrics"
)

// LoginRequest is the body of POST /api/auth/login
type LoginRequest = entity.Credentials

// ProfileRequest is the body of PUT /api/users/profile
type ProfileRequest = entity.IdentityPatch

// AccessRequest is the body of PUT /api/admin/users/{id}
type AccessRequest = entity.AccessPatch

// UserResponse is returned by verify_token, login and profile updates
type UserResponse struct {
	Message string           `json:"message,omitempty"`
	User    *entity.Identity `json:"user"`
}

// MessageResponse is a plain acknowledgement
type MessageResponse struct {
	Message string `json:"message"`
}

// CatalogResponse is returned by GET /api/catalog
type CatalogResponse = entity.Catalog

// HabitRecordsResponse is returned by GET /api/habit_records
type HabitRecordsResponse struct {
	Records []entity.HabitRecord `json:"records"`
}

// MoodRecordsResponse is returned by GET /api/mood_records
type MoodRecordsResponse struct {
	Records []entity.MoodRecord `json:"records"`
}

// DailyDataResponse is returned by GET /api/reports/daily_data
type DailyDataResponse struct {
	Days []entity.DayDetail `json:"days"`
}

// UsersResponse is returned by GET /api/admin/users
type UsersResponse struct {
	Users []*entity.Identity `json:"users"`
}

// ErrorResponse is the body of every non-2xx response
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

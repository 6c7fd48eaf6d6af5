package handler

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"mindtrack/internal/api"
	"mindtrack/internal/domain/errs"
	"mindtrack/internal/domain/service"
	"mindtrack/internal/middleware"
)

// UserHandler handles profile and admin user requests
type UserHandler struct {
	users  service.UserService
	logger *zap.Logger
}

// NewUserHandler creates a new user handler
func NewUserHandler(users service.UserService, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		users:  users,
		logger: logger.Named("user_handler"),
	}
}

// UpdateProfile applies a profile patch
// @Summary Update profile
// @Description Change display name and/or email; returns the replacement identity
// @Tags users
// @Accept json
// @Produce json
// @Security CookieAuth
// @Param request body api.ProfileRequest true "Profile fields"
// @Success 200 {object} api.UserResponse
// @Failure 400 {object} api.ErrorResponse
// @Failure 401 {object} api.ErrorResponse
// @Failure 409 {object} api.ErrorResponse
// @Router /api/users/profile [put]
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r)
	if !ok {
		api.WriteError(w, errs.ErrUnauthenticated)
		return
	}

	var req api.ProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, errs.Wrap(errs.ErrValidation, "Invalid request body", err))
		return
	}

	identity, err := h.users.UpdateProfile(r.Context(), principal.UserID, req)
	if err != nil {
		if api.StatusCode(err) >= http.StatusInternalServerError {
			h.logger.Error("failed to update profile", zap.String("user_id", principal.UserID.String()), zap.Error(err))
		}
		api.WriteError(w, err)
		return
	}

	api.WriteJSON(w, http.StatusOK, api.UserResponse{
		Message: "Profile updated",
		User:    identity,
	})
}

// ListUsers returns every user
// @Summary List users
// @Description Admin only
// @Tags admin
// @Produce json
// @Security CookieAuth
// @Success 200 {object} api.UsersResponse
// @Failure 401 {object} api.ErrorResponse
// @Failure 403 {object} api.ErrorResponse
// @Router /api/admin/users [get]
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.ListUsers(r.Context())
	if err != nil {
		h.logger.Error("failed to list users", zap.Error(err))
		api.WriteError(w, err)
		return
	}

	api.WriteJSON(w, http.StatusOK, api.UsersResponse{Users: users})
}

// UpdateAccess changes another user's role or active flag
// @Summary Update user access
// @Description Admin only. An admin cannot deactivate or demote their own account.
// @Tags admin
// @Accept json
// @Produce json
// @Security CookieAuth
// @Param id path string true "User ID"
// @Param request body api.AccessRequest true "Access fields"
// @Success 200 {object} api.UserResponse
// @Failure 400 {object} api.ErrorResponse
// @Failure 401 {object} api.ErrorResponse
// @Failure 403 {object} api.ErrorResponse
// @Failure 404 {object} api.ErrorResponse
// @Router /api/admin/users/{id} [put]
func (h *UserHandler) UpdateAccess(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r)
	if !ok {
		api.WriteError(w, errs.ErrUnauthenticated)
		return
	}

	userID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		api.WriteError(w, errs.New(errs.ErrValidation, "Invalid user ID"))
		return
	}

	var req api.AccessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, errs.Wrap(errs.ErrValidation, "Invalid request body", err))
		return
	}

	identity, err := h.users.UpdateAccess(r.Context(), principal.UserID, userID, req)
	if err != nil {
		if api.StatusCode(err) >= http.StatusInternalServerError {
			h.logger.Error("failed to update user access", zap.String("user_id", userID.String()), zap.Error(err))
		}
		api.WriteError(w, err)
		return
	}

	api.WriteJSON(w, http.StatusOK, api.UserResponse{
		Message: "User access updated",
		User:    identity,
	})
}

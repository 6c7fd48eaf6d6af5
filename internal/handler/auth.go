package handler

import (
	"encoding/json"
	"net"
	"net/http"

	"go.uber.org/zap"

	"mindtrack/internal/api"
	"mindtrack/internal/domain/errs"
	"mindtrack/internal/domain/service"
	"mindtrack/internal/middleware"
)

// AuthHandler handles login, logout and session verification
type AuthHandler struct {
	auth         service.AuthService
	users        service.UserService
	secureCookie bool
	logger       *zap.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(auth service.AuthService, users service.UserService, secureCookie bool, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		auth:         auth,
		users:        users,
		secureCookie: secureCookie,
		logger:       logger.Named("auth_handler"),
	}
}

// Login handles user authentication
// @Summary User login
// @Description Authenticate with email and password; the session is returned in the access_token_cookie cookie
// @Tags auth
// @Accept json
// @Produce json
// @Param request body api.LoginRequest true "Login credentials"
// @Success 200 {object} api.UserResponse
// @Failure 400 {object} api.ErrorResponse
// @Failure 401 {object} api.ErrorResponse
// @Failure 500 {object} api.ErrorResponse
// @Router /api/auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req api.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, errs.Wrap(errs.ErrValidation, "Invalid request body", err))
		return
	}

	var ipAddr *net.IP
	if ip := net.ParseIP(middleware.ClientIP(r)); ip != nil {
		ipAddr = &ip
	}
	userAgent := r.UserAgent()

	user, token, err := h.auth.Login(r.Context(), req, ipAddr, &userAgent)
	if err != nil {
		h.logFailure("login failed", err)
		api.WriteError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     api.CookieName,
		Value:    token.Token,
		Path:     "/",
		Expires:  token.ExpiresAt,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})

	api.WriteJSON(w, http.StatusOK, api.UserResponse{
		Message: "Login successful",
		User:    user.ToIdentity(),
	})
}

// Logout handles user logout
// @Summary User logout
// @Description Invalidate the current session and clear the cookie
// @Tags auth
// @Produce json
// @Security CookieAuth
// @Success 200 {object} api.MessageResponse
// @Failure 401 {object} api.ErrorResponse
// @Failure 500 {object} api.ErrorResponse
// @Router /api/auth/logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r)
	if !ok {
		api.WriteError(w, errs.ErrUnauthenticated)
		return
	}

	if err := h.auth.Logout(r.Context(), principal); err != nil {
		h.logFailure("logout failed", err)
		api.WriteError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     api.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})

	api.WriteJSON(w, http.StatusOK, api.MessageResponse{Message: "Logout successful"})
}

// VerifyToken returns the identity bound to the current session
// @Summary Verify session
// @Description Revalidate the session cookie and return the current identity
// @Tags auth
// @Produce json
// @Security CookieAuth
// @Success 200 {object} api.UserResponse
// @Failure 401 {object} api.ErrorResponse
// @Router /api/auth/verify_token [get]
func (h *AuthHandler) VerifyToken(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r)
	if !ok {
		api.WriteError(w, errs.ErrUnauthenticated)
		return
	}

	identity, err := h.users.GetIdentity(r.Context(), principal.UserID)
	if err != nil {
		api.WriteError(w, err)
		return
	}

	api.WriteJSON(w, http.StatusOK, api.UserResponse{
		Message: "Token is valid",
		User:    identity,
	})
}

func (h *AuthHandler) logFailure(msg string, err error) {
	if api.StatusCode(err) >= http.StatusInternalServerError {
		h.logger.Error(msg, zap.Error(err))
		return
	}
	h.logger.Debug(msg, zap.Error(err))
}

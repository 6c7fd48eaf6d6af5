package middleware

import (
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"mindtrack/internal/access"
	"mindtrack/internal/api"
	"mindtrack/internal/domain/entity"
	"mindtrack/internal/domain/errs"
	"mindtrack/internal/domain/service"
)

type contextKey string

const principalKey contextKey = "principal"

// AuthMiddleware resolves the caller from the session cookie or a bearer header
type AuthMiddleware struct {
	auth   service.AuthService
	logger *zap.Logger
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(auth service.AuthService, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		auth:   auth,
		logger: logger.Named("auth"),
	}
}

// Auth rejects requests without a live session with 401
func (m *AuthMiddleware) Auth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, err := extractToken(r)
		if err != nil {
			api.WriteError(w, err)
			return
		}

		principal, err := m.auth.ValidateAccessToken(r.Context(), token)
		if err != nil {
			m.logger.Debug("token rejected", zap.String("path", r.URL.Path), zap.Error(err))
			api.WriteError(w, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), *principal)))
	}
}

// RequireRole rejects authenticated callers whose role is not allowed with 403.
// It must run inside Auth.
func RequireRole(roles ...entity.Role) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			principal, ok := GetPrincipal(r)
			if !ok {
				api.WriteError(w, errs.ErrUnauthenticated)
				return
			}
			if !access.HasRole(principal.Role, roles...) {
				api.WriteError(w, errs.New(errs.ErrForbidden, "You do not have access to this resource."))
				return
			}
			next.ServeHTTP(w, r)
		}
	}
}

// extractToken prefers the session cookie and falls back to Authorization: Bearer
func extractToken(r *http.Request) (string, error) {
	if cookie, err := r.Cookie(api.CookieName); err == nil && cookie.Value != "" {
		return cookie.Value, nil
	}

	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", errs.New(errs.ErrUnauthenticated, "Token is missing")
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", errs.New(errs.ErrUnauthenticated, "Invalid authorization header format")
	}
	return parts[1], nil
}

// WithPrincipal stores the authenticated caller in ctx
func WithPrincipal(ctx context.Context, p service.Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// GetPrincipal extracts the authenticated caller from the request context
func GetPrincipal(r *http.Request) (service.Principal, bool) {
	p, ok := r.Context().Value(principalKey).(service.Principal)
	return p, ok
}

package handler

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"

	"mindtrack/internal/api"
	"mindtrack/internal/domain/entity"
	"mindtrack/internal/middleware"
)

// Router sets up HTTP routes
type Router struct {
	authHandler    *AuthHandler
	userHandler    *UserHandler
	recordHandler  *RecordHandler
	reportHandler  *ReportHandler
	authMiddleware *middleware.AuthMiddleware
	rateLimiter    *middleware.RateLimiter
	metricsPath    string
	logger         *zap.Logger
	mux            *http.ServeMux
}

// NewRouter creates a new router. An empty metricsPath disables /metrics.
func NewRouter(
	authHandler *AuthHandler,
	userHandler *UserHandler,
	recordHandler *RecordHandler,
	reportHandler *ReportHandler,
	authMiddleware *middleware.AuthMiddleware,
	rateLimiter *middleware.RateLimiter,
	metricsPath string,
	logger *zap.Logger,
) *Router {
	return &Router{
		authHandler:    authHandler,
		userHandler:    userHandler,
		recordHandler:  recordHandler,
		reportHandler:  reportHandler,
		authMiddleware: authMiddleware,
		rateLimiter:    rateLimiter,
		metricsPath:    metricsPath,
		logger:         logger,
		mux:            http.NewServeMux(),
	}
}

// Setup configures all routes
func (r *Router) Setup() http.Handler {
	auth := r.authMiddleware.Auth
	admin := func(next http.HandlerFunc) http.HandlerFunc {
		return auth(middleware.RequireRole(entity.RoleAdmin)(next))
	}

	r.mux.HandleFunc("POST "+api.PathLogin, r.authHandler.Login)
	r.mux.HandleFunc("POST "+api.PathLogout, auth(r.authHandler.Logout))
	r.mux.HandleFunc("GET "+api.PathVerifyToken, auth(r.authHandler.VerifyToken))

	r.mux.HandleFunc("PUT "+api.PathProfile, auth(r.userHandler.UpdateProfile))
	r.mux.HandleFunc("GET "+api.PathAdminUsers, admin(r.userHandler.ListUsers))
	r.mux.HandleFunc("PUT "+api.PathAdminUser, admin(r.userHandler.UpdateAccess))

	r.mux.HandleFunc("GET "+api.PathCatalog, auth(r.recordHandler.Catalog))
	r.mux.HandleFunc("GET "+api.PathHabitRecords, auth(r.recordHandler.HabitRecords))
	r.mux.HandleFunc("GET "+api.PathMoodRecords, auth(r.recordHandler.MoodRecords))

	r.mux.HandleFunc("GET "+api.PathDashboardSummary, auth(r.reportHandler.DashboardSummary))
	r.mux.HandleFunc("GET "+api.PathCorrelation, auth(r.reportHandler.CorrelationReport))
	r.mux.HandleFunc("GET "+api.PathDailyData, auth(r.reportHandler.DailyData))

	r.mux.HandleFunc("/swagger/", httpSwagger.WrapHandler)

	r.mux.HandleFunc("GET "+api.PathHealth, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	if r.metricsPath != "" {
		r.mux.Handle("GET "+r.metricsPath, promhttp.Handler())
	}

	var handler http.Handler = r.mux

	handler = middleware.Logging(r.logger)(handler)

	if r.rateLimiter != nil {
		handler = r.rateLimiter.Middleware(handler)
	}

	return handler
}

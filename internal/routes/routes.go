package routes

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stridehq/stride/internal/app"
	"github.com/stridehq/stride/internal/handler"
	"github.com/stridehq/stride/internal/middleware"
)

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	auth := handler.NewAuthHandler(app.AuthService)
	goal := handler.NewGoalHandler(app.GoalService)
	stats := handler.NewStatsHandler(app.StatsService, app.AchievementService)
	health := handler.NewHealthHandler(app.DB)

	mux := http.NewServeMux()

	// ============================================================================
	// PUBLIC ROUTES
	// ============================================================================

	mux.HandleFunc("GET /healthz", health.Health)
	mux.Handle("GET /metrics", promhttp.Handler())

	// Auth - credential endpoints (rate limited)
	rateLimiter := middleware.RateLimitAuth()

	mux.HandleFunc("POST /api/auth/register", rateLimiter(auth.Register))
	mux.HandleFunc("POST /api/auth/login", rateLimiter(auth.Login))

	// ============================================================================
	// PROTECTED ROUTES (/api/*)
	// ============================================================================

	// Session
	mux.HandleFunc("GET /api/auth/me", middleware.RequireAuth(auth.Me))

	// Goals
	mux.HandleFunc("GET /api/goals", middleware.RequireAuth(goal.List))
	mux.HandleFunc("POST /api/goals", middleware.RequireAuth(goal.Create))
	mux.HandleFunc("GET /api/goals/{id}", middleware.RequireAuth(goal.Detail))
	mux.HandleFunc("DELETE /api/goals/{id}", middleware.RequireAuth(goal.Delete))
	mux.HandleFunc("POST /api/goals/{id}/progress", middleware.RequireAuth(goal.LogProgress))
	mux.HandleFunc("PATCH /api/goals/{id}/milestones/{milestoneId}", middleware.RequireAuth(goal.ToggleMilestone))
	mux.HandleFunc("GET /api/goals/{id}/logs", middleware.RequireAuth(goal.Logs))

	// Derived views
	mux.HandleFunc("GET /api/stats", middleware.RequireAuth(stats.Stats))
	mux.HandleFunc("GET /api/achievements", middleware.RequireAuth(stats.Achievements))

	// ============================================================================
	// FALLBACK
	// ============================================================================

	mux.HandleFunc("/{path...}", func(w http.ResponseWriter, r *http.Request) {
		handler.RespondError(w, http.StatusNotFound, "Not found")
	})

	// Global middleware - executed in order (top to bottom)
	h := middleware.Chain(
		mux,
		middleware.Recover,
		middleware.RequestLogging,
		middleware.Metrics,
		middleware.Auth(app.AuthService, app.UserRepository),
	)

	return h
}

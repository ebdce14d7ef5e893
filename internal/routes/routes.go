package routes

import (
	"net/http"

	"github.com/momentumhq/momentum/internal/app"
	"github.com/momentumhq/momentum/internal/handler"
	"github.com/momentumhq/momentum/internal/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	auth := handler.NewAuthHandler(app.AuthService, app.Cfg)
	account := handler.NewAccountHandler(app.UserService, app.AuthService)
	habit := handler.NewHabitHandler(app.HabitService)
	goal := handler.NewGoalHandler(app.GoalService)
	task := handler.NewTaskHandler(app.TaskService)
	activity := handler.NewActivityHandler(app.ActivityService)
	social := handler.NewSocialHandler(app.RelationService)
	pomodoro := handler.NewPomodoroHandler(app.PomodoroService)
	fitness := handler.NewFitnessHandler(app.FitnessService)

	mux := http.NewServeMux()

	// ============================================================================
	// PUBLIC ROUTES
	// ============================================================================

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.Handle("GET /metrics", promhttp.Handler())

	// Auth - Authentication flow (rate limited)
	rateLimiter := middleware.RateLimitAuth(app.Cfg.AuthRateLimit)

	mux.HandleFunc("GET /signin", middleware.RequireGuest(auth.SignInEntry))
	mux.HandleFunc("POST /signup", rateLimiter.Middleware(middleware.RequireGuest(auth.SignUp)))
	mux.HandleFunc("POST /signin", rateLimiter.Middleware(middleware.RequireGuest(auth.SignIn)))
	mux.HandleFunc("POST /signout", auth.SignOut)
	mux.HandleFunc("GET /verify-email", rateLimiter.Middleware(auth.VerifyEmailLink))
	mux.HandleFunc("POST /verify-email", rateLimiter.Middleware(auth.VerifyEmail))

	// OAuth
	mux.HandleFunc("GET /auth/google", rateLimiter.Middleware(middleware.RequireGuest(auth.GoogleAuth)))
	mux.HandleFunc("GET /auth/google/callback", rateLimiter.Middleware(auth.GoogleCallback))
	mux.HandleFunc("GET /auth/github", rateLimiter.Middleware(middleware.RequireGuest(auth.GitHubAuth)))
	mux.HandleFunc("GET /auth/github/callback", rateLimiter.Middleware(auth.GitHubCallback))

	// ============================================================================
	// PROTECTED ROUTES (/api/*)
	// ============================================================================

	// Account
	mux.HandleFunc("GET /api/me", middleware.RequireAuth(account.Me))
	mux.HandleFunc("PATCH /api/me", middleware.RequireAuth(account.UpdateName))
	mux.HandleFunc("POST /api/me/avatar", middleware.RequireAuth(account.UploadAvatar))
	mux.HandleFunc("DELETE /api/me/avatar", middleware.RequireAuth(account.DeleteAvatar))
	mux.HandleFunc("DELETE /api/me", middleware.RequireAuth(account.Delete))
	mux.HandleFunc("POST /api/me/resend-verification", middleware.RequireAuth(auth.ResendVerification))

	// Habits
	mux.HandleFunc("GET /api/habits", middleware.RequireAuth(habit.List))
	mux.HandleFunc("POST /api/habits", middleware.RequireAuth(habit.Create))
	mux.HandleFunc("GET /api/habits/{id}", middleware.RequireAuth(habit.Get))
	mux.HandleFunc("PUT /api/habits/{id}", middleware.RequireAuth(habit.Update))
	mux.HandleFunc("POST /api/habits/{id}/complete", middleware.RequireAuth(habit.Complete))
	mux.HandleFunc("POST /api/habits/{id}/reset-streak", middleware.RequireAuth(habit.ResetStreak))
	mux.HandleFunc("DELETE /api/habits/{id}", middleware.RequireAuth(habit.Delete))

	// Goals
	mux.HandleFunc("GET /api/goals", middleware.RequireAuth(goal.List))
	mux.HandleFunc("POST /api/goals", middleware.RequireAuth(goal.Create))
	mux.HandleFunc("GET /api/goals/{id}", middleware.RequireAuth(goal.Get))
	mux.HandleFunc("PUT /api/goals/{id}", middleware.RequireAuth(goal.Update))
	mux.HandleFunc("POST /api/goals/{id}/complete", middleware.RequireAuth(goal.Complete))
	mux.HandleFunc("DELETE /api/goals/{id}", middleware.RequireAuth(goal.Delete))

	// Tasks
	mux.HandleFunc("GET /api/tasks", middleware.RequireAuth(task.List))
	mux.HandleFunc("POST /api/tasks", middleware.RequireAuth(task.Create))
	mux.HandleFunc("GET /api/tasks/{id}", middleware.RequireAuth(task.Get))
	mux.HandleFunc("PUT /api/tasks/{id}", middleware.RequireAuth(task.Update))
	mux.HandleFunc("PATCH /api/tasks/{id}/completed", middleware.RequireAuth(task.SetCompleted))
	mux.HandleFunc("DELETE /api/tasks/{id}", middleware.RequireAuth(task.Delete))

	// Activity
	mux.HandleFunc("GET /api/activities", middleware.RequireAuth(activity.List))
	mux.HandleFunc("GET /api/feed", middleware.RequireAuth(activity.Feed))

	// Social
	mux.HandleFunc("POST /api/social/follow/{id}", middleware.RequireAuth(social.Follow))
	mux.HandleFunc("DELETE /api/social/follow/{id}", middleware.RequireAuth(social.Unfollow))
	mux.HandleFunc("GET /api/social/followers", middleware.RequireAuth(social.Followers))
	mux.HandleFunc("GET /api/social/following", middleware.RequireAuth(social.Following))

	// Pomodoro
	mux.HandleFunc("POST /api/pomodoro", middleware.RequireAuth(pomodoro.Start))
	mux.HandleFunc("GET /api/pomodoro", middleware.RequireAuth(pomodoro.List))
	mux.HandleFunc("GET /api/pomodoro/active", middleware.RequireAuth(pomodoro.Active))
	mux.HandleFunc("POST /api/pomodoro/{id}/complete", middleware.RequireAuth(pomodoro.Complete))
	mux.HandleFunc("POST /api/pomodoro/{id}/interrupt", middleware.RequireAuth(pomodoro.Interrupt))

	// Fitness
	mux.HandleFunc("POST /api/fitness", middleware.RequireAuth(fitness.Create))
	mux.HandleFunc("GET /api/fitness", middleware.RequireAuth(fitness.List))
	mux.HandleFunc("DELETE /api/fitness/{id}", middleware.RequireAuth(fitness.Delete))

	// Global middleware - executed in order (top to bottom)
	h := middleware.Chain(
		mux,
		middleware.Monitoring,
		middleware.RequestLogging,
		middleware.Session(app.AuthService),
	)

	return h
}

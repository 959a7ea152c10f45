package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"companion-backend/internal/handlers"
	"companion-backend/internal/middleware"
	"companion-backend/internal/websocket"
)

func New(
	jwtAuth *middleware.JWTAuth,
	chatHandler *handlers.ChatHandler,
	settingsHandler *handlers.SettingsHandler,
	companionHandler *handlers.CompanionHandler,
	wsHub *websocket.Hub,
	frontendURL string,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.CORS(frontendURL))

	// Chat rate limiter (30 turns/min per user)
	chatLimiter := middleware.NewRateLimiter(30, time.Minute)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {

		// ──── Companion Config (public) ────
		r.Get("/companion/config", companionHandler.Config)

		// ──── Chat Routes ────
		r.Route("/chat", func(r chi.Router) {
			r.Use(jwtAuth.Middleware)
			r.With(chatLimiter.Middleware).Post("/", chatHandler.Chat)
			r.Get("/history", chatHandler.History)
		})

		// ──── Settings Routes ────
		r.Route("/user/settings", func(r chi.Router) {
			r.Use(jwtAuth.Middleware)
			r.Get("/", settingsHandler.Get)
			r.Put("/", settingsHandler.Update)
		})

		// ──── Progress & Analytics ────
		r.Group(func(r chi.Router) {
			r.Use(jwtAuth.Middleware)
			r.Get("/progress", companionHandler.Progress)
			r.Post("/progress/goals", companionHandler.CreateGoal)
			r.Put("/progress/goals/{goalID}", companionHandler.UpdateGoalProgress)
			r.Get("/analytics", companionHandler.Analytics)
		})

		// ──── WebSocket ────
		r.Get("/ws", wsHub.HandleWebSocket)
	})

	return r
}

package api

import (
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/mjcastro/gradesource-be/internal/api/handlers"
	"github.com/mjcastro/gradesource-be/internal/auth"
	"github.com/mjcastro/gradesource-be/internal/config"
	"github.com/mjcastro/gradesource-be/internal/services"
)

// NewRouter creates and configures a new Chi router.
func NewRouter(db *sql.DB, issuer *auth.Issuer, userService services.UserServiceProvider, classService services.ClassServiceProvider, cfg *config.Config) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.AllowedOrigin},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService, cfg.SecureCookie)
	classHandler := handlers.NewClassHandler(classService)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			http.Error(w, "database unreachable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	// API versioning
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
			r.Post("/signup", authHandler.Signup)
		})

		r.Route("/classes", func(r chi.Router) {
			r.Get("/", classHandler.List)
			r.Post("/", classHandler.Register)
		})

		// Routes below require a valid token
		r.Group(func(r chi.Router) {
			r.Use(issuer.Middleware())
			r.Get("/me", authHandler.GetMe)
		})
	})

	return r
}

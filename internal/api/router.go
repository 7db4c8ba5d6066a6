package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/eduportfolio/eduportfolio-be/internal/api/handlers"
	"github.com/eduportfolio/eduportfolio-be/internal/auth"
	"github.com/eduportfolio/eduportfolio-be/internal/services"
	"github.com/eduportfolio/eduportfolio-be/internal/web"
	"github.com/eduportfolio/eduportfolio-be/internal/websocket"
)

// NewRouter creates and configures a new Chi router.
func NewRouter(
	tokens *auth.TokenManager,
	acceptedOrigins []string,
	categoryService services.CategoryServiceProvider,
	moduleService services.ModuleServiceProvider,
	projectService services.ProjectServiceProvider,
	profileService services.ProfileServiceProvider,
	userService services.UserServiceProvider,
	statsService services.StatsServiceProvider,
	eventService services.EventServiceProvider,
	hub *websocket.Hub,
) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   acceptedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService, tokens)
	categoryHandler := handlers.NewCategoryHandler(categoryService, eventService)
	moduleHandler := handlers.NewModuleHandler(moduleService, eventService)
	projectHandler := handlers.NewProjectHandler(projectService, eventService)
	profileHandler := handlers.NewProfileHandler(profileService, eventService, tokens)
	statsHandler := handlers.NewStatsHandler(statsService)
	eventHandler := handlers.NewEventHandler(eventService)
	wsHandler := handlers.NewWebSocketHandler(hub, tokens)

	requireAuth := tokens.Middleware()

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/login", authHandler.Login)

		// Public read surface. Profile decides its own anonymous/admin
		// view, so it stays outside the auth group too.
		r.Get("/categories", categoryHandler.GetAll)
		r.Get("/modules", moduleHandler.GetAll)
		r.Get("/projects", projectHandler.GetAll)
		r.Get("/profile", profileHandler.Get)
		r.Get("/stats", statsHandler.Get)

		// Live admin activity feed; the handler checks the token itself
		// because browsers cannot send headers on the handshake.
		r.Get("/ws", wsHandler.Serve)

		// Admin-only surface
		r.Group(func(r chi.Router) {
			r.Use(requireAuth)

			r.Route("/categories/{id}", func(r chi.Router) {
				r.Get("/", categoryHandler.Get)
				r.Put("/", categoryHandler.Update)
				r.Delete("/", categoryHandler.Delete)
			})
			r.Post("/categories", categoryHandler.Create)

			r.Route("/modules/{id}", func(r chi.Router) {
				r.Get("/", moduleHandler.Get)
				r.Put("/", moduleHandler.Update)
				r.Delete("/", moduleHandler.Delete)
			})
			r.Post("/modules", moduleHandler.Create)

			r.Route("/projects/{id}", func(r chi.Router) {
				r.Get("/", projectHandler.Get)
				r.Put("/", projectHandler.Update)
				r.Delete("/", projectHandler.Delete)
			})
			r.Post("/projects", projectHandler.Create)

			r.Put("/profile", profileHandler.Update)
			r.Get("/events", eventHandler.GetRecent)
		})
	})

	// Embedded single-page client
	r.Handle("/*", web.Handler())

	return r
}

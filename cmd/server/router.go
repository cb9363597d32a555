package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/phrazzld/taskboard-api/internal/api"
	apimiddleware "github.com/phrazzld/taskboard-api/internal/api/middleware"
)

// setupRouter builds the router with the full middleware chain and all
// routes. Chain order matters: the security perimeter runs before routing,
// optional authentication runs before the rate limiter so authenticated
// requests are counted per principal, and security headers apply to every
// response including early rejections.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	authMiddleware := apimiddleware.NewAuthMiddleware(app.jwtService)

	r.Use(chimiddleware.RealIP)
	r.Use(apimiddleware.NewTraceMiddleware(app.logger).Handler)
	r.Use(chimiddleware.Recoverer)
	r.Use(apimiddleware.SecurityHeaders)
	r.Use(apimiddleware.SecurityPerimeter)
	r.Use(authMiddleware.AuthenticateOptional)
	r.Use(apimiddleware.NewRateLimiter(app.config.RateLimit))

	authHandler := api.NewAuthHandler(app.userService, app.jwtService)
	profileHandler := api.NewProfileHandler(app.userService)
	taskHandler := api.NewTaskHandler(app.taskService)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
		r.Post("/refresh", authHandler.RefreshToken)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.RequireAuthenticated)
			r.Get("/profile", profileHandler.Get)
			r.Put("/profile", profileHandler.Update)
			r.Patch("/profile", profileHandler.Update)
		})
	})

	// Task endpoints accept anonymous principals; the ownership policy is
	// applied in the service layer.
	r.Route("/api/tasks", func(r chi.Router) {
		r.Get("/", taskHandler.List)
		r.Post("/", taskHandler.Create)
		r.Get("/{id}", taskHandler.Get)
		r.Put("/{id}", taskHandler.Update)
		r.Patch("/{id}", taskHandler.Update)
		r.Delete("/{id}", taskHandler.Delete)
	})

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}

package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/jwhitfield/folio-api/internal/api"
	apiMiddleware "github.com/jwhitfield/folio-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	authHandler := api.NewAuthHandler(
		app.userStore,
		app.tokenService,
		app.passwordVerifier,
		app.config.Auth,
	)
	projectHandler := api.NewProjectHandler(app.projectStore)
	contactHandler := api.NewContactHandler(app.messageStore)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.tokenService)

	r.Route("/api", func(r chi.Router) {
		// Public endpoints
		r.Post("/auth/login", authHandler.Login)
		r.Get("/projects", projectHandler.ListPublished)
		r.Get("/projects/{slug}", projectHandler.GetBySlug)
		r.Post("/contact", contactHandler.Submit)

		// Admin endpoints
		r.Route("/admin", func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Get("/projects", projectHandler.ListAll)
			r.Post("/projects", projectHandler.Create)
			r.Put("/projects/{id}", projectHandler.Update)
			r.Delete("/projects/{id}", projectHandler.Delete)

			r.Get("/messages", contactHandler.ListMessages)
			r.Patch("/messages/{id}/status", contactHandler.UpdateMessageStatus)
			r.Delete("/messages/{id}", contactHandler.DeleteMessage)
		})
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}

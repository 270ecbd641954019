package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// setupPublicRoutes sets up the routes reachable without a token
func setupPublicRoutes(r chi.Router, handlers *routeHandlers) {
	r.Post("/auth/login", handlers.authHandler.login())
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Handle("/metrics", promhttp.Handler())
}

// setupAdminRoutes sets up all routes behind admin authentication
func setupAdminRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware) {
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.authenticate)
		r.Use(ColoredHTTPLoggingMiddleware)

		// Project Handler endpoints
		r.Get("/projects", handlers.projectHandler.getAllProjects())
		r.Get("/project/{projectID}", handlers.projectHandler.getProject())
		r.Post("/project", handlers.projectHandler.createProject())
		r.Put("/project/{projectID}", handlers.projectHandler.updateProject())
		r.Delete("/project/{projectID}", handlers.projectHandler.deleteProject())

		// Taxonomy Handler endpoints
		r.Get("/categories", handlers.taxonomyHandler.getCategories())
		r.Post("/category", handlers.taxonomyHandler.createCategory())
		r.Get("/tags", handlers.taxonomyHandler.getTags())
		r.Post("/tag", handlers.taxonomyHandler.createTag())

		// Token Handler endpoints
		r.Get("/tokens", handlers.tokenHandler.getTokens())
		r.Post("/tokens", handlers.tokenHandler.upsertToken())

		// Upload Handler endpoints
		r.Post("/upload", handlers.uploadHandler.uploadFile())
		r.Get("/project/{projectID}/files", handlers.uploadHandler.getProjectFiles())

		// Export Handler endpoints
		r.Get("/export", handlers.exportHandler.exportProjects())

		// Analytics Handler endpoints
		r.Get("/analytics", handlers.analyticsHandler.getAnalytics())

		// Import Handler endpoints
		r.Get("/external/{service}/projects", handlers.importHandler.listExternalProjects())
		r.Post("/external/{service}/import", handlers.importHandler.importProjects())
	})
}

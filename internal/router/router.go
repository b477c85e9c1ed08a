// Package router sets up all HTTP routes and middleware chains: the
// versioned management API under /api/v1, the draft preview endpoint,
// and the public catch-all that serves rendered sites by Host header.
package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"siteforge/internal/handlers"
	"siteforge/internal/middleware"
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(sites *handlers.Sites, pages *handlers.Pages, blocks *handlers.Blocks, uploads *handlers.Uploads, public *handlers.Public) chi.Router {
	r := chi.NewRouter()

	// Global middleware — applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)

	// Health check — no tenant header required.
	r.Get("/health", healthHandler)

	// Management API. The gateway in front authenticates tenants and
	// forwards their identity in X-Tenant-ID; rate limiting here guards
	// against a misbehaving client, not abuse from the open internet.
	apiLimiter := middleware.NewRateLimiter(300, time.Minute)
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(apiLimiter.Middleware)

		r.Get("/blocks", blocks.List)
		r.Post("/uploads", uploads.Presign)

		r.Post("/sites", sites.Create)
		r.Get("/sites", sites.List)
		r.Route("/sites/{siteID}", func(r chi.Router) {
			r.Get("/", sites.Get)
			r.Put("/", sites.Update)
			r.Delete("/", sites.Delete)
			r.Post("/publish", sites.Publish)
			r.Get("/analytics", sites.Analytics)
			r.Post("/pages", pages.Create)
			r.Get("/pages", pages.ListBySite)
		})
		r.Route("/pages/{pageID}", func(r chi.Router) {
			r.Get("/", pages.Get)
			r.Put("/", pages.Update)
			r.Delete("/", pages.Delete)
			r.Put("/draft", pages.SaveDraft)
			r.Get("/changes", pages.Changes)
		})
	})

	// Draft preview renders the editing copy of a page, straight from
	// the database, never cached.
	r.Get("/__preview/{siteID}/*", public.Preview)

	// Everything else resolves against the Host header: subdomains of
	// the root domain and verified custom domains.
	r.NotFound(public.Serve)

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

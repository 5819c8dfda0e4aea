package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/atinyakov/accountkeeper/internal/middleware"
)

// NewRouter constructs the HTTP handler serving the account API.
//
// Routes:
//
//	GET    /api/accounts           → accounts.List
//	POST   /api/accounts           → accounts.Create
//	GET    /api/accounts/snapshot  → accounts.Snapshot
//	POST   /api/accounts/validate  → accounts.Validate
//	GET    /api/accounts/{id}      → accounts.Get
//	PUT    /api/accounts/{id}      → accounts.Upsert
//	DELETE /api/accounts/{id}      → accounts.Delete
//
// Middleware chain (applied in order):
//  1. Recoverer                           turns panics into 500s
//  2. AllowContentType("application/json") rejects non-JSON bodies
//  3. WithRequestLogging(logger)          logs served requests
func NewRouter(accounts *AccountsHandler, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.AllowContentType("application/json"))
	r.Use(middleware.WithRequestLogging(logger))

	r.Route("/api/accounts", func(r chi.Router) {
		r.Get("/", accounts.List)
		r.Post("/", accounts.Create)
		r.Get("/snapshot", accounts.Snapshot)
		r.Post("/validate", accounts.Validate)
		r.Get("/{id}", accounts.Get)
		r.Put("/{id}", accounts.Upsert)
		r.Delete("/{id}", accounts.Delete)
	})

	return r
}

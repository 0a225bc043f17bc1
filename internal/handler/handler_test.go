package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// routeWithID mounts a handler under /api/vehicles/{id}[/...] so
// chi.URLParam resolves in isolation tests.
func routeWithID(fn http.HandlerFunc) http.Handler {
	r := chi.NewRouter()
	r.Get("/api/vehicles/{id}", fn)
	r.Get("/api/vehicles/{id}/contact", fn)
	return r
}

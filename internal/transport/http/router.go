// Package httptransport is the thin HTTP layer over the directory and audit
// services. It owns the one orchestration rule the services deliberately do
// not: every user mutation is paired with exactly one audit write.
package httptransport

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	dErrors "userdir/pkg/domain-errors"
	"userdir/pkg/platform/httputil"
	"userdir/pkg/platform/sentinel"
)

// NewRouter wires the admin API endpoints.
func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/users", func(r chi.Router) {
		r.Get("/", h.handleListUsers)
		r.Post("/", h.handleCreateUser)
		r.Get("/{id}", h.handleGetUser)
		r.Put("/{id}", h.handleUpdateUser)
		r.Delete("/{id}", h.handleDeleteUser)
	})

	r.Route("/logs", func(r chi.Router) {
		r.Get("/", h.handleListLogs)
		r.Get("/{id}", h.handleGetLog)
	})

	return r
}

// writeErr translates store sentinel errors into coded responses at the
// edge. Services propagate store errors unchanged, so the mapping lives
// here and nowhere else.
func writeErr(w http.ResponseWriter, err error) {
	switch {
	case dErrors.CodeOf(err) != dErrors.CodeInternal:
		httputil.WriteError(w, err)
	case errors.Is(err, sentinel.ErrNotFound):
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeNotFound, "not found"))
	case errors.Is(err, sentinel.ErrConflict):
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeConflict, "conflict"))
	default:
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "storage failure"))
	}
}

package activity

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns activity router
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Use(authMiddleware)

	r.Post("/", h.Record)

	return r
}

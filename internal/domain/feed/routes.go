package feed

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns feed router
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	// Viewer identity is required; the composer never accepts an
	// unauthenticated request.
	r.Use(authMiddleware)

	r.Get("/friends", h.GetFriendFeed)

	return r
}

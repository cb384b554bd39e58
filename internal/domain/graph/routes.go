package graph

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns social-graph router
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	// All routes require authentication
	r.Use(authMiddleware)

	// Follow edges
	r.Post("/users/{id}/follow", h.Follow)
	r.Delete("/users/{id}/follow", h.Unfollow)
	r.Get("/users/{id}/friendship", h.GetFriendship)
	r.Get("/users/{id}/exists", h.UserExists)
	r.Get("/me/following", h.ListFollowing)

	// Privacy edge sets (full replace, not incremental)
	r.Put("/me/blocked", h.ReplaceBlocked)
	r.Get("/me/blocked", h.ListBlocked)
	r.Put("/me/hidden-from", h.ReplaceHiddenFrom)
	r.Get("/me/hidden-from", h.ListHiddenFrom)

	// Derived friendship
	r.Get("/me/friends", h.ListFriends)

	return r
}

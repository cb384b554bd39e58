package graph

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/circleapp/circle-api/internal/middleware"
	"github.com/circleapp/circle-api/internal/pkg/response"
	"github.com/circleapp/circle-api/internal/pkg/validator"
)

// Handler handles social-graph HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates graph handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Follow handles POST /users/{id}/follow
func (h *Handler) Follow(w http.ResponseWriter, r *http.Request) {
	targetID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid user ID")
		return
	}

	viewerID := middleware.GetUserID(r.Context())
	if err := h.service.Follow(r.Context(), viewerID, targetID); err != nil {
		h.writeError(w, r, err)
		return
	}

	response.OK(w, map[string]string{"status": "ok"})
}

// Unfollow handles DELETE /users/{id}/follow
func (h *Handler) Unfollow(w http.ResponseWriter, r *http.Request) {
	targetID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid user ID")
		return
	}

	viewerID := middleware.GetUserID(r.Context())
	if err := h.service.Unfollow(r.Context(), viewerID, targetID); err != nil {
		h.writeError(w, r, err)
		return
	}

	response.OK(w, map[string]string{"status": "ok"})
}

// GetFriendship handles GET /users/{id}/friendship
func (h *Handler) GetFriendship(w http.ResponseWriter, r *http.Request) {
	targetID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid user ID")
		return
	}

	viewerID := middleware.GetUserID(r.Context())
	mutual, err := h.service.HasMutualFollow(r.Context(), viewerID, targetID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	response.OK(w, FriendshipResponse{UserID: targetID, Mutual: mutual})
}

// ListFriends handles GET /me/friends
func (h *Handler) ListFriends(w http.ResponseWriter, r *http.Request) {
	viewerID := middleware.GetUserID(r.Context())
	ids, err := h.service.GetFriendIDs(r.Context(), viewerID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	response.OK(w, NewIDListResponse(ids))
}

// UserExists handles GET /users/{id}/exists
func (h *Handler) UserExists(w http.ResponseWriter, r *http.Request) {
	targetID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid user ID")
		return
	}

	exists, err := h.service.UserExists(r.Context(), targetID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	response.OK(w, ExistsResponse{UserID: targetID, Exists: exists})
}

// ListFollowing handles GET /me/following
func (h *Handler) ListFollowing(w http.ResponseWriter, r *http.Request) {
	viewerID := middleware.GetUserID(r.Context())
	ids, err := h.service.GetFolloweeIDs(r.Context(), viewerID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	response.OK(w, NewIDListResponse(ids))
}

// ReplaceBlocked handles PUT /me/blocked
func (h *Handler) ReplaceBlocked(w http.ResponseWriter, r *http.Request) {
	h.replaceSet(w, r, h.service.ReplaceBlockSet)
}

// ReplaceHiddenFrom handles PUT /me/hidden-from
func (h *Handler) ReplaceHiddenFrom(w http.ResponseWriter, r *http.Request) {
	h.replaceSet(w, r, h.service.ReplaceDenySet)
}

// ListBlocked handles GET /me/blocked
func (h *Handler) ListBlocked(w http.ResponseWriter, r *http.Request) {
	viewerID := middleware.GetUserID(r.Context())
	ids, err := h.service.GetBlockedIDs(r.Context(), viewerID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	response.OK(w, NewIDListResponse(ids))
}

// ListHiddenFrom handles GET /me/hidden-from
func (h *Handler) ListHiddenFrom(w http.ResponseWriter, r *http.Request) {
	viewerID := middleware.GetUserID(r.Context())
	ids, err := h.service.GetDeniedIDs(r.Context(), viewerID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	response.OK(w, NewIDListResponse(ids))
}

func (h *Handler) replaceSet(w http.ResponseWriter, r *http.Request, replace func(ctx context.Context, ownerID uuid.UUID, targetIDs []uuid.UUID) error) {
	var req ReplaceSetRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	viewerID := middleware.GetUserID(r.Context())
	if err := replace(r.Context(), viewerID, req.UserIDs); err != nil {
		h.writeError(w, r, err)
		return
	}

	response.OK(w, map[string]string{"status": "ok"})
}

// writeError maps domain errors to HTTP responses
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrSelfFollow), errors.Is(err, ErrSelfBlock), errors.Is(err, ErrSelfDeny):
		response.BadRequest(w, err.Error())
	case errors.Is(err, ErrUserNotFound):
		response.NotFound(w, "User not found")
	case errors.Is(err, ErrStoreUnavailable):
		log.Error().Err(err).Str("path", r.URL.Path).Msg("edge store unavailable")
		response.Unavailable(w, "Storage temporarily unavailable, retry later")
	default:
		log.Error().Err(err).Str("path", r.URL.Path).Msg("graph request failed")
		response.InternalError(w)
	}
}

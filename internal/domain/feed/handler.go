package feed

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/circleapp/circle-api/internal/domain/graph"
	"github.com/circleapp/circle-api/internal/middleware"
	"github.com/circleapp/circle-api/internal/pkg/response"
)

// Handler handles feed HTTP requests
type Handler struct {
	service *Service
	content ContentProvider
}

// NewHandler creates feed handler
func NewHandler(service *Service, content ContentProvider) *Handler {
	return &Handler{service: service, content: content}
}

// GetFriendFeed handles GET /feed/friends?page=&page_size=&before=
func (h *Handler) GetFriendFeed(w http.ResponseWriter, r *http.Request) {
	viewerID := middleware.GetUserID(r.Context())

	// Clamp up front so meta and the content limit reflect the page
	// actually served, not the raw query values.
	page, pageSize := h.service.Normalize(
		parseIntParam(r, "page", 1),
		parseIntParam(r, "page_size", 0),
	)

	before := time.Now()
	if raw := r.URL.Query().Get("before"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			response.BadRequest(w, "Invalid 'before' cursor, expected RFC3339 timestamp")
			return
		}
		before = t
	}

	actorIDs, totalCount, err := h.service.GetFriendFeedPage(r.Context(), viewerID, page, pageSize)
	if err != nil {
		if errors.Is(err, graph.ErrStoreUnavailable) {
			log.Error().Err(err).Str("viewer_id", viewerID.String()).Msg("feed page aborted, store unavailable")
			response.Unavailable(w, "Storage temporarily unavailable, retry later")
			return
		}
		log.Error().Err(err).Str("viewer_id", viewerID.String()).Msg("feed page failed")
		response.InternalError(w)
		return
	}

	var entries []Entry
	if len(actorIDs) > 0 {
		// Materialize up to a handful of recent entries per visible actor
		entries, err = h.content.ListByActors(r.Context(), actorIDs, before, pageSize*entriesPerActor)
		if err != nil {
			log.Error().Err(err).Str("viewer_id", viewerID.String()).Msg("content provider failed")
			response.Unavailable(w, "Content temporarily unavailable, retry later")
			return
		}
	}

	response.WithMeta(w, NewFriendFeedResponse(actorIDs, entries), response.NewMeta(totalCount, page, pageSize))
}

const entriesPerActor = 5

func parseIntParam(r *http.Request, name string, defaultValue int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return defaultValue
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return defaultValue
	}
	return v
}

package activity

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/circleapp/circle-api/internal/middleware"
	"github.com/circleapp/circle-api/internal/pkg/response"
	"github.com/circleapp/circle-api/internal/pkg/validator"
)

// Handler handles activity HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates activity handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Record handles POST /activities
func (h *Handler) Record(w http.ResponseWriter, r *http.Request) {
	var req RecordRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	actorID := middleware.GetUserID(r.Context())
	entry, err := h.service.Record(r.Context(), actorID, req.Verb, req.ObjectType, req.ObjectID)
	if err != nil {
		log.Error().Err(err).Str("actor_id", actorID.String()).Msg("failed to record activity")
		response.Unavailable(w, "Activity store temporarily unavailable, retry later")
		return
	}

	response.Created(w, entry)
}

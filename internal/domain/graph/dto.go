package graph

import (
	"github.com/google/uuid"
)

// ReplaceSetRequest for PUT /me/blocked and PUT /me/hidden-from.
// The body carries the full desired set; the prior set is discarded.
type ReplaceSetRequest struct {
	UserIDs []uuid.UUID `json:"user_ids" validate:"max=1000"`
}

// IDListResponse represents an ordered list of user ids
type IDListResponse struct {
	UserIDs []uuid.UUID `json:"user_ids"`
}

// ExistsResponse for GET /users/{id}/exists
type ExistsResponse struct {
	UserID uuid.UUID `json:"user_id"`
	Exists bool      `json:"exists"`
}

// FriendshipResponse for GET /users/{id}/friendship
type FriendshipResponse struct {
	UserID uuid.UUID `json:"user_id"`
	Mutual bool      `json:"mutual"`
}

// NewIDListResponse never serializes a null list
func NewIDListResponse(ids []uuid.UUID) IDListResponse {
	if ids == nil {
		ids = []uuid.UUID{}
	}
	return IDListResponse{UserIDs: ids}
}

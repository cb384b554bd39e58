package graph

import (
	"time"

	"github.com/google/uuid"
)

// FollowEdge represents a one-directional "A follows B" relationship
type FollowEdge struct {
	FollowerID uuid.UUID `db:"follower_id" json:"follower_id"`
	FolloweeID uuid.UUID `db:"followee_id" json:"followee_id"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// BlockEdge suppresses the blocked user's activity from the viewer's feed
type BlockEdge struct {
	ViewerID  uuid.UUID `db:"viewer_id" json:"viewer_id"`
	BlockedID uuid.UUID `db:"blocked_id" json:"blocked_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// DenyEdge prevents the denied user from seeing the owner's activity.
// Independent of BlockEdge: a block between the same pair has no bearing on it.
type DenyEdge struct {
	OwnerID   uuid.UUID `db:"owner_id" json:"owner_id"`
	DeniedID  uuid.UUID `db:"denied_id" json:"denied_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

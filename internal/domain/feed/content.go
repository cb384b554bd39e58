package feed

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Entry is a materialized activity item produced by the content provider
type Entry struct {
	ID         uuid.UUID `json:"id"`
	ActorID    uuid.UUID `json:"actor_id"`
	Verb       string    `json:"verb"`
	ObjectType string    `json:"object_type"`
	ObjectID   uuid.UUID `json:"object_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// ContentProvider materializes activity entries for a list of actor ids.
// The feed service only produces the id list; entries come from here.
type ContentProvider interface {
	ListByActors(ctx context.Context, actorIDs []uuid.UUID, before time.Time, limit int) ([]Entry, error)
}

package activity

import (
	"time"

	"github.com/google/uuid"
)

// Entry represents one recorded activity item of an actor
type Entry struct {
	ID         uuid.UUID `json:"id"`
	ActorID    uuid.UUID `json:"actor_id"`
	Verb       string    `json:"verb"`
	ObjectType string    `json:"object_type"`
	ObjectID   uuid.UUID `json:"object_id"`
	CreatedAt  time.Time `json:"created_at"`
}

package activity

import (
	"github.com/google/uuid"
)

// RecordRequest for POST /activities
type RecordRequest struct {
	Verb       string    `json:"verb" validate:"required,min=2,max=50"`
	ObjectType string    `json:"object_type" validate:"required,min=2,max=50"`
	ObjectID   uuid.UUID `json:"object_id" validate:"required"`
}

package activity

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Service handles activity recording and lookup
type Service struct {
	store Store
}

// NewService creates activity service
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Record stores a new activity entry for the actor
func (s *Service) Record(ctx context.Context, actorID uuid.UUID, verb, objectType string, objectID uuid.UUID) (*Entry, error) {
	entry := Entry{
		ID:         uuid.New(),
		ActorID:    actorID,
		Verb:       verb,
		ObjectType: objectType,
		ObjectID:   objectID,
		CreatedAt:  time.Now(),
	}
	if err := s.store.Record(ctx, entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// ListByActors returns recent entries of the given actors, newest first
func (s *Service) ListByActors(ctx context.Context, actorIDs []uuid.UUID, before time.Time, limit int) ([]Entry, error) {
	return s.store.ListByActors(ctx, actorIDs, before, limit)
}

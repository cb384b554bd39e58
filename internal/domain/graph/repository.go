package graph

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines edge storage. It owns the follow, block and deny tables;
// nothing outside it mutates edges directly.
type Repository interface {
	// AddFollow creates the edge if absent; no-op if already present.
	AddFollow(ctx context.Context, followerID, followeeID uuid.UUID) error
	// RemoveFollow deletes the edge; no-op if absent.
	RemoveFollow(ctx context.Context, followerID, followeeID uuid.UUID) error

	// ReplaceBlockSet atomically replaces the viewer's full block set.
	// Concurrent readers see either the fully-old or fully-new set, never a mix.
	ReplaceBlockSet(ctx context.Context, viewerID uuid.UUID, blockedIDs []uuid.UUID) error
	// ReplaceDenySet is symmetric to ReplaceBlockSet over the deny table.
	ReplaceDenySet(ctx context.Context, ownerID uuid.UUID, deniedIDs []uuid.UUID) error

	GetBlockedIDs(ctx context.Context, viewerID uuid.UUID) ([]uuid.UUID, error)
	GetDeniedIDs(ctx context.Context, ownerID uuid.UUID) ([]uuid.UUID, error)

	HasMutualFollow(ctx context.Context, a, b uuid.UUID) (bool, error)
	// GetFolloweesOf returns users followed by userID, newest follow first.
	GetFolloweesOf(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)

	// GetFriendIDs returns users with a follow edge in both directions,
	// most recently reciprocated first. Computed, never stored.
	GetFriendIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)

	// ListDeniersAmong returns the subset of candidateIDs that have denied
	// viewerID, in a single query.
	ListDeniersAmong(ctx context.Context, viewerID uuid.UUID, candidateIDs []uuid.UUID) ([]uuid.UUID, error)
}

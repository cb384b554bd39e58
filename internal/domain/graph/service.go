package graph

import (
	"context"

	"github.com/google/uuid"
)

// UserChecker verifies that mutation targets exist before an edge is accepted
type UserChecker interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	AllExist(ctx context.Context, ids []uuid.UUID) (bool, error)
}

// Service handles social-graph business logic: follow/block/deny mutations,
// friendship resolution and visibility filtering
type Service struct {
	repo  Repository
	users UserChecker
}

// NewService creates new graph service
func NewService(repo Repository, users UserChecker) *Service {
	return &Service{repo: repo, users: users}
}

// Follow creates a follow edge. Idempotent; re-following is a no-op.
func (s *Service) Follow(ctx context.Context, followerID, followeeID uuid.UUID) error {
	if followerID == followeeID {
		return ErrSelfFollow
	}
	if err := s.requireUser(ctx, followeeID); err != nil {
		return err
	}
	return s.repo.AddFollow(ctx, followerID, followeeID)
}

// Unfollow removes a follow edge. Idempotent; unfollowing a stranger is a no-op.
func (s *Service) Unfollow(ctx context.Context, followerID, followeeID uuid.UUID) error {
	if followerID == followeeID {
		return ErrSelfFollow
	}
	return s.repo.RemoveFollow(ctx, followerID, followeeID)
}

// ReplaceBlockSet replaces the viewer's entire block set. The caller sends the
// full desired set; adding or removing one id means fetch-modify-replace.
func (s *Service) ReplaceBlockSet(ctx context.Context, viewerID uuid.UUID, blockedIDs []uuid.UUID) error {
	ids, err := s.checkSet(ctx, viewerID, blockedIDs, ErrSelfBlock)
	if err != nil {
		return err
	}
	return s.repo.ReplaceBlockSet(ctx, viewerID, ids)
}

// ReplaceDenySet replaces the owner's entire deny set ("hidden from" list)
func (s *Service) ReplaceDenySet(ctx context.Context, ownerID uuid.UUID, deniedIDs []uuid.UUID) error {
	ids, err := s.checkSet(ctx, ownerID, deniedIDs, ErrSelfDeny)
	if err != nil {
		return err
	}
	return s.repo.ReplaceDenySet(ctx, ownerID, ids)
}

// checkSet rejects self-references, deduplicates and verifies the targets
// exist with a single batch query.
func (s *Service) checkSet(ctx context.Context, ownerID uuid.UUID, targetIDs []uuid.UUID, selfErr error) ([]uuid.UUID, error) {
	seen := make(map[uuid.UUID]struct{}, len(targetIDs))
	ids := make([]uuid.UUID, 0, len(targetIDs))
	for _, id := range targetIDs {
		if id == ownerID {
			return nil, selfErr
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return ids, nil
	}
	ok, err := s.users.AllExist(ctx, ids)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrUserNotFound
	}
	return ids, nil
}

func (s *Service) requireUser(ctx context.Context, id uuid.UUID) error {
	exists, err := s.users.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return ErrUserNotFound
	}
	return nil
}

// GetFriendIDs returns the user's mutual-follow set, most recently
// reciprocated first. A user with no edges gets an empty slice, not an error.
func (s *Service) GetFriendIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	return s.repo.GetFriendIDs(ctx, userID)
}

// UserExists reports whether the given account exists
func (s *Service) UserExists(ctx context.Context, id uuid.UUID) (bool, error) {
	return s.users.Exists(ctx, id)
}

// GetFolloweeIDs returns the users this user follows, newest follow first
func (s *Service) GetFolloweeIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	return s.repo.GetFolloweesOf(ctx, userID)
}

// HasMutualFollow reports whether both directional edges exist between a and b
func (s *Service) HasMutualFollow(ctx context.Context, a, b uuid.UUID) (bool, error) {
	return s.repo.HasMutualFollow(ctx, a, b)
}

// GetBlockedIDs returns the viewer's current block set
func (s *Service) GetBlockedIDs(ctx context.Context, viewerID uuid.UUID) ([]uuid.UUID, error) {
	return s.repo.GetBlockedIDs(ctx, viewerID)
}

// GetDeniedIDs returns the owner's current deny set
func (s *Service) GetDeniedIDs(ctx context.Context, ownerID uuid.UUID) ([]uuid.UUID, error) {
	return s.repo.GetDeniedIDs(ctx, ownerID)
}

// FilterVisible removes from candidateIDs every actor the viewer has blocked
// and every actor who has denied the viewer. Input order is preserved; it is a
// filter, not a re-sort. Candidates with no edges at all pass through.
func (s *Service) FilterVisible(ctx context.Context, viewerID uuid.UUID, candidateIDs []uuid.UUID) ([]uuid.UUID, error) {
	if len(candidateIDs) == 0 {
		return []uuid.UUID{}, nil
	}

	blockedIDs, err := s.repo.GetBlockedIDs(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	blocked := make(map[uuid.UUID]struct{}, len(blockedIDs))
	for _, id := range blockedIDs {
		blocked[id] = struct{}{}
	}

	// One batch query for "which candidates denied the viewer" instead of a
	// per-candidate lookup.
	denierIDs, err := s.repo.ListDeniersAmong(ctx, viewerID, candidateIDs)
	if err != nil {
		return nil, err
	}
	deniers := make(map[uuid.UUID]struct{}, len(denierIDs))
	for _, id := range denierIDs {
		deniers[id] = struct{}{}
	}

	visible := make([]uuid.UUID, 0, len(candidateIDs))
	for _, id := range candidateIDs {
		if _, ok := blocked[id]; ok {
			continue
		}
		if _, ok := deniers[id]; ok {
			continue
		}
		visible = append(visible, id)
	}
	return visible, nil
}

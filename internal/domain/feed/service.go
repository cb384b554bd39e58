package feed

import (
	"context"

	"github.com/google/uuid"
)

// FriendProvider resolves a viewer's mutual-follow set
type FriendProvider interface {
	GetFriendIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}

// VisibilityFilter removes blocked/denied actors from a candidate list
type VisibilityFilter interface {
	FilterVisible(ctx context.Context, viewerID uuid.UUID, candidateIDs []uuid.UUID) ([]uuid.UUID, error)
}

// Service composes the friends' activity feed: friendship resolution,
// visibility filtering, then pagination over the filtered set
type Service struct {
	friends FriendProvider
	filter  VisibilityFilter

	defaultPageSize int
	maxPageSize     int
}

// NewService creates feed service
func NewService(friends FriendProvider, filter VisibilityFilter, defaultPageSize, maxPageSize int) *Service {
	return &Service{
		friends:         friends,
		filter:          filter,
		defaultPageSize: defaultPageSize,
		maxPageSize:     maxPageSize,
	}
}

// GetFriendFeedPage returns one page of visible actor ids for the viewer's
// friends feed plus the total visible count.
//
// Pagination runs strictly after filtering: totalCount always reflects the
// true visible set, never the pre-filter friend count. A page past the end is
// an empty slice with the same correct total, not an error.
func (s *Service) GetFriendFeedPage(ctx context.Context, viewerID uuid.UUID, page, pageSize int) ([]uuid.UUID, int, error) {
	page, pageSize = s.clamp(page, pageSize)

	friendIDs, err := s.friends.GetFriendIDs(ctx, viewerID)
	if err != nil {
		return nil, 0, err
	}

	// Most viewers have few or no mutual friends; skip the filter entirely
	// for the empty case.
	if len(friendIDs) == 0 {
		return []uuid.UUID{}, 0, nil
	}

	visibleIDs, err := s.filter.FilterVisible(ctx, viewerID, friendIDs)
	if err != nil {
		return nil, 0, err
	}

	totalCount := len(visibleIDs)

	start := (page - 1) * pageSize
	if start >= totalCount {
		return []uuid.UUID{}, totalCount, nil
	}
	end := start + pageSize
	if end > totalCount {
		end = totalCount
	}

	return visibleIDs[start:end], totalCount, nil
}

// Normalize returns the effective page window for a raw request: the same
// clamping GetFriendFeedPage applies internally, so callers can report
// truthful pagination metadata.
func (s *Service) Normalize(page, pageSize int) (int, int) {
	return s.clamp(page, pageSize)
}

func (s *Service) clamp(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = s.defaultPageSize
	}
	if pageSize > s.maxPageSize {
		pageSize = s.maxPageSize
	}
	return page, pageSize
}

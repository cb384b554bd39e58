package feed

import (
	"github.com/google/uuid"
)

// FriendFeedResponse for GET /feed/friends
type FriendFeedResponse struct {
	ActorIDs []uuid.UUID `json:"actor_ids"`
	Entries  []Entry     `json:"entries"`
}

// NewFriendFeedResponse never serializes null lists
func NewFriendFeedResponse(actorIDs []uuid.UUID, entries []Entry) FriendFeedResponse {
	if actorIDs == nil {
		actorIDs = []uuid.UUID{}
	}
	if entries == nil {
		entries = []Entry{}
	}
	return FriendFeedResponse{ActorIDs: actorIDs, Entries: entries}
}

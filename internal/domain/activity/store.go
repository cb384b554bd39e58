package activity

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	// keyPrefix is the key prefix for per-actor activity streams
	keyPrefix = "activity:actor:"

	// streamTTL expires streams of actors inactive for 30 days
	streamTTL = 30 * 24 * time.Hour
)

// Store defines the activity stream operations.
// An interface here enables testing with an in-memory fake.
type Store interface {
	// Record appends an entry to the actor's stream, trimming to the cap
	Record(ctx context.Context, entry Entry) error

	// ListByActors merges the streams of the given actors, newest first,
	// restricted to entries created before the cursor, up to limit
	ListByActors(ctx context.Context, actorIDs []uuid.UUID, before time.Time, limit int) ([]Entry, error)
}

// RedisStore keeps each actor's recent activity in a Redis sorted set,
// scored by creation time. Postgres stays the source of truth for edges;
// redis holds only these denormalized entries.
type RedisStore struct {
	client      *redis.Client
	perActorCap int
}

// NewRedisStore creates a Redis-backed activity store
func NewRedisStore(client *redis.Client, perActorCap int) *RedisStore {
	return &RedisStore{client: client, perActorCap: perActorCap}
}

func actorKey(actorID uuid.UUID) string {
	return keyPrefix + actorID.String()
}

// Record appends via pipeline: ZADD + ZREMRANGEBYRANK (cap) + EXPIRE
func (s *RedisStore) Record(ctx context.Context, entry Entry) error {
	payload, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal activity entry: %w", err)
	}

	key := actorKey(entry.ActorID)
	pipe := s.client.Pipeline()

	pipe.ZAdd(ctx, key, redis.Z{
		Score:  float64(entry.CreatedAt.UnixMilli()),
		Member: string(payload),
	})
	// Keep the newest perActorCap entries, drop the rest
	pipe.ZRemRangeByRank(ctx, key, 0, int64(-s.perActorCap-1))
	pipe.Expire(ctx, key, streamTTL)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("record activity: %w", err)
	}
	return nil
}

// ListByActors fans out one ZREVRANGEBYSCORE per actor through a pipeline,
// then merges newest-first up to limit
func (s *RedisStore) ListByActors(ctx context.Context, actorIDs []uuid.UUID, before time.Time, limit int) ([]Entry, error) {
	if len(actorIDs) == 0 || limit <= 0 {
		return []Entry{}, nil
	}

	max := "(" + strconv.FormatInt(before.UnixMilli(), 10)

	pipe := s.client.Pipeline()
	cmds := make([]*redis.StringSliceCmd, len(actorIDs))
	for i, actorID := range actorIDs {
		cmds[i] = pipe.ZRevRangeByScore(ctx, actorKey(actorID), &redis.ZRangeBy{
			Min:   "-inf",
			Max:   max,
			Count: int64(limit),
		})
	}
	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return nil, fmt.Errorf("list activity: %w", err)
	}

	var entries []Entry
	for _, cmd := range cmds {
		for _, raw := range cmd.Val() {
			var e Entry
			if err := json.Unmarshal([]byte(raw), &e); err != nil {
				// Skip unparseable members rather than failing the page
				continue
			}
			entries = append(entries, e)
		}
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].CreatedAt.After(entries[j].CreatedAt) })
	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

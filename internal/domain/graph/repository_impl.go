package graph

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type repository struct {
	db *sqlx.DB
}

// NewRepository creates new graph repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

// unavailable wraps a driver error so callers can match ErrStoreUnavailable
func unavailable(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrStoreUnavailable, op, err)
}

func (r *repository) AddFollow(ctx context.Context, followerID, followeeID uuid.UUID) error {
	query := `
		INSERT INTO follows (follower_id, followee_id, created_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (follower_id, followee_id) DO NOTHING
	`
	if _, err := r.db.ExecContext(ctx, query, followerID, followeeID); err != nil {
		return unavailable("add follow", err)
	}
	return nil
}

func (r *repository) RemoveFollow(ctx context.Context, followerID, followeeID uuid.UUID) error {
	query := `DELETE FROM follows WHERE follower_id = $1 AND followee_id = $2`
	if _, err := r.db.ExecContext(ctx, query, followerID, followeeID); err != nil {
		return unavailable("remove follow", err)
	}
	return nil
}

func (r *repository) ReplaceBlockSet(ctx context.Context, viewerID uuid.UUID, blockedIDs []uuid.UUID) error {
	return r.replaceSet(ctx, "user_blocks", "viewer_id", "blocked_id", viewerID, blockedIDs)
}

func (r *repository) ReplaceDenySet(ctx context.Context, ownerID uuid.UUID, deniedIDs []uuid.UUID) error {
	return r.replaceSet(ctx, "user_denies", "owner_id", "denied_id", ownerID, deniedIDs)
}

// replaceSet swaps one owner's full edge set inside a single transaction.
// The delete-then-insert pair commits atomically, so a concurrent reader of
// the same owner's set observes either the old or the new set.
func (r *repository) replaceSet(ctx context.Context, table, ownerCol, targetCol string, ownerID uuid.UUID, targetIDs []uuid.UUID) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return unavailable("begin replace "+table, err)
	}
	defer tx.Rollback()

	del := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, table, ownerCol)
	if _, err := tx.ExecContext(ctx, del, ownerID); err != nil {
		return unavailable("clear "+table, err)
	}

	if len(targetIDs) > 0 {
		ins := fmt.Sprintf(`
			INSERT INTO %s (%s, %s, created_at)
			SELECT $1, unnest($2::uuid[]), NOW()
		`, table, ownerCol, targetCol)
		if _, err := tx.ExecContext(ctx, ins, ownerID, pq.Array(targetIDs)); err != nil {
			return unavailable("fill "+table, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return unavailable("commit replace "+table, err)
	}
	return nil
}

func (r *repository) GetBlockedIDs(ctx context.Context, viewerID uuid.UUID) ([]uuid.UUID, error) {
	query := `SELECT blocked_id FROM user_blocks WHERE viewer_id = $1`
	var ids []uuid.UUID
	if err := r.db.SelectContext(ctx, &ids, query, viewerID); err != nil {
		return nil, unavailable("get blocked ids", err)
	}
	return ids, nil
}

func (r *repository) GetDeniedIDs(ctx context.Context, ownerID uuid.UUID) ([]uuid.UUID, error) {
	query := `SELECT denied_id FROM user_denies WHERE owner_id = $1`
	var ids []uuid.UUID
	if err := r.db.SelectContext(ctx, &ids, query, ownerID); err != nil {
		return nil, unavailable("get denied ids", err)
	}
	return ids, nil
}

func (r *repository) HasMutualFollow(ctx context.Context, a, b uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS(SELECT 1 FROM follows WHERE follower_id = $1 AND followee_id = $2)
		   AND EXISTS(SELECT 1 FROM follows WHERE follower_id = $2 AND followee_id = $1)
	`
	var mutual bool
	if err := r.db.GetContext(ctx, &mutual, query, a, b); err != nil {
		return false, unavailable("check mutual follow", err)
	}
	return mutual, nil
}

func (r *repository) GetFolloweesOf(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	query := `SELECT followee_id FROM follows WHERE follower_id = $1 ORDER BY created_at DESC`
	var ids []uuid.UUID
	if err := r.db.SelectContext(ctx, &ids, query, userID); err != nil {
		return nil, unavailable("get followees", err)
	}
	return ids, nil
}

// GetFriendIDs derives mutual follows with a self-join over the follows table,
// one indexed query instead of intersecting two id lists application-side.
// Recency of a friendship is the later of its two edges.
func (r *repository) GetFriendIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	query := `
		SELECT f1.followee_id
		FROM follows f1
		JOIN follows f2
		  ON f2.follower_id = f1.followee_id
		 AND f2.followee_id = f1.follower_id
		WHERE f1.follower_id = $1
		ORDER BY GREATEST(f1.created_at, f2.created_at) DESC
	`
	var ids []uuid.UUID
	if err := r.db.SelectContext(ctx, &ids, query, userID); err != nil {
		return nil, unavailable("get friend ids", err)
	}
	return ids, nil
}

func (r *repository) ListDeniersAmong(ctx context.Context, viewerID uuid.UUID, candidateIDs []uuid.UUID) ([]uuid.UUID, error) {
	if len(candidateIDs) == 0 {
		return nil, nil
	}
	query := `SELECT owner_id FROM user_denies WHERE denied_id = $1 AND owner_id = ANY($2)`
	var ids []uuid.UUID
	if err := r.db.SelectContext(ctx, &ids, query, viewerID, pq.Array(candidateIDs)); err != nil {
		return nil, unavailable("list deniers", err)
	}
	return ids, nil
}

package graph

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
)

type followKey struct {
	follower uuid.UUID
	followee uuid.UUID
}

// fakeRepo is an in-memory Repository honoring the storage contract
type fakeRepo struct {
	follows map[followKey]time.Time
	blocks  map[uuid.UUID][]uuid.UUID
	denies  map[uuid.UUID][]uuid.UUID

	failWith error // when set, every call returns this error
	clock    time.Time
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		follows: map[followKey]time.Time{},
		blocks:  map[uuid.UUID][]uuid.UUID{},
		denies:  map[uuid.UUID][]uuid.UUID{},
		clock:   time.Unix(1000, 0),
	}
}

func (f *fakeRepo) tick() time.Time {
	f.clock = f.clock.Add(time.Second)
	return f.clock
}

func (f *fakeRepo) AddFollow(ctx context.Context, followerID, followeeID uuid.UUID) error {
	if f.failWith != nil {
		return f.failWith
	}
	key := followKey{followerID, followeeID}
	if _, ok := f.follows[key]; !ok {
		f.follows[key] = f.tick()
	}
	return nil
}

func (f *fakeRepo) RemoveFollow(ctx context.Context, followerID, followeeID uuid.UUID) error {
	if f.failWith != nil {
		return f.failWith
	}
	delete(f.follows, followKey{followerID, followeeID})
	return nil
}

func (f *fakeRepo) ReplaceBlockSet(ctx context.Context, viewerID uuid.UUID, blockedIDs []uuid.UUID) error {
	if f.failWith != nil {
		return f.failWith
	}
	f.blocks[viewerID] = append([]uuid.UUID(nil), blockedIDs...)
	return nil
}

func (f *fakeRepo) ReplaceDenySet(ctx context.Context, ownerID uuid.UUID, deniedIDs []uuid.UUID) error {
	if f.failWith != nil {
		return f.failWith
	}
	f.denies[ownerID] = append([]uuid.UUID(nil), deniedIDs...)
	return nil
}

func (f *fakeRepo) GetBlockedIDs(ctx context.Context, viewerID uuid.UUID) ([]uuid.UUID, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	return f.blocks[viewerID], nil
}

func (f *fakeRepo) GetDeniedIDs(ctx context.Context, ownerID uuid.UUID) ([]uuid.UUID, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	return f.denies[ownerID], nil
}

func (f *fakeRepo) HasMutualFollow(ctx context.Context, a, b uuid.UUID) (bool, error) {
	if f.failWith != nil {
		return false, f.failWith
	}
	_, ab := f.follows[followKey{a, b}]
	_, ba := f.follows[followKey{b, a}]
	return ab && ba, nil
}

func (f *fakeRepo) GetFolloweesOf(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	type edge struct {
		id uuid.UUID
		at time.Time
	}
	var edges []edge
	for k, at := range f.follows {
		if k.follower == userID {
			edges = append(edges, edge{k.followee, at})
		}
	}
	sort.Slice(edges, func(i, j int) bool { return edges[i].at.After(edges[j].at) })
	ids := make([]uuid.UUID, len(edges))
	for i, e := range edges {
		ids[i] = e.id
	}
	return ids, nil
}

func (f *fakeRepo) GetFriendIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	type friend struct {
		id uuid.UUID
		at time.Time
	}
	var friends []friend
	for k, out := range f.follows {
		if k.follower != userID {
			continue
		}
		back, ok := f.follows[followKey{k.followee, userID}]
		if !ok {
			continue
		}
		// reciprocation time = later of the two edges
		at := out
		if back.After(at) {
			at = back
		}
		friends = append(friends, friend{k.followee, at})
	}
	sort.Slice(friends, func(i, j int) bool { return friends[i].at.After(friends[j].at) })
	ids := make([]uuid.UUID, len(friends))
	for i, fr := range friends {
		ids[i] = fr.id
	}
	return ids, nil
}

func (f *fakeRepo) ListDeniersAmong(ctx context.Context, viewerID uuid.UUID, candidateIDs []uuid.UUID) ([]uuid.UUID, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	candidates := make(map[uuid.UUID]struct{}, len(candidateIDs))
	for _, id := range candidateIDs {
		candidates[id] = struct{}{}
	}
	var out []uuid.UUID
	for owner, denied := range f.denies {
		if _, ok := candidates[owner]; !ok {
			continue
		}
		for _, d := range denied {
			if d == viewerID {
				out = append(out, owner)
				break
			}
		}
	}
	return out, nil
}

type fakeUserChecker struct {
	missing    map[uuid.UUID]bool
	err        error
	batchCalls int
}

func (f *fakeUserChecker) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return !f.missing[id], nil
}

func (f *fakeUserChecker) AllExist(ctx context.Context, ids []uuid.UUID) (bool, error) {
	f.batchCalls++
	if f.err != nil {
		return false, f.err
	}
	for _, id := range ids {
		if f.missing[id] {
			return false, nil
		}
	}
	return true, nil
}

func newTestService() (*Service, *fakeRepo, *fakeUserChecker) {
	repo := newFakeRepo()
	users := &fakeUserChecker{missing: map[uuid.UUID]bool{}}
	return NewService(repo, users), repo, users
}

func TestFollowRejectsSelf(t *testing.T) {
	svc, _, _ := newTestService()
	id := uuid.New()

	if err := svc.Follow(context.Background(), id, id); !errors.Is(err, ErrSelfFollow) {
		t.Fatalf("expected ErrSelfFollow, got %v", err)
	}
}

func TestFollowRejectsUnknownTarget(t *testing.T) {
	svc, _, users := newTestService()
	a, b := uuid.New(), uuid.New()
	users.missing[b] = true

	if err := svc.Follow(context.Background(), a, b); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestHasMutualFollowFlipsWithEdges(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()
	a, b := uuid.New(), uuid.New()

	if mutual, _ := svc.HasMutualFollow(ctx, a, b); mutual {
		t.Fatal("mutual without any edges")
	}

	if err := svc.Follow(ctx, a, b); err != nil {
		t.Fatalf("follow a->b: %v", err)
	}
	if mutual, _ := svc.HasMutualFollow(ctx, a, b); mutual {
		t.Fatal("mutual with one-directional edge")
	}

	if err := svc.Follow(ctx, b, a); err != nil {
		t.Fatalf("follow b->a: %v", err)
	}
	if mutual, _ := svc.HasMutualFollow(ctx, a, b); !mutual {
		t.Fatal("not mutual with both edges present")
	}

	if err := svc.Unfollow(ctx, b, a); err != nil {
		t.Fatalf("unfollow b->a: %v", err)
	}
	if mutual, _ := svc.HasMutualFollow(ctx, a, b); mutual {
		t.Fatal("still mutual after removing one edge")
	}
}

func TestGetFriendIDsExcludesOneWayAndSelf(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()
	a, b, c := uuid.New(), uuid.New(), uuid.New()

	// A follows B and C; only B follows back
	mustFollow(t, svc, a, b)
	mustFollow(t, svc, a, c)
	mustFollow(t, svc, b, a)

	friends, err := svc.GetFriendIDs(ctx, a)
	if err != nil {
		t.Fatalf("get friends: %v", err)
	}
	if len(friends) != 1 || friends[0] != b {
		t.Fatalf("expected friends [B], got %v", friends)
	}
	for _, id := range friends {
		if id == a {
			t.Fatal("friend list contains the user itself")
		}
	}
}

func TestGetFriendIDsOrderedByReciprocation(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()
	a, b, c := uuid.New(), uuid.New(), uuid.New()

	// B reciprocates first, then C; C must rank first (most recent)
	mustFollow(t, svc, a, b)
	mustFollow(t, svc, a, c)
	mustFollow(t, svc, b, a)
	mustFollow(t, svc, c, a)

	friends, err := svc.GetFriendIDs(ctx, a)
	if err != nil {
		t.Fatalf("get friends: %v", err)
	}
	if len(friends) != 2 || friends[0] != c || friends[1] != b {
		t.Fatalf("expected [C B], got %v", friends)
	}
}

func TestGetFriendIDsEmptyForLoner(t *testing.T) {
	svc, _, _ := newTestService()

	friends, err := svc.GetFriendIDs(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("zero-edge user must not error: %v", err)
	}
	if len(friends) != 0 {
		t.Fatalf("expected no friends, got %v", friends)
	}
}

func TestReplaceBlockSetRejectsSelf(t *testing.T) {
	svc, _, _ := newTestService()
	v := uuid.New()

	err := svc.ReplaceBlockSet(context.Background(), v, []uuid.UUID{uuid.New(), v})
	if !errors.Is(err, ErrSelfBlock) {
		t.Fatalf("expected ErrSelfBlock, got %v", err)
	}
}

func TestReplaceDenySetRejectsSelf(t *testing.T) {
	svc, _, _ := newTestService()
	v := uuid.New()

	err := svc.ReplaceDenySet(context.Background(), v, []uuid.UUID{v})
	if !errors.Is(err, ErrSelfDeny) {
		t.Fatalf("expected ErrSelfDeny, got %v", err)
	}
}

func TestReplaceBlockSetDropsPriorSet(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()
	v := uuid.New()
	first := []uuid.UUID{uuid.New(), uuid.New()}
	second := []uuid.UUID{uuid.New()}

	if err := svc.ReplaceBlockSet(ctx, v, first); err != nil {
		t.Fatalf("first replace: %v", err)
	}
	if err := svc.ReplaceBlockSet(ctx, v, second); err != nil {
		t.Fatalf("second replace: %v", err)
	}

	got, err := svc.GetBlockedIDs(ctx, v)
	if err != nil {
		t.Fatalf("get blocked: %v", err)
	}
	if len(got) != 1 || got[0] != second[0] {
		t.Fatalf("expected exactly the new set %v, got %v", second, got)
	}
}

func TestReplaceBlockSetDeduplicates(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()
	v, target := uuid.New(), uuid.New()

	if err := svc.ReplaceBlockSet(ctx, v, []uuid.UUID{target, target}); err != nil {
		t.Fatalf("replace: %v", err)
	}
	if got := repo.blocks[v]; len(got) != 1 {
		t.Fatalf("expected deduplicated set, got %v", got)
	}
}

func TestFilterVisibleAppliesBothRules(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()
	viewer := uuid.New()
	blocked, denier, clean := uuid.New(), uuid.New(), uuid.New()

	repo.blocks[viewer] = []uuid.UUID{blocked}
	repo.denies[denier] = []uuid.UUID{viewer}

	visible, err := svc.FilterVisible(ctx, viewer, []uuid.UUID{blocked, denier, clean})
	if err != nil {
		t.Fatalf("filter: %v", err)
	}
	if len(visible) != 1 || visible[0] != clean {
		t.Fatalf("expected only the clean candidate, got %v", visible)
	}
}

func TestFilterVisiblePreservesOrder(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()
	viewer := uuid.New()
	a, b, c, d := uuid.New(), uuid.New(), uuid.New(), uuid.New()

	repo.blocks[viewer] = []uuid.UUID{b}

	visible, err := svc.FilterVisible(ctx, viewer, []uuid.UUID{a, b, c, d})
	if err != nil {
		t.Fatalf("filter: %v", err)
	}
	want := []uuid.UUID{a, c, d}
	if len(visible) != len(want) {
		t.Fatalf("expected %v, got %v", want, visible)
	}
	for i := range want {
		if visible[i] != want[i] {
			t.Fatalf("order not preserved: expected %v, got %v", want, visible)
		}
	}
}

func TestFilterVisibleIdempotent(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()
	viewer := uuid.New()
	blocked, clean1, clean2 := uuid.New(), uuid.New(), uuid.New()

	repo.blocks[viewer] = []uuid.UUID{blocked}

	once, err := svc.FilterVisible(ctx, viewer, []uuid.UUID{clean1, blocked, clean2})
	if err != nil {
		t.Fatalf("first filter: %v", err)
	}
	twice, err := svc.FilterVisible(ctx, viewer, once)
	if err != nil {
		t.Fatalf("second filter: %v", err)
	}
	if len(once) != len(twice) {
		t.Fatalf("filter not idempotent: %v vs %v", once, twice)
	}
	for i := range once {
		if once[i] != twice[i] {
			t.Fatalf("filter not idempotent: %v vs %v", once, twice)
		}
	}
}

func TestFilterVisiblePassesThroughEdgelessIDs(t *testing.T) {
	svc, _, _ := newTestService()
	strangers := []uuid.UUID{uuid.New(), uuid.New()}

	visible, err := svc.FilterVisible(context.Background(), uuid.New(), strangers)
	if err != nil {
		t.Fatalf("filter: %v", err)
	}
	if len(visible) != len(strangers) {
		t.Fatalf("edgeless candidates must pass through, got %v", visible)
	}
}

func TestReplaceBlockSetRejectsUnknownTarget(t *testing.T) {
	svc, _, users := newTestService()
	viewer, ghost := uuid.New(), uuid.New()
	users.missing[ghost] = true

	err := svc.ReplaceBlockSet(context.Background(), viewer, []uuid.UUID{uuid.New(), ghost})
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestReplaceBlockSetChecksTargetsInOneBatch(t *testing.T) {
	svc, repo, users := newTestService()
	viewer := uuid.New()
	targets := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}

	if err := svc.ReplaceBlockSet(context.Background(), viewer, targets); err != nil {
		t.Fatalf("replace: %v", err)
	}
	if users.batchCalls != 1 {
		t.Fatalf("expected one existence batch, got %d", users.batchCalls)
	}
	if got := len(repo.blocks[viewer]); got != 3 {
		t.Fatalf("expected 3 stored blocks, got %d", got)
	}
}

func TestGetFolloweeIDsNewestFirst(t *testing.T) {
	svc, _, _ := newTestService()
	viewer := uuid.New()
	first, second := uuid.New(), uuid.New()

	mustFollow(t, svc, viewer, first)
	mustFollow(t, svc, viewer, second)

	ids, err := svc.GetFolloweeIDs(context.Background(), viewer)
	if err != nil {
		t.Fatalf("get followees: %v", err)
	}
	if len(ids) != 2 || ids[0] != second || ids[1] != first {
		t.Fatalf("expected [second, first], got %v", ids)
	}
}

func TestStoreFailurePropagates(t *testing.T) {
	svc, repo, _ := newTestService()
	repo.failWith = ErrStoreUnavailable

	if _, err := svc.GetFriendIDs(context.Background(), uuid.New()); !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}
	if _, err := svc.FilterVisible(context.Background(), uuid.New(), []uuid.UUID{uuid.New()}); !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}
}

func mustFollow(t *testing.T, svc *Service, follower, followee uuid.UUID) {
	t.Helper()
	if err := svc.Follow(context.Background(), follower, followee); err != nil {
		t.Fatalf("follow %s -> %s: %v", follower, followee, err)
	}
}

package followerapp

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"forkful/internal/core/activity"
	"forkful/internal/core/feed"
	feedapp "forkful/internal/core/feed/service"
	"forkful/internal/core/follower"
)

type fakeFollowerRepo struct {
	edges map[string]map[string]bool // followerID -> followeeID
}

func newFakeFollowerRepo() *fakeFollowerRepo {
	return &fakeFollowerRepo{edges: make(map[string]map[string]bool)}
}

func (f *fakeFollowerRepo) FollowUser(ctx context.Context, fl *follower.Follower) (*follower.Follower, error) {
	from := fl.FollowerID.String()
	if f.edges[from] == nil {
		f.edges[from] = make(map[string]bool)
	}
	f.edges[from][fl.UserID.String()] = true
	return fl, nil
}

func (f *fakeFollowerRepo) UnfollowUser(ctx context.Context, followerID, followeeID string) error {
	delete(f.edges[followerID], followeeID)
	return nil
}

func (f *fakeFollowerRepo) GetFollowerIDs(ctx context.Context, userID string) ([]string, error) {
	var ids []string
	for from, tos := range f.edges {
		if tos[userID] {
			ids = append(ids, from)
		}
	}
	return ids, nil
}

func (f *fakeFollowerRepo) GetFollowingIDs(ctx context.Context, followerID string) ([]string, error) {
	var ids []string
	for to := range f.edges[followerID] {
		ids = append(ids, to)
	}
	return ids, nil
}

func (f *fakeFollowerRepo) IsFollowing(ctx context.Context, followerID, followeeID string) (bool, error) {
	return f.edges[followerID][followeeID], nil
}

type fakeEventRepo struct {
	events map[int64]*activity.Event
}

func (f *fakeEventRepo) Create(ctx context.Context, ev *activity.Event) (*activity.Event, error) {
	f.events[ev.ID] = ev
	return ev, nil
}

func (f *fakeEventRepo) FindByID(ctx context.Context, id int64) (*activity.Event, error) {
	ev, ok := f.events[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return ev, nil
}

func (f *fakeEventRepo) ListByIDs(ctx context.Context, ids []int64) ([]*activity.Event, error) {
	return nil, nil
}

func (f *fakeEventRepo) ListRecentByActor(ctx context.Context, actorID string, limit int) ([]*activity.Event, error) {
	var out []*activity.Event
	for _, ev := range f.events {
		if ev.ActorID.String() == actorID {
			out = append(out, ev)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeEventRepo) ListIDsByActor(ctx context.Context, actorID string) ([]int64, error) {
	var out []int64
	for _, ev := range f.events {
		if ev.ActorID.String() == actorID {
			out = append(out, ev.ID)
		}
	}
	return out, nil
}

func (f *fakeEventRepo) IncrementLikeCount(ctx context.Context, id int64, delta int) error {
	return nil
}

type fakeFeedIndex struct {
	mu   sync.Mutex
	logs map[string]map[int64]int64
}

func (ix *fakeFeedIndex) Add(ctx context.Context, userID string, e feed.Entry) error {
	return ix.AddBatch(ctx, userID, []feed.Entry{e})
}

func (ix *fakeFeedIndex) AddBatch(ctx context.Context, userID string, entries []feed.Entry) error {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	if ix.logs[userID] == nil {
		ix.logs[userID] = make(map[int64]int64)
	}
	for _, e := range entries {
		ix.logs[userID][e.ActivityEventID] = e.CreatedAt
	}
	return nil
}

func (ix *fakeFeedIndex) Remove(ctx context.Context, userID string, ids []int64) error {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	for _, id := range ids {
		delete(ix.logs[userID], id)
	}
	return nil
}

func (ix *fakeFeedIndex) Page(ctx context.Context, userID string, cursor *feed.Cursor, limit int) ([]feed.Entry, *feed.Cursor, error) {
	return nil, nil, nil
}

type inlineTasks struct {
	submitted []string
}

func (tk *inlineTasks) Submit(name string, fn func(ctx context.Context) error) bool {
	tk.submitted = append(tk.submitted, name)
	_ = fn(context.Background())
	return true
}

type followerWorld struct {
	repo   *fakeFollowerRepo
	events *fakeEventRepo
	index  *fakeFeedIndex
	tasks  *inlineTasks
	svc    *FollowerService
}

func newFollowerWorld() *followerWorld {
	w := &followerWorld{
		repo:   newFakeFollowerRepo(),
		events: &fakeEventRepo{events: make(map[int64]*activity.Event)},
		index:  &fakeFeedIndex{logs: make(map[string]map[int64]int64)},
		tasks:  &inlineTasks{},
	}
	prop := feedapp.NewPropagator(w.events, w.repo, w.index, zap.NewNop())
	w.svc = NewFollowerService(w.repo, prop, w.tasks)
	return w
}

func TestFollowUserBackfillsFeed(t *testing.T) {
	ctx := context.Background()
	w := newFollowerWorld()

	followee := uuid.Must(uuid.NewV4())
	followerID := uuid.Must(uuid.NewV4())
	base := time.Now().Add(-time.Hour)
	for i := int64(1); i <= 3; i++ {
		_, err := w.events.Create(ctx, &activity.Event{
			ID: i, Type: activity.TypeRecipeImport, ActorID: followee,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}

	require.NoError(t, w.svc.FollowUser(ctx, followerID.String(), followee.String()))

	ok, err := w.svc.IsFollowing(ctx, followerID.String(), followee.String())
	require.NoError(t, err)
	require.True(t, ok)

	require.Equal(t, []string{"backfill"}, w.tasks.submitted)
	require.Len(t, w.index.logs[followerID.String()], 3)
}

func TestFollowYourself(t *testing.T) {
	w := newFollowerWorld()
	self := uuid.Must(uuid.NewV4()).String()
	require.Error(t, w.svc.FollowUser(context.Background(), self, self))
	require.Empty(t, w.tasks.submitted)
}

func TestUnfollowUserCleansFeed(t *testing.T) {
	ctx := context.Background()
	w := newFollowerWorld()

	followee := uuid.Must(uuid.NewV4())
	other := uuid.Must(uuid.NewV4())
	followerID := uuid.Must(uuid.NewV4())
	base := time.Now().Add(-time.Hour)
	for i := int64(1); i <= 2; i++ {
		_, err := w.events.Create(ctx, &activity.Event{
			ID: i, Type: activity.TypeRecipeImport, ActorID: followee,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}
	_, err := w.events.Create(ctx, &activity.Event{
		ID: 3, Type: activity.TypeRecipeImport, ActorID: other, CreatedAt: base,
	})
	require.NoError(t, err)

	require.NoError(t, w.svc.FollowUser(ctx, followerID.String(), followee.String()))
	require.NoError(t, w.svc.FollowUser(ctx, followerID.String(), other.String()))
	require.Len(t, w.index.logs[followerID.String()], 3)

	require.NoError(t, w.svc.UnfollowUser(ctx, followerID.String(), followee.String()))

	require.Equal(t, []string{"backfill", "backfill", "cleanup"}, w.tasks.submitted)
	log := w.index.logs[followerID.String()]
	require.Len(t, log, 1)
	_, kept := log[3]
	require.True(t, kept)

	ok, err := w.svc.IsFollowing(ctx, followerID.String(), followee.String())
	require.NoError(t, err)
	require.False(t, ok)
}

func TestFollowerListsNeverNil(t *testing.T) {
	ctx := context.Background()
	w := newFollowerWorld()
	nobody := uuid.Must(uuid.NewV4()).String()

	followers, err := w.svc.GetFollowerIDs(ctx, nobody)
	require.NoError(t, err)
	require.NotNil(t, followers)
	require.Empty(t, followers)

	following, err := w.svc.GetFollowingIDs(ctx, nobody)
	require.NoError(t, err)
	require.NotNil(t, following)
	require.Empty(t, following)
}

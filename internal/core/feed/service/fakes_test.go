package feedapp

import (
	"context"
	"errors"
	"sort"
	"sync"

	"gorm.io/gorm"

	"forkful/internal/core/activity"
	"forkful/internal/core/feed"
	"forkful/internal/core/follower"
	"forkful/internal/core/recipe"
	"forkful/internal/core/review"
	"forkful/internal/core/user"
)

// fakeIndex is an in-memory feed index with the same ordering and
// idempotency contract as the real one. failFor simulates an
// unreachable target.
type fakeIndex struct {
	mu      sync.Mutex
	logs    map[string][]feed.Entry
	failFor map[string]error
}

func newFakeIndex() *fakeIndex {
	return &fakeIndex{
		logs:    make(map[string][]feed.Entry),
		failFor: make(map[string]error),
	}
}

func (ix *fakeIndex) Add(ctx context.Context, userID string, e feed.Entry) error {
	return ix.AddBatch(ctx, userID, []feed.Entry{e})
}

func (ix *fakeIndex) AddBatch(ctx context.Context, userID string, entries []feed.Entry) error {
	if err := ix.failFor[userID]; err != nil {
		return err
	}
	ix.mu.Lock()
	defer ix.mu.Unlock()
	log := ix.logs[userID]
	for _, e := range entries {
		dup := false
		for _, have := range log {
			if have.ActivityEventID == e.ActivityEventID {
				dup = true
				break
			}
		}
		if !dup {
			log = append(log, e)
		}
	}
	sort.Slice(log, func(i, j int) bool { return log[j].Less(log[i]) })
	ix.logs[userID] = log
	return nil
}

func (ix *fakeIndex) Remove(ctx context.Context, userID string, ids []int64) error {
	if err := ix.failFor[userID]; err != nil {
		return err
	}
	ix.mu.Lock()
	defer ix.mu.Unlock()
	drop := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}
	kept := ix.logs[userID][:0]
	for _, e := range ix.logs[userID] {
		if _, ok := drop[e.ActivityEventID]; !ok {
			kept = append(kept, e)
		}
	}
	ix.logs[userID] = kept
	return nil
}

func (ix *fakeIndex) Page(ctx context.Context, userID string, cursor *feed.Cursor, limit int) ([]feed.Entry, *feed.Cursor, error) {
	if err := ix.failFor[userID]; err != nil {
		return nil, nil, err
	}
	ix.mu.Lock()
	defer ix.mu.Unlock()
	log := ix.logs[userID]
	start := 0
	if cursor != nil {
		after := feed.Entry{ActivityEventID: cursor.ID, CreatedAt: cursor.CreatedAt}
		start = sort.Search(len(log), func(i int) bool { return log[i].Less(after) })
	}
	end := start + limit
	if end > len(log) {
		end = len(log)
	}
	page := make([]feed.Entry, end-start)
	copy(page, log[start:end])
	var next *feed.Cursor
	if end < len(log) && len(page) > 0 {
		last := page[len(page)-1]
		next = &feed.Cursor{CreatedAt: last.CreatedAt, ID: last.ActivityEventID}
	}
	return page, next, nil
}

func (ix *fakeIndex) ids(userID string) []int64 {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	out := make([]int64, 0, len(ix.logs[userID]))
	for _, e := range ix.logs[userID] {
		out = append(out, e.ActivityEventID)
	}
	return out
}

type fakeEvents struct {
	mu     sync.Mutex
	events map[int64]*activity.Event
}

func newFakeEvents() *fakeEvents {
	return &fakeEvents{events: make(map[int64]*activity.Event)}
}

func (f *fakeEvents) Create(ctx context.Context, ev *activity.Event) (*activity.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events[ev.ID] = ev
	return ev, nil
}

func (f *fakeEvents) FindByID(ctx context.Context, id int64) (*activity.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ev, ok := f.events[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return ev, nil
}

// ListByIDs returns hits sorted by ID descending, deliberately not in
// request order.
func (f *fakeEvents) ListByIDs(ctx context.Context, ids []int64) ([]*activity.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*activity.Event
	for _, id := range ids {
		if ev, ok := f.events[id]; ok {
			out = append(out, ev)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (f *fakeEvents) ListRecentByActor(ctx context.Context, actorID string, limit int) ([]*activity.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
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

func (f *fakeEvents) ListIDsByActor(ctx context.Context, actorID string) ([]int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []int64
	for _, ev := range f.events {
		if ev.ActorID.String() == actorID {
			out = append(out, ev.ID)
		}
	}
	return out, nil
}

func (f *fakeEvents) IncrementLikeCount(ctx context.Context, id int64, delta int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if ev, ok := f.events[id]; ok {
		ev.LikeCount += int64(delta)
	}
	return nil
}

type fakeFollowers struct {
	followersOf map[string][]string
	followingOf map[string][]string
}

func newFakeFollowers() *fakeFollowers {
	return &fakeFollowers{
		followersOf: make(map[string][]string),
		followingOf: make(map[string][]string),
	}
}

func (f *fakeFollowers) follow(followerID, followeeID string) {
	f.followersOf[followeeID] = append(f.followersOf[followeeID], followerID)
	f.followingOf[followerID] = append(f.followingOf[followerID], followeeID)
}

func (f *fakeFollowers) FollowUser(ctx context.Context, fl *follower.Follower) (*follower.Follower, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeFollowers) UnfollowUser(ctx context.Context, followerID, followeeID string) error {
	return nil
}

func (f *fakeFollowers) GetFollowerIDs(ctx context.Context, userID string) ([]string, error) {
	return f.followersOf[userID], nil
}

func (f *fakeFollowers) GetFollowingIDs(ctx context.Context, followerID string) ([]string, error) {
	return f.followingOf[followerID], nil
}

func (f *fakeFollowers) IsFollowing(ctx context.Context, followerID, followeeID string) (bool, error) {
	for _, id := range f.followingOf[followerID] {
		if id == followeeID {
			return true, nil
		}
	}
	return false, nil
}

type fakeUsers struct {
	users map[string]*user.User
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{users: make(map[string]*user.User)}
}

func (f *fakeUsers) Create(u *user.User) (*user.User, error) {
	f.users[u.ID.String()] = u
	return u, nil
}

func (f *fakeUsers) FindByUsername(username string) (*user.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUsers) ListByIDs(ctx context.Context, ids []string) ([]*user.User, error) {
	var out []*user.User
	for _, id := range ids {
		if u, ok := f.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

type fakeRecipes struct {
	recipes map[string]*recipe.Recipe
	covers  map[string]string
}

func newFakeRecipes() *fakeRecipes {
	return &fakeRecipes{
		recipes: make(map[string]*recipe.Recipe),
		covers:  make(map[string]string),
	}
}

func (f *fakeRecipes) Create(ctx context.Context, r *recipe.Recipe) (*recipe.Recipe, error) {
	f.recipes[r.ID.String()] = r
	return r, nil
}

func (f *fakeRecipes) FindByID(ctx context.Context, id string) (*recipe.Recipe, error) {
	r, ok := f.recipes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return r, nil
}

func (f *fakeRecipes) ListByIDs(ctx context.Context, ids []string) ([]*recipe.Recipe, error) {
	var out []*recipe.Recipe
	for _, id := range ids {
		if r, ok := f.recipes[id]; ok {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRecipes) AddImage(ctx context.Context, img *recipe.Image) error {
	key := img.RecipeID.String()
	if _, ok := f.covers[key]; !ok {
		f.covers[key] = img.URL
	}
	return nil
}

func (f *fakeRecipes) CoverImages(ctx context.Context, recipeIDs []string) (map[string]string, error) {
	out := make(map[string]string)
	for _, id := range recipeIDs {
		if url, ok := f.covers[id]; ok {
			out[id] = url
		}
	}
	return out, nil
}

type fakeReviews struct {
	byActivity map[int64]*review.Review
	images     map[string][]string
	ratings    map[string][]int
}

func newFakeReviews() *fakeReviews {
	return &fakeReviews{
		byActivity: make(map[int64]*review.Review),
		images:     make(map[string][]string),
		ratings:    make(map[string][]int),
	}
}

func (f *fakeReviews) Create(ctx context.Context, r *review.Review) (*review.Review, error) {
	f.byActivity[r.ActivityEventID] = r
	f.ratings[r.RecipeID.String()] = append(f.ratings[r.RecipeID.String()], r.Rating)
	return r, nil
}

func (f *fakeReviews) AddImages(ctx context.Context, imgs []*review.Image) error {
	for _, img := range imgs {
		key := img.ReviewID.String()
		f.images[key] = append(f.images[key], img.URL)
	}
	return nil
}

func (f *fakeReviews) ListByActivityIDs(ctx context.Context, activityEventIDs []int64) ([]*review.Review, error) {
	var out []*review.Review
	for _, id := range activityEventIDs {
		if r, ok := f.byActivity[id]; ok {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeReviews) ImagesByReviewIDs(ctx context.Context, reviewIDs []string) (map[string][]string, error) {
	out := make(map[string][]string)
	for _, id := range reviewIDs {
		if urls, ok := f.images[id]; ok {
			out[id] = urls
		}
	}
	return out, nil
}

func (f *fakeReviews) RatingsByRecipeID(ctx context.Context, recipeID string) ([]int, error) {
	return f.ratings[recipeID], nil
}

type fakeLikes struct {
	liked map[string]map[int64]bool
}

func newFakeLikes() *fakeLikes {
	return &fakeLikes{liked: make(map[string]map[int64]bool)}
}

func (f *fakeLikes) like(userID string, activityEventID int64) {
	if f.liked[userID] == nil {
		f.liked[userID] = make(map[int64]bool)
	}
	f.liked[userID][activityEventID] = true
}

func (f *fakeLikes) Create(ctx context.Context, like *activity.Like) (bool, error) {
	uid := like.UserID.String()
	if f.liked[uid][like.ActivityEventID] {
		return false, nil
	}
	f.like(uid, like.ActivityEventID)
	return true, nil
}

func (f *fakeLikes) Delete(ctx context.Context, activityEventID int64, userID string) (bool, error) {
	if !f.liked[userID][activityEventID] {
		return false, nil
	}
	delete(f.liked[userID], activityEventID)
	return true, nil
}

func (f *fakeLikes) LikedSet(ctx context.Context, userID string, activityEventIDs []int64) (map[int64]bool, error) {
	out := make(map[int64]bool)
	for _, id := range activityEventIDs {
		if f.liked[userID][id] {
			out[id] = true
		}
	}
	return out, nil
}

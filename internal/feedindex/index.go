package feedindex

import (
	"context"
	"hash/fnv"
	"sort"
	"sync"

	"go.uber.org/zap"

	"forkful/internal/core/feed"
	feedPort "forkful/internal/ports/feed"
)

const (
	defaultShards     = 64
	defaultMaxEntries = 5000
	defaultPageSize   = 20
)

// Index is the per-user feed index. A user ID always hashes to the
// same shard, and each shard runs its operations on a single
// goroutine, so all operations for one user execute one at a time in
// submission order. Logs are held in memory sorted by
// (createdAt desc, id desc), loaded lazily from the store and written
// through on every mutation.
type Index struct {
	shards     []*shard
	store      feedPort.Store
	logger     *zap.Logger
	maxEntries int

	closeOnce sync.Once
	wg        sync.WaitGroup
}

// New builds an index backed by store. Zero values for shards and
// maxEntries select the defaults.
func New(store feedPort.Store, logger *zap.Logger, shards, maxEntries int) *Index {
	if shards <= 0 {
		shards = defaultShards
	}
	if maxEntries <= 0 {
		maxEntries = defaultMaxEntries
	}
	ix := &Index{
		store:      store,
		logger:     logger,
		maxEntries: maxEntries,
	}
	ix.shards = make([]*shard, shards)
	for i := range ix.shards {
		sh := &shard{
			ops:  make(chan func(), 256),
			logs: make(map[string]*userLog),
		}
		ix.shards[i] = sh
		ix.wg.Add(1)
		go func() {
			defer ix.wg.Done()
			sh.run()
		}()
	}
	return ix
}

// Close stops the shard goroutines after draining queued operations.
func (ix *Index) Close() {
	ix.closeOnce.Do(func() {
		for _, sh := range ix.shards {
			close(sh.ops)
		}
	})
	ix.wg.Wait()
}

func (ix *Index) Add(ctx context.Context, userID string, e feed.Entry) error {
	return ix.AddBatch(ctx, userID, []feed.Entry{e})
}

func (ix *Index) AddBatch(ctx context.Context, userID string, entries []feed.Entry) error {
	if len(entries) == 0 {
		return nil
	}
	return ix.do(ctx, userID, func(l *userLog) error {
		if err := ix.ensureLoaded(ctx, userID, l); err != nil {
			return err
		}
		fresh := make([]feed.Entry, 0, len(entries))
		seen := make(map[int64]struct{}, len(entries))
		for _, e := range entries {
			if _, ok := l.present[e.ActivityEventID]; ok {
				continue
			}
			if _, ok := seen[e.ActivityEventID]; ok {
				continue
			}
			seen[e.ActivityEventID] = struct{}{}
			fresh = append(fresh, e)
		}
		if len(fresh) == 0 {
			return nil
		}
		if err := ix.store.Append(ctx, userID, fresh); err != nil {
			return err
		}
		for _, e := range fresh {
			l.insert(e)
		}
		if len(l.entries) > ix.maxEntries {
			l.truncate(ix.maxEntries)
			if err := ix.store.Trim(ctx, userID, ix.maxEntries); err != nil {
				ix.logger.Warn("failed to trim feed log", zap.String("userID", userID), zap.Error(err))
			}
		}
		return nil
	})
}

func (ix *Index) Remove(ctx context.Context, userID string, activityEventIDs []int64) error {
	if len(activityEventIDs) == 0 {
		return nil
	}
	return ix.do(ctx, userID, func(l *userLog) error {
		if err := ix.ensureLoaded(ctx, userID, l); err != nil {
			return err
		}
		hits := make([]int64, 0, len(activityEventIDs))
		for _, id := range activityEventIDs {
			if _, ok := l.present[id]; ok {
				hits = append(hits, id)
			}
		}
		if len(hits) == 0 {
			return nil
		}
		if err := ix.store.Remove(ctx, userID, hits); err != nil {
			return err
		}
		l.remove(hits)
		return nil
	})
}

func (ix *Index) Page(ctx context.Context, userID string, cursor *feed.Cursor, limit int) ([]feed.Entry, *feed.Cursor, error) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	var (
		page []feed.Entry
		next *feed.Cursor
	)
	err := ix.do(ctx, userID, func(l *userLog) error {
		if err := ix.ensureLoaded(ctx, userID, l); err != nil {
			return err
		}
		start := 0
		if cursor != nil {
			after := feed.Entry{ActivityEventID: cursor.ID, CreatedAt: cursor.CreatedAt}
			// Entries are sorted descending; find the first one
			// strictly older than the cursor.
			start = sort.Search(len(l.entries), func(i int) bool {
				return l.entries[i].Less(after)
			})
		}
		end := start + limit
		if end > len(l.entries) {
			end = len(l.entries)
		}
		page = make([]feed.Entry, end-start)
		copy(page, l.entries[start:end])
		if end < len(l.entries) && len(page) > 0 {
			last := page[len(page)-1]
			next = &feed.Cursor{CreatedAt: last.CreatedAt, ID: last.ActivityEventID}
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return page, next, nil
}

// do runs fn on the shard goroutine owning userID.
func (ix *Index) do(ctx context.Context, userID string, fn func(l *userLog) error) error {
	sh := ix.shardFor(userID)
	done := make(chan error, 1)
	op := func() {
		done <- fn(sh.log(userID))
	}
	select {
	case sh.ops <- op:
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (ix *Index) shardFor(userID string) *shard {
	h := fnv.New32a()
	h.Write([]byte(userID))
	return ix.shards[h.Sum32()%uint32(len(ix.shards))]
}

func (ix *Index) ensureLoaded(ctx context.Context, userID string, l *userLog) error {
	if l.loaded {
		return nil
	}
	entries, err := ix.store.Load(ctx, userID)
	if err != nil {
		return err
	}
	l.entries = l.entries[:0]
	l.present = make(map[int64]struct{}, len(entries))
	for _, e := range entries {
		if _, ok := l.present[e.ActivityEventID]; ok {
			continue
		}
		l.present[e.ActivityEventID] = struct{}{}
		l.entries = append(l.entries, e)
	}
	sort.Slice(l.entries, func(i, j int) bool {
		return l.entries[j].Less(l.entries[i])
	})
	l.loaded = true
	return nil
}

type shard struct {
	ops  chan func()
	logs map[string]*userLog
}

// run executes operations strictly sequentially. Only this goroutine
// touches the shard's logs.
func (sh *shard) run() {
	for op := range sh.ops {
		op()
	}
}

func (sh *shard) log(userID string) *userLog {
	l, ok := sh.logs[userID]
	if !ok {
		l = &userLog{present: make(map[int64]struct{})}
		sh.logs[userID] = l
	}
	return l
}

// userLog is one user's ordered feed log. Accessed only from the
// owning shard goroutine.
type userLog struct {
	entries []feed.Entry // sorted by (CreatedAt desc, ID desc)
	present map[int64]struct{}
	loaded  bool
}

func (l *userLog) insert(e feed.Entry) {
	pos := sort.Search(len(l.entries), func(i int) bool {
		return l.entries[i].Less(e)
	})
	l.entries = append(l.entries, feed.Entry{})
	copy(l.entries[pos+1:], l.entries[pos:])
	l.entries[pos] = e
	l.present[e.ActivityEventID] = struct{}{}
}

func (l *userLog) remove(ids []int64) {
	drop := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}
	kept := l.entries[:0]
	for _, e := range l.entries {
		if _, ok := drop[e.ActivityEventID]; ok {
			delete(l.present, e.ActivityEventID)
			continue
		}
		kept = append(kept, e)
	}
	l.entries = kept
}

// truncate drops the oldest entries beyond max.
func (l *userLog) truncate(max int) {
	for _, e := range l.entries[max:] {
		delete(l.present, e.ActivityEventID)
	}
	l.entries = l.entries[:max]
}

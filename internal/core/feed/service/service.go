package feedapp

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"forkful/internal/core/feed"
	"forkful/internal/metrics"
	activityPort "forkful/internal/ports/activity"
	feedPort "forkful/internal/ports/feed"
	followerPort "forkful/internal/ports/follower"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
	scratchPerUser   = 10
)

// FeedService serves pages of a user's feed: index read, lazy
// hydrate-from-scratch when the index turns out empty, then hydration.
type FeedService struct {
	Index     feedPort.Index
	Events    activityPort.ActivityRepository
	Followers followerPort.FollowerRepository
	Hydrator  *Hydrator
	Logger    *zap.Logger
}

func NewFeedService(
	index feedPort.Index,
	events activityPort.ActivityRepository,
	followers followerPort.FollowerRepository,
	hydrator *Hydrator,
	logger *zap.Logger,
) *FeedService {
	return &FeedService{
		Index:     index,
		Events:    events,
		Followers: followers,
		Hydrator:  hydrator,
		Logger:    logger,
	}
}

func (s *FeedService) GetFeed(ctx context.Context, viewerID, cursor string, limit int) (*feedPort.Page, error) {
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	cur := feed.DecodeCursor(cursor)

	entries, next, err := s.Index.Page(ctx, viewerID, cur, limit)
	if err != nil {
		metrics.FeedReads.WithLabelValues("error").Inc()
		return nil, err
	}

	// An empty first page means the index was likely never populated
	// (storage reset, or the user never triggered backfill). Rebuild
	// it from the people the viewer follows and try once more.
	if len(entries) == 0 && cur == nil {
		if err := s.hydrateFromScratch(ctx, viewerID); err != nil {
			s.Logger.Warn("hydrate-from-scratch failed",
				zap.String("viewerID", viewerID), zap.Error(err))
		}
		entries, next, err = s.Index.Page(ctx, viewerID, nil, limit)
		if err != nil {
			metrics.FeedReads.WithLabelValues("error").Inc()
			return nil, err
		}
	}

	ids := make([]int64, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.ActivityEventID)
	}
	items, err := s.Hydrator.Hydrate(ctx, ids, viewerID)
	if err != nil {
		metrics.FeedReads.WithLabelValues("error").Inc()
		return nil, err
	}

	page := &feedPort.Page{Items: items}
	if next != nil {
		encoded := next.Encode()
		page.NextCursor = &encoded
	}
	metrics.FeedReads.WithLabelValues("ok").Inc()
	return page, nil
}

// hydrateFromScratch pulls the recent activity of the viewer and of
// everyone they follow into the viewer's index. Concurrent calls for
// the same viewer converge: batch adds are idempotent.
func (s *FeedService) hydrateFromScratch(ctx context.Context, viewerID string) error {
	following, err := s.Followers.GetFollowingIDs(ctx, viewerID)
	if err != nil {
		return err
	}
	sources := make([]string, 0, len(following)+1)
	sources = append(sources, viewerID)
	for _, id := range following {
		if id != viewerID {
			sources = append(sources, id)
		}
	}

	var (
		mu      sync.Mutex
		entries []feed.Entry
		wg      sync.WaitGroup
	)
	for _, source := range sources {
		wg.Add(1)
		go func(source string) {
			defer wg.Done()
			events, err := s.Events.ListRecentByActor(ctx, source, scratchPerUser)
			if err != nil {
				s.Logger.Warn("hydrate-from-scratch source fetch failed",
					zap.String("source", source), zap.Error(err))
				return
			}
			mu.Lock()
			defer mu.Unlock()
			for _, ev := range events {
				entries = append(entries, feed.Entry{
					ActivityEventID: ev.ID,
					CreatedAt:       ev.CreatedAt.UnixMilli(),
				})
			}
		}(source)
	}
	wg.Wait()

	if len(entries) == 0 {
		return nil
	}
	return s.Index.AddBatch(ctx, viewerID, entries)
}

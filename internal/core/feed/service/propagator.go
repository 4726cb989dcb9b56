package feedapp

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"forkful/internal/core/feed"
	"forkful/internal/metrics"
	activityPort "forkful/internal/ports/activity"
	feedPort "forkful/internal/ports/feed"
	followerPort "forkful/internal/ports/follower"
)

const defaultBackfillLimit = 10

// Propagator maintains feed indexes around the write path: fan-out on
// new activity, backfill on follow, cleanup on unfollow. All three are
// invoked fire-and-forget; the mutation that triggered them never
// waits on their result.
type Propagator struct {
	Events        activityPort.ActivityRepository
	Followers     followerPort.FollowerRepository
	Index         feedPort.Index
	Logger        *zap.Logger
	BackfillLimit int
}

func NewPropagator(
	events activityPort.ActivityRepository,
	followers followerPort.FollowerRepository,
	index feedPort.Index,
	logger *zap.Logger,
) *Propagator {
	return &Propagator{
		Events:        events,
		Followers:     followers,
		Index:         index,
		Logger:        logger,
		BackfillLimit: defaultBackfillLimit,
	}
}

// Propagate delivers the entry to the author's feed and to every
// current follower's feed, in parallel. Per-target failures are logged
// and dropped; that follower simply misses the update. Always returns
// nil: propagation runs after the primary write already succeeded and
// must not fail it.
func (p *Propagator) Propagate(ctx context.Context, activityEventID int64, actorID string, createdAt int64) error {
	if _, err := p.Events.FindByID(ctx, activityEventID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			p.Logger.Warn("propagation skipped, event not found",
				zap.Int64("activityEventID", activityEventID))
			return nil
		}
		p.Logger.Error("propagation could not load event",
			zap.Int64("activityEventID", activityEventID), zap.Error(err))
		return nil
	}

	followerIDs, err := p.Followers.GetFollowerIDs(ctx, actorID)
	if err != nil {
		p.Logger.Error("propagation could not resolve followers",
			zap.String("actorID", actorID), zap.Error(err))
		return nil
	}

	targets := make([]string, 0, len(followerIDs)+1)
	targets = append(targets, actorID)
	for _, id := range followerIDs {
		if id != actorID {
			targets = append(targets, id)
		}
	}

	entry := feed.Entry{ActivityEventID: activityEventID, CreatedAt: createdAt}

	var wg sync.WaitGroup
	for _, target := range targets {
		wg.Add(1)
		go func(target string) {
			defer wg.Done()
			if err := p.Index.Add(ctx, target, entry); err != nil {
				metrics.FanoutDeliveries.WithLabelValues("error").Inc()
				p.Logger.Error("fan-out delivery failed",
					zap.Int64("activityEventID", activityEventID),
					zap.String("target", target),
					zap.Error(err))
				return
			}
			metrics.FanoutDeliveries.WithLabelValues("ok").Inc()
		}(target)
	}
	wg.Wait()
	return nil
}

// Backfill seeds a new follower's feed with the followed user's recent
// activity so the relationship is populated right away.
func (p *Propagator) Backfill(ctx context.Context, followerID, followedID string) error {
	limit := p.BackfillLimit
	if limit <= 0 {
		limit = defaultBackfillLimit
	}
	events, err := p.Events.ListRecentByActor(ctx, followedID, limit)
	if err != nil {
		return err
	}
	if len(events) == 0 {
		return nil
	}
	entries := make([]feed.Entry, 0, len(events))
	for _, ev := range events {
		entries = append(entries, feed.Entry{
			ActivityEventID: ev.ID,
			CreatedAt:       ev.CreatedAt.UnixMilli(),
		})
	}
	return p.Index.AddBatch(ctx, followerID, entries)
}

// Cleanup removes all of the unfollowed user's activity from the
// follower's feed. The lookup is not time-bounded: backfill or a long
// follow may have put arbitrarily old entries there.
func (p *Propagator) Cleanup(ctx context.Context, followerID, unfollowedID string) error {
	ids, err := p.Events.ListIDsByActor(ctx, unfollowedID)
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		return nil
	}
	return p.Index.Remove(ctx, followerID, ids)
}

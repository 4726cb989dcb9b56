package redis

import (
	"context"
	"strconv"

	"github.com/go-redis/redis/v8"

	"forkful/internal/core/feed"
)

// FeedIndexStore persists per-user feed logs as Redis sorted sets:
// score is the entry's createdAt in epoch ms, member is the activity
// event ID.
type FeedIndexStore struct {
	Client *redis.Client
}

func NewFeedIndexStore(client *redis.Client) *FeedIndexStore {
	return &FeedIndexStore{Client: client}
}

func feedKey(userID string) string {
	return "feed:" + userID
}

func (s *FeedIndexStore) Load(ctx context.Context, userID string) ([]feed.Entry, error) {
	zs, err := s.Client.ZRevRangeWithScores(ctx, feedKey(userID), 0, -1).Result()
	if err != nil {
		return nil, err
	}
	entries := make([]feed.Entry, 0, len(zs))
	for _, z := range zs {
		member, ok := z.Member.(string)
		if !ok {
			continue
		}
		id, err := strconv.ParseInt(member, 10, 64)
		if err != nil {
			continue
		}
		entries = append(entries, feed.Entry{
			ActivityEventID: id,
			CreatedAt:       int64(z.Score),
		})
	}
	return entries, nil
}

func (s *FeedIndexStore) Append(ctx context.Context, userID string, entries []feed.Entry) error {
	if len(entries) == 0 {
		return nil
	}
	zs := make([]*redis.Z, 0, len(entries))
	for _, e := range entries {
		zs = append(zs, &redis.Z{
			Score:  float64(e.CreatedAt),
			Member: strconv.FormatInt(e.ActivityEventID, 10),
		})
	}
	return s.Client.ZAdd(ctx, feedKey(userID), zs...).Err()
}

func (s *FeedIndexStore) Remove(ctx context.Context, userID string, activityEventIDs []int64) error {
	if len(activityEventIDs) == 0 {
		return nil
	}
	members := make([]interface{}, 0, len(activityEventIDs))
	for _, id := range activityEventIDs {
		members = append(members, strconv.FormatInt(id, 10))
	}
	return s.Client.ZRem(ctx, feedKey(userID), members...).Err()
}

func (s *FeedIndexStore) Trim(ctx context.Context, userID string, max int) error {
	// Keep the max highest-scored members, drop the rest.
	return s.Client.ZRemRangeByRank(ctx, feedKey(userID), 0, int64(-(max + 1))).Err()
}

package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"teammatch/internal/storage"
)

// listCmdable is the part of redis.Cmdable the history store needs.
type listCmdable interface {
	LPush(ctx context.Context, key string, values ...interface{}) *redis.IntCmd
	LRange(ctx context.Context, key string, start, stop int64) *redis.StringSliceCmd
}

// historyEntry is the JSON value pushed onto a user's history list.
type historyEntry struct {
	Term      string    `json:"term"`
	Timestamp time.Time `json:"ts"`
}

// redisSearchHistory keeps one list per user, newest entry at the head.
type redisSearchHistory struct {
	client    listCmdable
	keyPrefix string
	now       func() time.Time
}

// NewRedisSearchHistory creates a storage.SearchHistoryRepository backed by Redis lists.
func NewRedisSearchHistory(client *redis.Client, keyPrefix string) storage.SearchHistoryRepository {
	return newRedisSearchHistory(client, keyPrefix)
}

func newRedisSearchHistory(client listCmdable, keyPrefix string) *redisSearchHistory {
	return &redisSearchHistory{client: client, keyPrefix: keyPrefix, now: time.Now}
}

func (r *redisSearchHistory) key(userID uint) string {
	return r.keyPrefix + strconv.FormatUint(uint64(userID), 10)
}

func (r *redisSearchHistory) Record(ctx context.Context, userID uint, term string) error {
	payload, err := json.Marshal(historyEntry{Term: term, Timestamp: r.now().UTC()})
	if err != nil {
		return fmt.Errorf("failed to encode history entry: %w", err)
	}
	if err := r.client.LPush(ctx, r.key(userID), payload).Err(); err != nil {
		return fmt.Errorf("failed to record search for user %d: %w", userID, err)
	}
	return nil
}

func (r *redisSearchHistory) RecentTerms(ctx context.Context, userID uint, limit int) ([]string, error) {
	terms := []string{}
	if limit <= 0 {
		return terms, nil
	}
	raw, err := r.client.LRange(ctx, r.key(userID), 0, int64(limit-1)).Result()
	if err == redis.Nil {
		return terms, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read search history for user %d: %w", userID, err)
	}
	for _, item := range raw {
		var entry historyEntry
		if err := json.Unmarshal([]byte(item), &entry); err != nil {
			return nil, fmt.Errorf("corrupt search history entry for user %d: %w", userID, err)
		}
		terms = append(terms, entry.Term)
	}
	return terms, nil
}

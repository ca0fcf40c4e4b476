package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeLists is an in-memory stand-in for Redis lists.
type fakeLists struct {
	lists map[string][]string
	err   error
}

func newFakeLists() *fakeLists {
	return &fakeLists{lists: make(map[string][]string)}
}

func (f *fakeLists) LPush(ctx context.Context, key string, values ...interface{}) *redis.IntCmd {
	if f.err != nil {
		return redis.NewIntResult(0, f.err)
	}
	for _, v := range values {
		var s string
		switch x := v.(type) {
		case []byte:
			s = string(x)
		case string:
			s = x
		}
		f.lists[key] = append([]string{s}, f.lists[key]...)
	}
	return redis.NewIntResult(int64(len(f.lists[key])), nil)
}

func (f *fakeLists) LRange(ctx context.Context, key string, start, stop int64) *redis.StringSliceCmd {
	if f.err != nil {
		return redis.NewStringSliceResult(nil, f.err)
	}
	l := f.lists[key]
	if start >= int64(len(l)) {
		return redis.NewStringSliceResult([]string{}, nil)
	}
	if stop >= int64(len(l)) {
		stop = int64(len(l)) - 1
	}
	return redis.NewStringSliceResult(l[start:stop+1], nil)
}

func TestRedisSearchHistory_RecordAndRecent(t *testing.T) {
	fake := newFakeLists()
	repo := newRedisSearchHistory(fake, "search:history:")
	repo.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }
	ctx := context.Background()

	for _, term := range []string{"design", "python", "java", "go", "rust", "figma"} {
		require.NoError(t, repo.Record(ctx, 1, term))
	}
	require.NoError(t, repo.Record(ctx, 2, "solidity"))

	terms, err := repo.RecentTerms(ctx, 1, 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"figma", "rust", "go", "java", "python"}, terms)

	terms, err = repo.RecentTerms(ctx, 2, 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"solidity"}, terms)

	assert.Contains(t, fake.lists, "search:history:1")
	assert.JSONEq(t, `{"term":"solidity","ts":"2024-05-01T12:00:00Z"}`, fake.lists["search:history:2"][0])
}

func TestRedisSearchHistory_EmptyAndZeroLimit(t *testing.T) {
	repo := newRedisSearchHistory(newFakeLists(), "h:")

	terms, err := repo.RecentTerms(context.Background(), 3, 5)
	require.NoError(t, err)
	assert.Empty(t, terms)

	terms, err = repo.RecentTerms(context.Background(), 3, 0)
	require.NoError(t, err)
	assert.Empty(t, terms)
}

func TestRedisSearchHistory_Errors(t *testing.T) {
	fake := newFakeLists()
	fake.err = errors.New("connection refused")
	repo := newRedisSearchHistory(fake, "h:")

	assert.ErrorContains(t, repo.Record(context.Background(), 1, "go"), "connection refused")
	_, err := repo.RecentTerms(context.Background(), 1, 5)
	assert.ErrorContains(t, err, "connection refused")

	fake.err = nil
	fake.lists["h:1"] = []string{"not-json"}
	_, err = repo.RecentTerms(context.Background(), 1, 5)
	assert.ErrorContains(t, err, "corrupt")
}

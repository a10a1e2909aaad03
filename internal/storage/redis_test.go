package storage

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedisStore(t *testing.T) *RedisStore {
	t.Helper()
	mr := miniredis.RunT(t)
	store, err := NewRedisStore(mr.Addr(), testLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestRedisStorePing(t *testing.T) {
	store := newTestRedisStore(t)
	assert.NoError(t, store.Ping(context.Background()))
}

func TestRedisStoreGetOrCreateUser(t *testing.T) {
	store := newTestRedisStore(t)
	ctx := context.Background()

	user, err := store.GetOrCreateUser(ctx, "Alex")
	require.NoError(t, err)
	assert.Equal(t, "alex", user.Username)
	assert.Equal(t, "Alex", user.DisplayName)

	again, err := store.GetOrCreateUser(ctx, "alex")
	require.NoError(t, err)
	assert.Equal(t, user.CreatedAt.Unix(), again.CreatedAt.Unix())
}

func TestRedisStoreEmptyUsername(t *testing.T) {
	store := newTestRedisStore(t)
	ctx := context.Background()

	_, err := store.GetOrCreateUser(ctx, "   ")
	assert.Error(t, err)

	assert.Error(t, store.RecordScore(ctx, "   ", "Fox Forage", 50, 1, false))
	standings, err := store.Leaderboard(ctx, LeaderboardSize)
	require.NoError(t, err)
	assert.Empty(t, standings)
}

func TestRedisStoreRecordScoreAndLeaderboard(t *testing.T) {
	store := newTestRedisStore(t)
	ctx := context.Background()

	require.NoError(t, store.RecordScore(ctx, "alex", "Fox Forage", 120, 4, false))
	require.NoError(t, store.RecordScore(ctx, "blair", "Fox Forage", 300, 8, true))
	require.NoError(t, store.RecordScore(ctx, "alex", "Fox Forage", 80, 3, false))

	user, err := store.GetOrCreateUser(ctx, "alex")
	require.NoError(t, err)
	assert.Equal(t, 2, user.GamesPlayed)
	assert.Equal(t, 200, user.TotalScore)
	assert.Equal(t, 120, user.HighScore)

	standings, err := store.Leaderboard(ctx, LeaderboardSize)
	require.NoError(t, err)
	require.Len(t, standings, 2)
	assert.Equal(t, "Blair", standings[0].DisplayName)
	assert.Equal(t, 300, standings[0].HighScore)
	assert.Equal(t, "Alex", standings[1].DisplayName)
}

func TestRedisStoreLeaderboardLimit(t *testing.T) {
	store := newTestRedisStore(t)
	ctx := context.Background()

	for _, name := range []string{"a", "b", "c", "d"} {
		require.NoError(t, store.RecordScore(ctx, name, "game", len(name)*10, 1, false))
	}

	standings, err := store.Leaderboard(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, standings, 2)
}

func TestNewRedisStoreParsesURL(t *testing.T) {
	mr := miniredis.RunT(t)

	store, err := NewRedisStore("redis://"+mr.Addr(), testLogger())
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	assert.NoError(t, store.Ping(context.Background()))
}

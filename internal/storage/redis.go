package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	userKeyPrefix  = "gameforge:user:"
	leaderboardKey = "gameforge:leaderboard"
)

// RedisStore implements UserStore on Redis: one JSON value per user plus a
// sorted set of high scores for the leaderboard.
type RedisStore struct {
	client *redis.Client
	logger *slog.Logger
}

var _ UserStore = (*RedisStore)(nil)

// NewRedisStore creates a Redis-backed user store. redisURL may be a
// redis:// URL or a bare host:port address.
func NewRedisStore(redisURL string, logger *slog.Logger) (*RedisStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		opts = &redis.Options{Addr: redisURL}
	}
	return &RedisStore{
		client: redis.NewClient(opts),
		logger: logger,
	}, nil
}

func userKey(username string) string {
	return userKeyPrefix + username
}

func (r *RedisStore) loadUser(ctx context.Context, key string) (*UserRecord, error) {
	data, err := r.client.Get(ctx, userKey(key)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	var user UserRecord
	if err := json.Unmarshal([]byte(data), &user); err != nil {
		return nil, fmt.Errorf("failed to unmarshal user: %w", err)
	}
	return &user, nil
}

func (r *RedisStore) saveUser(ctx context.Context, user *UserRecord) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to marshal user: %w", err)
	}
	if err := r.client.Set(ctx, userKey(user.Username), string(data), 0).Err(); err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}
	if err := r.client.ZAdd(ctx, leaderboardKey, redis.Z{
		Score:  float64(user.HighScore),
		Member: user.Username,
	}).Err(); err != nil {
		return fmt.Errorf("failed to update leaderboard: %w", err)
	}
	return nil
}

func (r *RedisStore) GetOrCreateUser(ctx context.Context, username string) (*UserRecord, error) {
	key := NormalizeUsername(username)
	if key == "" {
		return nil, fmt.Errorf("username cannot be empty")
	}

	user, err := r.loadUser(ctx, key)
	if err != nil {
		return nil, err
	}
	if user != nil {
		return user, nil
	}

	user = NewUserRecord(key, time.Now())
	if err := r.saveUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (r *RedisStore) RecordScore(ctx context.Context, username, game string, score, level int, won bool) error {
	key := NormalizeUsername(username)
	if key == "" {
		return fmt.Errorf("username cannot be empty")
	}

	user, err := r.loadUser(ctx, key)
	if err != nil {
		return err
	}
	if user == nil {
		user = NewUserRecord(key, time.Now())
	}

	user.ApplyResult(GameResult{
		Game:  game,
		Score: score,
		Level: level,
		Won:   won,
		Date:  time.Now(),
	})
	return r.saveUser(ctx, user)
}

func (r *RedisStore) Leaderboard(ctx context.Context, limit int) ([]Standing, error) {
	if limit <= 0 {
		limit = LeaderboardSize
	}

	entries, err := r.client.ZRevRangeWithScores(ctx, leaderboardKey, 0, int64(limit)-1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read leaderboard: %w", err)
	}

	standings := make([]Standing, 0, len(entries))
	for _, entry := range entries {
		username, ok := entry.Member.(string)
		if !ok {
			continue
		}
		user, err := r.loadUser(ctx, username)
		if err != nil || user == nil {
			r.logger.Warn("Leaderboard entry without user record", "username", username)
			continue
		}
		standings = append(standings, Standing{
			DisplayName: user.DisplayName,
			HighScore:   user.HighScore,
			GamesPlayed: user.GamesPlayed,
		})
	}
	return standings, nil
}

func (r *RedisStore) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func (r *RedisStore) Close() error {
	if err := r.client.Close(); err != nil {
		r.logger.Error("Failed to close Redis connection", "error", err)
		return err
	}
	return nil
}

package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"sync"
	"time"
)

// FileStore keeps user records in a single flat JSON file keyed by
// normalized username. The whole file is rewritten on every update; fine for
// a single-user interactive tool.
type FileStore struct {
	path   string
	logger *slog.Logger
	mu     sync.Mutex
}

var _ UserStore = (*FileStore)(nil)

// NewFileStore creates a file-backed user store at path. The file is created
// on first write.
func NewFileStore(path string, logger *slog.Logger) *FileStore {
	return &FileStore{
		path:   path,
		logger: logger,
	}
}

func (f *FileStore) load() (map[string]*UserRecord, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return make(map[string]*UserRecord), nil
		}
		return nil, fmt.Errorf("failed to read users file: %w", err)
	}

	users := make(map[string]*UserRecord)
	if len(data) == 0 {
		return users, nil
	}
	if err := json.Unmarshal(data, &users); err != nil {
		// A corrupt users file should not brick the tool; start fresh and
		// let the next save overwrite it.
		f.logger.Warn("Users file is corrupt, starting with empty records", "path", f.path, "error", err)
		return make(map[string]*UserRecord), nil
	}
	return users, nil
}

func (f *FileStore) save(users map[string]*UserRecord) error {
	data, err := json.MarshalIndent(users, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal users: %w", err)
	}
	if err := os.WriteFile(f.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write users file: %w", err)
	}
	return nil
}

func (f *FileStore) GetOrCreateUser(ctx context.Context, username string) (*UserRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := NormalizeUsername(username)
	if key == "" {
		return nil, fmt.Errorf("username cannot be empty")
	}

	users, err := f.load()
	if err != nil {
		return nil, err
	}

	if user, ok := users[key]; ok {
		return user, nil
	}

	user := NewUserRecord(key, time.Now())
	users[key] = user
	if err := f.save(users); err != nil {
		return nil, err
	}
	return user, nil
}

func (f *FileStore) RecordScore(ctx context.Context, username, game string, score, level int, won bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := NormalizeUsername(username)
	if key == "" {
		return fmt.Errorf("username cannot be empty")
	}

	users, err := f.load()
	if err != nil {
		return err
	}

	user, ok := users[key]
	if !ok {
		user = NewUserRecord(key, time.Now())
		users[key] = user
	}

	user.ApplyResult(GameResult{
		Game:  game,
		Score: score,
		Level: level,
		Won:   won,
		Date:  time.Now(),
	})
	return f.save(users)
}

func (f *FileStore) Leaderboard(ctx context.Context, limit int) ([]Standing, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	users, err := f.load()
	if err != nil {
		return nil, err
	}

	standings := make([]Standing, 0, len(users))
	for _, user := range users {
		standings = append(standings, Standing{
			DisplayName: user.DisplayName,
			HighScore:   user.HighScore,
			GamesPlayed: user.GamesPlayed,
		})
	}
	sort.Slice(standings, func(i, j int) bool {
		return standings[i].HighScore > standings[j].HighScore
	})

	if limit > 0 && len(standings) > limit {
		standings = standings[:limit]
	}
	return standings, nil
}

func (f *FileStore) Ping(ctx context.Context) error {
	// The file may not exist yet; only its directory must be usable.
	if _, err := os.Stat(f.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("users file not accessible: %w", err)
	}
	return nil
}

func (f *FileStore) Close() error {
	return nil
}

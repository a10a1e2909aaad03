package storage

import (
	"context"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	// LeaderboardSize is how many standings are shown.
	LeaderboardSize = 10
	// HistoryLimit caps how many past games a user record keeps.
	HistoryLimit = 10
)

// GameResult is one played game in a user's history.
type GameResult struct {
	Game  string    `json:"game"`
	Score int       `json:"score"`
	Level int       `json:"level"`
	Won   bool      `json:"won"`
	Date  time.Time `json:"date"`
}

// UserRecord is a player's persistent profile, keyed by normalized username.
type UserRecord struct {
	Username    string       `json:"username"`
	DisplayName string       `json:"display_name"`
	GamesPlayed int          `json:"games_played"`
	TotalScore  int          `json:"total_score"`
	HighScore   int          `json:"high_score"`
	History     []GameResult `json:"games_history"`
	CreatedAt   time.Time    `json:"created_at"`
	LastPlayed  *time.Time   `json:"last_played"`
}

// Standing is one leaderboard row.
type Standing struct {
	DisplayName string `json:"username"`
	HighScore   int    `json:"high_score"`
	GamesPlayed int    `json:"games_played"`
}

// UserStore persists user records and serves the leaderboard. Two
// implementations exist: a flat JSON file (default) and Redis.
type UserStore interface {
	// GetOrCreateUser returns the record for username, creating it if new.
	GetOrCreateUser(ctx context.Context, username string) (*UserRecord, error)

	// RecordScore updates the user's aggregates and bounded history after a game.
	RecordScore(ctx context.Context, username, game string, score, level int, won bool) error

	// Leaderboard returns up to limit standings ordered by high score descending.
	Leaderboard(ctx context.Context, limit int) ([]Standing, error)

	Ping(ctx context.Context) error
	Close() error
}

var titler = cases.Title(language.English)

// NormalizeUsername lowercases and trims a username for use as a store key.
func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

// NewUserRecord creates a fresh record for a normalized username.
func NewUserRecord(username string, now time.Time) *UserRecord {
	return &UserRecord{
		Username:    username,
		DisplayName: titler.String(username),
		History:     make([]GameResult, 0),
		CreatedAt:   now,
	}
}

// ApplyResult folds a game result into the record, keeping only the most
// recent HistoryLimit games.
func (u *UserRecord) ApplyResult(result GameResult) {
	u.GamesPlayed++
	u.TotalScore += result.Score
	if result.Score > u.HighScore {
		u.HighScore = result.Score
	}
	t := result.Date
	u.LastPlayed = &t

	u.History = append(u.History, result)
	if len(u.History) > HistoryLimit {
		u.History = u.History[len(u.History)-HistoryLimit:]
	}
}

package storage

import (
	"context"

	"boomerang-server/game"
)

// HistoryStore abstracts persistence for game results and the leaderboard.
// Implementations can be swapped for testing (mocks) or different backends.
type HistoryStore interface {
	// Read
	ListByPlayer(ctx context.Context, playerKey string) ([]GameRecord, error)
	ListLeaderboard(ctx context.Context, limit, offset int) ([]LeaderboardEntry, error)
	GetLeaderboardEntry(ctx context.Context, playerKey string) (*LeaderboardEntry, error)

	// Write
	SaveResult(ctx context.Context, res game.Result) ([]RatingChange, error)

	// Lifecycle
	Close()
}

// Ensure *Store implements HistoryStore at compile time.
var _ HistoryStore = (*Store)(nil)

package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"boomerang-server/game"
)

const (
	EloK           = 32
	InitialElo     = 1000
	aiUserIDPrefix = "ai:"
)

const createTableSQL = `
CREATE TABLE IF NOT EXISTS game_results (
	id           UUID PRIMARY KEY,
	played_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
	edition      TEXT NOT NULL,
	rounds       INT NOT NULL,
	player_count SMALLINT NOT NULL,
	winner_seat  SMALLINT NOT NULL
);
CREATE TABLE IF NOT EXISTS game_players (
	game_id     UUID NOT NULL REFERENCES game_results(id),
	seat        SMALLINT NOT NULL,
	player_key  TEXT NOT NULL,
	name        TEXT NOT NULL,
	kind        TEXT NOT NULL,
	total       INT NOT NULL,
	throw_catch INT NOT NULL,
	place       SMALLINT NOT NULL,
	elo_before  INT,
	elo_after   INT,
	PRIMARY KEY (game_id, seat)
);
CREATE INDEX IF NOT EXISTS idx_game_players_key ON game_players(player_key);
CREATE TABLE IF NOT EXISTS player_ratings (
	user_id      TEXT PRIMARY KEY,
	display_name TEXT NOT NULL DEFAULT '',
	elo          INT  NOT NULL DEFAULT 1000,
	wins         INT  NOT NULL DEFAULT 0,
	losses       INT  NOT NULL DEFAULT 0,
	draws        INT  NOT NULL DEFAULT 0,
	updated_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_player_ratings_elo ON player_ratings(elo DESC);
`

// Store persists finished games and player ratings.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore connects to Postgres and ensures the tables exist.
// If databaseURL is empty, NewStore returns (nil, nil) and no persistence occurs.
func NewStore(ctx context.Context, databaseURL string) (*Store, error) {
	if databaseURL == "" {
		return nil, nil
	}
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	if _, err := pool.Exec(ctx, createTableSQL); err != nil {
		pool.Close()
		return nil, err
	}
	slog.Info("connected to Postgres", "tag", "storage")
	return &Store{pool: pool}, nil
}

// Close closes the connection pool.
func (s *Store) Close() {
	if s != nil && s.pool != nil {
		s.pool.Close()
	}
}

// PlayerKey is the rating identity of a human player name. Names are
// compared without case or surrounding space.
func PlayerKey(name string) string {
	return "player:" + strings.ToLower(strings.TrimSpace(name))
}

// standingKey is the rating identity of one seat. Computers are keyed per
// seat name so two bots in one game never share a row.
func standingKey(st game.Standing) string {
	if st.Kind == game.KindComputer {
		return aiUserIDPrefix + strings.ToLower(strings.ReplaceAll(strings.TrimSpace(st.Name), " ", "-"))
	}
	return PlayerKey(st.Name)
}

// uniqueKeys returns one key per standing, suffixing repeats with the
// player ID.
func uniqueKeys(standings []game.Standing) []string {
	keys := make([]string, len(standings))
	seen := make(map[string]bool, len(standings))
	for i, st := range standings {
		k := standingKey(st)
		if seen[k] {
			k = fmt.Sprintf("%s#%d", k, st.PlayerID)
		}
		seen[k] = true
		keys[i] = k
	}
	return keys
}

// placings returns 1-based places for standings sorted best first.
// Players equal on total and throw/catch share a place.
func placings(standings []game.Standing) []int {
	places := make([]int, len(standings))
	for i, st := range standings {
		if i > 0 && !standings[i-1].Beats(st) {
			places[i] = places[i-1]
			continue
		}
		places[i] = i + 1
	}
	return places
}

// computeEloUpdates returns new ratings for a multi-player game scored as
// pairwise duels: each pair counts as a win, loss or draw by place, and the
// K factor is shared across the n-1 opponents. With two players this is
// the usual Elo update.
func computeEloUpdates(ratings, places []int) []int {
	out := make([]int, len(ratings))
	copy(out, ratings)
	n := len(ratings)
	if n < 2 {
		return out
	}
	k := float64(EloK) / float64(n-1)
	for i := range ratings {
		var delta float64
		for j := range ratings {
			if i == j {
				continue
			}
			expected := 1 / (1 + math.Pow(10, float64(ratings[j]-ratings[i])/400))
			score := 0.5
			switch {
			case places[i] < places[j]:
				score = 1
			case places[i] > places[j]:
				score = 0
			}
			delta += score - expected
		}
		out[i] = ratings[i] + int(math.Round(k*delta))
		if out[i] < 0 {
			out[i] = 0
		}
	}
	return out
}

// outcome classifies a place as a win, draw or loss.
func outcome(place int, places []int) (win, draw, loss int) {
	if place != 1 {
		return 0, 0, 1
	}
	shared := 0
	for _, p := range places {
		if p == 1 {
			shared++
		}
	}
	if shared > 1 {
		return 0, 1, 0
	}
	return 1, 0, 0
}

// RatingChange is one player's Elo before and after a game.
type RatingChange struct {
	PlayerKey string `json:"player_key"`
	Name      string `json:"name"`
	Before    int    `json:"before"`
	After     int    `json:"after"`
}

// SaveResult records a finished game and updates every player's rating in
// one transaction.
func (s *Store) SaveResult(ctx context.Context, res game.Result) ([]RatingChange, error) {
	if s == nil || s.pool == nil {
		return nil, nil
	}
	if len(res.Standings) == 0 {
		return nil, fmt.Errorf("result %s has no standings", res.SessionID)
	}
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	keys := uniqueKeys(res.Standings)
	places := placings(res.Standings)
	ratings := make([]int, len(keys))
	type record struct{ wins, losses, draws int }
	records := make([]record, len(keys))
	for i, k := range keys {
		_, err = tx.Exec(ctx, `INSERT INTO player_ratings (user_id, display_name, elo, wins, losses, draws) VALUES ($1, $2, $3, 0, 0, 0) ON CONFLICT (user_id) DO NOTHING`,
			k, res.Standings[i].Name, InitialElo)
		if err != nil {
			return nil, err
		}
		err = tx.QueryRow(ctx, `SELECT elo, wins, losses, draws FROM player_ratings WHERE user_id = $1`, k).
			Scan(&ratings[i], &records[i].wins, &records[i].losses, &records[i].draws)
		if err != nil {
			return nil, err
		}
	}
	updated := computeEloUpdates(ratings, places)

	_, err = tx.Exec(ctx, `INSERT INTO game_results (id, edition, rounds, player_count, winner_seat) VALUES ($1, $2, $3, $4, $5)`,
		res.SessionID, res.Edition, res.Rounds, len(res.Standings), res.WinnerID)
	if err != nil {
		return nil, err
	}

	changes := make([]RatingChange, len(keys))
	for i, st := range res.Standings {
		w, d, l := outcome(places[i], places)
		r := records[i]
		_, err = tx.Exec(ctx, `UPDATE player_ratings SET display_name = $1, elo = $2, wins = $3, losses = $4, draws = $5, updated_at = now() WHERE user_id = $6`,
			st.Name, updated[i], r.wins+w, r.losses+l, r.draws+d, keys[i])
		if err != nil {
			return nil, err
		}
		_, err = tx.Exec(ctx, `
			INSERT INTO game_players (game_id, seat, player_key, name, kind, total, throw_catch, place, elo_before, elo_after)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			res.SessionID, st.PlayerID, keys[i], st.Name, string(st.Kind), st.Total, st.ThrowCatch, places[i], ratings[i], updated[i])
		if err != nil {
			return nil, err
		}
		changes[i] = RatingChange{PlayerKey: keys[i], Name: st.Name, Before: ratings[i], After: updated[i]}
	}
	if err = tx.Commit(ctx); err != nil {
		return nil, err
	}
	slog.Info("game saved", "tag", "storage", "game", res.SessionID, "players", len(keys))
	return changes, nil
}

// PlayerRecord is one seat of a stored game.
type PlayerRecord struct {
	Seat       int    `json:"seat"`
	PlayerKey  string `json:"player_key"`
	Name       string `json:"name"`
	Kind       string `json:"kind"`
	Total      int    `json:"total"`
	ThrowCatch int    `json:"throw_catch"`
	Place      int    `json:"place"`
	EloBefore  *int   `json:"elo_before,omitempty"`
	EloAfter   *int   `json:"elo_after,omitempty"`
}

// GameRecord is a single game returned for the history API.
type GameRecord struct {
	ID         string         `json:"id"`
	PlayedAt   string         `json:"played_at"` // ISO8601
	Edition    string         `json:"edition"`
	Rounds     int            `json:"rounds"`
	WinnerSeat int            `json:"winner_seat"`
	YourSeat   *int           `json:"your_seat"` // set by ListByPlayer
	Players    []PlayerRecord `json:"players"`
}

// ListByPlayer returns the games playerKey took part in, newest first.
func (s *Store) ListByPlayer(ctx context.Context, playerKey string) ([]GameRecord, error) {
	if s == nil || s.pool == nil {
		return []GameRecord{}, nil
	}
	rows, err := s.pool.Query(ctx, `
		SELECT g.id::text, g.played_at, g.edition, g.rounds, g.winner_seat, p.seat
		FROM game_results g
		JOIN game_players p ON p.game_id = g.id
		WHERE p.player_key = $1
		ORDER BY g.played_at DESC
		LIMIT 100`,
		playerKey)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []GameRecord{}
	index := make(map[string]int)
	for rows.Next() {
		var r GameRecord
		var playedAt time.Time
		var seat int
		if err := rows.Scan(&r.ID, &playedAt, &r.Edition, &r.Rounds, &r.WinnerSeat, &seat); err != nil {
			return nil, err
		}
		r.PlayedAt = playedAt.UTC().Format(time.RFC3339)
		r.YourSeat = &seat
		index[r.ID] = len(out)
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return out, nil
	}

	ids := make([]string, 0, len(out))
	for _, r := range out {
		ids = append(ids, r.ID)
	}
	prows, err := s.pool.Query(ctx, `
		SELECT game_id::text, seat, player_key, name, kind, total, throw_catch, place, elo_before, elo_after
		FROM game_players
		WHERE game_id::text = ANY($1::text[])
		ORDER BY place, seat`,
		ids)
	if err != nil {
		return nil, err
	}
	defer prows.Close()
	for prows.Next() {
		var gameID string
		var p PlayerRecord
		if err := prows.Scan(&gameID, &p.Seat, &p.PlayerKey, &p.Name, &p.Kind, &p.Total, &p.ThrowCatch, &p.Place, &p.EloBefore, &p.EloAfter); err != nil {
			return nil, err
		}
		if i, ok := index[gameID]; ok {
			out[i].Players = append(out[i].Players, p)
		}
	}
	return out, prows.Err()
}

// LeaderboardEntry is a single row for the leaderboard API.
type LeaderboardEntry struct {
	UserID        string `json:"user_id"`
	DisplayName   string `json:"display_name"`
	Elo           int    `json:"elo"`
	Wins          int    `json:"wins"`
	Losses        int    `json:"losses"`
	Draws         int    `json:"draws"`
	IsBot         bool   `json:"is_bot"`
	IsCurrentUser bool   `json:"is_current_user,omitempty"`
}

// ListLeaderboard returns entries ordered by elo DESC, with optional limit and offset.
func (s *Store) ListLeaderboard(ctx context.Context, limit, offset int) ([]LeaderboardEntry, error) {
	if s == nil || s.pool == nil {
		return []LeaderboardEntry{}, nil
	}
	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}
	if offset < 0 {
		offset = 0
	}
	rows, err := s.pool.Query(ctx, `
		SELECT user_id, display_name, elo, wins, losses, draws
		FROM player_ratings
		ORDER BY elo DESC
		LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []LeaderboardEntry{}
	for rows.Next() {
		var e LeaderboardEntry
		if err := rows.Scan(&e.UserID, &e.DisplayName, &e.Elo, &e.Wins, &e.Losses, &e.Draws); err != nil {
			return nil, err
		}
		e.IsBot = strings.HasPrefix(e.UserID, aiUserIDPrefix)
		out = append(out, e)
	}
	return out, rows.Err()
}

// GetLeaderboardEntry returns one player's entry, or (nil, nil) if not found.
func (s *Store) GetLeaderboardEntry(ctx context.Context, playerKey string) (*LeaderboardEntry, error) {
	if s == nil || s.pool == nil || playerKey == "" {
		return nil, nil
	}
	var e LeaderboardEntry
	err := s.pool.QueryRow(ctx, `
		SELECT user_id, display_name, elo, wins, losses, draws
		FROM player_ratings
		WHERE user_id = $1`,
		playerKey).Scan(&e.UserID, &e.DisplayName, &e.Elo, &e.Wins, &e.Losses, &e.Draws)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	e.IsBot = strings.HasPrefix(e.UserID, aiUserIDPrefix)
	return &e, nil
}

package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"boomerang-server/config"
	"boomerang-server/storage"
)

// Reader is the part of the store the API reads from.
type Reader interface {
	ListByPlayer(ctx context.Context, playerKey string) ([]storage.GameRecord, error)
	ListLeaderboard(ctx context.Context, limit, offset int) ([]storage.LeaderboardEntry, error)
	GetLeaderboardEntry(ctx context.Context, playerKey string) (*storage.LeaderboardEntry, error)
}

// Handler holds dependencies for API handlers.
type Handler struct {
	Config       *config.Config
	HistoryStore Reader
}

// NewHandler creates a new API handler. store may be nil, in which case
// every list is empty.
func NewHandler(cfg *config.Config, store Reader) *Handler {
	return &Handler{
		Config:       cfg,
		HistoryStore: store,
	}
}

// Routes registers the API on mux.
func (h *Handler) Routes(mux *http.ServeMux) {
	mux.HandleFunc("/api/history", h.History)
	mux.HandleFunc("/api/leaderboard", h.Leaderboard)
	mux.HandleFunc("/healthz", h.Healthz)
}

// CORS sets CORS headers on the response. Call before writing body.
func CORS(w http.ResponseWriter, r *http.Request) bool {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusNoContent)
		return true
	}
	return false
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("encode response", "tag", "api", "err", err)
	}
}

// playerKey reads the "player" query parameter.
func playerKey(r *http.Request) string {
	name := strings.TrimSpace(r.URL.Query().Get("player"))
	if name == "" {
		return ""
	}
	return storage.PlayerKey(name)
}

// History returns the games of the player named in ?player=.
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	if CORS(w, r) {
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	key := playerKey(r)
	if key == "" {
		http.Error(w, "player is required", http.StatusBadRequest)
		return
	}

	list := []storage.GameRecord{}
	if h.HistoryStore != nil {
		var err error
		list, err = h.HistoryStore.ListByPlayer(r.Context(), key)
		if err != nil {
			slog.Error("ListByPlayer", "tag", "api", "err", err)
			http.Error(w, "failed to load history", http.StatusInternalServerError)
			return
		}
	}
	writeJSON(w, list)
}

// LeaderboardResponse is the JSON structure for /api/leaderboard.
type LeaderboardResponse struct {
	Entries          []storage.LeaderboardEntry `json:"entries"`
	CurrentUserEntry *storage.LeaderboardEntry  `json:"current_user_entry"`
}

// Leaderboard returns the ratings table. With ?player=, that player is
// marked, or appended as current_user_entry when outside the page.
func (h *Handler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	if CORS(w, r) {
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 {
		limit = 20
	}
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	if offset < 0 {
		offset = 0
	}

	entries := []storage.LeaderboardEntry{}
	if h.HistoryStore != nil {
		var err error
		entries, err = h.HistoryStore.ListLeaderboard(r.Context(), limit, offset)
		if err != nil {
			slog.Error("ListLeaderboard", "tag", "api", "err", err)
			http.Error(w, "failed to load leaderboard", http.StatusInternalServerError)
			return
		}
	}

	var current *storage.LeaderboardEntry
	if key := playerKey(r); key != "" && h.HistoryStore != nil {
		inPage := false
		for i := range entries {
			if entries[i].UserID == key {
				entries[i].IsCurrentUser = true
				inPage = true
				break
			}
		}
		if !inPage {
			cur, err := h.HistoryStore.GetLeaderboardEntry(r.Context(), key)
			if err != nil {
				slog.Warn("GetLeaderboardEntry", "tag", "api", "err", err)
			} else if cur != nil {
				cur.IsCurrentUser = true
				current = cur
			}
		}
	}

	writeJSON(w, LeaderboardResponse{Entries: entries, CurrentUserEntry: current})
}

// Healthz reports that the process is up and which edition it hosts.
func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	if CORS(w, r) {
		return
	}
	writeJSON(w, map[string]any{
		"status":  "ok",
		"edition": h.Config.Edition,
		"storage": h.HistoryStore != nil,
	})
}

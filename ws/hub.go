package ws

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/gorilla/websocket"

	"boomerang-server/config"
	"boomerang-server/gameerrors"
	"boomerang-server/message"
	"boomerang-server/wsutil"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Players join from a terminal client, not a browser.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// TokenVerifier validates a join token and returns the name it carries, or
// "" to keep the name from the join frame.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// Hub accepts remote players while a game is being set up and hands their
// connections to whoever reads Joins.
type Hub struct {
	Config   *config.Config
	Verifier TokenVerifier

	joins chan *Conn

	mu     sync.Mutex
	closed bool
}

// NewHub creates a hub with room for seats remote players. verifier may be
// nil to accept any join.
func NewHub(cfg *config.Config, verifier TokenVerifier, seats int) *Hub {
	return &Hub{
		Config:   cfg,
		Verifier: verifier,
		joins:    make(chan *Conn, seats),
	}
}

// Joins delivers accepted connections.
func (h *Hub) Joins() <-chan *Conn {
	return h.joins
}

// Close stops accepting players. Connections already delivered stay open.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
}

func (h *Hub) accepting() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return !h.closed
}

// ServeWS upgrades the request, reads the join frame and offers the
// connection to the lobby.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("websocket upgrade failed", "tag", "ws", "err", err)
		return
	}

	name, err := h.readJoin(ws)
	if err != nil {
		slog.Info("join rejected", "tag", "ws", "remote", r.RemoteAddr, "err", err)
		reject(ws, err)
		return
	}

	conn := NewConn(ws, name, time.Duration(h.Config.ResponseTimeoutSec)*time.Second)
	if !h.accepting() || !wsutil.TrySend(h.joins, conn) {
		slog.Info("join rejected", "tag", "ws", "name", name, "err", gameerrors.ErrLobbyFull)
		conn.Send(message.Information{Text: "Sorry, " + gameerrors.ErrLobbyFull.Error() + "."})
		conn.Close()
		return
	}
	slog.Info("player joined", "tag", "ws", "name", name, "remote", r.RemoteAddr)
}

func (h *Hub) readJoin(ws *websocket.Conn) (string, error) {
	ws.SetReadLimit(maxMessageSize)
	data, err := wsutil.ReadText(ws, joinWait)
	if err != nil {
		return "", fmt.Errorf("%w: %v", gameerrors.ErrTransport, err)
	}
	m, err := message.Decode(data)
	if err != nil {
		return "", err
	}
	join, ok := m.(message.Join)
	if !ok {
		return "", fmt.Errorf("%w: expected join, got %s", gameerrors.ErrUnknownMessage, m.Kind())
	}

	name := strings.TrimSpace(join.Name)
	if h.Verifier != nil {
		claimed, err := h.Verifier.Verify(join.Token)
		if err != nil {
			return "", err
		}
		if claimed != "" {
			name = claimed
		}
	}
	if n := utf8.RuneCountInString(name); n < 1 || n > h.Config.MaxNameLength {
		return "", fmt.Errorf("%w: name must be between 1 and %d characters", gameerrors.ErrInvalidJoinName, h.Config.MaxNameLength)
	}
	return name, nil
}

func reject(ws *websocket.Conn, cause error) {
	if data, err := message.Encode(message.Information{Text: "Join rejected: " + cause.Error()}); err == nil {
		wsutil.WriteText(ws, data, writeWait)
	}
	if data, err := message.Encode(message.Information{Text: message.GameEnding}); err == nil {
		wsutil.WriteText(ws, data, writeWait)
	}
	wsutil.CloseNormal(ws, "join rejected", writeWait)
}

package ws

import (
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"boomerang-server/gameerrors"
	"boomerang-server/message"
	"boomerang-server/wsutil"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed for the join frame after the upgrade.
	joinWait = 10 * time.Second

	// Send pings to peer with this period.
	pingPeriod = 54 * time.Second

	// Maximum message size allowed from peer.
	maxMessageSize = 4096
)

// Conn is a remote player's message.Channel. Send and Receive are called
// only from the goroutine running the game; pings run on their own.
//
// gorilla/websocket connections cannot be used again after a read or write
// error, so every I/O failure is reported as gameerrors.ErrConnectionDead.
type Conn struct {
	ws           *websocket.Conn
	name         string
	responseWait time.Duration

	done      chan struct{}
	closeOnce sync.Once
}

// NewConn wraps an upgraded connection. responseWait bounds each Receive;
// zero waits forever.
func NewConn(ws *websocket.Conn, name string, responseWait time.Duration) *Conn {
	ws.SetReadLimit(maxMessageSize)
	c := &Conn{
		ws:           ws,
		name:         name,
		responseWait: responseWait,
		done:         make(chan struct{}),
	}
	go c.keepAlive()
	return c
}

// Name is the display name sent in the join frame.
func (c *Conn) Name() string {
	return c.name
}

func (c *Conn) Send(m message.Message) error {
	data, err := message.Encode(m)
	if err != nil {
		return err
	}
	if err := wsutil.WriteText(c.ws, data, writeWait); err != nil {
		return fmt.Errorf("%w: write to %s: %v", gameerrors.ErrConnectionDead, c.name, err)
	}
	return nil
}

// Receive waits for the next frame and returns it if it is a Response.
// Any other frame is reported as gameerrors.ErrUnknownMessage.
func (c *Conn) Receive(ch message.Choice) (message.Response, error) {
	data, err := wsutil.ReadText(c.ws, c.responseWait)
	if err != nil {
		reason := "closed"
		if wsutil.IsTimeout(err) {
			reason = "no answer in time"
		}
		return message.Response{}, fmt.Errorf("%w: read from %s (%s): %v", gameerrors.ErrConnectionDead, c.name, reason, err)
	}
	m, err := message.Decode(data)
	if err != nil {
		return message.Response{}, err
	}
	r, ok := m.(message.Response)
	if !ok {
		return message.Response{}, fmt.Errorf("%w: expected response to choice %d, got %s", gameerrors.ErrUnknownMessage, ch.ID, m.Kind())
	}
	return r, nil
}

// Close sends a close frame and releases the connection. It is safe to call
// more than once.
func (c *Conn) Close() error {
	var err error
	c.closeOnce.Do(func() {
		close(c.done)
		err = wsutil.CloseNormal(c.ws, message.GameEnding, writeWait)
	})
	return err
}

func (c *Conn) keepAlive() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			if err := c.ws.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}

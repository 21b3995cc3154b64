package wsutil

import (
	"errors"
	"io"
	"net"
	"time"

	"github.com/gorilla/websocket"
)

// WriteText writes one text frame, failing if it takes longer than wait.
func WriteText(conn *websocket.Conn, data []byte, wait time.Duration) error {
	if err := conn.SetWriteDeadline(time.Now().Add(wait)); err != nil {
		return err
	}
	return conn.WriteMessage(websocket.TextMessage, data)
}

// ReadText reads the next data frame. A zero wait reads without a deadline.
func ReadText(conn *websocket.Conn, wait time.Duration) ([]byte, error) {
	var deadline time.Time
	if wait > 0 {
		deadline = time.Now().Add(wait)
	}
	if err := conn.SetReadDeadline(deadline); err != nil {
		return nil, err
	}
	_, data, err := conn.ReadMessage()
	return data, err
}

// IsGone reports whether err means the peer is gone for good rather than
// slow or misbehaving.
func IsGone(err error) bool {
	if err == nil {
		return false
	}
	var closeErr *websocket.CloseError
	if errors.As(err, &closeErr) {
		return true
	}
	return errors.Is(err, net.ErrClosed) || errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) ||
		errors.Is(err, websocket.ErrCloseSent)
}

// IsTimeout reports whether err is a deadline expiry.
func IsTimeout(err error) bool {
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

// CloseNormal sends a normal close frame and closes the connection.
func CloseNormal(conn *websocket.Conn, reason string, wait time.Duration) error {
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, reason)
	_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(wait))
	return conn.Close()
}

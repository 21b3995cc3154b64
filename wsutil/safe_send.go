package wsutil

import "log/slog"

// TrySend sends v to ch without blocking and without panicking if ch is
// closed. It reports whether v was delivered.
func TrySend[T any](ch chan T, v T) (sent bool) {
	defer func() {
		if r := recover(); r != nil {
			slog.Warn("TrySend recovered panic", "tag", "wsutil", "panic", r)
			sent = false
		}
	}()
	select {
	case ch <- v:
		return true
	default:
		return false
	}
}

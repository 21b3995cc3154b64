package game

import (
	"context"
	"log/slog"

	"boomerang-server/message"
)

// Machine drives a session from its first deal to game over.
type Machine struct {
	session *Session
	state   State
	steps   int
}

// NewMachine returns a machine positioned at the first deal.
func NewMachine(s *Session) *Machine {
	return &Machine{session: s, state: DealState{}}
}

// Run executes phases until the game ends, a phase fails or ctx is done.
// Cancellation is checked between phases only. On return, every human is
// sent the GAME ENDING notice.
func (m *Machine) Run(ctx context.Context) (Result, error) {
	defer m.session.broadcast(message.GameEnding)
	for m.state != nil {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		name := m.state.Name()
		next, err := m.state.Run(m.session)
		if err != nil {
			slog.Error("phase failed", "tag", "game", "session", m.session.ID, "state", name, "err", err)
			return Result{}, err
		}
		m.steps++
		slog.Debug("phase done", "tag", "game", "session", m.session.ID, "state", name, "rounds_left", m.session.RoundsLeft)
		m.state = next
	}
	res := m.session.Result()
	slog.Info("game over", "tag", "game", "session", res.SessionID, "winner", res.WinnerID)
	return res, nil
}

// Steps is the number of phases completed.
func (m *Machine) Steps() int {
	return m.steps
}

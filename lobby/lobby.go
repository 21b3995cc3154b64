// Package lobby seats the players of one game: the host at the terminal,
// remote players arriving over websocket and computer players.
package lobby

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"boomerang-server/ai"
	"boomerang-server/config"
	"boomerang-server/game"
	"boomerang-server/gameerrors"
	"boomerang-server/message"
	"boomerang-server/rules"
	"boomerang-server/ws"
)

// Source delivers remote players. *ws.Hub implements it.
type Source interface {
	Joins() <-chan *ws.Conn
	Close()
}

// Plan is the table the host asked for.
type Plan struct {
	Rules rules.Rules
	// Humans counts every human seat, the host's included.
	Humans    int
	Computers int
	// Local is the host's channel. It takes seat 1 when Humans > 0.
	Local     message.Channel
	LocalName string
}

// Table is a filled lobby.
type Table struct {
	Seats   []game.Seat
	Remotes []*ws.Conn
}

// Close hangs up on every remote player.
func (t *Table) Close() {
	for _, c := range t.Remotes {
		c.Close()
	}
}

// Lobby fills tables from a Source.
type Lobby struct {
	Config *config.Config
	Source Source
}

// New creates a lobby. src may be nil when no remote seats are planned.
func New(cfg *config.Config, src Source) *Lobby {
	return &Lobby{Config: cfg, Source: src}
}

// Fill checks the plan, waits for the remote players and returns the
// seats in order: host, remote players by arrival, computers.
func (l *Lobby) Fill(ctx context.Context, plan Plan) (*Table, error) {
	if err := game.CheckSeats(plan.Rules, plan.Humans, plan.Computers); err != nil {
		return nil, err
	}
	if plan.Humans > 0 && plan.Local == nil {
		return nil, fmt.Errorf("%w: no local channel for the host seat", gameerrors.ErrPlayerCount)
	}

	t := &Table{}
	if plan.Humans > 0 {
		t.Seats = append(t.Seats, game.Seat{
			Name:    plan.LocalName,
			Kind:    game.KindLocal,
			Decider: game.NewHumanDecider(plan.Local, l.Config.MaxTransportFailures),
		})
	}

	if remote := plan.Humans - 1; remote > 0 {
		if err := l.waitRemote(ctx, t, remote, plan.Local); err != nil {
			t.Close()
			return nil, err
		}
	}

	for i := 0; i < plan.Computers; i++ {
		policy, err := ai.New(l.Config.BotBehavior, l.Config.BotSeed+int64(len(t.Seats)))
		if err != nil {
			t.Close()
			return nil, err
		}
		t.Seats = append(t.Seats, game.Seat{Kind: game.KindComputer, Decider: game.NewComputerDecider(policy)})
	}
	slog.Info("lobby filled", "tag", "lobby", "humans", plan.Humans, "computers", plan.Computers)
	return t, nil
}

func (l *Lobby) waitRemote(ctx context.Context, t *Table, n int, host message.Channel) error {
	if l.Source == nil {
		return fmt.Errorf("%w: %d remote players expected but nothing is listening", gameerrors.ErrPlayerCount, n)
	}
	defer l.Source.Close()

	var timeout <-chan time.Time
	if l.Config.JoinTimeoutSec > 0 {
		timer := time.NewTimer(time.Duration(l.Config.JoinTimeoutSec) * time.Second)
		defer timer.Stop()
		timeout = timer.C
	}

	slog.Info("waiting for players", "tag", "lobby", "remote", n)
	for len(t.Remotes) < n {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timeout:
			return fmt.Errorf("%w: %d of %d remote players joined", gameerrors.ErrJoinTimeout, len(t.Remotes), n)
		case c := <-l.Source.Joins():
			id := len(t.Seats) + 1
			t.Remotes = append(t.Remotes, c)
			t.Seats = append(t.Seats, game.Seat{
				Name:    c.Name(),
				Kind:    game.KindRemote,
				Decider: game.NewHumanDecider(c, l.Config.MaxTransportFailures),
			})
			if err := c.Send(message.Information{Text: fmt.Sprintf("You have connected to the host. You are player: %d", id)}); err != nil {
				slog.Warn("greeting failed", "tag", "lobby", "player", id, "err", err)
			}
			if host != nil {
				host.Send(message.Information{Text: fmt.Sprintf("%s joined as player %d.", c.Name(), id)})
			}
			slog.Info("player seated", "tag", "lobby", "player", id, "name", c.Name())
		}
	}
	return nil
}

// Fallback returns a source of computer deciders that take over seats whose
// connection died. Each call gets its own random source.
func Fallback(behavior string, seed int64) (func() game.Decider, error) {
	if _, err := ai.New(behavior, seed); err != nil {
		return nil, err
	}
	n := int64(0)
	return func() game.Decider {
		n++
		policy, _ := ai.New(behavior, seed+1000*n)
		return game.NewComputerDecider(policy)
	}, nil
}

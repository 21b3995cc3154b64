package game

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"boomerang-server/card"
	"boomerang-server/gameerrors"
	"boomerang-server/rules"
)

// Seat describes a player before the session exists.
type Seat struct {
	Name    string
	Kind    Kind
	Decider Decider
}

// SessionConfig holds everything NewSession needs.
type SessionConfig struct {
	Rules       rules.Rules
	Catalog     []card.Card
	Seats       []Seat
	Scoresheets ScoresheetFactory
	// Rand shuffles the deck. Nil seeds from the clock.
	Rand *rand.Rand
	// Fallback returns the decider that takes over a seat whose connection
	// died. Nil ends the game instead.
	Fallback func() Decider
}

// Session is the single source of truth for one game. Only the goroutine
// running its Machine touches it.
type Session struct {
	ID         string
	Rules      rules.Rules
	Deck       []card.Card
	Players    []*Player
	RoundsLeft int
	Regions    *RegionLedger

	rng      *rand.Rand
	fallback func() Decider
}

// CheckSeats validates a seat count against r before any connection is
// accepted.
func CheckSeats(r rules.Rules, humans, computers int) error {
	if humans < 0 || computers < 0 {
		return fmt.Errorf("%w: counts must not be negative (humans=%d, computers=%d)", gameerrors.ErrPlayerCount, humans, computers)
	}
	total := humans + computers
	if total > r.MaxPlayers {
		return fmt.Errorf("%w: the maximum is %d but %d players were requested", gameerrors.ErrPlayerCount, r.MaxPlayers, total)
	}
	if total < r.MinPlayers {
		return fmt.Errorf("%w: the minimum is %d but %d players were requested", gameerrors.ErrPlayerCount, r.MinPlayers, total)
	}
	return nil
}

// NewSession validates cfg and seats the players in order, with IDs from 1.
func NewSession(cfg SessionConfig) (*Session, error) {
	if err := cfg.Rules.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", gameerrors.ErrCardCount, err)
	}
	if len(cfg.Catalog) != cfg.Rules.TotalCards {
		return nil, fmt.Errorf("%w: loaded %d cards, rules require %d", gameerrors.ErrCardCount, len(cfg.Catalog), cfg.Rules.TotalCards)
	}
	humans := 0
	for _, s := range cfg.Seats {
		if s.Kind != KindComputer {
			humans++
		}
	}
	if err := CheckSeats(cfg.Rules, humans, len(cfg.Seats)-humans); err != nil {
		return nil, err
	}
	if cfg.Scoresheets == nil {
		return nil, fmt.Errorf("%w: no scoresheet factory", gameerrors.ErrScoresheet)
	}

	rng := cfg.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	s := &Session{
		ID:         uuid.NewString(),
		Rules:      cfg.Rules,
		Deck:       append([]card.Card(nil), cfg.Catalog...),
		RoundsLeft: cfg.Rules.Rounds,
		Regions:    NewRegionLedger(),
		rng:        rng,
		fallback:   cfg.Fallback,
	}
	for i, seat := range cfg.Seats {
		sheet, err := cfg.Scoresheets(s.Regions)
		if err != nil {
			return nil, fmt.Errorf("%w: player %d: %v", gameerrors.ErrScoresheet, i+1, err)
		}
		if seat.Decider == nil {
			return nil, fmt.Errorf("%w: seat %d has no decider", gameerrors.ErrPlayerCount, i+1)
		}
		name := seat.Name
		if name == "" {
			name = fmt.Sprintf("Player %d", i+1)
		}
		s.Players = append(s.Players, NewPlayer(i+1, name, seat.Kind, sheet, seat.Decider))
	}
	slog.Info("session created", "tag", "game", "session", s.ID, "players", len(s.Players), "rounds", s.RoundsLeft)
	return s, nil
}

// CardCount is the number of cards in the deck and in every hand.
func (s *Session) CardCount() int {
	n := len(s.Deck)
	for _, p := range s.Players {
		n += p.Hand.Size()
	}
	return n
}

// broadcast informs every player.
func (s *Session) broadcast(text string) {
	for _, p := range s.Players {
		p.Inform(text)
	}
}

// deal shuffles the deck and moves CardsPerPlayer cards into each hand.
func (s *Session) deal() {
	s.rng.Shuffle(len(s.Deck), func(i, j int) { s.Deck[i], s.Deck[j] = s.Deck[j], s.Deck[i] })
	n := s.Rules.CardsPerPlayer
	for _, p := range s.Players {
		p.Hand.Deal(s.Deck[:n])
		s.Deck = append([]card.Card(nil), s.Deck[n:]...)
	}
}

// collect returns every hand's cards to the deck.
func (s *Session) collect() {
	for _, p := range s.Players {
		s.Deck = append(s.Deck, p.Hand.Clear()...)
	}
}

// pick asks p for a card, handing the seat over if its connection dies.
func (s *Session) pick(p *Player, kind PickKind) (card.Card, error) {
	for {
		c, err := p.decider.PickCard(kind, p.Hand.Available())
		if err == nil {
			return c, nil
		}
		if err := s.handOver(p, err); err != nil {
			return card.Card{}, err
		}
	}
}

// decideBank asks p whether to bank activity.
func (s *Session) decideBank(p *Player, activity string, count int) (bool, error) {
	for {
		ok, err := p.decider.DecideBank(activity, count)
		if err == nil {
			return ok, nil
		}
		if err := s.handOver(p, err); err != nil {
			return false, err
		}
	}
}

// handOver replaces the decider of a player whose connection died. Any other
// error, or a dead connection without a fallback, is returned.
func (s *Session) handOver(p *Player, err error) error {
	if !errors.Is(err, gameerrors.ErrConnectionDead) {
		return err
	}
	if s.fallback == nil {
		slog.Error("connection lost, ending game", "tag", "game", "player", p.ID, "err", err)
		return fmt.Errorf("%w: player %d: %v", gameerrors.ErrGameEnding, p.ID, err)
	}
	slog.Warn("connection lost, computer takes over", "tag", "game", "player", p.ID, "err", err)
	p.replaceDecider(s.fallback(), KindComputer)
	s.broadcast(fmt.Sprintf("Player %d lost connection; a computer plays their seat from now on.", p.ID))
	return nil
}

package game

import (
	"fmt"
	"math/rand"
	"testing"

	"boomerang-server/card"
	"boomerang-server/gameerrors"
	"boomerang-server/message"
	"boomerang-server/rules"
)

// firstPolicy always takes the first card and never banks.
type firstPolicy struct{ bank bool }

func (firstPolicy) ChooseThrow(choices []card.Card) card.Card { return choices[0] }
func (firstPolicy) ChooseDraft(choices []card.Card) card.Card { return choices[0] }
func (p firstPolicy) Bank(string, int) bool                   { return p.bank }

// fakeChannel answers choices from a script. "!io" fails with a transport
// error, "!garbage" with an unrecognized message. An exhausted script fails
// every exchange.
type fakeChannel struct {
	script []string
	sent   []message.Message
	closed bool
}

func (f *fakeChannel) Send(m message.Message) error {
	f.sent = append(f.sent, m)
	return nil
}

func (f *fakeChannel) Receive(c message.Choice) (message.Response, error) {
	if len(f.script) == 0 {
		return message.Response{}, fmt.Errorf("%w: connection reset", gameerrors.ErrTransport)
	}
	a := f.script[0]
	f.script = f.script[1:]
	switch a {
	case "!io":
		return message.Response{}, fmt.Errorf("%w: timeout", gameerrors.ErrTransport)
	case "!garbage":
		return message.Response{}, fmt.Errorf("%w: bad frame", gameerrors.ErrUnknownMessage)
	}
	return message.Response{ChoiceID: c.ID, Answer: a}, nil
}

func (f *fakeChannel) Close() error {
	f.closed = true
	return nil
}

func (f *fakeChannel) informations() []string {
	var out []string
	for _, m := range f.sent {
		if info, ok := m.(message.Information); ok {
			out = append(out, info.Text)
		}
	}
	return out
}

func (f *fakeChannel) choices() int {
	n := 0
	for _, m := range f.sent {
		if _, ok := m.(message.Choice); ok {
			n++
		}
	}
	return n
}

func mk(site rune, number int, collection, animal, activity string) card.Card {
	return card.Card{
		Name:       fmt.Sprintf("Site %c", site),
		Site:       site,
		Number:     number,
		Collection: collection,
		Animal:     animal,
		Activity:   activity,
	}
}

// completedHand builds a finished hand: throw, drafted cards, then catch.
func completedHand(t *testing.T, throw, catch card.Card, drafted ...card.Card) *Hand {
	t.Helper()
	h := &Hand{}
	h.Deal(append([]card.Card{throw}, drafted...))
	if _, err := h.Pick(throw.Site); err != nil {
		t.Fatalf("pick throw: %v", err)
	}
	for _, c := range drafted {
		if _, err := h.Pick(c.Site); err != nil {
			t.Fatalf("pick %c: %v", c.Site, err)
		}
	}
	h.Receive([]card.Card{catch})
	if _, err := h.CatchIncoming(); err != nil {
		t.Fatalf("catch: %v", err)
	}
	return h
}

func australiaCatalog(t *testing.T) []card.Card {
	t.Helper()
	cards, err := card.Australia()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	return cards
}

func computerSeats(n int) []Seat {
	seats := make([]Seat, n)
	for i := range seats {
		seats[i] = Seat{Kind: KindComputer, Decider: NewComputerDecider(firstPolicy{})}
	}
	return seats
}

func newTestSession(t *testing.T, r rules.Rules, seats []Seat) *Session {
	t.Helper()
	s, err := NewSession(SessionConfig{
		Rules:       r,
		Catalog:     australiaCatalog(t),
		Seats:       seats,
		Scoresheets: NewAustralia,
		Rand:        rand.New(rand.NewSource(42)),
	})
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	return s
}

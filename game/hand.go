package game

import (
	"fmt"

	"boomerang-server/card"
	"boomerang-server/gameerrors"
)

// PickKind tells a decider which slot a pick fills.
type PickKind int

const (
	PickThrow PickKind = iota
	PickDraft
)

func (k PickKind) String() string {
	if k == PickThrow {
		return "throw"
	}
	return "draft"
}

// Hand holds one player's cards for a round. Every card it holds sits in
// exactly one of available, drafted, throw, catch or incoming.
type Hand struct {
	available []card.Card
	drafted   []card.Card
	throw     *card.Card
	catch     *card.Card
	incoming  []card.Card
	staged    bool
}

// Deal replaces the hand's contents with a fresh set of available cards.
func (h *Hand) Deal(cards []card.Card) {
	*h = Hand{available: append([]card.Card(nil), cards...)}
}

// Available returns a copy of the cards that may still be picked.
func (h *Hand) Available() []card.Card {
	return append([]card.Card(nil), h.available...)
}

// Drafted returns a copy of the drafted cards, excluding throw and catch.
func (h *Hand) Drafted() []card.Card {
	return append([]card.Card(nil), h.drafted...)
}

// Throw returns the throw card, if chosen.
func (h *Hand) Throw() (card.Card, bool) {
	if h.throw == nil {
		return card.Card{}, false
	}
	return *h.throw, true
}

// Catch returns the catch card, if received.
func (h *Hand) Catch() (card.Card, bool) {
	if h.catch == nil {
		return card.Card{}, false
	}
	return *h.catch, true
}

// Completed returns the drafted cards followed by the throw and catch cards.
func (h *Hand) Completed() []card.Card {
	out := h.Drafted()
	if h.throw != nil {
		out = append(out, *h.throw)
	}
	if h.catch != nil {
		out = append(out, *h.catch)
	}
	return out
}

// Size is the number of cards held in any slot.
func (h *Hand) Size() int {
	n := len(h.available) + len(h.drafted) + len(h.incoming)
	if h.throw != nil {
		n++
	}
	if h.catch != nil {
		n++
	}
	return n
}

// HasIncoming reports whether a neighbour's cards are staged.
func (h *Hand) HasIncoming() bool {
	return h.staged
}

// Receive stages cards passed by a neighbour.
func (h *Hand) Receive(cards []card.Card) {
	h.incoming = append([]card.Card(nil), cards...)
	h.staged = true
}

// TakeIncoming moves the staged cards into available.
func (h *Hand) TakeIncoming() {
	h.available = h.incoming
	h.incoming = nil
	h.staged = false
}

// GiveAway removes and returns every available card.
func (h *Hand) GiveAway() []card.Card {
	out := h.available
	h.available = nil
	return out
}

// Pick moves the card with the given site out of available. The first pick of
// a round becomes the throw card; later picks are drafted.
func (h *Hand) Pick(site rune) (card.Card, error) {
	idx := -1
	for i, c := range h.available {
		if c.Site == site {
			idx = i
			break
		}
	}
	if idx < 0 {
		return card.Card{}, fmt.Errorf("%w: site %c", gameerrors.ErrNotInHand, site)
	}
	c := h.available[idx]
	h.available = append(h.available[:idx], h.available[idx+1:]...)
	if h.throw == nil {
		h.throw = &c
	} else {
		h.drafted = append(h.drafted, c)
	}
	return c, nil
}

// CatchIncoming turns the single staged card into the catch card.
func (h *Hand) CatchIncoming() (card.Card, error) {
	if len(h.incoming) != 1 {
		return card.Card{}, fmt.Errorf("%w: expected one incoming card, have %d", gameerrors.ErrNotInHand, len(h.incoming))
	}
	c := h.incoming[0]
	h.catch = &c
	h.incoming = nil
	h.staged = false
	return c, nil
}

// Clear empties the hand and returns everything it held.
func (h *Hand) Clear() []card.Card {
	out := append(h.Available(), h.Completed()...)
	out = append(out, h.incoming...)
	*h = Hand{}
	return out
}

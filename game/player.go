package game

import "boomerang-server/card"

// Kind labels how a player is reached. It is for display only; the state
// machine never branches on it.
type Kind string

const (
	KindLocal    Kind = "local"
	KindRemote   Kind = "remote"
	KindComputer Kind = "computer"
)

// Decider makes a player's decisions and receives the notices meant for them.
type Decider interface {
	// PickCard returns one of choices.
	PickCard(kind PickKind, choices []card.Card) (card.Card, error)
	// DecideBank reports whether to bank activity, seen count times this round.
	DecideBank(activity string, count int) (bool, error)
	// Inform delivers a notice. Deciders that cannot read ignore it.
	Inform(text string)
}

// Player is one seat at the table.
type Player struct {
	ID    int
	Name  string
	Kind  Kind
	Hand  *Hand
	Sheet Scoresheet

	decider Decider
}

// NewPlayer creates a player with an empty hand.
func NewPlayer(id int, name string, kind Kind, sheet Scoresheet, d Decider) *Player {
	return &Player{
		ID:      id,
		Name:    name,
		Kind:    kind,
		Hand:    &Hand{},
		Sheet:   sheet,
		decider: d,
	}
}

// Inform forwards text to the player's decider.
func (p *Player) Inform(text string) {
	p.decider.Inform(text)
}

// replaceDecider hands the seat to d.
func (p *Player) replaceDecider(d Decider, kind Kind) {
	p.decider = d
	p.Kind = kind
}

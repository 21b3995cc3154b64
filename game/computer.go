package game

import "boomerang-server/card"

// Policy is a computer player's strategy.
type Policy interface {
	ChooseThrow(choices []card.Card) card.Card
	ChooseDraft(choices []card.Card) card.Card
	Bank(activity string, count int) bool
}

// ComputerDecider plays a seat with a Policy.
type ComputerDecider struct {
	policy Policy
}

// NewComputerDecider returns a decider driven by p.
func NewComputerDecider(p Policy) *ComputerDecider {
	return &ComputerDecider{policy: p}
}

func (d *ComputerDecider) PickCard(kind PickKind, choices []card.Card) (card.Card, error) {
	if kind == PickThrow {
		return d.policy.ChooseThrow(choices), nil
	}
	return d.policy.ChooseDraft(choices), nil
}

func (d *ComputerDecider) DecideBank(activity string, count int) (bool, error) {
	return d.policy.Bank(activity, count), nil
}

// Inform is a no-op; computers read the session directly.
func (d *ComputerDecider) Inform(string) {}

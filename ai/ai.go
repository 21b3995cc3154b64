package ai

import (
	"math/rand"

	"boomerang-server/card"
)

// Policy is a computer player's strategy. Implementations must only return
// cards taken from choices.
type Policy interface {
	ChooseThrow(choices []card.Card) card.Card
	ChooseDraft(choices []card.Card) card.Card
	Bank(activity string, count int) bool
}

// Standard throws the card closest to either end of the number range,
// drafts uniformly at random and never banks an activity.
type Standard struct {
	rng *rand.Rand
}

// NewStandard returns a Standard policy drawing from rng.
func NewStandard(rng *rand.Rand) *Standard {
	return &Standard{rng: rng}
}

func (s *Standard) ChooseThrow(choices []card.Card) card.Card {
	return closestToExtreme(choices)
}

func (s *Standard) ChooseDraft(choices []card.Card) card.Card {
	return choices[s.rng.Intn(len(choices))]
}

func (s *Standard) Bank(string, int) bool { return false }

// closestToExtreme returns the first card whose number is nearest to
// card.MinNumber or card.MaxNumber.
func closestToExtreme(choices []card.Card) card.Card {
	best := choices[0]
	bestDist := extremeDistance(best.Number)
	for _, c := range choices[1:] {
		if d := extremeDistance(c.Number); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}

func extremeDistance(n int) int {
	low := n - card.MinNumber
	high := card.MaxNumber - n
	if low < high {
		return low
	}
	return high
}

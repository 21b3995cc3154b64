package ai

import (
	"math/rand"

	"boomerang-server/card"
)

// bankThreshold is the smallest activity count Collector banks.
const bankThreshold = 3

// Collector throws like Standard but drafts the card worth the most
// collection points, breaking ties at random, and banks activities seen at
// least three times.
type Collector struct {
	Standard
}

// NewCollector returns a Collector policy drawing from rng.
func NewCollector(rng *rand.Rand) *Collector {
	return &Collector{Standard: Standard{rng: rng}}
}

var collectionValue = map[string]int{
	"Leaves":      1,
	"Wildflowers": 2,
	"Shells":      3,
	"Souvenirs":   5,
}

func (c *Collector) ChooseDraft(choices []card.Card) card.Card {
	best := -1
	var top []card.Card
	for _, ch := range choices {
		v := collectionValue[ch.Collection]
		switch {
		case v > best:
			best = v
			top = []card.Card{ch}
		case v == best:
			top = append(top, ch)
		}
	}
	return top[c.rng.Intn(len(top))]
}

func (c *Collector) Bank(_ string, count int) bool {
	return count >= bankThreshold
}

package game

import (
	"fmt"

	"boomerang-server/card"
	"boomerang-server/gameerrors"
)

// RegionBonus is awarded to the first player in a session to visit every
// site of a region.
const RegionBonus = 3

// collectionThreshold is the exclusive upper bound of the doubling band.
const collectionThreshold = 8

type region struct {
	name  string
	sites string
}

var australiaRegions = []region{
	{"Western Australia", "ABCD"},
	{"Northern Territory", "EFGH"},
	{"Queensland", "IJKL"},
	{"South Australia", "MNOP"},
	{"New South Wales", "QRST"},
	{"Victoria", "UVWX"},
	{"Tasmania", "YZ*-"},
}

var collectionWeights = map[string]int{
	"Leaves":      1,
	"Wildflowers": 2,
	"Shells":      3,
	"Souvenirs":   5,
}

var animalPairWeights = []struct {
	animal string
	weight int
}{
	{"Kangaroos", 3},
	{"Emus", 4},
	{"Wombats", 5},
	{"Koalas", 7},
	{"Platypuses", 9},
}

// activityScores maps a count of matching cards to points; counts above the
// table use the last entry.
var activityScores = []int{0, 0, 2, 4, 7, 10, 15}

// Australia is the scoresheet of the Australia edition.
type Australia struct {
	ledger     *RegionLedger
	visited    map[rune]bool
	banked     map[string]bool
	total      int
	throwCatch int
	last       RoundScore
}

// NewAustralia returns an empty sheet bound to ledger.
func NewAustralia(ledger *RegionLedger) (Scoresheet, error) {
	if ledger == nil {
		return nil, fmt.Errorf("%w: nil region ledger", gameerrors.ErrScoresheet)
	}
	return &Australia{
		ledger:  ledger,
		visited: make(map[rune]bool),
		banked:  make(map[string]bool),
	}, nil
}

func (a *Australia) ScoreRound(h *Hand, bank string) (RoundScore, error) {
	if bank != "" && a.banked[bank] {
		return RoundScore{}, fmt.Errorf("%w: %s", gameerrors.ErrAlreadyBanked, bank)
	}
	cards := h.Completed()

	var rs RoundScore
	rs.ThrowCatch = throwCatchScore(h)
	rs.Sites = a.siteScore(cards)
	rs.Collection = collectionScore(cards)
	rs.Animals = animalScore(cards)
	if bank != "" {
		rs.Activity = activityScore(cards, bank)
		rs.ActivityTag = bank
		a.banked[bank] = true
	}
	rs.Total = rs.ThrowCatch + rs.Sites + rs.Collection + rs.Animals + rs.Activity

	a.throwCatch += rs.ThrowCatch
	a.total += rs.Total
	a.last = rs
	return rs, nil
}

func (a *Australia) LastRound() RoundScore  { return a.last }
func (a *Australia) Total() int             { return a.total }
func (a *Australia) ThrowCatchTotal() int   { return a.throwCatch }
func (a *Australia) Banked(tag string) bool { return a.banked[tag] }

// Visited reports whether the player has ever drafted the site.
func (a *Australia) Visited(site rune) bool { return a.visited[site] }

func throwCatchScore(h *Hand) int {
	t, okT := h.Throw()
	c, okC := h.Catch()
	if !okT || !okC {
		return 0
	}
	d := t.Number - c.Number
	if d < 0 {
		d = -d
	}
	return d
}

// siteScore records new sites and claims any region they complete.
func (a *Australia) siteScore(cards []card.Card) int {
	score := 0
	for _, c := range cards {
		if a.visited[c.Site] {
			continue
		}
		a.visited[c.Site] = true
		score++
		r, ok := regionOf(c.Site)
		if ok && a.completes(r) && a.ledger.Claim(r.name) {
			score += RegionBonus
		}
	}
	return score
}

func (a *Australia) completes(r region) bool {
	for _, s := range r.sites {
		if !a.visited[s] {
			return false
		}
	}
	return true
}

func regionOf(site rune) (region, bool) {
	for _, r := range australiaRegions {
		for _, s := range r.sites {
			if s == site {
				return r, true
			}
		}
	}
	return region{}, false
}

func collectionScore(cards []card.Card) int {
	raw := 0
	for _, c := range cards {
		raw += collectionWeights[c.Collection]
	}
	if raw > 0 && raw < collectionThreshold {
		return raw * 2
	}
	return raw
}

func animalScore(cards []card.Card) int {
	counts := make(map[string]int)
	for _, c := range cards {
		if c.Animal != "" {
			counts[c.Animal]++
		}
	}
	score := 0
	for _, a := range animalPairWeights {
		score += counts[a.animal] / 2 * a.weight
	}
	return score
}

func activityScore(cards []card.Card, activity string) int {
	n := 0
	for _, c := range cards {
		if c.Activity == activity {
			n++
		}
	}
	if n >= len(activityScores) {
		n = len(activityScores) - 1
	}
	return activityScores[n]
}

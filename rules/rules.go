package rules

import "fmt"

// Direction is the rotation cards travel in during a pass.
type Direction int

const (
	// Forward passes from player i to player i+1.
	Forward Direction = 1
	// Backward passes from player i to player i-1.
	Backward Direction = -1
)

func (d Direction) String() string {
	if d == Backward {
		return "backward"
	}
	return "forward"
}

// Rules is the fixed configuration of one ruleset. It holds no state.
type Rules struct {
	Name           string
	Rounds         int
	TotalCards     int
	CardsPerPlayer int
	MinPlayers     int
	MaxPlayers     int
}

// Standard returns the standard Boomerang rules.
func Standard() Rules {
	return Rules{
		Name:           "standard",
		Rounds:         4,
		TotalCards:     28,
		CardsPerPlayer: 7,
		MinPlayers:     2,
		MaxPlayers:     4,
	}
}

// Validate checks that a full table can be dealt.
func (r Rules) Validate() error {
	if r.Rounds < 1 {
		return fmt.Errorf("rules %q: rounds must be positive, got %d", r.Name, r.Rounds)
	}
	if r.CardsPerPlayer < 2 {
		return fmt.Errorf("rules %q: need at least 2 cards per player, got %d", r.Name, r.CardsPerPlayer)
	}
	if r.MinPlayers < 2 || r.MaxPlayers < r.MinPlayers {
		return fmt.Errorf("rules %q: invalid player range %d-%d", r.Name, r.MinPlayers, r.MaxPlayers)
	}
	if r.MaxPlayers*r.CardsPerPlayer > r.TotalCards {
		return fmt.Errorf("rules %q: %d cards cannot deal %d hands of %d", r.Name, r.TotalCards, r.MaxPlayers, r.CardsPerPlayer)
	}
	return nil
}

// PassDirection returns the direction for a pass in which every hand holds
// remaining cards. Cards travel forward except on the pass that leaves one
// card per hand, which travels backward.
func (r Rules) PassDirection(remaining int) Direction {
	if remaining == 1 {
		return Backward
	}
	return Forward
}

// Neighbor returns the index of the player that seat i passes to at a table
// of n players.
func Neighbor(i, n int, d Direction) int {
	return ((i+int(d))%n + n) % n
}

package game

import (
	"fmt"
	"strings"

	"boomerang-server/card"
)

// FormatHand lists the cards a player may pick from.
func FormatHand(cards []card.Card) string {
	var b strings.Builder
	b.WriteString("YOUR CURRENT HAND: \n")
	writeCards(&b, cards)
	return b.String()
}

func formatDraft(p *Player) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Player %d has drafted \nDrafted cards: \n", p.ID)
	writeCards(&b, p.Hand.Drafted())
	return b.String()
}

func formatOwnDraft(p *Player, final bool) string {
	var b strings.Builder
	if final {
		b.WriteString("Your draft this round:\n")
	} else {
		b.WriteString("Your current draft:\n")
	}
	writeCards(&b, p.Hand.Completed())
	return b.String()
}

func formatRoundScore(rs RoundScore) string {
	var b strings.Builder
	fmt.Fprintf(&b, "This round you scored %d as your Throw and catch score\n", rs.ThrowCatch)
	fmt.Fprintf(&b, "This round you scored %d region points\n", rs.Sites)
	fmt.Fprintf(&b, "This round you scored %d collection points\n", rs.Collection)
	fmt.Fprintf(&b, "This round you scored %d animal points\n", rs.Animals)
	if rs.ActivityTag != "" {
		fmt.Fprintf(&b, "This round you scored %d activity points from %s\n", rs.Activity, rs.ActivityTag)
	}
	fmt.Fprintf(&b, "Round total: %d\n", rs.Total)
	return b.String()
}

func formatGathered(counts []activityCount) string {
	parts := make([]string, len(counts))
	for i, c := range counts {
		parts[i] = fmt.Sprintf("%s(#%d)", c.activity, c.count)
	}
	return "This round you have gathered the following new activities: \n" + strings.Join(parts, ", ")
}

func formatStandings(self *Player, standings []Standing) string {
	var b strings.Builder
	b.WriteString("Final score for each player:\n\n")
	for _, s := range standings {
		if s.PlayerID == self.ID {
			fmt.Fprintf(&b, "You (Player %d) got %d points!\n\n", s.PlayerID, s.Total)
		}
	}
	for _, s := range standings {
		if s.PlayerID != self.ID {
			fmt.Fprintf(&b, "Player %d got %d points. \n", s.PlayerID, s.Total)
		}
	}
	return b.String()
}

func writeCards(b *strings.Builder, cards []card.Card) {
	for _, c := range cards {
		b.WriteString(c.String())
		b.WriteByte('\n')
	}
}

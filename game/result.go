package game

import "sort"

// Standing is one player's final position.
type Standing struct {
	PlayerID   int    `json:"player_id"`
	Name       string `json:"name"`
	Kind       Kind   `json:"kind"`
	Total      int    `json:"total"`
	ThrowCatch int    `json:"throw_catch"`
}

// Result summarizes a finished game. Standings are sorted best first.
type Result struct {
	SessionID string     `json:"session_id"`
	Edition   string     `json:"edition"`
	Rounds    int        `json:"rounds"`
	WinnerID  int        `json:"winner_id"`
	Standings []Standing `json:"standings"`
}

// Beats reports whether a ranks above b: higher total, then higher
// throw/catch total.
func (a Standing) Beats(b Standing) bool {
	if a.Total != b.Total {
		return a.Total > b.Total
	}
	return a.ThrowCatch > b.ThrowCatch
}

// Result ranks the players by their current sheets. Players that are still
// tied keep seat order, so the earliest seat wins a full tie.
func (s *Session) Result() Result {
	standings := make([]Standing, len(s.Players))
	for i, p := range s.Players {
		standings[i] = Standing{
			PlayerID:   p.ID,
			Name:       p.Name,
			Kind:       p.Kind,
			Total:      p.Sheet.Total(),
			ThrowCatch: p.Sheet.ThrowCatchTotal(),
		}
	}
	sort.SliceStable(standings, func(i, j int) bool { return standings[i].Beats(standings[j]) })
	res := Result{
		SessionID: s.ID,
		Edition:   s.Rules.Name,
		Rounds:    s.Rules.Rounds,
		Standings: standings,
	}
	if len(standings) > 0 {
		res.WinnerID = standings[0].PlayerID
	}
	return res
}

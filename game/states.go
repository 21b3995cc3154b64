package game

import (
	"errors"
	"fmt"
	"log/slog"

	"boomerang-server/card"
	"boomerang-server/gameerrors"
	"boomerang-server/rules"
)

// State is one phase of a game. Run advances the session and returns the
// next phase, or nil when the game is over.
type State interface {
	Name() string
	Run(s *Session) (State, error)
}

// DealState shuffles the deck and deals a fresh hand to every player.
type DealState struct{}

func (DealState) Name() string { return "deal" }

func (DealState) Run(s *Session) (State, error) {
	s.deal()
	round := s.Rules.Rounds - s.RoundsLeft + 1
	s.broadcast(fmt.Sprintf("Round %d of %d", round, s.Rules.Rounds))
	return DraftPickState{}, nil
}

// DraftPickState has every player, in order, pick one card. The first pick
// of a round is the throw card.
type DraftPickState struct{}

func (DraftPickState) Name() string { return "draft_pick" }

func (DraftPickState) Run(s *Session) (State, error) {
	for _, p := range s.Players {
		if p.Hand.HasIncoming() {
			p.Hand.TakeIncoming()
		}
		kind := PickDraft
		if _, ok := p.Hand.Throw(); !ok {
			kind = PickThrow
		}
		c, err := s.pick(p, kind)
		if err != nil {
			return nil, err
		}
		if _, err := p.Hand.Pick(c.Site); err != nil {
			return nil, fmt.Errorf("player %d: %w", p.ID, err)
		}
	}
	return ViewState{}, nil
}

// ViewState shows every player what everyone has drafted so far.
type ViewState struct{}

func (ViewState) Name() string { return "view" }

func (ViewState) Run(s *Session) (State, error) {
	for _, viewer := range s.Players {
		for _, p := range s.Players {
			viewer.Inform(formatDraft(p))
		}
		viewer.Inform(formatOwnDraft(viewer, false))
	}
	return PassState{}, nil
}

// PassState hands each player's remaining cards to a neighbour.
type PassState struct{}

func (PassState) Name() string { return "pass" }

func (PassState) Run(s *Session) (State, error) {
	n := len(s.Players)
	remaining := len(s.Players[0].Hand.Available())
	dir := s.Rules.PassDirection(remaining)

	outgoing := make([][]card.Card, n)
	for i, p := range s.Players {
		outgoing[i] = p.Hand.GiveAway()
	}
	for i := range s.Players {
		s.Players[rules.Neighbor(i, n, dir)].Hand.Receive(outgoing[i])
	}
	slog.Debug("cards passed", "tag", "game", "direction", dir.String(), "remaining", remaining)

	if remaining > 1 {
		return DraftPickState{}, nil
	}
	return FinalPickState{}, nil
}

// FinalPickState turns each player's last incoming card into the catch card.
type FinalPickState struct{}

func (FinalPickState) Name() string { return "final_pick" }

func (FinalPickState) Run(s *Session) (State, error) {
	for _, p := range s.Players {
		if _, err := p.Hand.CatchIncoming(); err != nil {
			return nil, fmt.Errorf("player %d: %w", p.ID, err)
		}
		p.Inform(formatOwnDraft(p, true))
	}
	return RoundEndState{}, nil
}

// RoundEndState offers the bonus activity, scores every hand and returns the
// cards to the deck.
type RoundEndState struct{}

func (RoundEndState) Name() string { return "round_end" }

func (RoundEndState) Run(s *Session) (State, error) {
	for _, p := range s.Players {
		bank := ""
		if activity, count, ok := BonusCandidate(p.Sheet, p.Hand); ok {
			p.Inform(formatGathered(unbankedActivities(p.Sheet, p.Hand)))
			yes, err := s.decideBank(p, activity, count)
			if err != nil {
				return nil, err
			}
			if yes {
				bank = activity
			}
		}
		rs, err := p.Sheet.ScoreRound(p.Hand, bank)
		if errors.Is(err, gameerrors.ErrAlreadyBanked) {
			slog.Warn("activity already banked", "tag", "game", "player", p.ID, "activity", bank)
			p.Inform("Trying to score Activity that has already been scored: " + bank)
			rs, err = p.Sheet.ScoreRound(p.Hand, "")
		}
		if err != nil {
			return nil, fmt.Errorf("scoring player %d: %w", p.ID, err)
		}
		p.Inform(formatRoundScore(rs))
	}
	s.collect()

	s.RoundsLeft--
	if s.RoundsLeft > 0 {
		return DealState{}, nil
	}
	return GameOverState{}, nil
}

// GameOverState picks the winner and tells everyone the final standings.
type GameOverState struct{}

func (GameOverState) Name() string { return "game_over" }

func (GameOverState) Run(s *Session) (State, error) {
	res := s.Result()
	for _, p := range s.Players {
		if p.ID == res.WinnerID {
			p.Inform("YOU WIN!")
		} else {
			p.Inform("YOU LOSE!")
		}
		p.Inform(formatStandings(p, res.Standings))
	}
	return nil, nil
}

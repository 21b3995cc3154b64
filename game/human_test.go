package game

import (
	"context"
	"errors"
	"strings"
	"testing"

	"boomerang-server/card"
	"boomerang-server/gameerrors"
	"boomerang-server/message"
	"boomerang-server/rules"
)

func TestHumanDecider_RepromptsInvalidAnswers(t *testing.T) {
	ch := &fakeChannel{script: []string{"Z", "", "AB", "B"}}
	d := NewHumanDecider(ch, 3)
	choices := []card.Card{blank('A', 1), blank('B', 2)}

	c, err := d.PickCard(PickDraft, choices)
	if err != nil {
		t.Fatalf("PickCard: %v", err)
	}
	if c.Site != 'B' {
		t.Errorf("expected B, got %c", c.Site)
	}
	if got := ch.choices(); got != 4 {
		t.Errorf("expected the choice to be sent 4 times, got %d", got)
	}
	invalid := 0
	for _, text := range ch.informations() {
		if text == message.InvalidInput {
			invalid++
		}
	}
	if invalid != 3 {
		t.Errorf("expected 3 invalid input notices, got %d", invalid)
	}
}

func TestHumanDecider_SameChoiceResent(t *testing.T) {
	ch := &fakeChannel{script: []string{"x", "A"}}
	d := NewHumanDecider(ch, 3)
	d.PickCard(PickThrow, []card.Card{blank('A', 1)})

	var ids []int
	for _, m := range ch.sent {
		if c, ok := m.(message.Choice); ok {
			ids = append(ids, c.ID)
			if !strings.Contains(c.Text, "throw card") {
				t.Errorf("throw prompt expected, got %q", c.Text)
			}
		}
	}
	if len(ids) != 2 || ids[0] != ids[1] {
		t.Errorf("expected the same choice twice, got ids %v", ids)
	}
}

func TestHumanDecider_DecideBank(t *testing.T) {
	d := NewHumanDecider(&fakeChannel{script: []string{"maybe", "Y"}}, 3)
	ok, err := d.DecideBank("Swimming", 3)
	if err != nil || !ok {
		t.Errorf("expected yes, got %v (err=%v)", ok, err)
	}
	d = NewHumanDecider(&fakeChannel{script: []string{"N"}}, 3)
	ok, err = d.DecideBank("Swimming", 3)
	if err != nil || ok {
		t.Errorf("expected no, got %v (err=%v)", ok, err)
	}
}

func TestHumanDecider_GarbageIsNotAFailure(t *testing.T) {
	ch := &fakeChannel{script: []string{"!garbage", "!garbage", "!garbage", "!garbage", "A"}}
	d := NewHumanDecider(ch, 2)
	c, err := d.PickCard(PickDraft, []card.Card{blank('A', 1)})
	if err != nil || c.Site != 'A' {
		t.Errorf("expected A after unrecognized frames, got %c (err=%v)", c.Site, err)
	}
}

func TestHumanDecider_TransportFailuresResetOnSuccess(t *testing.T) {
	ch := &fakeChannel{script: []string{"!io", "!io", "A", "!io", "!io", "A"}}
	d := NewHumanDecider(ch, 3)
	for i := 0; i < 2; i++ {
		if _, err := d.PickCard(PickDraft, []card.Card{blank('A', 1)}); err != nil {
			t.Fatalf("pick %d: %v", i, err)
		}
	}
}

func TestHumanDecider_DeadConnection(t *testing.T) {
	ch := &fakeChannel{}
	d := NewHumanDecider(ch, 3)
	_, err := d.PickCard(PickDraft, []card.Card{blank('A', 1)})
	if !errors.Is(err, gameerrors.ErrConnectionDead) {
		t.Fatalf("expected ErrConnectionDead, got %v", err)
	}
	if got := ch.choices(); got != 3 {
		t.Errorf("expected 3 attempts before giving up, got %d", got)
	}
}

func TestSession_DeadSeatFallsBackToComputer(t *testing.T) {
	dead := &fakeChannel{}
	seats := []Seat{
		{Name: "Remote", Kind: KindRemote, Decider: NewHumanDecider(dead, 2)},
		{Kind: KindComputer, Decider: NewComputerDecider(firstPolicy{})},
	}
	r := rules.Standard()
	r.Rounds = 1
	s, err := NewSession(SessionConfig{
		Rules:       r,
		Catalog:     australiaCatalog(t),
		Seats:       seats,
		Scoresheets: NewAustralia,
		Fallback:    func() Decider { return NewComputerDecider(firstPolicy{}) },
	})
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	if _, err := NewMachine(s).Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if s.Players[0].Kind != KindComputer {
		t.Errorf("dead seat should be played by a computer, kind=%s", s.Players[0].Kind)
	}
}

func TestSession_DeadSeatEndsGameWithoutFallback(t *testing.T) {
	dead := &fakeChannel{}
	watcher := &fakeChannel{script: []string{"A"}}
	seats := []Seat{
		{Kind: KindComputer, Decider: NewComputerDecider(firstPolicy{})},
		{Name: "Remote", Kind: KindRemote, Decider: NewHumanDecider(dead, 2)},
		{Name: "Watcher", Kind: KindRemote, Decider: NewHumanDecider(watcher, 2)},
	}
	s, err := NewSession(SessionConfig{
		Rules:       rules.Standard(),
		Catalog:     australiaCatalog(t),
		Seats:       seats,
		Scoresheets: NewAustralia,
	})
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	_, err = NewMachine(s).Run(context.Background())
	if !errors.Is(err, gameerrors.ErrGameEnding) {
		t.Fatalf("expected ErrGameEnding, got %v", err)
	}
	infos := watcher.informations()
	if len(infos) == 0 || infos[len(infos)-1] != message.GameEnding {
		t.Errorf("other humans should be told %q last, got %v", message.GameEnding, infos)
	}
}

func TestSession_HumanSeesViewsAndScores(t *testing.T) {
	ch := &fakeChannel{}
	d := NewHumanDecider(&firstAnswerChannel{fakeChannel: ch}, 3)
	r := rules.Standard()
	r.Rounds = 1
	seats := []Seat{
		{Name: "Local", Kind: KindLocal, Decider: d},
		{Kind: KindComputer, Decider: NewComputerDecider(firstPolicy{})},
	}
	s := newTestSession(t, r, seats)
	if _, err := NewMachine(s).Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	all := strings.Join(ch.informations(), "\n")
	for _, want := range []string{
		"Player 2 has drafted",
		"Your current draft:",
		"Your draft this round:",
		"This round you scored",
		"Final score for each player:",
		message.GameEnding,
	} {
		if !strings.Contains(all, want) {
			t.Errorf("expected %q in the notices sent to the human", want)
		}
	}
	if !strings.Contains(all, "YOU WIN!") && !strings.Contains(all, "YOU LOSE!") {
		t.Error("human should be told whether they won")
	}
}

// firstAnswerChannel answers every choice with its first option.
type firstAnswerChannel struct {
	*fakeChannel
}

func (f *firstAnswerChannel) Receive(c message.Choice) (message.Response, error) {
	return message.Response{ChoiceID: c.ID, Answer: string(c.Answers[0])}, nil
}

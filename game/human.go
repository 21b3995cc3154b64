package game

import (
	"errors"
	"fmt"
	"log/slog"

	"boomerang-server/card"
	"boomerang-server/gameerrors"
	"boomerang-server/message"
)

// DefaultMaxFailures is the number of consecutive transport failures after
// which a connection is judged dead.
const DefaultMaxFailures = 3

// HumanDecider asks a person over a message.Channel. Local and remote
// players differ only in the channel.
type HumanDecider struct {
	ch          message.Channel
	maxFailures int
	failures    int
	nextID      int
}

// NewHumanDecider wraps ch. maxFailures <= 0 uses DefaultMaxFailures.
func NewHumanDecider(ch message.Channel, maxFailures int) *HumanDecider {
	if maxFailures <= 0 {
		maxFailures = DefaultMaxFailures
	}
	return &HumanDecider{ch: ch, maxFailures: maxFailures}
}

func (d *HumanDecider) PickCard(kind PickKind, choices []card.Card) (card.Card, error) {
	prompt := "Type the letter of the card to draft: "
	if kind == PickThrow {
		prompt = "Type the letter of your throw card: "
	}
	answer, err := d.ask(FormatHand(choices)+"\n"+prompt, card.Sites(choices))
	if err != nil {
		return card.Card{}, err
	}
	for _, c := range choices {
		if string(c.Site) == answer {
			return c, nil
		}
	}
	return card.Card{}, fmt.Errorf("%w: site %s", gameerrors.ErrNotInHand, answer)
}

func (d *HumanDecider) DecideBank(activity string, count int) (bool, error) {
	text := fmt.Sprintf("Do you want keep %s (Y/N)", activity)
	answer, err := d.ask(text, []rune("YN"))
	if err != nil {
		return false, err
	}
	return answer == "Y", nil
}

func (d *HumanDecider) Inform(text string) {
	if err := d.ch.Send(message.Information{Text: text}); err != nil {
		slog.Warn("information not delivered", "tag", "game", "err", err)
	}
}

// ask repeats one Choice until a legal answer arrives or the connection dies.
func (d *HumanDecider) ask(text string, answers []rune) (string, error) {
	d.nextID++
	c := message.Choice{ID: d.nextID, Text: text, Answers: answers}
	var notice string
	for {
		if notice != "" {
			d.Inform(notice)
		}
		resp, err := d.exchange(c)
		if err != nil {
			if errors.Is(err, gameerrors.ErrConnectionDead) {
				return "", err
			}
			slog.Warn("treating failed exchange as blank response", "tag", "game", "choice", c.ID, "err", err)
			d.Inform("Could not read your answer: " + err.Error())
			resp = message.Response{ChoiceID: c.ID}
		}
		if c.Accepts(resp) {
			return resp.Answer, nil
		}
		notice = message.InvalidInput
	}
}

// exchange sends c and waits for the reply. Consecutive I/O failures are
// counted; reaching maxFailures turns the error into ErrConnectionDead.
func (d *HumanDecider) exchange(c message.Choice) (message.Response, error) {
	err := d.ch.Send(c)
	var resp message.Response
	if err == nil {
		resp, err = d.ch.Receive(c)
	}
	switch {
	case err == nil:
		d.failures = 0
		return resp, nil
	case errors.Is(err, gameerrors.ErrConnectionDead):
		return resp, err
	case errors.Is(err, gameerrors.ErrUnknownMessage):
		return resp, err
	}
	d.failures++
	if d.failures >= d.maxFailures {
		return resp, fmt.Errorf("%w: %d consecutive failures: %v", gameerrors.ErrConnectionDead, d.failures, err)
	}
	return resp, err
}

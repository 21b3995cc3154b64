package console

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"boomerang-server/gameerrors"
	"boomerang-server/message"
)

func TestConsole_Receive(t *testing.T) {
	c := New(strings.NewReader(" b \ny\n"), &bytes.Buffer{})
	choice := message.Choice{ID: 5, Answers: []rune("AB")}

	r, err := c.Receive(choice)
	if err != nil {
		t.Fatalf("Receive: %v", err)
	}
	if r.ChoiceID != 5 || r.Answer != "B" {
		t.Errorf("expected trimmed upper-case answer B for choice 5, got %+v", r)
	}
	if !choice.Accepts(r) {
		t.Error("answer should be accepted")
	}
}

func TestConsole_ReceiveLastLineWithoutNewline(t *testing.T) {
	c := New(strings.NewReader("y"), &bytes.Buffer{})
	r, err := c.Receive(message.Choice{ID: 1, Answers: []rune("YN")})
	if err != nil || r.Answer != "Y" {
		t.Errorf("expected Y, got %+v (err=%v)", r, err)
	}
}

func TestConsole_EndOfInputIsDead(t *testing.T) {
	c := New(strings.NewReader(""), &bytes.Buffer{})
	_, err := c.Receive(message.Choice{ID: 1})
	if !errors.Is(err, gameerrors.ErrConnectionDead) {
		t.Errorf("expected ErrConnectionDead, got %v", err)
	}
}

func TestRender(t *testing.T) {
	var buf bytes.Buffer
	c := New(strings.NewReader(""), &buf)
	c.Send(message.Information{Text: "YOU WIN!"})
	c.Send(message.Information{})
	c.Send(message.Choice{ID: 1, Text: "Do you want keep Swimming (Y/N)", Answers: []rune("YN")})

	want := "YOU WIN!\nDo you want keep Swimming (Y/N) [YN] "
	if buf.String() != want {
		t.Errorf("expected %q, got %q", want, buf.String())
	}
}

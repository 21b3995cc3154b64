// Package console is the host player's message channel over a terminal.
package console

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"boomerang-server/gameerrors"
	"boomerang-server/message"
)

// Console reads answers from in and writes notices and prompts to out.
type Console struct {
	in  *bufio.Reader
	out io.Writer
}

// New returns a Console over in and out.
func New(in io.Reader, out io.Writer) *Console {
	return &Console{in: bufio.NewReader(in), out: out}
}

func (c *Console) Send(m message.Message) error {
	if err := Render(c.out, m); err != nil {
		return fmt.Errorf("%w: %v", gameerrors.ErrTransport, err)
	}
	return nil
}

// Receive reads one line and answers c with it. End of input is a dead
// connection: no further answer can ever arrive.
func (c *Console) Receive(ch message.Choice) (message.Response, error) {
	line, err := ReadAnswer(c.in)
	if err == io.EOF && line == "" {
		return message.Response{}, fmt.Errorf("%w: input closed", gameerrors.ErrConnectionDead)
	}
	if err != nil && err != io.EOF {
		return message.Response{}, fmt.Errorf("%w: %v", gameerrors.ErrTransport, err)
	}
	return message.Response{ChoiceID: ch.ID, Answer: line}, nil
}

// Close is a no-op; the terminal outlives the game.
func (c *Console) Close() error { return nil }

// ReadAnswer reads one line, trimmed and upper-cased.
func ReadAnswer(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	return strings.ToUpper(strings.TrimSpace(line)), err
}

// Render writes the text of m. Choices are followed by their answers.
func Render(w io.Writer, m message.Message) error {
	var err error
	switch v := m.(type) {
	case message.Information:
		if v.Text == "" {
			return nil
		}
		_, err = fmt.Fprintln(w, v.Text)
	case message.Choice:
		_, err = fmt.Fprintf(w, "%s [%s] ", v.Text, string(v.Answers))
	default:
		_, err = fmt.Fprintf(w, "%v\n", m)
	}
	return err
}

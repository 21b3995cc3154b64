package ws

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/gorilla/websocket"

	"boomerang-server/console"
	"boomerang-server/message"
	"boomerang-server/wsutil"
)

// Answerer produces the answer to a choice.
type Answerer func(c message.Choice) (string, error)

// ConsoleAnswerer reads each answer as a line from in.
func ConsoleAnswerer(in io.Reader) Answerer {
	r := bufio.NewReader(in)
	return func(message.Choice) (string, error) {
		answer, err := console.ReadAnswer(r)
		if err == io.EOF && answer != "" {
			err = nil
		}
		return answer, err
	}
}

// Join connects to a host, introduces the player and plays until the host
// sends GAME ENDING or the connection drops. Every message is rendered to out.
func Join(ctx context.Context, url string, join message.Join, answer Answerer, out io.Writer) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return fmt.Errorf("connecting to %s: %w", url, err)
	}
	defer conn.Close()

	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	send := func(m message.Message) error {
		data, err := message.Encode(m)
		if err != nil {
			return err
		}
		return wsutil.WriteText(conn, data, writeWait)
	}
	if err := send(join); err != nil {
		return fmt.Errorf("sending join: %w", err)
	}

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if wsutil.IsGone(err) || ctx.Err() != nil {
				console.Render(out, message.Information{Text: message.GameEnding})
				return nil
			}
			return err
		}
		m, err := message.Decode(data)
		if err != nil {
			console.Render(out, message.Information{Text: err.Error()})
			continue
		}
		console.Render(out, m)

		switch v := m.(type) {
		case message.Information:
			if v.Text == message.GameEnding {
				return nil
			}
		case message.Choice:
			a, err := answer(v)
			if err != nil {
				return fmt.Errorf("reading answer: %w", err)
			}
			if err := send(message.Response{ChoiceID: v.ID, Answer: a}); err != nil {
				return fmt.Errorf("sending answer: %w", err)
			}
		}
	}
}

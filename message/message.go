package message

import "unicode/utf8"

// GameEnding is the Information text that tells a human the game is over and
// the connection is about to close.
const GameEnding = "GAME ENDING"

// InvalidInput is sent before a Choice is repeated after a rejected Response.
const InvalidInput = "INVALID INPUT, TRY AGAIN"

// Message is one of Information, Choice, Response or Join.
type Message interface {
	Kind() string
}

// Information is a one-way notice.
type Information struct {
	Text string
}

// Choice is a prompt with a closed set of single-character answers.
type Choice struct {
	ID      int
	Text    string
	Answers []rune
}

// Response answers the Choice with the same ID.
type Response struct {
	ChoiceID int
	Answer   string
}

// Join is the first frame a remote player sends after connecting.
type Join struct {
	Name  string
	Token string
}

func (Information) Kind() string { return TypeInformation }
func (Choice) Kind() string      { return TypeChoice }
func (Response) Kind() string    { return TypeResponse }
func (Join) Kind() string        { return TypeJoin }

// Accepts reports whether r is a legal answer to c: linked to c, exactly one
// character long and one of c's answers.
func (c Choice) Accepts(r Response) bool {
	if r.ChoiceID != c.ID {
		return false
	}
	if utf8.RuneCountInString(r.Answer) != 1 {
		return false
	}
	a, _ := utf8.DecodeRuneInString(r.Answer)
	for _, want := range c.Answers {
		if a == want {
			return true
		}
	}
	return false
}

// Channel is the synchronous transport to one human. Send and Receive block
// the caller; a failure is returned as an error and never retried here.
type Channel interface {
	Send(m Message) error
	Receive(c Choice) (Response, error)
	Close() error
}

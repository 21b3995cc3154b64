package message

import (
	"encoding/json"
	"fmt"

	"boomerang-server/gameerrors"
)

// Wire type tags.
const (
	TypeInformation = "information"
	TypeChoice      = "choice"
	TypeResponse    = "response"
	TypeJoin        = "join"
)

// InboundEnvelope is the generic envelope for every frame.
// The Type field is used for routing; Raw holds the full JSON payload.
type InboundEnvelope struct {
	Type string          `json:"type"`
	Raw  json.RawMessage `json:"-"`
}

// UnmarshalJSON implements custom unmarshaling to capture the raw payload.
func (e *InboundEnvelope) UnmarshalJSON(data []byte) error {
	type typeOnly struct {
		Type string `json:"type"`
	}
	var t typeOnly
	if err := json.Unmarshal(data, &t); err != nil {
		return err
	}
	e.Type = t.Type
	e.Raw = json.RawMessage(data)
	return nil
}

// InformationMsg is the wire form of Information.
type InformationMsg struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// ChoiceMsg is the wire form of Choice. Answers are concatenated into one string.
type ChoiceMsg struct {
	Type    string `json:"type"`
	ID      int    `json:"id"`
	Text    string `json:"text"`
	Answers string `json:"answers"`
}

// ResponseMsg is the wire form of Response.
type ResponseMsg struct {
	Type     string `json:"type"`
	ChoiceID int    `json:"choiceId"`
	Answer   string `json:"answer"`
}

// JoinMsg is the wire form of Join.
type JoinMsg struct {
	Type  string `json:"type"`
	Name  string `json:"name"`
	Token string `json:"token,omitempty"`
}

// Encode marshals m into a JSON frame.
func Encode(m Message) ([]byte, error) {
	switch v := m.(type) {
	case Information:
		return json.Marshal(InformationMsg{Type: TypeInformation, Text: v.Text})
	case Choice:
		return json.Marshal(ChoiceMsg{Type: TypeChoice, ID: v.ID, Text: v.Text, Answers: string(v.Answers)})
	case Response:
		return json.Marshal(ResponseMsg{Type: TypeResponse, ChoiceID: v.ChoiceID, Answer: v.Answer})
	case Join:
		return json.Marshal(JoinMsg{Type: TypeJoin, Name: v.Name, Token: v.Token})
	default:
		return nil, fmt.Errorf("%w: cannot encode %T", gameerrors.ErrUnknownMessage, m)
	}
}

// Decode parses a JSON frame. Frames that are not JSON or carry an unknown
// type return an error wrapping gameerrors.ErrUnknownMessage.
func Decode(data []byte) (Message, error) {
	var env InboundEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", gameerrors.ErrUnknownMessage, err)
	}
	switch env.Type {
	case TypeInformation:
		var msg InformationMsg
		if err := json.Unmarshal(env.Raw, &msg); err != nil {
			return nil, fmt.Errorf("%w: invalid information: %v", gameerrors.ErrUnknownMessage, err)
		}
		return Information{Text: msg.Text}, nil
	case TypeChoice:
		var msg ChoiceMsg
		if err := json.Unmarshal(env.Raw, &msg); err != nil {
			return nil, fmt.Errorf("%w: invalid choice: %v", gameerrors.ErrUnknownMessage, err)
		}
		return Choice{ID: msg.ID, Text: msg.Text, Answers: []rune(msg.Answers)}, nil
	case TypeResponse:
		var msg ResponseMsg
		if err := json.Unmarshal(env.Raw, &msg); err != nil {
			return nil, fmt.Errorf("%w: invalid response: %v", gameerrors.ErrUnknownMessage, err)
		}
		return Response{ChoiceID: msg.ChoiceID, Answer: msg.Answer}, nil
	case TypeJoin:
		var msg JoinMsg
		if err := json.Unmarshal(env.Raw, &msg); err != nil {
			return nil, fmt.Errorf("%w: invalid join: %v", gameerrors.ErrUnknownMessage, err)
		}
		return Join{Name: msg.Name, Token: msg.Token}, nil
	default:
		return nil, fmt.Errorf("%w: unknown message type %q", gameerrors.ErrUnknownMessage, env.Type)
	}
}

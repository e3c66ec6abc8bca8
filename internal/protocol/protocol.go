// Package protocol defines the JSON wire contract shared by the server
// handlers and the polling client.
package protocol

import (
	"encoding/json"

	"github.com/google/uuid"

	"github.com/oonogame/oono/internal/card"
)

// MessageType discriminates the response envelope.
type MessageType string

const (
	MsgGameCreated MessageType = "game_created"
	MsgGameJoined  MessageType = "game_joined"
	MsgGameStarted MessageType = "game_started"
	MsgUpdate      MessageType = "update"
	MsgCardPlaced  MessageType = "card_placed"
	MsgCardDrawn   MessageType = "card_drawn"
	MsgPlayerWon   MessageType = "player_won"
	MsgError       MessageType = "error"
)

// Error codes carried in ErrorPayload. The server only ever produces
// the first seven; server_unreachable and malformed_response are
// synthesized client-side so the UI has a single error display path.
const (
	ErrCodeInvalidID          = "invalid_id"
	ErrCodeGameNotFound       = "game_not_found"
	ErrCodePlayerNotFound     = "player_not_found"
	ErrCodeInvalidGMToken     = "invalid_gm_token"
	ErrCodeCardOutOfRange     = "card_out_of_range"
	ErrCodeIllegalMove        = "illegal_move"
	ErrCodeGameAlreadyStarted = "game_already_started"
	ErrCodeServerUnreachable  = "server_unreachable"
	ErrCodeMalformedResponse  = "malformed_response"
)

// Message is the response envelope for every operation.
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// NewMessage wraps a payload into an envelope.
func NewMessage(t MessageType, payload any) (Message, error) {
	m := Message{Type: t}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return Message{}, err
		}
		m.Payload = data
	}
	return m, nil
}

// Decode unmarshals the payload into the given struct.
func (m Message) Decode(into any) error {
	return json.Unmarshal(m.Payload, into)
}

// OpaquePlayer is what every player may see about the others: seat,
// hand size and name, but never the hand itself.
type OpaquePlayer struct {
	OrderNum int    `json:"order_num"`
	HandSize int    `json:"hand_size"`
	Name     string `json:"name"`
}

type GameCreatedPayload struct {
	GameID  uuid.UUID `json:"game_id"`
	GMToken uuid.UUID `json:"gm_token"`
}

type GameJoinedPayload struct {
	GameID   uuid.UUID `json:"game_id"`
	PlayerID uuid.UUID `json:"player_id"`
	OrderNum int       `json:"order_num"`
}

// UpdatePayload is the full per-player snapshot returned by
// RequestUpdate. Clients must re-fetch it immediately before placing a
// card, since the server re-sorts hands after every mutation.
type UpdatePayload struct {
	Started    bool           `json:"started"`
	Hand       card.Deck      `json:"hand"`
	DiscardTop card.Card      `json:"discard_top"`
	Reversed   bool           `json:"reversed"`
	Players    []OpaquePlayer `json:"players"`
	WhoseTurn  int            `json:"whose_turn"`
	PotSize    int            `json:"pot_size"`
}

type PlayerWonPayload struct {
	OrderNum int `json:"order_num"`
}

type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

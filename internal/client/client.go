// Package client is the HTTP collaborator the presentation layer talks
// through: one method per game operation, plus a background poller.
// Transport failures surface in the same error taxonomy as rule
// failures so the UI has a single display path.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/oonogame/oono/internal/card"
	"github.com/oonogame/oono/internal/game"
	"github.com/oonogame/oono/internal/protocol"
)

const requestTimeout = 2 * time.Second

// Client issues the six game operations against one server.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

// New builds a client for the given base URL, e.g. "http://host:8000".
func New(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: requestTimeout},
	}
}

// do issues one GET and decodes the response envelope. A server-side
// error envelope comes back as a *game.Error; transport and decoding
// failures are mapped into the same taxonomy.
func (c *Client) do(ctx context.Context, path string) (*protocol.Message, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+path, nil)
	if err != nil {
		return nil, &game.Error{
			Code:    protocol.ErrCodeServerUnreachable,
			Message: fmt.Sprintf("could not contact the server at %s: %v", c.BaseURL, err),
		}
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, &game.Error{
			Code:    protocol.ErrCodeServerUnreachable,
			Message: fmt.Sprintf("could not contact the server at %s: %v", c.BaseURL, err),
		}
	}
	defer resp.Body.Close()

	var msg protocol.Message
	if err := json.NewDecoder(resp.Body).Decode(&msg); err != nil {
		return nil, &game.Error{
			Code:    protocol.ErrCodeMalformedResponse,
			Message: fmt.Sprintf("malformed response from the server: %v", err),
		}
	}

	if msg.Type == protocol.MsgError {
		var ep protocol.ErrorPayload
		if err := msg.Decode(&ep); err != nil {
			return nil, &game.Error{
				Code:    protocol.ErrCodeMalformedResponse,
				Message: fmt.Sprintf("malformed error payload: %v", err),
			}
		}
		return nil, &game.Error{Code: ep.Code, Message: ep.Message}
	}
	return &msg, nil
}

func (c *Client) decode(msg *protocol.Message, want protocol.MessageType, into any) error {
	if msg.Type != want {
		return &game.Error{
			Code:    protocol.ErrCodeMalformedResponse,
			Message: fmt.Sprintf("expected %s response, got %s", want, msg.Type),
		}
	}
	if into == nil {
		return nil
	}
	if err := msg.Decode(into); err != nil {
		return &game.Error{
			Code:    protocol.ErrCodeMalformedResponse,
			Message: fmt.Sprintf("malformed %s payload: %v", want, err),
		}
	}
	return nil
}

// CreateGame allocates a fresh game and returns its id and GM token.
func (c *Client) CreateGame(ctx context.Context) (*protocol.GameCreatedPayload, error) {
	msg, err := c.do(ctx, "/CreateGame")
	if err != nil {
		return nil, err
	}
	var p protocol.GameCreatedPayload
	if err := c.decode(msg, protocol.MsgGameCreated, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// JoinGame seats the named player in the game.
func (c *Client) JoinGame(ctx context.Context, gameID uuid.UUID, name string) (*protocol.GameJoinedPayload, error) {
	msg, err := c.do(ctx, fmt.Sprintf("/JoinGame/%s/%s", gameID, url.PathEscape(name)))
	if err != nil {
		return nil, err
	}
	var p protocol.GameJoinedPayload
	if err := c.decode(msg, protocol.MsgGameJoined, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// StartGame starts the game using the creator's token.
func (c *Client) StartGame(ctx context.Context, gameID, gmToken uuid.UUID) error {
	msg, err := c.do(ctx, fmt.Sprintf("/StartGame/%s/%s", gameID, gmToken))
	if err != nil {
		return err
	}
	return c.decode(msg, protocol.MsgGameStarted, nil)
}

// RequestUpdate fetches the player's snapshot. Exactly one of update
// and won is non-nil on success.
func (c *Client) RequestUpdate(ctx context.Context, gameID, playerID uuid.UUID) (*protocol.UpdatePayload, *protocol.PlayerWonPayload, error) {
	msg, err := c.do(ctx, fmt.Sprintf("/RequestUpdate/%s/%s", gameID, playerID))
	if err != nil {
		return nil, nil, err
	}
	if msg.Type == protocol.MsgPlayerWon {
		var won protocol.PlayerWonPayload
		if err := c.decode(msg, protocol.MsgPlayerWon, &won); err != nil {
			return nil, nil, err
		}
		return nil, &won, nil
	}
	var update protocol.UpdatePayload
	if err := c.decode(msg, protocol.MsgUpdate, &update); err != nil {
		return nil, nil, err
	}
	return &update, nil, nil
}

// PlaceCard plays the card at the given hand index. chosen resolves a
// wild and is sent as "None" otherwise. A non-nil won return means
// this placement ended the game.
func (c *Client) PlaceCard(ctx context.Context, gameID, playerID uuid.UUID, index int, chosen card.Color) (*protocol.PlayerWonPayload, error) {
	msg, err := c.do(ctx, fmt.Sprintf("/PlaceCard/%s/%s/%d/%s", gameID, playerID, index, chosen))
	if err != nil {
		return nil, err
	}
	if msg.Type == protocol.MsgPlayerWon {
		var won protocol.PlayerWonPayload
		if err := c.decode(msg, protocol.MsgPlayerWon, &won); err != nil {
			return nil, err
		}
		return &won, nil
	}
	return nil, c.decode(msg, protocol.MsgCardPlaced, nil)
}

// DrawCard draws one card for the player.
func (c *Client) DrawCard(ctx context.Context, gameID, playerID uuid.UUID) error {
	msg, err := c.do(ctx, fmt.Sprintf("/DrawCard/%s/%s", gameID, playerID))
	if err != nil {
		return err
	}
	return c.decode(msg, protocol.MsgCardDrawn, nil)
}

// internal/handlers/game.go
package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oonogame/oono/internal/card"
	"github.com/oonogame/oono/internal/game"
	"github.com/oonogame/oono/internal/protocol"
)

// CreateGameHandler allocates a new game and returns its id together
// with the creator token that authorizes starting it.
func (s *GameServer) CreateGameHandler(w http.ResponseWriter, r *http.Request) {
	g := game.NewGame()
	s.Store.AddGame(g)

	s.Logger.WithFields(logrus.Fields{
		"game_id": g.ID,
	}).Info("game created")

	writeMessage(w, http.StatusOK, protocol.MsgGameCreated, protocol.GameCreatedPayload{
		GameID:  g.ID,
		GMToken: g.CreatorToken,
	})
}

// JoinGameHandler seats a named player in an open game and deals their
// starting hand.
func (s *GameServer) JoinGameHandler(w http.ResponseWriter, r *http.Request) {
	gameID, ok := s.parseID(w, r.PathValue("game_id"))
	if !ok {
		return
	}
	g, found := s.Store.GetGame(gameID)
	if !found {
		writeError(w, http.StatusNotFound, game.ErrGameNotFound)
		return
	}

	p, err := g.Join(r.PathValue("name"))
	if err != nil {
		s.writeGameError(w, err)
		return
	}

	s.Logger.WithFields(logrus.Fields{
		"game_id":   gameID,
		"player":    p.Name,
		"order_num": p.OrderNum,
	}).Info("player joined")

	writeMessage(w, http.StatusOK, protocol.MsgGameJoined, protocol.GameJoinedPayload{
		GameID:   gameID,
		PlayerID: p.ID,
		OrderNum: p.OrderNum,
	})
}

// StartGameHandler flips the game to started if the supplied token
// matches the creator's.
func (s *GameServer) StartGameHandler(w http.ResponseWriter, r *http.Request) {
	gameID, ok := s.parseID(w, r.PathValue("game_id"))
	if !ok {
		return
	}
	token, ok := s.parseID(w, r.PathValue("gm_token"))
	if !ok {
		return
	}
	g, found := s.Store.GetGame(gameID)
	if !found {
		writeError(w, http.StatusNotFound, game.ErrGameNotFound)
		return
	}

	if err := g.Start(token); err != nil {
		s.writeGameError(w, err)
		return
	}

	s.Logger.WithFields(logrus.Fields{"game_id": gameID}).Info("game started")
	writeMessage(w, http.StatusOK, protocol.MsgGameStarted, nil)
}

// RequestUpdateHandler returns the polling player's current snapshot,
// or the win event once any hand has been emptied.
func (s *GameServer) RequestUpdateHandler(w http.ResponseWriter, r *http.Request) {
	gameID, ok := s.parseID(w, r.PathValue("game_id"))
	if !ok {
		return
	}
	playerID, ok := s.parseID(w, r.PathValue("player_id"))
	if !ok {
		return
	}
	g, found := s.Store.GetGame(gameID)
	if !found {
		writeError(w, http.StatusNotFound, game.ErrGameNotFound)
		return
	}

	update, won, err := g.Snapshot(playerID)
	if err != nil {
		s.writeGameError(w, err)
		return
	}
	if won != nil {
		writeMessage(w, http.StatusOK, protocol.MsgPlayerWon, won)
		return
	}
	writeMessage(w, http.StatusOK, protocol.MsgUpdate, update)
}

// PlaceCardHandler plays the card at the given hand index. The color
// segment resolves a wild; it is "None" (and ignored) otherwise.
func (s *GameServer) PlaceCardHandler(w http.ResponseWriter, r *http.Request) {
	gameID, ok := s.parseID(w, r.PathValue("game_id"))
	if !ok {
		return
	}
	playerID, ok := s.parseID(w, r.PathValue("player_id"))
	if !ok {
		return
	}
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil || index < 0 {
		writeError(w, http.StatusBadRequest, game.ErrCardOutOfRange(index))
		return
	}
	// A junk color stays None; the engine rejects a wild without one.
	chosen, _ := card.ParseColor(r.PathValue("color"))

	g, found := s.Store.GetGame(gameID)
	if !found {
		writeError(w, http.StatusNotFound, game.ErrGameNotFound)
		return
	}

	won, err := g.Place(playerID, index, chosen)
	if err != nil {
		s.writeGameError(w, err)
		return
	}
	if won != nil {
		s.Logger.WithFields(logrus.Fields{
			"game_id":   gameID,
			"order_num": won.OrderNum,
		}).Info("player won, scheduling removal")
		s.Store.ScheduleRemoval(gameID, s.CleanupDelay)
		writeMessage(w, http.StatusOK, protocol.MsgPlayerWon, won)
		return
	}
	writeMessage(w, http.StatusOK, protocol.MsgCardPlaced, nil)
}

// DrawCardHandler draws one card for the player whose turn it is.
func (s *GameServer) DrawCardHandler(w http.ResponseWriter, r *http.Request) {
	gameID, ok := s.parseID(w, r.PathValue("game_id"))
	if !ok {
		return
	}
	playerID, ok := s.parseID(w, r.PathValue("player_id"))
	if !ok {
		return
	}
	g, found := s.Store.GetGame(gameID)
	if !found {
		writeError(w, http.StatusNotFound, game.ErrGameNotFound)
		return
	}

	if err := g.Draw(playerID); err != nil {
		s.writeGameError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, protocol.MsgCardDrawn, nil)
}

// parseID validates a path segment as a uuid, answering an invalid_id
// error itself when malformed.
func (s *GameServer) parseID(w http.ResponseWriter, raw string) (uuid.UUID, bool) {
	id, err := uuid.Parse(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, game.ErrInvalidID(raw, err))
		return uuid.Nil, false
	}
	return id, true
}

// writeGameError maps an engine error onto an HTTP status and encodes
// it as an error envelope.
func (s *GameServer) writeGameError(w http.ResponseWriter, err error) {
	ge, ok := err.(*game.Error)
	if !ok {
		ge = &game.Error{Code: protocol.ErrCodeIllegalMove, Message: err.Error()}
	}
	status := http.StatusBadRequest
	switch ge.Code {
	case protocol.ErrCodeGameNotFound, protocol.ErrCodePlayerNotFound:
		status = http.StatusNotFound
	case protocol.ErrCodeInvalidGMToken:
		status = http.StatusForbidden
	case protocol.ErrCodeIllegalMove, protocol.ErrCodeGameAlreadyStarted:
		status = http.StatusConflict
	}
	writeError(w, status, ge)
}

func writeError(w http.ResponseWriter, status int, ge *game.Error) {
	msg, err := protocol.NewMessage(protocol.MsgError, protocol.ErrorPayload{
		Code:    ge.Code,
		Message: ge.Message,
	})
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, status, msg)
}

func writeMessage(w http.ResponseWriter, status int, t protocol.MessageType, payload any) {
	msg, err := protocol.NewMessage(t, payload)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, status, msg)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

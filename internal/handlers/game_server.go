// internal/handlers/game_server.go
package handlers

import (
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oonogame/oono/internal/game"
)

// GameServer holds the game registry plus the knobs the handlers need.
type GameServer struct {
	Store        *game.GameStore
	Logger       *logrus.Logger
	CleanupDelay time.Duration
}

func NewGameServer(logger *logrus.Logger, cleanupDelay time.Duration) *GameServer {
	return &GameServer{
		Store:        game.NewGameStore(),
		Logger:       logger,
		CleanupDelay: cleanupDelay,
	}
}

// Routes registers the six game operations. Paths mirror the contract:
// everything is a GET with path parameters, so a game can be driven
// from a browser address bar if need be.
func (s *GameServer) Routes(mux *http.ServeMux) {
	mux.HandleFunc("GET /CreateGame", s.CreateGameHandler)
	mux.HandleFunc("GET /JoinGame/{game_id}/{name}", s.JoinGameHandler)
	mux.HandleFunc("GET /StartGame/{game_id}/{gm_token}", s.StartGameHandler)
	mux.HandleFunc("GET /RequestUpdate/{game_id}/{player_id}", s.RequestUpdateHandler)
	mux.HandleFunc("GET /PlaceCard/{game_id}/{player_id}/{index}/{color}", s.PlaceCardHandler)
	mux.HandleFunc("GET /DrawCard/{game_id}/{player_id}", s.DrawCardHandler)
}

package game

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// GameStore is the concurrent registry of running games. It owns every
// Game exclusively; callers obtain a *Game for the duration of one
// transition and must not retain it.
type GameStore struct {
	mu    sync.Mutex
	games map[uuid.UUID]*Game
}

func NewGameStore() *GameStore {
	return &GameStore{
		games: make(map[uuid.UUID]*Game),
	}
}

func (s *GameStore) AddGame(g *Game) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.games[g.ID] = g
}

func (s *GameStore) GetGame(id uuid.UUID) (*Game, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, exists := s.games[id]
	return g, exists
}

// DeleteGame removes a game from the registry. Deleting an id that is
// already gone is a no-op.
func (s *GameStore) DeleteGame(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.games, id)
}

// Count returns the number of registered games.
func (s *GameStore) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.games)
}

// ScheduleRemoval deletes the game after the given delay on a detached
// timer, so late pollers can still observe the win before the game
// vanishes. No lock is held while the timer sleeps.
func (s *GameStore) ScheduleRemoval(id uuid.UUID, delay time.Duration) {
	time.AfterFunc(delay, func() {
		s.DeleteGame(id)
	})
}

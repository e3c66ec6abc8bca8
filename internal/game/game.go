// Package game holds the authoritative per-game state machine and the
// concurrent registry of running games.
package game

import (
	"log"
	"math/rand"
	"sync"

	"github.com/google/uuid"

	"github.com/oonogame/oono/internal/card"
	"github.com/oonogame/oono/internal/protocol"
)

// HandSize is the number of cards dealt to a joining player.
const HandSize = 7

// Player is one seat in a game. OrderNum is assigned at join time and
// never reassigned; other players know this player only by it.
type Player struct {
	ID       uuid.UUID
	Name     string
	OrderNum int
	Hand     card.Deck
}

// Game holds the entire state for a single game instance in memory.
// Every exported method takes the game's own lock; the registry only
// guards the map, so unrelated games proceed fully in parallel.
type Game struct {
	ID           uuid.UUID
	CreatorToken uuid.UUID

	Pot     card.Deck
	Discard card.Deck
	Players map[uuid.UUID]*Player

	WhoseTurn int
	Reversed  bool
	Started   bool

	// Winner is the order number of the player whose hand reached
	// zero, or -1 while the game is live. Once set, no transition
	// mutates pot, discard or turn again.
	Winner int

	Mu sync.Mutex
}

// NewGame allocates a fresh game: a shuffled full pot, with cards
// flipped onto the discard pile until a non-wild lands on top, so the
// opening table card always has a color. Rejected wild flips stay
// buried in the discard; they re-enter circulation on the first
// recycle.
func NewGame() *Game {
	g := &Game{
		ID:           uuid.New(),
		CreatorToken: uuid.New(),
		Pot:          card.NewFull(),
		Discard:      card.Deck{},
		Players:      make(map[uuid.UUID]*Player),
		Winner:       -1,
	}
	for {
		c, _ := g.Pot.Pop()
		g.Discard.Push(c)
		if !c.IsWild() {
			break
		}
	}
	return g
}

// Join deals a sorted seven-card hand off the pot and seats the player
// at the next order number. Rejected once the game has started.
func (g *Game) Join(name string) (*Player, error) {
	g.Mu.Lock()
	defer g.Mu.Unlock()

	if g.Started {
		return nil, ErrGameAlreadyStarted
	}

	p := &Player{
		ID:       uuid.New(),
		Name:     name,
		OrderNum: len(g.Players),
		Hand:     make(card.Deck, 0, HandSize),
	}
	for i := 0; i < HandSize; i++ {
		p.Hand.Push(g.popPot())
	}
	p.Hand.Sort()
	g.Players[p.ID] = p
	return p, nil
}

// Start flips the game to started with a uniformly random first seat.
// Only the creator's token may start it, and only once.
func (g *Game) Start(token uuid.UUID) error {
	g.Mu.Lock()
	defer g.Mu.Unlock()

	if token != g.CreatorToken {
		return ErrInvalidGMToken
	}
	if g.Started {
		return ErrGameAlreadyStarted
	}
	if len(g.Players) == 0 {
		return ErrIllegalMove
	}
	g.WhoseTurn = rand.Intn(len(g.Players))
	g.Started = true
	return nil
}

// Snapshot returns the requesting player's view of the game, or the
// win event if any hand has already been emptied.
func (g *Game) Snapshot(playerID uuid.UUID) (*protocol.UpdatePayload, *protocol.PlayerWonPayload, error) {
	g.Mu.Lock()
	defer g.Mu.Unlock()

	if g.Winner >= 0 {
		return nil, &protocol.PlayerWonPayload{OrderNum: g.Winner}, nil
	}

	p, ok := g.Players[playerID]
	if !ok {
		return nil, nil, ErrPlayerNotFound
	}

	top, _ := g.Discard.Top()
	update := &protocol.UpdatePayload{
		Started:    g.Started,
		Hand:       append(card.Deck{}, p.Hand...),
		DiscardTop: top,
		Reversed:   g.Reversed,
		Players:    make([]protocol.OpaquePlayer, 0, len(g.Players)),
		WhoseTurn:  g.WhoseTurn,
		PotSize:    len(g.Pot),
	}
	for _, other := range g.Players {
		update.Players = append(update.Players, protocol.OpaquePlayer{
			OrderNum: other.OrderNum,
			HandSize: len(other.Hand),
			Name:     other.Name,
		})
	}
	return update, nil, nil
}

// Place removes the card at index from the player's hand, validates
// the move, applies the card's effect and advances the turn. A non-nil
// won return means this placement emptied the hand and ended the game.
func (g *Game) Place(playerID uuid.UUID, index int, chosen card.Color) (*protocol.PlayerWonPayload, error) {
	g.Mu.Lock()
	defer g.Mu.Unlock()

	if g.Winner >= 0 {
		return &protocol.PlayerWonPayload{OrderNum: g.Winner}, nil
	}

	p, ok := g.Players[playerID]
	if !ok {
		return nil, ErrPlayerNotFound
	}
	if index < 0 || index >= len(p.Hand) {
		return nil, ErrCardOutOfRange(index)
	}

	top, _ := g.Discard.Top()

	c := p.Hand[index]
	p.Hand = append(p.Hand[:index], p.Hand[index+1:]...)
	p.Hand.Sort()

	// Cards are conserved even across rejected moves.
	restore := func() {
		p.Hand.Push(c)
		p.Hand.Sort()
	}

	if !g.Started || !c.ValidOn(top) || g.WhoseTurn != p.OrderNum {
		restore()
		return nil, ErrIllegalMove
	}

	if len(p.Hand) == 0 {
		// The card's effect is moot; the game is over. The card still
		// lands on the discard so the count stays whole.
		if c.IsWild() && chosen != card.None {
			c.Color = chosen
		}
		g.Discard.Push(c)
		g.Winner = p.OrderNum
		return &protocol.PlayerWonPayload{OrderNum: p.OrderNum}, nil
	}

	if c.IsWild() {
		if chosen == card.None {
			restore()
			return nil, ErrIllegalMove
		}
		c.Color = chosen
	}

	switch c.Rank {
	case card.RankSkip:
		g.advanceTurn()
	case card.RankReverse:
		g.Reversed = !g.Reversed
	case card.RankPlusTwo:
		g.dealPenalty(2)
	case card.RankPlusFour:
		g.dealPenalty(4)
	}

	g.Discard.Push(c)
	g.advanceTurn()
	return nil, nil
}

// Draw pops one card into the player's hand. Drawing does not end the
// turn; the player may still place afterwards.
func (g *Game) Draw(playerID uuid.UUID) error {
	g.Mu.Lock()
	defer g.Mu.Unlock()

	if g.Winner >= 0 {
		return ErrIllegalMove
	}
	p, ok := g.Players[playerID]
	if !ok {
		return ErrPlayerNotFound
	}
	if !g.Started || g.WhoseTurn != p.OrderNum {
		return ErrIllegalMove
	}

	p.Hand.Push(g.popPot())
	p.Hand.Sort()
	return nil
}

// dealPenalty draws n cards into the hand of the player one step ahead
// in the current direction, then advances one step so that player is
// skipped after receiving the cards. Direction is re-read here since a
// Reverse may just have flipped it.
func (g *Game) dealPenalty(n int) {
	target := g.playerByOrder(nextOrderNum(g.WhoseTurn, g.Reversed, len(g.Players)))
	if target == nil {
		return
	}
	for i := 0; i < n; i++ {
		target.Hand.Push(g.popPot())
	}
	target.Hand.Sort()
	g.advanceTurn()
}

// popPot pops the draw pile, recycling the discard pile when the pot
// runs dry: the current table card stays face up, everything beneath
// it is shuffled back in, and recycled wilds lose their chosen color.
// When pot and discard are both critically short, a brand-new full
// deck is injected rather than failing; over a long game this
// deliberately grows the card count.
func (g *Game) popPot() card.Card {
	if len(g.Pot) == 0 {
		top := g.Discard[len(g.Discard)-1]
		rest := g.Discard[:len(g.Discard)-1]
		if len(rest) == 0 {
			log.Printf("game %s: pot and discard exhausted, injecting a fresh deck", g.ID)
			rest = append(rest, card.NewFull()...)
		}
		g.Pot = append(g.Pot, rest...)
		g.Pot.Shuffle()
		for i := range g.Pot {
			if g.Pot[i].IsWild() {
				g.Pot[i].Color = card.None
			}
		}
		g.Discard = card.Deck{top}
	}
	c, _ := g.Pot.Pop()
	return c
}

func (g *Game) advanceTurn() {
	g.WhoseTurn = nextOrderNum(g.WhoseTurn, g.Reversed, len(g.Players))
}

func (g *Game) playerByOrder(order int) *Player {
	for _, p := range g.Players {
		if p.OrderNum == order {
			return p
		}
	}
	return nil
}

// nextOrderNum is the single place turn-direction arithmetic lives.
func nextOrderNum(turn int, reversed bool, players int) int {
	if reversed {
		return (turn + players - 1) % players
	}
	return (turn + 1) % players
}

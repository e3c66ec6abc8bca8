package ui

import (
	"context"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oonogame/oono/internal/card"
	"github.com/oonogame/oono/internal/client"
	"github.com/oonogame/oono/internal/config"
	"github.com/oonogame/oono/internal/protocol"
)

// phase is the screen the model is showing.
type phase int

const (
	phaseServer phase = iota // editing the server URL
	phaseMenu                // create or join
	phaseGameID              // entering a game id to join
	phaseName                // entering a player name
	phaseLobby               // joined, waiting for the start
	phaseTable               // playing
	phaseColor               // resolving a wild's color
	phaseWon                 // somebody emptied their hand
)

// Model is the bubbletea model for the whole client session.
type Model struct {
	cfg *config.ClientConfig
	api *client.Client
	log *logrus.Logger

	phase   phase
	input   textinput.Model
	errText string

	// identity, learned as the session progresses
	gameID   uuid.UUID
	gmToken  uuid.UUID // zero unless we created the game
	playerID uuid.UUID
	orderNum int

	creating bool // create-then-join vs plain join
	name     string

	// last snapshot received from the server
	update    *protocol.UpdatePayload
	wonOrder  int
	cursor    int
	pendIndex int // hand index awaiting a wild color choice

	// background poller plumbing
	pollCancel context.CancelFunc
	pollCh     <-chan client.PollResult

	width  int
	height int
}

// messages delivered by commands
type (
	gameCreatedMsg *protocol.GameCreatedPayload
	gameJoinedMsg  *protocol.GameJoinedPayload
	gameStartedMsg struct{}
	cardPlacedMsg  struct{ won *protocol.PlayerWonPayload }
	cardDrawnMsg   struct{}
	pollMsg        client.PollResult
	errMsg         struct{ err error }
)

// New builds the initial model pointing at the configured server. The
// logger goes to a file; the TUI owns the terminal.
func New(cfg *config.ClientConfig, logger *logrus.Logger) *Model {
	ti := textinput.New()
	ti.Placeholder = cfg.ServerURL
	ti.CharLimit = 120
	ti.Width = 48
	ti.SetValue(cfg.ServerURL)
	ti.Focus()

	return &Model{
		cfg:       cfg,
		api:       client.New(cfg.ServerURL),
		log:       logger,
		phase:     phaseServer,
		input:     ti,
		wonOrder:  -1,
		pendIndex: -1,
	}
}

func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// --- commands ---

func (m *Model) createGameCmd() tea.Cmd {
	return func() tea.Msg {
		created, err := m.api.CreateGame(context.Background())
		if err != nil {
			return errMsg{err}
		}
		return gameCreatedMsg(created)
	}
}

func (m *Model) joinGameCmd(gameID uuid.UUID, name string) tea.Cmd {
	return func() tea.Msg {
		joined, err := m.api.JoinGame(context.Background(), gameID, name)
		if err != nil {
			return errMsg{err}
		}
		return gameJoinedMsg(joined)
	}
}

func (m *Model) startGameCmd() tea.Cmd {
	return func() tea.Msg {
		if err := m.api.StartGame(context.Background(), m.gameID, m.gmToken); err != nil {
			return errMsg{err}
		}
		return gameStartedMsg{}
	}
}

func (m *Model) placeCardCmd(index int, chosen card.Color) tea.Cmd {
	return func() tea.Msg {
		won, err := m.api.PlaceCard(context.Background(), m.gameID, m.playerID, index, chosen)
		if err != nil {
			return errMsg{err}
		}
		return cardPlacedMsg{won}
	}
}

func (m *Model) drawCardCmd() tea.Cmd {
	return func() tea.Msg {
		if err := m.api.DrawCard(context.Background(), m.gameID, m.playerID); err != nil {
			return errMsg{err}
		}
		return cardDrawnMsg{}
	}
}

// startPolling kicks off the background status poller once game and
// player identity are known.
func (m *Model) startPolling() tea.Cmd {
	ctx, cancel := context.WithCancel(context.Background())
	m.pollCancel = cancel
	m.pollCh = m.api.Poll(ctx, m.gameID, m.playerID, m.cfg.PollInterval())
	return m.waitForPoll()
}

// waitForPoll forwards the next poll result into the update loop.
func (m *Model) waitForPoll() tea.Cmd {
	ch := m.pollCh
	return func() tea.Msg {
		res, ok := <-ch
		if !ok {
			return nil
		}
		return pollMsg(res)
	}
}

package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oonogame/oono/internal/card"
	"github.com/oonogame/oono/internal/client"
)

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case gameCreatedMsg:
		m.gameID = msg.GameID
		m.gmToken = msg.GMToken
		m.errText = ""
		// The creator still has to take a seat.
		return m, m.joinGameCmd(m.gameID, m.name)

	case gameJoinedMsg:
		m.gameID = msg.GameID
		m.playerID = msg.PlayerID
		m.orderNum = msg.OrderNum
		m.phase = phaseLobby
		m.errText = ""
		m.log.WithFields(logrus.Fields{
			"game_id":   m.gameID,
			"order_num": m.orderNum,
		}).Info("joined game")
		return m, m.startPolling()

	case gameStartedMsg:
		m.errText = ""
		return m, nil

	case cardPlacedMsg:
		m.errText = ""
		if msg.won != nil {
			m.wonOrder = msg.won.OrderNum
			m.phase = phaseWon
		}
		return m, nil

	case cardDrawnMsg:
		m.errText = ""
		return m, nil

	case pollMsg:
		return m.handlePoll(client.PollResult(msg))

	case errMsg:
		m.errText = msg.err.Error()
		m.log.WithError(msg.err).Warn("operation failed")
		return m, nil
	}

	return m, nil
}

func (m *Model) handlePoll(res client.PollResult) (tea.Model, tea.Cmd) {
	switch {
	case res.Err != nil:
		// Transient poll failures are shown, not fatal; the next tick
		// is the retry.
		m.errText = res.Err.Error()
		m.log.WithError(res.Err).Warn("poll failed")
	case res.Won != nil:
		m.wonOrder = res.Won.OrderNum
		m.phase = phaseWon
	case res.Update != nil:
		m.update = res.Update
		if m.cursor >= len(m.update.Hand) {
			m.cursor = len(m.update.Hand) - 1
		}
		if m.cursor < 0 {
			m.cursor = 0
		}
		if m.phase == phaseLobby && m.update.Started {
			m.phase = phaseTable
		}
	}
	return m, m.waitForPoll()
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		if m.pollCancel != nil {
			m.pollCancel()
		}
		return m, tea.Quit
	}

	switch m.phase {
	case phaseServer:
		if msg.Type == tea.KeyEnter {
			url := m.input.Value()
			if url == "" {
				url = m.cfg.ServerURL
			}
			// Best effort; an unwritable home dir should not block play.
			_ = m.cfg.SaveServerURL(url)
			m.api = client.New(url)
			m.phase = phaseMenu
			return m, nil
		}

	case phaseMenu:
		switch msg.String() {
		case "c":
			m.creating = true
			m.phase = phaseName
			m.resetInput("your name")
			return m, nil
		case "j":
			m.creating = false
			m.phase = phaseGameID
			m.resetInput("game id")
			return m, nil
		case "q":
			return m, tea.Quit
		}
		return m, nil

	case phaseGameID:
		if msg.Type == tea.KeyEnter {
			id, err := uuid.Parse(m.input.Value())
			if err != nil {
				m.errText = "that is not a valid game id"
				return m, nil
			}
			m.gameID = id
			m.phase = phaseName
			m.resetInput("your name")
			return m, nil
		}

	case phaseName:
		if msg.Type == tea.KeyEnter {
			m.name = m.input.Value()
			if m.name == "" {
				m.errText = "a name is required"
				return m, nil
			}
			m.errText = ""
			if m.creating {
				return m, m.createGameCmd()
			}
			return m, m.joinGameCmd(m.gameID, m.name)
		}

	case phaseLobby:
		if msg.String() == "s" && m.gmToken != uuid.Nil {
			return m, m.startGameCmd()
		}
		return m, nil

	case phaseTable:
		return m.handleTableKey(msg)

	case phaseColor:
		if chosen, ok := colorForKey(msg.String()); ok {
			m.phase = phaseTable
			index := m.pendIndex
			m.pendIndex = -1
			return m, m.placeCardCmd(index, chosen)
		}
		if msg.Type == tea.KeyEsc {
			m.phase = phaseTable
			m.pendIndex = -1
		}
		return m, nil

	case phaseWon:
		if msg.String() == "q" {
			if m.pollCancel != nil {
				m.pollCancel()
			}
			return m, tea.Quit
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleTableKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.update == nil {
		return m, nil
	}
	switch msg.String() {
	case "left", "h":
		if m.cursor > 0 {
			m.cursor--
		}
	case "right", "l":
		if m.cursor < len(m.update.Hand)-1 {
			m.cursor++
		}
	case "enter", " ":
		if m.cursor >= len(m.update.Hand) {
			return m, nil
		}
		c := m.update.Hand[m.cursor]
		if c.IsWild() {
			m.pendIndex = m.cursor
			m.phase = phaseColor
			return m, nil
		}
		return m, m.placeCardCmd(m.cursor, card.None)
	case "d":
		return m, m.drawCardCmd()
	case "q":
		if m.pollCancel != nil {
			m.pollCancel()
		}
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) resetInput(placeholder string) {
	m.input.SetValue("")
	m.input.Placeholder = placeholder
	m.input.Focus()
}

func colorForKey(key string) (card.Color, bool) {
	switch key {
	case "r":
		return card.Red, true
	case "g":
		return card.Green, true
	case "y":
		return card.Yellow, true
	case "b":
		return card.Blue, true
	}
	return card.None, false
}

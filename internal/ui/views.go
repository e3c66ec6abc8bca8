package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/oonogame/oono/internal/card"
	"github.com/oonogame/oono/internal/protocol"
)

func (m *Model) View() string {
	var body string
	switch m.phase {
	case phaseServer:
		body = m.viewPrompt("oono", "Server URL:", "enter to connect")
	case phaseMenu:
		body = titleStyle.Render("oono") + "\n\n" +
			"[c] create a game\n[j] join a game\n[q] quit"
	case phaseGameID:
		body = m.viewPrompt("join game", "Game ID:", "enter to continue, ctrl+c to quit")
	case phaseName:
		body = m.viewPrompt("almost there", "Name:", "enter to continue, ctrl+c to quit")
	case phaseLobby:
		body = m.viewLobby()
	case phaseTable:
		body = m.viewTable()
	case phaseColor:
		body = titleStyle.Render("choose a color") + "\n\n" +
			colorStyles[card.Red].Render("[r] Red") + "  " +
			colorStyles[card.Green].Render("[g] Green") + "  " +
			colorStyles[card.Yellow].Render("[y] Yellow") + "  " +
			colorStyles[card.Blue].Render("[b] Blue") + "\n\n" +
			faintStyle.Render("esc to cancel")
	case phaseWon:
		body = m.viewWon()
	}

	if m.errText != "" {
		body += "\n\n" + errorStyle.Render(m.errText)
	}
	return docStyle.Render(body)
}

func (m *Model) viewPrompt(title, label, help string) string {
	return titleStyle.Render(title) + "\n\n" +
		label + "\n" + m.input.View() + "\n" +
		promptStyle.Render(faintStyle.Render(help))
}

func (m *Model) viewLobby() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("waiting for players") + "\n\n")
	b.WriteString("Game ID: " + m.gameID.String() + "\n")
	if m.update != nil {
		b.WriteString(m.viewPlayers())
	}
	if m.gmToken != uuid.Nil {
		b.WriteString(promptStyle.Render("[s] start the game"))
	} else {
		b.WriteString(promptStyle.Render(faintStyle.Render("waiting for the creator to start...")))
	}
	return b.String()
}

func (m *Model) viewPlayers() string {
	players := append([]protocol.OpaquePlayer(nil), m.update.Players...)
	sort.Slice(players, func(i, j int) bool { return players[i].OrderNum < players[j].OrderNum })

	var b strings.Builder
	for _, p := range players {
		line := fmt.Sprintf("  %d. %s (%d cards)", p.OrderNum, p.Name, p.HandSize)
		if m.update.Started && p.OrderNum == m.update.WhoseTurn {
			line = turnStyle.Render(line + "  ← to move")
		}
		if p.OrderNum == m.orderNum {
			line += faintStyle.Render("  (you)")
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

func (m *Model) viewTable() string {
	if m.update == nil {
		return faintStyle.Render("waiting for the first update...")
	}

	var b strings.Builder
	direction := "→"
	if m.update.Reversed {
		direction = "←"
	}
	b.WriteString(fmt.Sprintf("%s  pot: %d  direction: %s\n\n",
		titleStyle.Render("oono"), m.update.PotSize, direction))
	b.WriteString(m.viewPlayers() + "\n")

	b.WriteString("Table card:\n" + renderCard(m.update.DiscardTop, false) + "\n\n")

	b.WriteString("Your hand:\n")
	cards := make([]string, 0, len(m.update.Hand))
	for i, c := range m.update.Hand {
		cards = append(cards, renderCard(c, i == m.cursor))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	b.WriteString("\n" + faintStyle.Render("←/→ select · enter place · d draw · q quit"))
	return b.String()
}

func (m *Model) viewWon() string {
	name := fmt.Sprintf("player %d", m.wonOrder)
	if m.update != nil {
		for _, p := range m.update.Players {
			if p.OrderNum == m.wonOrder {
				name = p.Name
			}
		}
	}
	verdict := name + " wins!"
	if m.wonOrder == m.orderNum {
		verdict = "you win!"
	}
	return titleStyle.Render(verdict) + "\n\n" + faintStyle.Render("[q] quit")
}

// Package tui implements a local hot-seat client for a poker table. It
// drives the same authoritative Table holder the WebSocket server uses, so
// turn legality, round advancement and snapshot versioning behave exactly
// as they do in networked play.
package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/jgresham/based-poker/internal/deck"
	"github.com/jgresham/based-poker/internal/engine"
	"github.com/jgresham/based-poker/internal/server"
)

// Model is the Bubble Tea model for hot-seat play
type Model struct {
	table   *server.Table
	clients []string // client id per seat, in turn order
	logger  *log.Logger

	snapshot server.SnapshotData
	input    textinput.Model
	status   string
	errText  string
	width    int
	quitting bool
}

// NewModel seats playerNames at the table, starts the game and returns a
// ready model.
func NewModel(table *server.Table, playerNames []string, logger *log.Logger) (*Model, error) {
	clients := make([]string, len(playerNames))
	for i, name := range playerNames {
		clientID := fmt.Sprintf("seat-%d", i)
		if _, err := table.Join(clientID, name); err != nil {
			return nil, err
		}
		clients[i] = clientID
	}

	snap, err := table.Start()
	if err != nil {
		return nil, err
	}

	ti := textinput.New()
	ti.Placeholder = "check, call, fold, raise 40, next, quit"
	ti.Focus()
	ti.CharLimit = 40
	ti.Width = 48

	return &Model{
		table:    table,
		clients:  clients,
		logger:   logger.WithPrefix("tui"),
		snapshot: snap,
		input:    ti,
		status:   "New hand dealt",
	}, nil
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quitting = true
			return m, tea.Quit
		case tea.KeyEnter:
			m.submit(strings.TrimSpace(m.input.Value()))
			m.input.SetValue("")
			if m.quitting {
				return m, tea.Quit
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit parses and applies a typed command
func (m *Model) submit(line string) {
	m.errText = ""
	if line == "" {
		return
	}
	fields := strings.Fields(strings.ToLower(line))

	switch fields[0] {
	case "quit", "q", "exit":
		m.quitting = true
		return

	case "next", "deal":
		snap, err := m.table.NextHand()
		if err != nil {
			m.errText = err.Error()
			return
		}
		m.snapshot = snap
		m.status = "New hand dealt"
		return

	case "fold", "check", "call", "raise":
		amount := 0
		if fields[0] == "raise" {
			if len(fields) < 2 {
				m.errText = "raise needs an amount, e.g. raise 40"
				return
			}
			n, err := strconv.Atoi(fields[1])
			if err != nil {
				m.errText = "raise amount must be a number"
				return
			}
			amount = n
		}
		m.act(engine.ActionType(fields[0]), amount)
		return

	default:
		m.errText = "unknown command: " + fields[0]
	}
}

func (m *Model) act(action engine.ActionType, amount int) {
	idx := m.snapshot.State.CurrentPlayerIndex
	if idx < 0 || idx >= len(m.clients) {
		m.errText = "nobody to act; type next to deal the next hand"
		return
	}
	snap, err := m.table.Act(m.clients[idx], action, amount, m.snapshot.Version)
	if err != nil {
		m.errText = err.Error()
		return
	}
	actor := m.snapshot.State.Players[idx].Name
	m.snapshot = snap
	if amount > 0 {
		m.status = fmt.Sprintf("%s: %s to %d", actor, action, amount)
	} else {
		m.status = fmt.Sprintf("%s: %s", actor, action)
	}
}

// View implements tea.Model
func (m *Model) View() string {
	if m.quitting {
		return "Thanks for playing!\n"
	}

	state := m.snapshot.State
	var b strings.Builder

	b.WriteString(HeaderStyle.Render("based-poker"))
	b.WriteString("  ")
	b.WriteString(StageStyle.Render(string(state.Stage)))
	b.WriteString("  ")
	b.WriteString(PotStyle.Render(fmt.Sprintf("Pot: %d", state.Pot)))
	b.WriteString("  ")
	b.WriteString(InfoStyle.Render(fmt.Sprintf("To match: %d", state.CurrentBet)))
	b.WriteString("\n\n")

	b.WriteString("Board: ")
	if len(state.CommunityCards) == 0 {
		b.WriteString(InfoStyle.Render("(no cards yet)"))
	} else {
		b.WriteString(renderCards(state.CommunityCards, true))
	}
	b.WriteString("\n\n")

	for i := range state.Players {
		b.WriteString(m.renderPlayer(&state, i))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(InfoStyle.Render(m.status))
		b.WriteString("\n")
	}
	if m.errText != "" {
		b.WriteString(ErrorStyle.Render(m.errText))
		b.WriteString("\n")
	}
	if state.Stage == engine.StageShowdown || state.Stage == engine.StageEnded {
		b.WriteString(TurnStyle.Render("Hand over - type next to deal again"))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	return b.String()
}

func (m *Model) renderPlayer(state *engine.GameState, i int) string {
	p := state.Players[i]

	var badges []string
	if p.IsDealer {
		badges = append(badges, "D")
	}
	if p.IsSmallBlind {
		badges = append(badges, "SB")
	}
	if p.IsBigBlind {
		badges = append(badges, "BB")
	}
	if p.IsAllIn {
		badges = append(badges, "ALL-IN")
	}
	badge := ""
	if len(badges) > 0 {
		badge = " [" + strings.Join(badges, ",") + "]"
	}

	// Hot-seat: only the acting player's hole cards are shown face up
	cards := renderCards(p.Cards, p.IsTurn)

	line := fmt.Sprintf("%-12s %5d chips  bet %4d  %s%s", p.Name, p.Chips, p.Bet, cards, badge)
	switch {
	case !p.IsActive:
		return FoldedStyle.Render(line)
	case p.IsTurn:
		return TurnStyle.Render("> " + line)
	default:
		return PlayerStyle.Render("  " + line)
	}
}

// renderCards renders a card sequence, honouring face-up state; reveal
// forces the faces visible regardless of the FaceUp flag.
func renderCards(cards []deck.Card, reveal bool) string {
	if len(cards) == 0 {
		return ""
	}
	parts := make([]string, len(cards))
	for i, c := range cards {
		if !reveal && !c.FaceUp {
			parts[i] = BackCardStyle.Render("[" + deck.BackImageID + "]")
			continue
		}
		shown := c
		shown.FaceUp = true
		style := BlackCardStyle
		if c.IsRed() {
			style = RedCardStyle
		}
		parts[i] = style.Render("[" + shown.ImageID() + "]")
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, strings.Join(parts, " "))
}

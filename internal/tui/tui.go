// Package tui is the interactive table: a Bubble Tea program fed by
// engine snapshots. The engine never blocks on the terminal; every
// state change arrives as a snapshot on a channel and AI turns are
// requested back through the pacer.
package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/cardroomlabs/holdem/internal/balance"
	"github.com/cardroomlabs/holdem/internal/display"
	"github.com/cardroomlabs/holdem/internal/game"
)

// snapshotMsg carries an engine snapshot into the update loop
type snapshotMsg game.Snapshot

// aiTurnMsg asks the update loop to take the pending AI seat's turn.
// The pacer emits it after the think delay.
type aiTurnMsg struct{}

// errMsg carries an engine error into the update loop
type errMsg struct{ err error }

// Model is the Bubble Tea model for a table session
type Model struct {
	table  *game.Table
	svc    balance.Service
	pacer  *game.Pacer
	logger *log.Logger

	logViewport viewport.Model
	raiseInput  textinput.Model

	snapshots chan game.Snapshot
	send      func(tea.Msg)

	snap     game.Snapshot
	hasSnap  bool
	gameLog  []string
	status   string
	raising  bool
	gameOver bool
	quitting bool

	width  int
	height int
}

// New creates a table model. SetTable must be called before Run; the
// presenter has to exist first so the table can be built around it.
func New(svc balance.Service, pacer *game.Pacer, logger *log.Logger) *Model {
	vp := viewport.New(10, 5)

	ti := textinput.New()
	ti.Placeholder = "raise to amount"
	ti.CharLimit = 10
	ti.Width = 20
	ti.Prompt = "raise to $"
	ti.PromptStyle = WarningStyle

	return &Model{
		svc:         svc,
		pacer:       pacer,
		logger:      logger.WithPrefix("tui"),
		logViewport: vp,
		raiseInput:  ti,
		snapshots:   make(chan game.Snapshot, 64),
	}
}

// Presenter returns the callback the engine publishes snapshots to
func (m *Model) Presenter() game.Presenter {
	return game.PresenterFunc(func(s game.Snapshot) {
		m.snapshots <- s
	})
}

// SetTable attaches the table the model drives
func (m *Model) SetTable(t *game.Table) {
	m.table = t
}

// Run starts the program and blocks until the session ends
func (m *Model) Run() error {
	p := tea.NewProgram(m, tea.WithAltScreen())
	m.send = p.Send
	_, err := p.Run()
	return err
}

// Init starts the snapshot listener and deals the first hand
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.waitForSnapshot(), m.startHand())
}

func (m *Model) waitForSnapshot() tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(<-m.snapshots)
	}
}

func (m *Model) startHand() tea.Cmd {
	return func() tea.Msg {
		if _, err := m.table.StartHand(); err != nil {
			return errMsg{err}
		}
		return nil
	}
}

// Update handles messages in the TUI
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case snapshotMsg:
		m.applySnapshot(game.Snapshot(msg))
		cmds = append(cmds, m.waitForSnapshot())

	case aiTurnMsg:
		m.advanceAI()

	case errMsg:
		if errors.Is(msg.err, game.ErrGameOver) {
			m.gameOver = true
			m.appendLog(ErrorStyle.Render("Game over: fewer than two funded seats remain."))
			m.status = "press q to leave the table"
		} else if msg.err != nil {
			m.status = msg.err.Error()
		}

	case tea.KeyMsg:
		if cmd := m.handleKey(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
		if m.quitting {
			return m, tea.Sequence(tea.ClearScreen, tea.Quit)
		}
	}

	// Keys are routed explicitly above; everything else still reaches
	// the viewport (resize, mouse).
	if _, isKey := msg.(tea.KeyMsg); !isKey {
		var cmd tea.Cmd
		m.logViewport, cmd = m.logViewport.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if m.raising {
		switch msg.String() {
		case "enter":
			amount, err := strconv.Atoi(strings.TrimSpace(m.raiseInput.Value()))
			if err != nil {
				m.status = "raise amount must be a number"
				return nil
			}
			m.raising = false
			m.raiseInput.Blur()
			m.raiseInput.SetValue("")
			m.act(game.Raise, amount)
		case "esc":
			m.raising = false
			m.raiseInput.Blur()
			m.raiseInput.SetValue("")
			m.status = ""
		default:
			var cmd tea.Cmd
			m.raiseInput, cmd = m.raiseInput.Update(msg)
			return cmd
		}
		return nil
	}

	switch msg.String() {
	case "ctrl+c", "q":
		m.quit()
	case "f":
		m.act(game.Fold, 0)
	case "c":
		if m.humanToCall() > 0 {
			m.act(game.Call, 0)
		} else {
			m.act(game.Check, 0)
		}
	case "r":
		if m.humanActing() {
			m.raising = true
			m.raiseInput.Focus()
			m.status = ""
			return textinput.Blink
		}
	case "a":
		m.act(game.AllIn, 0)
	case "n":
		if m.hasSnap && m.snap.Phase == game.Settled && !m.gameOver {
			return m.startHand()
		}
	case "up", "k":
		m.logViewport.ScrollUp(1)
	case "down", "j":
		m.logViewport.ScrollDown(1)
	case "pgup":
		m.logViewport.HalfPageUp()
	case "pgdown":
		m.logViewport.HalfPageDown()
	}
	return nil
}

func (m *Model) quit() {
	m.pacer.Stop()
	if h := m.table.Hand(); h != nil && h.Street() < game.Settled {
		h.Abandon()
	}
	m.quitting = true
}

// applySnapshot folds a fresh snapshot into the display state, derives
// log entries from the transition, and schedules the AI when an AI seat
// is up next.
func (m *Model) applySnapshot(s game.Snapshot) {
	prevPhase := m.snap.Phase
	first := !m.hasSnap
	m.snap = s
	m.hasSnap = true

	if first || s.Phase != prevPhase {
		m.logStreet(s, first || prevPhase == game.Settled)
	}

	if s.ActingSeat >= 0 && !s.Players[s.ActingSeat].Human {
		seat := s.ActingSeat
		m.pacer.Schedule(func() {
			if m.send != nil {
				m.send(aiTurnMsg{})
			}
		})
		m.logger.Debug("scheduled ai turn", "seat", seat)
	}

	m.logViewport.SetContent(strings.Join(m.gameLog, "\n"))
	if m.logViewport.Height > 0 {
		m.logViewport.GotoBottom()
	}
}

func (m *Model) logStreet(s game.Snapshot, newHand bool) {
	switch s.Phase {
	case game.Preflop:
		if newHand {
			m.appendLog(HandInfoStyle.Render("--- new hand ---"))
			if seat := m.humanSeat(); seat >= 0 {
				m.appendLog("Your cards: " + display.Cards(s.Players[seat].HoleCards))
			}
		}
	case game.Flop, game.Turn, game.River:
		m.appendLog(fmt.Sprintf("%s: %s", s.Phase, display.Cards(s.Community)))
	case game.Showdown:
		m.appendLog(HandInfoStyle.Render("showdown"))
		for _, p := range s.Players {
			if len(p.HoleCards) > 0 && p.Status != game.StatusFolded {
				m.appendLog(fmt.Sprintf("  %s shows %s", p.Name, display.Cards(p.HoleCards)))
			}
		}
	case game.Settled:
		if s.LastResult != "" {
			m.appendLog(SuccessStyle.Render(s.LastResult))
		}
		m.appendLog(HelpStyle.Render(fmt.Sprintf("bankroll $%d • press n for the next hand", m.svc.Balance())))
	}
}

func (m *Model) appendLog(entry string) {
	m.gameLog = append(m.gameLog, entry)
}

// advanceAI takes the pending AI turn. Snapshots the move produces come
// back through the channel like any other transition.
func (m *Model) advanceAI() {
	h := m.table.Hand()
	if h == nil {
		return
	}
	err := h.Advance()
	switch {
	case err == nil, errors.Is(err, game.ErrHandComplete), errors.Is(err, game.ErrHumanTurn):
	default:
		m.logger.Error("ai turn failed", "error", err)
		m.appendLog(ErrorStyle.Render("hand aborted: " + err.Error()))
	}
}

// act submits the human seat's decision. Illegal actions leave the hand
// unchanged and only set the status line.
func (m *Model) act(action game.Action, raiseTo int) {
	h := m.table.Hand()
	seat := m.humanSeat()
	if h == nil || seat < 0 {
		return
	}
	if err := h.PlayerAction(seat, action, raiseTo); err != nil {
		m.status = err.Error()
		return
	}
	m.status = ""
	m.appendLog(fmt.Sprintf("You %s", describeAction(action, raiseTo)))
}

func describeAction(action game.Action, raiseTo int) string {
	if action == game.Raise {
		return fmt.Sprintf("raise to $%d", raiseTo)
	}
	return action.String()
}

func (m *Model) humanSeat() int {
	for _, p := range m.snap.Players {
		if p.Human {
			return p.Seat
		}
	}
	return -1
}

func (m *Model) humanActing() bool {
	seat := m.humanSeat()
	return m.hasSnap && seat >= 0 && m.snap.ActingSeat == seat
}

func (m *Model) humanToCall() int {
	seat := m.humanSeat()
	if seat < 0 {
		return 0
	}
	return m.snap.ToCall - m.snap.Players[seat].StreetBet
}

// View renders the TUI
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 || !m.hasSnap {
		return "Shuffling up..."
	}

	header := HeaderStyle.Render("HOLD'EM")

	actionContent := m.renderActionPane()
	actionHeight := lipgloss.Height(actionContent) + 2

	tablePane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(blurredBorder).
		Padding(0, 1).
		Render(display.Snapshot(m.snap))

	logWidth := m.width - lipgloss.Width(tablePane) - 4
	logHeight := m.height - actionHeight - lipgloss.Height(header) - 2
	if logWidth < 1 {
		logWidth = 1
	}
	if logHeight < 1 {
		logHeight = 1
	}
	m.logViewport.Width = logWidth
	m.logViewport.Height = logHeight

	logPane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(blurredBorder).
		Render(m.logViewport.View())

	actionWidth := m.width - 2
	if actionWidth < 1 {
		actionWidth = 1
	}
	border := blurredBorder
	if m.humanActing() {
		border = focusedBorder
	}
	actionPane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Width(actionWidth).
		Render(actionContent)

	topRow := lipgloss.JoinHorizontal(lipgloss.Top, tablePane, logPane)
	return lipgloss.JoinVertical(lipgloss.Top, header, topRow, actionPane)
}

func (m *Model) renderActionPane() string {
	var content strings.Builder

	switch {
	case m.gameOver:
		content.WriteString(ErrorStyle.Render("Game over"))
	case m.raising:
		content.WriteString(m.raiseInput.View())
		content.WriteString("\n")
		content.WriteString(HelpStyle.Render("Enter to submit • Esc to cancel"))
		return content.String()
	case m.humanActing():
		content.WriteString(ActionsStyle.Render("Your turn: " + m.renderAvailableActions()))
	case m.snap.Phase == game.Settled:
		content.WriteString(HandInfoStyle.Render("Hand over."))
	default:
		content.WriteString(HelpStyle.Render("Waiting..."))
	}
	content.WriteString("\n")

	if m.status != "" {
		content.WriteString(ErrorStyle.Render(m.status))
		content.WriteString("\n")
	}
	content.WriteString(HelpStyle.Render("↑↓ scroll log • n next hand • q quit"))
	return content.String()
}

func (m *Model) renderAvailableActions() string {
	actions := []string{ErrorStyle.Render("[f]old")}
	if toCall := m.humanToCall(); toCall > 0 {
		actions = append(actions, SuccessStyle.Render(fmt.Sprintf("[c]all $%d", toCall)))
	} else {
		actions = append(actions, SuccessStyle.Render("[c]heck"))
	}
	actions = append(actions,
		WarningStyle.Render("[r]aise"),
		WarningStyle.Render("[a]ll-in"))
	return strings.Join(actions, " ")
}

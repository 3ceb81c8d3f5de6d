// Package display renders engine snapshots for terminal output. It is
// shared by the interactive TUI and the simulator's verbose mode; all
// game rules live in the game package.
package display

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/cardroomlabs/holdem/internal/deck"
	"github.com/cardroomlabs/holdem/internal/game"
)

var (
	phaseStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1).
			Bold(true)

	potStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true)

	redCardStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true)

	blackCardStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Bold(true)

	actingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFEAA7")).
			Bold(true)
)

// Card renders a single card with suit coloring
func Card(c deck.Card) string {
	if c.IsRed() {
		return redCardStyle.Render(c.String())
	}
	return blackCardStyle.Render(c.String())
}

// Cards renders a card sequence separated by spaces
func Cards(cards []deck.Card) string {
	if len(cards) == 0 {
		return mutedStyle.Render("--")
	}
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = Card(c)
	}
	return strings.Join(parts, " ")
}

// Snapshot renders a full table view of the given snapshot
func Snapshot(s game.Snapshot) string {
	var b strings.Builder

	b.WriteString(phaseStyle.Render(strings.ToUpper(s.Phase.String())))
	b.WriteString("  ")
	b.WriteString(potStyle.Render(fmt.Sprintf("pot %d", s.Pot)))
	if s.ToCall > 0 {
		b.WriteString(mutedStyle.Render(fmt.Sprintf("  to call %d", s.ToCall)))
	}
	b.WriteString("\n\n")

	b.WriteString("board  ")
	b.WriteString(Cards(s.Community))
	b.WriteString("\n\n")

	for _, p := range s.Players {
		b.WriteString(seatLine(p, s.ActingSeat))
		b.WriteString("\n")
	}

	if s.LastResult != "" {
		b.WriteString("\n")
		b.WriteString(resultStyle.Render(s.LastResult))
		b.WriteString("\n")
	}

	return b.String()
}

func seatLine(p game.SeatSnapshot, actingSeat int) string {
	marker := "  "
	if p.Seat == actingSeat {
		marker = actingStyle.Render("> ")
	}

	var badges []string
	if p.Dealer {
		badges = append(badges, "D")
	}
	if p.SmallBlind {
		badges = append(badges, "SB")
	}
	if p.BigBlind {
		badges = append(badges, "BB")
	}
	badge := ""
	if len(badges) > 0 {
		badge = mutedStyle.Render(" [" + strings.Join(badges, " ") + "]")
	}

	line := fmt.Sprintf("%s%-8s %5d chips", marker, p.Name, p.Chips)
	if p.StreetBet > 0 {
		line += fmt.Sprintf("  bet %d", p.StreetBet)
	}
	if len(p.HoleCards) > 0 {
		line += "  " + Cards(p.HoleCards)
	}
	switch p.Status {
	case game.StatusFolded:
		line += mutedStyle.Render("  folded")
	case game.StatusAllIn:
		line += resultStyle.Render("  all-in")
	case game.StatusSittingOut:
		line += mutedStyle.Render("  sitting out")
	}
	return line + badge
}

package game

import (
	"errors"
	"io"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/cardroomlabs/holdem/internal/deck"
)

func testLogger() *log.Logger {
	return log.New(io.Discard)
}

func testConfig(players int) Config {
	return Config{NumPlayers: players, StartingChips: 1000, SmallBlind: 10, BigBlind: 20}
}

func newSeats(chips ...int) []*Player {
	players := make([]*Player, len(chips))
	for i, c := range chips {
		players[i] = &Player{Seat: i, Name: string(rune('A' + i)), Chips: c, Status: StatusActive}
	}
	players[0].Human = true
	players[0].Name = "You"
	return players
}

// stackedHand deals a hand with a scripted deck. Cards are consumed hole
// cards first in seat order, then burn+flop, burn+turn, burn+river.
func stackedHand(t *testing.T, players []*Player, button int, cfg Config, cards string) *Hand {
	t.Helper()
	h, err := newHand(players, button, cfg, deck.NewStacked(deck.MustParseCards(cards)), nil,
		nil, nil, testLogger())
	if err != nil {
		t.Fatalf("newHand failed: %v", err)
	}
	return h
}

// Two seats, blinds 10/20: the small blind folds pre-flop and the big
// blind takes the 30-chip pot without showdown. Chips are conserved:
// the folder keeps 990, the winner ends on 1010.
func TestEarlyFoldAwardsBlinds(t *testing.T) {
	players := newSeats(1000, 1000)
	h := stackedHand(t, players, 0, testConfig(2),
		"AsKs"+"QdJd"+"2c"+"3c4c5c"+"6c"+"7c"+"8c"+"9c")

	// Heads-up: the button posts the small blind and acts first.
	if h.ActingSeat() != 0 {
		t.Fatalf("expected seat 0 to act first, got %d", h.ActingSeat())
	}
	if got := h.Pot(); got != 30 {
		t.Fatalf("expected pot 30 after blinds, got %d", got)
	}

	if err := h.PlayerAction(0, Fold, 0); err != nil {
		t.Fatalf("fold failed: %v", err)
	}

	if h.Street() != Settled {
		t.Fatalf("expected hand settled, got %s", h.Street())
	}
	if players[0].Chips != 990 {
		t.Errorf("folder should keep 990, got %d", players[0].Chips)
	}
	if players[1].Chips != 1010 {
		t.Errorf("winner should hold 1010, got %d", players[1].Chips)
	}
	if players[0].Chips+players[1].Chips != 2000 {
		t.Errorf("chips not conserved: %d", players[0].Chips+players[1].Chips)
	}
}

func TestBigBlindKeepsOption(t *testing.T) {
	players := newSeats(1000, 1000)
	h := stackedHand(t, players, 0, testConfig(2),
		"AsKs"+"QdJd"+"2c"+"3c4c5c"+"6c"+"7c"+"8c"+"9c")

	// Small blind completes to 20; the big blind has already matched but
	// has not acted, so the street must stay open for its option.
	if err := h.PlayerAction(0, Call, 0); err != nil {
		t.Fatal(err)
	}
	if h.Street() != Preflop {
		t.Fatalf("street advanced before the big blind acted: %s", h.Street())
	}
	if h.ActingSeat() != 1 {
		t.Fatalf("expected big blind to act, got seat %d", h.ActingSeat())
	}

	if err := h.PlayerAction(1, Check, 0); err != nil {
		t.Fatal(err)
	}
	if h.Street() != Flop {
		t.Fatalf("expected flop after the option check, got %s", h.Street())
	}
	if len(h.Community()) != 3 {
		t.Fatalf("expected 3 community cards, got %d", len(h.Community()))
	}
}

// Checked down to showdown: the stacked board gives seat 0 a pair of
// aces over seat 1's king high.
func TestShowdownAwardsStrongestHand(t *testing.T) {
	players := newSeats(1000, 1000)
	h := stackedHand(t, players, 0, testConfig(2),
		"AsAh"+"KdQd"+"2c"+"3c7s9h"+"6c"+"Ts"+"8c"+"2d")

	actions := []struct {
		seat   int
		action Action
	}{
		{0, Call}, {1, Check}, // preflop
		{1, Check}, {0, Check}, // flop
		{1, Check}, {0, Check}, // turn
		{1, Check}, {0, Check}, // river
	}
	for i, a := range actions {
		if err := h.PlayerAction(a.seat, a.action, 0); err != nil {
			t.Fatalf("action %d failed: %v", i, err)
		}
	}

	if h.Street() != Settled {
		t.Fatalf("expected settled, got %s", h.Street())
	}
	if players[0].Chips != 1020 {
		t.Errorf("winner should hold 1020, got %d", players[0].Chips)
	}
	if players[1].Chips != 980 {
		t.Errorf("loser should hold 980, got %d", players[1].Chips)
	}
}

// Identical hand strength splits the pot exactly, odd chip to the first
// tied seat after the button.
func TestSplitPotWithRemainder(t *testing.T) {
	players := newSeats(100, 100, 100)
	cfg := Config{NumPlayers: 3, StartingChips: 100, SmallBlind: 1, BigBlind: 3}

	// Seats 0 and 2 hold the same ace-king high; the board never pairs
	// either. Seat 1 posts the small blind and folds.
	h := stackedHand(t, players, 0, cfg,
		"AsKh"+"2d3d"+"AdKc"+"2c"+"Qd9s7c"+"6h"+"5h"+"8c"+"3h")

	if err := h.PlayerAction(0, Call, 0); err != nil { // button calls 3
		t.Fatal(err)
	}
	if err := h.PlayerAction(1, Fold, 0); err != nil { // small blind folds
		t.Fatal(err)
	}
	if err := h.PlayerAction(2, Check, 0); err != nil { // big blind option
		t.Fatal(err)
	}

	// Check the remaining streets down.
	for h.Street() != Settled {
		if err := h.PlayerAction(h.ActingSeat(), Check, 0); err != nil {
			t.Fatal(err)
		}
	}

	// Pot is 7 (3 + 3 + 1 folded small blind); split 4/3 with the odd
	// chip to seat 2, the first tied seat after the button.
	if players[2].Chips != 101 {
		t.Errorf("seat 2 should hold 101, got %d", players[2].Chips)
	}
	if players[0].Chips != 100 {
		t.Errorf("seat 0 should hold 100, got %d", players[0].Chips)
	}
	if players[1].Chips != 99 {
		t.Errorf("seat 1 should hold 99, got %d", players[1].Chips)
	}
	if players[0].Chips+players[1].Chips+players[2].Chips != 300 {
		t.Error("split pot did not conserve chips")
	}
}

// When every claimant is all-in the remaining streets deal through to
// showdown with no further actions solicited.
func TestAllInRunout(t *testing.T) {
	players := newSeats(100, 100)
	h := stackedHand(t, players, 0, testConfig(2),
		"AsAh"+"KdKc"+"2c"+"7d9h3s"+"4c"+"5d"+"6c"+"8h")

	if err := h.PlayerAction(0, Raise, 100); err != nil {
		t.Fatalf("all-in raise failed: %v", err)
	}
	if err := h.PlayerAction(1, Call, 0); err != nil {
		t.Fatalf("call failed: %v", err)
	}

	if h.Street() != Settled {
		t.Fatalf("expected automatic runout to settle the hand, got %s", h.Street())
	}
	if players[0].Chips != 200 {
		t.Errorf("aces should scoop 200, got %d", players[0].Chips)
	}
	if players[1].Chips != 0 {
		t.Errorf("kings should bust, got %d", players[1].Chips)
	}
}

func TestActionValidation(t *testing.T) {
	players := newSeats(1000, 1000)
	h := stackedHand(t, players, 0, testConfig(2),
		"AsKs"+"QdJd"+"2c"+"3c4c5c"+"6c"+"7c"+"8c"+"9c")

	if err := h.PlayerAction(1, Check, 0); !errors.Is(err, ErrNotYourTurn) {
		t.Errorf("expected ErrNotYourTurn, got %v", err)
	}
	if err := h.PlayerAction(0, Raise, 30); !errors.Is(err, ErrIllegalAction) {
		t.Errorf("expected ErrIllegalAction for short raise, got %v", err)
	}
	if h.Pot() != 30 {
		t.Errorf("rejected actions must not move chips, pot %d", h.Pot())
	}

	if err := h.PlayerAction(0, Fold, 0); err != nil {
		t.Fatal(err)
	}
	if err := h.PlayerAction(1, Check, 0); !errors.Is(err, ErrHandComplete) {
		t.Errorf("expected ErrHandComplete after settlement, got %v", err)
	}
}

func TestAbandonKeepsContributions(t *testing.T) {
	players := newSeats(1000, 1000)
	h := stackedHand(t, players, 0, testConfig(2),
		"AsKs"+"QdJd"+"2c"+"3c4c5c"+"6c"+"7c"+"8c"+"9c")

	h.Abandon()

	if h.Street() != Settled {
		t.Fatalf("expected settled, got %s", h.Street())
	}
	if players[0].Chips != 990 || players[1].Chips != 980 {
		t.Errorf("abandoned blinds must not be refunded: %d/%d", players[0].Chips, players[1].Chips)
	}
	if err := h.PlayerAction(0, Check, 0); !errors.Is(err, ErrHandComplete) {
		t.Errorf("expected ErrHandComplete, got %v", err)
	}
}

func TestDeckExhaustionAbortsHand(t *testing.T) {
	players := newSeats(1000, 1000)
	_, err := newHand(players, 0, testConfig(2), deck.NewStacked(deck.MustParseCards("AsKs2c")),
		nil, nil, nil, testLogger())
	if !errors.Is(err, deck.ErrExhausted) {
		t.Fatalf("expected deck exhaustion, got %v", err)
	}
}

// Snapshots hide AI hole cards until showdown and expose them after.
func TestSnapshotHoleCardVisibility(t *testing.T) {
	var last Snapshot
	presenter := PresenterFunc(func(s Snapshot) { last = s })

	players := newSeats(1000, 1000)
	cfg := testConfig(2)
	h, err := newHand(players, 0, cfg,
		deck.NewStacked(deck.MustParseCards("AsAh"+"KdQd"+"2c"+"3c7s9h"+"6c"+"Ts"+"8c"+"2d")),
		nil, presenter, nil, testLogger())
	if err != nil {
		t.Fatal(err)
	}

	if len(last.Players[0].HoleCards) != 2 {
		t.Error("human hole cards should be visible")
	}
	if len(last.Players[1].HoleCards) != 0 {
		t.Error("ai hole cards must stay hidden before showdown")
	}
	if last.Phase != Preflop || last.Pot != 30 || last.ActingSeat != 0 {
		t.Errorf("unexpected snapshot: phase %s, pot %d, acting %d", last.Phase, last.Pot, last.ActingSeat)
	}

	for h.Street() != Settled {
		if err := h.PlayerAction(h.ActingSeat(), checkOrCall(h), 0); err != nil {
			t.Fatal(err)
		}
	}

	if len(last.Players[1].HoleCards) != 2 {
		t.Error("ai hole cards should be revealed at settlement")
	}
	if last.LastResult == "" {
		t.Error("settled snapshot should carry a result description")
	}
}

func checkOrCall(h *Hand) Action {
	p := h.players[h.ActingSeat()]
	if p.StreetBet == h.betting.ToCall {
		return Check
	}
	return Call
}

package game

import (
	"errors"
	"testing"

	"github.com/cardroomlabs/holdem/internal/balance"
	"github.com/cardroomlabs/holdem/internal/randutil"
)

func newTestTable(t *testing.T, cfg Config, funds int) (*Table, *balance.InMemory) {
	t.Helper()
	svc := balance.NewInMemory(funds)
	table, err := NewTable(cfg, svc, nil, randutil.New(11), testLogger())
	if err != nil {
		t.Fatalf("NewTable failed: %v", err)
	}
	return table, svc
}

func TestBuyInDebitsBalanceOnce(t *testing.T) {
	table, svc := newTestTable(t, testConfig(2), 5000)

	if svc.Balance() != 4000 {
		t.Fatalf("buy-in should leave 4000, got %d", svc.Balance())
	}

	// Dealing hands must not debit again.
	for i := 0; i < 3; i++ {
		h, err := table.StartHand()
		if err != nil {
			t.Fatalf("hand %d: %v", i, err)
		}
		h.Abandon()
	}
	if svc.Balance() != 4000 {
		t.Errorf("balance re-debited across hands: %d", svc.Balance())
	}
}

func TestInsufficientBalanceRejectedBeforeChipsMove(t *testing.T) {
	svc := balance.NewInMemory(500)
	_, err := NewTable(testConfig(2), svc, nil, randutil.New(11), testLogger())
	if !errors.Is(err, ErrInsufficientBalance) {
		t.Fatalf("expected ErrInsufficientBalance, got %v", err)
	}
	if svc.Balance() != 500 {
		t.Errorf("rejected buy-in mutated the balance: %d", svc.Balance())
	}
}

func TestInvalidConfigRejectedBeforeBuyIn(t *testing.T) {
	svc := balance.NewInMemory(5000)
	cfg := testConfig(2)
	cfg.NumPlayers = 9
	_, err := NewTable(cfg, svc, nil, randutil.New(11), testLogger())
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
	if svc.Balance() != 5000 {
		t.Errorf("invalid config must not touch the balance: %d", svc.Balance())
	}
}

func TestButtonRotatesBetweenHands(t *testing.T) {
	table, _ := newTestTable(t, Config{NumPlayers: 3, StartingChips: 1000, SmallBlind: 10, BigBlind: 20}, 1000)

	h, err := table.StartHand()
	if err != nil {
		t.Fatal(err)
	}
	if table.Button() != 0 {
		t.Fatalf("first hand button should be seat 0, got %d", table.Button())
	}
	h.Abandon()

	h, err = table.StartHand()
	if err != nil {
		t.Fatal(err)
	}
	if table.Button() != 1 {
		t.Errorf("button should rotate to seat 1, got %d", table.Button())
	}
	h.Abandon()
}

func TestStartHandWhileInProgress(t *testing.T) {
	table, _ := newTestTable(t, testConfig(2), 1000)

	if _, err := table.StartHand(); err != nil {
		t.Fatal(err)
	}
	if _, err := table.StartHand(); !errors.Is(err, ErrHandInProgress) {
		t.Errorf("expected ErrHandInProgress, got %v", err)
	}
}

func TestHumanPotAwardCreditsBalance(t *testing.T) {
	table, svc := newTestTable(t, testConfig(2), 1000)

	h, err := table.StartHand()
	if err != nil {
		t.Fatal(err)
	}

	// Heads-up, button 0: the human posts the small blind and the AI
	// seat the big blind. Fold the AI seat to hand the human the pot.
	if h.ActingSeat() == 0 {
		if err := h.PlayerAction(0, Call, 0); err != nil {
			t.Fatal(err)
		}
	}
	if err := h.PlayerAction(1, Fold, 0); err != nil {
		t.Fatal(err)
	}

	if h.Street() != Settled {
		t.Fatalf("expected settled hand, got %s", h.Street())
	}
	// Pot of 40 (both completed to the big blind) credited on top of the
	// post-buy-in balance of 0.
	if svc.Balance() != 40 {
		t.Errorf("expected balance 40 after human win, got %d", svc.Balance())
	}
}

func TestGameOverWhenOneSeatFunded(t *testing.T) {
	table, _ := newTestTable(t, testConfig(2), 1000)

	table.Players()[1].Chips = 0
	if _, err := table.StartHand(); !errors.Is(err, ErrGameOver) {
		t.Errorf("expected ErrGameOver, got %v", err)
	}
}

func TestChipConservationAcrossHands(t *testing.T) {
	table, _ := newTestTable(t, testConfig(2), 1000)

	expected := 2 * testConfig(2).StartingChips
	for i := 0; i < 5; i++ {
		h, err := table.StartHand()
		if err != nil {
			t.Fatal(err)
		}
		for h.Street() != Settled {
			if err := h.PlayerAction(h.ActingSeat(), checkOrCall(h), 0); err != nil {
				t.Fatal(err)
			}
			if table.TotalChips() != expected {
				t.Fatalf("hand %d: chips not conserved mid-hand: %d", i, table.TotalChips())
			}
		}
		if table.TotalChips() != expected {
			t.Fatalf("hand %d: chips not conserved after settlement: %d", i, table.TotalChips())
		}
	}
}

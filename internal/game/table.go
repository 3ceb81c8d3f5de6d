package game

import (
	"fmt"
	"io"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/cardroomlabs/holdem/internal/balance"
	"github.com/cardroomlabs/holdem/internal/deck"
)

// Table owns the seats across hands: the one-time session buy-in, dealer
// rotation, and the lifecycle of each Hand. Seat 0 is the human player;
// the remaining seats are driven by the AI policy.
type Table struct {
	cfg       Config
	players   []*Player
	button    int
	firstHand bool

	balance   balance.Service
	presenter Presenter
	rng       *rand.Rand
	ai        *AIPolicy
	logger    *log.Logger

	hand *Hand
}

// NewTable validates the configuration, debits the human buy-in from the
// balance service and seats the players. No chips move on a validation
// failure.
func NewTable(cfg Config, svc balance.Service, presenter Presenter, rng *rand.Rand, logger *log.Logger) (*Table, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if svc == nil {
		return nil, fmt.Errorf("%w: balance service is required", ErrInvalidConfig)
	}
	if rng == nil {
		return nil, fmt.Errorf("%w: rng is required", ErrInvalidConfig)
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	// One-time session buy-in, read-then-write.
	current := svc.Balance()
	if current < cfg.StartingChips {
		return nil, fmt.Errorf("%w: balance %d, buy-in %d", ErrInsufficientBalance, current, cfg.StartingChips)
	}
	svc.SetBalance(current - cfg.StartingChips)

	players := make([]*Player, cfg.NumPlayers)
	players[0] = &Player{Seat: 0, Name: "You", Human: true, Chips: cfg.StartingChips}
	for i := 1; i < cfg.NumPlayers; i++ {
		players[i] = &Player{Seat: i, Name: fmt.Sprintf("AI %d", i), Chips: cfg.StartingChips}
	}

	logger.Info("table opened",
		"players", cfg.NumPlayers, "startingChips", cfg.StartingChips,
		"blinds", fmt.Sprintf("%d/%d", cfg.SmallBlind, cfg.BigBlind))

	return &Table{
		cfg:       cfg,
		players:   players,
		firstHand: true,
		balance:   svc,
		presenter: presenter,
		rng:       rng,
		ai:        NewAIPolicy(rng, cfg.SmallBlind),
		logger:    logger.WithPrefix("table"),
	}, nil
}

// StartHand shuffles a fresh deck and deals the next hand. The previous
// hand must have settled; the presentation layer calls this as its
// explicit advance signal. The dealer button rotates by one seat between
// hands.
func (t *Table) StartHand() (*Hand, error) {
	if t.hand != nil && t.hand.Street() != Settled {
		return nil, ErrHandInProgress
	}

	funded := 0
	for _, p := range t.players {
		if p.Chips > 0 {
			funded++
		}
	}
	if funded < 2 {
		return nil, ErrGameOver
	}

	if t.firstHand {
		t.firstHand = false
	} else {
		t.button = (t.button + 1) % len(t.players)
	}

	hand, err := newHand(t.players, t.button, t.cfg, deck.New(t.rng), t.ai,
		t.presenter, t.creditHuman, t.logger.WithPrefix("hand"))
	if err != nil {
		return nil, err
	}
	t.hand = hand
	return hand, nil
}

// creditHuman settles a pot share against the balance service when the
// winning seat is the human player. Read-then-write per mutation.
func (t *Table) creditHuman(p *Player, share int) {
	if !p.Human {
		return
	}
	t.balance.SetBalance(t.balance.Balance() + share)
}

// Hand returns the current hand, nil before the first deal
func (t *Table) Hand() *Hand {
	return t.hand
}

// Players returns the seats in order
func (t *Table) Players() []*Player {
	return t.players
}

// Button returns the current dealer seat
func (t *Table) Button() int {
	return t.button
}

// TotalChips sums all stacks plus the live pot, for conservation checks
func (t *Table) TotalChips() int {
	total := 0
	for _, p := range t.players {
		total += p.Chips
	}
	if t.hand != nil && t.hand.Street() != Settled {
		total += t.hand.Pot()
	}
	return total
}

// Package simulator plays unattended hands to exercise the engine and
// gather outcome statistics. Tables run concurrently, each from an
// independent seed derived from the base seed, so runs are reproducible.
package simulator

import (
	"errors"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/cardroomlabs/holdem/internal/balance"
	"github.com/cardroomlabs/holdem/internal/game"
	"github.com/cardroomlabs/holdem/internal/randutil"
)

// maxActionsPerHand bounds the action loop; a healthy hand finishes in
// far fewer, so exceeding it means the engine stalled.
const maxActionsPerHand = 1000

// Config holds the simulation parameters
type Config struct {
	Tables int // concurrent tables
	Hands  int // hands per table
	Seed   int64
	Game   game.Config
	Logger *log.Logger
}

// Results aggregates outcomes across all tables
type Results struct {
	HandsPlayed int
	WinsBySeat  []int // hands in which the seat's stack grew
	NetBySeat   []int // chip delta per seat across the run
}

// Simulator runs poker hand simulations
type Simulator struct {
	config Config
}

// New creates a simulator with the given configuration
func New(config Config) *Simulator {
	return &Simulator{config: config}
}

// Run plays every table to completion and merges the results
func (s *Simulator) Run() (*Results, error) {
	if err := s.config.Game.Validate(); err != nil {
		return nil, err
	}
	if s.config.Tables < 1 || s.config.Hands < 1 {
		return nil, fmt.Errorf("simulation needs at least one table and one hand")
	}

	results := &Results{
		WinsBySeat: make([]int, s.config.Game.NumPlayers),
		NetBySeat:  make([]int, s.config.Game.NumPlayers),
	}
	var mu sync.Mutex

	var g errgroup.Group
	for i := 0; i < s.config.Tables; i++ {
		tableNum := i
		g.Go(func() error {
			r, err := s.runTable(tableNum)
			if err != nil {
				return fmt.Errorf("table %d: %w", tableNum, err)
			}
			mu.Lock()
			results.HandsPlayed += r.HandsPlayed
			for seat := range r.WinsBySeat {
				results.WinsBySeat[seat] += r.WinsBySeat[seat]
				results.NetBySeat[seat] += r.NetBySeat[seat]
			}
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (s *Simulator) runTable(tableNum int) (*Results, error) {
	cfg := s.config.Game
	logger := s.config.Logger
	if logger == nil {
		logger = log.Default()
	}
	logger = logger.WithPrefix(fmt.Sprintf("sim-%d", tableNum))

	// Every table gets its own seed stream so tables are independent but
	// the whole run replays from one base seed.
	rng := randutil.New(s.config.Seed + int64(tableNum))
	svc := balance.NewInMemory(cfg.StartingChips)

	table, err := game.NewTable(cfg, svc, nil, rng, logger)
	if err != nil {
		return nil, err
	}

	// The human seat is scripted with the same policy the AI seats use.
	seatZero := game.NewAIPolicy(randutil.New(s.config.Seed+int64(tableNum)+7919), cfg.SmallBlind)

	results := &Results{
		WinsBySeat: make([]int, cfg.NumPlayers),
		NetBySeat:  make([]int, cfg.NumPlayers),
	}
	expectedChips := cfg.NumPlayers * cfg.StartingChips

	for handNum := 0; handNum < s.config.Hands; handNum++ {
		hand, err := table.StartHand()
		if errors.Is(err, game.ErrGameOver) {
			break
		}
		if err != nil {
			return nil, err
		}

		before := stacks(table)
		if err := playHand(table, hand, seatZero); err != nil {
			return nil, fmt.Errorf("hand %d: %w", handNum, err)
		}

		if total := table.TotalChips(); total != expectedChips {
			return nil, fmt.Errorf("hand %d: chips not conserved: %d != %d", handNum, total, expectedChips)
		}

		results.HandsPlayed++
		after := stacks(table)
		for seat := range after {
			delta := after[seat] - before[seat]
			results.NetBySeat[seat] += delta
			if delta > 0 {
				results.WinsBySeat[seat]++
			}
		}
		logger.Debug("hand complete", "hand", handNum, "result", hand.Result())
	}

	return results, nil
}

// playHand drives the hand to settlement, scripting the human seat with
// the given policy and advancing AI seats directly.
func playHand(table *game.Table, hand *game.Hand, seatZero *game.AIPolicy) error {
	for actions := 0; hand.Street() != game.Settled; actions++ {
		if actions > maxActionsPerHand {
			return fmt.Errorf("hand exceeded %d actions, engine stalled", maxActionsPerHand)
		}

		seat := hand.ActingSeat()
		if seat < 0 {
			return fmt.Errorf("no acting seat on unsettled street %s", hand.Street())
		}

		if p := table.Players()[seat]; p.Human {
			action, raiseTo := seatZero.Decide(p, hand.ToCall())
			if err := hand.PlayerAction(seat, action, raiseTo); err != nil {
				return err
			}
			continue
		}
		if err := hand.Advance(); err != nil {
			return err
		}
	}
	return nil
}

func stacks(table *game.Table) []int {
	players := table.Players()
	out := make([]int, len(players))
	for i, p := range players {
		out[i] = p.Chips
	}
	return out
}

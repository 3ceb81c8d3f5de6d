package game

import (
	"testing"

	"github.com/cardroomlabs/holdem/internal/randutil"
)

func TestAIDecisionsAreDeterministicPerSeed(t *testing.T) {
	run := func() []Action {
		ai := NewAIPolicy(randutil.New(99), 10)
		actions := make([]Action, 0, 50)
		for i := 0; i < 50; i++ {
			p := newTestPlayer(0, 1000)
			action, _ := ai.Decide(p, 20)
			actions = append(actions, action)
		}
		return actions
	}

	a, b := run(), run()
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("decision %d differs across identical seeds: %s vs %s", i, a[i], b[i])
		}
	}
}

func TestAICheckedToNeverFolds(t *testing.T) {
	ai := NewAIPolicy(randutil.New(1), 10)

	for i := 0; i < 200; i++ {
		p := newTestPlayer(0, 1000)
		p.StreetBet = 20
		action, raiseTo := ai.Decide(p, 20)
		switch action {
		case Check:
		case Raise:
			if raiseTo < 2*20 {
				t.Fatalf("ai raise to %d below legal minimum %d", raiseTo, 40)
			}
			if raiseTo > p.Chips+p.StreetBet {
				t.Fatalf("ai raise to %d beyond stack", raiseTo)
			}
		default:
			t.Fatalf("ai must check or raise when nothing to call, got %s", action)
		}
	}
}

func TestAIFacingBetCallsOrFolds(t *testing.T) {
	ai := NewAIPolicy(randutil.New(2), 10)

	for i := 0; i < 200; i++ {
		p := newTestPlayer(0, 1000)
		action, _ := ai.Decide(p, 300)
		if action != Call && action != Fold {
			t.Fatalf("ai facing a bet must call or fold, got %s", action)
		}
	}
}

// Every decision must be legal when applied to the actual round state.
func TestAIDecisionsAlwaysLegal(t *testing.T) {
	rng := randutil.New(3)
	ai := NewAIPolicy(rng, 10)

	for i := 0; i < 1000; i++ {
		chips := 1 + rng.IntN(2000)
		toCall := rng.IntN(300)
		streetBet := 0
		if toCall > 0 && rng.IntN(2) == 0 {
			streetBet = toCall // seat already matched, option situation
		}

		p := newTestPlayer(0, chips)
		p.StreetBet = streetBet

		br := NewBettingRound(1)
		br.ToCall = toCall

		action, raiseTo := ai.Decide(p, toCall)
		if err := br.Apply(p, action, raiseTo); err != nil {
			t.Fatalf("ai picked illegal %s (to %d) with chips %d, bet %d, toCall %d: %v",
				action, raiseTo, chips, streetBet, toCall, err)
		}
	}
}

// A raise when short-stacked must degrade to a check rather than an
// illegal target.
func TestAIShortStackNeverRaisesBeyondStack(t *testing.T) {
	ai := NewAIPolicy(randutil.New(4), 10)

	for i := 0; i < 200; i++ {
		p := newTestPlayer(0, 15)
		p.StreetBet = 20
		action, raiseTo := ai.Decide(p, 20)
		if action == Raise {
			t.Fatalf("15-chip stack cannot reach the 40 minimum, yet raised to %d", raiseTo)
		}
	}
}

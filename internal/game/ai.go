package game

import rand "math/rand/v2"

// AIPolicy is the scripted decision policy for non-human seats. It is
// deliberately naive: probabilities depend only on the cost of calling
// relative to the stack, never on hand strength.
type AIPolicy struct {
	rng        *rand.Rand
	smallBlind int
}

// NewAIPolicy creates a policy using the given RNG, which tests supply
// with a fixed seed to reproduce exact decision sequences.
func NewAIPolicy(rng *rand.Rand, smallBlind int) *AIPolicy {
	if rng == nil {
		panic("rng is required for ai policy")
	}
	return &AIPolicy{rng: rng, smallBlind: smallBlind}
}

// Decide returns the seat's action and, for raises, the target street
// contribution. The returned action is always legal for the given state.
func (ai *AIPolicy) Decide(p *Player, toCall int) (Action, int) {
	callAmount := toCall - p.StreetBet

	if callAmount <= 0 {
		if ai.rng.Float64() < 0.7 {
			return Check, 0
		}
		// The nominal target is one small blind on top of the current
		// bet, lifted to the legal minimum of twice the bet when that is
		// higher. If the stack cannot cover the target, check instead.
		target := max(toCall+ai.smallBlind, 2*toCall)
		if target > p.Chips+p.StreetBet {
			return Check, 0
		}
		return Raise, target
	}

	var callProbability float64
	switch {
	case 10*callAmount <= p.Chips:
		callProbability = 0.8
	case 10*callAmount <= 3*p.Chips:
		callProbability = 0.5
	default:
		callProbability = 0.2
	}

	if ai.rng.Float64() < callProbability {
		return Call, 0
	}
	return Fold, 0
}

package game

import "fmt"

// Street represents a stage of the hand
type Street int

const (
	Preflop Street = iota
	Flop
	Turn
	River
	Showdown
	Settled
)

func (s Street) String() string {
	return [...]string{"preflop", "flop", "turn", "river", "showdown", "settled"}[s]
}

// Action represents a player action
type Action int

const (
	Fold Action = iota
	Check
	Call
	Raise
	AllIn
)

func (a Action) String() string {
	return [...]string{"fold", "check", "call", "raise", "allin"}[a]
}

// BettingRound tracks the state of one street of betting: the amount to
// match and which seats have acted since the last raise. Chip movements
// happen on the players themselves; the round only validates and applies.
type BettingRound struct {
	ToCall int
	acted  []bool
}

// NewBettingRound creates betting state for the given seat count
func NewBettingRound(numSeats int) *BettingRound {
	return &BettingRound{acted: make([]bool, numSeats)}
}

// Reset prepares the round for a new street. Street contributions are
// folded into the pot by the orchestrator before this is called.
func (br *BettingRound) Reset() {
	br.ToCall = 0
	for i := range br.acted {
		br.acted[i] = false
	}
}

// markRaise records that a seat raised: everyone else must act again
func (br *BettingRound) markRaise(seat int) {
	for i := range br.acted {
		br.acted[i] = false
	}
	br.acted[seat] = true
}

// Apply validates the action against the round state and moves chips
// between the player's stack and street contribution. On an illegal
// action it returns an error wrapping ErrIllegalAction and changes
// nothing. raiseTo is the total street contribution a raise targets and
// is ignored for other actions.
func (br *BettingRound) Apply(p *Player, action Action, raiseTo int) error {
	switch action {
	case Fold:
		p.Status = StatusFolded

	case Check:
		if p.StreetBet != br.ToCall {
			return fmt.Errorf("%w: cannot check, must call %d", ErrIllegalAction, br.ToCall-p.StreetBet)
		}

	case Call:
		amount := min(br.ToCall-p.StreetBet, p.Chips)
		p.Chips -= amount
		p.StreetBet += amount
		p.TotalBet += amount
		if p.Chips == 0 {
			p.Status = StatusAllIn
		}

	case Raise:
		if raiseTo < 2*br.ToCall {
			return fmt.Errorf("%w: raise to %d below minimum %d", ErrIllegalAction, raiseTo, 2*br.ToCall)
		}
		if raiseTo <= p.StreetBet {
			return fmt.Errorf("%w: raise to %d does not add chips", ErrIllegalAction, raiseTo)
		}
		if raiseTo > p.Chips+p.StreetBet {
			return fmt.Errorf("%w: raise to %d exceeds stack of %d", ErrIllegalAction, raiseTo, p.Chips+p.StreetBet)
		}
		delta := raiseTo - p.StreetBet
		p.Chips -= delta
		p.StreetBet = raiseTo
		p.TotalBet += delta
		if p.Chips == 0 {
			p.Status = StatusAllIn
		}
		br.ToCall = raiseTo
		br.markRaise(p.Seat)
		return nil

	case AllIn:
		amount := p.Chips
		if amount == 0 {
			return fmt.Errorf("%w: no chips to move all-in", ErrIllegalAction)
		}
		p.Chips = 0
		p.StreetBet += amount
		p.TotalBet += amount
		p.Status = StatusAllIn
		if p.StreetBet > br.ToCall {
			br.ToCall = p.StreetBet
			br.markRaise(p.Seat)
			return nil
		}

	default:
		return fmt.Errorf("%w: unknown action %d", ErrIllegalAction, action)
	}

	br.acted[p.Seat] = true
	return nil
}

// Complete reports whether the street needs no further decisions: at most
// one seat is left in the hand, or every seat that can still act has
// acted since the last raise and matched the current bet. The acted
// requirement is what gives the big blind its pre-flop option.
func (br *BettingRound) Complete(players []*Player) bool {
	inHand := 0
	for _, p := range players {
		if p.InHand() {
			inHand++
		}
	}
	if inHand <= 1 {
		return true
	}

	for _, p := range players {
		if !p.CanAct() {
			continue
		}
		if !br.acted[p.Seat] || p.StreetBet != br.ToCall {
			return false
		}
	}
	return true
}

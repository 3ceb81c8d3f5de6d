package game

import "github.com/cardroomlabs/holdem/internal/deck"

// Status is a seat's standing within the current hand
type Status int

const (
	StatusActive Status = iota
	StatusFolded
	StatusAllIn
	// StatusSittingOut marks a seat with no chips to post; it takes no
	// part in the hand and holds no claim on the pot.
	StatusSittingOut
)

func (s Status) String() string {
	return [...]string{"active", "folded", "all-in", "sitting-out"}[s]
}

// Player is one seat at the table. Chips persist across hands; hole
// cards, bets and status are reset when a new hand is dealt.
type Player struct {
	Seat      int
	Name      string
	Human     bool
	Chips     int
	HoleCards []deck.Card
	StreetBet int // contribution on the current street
	TotalBet  int // contribution across the whole hand
	Status    Status
}

// CanAct returns true if the seat still makes decisions this street
func (p *Player) CanAct() bool {
	return p.Status == StatusActive
}

// InHand returns true if the seat still holds a claim on the pot
func (p *Player) InHand() bool {
	return p.Status == StatusActive || p.Status == StatusAllIn
}

// resetForHand clears the per-hand fields, keeping the chip stack
func (p *Player) resetForHand() {
	p.HoleCards = nil
	p.StreetBet = 0
	p.TotalBet = 0
	if p.Chips > 0 {
		p.Status = StatusActive
	} else {
		p.Status = StatusSittingOut
	}
}

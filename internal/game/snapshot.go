package game

import "github.com/cardroomlabs/holdem/internal/deck"

// SeatSnapshot is the rendered view of one seat
type SeatSnapshot struct {
	Seat       int
	Name       string
	Human      bool
	Chips      int
	StreetBet  int
	TotalBet   int
	Status     Status
	HoleCards  []deck.Card // present only where the phase allows showing them
	Dealer     bool
	SmallBlind bool
	BigBlind   bool
}

// Snapshot is the presentation payload emitted after every state
// transition. The presentation layer owns all rendering and solicits the
// human player's next action from it.
type Snapshot struct {
	Phase      Street
	Community  []deck.Card
	Pot        int
	ToCall     int
	Players    []SeatSnapshot
	ActingSeat int    // -1 when no seat is to act
	LastResult string // winner description, set once the hand settles
}

// Presenter receives snapshots from the engine
type Presenter interface {
	Present(Snapshot)
}

// PresenterFunc adapts a function to the Presenter interface
type PresenterFunc func(Snapshot)

// Present calls f
func (f PresenterFunc) Present(s Snapshot) { f(s) }

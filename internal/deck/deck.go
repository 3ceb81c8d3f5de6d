package deck

import (
	"errors"
	rand "math/rand/v2"
)

// ErrExhausted is returned when a deal or burn is attempted on an empty deck.
// With 2-6 seats a hand consumes at most 20 cards, so hitting this mid-hand
// means an invariant was broken upstream.
var ErrExhausted = errors.New("deck: no cards remaining")

// Deck is an ordered sequence of the 52 unique cards, consumed front to
// back. A deck belongs to exactly one hand; create a fresh one per hand.
type Deck struct {
	cards []Card
}

// New creates a 52-card deck shuffled with the provided RNG.
// The RNG is required so deals are reproducible under test.
func New(rng *rand.Rand) *Deck {
	if rng == nil {
		panic("rng is required for deck creation")
	}

	d := &Deck{cards: make([]Card, 0, 52)}
	for suit := Spades; suit <= Clubs; suit++ {
		for rank := Two; rank <= Ace; rank++ {
			d.cards = append(d.cards, NewCard(suit, rank))
		}
	}
	d.shuffle(rng)
	return d
}

// NewOrdered creates an unshuffled deck for deterministic tests.
func NewOrdered() *Deck {
	d := &Deck{cards: make([]Card, 0, 52)}
	for suit := Spades; suit <= Clubs; suit++ {
		for rank := Two; rank <= Ace; rank++ {
			d.cards = append(d.cards, NewCard(suit, rank))
		}
	}
	return d
}

// NewStacked creates a deck that deals the given cards in order.
// Tests use this to script exact boards and hole cards.
func NewStacked(cards []Card) *Deck {
	d := &Deck{cards: make([]Card, len(cards))}
	copy(d.cards, cards)
	return d
}

// shuffle is a Fisher-Yates shuffle; every permutation is equally likely.
func (d *Deck) shuffle(rng *rand.Rand) {
	for i := len(d.cards) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Draw removes and returns the top card
func (d *Deck) Draw() (Card, error) {
	if len(d.cards) == 0 {
		return Card{}, ErrExhausted
	}
	card := d.cards[0]
	d.cards = d.cards[1:]
	return card, nil
}

// DrawN draws n cards, failing if the deck cannot supply them all
func (d *Deck) DrawN(n int) ([]Card, error) {
	if n > len(d.cards) {
		return nil, ErrExhausted
	}
	cards := make([]Card, n)
	for i := range cards {
		card, err := d.Draw()
		if err != nil {
			return nil, err
		}
		cards[i] = card
	}
	return cards, nil
}

// Burn discards the top card without exposing it
func (d *Deck) Burn() error {
	if len(d.cards) == 0 {
		return ErrExhausted
	}
	d.cards = d.cards[1:]
	return nil
}

// Remaining returns the number of cards left in the deck
func (d *Deck) Remaining() int {
	return len(d.cards)
}

package evaluator

// Category enumerates poker hand categories from weakest to strongest.
type Category int

const (
	HighCard Category = iota + 1
	Pair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
	RoyalFlush
)

// String returns the display name of the category
func (c Category) String() string {
	switch c {
	case HighCard:
		return "High Card"
	case Pair:
		return "Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	case RoyalFlush:
		return "Royal Flush"
	default:
		return "Unknown"
	}
}

// Ranking is the comparable strength of a 5-card hand. Category decides
// first; Tiebreak orders hands within a category. Two hands with the same
// category and tiebreak are an exact tie (split pot).
type Ranking struct {
	Category Category
	Tiebreak int
}

// Compare returns >0 if r beats other, <0 if other beats r, 0 on an exact tie
func (r Ranking) Compare(other Ranking) int {
	if r.Category != other.Category {
		return int(r.Category) - int(other.Category)
	}
	switch {
	case r.Tiebreak > other.Tiebreak:
		return 1
	case r.Tiebreak < other.Tiebreak:
		return -1
	default:
		return 0
	}
}

// Beats returns true if r strictly outranks other
func (r Ranking) Beats(other Ranking) bool {
	return r.Compare(other) > 0
}

// String returns the category name
func (r Ranking) String() string {
	return r.Category.String()
}

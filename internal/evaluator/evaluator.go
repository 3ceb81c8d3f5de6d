package evaluator

import (
	"errors"
	"sort"

	"github.com/cardroomlabs/holdem/internal/deck"
)

// ErrInsufficientCards is returned when fewer than five cards are available
// to evaluate. The orchestrator only evaluates at showdown, where seven are
// guaranteed, but callers may evaluate partial boards in tests.
var ErrInsufficientCards = errors.New("evaluator: need at least five cards")

// tiebreakBase weights sorted ranks positionally. Any base above the
// highest rank value (14) keeps positions from carrying into each other;
// 16 makes the encoded score readable in hex.
const tiebreakBase = 16

// Evaluate returns the strongest ranking among all 5-card subsets of the
// player's hole cards combined with the community cards. The community may
// hold fewer than five cards as long as the combined total is at least five.
func Evaluate(hole, community []deck.Card) (Ranking, error) {
	cards := make([]deck.Card, 0, len(hole)+len(community))
	cards = append(cards, hole...)
	cards = append(cards, community...)

	if len(cards) < 5 {
		return Ranking{}, ErrInsufficientCards
	}

	var best Ranking
	forEachFive(cards, func(five []deck.Card) {
		r := rankFive(five)
		if best.Category == 0 || r.Beats(best) {
			best = r
		}
	})

	return best, nil
}

// forEachFive visits every 5-card subset of cards.
func forEachFive(cards []deck.Card, fn func([]deck.Card)) {
	n := len(cards)
	five := make([]deck.Card, 5)
	for a := 0; a < n-4; a++ {
		for b := a + 1; b < n-3; b++ {
			for c := b + 1; c < n-2; c++ {
				for d := c + 1; d < n-1; d++ {
					for e := d + 1; e < n; e++ {
						five[0], five[1], five[2], five[3], five[4] =
							cards[a], cards[b], cards[c], cards[d], cards[e]
						fn(five)
					}
				}
			}
		}
	}
}

// rankFive classifies exactly five cards into a category and tiebreak score.
func rankFive(five []deck.Card) Ranking {
	flush := true
	for _, c := range five[1:] {
		if c.Suit != five[0].Suit {
			flush = false
			break
		}
	}

	values := make([]int, 5)
	for i, c := range five {
		values[i] = c.Value()
	}
	sort.Sort(sort.Reverse(sort.IntSlice(values)))

	straight, straightHigh := straightHighCard(values)

	// Group ranks by multiplicity, most copies first, higher rank breaking
	// ties. The expanded order is the significance order for the tiebreak.
	ordered := significanceOrder(values, straight, straightHigh)

	var category Category
	counts := multiplicities(values)
	switch {
	case straight && flush && straightHigh == int(deck.Ace):
		category = RoyalFlush
	case straight && flush:
		category = StraightFlush
	case counts[0] == 4:
		category = FourOfAKind
	case counts[0] == 3 && counts[1] == 2:
		category = FullHouse
	case flush:
		category = Flush
	case straight:
		category = Straight
	case counts[0] == 3:
		category = ThreeOfAKind
	case counts[0] == 2 && counts[1] == 2:
		category = TwoPair
	case counts[0] == 2:
		category = Pair
	default:
		category = HighCard
	}

	score := 0
	for _, v := range ordered {
		score = score*tiebreakBase + v
	}

	return Ranking{Category: category, Tiebreak: score}
}

// straightHighCard reports whether the descending values form a straight
// and, if so, the value of its high card. The wheel (A-2-3-4-5) counts as
// a straight with a high card of five.
func straightHighCard(desc []int) (bool, int) {
	for i := 1; i < 5; i++ {
		if desc[i] != desc[0]-i {
			// Wheel: A,5,4,3,2 sorted descending.
			if desc[0] == int(deck.Ace) && desc[1] == 5 && desc[2] == 4 && desc[3] == 3 && desc[4] == 2 {
				return true, 5
			}
			return false, 0
		}
	}
	return true, desc[0]
}

// multiplicities returns the rank group sizes sorted largest first,
// e.g. a full house yields [3 2].
func multiplicities(values []int) []int {
	byRank := map[int]int{}
	for _, v := range values {
		byRank[v]++
	}
	counts := make([]int, 0, len(byRank))
	for _, n := range byRank {
		counts = append(counts, n)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(counts)))
	return counts
}

// significanceOrder expands the five values into tiebreak order: grouped by
// multiplicity (larger groups first, higher ranks first within equal
// multiplicity), so that e.g. a full house scores trips before the pair.
// In the wheel the ace scores as one.
func significanceOrder(values []int, straight bool, straightHigh int) []int {
	if straight {
		ordered := make([]int, 5)
		for i := range ordered {
			ordered[i] = straightHigh - i
		}
		return ordered
	}

	byRank := map[int]int{}
	for _, v := range values {
		byRank[v]++
	}

	type group struct {
		rank  int
		count int
	}
	groups := make([]group, 0, len(byRank))
	for rank, count := range byRank {
		groups = append(groups, group{rank, count})
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].count != groups[j].count {
			return groups[i].count > groups[j].count
		}
		return groups[i].rank > groups[j].rank
	})

	ordered := make([]int, 0, 5)
	for _, g := range groups {
		for i := 0; i < g.count; i++ {
			ordered = append(ordered, g.rank)
		}
	}
	return ordered
}

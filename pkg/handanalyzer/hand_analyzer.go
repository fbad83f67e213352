package handanalyzer

import (
	"errors"
	"sort"

	"holdem-server/pkg/deck"
)

// errors returned by Evaluate
var (
	ErrInsufficientCards = errors.New("at least five cards are required")
	ErrTooManyCards      = errors.New("at most seven cards may be evaluated")
)

// Result is the best five-card hand found in a set of cards
type Result struct {
	Hand Hand `json:"hand"`

	// Tiebreak is [category, group ranks by (count desc, rank desc)...]
	// Straights only carry their high card, which is 5 for the wheel
	Tiebreak []int `json:"tiebreak"`

	// Cards are the five cards that make the hand
	Cards deck.Hand `json:"cards"`
}

// IsRoyalFlush returns true for an ace-high straight flush
func (r Result) IsRoyalFlush() bool {
	return r.Hand == StraightFlush && len(r.Tiebreak) > 1 && r.Tiebreak[1] == deck.Ace
}

// String returns a human label, i.e., "Royal flush"
func (r Result) String() string {
	if r.IsRoyalFlush() {
		return "Royal flush"
	}

	return r.Hand.String()
}

// Evaluate finds the best five-card hand among 5 to 7 cards.
// Every five-card subset is scored and the strongest kept.
func Evaluate(cards []deck.Card) (Result, error) {
	if len(cards) < 5 {
		return Result{}, ErrInsufficientCards
	}

	if len(cards) > 7 {
		return Result{}, ErrTooManyCards
	}

	var best Result
	found := false
	combo := make(deck.Hand, 5)

	var walk func(start, depth int)
	walk = func(start, depth int) {
		if depth == 5 {
			r := scoreFive(combo)
			if !found || Compare(r, best) > 0 {
				best = r
				found = true
			}

			return
		}

		for i := start; i <= len(cards)-(5-depth); i++ {
			combo[depth] = cards[i]
			walk(i+1, depth+1)
		}
	}

	walk(0, 0)
	return best, nil
}

// Compare returns 1 if a beats b, -1 if b beats a, and 0 for an exact tie
func Compare(a, b Result) int {
	if a.Hand != b.Hand {
		if a.Hand > b.Hand {
			return 1
		}

		return -1
	}

	for i := 0; i < len(a.Tiebreak) && i < len(b.Tiebreak); i++ {
		if a.Tiebreak[i] > b.Tiebreak[i] {
			return 1
		} else if a.Tiebreak[i] < b.Tiebreak[i] {
			return -1
		}
	}

	switch {
	case len(a.Tiebreak) > len(b.Tiebreak):
		return 1
	case len(a.Tiebreak) < len(b.Tiebreak):
		return -1
	}

	return 0
}

type rankGroup struct {
	rank  int
	count int
}

func scoreFive(five deck.Hand) Result {
	cards := five.Clone()
	cards.SortByRank()

	flush := true
	for _, c := range cards[1:] {
		if c.Suit != cards[0].Suit {
			flush = false
			break
		}
	}

	counts := make(map[int]int, 5)
	for _, c := range cards {
		counts[c.Rank]++
	}

	groups := make([]rankGroup, 0, len(counts))
	for rank, count := range counts {
		groups = append(groups, rankGroup{rank: rank, count: count})
	}

	sort.Slice(groups, func(i, j int) bool {
		if groups[i].count != groups[j].count {
			return groups[i].count > groups[j].count
		}

		return groups[i].rank > groups[j].rank
	})

	straightHigh := straightHighCard(cards, len(groups))

	var hand Hand
	switch {
	case straightHigh > 0 && flush:
		hand = StraightFlush
	case groups[0].count == 4:
		hand = FourOfAKind
	case groups[0].count == 3 && groups[1].count == 2:
		hand = FullHouse
	case flush:
		hand = Flush
	case straightHigh > 0:
		hand = Straight
	case groups[0].count == 3:
		hand = ThreeOfAKind
	case groups[0].count == 2 && groups[1].count == 2:
		hand = TwoPair
	case groups[0].count == 2:
		hand = OnePair
	default:
		hand = HighCard
	}

	tiebreak := []int{int(hand)}
	if hand == Straight || hand == StraightFlush {
		tiebreak = append(tiebreak, straightHigh)
	} else {
		for _, g := range groups {
			tiebreak = append(tiebreak, g.rank)
		}
	}

	return Result{
		Hand:     hand,
		Tiebreak: tiebreak,
		Cards:    cards,
	}
}

package deck

import (
	"sort"
)

// Hand represents a collection of cards
type Hand []Card

// AddCard adds a card to the hand
func (h *Hand) AddCard(card Card) {
	*h = append(*h, card)
}

// HasCard returns true if the hand contains the specified card
func (h Hand) HasCard(card Card) bool {
	for _, c := range h {
		if c == card {
			return true
		}
	}

	return false
}

// SortByRank sorts the cards high to low, breaking ties by suit
func (h Hand) SortByRank() {
	sort.SliceStable(h, func(i, j int) bool {
		if h[i].Rank != h[j].Rank {
			return h[i].Rank > h[j].Rank
		}

		return h[i].Suit < h[j].Suit
	})
}

func (h Hand) String() string {
	return CardsToString(h)
}

// Clone returns a clone of the hand
func (h Hand) Clone() Hand {
	if h == nil {
		return nil
	}

	h2 := make(Hand, len(h))
	copy(h2, h)

	return h2
}

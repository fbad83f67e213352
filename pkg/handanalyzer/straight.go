package handanalyzer

import "holdem-server/pkg/deck"

// straightHighCard returns the high card of a straight, or 0 if the cards
// are not one. sorted must be ordered high to low.
func straightHighCard(sorted deck.Hand, distinctRanks int) int {
	if distinctRanks != 5 {
		return 0
	}

	if sorted[0].Rank-sorted[4].Rank == 4 {
		return sorted[0].Rank
	}

	// the wheel: A-5-4-3-2 plays as a five-high straight
	if sorted[0].Rank == deck.Ace && sorted[1].Rank == 5 && sorted[4].Rank == 2 {
		return 5
	}

	return 0
}

package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"holdem-server/internal/rng"
)

func TestNewDeck(t *testing.T) {
	a := assert.New(t)
	deck := New()

	a.Len(deck.Cards, 52)
	a.Equal(Card{Rank: 2, Suit: Clubs}, deck.Cards[0])
	a.Equal(Card{Rank: 14, Suit: Spades}, deck.Cards[51])

	seen := make(map[Card]bool)
	for _, card := range deck.Cards {
		a.True(card.IsValid(), card.String())
		a.False(seen[card], "duplicate %s", card)
		seen[card] = true
	}

	a.Equal(New().HashCode(), deck.HashCode())
}

func TestDeck_Shuffle(t *testing.T) {
	a := assert.New(t)

	unshuffled := New().HashCode()

	d1 := New()
	d1.Shuffle(rng.NewSeeded(1))
	d2 := New()
	d2.Shuffle(rng.NewSeeded(1))

	a.Equal(d1.HashCode(), d2.HashCode(), "same seed gives same order")
	a.NotEqual(unshuffled, d1.HashCode())
	a.Len(d1.Cards, 52)

	seen := make(map[Card]bool)
	for _, card := range d1.Cards {
		seen[card] = true
	}
	a.Len(seen, 52, "shuffle is a permutation")

	d3 := New()
	d3.Shuffle(rng.NewSeeded(2))
	a.NotEqual(d1.HashCode(), d3.HashCode())

	// drawing then shuffling restores a full deck
	_, _ = d1.Draw()
	d1.Shuffle(rng.Crypto{})
	a.Len(d1.Cards, 52)
}

type countingGenerator struct {
	calls int
}

func (c *countingGenerator) Intn(n int) int {
	c.calls++
	return n - 1
}

func TestDeck_Shuffle_oneCallPerSlot(t *testing.T) {
	g := &countingGenerator{}
	d := New()
	d.Shuffle(g)

	assert.Equal(t, 51, g.calls)
	// Intn always returning the top index leaves the canonical order
	assert.Equal(t, New().HashCode(), d.HashCode())
}

func TestDeck_Draw(t *testing.T) {
	a := assert.New(t)
	deck := New()

	a.True(deck.CanDraw(52))
	a.False(deck.CanDraw(53))

	drawn := make(map[Card]bool)
	for i := 0; i < 52; i++ {
		card, err := deck.Draw()
		a.NoError(err)
		a.False(drawn[card])
		drawn[card] = true
	}

	a.False(deck.CanDraw(1))

	card, err := deck.Draw()
	a.Equal(Card{}, card)
	a.ErrorIs(err, ErrDeckExhausted)
}

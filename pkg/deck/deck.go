package deck

import (
	"crypto/sha1" // nolint:gosec
	"encoding/hex"
	"errors"

	"holdem-server/internal/rng"
)

// ErrDeckExhausted is an error when Draw() is attempted and there are no more cards
var ErrDeckExhausted = errors.New("deck exhausted")

// Deck represents a playing deck
type Deck struct {
	Cards []Card `json:"-"`
}

// New returns a new deck of cards in canonical order.
// Important! this deck is unshuffled. You must call the Shuffle() method to shuffle the cards
func New() *Deck {
	d := &Deck{}
	d.buildDeck()
	return d
}

func (d *Deck) buildDeck() {
	cards := make([]Card, 0, 52)
	for _, suit := range Suits() {
		for rank := 2; rank <= Ace; rank++ {
			cards = append(cards, Card{
				Rank: rank,
				Suit: suit,
			})
		}
	}

	d.Cards = cards
}

// Shuffle rebuilds the full deck and performs a Fisher-Yates shuffle.
// Every slot consumes exactly one call to the generator.
func (d *Deck) Shuffle(g rng.Generator) {
	// we always want to shuffle from a complete deck
	d.buildDeck()

	for j := len(d.Cards) - 1; j > 0; j-- {
		i := g.Intn(j + 1)

		d.Cards[i], d.Cards[j] = d.Cards[j], d.Cards[i]
	}
}

// HashCode returns a SHA1 hash code of the deck.
func (d *Deck) HashCode() string {
	hash := sha1.New() // nolint:gosec
	for _, card := range d.Cards {
		_, _ = hash.Write([]byte(card.String()))
	}

	return hex.EncodeToString(hash.Sum(nil)[:])
}

// Draw will draw the next card
// If there are no more cards, ErrDeckExhausted is returned along with a zero card.
func (d *Deck) Draw() (Card, error) {
	if len(d.Cards) <= 0 {
		return Card{}, ErrDeckExhausted
	}

	card := d.Cards[0]
	d.Cards = d.Cards[1:]

	return card, nil
}

// CanDraw returns true if there are {want} cards left in the deck
func (d *Deck) CanDraw(want int) bool {
	return len(d.Cards) >= want
}

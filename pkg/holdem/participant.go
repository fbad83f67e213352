package holdem

import "holdem-server/pkg/deck"

// Identity identifies the person claiming a seat
type Identity struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
}

// participant is a seated player
type participant struct {
	id           string
	displayName  string
	seat         int
	stack        int
	bet          int
	cards        deck.Hand
	folded       bool
	allIn        bool
	isDealer     bool
	isSmallBlind bool
	isBigBlind   bool

	// hasActed is cleared at the start of every street and when a raise reopens the action
	hasActed bool
	// inHand is true if the participant was dealt into the current hand
	inHand bool
	// revealed is true once the cards were shown at showdown
	revealed bool
}

func (p *participant) resetForHand() {
	p.bet = 0
	p.cards = nil
	p.folded = false
	p.allIn = false
	p.isDealer = false
	p.isSmallBlind = false
	p.isBigBlind = false
	p.hasActed = false
	p.revealed = false
	p.inHand = p.stack > 0
}

// isContender returns true if the participant can still win the pot
func (p *participant) isContender() bool {
	return p.inHand && !p.folded
}

// canAct returns true if the participant still makes decisions this hand
func (p *participant) canAct() bool {
	return p.isContender() && !p.allIn
}

// commit moves chips from the stack to the street bet
// It is clamped to the stack, and returns the amount moved
func (p *participant) commit(amount int) int {
	if amount > p.stack {
		amount = p.stack
	}

	if amount < 0 {
		amount = 0
	}

	p.stack -= amount
	p.bet += amount
	if p.stack == 0 && p.inHand {
		p.allIn = true
	}

	return amount
}

func (p *participant) snapshot() Player {
	return Player{
		ID:           p.id,
		DisplayName:  p.displayName,
		Seat:         p.seat,
		Stack:        p.stack,
		Bet:          p.bet,
		Cards:        p.cards.Clone(),
		Folded:       p.folded,
		AllIn:        p.allIn,
		IsDealer:     p.isDealer,
		IsSmallBlind: p.isSmallBlind,
		IsBigBlind:   p.isBigBlind,
		HasActed:     p.hasActed,
		InHand:       p.inHand,
		Revealed:     p.revealed,
	}
}

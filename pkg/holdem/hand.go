package holdem

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"holdem-server/pkg/deck"
)

// startHand deals a new hand if at least two funded players are seated
func (t *Table) startHand() {
	t.cancelRestart()

	if t.count(isFunded) < 2 {
		t.phase = PhasePreDeal
		t.activeSeat = -1
		return
	}

	t.handNumber++
	t.handID = uuid.New().String()
	t.deck = deck.New()
	t.deck.Shuffle(t.generator)
	t.community = make(deck.Hand, 0, 5)
	t.collectedPot = 0
	t.currentBet = 0
	t.winners = nil
	t.lastAggressor = -1

	for _, p := range t.seats {
		if p != nil {
			p.resetForHand()
		}
	}

	t.dealerSeat = t.nextSeat(t.dealerSeat, isInHand)
	t.seats[t.dealerSeat].isDealer = true

	// left of the dealer first, the dealer last
	order := t.seatsFrom(t.dealerSeat, isInHand)
	if !t.deck.CanDraw(2*len(order) + 5) {
		panic(fmt.Sprintf("hand %s: %d players cannot be dealt from one deck", t.handID, len(order)))
	}

	for i := 0; i < 2; i++ {
		for _, seat := range order {
			p := t.seats[seat]
			p.cards = append(p.cards, t.mustDraw())
		}
	}

	sbSeat, bbSeat := order[0], order[1]
	if len(order) == 2 {
		// heads-up: the dealer posts the small blind
		sbSeat, bbSeat = t.dealerSeat, order[0]
	}

	sb, bb := t.seats[sbSeat], t.seats[bbSeat]
	sb.isSmallBlind = true
	bb.isBigBlind = true
	sbAmount := sb.commit(t.options.SmallBlind)
	bbAmount := bb.commit(t.options.BigBlind)

	t.currentBet = t.options.BigBlind
	t.lastAggressor = bbSeat
	t.phase = PhasePreFlop

	t.logger.WithFields(logrus.Fields{
		"hand":    t.handID,
		"players": len(order),
		"dealer":  t.dealerSeat,
		"deck":    t.deck.HashCode(),
	}).Info("hand started")
	t.logf(nil, "Hand #%d dealt to %d players", t.handNumber, len(order))
	t.logf([]string{sb.id}, "{} posts the small blind of %d", sbAmount)
	t.logf([]string{bb.id}, "{} posts the big blind of %d", bbAmount)

	t.activeSeat = t.nextSeat(bbSeat, t.needsAction)
	if t.isRoundComplete() {
		t.closeRound()
		t.advanceStreet()
	}
}

// advanceStreet deals the next street after a betting round closed
// The board is run out when fewer than two players can still act
func (t *Table) advanceStreet() {
	for {
		switch t.phase {
		case PhasePreFlop:
			t.phase = PhaseFlop
			t.dealCommunity(3)
		case PhaseFlop:
			t.phase = PhaseTurn
			t.dealCommunity(1)
		case PhaseTurn:
			t.phase = PhaseRiver
			t.dealCommunity(1)
		case PhaseRiver:
			t.showdown()
			return
		default:
			panic(fmt.Sprintf("cannot advance from phase %s", t.phase))
		}

		t.lastAggressor = -1
		t.logf(nil, "%s: %s", phaseTitle(t.phase), t.community.String())

		if t.isRoundComplete() {
			t.closeRound()
			continue
		}

		t.activeSeat = t.nextSeat(t.dealerSeat, t.needsAction)
		return
	}
}

func (t *Table) dealCommunity(n int) {
	for i := 0; i < n; i++ {
		t.community = append(t.community, t.mustDraw())
	}
}

// mustDraw draws a card. With at most ten seats the deck cannot run out
func (t *Table) mustDraw() deck.Card {
	card, err := t.deck.Draw()
	if err != nil {
		panic(fmt.Sprintf("hand %s: %v", t.handID, err))
	}

	return card
}

func phaseTitle(p Phase) string {
	switch p {
	case PhaseFlop:
		return "Flop"
	case PhaseTurn:
		return "Turn"
	case PhaseRiver:
		return "River"
	}

	return p.String()
}

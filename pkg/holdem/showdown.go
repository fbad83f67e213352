package holdem

import (
	"github.com/sirupsen/logrus"

	"holdem-server/pkg/deck"
	"holdem-server/pkg/handanalyzer"
)

const walkover = "Walkover"

// Winner is a player who was paid from the pot
type Winner struct {
	PlayerID string    `json:"playerId"`
	Name     string    `json:"name"`
	Amount   int       `json:"amount"`
	Hand     string    `json:"hand"`
	Cards    deck.Hand `json:"cards"`
}

// showdown pays the pot to the best hand(s) and schedules the next hand
func (t *Table) showdown() {
	t.closeRound()
	t.phase = PhaseShowdown

	contenders := t.seatsFrom(t.dealerSeat, isContender)
	switch len(contenders) {
	case 0:
		t.logger.WithField("hand", t.handID).Error("showdown without contenders")
	case 1:
		t.payWalkover(t.seats[contenders[0]])
	default:
		t.payShowdown(contenders)
	}

	t.settleLosers()
	t.scheduleRestart(t.options.ShowdownDelay)
}

// endHandEarly ends the hand when a departure leaves a single contender
func (t *Table) endHandEarly() {
	t.closeRound()

	if seat := t.nextSeat(t.dealerSeat, isContender); seat >= 0 {
		t.payWalkover(t.seats[seat])
	}

	t.settleLosers()
	t.phase = PhasePreDeal
	t.logf(nil, "Hand #%d ended early", t.handNumber)
	t.scheduleRestart(t.options.EarlyEndDelay)
}

func (t *Table) payWalkover(p *participant) {
	amount := t.collectedPot
	t.collectedPot = 0
	p.stack += amount

	t.winners = []Winner{{
		PlayerID: p.id,
		Name:     p.displayName,
		Amount:   amount,
		Hand:     walkover,
	}}

	t.settle(p)
	t.logf([]string{p.id}, "{} wins %d uncontested", amount)
}

type evaluated struct {
	seat   int
	result handanalyzer.Result
}

// payShowdown splits the pot between the best hands
// contenders must be in clockwise order starting left of the dealer, which is
// the order remainder chips are handed out in
func (t *Table) payShowdown(contenders []int) {
	hands := make([]evaluated, 0, len(contenders))
	for _, seat := range contenders {
		p := t.seats[seat]
		cards := make(deck.Hand, 0, len(p.cards)+len(t.community))
		cards = append(cards, p.cards...)
		cards = append(cards, t.community...)

		result, err := handanalyzer.Evaluate(cards)
		if err != nil {
			panic(err)
		}

		p.revealed = true
		hands = append(hands, evaluated{seat: seat, result: result})
	}

	best := hands[0].result
	for _, h := range hands[1:] {
		if handanalyzer.Compare(h.result, best) > 0 {
			best = h.result
		}
	}

	winners := make([]evaluated, 0, len(hands))
	for _, h := range hands {
		if handanalyzer.Compare(h.result, best) == 0 {
			winners = append(winners, h)
		}
	}

	pot := t.collectedPot
	t.collectedPot = 0
	shares := splitPot(pot, len(winners))

	t.winners = make([]Winner, len(winners))
	for i, w := range winners {
		p := t.seats[w.seat]
		p.stack += shares[i]

		t.winners[i] = Winner{
			PlayerID: p.id,
			Name:     p.displayName,
			Amount:   shares[i],
			Hand:     w.result.String(),
			Cards:    w.result.Cards.Clone(),
		}

		t.settle(p)
		t.logf([]string{p.id}, "{} wins %d with %s", shares[i], w.result.String())
	}

	t.logger.WithFields(logrus.Fields{
		"hand":    t.handID,
		"pot":     pot,
		"winners": len(winners),
	}).Info("showdown")
}

// splitPot divides pot into n shares, the first pot%n shares get one extra chip
func splitPot(pot, n int) []int {
	shares := make([]int, n)
	for i := range shares {
		shares[i] = pot / n
		if i < pot%n {
			shares[i]++
		}
	}

	return shares
}

// settleLosers reports the final stack of every player dealt in who was not paid
func (t *Table) settleLosers() {
	paid := make(map[string]bool, len(t.winners))
	for _, w := range t.winners {
		paid[w.PlayerID] = true
	}

	for _, p := range t.seats {
		if p == nil || !p.inHand || paid[p.id] {
			continue
		}

		t.settle(p)
	}
}

func (t *Table) settle(p *participant) {
	t.settlements = append(t.settlements, settlement{
		playerID: p.id,
		stack:    p.stack,
	})
}

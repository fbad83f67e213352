package holdem

// apply validates and applies an action for the participant holding the turn
// Nothing is changed when an error is returned
func (t *Table) apply(p *participant, a Action) error {
	switch a := a.(type) {
	case Fold:
		p.folded = true
		t.logf([]string{p.id}, "{} folds")
	case Check:
		if p.bet != t.currentBet {
			return ErrCannotCheck
		}

		t.logf([]string{p.id}, "{} checks")
	case Call:
		owed := t.currentBet - p.bet
		amount := p.commit(owed)
		if p.allIn {
			t.logf([]string{p.id}, "{} calls %d and is all-in", amount)
		} else {
			t.logf([]string{p.id}, "{} calls %d", amount)
		}
	case Raise:
		if a.Amount <= t.currentBet || a.Amount > p.bet+p.stack {
			return ErrInvalidRaise
		}

		p.commit(a.Amount - p.bet)
		t.currentBet = a.Amount
		t.lastAggressor = p.seat
		t.reopenAction(p)

		if p.allIn {
			t.logf([]string{p.id}, "{} raises to %d and is all-in", a.Amount)
		} else {
			t.logf([]string{p.id}, "{} raises to %d", a.Amount)
		}
	default:
		return ErrUnknownAction
	}

	p.hasActed = true
	return nil
}

// reopenAction makes every other active participant act again
func (t *Table) reopenAction(raiser *participant) {
	for _, p := range t.seats {
		if p != nil && p != raiser && p.canAct() {
			p.hasActed = false
		}
	}
}

// needsAction returns true if the participant must still act this street
func (t *Table) needsAction(p *participant) bool {
	return p.canAct() && (!p.hasActed || p.bet < t.currentBet)
}

// isRoundComplete returns true when no more betting can happen on this street
func (t *Table) isRoundComplete() bool {
	if t.count(isContender) <= 1 {
		return true
	}

	actors := t.seatsFrom(-1, canAct)
	pending := false
	for _, seat := range actors {
		if t.needsAction(t.seats[seat]) {
			pending = true
			break
		}
	}

	if !pending {
		return true
	}

	// a lone player left to act who already covers the bet has nobody to bet against
	if len(actors) == 1 && t.seats[actors[0]].bet >= t.currentBet {
		return true
	}

	return false
}

// closeRound sweeps the street bets into the pot
func (t *Table) closeRound() {
	for _, p := range t.seats {
		if p == nil {
			continue
		}

		t.collectedPot += p.bet
		p.bet = 0
		p.hasActed = false
	}

	t.currentBet = 0
	t.activeSeat = -1
}

// afterAction moves the hand forward once an action was applied
func (t *Table) afterAction() {
	if t.count(isContender) <= 1 {
		t.closeRound()
		t.showdown()
		return
	}

	if t.isRoundComplete() {
		t.closeRound()
		t.advanceStreet()
		return
	}

	t.activeSeat = t.nextSeat(t.activeSeat, t.needsAction)
}

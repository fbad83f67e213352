package holdem

// seatPlayer places the participant in the lowest empty seat
func (t *Table) seatPlayer(p *participant) error {
	for i, s := range t.seats {
		if s == nil {
			p.seat = i
			t.seats[i] = p
			return nil
		}
	}

	return ErrTableFull
}

// vacateSeat frees a seat, other seats keep their index
func (t *Table) vacateSeat(seat int) {
	t.seats[seat] = nil
}

func (t *Table) participantByID(id string) *participant {
	for _, p := range t.seats {
		if p != nil && p.id == id {
			return p
		}
	}

	return nil
}

// nextSeat returns the first seat clockwise after from that matches.
// It returns -1 when no seat matches. from may be -1.
func (t *Table) nextSeat(from int, match func(p *participant) bool) int {
	n := len(t.seats)
	for i := 1; i <= n; i++ {
		seat := (from + i + n) % n
		if p := t.seats[seat]; p != nil && match(p) {
			return seat
		}
	}

	return -1
}

// seatsFrom returns matching seats in clockwise order beginning after from
func (t *Table) seatsFrom(from int, match func(p *participant) bool) []int {
	n := len(t.seats)
	seats := make([]int, 0, n)
	for i := 1; i <= n; i++ {
		seat := (from + i + n) % n
		if p := t.seats[seat]; p != nil && match(p) {
			seats = append(seats, seat)
		}
	}

	return seats
}

func (t *Table) count(match func(p *participant) bool) int {
	n := 0
	for _, p := range t.seats {
		if p != nil && match(p) {
			n++
		}
	}

	return n
}

func isFunded(p *participant) bool {
	return p.stack > 0
}

func isInHand(p *participant) bool {
	return p.inHand
}

func isContender(p *participant) bool {
	return p.isContender()
}

func canAct(p *participant) bool {
	return p.canAct()
}

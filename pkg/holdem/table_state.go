package holdem

import (
	"time"

	"holdem-server/pkg/deck"
)

// Player is a point-in-time copy of a seated player
type Player struct {
	ID           string    `json:"id"`
	DisplayName  string    `json:"displayName"`
	Seat         int       `json:"seat"`
	Stack        int       `json:"stack"`
	Bet          int       `json:"bet"`
	Cards        deck.Hand `json:"cards"`
	Folded       bool      `json:"folded"`
	AllIn        bool      `json:"allIn"`
	IsDealer     bool      `json:"isDealer"`
	IsSmallBlind bool      `json:"isSmallBlind"`
	IsBigBlind   bool      `json:"isBigBlind"`
	HasActed     bool      `json:"hasActed"`
	InHand       bool      `json:"inHand"`
	Revealed     bool      `json:"revealed"`
}

// State is a point-in-time copy of the table
// It shares no memory with the table and is safe to serialize
type State struct {
	HandID            string       `json:"handId"`
	HandNumber        int          `json:"handNumber"`
	Phase             Phase        `json:"phase"`
	Players           []Player     `json:"players"`
	Community         deck.Hand    `json:"community"`
	Pot               int          `json:"pot"`
	CurrentBet        int          `json:"currentBet"`
	ActivePlayerID    string       `json:"activePlayerId"`
	ActiveSeat        int          `json:"activeSeat"`
	DealerSeat        int          `json:"dealerSeat"`
	LastAggressorSeat int          `json:"lastAggressorSeat"`
	SmallBlind        int          `json:"smallBlind"`
	BigBlind          int          `json:"bigBlind"`
	MaxSeats          int          `json:"maxSeats"`
	Winners           []Winner     `json:"winners"`
	NextHandAt        *time.Time   `json:"nextHandAt"`
	Log               []LogMessage `json:"log"`
}

func (t *Table) state() State {
	players := make([]Player, 0, len(t.seats))
	pot := t.collectedPot
	for _, p := range t.seats {
		if p == nil {
			continue
		}

		players = append(players, p.snapshot())
		pot += p.bet
	}

	var activeID string
	if t.activeSeat >= 0 && t.seats[t.activeSeat] != nil {
		activeID = t.seats[t.activeSeat].id
	}

	var nextHandAt *time.Time
	if t.restart != nil {
		at := t.restart.at
		nextHandAt = &at
	}

	winners := make([]Winner, len(t.winners))
	for i, w := range t.winners {
		w.Cards = w.Cards.Clone()
		winners[i] = w
	}

	logs := make([]LogMessage, len(t.logs))
	for i, l := range t.logs {
		l.PlayerIDs = append([]string(nil), l.PlayerIDs...)
		logs[i] = l
	}

	return State{
		HandID:            t.handID,
		HandNumber:        t.handNumber,
		Phase:             t.phase,
		Players:           players,
		Community:         t.community.Clone(),
		Pot:               pot,
		CurrentBet:        t.currentBet,
		ActivePlayerID:    activeID,
		ActiveSeat:        t.activeSeat,
		DealerSeat:        t.dealerSeat,
		LastAggressorSeat: t.lastAggressor,
		SmallBlind:        t.options.SmallBlind,
		BigBlind:          t.options.BigBlind,
		MaxSeats:          t.options.MaxSeats,
		Winners:           winners,
		NextHandAt:        nextHandAt,
		Log:               logs,
	}
}

// FindPlayer returns the seated player with the id
func (s State) FindPlayer(id string) (Player, bool) {
	for _, p := range s.Players {
		if p.ID == id {
			return p, true
		}
	}

	return Player{}, false
}

// TotalChips returns every chip on the table, stacks and pot
func (s State) TotalChips() int {
	total := s.Pot
	for _, p := range s.Players {
		total += p.Stack
	}

	return total
}

// ForPlayer returns the state as seen by the player
// Other players' cards are hidden unless they were shown at showdown
func (s State) ForPlayer(id string) State {
	players := make([]Player, len(s.Players))
	for i, p := range s.Players {
		if p.ID != id && !p.Revealed {
			p.Cards = nil
		}

		players[i] = p
	}

	s.Players = players
	return s
}

// Package bot contains scripted players used for simulations and tests
package bot

import (
	"math/rand"

	"holdem-server/pkg/holdem"
)

// Strategy picks an action for the player whose turn it is
type Strategy interface {
	Decide(s holdem.State, me holdem.Player) holdem.Action
}

// CallingStation checks when it can and calls everything else
type CallingStation struct{}

// Decide implements Strategy
func (CallingStation) Decide(s holdem.State, me holdem.Player) holdem.Action {
	if me.Bet == s.CurrentBet {
		return holdem.Check{}
	}

	return holdem.Call{}
}

// Random folds, calls and raises at random
// Aggression is the chance of raising, between 0 and 1
type Random struct {
	Rand       *rand.Rand
	Aggression float64
}

// NewRandom returns a Random strategy seeded with seed
func NewRandom(seed int64, aggression float64) *Random {
	return &Random{
		Rand:       rand.New(rand.NewSource(seed)), // nolint:gosec
		Aggression: aggression,
	}
}

// Decide implements Strategy
func (r *Random) Decide(s holdem.State, me holdem.Player) holdem.Action {
	facingBet := me.Bet < s.CurrentBet
	roll := r.Rand.Float64()

	if roll < r.Aggression {
		step := s.BigBlind * (1 + r.Rand.Intn(4))
		amount := s.CurrentBet + step
		if limit := me.Bet + me.Stack; amount > limit {
			amount = limit
		}

		if amount > s.CurrentBet {
			return holdem.Raise{Amount: amount}
		}
	}

	if !facingBet {
		return holdem.Check{}
	}

	if roll > 0.85 {
		return holdem.Fold{}
	}

	return holdem.Call{}
}

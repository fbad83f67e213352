package bot

import (
	"errors"
	"fmt"
	"time"

	"holdem-server/pkg/holdem"
)

// ErrStalled is returned when the table stops making progress
var ErrStalled = errors.New("table stalled")

// Runner plays hands at a table with scripted players
type Runner struct {
	Table     *holdem.Table
	Scheduler *holdem.ManualScheduler

	// Strategies by player id, players without one are calling stations
	Strategies map[string]Strategy

	// OnAction is called after every accepted action
	OnAction func(playerID string, action holdem.Action, s holdem.State)

	// OnHandEnd is called once per finished hand
	OnHandEnd func(s holdem.State)
}

// Play runs until hands hands have finished, or no new hand can be dealt
// It returns the number of hands that finished
func (r *Runner) Play(hands int) (int, error) {
	played := 0

	s := r.Table.GetState()
	lastFinished := s.HandNumber
	if s.ActivePlayerID != "" {
		lastFinished--
	}

	for steps := 0; steps < (hands+1)*1000; steps++ {
		s = r.Table.GetState()

		if s.ActivePlayerID == "" {
			if s.HandNumber > lastFinished {
				lastFinished = s.HandNumber
				played++
				if r.OnHandEnd != nil {
					r.OnHandEnd(s)
				}
			}

			if played >= hands {
				return played, nil
			}

			// the table schedules the next hand, or there is nobody left to play
			if r.Scheduler.Advance(time.Minute) == 0 {
				return played, nil
			}

			continue
		}

		me, ok := s.FindPlayer(s.ActivePlayerID)
		if !ok {
			return played, ErrStalled
		}

		strategy, ok := r.Strategies[me.ID]
		if !ok {
			strategy = CallingStation{}
		}

		action := strategy.Decide(s, me)
		if err := r.Table.PlayerAction(me.ID, action); err != nil {
			return played, fmt.Errorf("%s could not %s: %w", me.ID, action, err)
		}

		if r.OnAction != nil {
			r.OnAction(me.ID, action, r.Table.GetState())
		}
	}

	return played, ErrStalled
}

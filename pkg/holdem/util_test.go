package holdem

import (
	"fmt"
	"io"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"holdem-server/internal/rng"
	"holdem-server/pkg/deck"
)

type recorder struct {
	mu          sync.Mutex
	table       *Table
	changes     int
	totals      []int
	settlements []settlement
}

func (r *recorder) hooks() Hooks {
	return Hooks{
		OnStateChange: func() {
			// hooks run after unlock, so reading the state must not deadlock
			total := r.table.GetState().TotalChips()

			r.mu.Lock()
			defer r.mu.Unlock()
			r.changes++
			r.totals = append(r.totals, total)
		},
		OnBalanceSettled: func(playerID string, stack int) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.settlements = append(r.settlements, settlement{playerID: playerID, stack: stack})
		},
	}
}

func testLogger() logrus.FieldLogger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newTestTable(t *testing.T, opts Options) (*Table, *ManualScheduler, *recorder) {
	t.Helper()

	rec := &recorder{}
	table, err := NewTable(testLogger(), opts, rec.hooks())
	require.NoError(t, err)
	rec.table = table

	sched := NewManualScheduler()
	table.SetScheduler(sched)
	table.SetGenerator(rng.NewSeeded(1))

	return table, sched, rec
}

// seatAndDeal seats players p1..pN in seats 0..N-1 and deals the first hand
func seatAndDeal(t *testing.T, opts Options, stacks ...int) (*Table, *ManualScheduler, *recorder) {
	t.Helper()

	table, sched, rec := newTestTable(t, opts)
	for i, stack := range stacks {
		p := &participant{
			id:          fmt.Sprintf("p%d", i+1),
			displayName: fmt.Sprintf("Player %d", i+1),
			stack:       stack,
		}
		require.NoError(t, table.seatPlayer(p))
	}

	_ = table.exec(func() error {
		table.startHand()
		table.changed = true
		return nil
	})

	return table, sched, rec
}

// rig replaces hole cards and the rest of the deck
func rig(table *Table, board string, holeCards ...string) {
	table.mu.Lock()
	defer table.mu.Unlock()

	for i, cards := range holeCards {
		if p := table.seats[i]; p != nil {
			p.cards = deck.CardsFromString(cards)
		}
	}

	table.deck.Cards = deck.CardsFromString(board)
}

func act(t *testing.T, table *Table, playerID string, a Action) {
	t.Helper()
	require.NoError(t, table.PlayerAction(playerID, a), "%s: %s", playerID, a)
}

func stackOf(t *testing.T, s State, playerID string) int {
	t.Helper()

	p, ok := s.FindPlayer(playerID)
	require.True(t, ok, "player %s is not seated", playerID)
	return p.Stack
}

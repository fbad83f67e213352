package holdem_test

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"holdem-server/internal/rng"
	"holdem-server/pkg/bot"
	"holdem-server/pkg/deck"
	"holdem-server/pkg/holdem"
	"holdem-server/pkg/snapshot"
)

func newBotTable(t *testing.T, seed int64, players int, hooks holdem.Hooks) (*holdem.Table, *bot.Runner) {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	table, err := holdem.NewTable(logger, holdem.DefaultOptions(), hooks)
	require.NoError(t, err)

	sched := holdem.NewManualScheduler()
	table.SetScheduler(sched)
	table.SetGenerator(rng.NewSeeded(seed))

	strategies := make(map[string]bot.Strategy)
	for i := 0; i < players; i++ {
		id := fmt.Sprintf("bot%d", i+1)
		strategies[id] = bot.NewRandom(seed+int64(i), 0.2)
		require.NoError(t, table.AddPlayer(holdem.Identity{ID: id, DisplayName: id}, 1000))
	}

	return table, &bot.Runner{
		Table:      table,
		Scheduler:  sched,
		Strategies: strategies,
	}
}

func assertDistinctCards(t *testing.T, s holdem.State) {
	t.Helper()

	seen := make(map[deck.Card]bool)
	cards := append(deck.Hand{}, s.Community...)
	for _, p := range s.Players {
		cards = append(cards, p.Cards...)
	}

	for _, card := range cards {
		if !assert.False(t, seen[card], "%s was dealt twice", card) {
			return
		}

		seen[card] = true
	}
}

func TestTable_chipConservation(t *testing.T) {
	for seed := int64(1); seed <= 5; seed++ {
		t.Run(fmt.Sprintf("seed %d", seed), func(t *testing.T) {
			a := assert.New(t)
			settled := 0
			table, runner := newBotTable(t, seed, 5, holdem.Hooks{
				OnBalanceSettled: func(string, int) { settled++ },
			})

			runner.OnAction = func(playerID string, action holdem.Action, s holdem.State) {
				a.Equal(5000, s.TotalChips(), "after %s: %s", playerID, action)
				assertDistinctCards(t, s)
				a.LessOrEqual(len(s.Community), 5)
			}

			runner.OnHandEnd = func(s holdem.State) {
				a.Equal(0, s.Pot)
				a.NotEmpty(s.Winners)
			}

			played, err := runner.Play(40)
			require.NoError(t, err)
			a.Greater(played, 0)
			a.GreaterOrEqual(settled, played)
			a.Equal(5000, table.GetState().TotalChips())
		})
	}
}

func TestTable_concurrentReaders(t *testing.T) {
	table, runner := newBotTable(t, 7, 4, holdem.Hooks{})

	done := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-done:
					return
				default:
				}

				s := table.GetState().ForPlayer("bot1")
				if _, err := json.Marshal(s); err != nil {
					t.Error(err)
					return
				}
			}
		}()
	}

	_, err := runner.Play(20)
	close(done)
	wg.Wait()

	assert.NoError(t, err)
	assert.Equal(t, 4000, table.GetState().TotalChips())
}

func TestTable_snapshot(t *testing.T) {
	table, _ := newBotTable(t, 3, 3, holdem.Hooks{})

	snapshot.Validate(t, table.GetState(), snapshot.IgnoreKeys("uuid", "time", "handId", "nextHandAt"))
	snapshot.Validate(t, table.GetState().ForPlayer("bot2"), snapshot.IgnoreKeys("uuid", "time", "handId", "nextHandAt"))
}

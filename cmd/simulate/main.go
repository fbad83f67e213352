package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/sirupsen/logrus"

	"holdem-server/internal/rng"
	"holdem-server/pkg/bot"
	"holdem-server/pkg/holdem"
)

var hands = flag.Int("hands", 200, "the number of hands to play")
var players = flag.Int("players", 6, "the number of bots at the table")
var seed = flag.Int64("seed", 1, "the seed for the deck and the bots")
var buyIn = flag.Int("buyin", 1000, "the chips each bot starts with")
var aggression = flag.Float64("aggression", 0.15, "how often a bot raises, between 0 and 1")
var verbose = flag.Bool("v", false, "log every table event")

func main() {
	flag.Parse()

	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)
	if *verbose {
		logger.SetLevel(logrus.InfoLevel)
	}

	opts := holdem.DefaultOptions()
	if *players > opts.MaxSeats {
		pterm.Error.Printfln("at most %d players can sit at a table", opts.MaxSeats)
		os.Exit(1)
	}

	table, err := holdem.NewTable(logger, opts, holdem.Hooks{})
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}

	scheduler := holdem.NewManualScheduler()
	table.SetScheduler(scheduler)
	table.SetGenerator(rng.NewSeeded(*seed))

	pterm.DefaultHeader.WithFullWidth().Printfln("Simulating %d hands with %d bots (seed %d)", *hands, *players, *seed)

	strategies := make(map[string]bot.Strategy)
	for i := 1; i <= *players; i++ {
		id := "bot-" + strconv.Itoa(i)
		if i%2 == 0 {
			strategies[id] = bot.CallingStation{}
		} else {
			strategies[id] = bot.NewRandom(*seed+int64(i), *aggression)
		}
	}

	// the first hand starts with two bots, the rest wait for the next hand
	for i := 1; i <= *players; i++ {
		id := "bot-" + strconv.Itoa(i)
		if err := table.AddPlayer(holdem.Identity{ID: id, DisplayName: fmt.Sprintf("Bot %d", i)}, *buyIn); err != nil {
			pterm.Error.Println(err)
			os.Exit(1)
		}
	}

	expected := *players * *buyIn
	progress, _ := pterm.DefaultProgressbar.WithTotal(*hands).WithTitle("Playing").Start()

	conserved := true
	runner := &bot.Runner{
		Table:      table,
		Scheduler:  scheduler,
		Strategies: strategies,
		OnHandEnd: func(s holdem.State) {
			if s.TotalChips() != expected {
				conserved = false
			}

			if progress != nil {
				progress.Increment()
			}
		},
	}

	played, err := runner.Play(*hands)
	if progress != nil {
		_, _ = progress.Stop()
	}

	if err != nil {
		pterm.Error.Printfln("stopped after %d hands: %v", played, err)
		os.Exit(1)
	}

	render(table.GetState())

	total := table.GetState().TotalChips()
	if !conserved || total != expected {
		pterm.Error.Printfln("chips were not conserved: expected %d, got %d", expected, total)
		os.Exit(1)
	}

	pterm.Success.Printfln("played %d hands, %d chips conserved", played, total)
}

func render(s holdem.State) {
	stacks := make([]holdem.Player, len(s.Players))
	copy(stacks, s.Players)
	sort.SliceStable(stacks, func(i, j int) bool {
		return stacks[i].Stack > stacks[j].Stack
	})

	data := pterm.TableData{{"Seat", "Player", "Stack", "Net"}}
	for _, p := range stacks {
		data = append(data, []string{
			strconv.Itoa(p.Seat),
			p.DisplayName,
			strconv.Itoa(p.Stack),
			fmt.Sprintf("%+d", p.Stack-*buyIn),
		})
	}

	if err := pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
		pterm.Error.Println(err)
	}
}

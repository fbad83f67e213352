package holdem

import (
	"sync"

	"github.com/sirupsen/logrus"

	"holdem-server/internal/rng"
	"holdem-server/internal/util"
	"holdem-server/pkg/deck"
)

// Hooks are called after the table commits a change
// They run outside the table's lock and may call GetState
type Hooks struct {
	// OnStateChange is called after every committed mutation
	OnStateChange func()

	// OnBalanceSettled is called once for every player dealt into a hand when it ends,
	// winners first
	OnBalanceSettled func(playerID string, stack int)
}

type settlement struct {
	playerID string
	stack    int
}

// Table is a single No-Limit Texas Hold'em table
// All mutations are serialized by a single lock
type Table struct {
	mu        sync.Mutex
	logger    logrus.FieldLogger
	options   Options
	hooks     Hooks
	generator rng.Generator
	scheduler Scheduler

	seats         []*participant
	deck          *deck.Deck
	community     deck.Hand
	collectedPot  int
	currentBet    int
	activeSeat    int
	dealerSeat    int
	lastAggressor int
	phase         Phase
	handID        string
	handNumber    int
	winners       []Winner
	logs          []LogMessage

	restart    *pendingRestart
	generation uint64

	// pending notifications, dispatched after unlock
	changed     bool
	settlements []settlement
}

// NewTable returns an empty table
func NewTable(logger logrus.FieldLogger, opts Options, hooks Hooks) (*Table, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	if logger == nil {
		logger = logrus.StandardLogger()
	}

	return &Table{
		logger:        logger,
		options:       opts,
		hooks:         hooks,
		generator:     rng.Crypto{},
		scheduler:     timeScheduler{},
		seats:         make([]*participant, opts.MaxSeats),
		deck:          deck.New(),
		community:     make(deck.Hand, 0, 5),
		activeSeat:    -1,
		dealerSeat:    -1,
		lastAggressor: -1,
		phase:         PhasePreDeal,
	}, nil
}

// SetGenerator replaces the shuffle's random source
func (t *Table) SetGenerator(g rng.Generator) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.generator = g
}

// SetScheduler replaces the scheduler used for delayed restarts
func (t *Table) SetScheduler(s Scheduler) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.scheduler = s
}

// exec runs fn inside the lock, then dispatches the notifications it queued
func (t *Table) exec(fn func() error) error {
	t.mu.Lock()
	err := fn()
	changed := t.changed
	settlements := t.settlements
	t.changed = false
	t.settlements = nil
	t.mu.Unlock()

	if t.hooks.OnBalanceSettled != nil {
		for _, s := range settlements {
			t.hooks.OnBalanceSettled(s.playerID, s.stack)
		}
	}

	if changed && t.hooks.OnStateChange != nil {
		t.hooks.OnStateChange()
	}

	return err
}

// AddPlayer seats a player with buyIn chips
// Joining again with a seated identity is a no-op that re-broadcasts the state
func (t *Table) AddPlayer(id Identity, buyIn int) error {
	return t.exec(func() error {
		logger := t.logger.WithField("player", id.ID)
		if buyIn <= 0 {
			logger.WithField("buyIn", buyIn).Warn("rejected buy-in")
			return ErrInvalidBuyIn
		}

		if p := t.participantByID(id.ID); p != nil {
			t.changed = true
			return nil
		}

		name := id.DisplayName
		if name == "" {
			name = util.GetRandomName()
		}

		p := &participant{
			id:          id.ID,
			displayName: name,
			stack:       buyIn,
		}

		if err := t.seatPlayer(p); err != nil {
			logger.Warn("table is full")
			return err
		}

		logger.WithField("seat", p.seat).Info("player seated")
		t.logf([]string{p.id}, "{} sat down with %d", buyIn)
		t.changed = true

		if !t.phase.isBetting() && t.count(isFunded) >= 2 {
			t.startHand()
		}

		return nil
	})
}

// PlayerAction applies an action for the player whose turn it is
func (t *Table) PlayerAction(playerID string, a Action) error {
	return t.exec(func() error {
		p := t.participantByID(playerID)
		if p == nil {
			return ErrPlayerNotSeated
		}

		if !t.phase.isBetting() {
			return ErrNoHandInProgress
		}

		if t.activeSeat != p.seat {
			return ErrNotYourTurn
		}

		if err := t.apply(p, a); err != nil {
			return err
		}

		t.changed = true
		t.afterAction()
		return nil
	})
}

// RemovePlayer frees the player's seat and returns their final state
// A player removed mid-hand folds, and their street bet stays in the pot
func (t *Table) RemovePlayer(playerID string) (Player, error) {
	var removed Player
	err := t.exec(func() error {
		p := t.participantByID(playerID)
		if p == nil {
			return ErrPlayerNotSeated
		}

		wasActive := t.phase.isBetting() && t.activeSeat == p.seat
		contending := t.phase.isBetting() && p.isContender()

		if t.phase.isBetting() {
			t.collectedPot += p.bet
			p.bet = 0
			p.folded = true
		}

		t.vacateSeat(p.seat)
		t.logf([]string{p.id}, "{} left the table")
		t.logger.WithField("player", p.id).Info("player left")
		t.changed = true

		if contending && t.count(isContender) <= 1 {
			t.endHandEarly()
		} else if wasActive {
			t.afterAction()
		}

		removed = p.snapshot()
		return nil
	})

	return removed, err
}

// GetState returns a copy of the table's state
func (t *Table) GetState() State {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.state()
}

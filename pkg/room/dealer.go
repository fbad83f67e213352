package room

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"holdem-server/pkg/holdem"
)

// persistTimeout bounds a single balance write
const persistTimeout = 10 * time.Second

// ErrInvalidBuyIn is returned when a join names no usable buy-in
var ErrInvalidBuyIn = errors.New("buyIn must be greater than zero")

// ErrJoinInProgress is returned when another connection of the player is already joining
var ErrJoinInProgress = errors.New("a join is already in progress")

// Store persists the balances of the players at a table
// Stacks are kept per room, a player may sit in several rooms at once
type Store interface {
	// BuyIn moves amount from the player's wallet to the room's table
	BuyIn(ctx context.Context, roomID, playerID string, amount int) error

	// SetTableStack records the player's stack after a hand ends
	SetTableStack(ctx context.Context, roomID, playerID string, stack int) error

	// CashOut returns the player's final stack to their wallet
	CashOut(ctx context.Context, roomID, playerID string, stack int) error
}

// Dealer runs a single room: one table plus the clients watching it
type Dealer struct {
	roomID       string
	table        *holdem.Table
	store        Store
	defaultBuyIn int
	log          logrus.FieldLogger

	clients map[*Client]bool
	// joining holds the ids of players between their buy-in and their seat
	joining map[string]bool
	lock    sync.RWMutex

	execInRunLoop chan func()
	stateChanged  chan bool
	persistQueue  chan func(ctx context.Context)
	close         chan bool
	closeOnce     sync.Once
	persistDone   chan bool
}

// NewDealer creates a new dealer object
// This is called from a blocking state, so it needs to return quickly
func NewDealer(roomID string, opts holdem.Options, store Store, defaultBuyIn int) (*Dealer, error) {
	d := &Dealer{
		roomID:        roomID,
		store:         store,
		defaultBuyIn:  defaultBuyIn,
		log:           logrus.WithField("room", roomID),
		clients:       make(map[*Client]bool),
		joining:       make(map[string]bool),
		execInRunLoop: make(chan func(), 256),
		stateChanged:  make(chan bool, 1),
		persistQueue:  make(chan func(ctx context.Context), 256),
		close:         make(chan bool),
		persistDone:   make(chan bool),
	}

	table, err := holdem.NewTable(d.log, opts, holdem.Hooks{
		OnStateChange:    d.notifyStateChanged,
		OnBalanceSettled: d.balanceSettled,
	})
	if err != nil {
		return nil, err
	}

	d.table = table
	return d, nil
}

// Table returns the table the dealer runs
func (d *Dealer) Table() *holdem.Table {
	return d.table
}

// Clients will return a slice of connected (at the time) clients
func (d *Dealer) Clients() []*Client {
	d.lock.RLock()
	defer d.lock.RUnlock()

	clients := make([]*Client, 0, len(d.clients))
	for client := range d.clients {
		clients = append(clients, client)
	}

	return clients
}

// StartShift starts the run loop and the persistence worker
func (d *Dealer) StartShift() {
	go d.runLoop()
	go d.persistLoop()
}

func (d *Dealer) runLoop() {
	d.log.Debug("creating dealer run loop")
	for {
		select {
		case <-d.stateChanged:
			d.sendGameData()
		case fn := <-d.execInRunLoop:
			fn()
		case <-d.close:
			d.log.Debug("terminating dealer run loop")
			return
		}
	}
}

// persistLoop writes balances one at a time so a cash out is never overtaken by an older stack
func (d *Dealer) persistLoop() {
	defer close(d.persistDone)

	run := func(fn func(ctx context.Context)) {
		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		defer cancel()
		fn(ctx)
	}

	for {
		select {
		case fn := <-d.persistQueue:
			run(fn)
		case <-d.close:
			for {
				select {
				case fn := <-d.persistQueue:
					run(fn)
				default:
					return
				}
			}
		}
	}
}

// EndShift is called when the dealer is no longer needed
// Pending balance writes are flushed before it returns
func (d *Dealer) EndShift() {
	d.closeOnce.Do(func() {
		close(d.close)
	})

	<-d.persistDone
}

// notifyStateChanged coalesces table changes into a single pending broadcast
func (d *Dealer) notifyStateChanged() {
	select {
	case d.stateChanged <- true:
	default:
	}
}

func (d *Dealer) balanceSettled(playerID string, stack int) {
	d.persist(func(ctx context.Context) {
		if err := d.store.SetTableStack(ctx, d.roomID, playerID, stack); err != nil {
			d.log.WithError(err).WithField("player", playerID).Error("could not save table stack")
		}
	})
}

func (d *Dealer) persist(fn func(ctx context.Context)) {
	select {
	case d.persistQueue <- fn:
	case <-d.close:
		d.log.Error("dealer closed, balance write dropped")
	}
}

// AddClient adds a client
// This method must return quickly
func (d *Dealer) AddClient(client *Client) {
	client.setDealer(d)

	d.lock.Lock()
	d.clients[client] = true
	d.lock.Unlock()

	d.execInRunLoop <- func() {
		d.sendGameDataTo(client, d.table.GetState())
	}
}

// RemoveClient removes a client
// When the last connection of a seated player goes away, the player leaves the table
func (d *Dealer) RemoveClient(client *Client) (lastClient bool) {
	d.lock.Lock()
	delete(d.clients, client)
	nClients := len(d.clients)
	stillConnected := false
	for other := range d.clients {
		if other.identity.ID == client.identity.ID {
			stillConnected = true
			break
		}
	}
	d.lock.Unlock()

	if !stillConnected {
		if err := d.leave(client.identity.ID); err != nil && err != holdem.ErrPlayerNotSeated {
			d.log.WithError(err).WithField("player", client.identity.ID).Error("could not remove player")
		}
	}

	return nClients == 0
}

// NOTE: must only be called from the run loop
func (d *Dealer) sendGameData() {
	state := d.table.GetState()
	for _, client := range d.Clients() {
		d.sendGameDataTo(client, state)
	}
}

func (d *Dealer) sendGameDataTo(client *Client, state holdem.State) {
	if !client.Send(&Response{
		Key:  "game",
		Data: state.ForPlayer(client.identity.ID),
	}) {
		d.log.WithField("client", client.String()).Warn("client send buffer is full")
	}
}

// join buys the player in and seats them
// Only one join per player runs at a time, so a seat is never paid for twice
func (d *Dealer) join(c *Client, buyIn int) error {
	playerID := c.identity.ID

	d.lock.Lock()
	if d.joining[playerID] {
		d.lock.Unlock()
		return ErrJoinInProgress
	}

	d.joining[playerID] = true
	d.lock.Unlock()

	defer func() {
		d.lock.Lock()
		delete(d.joining, playerID)
		d.lock.Unlock()
	}()

	if _, seated := d.table.GetState().FindPlayer(playerID); seated {
		d.notifyStateChanged()
		return nil
	}

	if buyIn <= 0 {
		return ErrInvalidBuyIn
	}

	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	if err := d.store.BuyIn(ctx, d.roomID, playerID, buyIn); err != nil {
		return err
	}

	if err := d.table.AddPlayer(c.identity, buyIn); err != nil {
		d.persist(func(ctx context.Context) {
			if err := d.store.CashOut(ctx, d.roomID, playerID, buyIn); err != nil {
				d.log.WithError(err).WithField("player", playerID).Error("could not refund buy-in")
			}
		})

		return err
	}

	return nil
}

// leave removes the player from the table and cashes out their stack
func (d *Dealer) leave(playerID string) error {
	player, err := d.table.RemovePlayer(playerID)
	if err != nil {
		return err
	}

	d.persist(func(ctx context.Context) {
		if err := d.store.CashOut(ctx, d.roomID, playerID, player.Stack); err != nil {
			d.log.WithError(err).WithField("player", playerID).Error("could not cash out")
		}
	})

	return nil
}

// ReceivedMessage is called when a client sends a message to the server
func (d *Dealer) ReceivedMessage(c *Client, msg *PayloadIn) {
	var err error

	switch msg.Action {
	case "join":
		buyIn := d.defaultBuyIn
		if _, found := msg.AdditionalData["buyIn"]; found {
			// a buy-in that is not a whole number is rejected by join
			buyIn, _ = msg.AdditionalData.GetInt("buyIn")
		}

		err = d.join(c, buyIn)
	case "leave":
		err = d.leave(c.identity.ID)
	case "state":
		state := d.table.GetState()
		d.execInRunLoop <- func() {
			d.sendGameDataTo(c, state)
		}
	default:
		amount, _ := msg.AdditionalData.GetInt("amount")

		var action holdem.Action
		action, err = holdem.ActionFromString(msg.Action, amount)
		if err == nil {
			err = d.table.PlayerAction(c.identity.ID, action)
		}
	}

	if err != nil {
		d.log.WithError(err).WithField("client", c.String()).Info("could not perform action")
		c.Send(newErrorResponse(msg.Context, err))
		return
	}

	c.Send(OK(msg.Context))
}

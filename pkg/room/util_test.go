package room

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"holdem-server/pkg/holdem"
)

// fakeStore keeps wallets by player and stacks by room and player
type fakeStore struct {
	mu     sync.Mutex
	wallet map[string]int
	stacks map[string]int
}

func newFakeStore(balances map[string]int) *fakeStore {
	return &fakeStore{
		wallet: balances,
		stacks: make(map[string]int),
	}
}

func stackKey(roomID, playerID string) string {
	return roomID + "/" + playerID
}

func (f *fakeStore) BuyIn(_ context.Context, roomID, playerID string, amount int) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.wallet[playerID] < amount {
		return errors.New("insufficient play money")
	}

	f.wallet[playerID] -= amount
	f.stacks[stackKey(roomID, playerID)] += amount
	return nil
}

func (f *fakeStore) SetTableStack(_ context.Context, roomID, playerID string, stack int) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	// cashed out players are left alone
	if _, ok := f.stacks[stackKey(roomID, playerID)]; ok {
		f.stacks[stackKey(roomID, playerID)] = stack
	}

	return nil
}

func (f *fakeStore) CashOut(_ context.Context, roomID, playerID string, stack int) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.wallet[playerID] += stack
	delete(f.stacks, stackKey(roomID, playerID))
	return nil
}

// balance returns the player's wallet and their stack in the test room
func (f *fakeStore) balance(playerID string) (wallet, stack int) {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.wallet[playerID], f.stacks[stackKey("test-room", playerID)]
}

// gatedStore holds every buy-in until release is closed
type gatedStore struct {
	*fakeStore
	entered chan bool
	release chan bool
}

func newGatedStore(balances map[string]int) *gatedStore {
	return &gatedStore{
		fakeStore: newFakeStore(balances),
		entered:   make(chan bool, 8),
		release:   make(chan bool),
	}
}

func (g *gatedStore) BuyIn(ctx context.Context, roomID, playerID string, amount int) error {
	g.entered <- true
	<-g.release
	return g.fakeStore.BuyIn(ctx, roomID, playerID, amount)
}

func newTestDealer(t *testing.T, store Store) *Dealer {
	t.Helper()

	d, err := NewDealer("test-room", holdem.DefaultOptions(), store, 1000)
	if err != nil {
		t.Fatal(err)
	}

	d.Table().SetScheduler(holdem.NewManualScheduler())
	return d
}

func newTestClient(id string) *Client {
	return NewClient(nil, holdem.Identity{ID: id, DisplayName: "Player " + id}, "test-room")
}

// waitFor reads from the client until a response with the key arrives
func waitFor(t *testing.T, c *Client, key string) *Response {
	t.Helper()

	timeout := time.After(2 * time.Second)
	for {
		select {
		case msg := <-c.SendChan():
			if res, ok := msg.(*Response); ok && res.Key == key {
				return res
			}
		case <-timeout:
			t.Fatalf("timed out waiting for %s", key)
			return nil
		}
	}
}

// send delivers the message and returns the direct status or error response
func send(t *testing.T, d *Dealer, c *Client, action string, data AdditionalData) *Response {
	t.Helper()

	d.ReceivedMessage(c, &PayloadIn{Action: action, AdditionalData: data, Context: action})

	timeout := time.After(2 * time.Second)
	for {
		select {
		case msg := <-c.SendChan():
			if res, ok := msg.(*Response); ok && res.Context == action && (res.Key == "status" || res.Key == "error") {
				return res
			}
		case <-timeout:
			t.Fatalf("timed out waiting for the response to %s", action)
			return nil
		}
	}
}

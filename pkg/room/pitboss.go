package room

import (
	"github.com/sirupsen/logrus"

	"holdem-server/pkg/holdem"
)

// PitBoss is responsible for dispatching players to rooms
type PitBoss struct {
	dealers    map[string]*Dealer
	connect    chan *Client
	disconnect chan *Client

	options      holdem.Options
	store        Store
	defaultBuyIn int
}

// NewPitBoss returns a new dispatch object
// Every room it opens uses the same table options
func NewPitBoss(opts holdem.Options, store Store, defaultBuyIn int) (*PitBoss, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	return &PitBoss{
		dealers:      make(map[string]*Dealer),
		connect:      make(chan *Client, 256),
		disconnect:   make(chan *Client, 256),
		options:      opts,
		store:        store,
		defaultBuyIn: defaultBuyIn,
	}, nil
}

// StartShift starts the PitBoss run loop
func (p *PitBoss) StartShift() {
	go p.runLoop()
}

func (p *PitBoss) runLoop() {
	for {
		select {
		case client := <-p.connect:
			logrus.WithField("player", client.String()).Debug("client connected")
			dealer, found := p.dealers[client.roomID]
			if !found {
				var err error
				dealer, err = NewDealer(client.roomID, p.options, p.store, p.defaultBuyIn)
				if err != nil {
					logrus.WithError(err).WithField("room", client.roomID).Error("could not create dealer")
					continue
				}

				dealer.StartShift()
				p.dealers[client.roomID] = dealer
			}

			dealer.AddClient(client)
		case client := <-p.disconnect:
			logrus.WithField("player", client.String()).Debug("client disconnected")
			dealer, found := p.dealers[client.roomID]
			if !found {
				logrus.WithField("room", client.roomID).WithField("type", "exception").Error("room not found")
				continue
			}

			if dealer.RemoveClient(client) {
				go dealer.EndShift()
				delete(p.dealers, client.roomID)
			}
		}
	}
}

// ClientConnected is called when a client connects to the server
func (p *PitBoss) ClientConnected(client *Client) {
	p.connect <- client
}

// ClientDisconnected is called when a client disconnects from the server
func (p *PitBoss) ClientDisconnected(client *Client) {
	p.disconnect <- client
}

package room

import (
	"fmt"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"holdem-server/pkg/holdem"
)

// Client is a client connected to the server via websockets
type Client struct {
	// Conn is the underlying websocket connection
	Conn *websocket.Conn

	// send is a channel for sending messages to the client
	send chan interface{}

	// Close is a channel for closing the client
	Close chan string

	// CloseError contains the reason why the connection was closed
	CloseError error

	dealer     *Dealer
	dealerLock sync.RWMutex

	identity holdem.Identity
	roomID   string
}

// NewClient returns a new client object
func NewClient(conn *websocket.Conn, identity holdem.Identity, roomID string) *Client {
	return &Client{
		send:     make(chan interface{}, 256),
		Close:    make(chan string),
		Conn:     conn,
		identity: identity,
		roomID:   roomID,
	}
}

// Send send a message to the web client
func (c *Client) Send(msg interface{}) bool {
	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

// SendChan returns a read-only channel
func (c *Client) SendChan() <-chan interface{} {
	return c.send
}

// Identity returns the player the client plays as
func (c *Client) Identity() holdem.Identity {
	return c.identity
}

// String returns a traceable identifier for the player and room
func (c *Client) String() string {
	return fmt.Sprintf("%s:%s", c.identity.ID, c.roomID)
}

// ReceivedMessage is called when the server receives a message from a connected client
func (c *Client) ReceivedMessage(msg *PayloadIn) {
	c.dealerLock.RLock()
	dealer := c.dealer
	c.dealerLock.RUnlock()

	if dealer == nil {
		logrus.WithField("msg", msg).Warn("received message, but dealer not found")
		return
	}

	dealer.ReceivedMessage(c, msg)
}

func (c *Client) setDealer(d *Dealer) {
	c.dealerLock.Lock()
	c.dealer = d
	c.dealerLock.Unlock()
}

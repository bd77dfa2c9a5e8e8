package push

import (
	"encoding/json"
	"errors"
	"sync"

	"github.com/gorilla/websocket"
)

// Event names shared by the front-end and the push endpoint
const (
	EventJoinAdmin     = "joinAdmin"
	EventJoinOrderRoom = "joinOrderRoom"
	EventNewOrder      = "newOrder"
	EventOrderUpdated  = "orderUpdated"
)

// Envelope is the wire frame: an event name plus its JSON payload
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// Handler receives the raw payload of a named event. Handlers run serially
// on the read loop, in delivery order.
type Handler func(data json.RawMessage)

// ErrClosed is returned by Emit after the connection is gone
var ErrClosed = errors.New("push: connection closed")

// Client is the long-lived transport handle: one websocket connection,
// shared by every view of the process, with named event subscriptions. A
// lost connection degrades silently to "no live updates"; only Connected
// changes.
type Client struct {
	mu        sync.Mutex
	conn      *websocket.Conn
	handlers  map[string]Handler
	connected bool
	closed    bool
}

// Dial connects to the push endpoint and starts the read loop
func Dial(url string) (*Client, error) {
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return nil, err
	}
	c := &Client{
		conn:      conn,
		handlers:  make(map[string]Handler),
		connected: true,
	}
	go c.readLoop()
	return c, nil
}

// Connected reports whether the underlying connection is alive
func (c *Client) Connected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connected
}

// On registers the handler for a named event, replacing any previous one
func (c *Client) On(event string, h Handler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handlers[event] = h
}

// Off removes the handler for a named event; removing an absent handler is
// a no-op
func (c *Client) Off(event string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.handlers, event)
}

// Emit sends an event with a JSON-encoded payload. A nil payload sends the
// bare event name.
func (c *Client) Emit(event string, payload any) error {
	var data json.RawMessage
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		data = b
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.connected {
		return ErrClosed
	}
	return c.conn.WriteJSON(Envelope{Event: event, Data: data})
}

// Close releases the connection on all exit paths; calling it more than
// once is safe
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	c.connected = false
	return c.conn.Close()
}

func (c *Client) readLoop() {
	for {
		var env Envelope
		if err := c.conn.ReadJSON(&env); err != nil {
			c.mu.Lock()
			c.connected = false
			c.mu.Unlock()
			return
		}
		c.mu.Lock()
		h := c.handlers[env.Event]
		c.mu.Unlock()
		if h != nil {
			h(env.Data)
		}
	}
}

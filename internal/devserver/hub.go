package devserver

import (
	"encoding/json"
	"log"
	"strings"
	"sync"

	"github.com/gorilla/websocket"

	"bistro/internal/push"
)

// roomAdmin receives every order event; per-customer rooms receive updates
// for their own orders only
const roomAdmin = "admin"

func orderRoom(customer string) string {
	return "order:" + strings.ToLower(customer)
}

type subscriber struct {
	conn *websocket.Conn
	send chan push.Envelope
}

// Hub tracks websocket subscribers by room and fans order events out to
// them
type Hub struct {
	mu    sync.Mutex
	rooms map[string]map[*subscriber]bool
}

func NewHub() *Hub {
	return &Hub{rooms: make(map[string]map[*subscriber]bool)}
}

// Serve owns conn until it closes: it reads join events and forwards
// broadcasts to the connection
func (h *Hub) Serve(conn *websocket.Conn) {
	sub := &subscriber{conn: conn, send: make(chan push.Envelope, 16)}
	go sub.writeLoop()
	defer h.drop(sub)
	for {
		var env push.Envelope
		if err := conn.ReadJSON(&env); err != nil {
			return
		}
		switch env.Event {
		case push.EventJoinAdmin:
			h.join(roomAdmin, sub)
		case push.EventJoinOrderRoom:
			var name string
			if err := json.Unmarshal(env.Data, &name); err != nil {
				continue
			}
			h.join(orderRoom(name), sub)
		}
	}
}

// Broadcast sends an event to every subscriber of room. Slow consumers are
// skipped rather than blocking delivery to the rest.
func (h *Hub) Broadcast(room, event string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		log.Printf("broadcast %s: %v", event, err)
		return
	}
	env := push.Envelope{Event: event, Data: data}
	h.mu.Lock()
	defer h.mu.Unlock()
	for sub := range h.rooms[room] {
		select {
		case sub.send <- env:
		default:
		}
	}
}

func (h *Hub) join(room string, sub *subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.rooms[room] == nil {
		h.rooms[room] = make(map[*subscriber]bool)
	}
	h.rooms[room][sub] = true
}

func (h *Hub) drop(sub *subscriber) {
	h.mu.Lock()
	for room, subs := range h.rooms {
		delete(subs, sub)
		if len(subs) == 0 {
			delete(h.rooms, room)
		}
	}
	close(sub.send)
	h.mu.Unlock()
	sub.conn.Close()
}

func (sub *subscriber) writeLoop() {
	for env := range sub.send {
		if err := sub.conn.WriteJSON(env); err != nil {
			return
		}
	}
}

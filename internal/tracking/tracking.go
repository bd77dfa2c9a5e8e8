package tracking

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"sync"

	"bistro/internal/api"
	"bistro/internal/domain"
	"bistro/internal/push"
)

var statusMessages = map[domain.OrderStatus]string{
	domain.OrderStatusPlaced:    "Your order has been placed!",
	domain.OrderStatusConfirmed: "Your order has been confirmed!",
	domain.OrderStatusPreparing: "Your order is being prepared!",
	domain.OrderStatusCompleted: "Your order is ready for pickup!",
}

// StatusMessage returns the notification text for a status update
func StatusMessage(s domain.OrderStatus) string {
	if m, ok := statusMessages[s]; ok {
		return m
	}
	return "Your order was updated"
}

// Notifier receives the per-status notification raised on every matching
// update
type Notifier func(message string)

// Tracker holds the orders of a single customer, matched case-insensitively
// by name, and keeps them current from customer-scoped push events.
type Tracker struct {
	mu       sync.RWMutex
	customer string
	orders   []domain.Order
	loaded   bool

	client *api.Client
	notify Notifier
}

func NewTracker(customer string, client *api.Client, notify Notifier) *Tracker {
	if notify == nil {
		notify = func(string) {}
	}
	return &Tracker{customer: customer, client: client, notify: notify}
}

// Customer returns the tracked customer name as given
func (t *Tracker) Customer() string { return t.customer }

// Room returns the push room key for this customer
func (t *Tracker) Room() string { return strings.ToLower(t.customer) }

// Load fetches the customer's orders. The server accepts a customerName
// query, but the result is always re-filtered here case-insensitively.
func (t *Tracker) Load(ctx context.Context) error {
	all, err := t.client.List(ctx, t.customer)
	if err != nil {
		return err
	}
	matched := make([]domain.Order, 0, len(all))
	for _, o := range all {
		if strings.EqualFold(o.CustomerName, t.customer) {
			matched = append(matched, o)
		}
	}
	t.mu.Lock()
	t.orders = matched
	t.loaded = true
	t.mu.Unlock()
	return nil
}

// Bind joins the customer's order room and subscribes to updates
func (t *Tracker) Bind(p *push.Client) error {
	p.On(push.EventOrderUpdated, func(data json.RawMessage) {
		var o domain.Order
		if err := json.Unmarshal(data, &o); err != nil {
			log.Printf("orderUpdated: bad payload: %v", err)
			return
		}
		t.ApplyUpdate(o)
	})
	return p.Emit(push.EventJoinOrderRoom, t.Room())
}

// Unbind removes the subscription registered by Bind
func (t *Tracker) Unbind(p *push.Client) {
	p.Off(push.EventOrderUpdated)
}

// ApplyUpdate replaces the matching order in place if it belongs to the
// tracked customer. Updates for other customers never touch the collection;
// matching updates for unknown orders are dropped, not inserted. Every
// matching update raises a per-status notification.
func (t *Tracker) ApplyUpdate(o domain.Order) bool {
	if !strings.EqualFold(o.CustomerName, t.customer) {
		return false
	}
	t.mu.Lock()
	applied := false
	for i := range t.orders {
		if t.orders[i].ID == o.ID {
			t.orders[i] = o
			applied = true
			break
		}
	}
	t.mu.Unlock()
	t.notify(StatusMessage(o.Status))
	return applied
}

// Orders returns a copy of the tracked collection
func (t *Tracker) Orders() []domain.Order {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]domain.Order, len(t.orders))
	copy(out, t.orders)
	return out
}

// Empty reports whether the load succeeded but found no matching orders
func (t *Tracker) Empty() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.loaded && len(t.orders) == 0
}

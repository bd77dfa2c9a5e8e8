package dashboard

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"bistro/internal/api"
	"bistro/internal/domain"
	"bistro/internal/push"
)

// FilterAll selects every order regardless of status
const FilterAll = "all"

// Notifier receives the transient notifications raised by live events;
// kind is "success" or "info"
type Notifier func(kind, message string)

// Stats are the per-status counts shown at the top of the dashboard
type Stats struct {
	Total     int
	Placed    int
	Confirmed int
	Preparing int
	Completed int
}

// Collection is the admin view of all orders, newest first. It is seeded
// with a fetched snapshot and kept current by push events. Status changes
// are never applied optimistically: the confirming orderUpdated event is
// the sole source of the visible change, so a lost event leaves the row
// stale until the next one arrives.
type Collection struct {
	mu     sync.RWMutex
	orders []domain.Order
	client *api.Client
	notify Notifier
}

func NewCollection(initial []domain.Order, client *api.Client, notify Notifier) *Collection {
	if notify == nil {
		notify = func(string, string) {}
	}
	orders := make([]domain.Order, len(initial))
	copy(orders, initial)
	return &Collection{orders: orders, client: client, notify: notify}
}

// Bind subscribes the collection to live order events
func (c *Collection) Bind(p *push.Client) {
	p.On(push.EventNewOrder, func(data json.RawMessage) {
		var o domain.Order
		if err := json.Unmarshal(data, &o); err != nil {
			log.Printf("newOrder: bad payload: %v", err)
			return
		}
		c.ApplyCreated(o)
	})
	p.On(push.EventOrderUpdated, func(data json.RawMessage) {
		var o domain.Order
		if err := json.Unmarshal(data, &o); err != nil {
			log.Printf("orderUpdated: bad payload: %v", err)
			return
		}
		c.ApplyUpdated(o)
	})
}

// Unbind removes the event subscriptions registered by Bind
func (c *Collection) Unbind(p *push.Client) {
	p.Off(push.EventNewOrder)
	p.Off(push.EventOrderUpdated)
}

// ApplyCreated prepends the new order so the list stays newest first
func (c *Collection) ApplyCreated(o domain.Order) {
	c.mu.Lock()
	c.orders = append([]domain.Order{o}, c.orders...)
	c.mu.Unlock()
	c.notify("success", "New order received!")
}

// ApplyUpdated replaces the matching order wholesale and reports whether a
// match was found. An update for an unknown order is dropped, never
// inserted. Reapplying a duplicate event is harmless.
func (c *Collection) ApplyUpdated(o domain.Order) bool {
	c.mu.Lock()
	applied := false
	for i := range c.orders {
		if c.orders[i].ID == o.ID {
			c.orders[i] = o
			applied = true
			break
		}
	}
	c.mu.Unlock()
	c.notify("info", "Order status updated")
	return applied
}

// Orders returns a copy of the full collection
func (c *Collection) Orders() []domain.Order {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]domain.Order, len(c.orders))
	copy(out, c.orders)
	return out
}

// Filter derives the orders matching status (or all of them for FilterAll)
// without mutating the underlying collection
func (c *Collection) Filter(status string) []domain.Order {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]domain.Order, 0, len(c.orders))
	for _, o := range c.orders {
		if status == FilterAll || string(o.Status) == status {
			out = append(out, o)
		}
	}
	return out
}

// Stats counts the collection by status
func (c *Collection) Stats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	st := Stats{Total: len(c.orders)}
	for _, o := range c.orders {
		switch o.Status {
		case domain.OrderStatusPlaced:
			st.Placed++
		case domain.OrderStatusConfirmed:
			st.Confirmed++
		case domain.OrderStatusPreparing:
			st.Preparing++
		case domain.OrderStatusCompleted:
			st.Completed++
		}
	}
	return st
}

// SetStatus asks the backend to move one order to a new status. Local state
// is deliberately left alone; the change becomes visible only when the
// confirming orderUpdated push event arrives. If that event is lost the
// row stays stale indefinitely (known gap in the push protocol).
func (c *Collection) SetStatus(ctx context.Context, id string, status domain.OrderStatus) error {
	_, err := c.client.UpdateStatus(ctx, id, status)
	return err
}

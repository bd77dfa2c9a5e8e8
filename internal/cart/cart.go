package cart

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"bistro/internal/api"
	"bistro/internal/domain"
	"bistro/internal/menu"
)

var (
	// ErrInvalidInput blocks submission before any network call is made
	ErrInvalidInput = errors.New("customer name and at least one item are required")
	// ErrSubmitting is returned while a previous submission is still in flight
	ErrSubmitting = errors.New("submission already in progress")
)

// Entry is a catalog item annotated with a chosen quantity. Entries exist
// only until submission, when they are copied into the new order.
type Entry struct {
	Item     menu.Item
	Quantity int64
}

// Cart holds the in-progress selection of the order form
type Cart struct {
	entries []Entry
}

// Add increments the quantity of an existing entry, or appends a new entry
// with quantity one
func (c *Cart) Add(item menu.Item) {
	for i := range c.entries {
		if c.entries[i].Item.ID == item.ID {
			c.entries[i].Quantity++
			return
		}
	}
	c.entries = append(c.entries, Entry{Item: item, Quantity: 1})
}

// Remove drops the entry unconditionally; absent items are a no-op
func (c *Cart) Remove(id int64) {
	for i := range c.entries {
		if c.entries[i].Item.ID == id {
			c.entries = append(c.entries[:i], c.entries[i+1:]...)
			return
		}
	}
}

// SetQuantity sets the quantity exactly. A non-numeric or non-positive
// value removes the entry instead of erroring.
func (c *Cart) SetQuantity(id int64, raw string) {
	qty, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || qty <= 0 {
		c.Remove(id)
		return
	}
	for i := range c.entries {
		if c.entries[i].Item.ID == id {
			c.entries[i].Quantity = qty
			return
		}
	}
}

// Total sums unit price times quantity over all entries
func (c *Cart) Total() float64 {
	var total float64
	for _, e := range c.entries {
		total += e.Item.Price * float64(e.Quantity)
	}
	return total
}

func (c *Cart) Len() int { return len(c.entries) }

// Entries returns a copy of the current cart state
func (c *Cart) Entries() []Entry {
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

func (c *Cart) Clear() { c.entries = nil }

// Items converts the cart into order line items for submission
func (c *Cart) Items() []domain.OrderItem {
	items := make([]domain.OrderItem, 0, len(c.entries))
	for _, e := range c.entries {
		items = append(items, domain.OrderItem{
			Name:     e.Item.Name,
			Price:    e.Item.Price,
			Quantity: e.Quantity,
		})
	}
	return items
}

// Composer pairs the cart with the customer identity and submits orders to
// the backend
type Composer struct {
	Cart         Cart
	CustomerName string

	client     *api.Client
	submitting bool
}

func NewComposer(client *api.Client) *Composer {
	return &Composer{client: client}
}

// Submitting reports whether a submission is in flight; the caller disables
// the submit action while it is true
func (cp *Composer) Submitting() bool { return cp.submitting }

// Submit validates the composer and posts the order. On success the cart
// and customer name are cleared; on any failure they are left untouched so
// the user can retry.
func (cp *Composer) Submit(ctx context.Context) (*domain.Order, error) {
	if cp.submitting {
		return nil, ErrSubmitting
	}
	name := strings.TrimSpace(cp.CustomerName)
	if name == "" || cp.Cart.Len() == 0 {
		return nil, ErrInvalidInput
	}

	cp.submitting = true
	defer func() { cp.submitting = false }()

	o, err := cp.client.Create(ctx, api.CreateRequest{
		CustomerName: name,
		Items:        cp.Cart.Items(),
		TotalAmount:  cp.Cart.Total(),
	})
	if err != nil {
		return nil, err
	}
	cp.Cart.Clear()
	cp.CustomerName = ""
	return o, nil
}

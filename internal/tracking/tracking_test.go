package tracking

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"bistro/internal/api"
	"bistro/internal/domain"
)

func order(id, customer string, status domain.OrderStatus) domain.Order {
	return domain.Order{ID: id, CustomerName: customer, Status: status}
}

func seeded(t *testing.T, customer string, orders ...domain.Order) (*Tracker, *[]string) {
	t.Helper()
	var notes []string
	tr := NewTracker(customer, nil, func(msg string) { notes = append(notes, msg) })
	tr.orders = orders
	tr.loaded = true
	return tr, &notes
}

func TestApplyUpdateIgnoresOtherCustomers(t *testing.T) {
	tr, notes := seeded(t, "Alice", order("a", "Alice", domain.OrderStatusPlaced))

	if applied := tr.ApplyUpdate(order("a", "Bob", domain.OrderStatusConfirmed)); applied {
		t.Fatalf("update for another customer must never apply")
	}
	if got := tr.Orders()[0].Status; got != domain.OrderStatusPlaced {
		t.Fatalf("collection mutated by foreign update: %q", got)
	}
	if len(*notes) != 0 {
		t.Fatalf("foreign update must not notify, got %v", *notes)
	}
}

func TestApplyUpdateMatchesCaseInsensitively(t *testing.T) {
	tr, notes := seeded(t, "alice", order("a", "Alice", domain.OrderStatusPlaced))

	if applied := tr.ApplyUpdate(order("a", "ALICE", domain.OrderStatusPreparing)); !applied {
		t.Fatalf("expected case-insensitive customer match to apply")
	}
	if got := tr.Orders()[0].Status; got != domain.OrderStatusPreparing {
		t.Fatalf("order not replaced, status %q", got)
	}
	if len(*notes) != 1 || (*notes)[0] != "Your order is being prepared!" {
		t.Fatalf("unexpected notifications %v", *notes)
	}
}

func TestApplyUpdateNoInsertOnMiss(t *testing.T) {
	tr, _ := seeded(t, "Alice", order("a", "Alice", domain.OrderStatusPlaced))

	tr.ApplyUpdate(order("unknown", "Alice", domain.OrderStatusConfirmed))
	if got := tr.Orders(); len(got) != 1 || got[0].ID != "a" {
		t.Fatalf("miss must not insert, got %+v", got)
	}
}

func TestStatusMessages(t *testing.T) {
	cases := map[domain.OrderStatus]string{
		domain.OrderStatusPlaced:    "Your order has been placed!",
		domain.OrderStatusConfirmed: "Your order has been confirmed!",
		domain.OrderStatusPreparing: "Your order is being prepared!",
		domain.OrderStatusCompleted: "Your order is ready for pickup!",
	}
	for status, want := range cases {
		if got := StatusMessage(status); got != want {
			t.Fatalf("StatusMessage(%q) = %q, want %q", status, got, want)
		}
	}
}

func TestLoadRefiltersClientSide(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("customerName"); got != "Alice" {
			t.Errorf("customerName query = %q", got)
		}
		// server ignores the filter; the tracker must re-apply it
		json.NewEncoder(w).Encode([]domain.Order{
			order("a", "ALICE", domain.OrderStatusPlaced),
			order("b", "Bob", domain.OrderStatusPlaced),
			order("c", "alice", domain.OrderStatusCompleted),
		})
	}))
	defer srv.Close()

	tr := NewTracker("Alice", api.NewClient(srv.URL), nil)
	if err := tr.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	got := tr.Orders()
	if len(got) != 2 || got[0].ID != "a" || got[1].ID != "c" {
		t.Fatalf("expected alice's orders only, got %+v", got)
	}
	if tr.Empty() {
		t.Fatalf("tracker should not be empty")
	}
}

func TestLoadEmptyAndError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]domain.Order{})
	}))
	defer srv.Close()

	tr := NewTracker("Alice", api.NewClient(srv.URL), nil)
	if tr.Empty() {
		t.Fatalf("tracker is not empty before a successful load")
	}
	if err := tr.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	if !tr.Empty() {
		t.Fatalf("expected empty state after zero matches")
	}

	bad := NewTracker("Alice", api.NewClient("http://127.0.0.1:1"), nil)
	if err := bad.Load(context.Background()); err == nil {
		t.Fatalf("expected load error")
	}
}

func TestRoomIsLowercased(t *testing.T) {
	tr := NewTracker("John Doe", nil, nil)
	if got := tr.Room(); got != "john doe" {
		t.Fatalf("room = %q", got)
	}
}

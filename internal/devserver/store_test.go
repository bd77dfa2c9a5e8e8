package devserver

import (
	"testing"

	"bistro/internal/domain"
)

func TestStoreCreateAssignsIdentity(t *testing.T) {
	s := NewStore()
	o := domain.Order{CustomerName: "John", TotalAmount: 12.99}
	s.Create(&o)
	if o.ID == "" || o.CreatedAt.IsZero() {
		t.Fatalf("expected id and timestamp, got %+v", o)
	}
	if o.Status != domain.OrderStatusPlaced {
		t.Fatalf("expected placed, got %q", o.Status)
	}
	stored, err := s.GetByID(o.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.CustomerName != "John" {
		t.Fatalf("unexpected stored order %+v", stored)
	}
}

func TestStoreGetByIDNotFound(t *testing.T) {
	s := NewStore()
	if _, err := s.GetByID("missing"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestStoreSetStatusForwardOnly(t *testing.T) {
	s := NewStore()
	o := domain.Order{CustomerName: "John"}
	s.Create(&o)

	upd, err := s.SetStatus(o.ID, domain.OrderStatusPreparing)
	if err != nil {
		t.Fatalf("advance: %v", err)
	}
	if upd.Status != domain.OrderStatusPreparing {
		t.Fatalf("status = %q", upd.Status)
	}

	// same status is a harmless no-op update
	if _, err := s.SetStatus(o.ID, domain.OrderStatusPreparing); err != nil {
		t.Fatalf("same status: %v", err)
	}

	if _, err := s.SetStatus(o.ID, domain.OrderStatusPlaced); err != ErrInvalidStatus {
		t.Fatalf("backward transition: expected ErrInvalidStatus, got %v", err)
	}
	if _, err := s.SetStatus(o.ID, "shipped"); err != ErrInvalidStatus {
		t.Fatalf("unknown status: expected ErrInvalidStatus, got %v", err)
	}
	if _, err := s.SetStatus("missing", domain.OrderStatusConfirmed); err != ErrNotFound {
		t.Fatalf("missing order: expected ErrNotFound, got %v", err)
	}
}

func TestStoreListFilter(t *testing.T) {
	s := NewStore()
	a := domain.Order{CustomerName: "Alice"}
	b := domain.Order{CustomerName: "Bob"}
	s.Create(&a)
	s.Create(&b)

	if got := s.List(""); len(got) != 2 {
		t.Fatalf("expected 2 orders, got %d", len(got))
	}
	got := s.List("alice")
	if len(got) != 1 || got[0].CustomerName != "Alice" {
		t.Fatalf("case-insensitive filter failed: %+v", got)
	}
}

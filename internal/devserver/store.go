package devserver

import (
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"bistro/internal/domain"
)

// ErrNotFound возвращается, когда заказ не найден
var ErrNotFound = errors.New("not found")

// ErrInvalidStatus is returned for unknown statuses and for attempts to
// move an order backwards through the progression
var ErrInvalidStatus = errors.New("invalid status")

// Store in-memory хранилище заказов мок-бэкенда
type Store struct {
	mu         sync.RWMutex
	ordersByID map[string]domain.Order
}

func NewStore() *Store {
	return &Store{ordersByID: make(map[string]domain.Order)}
}

// Create assigns an id and creation time and stores the order as placed
func (s *Store) Create(o *domain.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o.ID = uuid.NewString()
	o.CreatedAt = time.Now().UTC()
	o.Status = domain.OrderStatusPlaced
	s.ordersByID[o.ID] = *o
}

// List returns orders newest first, optionally filtered by customer name
// (case-insensitive)
func (s *Store) List(customerName string) []domain.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Order, 0, len(s.ordersByID))
	for _, o := range s.ordersByID {
		if customerName != "" && !strings.EqualFold(o.CustomerName, customerName) {
			continue
		}
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

// GetByID returns a copy of one order
func (s *Store) GetByID(id string) (*domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.ordersByID[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := o
	return &cp, nil
}

// SetStatus moves an order to a new status. Статус движется только вперёд.
func (s *Store) SetStatus(id string, status domain.OrderStatus) (*domain.Order, error) {
	if !domain.ValidStatus(status) {
		return nil, ErrInvalidStatus
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.ordersByID[id]
	if !ok {
		return nil, ErrNotFound
	}
	if domain.StatusIndex(status) < domain.StatusIndex(o.Status) {
		return nil, ErrInvalidStatus
	}
	o.Status = status
	s.ordersByID[id] = o
	cp := o
	return &cp, nil
}

package report

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/sangkips/farmstore-admin/internal/domain/entity"
	"github.com/sangkips/farmstore-admin/internal/domain/enum"
)

var (
	ErrOrderNotInBook = errors.New("order is not part of this report")
	ErrUpdateInFlight = errors.New("a status update for this order is already in progress")
)

// UpdateOutcome tells whether an optimistic status change stuck.
type UpdateOutcome string

const (
	OutcomeApplied    UpdateOutcome = "applied"
	OutcomeRolledBack UpdateOutcome = "rolled_back"
)

// UpdateResult describes a finished optimistic status update.
type UpdateResult struct {
	OrderID  uuid.UUID        `json:"order_id"`
	Previous enum.OrderStatus `json:"previous"`
	Status   enum.OrderStatus `json:"status"`
	Outcome  UpdateOutcome    `json:"outcome"`
}

// StatusWriter persists a status change.
type StatusWriter func(ctx context.Context) error

// OrderBook is the in-memory order snapshot behind a report view. Every
// change bumps Version so derived stats can be memoized against it.
type OrderBook struct {
	mu       sync.RWMutex
	orders   []entity.Order
	index    map[uuid.UUID]int
	inFlight map[uuid.UUID]struct{}
	version  uint64
	memo     *StatsMemo
}

// NewOrderBook takes ownership of orders.
func NewOrderBook(orders []entity.Order) *OrderBook {
	index := make(map[uuid.UUID]int, len(orders))
	for i := range orders {
		index[orders[i].ID] = i
	}
	return &OrderBook{
		orders:   orders,
		index:    index,
		inFlight: make(map[uuid.UUID]struct{}),
		version:  1,
		memo:     NewStatsMemo(),
	}
}

// Version returns the current snapshot version.
func (b *OrderBook) Version() uint64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.version
}

// Orders returns a copy of the orders inside w along with the version
// they were read at.
func (b *OrderBook) Orders(w Window) ([]entity.Order, uint64) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return InWindow(b.orders, w), b.version
}

// Stats aggregates the orders inside w, memoized per version.
func (b *OrderBook) Stats(w Window) PeriodStats {
	orders, version := b.Orders(w)
	return b.memo.Get(version, w, func() PeriodStats {
		return Aggregate(orders)
	})
}

// Contains reports whether the book holds the order.
func (b *OrderBook) Contains(id uuid.UUID) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	_, ok := b.index[id]
	return ok
}

// UpdateStatus applies status locally, then calls write. If write fails
// the previous status is restored and the write error is returned along
// with a RolledBack result. Only one update per order may be in flight.
func (b *OrderBook) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.OrderStatus, write StatusWriter) (UpdateResult, error) {
	b.mu.Lock()
	idx, ok := b.index[id]
	if !ok {
		b.mu.Unlock()
		return UpdateResult{}, ErrOrderNotInBook
	}
	if _, busy := b.inFlight[id]; busy {
		b.mu.Unlock()
		return UpdateResult{}, ErrUpdateInFlight
	}
	previous := b.orders[idx].Status
	b.orders[idx].Status = status
	b.inFlight[id] = struct{}{}
	b.version++
	b.mu.Unlock()

	err := write(ctx)

	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.inFlight, id)

	result := UpdateResult{OrderID: id, Previous: previous, Status: status, Outcome: OutcomeApplied}
	if err != nil {
		b.orders[idx].Status = previous
		b.version++
		result.Status = previous
		result.Outcome = OutcomeRolledBack
		return result, err
	}
	return result, nil
}

// SetStatus overwrites the status of an order without a write. It is used
// to mirror a change already persisted through another book.
func (b *OrderBook) SetStatus(id uuid.UUID, status enum.OrderStatus) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	idx, ok := b.index[id]
	if !ok || b.orders[idx].Status == status {
		return ok
	}
	b.orders[idx].Status = status
	b.version++
	return true
}

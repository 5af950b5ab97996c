package service

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/farmstore-admin/internal/domain/entity"
	"github.com/sangkips/farmstore-admin/internal/domain/enum"
	"github.com/sangkips/farmstore-admin/internal/domain/repository"
	"github.com/shopspring/decimal"
)

type fakeOrderRepo struct {
	mu        sync.Mutex
	orders    []entity.Order
	listCalls int
	updateErr error
	// entered and block, when set, pause UpdateStatus until block is closed.
	entered chan struct{}
	block   chan struct{}
	writes  atomic.Int32
}

func (r *fakeOrderRepo) Create(_ context.Context, order *entity.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	r.orders = append(r.orders, *order)
	return nil
}

func (r *fakeOrderRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.orders {
		if r.orders[i].ID == id {
			o := r.orders[i]
			return &o, nil
		}
	}
	return nil, nil
}

func (r *fakeOrderRepo) ListCreatedBetween(_ context.Context, start, end time.Time) ([]entity.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listCalls++
	var out []entity.Order
	for _, o := range r.orders {
		if !o.CreatedAt.Before(start) && !o.CreatedAt.After(end) {
			out = append(out, o)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeOrderRepo) UpdateStatus(_ context.Context, id uuid.UUID, status enum.OrderStatus) error {
	r.writes.Add(1)
	if r.entered != nil {
		r.entered <- struct{}{}
	}
	if r.block != nil {
		<-r.block
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.updateErr != nil {
		return r.updateErr
	}
	for i := range r.orders {
		if r.orders[i].ID == id {
			r.orders[i].Status = status
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *fakeOrderRepo) calls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.listCalls
}

type fakeProductRepo struct {
	names map[uuid.UUID]string
}

func (r *fakeProductRepo) Create(_ context.Context, product *entity.Product) error {
	if r.names == nil {
		r.names = map[uuid.UUID]string{}
	}
	r.names[product.ID] = product.Name
	return nil
}

func (r *fakeProductRepo) NameLookup(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	out := make(map[uuid.UUID]string)
	for _, id := range ids {
		if name, ok := r.names[id]; ok {
			out[id] = name
		}
	}
	return out, nil
}

type fakeSettingsRepo struct {
	mu       sync.Mutex
	settings map[uuid.UUID]*entity.UserSettings
}

func newFakeSettingsRepo() *fakeSettingsRepo {
	return &fakeSettingsRepo{settings: map[uuid.UUID]*entity.UserSettings{}}
}

func (r *fakeSettingsRepo) GetByUserID(_ context.Context, userID uuid.UUID) (*entity.UserSettings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.settings[userID]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *fakeSettingsRepo) Create(_ context.Context, s *entity.UserSettings) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	cp := *s
	r.settings[s.UserID] = &cp
	return nil
}

func (r *fakeSettingsRepo) Update(ctx context.Context, s *entity.UserSettings) error {
	return r.Create(ctx, s)
}

var (
	seedID = uuid.MustParse("10000000-0000-4000-8000-000000000001")
	npkID  = uuid.MustParse("10000000-0000-4000-8000-000000000002")
	hoeID  = uuid.MustParse("10000000-0000-4000-8000-000000000003")

	orderAID = uuid.MustParse("aaaaaaaa-1111-4111-8111-111111111111")
	orderBID = uuid.MustParse("bbbbbbbb-2222-4222-8222-222222222222")
	orderCID = uuid.MustParse("cccccccc-3333-4333-8333-333333333333")
)

func strPtr(s string) *string { return &s }

func testOrder(id uuid.UUID, created time.Time, status enum.OrderStatus, productID uuid.UUID, qty int, unitPrice, discount int64) entity.Order {
	return entity.Order{
		ID:        id,
		Status:    status,
		CreatedAt: created,
		Lines: []entity.OrderLine{{
			ProductID: productID,
			Quantity:  qty,
			UnitPrice: decimal.NewNullDecimal(decimal.NewFromInt(unitPrice)),
			Discount:  decimal.NewNullDecimal(decimal.NewFromInt(discount)),
		}},
		Payments: []entity.Payment{{Method: strPtr("mpesa")}},
	}
}

// seededOrders holds the October scenario (net 430) and two September
// orders (net 200).
func seededOrders() []entity.Order {
	oct := func(day int) time.Time { return time.Date(2026, 10, day, 10, 0, 0, 0, time.UTC) }
	sep := func(day int) time.Time { return time.Date(2026, 9, day, 10, 0, 0, 0, time.UTC) }

	a := testOrder(orderAID, oct(2), enum.OrderStatusCompleted, seedID, 2, 100, 10)
	a.Customer = &entity.User{Email: "alice@example.com"}
	return []entity.Order{
		a,
		testOrder(orderBID, oct(5), enum.OrderStatusPending, npkID, 1, 50, 0),
		testOrder(orderCID, oct(10), enum.OrderStatusCompleted, hoeID, 1, 200, 0),
		testOrder(uuid.New(), sep(3), enum.OrderStatusCompleted, seedID, 1, 120, 0),
		testOrder(uuid.New(), sep(20), enum.OrderStatusCompleted, hoeID, 1, 80, 0),
	}
}

package report

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/farmstore-admin/internal/domain/entity"
	"github.com/sangkips/farmstore-admin/internal/domain/enum"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

var (
	orderAID = uuid.MustParse("aaaaaaaa-1111-4111-8111-111111111111")
	orderBID = uuid.MustParse("bbbbbbbb-2222-4222-8222-222222222222")
	orderCID = uuid.MustParse("cccccccc-3333-4333-8333-333333333333")

	seedID = uuid.MustParse("10000000-0000-4000-8000-000000000001")
	npkID  = uuid.MustParse("10000000-0000-4000-8000-000000000002")
	hoeID  = uuid.MustParse("10000000-0000-4000-8000-000000000003")
)

func strPtr(s string) *string { return &s }

func price(v string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(v))
}

func line(productID uuid.UUID, name *string, qty int, unitPrice, discount string) entity.OrderLine {
	l := entity.OrderLine{ProductID: productID, ProductName: name, Quantity: qty}
	if unitPrice != "" {
		l.UnitPrice = price(unitPrice)
	}
	if discount != "" {
		l.Discount = price(discount)
	}
	return l
}

func customer(email string) *entity.User {
	return &entity.User{ID: uuid.New(), Email: email}
}

// scenarioOrders returns three October 2026 orders: gross 450, discount
// 20, net 430.
func scenarioOrders() []entity.Order {
	return []entity.Order{
		{
			ID:        orderAID,
			Status:    enum.OrderStatusCompleted,
			CreatedAt: time.Date(2026, 10, 2, 9, 15, 0, 0, time.UTC),
			Customer:  customer("alice@example.com"),
			Lines:     []entity.OrderLine{line(seedID, strPtr("Maize Seed"), 2, "100", "10")},
			Payments:  []entity.Payment{{Method: strPtr("mpesa"), Amount: decimal.NewFromInt(180)}},
		},
		{
			ID:        orderBID,
			Status:    enum.OrderStatusPending,
			CreatedAt: time.Date(2026, 10, 5, 16, 40, 5, 0, time.UTC),
			Lines:     []entity.OrderLine{line(npkID, strPtr("Fertilizer, NPK"), 1, "50", "")},
		},
		{
			ID:        orderCID,
			Status:    enum.OrderStatusCompleted,
			CreatedAt: time.Date(2026, 10, 10, 11, 0, 0, 0, time.UTC),
			Customer:  customer("Bob@Example.com"),
			Lines:     []entity.OrderLine{line(hoeID, nil, 1, "200", "0")},
			Payments:  []entity.Payment{{Amount: decimal.NewFromInt(200)}},
		},
	}
}

func scenarioNames() map[uuid.UUID]string {
	return map[uuid.UUID]string{hoeID: "Hoe"}
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(want).Equal(got), "want %s, got %s", want, got.String())
}

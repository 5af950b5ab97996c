package report

import (
	"github.com/sangkips/farmstore-admin/internal/domain/entity"
	"github.com/sangkips/farmstore-admin/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// PeriodStats summarises the orders of one window.
type PeriodStats struct {
	Total             int             `json:"total"`
	Pending           int             `json:"pending"`
	Processing        int             `json:"processing"`
	Completed         int             `json:"completed"`
	Gross             decimal.Decimal `json:"gross"`
	Discount          decimal.Decimal `json:"discount"`
	Net               decimal.Decimal `json:"net"`
	AverageOrderValue decimal.Decimal `json:"average_order_value"`
}

// Others counts orders outside the three tracked status buckets.
func (s PeriodStats) Others() int {
	return s.Total - s.Pending - s.Processing - s.Completed
}

// Aggregate folds orders into PeriodStats in a single pass. Cancelled or
// unknown statuses count toward Total only.
func Aggregate(orders []entity.Order) PeriodStats {
	var stats PeriodStats
	var sums Totals

	for i := range orders {
		order := &orders[i]
		stats.Total++
		switch order.Status {
		case enum.OrderStatusPending:
			stats.Pending++
		case enum.OrderStatusProcessing:
			stats.Processing++
		case enum.OrderStatusCompleted:
			stats.Completed++
		}
		sums = sums.Add(OrderTotals(order))
	}

	stats.Gross = sums.Gross
	stats.Discount = sums.Discount
	stats.Net = sums.Net
	stats.AverageOrderValue = average(sums.Net, stats.Total)
	return stats
}

// InWindow returns the orders whose creation time falls inside w.
func InWindow(orders []entity.Order, w Window) []entity.Order {
	out := make([]entity.Order, 0, len(orders))
	for i := range orders {
		if w.Contains(orders[i].CreatedAt) {
			out = append(out, orders[i])
		}
	}
	return out
}

func average(sum decimal.Decimal, count int) decimal.Decimal {
	if count == 0 {
		return decimal.Zero
	}
	return sum.Div(decimal.NewFromInt(int64(count)))
}

package report

import (
	"fmt"
	"strings"

	"github.com/sangkips/farmstore-admin/internal/domain/entity"
	"github.com/sangkips/farmstore-admin/internal/domain/enum"
)

// StatusFilter is either StatusAll or a single order status.
type StatusFilter string

const StatusAll StatusFilter = "all"

// ParseStatusFilter accepts "", "all" or a known order status.
func ParseStatusFilter(value string) (StatusFilter, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" || v == string(StatusAll) {
		return StatusAll, nil
	}
	status, err := enum.ParseOrderStatus(v)
	if err != nil {
		return "", fmt.Errorf("invalid status filter: %w", err)
	}
	return StatusFilter(status), nil
}

// Matches reports whether status passes the filter.
func (f StatusFilter) Matches(status enum.OrderStatus) bool {
	return f == StatusAll || f == "" || enum.OrderStatus(f) == status
}

// Filter returns the orders that pass the status filter and whose id or
// customer email contains term, case-insensitively. An empty term matches
// everything. Orders without a customer are searched by id only.
func Filter(orders []entity.Order, status StatusFilter, term string) []entity.Order {
	needle := strings.ToLower(term)
	out := make([]entity.Order, 0, len(orders))
	for i := range orders {
		order := &orders[i]
		if !status.Matches(order.Status) {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(order.ID.String()), needle) &&
			!strings.Contains(strings.ToLower(order.CustomerEmail()), needle) {
			continue
		}
		out = append(out, *order)
	}
	return out
}

package report

import (
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/farmstore-admin/internal/domain/entity"
	"github.com/shopspring/decimal"
)

const (
	notAvailable   = "N/A"
	unknownPayment = "UNKNOWN"
)

// StatusBreakdown is the order count and net revenue for one status.
type StatusBreakdown struct {
	Status string          `json:"status"`
	Orders int             `json:"orders"`
	Net    decimal.Decimal `json:"net"`
}

// ProductBreakdown is the units and money sold for one product name.
type ProductBreakdown struct {
	Name     string          `json:"name"`
	Units    int             `json:"units"`
	Gross    decimal.Decimal `json:"gross"`
	Discount decimal.Decimal `json:"discount"`
	Net      decimal.Decimal `json:"net"`
}

// PaymentBreakdown is the order count and revenue for one payment method.
type PaymentBreakdown struct {
	Method string          `json:"method"`
	Orders int             `json:"orders"`
	Gross  decimal.Decimal `json:"gross"`
	Net    decimal.Decimal `json:"net"`
}

// Breakdowns groups the per-status, per-product and per-payment-method
// aggregations of a set of orders.
type Breakdowns struct {
	Statuses []StatusBreakdown  `json:"statuses"`
	Products []ProductBreakdown `json:"products"`
	Payments []PaymentBreakdown `json:"payments"`
}

// BuildBreakdowns walks orders once. Statuses and payment methods keep
// the order they were first seen in; products are sorted by net revenue,
// highest first, with ties left in first-seen order.
func BuildBreakdowns(orders []entity.Order, productNames map[uuid.UUID]string) Breakdowns {
	var b Breakdowns
	statusIdx := map[string]int{}
	productIdx := map[string]int{}
	paymentIdx := map[string]int{}

	for i := range orders {
		order := &orders[i]
		totals := OrderTotals(order)

		status := strings.ToUpper(order.Status.String())
		si, ok := statusIdx[status]
		if !ok {
			si = len(b.Statuses)
			statusIdx[status] = si
			b.Statuses = append(b.Statuses, StatusBreakdown{Status: status})
		}
		b.Statuses[si].Orders++
		b.Statuses[si].Net = b.Statuses[si].Net.Add(totals.Net)

		method := PaymentMethod(order)
		pi, ok := paymentIdx[method]
		if !ok {
			pi = len(b.Payments)
			paymentIdx[method] = pi
			b.Payments = append(b.Payments, PaymentBreakdown{Method: method})
		}
		b.Payments[pi].Orders++
		b.Payments[pi].Gross = b.Payments[pi].Gross.Add(totals.Gross)
		b.Payments[pi].Net = b.Payments[pi].Net.Add(totals.Net)

		for j := range order.Lines {
			line := &order.Lines[j]
			name := ProductName(line, productNames)
			li, ok := productIdx[name]
			if !ok {
				li = len(b.Products)
				productIdx[name] = li
				b.Products = append(b.Products, ProductBreakdown{Name: name})
			}
			lt := LineTotals(line)
			p := &b.Products[li]
			p.Units += line.Quantity
			p.Gross = p.Gross.Add(lt.Gross)
			p.Discount = p.Discount.Add(lt.Discount)
			p.Net = p.Net.Add(lt.Net)
		}
	}

	sort.SliceStable(b.Products, func(i, j int) bool {
		return b.Products[i].Net.GreaterThan(b.Products[j].Net)
	})
	return b
}

// ProductName resolves a display name for the line: the name stored on
// the line, then the lookup, then the raw product id.
func ProductName(line *entity.OrderLine, lookup map[uuid.UUID]string) string {
	if line.ProductName != nil && strings.TrimSpace(*line.ProductName) != "" {
		return *line.ProductName
	}
	if name, ok := lookup[line.ProductID]; ok && name != "" {
		return name
	}
	return line.ProductID.String()
}

// PaymentMethod returns the uppercased method of the order's primary
// payment, or UNKNOWN when there is none.
func PaymentMethod(order *entity.Order) string {
	payment := order.PrimaryPayment()
	if payment == nil || payment.Method == nil || strings.TrimSpace(*payment.Method) == "" {
		return unknownPayment
	}
	return strings.ToUpper(strings.TrimSpace(*payment.Method))
}

// detailPaymentMethod is PaymentMethod for the order detail rows, where
// an order with no payment record at all shows N/A.
func detailPaymentMethod(order *entity.Order) string {
	if order.PrimaryPayment() == nil {
		return notAvailable
	}
	return PaymentMethod(order)
}

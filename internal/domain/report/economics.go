package report

import (
	"github.com/sangkips/farmstore-admin/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// EffectivePrice is the line's recorded unit price, falling back to the
// linked product's current price, then zero.
func EffectivePrice(line *entity.OrderLine) decimal.Decimal {
	if line.UnitPrice.Valid {
		return line.UnitPrice.Decimal
	}
	if line.Product != nil {
		return line.Product.Price
	}
	return decimal.Zero
}

// UnitDiscount is the per-unit discount, zero when absent.
func UnitDiscount(line *entity.OrderLine) decimal.Decimal {
	if line.Discount.Valid {
		return line.Discount.Decimal
	}
	return decimal.Zero
}

// LineGross returns price x quantity, ignoring discounts.
func LineGross(line *entity.OrderLine) decimal.Decimal {
	return EffectivePrice(line).Mul(decimal.NewFromInt(int64(line.Quantity)))
}

// LineDiscount returns per-unit discount x quantity.
func LineDiscount(line *entity.OrderLine) decimal.Decimal {
	return UnitDiscount(line).Mul(decimal.NewFromInt(int64(line.Quantity)))
}

// LineNet returns gross minus discount. A discount above the unit price
// yields a negative value and is kept as is.
func LineNet(line *entity.OrderLine) decimal.Decimal {
	return LineGross(line).Sub(LineDiscount(line))
}

// Totals holds the money sums of a set of lines.
type Totals struct {
	Gross    decimal.Decimal `json:"gross"`
	Discount decimal.Decimal `json:"discount"`
	Net      decimal.Decimal `json:"net"`
}

// Add returns the element-wise sum of t and o.
func (t Totals) Add(o Totals) Totals {
	return Totals{
		Gross:    t.Gross.Add(o.Gross),
		Discount: t.Discount.Add(o.Discount),
		Net:      t.Net.Add(o.Net),
	}
}

// LineTotals computes gross, discount and net for one line.
func LineTotals(line *entity.OrderLine) Totals {
	gross := LineGross(line)
	discount := LineDiscount(line)
	return Totals{Gross: gross, Discount: discount, Net: gross.Sub(discount)}
}

// OrderTotals sums LineTotals across every line of the order.
func OrderTotals(order *entity.Order) Totals {
	var t Totals
	for i := range order.Lines {
		t = t.Add(LineTotals(&order.Lines[i]))
	}
	return t
}

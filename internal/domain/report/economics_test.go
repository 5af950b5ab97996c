package report

import (
	"testing"

	"github.com/google/uuid"
	"github.com/sangkips/farmstore-admin/internal/domain/entity"
	"github.com/shopspring/decimal"
)

func TestEffectivePriceFallsBackToProduct(t *testing.T) {
	l := line(uuid.New(), nil, 3, "", "")
	l.Product = &entity.Product{Name: "Sprayer", Price: decimal.NewFromInt(75)}

	assertDecimal(t, "75", EffectivePrice(&l))
	assertDecimal(t, "225", LineGross(&l))
	assertDecimal(t, "0", LineDiscount(&l))
	assertDecimal(t, "225", LineNet(&l))
}

func TestEffectivePricePrefersRecordedPrice(t *testing.T) {
	l := line(uuid.New(), nil, 1, "60", "")
	l.Product = &entity.Product{Price: decimal.NewFromInt(75)}

	assertDecimal(t, "60", EffectivePrice(&l))
}

func TestEffectivePriceWithoutAnyPrice(t *testing.T) {
	l := line(uuid.New(), nil, 4, "", "2")

	assertDecimal(t, "0", EffectivePrice(&l))
	assertDecimal(t, "8", LineDiscount(&l))
	assertDecimal(t, "-8", LineNet(&l))
}

func TestLineNetIsNotClamped(t *testing.T) {
	l := line(uuid.New(), nil, 2, "10", "15")

	assertDecimal(t, "20", LineGross(&l))
	assertDecimal(t, "30", LineDiscount(&l))
	assertDecimal(t, "-10", LineNet(&l))
}

func TestOrderTotals(t *testing.T) {
	order := entity.Order{Lines: []entity.OrderLine{
		line(uuid.New(), nil, 2, "100", "10"),
		line(uuid.New(), nil, 1, "19.99", "0.99"),
	}}

	totals := OrderTotals(&order)
	assertDecimal(t, "219.99", totals.Gross)
	assertDecimal(t, "20.99", totals.Discount)
	assertDecimal(t, "199", totals.Net)
	assertDecimal(t, totals.Gross.Sub(totals.Discount).String(), totals.Net)
}

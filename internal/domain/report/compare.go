package report

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// Comparison holds percentage changes of the current window over the
// prior one.
type Comparison struct {
	Orders            float64 `json:"orders"`
	Revenue           float64 `json:"revenue"`
	AverageOrderValue float64 `json:"average_order_value"`
}

// PercentChange returns (curr-prior)/prior*100. Growth from zero is
// reported as 100 and zero-to-zero as 0.
func PercentChange(curr, prior decimal.Decimal) float64 {
	if !prior.IsPositive() {
		if curr.IsPositive() {
			return 100
		}
		return 0
	}
	return curr.Sub(prior).Div(prior).Mul(hundred).InexactFloat64()
}

// Compare computes the change in order count, net revenue and average
// order value.
func Compare(current, prior PeriodStats) Comparison {
	return Comparison{
		Orders:            PercentChange(decimal.NewFromInt(int64(current.Total)), decimal.NewFromInt(int64(prior.Total))),
		Revenue:           PercentChange(current.Net, prior.Net),
		AverageOrderValue: PercentChange(current.AverageOrderValue, prior.AverageOrderValue),
	}
}

package response

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/farmstore-admin/internal/application/service"
	"github.com/sangkips/farmstore-admin/internal/domain/entity"
	"github.com/sangkips/farmstore-admin/internal/domain/report"
	"github.com/sangkips/farmstore-admin/pkg/pagination"
	"github.com/shopspring/decimal"
)

// WindowResponse is a resolved report window
type WindowResponse struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// PeriodStatsResponse is the aggregate of one window
type PeriodStatsResponse struct {
	TotalOrders       int     `json:"total_orders"`
	Pending           int     `json:"pending"`
	Processing        int     `json:"processing"`
	Completed         int     `json:"completed"`
	Others            int     `json:"others"`
	GrossRevenue      float64 `json:"gross_revenue"`
	TotalDiscount     float64 `json:"total_discount"`
	NetRevenue        float64 `json:"net_revenue"`
	AverageOrderValue float64 `json:"average_order_value"`
}

// OrderRowResponse is one row of the report order list
type OrderRowResponse struct {
	ID            uuid.UUID `json:"id"`
	ShortID       string    `json:"short_id"`
	CreatedAt     time.Time `json:"created_at"`
	CustomerEmail string    `json:"customer_email,omitempty"`
	Status        string    `json:"status"`
	PaymentMethod string    `json:"payment_method"`
	Items         int       `json:"items"`
	Gross         float64   `json:"gross"`
	Discount      float64   `json:"discount"`
	Net           float64   `json:"net"`
}

type StatusBreakdownResponse struct {
	Status     string  `json:"status"`
	Orders     int     `json:"orders"`
	NetRevenue float64 `json:"net_revenue"`
}

type ProductBreakdownResponse struct {
	Name       string  `json:"name"`
	UnitsSold  int     `json:"units_sold"`
	Gross      float64 `json:"gross"`
	Discount   float64 `json:"discount"`
	NetRevenue float64 `json:"net_revenue"`
}

type PaymentBreakdownResponse struct {
	Method     string  `json:"method"`
	Orders     int     `json:"orders"`
	Gross      float64 `json:"gross"`
	NetRevenue float64 `json:"net_revenue"`
}

type BreakdownsResponse struct {
	Statuses []StatusBreakdownResponse  `json:"statuses"`
	Products []ProductBreakdownResponse `json:"products"`
	Payments []PaymentBreakdownResponse `json:"payments"`
}

// ReportOverviewResponse is the body of the order report endpoint
type ReportOverviewResponse struct {
	Period      string                                         `json:"period"`
	Label       string                                         `json:"label"`
	Window      WindowResponse                                 `json:"window"`
	PriorWindow WindowResponse                                 `json:"prior_window"`
	Current     PeriodStatsResponse                            `json:"current"`
	Previous    PeriodStatsResponse                            `json:"previous"`
	Comparison  report.Comparison                              `json:"comparison"`
	Breakdowns  BreakdownsResponse                             `json:"breakdowns"`
	Orders      *pagination.PaginatedResult[OrderRowResponse] `json:"orders"`
	Version     uint64                                         `json:"version"`
	FetchedAt   time.Time                                      `json:"fetched_at"`
}

// NewReportOverviewResponse converts a service overview for the wire.
// Money is rounded to 2 decimal places.
func NewReportOverviewResponse(o *service.ReportOverview) *ReportOverviewResponse {
	rows := make([]OrderRowResponse, 0, len(o.Orders.Items))
	for i := range o.Orders.Items {
		rows = append(rows, newOrderRow(&o.Orders.Items[i]))
	}

	return &ReportOverviewResponse{
		Period:      o.Period.String(),
		Label:       o.Label,
		Window:      WindowResponse{Start: o.Window.Start, End: o.Window.End},
		PriorWindow: WindowResponse{Start: o.Prior.Start, End: o.Prior.End},
		Current:     newPeriodStats(o.Current),
		Previous:    newPeriodStats(o.Previous),
		Comparison:  o.Comparison,
		Breakdowns:  newBreakdowns(o.Breakdowns),
		Orders:      pagination.NewPaginatedResult(rows, o.Orders.Pagination),
		Version:     o.Version,
		FetchedAt:   o.FetchedAt,
	}
}

func newPeriodStats(s report.PeriodStats) PeriodStatsResponse {
	return PeriodStatsResponse{
		TotalOrders:       s.Total,
		Pending:           s.Pending,
		Processing:        s.Processing,
		Completed:         s.Completed,
		Others:            s.Others(),
		GrossRevenue:      money(s.Gross),
		TotalDiscount:     money(s.Discount),
		NetRevenue:        money(s.Net),
		AverageOrderValue: money(s.AverageOrderValue),
	}
}

func newOrderRow(o *entity.Order) OrderRowResponse {
	totals := report.OrderTotals(o)
	return OrderRowResponse{
		ID:            o.ID,
		ShortID:       o.ShortID(),
		CreatedAt:     o.CreatedAt,
		CustomerEmail: o.CustomerEmail(),
		Status:        o.Status.String(),
		Items:         len(o.Lines),
		Gross:         money(totals.Gross),
		Discount:      money(totals.Discount),
		Net:           money(totals.Net),
		PaymentMethod: report.PaymentMethod(o),
	}
}

func newBreakdowns(b report.Breakdowns) BreakdownsResponse {
	out := BreakdownsResponse{
		Statuses: make([]StatusBreakdownResponse, 0, len(b.Statuses)),
		Products: make([]ProductBreakdownResponse, 0, len(b.Products)),
		Payments: make([]PaymentBreakdownResponse, 0, len(b.Payments)),
	}
	for _, s := range b.Statuses {
		out.Statuses = append(out.Statuses, StatusBreakdownResponse{Status: s.Status, Orders: s.Orders, NetRevenue: money(s.Net)})
	}
	for _, p := range b.Products {
		out.Products = append(out.Products, ProductBreakdownResponse{
			Name: p.Name, UnitsSold: p.Units, Gross: money(p.Gross), Discount: money(p.Discount), NetRevenue: money(p.Net),
		})
	}
	for _, p := range b.Payments {
		out.Payments = append(out.Payments, PaymentBreakdownResponse{
			Method: p.Method, Orders: p.Orders, Gross: money(p.Gross), NetRevenue: money(p.Net),
		})
	}
	return out
}

func money(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

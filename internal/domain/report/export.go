package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/farmstore-admin/internal/domain/entity"
	"github.com/sangkips/farmstore-admin/internal/domain/enum"
	"github.com/shopspring/decimal"
)

const (
	dateLayout      = "2006-01-02"
	timeLayout      = "15:04:05"
	timestampLayout = "2006-01-02 15:04:05"

	DefaultTitle = "Orders Report"
)

// ExportInput is everything a report document is built from.
type ExportInput struct {
	Title        string
	Orders       []entity.Order
	ProductNames map[uuid.UUID]string
	Window       Window
	Label        string
	GeneratedBy  string
	GeneratedAt  time.Time
}

// section is one titled block of the report. numeric lists the columns
// of rows that hold numbers.
type section struct {
	sheet   string
	title   string
	header  []string
	rows    [][]string
	numeric []int
}

var detailHeader = []string{
	"Order ID", "Date", "Time", "Customer Email",
	"Products", "Quantities", "Unit Prices", "Unit Discounts", "Line Totals",
	"Gross", "Discount", "Net", "Payment Method", "Status",
}

// buildSections lays out the report: header, order detail, summary and
// the status, product and payment breakdowns, in that order.
func buildSections(in ExportInput) []section {
	loc := in.Window.Start.Location()
	title := in.Title
	if title == "" {
		title = DefaultTitle
	}

	header := section{
		sheet: "Report",
		rows: [][]string{
			{title},
			{"Period", in.Label},
			{"Start Date", in.Window.Start.Format(dateLayout)},
			{"End Date", in.Window.End.Format(dateLayout)},
			{"Generated At", in.GeneratedAt.In(loc).Format(timestampLayout)},
			{"Generated By", in.GeneratedBy},
		},
	}

	details := section{
		sheet:   "Orders",
		title:   "ORDER DETAILS",
		header:  detailHeader,
		rows:    make([][]string, 0, len(in.Orders)),
		numeric: []int{9, 10, 11},
	}
	for i := range in.Orders {
		details.rows = append(details.rows, detailRow(&in.Orders[i], in.ProductNames, loc))
	}

	stats := Aggregate(in.Orders)
	summary := section{
		sheet:   "Summary",
		title:   "SUMMARY",
		numeric: []int{1},
		rows: [][]string{
			{"Total Orders", strconv.Itoa(stats.Total)},
			{"Gross Revenue", money(stats.Gross)},
			{"Total Discounts", money(stats.Discount)},
			{"Net Revenue", money(stats.Net)},
			{"Average Order Value", money(stats.AverageOrderValue)},
		},
	}

	b := BuildBreakdowns(in.Orders, in.ProductNames)

	statuses := section{
		sheet:   "By Status",
		title:   "STATUS BREAKDOWN",
		header:  []string{"Status", "Orders", "Net Revenue"},
		numeric: []int{1, 2},
	}
	for _, s := range b.Statuses {
		statuses.rows = append(statuses.rows, []string{s.Status, strconv.Itoa(s.Orders), money(s.Net)})
	}

	products := section{
		sheet:   "By Product",
		title:   "PRODUCT BREAKDOWN",
		header:  []string{"Product", "Units Sold", "Gross", "Discount", "Net Revenue"},
		numeric: []int{1, 2, 3, 4},
	}
	for _, p := range b.Products {
		products.rows = append(products.rows, []string{
			p.Name, strconv.Itoa(p.Units), money(p.Gross), money(p.Discount), money(p.Net),
		})
	}

	payments := section{
		sheet:   "By Payment Method",
		title:   "PAYMENT METHOD BREAKDOWN",
		header:  []string{"Payment Method", "Orders", "Gross", "Net Revenue"},
		numeric: []int{1, 2, 3},
	}
	for _, p := range b.Payments {
		payments.rows = append(payments.rows, []string{
			p.Method, strconv.Itoa(p.Orders), money(p.Gross), money(p.Net),
		})
	}

	return []section{header, details, summary, statuses, products, payments}
}

func detailRow(order *entity.Order, names map[uuid.UUID]string, loc *time.Location) []string {
	n := len(order.Lines)
	products := make([]string, 0, n)
	quantities := make([]string, 0, n)
	prices := make([]string, 0, n)
	discounts := make([]string, 0, n)
	nets := make([]string, 0, n)

	for i := range order.Lines {
		line := &order.Lines[i]
		products = append(products, ProductName(line, names))
		quantities = append(quantities, strconv.Itoa(line.Quantity))
		prices = append(prices, money(EffectivePrice(line)))
		discounts = append(discounts, money(UnitDiscount(line)))
		nets = append(nets, money(LineNet(line)))
	}

	email := order.CustomerEmail()
	if email == "" {
		email = notAvailable
	}
	totals := OrderTotals(order)
	created := order.CreatedAt.In(loc)

	return []string{
		order.ShortID(),
		created.Format(dateLayout),
		created.Format(timeLayout),
		email,
		strings.Join(products, ";"),
		strings.Join(quantities, ";"),
		strings.Join(prices, ";"),
		strings.Join(discounts, ";"),
		strings.Join(nets, ";"),
		money(totals.Gross),
		money(totals.Discount),
		money(totals.Net),
		detailPaymentMethod(order),
		strings.ToUpper(order.Status.String()),
	}
}

// ExportCSV renders the report as comma separated text. Fields containing
// a comma, quote or newline are quoted. Nothing is returned unless the
// whole document was written.
func ExportCSV(in ExportInput) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	for i, s := range buildSections(in) {
		if i > 0 {
			if err := w.Write([]string{}); err != nil {
				return nil, fmt.Errorf("write separator: %w", err)
			}
		}
		if s.title != "" {
			if err := w.Write([]string{s.title}); err != nil {
				return nil, fmt.Errorf("write %s title: %w", s.sheet, err)
			}
		}
		if len(s.header) > 0 {
			if err := w.Write(s.header); err != nil {
				return nil, fmt.Errorf("write %s header: %w", s.sheet, err)
			}
		}
		if err := w.WriteAll(s.rows); err != nil {
			return nil, fmt.Errorf("write %s rows: %w", s.sheet, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush report: %w", err)
	}
	return buf.Bytes(), nil
}

// Filename names a downloadable report, e.g.
// orders-report-monthly-2026-10-17.csv.
func Filename(kind enum.PeriodKind, date time.Time, ext string) string {
	return fmt.Sprintf("orders-report-%s-%s.%s", kind, date.Format(dateLayout), strings.TrimPrefix(ext, "."))
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

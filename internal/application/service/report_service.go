package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/farmstore-admin/internal/clock"
	"github.com/sangkips/farmstore-admin/internal/config"
	"github.com/sangkips/farmstore-admin/internal/domain/entity"
	"github.com/sangkips/farmstore-admin/internal/domain/enum"
	"github.com/sangkips/farmstore-admin/internal/domain/report"
	"github.com/sangkips/farmstore-admin/internal/domain/repository"
	"github.com/sangkips/farmstore-admin/internal/infrastructure/metrics"
	"github.com/sangkips/farmstore-admin/pkg/apperror"
	"github.com/sangkips/farmstore-admin/pkg/logger"
	"github.com/sangkips/farmstore-admin/pkg/pagination"
	"go.uber.org/zap"
)

const dateParamLayout = "2006-01-02"

// Export formats
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// ReportService builds order report views and exports
type ReportService struct {
	orderRepo    repository.OrderRepository
	productRepo  repository.ProductRepository
	settingsRepo repository.SettingsRepository
	snapshots    *SnapshotStore
	clock        clock.Clock
	metrics      *metrics.ReportMetrics
	cfg          config.ReportConfig
}

// NewReportService creates a new report service
func NewReportService(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	settingsRepo repository.SettingsRepository,
	snapshots *SnapshotStore,
	clk clock.Clock,
	reportMetrics *metrics.ReportMetrics,
	cfg config.ReportConfig,
) *ReportService {
	return &ReportService{
		orderRepo:    orderRepo,
		productRepo:  productRepo,
		settingsRepo: settingsRepo,
		snapshots:    snapshots,
		clock:        clk,
		metrics:      reportMetrics,
		cfg:          cfg,
	}
}

// ReportInput selects the window and list filters of a report
type ReportInput struct {
	UserID    uuid.UUID
	Period    string
	StartDate string
	EndDate   string
	Status    string
	Search    string
	Refresh   bool
}

// OverviewInput is a ReportInput plus the page of the order list
type OverviewInput struct {
	ReportInput
	Pagination pagination.PaginationParams
}

// ExportInput is a ReportInput plus the document format
type ExportInput struct {
	ReportInput
	Format    string
	UserEmail string
}

// ReportOverview is the dashboard view of one window
type ReportOverview struct {
	Period     enum.PeriodKind
	Label      string
	Window     report.Window
	Prior      report.Window
	Current    report.PeriodStats
	Previous   report.PeriodStats
	Comparison report.Comparison
	Breakdowns report.Breakdowns
	Orders     *pagination.PaginatedResult[entity.Order]
	Version    uint64
	FetchedAt  time.Time
}

// ReportFile is a generated export document
type ReportFile struct {
	Filename    string
	ContentType string
	Content     []byte
}

// reportScope is a resolved request: windows plus the book serving them.
type reportScope struct {
	kind     enum.PeriodKind
	current  report.Window
	prior    report.Window
	snapshot *Snapshot
	status   report.StatusFilter
	search   string
}

// Overview returns stats, comparison and breakdowns for the whole window
// along with a page of the filtered order list.
func (s *ReportService) Overview(ctx context.Context, input *OverviewInput) (*ReportOverview, error) {
	started := time.Now()
	scope, err := s.scope(ctx, &input.ReportInput)
	if err != nil {
		return nil, err
	}

	book := scope.snapshot.Book
	current := book.Stats(scope.current)
	previous := book.Stats(scope.prior)
	orders, version := book.Orders(scope.current)

	names, err := s.productNames(ctx, orders)
	if err != nil {
		return nil, err
	}

	filtered := report.Filter(orders, scope.status, scope.search)
	params := input.Pagination
	overview := &ReportOverview{
		Period:     scope.kind,
		Label:      report.Label(scope.kind, scope.current),
		Window:     scope.current,
		Prior:      scope.prior,
		Current:    current,
		Previous:   previous,
		Comparison: report.Compare(current, previous),
		Breakdowns: report.BuildBreakdowns(orders, names),
		Orders:     pagination.Paginate(filtered, &params),
		Version:    version,
		FetchedAt:  scope.snapshot.FetchedAt,
	}

	s.metrics.ObserveBuild(scope.kind.String(), time.Since(started))
	return overview, nil
}

// Export renders every order of the requested window as a CSV or XLSX
// document. List filters are validated but do not narrow the document.
func (s *ReportService) Export(ctx context.Context, input *ExportInput) (*ReportFile, error) {
	format := strings.ToLower(strings.TrimSpace(input.Format))
	if format == "" {
		format = FormatCSV
	}
	if format != FormatCSV && format != FormatXLSX {
		return nil, apperror.NewBadRequestError("Unsupported export format, expected csv or xlsx")
	}

	scope, err := s.scope(ctx, &input.ReportInput)
	if err != nil {
		return nil, err
	}

	orders, _ := scope.snapshot.Book.Orders(scope.current)
	names, err := s.productNames(ctx, orders)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now().In(scope.current.Start.Location())
	doc := report.ExportInput{
		Title:        s.cfg.Title,
		Orders:       orders,
		ProductNames: names,
		Window:       scope.current,
		Label:        report.Label(scope.kind, scope.current),
		GeneratedBy:  input.UserEmail,
		GeneratedAt:  now,
	}

	file := &ReportFile{Filename: report.Filename(scope.kind, now, format)}
	switch format {
	case FormatXLSX:
		file.ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
		file.Content, err = report.ExportXLSX(doc)
	default:
		file.ContentType = "text/csv; charset=utf-8"
		file.Content, err = report.ExportCSV(doc)
	}
	if err != nil {
		s.metrics.ObserveExport(format, metrics.ExportFailed, 0)
		logger.FromContext(ctx).Error("report export failed",
			zap.String("format", format),
			zap.String("period", scope.kind.String()),
			zap.Error(err),
		)
		return nil, apperror.ErrReportFailed
	}

	s.metrics.ObserveExport(format, metrics.ExportOK, len(file.Content))
	return file, nil
}

func (s *ReportService) scope(ctx context.Context, input *ReportInput) (*reportScope, error) {
	status, err := report.ParseStatusFilter(input.Status)
	if err != nil {
		return nil, apperror.NewBadRequestError("Invalid status filter")
	}

	loc, defaultKind, err := s.preferences(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	kind := defaultKind
	if input.Period != "" {
		if kind, err = enum.ParsePeriodKind(input.Period); err != nil {
			return nil, apperror.NewBadRequestError("Invalid period, expected daily, weekly, monthly, yearly or custom")
		}
	}

	start, err := parseDateParam("start_date", input.StartDate, loc)
	if err != nil {
		return nil, err
	}
	end, err := parseDateParam("end_date", input.EndDate, loc)
	if err != nil {
		return nil, err
	}
	if start != nil && end != nil && end.Before(*start) {
		return nil, apperror.NewBadRequestError("end_date must not be before start_date")
	}

	now := s.clock.Now().In(loc)
	current := report.Resolve(kind, now, start, end)
	prior := report.Previous(kind, current)

	snap, err := s.snapshot(ctx, kind, current, prior, input.Refresh)
	if err != nil {
		return nil, err
	}

	return &reportScope{
		kind:     kind,
		current:  current,
		prior:    prior,
		snapshot: snap,
		status:   status,
		search:   strings.TrimSpace(input.Search),
	}, nil
}

// snapshot returns the cached book for the window, fetching a fresh one
// on a miss or when refresh is set. Collapsed windows are never cached.
func (s *ReportService) snapshot(ctx context.Context, kind enum.PeriodKind, current, prior report.Window, refresh bool) (*Snapshot, error) {
	cacheable := !current.IsEmpty()
	if cacheable && !refresh {
		if snap, ok := s.snapshots.Get(kind, current, prior); ok {
			s.metrics.IncSnapshot(metrics.SnapshotHit)
			return snap, nil
		}
	}
	s.metrics.IncSnapshot(metrics.SnapshotMiss)

	from := FetchFrom(kind, current, prior)
	orders, err := s.orderRepo.ListCreatedBetween(ctx, from, current.End)
	if err != nil {
		return nil, fmt.Errorf("failed to load orders: %w", err)
	}

	snap := &Snapshot{
		Book:      report.NewOrderBook(orders),
		From:      from,
		FetchedAt: s.clock.Now(),
	}
	if cacheable {
		s.snapshots.Put(kind, current, snap)
	}

	logger.FromContext(ctx).Debug("order snapshot loaded",
		zap.String("period", kind.String()),
		zap.Time("from", from),
		zap.Time("to", current.End),
		zap.Int("orders", len(orders)),
	)
	return snap, nil
}

// preferences resolves the user's report timezone and default period,
// falling back to the configured ones.
func (s *ReportService) preferences(ctx context.Context, userID uuid.UUID) (*time.Location, enum.PeriodKind, error) {
	tz := s.cfg.Timezone
	period := s.cfg.DefaultPeriod

	if userID != uuid.Nil {
		settings, err := s.settingsRepo.GetByUserID(ctx, userID)
		if err != nil {
			return nil, "", fmt.Errorf("failed to load settings: %w", err)
		}
		if settings != nil {
			if settings.Timezone != "" {
				tz = settings.Timezone
			}
			if settings.DefaultReportPeriod != "" {
				period = settings.DefaultReportPeriod
			}
		}
	}

	loc, err := time.LoadLocation(tz)
	if err != nil {
		logger.FromContext(ctx).Warn("unknown report timezone, using UTC", zap.String("timezone", tz))
		loc = time.UTC
	}
	kind, err := enum.ParsePeriodKind(period)
	if err != nil {
		kind = enum.PeriodMonthly
	}
	return loc, kind, nil
}

// productNames looks up names for every product referenced by orders.
func (s *ReportService) productNames(ctx context.Context, orders []entity.Order) (map[uuid.UUID]string, error) {
	seen := make(map[uuid.UUID]struct{})
	var ids []uuid.UUID
	for i := range orders {
		for _, line := range orders[i].Lines {
			if _, ok := seen[line.ProductID]; ok {
				continue
			}
			seen[line.ProductID] = struct{}{}
			ids = append(ids, line.ProductID)
		}
	}
	if len(ids) == 0 {
		return map[uuid.UUID]string{}, nil
	}

	names, err := s.productRepo.NameLookup(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load product names: %w", err)
	}
	return names, nil
}

func parseDateParam(field, value string, loc *time.Location) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(dateParamLayout, value, loc)
	if err != nil {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: field, Message: "must be a date in YYYY-MM-DD format"},
		})
	}
	return &t, nil
}

package service

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/sangkips/farmstore-admin/internal/domain/enum"
	"github.com/sangkips/farmstore-admin/internal/domain/report"
	"github.com/sangkips/farmstore-admin/internal/domain/repository"
	"github.com/sangkips/farmstore-admin/internal/infrastructure/metrics"
	"github.com/sangkips/farmstore-admin/pkg/apperror"
	"github.com/sangkips/farmstore-admin/pkg/logger"
	"go.uber.org/zap"
)

// OrderService handles order status write-back
type OrderService struct {
	orderRepo repository.OrderRepository
	snapshots *SnapshotStore
	metrics   *metrics.ReportMetrics

	mu       sync.Mutex
	inFlight map[uuid.UUID]struct{}
}

// NewOrderService creates a new order service
func NewOrderService(orderRepo repository.OrderRepository, snapshots *SnapshotStore, reportMetrics *metrics.ReportMetrics) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		snapshots: snapshots,
		metrics:   reportMetrics,
		inFlight:  make(map[uuid.UUID]struct{}),
	}
}

// UpdateStatusInput represents the input for changing an order status
type UpdateStatusInput struct {
	OrderID uuid.UUID
	Status  string
}

// UpdateStatus changes an order's status. When the order is part of a
// cached report, the change is applied to that report first and rolled
// back if the write fails; every other cached report holding the order
// is brought in line afterwards.
func (s *OrderService) UpdateStatus(ctx context.Context, input *UpdateStatusInput) (*report.UpdateResult, error) {
	status, err := enum.ParseOrderStatus(input.Status)
	if err != nil {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "status", Message: "must be one of pending, processing, completed, cancelled"},
		})
	}

	if !s.begin(input.OrderID) {
		s.metrics.IncStatusUpdate(metrics.StatusUpdateConflict)
		return nil, apperror.NewConflictError("A status update for this order is already in progress")
	}
	defer s.finish(input.OrderID)

	write := func(ctx context.Context) error {
		return s.orderRepo.UpdateStatus(ctx, input.OrderID, status)
	}

	books := s.snapshots.Containing(input.OrderID)
	if len(books) == 0 {
		return s.updateUncached(ctx, input.OrderID, status, write)
	}

	result, err := books[0].UpdateStatus(ctx, input.OrderID, status, write)
	switch {
	case errors.Is(err, report.ErrUpdateInFlight):
		s.metrics.IncStatusUpdate(metrics.StatusUpdateConflict)
		return nil, apperror.NewConflictError("A status update for this order is already in progress")
	case errors.Is(err, report.ErrOrderNotInBook):
		// evicted between lookup and update
		return s.updateUncached(ctx, input.OrderID, status, write)
	case err != nil:
		s.metrics.IncStatusUpdate(metrics.StatusUpdateRolledBack)
		logger.FromContext(ctx).Warn("order status update rolled back",
			zap.String("order_id", input.OrderID.String()),
			zap.String("status", status.String()),
			zap.Error(err),
		)
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NewNotFoundError("Order")
		}
		return nil, err
	}

	for _, book := range books[1:] {
		book.SetStatus(input.OrderID, status)
	}
	s.metrics.IncStatusUpdate(metrics.StatusUpdateApplied)
	return &result, nil
}

func (s *OrderService) updateUncached(ctx context.Context, id uuid.UUID, status enum.OrderStatus, write report.StatusWriter) (*report.UpdateResult, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}

	if err := write(ctx); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NewNotFoundError("Order")
		}
		return nil, err
	}

	s.metrics.IncStatusUpdate(metrics.StatusUpdateApplied)
	return &report.UpdateResult{
		OrderID:  id,
		Previous: order.Status,
		Status:   status,
		Outcome:  report.OutcomeApplied,
	}, nil
}

// begin marks the order as being written. It reports false when another
// write for the same order has not finished yet.
func (s *OrderService) begin(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inFlight[id]; busy {
		return false
	}
	s.inFlight[id] = struct{}{}
	return true
}

func (s *OrderService) finish(id uuid.UUID) {
	s.mu.Lock()
	delete(s.inFlight, id)
	s.mu.Unlock()
}

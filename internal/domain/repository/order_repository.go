package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/farmstore-admin/internal/domain/entity"
	"github.com/sangkips/farmstore-admin/internal/domain/enum"
)

// ErrNotFound is returned by writes that target a missing record
var ErrNotFound = errors.New("record not found")

// OrderRepository defines the interface for order data operations
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	// ListCreatedBetween returns orders created inside [start, end], newest
	// first, with customer, lines (and their products) and payments loaded.
	ListCreatedBetween(ctx context.Context, start, end time.Time) ([]entity.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enum.OrderStatus) error
}

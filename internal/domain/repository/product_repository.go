package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/farmstore-admin/internal/domain/entity"
)

// ProductRepository defines the interface for product data operations
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	// NameLookup maps the given product IDs to their names in a single
	// query. Unknown IDs are absent from the result.
	NameLookup(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error)
}

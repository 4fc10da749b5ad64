package repository

import (
	"context"

	"fulfillment-service/internal/domain"
)

// ProductRepository is the catalog accessor: read-only lookups of the
// product snapshot. Stock decrement happens inside the checkout transaction
// (see OrderRepository.CreateCheckout).
type ProductRepository interface {
	FindByID(ctx context.Context, id uint64) (*domain.Product, error)
	FindByIDs(ctx context.Context, ids []uint64) (map[uint64]*domain.Product, error)
}

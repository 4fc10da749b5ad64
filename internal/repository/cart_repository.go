package repository

import (
	"context"

	"fulfillment-service/internal/domain"
)

type CartRepository interface {
	// FindActiveByUser returns nil when the user has no active cart.
	FindActiveByUser(ctx context.Context, userID uint64) (*domain.Cart, error)
	Create(ctx context.Context, cart *domain.Cart) error
	// Save persists item list changes made in memory.
	Save(ctx context.Context, cart *domain.Cart) error
}

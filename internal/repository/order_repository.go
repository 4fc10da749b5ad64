package repository

import (
	"context"
	"time"

	"fulfillment-service/internal/domain"
)

// OrderRepository owns order persistence. Transition methods are guarded:
// they match on the current status in the write itself and report whether a
// row actually changed, which is the concurrency control for competing
// vendor actions and the SLA sweeper.
type OrderRepository interface {
	// CreateCheckout applies a checkout plan atomically: conditional stock
	// decrement per item, order inserts and cart deactivation all commit or
	// none do. Returns domain.ErrInsufficientStock when a decrement would go
	// negative.
	CreateCheckout(ctx context.Context, plan *domain.CheckoutPlan) error

	// Create inserts a single order outside checkout (subscription runs).
	Create(ctx context.Context, order *domain.Order) error

	FindByID(ctx context.Context, id uint64) (*domain.Order, error)
	FindForUser(ctx context.Context, id, userID uint64) (*domain.Order, error)
	FindByUser(ctx context.Context, userID uint64) ([]domain.Order, error)
	FindForVendor(ctx context.Context, id, vendorID uint64) (*domain.Order, error)
	FindByVendor(ctx context.Context, vendorID uint64, status domain.OrderStatus, page, limit int) ([]domain.Order, int64, error)

	// Accept moves a PLACED / PENDING_VENDOR_ACCEPTANCE order to ACCEPTED.
	Accept(ctx context.Context, id, vendorID uint64, at time.Time, prepMinutes int) (bool, error)

	// AutoAccept is the second write after checkout for auto-accepting
	// vendors, preserving the PENDING_VENDOR_ACCEPTANCE audit trail.
	AutoAccept(ctx context.Context, id uint64, at time.Time) (bool, error)

	Reject(ctx context.Context, id, vendorID uint64, reason string) (bool, error)

	// SetStatus advances preparing/ready/delivered, matching on the expected
	// current status.
	SetStatus(ctx context.Context, id, vendorID uint64, from, to domain.OrderStatus, at time.Time) (bool, error)

	// ExpireOverdueSLA bulk-cancels orders still pending acceptance past
	// their deadline. Idempotent: a second run matches nothing.
	ExpireOverdueSLA(ctx context.Context, now time.Time, reason string) (int64, error)
}

package repository

import (
	"context"
	"time"

	"fulfillment-service/internal/domain"
)

type VendorRepository interface {
	FindByID(ctx context.Context, id uint64) (*domain.Vendor, error)
	FindByIDs(ctx context.Context, ids []uint64) (map[uint64]*domain.Vendor, error)
	Heartbeat(ctx context.Context, vendorID uint64, at time.Time) error
	// MarkStaleOffline flips isOnline off for vendors silent since cutoff.
	MarkStaleOffline(ctx context.Context, cutoff time.Time) (int64, error)
}

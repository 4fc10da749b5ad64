package repository

import (
	"context"
	"time"

	"fulfillment-service/internal/domain"
)

type RiderOrderRepository interface {
	FindForRider(ctx context.Context, id, riderID uint64) (*domain.RiderOrder, error)
	FindByRider(ctx context.Context, riderID uint64, status domain.RiderStatus) ([]domain.RiderOrder, error)

	// SetStatus writes the next status only when the row still holds the
	// expected current one.
	SetStatus(ctx context.Context, id, riderID uint64, from, to domain.RiderStatus, at time.Time) (bool, error)

	AttachProof(ctx context.Context, id, riderID uint64, proof domain.DeliveryProof) (bool, error)
	DeliveredSince(ctx context.Context, riderID uint64, since time.Time) ([]domain.RiderOrder, error)
}

package repository

import (
	"context"
	"time"

	"fulfillment-service/internal/domain"
)

type SubscriptionRepository interface {
	Create(ctx context.Context, sub *domain.Subscription) error
	FindByUser(ctx context.Context, userID uint64) ([]domain.Subscription, error)
	UpdateStatus(ctx context.Context, id, userID uint64, status domain.SubscriptionStatus) (bool, error)
	// FindDue returns active subscriptions whose next delivery date is not
	// after the given instant.
	FindDue(ctx context.Context, by time.Time) ([]domain.Subscription, error)
	// AdvanceNextDelivery moves the schedule forward after materialization.
	AdvanceNextDelivery(ctx context.Context, id uint64, next time.Time) error
}

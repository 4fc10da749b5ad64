package mysql

import (
	"context"
	"time"

	"fulfillment-service/internal/domain"
	"fulfillment-service/internal/repository"

	"gorm.io/gorm"
)

type subscriptionRepo struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) repository.SubscriptionRepository {
	return &subscriptionRepo{db: db}
}

func (r *subscriptionRepo) Create(ctx context.Context, sub *domain.Subscription) error {
	return r.db.WithContext(ctx).Create(sub).Error
}

func (r *subscriptionRepo) FindByUser(ctx context.Context, userID uint64) ([]domain.Subscription, error) {
	var out []domain.Subscription
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&out).Error
	return out, err
}

func (r *subscriptionRepo) UpdateStatus(ctx context.Context, id, userID uint64, status domain.SubscriptionStatus) (bool, error) {
	res := r.db.WithContext(ctx).Model(&domain.Subscription{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("status", status)
	return res.RowsAffected > 0, res.Error
}

func (r *subscriptionRepo) FindDue(ctx context.Context, by time.Time) ([]domain.Subscription, error) {
	var out []domain.Subscription
	err := r.db.WithContext(ctx).
		Where("status = ? AND next_delivery_date <= ?", domain.SubscriptionActive, by).
		Find(&out).Error
	return out, err
}

func (r *subscriptionRepo) AdvanceNextDelivery(ctx context.Context, id uint64, next time.Time) error {
	return r.db.WithContext(ctx).Model(&domain.Subscription{}).
		Where("id = ?", id).
		Update("next_delivery_date", next).Error
}

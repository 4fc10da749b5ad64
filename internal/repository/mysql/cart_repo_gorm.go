package mysql

import (
	"context"
	"errors"

	"fulfillment-service/internal/domain"
	"fulfillment-service/internal/repository"

	"gorm.io/gorm"
)

type cartRepo struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) repository.CartRepository {
	return &cartRepo{db: db}
}

func (r *cartRepo) FindActiveByUser(ctx context.Context, userID uint64) (*domain.Cart, error) {
	var c domain.Cart
	err := r.db.WithContext(ctx).
		Preload("ExpressItems").
		Preload("MarketplaceItems").
		Where("user_id = ? AND is_active = ?", userID, true).
		First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *cartRepo) Create(ctx context.Context, cart *domain.Cart) error {
	return r.db.WithContext(ctx).Create(cart).Error
}

func (r *cartRepo) Save(ctx context.Context, cart *domain.Cart) error {
	return r.db.WithContext(ctx).
		Session(&gorm.Session{FullSaveAssociations: true}).
		Save(cart).Error
}

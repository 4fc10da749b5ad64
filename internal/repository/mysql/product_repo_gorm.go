package mysql

import (
	"context"
	"errors"

	"fulfillment-service/internal/domain"
	"fulfillment-service/internal/repository"

	"gorm.io/gorm"
)

type productRepo struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) repository.ProductRepository {
	return &productRepo{db: db}
}

func (r *productRepo) FindByID(ctx context.Context, id uint64) (*domain.Product, error) {
	var p domain.Product
	err := r.db.WithContext(ctx).First(&p, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *productRepo) FindByIDs(ctx context.Context, ids []uint64) (map[uint64]*domain.Product, error) {
	var rows []domain.Product
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[uint64]*domain.Product, len(rows))
	for i := range rows {
		out[rows[i].ID] = &rows[i]
	}
	return out, nil
}

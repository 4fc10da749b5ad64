package mysql

import (
	"context"
	"errors"
	"time"

	"fulfillment-service/internal/domain"
	"fulfillment-service/internal/repository"

	"gorm.io/gorm"
)

type vendorRepo struct {
	db *gorm.DB
}

func NewVendorRepository(db *gorm.DB) repository.VendorRepository {
	return &vendorRepo{db: db}
}

func (r *vendorRepo) FindByID(ctx context.Context, id uint64) (*domain.Vendor, error) {
	var v domain.Vendor
	err := r.db.WithContext(ctx).First(&v, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &v, nil
}

func (r *vendorRepo) FindByIDs(ctx context.Context, ids []uint64) (map[uint64]*domain.Vendor, error) {
	var rows []domain.Vendor
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[uint64]*domain.Vendor, len(rows))
	for i := range rows {
		out[rows[i].ID] = &rows[i]
	}
	return out, nil
}

func (r *vendorRepo) Heartbeat(ctx context.Context, vendorID uint64, at time.Time) error {
	return r.db.WithContext(ctx).Model(&domain.Vendor{}).
		Where("id = ?", vendorID).
		Updates(map[string]any{"last_seen": at, "is_online": true}).Error
}

func (r *vendorRepo) MarkStaleOffline(ctx context.Context, cutoff time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Model(&domain.Vendor{}).
		Where("is_online = ? AND last_seen < ?", true, cutoff).
		Update("is_online", false)
	return res.RowsAffected, res.Error
}

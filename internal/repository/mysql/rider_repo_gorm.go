package mysql

import (
	"context"
	"errors"
	"time"

	"fulfillment-service/internal/domain"
	"fulfillment-service/internal/repository"

	"gorm.io/gorm"
)

type riderRepo struct {
	db *gorm.DB
}

func NewRiderOrderRepository(db *gorm.DB) repository.RiderOrderRepository {
	return &riderRepo{db: db}
}

func (r *riderRepo) FindForRider(ctx context.Context, id, riderID uint64) (*domain.RiderOrder, error) {
	var o domain.RiderOrder
	err := r.db.WithContext(ctx).
		Where("id = ? AND rider_id = ?", id, riderID).
		First(&o).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &o, nil
}

func (r *riderRepo) FindByRider(ctx context.Context, riderID uint64, status domain.RiderStatus) ([]domain.RiderOrder, error) {
	q := r.db.WithContext(ctx).Where("rider_id = ?", riderID)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var out []domain.RiderOrder
	err := q.Order("created_at DESC").Find(&out).Error
	return out, err
}

func (r *riderRepo) SetStatus(ctx context.Context, id, riderID uint64, from, to domain.RiderStatus, at time.Time) (bool, error) {
	fields := map[string]any{"status": to}
	switch to {
	case domain.RiderPicked:
		fields["picked_at"] = at
	case domain.RiderDelivered:
		fields["delivered_at"] = at
	}

	res := r.db.WithContext(ctx).Model(&domain.RiderOrder{}).
		Where("id = ? AND rider_id = ? AND status = ?", id, riderID, from).
		Updates(fields)
	return res.RowsAffected > 0, res.Error
}

func (r *riderRepo) AttachProof(ctx context.Context, id, riderID uint64, proof domain.DeliveryProof) (bool, error) {
	res := r.db.WithContext(ctx).Model(&domain.RiderOrder{}).
		Where("id = ? AND rider_id = ?", id, riderID).
		Updates(map[string]any{
			"proof_photo_url":   proof.PhotoURL,
			"proof_notes":       proof.Notes,
			"proof_uploaded_at": proof.UploadedAt,
		})
	return res.RowsAffected > 0, res.Error
}

func (r *riderRepo) DeliveredSince(ctx context.Context, riderID uint64, since time.Time) ([]domain.RiderOrder, error) {
	var out []domain.RiderOrder
	err := r.db.WithContext(ctx).
		Where("rider_id = ? AND status = ? AND updated_at >= ?", riderID, domain.RiderDelivered, since).
		Find(&out).Error
	return out, err
}

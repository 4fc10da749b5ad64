package mysql

import (
	"context"
	"errors"
	"time"

	"fulfillment-service/internal/domain"
	"fulfillment-service/internal/repository"

	"gorm.io/gorm"
)

type orderRepo struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) repository.OrderRepository {
	return &orderRepo{db: db}
}

func (r *orderRepo) CreateCheckout(ctx context.Context, plan *domain.CheckoutPlan) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, order := range plan.Orders {
			for _, it := range order.Items {
				// Conditional decrement: only when the remaining quantity
				// stays non-negative. A miss aborts the whole checkout.
				res := tx.Model(&domain.Product{}).
					Where("id = ? AND stock_quantity >= ?", it.ProductID, it.Quantity).
					UpdateColumn("stock_quantity", gorm.Expr("stock_quantity - ?", it.Quantity))
				if res.Error != nil {
					return res.Error
				}
				if res.RowsAffected == 0 {
					return domain.ErrInsufficientStock
				}
			}
		}

		for _, order := range plan.Orders {
			if err := tx.Create(order).Error; err != nil {
				return err
			}
		}

		// Deactivating the cart inside the same transaction, guarded on
		// is_active, is what prevents a concurrent double-split.
		res := tx.Model(&domain.Cart{}).
			Where("id = ? AND is_active = ?", plan.CartID, true).
			Update("is_active", false)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrStateConflict
		}

		if err := tx.Where("cart_id = ?", plan.CartID).Delete(&domain.CartItem{}).Error; err != nil {
			return err
		}
		return tx.Where("cart_id = ?", plan.CartID).Delete(&domain.MarketplaceCartItem{}).Error
	})
}

func (r *orderRepo) Create(ctx context.Context, order *domain.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *orderRepo) FindByID(ctx context.Context, id uint64) (*domain.Order, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *orderRepo) FindForUser(ctx context.Context, id, userID uint64) (*domain.Order, error) {
	return r.findOne(ctx, "id = ? AND user_id = ?", id, userID)
}

func (r *orderRepo) FindForVendor(ctx context.Context, id, vendorID uint64) (*domain.Order, error) {
	return r.findOne(ctx, "id = ? AND vendor_id = ?", id, vendorID)
}

func (r *orderRepo) findOne(ctx context.Context, query string, args ...any) (*domain.Order, error) {
	var o domain.Order
	err := r.db.WithContext(ctx).Preload("Items").Where(query, args...).First(&o).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &o, nil
}

func (r *orderRepo) FindByUser(ctx context.Context, userID uint64) ([]domain.Order, error) {
	var out []domain.Order
	err := r.db.WithContext(ctx).Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&out).Error
	return out, err
}

func (r *orderRepo) FindByVendor(ctx context.Context, vendorID uint64, status domain.OrderStatus, page, limit int) ([]domain.Order, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Order{}).Where("vendor_id = ?", vendorID)
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var out []domain.Order
	err := q.Preload("Items").
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&out).Error
	return out, total, err
}

func (r *orderRepo) Accept(ctx context.Context, id, vendorID uint64, at time.Time, prepMinutes int) (bool, error) {
	ready := at.Add(time.Duration(prepMinutes) * time.Minute)
	res := r.db.WithContext(ctx).Model(&domain.Order{}).
		Where("id = ? AND vendor_id = ? AND status IN ?", id, vendorID,
			[]domain.OrderStatus{domain.StatusPlaced, domain.StatusPendingVendorAcceptance}).
		Updates(map[string]any{
			"status":             domain.StatusAccepted,
			"accepted_at":        at,
			"prep_time_minutes":  prepMinutes,
			"estimated_ready_at": ready,
		})
	return res.RowsAffected > 0, res.Error
}

func (r *orderRepo) AutoAccept(ctx context.Context, id uint64, at time.Time) (bool, error) {
	res := r.db.WithContext(ctx).Model(&domain.Order{}).
		Where("id = ? AND status = ?", id, domain.StatusPendingVendorAcceptance).
		Updates(map[string]any{
			"status":      domain.StatusAccepted,
			"accepted_at": at,
		})
	return res.RowsAffected > 0, res.Error
}

func (r *orderRepo) Reject(ctx context.Context, id, vendorID uint64, reason string) (bool, error) {
	res := r.db.WithContext(ctx).Model(&domain.Order{}).
		Where("id = ? AND vendor_id = ? AND status IN ?", id, vendorID,
			[]domain.OrderStatus{domain.StatusPlaced, domain.StatusPendingVendorAcceptance}).
		Updates(map[string]any{
			"status":           domain.StatusRejected,
			"rejection_reason": reason,
		})
	return res.RowsAffected > 0, res.Error
}

func (r *orderRepo) SetStatus(ctx context.Context, id, vendorID uint64, from, to domain.OrderStatus, at time.Time) (bool, error) {
	fields := map[string]any{"status": to}
	switch to {
	case domain.StatusPreparing:
		fields["prepared_at"] = at
	case domain.StatusReady:
		fields["ready_at"] = at
	case domain.StatusDelivered:
		fields["delivered_at"] = at
	}

	res := r.db.WithContext(ctx).Model(&domain.Order{}).
		Where("id = ? AND vendor_id = ? AND status = ?", id, vendorID, from).
		Updates(fields)
	return res.RowsAffected > 0, res.Error
}

func (r *orderRepo) ExpireOverdueSLA(ctx context.Context, now time.Time, reason string) (int64, error) {
	res := r.db.WithContext(ctx).Model(&domain.Order{}).
		Where("status = ? AND sla_accept_by < ?", domain.StatusPendingVendorAcceptance, now).
		Updates(map[string]any{
			"status":            domain.StatusCancelled,
			"rejection_reason":  reason,
			"sla_accepted_late": true,
		})
	return res.RowsAffected, res.Error
}

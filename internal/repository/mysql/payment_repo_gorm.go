package mysql

import (
	"context"
	"errors"

	"fulfillment-service/internal/domain"
	"fulfillment-service/internal/repository"

	"gorm.io/gorm"
)

type paymentRepo struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) repository.PaymentRepository {
	return &paymentRepo{db: db}
}

func (r *paymentRepo) FindGroupForUser(ctx context.Context, paymentGroupID string, userID uint64) ([]domain.Order, error) {
	var out []domain.Order
	err := r.db.WithContext(ctx).Preload("Items").
		Where("payment_group_id = ? AND user_id = ?", paymentGroupID, userID).
		Find(&out).Error
	return out, err
}

func (r *paymentRepo) SetGatewayOrder(ctx context.Context, paymentGroupID string, userID uint64, gatewayOrderID string) (int64, error) {
	res := r.db.WithContext(ctx).Model(&domain.Order{}).
		Where("payment_group_id = ? AND user_id = ?", paymentGroupID, userID).
		Updates(map[string]any{
			"payment_status":   domain.PaymentPending,
			"gateway_order_id": gatewayOrderID,
		})
	return res.RowsAffected, res.Error
}

func (r *paymentRepo) MarkGroupPaid(ctx context.Context, paymentGroupID string, userID uint64, gatewayOrderID, gatewayPaymentID string) (int64, error) {
	res := r.db.WithContext(ctx).Model(&domain.Order{}).
		Where("payment_group_id = ? AND user_id = ? AND gateway_order_id = ?",
			paymentGroupID, userID, gatewayOrderID).
		Updates(map[string]any{
			"payment_status":     domain.PaymentPaid,
			"gateway_payment_id": gatewayPaymentID,
		})
	return res.RowsAffected, res.Error
}

func (r *paymentRepo) RecordWebhookEvent(ctx context.Context, gatewayOrderID, eventID string, captured bool, gatewayPaymentID string) (bool, error) {
	processed := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// The unique (gateway_order_id, event_id) key is the idempotency
		// guard; a duplicate insert means the event was handled before.
		err := tx.Create(&domain.PaymentEvent{
			GatewayOrderID: gatewayOrderID,
			EventID:        eventID,
		}).Error
		if err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil
			}
			return err
		}
		processed = true

		if !captured {
			return nil
		}
		return tx.Model(&domain.Order{}).
			Where("gateway_order_id = ?", gatewayOrderID).
			Updates(map[string]any{
				"payment_status":     domain.PaymentPaid,
				"gateway_payment_id": gatewayPaymentID,
			}).Error
	})
	return processed, err
}

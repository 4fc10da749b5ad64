package repository

import (
	"context"

	"fulfillment-service/internal/domain"
)

// PaymentRepository mutates payment state on order groups. Both mutation
// paths are idempotent: the verify path matches on the expected gateway
// order id, the webhook path records each event exactly once.
type PaymentRepository interface {
	FindGroupForUser(ctx context.Context, paymentGroupID string, userID uint64) ([]domain.Order, error)

	// SetGatewayOrder stamps a freshly created gateway order onto the group
	// and resets paymentStatus to PENDING.
	SetGatewayOrder(ctx context.Context, paymentGroupID string, userID uint64, gatewayOrderID string) (int64, error)

	// MarkGroupPaid sets paymentStatus=PAID for orders in the group that also
	// match the expected gateway order id (cross-group replay defense).
	// Returns the number of matched orders.
	MarkGroupPaid(ctx context.Context, paymentGroupID string, userID uint64, gatewayOrderID, gatewayPaymentID string) (int64, error)

	// RecordWebhookEvent records a gateway event exactly once. It returns
	// processed=false without touching any order when the event id was seen
	// before. On a capture event the PAID write and the event record commit
	// in one transaction.
	RecordWebhookEvent(ctx context.Context, gatewayOrderID, eventID string, captured bool, gatewayPaymentID string) (bool, error)
}

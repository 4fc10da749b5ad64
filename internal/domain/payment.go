package domain

import "time"

// PaymentEvent is the processed-webhook-event set, one row per gateway
// event. The unique key on (gateway_order_id, event_id) is what makes
// at-least-once webhook delivery safe to replay.
type PaymentEvent struct {
	ID             uint64    `gorm:"primaryKey;autoIncrement"`
	GatewayOrderID string    `gorm:"size:64;uniqueIndex:idx_gateway_event"`
	EventID        string    `gorm:"size:64;uniqueIndex:idx_gateway_event"`
	CreatedAt      time.Time `gorm:"autoCreateTime"`
}

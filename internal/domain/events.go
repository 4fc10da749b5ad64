package domain

import "time"

type OrderCreatedEvent struct {
	OrderID        uint64            `json:"orderId"`
	OrderNumber    string            `json:"orderNumber"`
	PaymentGroupID string            `json:"paymentGroupId"`
	Type           OrderType         `json:"type"`
	Source         FulfillmentSource `json:"fulfillmentSource"`
	VendorID       *uint64           `json:"vendorId,omitempty"`
	TotalAmount    int64             `json:"totalAmount"`
	CreatedAt      time.Time         `json:"createdAt"`
}

type OrderStatusEvent struct {
	OrderID     uint64      `json:"orderId"`
	OrderNumber string      `json:"orderNumber"`
	Status      OrderStatus `json:"status"`
	At          time.Time   `json:"at"`
}

type PaymentCapturedEvent struct {
	PaymentGroupID   string    `json:"paymentGroupId,omitempty"`
	GatewayOrderID   string    `json:"gatewayOrderId"`
	GatewayPaymentID string    `json:"gatewayPaymentId"`
	At               time.Time `json:"at"`
}

package http

import "time"

type AddToCartRequest struct {
	ProductID uint64  `json:"productId" binding:"required"`
	Quantity  int     `json:"quantity" binding:"required,min=1"`
	StoreID   *uint64 `json:"storeId"`
}

type AcceptOrderRequest struct {
	PrepTime int `json:"prepTime" binding:"required,min=1"`
}

type RejectOrderRequest struct {
	Reason string `json:"reason"`
}

type RiderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type OTPRequest struct {
	OTP string `json:"otp" binding:"required"`
}

type ProofRequest struct {
	PhotoURL string `json:"photoUrl" binding:"required"`
	Notes    string `json:"notes"`
}

type CreatePaymentOrderRequest struct {
	PaymentGroupID string `json:"paymentGroupId" binding:"required"`
}

type VerifyPaymentRequest struct {
	PaymentGroupID   string `json:"paymentGroupId" binding:"required"`
	GatewayOrderID   string `json:"gatewayOrderId" binding:"required"`
	GatewayPaymentID string `json:"gatewayPaymentId" binding:"required"`
	Signature        string `json:"signature" binding:"required"`
}

type CreateSubscriptionRequest struct {
	ProductID        uint64     `json:"productId" binding:"required"`
	Frequency        string     `json:"frequency" binding:"required,oneof=MONTHLY YEARLY"`
	NextDeliveryDate *time.Time `json:"nextDeliveryDate"`
}

type SubscriptionStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=ACTIVE PAUSED CANCELLED"`
}

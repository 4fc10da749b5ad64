package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) CreatePaymentOrder(c *gin.Context) {
	var req CreatePaymentOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	p := principalFrom(c)
	info, err := h.payments.CreatePaymentOrder(c.Request.Context(), p.ID, req.PaymentGroupID)
	if err != nil {
		failure(c, err)
		return
	}
	success(c, http.StatusOK, info)
}

func (h *Handler) VerifyPayment(c *gin.Context) {
	var req VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	p := principalFrom(c)
	err := h.payments.VerifyPayment(c.Request.Context(), p.ID,
		req.PaymentGroupID, req.GatewayOrderID, req.GatewayPaymentID, req.Signature)
	if err != nil {
		failure(c, err)
		return
	}
	success(c, http.StatusOK, gin.H{"message": "Payment verified successfully"})
}

// PaymentWebhook verifies the gateway's signature over the raw body before
// anything else; replayed events are acknowledged without reprocessing.
func (h *Handler) PaymentWebhook(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		badRequest(c, "unreadable body")
		return
	}

	signature := c.GetHeader("X-Razorpay-Signature")
	if err := h.payments.HandleWebhook(c.Request.Context(), body, signature); err != nil {
		failure(c, err)
		return
	}
	success(c, http.StatusOK, gin.H{"message": "ok"})
}

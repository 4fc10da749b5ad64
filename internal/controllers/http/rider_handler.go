package http

import (
	"context"
	"net/http"

	"fulfillment-service/internal/domain"

	"github.com/gin-gonic/gin"
)

func (h *Handler) ListRiderOrders(c *gin.Context) {
	p := principalFrom(c)
	status := domain.RiderStatus(c.Query("status"))

	orders, err := h.riders.ListOrders(c.Request.Context(), p.ID, status)
	if err != nil {
		failure(c, err)
		return
	}
	success(c, http.StatusOK, orders)
}

func (h *Handler) GetRiderOrder(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	p := principalFrom(c)
	order, err := h.riders.GetOrder(c.Request.Context(), id, p.ID)
	if err != nil {
		failure(c, err)
		return
	}
	success(c, http.StatusOK, order)
}

func (h *Handler) UpdateRiderStatus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req RiderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	p := principalFrom(c)
	order, err := h.riders.UpdateStatus(c.Request.Context(), id, p.ID, domain.RiderStatus(req.Status))
	if err != nil {
		failure(c, err)
		return
	}
	success(c, http.StatusOK, order)
}

func (h *Handler) VerifyPickupOTP(c *gin.Context) {
	h.verifyOTP(c, h.riders.VerifyPickupOTP)
}

func (h *Handler) VerifyDeliveryOTP(c *gin.Context) {
	h.verifyOTP(c, h.riders.VerifyDeliveryOTP)
}

func (h *Handler) verifyOTP(c *gin.Context, fn func(ctx context.Context, orderID, riderID uint64, otp string) (*domain.RiderOrder, error)) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req OTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	p := principalFrom(c)
	order, err := fn(c.Request.Context(), id, p.ID, req.OTP)
	if err != nil {
		failure(c, err)
		return
	}
	success(c, http.StatusOK, order)
}

func (h *Handler) AttachDeliveryProof(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req ProofRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	p := principalFrom(c)
	proof, err := h.riders.AttachProof(c.Request.Context(), id, p.ID, req.PhotoURL, req.Notes)
	if err != nil {
		failure(c, err)
		return
	}
	success(c, http.StatusCreated, proof)
}

func (h *Handler) EarningsSummary(c *gin.Context) {
	p := principalFrom(c)
	summary, err := h.riders.EarningsSummary(c.Request.Context(), p.ID, c.Query("range"))
	if err != nil {
		failure(c, err)
		return
	}
	success(c, http.StatusOK, summary)
}

package http

import (
	"context"
	"net/http"
	"strconv"

	"fulfillment-service/internal/domain"

	"github.com/gin-gonic/gin"
)

func (h *Handler) ListVendorOrders(c *gin.Context) {
	p := principalFrom(c)
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	status := domain.OrderStatus(c.Query("status"))

	result, err := h.orders.ListVendorOrders(c.Request.Context(), p.ID, status, page, limit)
	if err != nil {
		failure(c, err)
		return
	}
	success(c, http.StatusOK, result)
}

func (h *Handler) GetVendorOrder(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	p := principalFrom(c)
	order, err := h.orders.GetVendorOrder(c.Request.Context(), id, p.ID)
	if err != nil {
		failure(c, err)
		return
	}
	success(c, http.StatusOK, order)
}

func (h *Handler) AcceptOrder(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req AcceptOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	p := principalFrom(c)
	order, err := h.orders.Accept(c.Request.Context(), id, p.ID, req.PrepTime)
	if err != nil {
		failure(c, err)
		return
	}
	success(c, http.StatusOK, order)
}

func (h *Handler) RejectOrder(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req RejectOrderRequest
	_ = c.ShouldBindJSON(&req)

	p := principalFrom(c)
	order, err := h.orders.Reject(c.Request.Context(), id, p.ID, req.Reason)
	if err != nil {
		failure(c, err)
		return
	}
	success(c, http.StatusOK, order)
}

func (h *Handler) MarkPreparing(c *gin.Context) {
	h.advanceOrder(c, h.orders.MarkPreparing)
}

func (h *Handler) MarkReady(c *gin.Context) {
	h.advanceOrder(c, h.orders.MarkReady)
}

func (h *Handler) MarkDelivered(c *gin.Context) {
	h.advanceOrder(c, h.orders.MarkDelivered)
}

func (h *Handler) advanceOrder(c *gin.Context, fn func(ctx context.Context, orderID, vendorID uint64) (*domain.Order, error)) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	p := principalFrom(c)
	order, err := fn(c.Request.Context(), id, p.ID)
	if err != nil {
		failure(c, err)
		return
	}
	success(c, http.StatusOK, order)
}

func (h *Handler) VendorHeartbeat(c *gin.Context) {
	p := principalFrom(c)
	if err := h.orders.VendorHeartbeat(c.Request.Context(), p.ID); err != nil {
		failure(c, err)
		return
	}
	success(c, http.StatusOK, gin.H{"online": true})
}

package http

import (
	"net/http"
	"strconv"

	"fulfillment-service/internal/domain"
	"fulfillment-service/internal/services"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	carts         *services.CartService
	checkout      *services.CheckoutService
	orders        *services.OrderService
	riders        *services.RiderService
	payments      *services.PaymentService
	subscriptions *services.SubscriptionService
}

func NewHandler(
	carts *services.CartService,
	checkout *services.CheckoutService,
	orders *services.OrderService,
	riders *services.RiderService,
	payments *services.PaymentService,
	subscriptions *services.SubscriptionService,
) *Handler {
	return &Handler{
		carts:         carts,
		checkout:      checkout,
		orders:        orders,
		riders:        riders,
		payments:      payments,
		subscriptions: subscriptions,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	// Webhook authenticates via its own body signature, not a principal.
	r.POST("/payments/webhook", h.PaymentWebhook)

	authed := r.Group("/", PrincipalMiddleware())

	customer := authed.Group("/", RequireRole(RoleCustomer))
	customer.POST("/cart/items", h.AddToCart)
	customer.GET("/cart", h.GetCart)
	customer.POST("/checkout", h.Checkout)
	customer.GET("/orders", h.ListOrders)
	customer.GET("/orders/:id", h.GetOrder)
	customer.POST("/payments/order", h.CreatePaymentOrder)
	customer.POST("/payments/verify", h.VerifyPayment)
	customer.POST("/subscriptions", h.CreateSubscription)
	customer.GET("/subscriptions", h.ListSubscriptions)
	customer.PATCH("/subscriptions/:id/status", h.UpdateSubscriptionStatus)

	vendor := authed.Group("/vendor", RequireRole(RoleVendor))
	vendor.GET("/orders", h.ListVendorOrders)
	vendor.GET("/orders/:id", h.GetVendorOrder)
	vendor.POST("/orders/:id/accept", h.AcceptOrder)
	vendor.POST("/orders/:id/reject", h.RejectOrder)
	vendor.POST("/orders/:id/preparing", h.MarkPreparing)
	vendor.POST("/orders/:id/ready", h.MarkReady)
	vendor.POST("/orders/:id/delivered", h.MarkDelivered)
	vendor.POST("/heartbeat", h.VendorHeartbeat)

	rider := authed.Group("/rider", RequireRole(RoleRider))
	rider.GET("/orders", h.ListRiderOrders)
	rider.GET("/orders/:id", h.GetRiderOrder)
	rider.POST("/orders/:id/status", h.UpdateRiderStatus)
	rider.POST("/orders/:id/pickup/verify-otp", h.VerifyPickupOTP)
	rider.POST("/orders/:id/delivery/verify-otp", h.VerifyDeliveryOTP)
	rider.POST("/orders/:id/proof", h.AttachDeliveryProof)
	rider.GET("/earnings/summary", h.EarningsSummary)
}

func pathID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		badRequest(c, "invalid id")
		return 0, false
	}
	return id, true
}

func (h *Handler) AddToCart(c *gin.Context) {
	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	p := principalFrom(c)
	cart, err := h.carts.AddToCart(c.Request.Context(), p.ID, req.ProductID, req.Quantity, req.StoreID)
	if err != nil {
		failure(c, err)
		return
	}
	success(c, http.StatusOK, cart)
}

func (h *Handler) GetCart(c *gin.Context) {
	p := principalFrom(c)
	cart, err := h.carts.GetCart(c.Request.Context(), p.ID)
	if err != nil {
		failure(c, err)
		return
	}
	success(c, http.StatusOK, cart)
}

func (h *Handler) Checkout(c *gin.Context) {
	p := principalFrom(c)
	result, err := h.checkout.Checkout(c.Request.Context(), p.ID)
	if err != nil {
		failure(c, err)
		return
	}
	success(c, http.StatusCreated, result)
}

func (h *Handler) ListOrders(c *gin.Context) {
	p := principalFrom(c)
	orders, err := h.orders.ListUserOrders(c.Request.Context(), p.ID)
	if err != nil {
		failure(c, err)
		return
	}

	out := make([]gin.H, 0, len(orders))
	for i := range orders {
		o := &orders[i]
		out = append(out, gin.H{
			"order":             o,
			"hasFragileItems":   o.HasFragileItems(),
			"hasLiveAnimalItems": o.HasLiveAnimalItems(),
		})
	}
	success(c, http.StatusOK, out)
}

func (h *Handler) GetOrder(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	p := principalFrom(c)
	order, err := h.orders.GetUserOrder(c.Request.Context(), id, p.ID)
	if err != nil {
		failure(c, err)
		return
	}
	success(c, http.StatusOK, order)
}

func (h *Handler) CreateSubscription(c *gin.Context) {
	var req CreateSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	p := principalFrom(c)
	sub, err := h.subscriptions.Create(c.Request.Context(), p.ID, req.ProductID,
		domain.SubscriptionFrequency(req.Frequency), req.NextDeliveryDate)
	if err != nil {
		failure(c, err)
		return
	}
	success(c, http.StatusCreated, sub)
}

func (h *Handler) ListSubscriptions(c *gin.Context) {
	p := principalFrom(c)
	subs, err := h.subscriptions.List(c.Request.Context(), p.ID)
	if err != nil {
		failure(c, err)
		return
	}
	success(c, http.StatusOK, subs)
}

func (h *Handler) UpdateSubscriptionStatus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req SubscriptionStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	p := principalFrom(c)
	if err := h.subscriptions.UpdateStatus(c.Request.Context(), id, p.ID,
		domain.SubscriptionStatus(req.Status)); err != nil {
		failure(c, err)
		return
	}
	success(c, http.StatusOK, gin.H{"message": "Subscription updated"})
}

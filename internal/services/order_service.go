package services

import (
	"context"
	"log"
	"time"

	"fulfillment-service/internal/domain"
	"fulfillment-service/internal/infra/rabbitmq"
	"fulfillment-service/internal/repository"
)

// OrderService applies the guarded vendor-side transitions and serves
// customer/vendor order reads. Every transition is enforced twice: against
// the in-memory transition table, then against the row's current status in
// the conditional write.
type OrderService struct {
	orders    repository.OrderRepository
	vendors   repository.VendorRepository
	publisher rabbitmq.PublisherInterface
}

func NewOrderService(orders repository.OrderRepository, vendors repository.VendorRepository, publisher rabbitmq.PublisherInterface) *OrderService {
	return &OrderService{orders: orders, vendors: vendors, publisher: publisher}
}

func (s *OrderService) Accept(ctx context.Context, orderID, vendorID uint64, prepMinutes int) (*domain.Order, error) {
	if prepMinutes <= 0 {
		return nil, domain.ErrPrepTimeRequired
	}

	vendor, err := s.vendors.FindByID(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	if vendor == nil || !vendor.Available() {
		return nil, domain.ErrVendorUnavailable
	}

	order, err := s.orders.FindForVendor(ctx, orderID, vendorID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrOrderNotFound
	}
	if !domain.CanTransition(order.Status, domain.StatusAccepted) {
		return nil, domain.ErrInvalidTransition
	}

	now := time.Now()
	if order.SLA.AcceptBy != nil && now.After(*order.SLA.AcceptBy) {
		return nil, domain.ErrSLAExpired
	}

	ok, err := s.orders.Accept(ctx, orderID, vendorID, now, prepMinutes)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrStateConflict
	}

	order.Status = domain.StatusAccepted
	order.AcceptedAt = &now
	order.PrepTimeMinutes = prepMinutes
	ready := now.Add(time.Duration(prepMinutes) * time.Minute)
	order.EstimatedReadyAt = &ready

	go s.publishStatus(context.Background(), order, now)
	return order, nil
}

func (s *OrderService) Reject(ctx context.Context, orderID, vendorID uint64, reason string) (*domain.Order, error) {
	if reason == "" {
		reason = "Rejected by vendor"
	}

	order, err := s.orders.FindForVendor(ctx, orderID, vendorID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrOrderNotFound
	}
	if !domain.CanTransition(order.Status, domain.StatusRejected) {
		return nil, domain.ErrInvalidTransition
	}

	ok, err := s.orders.Reject(ctx, orderID, vendorID, reason)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrStateConflict
	}

	order.Status = domain.StatusRejected
	order.RejectionReason = reason

	go s.publishStatus(context.Background(), order, time.Now())
	return order, nil
}

func (s *OrderService) MarkPreparing(ctx context.Context, orderID, vendorID uint64) (*domain.Order, error) {
	return s.advance(ctx, orderID, vendorID, domain.StatusPreparing)
}

func (s *OrderService) MarkReady(ctx context.Context, orderID, vendorID uint64) (*domain.Order, error) {
	return s.advance(ctx, orderID, vendorID, domain.StatusReady)
}

func (s *OrderService) MarkDelivered(ctx context.Context, orderID, vendorID uint64) (*domain.Order, error) {
	return s.advance(ctx, orderID, vendorID, domain.StatusDelivered)
}

func (s *OrderService) advance(ctx context.Context, orderID, vendorID uint64, to domain.OrderStatus) (*domain.Order, error) {
	order, err := s.orders.FindForVendor(ctx, orderID, vendorID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrOrderNotFound
	}
	if !domain.CanTransition(order.Status, to) {
		return nil, domain.ErrInvalidTransition
	}

	now := time.Now()
	ok, err := s.orders.SetStatus(ctx, orderID, vendorID, order.Status, to, now)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrStateConflict
	}

	order.Status = to
	switch to {
	case domain.StatusPreparing:
		order.PreparedAt = &now
	case domain.StatusReady:
		order.ReadyAt = &now
	case domain.StatusDelivered:
		order.DeliveredAt = &now
	}

	go s.publishStatus(context.Background(), order, now)
	return order, nil
}

func (s *OrderService) GetVendorOrder(ctx context.Context, orderID, vendorID uint64) (*domain.Order, error) {
	order, err := s.orders.FindForVendor(ctx, orderID, vendorID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrOrderNotFound
	}
	return order, nil
}

type OrderPage struct {
	Orders []domain.Order `json:"orders"`
	Total  int64          `json:"total"`
	Page   int            `json:"page"`
	Pages  int64          `json:"pages"`
}

func (s *OrderService) ListVendorOrders(ctx context.Context, vendorID uint64, status domain.OrderStatus, page, limit int) (*OrderPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	orders, total, err := s.orders.FindByVendor(ctx, vendorID, status, page, limit)
	if err != nil {
		return nil, err
	}

	pages := total / int64(limit)
	if total%int64(limit) != 0 {
		pages++
	}
	return &OrderPage{Orders: orders, Total: total, Page: page, Pages: pages}, nil
}

func (s *OrderService) GetUserOrder(ctx context.Context, orderID, userID uint64) (*domain.Order, error) {
	order, err := s.orders.FindForUser(ctx, orderID, userID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrOrderNotFound
	}
	return order, nil
}

func (s *OrderService) ListUserOrders(ctx context.Context, userID uint64) ([]domain.Order, error) {
	return s.orders.FindByUser(ctx, userID)
}

// VendorHeartbeat refreshes the vendor's liveness stamp; the offline
// sweeper flips vendors whose stamp goes stale.
func (s *OrderService) VendorHeartbeat(ctx context.Context, vendorID uint64) error {
	return s.vendors.Heartbeat(ctx, vendorID, time.Now())
}

func (s *OrderService) publishStatus(ctx context.Context, o *domain.Order, at time.Time) {
	evt := domain.OrderStatusEvent{
		OrderID:     o.ID,
		OrderNumber: o.OrderNumber,
		Status:      o.Status,
		At:          at,
	}
	if err := s.publisher.Publish(ctx, "order.status", evt); err != nil {
		log.Printf("publish order.status: %v", err)
	}
}

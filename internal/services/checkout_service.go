package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"fulfillment-service/internal/domain"
	"fulfillment-service/internal/infra/rabbitmq"
	"fulfillment-service/internal/repository"
)

// CheckoutService is the fulfillment splitter: it partitions one active cart
// into zero-or-one express order and one marketplace order per distinct
// vendor, all sharing a payment group.
type CheckoutService struct {
	orders       repository.OrderRepository
	carts        repository.CartRepository
	products     repository.ProductRepository
	vendors      repository.VendorRepository
	publisher    rabbitmq.PublisherInterface
	acceptWindow time.Duration
}

func NewCheckoutService(
	orders repository.OrderRepository,
	carts repository.CartRepository,
	products repository.ProductRepository,
	vendors repository.VendorRepository,
	publisher rabbitmq.PublisherInterface,
	acceptWindow time.Duration,
) *CheckoutService {
	return &CheckoutService{
		orders:       orders,
		carts:        carts,
		products:     products,
		vendors:      vendors,
		publisher:    publisher,
		acceptWindow: acceptWindow,
	}
}

type CheckoutResult struct {
	PaymentGroupID string          `json:"paymentGroupId"`
	ParentOrderID  string          `json:"parentOrderId"`
	Orders         []*domain.Order `json:"orders"`
}

func (s *CheckoutService) Checkout(ctx context.Context, userID uint64) (*CheckoutResult, error) {
	cart, err := s.carts.FindActiveByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cart == nil || cart.IsEmpty() {
		return nil, domain.ErrCartEmpty
	}

	products, err := s.resolveProducts(ctx, cart)
	if err != nil {
		return nil, err
	}

	vendors, err := s.resolveVendors(ctx, cart)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	plan := &domain.CheckoutPlan{
		UserID:         userID,
		CartID:         cart.ID,
		PaymentGroupID: domain.NewPrefixedID("PG"),
		ParentOrderID:  domain.NewPrefixedID("PO"),
	}

	if len(cart.ExpressItems) > 0 {
		plan.Orders = append(plan.Orders, s.buildExpressOrder(cart, products, plan))
	}

	vendorOrders := s.buildVendorOrders(cart, products, plan, now)
	plan.Orders = append(plan.Orders, vendorOrders...)

	if err := s.orders.CreateCheckout(ctx, plan); err != nil {
		return nil, err
	}

	// Auto-accept is a second write after creation so the
	// PENDING_VENDOR_ACCEPTANCE -> ACCEPTED audit trail survives.
	for _, o := range vendorOrders {
		v := vendors[*o.VendorID]
		if !v.AutoAcceptOrders {
			continue
		}
		ok, err := s.orders.AutoAccept(ctx, o.ID, now)
		if err != nil {
			log.Printf("auto-accept order %d: %v", o.ID, err)
			continue
		}
		if ok {
			at := now
			o.Status = domain.StatusAccepted
			o.AcceptedAt = &at
		}
	}

	for _, o := range plan.Orders {
		go s.publishOrderCreated(context.Background(), o)
	}

	return &CheckoutResult{
		PaymentGroupID: plan.PaymentGroupID,
		ParentOrderID:  plan.ParentOrderID,
		Orders:         plan.Orders,
	}, nil
}

// resolveProducts loads every referenced product and fails fast if any is
// missing or inactive.
func (s *CheckoutService) resolveProducts(ctx context.Context, cart *domain.Cart) (map[uint64]*domain.Product, error) {
	ids := make([]uint64, 0, len(cart.ExpressItems)+len(cart.MarketplaceItems))
	for _, it := range cart.ExpressItems {
		ids = append(ids, it.ProductID)
	}
	for _, it := range cart.MarketplaceItems {
		ids = append(ids, it.ProductID)
	}

	products, err := s.products.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		p, ok := products[id]
		if !ok || !p.IsActive {
			return nil, domain.ErrProductUnavailable
		}
	}
	return products, nil
}

// resolveVendors loads every marketplace vendor and rejects the checkout
// when any is inactive or offline.
func (s *CheckoutService) resolveVendors(ctx context.Context, cart *domain.Cart) (map[uint64]*domain.Vendor, error) {
	if len(cart.MarketplaceItems) == 0 {
		return nil, nil
	}

	seen := make(map[uint64]bool)
	var ids []uint64
	for _, it := range cart.MarketplaceItems {
		if it.VendorID == 0 {
			return nil, domain.ErrVendorMissing
		}
		if !seen[it.VendorID] {
			seen[it.VendorID] = true
			ids = append(ids, it.VendorID)
		}
	}

	vendors, err := s.vendors.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		v, ok := vendors[id]
		if !ok {
			return nil, domain.ErrVendorMissing
		}
		if !v.Available() {
			return nil, fmt.Errorf("%w: %s", domain.ErrVendorUnavailable, v.StoreName)
		}
	}
	return vendors, nil
}

func (s *CheckoutService) buildExpressOrder(cart *domain.Cart, products map[uint64]*domain.Product, plan *domain.CheckoutPlan) *domain.Order {
	var total int64
	items := make([]domain.OrderItem, 0, len(cart.ExpressItems))
	for _, it := range cart.ExpressItems {
		total += it.Price * int64(it.Quantity)
		items = append(items, domain.OrderItem{
			ProductID:      it.ProductID,
			Quantity:       it.Quantity,
			Price:          it.Price,
			LogisticsFlags: products[it.ProductID].ToLogisticsFlags(),
		})
	}

	return &domain.Order{
		OrderNumber:    domain.NewPrefixedID("ORD_EXP"),
		TrackingID:     domain.NewPrefixedID("TRK_EXP"),
		PaymentGroupID: plan.PaymentGroupID,
		ParentOrderID:  plan.ParentOrderID,
		UserID:         plan.UserID,
		Type:           domain.TypeExpress,
		Source:         domain.SourceStore,
		Items:          items,
		TotalAmount:    total,
		Status:         domain.StatusPlaced,
		PaymentStatus:  domain.PaymentPaid,
	}
}

// buildVendorOrders buckets marketplace items by vendor, one order per
// bucket, deadline stamped from the configured acceptance window. Bucket
// order follows first appearance in the cart.
func (s *CheckoutService) buildVendorOrders(cart *domain.Cart, products map[uint64]*domain.Product, plan *domain.CheckoutPlan, now time.Time) []*domain.Order {
	acceptBy := now.Add(s.acceptWindow)

	var order []uint64
	buckets := make(map[uint64]*domain.Order)
	for _, it := range cart.MarketplaceItems {
		o, ok := buckets[it.VendorID]
		if !ok {
			vendorID := it.VendorID
			o = &domain.Order{
				OrderNumber:    domain.NewPrefixedID("ORD_MKT"),
				TrackingID:     domain.NewPrefixedID("TRK_MKT"),
				PaymentGroupID: plan.PaymentGroupID,
				ParentOrderID:  plan.ParentOrderID,
				UserID:         plan.UserID,
				VendorID:       &vendorID,
				Type:           domain.TypeMarketplace,
				Source:         domain.SourceVendor,
				Status:         domain.StatusPendingVendorAcceptance,
				PaymentStatus:  domain.PaymentCOD,
				SLA:            domain.SLA{AcceptBy: &acceptBy},
			}
			buckets[it.VendorID] = o
			order = append(order, it.VendorID)
		}

		o.TotalAmount += it.Price * int64(it.Quantity)
		o.Items = append(o.Items, domain.OrderItem{
			ProductID:      it.ProductID,
			Quantity:       it.Quantity,
			Price:          it.Price,
			LogisticsFlags: products[it.ProductID].ToLogisticsFlags(),
		})
	}

	out := make([]*domain.Order, 0, len(order))
	for _, vendorID := range order {
		out = append(out, buckets[vendorID])
	}
	return out
}

func (s *CheckoutService) publishOrderCreated(ctx context.Context, o *domain.Order) {
	evt := domain.OrderCreatedEvent{
		OrderID:        o.ID,
		OrderNumber:    o.OrderNumber,
		PaymentGroupID: o.PaymentGroupID,
		Type:           o.Type,
		Source:         o.Source,
		VendorID:       o.VendorID,
		TotalAmount:    o.TotalAmount,
		CreatedAt:      o.CreatedAt,
	}
	if err := s.publisher.Publish(ctx, "order.created", evt); err != nil {
		log.Printf("publish order.created: %v", err)
	}
}

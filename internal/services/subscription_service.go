package services

import (
	"context"
	"log"
	"time"

	"fulfillment-service/internal/domain"
	"fulfillment-service/internal/infra/rabbitmq"
	"fulfillment-service/internal/repository"
)

// SubscriptionService manages recurring deliveries and materializes due
// subscriptions into orders using the same construction rules as checkout.
type SubscriptionService struct {
	subs         repository.SubscriptionRepository
	orders       repository.OrderRepository
	products     repository.ProductRepository
	publisher    rabbitmq.PublisherInterface
	acceptWindow time.Duration
}

func NewSubscriptionService(
	subs repository.SubscriptionRepository,
	orders repository.OrderRepository,
	products repository.ProductRepository,
	publisher rabbitmq.PublisherInterface,
	acceptWindow time.Duration,
) *SubscriptionService {
	return &SubscriptionService{
		subs:         subs,
		orders:       orders,
		products:     products,
		publisher:    publisher,
		acceptWindow: acceptWindow,
	}
}

func (s *SubscriptionService) Create(ctx context.Context, userID, productID uint64, frequency domain.SubscriptionFrequency, nextDelivery *time.Time) (*domain.Subscription, error) {
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.IsActive {
		return nil, domain.ErrProductUnavailable
	}

	next := time.Now()
	if nextDelivery != nil {
		next = *nextDelivery
	}

	sub := &domain.Subscription{
		UserID:           userID,
		ProductID:        productID,
		Frequency:        frequency,
		NextDeliveryDate: next,
		Status:           domain.SubscriptionActive,
	}
	if err := s.subs.Create(ctx, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

func (s *SubscriptionService) List(ctx context.Context, userID uint64) ([]domain.Subscription, error) {
	return s.subs.FindByUser(ctx, userID)
}

func (s *SubscriptionService) UpdateStatus(ctx context.Context, id, userID uint64, status domain.SubscriptionStatus) error {
	ok, err := s.subs.UpdateStatus(ctx, id, userID, status)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	return nil
}

// RunDue materializes every active subscription due today into a fresh
// order. Inactive products are skipped and retried next run.
func (s *SubscriptionService) RunDue(ctx context.Context) (int, error) {
	now := time.Now()
	endOfDay := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 0, now.Location())

	due, err := s.subs.FindDue(ctx, endOfDay)
	if err != nil {
		return 0, err
	}

	created := 0
	for _, sub := range due {
		product, err := s.products.FindByID(ctx, sub.ProductID)
		if err != nil {
			log.Printf("subscription %d: product lookup: %v", sub.ID, err)
			continue
		}
		if product == nil || !product.IsActive {
			continue
		}

		order := s.buildOrder(&sub, product, now)
		if err := s.orders.Create(ctx, order); err != nil {
			log.Printf("subscription %d: create order: %v", sub.ID, err)
			continue
		}
		created++

		if err := s.subs.AdvanceNextDelivery(ctx, sub.ID, domain.NextDate(sub.NextDeliveryDate, sub.Frequency)); err != nil {
			log.Printf("subscription %d: advance schedule: %v", sub.ID, err)
		}

		go func(o *domain.Order) {
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
			if err := s.publisher.Publish(context.Background(), "order.created", evt); err != nil {
				log.Printf("publish order.created: %v", err)
			}
		}(order)
	}

	return created, nil
}

func (s *SubscriptionService) buildOrder(sub *domain.Subscription, product *domain.Product, now time.Time) *domain.Order {
	order := &domain.Order{
		OrderNumber:    domain.NewPrefixedID("ORD_SUB"),
		TrackingID:     domain.NewPrefixedID("TRK_SUB"),
		PaymentGroupID: domain.NewPrefixedID("PG"),
		ParentOrderID:  domain.NewPrefixedID("PO"),
		UserID:         sub.UserID,
		Type:           product.FulfillmentModel,
		PaymentStatus:  domain.PaymentPending,
		TotalAmount:    product.Price,
		Items: []domain.OrderItem{{
			ProductID:      product.ID,
			Quantity:       1,
			Price:          product.Price,
			LogisticsFlags: product.ToLogisticsFlags(),
		}},
	}

	if product.FulfillmentModel == domain.TypeMarketplace {
		acceptBy := now.Add(s.acceptWindow)
		order.Source = domain.SourceVendor
		order.VendorID = product.VendorID
		order.Status = domain.StatusPendingVendorAcceptance
		order.SLA = domain.SLA{AcceptBy: &acceptBy}
	} else {
		order.Source = domain.SourceStore
		order.Status = domain.StatusPlaced
	}

	return order
}

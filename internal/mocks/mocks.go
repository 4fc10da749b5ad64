package mocks

import (
	"context"
	"time"

	"fulfillment-service/internal/domain"
	"fulfillment-service/internal/infra/razorpay"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) CreateCheckout(ctx context.Context, plan *domain.CheckoutPlan) error {
	args := m.Called(ctx, plan)
	return args.Error(0)
}

func (m *MockOrderRepository) Create(ctx context.Context, order *domain.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uint64) (*domain.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderRepository) FindForUser(ctx context.Context, id, userID uint64) (*domain.Order, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByUser(ctx context.Context, userID uint64) ([]domain.Order, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Order), args.Error(1)
}

func (m *MockOrderRepository) FindForVendor(ctx context.Context, id, vendorID uint64) (*domain.Order, error) {
	args := m.Called(ctx, id, vendorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByVendor(ctx context.Context, vendorID uint64, status domain.OrderStatus, page, limit int) ([]domain.Order, int64, error) {
	args := m.Called(ctx, vendorID, status, page, limit)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]domain.Order), args.Get(1).(int64), args.Error(2)
}

func (m *MockOrderRepository) Accept(ctx context.Context, id, vendorID uint64, at time.Time, prepMinutes int) (bool, error) {
	args := m.Called(ctx, id, vendorID, at, prepMinutes)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderRepository) AutoAccept(ctx context.Context, id uint64, at time.Time) (bool, error) {
	args := m.Called(ctx, id, at)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderRepository) Reject(ctx context.Context, id, vendorID uint64, reason string) (bool, error) {
	args := m.Called(ctx, id, vendorID, reason)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderRepository) SetStatus(ctx context.Context, id, vendorID uint64, from, to domain.OrderStatus, at time.Time) (bool, error) {
	args := m.Called(ctx, id, vendorID, from, to, at)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderRepository) ExpireOverdueSLA(ctx context.Context, now time.Time, reason string) (int64, error) {
	args := m.Called(ctx, now, reason)
	return args.Get(0).(int64), args.Error(1)
}

type MockCartRepository struct {
	mock.Mock
}

func (m *MockCartRepository) FindActiveByUser(ctx context.Context, userID uint64) (*domain.Cart, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Cart), args.Error(1)
}

func (m *MockCartRepository) Create(ctx context.Context, cart *domain.Cart) error {
	args := m.Called(ctx, cart)
	return args.Error(0)
}

func (m *MockCartRepository) Save(ctx context.Context, cart *domain.Cart) error {
	args := m.Called(ctx, cart)
	return args.Error(0)
}

type MockRiderOrderRepository struct {
	mock.Mock
}

func (m *MockRiderOrderRepository) FindForRider(ctx context.Context, id, riderID uint64) (*domain.RiderOrder, error) {
	args := m.Called(ctx, id, riderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RiderOrder), args.Error(1)
}

func (m *MockRiderOrderRepository) FindByRider(ctx context.Context, riderID uint64, status domain.RiderStatus) ([]domain.RiderOrder, error) {
	args := m.Called(ctx, riderID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RiderOrder), args.Error(1)
}

func (m *MockRiderOrderRepository) SetStatus(ctx context.Context, id, riderID uint64, from, to domain.RiderStatus, at time.Time) (bool, error) {
	args := m.Called(ctx, id, riderID, from, to, at)
	return args.Bool(0), args.Error(1)
}

func (m *MockRiderOrderRepository) AttachProof(ctx context.Context, id, riderID uint64, proof domain.DeliveryProof) (bool, error) {
	args := m.Called(ctx, id, riderID, proof)
	return args.Bool(0), args.Error(1)
}

func (m *MockRiderOrderRepository) DeliveredSince(ctx context.Context, riderID uint64, since time.Time) ([]domain.RiderOrder, error) {
	args := m.Called(ctx, riderID, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RiderOrder), args.Error(1)
}

type MockVendorRepository struct {
	mock.Mock
}

func (m *MockVendorRepository) FindByID(ctx context.Context, id uint64) (*domain.Vendor, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vendor), args.Error(1)
}

func (m *MockVendorRepository) FindByIDs(ctx context.Context, ids []uint64) (map[uint64]*domain.Vendor, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uint64]*domain.Vendor), args.Error(1)
}

func (m *MockVendorRepository) Heartbeat(ctx context.Context, vendorID uint64, at time.Time) error {
	args := m.Called(ctx, vendorID, at)
	return args.Error(0)
}

func (m *MockVendorRepository) MarkStaleOffline(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uint64) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockProductRepository) FindByIDs(ctx context.Context, ids []uint64) (map[uint64]*domain.Product, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uint64]*domain.Product), args.Error(1)
}

type MockSubscriptionRepository struct {
	mock.Mock
}

func (m *MockSubscriptionRepository) Create(ctx context.Context, sub *domain.Subscription) error {
	args := m.Called(ctx, sub)
	return args.Error(0)
}

func (m *MockSubscriptionRepository) FindByUser(ctx context.Context, userID uint64) ([]domain.Subscription, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Subscription), args.Error(1)
}

func (m *MockSubscriptionRepository) UpdateStatus(ctx context.Context, id, userID uint64, status domain.SubscriptionStatus) (bool, error) {
	args := m.Called(ctx, id, userID, status)
	return args.Bool(0), args.Error(1)
}

func (m *MockSubscriptionRepository) FindDue(ctx context.Context, by time.Time) ([]domain.Subscription, error) {
	args := m.Called(ctx, by)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Subscription), args.Error(1)
}

func (m *MockSubscriptionRepository) AdvanceNextDelivery(ctx context.Context, id uint64, next time.Time) error {
	args := m.Called(ctx, id, next)
	return args.Error(0)
}

type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) FindGroupForUser(ctx context.Context, paymentGroupID string, userID uint64) ([]domain.Order, error) {
	args := m.Called(ctx, paymentGroupID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Order), args.Error(1)
}

func (m *MockPaymentRepository) SetGatewayOrder(ctx context.Context, paymentGroupID string, userID uint64, gatewayOrderID string) (int64, error) {
	args := m.Called(ctx, paymentGroupID, userID, gatewayOrderID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPaymentRepository) MarkGroupPaid(ctx context.Context, paymentGroupID string, userID uint64, gatewayOrderID, gatewayPaymentID string) (int64, error) {
	args := m.Called(ctx, paymentGroupID, userID, gatewayOrderID, gatewayPaymentID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPaymentRepository) RecordWebhookEvent(ctx context.Context, gatewayOrderID, eventID string, captured bool, gatewayPaymentID string) (bool, error) {
	args := m.Called(ctx, gatewayOrderID, eventID, captured, gatewayPaymentID)
	return args.Bool(0), args.Error(1)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, routingKey string, data any) error {
	args := m.Called(ctx, routingKey, data)
	return args.Error(0)
}

type MockGatewayClient struct {
	mock.Mock
}

func (m *MockGatewayClient) CreateOrder(ctx context.Context, amountMinorUnits int64, receipt string, notes map[string]string) (*razorpay.GatewayOrder, error) {
	args := m.Called(ctx, amountMinorUnits, receipt, notes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*razorpay.GatewayOrder), args.Error(1)
}

package services

import (
	"context"
	"testing"
	"time"

	"fulfillment-service/internal/domain"
	"fulfillment-service/internal/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func checkoutFixtures() (*domain.Cart, map[uint64]*domain.Product, map[uint64]*domain.Vendor) {
	storeID := uint64(5)
	cart := &domain.Cart{
		ID:              7,
		UserID:          42,
		AssignedStoreID: &storeID,
		IsActive:        true,
		ExpressItems: []domain.CartItem{
			{ProductID: 1, Quantity: 2, Price: 500},
		},
		MarketplaceItems: []domain.MarketplaceCartItem{
			{ProductID: 2, VendorID: 10, Quantity: 1, Price: 1500},
			{ProductID: 3, VendorID: 11, Quantity: 2, Price: 250},
			{ProductID: 4, VendorID: 10, Quantity: 1, Price: 100},
		},
	}

	v10 := uint64(10)
	v11 := uint64(11)
	products := map[uint64]*domain.Product{
		1: {ID: 1, Price: 500, FulfillmentModel: domain.TypeExpress, IsActive: true},
		2: {ID: 2, Price: 1500, FulfillmentModel: domain.TypeMarketplace, VendorID: &v10, IsActive: true, Flags: domain.LogisticsFlags{Fragile: true}},
		3: {ID: 3, Price: 250, FulfillmentModel: domain.TypeMarketplace, VendorID: &v11, IsActive: true},
		4: {ID: 4, Price: 100, FulfillmentModel: domain.TypeMarketplace, VendorID: &v10, IsActive: true},
	}

	vendors := map[uint64]*domain.Vendor{
		10: {ID: 10, StoreName: "Paws & Co", IsActive: true, IsOnline: true},
		11: {ID: 11, StoreName: "Feather Friends", IsActive: true, IsOnline: true, AutoAcceptOrders: true},
	}
	return cart, products, vendors
}

func TestCheckoutService_Checkout_SplitsCart(t *testing.T) {
	cart, products, vendors := checkoutFixtures()

	orderRepo := new(mocks.MockOrderRepository)
	cartRepo := new(mocks.MockCartRepository)
	productRepo := new(mocks.MockProductRepository)
	vendorRepo := new(mocks.MockVendorRepository)
	pub := new(mocks.MockPublisher)

	cartRepo.On("FindActiveByUser", mock.Anything, uint64(42)).Return(cart, nil)
	productRepo.On("FindByIDs", mock.Anything, mock.Anything).Return(products, nil)
	vendorRepo.On("FindByIDs", mock.Anything, []uint64{10, 11}).Return(vendors, nil)
	orderRepo.On("CreateCheckout", mock.Anything, mock.AnythingOfType("*domain.CheckoutPlan")).Return(nil).Run(func(args mock.Arguments) {
		plan := args.Get(1).(*domain.CheckoutPlan)
		for i, o := range plan.Orders {
			o.ID = uint64(i + 1)
		}
	})
	orderRepo.On("AutoAccept", mock.Anything, uint64(3), mock.Anything).Return(true, nil)
	pub.On("Publish", mock.Anything, "order.created", mock.Anything).Return(nil).Maybe()

	svc := NewCheckoutService(orderRepo, cartRepo, productRepo, vendorRepo, pub, 10*time.Minute)

	result, err := svc.Checkout(context.Background(), 42)
	assert.NoError(t, err)
	assert.Len(t, result.Orders, 3)
	assert.NotEmpty(t, result.PaymentGroupID)
	assert.NotEmpty(t, result.ParentOrderID)

	express := result.Orders[0]
	assert.Equal(t, domain.TypeExpress, express.Type)
	assert.Equal(t, domain.SourceStore, express.Source)
	assert.Equal(t, domain.StatusPlaced, express.Status)
	assert.Equal(t, domain.PaymentPaid, express.PaymentStatus)
	assert.Equal(t, int64(1000), express.TotalAmount)
	assert.Nil(t, express.VendorID)

	// Vendor buckets follow first appearance in the cart.
	first := result.Orders[1]
	assert.Equal(t, uint64(10), *first.VendorID)
	assert.Equal(t, domain.TypeMarketplace, first.Type)
	assert.Equal(t, domain.SourceVendor, first.Source)
	assert.Equal(t, domain.StatusPendingVendorAcceptance, first.Status)
	assert.Equal(t, domain.PaymentCOD, first.PaymentStatus)
	assert.Equal(t, int64(1600), first.TotalAmount)
	assert.Len(t, first.Items, 2)
	assert.NotNil(t, first.SLA.AcceptBy)
	assert.True(t, first.HasFragileItems())

	second := result.Orders[2]
	assert.Equal(t, uint64(11), *second.VendorID)
	assert.Equal(t, int64(500), second.TotalAmount)
	assert.Equal(t, domain.StatusAccepted, second.Status)
	assert.NotNil(t, second.AcceptedAt)

	// All orders share one payment group and parent.
	for _, o := range result.Orders {
		assert.Equal(t, result.PaymentGroupID, o.PaymentGroupID)
		assert.Equal(t, result.ParentOrderID, o.ParentOrderID)
	}

	orderRepo.AssertExpectations(t)
	cartRepo.AssertExpectations(t)
}

func TestCheckoutService_Checkout_Failures(t *testing.T) {
	tests := []struct {
		name          string
		setupMocks    func(*mocks.MockOrderRepository, *mocks.MockCartRepository, *mocks.MockProductRepository, *mocks.MockVendorRepository)
		expectedError error
	}{
		{
			name: "no active cart",
			setupMocks: func(orderRepo *mocks.MockOrderRepository, cartRepo *mocks.MockCartRepository, productRepo *mocks.MockProductRepository, vendorRepo *mocks.MockVendorRepository) {
				cartRepo.On("FindActiveByUser", mock.Anything, uint64(42)).Return(nil, nil)
			},
			expectedError: domain.ErrCartEmpty,
		},
		{
			name: "cart with no items",
			setupMocks: func(orderRepo *mocks.MockOrderRepository, cartRepo *mocks.MockCartRepository, productRepo *mocks.MockProductRepository, vendorRepo *mocks.MockVendorRepository) {
				cartRepo.On("FindActiveByUser", mock.Anything, uint64(42)).Return(&domain.Cart{ID: 7, UserID: 42, IsActive: true}, nil)
			},
			expectedError: domain.ErrCartEmpty,
		},
		{
			name: "inactive product",
			setupMocks: func(orderRepo *mocks.MockOrderRepository, cartRepo *mocks.MockCartRepository, productRepo *mocks.MockProductRepository, vendorRepo *mocks.MockVendorRepository) {
				cart, products, _ := checkoutFixtures()
				products[3].IsActive = false
				cartRepo.On("FindActiveByUser", mock.Anything, uint64(42)).Return(cart, nil)
				productRepo.On("FindByIDs", mock.Anything, mock.Anything).Return(products, nil)
			},
			expectedError: domain.ErrProductUnavailable,
		},
		{
			name: "vendor offline",
			setupMocks: func(orderRepo *mocks.MockOrderRepository, cartRepo *mocks.MockCartRepository, productRepo *mocks.MockProductRepository, vendorRepo *mocks.MockVendorRepository) {
				cart, products, vendors := checkoutFixtures()
				vendors[11].IsOnline = false
				cartRepo.On("FindActiveByUser", mock.Anything, uint64(42)).Return(cart, nil)
				productRepo.On("FindByIDs", mock.Anything, mock.Anything).Return(products, nil)
				vendorRepo.On("FindByIDs", mock.Anything, []uint64{10, 11}).Return(vendors, nil)
			},
			expectedError: domain.ErrVendorUnavailable,
		},
		{
			name: "unknown vendor",
			setupMocks: func(orderRepo *mocks.MockOrderRepository, cartRepo *mocks.MockCartRepository, productRepo *mocks.MockProductRepository, vendorRepo *mocks.MockVendorRepository) {
				cart, products, vendors := checkoutFixtures()
				delete(vendors, 10)
				cartRepo.On("FindActiveByUser", mock.Anything, uint64(42)).Return(cart, nil)
				productRepo.On("FindByIDs", mock.Anything, mock.Anything).Return(products, nil)
				vendorRepo.On("FindByIDs", mock.Anything, []uint64{10, 11}).Return(vendors, nil)
			},
			expectedError: domain.ErrVendorMissing,
		},
		{
			name: "insufficient stock aborts the whole checkout",
			setupMocks: func(orderRepo *mocks.MockOrderRepository, cartRepo *mocks.MockCartRepository, productRepo *mocks.MockProductRepository, vendorRepo *mocks.MockVendorRepository) {
				cart, products, vendors := checkoutFixtures()
				cartRepo.On("FindActiveByUser", mock.Anything, uint64(42)).Return(cart, nil)
				productRepo.On("FindByIDs", mock.Anything, mock.Anything).Return(products, nil)
				vendorRepo.On("FindByIDs", mock.Anything, []uint64{10, 11}).Return(vendors, nil)
				orderRepo.On("CreateCheckout", mock.Anything, mock.Anything).Return(domain.ErrInsufficientStock)
			},
			expectedError: domain.ErrInsufficientStock,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orderRepo := new(mocks.MockOrderRepository)
			cartRepo := new(mocks.MockCartRepository)
			productRepo := new(mocks.MockProductRepository)
			vendorRepo := new(mocks.MockVendorRepository)
			pub := new(mocks.MockPublisher)

			tt.setupMocks(orderRepo, cartRepo, productRepo, vendorRepo)

			svc := NewCheckoutService(orderRepo, cartRepo, productRepo, vendorRepo, pub, 10*time.Minute)

			result, err := svc.Checkout(context.Background(), 42)
			assert.Nil(t, result)
			assert.ErrorIs(t, err, tt.expectedError)
			orderRepo.AssertExpectations(t)
			pub.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestCheckoutService_Checkout_AutoAcceptLosesRace(t *testing.T) {
	cart, products, vendors := checkoutFixtures()

	orderRepo := new(mocks.MockOrderRepository)
	cartRepo := new(mocks.MockCartRepository)
	productRepo := new(mocks.MockProductRepository)
	vendorRepo := new(mocks.MockVendorRepository)
	pub := new(mocks.MockPublisher)

	cartRepo.On("FindActiveByUser", mock.Anything, uint64(42)).Return(cart, nil)
	productRepo.On("FindByIDs", mock.Anything, mock.Anything).Return(products, nil)
	vendorRepo.On("FindByIDs", mock.Anything, []uint64{10, 11}).Return(vendors, nil)
	orderRepo.On("CreateCheckout", mock.Anything, mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		plan := args.Get(1).(*domain.CheckoutPlan)
		for i, o := range plan.Orders {
			o.ID = uint64(i + 1)
		}
	})
	// Someone else already moved the order; checkout must not overwrite.
	orderRepo.On("AutoAccept", mock.Anything, uint64(3), mock.Anything).Return(false, nil)
	pub.On("Publish", mock.Anything, "order.created", mock.Anything).Return(nil).Maybe()

	svc := NewCheckoutService(orderRepo, cartRepo, productRepo, vendorRepo, pub, 10*time.Minute)

	result, err := svc.Checkout(context.Background(), 42)
	assert.NoError(t, err)
	assert.Equal(t, domain.StatusPendingVendorAcceptance, result.Orders[2].Status)
	assert.Nil(t, result.Orders[2].AcceptedAt)
}

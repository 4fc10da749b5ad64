package services

import (
	"context"
	"testing"

	"fulfillment-service/internal/domain"
	"fulfillment-service/internal/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestCartService_AddToCart(t *testing.T) {
	storeID := uint64(5)
	vendorID := uint64(10)

	expressProduct := &domain.Product{ID: 1, Price: 500, FulfillmentModel: domain.TypeExpress, IsActive: true}
	marketProduct := &domain.Product{ID: 2, Price: 1500, FulfillmentModel: domain.TypeMarketplace, VendorID: &vendorID, IsActive: true}

	tests := []struct {
		name          string
		productID     uint64
		storeID       *uint64
		setupMocks    func(*mocks.MockCartRepository, *mocks.MockProductRepository)
		check         func(*testing.T, *domain.Cart)
		expectedError error
	}{
		{
			name:      "express item into a fresh cart",
			productID: 1,
			storeID:   &storeID,
			setupMocks: func(cartRepo *mocks.MockCartRepository, productRepo *mocks.MockProductRepository) {
				productRepo.On("FindByID", mock.Anything, uint64(1)).Return(expressProduct, nil)
				cartRepo.On("FindActiveByUser", mock.Anything, uint64(42)).Return(nil, nil)
				cartRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Cart")).Return(nil)
				cartRepo.On("Save", mock.Anything, mock.AnythingOfType("*domain.Cart")).Return(nil)
			},
			check: func(t *testing.T, cart *domain.Cart) {
				assert.Len(t, cart.ExpressItems, 1)
				assert.Equal(t, int64(500), cart.ExpressItems[0].Price)
				assert.Equal(t, storeID, *cart.AssignedStoreID)
			},
		},
		{
			name:      "express item without a store",
			productID: 1,
			storeID:   nil,
			setupMocks: func(cartRepo *mocks.MockCartRepository, productRepo *mocks.MockProductRepository) {
				productRepo.On("FindByID", mock.Anything, uint64(1)).Return(expressProduct, nil)
				cartRepo.On("FindActiveByUser", mock.Anything, uint64(42)).Return(nil, nil)
				cartRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
			},
			expectedError: domain.ErrStoreRequired,
		},
		{
			name:      "marketplace item pins the vendor",
			productID: 2,
			setupMocks: func(cartRepo *mocks.MockCartRepository, productRepo *mocks.MockProductRepository) {
				productRepo.On("FindByID", mock.Anything, uint64(2)).Return(marketProduct, nil)
				cartRepo.On("FindActiveByUser", mock.Anything, uint64(42)).Return(&domain.Cart{ID: 7, UserID: 42, IsActive: true}, nil)
				cartRepo.On("Save", mock.Anything, mock.Anything).Return(nil)
			},
			check: func(t *testing.T, cart *domain.Cart) {
				assert.Len(t, cart.MarketplaceItems, 1)
				assert.Equal(t, vendorID, cart.MarketplaceItems[0].VendorID)
			},
		},
		{
			name:      "repeated add merges quantity",
			productID: 2,
			setupMocks: func(cartRepo *mocks.MockCartRepository, productRepo *mocks.MockProductRepository) {
				productRepo.On("FindByID", mock.Anything, uint64(2)).Return(marketProduct, nil)
				cartRepo.On("FindActiveByUser", mock.Anything, uint64(42)).Return(&domain.Cart{
					ID: 7, UserID: 42, IsActive: true,
					MarketplaceItems: []domain.MarketplaceCartItem{
						{ProductID: 2, VendorID: vendorID, Quantity: 1, Price: 1500},
					},
				}, nil)
				cartRepo.On("Save", mock.Anything, mock.Anything).Return(nil)
			},
			check: func(t *testing.T, cart *domain.Cart) {
				assert.Len(t, cart.MarketplaceItems, 1)
				assert.Equal(t, 3, cart.MarketplaceItems[0].Quantity)
			},
		},
		{
			name:      "marketplace product without a vendor",
			productID: 3,
			setupMocks: func(cartRepo *mocks.MockCartRepository, productRepo *mocks.MockProductRepository) {
				productRepo.On("FindByID", mock.Anything, uint64(3)).Return(&domain.Product{
					ID: 3, Price: 900, FulfillmentModel: domain.TypeMarketplace, IsActive: true,
				}, nil)
				cartRepo.On("FindActiveByUser", mock.Anything, uint64(42)).Return(&domain.Cart{ID: 7, UserID: 42, IsActive: true}, nil)
			},
			expectedError: domain.ErrVendorMissing,
		},
		{
			name:      "inactive product",
			productID: 4,
			setupMocks: func(cartRepo *mocks.MockCartRepository, productRepo *mocks.MockProductRepository) {
				productRepo.On("FindByID", mock.Anything, uint64(4)).Return(&domain.Product{
					ID: 4, FulfillmentModel: domain.TypeExpress,
				}, nil)
			},
			expectedError: domain.ErrProductUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cartRepo := new(mocks.MockCartRepository)
			productRepo := new(mocks.MockProductRepository)
			tt.setupMocks(cartRepo, productRepo)

			svc := NewCartService(cartRepo, productRepo)

			cart, err := svc.AddToCart(context.Background(), 42, tt.productID, 2, tt.storeID)
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
				tt.check(t, cart)
			}
		})
	}
}

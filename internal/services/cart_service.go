package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"fulfillment-service/internal/domain"
	"fulfillment-service/internal/repository"

	"github.com/go-redis/redis/v8"
)

type CartService struct {
	carts       repository.CartRepository
	products    repository.ProductRepository
	redisClient *redis.Client
}

func NewCartService(carts repository.CartRepository, products repository.ProductRepository) *CartService {
	return &CartService{carts: carts, products: products}
}

func (s *CartService) SetRedisClient(client *redis.Client) {
	s.redisClient = client
}

// AddToCart places a product into the caller's active cart, creating one if
// needed. The item price is snapshotted here and never re-priced. Express
// items need an assigned store; marketplace items pin the product's vendor.
func (s *CartService) AddToCart(ctx context.Context, userID uint64, productID uint64, quantity int, storeID *uint64) (*domain.Cart, error) {
	product, err := s.getProductWithCache(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.IsActive {
		return nil, domain.ErrProductUnavailable
	}

	cart, err := s.carts.FindActiveByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		cart = &domain.Cart{UserID: userID, AssignedStoreID: storeID, IsActive: true}
		if err := s.carts.Create(ctx, cart); err != nil {
			return nil, err
		}
	}

	switch product.FulfillmentModel {
	case domain.TypeExpress:
		if cart.AssignedStoreID == nil {
			if storeID == nil {
				return nil, domain.ErrStoreRequired
			}
			cart.AssignedStoreID = storeID
		}
		merged := false
		for i := range cart.ExpressItems {
			if cart.ExpressItems[i].ProductID == productID {
				cart.ExpressItems[i].Quantity += quantity
				merged = true
				break
			}
		}
		if !merged {
			cart.ExpressItems = append(cart.ExpressItems, domain.CartItem{
				CartID:    cart.ID,
				ProductID: productID,
				Quantity:  quantity,
				Price:     product.Price,
			})
		}

	case domain.TypeMarketplace:
		if product.VendorID == nil {
			return nil, domain.ErrVendorMissing
		}
		merged := false
		for i := range cart.MarketplaceItems {
			if cart.MarketplaceItems[i].ProductID == productID {
				cart.MarketplaceItems[i].Quantity += quantity
				merged = true
				break
			}
		}
		if !merged {
			cart.MarketplaceItems = append(cart.MarketplaceItems, domain.MarketplaceCartItem{
				CartID:    cart.ID,
				ProductID: productID,
				VendorID:  *product.VendorID,
				Quantity:  quantity,
				Price:     product.Price,
			})
		}

	default:
		return nil, domain.ErrProductUnavailable
	}

	if err := s.carts.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// GetCart returns the active cart, or nil when the user has none.
func (s *CartService) GetCart(ctx context.Context, userID uint64) (*domain.Cart, error) {
	return s.carts.FindActiveByUser(ctx, userID)
}

func (s *CartService) getProductWithCache(ctx context.Context, productID uint64) (*domain.Product, error) {
	cacheKey := fmt.Sprintf("product:%d", productID)

	if s.redisClient != nil {
		cached, err := s.redisClient.Get(ctx, cacheKey).Result()
		if err == nil {
			var prod domain.Product
			if err := json.Unmarshal([]byte(cached), &prod); err == nil {
				return &prod, nil
			}
		}
	}

	prod, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if s.redisClient != nil && prod != nil {
		if data, err := json.Marshal(prod); err == nil {
			s.redisClient.Set(ctx, cacheKey, data, time.Minute)
		}
	}

	return prod, nil
}

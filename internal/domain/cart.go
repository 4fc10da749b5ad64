package domain

import "time"

// CartItem is an express line. Price is snapshotted when the item is added
// and never silently re-priced.
type CartItem struct {
	ID        uint64 `json:"-" gorm:"primaryKey;autoIncrement"`
	CartID    uint64 `json:"-" gorm:"index;not null"`
	ProductID uint64 `json:"productId" gorm:"not null"`
	Quantity  int    `json:"quantity" gorm:"not null"`
	Price     int64  `json:"price" gorm:"not null"`
}

func (CartItem) TableName() string { return "express_cart_items" }

// MarketplaceCartItem additionally pins the vendor the product belongs to.
type MarketplaceCartItem struct {
	ID        uint64 `json:"-" gorm:"primaryKey;autoIncrement"`
	CartID    uint64 `json:"-" gorm:"index;not null"`
	ProductID uint64 `json:"productId" gorm:"not null"`
	VendorID  uint64 `json:"vendorId" gorm:"not null"`
	Quantity  int    `json:"quantity" gorm:"not null"`
	Price     int64  `json:"price" gorm:"not null"`
}

func (MarketplaceCartItem) TableName() string { return "marketplace_cart_items" }

// Cart is the single mutable pre-checkout aggregate. Exactly one active cart
// exists per user; checkout deactivates and empties it atomically.
type Cart struct {
	ID               uint64                `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID           uint64                `json:"userId" gorm:"index;not null"`
	AssignedStoreID  *uint64               `json:"assignedStoreId"`
	ExpressItems     []CartItem            `json:"expressItems" gorm:"foreignKey:CartID"`
	MarketplaceItems []MarketplaceCartItem `json:"marketplaceItems" gorm:"foreignKey:CartID"`
	IsActive         bool                  `json:"isActive" gorm:"index;default:true"`
	CreatedAt        time.Time             `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt        time.Time             `json:"updatedAt" gorm:"autoUpdateTime"`
}

func (c *Cart) IsEmpty() bool {
	return len(c.ExpressItems) == 0 && len(c.MarketplaceItems) == 0
}

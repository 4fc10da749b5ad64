package domain

import "time"

// Product is the catalog snapshot the core reads at cart-add and checkout
// time. Catalog CRUD itself lives outside this service.
type Product struct {
	ID               uint64         `json:"id" gorm:"primaryKey;autoIncrement"`
	Name             string         `json:"name" gorm:"size:128;not null"`
	Price            int64          `json:"price" gorm:"not null"`
	FulfillmentModel OrderType      `json:"fulfillmentModel" gorm:"size:16;not null"`
	VendorID         *uint64        `json:"vendorId" gorm:"index"`
	Flags            LogisticsFlags `json:"flags" gorm:"embedded;embeddedPrefix:flag_"`
	StockQuantity    int            `json:"stockQuantity" gorm:"not null;default:0"`
	IsActive         bool           `json:"isActive" gorm:"index;default:true"`
	CreatedAt        time.Time      `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt        time.Time      `json:"updatedAt" gorm:"autoUpdateTime"`
}

// ToLogisticsFlags derives the per-item handling flags stamped onto order
// items at creation time.
func (p *Product) ToLogisticsFlags() LogisticsFlags {
	f := p.Flags
	f.HandleWithCare = f.Fragile || f.LiveAnimal
	return f
}

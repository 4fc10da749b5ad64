package domain

import "time"

type OrderStatus string

const (
	StatusPlaced                  OrderStatus = "PLACED"
	StatusPendingVendorAcceptance OrderStatus = "PENDING_VENDOR_ACCEPTANCE"
	StatusAccepted                OrderStatus = "ACCEPTED"
	StatusPreparing               OrderStatus = "PREPARING"
	StatusReady                   OrderStatus = "READY"
	StatusDelivered               OrderStatus = "DELIVERED"
	StatusRejected                OrderStatus = "REJECTED"
	StatusCancelled               OrderStatus = "CANCELLED"
)

type OrderType string

const (
	TypeExpress     OrderType = "EXPRESS"
	TypeMarketplace OrderType = "MARKETPLACE"
)

type FulfillmentSource string

const (
	SourceStore  FulfillmentSource = "STORE"
	SourceVendor FulfillmentSource = "VENDOR"
)

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "PENDING"
	PaymentPaid    PaymentStatus = "PAID"
	PaymentCOD     PaymentStatus = "COD"
)

const SLAExpiredReason = "Vendor did not accept within SLA time"

// validSources lists, per target status, the statuses an order may be moved
// from. Anything else is an invalid transition.
var validSources = map[OrderStatus][]OrderStatus{
	StatusAccepted:  {StatusPlaced, StatusPendingVendorAcceptance},
	StatusRejected:  {StatusPlaced, StatusPendingVendorAcceptance},
	StatusCancelled: {StatusPlaced, StatusPendingVendorAcceptance},
	StatusPreparing: {StatusAccepted},
	StatusReady:     {StatusPreparing},
	StatusDelivered: {StatusReady},
}

func CanTransition(from, to OrderStatus) bool {
	for _, s := range validSources[to] {
		if s == from {
			return true
		}
	}
	return false
}

func (s OrderStatus) IsTerminal() bool {
	return s == StatusDelivered || s == StatusRejected || s == StatusCancelled
}

type LogisticsFlags struct {
	Perishable     bool `json:"perishable"`
	Fragile        bool `json:"fragile"`
	LiveAnimal     bool `json:"liveAnimal"`
	HandleWithCare bool `json:"handleWithCare"`
}

type OrderItem struct {
	ID        uint64 `json:"-" gorm:"primaryKey;autoIncrement"`
	OrderID   uint64 `json:"-" gorm:"index;not null"`
	ProductID uint64 `json:"productId" gorm:"not null"`
	Quantity  int    `json:"quantity" gorm:"not null"`
	// Price is the snapshot taken when the item entered the cart. It is never
	// recomputed from the live catalog.
	Price          int64          `json:"price" gorm:"not null"`
	LogisticsFlags LogisticsFlags `json:"logisticsFlags" gorm:"embedded;embeddedPrefix:flag_"`
}

// SLA carries the vendor-acceptance deadline for marketplace orders.
type SLA struct {
	AcceptBy     *time.Time `json:"acceptBy"`
	AcceptedLate bool       `json:"acceptedLate"`
}

type Order struct {
	ID             uint64            `json:"id" gorm:"primaryKey;autoIncrement"`
	OrderNumber    string            `json:"orderNumber" gorm:"uniqueIndex;size:32"`
	TrackingID     string            `json:"trackingId" gorm:"uniqueIndex;size:32"`
	PaymentGroupID string            `json:"paymentGroupId" gorm:"index;size:32"`
	ParentOrderID  string            `json:"parentOrderId" gorm:"index;size:32"`
	UserID         uint64            `json:"userId" gorm:"index;not null"`
	VendorID       *uint64           `json:"vendorId" gorm:"index"`
	Type           OrderType         `json:"type" gorm:"size:16;not null"`
	Source         FulfillmentSource `json:"fulfillmentSource" gorm:"size:16;not null"`
	Items          []OrderItem       `json:"items" gorm:"foreignKey:OrderID"`
	TotalAmount    int64             `json:"totalAmount" gorm:"not null"`
	Status         OrderStatus       `json:"status" gorm:"size:32;index;not null"`
	PaymentStatus  PaymentStatus     `json:"paymentStatus" gorm:"size:16;not null"`

	SLA SLA `json:"sla" gorm:"embedded;embeddedPrefix:sla_"`

	RejectionReason  string     `json:"rejectionReason,omitempty"`
	AcceptedAt       *time.Time `json:"acceptedAt,omitempty"`
	PrepTimeMinutes  int        `json:"prepTimeMinutes,omitempty"`
	EstimatedReadyAt *time.Time `json:"estimatedReadyAt,omitempty"`
	PreparedAt       *time.Time `json:"preparedAt,omitempty"`
	ReadyAt          *time.Time `json:"readyAt,omitempty"`
	DeliveredAt      *time.Time `json:"deliveredAt,omitempty"`

	GatewayOrderID   string `json:"-" gorm:"index;size:64"`
	GatewayPaymentID string `json:"-" gorm:"size:64"`

	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}

func (o *Order) HasFragileItems() bool {
	for _, it := range o.Items {
		if it.LogisticsFlags.Fragile {
			return true
		}
	}
	return false
}

func (o *Order) HasLiveAnimalItems() bool {
	for _, it := range o.Items {
		if it.LogisticsFlags.LiveAnimal {
			return true
		}
	}
	return false
}

// CheckoutPlan is the splitter's output: every order from one checkout plus
// the cart they were built from. The repository applies it as a single
// transaction spanning stock decrement, order inserts and cart clear.
type CheckoutPlan struct {
	UserID         uint64
	CartID         uint64
	PaymentGroupID string
	ParentOrderID  string
	Orders         []*Order
}

package domain

import "time"

type RiderStatus string

const (
	RiderAssigned  RiderStatus = "assigned"
	RiderPicked    RiderStatus = "picked"
	RiderEnroute   RiderStatus = "enroute"
	RiderArrived   RiderStatus = "arrived"
	RiderDelivered RiderStatus = "delivered"
)

// riderNext is the strictly linear delivery workflow. No skipping, no going
// backward.
var riderNext = map[RiderStatus]RiderStatus{
	RiderAssigned: RiderPicked,
	RiderPicked:   RiderEnroute,
	RiderEnroute:  RiderArrived,
	RiderArrived:  RiderDelivered,
}

// NextRiderStatus returns the only status reachable from the given one.
func NextRiderStatus(from RiderStatus) (RiderStatus, bool) {
	next, ok := riderNext[from]
	return next, ok
}

func ValidRiderStatus(s RiderStatus) bool {
	switch s {
	case RiderAssigned, RiderPicked, RiderEnroute, RiderArrived, RiderDelivered:
		return true
	}
	return false
}

type DeliveryAlert string

const (
	AlertLive    DeliveryAlert = "LIVE"
	AlertFragile DeliveryAlert = "FRAGILE"
)

type DeliveryProof struct {
	PhotoURL   string     `json:"photoUrl"`
	Notes      string     `json:"notes"`
	UploadedAt *time.Time `json:"uploadedAt"`
}

// RiderOrder is a delivery assignment. Its status machine is independent of
// the vendor-facing order status.
type RiderOrder struct {
	ID      uint64      `json:"id" gorm:"primaryKey;autoIncrement"`
	RiderID uint64      `json:"riderId" gorm:"index;not null"`
	OrderID uint64      `json:"orderId" gorm:"index;not null"`
	Status  RiderStatus `json:"status" gorm:"size:16;index;default:'assigned'"`

	PickupAddress string `json:"pickupAddress"`
	DropAddress   string `json:"dropAddress"`

	Alert DeliveryAlert `json:"alert,omitempty" gorm:"size:16"`

	Earning     int64  `json:"earning"`
	PickupOTP   string `json:"-" gorm:"size:8"`
	DeliveryOTP string `json:"-" gorm:"size:8"`

	DeliveryProof DeliveryProof `json:"deliveryProof" gorm:"embedded;embeddedPrefix:proof_"`

	PickedAt    *time.Time `json:"pickedAt,omitempty"`
	DeliveredAt *time.Time `json:"deliveredAt,omitempty"`

	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}

// RequiresProof reports whether delivery may only complete with an attached
// photo proof.
func (r *RiderOrder) RequiresProof() bool {
	return r.Alert == AlertLive || r.Alert == AlertFragile
}

func (r *RiderOrder) HasProof() bool {
	return r.DeliveryProof.PhotoURL != ""
}

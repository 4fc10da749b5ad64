package domain

import "time"

type SubscriptionFrequency string

const (
	FrequencyMonthly SubscriptionFrequency = "MONTHLY"
	FrequencyYearly  SubscriptionFrequency = "YEARLY"
)

type SubscriptionStatus string

const (
	SubscriptionActive    SubscriptionStatus = "ACTIVE"
	SubscriptionPaused    SubscriptionStatus = "PAUSED"
	SubscriptionCancelled SubscriptionStatus = "CANCELLED"
)

// Subscription materializes into a fresh order each period, built with the
// same construction rules as checkout.
type Subscription struct {
	ID               uint64                `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID           uint64                `json:"userId" gorm:"index;not null"`
	ProductID        uint64                `json:"productId" gorm:"not null"`
	Frequency        SubscriptionFrequency `json:"frequency" gorm:"size:16;not null"`
	NextDeliveryDate time.Time             `json:"nextDeliveryDate" gorm:"index;not null"`
	Status           SubscriptionStatus    `json:"status" gorm:"size:16;index;default:'ACTIVE'"`
	CreatedAt        time.Time             `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt        time.Time             `json:"updatedAt" gorm:"autoUpdateTime"`
}

// NextDate advances a delivery date by one period.
func NextDate(d time.Time, f SubscriptionFrequency) time.Time {
	if f == FrequencyYearly {
		return d.AddDate(1, 0, 0)
	}
	return d.AddDate(0, 1, 0)
}

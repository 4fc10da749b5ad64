package domain

import "time"

type OnboardingStatus string

const (
	OnboardingPending  OnboardingStatus = "PENDING"
	OnboardingApproved OnboardingStatus = "APPROVED"
	OnboardingRejected OnboardingStatus = "REJECTED"
)

type Vendor struct {
	ID               uint64           `json:"id" gorm:"primaryKey;autoIncrement"`
	StoreName        string           `json:"storeName" gorm:"size:128;not null"`
	IsActive         bool             `json:"isActive" gorm:"index;default:true"`
	IsOnline         bool             `json:"isOnline" gorm:"default:true"`
	AutoAcceptOrders bool             `json:"autoAcceptOrders" gorm:"default:false"`
	OnboardingStatus OnboardingStatus `json:"onboardingStatus" gorm:"size:16;default:'APPROVED'"`
	LastSeen         *time.Time       `json:"lastSeen"`
	CreatedAt        time.Time        `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt        time.Time        `json:"updatedAt" gorm:"autoUpdateTime"`
}

// Available reports whether marketplace orders may be created against this
// vendor.
func (v *Vendor) Available() bool {
	return v.IsActive && v.IsOnline
}

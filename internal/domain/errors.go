package domain

import "errors"

var (
	ErrCartEmpty          = errors.New("cart is empty")
	ErrProductUnavailable = errors.New("one or more products are unavailable")
	ErrVendorMissing      = errors.New("marketplace item missing vendor")
	ErrVendorUnavailable  = errors.New("vendor is currently unavailable")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrStoreRequired      = errors.New("delivery location not set")

	ErrOrderNotFound = errors.New("order not found")
	ErrNotFound      = errors.New("not found")

	ErrInvalidTransition = errors.New("invalid status transition")
	ErrStateConflict     = errors.New("order changed concurrently")
	ErrSLAExpired        = errors.New("acceptance window has expired")
	ErrPrepTimeRequired  = errors.New("prep time required")

	ErrInvalidOTP    = errors.New("invalid OTP")
	ErrProofRequired = errors.New("photo proof required for fragile/live delivery")

	ErrInvalidSignature = errors.New("invalid payment signature")
)

package http

import (
	"errors"
	"log"
	"net/http"

	"fulfillment-service/internal/domain"

	"github.com/gin-gonic/gin"
)

func success(c *gin.Context, status int, data any) {
	c.JSON(status, gin.H{"success": true, "data": data})
}

func failureWith(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{"success": false, "message": message, "code": code})
}

// errorCodes maps domain sentinels to the stable machine-readable codes of
// the API error envelope. Order matters: wrapped errors match the first
// entry they satisfy.
var errorCodes = []struct {
	err    error
	status int
	code   string
}{
	{domain.ErrCartEmpty, http.StatusBadRequest, "CART_EMPTY"},
	{domain.ErrProductUnavailable, http.StatusBadRequest, "PRODUCT_UNAVAILABLE"},
	{domain.ErrVendorMissing, http.StatusBadRequest, "VENDOR_MISSING"},
	{domain.ErrVendorUnavailable, http.StatusBadRequest, "VENDOR_UNAVAILABLE"},
	{domain.ErrStoreRequired, http.StatusBadRequest, "STORE_REQUIRED"},
	{domain.ErrInsufficientStock, http.StatusConflict, "INSUFFICIENT_STOCK"},
	{domain.ErrOrderNotFound, http.StatusNotFound, "ORDER_NOT_FOUND"},
	{domain.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
	{domain.ErrInvalidTransition, http.StatusConflict, "INVALID_TRANSITION"},
	{domain.ErrStateConflict, http.StatusConflict, "STATE_CONFLICT"},
	{domain.ErrSLAExpired, http.StatusConflict, "SLA_EXPIRED"},
	{domain.ErrPrepTimeRequired, http.StatusBadRequest, "PREP_TIME_REQUIRED"},
	{domain.ErrInvalidOTP, http.StatusBadRequest, "INVALID_OTP"},
	{domain.ErrProofRequired, http.StatusBadRequest, "PROOF_REQUIRED"},
	{domain.ErrInvalidSignature, http.StatusBadRequest, "SIGNATURE_INVALID"},
}

func failure(c *gin.Context, err error) {
	for _, m := range errorCodes {
		if errors.Is(err, m.err) {
			failureWith(c, m.status, m.code, err.Error())
			return
		}
	}
	log.Printf("internal error: %v", err)
	failureWith(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong")
}

func badRequest(c *gin.Context, message string) {
	failureWith(c, http.StatusBadRequest, "VALIDATION", message)
}

package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"fulfillment-service/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestFailure_ErrorEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		err          error
		expectedCode string
		expectedHTTP int
	}{
		{domain.ErrCartEmpty, "CART_EMPTY", http.StatusBadRequest},
		{domain.ErrInsufficientStock, "INSUFFICIENT_STOCK", http.StatusConflict},
		{domain.ErrOrderNotFound, "ORDER_NOT_FOUND", http.StatusNotFound},
		{domain.ErrSLAExpired, "SLA_EXPIRED", http.StatusConflict},
		{domain.ErrStateConflict, "STATE_CONFLICT", http.StatusConflict},
		{domain.ErrInvalidOTP, "INVALID_OTP", http.StatusBadRequest},
		{domain.ErrProofRequired, "PROOF_REQUIRED", http.StatusBadRequest},
		{domain.ErrInvalidSignature, "SIGNATURE_INVALID", http.StatusBadRequest},
		// Wrapped sentinels still map to their code.
		{fmt.Errorf("%w: Paws & Co", domain.ErrVendorUnavailable), "VENDOR_UNAVAILABLE", http.StatusBadRequest},
		// Anything unrecognized stays opaque.
		{errors.New("driver: bad connection"), "INTERNAL_ERROR", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.expectedCode, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			failure(c, tt.err)

			assert.Equal(t, tt.expectedHTTP, w.Code)

			var body map[string]any
			assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, false, body["success"])
			assert.Equal(t, tt.expectedCode, body["code"])
			assert.NotEmpty(t, body["message"])
			if tt.expectedCode == "INTERNAL_ERROR" {
				assert.Equal(t, "Something went wrong", body["message"])
			}
		})
	}
}

func TestPrincipalMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/whoami", PrincipalMiddleware(), RequireRole(RoleVendor), func(c *gin.Context) {
		success(c, http.StatusOK, principalFrom(c).ID)
	})

	tests := []struct {
		name         string
		id           string
		role         string
		expectedHTTP int
	}{
		{"vendor passes", "10", "VENDOR", http.StatusOK},
		{"missing headers", "", "", http.StatusUnauthorized},
		{"bad id", "abc", "VENDOR", http.StatusUnauthorized},
		{"unknown role", "10", "ADMIN", http.StatusUnauthorized},
		{"wrong role", "10", "CUSTOMER", http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			if tt.id != "" {
				req.Header.Set("X-Principal-Id", tt.id)
			}
			if tt.role != "" {
				req.Header.Set("X-Principal-Role", tt.role)
			}

			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.expectedHTTP, w.Code)
		})
	}
}

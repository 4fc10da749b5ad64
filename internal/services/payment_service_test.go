package services

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"testing"

	"fulfillment-service/internal/domain"
	"fulfillment-service/internal/infra/razorpay"
	"fulfillment-service/internal/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

const (
	testKeyID         = "rzp_test_key"
	testKeySecret     = "rzp_test_secret"
	testWebhookSecret = "whsec_test"
)

func sign(secret string, payload []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

func newPaymentService(repo *mocks.MockPaymentRepository, gateway *mocks.MockGatewayClient, pub *mocks.MockPublisher) *PaymentService {
	return NewPaymentService(repo, gateway, pub, testKeyID, testKeySecret, testWebhookSecret)
}

func TestPaymentService_CreatePaymentOrder(t *testing.T) {
	repo := new(mocks.MockPaymentRepository)
	gateway := new(mocks.MockGatewayClient)
	pub := new(mocks.MockPublisher)

	group := []domain.Order{
		{ID: 1, TotalAmount: 1000, PaymentGroupID: "PG_A1B2C3"},
		{ID: 2, TotalAmount: 1600, PaymentGroupID: "PG_A1B2C3"},
	}
	repo.On("FindGroupForUser", mock.Anything, "PG_A1B2C3", uint64(42)).Return(group, nil)
	gateway.On("CreateOrder", mock.Anything, int64(2600), "PG_A1B2C3", mock.Anything).Return(&razorpay.GatewayOrder{
		ID:       "order_xyz",
		Amount:   2600,
		Currency: "INR",
	}, nil)
	repo.On("SetGatewayOrder", mock.Anything, "PG_A1B2C3", uint64(42), "order_xyz").Return(int64(2), nil)

	svc := newPaymentService(repo, gateway, pub)

	info, err := svc.CreatePaymentOrder(context.Background(), 42, "PG_A1B2C3")
	assert.NoError(t, err)
	assert.Equal(t, testKeyID, info.KeyID)
	assert.Equal(t, "order_xyz", info.GatewayOrderID)
	assert.Equal(t, int64(2600), info.Amount)
	assert.Equal(t, "INR", info.Currency)
	repo.AssertExpectations(t)
	gateway.AssertExpectations(t)
}

func TestPaymentService_CreatePaymentOrder_UnknownGroup(t *testing.T) {
	repo := new(mocks.MockPaymentRepository)
	gateway := new(mocks.MockGatewayClient)
	pub := new(mocks.MockPublisher)

	repo.On("FindGroupForUser", mock.Anything, "PG_NOPE", uint64(42)).Return([]domain.Order{}, nil)

	svc := newPaymentService(repo, gateway, pub)

	_, err := svc.CreatePaymentOrder(context.Background(), 42, "PG_NOPE")
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
	gateway.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestPaymentService_VerifyPayment(t *testing.T) {
	validSig := sign(testKeySecret, []byte("order_xyz|pay_123"))

	tests := []struct {
		name          string
		signature     string
		setupMocks    func(*mocks.MockPaymentRepository)
		expectedError error
	}{
		{
			name:      "valid signature marks the group paid",
			signature: validSig,
			setupMocks: func(repo *mocks.MockPaymentRepository) {
				repo.On("MarkGroupPaid", mock.Anything, "PG_A1B2C3", uint64(42), "order_xyz", "pay_123").Return(int64(2), nil)
			},
		},
		{
			name:          "tampered signature",
			signature:     sign("wrong_secret", []byte("order_xyz|pay_123")),
			setupMocks:    func(*mocks.MockPaymentRepository) {},
			expectedError: domain.ErrInvalidSignature,
		},
		{
			name:          "empty signature",
			signature:     "",
			setupMocks:    func(*mocks.MockPaymentRepository) {},
			expectedError: domain.ErrInvalidSignature,
		},
		{
			name:      "no matching orders",
			signature: validSig,
			setupMocks: func(repo *mocks.MockPaymentRepository) {
				repo.On("MarkGroupPaid", mock.Anything, "PG_A1B2C3", uint64(42), "order_xyz", "pay_123").Return(int64(0), nil)
			},
			expectedError: domain.ErrOrderNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mocks.MockPaymentRepository)
			gateway := new(mocks.MockGatewayClient)
			pub := new(mocks.MockPublisher)
			pub.On("Publish", mock.Anything, "payment.captured", mock.Anything).Return(nil).Maybe()
			tt.setupMocks(repo)

			svc := newPaymentService(repo, gateway, pub)

			err := svc.VerifyPayment(context.Background(), 42, "PG_A1B2C3", "order_xyz", "pay_123", tt.signature)
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestPaymentService_HandleWebhook(t *testing.T) {
	capturedBody := []byte(`{"event":"payment.captured","payload":{"payment":{"entity":{"id":"pay_123","order_id":"order_xyz"}}}}`)
	failedBody := []byte(`{"event":"payment.failed","payload":{"payment":{"entity":{"id":"pay_456","order_id":"order_xyz"}}}}`)
	noOrderBody := []byte(`{"event":"payment.captured","payload":{"payment":{"entity":{"id":"pay_123"}}}}`)

	tests := []struct {
		name          string
		body          []byte
		signature     string
		setupMocks    func(*mocks.MockPaymentRepository)
		expectedError error
	}{
		{
			name:      "captured event is recorded and applied",
			body:      capturedBody,
			signature: sign(testWebhookSecret, capturedBody),
			setupMocks: func(repo *mocks.MockPaymentRepository) {
				repo.On("RecordWebhookEvent", mock.Anything, "order_xyz", "pay_123", true, "pay_123").Return(true, nil)
			},
		},
		{
			name:      "replayed event is acknowledged without reprocessing",
			body:      capturedBody,
			signature: sign(testWebhookSecret, capturedBody),
			setupMocks: func(repo *mocks.MockPaymentRepository) {
				repo.On("RecordWebhookEvent", mock.Anything, "order_xyz", "pay_123", true, "pay_123").Return(false, nil)
			},
		},
		{
			name:      "non-capture event is recorded but changes nothing",
			body:      failedBody,
			signature: sign(testWebhookSecret, failedBody),
			setupMocks: func(repo *mocks.MockPaymentRepository) {
				repo.On("RecordWebhookEvent", mock.Anything, "order_xyz", "pay_456", false, "pay_456").Return(true, nil)
			},
		},
		{
			name:          "bad signature is rejected before parsing",
			body:          capturedBody,
			signature:     sign("someone_else", capturedBody),
			setupMocks:    func(*mocks.MockPaymentRepository) {},
			expectedError: domain.ErrInvalidSignature,
		},
		{
			name:          "missing signature header",
			body:          capturedBody,
			signature:     "",
			setupMocks:    func(*mocks.MockPaymentRepository) {},
			expectedError: domain.ErrInvalidSignature,
		},
		{
			name:       "event without an order id is acknowledged",
			body:       noOrderBody,
			signature:  sign(testWebhookSecret, noOrderBody),
			setupMocks: func(*mocks.MockPaymentRepository) {},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mocks.MockPaymentRepository)
			gateway := new(mocks.MockGatewayClient)
			pub := new(mocks.MockPublisher)
			pub.On("Publish", mock.Anything, "payment.captured", mock.Anything).Return(nil).Maybe()
			tt.setupMocks(repo)

			svc := newPaymentService(repo, gateway, pub)

			err := svc.HandleWebhook(context.Background(), tt.body, tt.signature)
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestPaymentService_WebhookSignatureIsOverRawBody(t *testing.T) {
	repo := new(mocks.MockPaymentRepository)
	gateway := new(mocks.MockGatewayClient)
	pub := new(mocks.MockPublisher)

	body := []byte(`{"event":"payment.captured","payload":{"payment":{"entity":{"id":"pay_123","order_id":"order_xyz"}}}}`)
	// Same JSON, different whitespace: the signature must not match.
	reformatted := []byte(fmt.Sprintf(" %s", body))

	svc := newPaymentService(repo, gateway, pub)

	err := svc.HandleWebhook(context.Background(), reformatted, sign(testWebhookSecret, body))
	assert.ErrorIs(t, err, domain.ErrInvalidSignature)
}

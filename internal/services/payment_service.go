package services

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log"
	"strconv"
	"time"

	"fulfillment-service/internal/domain"
	"fulfillment-service/internal/infra/rabbitmq"
	"fulfillment-service/internal/infra/razorpay"
	"fulfillment-service/internal/repository"
)

// PaymentService reconciles gateway payments against order groups. Neither
// entry point ever trusts a client-supplied payment status: the verify path
// checks the gateway's HMAC over order|payment ids, the webhook path checks
// the HMAC over the raw body, and both apply each state change at most once.
type PaymentService struct {
	payments  repository.PaymentRepository
	gateway   razorpay.ClientInterface
	publisher rabbitmq.PublisherInterface

	keyID         string
	keySecret     string
	webhookSecret string
}

func NewPaymentService(
	payments repository.PaymentRepository,
	gateway razorpay.ClientInterface,
	publisher rabbitmq.PublisherInterface,
	keyID, keySecret, webhookSecret string,
) *PaymentService {
	return &PaymentService{
		payments:      payments,
		gateway:       gateway,
		publisher:     publisher,
		keyID:         keyID,
		keySecret:     keySecret,
		webhookSecret: webhookSecret,
	}
}

type PaymentOrderInfo struct {
	KeyID          string `json:"keyId"`
	PaymentGroupID string `json:"paymentGroupId"`
	GatewayOrderID string `json:"gatewayOrderId"`
	Amount         int64  `json:"amount"`
	Currency       string `json:"currency"`
}

// CreatePaymentOrder opens one gateway order covering every order in the
// group and stamps its id onto them.
func (s *PaymentService) CreatePaymentOrder(ctx context.Context, userID uint64, paymentGroupID string) (*PaymentOrderInfo, error) {
	orders, err := s.payments.FindGroupForUser(ctx, paymentGroupID, userID)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, domain.ErrOrderNotFound
	}

	var amount int64
	for _, o := range orders {
		amount += o.TotalAmount
	}

	gatewayOrder, err := s.gateway.CreateOrder(ctx, amount, paymentGroupID, map[string]string{
		"paymentGroupId": paymentGroupID,
		"userId":         strconv.FormatUint(userID, 10),
	})
	if err != nil {
		return nil, err
	}

	if _, err := s.payments.SetGatewayOrder(ctx, paymentGroupID, userID, gatewayOrder.ID); err != nil {
		return nil, err
	}

	return &PaymentOrderInfo{
		KeyID:          s.keyID,
		PaymentGroupID: paymentGroupID,
		GatewayOrderID: gatewayOrder.ID,
		Amount:         amount,
		Currency:       "INR",
	}, nil
}

// VerifyPayment is the synchronous client-confirmed path.
func (s *PaymentService) VerifyPayment(ctx context.Context, userID uint64, paymentGroupID, gatewayOrderID, gatewayPaymentID, signature string) error {
	expected := signHex([]byte(s.keySecret), []byte(gatewayOrderID+"|"+gatewayPaymentID))
	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return domain.ErrInvalidSignature
	}

	matched, err := s.payments.MarkGroupPaid(ctx, paymentGroupID, userID, gatewayOrderID, gatewayPaymentID)
	if err != nil {
		return err
	}
	if matched == 0 {
		return domain.ErrOrderNotFound
	}

	go s.publishCaptured(context.Background(), paymentGroupID, gatewayOrderID, gatewayPaymentID)
	return nil
}

type webhookPayload struct {
	Event   string `json:"event"`
	Payload struct {
		Payment struct {
			Entity struct {
				ID      string `json:"id"`
				OrderID string `json:"order_id"`
			} `json:"entity"`
		} `json:"payment"`
	} `json:"payload"`
}

// HandleWebhook is the asynchronous gateway-initiated path. Replays of an
// already-recorded event id return success without reprocessing.
func (s *PaymentService) HandleWebhook(ctx context.Context, body []byte, signature string) error {
	expected := signHex([]byte(s.webhookSecret), body)
	if signature == "" || !hmac.Equal([]byte(expected), []byte(signature)) {
		return domain.ErrInvalidSignature
	}

	var payload webhookPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return err
	}

	gatewayOrderID := payload.Payload.Payment.Entity.OrderID
	if gatewayOrderID == "" {
		// Nothing to reconcile against; acknowledge and move on.
		return nil
	}

	eventID := payload.Payload.Payment.Entity.ID
	if eventID == "" {
		eventID = payload.Event
	}

	captured := payload.Event == "payment.captured"
	processed, err := s.payments.RecordWebhookEvent(ctx, gatewayOrderID, eventID, captured, payload.Payload.Payment.Entity.ID)
	if err != nil {
		return err
	}

	if processed && captured {
		go s.publishCaptured(context.Background(), "", gatewayOrderID, payload.Payload.Payment.Entity.ID)
	}
	return nil
}

func (s *PaymentService) publishCaptured(ctx context.Context, paymentGroupID, gatewayOrderID, gatewayPaymentID string) {
	evt := domain.PaymentCapturedEvent{
		PaymentGroupID:   paymentGroupID,
		GatewayOrderID:   gatewayOrderID,
		GatewayPaymentID: gatewayPaymentID,
		At:               time.Now(),
	}
	if err := s.publisher.Publish(ctx, "payment.captured", evt); err != nil {
		log.Printf("publish payment.captured: %v", err)
	}
}

func signHex(secret, payload []byte) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

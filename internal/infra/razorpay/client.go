package razorpay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// GatewayOrder is the gateway-side order a client completes payment against.
type GatewayOrder struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

type ClientInterface interface {
	CreateOrder(ctx context.Context, amountMinorUnits int64, receipt string, notes map[string]string) (*GatewayOrder, error)
}

var _ ClientInterface = (*Client)(nil)

type Client struct {
	baseURL    string
	keyID      string
	keySecret  string
	httpClient *http.Client
}

func NewClient(keyID, keySecret string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    "https://api.razorpay.com",
		keyID:      keyID,
		keySecret:  keySecret,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *Client) CreateOrder(ctx context.Context, amountMinorUnits int64, receipt string, notes map[string]string) (*GatewayOrder, error) {
	payload, err := json.Marshal(map[string]any{
		"amount":          amountMinorUnits,
		"currency":        "INR",
		"receipt":         receipt,
		"notes":           notes,
		"payment_capture": 1,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/orders", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(c.keyID, c.keySecret)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr struct {
			Error struct {
				Description string `json:"description"`
			} `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		if apiErr.Error.Description != "" {
			return nil, fmt.Errorf("gateway order creation failed: %s", apiErr.Error.Description)
		}
		return nil, fmt.Errorf("gateway returned status %d", resp.StatusCode)
	}

	var order GatewayOrder
	if err := json.NewDecoder(resp.Body).Decode(&order); err != nil {
		return nil, err
	}
	return &order, nil
}

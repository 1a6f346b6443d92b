// Package razorpay implements the payment gateway port against the
// Razorpay orders API.
package razorpay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rkinstitute/institute_mgmt_app/internal/apperrors"
	portssvc "github.com/rkinstitute/institute_mgmt_app/internal/core/ports/services"
)

const defaultTimeout = 15 * time.Second

type Client struct {
	baseURL    string
	keyID      string
	keySecret  string
	httpClient *http.Client
}

// NewClient creates a gateway client authenticated with the key pair.
func NewClient(baseURL string, keyID string, keySecret string) *Client {
	return &Client{
		baseURL:    baseURL,
		keyID:      keyID,
		keySecret:  keySecret,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
}

// Ensure Client implements the gateway port
var _ portssvc.PaymentGateway = (*Client)(nil)

type createOrderRequest struct {
	Amount   int64  `json:"amount"` // Smallest currency unit
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

type createOrderResponse struct {
	ID string `json:"id"`
}

// CreateOrder opens a provider order and returns its identifier. The amount
// arrives as a decimal string in major units and goes out in the smallest
// unit, as the provider requires.
func (c *Client) CreateOrder(ctx context.Context, amount string, currency string, receipt string) (string, error) {
	value, err := decimal.NewFromString(amount)
	if err != nil {
		return "", fmt.Errorf("%w: invalid order amount %q", apperrors.ErrValidation, amount)
	}
	subunits := value.Mul(decimal.NewFromInt(100)).IntPart()

	body, err := json.Marshal(createOrderRequest{
		Amount:   subunits,
		Currency: currency,
		Receipt:  receipt,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode order payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/orders", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build order request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.keyID, c.keySecret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: payment gateway unreachable: %v", apperrors.ErrExternalService, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: payment gateway returned %d creating order", apperrors.ErrExternalService, resp.StatusCode)
	}

	var decoded createOrderResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("%w: failed to decode order response: %v", apperrors.ErrExternalService, err)
	}
	if decoded.ID == "" {
		return "", fmt.Errorf("%w: payment gateway returned empty order id", apperrors.ErrExternalService)
	}
	return decoded.ID, nil
}

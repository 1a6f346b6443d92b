// Package whatsapp implements the outbound messaging gateway port against a
// WhatsApp HTTP provider.
package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rkinstitute/institute_mgmt_app/internal/apperrors"
	"github.com/rkinstitute/institute_mgmt_app/internal/core/domain"
	portssvc "github.com/rkinstitute/institute_mgmt_app/internal/core/ports/services"
	"github.com/rkinstitute/institute_mgmt_app/internal/utils"
)

const defaultTimeout = 15 * time.Second

type Client struct {
	baseURL     string
	token       string
	countryCode string
	httpClient  *http.Client
}

// NewClient creates a messaging gateway client for the configured provider.
func NewClient(baseURL string, token string, countryCode string) *Client {
	return &Client{
		baseURL:     baseURL,
		token:       token,
		countryCode: countryCode,
		httpClient:  &http.Client{Timeout: defaultTimeout},
	}
}

// Ensure Client implements the gateway port
var _ portssvc.MessagingGateway = (*Client)(nil)

type sendMessageRequest struct {
	Phone       string `json:"phone"`
	Message     string `json:"message"`
	DocumentURL string `json:"document_url,omitempty"`
}

type sendMessageResponse struct {
	Success   bool   `json:"success"`
	MessageID string `json:"message_id"`
	Error     string `json:"error"`
}

// SendMessage delivers one message through the provider. The phone number is
// normalized to international format before the call. Provider rejections are
// reported in the result; only transport-level problems return an error.
func (c *Client) SendMessage(ctx context.Context, phone string, message string, documentURL string) (*domain.DeliveryResult, error) {
	normalized := utils.NormalizePhone(phone, c.countryCode)
	if normalized == "" {
		return &domain.DeliveryResult{Success: false, Error: "empty phone number"}, nil
	}

	body, err := json.Marshal(sendMessageRequest{
		Phone:       normalized,
		Message:     message,
		DocumentURL: documentURL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode message payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/messages", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build gateway request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: whatsapp gateway unreachable: %v", apperrors.ErrExternalService, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		return nil, fmt.Errorf("%w: whatsapp gateway returned %d", apperrors.ErrExternalService, resp.StatusCode)
	}

	var decoded sendMessageResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("%w: failed to decode gateway response: %v", apperrors.ErrExternalService, err)
	}

	result := &domain.DeliveryResult{
		Success:   decoded.Success && resp.StatusCode < 300,
		MessageID: decoded.MessageID,
		Error:     decoded.Error,
	}
	if !result.Success && result.Error == "" {
		result.Error = fmt.Sprintf("gateway returned status %d", resp.StatusCode)
	}
	return result, nil
}

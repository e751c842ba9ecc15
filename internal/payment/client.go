package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"fanmeet-engine/internal/engineerrors"
)

// Client is a Gateway backed by the external payment service
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new payment service client.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

type referenceResponse struct {
	Reference string `json:"reference"`
}

// Refund calls POST /refunds
func (c *Client) Refund(ctx context.Context, req RefundRequest) (string, error) {
	return c.post(ctx, "/refunds", req.IdempotencyKey, req)
}

// Payout calls POST /payouts
func (c *Client) Payout(ctx context.Context, req PayoutRequest) (string, error) {
	return c.post(ctx, "/payouts", req.IdempotencyKey, req)
}

func (c *Client) post(ctx context.Context, path, idempotencyKey string, payload any) (string, error) {
	if c.baseURL == "" {
		return "", fmt.Errorf("payment service base URL is not configured: %w", engineerrors.ErrPaymentFailed)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal payment payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewBuffer(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Idempotency-Key", idempotencyKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to execute request to payment service: %v: %w", err, engineerrors.ErrPaymentFailed)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("payment service returned error status %d: %w", resp.StatusCode, engineerrors.ErrPaymentFailed)
	}

	var ref referenceResponse
	if err := json.NewDecoder(resp.Body).Decode(&ref); err != nil {
		return "", fmt.Errorf("failed to decode payment response: %v: %w", err, engineerrors.ErrPaymentFailed)
	}
	if ref.Reference == "" {
		return "", fmt.Errorf("payment service returned an empty reference: %w", engineerrors.ErrPaymentFailed)
	}
	return ref.Reference, nil
}

package razorpay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// Client is a Razorpay API client. It exposes exactly the three operations
// the order lifecycle needs: create an order, fetch a payment, refund a
// payment. All calls authenticate with basic auth (key id / key secret).
type Client struct {
	baseURL    string
	keyID      string
	keySecret  string
	httpClient *http.Client
}

// NewClient creates a Razorpay client. Returns nil when credentials are
// missing so callers can degrade to a service-unavailable response instead
// of talking to the gateway unauthenticated.
func NewClient(keyID, keySecret string) *Client {
	if keyID == "" || keySecret == "" {
		return nil
	}

	return &Client{
		baseURL:   APIBase,
		keyID:     keyID,
		keySecret: keySecret,
		httpClient: &http.Client{
			Timeout: RequestTimeout,
		},
	}
}

// SetBaseURL overrides the API endpoint. Used by tests.
func (c *Client) SetBaseURL(u string) {
	c.baseURL = u
}

// KeyID returns the public key id, which checkout clients need.
func (c *Client) KeyID() string {
	return c.keyID
}

// OrderRequest is the payload for creating a gateway order.
type OrderRequest struct {
	Amount   int64             `json:"amount"` // minor units
	Currency string            `json:"currency"`
	Receipt  string            `json:"receipt"`
	Notes    map[string]string `json:"notes,omitempty"`
}

// Order is a gateway-side record of an intended payment.
type Order struct {
	ID        string            `json:"id"`
	Amount    int64             `json:"amount"`
	Currency  string            `json:"currency"`
	Receipt   string            `json:"receipt"`
	Status    string            `json:"status"`
	Notes     map[string]string `json:"notes"`
	CreatedAt int64             `json:"created_at"`
}

// Payment is the gateway's authoritative payment record.
type Payment struct {
	ID               string `json:"id"`
	OrderID          string `json:"order_id"`
	Amount           int64  `json:"amount"`
	Currency         string `json:"currency"`
	Status           string `json:"status"`
	Method           string `json:"method"`
	ErrorCode        string `json:"error_code"`
	ErrorDescription string `json:"error_description"`
	Email            string `json:"email"`
	Contact          string `json:"contact"`
	CreatedAt        int64  `json:"created_at"`

	// Raw is the undecoded gateway response body, persisted for audit.
	Raw json.RawMessage `json:"-"`
}

// Refund is the gateway's record of a refund.
type Refund struct {
	ID        string `json:"id"`
	PaymentID string `json:"payment_id"`
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"`
	Status    string `json:"status"`
	CreatedAt int64  `json:"created_at"`
}

// APIError is a structured error response from the gateway.
type APIError struct {
	StatusCode  int
	Code        string
	Description string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("razorpay: %s (%s, http %d)", e.Description, e.Code, e.StatusCode)
}

// CreateOrder creates an order at the gateway.
func (c *Client) CreateOrder(ctx context.Context, req OrderRequest) (*Order, error) {
	body, err := c.do(ctx, http.MethodPost, "/orders", req)
	if err != nil {
		return nil, err
	}

	var order Order
	if err := json.Unmarshal(body, &order); err != nil {
		return nil, fmt.Errorf("decode order response: %w", err)
	}
	return &order, nil
}

// FetchPayment retrieves a payment by id.
func (c *Client) FetchPayment(ctx context.Context, paymentID string) (*Payment, error) {
	body, err := c.do(ctx, http.MethodGet, "/payments/"+paymentID, nil)
	if err != nil {
		return nil, err
	}

	var payment Payment
	if err := json.Unmarshal(body, &payment); err != nil {
		return nil, fmt.Errorf("decode payment response: %w", err)
	}
	payment.Raw = body
	return &payment, nil
}

// RefundPayment issues a full refund for a payment.
func (c *Client) RefundPayment(ctx context.Context, paymentID string) (*Refund, error) {
	body, err := c.do(ctx, http.MethodPost, "/payments/"+paymentID+"/refund", struct{}{})
	if err != nil {
		return nil, err
	}

	var refund Refund
	if err := json.Unmarshal(body, &refund); err != nil {
		return nil, fmt.Errorf("decode refund response: %w", err)
	}
	return &refund, nil
}

func (c *Client) do(ctx context.Context, method, path string, payload any) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(c.keyID, c.keySecret)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr struct {
			Error struct {
				Code        string `json:"code"`
				Description string `json:"description"`
			} `json:"error"`
		}
		if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error.Description != "" {
			return nil, &APIError{
				StatusCode:  resp.StatusCode,
				Code:        apiErr.Error.Code,
				Description: apiErr.Error.Description,
			}
		}
		return nil, &APIError{
			StatusCode:  resp.StatusCode,
			Code:        "unknown",
			Description: resp.Status,
		}
	}

	return body, nil
}

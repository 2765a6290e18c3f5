package razorpay

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewClient("rzp_test_key", "rzp_test_secret")
	if c == nil {
		t.Fatal("expected client with credentials")
	}
	c.SetBaseURL(srv.URL)
	return c, srv
}

func TestNewClientMissingCredentials(t *testing.T) {
	if NewClient("", "secret") != nil {
		t.Fatal("expected nil client without key id")
	}
	if NewClient("key", "") != nil {
		t.Fatal("expected nil client without secret")
	}
}

func TestCreateOrder(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/orders" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}

		user, pass, ok := r.BasicAuth()
		if !ok || user != "rzp_test_key" || pass != "rzp_test_secret" {
			t.Errorf("missing or wrong basic auth")
		}

		var req OrderRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Amount != 50000 || req.Currency != "INR" {
			t.Errorf("unexpected order request: %+v", req)
		}

		json.NewEncoder(w).Encode(Order{
			ID:       "order_test1",
			Amount:   req.Amount,
			Currency: req.Currency,
			Receipt:  req.Receipt,
			Status:   "created",
		})
	}))

	order, err := c.CreateOrder(context.Background(), OrderRequest{
		Amount:   50000,
		Currency: CurrencyINR,
		Receipt:  "rcpt-1",
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	if order.ID != "order_test1" || order.Amount != 50000 {
		t.Fatalf("unexpected order: %+v", order)
	}
}

func TestFetchPaymentKeepsRawPayload(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/payments/pay_1" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Write([]byte(`{"id":"pay_1","order_id":"order_1","amount":20000,"status":"captured","extra_field":"kept"}`))
	}))

	payment, err := c.FetchPayment(context.Background(), "pay_1")
	if err != nil {
		t.Fatalf("fetch payment: %v", err)
	}
	if payment.Status != PaymentStatusCaptured || payment.Amount != 20000 {
		t.Fatalf("unexpected payment: %+v", payment)
	}
	// undecoded fields survive in the audit payload
	if len(payment.Raw) == 0 {
		t.Fatal("expected raw payload to be kept")
	}
	var raw map[string]any
	if err := json.Unmarshal(payment.Raw, &raw); err != nil {
		t.Fatalf("raw payload not json: %v", err)
	}
	if raw["extra_field"] != "kept" {
		t.Fatalf("raw payload lost fields: %v", raw)
	}
}

func TestRefundPayment(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/payments/pay_1/refund" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		json.NewEncoder(w).Encode(Refund{ID: "rfnd_1", PaymentID: "pay_1", Amount: 50000, Status: "processed"})
	}))

	refund, err := c.RefundPayment(context.Background(), "pay_1")
	if err != nil {
		t.Fatalf("refund: %v", err)
	}
	if refund.ID != "rfnd_1" || refund.PaymentID != "pay_1" {
		t.Fatalf("unexpected refund: %+v", refund)
	}
}

func TestAPIErrorDecoding(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"code":"BAD_REQUEST_ERROR","description":"amount exceeds maximum"}}`))
	}))

	_, err := c.CreateOrder(context.Background(), OrderRequest{Amount: 1, Currency: CurrencyINR})
	if err == nil {
		t.Fatal("expected error")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T: %v", err, err)
	}
	if apiErr.Code != "BAD_REQUEST_ERROR" || apiErr.StatusCode != http.StatusBadRequest {
		t.Fatalf("unexpected api error: %+v", apiErr)
	}
	if apiErr.Description != "amount exceeds maximum" {
		t.Fatalf("unexpected description: %s", apiErr.Description)
	}
}

func TestAPIErrorUnparseableBody(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream blew up"))
	}))

	_, err := c.FetchPayment(context.Background(), "pay_1")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusBadGateway {
		t.Fatalf("unexpected status: %d", apiErr.StatusCode)
	}
}

func TestAmountConversions(t *testing.T) {
	cases := []struct {
		rupees float64
		paise  int64
	}{
		{500.00, 50000},
		{0.01, 1},
		{99.999, 10000},
		{10.554, 1055},
		{10.556, 1056},
	}
	for _, tc := range cases {
		if got := RupeesToPaise(tc.rupees); got != tc.paise {
			t.Errorf("RupeesToPaise(%v) = %d, want %d", tc.rupees, got, tc.paise)
		}
	}

	if got := PaiseToRupees(50000); got != 500.00 {
		t.Errorf("PaiseToRupees(50000) = %v, want 500.00", got)
	}
}

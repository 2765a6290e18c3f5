package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"travel_backend/internal/domain"
	"travel_backend/internal/logger"
	"travel_backend/internal/razorpay"

	"github.com/google/uuid"
)

// Gateway is the payment gateway capability: create an order, fetch the
// authoritative payment record, refund a payment. Nothing in the orchestrator
// talks to the gateway transport directly.
type Gateway interface {
	CreateOrder(ctx context.Context, req razorpay.OrderRequest) (*razorpay.Order, error)
	FetchPayment(ctx context.Context, paymentID string) (*razorpay.Payment, error)
	RefundPayment(ctx context.Context, paymentID string) (*razorpay.Refund, error)
	KeyID() string
}

// TransactionStore persists order lifecycle records. Status transitions are
// conditional at the store level: each transition method reports whether it
// actually happened, and settlement credits are gated on that report.
type TransactionStore interface {
	Create(ctx context.Context, tx *domain.Transaction) error
	CreateSettled(ctx context.Context, tx *domain.Transaction) (bool, error)
	GetLatestPending(ctx context.Context, orderID string) (*domain.Transaction, error)
	GetByID(ctx context.Context, id int64) (*domain.Transaction, error)
	AttachPayment(ctx context.Context, orderID, paymentID string, payload []byte) error
	SettlePending(ctx context.Context, orderID string) (*domain.Transaction, bool, error)
	FailPending(ctx context.Context, orderID, reason string) (bool, error)
	SetGatewayStatus(ctx context.Context, orderID, status string) error
	MarkRefunded(ctx context.Context, paymentID string) (bool, error)
	UnmarkRefunded(ctx context.Context, paymentID string) (bool, error)
	SetRefundRequested(ctx context.Context, id int64) (*domain.Transaction, error)
	ListByUser(ctx context.Context, userID int64, status string, offset, limit int) ([]domain.Transaction, int64, error)
	List(ctx context.Context, status string, offset, limit int) ([]domain.Transaction, int64, error)
}

// BalanceStore credits user balances. The credit must be a single atomic
// increment on the store side.
type BalanceStore interface {
	CreditBalance(ctx context.Context, userID int64, amountPaise int64) (float64, error)
}

// PaymentService orchestrates the order lifecycle: create at the gateway,
// verify the signature, reconcile against the gateway's payment record,
// settle the balance exactly once, and handle refunds.
type PaymentService struct {
	gateway Gateway
	secret  string
	txs     TransactionStore
	users   BalanceStore
}

// NewPaymentService wires the orchestrator. gateway may be nil when the
// credentials are not configured; operations then return
// ErrServiceUnavailable instead of panicking.
func NewPaymentService(gateway Gateway, secret string, txs TransactionStore, users BalanceStore) *PaymentService {
	return &PaymentService{gateway: gateway, secret: secret, txs: txs, users: users}
}

// OrderResult is returned to the client so it can open gateway checkout.
type OrderResult struct {
	OrderID       string `json:"order_id"`
	Amount        int64  `json:"amount"` // minor units
	Currency      string `json:"currency"`
	Receipt       string `json:"receipt"`
	Key           string `json:"key"`
	TransactionID int64  `json:"transaction_id,omitempty"`
}

// VerifyResult reports the reconciliation outcome.
type VerifyResult struct {
	PaymentID     string `json:"payment_id"`
	OrderID       string `json:"order_id"`
	Amount        int64  `json:"amount"`
	TransactionID int64  `json:"transaction_id,omitempty"`
	Status        string `json:"status"`
	// Credited is true when this call performed the balance credit. Repeat
	// verifications of a settled order report Status success with
	// Credited=false.
	Credited bool `json:"-"`
}

func (s *PaymentService) available() bool {
	return s.gateway != nil && s.secret != ""
}

// CreateOrder creates a gateway order for the amount (major currency units)
// and records a pending transaction. The local write is best-effort: a
// gateway order without a local record is still returned so payment can
// proceed, and verification recovers the record later.
func (s *PaymentService) CreateOrder(ctx context.Context, userID int64, amount float64, purpose string) (*OrderResult, error) {
	if !s.available() {
		return nil, ErrServiceUnavailable
	}
	if amount <= 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return nil, fmt.Errorf("%w: amount must be a positive number", ErrInvalidInput)
	}

	if purpose == "" {
		purpose = "Payment"
	}

	paise := razorpay.RupeesToPaise(amount)
	receipt := uuid.NewString()

	order, err := s.gateway.CreateOrder(ctx, razorpay.OrderRequest{
		Amount:   paise,
		Currency: razorpay.CurrencyINR,
		Receipt:  receipt,
		Notes: map[string]string{
			"user_id":   fmt.Sprintf("%d", userID),
			"purpose":   purpose,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpstream, err)
	}

	result := &OrderResult{
		OrderID:  order.ID,
		Amount:   order.Amount,
		Currency: order.Currency,
		Receipt:  order.Receipt,
		Key:      s.gateway.KeyID(),
	}

	tx := &domain.Transaction{
		UserID:    userID,
		OrderID:   order.ID,
		ReceiptID: order.Receipt,
		Amount:    order.Amount,
		Purpose:   purpose,
		Status:    domain.TransactionStatusPending,
	}
	if err := s.txs.Create(ctx, tx); err != nil {
		// The gateway order exists, so the payment can still proceed.
		// Verification reconciles the missing record.
		logger.Error("transaction record not written, payment can still proceed",
			"order_id", order.ID, "error", err)
		return result, nil
	}

	result.TransactionID = tx.ID
	return result, nil
}

// VerifyPayment authenticates a completed checkout and reconciles it against
// the gateway's payment record. The signature check runs before any state is
// touched. The balance is credited at most once per order: settlement goes
// through a conditional pending-to-success transition, and the recovery path
// is guarded by the settled-order uniqueness constraint.
func (s *PaymentService) VerifyPayment(ctx context.Context, userID int64, orderID, paymentID, signature string) (*VerifyResult, error) {
	if !s.available() {
		return nil, ErrServiceUnavailable
	}
	if orderID == "" || paymentID == "" || signature == "" {
		return nil, fmt.Errorf("%w: order id, payment id and signature are required", ErrInvalidInput)
	}

	if !razorpay.VerifySignature(orderID, paymentID, signature, s.secret) {
		logger.Warn("payment signature mismatch", "order_id", orderID, "payment_id", paymentID)
		return nil, ErrInvalidSignature
	}

	tx, err := s.txs.GetLatestPending(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if tx == nil {
		return s.recoverAndSettle(ctx, userID, orderID, paymentID)
	}

	payment, err := s.gateway.FetchPayment(ctx, paymentID)
	if err != nil {
		// Transaction stays pending; verification can be retried.
		return nil, fmt.Errorf("%w: %w", ErrUpstream, err)
	}

	// Audit trail: keep the payment id and raw payload whatever the outcome.
	if err := s.txs.AttachPayment(ctx, orderID, paymentID, payment.Raw); err != nil {
		logger.Error("failed to attach payment payload", "order_id", orderID, "error", err)
	}

	switch payment.Status {
	case razorpay.PaymentStatusAuthorized, razorpay.PaymentStatusCaptured:
		settled, ok, err := s.txs.SettlePending(ctx, orderID)
		if err != nil {
			return nil, err
		}
		result := &VerifyResult{
			PaymentID: payment.ID,
			OrderID:   orderID,
			Amount:    tx.Amount,
			Status:    string(domain.TransactionStatusSuccess),
		}
		if !ok {
			// A concurrent verify settled it first. Reaffirm success
			// without crediting again.
			result.TransactionID = tx.ID
			return result, nil
		}

		newBalance, err := s.users.CreditBalance(ctx, settled.UserID, settled.Amount)
		if err != nil {
			return nil, err
		}
		logger.Info("payment settled",
			"order_id", orderID, "payment_id", payment.ID,
			"amount", settled.Amount, "balance", newBalance)

		result.TransactionID = settled.ID
		result.Amount = settled.Amount
		result.Credited = true
		return result, nil

	case razorpay.PaymentStatusFailed:
		reason := payment.ErrorDescription
		if reason == "" {
			reason = "Payment failed"
		}
		if _, err := s.txs.FailPending(ctx, orderID, reason); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %s", ErrPaymentFailed, reason)

	default:
		// Intermediate gateway state: record it verbatim, settle nothing.
		if err := s.txs.SetGatewayStatus(ctx, orderID, payment.Status); err != nil {
			return nil, err
		}
		return &VerifyResult{
			PaymentID:     payment.ID,
			OrderID:       orderID,
			Amount:        tx.Amount,
			TransactionID: tx.ID,
			Status:        payment.Status,
		}, nil
	}
}

// recoverAndSettle handles a verified signature with no local pending record,
// which happens when the transaction write failed at order creation. The
// gateway is the source of truth here: the payment must exist there (the
// signature alone is not authority to credit funds), and its amount is
// accepted as-is.
func (s *PaymentService) recoverAndSettle(ctx context.Context, userID int64, orderID, paymentID string) (*VerifyResult, error) {
	payment, err := s.gateway.FetchPayment(ctx, paymentID)
	if err != nil {
		var apiErr *razorpay.APIError
		if errors.As(err, &apiErr) {
			return nil, fmt.Errorf("%w: no matching payment record", ErrNotFound)
		}
		return nil, fmt.Errorf("%w: %w", ErrUpstream, err)
	}

	tx := &domain.Transaction{
		UserID:         userID,
		OrderID:        orderID,
		PaymentID:      payment.ID,
		Amount:         payment.Amount,
		PaymentPayload: payment.Raw,
	}
	created, err := s.txs.CreateSettled(ctx, tx)
	if err != nil {
		return nil, err
	}

	result := &VerifyResult{
		PaymentID: payment.ID,
		OrderID:   orderID,
		Amount:    payment.Amount,
		Status:    string(domain.TransactionStatusSuccess),
	}
	if !created {
		// The order is already settled; a repeat call must not credit again.
		return result, nil
	}

	newBalance, err := s.users.CreditBalance(ctx, userID, payment.Amount)
	if err != nil {
		return nil, err
	}
	logger.Info("payment recovered and settled",
		"order_id", orderID, "payment_id", payment.ID,
		"amount", payment.Amount, "balance", newBalance)

	result.TransactionID = tx.ID
	result.Credited = true
	return result, nil
}

// RefundPayment refunds a settled payment at the gateway and marks the local
// transaction refunded. The success-to-refunded transition happens first and
// conditionally, so concurrent refund calls for the same payment cannot both
// reach the gateway; if the gateway then rejects the refund, the transition
// is reverted.
func (s *PaymentService) RefundPayment(ctx context.Context, paymentID string) (*razorpay.Refund, error) {
	if !s.available() {
		return nil, ErrServiceUnavailable
	}
	if paymentID == "" {
		return nil, fmt.Errorf("%w: payment id is required", ErrInvalidInput)
	}

	ok, err := s.txs.MarkRefunded(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: no settled transaction for payment", ErrConflict)
	}

	refund, err := s.gateway.RefundPayment(ctx, paymentID)
	if err != nil {
		if _, revertErr := s.txs.UnmarkRefunded(ctx, paymentID); revertErr != nil {
			logger.Error("failed to revert refund status", "payment_id", paymentID, "error", revertErr)
		}
		return nil, fmt.Errorf("%w: %w", ErrUpstream, err)
	}

	logger.Info("payment refunded", "payment_id", paymentID, "refund_id", refund.ID)
	return refund, nil
}

// RequestRefund flags a transaction for administrative refund action. Purely
// advisory: no gateway call, no balance change.
func (s *PaymentService) RequestRefund(ctx context.Context, transactionID int64) (*domain.Transaction, error) {
	tx, err := s.txs.SetRefundRequested(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if tx == nil {
		return nil, fmt.Errorf("%w: transaction not found", ErrNotFound)
	}
	return tx, nil
}

// ListUserTransactions returns a page of the caller's transactions.
func (s *PaymentService) ListUserTransactions(ctx context.Context, userID int64, page, limit int) ([]domain.Transaction, int, error) {
	offset, limit := paginate(page, limit)
	txs, total, err := s.txs.ListByUser(ctx, userID, "", offset, limit)
	if err != nil {
		return nil, 0, err
	}
	return txs, totalPages(total, limit), nil
}

// ListAllTransactions returns a page over every transaction, optionally
// filtered by status. Admin scope.
func (s *PaymentService) ListAllTransactions(ctx context.Context, status string, page, limit int) ([]domain.Transaction, int, error) {
	offset, limit := paginate(page, limit)
	txs, total, err := s.txs.List(ctx, status, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	return txs, totalPages(total, limit), nil
}

// ListUserTransactionsForAdmin returns a page of one user's transactions with
// an optional status filter. Admin scope.
func (s *PaymentService) ListUserTransactionsForAdmin(ctx context.Context, userID int64, status string, page, limit int) ([]domain.Transaction, int, error) {
	offset, limit := paginate(page, limit)
	txs, total, err := s.txs.ListByUser(ctx, userID, status, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	return txs, totalPages(total, limit), nil
}

func paginate(page, limit int) (offset, take int) {
	if limit <= 0 {
		limit = 10
	}
	if page <= 0 {
		page = 1
	}
	return (page - 1) * limit, limit
}

func totalPages(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

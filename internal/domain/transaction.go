package domain

import "time"

// TransactionStatus tracks a payment order's lifecycle. Besides the four
// statuses below, a transaction may carry a gateway-reported intermediate
// state verbatim (e.g. "created") until the gateway settles it one way or
// the other.
type TransactionStatus string

const (
	TransactionStatusPending  TransactionStatus = "pending"
	TransactionStatusSuccess  TransactionStatus = "success"
	TransactionStatusFailed   TransactionStatus = "failed"
	TransactionStatusRefunded TransactionStatus = "refunded"
)

// Transaction is the local record of one gateway order, from creation to
// settlement, failure or refund. Rows are never deleted, only updated.
type Transaction struct {
	ID        int64  `db:"id" json:"id"`
	UserID    int64  `db:"user_id" json:"user_id"`
	OrderID   string `db:"order_id" json:"order_id"`
	PaymentID string `db:"payment_id" json:"payment_id,omitempty"`
	ReceiptID string `db:"receipt_id" json:"receipt_id,omitempty"`
	// Amount is in minor currency units (paise).
	Amount          int64             `db:"amount" json:"amount"`
	Purpose         string            `db:"purpose" json:"purpose,omitempty"`
	Status          TransactionStatus `db:"status" json:"status"`
	FailureReason   string            `db:"failure_reason" json:"failure_reason,omitempty"`
	RefundRequested bool              `db:"refund_requested" json:"refund_requested"`
	// PaymentPayload holds the raw gateway payment record for audit.
	PaymentPayload []byte     `db:"payment_payload" json:"-"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
	SettledAt      *time.Time `db:"settled_at" json:"settled_at,omitempty"`
}

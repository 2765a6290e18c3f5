package repository

import (
	"context"
	"errors"
	"time"

	"travel_backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const txColumns = `id, user_id, order_id, COALESCE(payment_id, ''), COALESCE(receipt_id, ''),
	amount, COALESCE(purpose, ''), status, COALESCE(failure_reason, ''),
	refund_requested, created_at, settled_at`

type TransactionRepository struct {
	db *pgxpool.Pool
}

func NewTransactionRepository(db *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// Create inserts a new pending transaction for a freshly created order.
func (r *TransactionRepository) Create(ctx context.Context, tx *domain.Transaction) error {
	return r.db.QueryRow(ctx,
		`INSERT INTO transactions (user_id, order_id, receipt_id, amount, purpose, status)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at`,
		tx.UserID, tx.OrderID, tx.ReceiptID, tx.Amount, tx.Purpose, tx.Status,
	).Scan(&tx.ID, &tx.CreatedAt)
}

// CreateSettled inserts a transaction directly in success status. Used on the
// recovery path when the pending record was never written locally. Returns
// false without error when the order already has a settled transaction (the
// partial unique index rejects the insert), so callers never double-credit.
func (r *TransactionRepository) CreateSettled(ctx context.Context, tx *domain.Transaction) (bool, error) {
	now := time.Now()
	err := r.db.QueryRow(ctx,
		`INSERT INTO transactions (user_id, order_id, payment_id, amount, status, payment_payload, settled_at)
		 VALUES ($1, $2, $3, $4, 'success', $5, $6)
		 RETURNING id, created_at`,
		tx.UserID, tx.OrderID, tx.PaymentID, tx.Amount, tx.PaymentPayload, now,
	).Scan(&tx.ID, &tx.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return false, nil
		}
		return false, err
	}

	tx.Status = domain.TransactionStatusSuccess
	tx.SettledAt = &now
	return true, nil
}

// GetLatestPending returns the most recent pending transaction for an order,
// or nil when there is none.
func (r *TransactionRepository) GetLatestPending(ctx context.Context, orderID string) (*domain.Transaction, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+txColumns+`
		 FROM transactions
		 WHERE order_id = $1 AND status = 'pending'
		 ORDER BY created_at DESC
		 LIMIT 1`,
		orderID,
	)
	return scanTransaction(row)
}

func (r *TransactionRepository) GetByID(ctx context.Context, id int64) (*domain.Transaction, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+txColumns+` FROM transactions WHERE id = $1`, id)
	return scanTransaction(row)
}

// AttachPayment records the gateway payment id and the raw payment payload on
// an order's transactions, whatever the verification outcome turns out to be.
func (r *TransactionRepository) AttachPayment(ctx context.Context, orderID, paymentID string, payload []byte) error {
	_, err := r.db.Exec(ctx,
		`UPDATE transactions SET payment_id = $2, payment_payload = $3 WHERE order_id = $1`,
		orderID, paymentID, payload)
	return err
}

// SettlePending transitions the order's transaction from pending to success.
// The status check in the WHERE clause makes the transition atomic: of any
// number of concurrent verify calls, exactly one observes ok=true, and only
// that caller credits the balance.
func (r *TransactionRepository) SettlePending(ctx context.Context, orderID string) (*domain.Transaction, bool, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE transactions
		 SET status = 'success', settled_at = now()
		 WHERE order_id = $1 AND status = 'pending'
		 RETURNING `+txColumns,
		orderID,
	)
	tx, err := scanTransaction(row)
	if err != nil {
		return nil, false, err
	}
	if tx == nil {
		return nil, false, nil
	}
	return tx, true, nil
}

// FailPending transitions the order's transaction from pending to failed with
// the gateway's failure reason.
func (r *TransactionRepository) FailPending(ctx context.Context, orderID, reason string) (bool, error) {
	tag, err := r.db.Exec(ctx,
		`UPDATE transactions
		 SET status = 'failed', failure_reason = $2
		 WHERE order_id = $1 AND status = 'pending'`,
		orderID, reason)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// SetGatewayStatus stores a gateway-reported intermediate status verbatim.
// Only pending transactions are touched; terminal states never move.
func (r *TransactionRepository) SetGatewayStatus(ctx context.Context, orderID, status string) error {
	_, err := r.db.Exec(ctx,
		`UPDATE transactions SET status = $2 WHERE order_id = $1 AND status = 'pending'`,
		orderID, status)
	return err
}

// MarkRefunded transitions a settled transaction to refunded. Refunds are
// only valid from success, which also serializes concurrent refund calls:
// the second one sees zero rows.
func (r *TransactionRepository) MarkRefunded(ctx context.Context, paymentID string) (bool, error) {
	tag, err := r.db.Exec(ctx,
		`UPDATE transactions SET status = 'refunded' WHERE payment_id = $1 AND status = 'success'`,
		paymentID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// UnmarkRefunded reverts a refunded transaction back to success. Used when
// the gateway rejects a refund after the local transition already happened.
func (r *TransactionRepository) UnmarkRefunded(ctx context.Context, paymentID string) (bool, error) {
	tag, err := r.db.Exec(ctx,
		`UPDATE transactions SET status = 'success' WHERE payment_id = $1 AND status = 'refunded'`,
		paymentID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// SetRefundRequested flags a transaction for manual refund handling and
// returns the updated record.
func (r *TransactionRepository) SetRefundRequested(ctx context.Context, id int64) (*domain.Transaction, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE transactions SET refund_requested = true WHERE id = $1
		 RETURNING `+txColumns,
		id,
	)
	return scanTransaction(row)
}

// ListByUser returns a page of a user's transactions, newest first, with the
// total row count for pagination. Status filter is optional ("" = all).
func (r *TransactionRepository) ListByUser(ctx context.Context, userID int64, status string, offset, limit int) ([]domain.Transaction, int64, error) {
	var total int64
	var rows pgx.Rows
	var err error

	if status != "" {
		err = r.db.QueryRow(ctx,
			`SELECT COUNT(*) FROM transactions WHERE user_id = $1 AND status = $2`,
			userID, status).Scan(&total)
		if err != nil {
			return nil, 0, err
		}
		rows, err = r.db.Query(ctx,
			`SELECT `+txColumns+`
			 FROM transactions
			 WHERE user_id = $1 AND status = $2
			 ORDER BY created_at DESC
			 OFFSET $3 LIMIT $4`,
			userID, status, offset, limit)
	} else {
		err = r.db.QueryRow(ctx,
			`SELECT COUNT(*) FROM transactions WHERE user_id = $1`, userID).Scan(&total)
		if err != nil {
			return nil, 0, err
		}
		rows, err = r.db.Query(ctx,
			`SELECT `+txColumns+`
			 FROM transactions
			 WHERE user_id = $1
			 ORDER BY created_at DESC
			 OFFSET $2 LIMIT $3`,
			userID, offset, limit)
	}
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	txs, err := scanTransactions(rows)
	return txs, total, err
}

// List returns a page over all transactions with an optional status filter.
func (r *TransactionRepository) List(ctx context.Context, status string, offset, limit int) ([]domain.Transaction, int64, error) {
	var total int64
	var rows pgx.Rows
	var err error

	if status != "" {
		err = r.db.QueryRow(ctx,
			`SELECT COUNT(*) FROM transactions WHERE status = $1`, status).Scan(&total)
		if err != nil {
			return nil, 0, err
		}
		rows, err = r.db.Query(ctx,
			`SELECT `+txColumns+`
			 FROM transactions
			 WHERE status = $1
			 ORDER BY created_at DESC
			 OFFSET $2 LIMIT $3`,
			status, offset, limit)
	} else {
		err = r.db.QueryRow(ctx, `SELECT COUNT(*) FROM transactions`).Scan(&total)
		if err != nil {
			return nil, 0, err
		}
		rows, err = r.db.Query(ctx,
			`SELECT `+txColumns+`
			 FROM transactions
			 ORDER BY created_at DESC
			 OFFSET $1 LIMIT $2`,
			offset, limit)
	}
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	txs, err := scanTransactions(rows)
	return txs, total, err
}

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var tx domain.Transaction
	if err := row.Scan(
		&tx.ID, &tx.UserID, &tx.OrderID, &tx.PaymentID, &tx.ReceiptID,
		&tx.Amount, &tx.Purpose, &tx.Status, &tx.FailureReason,
		&tx.RefundRequested, &tx.CreatedAt, &tx.SettledAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &tx, nil
}

func scanTransactions(rows pgx.Rows) ([]domain.Transaction, error) {
	var txs []domain.Transaction
	for rows.Next() {
		var tx domain.Transaction
		if err := rows.Scan(
			&tx.ID, &tx.UserID, &tx.OrderID, &tx.PaymentID, &tx.ReceiptID,
			&tx.Amount, &tx.Purpose, &tx.Status, &tx.FailureReason,
			&tx.RefundRequested, &tx.CreatedAt, &tx.SettledAt,
		); err != nil {
			return nil, err
		}
		txs = append(txs, tx)
	}
	return txs, rows.Err()
}

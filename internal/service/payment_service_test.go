package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"travel_backend/internal/domain"
	"travel_backend/internal/razorpay"
)

const testSecret = "test-secret"

type fakeGateway struct {
	order        *razorpay.Order
	orderErr     error
	payment      *razorpay.Payment
	paymentErr   error
	refund       *razorpay.Refund
	refundErr    error
	lastOrderReq razorpay.OrderRequest
	fetchCalls   int
	refundCalls  int
}

func (g *fakeGateway) CreateOrder(_ context.Context, req razorpay.OrderRequest) (*razorpay.Order, error) {
	g.lastOrderReq = req
	if g.orderErr != nil {
		return nil, g.orderErr
	}
	if g.order != nil {
		return g.order, nil
	}
	return &razorpay.Order{
		ID:       "order_fake1",
		Amount:   req.Amount,
		Currency: req.Currency,
		Receipt:  req.Receipt,
		Status:   "created",
	}, nil
}

func (g *fakeGateway) FetchPayment(_ context.Context, paymentID string) (*razorpay.Payment, error) {
	g.fetchCalls++
	if g.paymentErr != nil {
		return nil, g.paymentErr
	}
	return g.payment, nil
}

func (g *fakeGateway) RefundPayment(_ context.Context, paymentID string) (*razorpay.Refund, error) {
	g.refundCalls++
	if g.refundErr != nil {
		return nil, g.refundErr
	}
	if g.refund != nil {
		return g.refund, nil
	}
	return &razorpay.Refund{ID: "rfnd_fake1", PaymentID: paymentID, Status: "processed"}, nil
}

func (g *fakeGateway) KeyID() string { return "rzp_test_key" }

type fakeTxStore struct {
	txs       []*domain.Transaction
	nextID    int64
	createErr error
}

func (s *fakeTxStore) Create(_ context.Context, tx *domain.Transaction) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.nextID++
	tx.ID = s.nextID
	tx.CreatedAt = time.Now()
	cp := *tx
	s.txs = append(s.txs, &cp)
	return nil
}

func (s *fakeTxStore) CreateSettled(_ context.Context, tx *domain.Transaction) (bool, error) {
	for _, t := range s.txs {
		if t.OrderID == tx.OrderID && t.Status == domain.TransactionStatusSuccess {
			return false, nil
		}
	}
	s.nextID++
	tx.ID = s.nextID
	tx.Status = domain.TransactionStatusSuccess
	now := time.Now()
	tx.CreatedAt = now
	tx.SettledAt = &now
	cp := *tx
	s.txs = append(s.txs, &cp)
	return true, nil
}

func (s *fakeTxStore) GetLatestPending(_ context.Context, orderID string) (*domain.Transaction, error) {
	for i := len(s.txs) - 1; i >= 0; i-- {
		if s.txs[i].OrderID == orderID && s.txs[i].Status == domain.TransactionStatusPending {
			cp := *s.txs[i]
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *fakeTxStore) GetByID(_ context.Context, id int64) (*domain.Transaction, error) {
	for _, t := range s.txs {
		if t.ID == id {
			cp := *t
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *fakeTxStore) AttachPayment(_ context.Context, orderID, paymentID string, payload []byte) error {
	for _, t := range s.txs {
		if t.OrderID == orderID {
			t.PaymentID = paymentID
			t.PaymentPayload = payload
		}
	}
	return nil
}

func (s *fakeTxStore) SettlePending(_ context.Context, orderID string) (*domain.Transaction, bool, error) {
	for _, t := range s.txs {
		if t.OrderID == orderID && t.Status == domain.TransactionStatusPending {
			t.Status = domain.TransactionStatusSuccess
			now := time.Now()
			t.SettledAt = &now
			cp := *t
			return &cp, true, nil
		}
	}
	return nil, false, nil
}

func (s *fakeTxStore) FailPending(_ context.Context, orderID, reason string) (bool, error) {
	for _, t := range s.txs {
		if t.OrderID == orderID && t.Status == domain.TransactionStatusPending {
			t.Status = domain.TransactionStatusFailed
			t.FailureReason = reason
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeTxStore) SetGatewayStatus(_ context.Context, orderID, status string) error {
	for _, t := range s.txs {
		if t.OrderID == orderID && t.Status == domain.TransactionStatusPending {
			t.Status = domain.TransactionStatus(status)
		}
	}
	return nil
}

func (s *fakeTxStore) MarkRefunded(_ context.Context, paymentID string) (bool, error) {
	for _, t := range s.txs {
		if t.PaymentID == paymentID && t.Status == domain.TransactionStatusSuccess {
			t.Status = domain.TransactionStatusRefunded
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeTxStore) UnmarkRefunded(_ context.Context, paymentID string) (bool, error) {
	for _, t := range s.txs {
		if t.PaymentID == paymentID && t.Status == domain.TransactionStatusRefunded {
			t.Status = domain.TransactionStatusSuccess
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeTxStore) SetRefundRequested(_ context.Context, id int64) (*domain.Transaction, error) {
	for _, t := range s.txs {
		if t.ID == id {
			t.RefundRequested = true
			cp := *t
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *fakeTxStore) ListByUser(_ context.Context, userID int64, status string, offset, limit int) ([]domain.Transaction, int64, error) {
	var matched []domain.Transaction
	for _, t := range s.txs {
		if t.UserID != userID {
			continue
		}
		if status != "" && string(t.Status) != status {
			continue
		}
		matched = append(matched, *t)
	}
	return pageOf(matched, offset, limit), int64(len(matched)), nil
}

func (s *fakeTxStore) List(_ context.Context, status string, offset, limit int) ([]domain.Transaction, int64, error) {
	var matched []domain.Transaction
	for _, t := range s.txs {
		if status != "" && string(t.Status) != status {
			continue
		}
		matched = append(matched, *t)
	}
	return pageOf(matched, offset, limit), int64(len(matched)), nil
}

func pageOf(txs []domain.Transaction, offset, limit int) []domain.Transaction {
	if offset >= len(txs) {
		return nil
	}
	end := offset + limit
	if end > len(txs) {
		end = len(txs)
	}
	return txs[offset:end]
}

func (s *fakeTxStore) byOrder(orderID string) *domain.Transaction {
	for i := len(s.txs) - 1; i >= 0; i-- {
		if s.txs[i].OrderID == orderID {
			return s.txs[i]
		}
	}
	return nil
}

type fakeBalanceStore struct {
	credited    map[int64]int64 // paise
	creditCalls int
	creditErr   error
}

func (b *fakeBalanceStore) CreditBalance(_ context.Context, userID int64, amountPaise int64) (float64, error) {
	b.creditCalls++
	if b.creditErr != nil {
		return 0, b.creditErr
	}
	if b.credited == nil {
		b.credited = map[int64]int64{}
	}
	b.credited[userID] += amountPaise
	return float64(b.credited[userID]) / 100, nil
}

func newTestPaymentService() (*PaymentService, *fakeGateway, *fakeTxStore, *fakeBalanceStore) {
	gw := &fakeGateway{}
	txs := &fakeTxStore{}
	users := &fakeBalanceStore{}
	return NewPaymentService(gw, testSecret, txs, users), gw, txs, users
}

func signFor(orderID, paymentID string) string {
	return razorpay.ComputeSignature(orderID, paymentID, testSecret)
}

func seedPending(txs *fakeTxStore, userID int64, orderID string, amountPaise int64) *domain.Transaction {
	tx := &domain.Transaction{
		UserID:  userID,
		OrderID: orderID,
		Amount:  amountPaise,
		Status:  domain.TransactionStatusPending,
	}
	txs.Create(context.Background(), tx)
	return tx
}

func TestCreateOrderConvertsToMinorUnits(t *testing.T) {
	svc, gw, txs, _ := newTestPaymentService()

	result, err := svc.CreateOrder(context.Background(), 7, 500.00, "Wallet top-up")
	if err != nil {
		t.Fatalf("create order: %v", err)
	}

	if gw.lastOrderReq.Amount != 50000 {
		t.Errorf("gateway got amount %d, want 50000", gw.lastOrderReq.Amount)
	}
	if gw.lastOrderReq.Currency != razorpay.CurrencyINR {
		t.Errorf("gateway got currency %s, want INR", gw.lastOrderReq.Currency)
	}
	if gw.lastOrderReq.Receipt == "" {
		t.Error("expected a generated receipt")
	}

	if result.OrderID != "order_fake1" || result.Amount != 50000 {
		t.Fatalf("unexpected result: %+v", result)
	}
	if result.Key != "rzp_test_key" {
		t.Errorf("result key = %s, want checkout key id", result.Key)
	}
	if result.TransactionID == 0 {
		t.Error("expected a transaction id on the result")
	}

	tx := txs.byOrder("order_fake1")
	if tx == nil {
		t.Fatal("expected a local transaction record")
	}
	if tx.Status != domain.TransactionStatusPending || tx.Amount != 50000 || tx.UserID != 7 {
		t.Fatalf("unexpected transaction: %+v", tx)
	}
}

func TestCreateOrderRejectsNonPositiveAmount(t *testing.T) {
	svc, gw, _, _ := newTestPaymentService()

	for _, amount := range []float64{0, -5} {
		if _, err := svc.CreateOrder(context.Background(), 7, amount, ""); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("amount %v: got %v, want ErrInvalidInput", amount, err)
		}
	}
	if gw.lastOrderReq.Amount != 0 {
		t.Error("gateway should not be called for invalid amounts")
	}
}

func TestCreateOrderWithoutGateway(t *testing.T) {
	svc := NewPaymentService(nil, "", &fakeTxStore{}, &fakeBalanceStore{})
	if _, err := svc.CreateOrder(context.Background(), 7, 100, ""); !errors.Is(err, ErrServiceUnavailable) {
		t.Fatalf("got %v, want ErrServiceUnavailable", err)
	}
	if _, err := svc.VerifyPayment(context.Background(), 7, "o", "p", "s"); !errors.Is(err, ErrServiceUnavailable) {
		t.Fatalf("got %v, want ErrServiceUnavailable", err)
	}
}

func TestCreateOrderSurvivesLocalWriteFailure(t *testing.T) {
	svc, _, txs, _ := newTestPaymentService()
	txs.createErr = errors.New("db down")

	result, err := svc.CreateOrder(context.Background(), 7, 200.00, "")
	if err != nil {
		t.Fatalf("create order should succeed despite store failure, got %v", err)
	}
	if result.OrderID == "" {
		t.Fatal("expected a gateway order id")
	}
	if result.TransactionID != 0 {
		t.Error("no transaction id should be reported when the local write failed")
	}
}

func TestVerifyPaymentRejectsBadSignature(t *testing.T) {
	svc, gw, txs, users := newTestPaymentService()
	seedPending(txs, 7, "order_1", 50000)

	_, err := svc.VerifyPayment(context.Background(), 7, "order_1", "pay_1", "deadbeef")
	if !errors.Is(err, ErrInvalidSignature) {
		t.Fatalf("got %v, want ErrInvalidSignature", err)
	}

	if gw.fetchCalls != 0 {
		t.Error("gateway should not be consulted for a bad signature")
	}
	if tx := txs.byOrder("order_1"); tx.Status != domain.TransactionStatusPending {
		t.Errorf("transaction status = %s, want pending untouched", tx.Status)
	}
	if users.creditCalls != 0 {
		t.Error("no balance credit on a bad signature")
	}
}

func TestVerifyPaymentSettlesAndCreditsOnce(t *testing.T) {
	svc, gw, txs, users := newTestPaymentService()
	seedPending(txs, 7, "order_1", 50000)
	gw.payment = &razorpay.Payment{
		ID:      "pay_1",
		OrderID: "order_1",
		Amount:  50000,
		Status:  razorpay.PaymentStatusCaptured,
		Raw:     []byte(`{"id":"pay_1","status":"captured"}`),
	}

	result, err := svc.VerifyPayment(context.Background(), 7, "order_1", "pay_1", signFor("order_1", "pay_1"))
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if result.Status != "success" || !result.Credited {
		t.Fatalf("unexpected result: %+v", result)
	}
	if users.credited[7] != 50000 {
		t.Fatalf("credited %d paise, want 50000", users.credited[7])
	}

	tx := txs.byOrder("order_1")
	if tx.Status != domain.TransactionStatusSuccess {
		t.Fatalf("transaction status = %s, want success", tx.Status)
	}
	if tx.PaymentID != "pay_1" || len(tx.PaymentPayload) == 0 {
		t.Errorf("payment audit fields not attached: %+v", tx)
	}
	if tx.SettledAt == nil {
		t.Error("expected settled_at to be set")
	}

	// A repeat of the same callback reaffirms success without crediting again.
	again, err := svc.VerifyPayment(context.Background(), 7, "order_1", "pay_1", signFor("order_1", "pay_1"))
	if err != nil {
		t.Fatalf("repeat verify: %v", err)
	}
	if again.Status != "success" || again.Credited {
		t.Fatalf("unexpected repeat result: %+v", again)
	}
	if users.creditCalls != 1 {
		t.Fatalf("balance credited %d times, want exactly once", users.creditCalls)
	}
}

func TestVerifyPaymentAuthorizedSettles(t *testing.T) {
	svc, gw, txs, users := newTestPaymentService()
	seedPending(txs, 7, "order_1", 12345)
	gw.payment = &razorpay.Payment{ID: "pay_1", OrderID: "order_1", Amount: 12345, Status: razorpay.PaymentStatusAuthorized}

	result, err := svc.VerifyPayment(context.Background(), 7, "order_1", "pay_1", signFor("order_1", "pay_1"))
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if result.Status != "success" || users.credited[7] != 12345 {
		t.Fatalf("authorized payment should settle: %+v credited=%d", result, users.credited[7])
	}
	if txs.byOrder("order_1").Status != domain.TransactionStatusSuccess {
		t.Error("transaction should be marked success")
	}
}

func TestVerifyPaymentFailedAtGateway(t *testing.T) {
	svc, gw, txs, users := newTestPaymentService()
	seedPending(txs, 7, "order_1", 50000)
	gw.payment = &razorpay.Payment{
		ID:               "pay_1",
		OrderID:          "order_1",
		Amount:           50000,
		Status:           razorpay.PaymentStatusFailed,
		ErrorDescription: "card_declined",
	}

	_, err := svc.VerifyPayment(context.Background(), 7, "order_1", "pay_1", signFor("order_1", "pay_1"))
	if !errors.Is(err, ErrPaymentFailed) {
		t.Fatalf("got %v, want ErrPaymentFailed", err)
	}
	if !strings.Contains(err.Error(), "card_declined") {
		t.Errorf("error should carry the gateway reason: %v", err)
	}

	tx := txs.byOrder("order_1")
	if tx.Status != domain.TransactionStatusFailed || tx.FailureReason != "card_declined" {
		t.Fatalf("unexpected transaction: %+v", tx)
	}
	if users.creditCalls != 0 {
		t.Error("no credit for a failed payment")
	}
}

func TestVerifyPaymentIntermediateStatus(t *testing.T) {
	svc, gw, txs, users := newTestPaymentService()
	seedPending(txs, 7, "order_1", 50000)
	gw.payment = &razorpay.Payment{ID: "pay_1", OrderID: "order_1", Amount: 50000, Status: "created"}

	result, err := svc.VerifyPayment(context.Background(), 7, "order_1", "pay_1", signFor("order_1", "pay_1"))
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if result.Status != "created" || result.Credited {
		t.Fatalf("unexpected result: %+v", result)
	}
	if got := txs.byOrder("order_1").Status; got != domain.TransactionStatus("created") {
		t.Errorf("transaction status = %s, want gateway status recorded verbatim", got)
	}
	if users.creditCalls != 0 {
		t.Error("no credit for an intermediate status")
	}
}

func TestVerifyPaymentGatewayUnreachable(t *testing.T) {
	svc, gw, txs, _ := newTestPaymentService()
	seedPending(txs, 7, "order_1", 50000)
	gw.paymentErr = errors.New("connection refused")

	_, err := svc.VerifyPayment(context.Background(), 7, "order_1", "pay_1", signFor("order_1", "pay_1"))
	if !errors.Is(err, ErrUpstream) {
		t.Fatalf("got %v, want ErrUpstream", err)
	}
	// Pending survives so verification can be retried.
	if tx := txs.byOrder("order_1"); tx.Status != domain.TransactionStatusPending {
		t.Errorf("transaction status = %s, want pending", tx.Status)
	}
}

func TestVerifyPaymentRecoversMissingRecord(t *testing.T) {
	svc, gw, txs, users := newTestPaymentService()
	gw.payment = &razorpay.Payment{
		ID:      "pay_1",
		OrderID: "order_1",
		Amount:  20000,
		Status:  razorpay.PaymentStatusCaptured,
		Raw:     []byte(`{"id":"pay_1"}`),
	}

	result, err := svc.VerifyPayment(context.Background(), 7, "order_1", "pay_1", signFor("order_1", "pay_1"))
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if result.Status != "success" || !result.Credited || result.Amount != 20000 {
		t.Fatalf("unexpected result: %+v", result)
	}
	if users.credited[7] != 20000 {
		t.Fatalf("credited %d paise, want gateway amount 20000", users.credited[7])
	}

	tx := txs.byOrder("order_1")
	if tx == nil || tx.Status != domain.TransactionStatusSuccess || tx.PaymentID != "pay_1" {
		t.Fatalf("expected a settled recovery record, got %+v", tx)
	}

	// Repeat recovery must hit the settled-order uniqueness guard.
	again, err := svc.VerifyPayment(context.Background(), 7, "order_1", "pay_1", signFor("order_1", "pay_1"))
	if err != nil {
		t.Fatalf("repeat verify: %v", err)
	}
	if again.Credited || users.creditCalls != 1 {
		t.Fatalf("repeat recovery credited again: %+v calls=%d", again, users.creditCalls)
	}
}

func TestVerifyPaymentRecoveryUnknownPayment(t *testing.T) {
	svc, gw, txs, users := newTestPaymentService()
	gw.paymentErr = &razorpay.APIError{StatusCode: 400, Code: "BAD_REQUEST_ERROR", Description: "payment does not exist"}

	_, err := svc.VerifyPayment(context.Background(), 7, "order_x", "pay_x", signFor("order_x", "pay_x"))
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
	if len(txs.txs) != 0 || users.creditCalls != 0 {
		t.Error("nothing should be written for an unknown payment")
	}
}

func TestRefundPayment(t *testing.T) {
	svc, gw, txs, _ := newTestPaymentService()
	txs.Create(context.Background(), &domain.Transaction{
		UserID: 7, OrderID: "order_1", PaymentID: "pay_1",
		Amount: 50000, Status: domain.TransactionStatusSuccess,
	})

	refund, err := svc.RefundPayment(context.Background(), "pay_1")
	if err != nil {
		t.Fatalf("refund: %v", err)
	}
	if refund.PaymentID != "pay_1" {
		t.Fatalf("unexpected refund: %+v", refund)
	}
	if gw.refundCalls != 1 {
		t.Fatalf("gateway refund called %d times, want 1", gw.refundCalls)
	}
	if txs.byOrder("order_1").Status != domain.TransactionStatusRefunded {
		t.Error("transaction should be marked refunded")
	}
}

func TestRefundPaymentRequiresSettledTransaction(t *testing.T) {
	svc, gw, txs, _ := newTestPaymentService()
	txs.Create(context.Background(), &domain.Transaction{
		UserID: 7, OrderID: "order_1", PaymentID: "pay_1",
		Amount: 50000, Status: domain.TransactionStatusPending,
	})

	if _, err := svc.RefundPayment(context.Background(), "pay_1"); !errors.Is(err, ErrConflict) {
		t.Fatalf("got %v, want ErrConflict", err)
	}
	if gw.refundCalls != 0 {
		t.Error("gateway should not be called without a settled transaction")
	}

	// A second refund of an already refunded payment conflicts too.
	txs.txs[0].Status = domain.TransactionStatusRefunded
	if _, err := svc.RefundPayment(context.Background(), "pay_1"); !errors.Is(err, ErrConflict) {
		t.Fatalf("got %v, want ErrConflict for repeat refund", err)
	}
}

func TestRefundPaymentRevertsOnGatewayError(t *testing.T) {
	svc, gw, txs, _ := newTestPaymentService()
	txs.Create(context.Background(), &domain.Transaction{
		UserID: 7, OrderID: "order_1", PaymentID: "pay_1",
		Amount: 50000, Status: domain.TransactionStatusSuccess,
	})
	gw.refundErr = &razorpay.APIError{StatusCode: 400, Description: "fully refunded already"}

	if _, err := svc.RefundPayment(context.Background(), "pay_1"); !errors.Is(err, ErrUpstream) {
		t.Fatalf("got %v, want ErrUpstream", err)
	}
	// The local transition is rolled back so a later attempt can retry.
	if got := txs.byOrder("order_1").Status; got != domain.TransactionStatusSuccess {
		t.Fatalf("transaction status = %s, want success restored", got)
	}
}

func TestRequestRefund(t *testing.T) {
	svc, _, txs, _ := newTestPaymentService()
	tx := &domain.Transaction{UserID: 7, OrderID: "order_1", Amount: 50000, Status: domain.TransactionStatusSuccess}
	txs.Create(context.Background(), tx)

	got, err := svc.RequestRefund(context.Background(), tx.ID)
	if err != nil {
		t.Fatalf("request refund: %v", err)
	}
	if !got.RefundRequested {
		t.Fatal("expected refund_requested flag to be set")
	}
	// Advisory only: status and balance are untouched.
	if got.Status != domain.TransactionStatusSuccess {
		t.Errorf("status = %s, want success", got.Status)
	}

	if _, err := svc.RequestRefund(context.Background(), 999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound for unknown transaction", err)
	}
}

func TestListUserTransactionsPagination(t *testing.T) {
	svc, _, txs, _ := newTestPaymentService()
	for i := 0; i < 25; i++ {
		txs.Create(context.Background(), &domain.Transaction{
			UserID: 7, OrderID: "order_n", Amount: 100, Status: domain.TransactionStatusSuccess,
		})
	}
	txs.Create(context.Background(), &domain.Transaction{
		UserID: 8, OrderID: "order_other", Amount: 100, Status: domain.TransactionStatusSuccess,
	})

	page, pages, err := svc.ListUserTransactions(context.Background(), 7, 2, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(page) != 10 {
		t.Errorf("page size = %d, want 10", len(page))
	}
	if pages != 3 {
		t.Errorf("total pages = %d, want 3", pages)
	}

	// Defaults: page 1, limit 10.
	page, pages, err = svc.ListUserTransactions(context.Background(), 7, 0, 0)
	if err != nil {
		t.Fatalf("list with defaults: %v", err)
	}
	if len(page) != 10 || pages != 3 {
		t.Errorf("defaults gave len=%d pages=%d, want 10 and 3", len(page), pages)
	}
}

func TestListAllTransactionsStatusFilter(t *testing.T) {
	svc, _, txs, _ := newTestPaymentService()
	txs.Create(context.Background(), &domain.Transaction{UserID: 7, OrderID: "o1", Amount: 1, Status: domain.TransactionStatusSuccess})
	txs.Create(context.Background(), &domain.Transaction{UserID: 7, OrderID: "o2", Amount: 1, Status: domain.TransactionStatusFailed})
	txs.Create(context.Background(), &domain.Transaction{UserID: 8, OrderID: "o3", Amount: 1, Status: domain.TransactionStatusSuccess})

	page, pages, err := svc.ListAllTransactions(context.Background(), "success", 1, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(page) != 2 || pages != 1 {
		t.Fatalf("got len=%d pages=%d, want 2 and 1", len(page), pages)
	}
	for _, tx := range page {
		if tx.Status != domain.TransactionStatusSuccess {
			t.Errorf("filter leaked status %s", tx.Status)
		}
	}
}

func TestPaginationHelpers(t *testing.T) {
	cases := []struct {
		page, limit  int
		offset, take int
	}{
		{1, 10, 0, 10},
		{2, 10, 10, 10},
		{3, 25, 50, 25},
		{0, 0, 0, 10},
		{-1, -5, 0, 10},
	}
	for _, tc := range cases {
		offset, take := paginate(tc.page, tc.limit)
		if offset != tc.offset || take != tc.take {
			t.Errorf("paginate(%d, %d) = (%d, %d), want (%d, %d)",
				tc.page, tc.limit, offset, take, tc.offset, tc.take)
		}
	}

	pageCases := []struct {
		total int64
		limit int
		want  int
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{25, 10, 3},
	}
	for _, tc := range pageCases {
		if got := totalPages(tc.total, tc.limit); got != tc.want {
			t.Errorf("totalPages(%d, %d) = %d, want %d", tc.total, tc.limit, got, tc.want)
		}
	}
}

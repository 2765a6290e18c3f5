package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"travel_backend/internal/service"

	"github.com/gin-gonic/gin"
)

type CreateOrderRequest struct {
	Amount  float64 `json:"amount" binding:"required"`
	Purpose string  `json:"purpose"`
}

// CreateOrder creates a gateway order for the caller.
func (h *Handler) CreateOrder(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Amount is required")
		return
	}

	result, err := h.PaymentService.CreateOrder(c.Request.Context(), userID, req.Amount, req.Purpose)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	ordersCreated.Inc()
	respondOK(c, http.StatusOK, "Order placed successfully", result)
}

type VerifyPaymentRequest struct {
	PaymentID string `json:"razorpay_payment_id" binding:"required"`
	OrderID   string `json:"razorpay_order_id" binding:"required"`
	Signature string `json:"razorpay_signature" binding:"required"`
}

// VerifyPayment authenticates a completed checkout and settles the balance
// when the gateway confirms the payment.
func (h *Handler) VerifyPayment(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Payment ID, order ID and signature are required")
		return
	}

	result, err := h.PaymentService.VerifyPayment(c.Request.Context(), userID, req.OrderID, req.PaymentID, req.Signature)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPaymentFailed):
			verifications.WithLabelValues("failed").Inc()
		case errors.Is(err, service.ErrInvalidSignature):
			verifications.WithLabelValues("rejected").Inc()
		default:
			verifications.WithLabelValues("error").Inc()
		}
		respondServiceError(c, err)
		return
	}

	if result.Credited {
		verifications.WithLabelValues("settled").Inc()
	} else {
		verifications.WithLabelValues(result.Status).Inc()
	}

	respondOK(c, http.StatusOK, "Payment verified successfully", result)
}

type RefundRequest struct {
	PaymentID string `json:"paymentId" binding:"required"`
}

// Refund issues a gateway refund for a settled payment. Admin scope.
func (h *Handler) Refund(c *gin.Context) {
	var req RefundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Payment ID is required")
		return
	}

	refund, err := h.PaymentService.RefundPayment(c.Request.Context(), req.PaymentID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	refunds.Inc()
	respondOK(c, http.StatusOK, "The amount will be refunded in 5-7 working days", refund)
}

// RequestRefund flags a transaction for manual refund handling.
func (h *Handler) RequestRefund(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid transaction id")
		return
	}

	tx, err := h.PaymentService.RequestRefund(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, http.StatusOK, "Refund request sent successfully", tx)
}

// MyTransactions lists the caller's transactions, paginated.
func (h *Handler) MyTransactions(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	page, limit := pageParams(c)
	txs, totalPages, err := h.PaymentService.ListUserTransactions(c.Request.Context(), userID, page, limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondPage(c, "Transactions fetched successfully", txs, totalPages)
}

// AllTransactions lists every transaction with an optional status filter.
// Admin scope.
func (h *Handler) AllTransactions(c *gin.Context) {
	page, limit := pageParams(c)
	txs, totalPages, err := h.PaymentService.ListAllTransactions(c.Request.Context(), c.Query("status"), page, limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondPage(c, "Transactions fetched successfully", txs, totalPages)
}

// UserTransactions lists one user's transactions. Admin scope.
func (h *Handler) UserTransactions(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid user id")
		return
	}

	page, limit := pageParams(c)
	txs, totalPages, err := h.PaymentService.ListUserTransactionsForAdmin(c.Request.Context(), userID, c.Query("status"), page, limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondPage(c, "Transactions fetched successfully", txs, totalPages)
}

func pageParams(c *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.Query("page"))
	limit, _ = strconv.Atoi(c.Query("limit"))
	return page, limit
}

package service

import "errors"

// Error taxonomy shared by handlers. Handlers map these onto HTTP status
// codes and the standard response envelope.
var (
	// ErrInvalidInput: missing or malformed request fields (400).
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidSignature: payment signature did not verify (400). Nothing
	// is mutated when this is returned.
	ErrInvalidSignature = errors.New("invalid payment signature")
	// ErrNotFound: no matching record (404).
	ErrNotFound = errors.New("not found")
	// ErrUpstream: the gateway was unreachable or returned an unexpected
	// error (500). Safe to retry; pending transactions stay pending.
	ErrUpstream = errors.New("payment gateway error")
	// ErrServiceUnavailable: gateway credentials not configured (500).
	// Needs operator action, not a retry.
	ErrServiceUnavailable = errors.New("payment service unavailable")
	// ErrConflict: the transaction is not in a state that allows the
	// requested transition (409). Guards double settlement and refunds.
	ErrConflict = errors.New("conflicting transaction state")
	// ErrPaymentFailed: the gateway reports the payment as failed (400).
	ErrPaymentFailed = errors.New("payment failed")
)

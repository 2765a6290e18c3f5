package razorpay

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// Razorpay checkout signature
// Based on: https://razorpay.com/docs/payments/payment-gateway/web-integration/standard/build-integration/

// ComputeSignature returns the hex-encoded HMAC-SHA256 of "orderID|paymentID"
// keyed with the API secret. This matches the signature the gateway sends to
// the client on payment completion.
func ComputeSignature(orderID, paymentID, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature checks a client-supplied signature against the recomputed
// one. Comparison is constant-time. This is the sole authenticity gate for
// payment verification and must run before any state is mutated.
func VerifySignature(orderID, paymentID, signature, secret string) bool {
	expected := ComputeSignature(orderID, paymentID, secret)
	return hmac.Equal([]byte(expected), []byte(signature))
}

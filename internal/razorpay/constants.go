package razorpay

import "time"

// Razorpay REST API base URL
const APIBase = "https://api.razorpay.com/v1"

// Payment statuses reported by the gateway. The gateway is the authoritative
// source for these; anything not listed here is stored verbatim.
const (
	PaymentStatusCreated    = "created"
	PaymentStatusAuthorized = "authorized"
	PaymentStatusCaptured   = "captured"
	PaymentStatusFailed     = "failed"
	PaymentStatusRefunded   = "refunded"
)

const (
	CurrencyINR = "INR"

	// HTTP timeout for gateway calls. On timeout the local transaction stays
	// pending and verification can be retried.
	RequestTimeout = 30 * time.Second
)

// PaiseToRupees converts a minor-unit amount to major units.
func PaiseToRupees(paise int64) float64 {
	return float64(paise) / 100
}

// RupeesToPaise converts a major-unit amount to the gateway's integer minor
// units, rounding to the nearest paisa.
func RupeesToPaise(rupees float64) int64 {
	if rupees >= 0 {
		return int64(rupees*100 + 0.5)
	}
	return int64(rupees*100 - 0.5)
}

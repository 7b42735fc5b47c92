package services

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// VerifySignature checks a Razorpay payment signature. The expected value
// is HMAC-SHA256 over "orderID|paymentID" keyed with the API secret,
// hex-encoded. Comparison is constant-time. Fails closed: empty inputs or
// any mismatch yield false, never an error.
func VerifySignature(orderID, paymentID, signature, secret string) bool {
	if orderID == "" || paymentID == "" || signature == "" || secret == "" {
		return false
	}

	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(h.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(signature))
}

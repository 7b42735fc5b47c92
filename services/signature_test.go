package services

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

func signPayload(orderID, paymentID, secret string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(h.Sum(nil))
}

func TestVerifySignature(t *testing.T) {
	secret := "test_secret"
	valid := signPayload("order_abc", "pay_xyz", secret)

	tests := []struct {
		name      string
		orderID   string
		paymentID string
		signature string
		secret    string
		want      bool
	}{
		{"valid signature", "order_abc", "pay_xyz", valid, secret, true},
		{"tampered signature", "order_abc", "pay_xyz", valid[:len(valid)-1] + "0", secret, false},
		{"wrong order id", "order_other", "pay_xyz", valid, secret, false},
		{"wrong payment id", "order_abc", "pay_other", valid, secret, false},
		{"wrong secret", "order_abc", "pay_xyz", valid, "other_secret", false},
		{"empty order id", "", "pay_xyz", valid, secret, false},
		{"empty payment id", "order_abc", "", valid, secret, false},
		{"empty signature", "order_abc", "pay_xyz", "", secret, false},
		{"empty secret", "order_abc", "pay_xyz", valid, "", false},
		{"garbage signature", "order_abc", "pay_xyz", "not-hex-at-all", secret, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := VerifySignature(tt.orderID, tt.paymentID, tt.signature, tt.secret)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestVerifySignatureIsDeterministic(t *testing.T) {
	secret := "test_secret"
	sig := signPayload("ord_1", "pay_1", secret)
	for i := 0; i < 3; i++ {
		assert.True(t, VerifySignature("ord_1", "pay_1", sig, secret))
	}
}

package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVerifyHMACHex(t *testing.T) {
	secret := "rzp_test_secret"
	// Razorpay-style checkout payload: orderId|paymentId
	message := []byte("order_IluGWxBm9U8zJ8|pay_29QQoUBi66xm2f")

	signature := SignHMACHex(message, secret)

	tests := []struct {
		name      string
		message   []byte
		signature string
		secret    string
		want      bool
	}{
		{
			name:      "valid signature",
			message:   message,
			signature: signature,
			secret:    secret,
			want:      true,
		},
		{
			name:      "tampered message",
			message:   []byte("order_IluGWxBm9U8zJ8|pay_other"),
			signature: signature,
			secret:    secret,
			want:      false,
		},
		{
			name:      "wrong secret",
			message:   message,
			signature: signature,
			secret:    "another_secret",
			want:      false,
		},
		{
			name:      "empty signature",
			message:   message,
			signature: "",
			secret:    secret,
			want:      false,
		},
		{
			name:      "garbage signature",
			message:   message,
			signature: "deadbeef",
			secret:    secret,
			want:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, VerifyHMACHex(tt.message, tt.signature, tt.secret))
		})
	}
}

func TestSignHMACHexIsDeterministic(t *testing.T) {
	message := []byte(`{"event":"payment.captured"}`)

	first := SignHMACHex(message, "secret")
	second := SignHMACHex(message, "secret")

	assert.Equal(t, first, second)
	assert.Len(t, first, 64)
}

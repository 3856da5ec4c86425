package services

import (
	"context"
	"testing"
	"time"

	"github.com/nourishnet/nourishnet-api/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const visaTest = "4111111111111111"

func TestLuhnValid(t *testing.T) {
	assert.True(t, luhnValid(visaTest))
	assert.True(t, luhnValid("5555555555554444"))
	assert.False(t, luhnValid("4111111111111112"))
	assert.False(t, luhnValid("41111111111a1111"))
	assert.False(t, luhnValid(""))
}

func TestSimulatedGatewayCharge(t *testing.T) {
	g := NewSimulatedGateway(0)
	g.now = func() time.Time { return time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC) }

	valid := func() *CardDetails {
		return &CardDetails{CardNumber: visaTest, CVV: "123", ExpiryMonth: 12, ExpiryYear: 2027}
	}

	tests := []struct {
		name   string
		req    PaymentRequest
		detail string
	}{
		{"zero amount", PaymentRequest{Amount: 0, PaymentMethod: "card"}, "Invalid amount"},
		{"no method", PaymentRequest{Amount: 10}, "Payment method required"},
		{"bad luhn", PaymentRequest{Amount: 10, PaymentMethod: "card", Card: &CardDetails{CardNumber: "4111111111111112", CVV: "123", ExpiryMonth: 12, ExpiryYear: 2027}}, "Invalid card number"},
		{"short cvv", PaymentRequest{Amount: 10, PaymentMethod: "card", Card: &CardDetails{CardNumber: visaTest, CVV: "12", ExpiryMonth: 12, ExpiryYear: 2027}}, "Invalid CVV"},
		{"expired year", PaymentRequest{Amount: 10, PaymentMethod: "card", Card: &CardDetails{CardNumber: visaTest, CVV: "123", ExpiryMonth: 12, ExpiryYear: 2025}}, "Card expired"},
		{"expired month", PaymentRequest{Amount: 10, PaymentMethod: "card", Card: &CardDetails{CardNumber: visaTest, CVV: "123", ExpiryMonth: 5, ExpiryYear: 2026}}, "Card expired"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := g.Charge(context.Background(), tt.req)
			appErr, ok := utils.AsAppError(err)
			require.True(t, ok)
			assert.Equal(t, utils.KindPayment, appErr.Kind)
			assert.Equal(t, tt.detail, appErr.Detail)
		})
	}

	id, err := g.Charge(context.Background(), PaymentRequest{Amount: 10, PaymentMethod: "card", Card: valid()})
	require.NoError(t, err)
	assert.Regexp(t, `^TXN-\d+-[0-9a-z]{9}$`, id)

	_, err = g.Charge(context.Background(), PaymentRequest{Amount: 10, PaymentMethod: "paypal"})
	assert.NoError(t, err)
}

func TestSimulatedGatewayHonoursContext(t *testing.T) {
	g := NewSimulatedGateway(time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := g.Charge(ctx, PaymentRequest{Amount: 10, PaymentMethod: "paypal"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLast4(t *testing.T) {
	assert.Equal(t, "****", last4(nil))
	assert.Equal(t, "1111", last4(&CardDetails{CardNumber: visaTest}))
	assert.Equal(t, "9999", last4(&CardDetails{CardNumber: visaTest, Last4: "9999"}))
}

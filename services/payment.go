package services

import (
	"context"
	"strings"
	"time"

	"github.com/nourishnet/nourishnet-api/utils"
)

type CardDetails struct {
	CardNumber     string `json:"cardNumber" validate:"omitempty,numeric,min=13,max=19"`
	CardholderName string `json:"cardholderName"`
	ExpiryMonth    int    `json:"expiryMonth" validate:"omitempty,gte=1,lte=12"`
	ExpiryYear     int    `json:"expiryYear"`
	CVV            string `json:"cvv" validate:"omitempty,numeric,min=3,max=4"`
	Last4          string `json:"last4"`
}

type PaymentRequest struct {
	Amount        float64
	PaymentMethod string
	Card          *CardDetails
}

// PaymentGateway charges a donor. Failures the donor can fix come back as payment AppErrors.
type PaymentGateway interface {
	Charge(ctx context.Context, req PaymentRequest) (string, error)
}

// SimulatedGateway validates the card and approves after Delay.
type SimulatedGateway struct {
	Delay time.Duration
	now   func() time.Time
}

func NewSimulatedGateway(delay time.Duration) *SimulatedGateway {
	return &SimulatedGateway{Delay: delay, now: time.Now}
}

func (g *SimulatedGateway) Charge(ctx context.Context, req PaymentRequest) (string, error) {
	if g.Delay > 0 {
		timer := time.NewTimer(g.Delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-timer.C:
		}
	}

	if req.Amount <= 0 {
		return "", utils.NewPaymentError("Invalid amount")
	}
	if req.PaymentMethod == "" {
		return "", utils.NewPaymentError("Payment method required")
	}

	if req.PaymentMethod == "card" && req.Card != nil {
		c := req.Card
		if len(c.CardNumber) < 13 || len(c.CardNumber) > 19 || !luhnValid(c.CardNumber) {
			return "", utils.NewPaymentError("Invalid card number")
		}
		if len(c.CVV) < 3 || len(c.CVV) > 4 {
			return "", utils.NewPaymentError("Invalid CVV")
		}
		now := g.now()
		if c.ExpiryYear < now.Year() || (c.ExpiryYear == now.Year() && c.ExpiryMonth < int(now.Month())) {
			return "", utils.NewPaymentError("Card expired")
		}
	}

	return utils.NewTransactionID(g.now()), nil
}

func luhnValid(number string) bool {
	number = strings.TrimSpace(number)
	if number == "" {
		return false
	}
	sum := 0
	double := false
	for i := len(number) - 1; i >= 0; i-- {
		ch := number[i]
		if ch < '0' || ch > '9' {
			return false
		}
		d := int(ch - '0')
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return sum%10 == 0
}

// last4 masks everything but the final four digits the client supplied.
func last4(c *CardDetails) string {
	if c == nil {
		return "****"
	}
	if c.Last4 != "" {
		return c.Last4
	}
	if len(c.CardNumber) >= 4 {
		return c.CardNumber[len(c.CardNumber)-4:]
	}
	return "****"
}

package payments

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

var ErrNotConfigured = errors.New("payment provider is not configured")

// IntentProvider creates a card payment intent for amount (in major currency
// units) and returns the client secret the browser confirms it with.
type IntentProvider interface {
	CreateIntent(ctx context.Context, amount float64, currency string) (string, error)
}

type StripeProvider struct {
	sc *client.API
}

func NewStripeProvider(secretKey string) *StripeProvider {
	if secretKey == "" {
		return &StripeProvider{}
	}
	return &StripeProvider{sc: client.New(secretKey, nil)}
}

// MinorUnits converts a price into the integer amount Stripe expects.
func MinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

func (p *StripeProvider) CreateIntent(ctx context.Context, amount float64, currency string) (string, error) {
	if p.sc == nil {
		return "", ErrNotConfigured
	}
	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(MinorUnits(amount)),
		Currency:           stripe.String(currency),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	params.Context = ctx

	pi, err := p.sc.PaymentIntents.New(params)
	if err != nil {
		return "", fmt.Errorf("create payment intent: %w", err)
	}
	return pi.ClientSecret, nil
}

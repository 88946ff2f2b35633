// Package stripe creates payment intents through the Stripe API.
package stripe

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/benedict-erwin/manufacture-online/config"
	"github.com/benedict-erwin/manufacture-online/pkg/logger"
	"github.com/stripe/stripe-go/v82"
)

const defaultTimeout = 10 * time.Second

// ErrNoSecretKey is returned by New when no secret key is configured
var ErrNoSecretKey = errors.New("stripe: secret key not configured")

// Client creates card payment intents
type Client struct {
	sc      *stripe.Client
	timeout time.Duration
}

// New builds a client from cfg
func New(cfg config.StripeConfig) (*Client, error) {
	if cfg.SecretKey == "" {
		return nil, ErrNoSecretKey
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{sc: stripe.NewClient(cfg.SecretKey), timeout: timeout}, nil
}

// CreatePaymentIntent creates a card-only intent for amount minor units of
// currency and returns its client secret
func (c *Client) CreatePaymentIntent(ctx context.Context, amount int64, currency string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	params := &stripe.PaymentIntentCreateParams{
		Amount:             stripe.Int64(amount),
		Currency:           stripe.String(currency),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}

	intent, err := c.sc.V1PaymentIntents.Create(ctx, params)
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) {
			logger.WithScope("stripe").Warn().
				Str("code", string(stripeErr.Code)).
				Int("status", stripeErr.HTTPStatusCode).
				Msg("Payment intent rejected")
		}
		return "", fmt.Errorf("stripe: create payment intent: %w", err)
	}
	return intent.ClientSecret, nil
}

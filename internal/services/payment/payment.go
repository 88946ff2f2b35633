package payment

import (
	"context"
	"errors"
	"fmt"
	"math"
)

// ErrGateway marks failures reported by the payment provider
var ErrGateway = errors.New("payment gateway error")

// Gateway creates payment intents with a hosted provider
type Gateway interface {
	CreatePaymentIntent(ctx context.Context, amount int64, currency string) (string, error)
}

// Service converts storefront prices into provider payment intents
type Service struct {
	gateway  Gateway
	currency string
}

// NewService returns a Service charging in currency
func NewService(gateway Gateway, currency string) *Service {
	return &Service{gateway: gateway, currency: currency}
}

// ToMinorUnits converts a decimal price to the smallest currency unit,
// rounding half away from zero so 19.99 becomes 1999
func ToMinorUnits(totalPrice float64) int64 {
	return int64(math.Round(totalPrice * 100))
}

// CreateIntent creates a card intent for totalPrice and returns its client secret
func (s *Service) CreateIntent(ctx context.Context, totalPrice float64) (string, error) {
	if s.gateway == nil {
		return "", fmt.Errorf("%w: not configured", ErrGateway)
	}
	secret, err := s.gateway.CreatePaymentIntent(ctx, ToMinorUnits(totalPrice), s.currency)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrGateway, err)
	}
	return secret, nil
}

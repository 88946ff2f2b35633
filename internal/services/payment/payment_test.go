package payment

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGateway struct {
	amount   int64
	currency string
	err      error
}

func (f *fakeGateway) CreatePaymentIntent(_ context.Context, amount int64, currency string) (string, error) {
	f.amount = amount
	f.currency = currency
	if f.err != nil {
		return "", f.err
	}
	return "pi_123_secret_456", nil
}

func TestToMinorUnits(t *testing.T) {
	tests := []struct {
		price float64
		want  int64
	}{
		{19.99, 1999},
		{0.1 + 0.2, 30},
		{10, 1000},
		{0, 0},
		{1.005, 100},
		{4.35, 435},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ToMinorUnits(tt.price), "price %v", tt.price)
	}
}

func TestCreateIntent(t *testing.T) {
	gw := &fakeGateway{}
	svc := NewService(gw, "usd")

	secret, err := svc.CreateIntent(t.Context(), 19.99)
	require.NoError(t, err)
	assert.Equal(t, "pi_123_secret_456", secret)
	assert.Equal(t, int64(1999), gw.amount)
	assert.Equal(t, "usd", gw.currency)
}

func TestCreateIntentGatewayFailure(t *testing.T) {
	cause := errors.New("card_declined")
	svc := NewService(&fakeGateway{err: cause}, "usd")

	_, err := svc.CreateIntent(t.Context(), 5)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrGateway)
	assert.ErrorIs(t, err, cause)

	_, err = NewService(nil, "usd").CreateIntent(t.Context(), 5)
	assert.ErrorIs(t, err, ErrGateway)
}

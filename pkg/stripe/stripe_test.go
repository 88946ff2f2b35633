package stripe

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/benedict-erwin/manufacture-online/config"
	"github.com/benedict-erwin/manufacture-online/internal/services/payment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v82"
)

func TestNew(t *testing.T) {
	_, err := New(config.StripeConfig{Currency: "usd"})
	require.ErrorIs(t, err, ErrNoSecretKey)

	c, err := New(config.StripeConfig{SecretKey: "sk_test_123", Currency: "usd"})
	require.NoError(t, err)
	assert.Equal(t, defaultTimeout, c.timeout)

	c, err = New(config.StripeConfig{SecretKey: "sk_test_123", Timeout: 3 * time.Second})
	require.NoError(t, err)
	assert.Equal(t, 3*time.Second, c.timeout)
}

// newTestClient points a Client at handler instead of api.stripe.com
func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	backends := stripe.NewBackendsWithConfig(&stripe.BackendConfig{
		URL:               stripe.String(srv.URL),
		HTTPClient:        srv.Client(),
		MaxNetworkRetries: stripe.Int64(0),
		LeveledLogger:     &stripe.LeveledLogger{Level: stripe.LevelNull},
	})
	return &Client{
		sc:      stripe.NewClient("sk_test_123", stripe.WithBackends(backends)),
		timeout: 5 * time.Second,
	}
}

func TestCreatePaymentIntent(t *testing.T) {
	var (
		path string
		form map[string][]string
		key  string
	)
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		key = r.Header.Get("Authorization")
		assert.NoError(t, r.ParseForm())
		form = r.PostForm
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"id":"pi_123","object":"payment_intent","amount":1999,"currency":"usd","client_secret":"pi_123_secret_456"}`)
	})

	secret, err := payment.NewService(c, "usd").CreateIntent(t.Context(), 19.99)
	require.NoError(t, err)
	assert.Equal(t, "pi_123_secret_456", secret)

	assert.Equal(t, "/v1/payment_intents", path)
	assert.Equal(t, "Bearer sk_test_123", key)
	assert.Equal(t, []string{"1999"}, form["amount"])
	assert.Equal(t, []string{"usd"}, form["currency"])
	assert.Equal(t, []string{"card"}, form["payment_method_types[0]"])
	assert.NotContains(t, form, "payment_method_types[1]")
}

func TestCreatePaymentIntentDeclined(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusPaymentRequired)
		_, _ = io.WriteString(w, `{"error":{"type":"card_error","code":"card_declined","message":"Your card was declined."}}`)
	})

	secret, err := c.CreatePaymentIntent(t.Context(), 1999, "usd")
	require.Error(t, err)
	assert.Empty(t, secret)

	var stripeErr *stripe.Error
	require.True(t, errors.As(err, &stripeErr))
	assert.Equal(t, stripe.ErrorCodeCardDeclined, stripeErr.Code)
	assert.Equal(t, http.StatusPaymentRequired, stripeErr.HTTPStatusCode)
}

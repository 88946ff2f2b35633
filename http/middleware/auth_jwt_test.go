package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/benedict-erwin/manufacture-online/internal/constants"
	"github.com/benedict-erwin/manufacture-online/pkg/auth"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubVerifier struct {
	got   string
	claim auth.IdentityClaim
	err   error
}

func (s *stubVerifier) Verify(token string) (auth.IdentityClaim, error) {
	s.got = token
	return s.claim, s.err
}

func run(t *testing.T, v TokenVerifier, header string) (*httptest.ResponseRecorder, auth.IdentityClaim, bool) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/verify", nil)
	if header != "" {
		req.Header.Set(echo.HeaderAuthorization, header)
	}
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)

	var seen auth.IdentityClaim
	called := false
	err := JWTAuthMiddleware(v)(func(c echo.Context) error {
		called = true
		seen = GetClaim(c)
		return c.NoContent(http.StatusOK)
	})(c)
	require.NoError(t, err)
	return rec, seen, called
}

func TestJWTAuthMiddleware_MissingHeader(t *testing.T) {
	v := &stubVerifier{}
	rec, _, called := run(t, v, "")
	assert.False(t, called)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"message":"unauthorized access"}`, rec.Body.String())
}

func TestJWTAuthMiddleware_VerifyFailure(t *testing.T) {
	v := &stubVerifier{err: auth.ErrTokenExpired}
	rec, _, called := run(t, v, "Bearer abc")
	assert.False(t, called)
	assert.Equal(t, "abc", v.got)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.JSONEq(t, `{"message":"forbidden access"}`, rec.Body.String())
}

func TestJWTAuthMiddleware_AttachesClaim(t *testing.T) {
	v := &stubVerifier{claim: auth.IdentityClaim{"email": "u@x.com"}}
	rec, seen, called := run(t, v, "Bearer abc")
	assert.True(t, called)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, auth.IdentityClaim{"email": "u@x.com"}, seen)
}

func TestJWTAuthMiddleware_ClaimOnBothContexts(t *testing.T) {
	v := &stubVerifier{claim: auth.IdentityClaim{"email": "u@x.com"}}
	req := httptest.NewRequest(http.MethodGet, "/verify", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer abc")
	c := echo.New().NewContext(req, httptest.NewRecorder())

	err := JWTAuthMiddleware(v)(func(c echo.Context) error {
		assert.Equal(t, v.claim, c.Get(constants.ClaimKey))
		fromReq, ok := auth.ClaimFromContext(c.Request().Context())
		assert.True(t, ok)
		assert.Equal(t, v.claim, fromReq)
		return nil
	})(c)
	require.NoError(t, err)
}

func TestGetClaimFromRequestContext(t *testing.T) {
	claim := auth.IdentityClaim{"email": "u@x.com"}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(auth.WithClaim(req.Context(), claim))
	c := echo.New().NewContext(req, httptest.NewRecorder())
	assert.Equal(t, claim, GetClaim(c))
}

func TestBearerToken(t *testing.T) {
	tests := map[string]string{
		"Bearer abc":     "abc",
		"Token abc":      "abc",
		"Bearer":         "",
		"abc":            "",
		"Bearer  abc":    "",
		"Bearer abc def": "abc",
	}
	for header, want := range tests {
		assert.Equal(t, want, bearerToken(header), header)
	}
}

func TestGetClaimWithoutAuth(t *testing.T) {
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	assert.Empty(t, GetClaim(c))
}

func TestLoggerSetsRequestID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Correlation-ID", "corr-1")
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)

	err := Logger(func(c echo.Context) error {
		return errors.New("boom")
	})(c)
	assert.EqualError(t, err, "boom")
	assert.Equal(t, "corr-1", rec.Header().Get("X-Request-ID"))
}

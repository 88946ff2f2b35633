package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenTTL is how long an issued access token stays valid
const DefaultTokenTTL = 24 * time.Hour

var signingMethod = jwt.SigningMethodHS256

// TokenService issues and verifies HS256 access tokens. It holds no state
// besides its configuration; there is no revocation list.
type TokenService struct {
	secret    []byte
	ttl       time.Duration
	allowlist map[string]struct{}
	now       func() time.Time
}

// Option customizes a TokenService
type Option func(*TokenService)

// WithClock overrides the time source used for iat/exp and expiry checks
func WithClock(now func() time.Time) Option {
	return func(s *TokenService) {
		s.now = now
	}
}

// WithClaimAllowlist restricts which posted fields end up in a token.
// Without it every posted field is signed.
func WithClaimAllowlist(fields ...string) Option {
	return func(s *TokenService) {
		if len(fields) == 0 {
			return
		}
		s.allowlist = make(map[string]struct{}, len(fields))
		for _, f := range fields {
			s.allowlist[f] = struct{}{}
		}
	}
}

// NewTokenService builds a token service; ttl <= 0 falls back to DefaultTokenTTL
func NewTokenService(secret string, ttl time.Duration, opts ...Option) (*TokenService, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}

	s := &TokenService{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Restricted reports whether a claim allow-list is active
func (s *TokenService) Restricted() bool {
	return s.allowlist != nil
}

// Issue signs claim with an expiry of ttl from now. The claim shape is not
// validated; only reserved timing fields and non-allow-listed fields are dropped.
func (s *TokenService) Issue(claim map[string]any) (string, error) {
	now := s.now()

	payload := make(jwt.MapClaims, len(claim)+2)
	for k, v := range claim {
		if s.allowlist != nil {
			if _, ok := s.allowlist[k]; !ok {
				continue
			}
		}
		payload[k] = v
	}
	for _, k := range reservedClaims {
		delete(payload, k)
	}
	payload[ClaimIssuedAt] = now.Unix()
	payload[ClaimExpiresAt] = now.Add(s.ttl).Unix()

	signed, err := jwt.NewWithClaims(signingMethod, payload).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("auth: sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature and expiry and returns the decoded claim. Every
// failure satisfies errors.Is(err, ErrInvalidToken).
func (s *TokenService) Verify(tokenString string) (IdentityClaim, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{signingMethod.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)

	claims := jwt.MapClaims{}
	token, err := parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		return nil, classify(err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}

	return IdentityClaim(claims), nil
}

func classify(err error) error {
	var cause error
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		cause = ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenMalformed):
		cause = ErrTokenMalformed
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		cause = ErrTokenSignature
	default:
		cause = ErrTokenClaims
	}
	return fmt.Errorf("%w (%v)", cause, err)
}

package auth

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptySecret is returned when the token service is built without a signing secret
	ErrEmptySecret = errors.New("auth: signing secret is empty")

	// ErrInvalidToken covers every verification failure. Callers must not
	// branch on the cause; the wrapped causes below exist for logging only.
	ErrInvalidToken = errors.New("auth: invalid token")

	ErrTokenMalformed = fmt.Errorf("%w: malformed", ErrInvalidToken)
	ErrTokenSignature = fmt.Errorf("%w: bad signature", ErrInvalidToken)
	ErrTokenExpired   = fmt.Errorf("%w: expired", ErrInvalidToken)
	ErrTokenClaims    = fmt.Errorf("%w: bad claims", ErrInvalidToken)

	// ErrOwnershipMismatch is returned when the token email differs from the requested identity
	ErrOwnershipMismatch = errors.New("auth: identity mismatch")

	// ErrRoleRequired is returned when a role policy rejects the claim
	ErrRoleRequired = errors.New("auth: required role missing")
)

// Cause returns a short tag naming why verification failed, for log fields
func Cause(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTokenExpired):
		return "expired"
	case errors.Is(err, ErrTokenSignature):
		return "signature"
	case errors.Is(err, ErrTokenMalformed):
		return "malformed"
	case errors.Is(err, ErrTokenClaims):
		return "claims"
	default:
		return "invalid"
	}
}

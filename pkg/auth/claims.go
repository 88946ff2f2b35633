package auth

import "context"

// Timing claims are owned by the server; caller-supplied values are dropped at issuance
const (
	ClaimExpiresAt = "exp"
	ClaimIssuedAt  = "iat"
	ClaimNotBefore = "nbf"
)

const (
	ClaimEmail = "email"
	ClaimRole  = "role"
)

var reservedClaims = []string{ClaimExpiresAt, ClaimIssuedAt, ClaimNotBefore}

// IdentityClaim is the decoded payload of an access token. It is exactly the
// mapping posted to /auth (minus reserved fields) plus exp and iat.
type IdentityClaim map[string]any

// Email returns the email claim when it is present and a string
func (c IdentityClaim) Email() (string, bool) {
	email, ok := c[ClaimEmail].(string)
	return email, ok
}

// Role returns the role claim when it is present and a string
func (c IdentityClaim) Role() (string, bool) {
	role, ok := c[ClaimRole].(string)
	return role, ok
}

type claimContextKey struct{}

// WithClaim stores the verified claim on ctx
func WithClaim(ctx context.Context, claim IdentityClaim) context.Context {
	return context.WithValue(ctx, claimContextKey{}, claim)
}

// ClaimFromContext returns the claim stored by WithClaim
func ClaimFromContext(ctx context.Context) (IdentityClaim, bool) {
	claim, ok := ctx.Value(claimContextKey{}).(IdentityClaim)
	return claim, ok
}

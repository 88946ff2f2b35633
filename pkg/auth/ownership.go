package auth

// CheckOwnership authorizes a self-service lookup: the token's email claim
// must equal queryEmail byte for byte. No case folding or trimming is applied,
// and a claim without a string email never matches.
func CheckOwnership(claim IdentityClaim, queryEmail string) error {
	email, ok := claim.Email()
	if !ok || email != queryEmail {
		return ErrOwnershipMismatch
	}
	return nil
}

// RequireRole enforces an optional role policy. An empty role disables the
// check, so any verified claim passes.
func RequireRole(claim IdentityClaim, role string) error {
	if role == "" {
		return nil
	}
	if got, ok := claim.Role(); ok && got == role {
		return nil
	}
	return ErrRoleRequired
}

package core

import (
	"context"
	"errors"
	"strings"

	"github.com/okarin-dev/gatekit/pkg/crypto"
)

// biometricResolver stores a one-way digest of the device assertion, never
// the assertion itself. Re-assertion by an enrolled account is accepted and
// refreshes the stored digest; presenting biometrics against an account
// created by another strategy is a mismatch.
type biometricResolver struct {
	repo AccountRepository
}

func (r *biometricResolver) resolve(ctx context.Context, c BiometricCredentials) (Resolution, error) {
	email := NormalizeEmail(c.Email)
	if email == "" {
		return rejected(RejectMissingField, ErrEmailRequired), nil
	}
	if !strings.Contains(email, "@") {
		return rejected(RejectInvalidFormat, ErrInvalidEmail), nil
	}
	if c.Assertion == "" {
		return rejected(RejectMissingField, ErrAssertionRequired), nil
	}

	digest := crypto.DigestSecret(c.Assertion)

	account, err := r.repo.FindByEmail(ctx, email)
	if errors.Is(err, ErrAccountNotFound) {
		return needsCreation(&Account{
			Email:         email,
			Strategy:      StrategyBiometric,
			BiometricHash: digest,
			Verified:      true,
		}), nil
	}
	if err != nil {
		return Resolution{}, err
	}

	if account.Strategy != StrategyBiometric {
		return rejected(RejectStrategyMismatch, nil), nil
	}

	// Re-enrollment is allowed for this strategy; keep the newest digest.
	account.BiometricHash = digest

	return authenticated(account), nil
}

package core

import (
	"context"
	"errors"

	"github.com/okarin-dev/gatekit/pkg/crypto"
)

// magicResolver confirms a signed magic-link token. The token is the same
// trust model as a session credential with a much shorter life and a single
// purpose: proving control of the embedded email.
type magicResolver struct {
	repo   AccountRepository
	tokens *crypto.TokenCodec
}

func (r *magicResolver) resolve(ctx context.Context, c MagicLinkCredentials) (Resolution, error) {
	if c.Token == "" {
		return rejected(RejectMissingField, ErrChallengeInvalid), nil
	}

	email, err := r.tokens.Verify(c.Token, crypto.PurposeMagicLink)
	if errors.Is(err, crypto.ErrTokenExpired) {
		return rejected(RejectBadSecret, ErrChallengeExpired), nil
	}
	if err != nil {
		return rejected(RejectBadSecret, ErrChallengeInvalid), nil
	}

	email = NormalizeEmail(email)

	account, err := r.repo.FindByEmail(ctx, email)
	if errors.Is(err, ErrAccountNotFound) {
		return needsCreation(&Account{
			Email:    email,
			Strategy: StrategyMagic,
			Verified: true,
		}), nil
	}
	if err != nil {
		return Resolution{}, err
	}

	return authenticated(account), nil
}

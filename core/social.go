package core

import (
	"context"
	"errors"
	"strings"
)

// socialResolver handles federated identities. The provider handshake
// happens outside the core; by the time credentials arrive here the
// provider has already vouched for the email, so an existing account is
// treated as a re-authentication regardless of its original strategy.
type socialResolver struct {
	repo AccountRepository
}

// reservedStrategyNames are owned by the engine's own flows. A provider
// string that collides with one would mint an account claiming that
// strategy without its secret (a "password" account with no hash), so it
// can never come in through the social path.
var reservedStrategyNames = map[string]bool{
	string(StrategyPassword):  true,
	string(StrategyOTP):       true,
	string(StrategyMagic):     true,
	string(StrategyBiometric): true,
}

func (r *socialResolver) resolve(ctx context.Context, c SocialCredentials) (Resolution, error) {
	email := NormalizeEmail(c.Email)
	provider := strings.ToLower(strings.TrimSpace(c.Provider))

	if email == "" {
		return rejected(RejectMissingField, ErrEmailRequired), nil
	}
	if !strings.Contains(email, "@") {
		return rejected(RejectInvalidFormat, ErrInvalidEmail), nil
	}
	if provider == "" || strings.TrimSpace(c.ProviderID) == "" {
		return rejected(RejectMissingField, ErrProviderRequired), nil
	}
	if reservedStrategyNames[provider] {
		return rejected(RejectInvalidFormat, ErrInvalidProvider), nil
	}

	account, err := r.repo.FindByEmail(ctx, email)
	if errors.Is(err, ErrAccountNotFound) {
		return needsCreation(&Account{
			Email:           email,
			FirstName:       strings.TrimSpace(c.FirstName),
			LastName:        strings.TrimSpace(c.LastName),
			Strategy:        Strategy(provider),
			ProviderSubject: strings.TrimSpace(c.ProviderID),
			Verified:        true,
			Profile:         Profile{Avatar: c.Avatar},
		}), nil
	}
	if err != nil {
		return Resolution{}, err
	}

	// Keep the first avatar we learn about; never clobber one the user set.
	if account.Profile.Avatar == "" && c.Avatar != "" {
		account.Profile.Avatar = c.Avatar
	}

	return authenticated(account), nil
}

package core

import (
	"context"
	"errors"
	"strings"

	"github.com/okarin-dev/gatekit/pkg/crypto"
)

const minPasswordLength = 6

// passwordResolver owns validation and comparison for the password strategy.
type passwordResolver struct {
	repo      AccountRepository
	passwords crypto.PasswordHandler
}

// resolve authenticates an existing password account. Not-found, wrong
// password, and strategy mismatch all come back as rejections that the
// engine collapses into one generic error.
func (r *passwordResolver) resolve(ctx context.Context, c PasswordCredentials) (Resolution, error) {
	email := NormalizeEmail(c.Email)
	if email == "" {
		return rejected(RejectMissingField, ErrEmailRequired), nil
	}
	if !strings.Contains(email, "@") {
		return rejected(RejectInvalidFormat, ErrInvalidEmail), nil
	}
	if c.Password == "" {
		return rejected(RejectMissingField, ErrPasswordRequired), nil
	}

	account, err := r.repo.FindByEmail(ctx, email)
	if errors.Is(err, ErrAccountNotFound) {
		return rejected(RejectNotFound, nil), nil
	}
	if err != nil {
		return Resolution{}, err
	}

	if account.Strategy != StrategyPassword {
		return rejected(RejectStrategyMismatch, nil), nil
	}

	valid, err := r.passwords.Verify(c.Password, account.PasswordHash)
	if err != nil {
		return Resolution{}, err
	}
	if !valid {
		return rejected(RejectBadSecret, nil), nil
	}

	return authenticated(account), nil
}

// seed validates a registration and produces the account to create.
// A password account always carries a hash; the hash is computed here so
// no password-strategy account can ever be created without one.
func (r *passwordResolver) seed(in RegisterInput) (Resolution, error) {
	email := NormalizeEmail(in.Email)
	if email == "" {
		return rejected(RejectMissingField, ErrEmailRequired), nil
	}
	if !strings.Contains(email, "@") {
		return rejected(RejectInvalidFormat, ErrInvalidEmail), nil
	}
	if strings.TrimSpace(in.FirstName) == "" || strings.TrimSpace(in.LastName) == "" {
		return rejected(RejectMissingField, ErrNameRequired), nil
	}
	if in.Password == "" {
		return rejected(RejectMissingField, ErrPasswordRequired), nil
	}
	if len(in.Password) < minPasswordLength {
		return rejected(RejectInvalidFormat, ErrPasswordTooShort), nil
	}

	hash, err := r.passwords.Hash(in.Password)
	if err != nil {
		return Resolution{}, err
	}

	return needsCreation(&Account{
		Email:        email,
		Phone:        NormalizePhone(in.Phone),
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		Strategy:     StrategyPassword,
		PasswordHash: hash,
		Verified:     true,
	}), nil
}

// Package memory provides an in-process AccountRepository. It enforces the
// same unique invariants as a real database and is the default store for
// embedding gatekit in a single binary, and for tests.
package memory

import (
	"context"
	"sync"

	"github.com/okarin-dev/gatekit/core"
)

// Repository is a mutex-guarded map store. Uniqueness checks and the insert
// happen under one lock, which gives Create the atomic duplicate signal the
// engine's race handling depends on.
type Repository struct {
	mu       sync.RWMutex
	accounts map[string]core.Account // keyed by id
	byEmail  map[string]string       // email -> id
	byPhone  map[string]string       // phone -> id
}

var _ core.AccountRepository = (*Repository)(nil)

func New() *Repository {
	return &Repository{
		accounts: make(map[string]core.Account),
		byEmail:  make(map[string]string),
		byPhone:  make(map[string]string),
	}
}

func (r *Repository) Create(ctx context.Context, account *core.Account) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if account.Email != "" {
		if _, taken := r.byEmail[account.Email]; taken {
			return core.ErrDuplicateIdentity
		}
	}
	if account.Phone != "" {
		if _, taken := r.byPhone[account.Phone]; taken {
			return core.ErrDuplicateIdentity
		}
	}

	r.accounts[account.ID] = *account
	if account.Email != "" {
		r.byEmail[account.Email] = account.ID
	}
	if account.Phone != "" {
		r.byPhone[account.Phone] = account.ID
	}
	return nil
}

func (r *Repository) FindByID(ctx context.Context, id string) (*core.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	account, ok := r.accounts[id]
	if !ok {
		return nil, core.ErrAccountNotFound
	}
	return &account, nil
}

func (r *Repository) FindByEmail(ctx context.Context, email string) (*core.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return nil, core.ErrAccountNotFound
	}
	account := r.accounts[id]
	return &account, nil
}

func (r *Repository) FindByPhone(ctx context.Context, phone string) (*core.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byPhone[phone]
	if !ok {
		return nil, core.ErrAccountNotFound
	}
	account := r.accounts[id]
	return &account, nil
}

func (r *Repository) Update(ctx context.Context, account *core.Account) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.accounts[account.ID]
	if !ok {
		return core.ErrAccountNotFound
	}

	// An update may settle a previously empty email/phone; re-check
	// uniqueness before moving the index entries.
	if account.Email != "" && account.Email != existing.Email {
		if owner, taken := r.byEmail[account.Email]; taken && owner != account.ID {
			return core.ErrDuplicateIdentity
		}
	}
	if account.Phone != "" && account.Phone != existing.Phone {
		if owner, taken := r.byPhone[account.Phone]; taken && owner != account.ID {
			return core.ErrDuplicateIdentity
		}
	}

	if existing.Email != "" && existing.Email != account.Email {
		delete(r.byEmail, existing.Email)
	}
	if existing.Phone != "" && existing.Phone != account.Phone {
		delete(r.byPhone, existing.Phone)
	}
	if account.Email != "" {
		r.byEmail[account.Email] = account.ID
	}
	if account.Phone != "" {
		r.byPhone[account.Phone] = account.ID
	}

	r.accounts[account.ID] = *account
	return nil
}

// Len reports the number of stored accounts.
func (r *Repository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.accounts)
}

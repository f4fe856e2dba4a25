package core

import (
	"context"
	"sync"
)

// FakeRepository is a test-only AccountRepository backed by a map. It
// enforces the same unique invariants as a real store and exposes error
// fields for behavior injection.
type FakeRepository struct {
	mu       sync.RWMutex
	accounts map[string]Account // keyed by id

	createErr error
	findErr   error
	updateErr error
}

func NewFakeRepository() *FakeRepository {
	return &FakeRepository{accounts: make(map[string]Account)}
}

func (f *FakeRepository) Create(ctx context.Context, account *Account) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.createErr != nil {
		return f.createErr
	}

	for _, existing := range f.accounts {
		if account.Email != "" && existing.Email == account.Email {
			return ErrDuplicateIdentity
		}
		if account.Phone != "" && existing.Phone == account.Phone {
			return ErrDuplicateIdentity
		}
	}

	f.accounts[account.ID] = *account
	return nil
}

func (f *FakeRepository) FindByID(ctx context.Context, id string) (*Account, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.findErr != nil {
		return nil, f.findErr
	}
	account, ok := f.accounts[id]
	if !ok {
		return nil, ErrAccountNotFound
	}
	return &account, nil
}

func (f *FakeRepository) FindByEmail(ctx context.Context, email string) (*Account, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.findErr != nil {
		return nil, f.findErr
	}
	for _, account := range f.accounts {
		if account.Email != "" && account.Email == email {
			return &account, nil
		}
	}
	return nil, ErrAccountNotFound
}

func (f *FakeRepository) FindByPhone(ctx context.Context, phone string) (*Account, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.findErr != nil {
		return nil, f.findErr
	}
	for _, account := range f.accounts {
		if account.Phone != "" && account.Phone == phone {
			return &account, nil
		}
	}
	return nil, ErrAccountNotFound
}

func (f *FakeRepository) Update(ctx context.Context, account *Account) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return f.updateErr
	}
	if _, ok := f.accounts[account.ID]; !ok {
		return ErrAccountNotFound
	}
	f.accounts[account.ID] = *account
	return nil
}

// Remove deletes an account out from under the engine, simulating external
// administrative deletion after a token was issued.
func (f *FakeRepository) Remove(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.accounts, id)
}

// Len reports the number of stored accounts.
func (f *FakeRepository) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.accounts)
}

// FakeNotifier records deliveries and can fail on demand.
type FakeNotifier struct {
	mu         sync.Mutex
	deliveries []FakeDelivery
	deliverErr error
}

type FakeDelivery struct {
	Destination string
	Message     string
}

func NewFakeNotifier() *FakeNotifier {
	return &FakeNotifier{}
}

func (f *FakeNotifier) Deliver(ctx context.Context, destination, message string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deliverErr != nil {
		return f.deliverErr
	}
	f.deliveries = append(f.deliveries, FakeDelivery{Destination: destination, Message: message})
	return nil
}

// Deliveries returns a snapshot of everything delivered so far.
func (f *FakeNotifier) Deliveries() []FakeDelivery {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]FakeDelivery, len(f.deliveries))
	copy(out, f.deliveries)
	return out
}

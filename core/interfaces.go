package core

import (
	"context"
	"time"
)

// Ports define interfaces for external dependencies

// ============================================
// STORAGE PORT (Account repository)
// ============================================

// AccountRepository is the durable store for accounts. Implementations must
// enforce email/phone uniqueness atomically: Create returns
// ErrDuplicateIdentity if either unique invariant would be violated. The
// engine relies on that signal to resolve concurrent first-registration
// races. Lookups return ErrAccountNotFound when nothing matches.
type AccountRepository interface {
	Create(ctx context.Context, account *Account) error
	FindByID(ctx context.Context, id string) (*Account, error)
	FindByEmail(ctx context.Context, email string) (*Account, error)
	FindByPhone(ctx context.Context, phone string) (*Account, error)
	Update(ctx context.Context, account *Account) error
}

// ============================================
// CHALLENGE PORT (OTP state)
// ============================================

// Challenge is an outstanding one-time-passcode bound to a destination.
// Only the digest of the code is held; the raw code lives exactly as long
// as the delivery call.
type Challenge struct {
	Destination string
	CodeDigest  string
	ExpiresAt   time.Time
	Attempts    int // remaining verification attempts
}

// ChallengeStore keeps outstanding challenges keyed by destination.
// Get returns ErrChallengeNotFound for unknown keys and ErrChallengeExpired
// once ExpiresAt has passed; an expired challenge is dropped on read.
type ChallengeStore interface {
	Set(ctx context.Context, key string, challenge *Challenge) error
	Get(ctx context.Context, key string) (*Challenge, error)
	Delete(ctx context.Context, key string) error
}

// ============================================
// NOTIFIER PORT (OTP / magic-link delivery)
// ============================================

// Notifier delivers a challenge secret out of band (SMS, email). Delivery
// is fire-and-forget relative to the authentication decision: a failure is
// reported to the caller but never affects already-issued sessions.
type Notifier interface {
	Deliver(ctx context.Context, destination, message string) error
}

package core

import "time"

// Strategy identifies the authentication method that created an account.
// It is immutable after creation: a user trying a different strategy against
// an existing email or phone either succeeds under the original strategy's
// rules or is rejected, never silently switched.
type Strategy string

const (
	StrategyPassword  Strategy = "password"
	StrategyGoogle    Strategy = "google"
	StrategyGithub    Strategy = "github"
	StrategyOTP       Strategy = "otp"
	StrategyMagic     Strategy = "magic"
	StrategyBiometric Strategy = "biometric"
)

// Account is the unit of identity. One account unifies every strategy's
// proof of the same email or phone.
//
// At most the secret fields relevant to the account's strategy are populated:
// PasswordHash iff strategy is password, ProviderSubject for social
// strategies, BiometricHash for biometric.
type Account struct {
	ID        string   `json:"id"`
	Email     string   `json:"email,omitempty"` // unique when present; lowercased
	Phone     string   `json:"phone,omitempty"` // unique when present, sparse
	FirstName string   `json:"firstName,omitempty"`
	LastName  string   `json:"lastName,omitempty"`
	Strategy  Strategy `json:"strategy"`

	PasswordHash    string `json:"-"` // Never expose in JSON
	ProviderSubject string `json:"-"` // Never expose in JSON
	BiometricHash   string `json:"-"` // Never expose in JSON

	Verified    bool      `json:"verified"`
	LastLoginAt time.Time `json:"lastLoginAt,omitzero"`
	Profile     Profile   `json:"profile"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Summary returns a copy safe to hand to callers: identity and profile
// fields only, secrets zeroed.
func (a *Account) Summary() *Account {
	summary := *a
	summary.PasswordHash = ""
	summary.ProviderSubject = ""
	summary.BiometricHash = ""
	return &summary
}

// Profile holds the user-editable presentation fields.
type Profile struct {
	Avatar   string `json:"avatar,omitempty"`
	Bio      string `json:"bio,omitempty"`
	Location string `json:"location,omitempty"`
	Website  string `json:"website,omitempty"`
}

// AuthResult is returned by every successful authentication: the account
// summary plus a freshly minted session credential.
type AuthResult struct {
	Account   *Account  `json:"account"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// ChallengeReceipt acknowledges a delivered OTP or magic-link challenge.
// The secret itself is never echoed back to the caller.
type ChallengeReceipt struct {
	Destination string    `json:"destination"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

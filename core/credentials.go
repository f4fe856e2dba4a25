package core

import "strings"

// Credentials is the closed set of strategy inputs. Each variant carries
// exactly the untrusted fields its resolver validates; the engine dispatches
// on the concrete type.
type Credentials interface {
	strategy() Strategy
}

// PasswordCredentials authenticate an existing password account.
type PasswordCredentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (PasswordCredentials) strategy() Strategy { return StrategyPassword }

// RegisterInput creates a new password account.
type RegisterInput struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	Password  string `json:"password"`
}

// SocialCredentials carry a federated identity already verified by an
// external provider handshake. The provider's proof of the email is treated
// as authoritative.
type SocialCredentials struct {
	Email      string `json:"email"`
	Provider   string `json:"provider"` // "google", "github"
	ProviderID string `json:"providerId"`
	FirstName  string `json:"firstName,omitempty"`
	LastName   string `json:"lastName,omitempty"`
	Avatar     string `json:"avatar,omitempty"`
}

func (c SocialCredentials) strategy() Strategy {
	return Strategy(strings.ToLower(c.Provider))
}

// OTPCredentials confirm a one-time passcode previously delivered to a phone.
type OTPCredentials struct {
	Phone string `json:"phone"`
	Code  string `json:"code"`
}

func (OTPCredentials) strategy() Strategy { return StrategyOTP }

// MagicLinkCredentials confirm a signed magic-link token.
type MagicLinkCredentials struct {
	Token string `json:"token"`
}

func (MagicLinkCredentials) strategy() Strategy { return StrategyMagic }

// BiometricCredentials carry an opaque assertion payload from the device.
type BiometricCredentials struct {
	Email     string `json:"email"`
	Assertion string `json:"assertion"`
}

func (BiometricCredentials) strategy() Strategy { return StrategyBiometric }

// NormalizeEmail lowercases and trims an email the way every resolver and
// repository key must.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizePhone trims surrounding whitespace; the number itself is stored
// as submitted.
func NormalizePhone(phone string) string {
	return strings.TrimSpace(phone)
}

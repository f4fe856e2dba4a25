// Package gatekit is an embeddable multi-strategy authentication engine.
// Password, social, OTP, magic-link, and biometric sign-ins all converge on
// a single signed bearer session. The root package wires the pieces; the
// behavior lives in core, the integrations in adapters.
package gatekit

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/okarin-dev/gatekit/core"
	"github.com/okarin-dev/gatekit/pkg/crypto"
)

// interfaces
type (
	AccountRepository = core.AccountRepository
	ChallengeStore    = core.ChallengeStore
	Notifier          = core.Notifier

	PasswordHandler = crypto.PasswordHandler
)

// structs
type (
	Engine           = core.Engine
	Account          = core.Account
	Profile          = core.Profile
	AuthResult       = core.AuthResult
	ChallengeReceipt = core.ChallengeReceipt
)

type (
	Strategy             = core.Strategy
	Credentials          = core.Credentials
	RegisterInput        = core.RegisterInput
	PasswordCredentials  = core.PasswordCredentials
	SocialCredentials    = core.SocialCredentials
	OTPCredentials       = core.OTPCredentials
	MagicLinkCredentials = core.MagicLinkCredentials
	BiometricCredentials = core.BiometricCredentials
)

const (
	StrategyPassword  = core.StrategyPassword
	StrategyGoogle    = core.StrategyGoogle
	StrategyGithub    = core.StrategyGithub
	StrategyOTP       = core.StrategyOTP
	StrategyMagic     = core.StrategyMagic
	StrategyBiometric = core.StrategyBiometric
)

const (
	defaultSessionTTL   = 24 * time.Hour
	defaultMagicLinkTTL = 15 * time.Minute
	defaultOTPTTL       = 5 * time.Minute
	defaultSecretLen    = 32
)

// Constructors & helpers (convenience re-exports)
var (
	NewInMemoryChallengeStore = core.NewInMemoryChallengeStore
	NewLogNotifier            = core.NewLogNotifier
	NewArgon2                 = crypto.NewArgon2
)

var (
	ErrDuplicateIdentity  = core.ErrDuplicateIdentity
	ErrInvalidCredentials = core.ErrInvalidCredentials
	ErrAccountNotFound    = core.ErrAccountNotFound
)

var (
	ErrUnauthenticated = core.ErrUnauthenticated
	ErrTokenExpired    = core.ErrTokenExpired
)

var (
	ErrChallengeInvalid = core.ErrChallengeInvalid
	ErrChallengeExpired = core.ErrChallengeExpired
	ErrDeliveryFailed   = core.ErrDeliveryFailed
)

var (
	ErrEmailRequired     = core.ErrEmailRequired
	ErrInvalidEmail      = core.ErrInvalidEmail
	ErrPhoneRequired     = core.ErrPhoneRequired
	ErrPasswordRequired  = core.ErrPasswordRequired
	ErrPasswordTooShort  = core.ErrPasswordTooShort
	ErrNameRequired      = core.ErrNameRequired
	ErrProviderRequired  = core.ErrProviderRequired
	ErrInvalidProvider   = core.ErrInvalidProvider
	ErrAssertionRequired = core.ErrAssertionRequired
	ErrCodeFormat        = core.ErrCodeFormat
)

var (
	ErrRepositoryRequired = core.ErrRepositoryRequired
	ErrSecretRequired     = core.ErrSecretRequired
	ErrSecretTooShort     = core.ErrSecretTooShort
	ErrUnknownStrategy    = core.ErrUnknownStrategy
)

// Config is everything an embedding application provides. Secret and
// Repository are required; everything else has a working default.
type Config struct {
	// Secret signs session and magic-link tokens. Rotating it invalidates
	// every outstanding token.
	Secret string

	// Repository persists accounts. Use adapters/memory for tests and
	// adapters/pgx for PostgreSQL.
	Repository AccountRepository

	// Challenges holds pending OTP state. Defaults to an in-process store;
	// deployments with more than one instance need a shared one.
	Challenges ChallengeStore

	// Notifier delivers OTP codes and magic links. Defaults to a logger
	// that prints to slog, which is only useful in development.
	Notifier Notifier

	// Passwords hashes and verifies password secrets. Defaults to argon2id.
	Passwords PasswordHandler

	Logger *slog.Logger
	Now    func() time.Time

	SessionTTL   time.Duration
	MagicLinkTTL time.Duration
	OTPTTL       time.Duration

	// MagicLinkBase, when set, is prefixed to magic-link tokens so the
	// delivered message is a clickable URL.
	MagicLinkBase string
}

func New(config Config) (*Engine, error) {
	if config.Secret == "" {
		return nil, ErrSecretRequired
	}
	if len(config.Secret) < defaultSecretLen {
		return nil, fmt.Errorf("%w - minimum of %d characters", ErrSecretTooShort, defaultSecretLen)
	}
	if config.Repository == nil {
		return nil, ErrRepositoryRequired
	}

	// Set Defaults

	challenges := config.Challenges
	if challenges == nil {
		challenges = core.NewInMemoryChallengeStore(0, config.Now)
	}

	notifier := config.Notifier
	if notifier == nil {
		notifier = core.NewLogNotifier(config.Logger)
	}

	passwords := config.Passwords
	if passwords == nil {
		passwords = crypto.NewArgon2()
	}

	sessionTTL := config.SessionTTL
	if sessionTTL <= 0 {
		sessionTTL = defaultSessionTTL
	}
	magicLinkTTL := config.MagicLinkTTL
	if magicLinkTTL <= 0 {
		magicLinkTTL = defaultMagicLinkTTL
	}
	otpTTL := config.OTPTTL
	if otpTTL <= 0 {
		otpTTL = defaultOTPTTL
	}

	return core.NewEngine(core.EngineConfig{
		Repository:    config.Repository,
		Challenges:    challenges,
		Notifier:      notifier,
		Passwords:     passwords,
		Tokens:        crypto.NewTokenCodec([]byte(config.Secret), config.Now),
		Logger:        config.Logger,
		Now:           config.Now,
		SessionTTL:    sessionTTL,
		MagicLinkTTL:  magicLinkTTL,
		OTPTTL:        otpTTL,
		MagicLinkBase: config.MagicLinkBase,
	}), nil
}

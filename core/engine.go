package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/okarin-dev/gatekit/pkg/crypto"
)

const otpDigits = 6

// EngineConfig carries everything an Engine needs. No process-wide state:
// the signing secret, clock, and collaborators are all injected so many
// engine instances can run behind a load balancer sharing only the
// repository and the secret.
type EngineConfig struct {
	Repository AccountRepository
	Challenges ChallengeStore
	Notifier   Notifier
	Passwords  crypto.PasswordHandler
	Tokens     *crypto.TokenCodec
	Logger     *slog.Logger
	Now        func() time.Time

	SessionTTL   time.Duration
	MagicLinkTTL time.Duration
	OTPTTL       time.Duration

	// MagicLinkBase, when set, is prefixed to the magic-link token in the
	// delivered message so the notifier sends a clickable URL.
	MagicLinkBase string
}

// Engine orchestrates the strategy resolvers, applies the account
// unification and creation policy, and drives session issuance. Each call
// is an independent unit of work; the Engine holds no mutable state between
// requests and is safe for concurrent use.
type Engine struct {
	repo       AccountRepository
	challenges ChallengeStore
	notifier   Notifier
	tokens     *crypto.TokenCodec
	log        *slog.Logger
	now        func() time.Time

	sessionTTL    time.Duration
	magicLinkTTL  time.Duration
	otpTTL        time.Duration
	magicLinkBase string

	password  passwordResolver
	social    socialResolver
	otp       otpResolver
	magic     magicResolver
	biometric biometricResolver
}

// NewEngine wires the resolvers. Callers normally construct through the
// root package, which validates configuration and fills defaults.
func NewEngine(cfg EngineConfig) *Engine {
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &Engine{
		repo:          cfg.Repository,
		challenges:    cfg.Challenges,
		notifier:      cfg.Notifier,
		tokens:        cfg.Tokens,
		log:           log,
		now:           now,
		sessionTTL:    cfg.SessionTTL,
		magicLinkTTL:  cfg.MagicLinkTTL,
		otpTTL:        cfg.OTPTTL,
		magicLinkBase: cfg.MagicLinkBase,
		password:      passwordResolver{repo: cfg.Repository, passwords: cfg.Passwords},
		social:        socialResolver{repo: cfg.Repository},
		otp:           otpResolver{repo: cfg.Repository, challenges: cfg.Challenges},
		magic:         magicResolver{repo: cfg.Repository, tokens: cfg.Tokens},
		biometric:     biometricResolver{repo: cfg.Repository},
	}
}

// Register creates a password account and signs it in. Registering an email
// that already has an account fails with ErrDuplicateIdentity; this is the
// one path where existence is revealed, since strategy exclusivity must be
// enforced at sign-up.
func (e *Engine) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	resolution, err := e.password.seed(input)
	if err != nil {
		return nil, wrapUpstream(err)
	}
	return e.finish(ctx, StrategyPassword, resolution)
}

// Login authenticates with password, social, or biometric credentials.
// OTP and magic-link confirmations go through ConfirmChallenge.
func (e *Engine) Login(ctx context.Context, creds Credentials) (*AuthResult, error) {
	var (
		resolution Resolution
		err        error
	)

	switch c := creds.(type) {
	case PasswordCredentials:
		resolution, err = e.password.resolve(ctx, c)
	case SocialCredentials:
		resolution, err = e.social.resolve(ctx, c)
	case BiometricCredentials:
		resolution, err = e.biometric.resolve(ctx, c)
	default:
		return nil, ErrUnknownStrategy
	}
	if err != nil {
		return nil, wrapUpstream(err)
	}

	return e.finish(ctx, creds.strategy(), resolution)
}

// RequestChallenge issues and delivers a challenge for the send-phase
// strategies: an OTP code to a phone, or a magic link to an email. The
// secret is persisted (or signed) server-side and never echoed to the
// caller.
func (e *Engine) RequestChallenge(ctx context.Context, strategy Strategy, destination string) (*ChallengeReceipt, error) {
	switch strategy {
	case StrategyOTP:
		return e.requestOTP(ctx, destination)
	case StrategyMagic:
		return e.requestMagicLink(ctx, destination)
	default:
		return nil, ErrUnknownStrategy
	}
}

// ConfirmChallenge completes the confirm phase of OTP or magic-link
// authentication.
func (e *Engine) ConfirmChallenge(ctx context.Context, creds Credentials) (*AuthResult, error) {
	var (
		resolution Resolution
		err        error
	)

	switch c := creds.(type) {
	case OTPCredentials:
		resolution, err = e.otp.resolve(ctx, c)
	case MagicLinkCredentials:
		resolution, err = e.magic.resolve(ctx, c)
	default:
		return nil, ErrUnknownStrategy
	}
	if err != nil {
		return nil, wrapUpstream(err)
	}

	return e.finish(ctx, creds.strategy(), resolution)
}

// VerifySession decodes a presented session credential and resolves its
// subject. Expired and invalid tokens are distinct failures for UX, but
// both deny access; a valid token whose subject no longer exists fails
// with ErrAccountNotFound.
func (e *Engine) VerifySession(ctx context.Context, token string) (*Account, error) {
	subject, err := e.tokens.Verify(token, crypto.PurposeSession)
	if errors.Is(err, crypto.ErrTokenExpired) {
		return nil, ErrTokenExpired
	}
	if err != nil {
		return nil, ErrUnauthenticated
	}

	account, err := e.repo.FindByID(ctx, subject)
	if errors.Is(err, ErrAccountNotFound) {
		return nil, ErrAccountNotFound
	}
	if err != nil {
		return nil, wrapUpstream(err)
	}

	return account.Summary(), nil
}

// UpdateProfile merges the incoming profile into the account's existing one
// and persists the result.
func (e *Engine) UpdateProfile(ctx context.Context, accountID string, incoming Profile) (*Account, error) {
	account, err := e.repo.FindByID(ctx, accountID)
	if errors.Is(err, ErrAccountNotFound) {
		return nil, ErrAccountNotFound
	}
	if err != nil {
		return nil, wrapUpstream(err)
	}

	account.Profile = MergeProfiles(account.Profile, incoming)
	account.UpdatedAt = e.now()

	if err := e.repo.Update(ctx, account); err != nil {
		return nil, wrapUpstream(err)
	}

	return account.Summary(), nil
}

// finish applies the unification/creation policy to a resolver outcome and
// mints the session.
func (e *Engine) finish(ctx context.Context, strategy Strategy, resolution Resolution) (*AuthResult, error) {
	switch resolution.Kind {
	case ResolutionRejected:
		err := e.mapRejection(strategy, resolution)
		e.log.Debug("authentication rejected", "strategy", string(strategy), "code", errCode(err))
		return nil, err

	case ResolutionAuthenticated:
		return e.issueFor(ctx, resolution.Account)

	case ResolutionNeedsCreation:
		account, err := e.create(ctx, strategy, resolution.Seed)
		if err != nil {
			return nil, err
		}
		return e.issueFor(ctx, account)

	default:
		return nil, fmt.Errorf("%w: unknown resolution kind %d", ErrUpstreamUnavailable, resolution.Kind)
	}
}

// create persists a seed account. If a concurrent attempt created the same
// identity first, the duplicate signal from the repository triggers exactly
// one re-lookup and the attempt proceeds as an existing-account
// authentication: first writer wins, nobody sees a spurious error. Password
// registration is the exception, where the duplicate must surface.
func (e *Engine) create(ctx context.Context, strategy Strategy, seed *Account) (*Account, error) {
	now := e.now()
	seed.ID = uuid.NewString()
	seed.CreatedAt = now
	seed.UpdatedAt = now

	err := e.repo.Create(ctx, seed)
	if err == nil {
		e.log.Info("account created", "id", seed.ID, "strategy", string(seed.Strategy))
		return seed, nil
	}
	if !errors.Is(err, ErrDuplicateIdentity) {
		return nil, wrapUpstream(err)
	}

	if strategy == StrategyPassword {
		return nil, ErrDuplicateIdentity
	}

	var existing *Account
	if seed.Email != "" {
		existing, err = e.repo.FindByEmail(ctx, seed.Email)
	} else {
		existing, err = e.repo.FindByPhone(ctx, seed.Phone)
	}
	if err != nil {
		return nil, wrapUpstream(err)
	}
	return existing, nil
}

// issueFor touches the account and mints the session credential.
func (e *Engine) issueFor(ctx context.Context, account *Account) (*AuthResult, error) {
	now := e.now()
	account.LastLoginAt = now
	account.UpdatedAt = now

	if err := e.repo.Update(ctx, account); err != nil {
		return nil, wrapUpstream(err)
	}

	token, err := e.tokens.Issue(account.ID, crypto.PurposeSession, e.sessionTTL)
	if err != nil {
		return nil, wrapUpstream(err)
	}

	return &AuthResult{
		Account:   account.Summary(),
		Token:     token,
		ExpiresAt: now.Add(e.sessionTTL),
	}, nil
}

func (e *Engine) requestOTP(ctx context.Context, phone string) (*ChallengeReceipt, error) {
	phone = NormalizePhone(phone)
	if phone == "" {
		return nil, ErrPhoneRequired
	}

	code, err := crypto.GenerateNumericCode(otpDigits)
	if err != nil {
		return nil, wrapUpstream(err)
	}

	expiresAt := e.now().Add(e.otpTTL)
	challenge := &Challenge{
		Destination: phone,
		CodeDigest:  crypto.DigestSecret(code),
		ExpiresAt:   expiresAt,
		Attempts:    3,
	}

	if err := e.challenges.Set(ctx, phone, challenge); err != nil {
		return nil, wrapUpstream(err)
	}

	message := fmt.Sprintf("Your verification code is %s", code)
	if err := e.notifier.Deliver(ctx, phone, message); err != nil {
		return nil, deliveryError(err)
	}

	e.log.Info("otp challenge issued", "destination", phone)
	return &ChallengeReceipt{Destination: phone, ExpiresAt: expiresAt}, nil
}

func (e *Engine) requestMagicLink(ctx context.Context, email string) (*ChallengeReceipt, error) {
	email = NormalizeEmail(email)
	if email == "" {
		return nil, ErrEmailRequired
	}
	if !strings.Contains(email, "@") {
		return nil, ErrInvalidEmail
	}

	token, err := e.tokens.Issue(email, crypto.PurposeMagicLink, e.magicLinkTTL)
	if err != nil {
		return nil, wrapUpstream(err)
	}

	link := token
	if e.magicLinkBase != "" {
		link = e.magicLinkBase + token
	}

	message := fmt.Sprintf("Sign in with this link: %s", link)
	if err := e.notifier.Deliver(ctx, email, message); err != nil {
		return nil, deliveryError(err)
	}

	e.log.Info("magic link issued", "destination", email)
	return &ChallengeReceipt{Destination: email, ExpiresAt: e.now().Add(e.magicLinkTTL)}, nil
}

// mapRejection turns a resolver rejection into the caller-facing error.
// Validation problems keep their precise sentinel; the identity-sensitive
// reasons collapse so the message is identical whether the identifier was
// unknown, the secret wrong, or the strategy mismatched.
func (e *Engine) mapRejection(strategy Strategy, resolution Resolution) error {
	switch resolution.Reason {
	case RejectMissingField, RejectInvalidFormat:
		if resolution.Detail != nil {
			return resolution.Detail
		}
		return ErrInvalidCredentials
	case RejectBadSecret:
		if strategy == StrategyOTP || strategy == StrategyMagic {
			if resolution.Detail != nil {
				return resolution.Detail
			}
			return ErrChallengeInvalid
		}
		return ErrInvalidCredentials
	default:
		return ErrInvalidCredentials
	}
}

// wrapUpstream classifies repository and crypto failures. A deadline hit is
// a distinct, retryable timeout; everything else is generic unavailability.
// The original cause stays wrapped for logs.
func wrapUpstream(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", ErrUpstreamTimeout, err)
	}
	return fmt.Errorf("%w: %w", ErrUpstreamUnavailable, err)
}

// deliveryError classifies notifier failures. A timeout stays a timeout;
// anything else is a delivery failure reported to the caller.
func deliveryError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", ErrUpstreamTimeout, err)
	}
	return fmt.Errorf("%w: %w", ErrDeliveryFailed, err)
}

func errCode(err error) string {
	var authErr *AuthError
	if errors.As(err, &authErr) {
		return authErr.Code
	}
	return "internal"
}

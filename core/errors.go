package core

// AuthError is a typed failure with a stable machine-readable code and a
// human message. Sentinel values below compare with errors.Is; wrapped
// upstream causes stay reachable through errors.Unwrap.
type AuthError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *AuthError) Error() string { return e.Message }

// Validation errors (client input). Fully detailed to the caller.
var (
	ErrEmailRequired     = &AuthError{Code: "email_required", Message: "email is required"}          // 400
	ErrInvalidEmail      = &AuthError{Code: "invalid_email", Message: "invalid email format"}        // 400
	ErrPhoneRequired     = &AuthError{Code: "phone_required", Message: "phone number is required"}   // 400
	ErrPasswordRequired  = &AuthError{Code: "password_required", Message: "password is required"}    // 400
	ErrPasswordTooShort  = &AuthError{Code: "password_too_short", Message: "password must be at least 6 characters"} // 400
	ErrNameRequired      = &AuthError{Code: "name_required", Message: "first and last name are required"}            // 400
	ErrProviderRequired  = &AuthError{Code: "provider_required", Message: "provider and provider id are required"}   // 400
	ErrInvalidProvider   = &AuthError{Code: "invalid_provider", Message: "unsupported social provider"}              // 400
	ErrAssertionRequired = &AuthError{Code: "assertion_required", Message: "biometric assertion is required"}        // 400
	ErrCodeFormat        = &AuthError{Code: "invalid_code_format", Message: "code must be 6 digits"}                 // 400
)

// Credential errors. The invalid-credentials message is deliberately the
// same whether the email was unknown, the password wrong, or the strategy
// mismatched, so callers cannot enumerate accounts.
var (
	ErrDuplicateIdentity  = &AuthError{Code: "duplicate_identity", Message: "an account already exists with this email or phone"} // 409
	ErrInvalidCredentials = &AuthError{Code: "invalid_credentials", Message: "invalid email or password"}                // 401
)

// Challenge errors (OTP / magic-link).
var (
	ErrChallengeInvalid = &AuthError{Code: "challenge_invalid", Message: "invalid or unknown code"} // 401
	ErrChallengeExpired = &AuthError{Code: "challenge_expired", Message: "code has expired, request a new one"} // 401
	ErrDeliveryFailed   = &AuthError{Code: "delivery_failed", Message: "could not deliver the code"} // 502

	// ErrChallengeNotFound is the store-level miss; the engine collapses it
	// into ErrChallengeInvalid before it reaches a caller.
	ErrChallengeNotFound = &AuthError{Code: "challenge_not_found", Message: "no outstanding challenge"}
)

// Session verification errors.
var (
	ErrUnauthenticated = &AuthError{Code: "unauthenticated", Message: "invalid session token"} // 401
	ErrTokenExpired    = &AuthError{Code: "token_expired", Message: "session expired"}         // 401
	ErrAccountNotFound = &AuthError{Code: "account_not_found", Message: "account no longer exists"} // 404
)

// Upstream errors (repository / notifier). Always recoverable by retry,
// never silently swallowed.
var (
	ErrUpstreamTimeout     = &AuthError{Code: "upstream_timeout", Message: "upstream call timed out"}  // 504
	ErrUpstreamUnavailable = &AuthError{Code: "upstream_unavailable", Message: "upstream unavailable"} // 503
)

// Config errors (server-side configuration).
var (
	ErrRepositoryRequired = &AuthError{Code: "repository_required", Message: "account repository is required"}
	ErrSecretRequired     = &AuthError{Code: "secret_required", Message: "signing secret is required"}
	ErrSecretTooShort     = &AuthError{Code: "secret_too_short", Message: "signing secret too short"}
	ErrUnknownStrategy    = &AuthError{Code: "unknown_strategy", Message: "unknown authentication strategy"}
)

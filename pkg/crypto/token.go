package crypto

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token purposes. A token minted for one purpose never verifies for another,
// so a short-lived magic-link token cannot be presented as a session.
const (
	PurposeSession   = "session"
	PurposeMagicLink = "magic-link"
)

var (
	ErrTokenMalformed = errors.New("malformed token")
	ErrTokenSignature = errors.New("token signature mismatch")
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenPurpose   = errors.New("token issued for a different purpose")
)

type tokenClaims struct {
	jwt.RegisteredClaims
	Purpose string `json:"purpose"`
}

// TokenCodec mints and verifies signed, time-bounded bearer tokens (HS256).
// Tokens are self-contained; expiry is their only death.
type TokenCodec struct {
	secret []byte
	now    func() time.Time
}

// NewTokenCodec builds a codec around a shared signing secret. The now
// function drives both issuance and expiry checks; pass nil for time.Now.
func NewTokenCodec(secret []byte, now func() time.Time) *TokenCodec {
	if now == nil {
		now = time.Now
	}
	return &TokenCodec{secret: secret, now: now}
}

// Issue mints a token binding subject and purpose with an absolute expiry.
func (c *TokenCodec) Issue(subject, purpose string, ttl time.Duration) (string, error) {
	now := c.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Purpose: purpose,
	})

	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature, expiry, and purpose, returning the subject.
// Errors distinguish malformed input, signature mismatch, and natural expiry
// so callers can tell "not authenticated" apart from "session lapsed".
func (c *TokenCodec) Verify(tokenString, purpose string) (string, error) {
	claims := &tokenClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (any, error) { return c.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(c.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return "", ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return "", ErrTokenSignature
		default:
			return "", ErrTokenMalformed
		}
	}
	if !token.Valid {
		return "", ErrTokenMalformed
	}
	if claims.Purpose != purpose {
		return "", ErrTokenPurpose
	}
	return claims.Subject, nil
}

package crypto

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
)

// GenerateNumericCode returns a random code of the given number of decimal
// digits, drawn from crypto/rand. Leading zeros are preserved.
func GenerateNumericCode(digits int) (string, error) {
	if digits <= 0 {
		return "", fmt.Errorf("digits must be positive, got %d", digits)
	}

	code := make([]byte, digits)
	buf := make([]byte, digits)

	for position := 0; position < digits; {
		if _, err := rand.Read(buf); err != nil {
			return "", err
		}
		for i := 0; i < len(buf) && position < digits; i++ {
			// Rejection sampling keeps the distribution uniform.
			if buf[i] < 250 {
				code[position] = '0' + buf[i]%10
				position++
			}
		}
	}

	return string(code), nil
}

// DigestSecret returns the hex SHA-256 of a short-lived secret (OTP code,
// biometric assertion) for at-rest storage. Raw secrets are never persisted.
func DigestSecret(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return hex.EncodeToString(sum[:])
}

// VerifyDigest compares a candidate secret against a stored digest in
// constant time.
func VerifyDigest(secret, storedDigest string) bool {
	candidate := DigestSecret(secret)
	return subtle.ConstantTimeCompare([]byte(candidate), []byte(storedDigest)) == 1
}

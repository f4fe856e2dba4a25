package core

import (
	"context"
	"errors"
	"regexp"

	"github.com/okarin-dev/gatekit/pkg/crypto"
)

var otpCodePattern = regexp.MustCompile(`^\d{6}$`)

// otpResolver confirms a one-time passcode against the outstanding
// challenge issued for that phone. Codes are single-use: a match consumes
// the challenge, a mismatch burns one of its remaining attempts.
type otpResolver struct {
	repo       AccountRepository
	challenges ChallengeStore
}

func (r *otpResolver) resolve(ctx context.Context, c OTPCredentials) (Resolution, error) {
	phone := NormalizePhone(c.Phone)
	if phone == "" {
		return rejected(RejectMissingField, ErrPhoneRequired), nil
	}
	if !otpCodePattern.MatchString(c.Code) {
		return rejected(RejectInvalidFormat, ErrCodeFormat), nil
	}

	challenge, err := r.challenges.Get(ctx, phone)
	if errors.Is(err, ErrChallengeExpired) {
		return rejected(RejectBadSecret, ErrChallengeExpired), nil
	}
	if errors.Is(err, ErrChallengeNotFound) {
		return rejected(RejectBadSecret, ErrChallengeInvalid), nil
	}
	if err != nil {
		return Resolution{}, err
	}

	if !crypto.VerifyDigest(c.Code, challenge.CodeDigest) {
		challenge.Attempts--
		if challenge.Attempts <= 0 {
			if err := r.challenges.Delete(ctx, phone); err != nil {
				return Resolution{}, err
			}
		} else if err := r.challenges.Set(ctx, phone, challenge); err != nil {
			return Resolution{}, err
		}
		return rejected(RejectBadSecret, ErrChallengeInvalid), nil
	}

	// Consume before resolving the account so the code can never be replayed.
	if err := r.challenges.Delete(ctx, phone); err != nil {
		return Resolution{}, err
	}

	account, err := r.repo.FindByPhone(ctx, phone)
	if errors.Is(err, ErrAccountNotFound) {
		return needsCreation(&Account{
			Phone:    phone,
			Strategy: StrategyOTP,
			Verified: true,
		}), nil
	}
	if err != nil {
		return Resolution{}, err
	}

	return authenticated(account), nil
}

package generator

import (
	"crypto/sha1"
	"time"

	"github.com/creachadair/otp"

	"github.com/passforge/passforge/core/apperr"
)

// OTP computes an RFC 6238 TOTP code from a base32 shared Secret. Unlike
// every other generator, it consumes no bits from the seed stream at all:
// its output is a pure function of (Secret, Interval, Digits, Now()), per
// spec §4.2's description of OTP as keyed by the shared secret and the
// current time rather than by the account's seed.
//
// Per spec §9's open question on base32 strictness, decoding goes through
// otp.ParseKey (as creachadair/keyfish's internal/config.OTPKey.UnmarshalJSON
// does), which tolerates a missing or partial trailing '=' padding run
// rather than rejecting it, matching the permissive behavior later versions
// of the reference implementation adopted.
type OTP struct {
	Secret   string
	Interval time.Duration
	Digits   int
}

func (o OTP) Kind() Kind { return KindOTP }

// newOTP builds an OTP from loader-facing seconds/digit-count fields. It
// applies no defaults itself; Materialize treats a zero Interval as 30s and
// zero Digits as 6.
func newOTP(secret string, intervalSeconds, digits int) OTP {
	interval := time.Duration(intervalSeconds) * time.Second
	return OTP{Secret: secret, Interval: interval, Digits: digits}
}

func (o OTP) Materialize(env *Env) (string, error) {
	key, err := otp.ParseKey(o.Secret)
	if err != nil {
		return "", apperr.Wrap(apperr.BadRecipe, "", err, "otp: invalid base32 secret")
	}
	digits := o.Digits
	if digits == 0 {
		digits = 6
	}
	interval := o.Interval
	if interval == 0 {
		interval = 30 * time.Second
	}

	now := time.Now
	if env != nil && env.Now != nil {
		now = env.Now
	}

	cfg := otp.Config{
		Hash:     sha1.New,
		Digits:   digits,
		TimeStep: otp.TimeWindow(interval),
		Key:      string(key),
	}
	return cfg.TOTP(now()), nil
}

package account

import "github.com/passforge/passforge/core/apperr"

// NewStealth returns a stealth account template, per spec §3's "Stealth
// account: an account template with no stored account seed." masterSeed is
// the containing file's master seed if present, otherwise the caller should
// supply a process-wide user key instead (the glossary's "leaving no
// on-disk evidence that the account exists" — the account seed itself is
// never persisted for this kind of account).
func NewStealth(canonicalName, masterSeed string) *Account {
	acc := New(canonicalName)
	acc.MasterSeed = masterSeed
	acc.AccountSeed = ""
	acc.Stealth = true
	return acc
}

// ResolveStealthSeed binds a stealth account's account seed to an
// interactively supplied value, per spec's lookup-time prompting
// requirement. Calling it on a non-stealth account or one whose seed is
// already set is a programming error the caller should not trigger in
// practice, but is reported as apperr.BadPath rather than panicking.
func ResolveStealthSeed(acc *Account, seed string) error {
	if !acc.Stealth {
		return apperr.New(apperr.BadPath, acc.CanonicalName, "account is not a stealth account")
	}
	if acc.AccountSeed != "" {
		return apperr.New(apperr.BadPath, acc.CanonicalName, "stealth account seed already resolved")
	}
	if seed == "" {
		return apperr.New(apperr.BadPath, acc.CanonicalName, "stealth account seed must not be empty")
	}
	acc.AccountSeed = seed
	return nil
}

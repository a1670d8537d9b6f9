// Package apperr defines the error taxonomy shared across passforge's core
// packages. Every error surfaced by the engine carries a Kind (from the
// fixed set a caller can switch on), a human-readable message, and an
// optional culprit — a dotted account/field chain such as
// "bigbank.questions.1" — so a user can see both the root cause and what it
// was about without the engine ever needing to format a bespoke string per
// call site.
//
// The taxonomy favors a hand-rolled Kind enum with fmt.Errorf("...: %w", ...)
// wrapping over a third-party error-codes library: nothing in the reference
// corpus reaches for one, and the teacher itself wraps stdlib/yaml errors by
// hand throughout core/config.go and core/rules/loader.go.
package apperr

import (
	"errors"
	"fmt"
)

// Kind identifies the category of an Error. Callers switch on Kind (or use
// errors.Is against the Kind value directly, since Kind implements error)
// rather than matching on message text.
type Kind string

// The full error taxonomy. Kinds marked "warning" are non-fatal: they are
// logged and returned alongside a successful result rather than aborting
// the call that produced them.
const (
	UnknownAccount     Kind = "unknown_account"
	UnknownField       Kind = "unknown_field"
	CompositeNotScalar Kind = "composite_not_scalar"
	AmbiguousName      Kind = "ambiguous_name"

	MasterSeedMissing Kind = "master_seed_missing"
	SecretExhausted   Kind = "secret_exhausted"
	BadRecipe         Kind = "bad_recipe"
	BadScriptToken    Kind = "bad_script_token"
	BadPath           Kind = "bad_path"

	FilePermissionLoose Kind = "file_permission_loose" // warning
	ArchiveStale        Kind = "archive_stale"          // warning
	HashMismatch        Kind = "hash_mismatch"          // warning

	DecryptionFailed Kind = "decryption_failed"
	EncryptionFailed Kind = "encryption_failed"
	UserKeyMissing   Kind = "user_key_missing"

	NoAccountDiscovered Kind = "no_account_discovered"
	DiscoveryAmbiguous  Kind = "discovery_ambiguous"

	IOFailure Kind = "io_failure"
	Cancelled Kind = "cancelled"
)

// Error satisfies the built-in error interface and errors.Is/errors.As.
func (k Kind) Error() string { return string(k) }

// warningKinds are reported as warnings: logged, attached to a successful
// result, and never turned into a failed call on their own.
var warningKinds = map[Kind]bool{
	FilePermissionLoose: true,
	ArchiveStale:        true,
	HashMismatch:        true,
}

// IsWarning reports whether k is non-fatal by nature.
func (k Kind) IsWarning() bool { return warningKinds[k] }

// Error is the concrete error type returned by every passforge core
// operation that can fail in a taxonomy-classified way.
type Error struct {
	Kind    Kind
	Message string
	Culprit string // dotted account/field chain, e.g. "bigbank.questions.1"
	Err     error  // wrapped cause, if any
}

// Error renders "kind: message (culprit: x.y.z): cause".
func (e *Error) Error() string {
	s := fmt.Sprintf("%s: %s", e.Kind, e.Message)
	if e.Culprit != "" {
		s = fmt.Sprintf("%s (culprit: %s)", s, e.Culprit)
	}
	if e.Err != nil {
		s = fmt.Sprintf("%s: %v", s, e.Err)
	}
	return s
}

// Unwrap lets errors.Is/errors.As reach both the Kind sentinel and any
// wrapped cause.
func (e *Error) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}
	return []error{e.Kind}
}

// New builds an Error with no wrapped cause.
func New(kind Kind, culprit, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Culprit: culprit}
}

// Wrap builds an Error around an existing cause.
func Wrap(kind Kind, culprit string, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Culprit: culprit, Err: err}
}

// KindOf extracts the Kind from err if it is (or wraps) an *Error, and
// reports ok=false otherwise.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return "", false
}

// Is reports whether err carries the given Kind, at any wrapping depth.
func Is(err error, kind Kind) bool {
	return errors.Is(err, kind)
}

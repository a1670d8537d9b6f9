// Package obscure implements the field value variants of spec §4.3 that
// carry an encoded or encrypted payload and yield plaintext only when
// consulted: Hide, Hidden, GPG, and Scrypt. None of them touch the seed
// engine — unlike core/generator, an Obscurer's plaintext is already fixed
// at account-file-authoring time; opening it is a decode/decrypt, not a
// deterministic derivation.
//
// Dispatch mirrors core/generator's Build: a Kind tag plus a parameter
// bag core/loader fills in from a parsed account-file record, built into a
// concrete Obscurer by Build.
package obscure

import "github.com/passforge/passforge/core/apperr"

// Kind identifies an Obscurer's variant.
type Kind string

const (
	KindHide   Kind = "hide"
	KindHidden Kind = "hidden"
	KindGPG    Kind = "gpg"
	KindScrypt Kind = "scrypt"
)

// Env carries everything opening an Obscurer might need: a passphrase
// prompt (for GPG symmetric decryption), a keyring (for GPG public-key
// decryption), and a scrypt-derived user key (for Scrypt). Obscurers that
// don't need a given dependency simply never call it, the same style as
// core/generator.Env.
type Env struct {
	Prompt  func(prompt string) (string, error)
	GPG     Envelope
	UserKey func() ([]byte, error)
}

// Envelope is the subset of core/envelope's adapter that GPG needs, kept as
// an interface here to avoid a dependency cycle between core/obscure and
// core/envelope (which itself may, for nested values, need to re-parse a
// decrypted payload back through the account grammar).
type Envelope interface {
	Decrypt(ciphertext string, prompt func(string) (string, error)) (string, error)
}

// Obscurer yields its plaintext when opened, per spec §4.3: "all obscurers
// are opaque until consulted; consultation may prompt for a passphrase."
type Obscurer interface {
	Kind() Kind
	IsSecret() bool
	Open(env *Env) (string, error)
}

// Spec is the loader-facing, declarative description of an Obscurer.
type Spec struct {
	Kind       Kind   `yaml:"kind"`
	Plaintext  string `yaml:"plaintext,omitempty"`
	Secure     bool   `yaml:"secure,omitempty"`
	Encoded    string `yaml:"encoded,omitempty"`
	Encoding   string `yaml:"encoding,omitempty"`
	Ciphertext string `yaml:"ciphertext,omitempty"`
}

// Build constructs the concrete Obscurer named by s.Kind.
func Build(s Spec) (Obscurer, error) {
	switch s.Kind {
	case KindHide:
		return Hide{Plaintext: s.Plaintext, Secure: s.Secure}, nil
	case KindHidden:
		return Hidden{Encoded: s.Encoded, Encoding: s.Encoding}, nil
	case KindGPG:
		return GPG{Ciphertext: s.Ciphertext}, nil
	case KindScrypt:
		return Scrypt{Ciphertext: s.Ciphertext}, nil
	default:
		return nil, apperr.New(apperr.BadRecipe, "", "unknown obscurer kind %q", s.Kind)
	}
}

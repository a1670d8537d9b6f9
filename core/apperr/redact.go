package apperr

import "regexp"

const redactedPlaceholder = "[REDACTED]"

// Sanitizer scans rendered error/log text for patterns that look like
// accidentally-embedded secret material and replaces them before the text
// reaches a log sink or terminal. It is a defense-in-depth measure: the
// engine never deliberately places a generated secret's value into an error
// message, but a wrapped low-level error (from a decrypt or decode routine)
// can otherwise carry raw ciphertext or plaintext bytes through %v
// formatting.
//
// Adapted from plugin.Redactor, which performed the same scan-and-replace
// over plugin tool output; the patterns here are generalized from
// "well-known API token shapes" to "anything that looks like armored key
// material or a long high-entropy token", since passforge's secrets are
// user-defined passwords rather than fixed-format API keys.
type Sanitizer struct {
	patterns []*regexp.Regexp
}

// NewSanitizer returns a Sanitizer with passforge's default pattern set.
func NewSanitizer() *Sanitizer {
	return &Sanitizer{
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`-----BEGIN (PGP (MESSAGE|PRIVATE KEY BLOCK)|RSA PRIVATE KEY)-----[\s\S]*?-----END [A-Z ]+-----`),
			regexp.MustCompile(`(?i)(master_seed|account_seed|extra_seed|passphrase|user_key)\s*[=:]\s*\S{8,}`),
		},
	}
}

// Sanitize replaces every match of the Sanitizer's patterns in s with a
// fixed placeholder, returning the cleaned string and whether anything was
// redacted.
func (s *Sanitizer) Sanitize(text string) (string, bool) {
	result := text
	redacted := false
	for _, p := range s.patterns {
		if p.MatchString(result) {
			result = p.ReplaceAllString(result, redactedPlaceholder)
			redacted = true
		}
	}
	return result, redacted
}

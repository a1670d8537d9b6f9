// Package alphabet holds the named character sets and word list used by
// core/generator. The word list is embedded as a static asset, following
// the embed.FS pattern used by creachadair/keyfish's internal/config
// package to ship a default configuration alongside the binary — here
// repurposed to ship the default passphrase dictionary.
//
// Design Notes ("Cross-referenced wordlists") requires the dictionary to be
// byte-identical to a reference list so the determinism invariant holds
// across builds; wordlist.txt's SHA-256 digest is therefore checked by
// core/integrity against the `hashes` manifest at startup. It is the only
// asset that check receives.
package alphabet

import (
	_ "embed"
	"strings"
)

//go:embed wordlist.txt
var wordlistAsset string

// Wordlist returns the default passphrase dictionary, one word per line in
// the embedded asset, in file order. Callers must not mutate the result.
func Wordlist() []string {
	return defaultWordlist
}

var defaultWordlist = strings.Split(strings.TrimRight(wordlistAsset, "\n"), "\n")

// WordlistAsset exposes the raw embedded bytes for hashing by core/integrity.
func WordlistAsset() string { return wordlistAsset }

// Named character sets per spec §4.2's Alphabet/PasswordRecipe class
// vocabulary ("upper", "lower", "letter", "digit", "nopunct", "punct",
// "all", "chars:...").
const (
	upperChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	lowerChars = "abcdefghijklmnopqrstuvwxyz"
	digitChars = "0123456789"
	punctChars = `~!@#$%^&*()_+{}|:"<>?`

	// distinguishable omits characters that are easily confused when
	// displayed or typed (0/O, 1/l/I, etc).
	distinguishableChars = "abcdefghjkmnpqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ23456789"
)

// Named returns the character set for a well-known alphabet name, or the
// literal characters for a "chars:..." directive. Order is significant: for
// "chars:..." the returned string is exactly the literal suffix.
func Named(name string) (string, bool) {
	switch name {
	case "upper":
		return upperChars, true
	case "lower":
		return lowerChars, true
	case "letter":
		return upperChars + lowerChars, true
	case "digit":
		return digitChars, true
	case "nopunct":
		return upperChars + lowerChars + digitChars, true
	case "punct":
		return punctChars, true
	case "all":
		return upperChars + lowerChars + digitChars + punctChars, true
	case "DISTINGUISHABLE":
		return distinguishableChars, true
	}
	if strings.HasPrefix(name, "chars:") {
		return strings.TrimPrefix(name, "chars:"), true
	}
	return "", false
}

// Compose concatenates the character sets named in components, in order,
// exactly as spec §4.2 describes for Site.Alphabet: "Order is significant".
func Compose(components []string) (string, bool) {
	var b strings.Builder
	for _, c := range components {
		set, ok := Named(c)
		if !ok {
			return "", false
		}
		b.WriteString(set)
	}
	return b.String(), true
}

// IsUpper reports whether r belongs to the uppercase class.
func IsUpper(r rune) bool { return strings.ContainsRune(upperChars, r) }

// IsPunct reports whether r belongs to the punctuation class.
func IsPunct(r rune) bool { return strings.ContainsRune(punctChars, r) }

// IsDigit reports whether r belongs to the digit class.
func IsDigit(r rune) bool { return strings.ContainsRune(digitChars, r) }

// IsLower reports whether r belongs to the lowercase class.
func IsLower(r rune) bool { return strings.ContainsRune(lowerChars, r) }

// Digits is the default alphabet for the PIN generator.
const Digits = digitChars

// DefaultShiftedClass reports whether r is in the "shifted" character class
// used by shift-sort (spec §4.2): uppercase letters and the built-in
// punctuation set, i.e. characters that require holding Shift on a US
// keyboard layout.
func DefaultShiftedClass(r rune) bool {
	return IsUpper(r) || IsPunct(r)
}

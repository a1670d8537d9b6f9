// Package integrity verifies the "hashes" manifest spec §4.6 describes:
// a set of content digests over named assets, checked once at startup.
// core.Open supplies only the embedded wordlist as an asset; no digest of
// the generator implementations is computed. A mismatch is a loud,
// non-fatal warning (apperr.HashMismatch) — never a reason to abort, since
// the engine must still function for an upgrade that intentionally changed
// an asset.
//
// Digest/ParseDigest/ComputeDigest are adapted from
// registry/trust/digest.go's "algorithm:hex" content-addressing scheme,
// narrowed to the one algorithm (sha256) the teacher already used.
package integrity

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/passforge/passforge/core/apperr"
)

// Digest is a "sha256:<hex>" content digest.
type Digest struct {
	Algorithm string
	Hex       string
}

// String renders "algorithm:hex".
func (d Digest) String() string { return d.Algorithm + ":" + d.Hex }

// ParseDigest parses "algorithm:hex"; only "sha256" is supported.
func ParseDigest(s string) (Digest, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return Digest{}, fmt.Errorf("invalid digest format: missing algorithm prefix in %q", s)
	}
	alg, hexVal := parts[0], parts[1]
	if alg != "sha256" {
		return Digest{}, fmt.Errorf("unsupported digest algorithm: %q", alg)
	}
	if len(hexVal) != sha256.Size*2 {
		return Digest{}, fmt.Errorf("invalid sha256 hex length: got %d, want %d", len(hexVal), sha256.Size*2)
	}
	if _, err := hex.DecodeString(hexVal); err != nil {
		return Digest{}, fmt.Errorf("invalid hex in digest: %w", err)
	}
	return Digest{Algorithm: alg, Hex: strings.ToLower(hexVal)}, nil
}

// ComputeDigest computes the sha256 digest of data.
func ComputeDigest(data []byte) Digest {
	h := sha256.Sum256(data)
	return Digest{Algorithm: "sha256", Hex: hex.EncodeToString(h[:])}
}

// Manifest maps a named asset (e.g. "wordlist") to its
// expected digest string, loaded from the `hashes` file spec §9 describes.
type Manifest map[string]string

// Check compares the actual content of each named asset in assets against
// the expected digest recorded in m. It never returns a hard error for a
// mismatch: every failure is reported as an apperr.HashMismatch warning in
// the returned slice, per spec §4.6 ("a mismatch emits a loud warning but
// does not abort"). A malformed manifest entry is also reported as a
// warning rather than aborting the whole check.
func Check(m Manifest, assets map[string][]byte) []error {
	var warnings []error
	for name, content := range assets {
		expected, ok := m[name]
		if !ok {
			continue
		}
		want, err := ParseDigest(expected)
		if err != nil {
			warnings = append(warnings, apperr.Wrap(apperr.HashMismatch, name, err, "integrity: malformed manifest entry for %q", name))
			continue
		}
		got := ComputeDigest(content)
		if got.Hex != want.Hex {
			warnings = append(warnings, apperr.New(apperr.HashMismatch, name,
				"integrity: %s digest mismatch: manifest has %s, computed %s", name, want, got))
		}
	}
	return warnings
}

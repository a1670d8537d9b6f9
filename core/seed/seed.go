// Package seed implements the deterministic seed engine: given a tuple of
// seed parts (master seed, account seed, field name, optional key/version/
// extra seed), it produces a reproducible stream of uniformly distributed
// bits that every generator in core/generator draws from.
//
// There is no teacher analog for this package — Nox-HQ-nox has no
// deterministic-seed concept — so it is built fresh against spec §4.1,
// using only stdlib crypto/sha512: the primitive is small and precisely
// specified enough that a third-party wrapper would add indirection without
// adding capability.
package seed

import (
	"crypto/sha512"
	"encoding/binary"
	"math/bits"
	"strings"

	"github.com/passforge/passforge/core/apperr"
)

// separator joins canonicalized seed parts. It is a control character that
// cannot appear in any canonicalized part (parts are stripped of control
// characters during canonicalization), so concatenation is unambiguous:
// "a"+"bc" and "ab"+"c" never produce the same seed string.
const separator = "\x1f"

// Tuple is the canonical seed composition described in spec §4.1.
type Tuple struct {
	MasterSeed  string
	AccountSeed string
	FieldName   string
	Key         string // optional, for keyed fields (e.g. sequence/mapping entries)
	Version     string // optional, appended when a generator's algorithm version changes
	ExtraSeed   string // optional, supplied by the caller at invocation time
}

// Canonicalize lowercases s and strips ASCII control characters. Spec.md's
// Open Question about Unicode case folding is resolved here as ASCII-only,
// matching the original implementation's observed behavior (see
// DESIGN.md "Open Question decisions").
func Canonicalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r < 0x20 || r == 0x7f {
			continue
		}
		if r >= 'A' && r <= 'Z' {
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}

// fragment renders the canonical, separator-joined seed string that is fed
// to SHA-512. It is unexported, and the package publishes no hash of it.
func (t Tuple) fragment() string {
	parts := []string{
		Canonicalize(t.MasterSeed),
		Canonicalize(t.AccountSeed),
		Canonicalize(t.FieldName),
	}
	if t.Key != "" {
		parts = append(parts, Canonicalize(t.Key))
	}
	if t.Version != "" {
		parts = append(parts, Canonicalize(t.Version))
	}
	if t.ExtraSeed != "" {
		parts = append(parts, t.ExtraSeed) // extra seed is user-chosen, not identity, so not lowercased
	}
	return strings.Join(parts, separator)
}

// Stream is a reproducible source of uniformly distributed bits derived
// from a Tuple. It is not safe for concurrent use — matching the single-
// threaded cooperative scheduling model of spec §5.
type Stream struct {
	base    []byte
	counter uint64
	buf     []byte // unconsumed bytes from the most recent block
	bitBuf  uint64 // unconsumed bits, right-aligned, of the byte last taken from buf
	bitLen  int    // number of valid low bits in bitBuf
}

// New builds a Stream from tup. It fails with apperr.MasterSeedMissing when
// tup.MasterSeed is empty, matching spec §4.1's stated failure mode.
func New(tup Tuple) (*Stream, error) {
	if tup.MasterSeed == "" {
		return nil, apperr.New(apperr.MasterSeedMissing, tup.AccountSeed+"."+tup.FieldName,
			"no master seed in scope for field %q", tup.FieldName)
	}
	return &Stream{base: []byte(tup.fragment())}, nil
}

// nextBlock extends the stream with the next 64 bytes of SHA-512 output,
// mixing in a monotonically increasing 64-bit counter per spec §4.1.
func (s *Stream) nextBlock() {
	var ctr [8]byte
	binary.BigEndian.PutUint64(ctr[:], s.counter)
	s.counter++
	h := sha512.New()
	h.Write(s.base)
	h.Write(ctr[:])
	s.buf = append(s.buf, h.Sum(nil)...)
}

// Bits draws the next n bits (0 < n <= 32) from the stream as an unsigned
// integer, refilling the underlying SHA-512 block stream as needed.
func (s *Stream) Bits(n int) uint32 {
	if n <= 0 {
		return 0
	}
	var out uint32
	got := 0
	for got < n {
		if s.bitLen == 0 {
			if len(s.buf) == 0 {
				s.nextBlock()
			}
			s.bitBuf = uint64(s.buf[0])
			s.buf = s.buf[1:]
			s.bitLen = 8
		}
		take := n - got
		if take > s.bitLen {
			take = s.bitLen
		}
		chunk := s.bitBuf >> (s.bitLen - take)
		chunk &= (1 << take) - 1
		out = (out << take) | uint32(chunk)
		s.bitLen -= take
		got += take
	}
	return out
}

// BitsNeeded returns ceil(log2(n)) for n > 1, and 0 for n <= 1 — the number
// of bits required to draw a uniform value in [0, n) by rejection sampling.
func BitsNeeded(n int) int {
	if n <= 1 {
		return 0
	}
	return bits.Len(uint(n - 1))
}

// Intn draws a uniform integer in [0, n) using rejection sampling: bits are
// drawn in the smallest power-of-two range that covers n, and draws landing
// outside [0, n) are discarded and redrawn. This preserves uniformity
// exactly (spec's "Entropy preservation" invariant) at the cost of a
// variable, seed-dependent number of draws.
func (s *Stream) Intn(n int) int {
	if n <= 1 {
		return 0
	}
	need := BitsNeeded(n)
	for {
		v := s.Bits(need)
		if int(v) < n {
			return int(v)
		}
	}
}


// Package generator implements the family of deterministic secret
// generators described in spec §4.2: Password, Passphrase, PIN, Question,
// MixedPassword, PasswordRecipe, BirthDate, OTP, and WriteFile. Each
// generator is a pure function of a core/seed.Stream (plus, for OTP, wall
// clock time, and for WriteFile, a side-effect sink) — never of package-
// level state — so the same Env always reproduces the same secret.
//
// Dispatch is grounded on core/rules.RuleSet/Engine's "look one up by a
// short kind string" shape: Build (registry.go) plays the role RuleSet
// played for rule IDs, as a fixed switch over Kind rather than a set of
// registered declarative YAML records (spec §4.2 lists a
// small, fixed set of generator kinds, not an open/extensible rule set).
package generator

import (
	"github.com/passforge/passforge/core/apperr"
	"github.com/passforge/passforge/core/seed"
)

// DefaultBudgetBits is the number of fresh entropy bits a generator may
// draw from its seed stream before materialization fails with
// apperr.SecretExhausted, per spec §4.2.
const DefaultBudgetBits = 512

// Budget wraps a seed.Stream with a fixed entropy allowance and tracks how
// many bits have been drawn, so generators fail closed (SecretExhausted)
// instead of silently drawing from an exhausted or low-quality tail of the
// stream.
type Budget struct {
	stream    *seed.Stream
	bitsUsed  int
	bitsTotal int
	culprit   string
}

// NewBudget returns a Budget over stream with the default 512-bit
// allowance. culprit is used to build apperr.SecretExhausted's culprit
// chain if the budget is exceeded.
func NewBudget(stream *seed.Stream, culprit string) *Budget {
	return &Budget{stream: stream, bitsTotal: DefaultBudgetBits, culprit: culprit}
}

// Intn draws a uniform integer in [0, n) from the budgeted stream,
// consuming seed.BitsNeeded(n) bits of the allowance. It fails with
// apperr.SecretExhausted if the draw would exceed the remaining budget.
func (b *Budget) Intn(n int) (int, error) {
	if n <= 1 {
		return 0, nil
	}
	need := seed.BitsNeeded(n)
	if b.bitsUsed+need > b.bitsTotal {
		return 0, apperr.New(apperr.SecretExhausted, b.culprit,
			"generator requested %d bits but only %d of %d remain",
			need, b.bitsTotal-b.bitsUsed, b.bitsTotal)
	}
	// Intn itself may draw (and discard) more than `need` bits internally
	// via rejection sampling; only the nominal per-symbol cost is charged
	// against the budget, matching spec §4.2's "ceil(log2(|alphabet|)) bits
	// per symbol drawn" accounting rule rather than the stream's actual
	// (variable) rejection-sampling cost.
	b.bitsUsed += need
	return b.stream.Intn(n), nil
}

// Remaining reports how many entropy bits are left in the budget.
func (b *Budget) Remaining() int { return b.bitsTotal - b.bitsUsed }

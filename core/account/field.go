// Package account implements the account entity graph of spec §3: typed
// fields, dotted/bracket path lookup, canonical name resolution, default
// field resolution, credential resolution, field enumeration, and stealth
// accounts. Evaluation of a field's value follows the spec's own Design
// Notes guidance ("Lazy field evaluation under identity feedback"): a pure
// function of an Env, dispatched by a type switch over the Value variants,
// rather than per-type Evaluate methods — so the seed/account-identity
// inputs are always explicit and a test can fabricate them freely.
package account

import (
	"github.com/passforge/passforge/core/generator"
	"github.com/passforge/passforge/core/obscure"
)

// Value is the field-value ADT of spec §3: a constant, an ordered sequence,
// an ordered mapping, a generator, an obscurer, a script, or a write-file
// action. Implementations carry no behavior of their own; Evaluate
// interprets them.
type Value interface{ isValue() }

// Constant is a scalar string or integer, returned verbatim.
type Constant struct {
	Str   string
	Int   int64
	IsInt bool
}

func (Constant) isValue() {}

// ConstantString builds a string Constant.
func ConstantString(s string) Constant { return Constant{Str: s} }

// ConstantInt builds an integer Constant.
func ConstantInt(n int64) Constant { return Constant{Int: n, IsInt: true} }

// Native returns the constant's value as a string or int64.
func (c Constant) Native() any {
	if c.IsInt {
		return c.Int
	}
	return c.Str
}

// Sequence is an ordered list of values, indexed 0..len-1 in path lookups.
type Sequence []Value

func (Sequence) isValue() {}

// Mapping is an ordered string-keyed map of values.
type Mapping struct {
	keys   []string
	values map[string]Value
}

func (Mapping) isValue() {}

// NewMapping returns an empty ordered Mapping.
func NewMapping() *Mapping {
	return &Mapping{values: make(map[string]Value)}
}

// Set inserts or replaces the value at key, appending key to the key order
// the first time it's seen.
func (m *Mapping) Set(key string, v Value) {
	if _, exists := m.values[key]; !exists {
		m.keys = append(m.keys, key)
	}
	m.values[key] = v
}

// Get returns the value at key and whether it was present.
func (m *Mapping) Get(key string) (Value, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Keys returns the mapping's keys in insertion order.
func (m *Mapping) Keys() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Generated is a generator-backed field value, per spec §3's "parameterized
// by length and alphabet or dictionary; carry optional master override,
// optional version seed, optional shift_sort, optional string decorations."
type Generated struct {
	Spec generator.Spec
}

func (Generated) isValue() {}

// Obscured is an obscurer-backed field value.
type Obscured struct {
	Spec obscure.Spec
}

func (Obscured) isValue() {}

// Script is a template string with field-reference and control-token
// interpolation, interpreted lazily by core/script against the enclosing
// account (spec §4.5).
type Script struct {
	Template string
}

func (Script) isValue() {}

// WriteFile is a side-effecting field value: Content (any variant) is
// materialized first, then written to Path under Mode.
type WriteFile struct {
	Path    string
	Content Value
	Mode    uint32
}

func (WriteFile) isValue() {}

// IsSecretValue reports whether v's variant carries secret material, per
// spec §3's "is_secret" component of AccountValue. Generated fields are
// always secret; an Obscured field defers to its own Obscurer.IsSecret
// (Hide(secure=false) is the one obscurer that can say no); a composite
// value is secret if any of its elements are. Everything else (Constant,
// Script, WriteFile) is not.
func IsSecretValue(v Value) bool {
	switch val := v.(type) {
	case Generated:
		return true
	case Obscured:
		o, err := obscure.Build(val.Spec)
		if err != nil {
			return true
		}
		return o.IsSecret()
	case Sequence:
		for _, item := range val {
			if IsSecretValue(item) {
				return true
			}
		}
		return false
	case *Mapping:
		for _, k := range val.Keys() {
			item, _ := val.Get(k)
			if IsSecretValue(item) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

package account

import "strings"

// toolFields are field names excluded from enumeration (but accessible by
// explicit request), per spec §3: "tool fields (not shown in summaries)".
var toolFields = map[string]bool{
	"NAME": true, "aliases": true, "default": true, "default_url": true,
	"browser": true, "discovery": true, "master_seed": true,
	"account_seed": true, "credentials": true,
}

// Account is the entity of spec §3: an identity, an inherited-or-own master
// seed, an account seed (defaulting to the canonical name), and an ordered
// set of typed fields.
type Account struct {
	CanonicalName string
	NameOverride  string
	Aliases       []string
	MasterSeed    string
	AccountSeed   string
	Fields        *Mapping
	Stealth       bool
	HiddenFields  map[string]bool // from the `hidden_fields` setting

	// ExtraSeed is an optional per-lookup seed override supplied to
	// get_account (spec §4.10's "get_account(name, extra_seed?,
	// stealth_name?)"), folded into every field's seed tuple via Env so the
	// same account can be asked for an alternate universe of values without
	// touching its stored account_seed.
	ExtraSeed string
}

// New returns an Account whose AccountSeed defaults to canonicalName, per
// the glossary's "Account seed: per-account secondary seed, defaulting to
// the account's canonical name."
func New(canonicalName string) *Account {
	return &Account{
		CanonicalName: canonicalName,
		AccountSeed:   canonicalName,
		Fields:        NewMapping(),
	}
}

// CanonicalName folds name the way spec §4.4 requires for account/field name
// resolution: ASCII lowercase, with '-' and '_' treated as equivalent. Per
// spec §9's open question, this is deliberately ASCII-only, not Unicode
// case folding.
func CanonicalName(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r - 'A' + 'a')
		case r == '-':
			b.WriteRune('_')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// isToolField reports whether name is a tool field, excluded from
// enumeration by default, or starts with '_' (also excluded per spec §3).
func isToolField(name string) bool {
	return toolFields[name] || strings.HasPrefix(name, "_")
}

// isHidden reports whether name should be excluded from enumeration: either
// a built-in tool field, or configured via hidden_fields.
func (a *Account) isHidden(name string) bool {
	if isToolField(name) {
		return true
	}
	return a.HiddenFields[name]
}

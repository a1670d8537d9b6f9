// Package script implements the `{field}`/control-token interpolation
// language of spec §4.5: a template string executed against an account and
// a host Sink. Parsing walks the template once into a flat token list
// (grounded on core/rules/matcher.go's "compile once, match many" idiom —
// here there's nothing to compile ahead of time since the grammar is a
// single delimiter pair, but the same "parse once, execute repeatedly"
// shape applies: Parse is called once per script, Execute may run many
// times against different accounts/environments).
package script

import "github.com/passforge/passforge/core/apperr"

// Context distinguishes where a script runs: discovery scripts (typed by a
// host automation) support pacing/notification tokens that a plain field
// lookup never would, per spec §4.5's "Valid contexts" column.
type Context int

const (
	ContextGeneral Context = iota
	ContextDiscovery
)

// TokenKind identifies one parsed unit of a script.
type TokenKind int

const (
	KindLiteral TokenKind = iota
	KindFieldRef
	KindTab
	KindReturn
	KindSleep
	KindRate
	KindRemind
	KindPaste
)

// Token is one parsed unit of a script template.
type Token struct {
	Kind  TokenKind
	Text  string  // literal text, field path, or remind message
	Float float64 // sleep seconds
	Int   int     // rate ms-per-char
}

// discoveryOnly reports whether kind may only appear in a discovery script.
func discoveryOnly(kind TokenKind) bool {
	switch kind {
	case KindSleep, KindRate, KindRemind, KindPaste:
		return true
	default:
		return false
	}
}

// checkContext validates a token against ctx, per spec §4.5's context
// table, returning apperr.BadScriptToken if it's used somewhere it
// shouldn't be.
func checkContext(tok Token, ctx Context) error {
	if discoveryOnly(tok.Kind) && ctx != ContextDiscovery {
		return apperr.New(apperr.BadScriptToken, "", "token %q is only valid in discovery scripts", tok.Text)
	}
	return nil
}

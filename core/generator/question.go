package generator

import "github.com/passforge/passforge/core/alphabet"

// Question models a security question. If Answer is set, it is returned
// literally with zero seed consumption (spec §4.2: a fixed real answer
// bypasses the generator entirely). Otherwise it behaves like Passphrase
// over Wordlist/Sep — core/account.Evaluate folds Text (lowercased) into the
// seed tuple's Key component before building the stream, so two different
// questions never draw the same words even with an otherwise identical
// account/field path; this generator never touches Text itself, it only
// carries it for display.
type Question struct {
	Text     string
	Answer   string
	Length   int
	Wordlist []string
	Sep      string
}

func (q Question) Kind() Kind { return KindQuestion }

func (q Question) Materialize(env *Env) (string, error) {
	if q.Answer != "" {
		return q.Answer, nil
	}
	length := q.Length
	if length <= 0 {
		length = 3
	}
	words := q.Wordlist
	if words == nil {
		words = alphabet.Wordlist()
	}
	pp := Passphrase{Wordlist: words, Length: length, Sep: q.Sep}
	return pp.Materialize(env)
}

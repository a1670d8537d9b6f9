package generator

import (
	"strings"

	"github.com/passforge/passforge/core/alphabet"
	"github.com/passforge/passforge/core/apperr"
)

// Password draws Length symbols from Alphabet, optionally shift-sorts them
// (spec §4.2's "group shifted characters at the end, stable order"), and
// joins them with Sep, wrapped by Prefix/Suffix.
type Password struct {
	Alphabet  string
	Length    int
	ShiftSort bool
	Prefix    string
	Suffix    string
	Sep       string
}

func (p Password) Kind() Kind { return KindPassword }

func (p Password) Materialize(env *Env) (string, error) {
	set := p.Alphabet
	if set == "" {
		var ok bool
		set, ok = alphabet.Named("DISTINGUISHABLE")
		if !ok {
			return "", apperr.New(apperr.BadRecipe, "", "default alphabet DISTINGUISHABLE not found")
		}
	}
	runes := []rune(set)
	if len(runes) == 0 {
		return "", apperr.New(apperr.BadRecipe, "", "password alphabet is empty")
	}
	length := p.Length
	if length <= 0 {
		length = 1
	}

	drawn := make([]rune, length)
	for i := 0; i < length; i++ {
		idx, err := env.Budget.Intn(len(runes))
		if err != nil {
			return "", err
		}
		drawn[i] = runes[idx]
	}

	if p.ShiftSort {
		drawn = shiftSort(drawn)
	}

	var b strings.Builder
	b.WriteString(p.Prefix)
	for i, r := range drawn {
		if i > 0 {
			b.WriteString(p.Sep)
		}
		b.WriteRune(r)
	}
	b.WriteString(p.Suffix)
	return b.String(), nil
}

package generator

import (
	"strings"

	"github.com/passforge/passforge/core/alphabet"
	"github.com/passforge/passforge/core/apperr"
)

// PIN draws Length digits from Digits (default "0123456789") and
// concatenates them with no separator, per spec §8's worked example (a
// 4-digit PIN).
type PIN struct {
	Digits string
	Length int
}

func (p PIN) Kind() Kind { return KindPIN }

func (p PIN) Materialize(env *Env) (string, error) {
	digits := p.Digits
	if digits == "" {
		digits = alphabet.Digits
	}
	if len(digits) == 0 {
		return "", apperr.New(apperr.BadRecipe, "", "pin digit alphabet is empty")
	}
	length := p.Length
	if length <= 0 {
		length = 4
	}
	runes := []rune(digits)

	var b strings.Builder
	for i := 0; i < length; i++ {
		idx, err := env.Budget.Intn(len(runes))
		if err != nil {
			return "", err
		}
		b.WriteRune(runes[idx])
	}
	return b.String(), nil
}

package generator

import (
	"strings"

	"github.com/passforge/passforge/core/alphabet"
	"github.com/passforge/passforge/core/apperr"
)

// Passphrase draws Length words from Wordlist (default: alphabet.Wordlist())
// and joins them with Sep (default " ").
type Passphrase struct {
	Wordlist []string
	Length   int
	Sep      string
}

func (p Passphrase) Kind() Kind { return KindPassphrase }

func (p Passphrase) Materialize(env *Env) (string, error) {
	words := p.Wordlist
	if words == nil {
		words = alphabet.Wordlist()
	}
	if len(words) == 0 {
		return "", apperr.New(apperr.BadRecipe, "", "passphrase wordlist is empty")
	}
	length := p.Length
	if length <= 0 {
		length = 1
	}
	sep := p.Sep
	if sep == "" {
		sep = " "
	}

	picked := make([]string, length)
	for i := 0; i < length; i++ {
		idx, err := env.Budget.Intn(len(words))
		if err != nil {
			return "", err
		}
		picked[i] = words[idx]
	}
	return strings.Join(picked, sep), nil
}

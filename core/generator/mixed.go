package generator

import (
	"strings"

	"github.com/passforge/passforge/core/apperr"
)

// AlphabetCount requires Count characters from Alphabet in the final
// MixedPassword output.
type AlphabetCount struct {
	Alphabet string `yaml:"alphabet"`
	Count    int    `yaml:"count"`
}

// MixedPassword draws Count characters from each of Groups' alphabets, fills
// any remaining Length characters from DefAlphabet (default: the union of
// all group alphabets, deduplicated), and shuffles the result with a
// seed-driven Fisher-Yates pass so group membership isn't positionally
// revealed.
type MixedPassword struct {
	Groups      []AlphabetCount
	Length      int
	DefAlphabet string
}

func (m MixedPassword) Kind() Kind { return KindMixedPassword }

func (m MixedPassword) Materialize(env *Env) (string, error) {
	required := 0
	for _, g := range m.Groups {
		required += g.Count
	}
	length := m.Length
	if length < required {
		length = required
	}

	out := make([]rune, 0, length)
	for _, g := range m.Groups {
		runes := []rune(g.Alphabet)
		if len(runes) == 0 {
			return "", apperr.New(apperr.BadRecipe, "", "mixed_password group alphabet is empty")
		}
		for i := 0; i < g.Count; i++ {
			idx, err := env.Budget.Intn(len(runes))
			if err != nil {
				return "", err
			}
			out = append(out, runes[idx])
		}
	}

	remainder := length - len(out)
	if remainder > 0 {
		fill := m.DefAlphabet
		if fill == "" {
			fill = unionAlphabet(m.Groups)
		}
		runes := []rune(fill)
		if len(runes) == 0 {
			return "", apperr.New(apperr.BadRecipe, "", "mixed_password has no fill alphabet for remaining length")
		}
		for i := 0; i < remainder; i++ {
			idx, err := env.Budget.Intn(len(runes))
			if err != nil {
				return "", err
			}
			out = append(out, runes[idx])
		}
	}

	if err := fisherYatesShuffle(out, env); err != nil {
		return "", err
	}
	return string(out), nil
}

// unionAlphabet concatenates each group's alphabet once, in first-seen
// character order, for use as the default fill alphabet.
func unionAlphabet(groups []AlphabetCount) string {
	seen := make(map[rune]bool)
	var b strings.Builder
	for _, g := range groups {
		for _, r := range g.Alphabet {
			if !seen[r] {
				seen[r] = true
				b.WriteRune(r)
			}
		}
	}
	return b.String()
}

// fisherYatesShuffle permutes symbols in place using budgeted seed draws, so
// the shuffle itself is reproducible from the same seed tuple.
func fisherYatesShuffle(symbols []rune, env *Env) error {
	for i := len(symbols) - 1; i > 0; i-- {
		j, err := env.Budget.Intn(i + 1)
		if err != nil {
			return err
		}
		symbols[i], symbols[j] = symbols[j], symbols[i]
	}
	return nil
}

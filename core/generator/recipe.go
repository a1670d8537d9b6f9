package generator

import (
	"strconv"
	"strings"

	"github.com/passforge/passforge/core/alphabet"
	"github.com/passforge/passforge/core/apperr"
)

// PasswordRecipe parses a string of the form "L [N]l [N]u [N]d [N]s
// [N]c<chars>" (per spec §4.2 / §8 worked example "12 2u 2d 2s"): a total
// length, followed by optional minimum-count tokens for lowercase (l),
// uppercase (u), digit (d), symbol (s), and literal-character (c<chars>)
// classes. Required characters are drawn first, the remainder is filled
// from DefAlphabet (default: letter+digit+punct), and the whole string is
// shuffled with a seed-driven Fisher-Yates pass so the required characters
// don't land in predictable positions.
type PasswordRecipe struct {
	Recipe      string
	DefAlphabet string
}

func (p PasswordRecipe) Kind() Kind { return KindPasswordRecipe }

type recipeToken struct {
	alphabet string
	count    int
}

func parseRecipe(recipe string) (length int, tokens []recipeToken, err error) {
	fields := strings.Fields(recipe)
	if len(fields) == 0 {
		return 0, nil, apperr.New(apperr.BadRecipe, "", "empty password recipe")
	}
	length, convErr := strconv.Atoi(fields[0])
	if convErr != nil || length <= 0 {
		return 0, nil, apperr.New(apperr.BadRecipe, "", "recipe %q: first token must be a positive length", recipe)
	}

	for _, f := range fields[1:] {
		i := 0
		for i < len(f) && f[i] >= '0' && f[i] <= '9' {
			i++
		}
		count := 1
		if i > 0 {
			count, _ = strconv.Atoi(f[:i])
		}
		if i >= len(f) {
			return 0, nil, apperr.New(apperr.BadRecipe, "", "recipe %q: malformed token %q", recipe, f)
		}
		class := f[i]
		var set string
		switch class {
		case 'l':
			set, _ = alphabet.Named("lower")
		case 'u':
			set, _ = alphabet.Named("upper")
		case 'd':
			set, _ = alphabet.Named("digit")
		case 's':
			set, _ = alphabet.Named("punct")
		case 'c':
			set = f[i+1:]
			if set == "" {
				return 0, nil, apperr.New(apperr.BadRecipe, "", "recipe %q: empty literal class in %q", recipe, f)
			}
		default:
			return 0, nil, apperr.New(apperr.BadRecipe, "", "recipe %q: unknown class %q", recipe, string(class))
		}
		tokens = append(tokens, recipeToken{alphabet: set, count: count})
	}
	return length, tokens, nil
}

func (p PasswordRecipe) Materialize(env *Env) (string, error) {
	length, tokens, err := parseRecipe(p.Recipe)
	if err != nil {
		return "", err
	}

	required := 0
	for _, tok := range tokens {
		required += tok.count
	}
	if required > length {
		return "", apperr.New(apperr.BadRecipe, "",
			"recipe %q: required class counts (%d) exceed total length (%d)", p.Recipe, required, length)
	}

	out := make([]rune, 0, length)
	for _, tok := range tokens {
		runes := []rune(tok.alphabet)
		for i := 0; i < tok.count; i++ {
			idx, err := env.Budget.Intn(len(runes))
			if err != nil {
				return "", err
			}
			out = append(out, runes[idx])
		}
	}

	fillAlphabet := p.DefAlphabet
	if fillAlphabet == "" {
		fillAlphabet, _ = alphabet.Named("all")
	}
	fillRunes := []rune(fillAlphabet)
	for len(out) < length {
		idx, err := env.Budget.Intn(len(fillRunes))
		if err != nil {
			return "", err
		}
		out = append(out, fillRunes[idx])
	}

	if err := fisherYatesShuffle(out, env); err != nil {
		return "", err
	}
	return string(out), nil
}

package script

import (
	"strconv"
	"strings"

	"github.com/passforge/passforge/core/apperr"
)

// Parse splits template into a flat token list. Placeholders are delimited
// by `{` and `}`; everything else is literal text emitted verbatim. A
// placeholder body that parses as one of the known control tokens ("tab",
// "return", "sleep N", "rate N", "remind msg", "paste") becomes that
// token; anything else is treated as a field-reference path.
func Parse(template string) ([]Token, error) {
	var tokens []Token
	var literal strings.Builder

	flushLiteral := func() {
		if literal.Len() > 0 {
			tokens = append(tokens, Token{Kind: KindLiteral, Text: literal.String()})
			literal.Reset()
		}
	}

	i := 0
	for i < len(template) {
		c := template[i]
		if c == '{' {
			end := strings.IndexByte(template[i+1:], '}')
			if end == -1 {
				return nil, apperr.New(apperr.BadScriptToken, "", "unterminated placeholder starting at byte %d", i)
			}
			body := template[i+1 : i+1+end]
			flushLiteral()
			tok, err := parsePlaceholder(body)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, tok)
			i = i + 1 + end + 1
			continue
		}
		literal.WriteByte(c)
		i++
	}
	flushLiteral()
	return tokens, nil
}

func parsePlaceholder(body string) (Token, error) {
	trimmed := strings.TrimSpace(body)
	switch {
	case trimmed == "tab":
		return Token{Kind: KindTab}, nil
	case trimmed == "return":
		return Token{Kind: KindReturn}, nil
	case trimmed == "paste":
		return Token{Kind: KindPaste}, nil
	case strings.HasPrefix(trimmed, "sleep "):
		n, err := strconv.ParseFloat(strings.TrimSpace(trimmed[len("sleep "):]), 64)
		if err != nil {
			return Token{}, apperr.New(apperr.BadScriptToken, "", "bad sleep duration in %q", body)
		}
		return Token{Kind: KindSleep, Float: n}, nil
	case strings.HasPrefix(trimmed, "rate "):
		n, err := strconv.Atoi(strings.TrimSpace(trimmed[len("rate "):]))
		if err != nil {
			return Token{}, apperr.New(apperr.BadScriptToken, "", "bad rate value in %q", body)
		}
		return Token{Kind: KindRate, Int: n}, nil
	case strings.HasPrefix(trimmed, "remind "):
		return Token{Kind: KindRemind, Text: strings.TrimSpace(trimmed[len("remind "):])}, nil
	case trimmed == "":
		return Token{}, apperr.New(apperr.BadScriptToken, "", "empty placeholder {}")
	default:
		// A field-reference path never contains whitespace; anything that
		// does but didn't match a known control-token prefix above is an
		// unrecognized token, not a path. core/account.ParsePath validates
		// the path shape itself at execution time, not here, since a
		// malformed path is a BadPath, not a BadScriptToken.
		if strings.ContainsAny(trimmed, " \t") {
			return Token{}, apperr.New(apperr.BadScriptToken, "", "unknown script token %q", body)
		}
		return Token{Kind: KindFieldRef, Text: trimmed}, nil
	}
}

package core

import (
	"strings"
	"sync"
	"unicode"

	"github.com/passforge/passforge/core/alphabet"
)

// digitNames spells out the ten digits for phonetic rendering, since no
// wordlist entry can stand in for them the way a letter can.
var digitNames = [10]string{
	"zero", "one", "two", "three", "four", "five", "six", "seven", "eight", "nine",
}

var (
	letterWordsOnce sync.Once
	letterWords     [26]string
)

// buildLetterWords picks, for each letter a-z, the first wordlist entry
// that begins with it, so phonetic rendering is itself deterministic and
// reproducible across runs (the same wordlist asset core/integrity checks
// at startup).
func buildLetterWords() {
	for _, word := range alphabet.Wordlist() {
		if word == "" {
			continue
		}
		idx := int(unicode.ToLower(rune(word[0]))) - 'a'
		if idx < 0 || idx > 25 {
			continue
		}
		if letterWords[idx] == "" {
			letterWords[idx] = word
		}
	}
}

// RenderPhonetic renders text as a sequence of phonetic words, one token
// per character, per spec §4.10's "render_phonetic(text) -> phonetic
// words": a reading aid for a generated secret that avoids ambiguous
// letter names ("B as in bravo") entirely by spelling each letter as a
// dictionary word instead of a NATO-style code name. Letters map to a
// wordlist entry starting with that letter; digits map to their spelled-out
// name; anything else renders as its literal rune.
func RenderPhonetic(text string) []string {
	letterWordsOnce.Do(buildLetterWords)

	out := make([]string, 0, len(text))
	for _, r := range text {
		switch {
		case r >= 'a' && r <= 'z':
			out = append(out, wordFor(r))
		case r >= 'A' && r <= 'Z':
			out = append(out, strings.ToUpper(wordFor(unicode.ToLower(r))))
		case r >= '0' && r <= '9':
			out = append(out, digitNames[r-'0'])
		default:
			out = append(out, string(r))
		}
	}
	return out
}

func wordFor(r rune) string {
	idx := int(r) - 'a'
	if idx < 0 || idx > 25 || letterWords[idx] == "" {
		return string(r)
	}
	return letterWords[idx]
}

// RenderPhonetic is also exposed as a Generator method so callers holding
// a handle never need to import core/alphabet themselves, matching every
// other spec §4.10 operation's shape.
func (g *Generator) RenderPhonetic(text string) []string {
	return RenderPhonetic(text)
}

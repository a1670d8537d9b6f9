package generator

import "github.com/passforge/passforge/core/alphabet"

// shiftSort stably reorders symbols so that characters in the "shifted"
// class (uppercase letters and the built-in punctuation set — the
// characters that require holding Shift on a US keyboard, per spec §4.2)
// move to the end, while the relative order of symbols within each class
// (shifted, unshifted) is preserved. This lets an auto-typer emit the
// unshifted run first and the shifted run second without needing per-
// character modifier state changes mid-string.
func shiftSort(symbols []rune) []rune {
	out := make([]rune, 0, len(symbols))
	var shifted []rune
	for _, r := range symbols {
		if alphabet.DefaultShiftedClass(r) {
			shifted = append(shifted, r)
		} else {
			out = append(out, r)
		}
	}
	return append(out, shifted...)
}

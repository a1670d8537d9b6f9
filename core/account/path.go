package account

import (
	"strconv"
	"strings"

	"github.com/passforge/passforge/core/apperr"
)

// ParsePath splits a dotted/bracket path such as "a.b.0" or "a[b][0]" or
// "a .b. 0" (after trim) into its ordered segments, per spec §4.4's path
// equivalence invariant. Bracket notation is normalized to dot notation
// before splitting, so "a[b][0]" and "a.b.0" parse identically.
func ParsePath(path string) ([]string, error) {
	normalized := strings.NewReplacer("[", ".", "]", "").Replace(path)
	rawSegments := strings.Split(normalized, ".")

	segments := make([]string, 0, len(rawSegments))
	for _, s := range rawSegments {
		trimmed := strings.TrimSpace(s)
		if trimmed == "" {
			continue
		}
		segments = append(segments, trimmed)
	}
	if len(segments) == 0 {
		return nil, apperr.New(apperr.BadPath, path, "empty path")
	}
	return segments, nil
}

// navigate descends into v following segments (all but the first, which
// names the top-level field and is consumed by the caller). Sequence
// segments must parse as a non-negative integer index; Mapping segments are
// looked up by key.
func navigate(v Value, segments []string, culprit string) (Value, error) {
	cur := v
	for _, seg := range segments {
		switch c := cur.(type) {
		case Sequence:
			idx, err := strconv.Atoi(seg)
			if err != nil || idx < 0 || idx >= len(c) {
				return nil, apperr.New(apperr.BadPath, culprit, "index %q out of range for sequence of length %d", seg, len(c))
			}
			cur = c[idx]
		case *Mapping:
			next, ok := c.Get(seg)
			if !ok {
				return nil, apperr.New(apperr.BadPath, culprit, "key %q not found in mapping", seg)
			}
			cur = next
		default:
			return nil, apperr.New(apperr.BadPath, culprit, "cannot descend into scalar at %q", seg)
		}
	}
	return cur, nil
}

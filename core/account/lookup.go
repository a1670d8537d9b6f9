package account

import (
	"strconv"

	"github.com/passforge/passforge/core/apperr"
)

// fieldRef names a scalar or composite field by its (possibly nested)
// dotted path, along with the top-level field's Value for navigation.
type fieldRef struct {
	topName string
	rest    []string
	value   Value
}

// resolveRef looks up path's top-level segment in a.Fields and returns the
// remaining segments plus the top-level Value, ready for navigate.
func (a *Account) resolveRef(path string) (fieldRef, error) {
	segments, err := ParsePath(path)
	if err != nil {
		return fieldRef{}, err
	}
	top := segments[0]
	v, ok := a.Fields.Get(top)
	if !ok {
		return fieldRef{}, apperr.New(apperr.UnknownField, a.CanonicalName+"."+path, "no such field %q", top)
	}
	return fieldRef{topName: top, rest: segments[1:], value: v}, nil
}

// FieldValue returns the raw, unevaluated Value path resolves to, without
// materializing it. Callers that need to classify a field ahead of
// evaluating it (e.g. core.Generator.GetValue building an AccountValue's
// IsSecret flag) use this instead of GetValue/GetComposite.
func FieldValue(a *Account, path string) (Value, error) {
	ref, err := a.resolveRef(path)
	if err != nil {
		return nil, err
	}
	return navigate(ref.value, ref.rest, a.CanonicalName+"."+path)
}

// GetValue resolves path (e.g. "a.b.0" or "a[b][0]") to its evaluated
// scalar value. Fails with apperr.CompositeNotScalar if path names a
// sequence or mapping, and apperr.UnknownField/apperr.BadPath for a
// nonexistent field or path.
func GetValue(env Env, a *Account, path string) (any, error) {
	ref, err := a.resolveRef(path)
	if err != nil {
		return nil, err
	}
	target, err := navigate(ref.value, ref.rest, a.CanonicalName+"."+path)
	if err != nil {
		return nil, err
	}
	env.FieldPath = path
	result, err := Evaluate(env, target)
	if err != nil {
		return nil, err
	}
	switch result.(type) {
	case []any, map[string]any:
		return nil, apperr.New(apperr.CompositeNotScalar, a.CanonicalName+"."+path, "path %q names a composite value, not a scalar", path)
	}
	return result, nil
}

// GetComposite resolves name to its fully evaluated subtree (scalar, slice,
// or map), without requiring the result to be a scalar.
func GetComposite(env Env, a *Account, path string) (any, error) {
	ref, err := a.resolveRef(path)
	if err != nil {
		return nil, err
	}
	target, err := navigate(ref.value, ref.rest, a.CanonicalName+"."+path)
	if err != nil {
		return nil, err
	}
	env.FieldPath = path
	return Evaluate(env, target)
}

// defaultFieldCandidates is the fallback chain spec §4.4 names for the
// `default` field when it's absent.
var defaultFieldCandidates = []string{"passcode", "password", "passphrase"}

// DefaultFieldName returns the field name (or literal script string) the
// account's `default` field resolves to; without a usable `default` field it
// returns the first name in candidates that exists (defaultFieldCandidates
// when candidates is nil), per spec §4.4.
func (a *Account) DefaultFieldName(candidates []string) (string, error) {
	if v, ok := a.Fields.Get("default"); ok {
		if s, ok := v.(Script); ok {
			return s.Template, nil
		}
		if c, ok := v.(Constant); ok && !c.IsInt {
			return c.Str, nil
		}
	}
	chain := candidates
	if chain == nil {
		chain = defaultFieldCandidates
	}
	for _, name := range chain {
		if _, ok := a.Fields.Get(name); ok {
			return name, nil
		}
	}
	return "", apperr.New(apperr.UnknownField, a.CanonicalName, "no default field and none of %v exist", chain)
}

// Credentials returns the (id path, secret path) pair for the account,
// either from an explicit `credentials` field (a two-element sequence of
// field paths) or the first existing pair from idCandidates/secretCandidates
// (e.g. credential_ids/credential_secrets settings), per spec §4.4.
func (a *Account) Credentials(idCandidates, secretCandidates []string) (idPath, secretPath string, err error) {
	if v, ok := a.Fields.Get("credentials"); ok {
		if seq, ok := v.(Sequence); ok && len(seq) == 2 {
			idC, idOK := seq[0].(Constant)
			secC, secOK := seq[1].(Constant)
			if idOK && secOK && !idC.IsInt && !secC.IsInt {
				return idC.Str, secC.Str, nil
			}
		}
		return "", "", apperr.New(apperr.BadPath, a.CanonicalName, "credentials field must be a 2-element sequence of field names")
	}
	id, idErr := firstExisting(a, idCandidates)
	if idErr != nil {
		return "", "", idErr
	}
	secret, secErr := firstExisting(a, secretCandidates)
	if secErr != nil {
		return "", "", secErr
	}
	return id, secret, nil
}

func firstExisting(a *Account, candidates []string) (string, error) {
	for _, name := range candidates {
		if _, ok := a.Fields.Get(name); ok {
			return name, nil
		}
	}
	return "", apperr.New(apperr.UnknownField, a.CanonicalName, "none of %v exist", candidates)
}

// FieldSummary is one entry of field enumeration: a name, plus its
// composite keys (nil for a scalar field).
type FieldSummary struct {
	Name string
	Keys []string
}

// Enumerate yields (name, keys) for every non-hidden field, in declaration
// order, per spec §4.4: "keys == [None] for scalars, else the ordered
// keys." Hidden tool fields, fields starting with '_', and configured
// hidden_fields are excluded, but remain reachable via explicit GetValue.
func (a *Account) Enumerate() []FieldSummary {
	var out []FieldSummary
	for _, name := range a.Fields.Keys() {
		if a.isHidden(name) {
			continue
		}
		v, _ := a.Fields.Get(name)
		out = append(out, FieldSummary{Name: name, Keys: compositeKeys(v)})
	}
	return out
}

func compositeKeys(v Value) []string {
	switch c := v.(type) {
	case Sequence:
		keys := make([]string, len(c))
		for i := range c {
			keys[i] = strconv.Itoa(i)
		}
		return keys
	case *Mapping:
		return c.Keys()
	default:
		return nil
	}
}


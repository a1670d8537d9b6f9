package account

import "github.com/passforge/passforge/core/apperr"

// Registry indexes a set of loaded accounts by canonical name and alias,
// per spec §4.4's name resolution ("account lookup accepts a canonical
// name or alias... exact matches dominate; on ambiguity, the loader reports
// duplicates at load time").
type Registry struct {
	byName  map[string]*Account
	byAlias map[string]*Account
	order   []*Account
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]*Account), byAlias: make(map[string]*Account)}
}

// Add registers acc under its canonical name and each of its aliases.
// A duplicate canonical name is a hard error (the loader must reject it);
// a duplicate alias is reported separately by Add's second return value so
// callers can downgrade it to a warning, per spec §4.6.
func (r *Registry) Add(acc *Account) (aliasWarnings []string, err error) {
	key := CanonicalName(acc.CanonicalName)
	if existing, ok := r.byName[key]; ok {
		return nil, apperr.New(apperr.AmbiguousName, acc.CanonicalName,
			"duplicate account name %q (already defined)", existing.CanonicalName)
	}
	r.byName[key] = acc
	r.order = append(r.order, acc)

	for _, alias := range acc.Aliases {
		aliasKey := CanonicalName(alias)
		if _, ok := r.byAlias[aliasKey]; ok {
			aliasWarnings = append(aliasWarnings, alias)
			continue
		}
		if _, ok := r.byName[aliasKey]; ok {
			aliasWarnings = append(aliasWarnings, alias)
			continue
		}
		r.byAlias[aliasKey] = acc
	}
	return aliasWarnings, nil
}

// Lookup resolves name (canonical name or alias) to its Account. Matching
// is case-insensitive with '_'/'-' equivalence (CanonicalName); an exact
// canonical-name match always wins over an alias match.
func (r *Registry) Lookup(name string) (*Account, error) {
	key := CanonicalName(name)
	if acc, ok := r.byName[key]; ok {
		return acc, nil
	}
	if acc, ok := r.byAlias[key]; ok {
		return acc, nil
	}
	return nil, apperr.New(apperr.UnknownAccount, name, "no account named or aliased %q", name)
}

// All returns every registered account in load order.
func (r *Registry) All() []*Account {
	out := make([]*Account, len(r.order))
	copy(out, r.order)
	return out
}

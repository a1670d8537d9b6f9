package core

// AccountValue is what the public facade returns for a field lookup, per
// spec §3: "{ value, is_secret, name, key, field, description }". Value is
// the materialized result (scalar, slice, or map, depending on which of
// GetValue/GetComposite produced it); Name is the account's canonical name;
// Key is the top-level field name the path started at; Field is the full
// requested path; Description is reserved for a future free-text field
// annotation the account model does not yet carry, and is always empty.
type AccountValue struct {
	Value       any
	IsSecret    bool
	Name        string
	Key         string
	Field       string
	Description string
}

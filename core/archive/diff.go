package archive

import (
	"reflect"
	"sort"
)

// FieldChange is one field whose materialized value differs between two
// archives.
type FieldChange struct {
	Field string
	Old   any
	New   any
}

// Changes is the structural diff spec §4.8's "changed" operation reports:
// accounts added/removed wholesale, and per-account field additions,
// removals, and value changes. Fields named in dynamicFields (the
// `dynamic_fields` setting) never appear here even if their materialized
// value differs, since they're expected to change every run.
type Changes struct {
	AddedAccounts   []string
	RemovedAccounts []string
	AddedFields     map[string][]string
	RemovedFields   map[string][]string
	ChangedFields   map[string][]FieldChange
}

// IsEmpty reports whether the diff found nothing to report.
func (c Changes) IsEmpty() bool {
	return len(c.AddedAccounts) == 0 && len(c.RemovedAccounts) == 0 &&
		len(c.AddedFields) == 0 && len(c.RemovedFields) == 0 && len(c.ChangedFields) == 0
}

// Diff structurally compares curr against prev, excluding any field named
// in dynamicFields from per-field comparison (an account's wholesale
// addition/removal is still reported regardless of which fields it has).
func Diff(prev, curr *Dump, dynamicFields map[string]bool) Changes {
	changes := Changes{
		AddedFields:   make(map[string][]string),
		RemovedFields: make(map[string][]string),
		ChangedFields: make(map[string][]FieldChange),
	}

	for name := range curr.Accounts {
		if _, ok := prev.Accounts[name]; !ok {
			changes.AddedAccounts = append(changes.AddedAccounts, name)
		}
	}
	for name := range prev.Accounts {
		if _, ok := curr.Accounts[name]; !ok {
			changes.RemovedAccounts = append(changes.RemovedAccounts, name)
		}
	}
	sort.Strings(changes.AddedAccounts)
	sort.Strings(changes.RemovedAccounts)

	for name, currFields := range curr.Accounts {
		prevFields, existed := prev.Accounts[name]
		if !existed {
			continue // wholesale addition already reported above
		}
		var added, removed []string
		var changedList []FieldChange
		for field, currVal := range currFields {
			if dynamicFields[field] {
				continue
			}
			prevVal, ok := prevFields[field]
			if !ok {
				added = append(added, field)
				continue
			}
			if !reflect.DeepEqual(prevVal, currVal) {
				changedList = append(changedList, FieldChange{Field: field, Old: prevVal, New: currVal})
			}
		}
		for field := range prevFields {
			if dynamicFields[field] {
				continue
			}
			if _, ok := currFields[field]; !ok {
				removed = append(removed, field)
			}
		}
		sort.Strings(added)
		sort.Strings(removed)
		sort.Slice(changedList, func(i, j int) bool { return changedList[i].Field < changedList[j].Field })
		if len(added) > 0 {
			changes.AddedFields[name] = added
		}
		if len(removed) > 0 {
			changes.RemovedFields[name] = removed
		}
		if len(changedList) > 0 {
			changes.ChangedFields[name] = changedList
		}
	}

	return changes
}

package discovery

import (
	"net/url"
	"strings"

	"github.com/passforge/passforge/core/account"
	"github.com/passforge/passforge/core/apperr"
)

// parseURLWithDefaultScheme parses ref as a URL, assuming defaultScheme
// when ref carries none, per spec §4.7.
func parseURLWithDefaultScheme(ref, defaultScheme string) (*url.URL, bool) {
	if !strings.Contains(ref, "://") && defaultScheme != "" {
		ref = defaultScheme + "://" + ref
	}
	u, err := url.Parse(ref)
	if err != nil {
		return nil, false
	}
	return u, true
}

// ParseTitleURL extracts an embedded URL from a window title, the "url (if
// parseable)" component of spec §4.7's environment snapshot. Titles are
// expected in the "<page title> - <url>" shape a browser title-augmenting
// extension emits; the last whitespace-delimited token that parses as an
// absolute URL is used.
func ParseTitleURL(title string) *url.URL {
	fields := strings.Fields(title)
	for i := len(fields) - 1; i >= 0; i-- {
		if u, err := url.Parse(fields[i]); err == nil && u.Scheme != "" && u.Host != "" {
			return u
		}
	}
	return nil
}

// Entry pairs one account with its recognizer tree, in source (declaration)
// order — the order its recognizers are evaluated in, per spec §4.7.
type Entry struct {
	Account     *account.Account
	Recognizers []Recognizer
}

// Candidate is one discovery result: the account whose recognizer matched,
// the script to run, and the recognizer's label (shown to the host when
// more than one candidate remains after tie-breaking).
type Candidate struct {
	Account *account.Account
	Script  string
	Name    string

	spec specificity
}

// Discover evaluates every entry's recognizer tree against snapshot, in
// entry (account load) order. Within one account, recognizers are
// evaluated in source order and ranked by specificity (exact URL match over
// prefix, then longest matched path, then declaration order) to pick that
// account's single candidate. Across accounts, every account with a
// matching recognizer contributes one candidate; if more than one remains,
// the caller (the public facade) must ask the host to choose among the
// returned candidates' Name labels. Returns apperr.NoAccountDiscovered if
// nothing matched.
func Discover(snapshot Snapshot, entries []Entry) ([]Candidate, error) {
	var candidates []Candidate
	for _, entry := range entries {
		cand, ok := bestForAccount(snapshot, entry)
		if ok {
			candidates = append(candidates, cand)
		}
	}
	if len(candidates) == 0 {
		return nil, apperr.New(apperr.NoAccountDiscovered, "", "no account's recognizers matched the current environment")
	}
	return candidates, nil
}

// bestForAccount returns the single best-matching recognizer's candidate
// for one account, per the source-order/specificity tie-break.
func bestForAccount(snapshot Snapshot, entry Entry) (Candidate, bool) {
	var best *Candidate
	for _, r := range entry.Recognizers {
		matched, spec := r.match(snapshot)
		if !matched {
			continue
		}
		cand := Candidate{Account: entry.Account, Script: r.script(), Name: r.label(), spec: spec}
		if best == nil || best.spec.less(cand.spec) {
			best = &cand
		}
	}
	if best == nil {
		return Candidate{}, false
	}
	return *best, true
}

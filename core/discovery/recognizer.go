package discovery

import (
	"net/url"
	"path"
	"strings"
	"time"
)

// Recognizer is one node of spec §4.7's recognizer tree. Every variant
// carries the script that runs (and an optional label presented to the
// host when multiple accounts' recognizers match at once) except the two
// composites, whose script belongs to the composite itself.
type Recognizer interface {
	// match reports whether r matches snapshot, plus specificity: how
	// precisely it matched, used to rank competing matches within the same
	// account per spec §4.7's tie-break rules.
	match(snapshot Snapshot) (matched bool, spec specificity)
	script() string
	label() string
}

// specificity ranks how precisely a recognizer matched, for the
// "exact over prefix; longest matching URL path" tie-break. Higher Exact,
// then higher PathLen, wins.
type specificity struct {
	Exact   bool
	PathLen int
}

// less reports whether a has lower priority than b under the tie-break
// ordering (exact beats prefix, then longer matched path beats shorter).
func (a specificity) less(b specificity) bool {
	if a.Exact != b.Exact {
		return !a.Exact && b.Exact
	}
	return a.PathLen < b.PathLen
}

type base struct {
	Script string
	Name   string
}

func (b base) script() string { return b.Script }
func (b base) label() string  { return b.Name }

// Title matches the window title against glob-style patterns, per spec
// §4.7's RecognizeTitle.
type Title struct {
	base
	Patterns []string
}

func NewTitle(patterns []string, script, name string) Title {
	return Title{base: base{Script: script, Name: name}, Patterns: patterns}
}

func (t Title) match(s Snapshot) (bool, specificity) {
	for _, p := range t.Patterns {
		if ok, _ := path.Match(p, s.Title); ok {
			return true, specificity{}
		}
	}
	return false, specificity{}
}

// URL matches an embedded window-title URL against one or more reference
// URLs, per spec §4.7's RecognizeURL. By default path matching is by
// prefix; ExactPath requires equality. Fragment opts the URL fragment into
// the comparison. A scheme mismatch (http vs https) between the reference
// and the observed URL is always rejected, even when other fields match —
// the phishing guard spec §4.7 calls for explicitly.
type URL struct {
	base
	URLs            []string
	ExactPath       bool
	Fragment        bool
	DefaultProtocol string
}

func NewURL(urls []string, script, name string, exactPath, fragment bool, defaultProtocol string) URL {
	return URL{base: base{Script: script, Name: name}, URLs: urls, ExactPath: exactPath, Fragment: fragment, DefaultProtocol: defaultProtocol}
}

func (u URL) match(s Snapshot) (bool, specificity) {
	if s.URL == nil {
		return false, specificity{}
	}
	best := specificity{}
	matched := false
	for _, ref := range u.URLs {
		refURL, ok := u.parseRef(ref)
		if !ok {
			continue
		}
		if refURL.Scheme != "" && s.URL.Scheme != "" && refURL.Scheme != s.URL.Scheme {
			continue // phishing guard: never match across scheme
		}
		if refURL.Host != s.URL.Host {
			continue
		}
		if u.Fragment && refURL.Fragment != s.URL.Fragment {
			continue
		}
		exact := refURL.Path == s.URL.Path
		prefix := strings.HasPrefix(s.URL.Path, refURL.Path)
		if u.ExactPath {
			if !exact {
				continue
			}
		} else if !prefix {
			continue
		}
		matched = true
		sp := specificity{Exact: exact, PathLen: len(refURL.Path)}
		if best.less(sp) {
			best = sp
		}
	}
	return matched, best
}

// parseRef parses one configured reference URL, assuming DefaultProtocol
// when it carries no scheme, per spec §4.7: "If no scheme present in the
// recognizer's URL, default_protocol is assumed."
func (u URL) parseRef(ref string) (*url.URL, bool) {
	return parseURLWithDefaultScheme(ref, u.DefaultProtocol)
}

// Host/User/CWD/EnvVar/Network are plain environment predicates.

type Host struct {
	base
	Hosts []string
}

func NewHost(hosts []string, script, name string) Host {
	return Host{base: base{Script: script, Name: name}, Hosts: hosts}
}

func (h Host) match(s Snapshot) (bool, specificity) { return contains(h.Hosts, s.Host), specificity{} }

type User struct {
	base
	Users []string
}

func NewUser(users []string, script, name string) User {
	return User{base: base{Script: script, Name: name}, Users: users}
}

func (u User) match(s Snapshot) (bool, specificity) { return contains(u.Users, s.User), specificity{} }

type CWD struct {
	base
	Paths []string
}

func NewCWD(paths []string, script, name string) CWD {
	return CWD{base: base{Script: script, Name: name}, Paths: paths}
}

func (c CWD) match(s Snapshot) (bool, specificity) { return contains(c.Paths, s.CWD), specificity{} }

type EnvVar struct {
	base
	VarName string
	Value   string
}

func NewEnvVar(name, value, script, label string) EnvVar {
	return EnvVar{base: base{Script: script, Name: label}, VarName: name, Value: value}
}

func (e EnvVar) match(s Snapshot) (bool, specificity) {
	return s.Env[e.VarName] == e.Value, specificity{}
}

type Network struct {
	base
	MACs []string
}

func NewNetwork(macs []string, script, name string) Network {
	return Network{base: base{Script: script, Name: name}, MACs: macs}
}

func (n Network) match(s Snapshot) (bool, specificity) {
	for _, mac := range n.MACs {
		if contains(s.Network, mac) {
			return true, specificity{}
		}
	}
	return false, specificity{}
}

// File matches if Path exists and was modified within TTL of Snapshot.Now;
// if Contents is set, the file's body must equal it exactly.
type File struct {
	base
	Path     string
	Contents *string
	TTL      time.Duration
}

func NewFile(path, script, name string, contents *string, ttl time.Duration) File {
	if ttl <= 0 {
		ttl = 60 * time.Second
	}
	return File{base: base{Script: script, Name: name}, Path: path, Contents: contents, TTL: ttl}
}

func (f File) match(s Snapshot) (bool, specificity) {
	info, err := s.statFile(f.Path)
	if err != nil {
		return false, specificity{}
	}
	if s.Now.Sub(info.ModTime()) > f.TTL {
		return false, specificity{}
	}
	if f.Contents != nil {
		data, err := s.readFile(f.Path)
		if err != nil || string(data) != *f.Contents {
			return false, specificity{}
		}
	}
	return true, specificity{}
}

// All matches iff every child matches; the script belongs to the composite,
// per spec §4.7.
type All struct {
	base
	Children []Recognizer
}

func NewAll(children []Recognizer, script, name string) All {
	return All{base: base{Script: script, Name: name}, Children: children}
}

func (a All) match(s Snapshot) (bool, specificity) {
	best := specificity{}
	for _, c := range a.Children {
		ok, sp := c.match(s)
		if !ok {
			return false, specificity{}
		}
		if best.less(sp) {
			best = sp
		}
	}
	return len(a.Children) > 0, best
}

// Any matches iff at least one child matches.
type Any struct {
	base
	Children []Recognizer
}

func NewAny(children []Recognizer, script, name string) Any {
	return Any{base: base{Script: script, Name: name}, Children: children}
}

func (a Any) match(s Snapshot) (bool, specificity) {
	best := specificity{}
	matched := false
	for _, c := range a.Children {
		ok, sp := c.match(s)
		if !ok {
			continue
		}
		matched = true
		if best.less(sp) {
			best = sp
		}
	}
	return matched, best
}

func contains(haystack []string, needle string) bool {
	for _, h := range haystack {
		if h == needle {
			return true
		}
	}
	return false
}

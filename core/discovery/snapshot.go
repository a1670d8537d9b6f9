// Package discovery implements spec §4.7's discovery engine: a tree of
// environment recognizers (window title, URL, host, user, working
// directory, env var, network, file) evaluated against a point-in-time
// environment snapshot to find which account's script a host should run.
//
// Structurally this generalizes the teacher's Classifier/ClassifierRegistry
// pattern (an ordered list of predicates, first non-trivial match wins)
// from "classify a file by path/extension" to "does this recognizer match
// this environment snapshot".
package discovery

import (
	"net/url"
	"os"
	"time"
)

// Snapshot is the environment state a discovery pass is evaluated against,
// per spec §4.7: "{ title, url (if parseable), user, host, cwd, env,
// network, now }".
type Snapshot struct {
	Title   string
	URL     *url.URL // nil if Title had no parseable embedded URL
	User    string
	Host    string
	CWD     string
	Env     map[string]string
	Network []string // MAC addresses present on the host's interfaces

	Now time.Time

	// FileStat/FileRead back RecognizeFile; both default to the real
	// filesystem when nil, but tests can fake them.
	FileStat func(path string) (os.FileInfo, error)
	FileRead func(path string) ([]byte, error)
}

func (s Snapshot) statFile(path string) (os.FileInfo, error) {
	if s.FileStat != nil {
		return s.FileStat(path)
	}
	return os.Stat(path)
}

func (s Snapshot) readFile(path string) ([]byte, error) {
	if s.FileRead != nil {
		return s.FileRead(path)
	}
	return os.ReadFile(path)
}

package discovery

import (
	"net/url"
	"os"
	"testing"
	"time"

	"github.com/passforge/passforge/core/account"
	"github.com/passforge/passforge/core/apperr"
)

type fakeFileInfo struct {
	modTime time.Time
}

func (f fakeFileInfo) Name() string       { return "lock" }
func (f fakeFileInfo) Size() int64        { return 0 }
func (f fakeFileInfo) Mode() os.FileMode  { return 0o600 }
func (f fakeFileInfo) ModTime() time.Time { return f.modTime }
func (f fakeFileInfo) IsDir() bool        { return false }
func (f fakeFileInfo) Sys() any           { return nil }

func mustURL(t *testing.T, s string) *url.URL {
	t.Helper()
	u, err := url.Parse(s)
	if err != nil {
		t.Fatalf("parsing %q: %v", s, err)
	}
	return u
}

func TestDiscoverResolvesSingleMatch(t *testing.T) {
	chase := account.New("chase")
	entries := []Entry{
		{Account: chase, Recognizers: []Recognizer{
			NewURL([]string{"https://chase.com/login"}, "{username}{tab}{passcode}{return}", "chase login", false, false, "https"),
		}},
	}
	snapshot := Snapshot{URL: mustURL(t, "https://chase.com/login/step2")}

	cands, err := Discover(snapshot, entries)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(cands) != 1 || cands[0].Account != chase {
		t.Fatalf("candidates = %+v", cands)
	}
}

func TestDiscoverFailsWithNoAccountDiscovered(t *testing.T) {
	entries := []Entry{
		{Account: account.New("chase"), Recognizers: []Recognizer{
			NewHost([]string{"work-laptop"}, "script", ""),
		}},
	}
	_, err := Discover(Snapshot{Host: "home-desktop"}, entries)
	if !apperr.Is(err, apperr.NoAccountDiscovered) {
		t.Fatalf("got %v, want no_account_discovered", err)
	}
}

func TestDiscoverRejectsSchemeMismatchAsPhishingGuard(t *testing.T) {
	chase := account.New("chase")
	entries := []Entry{
		{Account: chase, Recognizers: []Recognizer{
			NewURL([]string{"https://chase.com/login"}, "script", "", false, false, "https"),
		}},
	}
	snapshot := Snapshot{URL: mustURL(t, "http://chase.com/login")}
	_, err := Discover(snapshot, entries)
	if !apperr.Is(err, apperr.NoAccountDiscovered) {
		t.Fatalf("got %v, want no_account_discovered (scheme mismatch should never match)", err)
	}
}

func TestDiscoverPicksExactOverPrefixWithinOneAccount(t *testing.T) {
	chase := account.New("chase")
	entries := []Entry{
		{Account: chase, Recognizers: []Recognizer{
			NewURL([]string{"https://chase.com/"}, "prefix-script", "prefix", false, false, "https"),
			NewURL([]string{"https://chase.com/login"}, "exact-script", "exact", true, false, "https"),
		}},
	}
	snapshot := Snapshot{URL: mustURL(t, "https://chase.com/login")}
	cands, err := Discover(snapshot, entries)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(cands) != 1 || cands[0].Script != "exact-script" {
		t.Fatalf("candidates = %+v", cands)
	}
}

func TestDiscoverPicksLongestPathAmongPrefixMatches(t *testing.T) {
	chase := account.New("chase")
	entries := []Entry{
		{Account: chase, Recognizers: []Recognizer{
			NewURL([]string{"https://chase.com/"}, "short", "short", false, false, "https"),
			NewURL([]string{"https://chase.com/login/"}, "long", "long", false, false, "https"),
		}},
	}
	snapshot := Snapshot{URL: mustURL(t, "https://chase.com/login/step2")}
	cands, err := Discover(snapshot, entries)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(cands) != 1 || cands[0].Script != "long" {
		t.Fatalf("candidates = %+v", cands)
	}
}

func TestDiscoverReturnsMultipleCandidatesForHostToChoose(t *testing.T) {
	chase := account.New("chase")
	wells := account.New("wells")
	entries := []Entry{
		{Account: chase, Recognizers: []Recognizer{NewHost([]string{"laptop"}, "chase-script", "chase")}},
		{Account: wells, Recognizers: []Recognizer{NewHost([]string{"laptop"}, "wells-script", "wells")}},
	}
	cands, err := Discover(Snapshot{Host: "laptop"}, entries)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(cands) != 2 {
		t.Fatalf("candidates = %+v, want 2 (ambiguous)", cands)
	}
}

func TestRecognizeAllRequiresEveryChild(t *testing.T) {
	all := NewAll([]Recognizer{
		NewHost([]string{"laptop"}, "", ""),
		NewUser([]string{"alice"}, "", ""),
	}, "composite-script", "composite")

	matched, _ := all.match(Snapshot{Host: "laptop", User: "alice"})
	if !matched {
		t.Fatal("expected All to match when every child matches")
	}
	matched, _ = all.match(Snapshot{Host: "laptop", User: "bob"})
	if matched {
		t.Fatal("expected All to reject when one child fails")
	}
}

func TestRecognizeAnyMatchesOnFirstSuccess(t *testing.T) {
	any := NewAny([]Recognizer{
		NewHost([]string{"desktop"}, "", ""),
		NewUser([]string{"alice"}, "", ""),
	}, "composite-script", "composite")

	matched, _ := any.match(Snapshot{Host: "laptop", User: "alice"})
	if !matched {
		t.Fatal("expected Any to match when at least one child matches")
	}
	matched, _ = any.match(Snapshot{Host: "laptop", User: "bob"})
	if matched {
		t.Fatal("expected Any to reject when no child matches")
	}
}

func TestRecognizeFileChecksTTLAndContents(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	fresh := fakeFileInfo{modTime: now.Add(-10 * time.Second)}
	stale := fakeFileInfo{modTime: now.Add(-2 * time.Minute)}
	want := "expected body"

	f := NewFile("/tmp/lock", "script", "", &want, 60*time.Second)

	snap := Snapshot{
		Now:      now,
		FileStat: func(path string) (os.FileInfo, error) { return fresh, nil },
		FileRead: func(path string) ([]byte, error) { return []byte(want), nil },
	}
	if matched, _ := f.match(snap); !matched {
		t.Fatal("expected file recognizer to match fresh file with matching contents")
	}

	snap.FileStat = func(path string) (os.FileInfo, error) { return stale, nil }
	if matched, _ := f.match(snap); matched {
		t.Fatal("expected file recognizer to reject a stale file")
	}
}

func TestParseTitleURLExtractsTrailingURL(t *testing.T) {
	u := ParseTitleURL("Sign in to your account - https://chase.com/login")
	if u == nil || u.Host != "chase.com" {
		t.Fatalf("ParseTitleURL = %v", u)
	}
}

func TestParseTitleURLReturnsNilWithoutURL(t *testing.T) {
	if u := ParseTitleURL("just a plain window title"); u != nil {
		t.Fatalf("ParseTitleURL = %v, want nil", u)
	}
}

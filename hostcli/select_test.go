package hostcli

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/passforge/passforge/core/account"
	"github.com/passforge/passforge/core/discovery"
)

func candidateFor(name string) discovery.Candidate {
	return discovery.Candidate{Account: account.New(name), Name: name + " login"}
}

func TestSelectModelNavigatesAndChooses(t *testing.T) {
	m := newSelectModel([]discovery.Candidate{candidateFor("chase"), candidateFor("amex")})

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	m = updated.(selectModel)
	if m.cursor != 1 {
		t.Fatalf("cursor = %d, want 1", m.cursor)
	}

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(selectModel)
	if m.chosen != 1 {
		t.Fatalf("chosen = %d, want 1", m.chosen)
	}
	if cmd == nil {
		t.Fatal("expected Choose to quit the program")
	}
}

func TestSelectModelCancel(t *testing.T) {
	m := newSelectModel([]discovery.Candidate{candidateFor("chase"), candidateFor("amex")})
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEscape})
	m = updated.(selectModel)
	if m.chosen != -2 {
		t.Fatalf("chosen = %d, want -2 (cancelled)", m.chosen)
	}
	if cmd == nil {
		t.Fatal("expected cancel to quit the program")
	}
}

func TestSelectSingleCandidateSkipsPicker(t *testing.T) {
	only := candidateFor("chase")
	got, ok, err := Select([]discovery.Candidate{only})
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if !ok || got.Account.CanonicalName != "chase" {
		t.Fatalf("Select = %+v, %v", got, ok)
	}
}

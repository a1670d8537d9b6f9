package hostcli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/passforge/passforge/core/discovery"
)

var (
	colorTitle    = lipgloss.Color("#FFFFFF")
	colorSubtle   = lipgloss.Color("#666666")
	colorSelected = lipgloss.Color("#7D56F4")

	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(colorTitle)
	subtleStyle = lipgloss.NewStyle().Foreground(colorSubtle)
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorSelected)
	helpStyle = lipgloss.NewStyle().Foreground(colorSubtle)
)

type selectKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Choose key.Binding
	Quit   key.Binding
}

var selectKeys = selectKeyMap{
	Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("up/k", "up")),
	Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("dn/j", "down")),
	Choose: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "choose")),
	Quit:   key.NewBinding(key.WithKeys("esc", "q", "ctrl+c"), key.WithHelp("q", "cancel")),
}

// selectModel disambiguates multiple discovery candidates, the
// bubbletea-driven list/cursor/key-binding shape cli/tui/model.go uses for
// finding inspection, repurposed here for a one-shot pick rather than a
// long-lived browse session.
type selectModel struct {
	candidates []discovery.Candidate
	cursor     int
	chosen     int // -1 until Choose is pressed, -2 on cancel
	width      int
}

func newSelectModel(candidates []discovery.Candidate) selectModel {
	return selectModel{candidates: candidates, chosen: -1, width: 80}
}

func (m selectModel) Init() tea.Cmd { return nil }

func (m selectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case tea.KeyMsg:
		switch {
		case matchesSelectBinding(msg, selectKeys.Quit):
			m.chosen = -2
			return m, tea.Quit
		case matchesSelectBinding(msg, selectKeys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case matchesSelectBinding(msg, selectKeys.Down):
			if m.cursor < len(m.candidates)-1 {
				m.cursor++
			}
		case matchesSelectBinding(msg, selectKeys.Choose):
			m.chosen = m.cursor
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m selectModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf(" %d matching accounts", len(m.candidates))))
	b.WriteString("\n")
	b.WriteString(subtleStyle.Render(strings.Repeat("─", m.width)))
	b.WriteString("\n")
	for i, c := range m.candidates {
		label := c.Name
		if label == "" {
			label = c.Account.CanonicalName
		}
		line := fmt.Sprintf(" %-30s %s", label, subtleStyle.Render(c.Account.CanonicalName))
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("▸") + line + "\n")
		} else {
			b.WriteString(" " + line + "\n")
		}
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(" ↑↓ navigate  enter choose  q cancel"))
	return b.String()
}

func matchesSelectBinding(msg tea.KeyMsg, binding key.Binding) bool {
	for _, k := range binding.Keys() {
		if msg.String() == k {
			return true
		}
	}
	return false
}

// Select runs an interactive picker over candidates and returns the one
// the user chose, per spec §4.7's disambiguation step for multiple
// surviving discovery candidates. It returns discovery.Candidate{} with
// ok=false if the user cancels.
func Select(candidates []discovery.Candidate) (discovery.Candidate, bool, error) {
	if len(candidates) == 1 {
		return candidates[0], true, nil
	}
	m := newSelectModel(candidates)
	p := tea.NewProgram(m)
	result, err := p.Run()
	if err != nil {
		return discovery.Candidate{}, false, err
	}
	final := result.(selectModel)
	if final.chosen < 0 {
		return discovery.Candidate{}, false, nil
	}
	return final.candidates[final.chosen], true, nil
}

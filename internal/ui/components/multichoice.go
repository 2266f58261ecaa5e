package components

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/bravedhq/beelearn/internal/ui/theme"
)

// MultiChoice renders a question with its answer options. The component
// does not know which option is right; the server judges the submission
// and Resolve reports the verdict back for rendering.
type MultiChoice struct {
	Question string
	Options  []string
	Selected int

	// Locked freezes navigation while a submission is in flight.
	Locked bool

	// After Resolve: ChosenIndex is what the user picked and Correct is
	// the server's verdict. Resolved gates the feedback rendering.
	Resolved    bool
	ChosenIndex int
	Correct     bool
}

// NewMultiChoice creates a selector over options.
func NewMultiChoice(question string, options []string) MultiChoice {
	return MultiChoice{
		Question:    question,
		Options:     options,
		ChosenIndex: -1,
	}
}

// Update handles keyboard navigation. Enter reports the chosen option
// through the returned bool; the caller submits it and locks the component.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, bool) {
	if m.Locked || m.Resolved {
		return m, false
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, false
	}

	switch kmsg.String() {
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
		}
	case "down", "j":
		if m.Selected < len(m.Options)-1 {
			m.Selected++
		}
	case "enter":
		m.ChosenIndex = m.Selected
		return m, true
	}

	return m, false
}

// Choice returns the currently selected option text.
func (m MultiChoice) Choice() string {
	if m.Selected < 0 || m.Selected >= len(m.Options) {
		return ""
	}
	return m.Options[m.Selected]
}

// Resolve records the server's verdict for the chosen option.
func (m MultiChoice) Resolve(correct bool) MultiChoice {
	m.Resolved = true
	m.Correct = correct
	m.Locked = false
	return m
}

// Reset clears the verdict so the same question can be answered again.
func (m MultiChoice) Reset() MultiChoice {
	m.Resolved = false
	m.ChosenIndex = -1
	m.Locked = false
	return m
}

// View renders the question and options.
func (m MultiChoice) View() string {
	questionStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	s := questionStyle.Render(m.Question) + "\n\n"

	labels := []string{"A", "B", "C", "D"}

	for i, opt := range m.Options {
		if i >= len(labels) {
			break
		}
		prefix := "  "
		if i == m.Selected && !m.Resolved {
			prefix = "▸ "
		}

		line := fmt.Sprintf("%s%s)  %s", prefix, labels[i], opt)

		switch {
		case m.Resolved && i == m.ChosenIndex && m.Correct:
			s += lipgloss.NewStyle().Foreground(theme.Success).Bold(true).Render(line) + "\n"
		case m.Resolved && i == m.ChosenIndex:
			s += lipgloss.NewStyle().Foreground(theme.Error).Bold(true).Render(line) + "\n"
		case m.Resolved:
			s += lipgloss.NewStyle().Foreground(theme.TextDim).Render(line) + "\n"
		case i == m.Selected:
			s += lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(line) + "\n"
		default:
			s += lipgloss.NewStyle().Foreground(theme.Text).Render(line) + "\n"
		}
	}

	return s
}

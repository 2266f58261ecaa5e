// Package app is the terminal client: a single-screen Bubble Tea program
// that fetches lessons from a running server and submits answers.
package app

import (
	"context"
	"os"
	"time"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/bravedhq/beelearn/internal/api"
	"github.com/bravedhq/beelearn/internal/lesson"
	"github.com/bravedhq/beelearn/internal/ui/components"
	"github.com/bravedhq/beelearn/internal/ui/layout"
	"github.com/bravedhq/beelearn/internal/ui/theme"
)

// DefaultUserID is used when BEELEARN_USER_ID is unset.
const DefaultUserID = "brave_learner"

type phase int

const (
	phaseLoading phase = iota
	phaseQuestion
	phaseSubmitting
	phaseFeedback
	phaseError
)

type lessonMsg struct {
	Resp *api.LessonResponse
	Err  error
}

type answerMsg struct {
	Resp *api.AnswerResponse
	Err  error
}

// Model is the root Bubble Tea model.
type Model struct {
	client *api.Client
	userID string

	phase   phase
	lesson  *lesson.Lesson
	streak  int
	message string
	errMsg  string

	choices components.MultiChoice
	spin    spinner.Model
	width   int
	height  int
}

// NewModel creates the client model. Identity and server address come from
// the environment.
func NewModel() Model {
	userID := os.Getenv("BEELEARN_USER_ID")
	if userID == "" {
		userID = DefaultUserID
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Primary)

	return Model{
		client: api.NewClient(os.Getenv("BEELEARN_API_URL")),
		userID: userID,
		phase:  phaseLoading,
		spin:   sp,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.fetchLesson())
}

func (m Model) fetchLesson() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
		defer cancel()
		resp, err := m.client.GetLesson(ctx, m.userID)
		return lessonMsg{Resp: resp, Err: err}
	}
}

func (m Model) submitAnswer(answer string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
		defer cancel()
		resp, err := m.client.SubmitAnswer(ctx, m.userID, answer)
		return answerMsg{Resp: resp, Err: err}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case lessonMsg:
		if msg.Err != nil {
			m.phase = phaseError
			m.errMsg = msg.Err.Error()
			return m, nil
		}
		return m.showLesson(msg.Resp.Lesson, msg.Resp.Streak, msg.Resp.Message), nil

	case answerMsg:
		return m.handleAnswer(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) showLesson(l *lesson.Lesson, streak int, message string) Model {
	m.lesson = l
	m.streak = streak
	m.message = message
	m.choices = components.NewMultiChoice(l.Question, l.Options)
	m.phase = phaseQuestion
	return m
}

func (m Model) handleAnswer(msg answerMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		// Keep the question answerable so the learner can retry.
		m.phase = phaseQuestion
		m.choices = m.choices.Reset()
		m.message = "Couldn't reach Mrs. Been. Try again!"
		return m, nil
	}

	resp := msg.Resp
	m.phase = phaseFeedback
	m.choices = m.choices.Resolve(resp.Correct)
	m.streak = resp.NewStreak
	m.message = resp.Message

	if resp.Correct && resp.NextLesson != nil {
		// Stash the follow-up; shown when the learner continues.
		m.lesson = resp.NextLesson
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		if m.phase != phaseSubmitting {
			return m, tea.Quit
		}
		return m, nil
	}

	switch m.phase {
	case phaseQuestion:
		var submit bool
		m.choices, submit = m.choices.Update(msg)
		if submit {
			m.phase = phaseSubmitting
			m.choices.Locked = true
			return m, tea.Batch(m.spin.Tick, m.submitAnswer(m.choices.Choice()))
		}
		return m, nil

	case phaseFeedback:
		if msg.String() == "enter" {
			if m.choices.Correct {
				return m.showLesson(m.lesson, m.streak, "Here's your next lesson!"), nil
			}
			// Same lesson, fresh attempt.
			m.choices = m.choices.Reset()
			m.phase = phaseQuestion
			return m, nil
		}

	case phaseError:
		if msg.String() == "enter" || msg.String() == "r" {
			m.phase = phaseLoading
			m.errMsg = ""
			return m, tea.Batch(m.spin.Tick, m.fetchLesson())
		}
	}

	return m, nil
}

func (m Model) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}
	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	topic := ""
	if m.lesson != nil {
		topic = m.lesson.Topic
	}
	header := layout.RenderHeader(topic, m.streak, m.width)
	footer := layout.RenderFooter(m.keyHints(), m.width)

	var content string
	switch m.phase {
	case phaseLoading:
		content = m.spin.View() + " Mrs. Been is preparing your lesson..."
	case phaseSubmitting:
		content = m.choices.View() + "\n" + m.spin.View() + " Checking with Mrs. Been..."
	case phaseError:
		content = theme.Incorrect.Render("Something went wrong:") + "\n\n" +
			theme.Body.Render(m.errMsg)
	default:
		content = m.choices.View()
		if m.message != "" {
			style := theme.Hint
			if m.phase == phaseFeedback {
				if m.choices.Correct {
					style = theme.Correct
				} else {
					style = theme.Incorrect
				}
			}
			content += "\n" + style.Render(m.message)
		}
	}

	card := theme.Card.Width(m.width - 4).Render(content)
	v.SetContent(layout.RenderFrame(header, card, footer, m.width, m.height))
	return v
}

func (m Model) keyHints() []layout.KeyHint {
	switch m.phase {
	case phaseQuestion:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Answer"},
			{Key: "Q", Description: "Quit"},
		}
	case phaseFeedback:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Continue"},
			{Key: "Q", Description: "Quit"},
		}
	case phaseError:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Retry"},
			{Key: "Q", Description: "Quit"},
		}
	default:
		return []layout.KeyHint{
			{Key: "Q", Description: "Quit"},
		}
	}
}

// Run starts the Bubble Tea program.
func Run() error {
	p := tea.NewProgram(NewModel())
	_, err := p.Run()
	return err
}

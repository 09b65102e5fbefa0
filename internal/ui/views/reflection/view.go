package reflection

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	reflectiondto "thrivehub/internal/modules/reflection/dto"
	apperrors "thrivehub/internal/platform/errors"
	"thrivehub/internal/ui/theme"
)

const prompt = "What challenges did you overcome recently and what did you learn from them?"

// Port is the minimal interface this view needs from the reflection use-case.
type Port interface {
	Append(ctx context.Context, text string) (reflectiondto.EntryOutput, error)
}

// SavedMsg reports the outcome of a submission.
type SavedMsg struct {
	Entry reflectiondto.EntryOutput
	Err   error
}

type Model struct {
	port   Port
	input  textarea.Model
	flash  string
	style  lipgloss.Style
	saving bool
	width  int
}

func New(port Port) Model {
	ta := textarea.New()
	ta.Placeholder = "Write your thoughts here..."
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.SetHeight(6)
	ta.Focus()
	return Model{port: port, input: ta, style: theme.Muted}
}

func (m Model) Init() tea.Cmd { return textarea.Blink }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.SetWidth(max(msg.Width-4, 20))
		m.input.SetHeight(max(msg.Height-6, 3))
		return m, nil

	case SavedMsg:
		m.saving = false
		switch {
		case msg.Err == nil:
			m.input.Reset()
			m.flash, m.style = "Thank you for sharing! Keep growing! 🌱", theme.Success
		case errors.Is(msg.Err, apperrors.ErrEmptyReflection):
			m.flash, m.style = "Please write something before submitting.", theme.Warning
		default:
			m.flash, m.style = "Could not save reflection: "+msg.Err.Error(), theme.Failure
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+s" {
			cmd := m.Submit()
			return m, cmd
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// Submit appends the current draft. Only one submission is in flight at a
// time.
func (m *Model) Submit() tea.Cmd {
	if m.saving || m.port == nil {
		return nil
	}
	m.saving = true
	text := m.input.Value()
	port := m.port
	return func() tea.Msg {
		entry, err := port.Append(context.Background(), text)
		return SavedMsg{Entry: entry, Err: err}
	}
}

func (m *Model) Clear() {
	m.input.Reset()
	m.flash = ""
}

func (m Model) Focused() bool { return m.input.Focused() }

func (m *Model) Focus() tea.Cmd { return m.input.Focus() }

func (m *Model) Blur() { m.input.Blur() }

func (m Model) Value() string { return m.input.Value() }

func (m Model) Flash() string { return m.flash }

func (m Model) View() string {
	out := theme.Title.Render("📝 Unfold Your Growth Story") + "\n" +
		theme.Muted.Render(prompt) + "\n\n" +
		m.input.View() + "\n"
	if m.saving {
		out += theme.Muted.Render("saving…")
	} else if m.flash != "" {
		out += m.style.Render(m.flash)
	} else {
		out += theme.Muted.Render("ctrl+s: submit reflection")
	}
	return out
}

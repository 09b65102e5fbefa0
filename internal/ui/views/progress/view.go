package progress

import (
	"context"
	"errors"
	"fmt"

	progressbar "github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	progressdto "thrivehub/internal/modules/progress/dto"
	apperrors "thrivehub/internal/platform/errors"
	"thrivehub/internal/ui/theme"
)

const (
	DefaultValue = 50
	smallStep    = 1
	largeStep    = 10
)

// Port is the minimal interface this view needs from the progress use-case.
type Port interface {
	Save(ctx context.Context, value int) (progressdto.EntryOutput, error)
}

type SavedMsg struct {
	Entry progressdto.EntryOutput
	Err   error
}

// Model is a 0..100 slider. The value is kept after a save, as a form
// field would be.
type Model struct {
	port   Port
	value  int
	bar    progressbar.Model
	flash  string
	style  lipgloss.Style
	saving bool
}

func New(port Port) Model {
	bar := progressbar.New(
		progressbar.WithGradient(string(theme.Violet), string(theme.Blue)),
		progressbar.WithoutPercentage(),
	)
	bar.Width = 40
	return Model{port: port, value: DefaultValue, bar: bar, style: theme.Muted}
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.bar.Width = max(msg.Width-8, 10)

	case SavedMsg:
		m.saving = false
		switch {
		case msg.Err == nil:
			m.flash, m.style = "Your progress has been saved! 📈", theme.Success
		case errors.Is(msg.Err, apperrors.ErrProgressOutOfRange):
			m.flash, m.style = "Progress must be between 0 and 100.", theme.Warning
		default:
			m.flash, m.style = "Could not save progress: "+msg.Err.Error(), theme.Failure
		}

	case tea.KeyMsg:
		switch msg.String() {
		case "left", "h", "-":
			m.SetValue(m.value - smallStep)
		case "right", "l", "+":
			m.SetValue(m.value + smallStep)
		case "pgdown", "down", "j":
			m.SetValue(m.value - largeStep)
		case "pgup", "up", "k":
			m.SetValue(m.value + largeStep)
		case "home":
			m.SetValue(0)
		case "end":
			m.SetValue(100)
		case "enter":
			cmd := m.Save()
			return m, cmd
		}
	}
	return m, nil
}

// SetValue moves the slider, clamping to 0..100.
func (m *Model) SetValue(v int) {
	m.value = min(max(v, 0), 100)
}

func (m Model) Value() int { return m.value }

func (m Model) Flash() string { return m.flash }

// Save records the current slider value for today.
func (m *Model) Save() tea.Cmd {
	if m.saving || m.port == nil {
		return nil
	}
	m.saving = true
	value := m.value
	port := m.port
	return func() tea.Msg {
		entry, err := port.Save(context.Background(), value)
		return SavedMsg{Entry: entry, Err: err}
	}
}

func (m Model) View() string {
	out := theme.Title.Render("📈 Chart Your Growth Journey") + "\n" +
		theme.Muted.Render("How much do you feel you've grown this week?") + "\n\n" +
		m.bar.ViewAs(float64(m.value)/100) + "\n" +
		fmt.Sprintf("Your growth mindset progress: %s", theme.Hot.Render(fmt.Sprintf("%d%%", m.value))) + "\n\n"
	if m.saving {
		out += theme.Muted.Render("saving…")
	} else if m.flash != "" {
		out += m.style.Render(m.flash)
	} else {
		out += theme.Muted.Render("←/→: ±1  pgup/pgdn: ±10  enter: save")
	}
	return out
}

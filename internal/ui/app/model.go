package app

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	progressdto "thrivehub/internal/modules/progress/dto"
	quotedto "thrivehub/internal/modules/quote/dto"
	reflectiondto "thrivehub/internal/modules/reflection/dto"
	"thrivehub/internal/platform/calendar"
	"thrivehub/internal/platform/clock"
	"thrivehub/internal/platform/watch"
	"thrivehub/internal/ui/components"
	"thrivehub/internal/ui/theme"
	historyview "thrivehub/internal/ui/views/history"
	progressview "thrivehub/internal/ui/views/progress"
	reflectionview "thrivehub/internal/ui/views/reflection"
)

// ─── ports ───────────────────────────────────────────────────────────────────

type quotePort interface {
	Daily(ctx context.Context, cache *quotedto.QuoteCache) (quotedto.DailyQuoteOutput, error)
}

type reflectionPort interface {
	Append(ctx context.Context, text string) (reflectiondto.EntryOutput, error)
}

type progressPort interface {
	Save(ctx context.Context, value int) (progressdto.EntryOutput, error)
	History(ctx context.Context) ([]progressdto.EntryOutput, error)
}

// ─── tab index ───────────────────────────────────────────────────────────────

type tabID int

const (
	tabReflect tabID = iota
	tabProgress
	tabHistory
	tabCount
)

var tabLabels = [tabCount]string{"Reflect", "Progress", "History"}

const statusLayout = "2006-01-02 15:04:05"

// ─── async messages ───────────────────────────────────────────────────────────

type quoteMsg struct {
	out   quotedto.DailyQuoteOutput
	cache quotedto.QuoteCache
	err   error
}

type tickMsg time.Time

type dataChangedMsg struct{ path string }

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Tab     key.Binding
	Submit  key.Binding
	Slide   key.Binding
	Step    key.Binding
	Save    key.Binding
	Help    key.Binding
	Palette key.Binding
	Quit    key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:     key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "switch tab")),
		Submit:  key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "submit reflection")),
		Slide:   key.NewBinding(key.WithKeys("left", "right"), key.WithHelp("←/→", "progress ±1")),
		Step:    key.NewBinding(key.WithKeys("pgup", "pgdown"), key.WithHelp("pgup/pgdn", "progress ±10")),
		Save:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save progress")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette: key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Help, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.Submit},
		{k.Slide, k.Step, k.Save},
		{k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It owns tab routing, the session's
// quote cache, the clock shown in the status bar, the help overlay and the
// command palette. Rendering of each tab is delegated to its sub-view.
type Model struct {
	quotes   quotePort
	watcher  *watch.Watcher
	cache    quotedto.QuoteCache
	quote    string
	now      time.Time
	reflView reflectionview.Model
	progView progressview.Model
	histView historyview.Model

	activeTab tabID
	keys      keyMap
	help      help.Model
	showHelp  bool
	palette   components.Palette
	status    string
	width     int
	height    int
}

// NewModel wires the three tabs. watcher may be nil, in which case the
// history only refreshes after saves made from this session.
func NewModel(quotes quotePort, reflections reflectionPort, progress progressPort, clk clock.Clock, watcher *watch.Watcher) Model {
	if clk == nil {
		clk = clock.SystemClock{}
	}
	return Model{
		quotes:    quotes,
		watcher:   watcher,
		now:       clk.Now(),
		reflView:  reflectionview.New(reflections),
		progView:  progressview.New(progress),
		histView:  historyview.New(progress),
		activeTab: tabReflect,
		keys:      defaultKeys(),
		help:      help.New(),
		palette:   components.NewPalette(),
		status:    "ready",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.reflView.Init(),
		m.histView.Init(),
		m.loadQuoteCmd(),
		tickCmd(),
		m.waitForChangeCmd(),
	)
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	if m.palette.Visible() {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		cmd := m.propagateSize()
		return m, cmd

	case tickMsg:
		prev := m.now
		m.now = time.Time(msg)
		cmds = append(cmds, tickCmd())
		if !sameDay(prev, m.now) {
			cmds = append(cmds, m.loadQuoteCmd())
		}
		return m, tea.Batch(cmds...)

	case quoteMsg:
		if msg.err != nil {
			m.status = "quote: " + msg.err.Error()
		} else if !olderDay(msg.cache.Date, m.cache.Date) {
			m.cache = msg.cache
			m.quote = msg.out.Quote
		}
		return m, nil

	case dataChangedMsg:
		m.status = "reloaded after change to " + msg.path
		return m, tea.Batch(m.histView.Load(), m.waitForChangeCmd())

	case reflectionview.SavedMsg:
		if msg.Err == nil {
			m.status = "reflection saved at " + msg.Entry.Timestamp.Format(statusLayout)
		}
		var cmd tea.Cmd
		m.reflView, cmd = m.reflView.Update(msg)
		return m, cmd

	case progressview.SavedMsg:
		var cmd tea.Cmd
		m.progView, cmd = m.progView.Update(msg)
		if msg.Err == nil {
			m.status = fmt.Sprintf("progress %d%% saved for %s", msg.Entry.Value, msg.Entry.Date)
			cmd = tea.Batch(cmd, m.histView.Load())
		}
		return m, cmd

	case historyview.LoadedMsg:
		var cmd tea.Cmd
		m.histView, cmd = m.histView.Update(msg)
		return m, cmd

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"
		return m, nil

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}

		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "tab":
			cmd := m.switchTab((m.activeTab + 1) % tabCount)
			return m, cmd
		case "shift+tab":
			cmd := m.switchTab((m.activeTab + tabCount - 1) % tabCount)
			return m, cmd
		}

		// Plain keys belong to the textarea while it has focus.
		typing := m.activeTab == tabReflect && m.reflView.Focused()
		switch {
		case typing && msg.String() == "esc":
			m.reflView.Blur()
			m.status = "textarea released: i to edit again"
			return m, nil
		case !typing:
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "?":
				m.showHelp = true
				return m, nil
			case ":":
				cmd := m.palette.Open()
				return m, cmd
			case "i":
				if m.activeTab == tabReflect {
					cmd := m.reflView.Focus()
					return m, cmd
				}
			}
		}
	}

	var tabCmd tea.Cmd
	switch m.activeTab {
	case tabReflect:
		m.reflView, tabCmd = m.reflView.Update(msg)
	case tabProgress:
		m.progView, tabCmd = m.progView.Update(msg)
	case tabHistory:
		m.histView, tabCmd = m.histView.Update(msg)
	}
	cmds = append(cmds, tabCmd)
	return m, tea.Batch(cmds...)
}

func (m *Model) switchTab(tab tabID) tea.Cmd {
	m.activeTab = tab
	if tab == tabReflect {
		return m.reflView.Focus()
	}
	m.reflView.Blur()
	return nil
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	header := m.renderHeader()
	statusBar := m.renderStatusBar()
	contentH := max(m.height-lipgloss.Height(header)-lipgloss.Height(statusBar), 1)

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH, lipgloss.Center, lipgloss.Center, m.palette.View())
	default:
		content = lipgloss.NewStyle().Height(contentH).Padding(0, 1).Render(m.activeView())
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
}

func (m Model) activeView() string {
	switch m.activeTab {
	case tabReflect:
		return m.reflView.View()
	case tabProgress:
		return m.progView.View()
	case tabHistory:
		return m.histView.View()
	}
	return ""
}

func (m Model) renderHeader() string {
	title := theme.Header.Render("ThriveHub 🌱") + " " +
		theme.Muted.Render("Develop a mindset that thrives on challenges and effort!")
	quote := m.quote
	if quote == "" {
		quote = "…"
	}
	card := theme.QuoteCard.Width(max(m.width-2, 20)).Render("Fuel for Your Soul ✨🔥\n" + quote)

	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		if i == m.activeTab {
			parts[i] = theme.Hot.Render(" " + tabLabels[i] + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + tabLabels[i] + " ")
		}
	}
	tabs := strings.Join(parts, theme.Muted.Render(" │ "))
	return lipgloss.JoinVertical(lipgloss.Left, title, card, tabs) + "\n"
}

func (m Model) renderStatusBar() string {
	left := "⏳ " + m.now.Format(statusLayout) + "  " + m.status
	hint := "?:help  tab:switch  :::palette  q:quit"
	if m.activeTab == tabReflect && m.reflView.Focused() {
		hint = "ctrl+s:submit  tab:switch  ctrl+c:quit"
	}
	right := theme.Muted.Render(hint)
	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── palette execution ────────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return m, nil
	}
	switch parts[0] {
	case "progress:save", "progress:set":
		if len(parts) < 2 {
			m.status = "usage: " + parts[0] + " <0-100>"
			return m, nil
		}
		v, err := strconv.Atoi(parts[1])
		if err != nil || v < 0 || v > 100 {
			m.status = "progress must be a whole number between 0 and 100"
			return m, nil
		}
		m.progView.SetValue(v)
		m.activeTab = tabProgress
		if parts[0] == "progress:save" {
			cmd := m.progView.Save()
			return m, cmd
		}
		m.status = fmt.Sprintf("slider set to %d%%", v)
		return m, nil

	case "history:reload":
		m.activeTab = tabHistory
		m.status = "reloading history"
		return m, m.histView.Load()

	case "quote:refresh":
		return m, m.loadQuoteCmd()

	case "reflect:clear":
		m.reflView.Clear()
		m.status = "draft cleared"
		cmd := m.switchTab(tabReflect)
		return m, cmd

	case "quit":
		return m, tea.Quit
	}
	m.status = "unknown command: " + parts[0]
	return m, nil
}

// ─── commands ─────────────────────────────────────────────────────────────────

func (m *Model) propagateSize() tea.Cmd {
	header := m.renderHeader()
	inner := tea.WindowSizeMsg{
		Width:  max(m.width-2, 1),
		Height: max(m.height-lipgloss.Height(header)-2, 1),
	}
	var c1, c2, c3 tea.Cmd
	m.reflView, c1 = m.reflView.Update(inner)
	m.progView, c2 = m.progView.Update(inner)
	m.histView, c3 = m.histView.Update(inner)
	return tea.Batch(c1, c2, c3)
}

// loadQuoteCmd asks for today's quote against a copy of the session cache.
// The copy comes back in quoteMsg and is stored by Update, so overlapping
// loads never share a cache.
func (m Model) loadQuoteCmd() tea.Cmd {
	if m.quotes == nil {
		return nil
	}
	quotes, cache := m.quotes, m.cache
	return func() tea.Msg {
		out, err := quotes.Daily(context.Background(), &cache)
		return quoteMsg{out: out, cache: cache, err: err}
	}
}

func (m Model) waitForChangeCmd() tea.Cmd {
	if m.watcher == nil {
		return nil
	}
	changes := m.watcher.Changes()
	return func() tea.Msg {
		path, ok := <-changes
		if !ok {
			return nil
		}
		return dataChangedMsg{path: path}
	}
}

func tickCmd() tea.Cmd {
	return tea.Every(time.Second, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// olderDay reports whether a load for day a finished after one for the
// later day b.
func olderDay(a, b calendar.Date) bool {
	if a.IsZero() || b.IsZero() {
		return false
	}
	return a.Time(time.UTC).Before(b.Time(time.UTC))
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

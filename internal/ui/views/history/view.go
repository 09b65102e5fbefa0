package history

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/linechart/timeserieslinechart"
	tea "github.com/charmbracelet/bubbletea"

	progressdto "thrivehub/internal/modules/progress/dto"
	"thrivehub/internal/platform/calendar"
	"thrivehub/internal/ui/theme"
)

const (
	EmptyMessage = "No progress data available yet."
	recentRows   = 5
)

// Port is the minimal interface this view needs from the progress use-case.
type Port interface {
	History(ctx context.Context) ([]progressdto.EntryOutput, error)
}

type LoadedMsg struct {
	Entries []progressdto.EntryOutput
	Err     error
}

type Model struct {
	port    Port
	entries []progressdto.EntryOutput
	err     error
	loaded  bool
	chart   timeserieslinechart.Model
	width   int
	height  int
}

func New(port Port) Model {
	return Model{port: port, width: 60, height: 16}
}

func (m Model) Init() tea.Cmd { return m.Load() }

// Load re-reads the whole progress log.
func (m Model) Load() tea.Cmd {
	if m.port == nil {
		return nil
	}
	port := m.port
	return func() tea.Msg {
		entries, err := port.History(context.Background())
		return LoadedMsg{Entries: entries, Err: err}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.rebuild()
	case LoadedMsg:
		m.loaded = true
		m.err = msg.Err
		if msg.Err == nil {
			m.entries = msg.Entries
		}
		m.rebuild()
	}
	return m, nil
}

func (m Model) Entries() []progressdto.EntryOutput { return m.entries }

func (m *Model) rebuild() {
	if len(m.entries) == 0 {
		return
	}
	points := TimePoints(m.entries, time.Local)
	lo, hi := points[0].Time, points[0].Time
	for _, p := range points[1:] {
		if p.Time.Before(lo) {
			lo = p.Time
		}
		if p.Time.After(hi) {
			hi = p.Time
		}
	}
	if !hi.After(lo) {
		hi = lo.Add(24 * time.Hour)
	}
	w := max(m.width-4, 20)
	h := max(m.height-recentRows-6, 6)
	chart := timeserieslinechart.New(w, h,
		timeserieslinechart.WithYRange(0, 100),
		timeserieslinechart.WithTimeRange(lo, hi),
	)
	for _, p := range points {
		chart.Push(p)
	}
	chart.DrawBraille()
	m.chart = chart
}

// TimePoints places entries on a time axis in insertion order. Entries that
// share a date are spread an hour apart within that day so each stays
// visible.
func TimePoints(entries []progressdto.EntryOutput, loc *time.Location) []timeserieslinechart.TimePoint {
	seen := map[calendar.Date]int{}
	points := make([]timeserieslinechart.TimePoint, 0, len(entries))
	for _, e := range entries {
		n := seen[e.Date]
		seen[e.Date] = n + 1
		points = append(points, timeserieslinechart.TimePoint{
			Time:  e.Date.Time(loc).Add(time.Duration(n%24) * time.Hour),
			Value: float64(e.Value),
		})
	}
	return points
}

func (m Model) View() string {
	title := theme.Title.Render("📜 Your Growth Timeline") + "\n\n"
	switch {
	case m.err != nil:
		return title + theme.Failure.Render("Could not load progress: "+m.err.Error())
	case !m.loaded:
		return title + theme.Muted.Render("loading…")
	case len(m.entries) == 0:
		return title + theme.Muted.Render(EmptyMessage)
	}
	var sb strings.Builder
	sb.WriteString(title)
	sb.WriteString(m.chart.View())
	sb.WriteString("\n\n")
	start := max(len(m.entries)-recentRows, 0)
	for _, e := range m.entries[start:] {
		sb.WriteString(theme.Muted.Render(fmt.Sprintf("%s  %3d%%", e.Date, e.Value)) + "\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

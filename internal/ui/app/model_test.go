package app

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	progressdto "thrivehub/internal/modules/progress/dto"
	quotedto "thrivehub/internal/modules/quote/dto"
	reflectiondto "thrivehub/internal/modules/reflection/dto"
	"thrivehub/internal/platform/calendar"
	"thrivehub/internal/platform/clock"
	"thrivehub/internal/ui/components"
	historyview "thrivehub/internal/ui/views/history"
	progressview "thrivehub/internal/ui/views/progress"
)

type fakeQuotes struct{ calls int }

func (f *fakeQuotes) Daily(_ context.Context, cache *quotedto.QuoteCache) (quotedto.DailyQuoteOutput, error) {
	f.calls++
	cache.Quote = "Believe you can and you're halfway there."
	return quotedto.DailyQuoteOutput{Quote: cache.Quote, Fresh: true}, nil
}

type fakeReflections struct{}

func (fakeReflections) Append(_ context.Context, text string) (reflectiondto.EntryOutput, error) {
	return reflectiondto.EntryOutput{Text: text}, nil
}

type fakeProgress struct {
	entries []progressdto.EntryOutput
}

func (f *fakeProgress) Save(_ context.Context, value int) (progressdto.EntryOutput, error) {
	e := progressdto.EntryOutput{Date: calendar.MustParse("2024-06-01"), Value: value}
	f.entries = append(f.entries, e)
	return e, nil
}

func (f *fakeProgress) History(context.Context) ([]progressdto.EntryOutput, error) {
	return append([]progressdto.EntryOutput{}, f.entries...), nil
}

var start = time.Date(2024, 6, 1, 23, 59, 58, 0, time.Local)

func newTestModel() (Model, *fakeQuotes, *fakeProgress) {
	quotes := &fakeQuotes{}
	progress := &fakeProgress{}
	m := NewModel(quotes, fakeReflections{}, progress, clock.Fixed(start), nil)
	return m, quotes, progress
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(m Model, msg tea.Msg) (Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func TestTabCycling(t *testing.T) {
	t.Parallel()
	m, _, _ := newTestModel()
	for _, want := range []tabID{tabProgress, tabHistory, tabReflect} {
		m, _ = update(m, keyMsg("tab"))
		if m.activeTab != want {
			t.Fatalf("expected tab %d, got %d", want, m.activeTab)
		}
	}
}

func TestQuitKeyIsTextWhileTyping(t *testing.T) {
	t.Parallel()
	m, _, _ := newTestModel()
	m, _ = update(m, keyMsg("q"))
	if !strings.Contains(m.reflView.Value(), "q") {
		t.Fatalf("expected q in draft, got %q", m.reflView.Value())
	}

	m, _ = update(m, keyMsg("esc"))
	_, cmd := update(m, keyMsg("q"))
	if cmd == nil {
		t.Fatal("q should quit once the textarea is released")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("expected quit message")
	}
}

func TestQuoteReloadsWhenDayChanges(t *testing.T) {
	t.Parallel()
	m, quotes, _ := newTestModel()

	m, cmd := update(m, tickMsg(start.Add(time.Second)))
	if cmd == nil {
		t.Fatal("tick should schedule the next tick")
	}
	if m.now != start.Add(time.Second) {
		t.Fatalf("status clock not advanced: %s", m.now)
	}

	cmd = m.loadQuoteCmd()
	m, _ = update(m, cmd())
	if m.quote == "" || quotes.calls != 1 {
		t.Fatalf("quote not loaded: %q calls=%d", m.quote, quotes.calls)
	}

	m, _ = update(m, tickMsg(start.Add(3*time.Second)))
	if !strings.Contains(m.renderStatusBar(), "2024-06-02 00:00:01") {
		t.Fatalf("status bar should show the new date: %q", m.renderStatusBar())
	}
	if !strings.Contains(m.renderHeader(), "halfway") {
		t.Fatalf("header should show the quote: %q", m.renderHeader())
	}
}

func TestProgressSaveReloadsHistory(t *testing.T) {
	t.Parallel()
	m, _, progress := newTestModel()
	m, _ = update(m, keyMsg("tab"))
	_, cmd := update(m, keyMsg("enter"))
	saved := findSaved(cmd)
	if saved == nil {
		t.Fatal("enter on the progress tab should save")
	}
	m, cmd = update(m, *saved)
	if len(progress.entries) != 1 || progress.entries[0].Value != progressview.DefaultValue {
		t.Fatalf("unexpected saved entries %v", progress.entries)
	}
	if !strings.Contains(m.status, "progress 50% saved for 2024-06-01") {
		t.Fatalf("unexpected status %q", m.status)
	}
	loaded := findLoaded(cmd)
	if loaded == nil || len(loaded.Entries) != 1 {
		t.Fatalf("expected history reload with one entry, got %#v", loaded)
	}
}

// drain runs cmd and any batched commands it expands to.
func drain(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	batch, ok := msg.(tea.BatchMsg)
	if !ok {
		return []tea.Msg{msg}
	}
	var out []tea.Msg
	for _, c := range batch {
		out = append(out, drain(c)...)
	}
	return out
}

func findSaved(cmd tea.Cmd) *progressview.SavedMsg {
	for _, msg := range drain(cmd) {
		if saved, ok := msg.(progressview.SavedMsg); ok {
			return &saved
		}
	}
	return nil
}

func findLoaded(cmd tea.Cmd) *historyview.LoadedMsg {
	for _, msg := range drain(cmd) {
		if loaded, ok := msg.(historyview.LoadedMsg); ok {
			return &loaded
		}
	}
	return nil
}

func TestPaletteCommands(t *testing.T) {
	t.Parallel()
	m, _, progress := newTestModel()

	m, _ = update(m, components.PaletteSubmitMsg{Input: "progress:set 120"})
	if !strings.Contains(m.status, "between 0 and 100") {
		t.Fatalf("expected range error, got %q", m.status)
	}

	m, _ = update(m, components.PaletteSubmitMsg{Input: "progress:set 75"})
	if m.progView.Value() != 75 || m.activeTab != tabProgress {
		t.Fatalf("slider not set: value=%d tab=%d", m.progView.Value(), m.activeTab)
	}

	m, cmd := update(m, components.PaletteSubmitMsg{Input: "progress:save 90"})
	if cmd == nil {
		t.Fatal("progress:save should run a save")
	}
	_, _ = update(m, cmd())
	if len(progress.entries) != 1 || progress.entries[0].Value != 90 {
		t.Fatalf("unexpected saves %v", progress.entries)
	}

	m, _ = update(m, components.PaletteSubmitMsg{Input: "bogus"})
	if m.status != "unknown command: bogus" {
		t.Fatalf("unexpected status %q", m.status)
	}
}

func TestSameDay(t *testing.T) {
	t.Parallel()
	if !sameDay(start, start.Add(time.Second)) {
		t.Fatal("expected same day")
	}
	if sameDay(start, start.Add(3*time.Second)) {
		t.Fatal("expected day change at midnight")
	}
}

type recordingQuotes struct {
	mu     sync.Mutex
	caches []*quotedto.QuoteCache
	day    calendar.Date
	quote  string
}

func (r *recordingQuotes) Daily(_ context.Context, cache *quotedto.QuoteCache) (quotedto.DailyQuoteOutput, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.caches = append(r.caches, cache)
	cache.Date, cache.Quote = r.day, r.quote
	return quotedto.DailyQuoteOutput{Date: r.day, Quote: r.quote, Fresh: true}, nil
}

func TestOverlappingQuoteLoadsUseSeparateCaches(t *testing.T) {
	t.Parallel()
	quotes := &recordingQuotes{day: calendar.MustParse("2024-06-02"), quote: "today"}
	m := NewModel(quotes, fakeReflections{}, &fakeProgress{}, clock.Fixed(start), nil)

	first := m.loadQuoteCmd()
	_, second := update(m, components.PaletteSubmitMsg{Input: "quote:refresh"})

	var wg sync.WaitGroup
	msgs := make([]tea.Msg, 2)
	for i, cmd := range []tea.Cmd{first, second} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			msgs[i] = cmd()
		}()
	}
	wg.Wait()

	if len(quotes.caches) != 2 || quotes.caches[0] == quotes.caches[1] {
		t.Fatalf("each load needs its own cache, got %v", quotes.caches)
	}
	if m.cache.Quote != "" {
		t.Fatalf("model cache must only change in Update, got %+v", m.cache)
	}
	m, _ = update(m, msgs[0])
	if m.cache.Quote != "today" || m.cache.Date != quotes.day || m.quote != "today" {
		t.Fatalf("cache not applied from message: %+v quote=%q", m.cache, m.quote)
	}

	stale := quoteMsg{
		out:   quotedto.DailyQuoteOutput{Quote: "yesterday"},
		cache: quotedto.QuoteCache{Date: calendar.MustParse("2024-06-01"), Quote: "yesterday"},
	}
	m, _ = update(m, stale)
	if m.quote != "today" || m.cache.Date != quotes.day {
		t.Fatalf("a load for an earlier day must not win: %+v quote=%q", m.cache, m.quote)
	}
}

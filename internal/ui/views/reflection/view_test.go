package reflection

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	reflectiondto "thrivehub/internal/modules/reflection/dto"
	apperrors "thrivehub/internal/platform/errors"
)

type fakePort struct {
	saved []string
	err   error
}

func (f *fakePort) Append(_ context.Context, text string) (reflectiondto.EntryOutput, error) {
	if f.err != nil {
		return reflectiondto.EntryOutput{}, f.err
	}
	if strings.TrimSpace(text) == "" {
		return reflectiondto.EntryOutput{}, apperrors.ErrEmptyReflection
	}
	f.saved = append(f.saved, text)
	return reflectiondto.EntryOutput{Text: text}, nil
}

func typeText(m Model, s string) Model {
	for _, r := range s {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func submit(t *testing.T, m Model) Model {
	t.Helper()
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	if cmd == nil {
		t.Fatal("ctrl+s should produce a save command")
	}
	m, _ = m.Update(cmd())
	return m
}

func TestSubmitSavesAndClears(t *testing.T) {
	t.Parallel()
	port := &fakePort{}
	m := typeText(New(port), "Learned retries today")
	m = submit(t, m)

	if len(port.saved) != 1 || port.saved[0] != "Learned retries today" {
		t.Fatalf("unexpected saved reflections: %v", port.saved)
	}
	if m.Value() != "" {
		t.Fatalf("draft should be cleared, got %q", m.Value())
	}
	if !strings.Contains(m.Flash(), "Thank you for sharing") {
		t.Fatalf("unexpected flash %q", m.Flash())
	}
}

func TestSubmitEmptyWarns(t *testing.T) {
	t.Parallel()
	port := &fakePort{}
	m := submit(t, typeText(New(port), "   "))

	if len(port.saved) != 0 {
		t.Fatalf("nothing should be saved, got %v", port.saved)
	}
	if m.Flash() != "Please write something before submitting." {
		t.Fatalf("unexpected flash %q", m.Flash())
	}
	if m.Value() != "   " {
		t.Fatalf("draft should be kept after a warning, got %q", m.Value())
	}
}

func TestSubmitStoreFailure(t *testing.T) {
	t.Parallel()
	port := &fakePort{err: errors.New("disk full")}
	m := submit(t, typeText(New(port), "hello"))
	if !strings.Contains(m.Flash(), "disk full") {
		t.Fatalf("expected failure flash, got %q", m.Flash())
	}
}

func TestOnlyOneSubmissionInFlight(t *testing.T) {
	t.Parallel()
	m := typeText(New(&fakePort{}), "x")
	if cmd := m.Submit(); cmd == nil {
		t.Fatal("first submit should run")
	}
	if cmd := m.Submit(); cmd != nil {
		t.Fatal("second submit should wait for the first")
	}
}

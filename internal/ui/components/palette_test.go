package components

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestMatching(t *testing.T) {
	t.Parallel()
	got := Matching("PROGRESS", 5)
	if len(got) != 2 || got[0] != "progress:save <0-100>" || got[1] != "progress:set <0-100>" {
		t.Fatalf("unexpected matches: %v", got)
	}
	if all := Matching("", 3); len(all) != 3 {
		t.Fatalf("limit not applied: %v", all)
	}
	if none := Matching("nope", 5); len(none) != 0 {
		t.Fatalf("expected no matches, got %v", none)
	}
}

func TestPaletteSubmitAndCancel(t *testing.T) {
	t.Parallel()
	p := NewPalette()
	p.Open()
	if !p.Visible() {
		t.Fatal("palette should be visible after open")
	}
	for _, r := range "history:reload" {
		p, _ = p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	p, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if p.Visible() {
		t.Fatal("palette should close on enter")
	}
	msg, ok := cmd().(PaletteSubmitMsg)
	if !ok || msg.Input != "history:reload" {
		t.Fatalf("unexpected submit message: %#v", msg)
	}

	p.Open()
	p, cmd = p.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if p.Visible() {
		t.Fatal("palette should close on esc")
	}
	if _, ok := cmd().(PaletteCancelMsg); !ok {
		t.Fatal("expected cancel message")
	}
}

package main

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/goleak"

	"github.com/eringen/showcase/deck"
)

func testSlides() []deck.Slide {
	return []deck.Slide{
		{Title: "Opening", Layout: deck.LayoutCover},
		{Title: "Numbers", Layout: deck.LayoutMetrics, Items: []deck.Item{{Label: "Users", Value: 40, Suffix: "k"}}},
		{Title: "Goodbye", Layout: deck.LayoutClosing},
	}
}

// settle feeds navigator events into the model until it is idle again.
func settle(t *testing.T, p *presenter) {
	t.Helper()
	deadline := time.After(3 * time.Second)
	for {
		select {
		case m := <-p.events:
			p.Update(m)
		case <-deadline:
			t.Fatalf("presenter never settled, state %+v", p.state)
		}
		if !p.state.Animating() && len(p.events) == 0 && !p.nav.State().Animating() {
			return
		}
	}
}

func TestPresenterNavigates(t *testing.T) {
	defer goleak.VerifyNone(t)
	p := newPresenter(testSlides(), 0)
	defer p.close()

	p.Update(tea.KeyMsg{Type: tea.KeyRight})
	p.Update(tea.KeyMsg{Type: tea.KeyRight})
	settle(t, p)

	if p.state.Index != 1 {
		t.Fatalf("index = %d, want 1 (second key press lands mid-transition)", p.state.Index)
	}
	if p.shown != elements(p.slides[1]) {
		t.Errorf("shown = %d, want every element revealed", p.shown)
	}
	view := p.View()
	if !strings.Contains(view, "Numbers") || !strings.Contains(view, "2 / 3") {
		t.Errorf("view missing slide title or counter:\n%s", view)
	}
}

func TestPresenterJumpAndQuit(t *testing.T) {
	defer goleak.VerifyNone(t)
	p := newPresenter(testSlides(), 0)
	defer p.close()

	p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("3")})
	settle(t, p)
	if p.state.Index != 2 {
		t.Fatalf("index = %d, want 2", p.state.Index)
	}

	_, cmd := p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("q returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("q did not quit")
	}
}

func TestFormatCount(t *testing.T) {
	tests := []struct {
		v, target float64
		want      string
	}{
		{0, 128, "0"},
		{63.7, 128, "63"},
		{128, 128, "128"},
		{2.5, 2.5, "2.5"},
	}
	for _, tt := range tests {
		if got := formatCount(tt.v, tt.target); got != tt.want {
			t.Errorf("formatCount(%v, %v) = %q, want %q", tt.v, tt.target, got, tt.want)
		}
	}
}

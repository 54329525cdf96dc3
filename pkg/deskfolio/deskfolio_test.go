package deskfolio

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/deskfolio/internal/config"
	"github.com/Gaurav-Gosain/deskfolio/internal/surface"
)

type fakePTY struct{ w, h int }

func (p fakePTY) Width() int  { return p.w }
func (p fakePTY) Height() int { return p.h }

func newTestModel(t *testing.T, opts ...Option) *Model {
	t.Helper()
	m := New(append([]Option{WithUserConfig(config.DefaultConfig())}, opts...)...)
	t.Cleanup(m.Cleanup)
	return m
}

func TestNewForPTY(t *testing.T) {
	m := NewForPTY(fakePTY{w: 100, h: 30}, WithUserConfig(config.DefaultConfig()))
	t.Cleanup(m.Cleanup)
	if m.Width != 100 || m.Height != 30 {
		t.Errorf("size = %dx%d, want 100x30", m.Width, m.Height)
	}
	if len(m.Catalog.Apps) == 0 {
		t.Errorf("built-in catalog not loaded")
	}
	if m.Mode != DesktopMode {
		t.Errorf("mode = %v, want desktop", m.Mode)
	}
}

func TestWithBrand(t *testing.T) {
	m := newTestModel(t, WithBrand("acme", "1.2.3"))
	if m.Brand != "acme" || m.Version != "1.2.3" {
		t.Errorf("brand = %q %q", m.Brand, m.Version)
	}
}

func TestFilterMouseMotion(t *testing.T) {
	m := newTestModel(t, WithSize(120, 40))
	motion := tea.MouseMotionMsg{X: 10, Y: 10}

	if got := FilterMouseMotion(m, motion); got != nil {
		t.Errorf("idle motion passed the filter")
	}
	click := tea.MouseClickMsg{X: 10, Y: 10, Button: tea.MouseLeft}
	if got := FilterMouseMotion(m, click); got == nil {
		t.Errorf("click was filtered")
	}

	m.OpenApp("terminal")
	w, ok := m.FocusedWindow()
	if !ok {
		t.Fatal("no window opened")
	}
	m.Surface.BeginDrag(w.ID, surface.Point{X: w.Position.X + 2, Y: w.Position.Y})
	if got := FilterMouseMotion(m, motion); got == nil {
		t.Errorf("motion dropped during a drag")
	}
}

func TestWithSkipBoot(t *testing.T) {
	prev := config.AnimationsEnabled
	t.Cleanup(func() { config.AnimationsEnabled = prev })

	config.AnimationsEnabled = true
	if m := newTestModel(t, WithSkipBoot(true)); m.Booting() {
		t.Error("WithSkipBoot still showed the boot screen")
	}
	config.AnimationsEnabled = true
	if m := newTestModel(t); !m.Booting() {
		t.Error("boot screen missing by default")
	}
}

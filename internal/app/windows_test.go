package app

import (
	"testing"
	"time"

	"github.com/Gaurav-Gosain/deskfolio/internal/config"
	"github.com/Gaurav-Gosain/deskfolio/internal/panel"
	"github.com/Gaurav-Gosain/deskfolio/internal/request"
)

func browserOf(t *testing.T, m *OS) (string, *panel.BrowserPanel) {
	t.Helper()
	w, ok := m.Surface.FindByApp(panel.Browser)
	if !ok {
		t.Fatal("no browser window")
	}
	b, ok := panelOf(w).(*panel.BrowserPanel)
	if !ok {
		t.Fatalf("browser window holds %T", w.Content)
	}
	return w.ID, b
}

func TestOpenAppDedupes(t *testing.T) {
	m, _ := newTestOS(t)
	m.OpenApp(panel.About)
	first, _ := m.FocusedWindow()
	m.OpenApp(panel.Terminal)
	m.OpenApp(panel.About)

	if m.Surface.Len() != 2 {
		t.Fatalf("windows = %d, want 2", m.Surface.Len())
	}
	if m.Surface.Active() != first.ID {
		t.Errorf("reopening did not focus the existing window")
	}
}

func TestOpenRestoresMinimized(t *testing.T) {
	m, _ := newTestOS(t)
	m.OpenApp(panel.Contact)
	w, _ := m.FocusedWindow()
	m.Minimize(w.ID)

	m.OpenApp(panel.Contact)
	got, _ := m.Surface.Window(w.ID)
	if got.Minimized || m.Surface.Active() != w.ID {
		t.Errorf("window = %+v, active %s", got, m.Surface.Active())
	}
}

func TestOpenUnknownApp(t *testing.T) {
	m, _ := newTestOS(t)
	m.OpenApp("nope")
	if m.Surface.Len() != 0 {
		t.Errorf("unknown app opened a window")
	}
	if len(m.Notifications) != 1 || m.Notifications[0].Type != "warning" {
		t.Errorf("notifications = %+v", m.Notifications)
	}
}

func TestOpenProjectFromCatalog(t *testing.T) {
	m, _ := newTestOS(t)
	p := m.Catalog.Projects[0]
	m.OpenApp(p.ID)
	w, ok := m.FocusedWindow()
	if !ok || w.AppID != p.ID {
		t.Fatalf("focused = %+v, want %s", w, p.ID)
	}
}

func TestOpenURL(t *testing.T) {
	t.Run("opens a browser", func(t *testing.T) {
		m, _ := newTestOS(t)
		if cmd := m.OpenURL("https://example.com", "Example"); cmd == nil {
			t.Errorf("expected a load command")
		}
		id, b := browserOf(t, m)
		if b.Strip().Len() != 1 {
			t.Errorf("tabs = %d, want 1", b.Strip().Len())
		}
		if m.Surface.Active() != id {
			t.Errorf("browser not focused")
		}
		if m.Mode != AppMode {
			t.Errorf("mode = %v, want app", m.Mode)
		}
	})

	t.Run("adds a tab to an open browser", func(t *testing.T) {
		m, _ := newTestOS(t)
		m.OpenURL("https://example.com", "")
		m.OpenApp(panel.About)
		m.OpenURL("https://example.org", "Org")

		id, b := browserOf(t, m)
		if m.Surface.Len() != 2 {
			t.Errorf("windows = %d, want 2", m.Surface.Len())
		}
		if b.Strip().Len() != 2 {
			t.Errorf("tabs = %d, want 2", b.Strip().Len())
		}
		if m.Surface.Active() != id {
			t.Errorf("browser not focused")
		}
		w, _ := m.Surface.Window(id)
		if w.Title != "Org" {
			t.Errorf("title = %q, want the active tab's", w.Title)
		}
	})

	t.Run("restores a minimized browser", func(t *testing.T) {
		m, _ := newTestOS(t)
		m.OpenURL("https://example.com", "")
		id, _ := browserOf(t, m)
		m.Minimize(id)

		m.OpenURL("https://example.org", "")
		w, _ := m.Surface.Window(id)
		if w.Minimized {
			t.Errorf("browser still minimized")
		}
		if m.Surface.Active() != id {
			t.Errorf("browser not focused")
		}
	})

	t.Run("requests route through Open", func(t *testing.T) {
		m, _ := newTestOS(t)
		m.Open(request.URL("https://example.com", ""))
		if _, ok := m.Surface.FindByApp(panel.Browser); !ok {
			t.Errorf("url request did not open a browser")
		}
	})
}

func TestCloseFocusesNextWindow(t *testing.T) {
	m, _ := newTestOS(t)
	m.OpenApp(panel.Terminal)
	first, _ := m.FocusedWindow()
	m.OpenApp(panel.About)
	second, _ := m.FocusedWindow()

	m.Close(second.ID)
	if m.Surface.Active() != first.ID {
		t.Errorf("active = %q, want %q", m.Surface.Active(), first.ID)
	}
	if m.Mode != AppMode {
		t.Errorf("mode = %v, want app", m.Mode)
	}

	m.Close(first.ID)
	if m.Surface.Active() != "" {
		t.Errorf("active = %q after closing everything", m.Surface.Active())
	}
	if m.Mode != DesktopMode {
		t.Errorf("mode = %v, want desktop", m.Mode)
	}
}

func TestMinimizeSkipsMinimizedWindows(t *testing.T) {
	m, _ := newTestOS(t)
	m.OpenApp(panel.Terminal)
	a, _ := m.FocusedWindow()
	m.OpenApp(panel.About)
	b, _ := m.FocusedWindow()
	m.OpenApp(panel.Contact)
	c, _ := m.FocusedWindow()

	m.Minimize(b.ID)
	m.Minimize(c.ID)
	if m.Surface.Active() != a.ID {
		t.Errorf("active = %q, want %q", m.Surface.Active(), a.ID)
	}

	m.RestoreLastMinimized()
	if m.Surface.Active() != c.ID {
		t.Errorf("restore picked %q, want %q", m.Surface.Active(), c.ID)
	}
}

func TestToggleMaximizeFixedSize(t *testing.T) {
	m, _ := newTestOS(t)
	m.OpenApp(panel.Settings)
	w, _ := m.FocusedWindow()
	if w.Resizable {
		t.Fatal("settings should open at a fixed size")
	}
	m.ToggleMaximize(w.ID)
	got, _ := m.Surface.Window(w.ID)
	if got.Maximized || got.Size != w.Size {
		t.Errorf("fixed-size window changed: %+v", got)
	}
}

func TestToggleMaximizeRoundTrip(t *testing.T) {
	m, _ := newTestOS(t)
	m.OpenApp(panel.Terminal)
	w, _ := m.FocusedWindow()

	m.ToggleMaximize(w.ID)
	m.ToggleMaximize(w.ID)

	got, _ := m.Surface.Window(w.ID)
	if got.Maximized || got.Position != w.Position || got.Size != w.Size {
		t.Errorf("restored to %+v %+v, want %+v %+v", got.Position, got.Size, w.Position, w.Size)
	}
}

func TestTitleClick(t *testing.T) {
	m, clock := newTestOS(t)

	tests := []struct {
		name string
		id   string
		gap  time.Duration
		want bool
	}{
		{name: "first click", id: "a", want: false},
		{name: "quick second click", id: "a", gap: 100 * time.Millisecond, want: true},
		{name: "third click starts over", id: "a", gap: 100 * time.Millisecond, want: false},
		{name: "too slow", id: "a", gap: config.DoubleClickInterval + time.Millisecond, want: false},
		{name: "other window", id: "b", gap: 10 * time.Millisecond, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clock.Advance(tt.gap)
			if got := m.TitleClick(tt.id); got != tt.want {
				t.Errorf("TitleClick = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestReconcileClosesFinishedBrowser(t *testing.T) {
	m, _ := newTestOS(t)
	m.OpenURL("https://example.com", "")
	id, b := browserOf(t, m)

	b.CloseTab(b.Strip().ActiveID())
	m.Broadcast(nil)

	if _, ok := m.Surface.Window(id); ok {
		t.Errorf("browser window survived closing its last tab")
	}
}

func TestMoveFocusedKeepsVisible(t *testing.T) {
	m, _ := newTestOS(t)
	m.OpenApp(panel.Terminal)
	w, _ := m.FocusedWindow()

	for range 100 {
		m.MoveFocused(5, 0)
	}
	got, _ := m.Surface.Window(w.ID)
	keep := m.Surface.Limits().KeepVisible
	if got.Position.X > m.Width-keep.Width {
		t.Errorf("x = %d, more than %d past the right edge", got.Position.X, keep.Width)
	}

	for range 100 {
		m.MoveFocused(0, -1)
	}
	got, _ = m.Surface.Window(w.ID)
	if got.Position.Y != m.GetTopMargin() {
		t.Errorf("y = %d, want %d", got.Position.Y, m.GetTopMargin())
	}
}

func TestBusy(t *testing.T) {
	m, _ := newTestOS(t)
	if m.Busy() {
		t.Fatal("empty desktop is busy")
	}
	m.OpenURL("https://example.com", "")
	if !m.Busy() {
		t.Errorf("loading browser is not busy")
	}
}

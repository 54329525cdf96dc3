package app

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/deskfolio/internal/config"
	"github.com/Gaurav-Gosain/deskfolio/internal/panel"
	"github.com/Gaurav-Gosain/deskfolio/internal/request"
	"github.com/Gaurav-Gosain/deskfolio/internal/surface"
)

// panelOf returns the panel drawn inside a window.
func panelOf(w surface.Window) panel.Panel {
	p, _ := w.Content.(panel.Panel)
	return p
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// FocusedWindow returns the active window.
func (m *OS) FocusedWindow() (surface.Window, bool) {
	id := m.Surface.Active()
	if id == "" {
		return surface.Window{}, false
	}
	return m.Surface.Window(id)
}

// FocusedPanel returns the panel of the active window, or nil.
func (m *OS) FocusedPanel() panel.Panel {
	w, ok := m.FocusedWindow()
	if !ok {
		return nil
	}
	return panelOf(w)
}

// HasVisibleWindows reports whether any window is on screen.
func (m *OS) HasVisibleWindows() bool {
	_, ok := m.Surface.Topmost()
	return ok
}

// OpenApp opens or focuses the window for appID.
func (m *OS) OpenApp(appID string) tea.Cmd {
	return m.Open(request.App(appID, ""))
}

// Open handles an open request. An app that already has a window is
// restored and focused instead of opened twice.
func (m *OS) Open(req request.Request) tea.Cmd {
	if req.Kind == request.OpenURL {
		return m.OpenURL(req.URL, req.Title)
	}
	if w, ok := m.Surface.FindByApp(req.AppID); ok {
		m.Surface.Open(surface.WindowSpec{AppID: req.AppID})
		m.LogInfo("Focused %s (%s)", w.Title, shortID(w.ID))
		return nil
	}
	p, ok := m.Registry.Build(req)
	if !ok {
		m.ShowNotification(fmt.Sprintf("Unknown app %q", req.AppID), "warning", config.NotificationDuration)
		return nil
	}
	return m.openPanel(req.AppID, p)
}

// OpenURL shows url in the browser. An existing browser window gets a new
// tab, and is restored first when minimized. Without one, a browser window
// opens with url as its only tab.
func (m *OS) OpenURL(url, title string) tea.Cmd {
	if w, ok := m.Surface.FindByApp(panel.Browser); ok {
		if b, isBrowser := panelOf(w).(*panel.BrowserPanel); isBrowser {
			if w.Minimized {
				m.Surface.Restore(w.ID)
				m.LogInfo("Restored %s for %s", w.Title, url)
			} else {
				m.Surface.Focus(w.ID)
			}
			cmd := b.OpenTab(url, title)
			m.syncTitle(w.ID)
			return cmd
		}
	}
	p, ok := m.Registry.Build(request.URL(url, title))
	if !ok {
		m.LogError("No browser registered for %s", url)
		return nil
	}
	return m.openPanel(panel.Browser, p)
}

func (m *OS) openPanel(appID string, p panel.Panel) tea.Cmd {
	spec := surface.WindowSpec{AppID: appID, Title: p.Title(), Content: p}
	if f, ok := p.(panel.FixedSize); ok {
		w, h := f.FixedSize()
		spec.FixedSize = surface.Size{Width: w, Height: h}
	}
	id := m.Surface.Open(spec)
	m.LogInfo("Opened %s (%s)", spec.Title, shortID(id))
	m.EnterAppMode()

	if i, ok := p.(panel.Initializer); ok {
		return i.Init()
	}
	return nil
}

// Close closes a window and focuses the next one down the stack.
func (m *OS) Close(id string) {
	w, ok := m.Surface.Window(id)
	if !ok {
		return
	}
	m.Surface.Close(id)
	m.LogInfo("Closed %s (%s)", w.Title, shortID(id))
	m.focusTopmost()
}

// Minimize hides a window and focuses the next one down the stack.
func (m *OS) Minimize(id string) {
	w, ok := m.Surface.Window(id)
	if !ok || w.Minimized {
		return
	}
	m.Surface.Minimize(id)
	m.LogInfo("Minimized %s", w.Title)
	m.focusTopmost()
}

// Restore shows a minimized window and focuses it.
func (m *OS) Restore(id string) {
	w, ok := m.Surface.Window(id)
	if !ok {
		return
	}
	m.Surface.Restore(id)
	if w.Minimized {
		m.LogInfo("Restored %s", w.Title)
	}
}

// RestoreLastMinimized restores the most recently opened minimized window.
func (m *OS) RestoreLastMinimized() {
	minimized := m.Surface.MinimizedWindows()
	if len(minimized) == 0 {
		return
	}
	m.Restore(minimized[len(minimized)-1].ID)
}

// ToggleMaximize maximizes or restores a window. Fixed-size windows keep
// their size.
func (m *OS) ToggleMaximize(id string) {
	w, ok := m.Surface.Window(id)
	if !ok {
		return
	}
	if !w.Resizable && !w.Maximized {
		m.LogInfo("%s has a fixed size", w.Title)
		return
	}
	m.Surface.Focus(id)
	m.Surface.ToggleMaximize(id)
}

// Focus raises a window and marks it active.
func (m *OS) Focus(id string) {
	m.Surface.Focus(id)
}

func (m *OS) focusTopmost() {
	if m.Surface.Active() != "" {
		return
	}
	if top, ok := m.Surface.Topmost(); ok {
		m.Surface.Focus(top.ID)
		return
	}
	m.ExitAppMode()
}

// CycleWindow focuses the next (step 1) or previous (step -1) visible
// window in opening order.
func (m *OS) CycleWindow(step int) {
	var visible []surface.Window
	for _, w := range m.Surface.Windows() {
		if !w.Minimized {
			visible = append(visible, w)
		}
	}
	if len(visible) == 0 {
		return
	}
	current := -1
	for i, w := range visible {
		if w.ID == m.Surface.Active() {
			current = i
			break
		}
	}
	next := 0
	if current >= 0 {
		next = ((current+step)%len(visible) + len(visible)) % len(visible)
	}
	m.Surface.Focus(visible[next].ID)
}

// MoveFocused moves the active window by (dx, dy), keeping the same
// margins as a mouse drag.
func (m *OS) MoveFocused(dx, dy int) {
	w, ok := m.FocusedWindow()
	if !ok || w.Maximized {
		return
	}
	pos := m.keepVisible(w.Position.Add(surface.Point{X: dx, Y: dy}), w.Size)
	m.Surface.Update(w.ID, surface.Patch{Position: &pos})
}

// ResizeFocused grows or shrinks the active window from its bottom-right
// corner.
func (m *OS) ResizeFocused(dw, dh int) {
	w, ok := m.FocusedWindow()
	if !ok || w.Maximized || !w.Resizable {
		return
	}
	size := surface.Size{Width: w.Size.Width + dw, Height: w.Size.Height + dh}
	m.Surface.Update(w.ID, surface.Patch{Size: &size})
}

// TitleClick records a click on a window's title bar and reports whether it
// completes a double click.
func (m *OS) TitleClick(id string) bool {
	now := m.now()
	double := m.lastTitleClick == id && now.Sub(m.lastTitleClickAt) <= config.DoubleClickInterval
	if double {
		m.lastTitleClick = ""
		return true
	}
	m.lastTitleClick, m.lastTitleClickAt = id, now
	return false
}

func (m *OS) syncTitle(id string) {
	w, ok := m.Surface.Window(id)
	if !ok {
		return
	}
	p := panelOf(w)
	if p == nil {
		return
	}
	if title := p.Title(); title != w.Title {
		m.Surface.Update(id, surface.Patch{Title: &title})
	}
}

// reconcile closes windows whose panel asked to close and refreshes titles.
func (m *OS) reconcile() {
	for _, w := range m.Surface.Windows() {
		if c, ok := panelOf(w).(panel.Closer); ok && c.WantsClose() {
			m.Close(w.ID)
			continue
		}
		m.syncTitle(w.ID)
	}
}

// SendToWindow delivers msg to one window's panel.
func (m *OS) SendToWindow(id string, msg tea.Msg) tea.Cmd {
	w, ok := m.Surface.Window(id)
	if !ok {
		return nil
	}
	p := panelOf(w)
	if p == nil {
		return nil
	}
	cmd := p.Update(msg)
	m.reconcile()
	return cmd
}

// SendToFocused delivers msg to the active window's panel.
func (m *OS) SendToFocused(msg tea.Msg) tea.Cmd {
	return m.SendToWindow(m.Surface.Active(), msg)
}

// Broadcast delivers msg to every panel. Panels ignore messages that are
// not theirs, such as a page load for another browser's tab.
func (m *OS) Broadcast(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	for _, w := range m.Surface.Windows() {
		if p := panelOf(w); p != nil {
			cmds = append(cmds, p.Update(msg))
		}
	}
	m.reconcile()
	return tea.Batch(cmds...)
}

// Busy reports whether any panel has work in flight.
func (m *OS) Busy() bool {
	for _, w := range m.Surface.Windows() {
		if b, ok := panelOf(w).(panel.Busy); ok && b.Busy() {
			return true
		}
	}
	return false
}

package app

import (
	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/deskfolio/internal/config"
	"github.com/Gaurav-Gosain/deskfolio/internal/panel"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/charmbracelet/x/ansi"
)

// DockItem is one entry in the dock: an app launcher, or a chip for a
// minimized window when WindowID is set.
type DockItem struct {
	AppID    string
	WindowID string
	Label    string
	Running  bool
	Rect     uv.Rectangle
}

// DockItems lays out the dock row: the catalog apps, then a separator and
// one chip per minimized window. The row is centered; names are dropped when
// it does not fit.
func (m *OS) DockItems() []DockItem {
	if config.GetDockHeight() == 0 {
		return nil
	}
	items := m.dockItems(true)
	if dockWidth(items) > m.GetRenderWidth() {
		items = m.dockItems(false)
	}

	x := max((m.GetRenderWidth()-dockWidth(items))/2, 0)
	y := m.GetDockY()
	for i := range items {
		if i > 0 && items[i].WindowID != "" && items[i-1].WindowID == "" {
			x += ansi.StringWidth(config.GetDockSeparator())
		} else if i > 0 {
			x++
		}
		w := ansi.StringWidth(items[i].Label)
		items[i].Rect = uv.Rect(x, y, w, 1)
		x += w
	}
	return items
}

func (m *OS) dockItems(withNames bool) []DockItem {
	var items []DockItem
	for _, a := range m.Catalog.Apps {
		_, running := m.Surface.FindByApp(a.ID)
		label := " " + a.Icon
		if withNames {
			label += " " + a.Name
		}
		if running {
			label += config.GetDockRunning()
		} else {
			label += " "
		}
		items = append(items, DockItem{AppID: a.ID, Label: label, Running: running})
	}
	for _, w := range m.Surface.MinimizedWindows() {
		label := " " + config.GetDockMinimized()
		if withNames {
			label += " " + truncateName(w.Title, config.MaxNameLengthDock)
		}
		items = append(items, DockItem{AppID: w.AppID, WindowID: w.ID, Label: label + " "})
	}
	return items
}

func dockWidth(items []DockItem) int {
	width := 0
	for i, it := range items {
		if i > 0 && it.WindowID != "" && items[i-1].WindowID == "" {
			width += ansi.StringWidth(config.GetDockSeparator())
		} else if i > 0 {
			width++
		}
		width += ansi.StringWidth(it.Label)
	}
	return width
}

func truncateName(name string, maxLen int) string {
	if ansi.StringWidth(name) <= maxLen {
		return name
	}
	return ansi.Truncate(name, maxLen, "…")
}

// DockItemAt returns the dock entry at (x, y).
func (m *OS) DockItemAt(x, y int) (DockItem, bool) {
	p := uv.Pos(x, y)
	for _, it := range m.DockItems() {
		if p.In(it.Rect) {
			return it, true
		}
	}
	return DockItem{}, false
}

// ActivateDockItem opens an app or restores a minimized window.
func (m *OS) ActivateDockItem(it DockItem) tea.Cmd {
	if it.WindowID != "" {
		m.Restore(it.WindowID)
		m.EnterAppMode()
		return nil
	}
	return m.OpenApp(it.AppID)
}

// DesktopIcon is a project shortcut drawn on the wallpaper.
type DesktopIcon struct {
	AppID string
	Glyph string
	Label string
	Rect  uv.Rectangle
}

// DesktopIcons returns one icon per catalog project, placed at its catalog
// cell below the menu bar.
func (m *OS) DesktopIcons() []DesktopIcon {
	if !config.ShowIcons {
		return nil
	}
	glyph := "▤"
	if a, ok := m.Catalog.App(panel.Projects); ok && a.Icon != "" {
		glyph = a.Icon
	}
	icons := make([]DesktopIcon, 0, len(m.Catalog.Projects))
	for _, p := range m.Catalog.Projects {
		icons = append(icons, DesktopIcon{
			AppID: p.ID,
			Glyph: glyph,
			Label: truncateName(p.Name, config.DesktopIconWidth),
			Rect: uv.Rect(p.Icon.X, p.Icon.Y+m.GetTopMargin(),
				config.DesktopIconWidth, config.DesktopIconHeight),
		})
	}
	return icons
}

// IconAt returns the desktop icon at (x, y).
func (m *OS) IconAt(x, y int) (DesktopIcon, bool) {
	p := uv.Pos(x, y)
	for _, ic := range m.DesktopIcons() {
		if p.In(ic.Rect) {
			return ic, true
		}
	}
	return DesktopIcon{}, false
}

// MenuBarPart is a clickable region of the menu bar.
type MenuBarPart int

const (
	MenuBarNone MenuBarPart = iota
	MenuBarBrand
	MenuBarControlCenter
)

const menuBarControlWidth = 3

// MenuBarPartAt returns the menu bar region at column x of the top row.
func (m *OS) MenuBarPartAt(x int) MenuBarPart {
	brand := ansi.StringWidth(m.brandLabel())
	switch {
	case x >= m.GetRenderWidth()-menuBarControlWidth:
		return MenuBarControlCenter
	case x < brand:
		return MenuBarBrand
	}
	return MenuBarNone
}

func (m *OS) brandLabel() string {
	return " " + config.GetMenuBarBrand() + " " + m.Brand + " "
}

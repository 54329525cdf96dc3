package app

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/deskfolio/internal/config"
	"github.com/Gaurav-Gosain/deskfolio/internal/panel"
	"github.com/Gaurav-Gosain/deskfolio/internal/prefs"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/charmbracelet/x/ansi"
)

// MenuKind tells the two dropdowns apart.
type MenuKind int

const (
	// ControlCenterMenu drops down from the menu bar.
	ControlCenterMenu MenuKind = iota
	// ContextMenu opens on a desktop right-click.
	ContextMenu
)

// Menu item actions.
const (
	ActionDarkMode = "dark_mode"
	ActionFontSize = "font_size"
	ActionSettings = "settings"
	ActionOpenURL  = "open_url"
	ActionRefresh  = "refresh"
	ActionHelp     = "help"
	ActionAbout    = "about"
	ActionLogs     = "logs"
)

// MenuItem is one row. Items without an Action are headings.
type MenuItem struct {
	Label  string
	Value  string // right-aligned
	Action string
	URL    string
}

// Menu is an open dropdown. X and Y are the top-left border cell.
type Menu struct {
	Kind     MenuKind
	X, Y     int
	Width    int
	Items    []MenuItem
	Selected int
}

// Bounds returns the cells the menu covers, border included.
func (mn *Menu) Bounds() uv.Rectangle {
	return uv.Rect(mn.X, mn.Y, mn.Width, len(mn.Items)+2)
}

// Contains reports whether (x, y) is on the menu.
func (mn *Menu) Contains(x, y int) bool {
	return uv.Pos(x, y).In(mn.Bounds())
}

// ItemAt returns the selectable item at (x, y), or -1.
func (mn *Menu) ItemAt(x, y int) int {
	if !mn.Contains(x, y) {
		return -1
	}
	i := y - mn.Y - 1
	if i < 0 || i >= len(mn.Items) || mn.Items[i].Action == "" {
		return -1
	}
	return i
}

// Move steps the selection over selectable items, wrapping around.
func (mn *Menu) Move(step int) {
	n := len(mn.Items)
	if n == 0 {
		return
	}
	i := mn.Selected
	for range n {
		i = ((i+step)%n + n) % n
		if mn.Items[i].Action != "" {
			mn.Selected = i
			return
		}
	}
}

func (mn *Menu) selectFirst() {
	mn.Selected = -1
	mn.Move(1)
}

// valueStart returns the column, relative to X, where an item's value begins.
func (mn *Menu) valueStart(item MenuItem) int {
	return mn.Width - 2 - ansi.StringWidth(item.Value)
}

func (m *OS) controlCenterItems() []MenuItem {
	p := m.Prefs.Current()
	mode := "Off"
	if p.DarkMode {
		mode = "On"
	}
	items := []MenuItem{
		{Label: "Dark Mode", Value: mode, Action: ActionDarkMode},
		{Label: "Text Size", Value: fmt.Sprintf("- %dpx +", p.FontSize), Action: ActionFontSize},
		{Label: "System Settings", Action: ActionSettings},
	}
	if len(m.Catalog.Portfolios) > 0 {
		items = append(items, MenuItem{Label: "Portfolio Versions"})
		for _, l := range m.Catalog.Portfolios {
			items = append(items, MenuItem{Label: l.Title, Value: "↗", Action: ActionOpenURL, URL: l.URL})
		}
	}
	return items
}

func contextMenuItems() []MenuItem {
	return []MenuItem{
		{Label: "Refresh", Action: ActionRefresh},
		{Label: "Settings", Action: ActionSettings},
		{Label: "Keyboard Shortcuts", Action: ActionHelp},
		{Label: "System Logs", Action: ActionLogs},
		{Label: "About This Desktop", Action: ActionAbout},
	}
}

// ToggleControlCenter opens the control center under its menu bar glyph, or
// closes it.
func (m *OS) ToggleControlCenter() {
	if m.Menu != nil && m.Menu.Kind == ControlCenterMenu {
		m.CloseMenu()
		return
	}
	width := min(config.ControlCenterWidth, m.GetRenderWidth())
	m.Menu = &Menu{
		Kind:  ControlCenterMenu,
		X:     max(m.GetRenderWidth()-width, 0),
		Y:     m.GetTopMargin(),
		Width: width,
		Items: m.controlCenterItems(),
	}
	m.Menu.selectFirst()
}

// OpenContextMenu opens the desktop menu at (x, y), shifted to fit.
func (m *OS) OpenContextMenu(x, y int) {
	items := contextMenuItems()
	width := min(config.ContextMenuWidth, m.GetRenderWidth())
	height := len(items) + 2
	m.Menu = &Menu{
		Kind:  ContextMenu,
		X:     max(min(x, m.GetRenderWidth()-width), 0),
		Y:     max(min(y, m.GetDockY()-height), m.GetTopMargin()),
		Width: width,
		Items: items,
	}
	m.Menu.selectFirst()
}

// CloseMenu closes any open dropdown.
func (m *OS) CloseMenu() {
	m.Menu = nil
}

// refreshMenu re-reads control center values after preferences change.
func (m *OS) refreshMenu() {
	if m.Menu != nil && m.Menu.Kind == ControlCenterMenu {
		m.Menu.Items = m.controlCenterItems()
	}
}

// AdjustMenuItem handles left and right on the selected item: the text
// size row steps the font, the dark mode row toggles.
func (m *OS) AdjustMenuItem(delta int) tea.Cmd {
	if m.Menu == nil || m.Menu.Selected < 0 || m.Menu.Selected >= len(m.Menu.Items) {
		return nil
	}
	switch m.Menu.Items[m.Menu.Selected].Action {
	case ActionFontSize:
		return m.changePrefs(func() (prefs.Preferences, error) { return m.Prefs.AdjustFontSize(delta) })
	case ActionDarkMode:
		return m.changePrefs(m.Prefs.ToggleDarkMode)
	}
	return nil
}

// ActivateSelected runs the selected menu item.
func (m *OS) ActivateSelected() tea.Cmd {
	if m.Menu == nil {
		return nil
	}
	return m.ActivateMenuItem(m.Menu.Selected, -1)
}

// ActivateMenuItem runs item i. relX is the clicked column relative to the
// menu, or -1 for the keyboard; on the text size row it picks "-" or "+".
func (m *OS) ActivateMenuItem(i, relX int) tea.Cmd {
	mn := m.Menu
	if mn == nil || i < 0 || i >= len(mn.Items) {
		return nil
	}
	mn.Selected = i
	item := mn.Items[i]

	switch item.Action {
	case ActionDarkMode:
		return m.changePrefs(m.Prefs.ToggleDarkMode)
	case ActionFontSize:
		delta := 1
		if relX >= 0 && relX < mn.valueStart(item)+ansi.StringWidth(item.Value)/2 {
			delta = -1
		}
		return m.changePrefs(func() (prefs.Preferences, error) { return m.Prefs.AdjustFontSize(delta) })
	}

	m.CloseMenu()
	switch item.Action {
	case ActionSettings:
		return m.OpenApp(panel.Settings)
	case ActionOpenURL:
		return m.OpenURL(item.URL, item.Label)
	case ActionRefresh:
		m.ShowNotification("Desktop refreshed", "info", config.NotificationDuration)
		m.RescueOffscreenWindows()
		return m.sampleStatsCmd()
	case ActionHelp:
		m.ShowHelp = true
		m.HelpScrollOffset = 0
	case ActionLogs:
		m.ShowLogs = true
		m.LogScrollOffset = m.maxLogScroll()
	case ActionAbout:
		return m.OpenApp(panel.System)
	}
	return nil
}

// changePrefs applies a preference change now so the open menu shows the
// new value, and announces it through the update loop.
func (m *OS) changePrefs(op func() (prefs.Preferences, error)) tea.Cmd {
	cmd := panel.ChangePrefs(op)
	m.refreshMenu()
	return cmd
}

package panel

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/deskfolio/internal/prefs"
	"github.com/Gaurav-Gosain/deskfolio/internal/theme"
)

// Settings window size.
const (
	settingsWidth  = 46
	settingsHeight = 14
)

var settingsTabs = []string{"Appearance", "Project Info"}

const (
	rowDarkMode = iota
	rowFontSize
	rowReset
	settingsRows
)

// SettingsPanel edits the persisted preferences.
type SettingsPanel struct {
	env      Env
	tab      int
	selected int
}

// NewSettings creates the settings panel.
func NewSettings(env Env) *SettingsPanel {
	return &SettingsPanel{env: env}
}

func (p *SettingsPanel) Title() string { return "System Settings" }

// FixedSize keeps the settings window at one size.
func (p *SettingsPanel) FixedSize() (int, int) { return settingsWidth, settingsHeight }

// ChangePrefs runs a preference operation and announces the result. The new
// value is in force even when persisting it failed.
func ChangePrefs(op func() (prefs.Preferences, error)) tea.Cmd {
	p, err := op()
	changed := func() tea.Msg { return prefs.ChangedMsg{Prefs: p} }
	if err != nil {
		return tea.Batch(changed, Notify("error", "Could not save settings: %v", err))
	}
	return changed
}

func (p *SettingsPanel) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		switch msg.String() {
		case "left", "h", "shift+tab":
			p.tab = (p.tab + len(settingsTabs) - 1) % len(settingsTabs)
		case "right", "l", "tab":
			p.tab = (p.tab + 1) % len(settingsTabs)
		case "up", "k":
			p.selected = max(p.selected-1, 0)
		case "down", "j":
			p.selected = min(p.selected+1, settingsRows-1)
		case "enter", "space":
			return p.activate(p.selected, 0)
		case "-", "_":
			return p.fontBy(-1)
		case "+", "=":
			return p.fontBy(1)
		case "d":
			return p.toggleDark()
		}
	case ClickMsg:
		return p.click(msg)
	}
	return nil
}

func (p *SettingsPanel) click(msg ClickMsg) tea.Cmd {
	pad := p.env.padding()
	if msg.Y == 0 {
		if msg.X-pad < len(settingsTabs[0])+2 {
			p.tab = 0
		} else {
			p.tab = 1
		}
		return nil
	}
	if p.tab != 0 {
		return nil
	}
	row := msg.Y - 2
	if row < 0 || row >= settingsRows {
		return nil
	}
	p.selected = row
	return p.activate(row, msg.X-pad)
}

// activate runs a row. For the font row, x picks "-" or "+".
func (p *SettingsPanel) activate(row, x int) tea.Cmd {
	if p.tab != 0 || p.env.Prefs == nil {
		return nil
	}
	switch row {
	case rowDarkMode:
		return p.toggleDark()
	case rowFontSize:
		if x > 0 && x < fontMinusEnd {
			return p.fontBy(-1)
		}
		return p.fontBy(1)
	case rowReset:
		return tea.Batch(ChangePrefs(p.env.Prefs.Reset), Notify("success", "Settings reset to defaults"))
	}
	return nil
}

func (p *SettingsPanel) toggleDark() tea.Cmd {
	if p.env.Prefs == nil {
		return nil
	}
	return ChangePrefs(p.env.Prefs.ToggleDarkMode)
}

func (p *SettingsPanel) fontBy(delta int) tea.Cmd {
	if p.env.Prefs == nil {
		return nil
	}
	return ChangePrefs(func() (prefs.Preferences, error) { return p.env.Prefs.AdjustFontSize(delta) })
}

// "Font size   [-] " ends here; clicks left of it shrink.
const fontMinusEnd = 16

func (p *SettingsPanel) View(width, height int) string {
	var tabs string
	for i, t := range settingsTabs {
		label := " " + t + " "
		if i == p.tab {
			label = selectedStyle().Render(label)
		} else {
			label = dimStyle().Render(label)
		}
		tabs += label + " "
	}
	lines := []string{tabs, ""}

	if p.tab == 0 {
		cur := prefs.Defaults()
		if p.env.Prefs != nil {
			cur = p.env.Prefs.Current()
		}
		mode := "Off"
		if cur.DarkMode {
			mode = "On"
		}
		rows := []string{
			fmt.Sprintf("Dark mode   [%s]", mode),
			fmt.Sprintf("Font size   [-] %dpx [+]", cur.FontSize),
			"Reset to Default Settings",
		}
		for i, r := range rows {
			if i == p.selected {
				r = selectedStyle().Render(r)
			}
			lines = append(lines, r)
		}
		lines = append(lines, "", dimStyle().Render(fmt.Sprintf("Font range %d-%dpx", prefs.MinFontSize, prefs.MaxFontSize)))
		if dark, light := theme.Themes(); dark != "" {
			active := light
			if cur.DarkMode {
				active = dark
			}
			lines = append(lines, dimStyle().Render("Theme "+active))
		}
	} else {
		c := p.env.Catalog
		brand := p.env.Brand
		if brand == "" {
			brand = "deskfolio"
		}
		lines = append(lines,
			headingStyle().Render(brand),
			"Version "+p.env.versionOr("1.0"),
			fmt.Sprintf("%d apps, %d projects", len(c.Apps), len(c.Projects)),
			"",
		)
		if c.Owner.Name != "" {
			lines = append(lines, "Built by "+accentStyle().Render(c.Owner.Name))
		}
	}
	return fit(lines, width, height, p.env.padding())
}

func (e Env) versionOr(fallback string) string {
	if e.Version == "" {
		return fallback
	}
	return e.Version
}

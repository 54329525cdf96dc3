// Package theme provides the desktop's colors. Themes come from the
// bubbletint registry (plus custom JSON themes); without one a built-in
// palette is used. Dark and light mode can use different themes.
package theme

import (
	"fmt"
	"image/color"
	"log"
	"slices"
	"sync"

	"charm.land/lipgloss/v2"
	tint "github.com/lrstanley/bubbletint/v2"
)

var (
	mu         sync.RWMutex
	enabled    bool
	dark       = true
	darkTheme  string
	lightTheme string
)

// Initialize sets up the theme registry. Either id may be empty, in which
// case the other is used for both modes. With both empty, theming is
// disabled and the built-in palette is used. An id naming a custom pair
// resolves to the pair's side for each mode.
func Initialize(darkID, lightID string) error {
	dir, err := GetThemesDir()
	if err != nil {
		dir = ""
	}
	return initialize(darkID, lightID, dir)
}

func initialize(darkID, lightID, themesDir string) error {
	mu.Lock()
	defer mu.Unlock()

	if darkID == "" {
		darkID = lightID
	}
	if lightID == "" {
		lightID = darkID
	}

	if darkID == "" {
		darkTheme, lightTheme = "", ""
		enabled = false
		return nil
	}

	enabled = true
	tint.NewDefaultRegistry()

	var pairs map[string]Pair
	if themesDir != "" {
		var err error
		if pairs, err = LoadDir(themesDir); err != nil {
			log.Printf("Warning: error loading custom themes: %v", err)
		}
	}
	darkTheme, lightTheme = resolvePair(darkID, lightID, pairs)

	known := tint.TintIDs()
	var missing []string
	for _, id := range []string{darkTheme, lightTheme} {
		if !slices.Contains(known, id) && !slices.Contains(missing, id) {
			missing = append(missing, id)
		}
	}
	applyLocked()
	if len(missing) > 0 {
		return fmt.Errorf("unknown theme(s) %v, using default", missing)
	}
	return nil
}

// Themes returns the ids of the active dark and light themes.
func Themes() (dark, light string) {
	mu.RLock()
	defer mu.RUnlock()
	return darkTheme, lightTheme
}

// SetDark switches between the dark and light theme.
func SetDark(on bool) {
	mu.Lock()
	defer mu.Unlock()
	dark = on
	applyLocked()
}

// IsDark reports whether dark mode is on.
func IsDark() bool {
	mu.RLock()
	defer mu.RUnlock()
	return dark
}

func applyLocked() {
	if !enabled {
		return
	}
	id := lightTheme
	if dark {
		id = darkTheme
	}
	if !tint.SetTintID(id) {
		tint.SetTintID("default")
	}
}

// IsEnabled returns true if a bubbletint theme is in use
func IsEnabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return enabled
}

// Current returns the currently active theme.
// Returns nil if theming is disabled.
func Current() *tint.Tint {
	if !IsEnabled() {
		return nil
	}
	return tint.Current()
}

// palette is the built-in color set used without a theme.
type palette struct {
	bg, fg, dim, surface, accent, accent2, red, yellow, green, border string
}

var (
	darkPalette = palette{
		bg: "#1e1e2e", fg: "#e5e5e5", dim: "#808090", surface: "#2a2a3e",
		accent: "#89b4fa", accent2: "#cba6f7", red: "#f38ba8", yellow: "#f9e2af",
		green: "#a6e3a1", border: "#585b70",
	}
	lightPalette = palette{
		bg: "#eff1f5", fg: "#2e3440", dim: "#7c7f93", surface: "#dce0e8",
		accent: "#1e66f5", accent2: "#8839ef", red: "#d20f39", yellow: "#df8e1d",
		green: "#40a02b", border: "#9ca0b0",
	}
)

func builtin() palette {
	if IsDark() {
		return darkPalette
	}
	return lightPalette
}

func pick(fromTheme func(t *tint.Tint) color.Color, fallback func(p palette) string) color.Color {
	if t := Current(); t != nil {
		return fromTheme(t)
	}
	return lipgloss.Color(fallback(builtin()))
}

// DesktopBg returns the wallpaper color.
func DesktopBg() color.Color {
	return pick(func(t *tint.Tint) color.Color { return t.Bg }, func(p palette) string { return p.bg })
}

// DesktopPattern returns the color of the wallpaper texture.
func DesktopPattern() color.Color {
	return pick(func(t *tint.Tint) color.Color { return t.BrightBlack }, func(p palette) string { return p.surface })
}

// WindowBg returns the background of window content.
func WindowBg() color.Color {
	return pick(func(t *tint.Tint) color.Color { return t.Bg }, func(p palette) string { return p.bg })
}

// WindowFg returns the foreground of window content.
func WindowFg() color.Color {
	return pick(func(t *tint.Tint) color.Color { return t.Fg }, func(p palette) string { return p.fg })
}

// BorderUnfocused returns the color for unfocused window borders.
func BorderUnfocused() color.Color {
	return pick(func(t *tint.Tint) color.Color { return t.BrightBlack }, func(p palette) string { return p.border })
}

// BorderFocused returns the color for the focused window in desktop mode.
func BorderFocused() color.Color {
	return pick(func(t *tint.Tint) color.Color { return t.BrightCyan }, func(p palette) string { return p.accent })
}

// BorderAppMode returns the color for the focused window while it receives keys.
func BorderAppMode() color.Color {
	return pick(func(t *tint.Tint) color.Color { return t.BrightGreen }, func(p palette) string { return p.green })
}

// ButtonFg returns the color of title-bar controls.
func ButtonFg() color.Color {
	return pick(func(t *tint.Tint) color.Color { return t.Fg }, func(p palette) string { return p.fg })
}

// ButtonCloseFg returns the color of the close control.
func ButtonCloseFg() color.Color {
	return pick(func(t *tint.Tint) color.Color { return t.Red }, func(p palette) string { return p.red })
}

// Accent returns the primary accent.
func Accent() color.Color {
	return pick(func(t *tint.Tint) color.Color { return t.Blue }, func(p palette) string { return p.accent })
}

// Heading returns the color of panel headings.
func Heading() color.Color {
	return pick(func(t *tint.Tint) color.Color { return t.Purple }, func(p palette) string { return p.accent2 })
}

// Link returns the color of hyperlinks.
func Link() color.Color {
	return pick(func(t *tint.Tint) color.Color { return t.Cyan }, func(p palette) string { return p.accent })
}

// Dimmed returns the color of secondary text.
func Dimmed() color.Color {
	return pick(func(t *tint.Tint) color.Color { return t.BrightBlack }, func(p palette) string { return p.dim })
}

// Success returns the color of positive status text.
func Success() color.Color {
	return pick(func(t *tint.Tint) color.Color { return t.Green }, func(p palette) string { return p.green })
}

// Warning returns the color of cautionary status text.
func Warning() color.Color {
	return pick(func(t *tint.Tint) color.Color { return t.Yellow }, func(p palette) string { return p.yellow })
}

// Error returns the color of error text.
func Error() color.Color {
	return pick(func(t *tint.Tint) color.Color { return t.Red }, func(p palette) string { return p.red })
}

// MenuBarBg returns the background of the menu bar.
func MenuBarBg() color.Color {
	return pick(func(t *tint.Tint) color.Color { return t.Black }, func(p palette) string { return p.surface })
}

// MenuBarFg returns the foreground of the menu bar.
func MenuBarFg() color.Color {
	return pick(func(t *tint.Tint) color.Color { return t.White }, func(p palette) string { return p.fg })
}

// SurfaceBg returns the background of menus, the control center and chips.
func SurfaceBg() color.Color {
	return pick(func(t *tint.Tint) color.Color { return t.Black }, func(p palette) string { return p.surface })
}

// SelectionBg returns the background of a highlighted row or active tab.
func SelectionBg() color.Color {
	return pick(func(t *tint.Tint) color.Color { return t.Blue }, func(p palette) string { return p.accent })
}

// SelectionFg returns the foreground of a highlighted row or active tab.
func SelectionFg() color.Color {
	return pick(func(t *tint.Tint) color.Color { return t.Bg }, func(p palette) string { return p.bg })
}

// DockBg returns the background color for the dock.
func DockBg() color.Color { return SurfaceBg() }

// DockFg returns the foreground color for the dock.
func DockFg() color.Color { return MenuBarFg() }

// DockHighlight returns the color of running-app markers.
func DockHighlight() color.Color { return Success() }

// DockDimmed returns the dimmed color for the dock.
func DockDimmed() color.Color { return Dimmed() }

// NotificationError returns the color for error notifications.
func NotificationError() color.Color { return Error() }

// NotificationWarning returns the color for warning notifications.
func NotificationWarning() color.Color { return Warning() }

// NotificationSuccess returns the color for success notifications.
func NotificationSuccess() color.Color { return Success() }

// NotificationInfo returns the color for info notifications.
func NotificationInfo() color.Color { return Accent() }

// NotificationBg returns the background color for notifications.
func NotificationBg() color.Color { return SurfaceBg() }

// NotificationFg returns the foreground color for notifications.
func NotificationFg() color.Color { return WindowFg() }

// LogViewerError returns the color of ERROR log lines.
func LogViewerError() color.Color { return Error() }

// LogViewerWarn returns the color of WARN log lines.
func LogViewerWarn() color.Color { return Warning() }

// LogViewerInfo returns the color of INFO log lines.
func LogViewerInfo() color.Color { return Accent() }

// HelpKeyBadge returns the color for key badges in help menu.
func HelpKeyBadge() color.Color { return Heading() }

// HelpBorder returns the border color for help menu.
func HelpBorder() color.Color { return BorderFocused() }

// CLITableHeader returns the color for CLI table headers.
func CLITableHeader() color.Color {
	return lipgloss.Color("12")
}

// CLITableBorder returns the color for CLI table borders.
func CLITableBorder() color.Color {
	return lipgloss.Color("14")
}

// CLITableKey returns the color for CLI table keys.
func CLITableKey() color.Color {
	return lipgloss.Color("11")
}

// CLITableDim returns the dimmed color for CLI table elements.
func CLITableDim() color.Color {
	return lipgloss.Color("8")
}

// ColorToString converts a color.Color to a hex string
func ColorToString(c color.Color) string {
	if c == nil {
		return "#000000"
	}
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", uint8(r>>8), uint8(g>>8), uint8(b>>8))
}

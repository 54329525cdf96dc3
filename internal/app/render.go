package app

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/Gaurav-Gosain/deskfolio/internal/config"
	"github.com/Gaurav-Gosain/deskfolio/internal/theme"
	"github.com/charmbracelet/x/ansi"
)

// GetCanvas composes the whole screen: wallpaper, icons, windows in stack
// order, the menu bar, the dock and any overlays.
func (m *OS) GetCanvas() *lipgloss.Canvas {
	canvas := lipgloss.NewCanvas(m.GetRenderWidth(), m.GetRenderHeight())
	if m.Booting() {
		canvas.Compose(lipgloss.NewLayer(m.renderBoot()).X(0).Y(0).Z(config.ZIndexDesktop).ID("boot"))
		return canvas
	}

	layers := []*lipgloss.Layer{m.renderWallpaper()}
	layers = append(layers, m.renderIcons()...)
	if !m.HasVisibleWindows() {
		layers = append(layers, m.renderWelcome())
	}

	topMargin := m.GetTopMargin()
	viewportWidth := m.GetRenderWidth()
	viewportHeight := m.GetUsableHeight()

	for i, window := range m.Surface.Stack() {
		content := m.renderWindow(window)
		clippedContent, finalX, finalY := clipWindowContent(
			content,
			window.Position.X, window.Position.Y,
			viewportWidth, viewportHeight+topMargin,
		)
		if clippedContent == "" {
			continue
		}
		layers = append(layers, lipgloss.NewLayer(clippedContent).
			X(finalX).Y(finalY).Z(config.ZIndexWindowBase+i).ID(window.ID))
	}

	layers = append(layers, m.renderMenuBar())
	if config.GetDockHeight() > 0 {
		layers = append(layers, m.renderDock())
	}
	layers = append(layers, m.renderOverlays()...)

	for _, layer := range layers {
		canvas.Compose(layer)
	}
	return canvas
}

// View renders the desktop in the alternate screen with full mouse motion
// so drags and hovers are tracked.
func (m *OS) View() tea.View {
	var view tea.View
	view.SetContent(lipgloss.Sprint(m.GetCanvas().Render()))
	view.AltScreen = true
	view.MouseMode = tea.MouseModeAllMotion
	return view
}

func (m *OS) renderWallpaper() *lipgloss.Layer {
	width, height := m.GetRenderWidth(), m.GetRenderHeight()
	style := lipgloss.NewStyle().Foreground(theme.DesktopPattern()).Background(theme.DesktopBg())

	dot := "·"
	if config.UseASCIIOnly {
		dot = "."
	}
	// A dot every fourth column, shifted by two on odd rows
	even := strings.Repeat(dot+"   ", width/4+1)
	odd := strings.Repeat("  "+dot+" ", width/4+1)
	even, odd = style.Render(ansi.Truncate(even, width, "")), style.Render(ansi.Truncate(odd, width, ""))

	rows := make([]string, height)
	for y := range height {
		rows[y] = even
		if y%2 == 1 {
			rows[y] = odd
		}
	}
	return lipgloss.NewLayer(strings.Join(rows, "\n")).
		X(0).Y(0).Z(config.ZIndexDesktop).ID("wallpaper")
}

func (m *OS) renderIcons() []*lipgloss.Layer {
	icons := m.DesktopIcons()
	if len(icons) == 0 {
		return nil
	}
	glyphStyle := lipgloss.NewStyle().Foreground(theme.Accent()).Bold(true).
		Width(config.DesktopIconWidth).Align(lipgloss.Center)
	labelStyle := lipgloss.NewStyle().Foreground(theme.WindowFg()).Background(theme.DesktopBg()).
		Width(config.DesktopIconWidth).Align(lipgloss.Center)

	layers := make([]*lipgloss.Layer, 0, len(icons))
	for _, ic := range icons {
		content := glyphStyle.Render(ic.Glyph) + "\n" + labelStyle.Render(ic.Label)
		layers = append(layers, lipgloss.NewLayer(content).
			X(ic.Rect.Min.X).Y(ic.Rect.Min.Y).Z(config.ZIndexDesktop).ID("icon-"+ic.AppID))
	}
	return layers
}

func (m *OS) renderWelcome() *lipgloss.Layer {
	hint := fmt.Sprintf("Click an icon or the dock to open an app. %s for help",
		m.KeybindRegistry.GetKeysForDisplay("toggle_help"))
	text := lipgloss.NewStyle().
		Foreground(theme.Dimmed()).
		Background(theme.DesktopBg()).
		Render(hint)

	y := max(m.GetDockY()-2, m.GetTopMargin())
	x := max((m.GetRenderWidth()-lipgloss.Width(text))/2, 0)
	return lipgloss.NewLayer(text).X(x).Y(y).Z(config.ZIndexDesktop).ID("welcome")
}

func (m *OS) renderMenuBar() *lipgloss.Layer {
	width := m.GetRenderWidth()
	bar := lipgloss.NewStyle().Background(theme.MenuBarBg()).Foreground(theme.MenuBarFg())

	left := bar.Bold(true).Render(m.brandLabel())
	if w, ok := m.FocusedWindow(); ok {
		left += bar.Render(" " + w.Title + " ")
	}
	if m.Mode == AppMode {
		left += lipgloss.NewStyle().
			Background(theme.BorderAppMode()).
			Foreground(theme.MenuBarBg()).
			Bold(true).
			Render(" " + m.Mode.String() + " ")
	}

	var status []string
	if m.IsSSHMode && m.SSHSession != nil {
		status = append(status, "ssh:"+m.SSHSession.User())
	}
	if !m.LastStatsUpdate.IsZero() {
		status = append(status, fmt.Sprintf("CPU %2.0f%%", m.CPUPercent), fmt.Sprintf("RAM %2.0f%%", m.RAMPercent))
	}
	if !config.HideClock {
		status = append(status, m.now().Format("Mon 15:04"))
	}
	right := bar.Render(strings.Join(status, "  ") + " ")

	ccStyle := bar
	if m.Menu != nil && m.Menu.Kind == ControlCenterMenu {
		ccStyle = bar.Background(theme.SelectionBg()).Foreground(theme.SelectionFg())
	}
	right += ccStyle.Render(" " + config.GetMenuBarControlCenter() + " ")

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		// Drop the status text before the control center glyph
		right = ccStyle.Render(" " + config.GetMenuBarControlCenter() + " ")
		gap = max(width-lipgloss.Width(left)-lipgloss.Width(right), 0)
	}
	line := left + bar.Render(strings.Repeat(" ", gap)) + right
	line = bar.MaxWidth(width).Render(line)

	return lipgloss.NewLayer(line).X(0).Y(0).Z(config.ZIndexMenuBar).ID("menubar")
}

func (m *OS) renderDock() *lipgloss.Layer {
	width := m.GetRenderWidth()
	base := lipgloss.NewStyle().Background(theme.DockBg()).Foreground(theme.DockFg())
	running := base.Foreground(theme.DockHighlight())
	chip := base.Foreground(theme.DockDimmed())
	sep := base.Foreground(theme.DockDimmed())

	items := m.DockItems()
	var b strings.Builder
	x := 0
	for i, it := range items {
		if pad := it.Rect.Min.X - x; pad > 0 {
			if i > 0 && it.WindowID != "" && items[i-1].WindowID == "" {
				b.WriteString(sep.Render(config.GetDockSeparator()))
			} else {
				b.WriteString(base.Render(strings.Repeat(" ", pad)))
			}
		}
		switch {
		case it.WindowID != "":
			b.WriteString(chip.Render(it.Label))
		case it.Running:
			b.WriteString(running.Render(it.Label))
		default:
			b.WriteString(base.Render(it.Label))
		}
		x = it.Rect.Max.X
	}
	if rest := width - x; rest > 0 {
		b.WriteString(base.Render(strings.Repeat(" ", rest)))
	}

	return lipgloss.NewLayer(b.String()).
		X(0).Y(m.GetDockY()).Z(config.ZIndexDock).ID("dock")
}

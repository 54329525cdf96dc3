package app

import (
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/Gaurav-Gosain/deskfolio/internal/config"
	"github.com/Gaurav-Gosain/deskfolio/internal/panel"
	"github.com/Gaurav-Gosain/deskfolio/internal/surface"
	"github.com/Gaurav-Gosain/deskfolio/internal/theme"
	"github.com/charmbracelet/x/ansi"
)

func getBorder() lipgloss.Border {
	return config.GetBorderForStyle()
}

// windowBorderColor picks the frame color: app mode and focus each get
// their own color.
func (m *OS) windowBorderColor(w surface.Window) color.Color {
	if w.ID != m.Surface.Active() {
		return theme.BorderUnfocused()
	}
	if m.Mode == AppMode {
		return theme.BorderAppMode()
	}
	return theme.BorderFocused()
}

// renderWindow draws one window: a title row on the top border, then the
// panel inside the remaining border.
func (m *OS) renderWindow(w surface.Window) string {
	width, height := w.Size.Width, w.Size.Height
	borderColor := m.windowBorderColor(w)

	innerW, innerH := max(width-2, 0), max(height-2, 0)
	var content string
	if p := panelOf(w); p != nil && innerW > 0 && innerH > 0 {
		content = p.View(innerW, innerH)
	}

	body := lipgloss.NewStyle().
		Align(lipgloss.Left).
		AlignVertical(lipgloss.Top).
		Border(getBorder()).
		BorderTop(false).
		BorderForeground(borderColor).
		Background(theme.WindowBg()).
		Foreground(theme.WindowFg()).
		Width(width).
		Height(height - 1).
		MaxWidth(width).
		MaxHeight(height - 1).
		Render(content)

	return m.renderTitleRow(w, borderColor) + "\n" + body
}

// renderTitleRow draws the top border with the title on the left and the
// minimize, maximize and close controls where HitTest expects them.
func (m *OS) renderTitleRow(w surface.Window, borderColor color.Color) string {
	width := w.Size.Width
	border := getBorder()
	borderStyle := lipgloss.NewStyle().Foreground(borderColor).Background(theme.WindowBg())

	var buttons string
	buttonsWidth := 0
	if !config.HideWindowButtons {
		buttonStyle := lipgloss.NewStyle().Foreground(theme.ButtonFg()).Background(theme.WindowBg())
		maximize := config.GetButtonMaximize()
		if w.Maximized {
			maximize = config.GetButtonRestore()
		}
		buttons = buttonStyle.Render(config.GetButtonMinimize()) +
			buttonStyle.Render(maximize) +
			buttonStyle.Foreground(theme.ButtonCloseFg()).Render(config.GetButtonClose())
		buttonsWidth = 3 * config.WindowButtonWidth
	}

	// Corners plus the gap right of the close control
	tail := 0
	if !config.HideWindowButtons {
		tail = max(config.WindowButtonsRight-1, 0)
	}
	titleSpace := width - 2 - buttonsWidth - tail
	if titleSpace < 0 {
		return borderStyle.Render(border.TopLeft + strings.Repeat(border.Top, max(width-2, 0)) + border.TopRight)
	}

	title := getWindowTitle(w, m.windowBusy(w), titleSpace)
	titleStyle := lipgloss.NewStyle().Background(theme.WindowBg()).Foreground(borderColor).Bold(true)
	var renderedTitle string
	if title != "" {
		renderedTitle = titleStyle.Render(" " + title + " ")
	}
	fill := titleSpace - lipgloss.Width(renderedTitle)

	return borderStyle.Render(border.TopLeft) +
		renderedTitle +
		borderStyle.Render(strings.Repeat(border.Top, max(fill, 0))) +
		buttons +
		borderStyle.Render(strings.Repeat(border.Top, tail)+border.TopRight)
}

func (m *OS) windowBusy(w surface.Window) bool {
	b, ok := panelOf(w).(panel.Busy)
	return ok && b.Busy()
}

// getWindowTitle returns the title text for a window, truncated to fit within maxWidth.
// Returns empty string if it doesn't fit.
func getWindowTitle(w surface.Window, loading bool, maxWidth int) string {
	windowName := w.Title
	if loading {
		windowName = config.GetLoadingIndicator() + " " + windowName
	}
	if windowName == "" {
		return ""
	}

	// Two spaces pad the title on the border
	maxNameLen := max(maxWidth-2, 0)
	if ansi.StringWidth(windowName) > maxNameLen {
		if maxNameLen <= 3 {
			return ""
		}
		windowName = ansi.Truncate(windowName, maxNameLen, "...")
	}
	return windowName
}

func clipWindowContent(content string, x, y, viewportWidth, viewportHeight int) (string, int, int) {
	lines := strings.Split(content, "\n")
	windowHeight := len(lines)

	windowWidth := 0
	if len(lines) > 0 {
		windowWidth = ansi.StringWidth(lines[0])
	}

	if x+windowWidth <= 0 || x >= viewportWidth || y+windowHeight <= 0 || y >= viewportHeight {
		return "", max(x, 0), max(y, 0)
	}

	clipTop := 0
	clipLeft := 0
	finalX := x
	finalY := y

	if y < 0 {
		clipTop = -y
		finalY = 0
	}

	if x < 0 {
		clipLeft = -x
		finalX = 0
	}

	if clipTop >= len(lines) {
		return "", finalX, finalY
	}
	visibleLines := lines[clipTop:]

	maxVisibleLines := viewportHeight - finalY
	if maxVisibleLines < len(visibleLines) {
		visibleLines = visibleLines[:maxVisibleLines]
	}

	if clipLeft > 0 || finalX+windowWidth > viewportWidth {
		maxWidth := viewportWidth - finalX
		clippedLines := make([]string, len(visibleLines))

		for lineIdx, line := range visibleLines {
			lineWidth := ansi.StringWidth(line)

			if clipLeft >= lineWidth {
				clippedLines[lineIdx] = ""
				continue
			}

			// Cut on cell boundaries; styles carry across the cut.
			clipped := ansi.Cut(line, clipLeft, min(lineWidth, clipLeft+maxWidth))
			if clipLeft > 0 || lineWidth > clipLeft+maxWidth {
				clipped += ansi.ResetStyle
			}
			clippedLines[lineIdx] = clipped
		}

		return strings.Join(clippedLines, "\n"), finalX, finalY
	}

	return strings.Join(visibleLines, "\n"), finalX, finalY
}

package app

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/Gaurav-Gosain/deskfolio/internal/config"
	"github.com/Gaurav-Gosain/deskfolio/internal/theme"
	"github.com/charmbracelet/x/ansi"
)

func (m *OS) renderOverlays() []*lipgloss.Layer {
	var layers []*lipgloss.Layer

	if m.Menu != nil {
		layers = append(layers, lipgloss.NewLayer(m.renderMenu(m.Menu)).
			X(m.Menu.X).Y(m.Menu.Y).Z(config.ZIndexMenus).ID("menu"))
	}

	if m.ShowQuitConfirm {
		quitContent, width, height := m.renderQuitConfirmDialog()
		x := (m.GetRenderWidth() - width) / 2
		y := (m.GetRenderHeight() - height) / 2
		quitLayer := lipgloss.NewLayer(quitContent).
			X(x).Y(y).Z(config.ZIndexNotifications - 1).ID("quit-confirm")
		layers = append(layers, quitLayer)
	}

	if m.ShowHelp {
		helpContent := m.RenderHelpMenu(m.GetRenderWidth(), m.GetRenderHeight())

		helpLayer := lipgloss.NewLayer(helpContent).
			X(0).Y(0).Z(config.ZIndexHelp).ID("help")

		layers = append(layers, helpLayer)
	}

	if m.ShowLogs {
		layers = append(layers, m.renderLogs())
	}

	layers = append(layers, m.renderNotifications()...)
	return layers
}

// renderMenu draws a dropdown: a bordered box with one row per item, the
// selected row highlighted and values right-aligned.
func (m *OS) renderMenu(mn *Menu) string {
	bg := theme.SurfaceBg()
	textWidth := max(mn.Width-6, 1)
	row := lipgloss.NewStyle().Background(bg).Foreground(theme.WindowFg())
	selected := lipgloss.NewStyle().Background(theme.SelectionBg()).Foreground(theme.SelectionFg()).Bold(true)
	heading := lipgloss.NewStyle().Background(bg).Foreground(theme.Heading()).Bold(true)
	value := lipgloss.NewStyle().Background(bg).Foreground(theme.Accent())

	lines := make([]string, len(mn.Items))
	for i, item := range mn.Items {
		if item.Action == "" {
			lines[i] = heading.Width(mn.Width - 2).Render(" " + ansi.Truncate(item.Label, mn.Width-3, "…"))
			continue
		}

		label := ansi.Truncate(item.Label, max(textWidth-ansi.StringWidth(item.Value)-1, 1), "…")
		gap := max(textWidth-ansi.StringWidth(label)-ansi.StringWidth(item.Value), 1)

		marker := " "
		style := row
		valueStyle := value
		if i == mn.Selected {
			marker = config.GetMenuSelected()
			style = selected
			valueStyle = selected
		}
		lines[i] = style.Render(" "+marker+" "+label+strings.Repeat(" ", gap)) +
			valueStyle.Render(item.Value) + style.Render(" ")
	}

	return lipgloss.NewStyle().
		Border(getBorder()).
		BorderForeground(theme.HelpBorder()).
		Background(bg).
		Width(mn.Width).
		Render(strings.Join(lines, "\n"))
}

func (m *OS) renderQuitConfirmDialog() (string, int, int) {
	borderColor := theme.HelpBorder()
	selectedColor := theme.Accent()
	unselectedColor := theme.Dimmed()

	title := lipgloss.NewStyle().
		Foreground(selectedColor).
		Bold(true).
		Render("Quit " + m.Brand + "?")

	subtitle := lipgloss.NewStyle().
		Foreground(unselectedColor).
		Render("A page is still loading.")

	button := func(label string, active bool) string {
		c := unselectedColor
		style := lipgloss.NewStyle()
		if active {
			c = selectedColor
			style = style.Bold(true)
		}
		return style.
			Foreground(c).
			Border(lipgloss.NormalBorder()).
			BorderForeground(c).
			Padding(0, 1).
			Render(label)
	}

	buttonRow := lipgloss.JoinHorizontal(lipgloss.Center,
		button("yes", m.QuitConfirmSelection == 0), "   ", button("no", m.QuitConfirmSelection == 1))

	dialogContent := lipgloss.JoinVertical(
		lipgloss.Center,
		title,
		subtitle,
		"",
		buttonRow,
	)

	dialogBox := lipgloss.NewStyle().
		Border(getBorder()).
		BorderForeground(borderColor).
		Background(theme.SurfaceBg()).
		Padding(1, 3).
		Render(dialogContent)

	width := lipgloss.Width(dialogBox)
	height := lipgloss.Height(dialogBox)

	return dialogBox, width, height
}

// helpLines builds the unscrolled help text: one block per keybinding
// section.
func (m *OS) helpLines() []string {
	keyStyle := lipgloss.NewStyle().Foreground(theme.HelpKeyBadge()).Bold(true)
	sectionStyle := lipgloss.NewStyle().Foreground(theme.Heading()).Bold(true).Underline(true)
	descStyle := lipgloss.NewStyle().Foreground(theme.WindowFg())

	sections := config.GetKeybindings(m.KeybindRegistry)
	keyWidth := 0
	for _, s := range sections {
		for _, b := range s.Bindings {
			keyWidth = max(keyWidth, ansi.StringWidth(b.Key))
		}
	}

	var lines []string
	for i, s := range sections {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, sectionStyle.Render(s.Title))
		for _, b := range s.Bindings {
			pad := strings.Repeat(" ", keyWidth-ansi.StringWidth(b.Key)+2)
			lines = append(lines, keyStyle.Render(b.Key)+pad+descStyle.Render(b.Description))
		}
	}
	return lines
}

func (m *OS) helpPageSize() int {
	return max(min(m.GetRenderHeight()-10, config.MaxHelpLines), 3)
}

// ScrollHelp moves the help overlay by delta lines.
func (m *OS) ScrollHelp(delta int) {
	maxScroll := max(len(m.helpLines())-m.helpPageSize(), 0)
	m.HelpScrollOffset = min(max(m.HelpScrollOffset+delta, 0), maxScroll)
}

// RenderHelpMenu draws the keyboard shortcut overlay centered on a
// width x height screen.
func (m *OS) RenderHelpMenu(width, height int) string {
	lines := m.helpLines()
	page := m.helpPageSize()
	maxScroll := max(len(lines)-page, 0)
	offset := min(max(m.HelpScrollOffset, 0), maxScroll)
	end := min(offset+page, len(lines))

	title := lipgloss.NewStyle().
		Foreground(theme.Accent()).
		Bold(true).
		Render("Keyboard Shortcuts")

	helpLines := []string{title, ""}
	helpLines = append(helpLines, lines[offset:end]...)

	footer := "Press '?'/'esc' to close"
	if maxScroll > 0 {
		footer = fmt.Sprintf("%d-%d of %d  j/k or ↑/↓ to scroll, '?'/'esc' to close", offset+1, end, len(lines))
	}
	helpLines = append(helpLines, "", lipgloss.NewStyle().Foreground(theme.Dimmed()).Render(footer))

	helpBox := lipgloss.NewStyle().
		Border(getBorder()).
		BorderForeground(theme.HelpBorder()).
		Background(theme.SurfaceBg()).
		Padding(1, 2).
		MaxWidth(width).
		Render(strings.Join(helpLines, "\n"))

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, helpBox)
}

func (m *OS) renderLogs() *lipgloss.Layer {
	logTitle := lipgloss.NewStyle().
		Foreground(theme.Accent()).
		Bold(true).
		Render("System Logs")

	logsPerPage := m.logsPerPage()
	maxScroll := m.maxLogScroll()
	m.LogScrollOffset = max(0, min(m.LogScrollOffset, maxScroll))

	var logLines []string
	logLines = append(logLines, logTitle)
	logLines = append(logLines, "")

	startIdx := m.LogScrollOffset

	displayCount := 0
	for i := startIdx; i < len(m.LogMessages) && displayCount < logsPerPage; i++ {
		msg := m.LogMessages[i]

		var levelColor color.Color
		switch msg.Level {
		case "ERROR":
			levelColor = theme.LogViewerError()
		case "WARN":
			levelColor = theme.LogViewerWarn()
		default:
			levelColor = theme.LogViewerInfo()
		}

		timeStr := msg.Time.Format("15:04:05")
		levelStr := lipgloss.NewStyle().
			Foreground(levelColor).
			Render(fmt.Sprintf("[%s]", msg.Level))

		logLine := fmt.Sprintf("%s %s %s", timeStr, levelStr, msg.Message)
		logLines = append(logLines, logLine)
		displayCount++
	}

	if maxScroll > 0 {
		scrollInfo := fmt.Sprintf("Showing %d-%d of %d logs (↑/↓ to scroll)",
			startIdx+1, startIdx+displayCount, len(m.LogMessages))
		logLines = append(logLines, "")
		logLines = append(logLines, lipgloss.NewStyle().
			Foreground(theme.Dimmed()).
			Render(scrollInfo))
	}

	logLines = append(logLines, "")
	logLines = append(logLines, lipgloss.NewStyle().
		Foreground(theme.Dimmed()).
		Render("Press 'q'/'esc' to exit, j/k or ↑/↓ to scroll"))

	logContent := strings.Join(logLines, "\n")

	logBox := lipgloss.NewStyle().
		Border(getBorder()).
		BorderForeground(theme.HelpBorder()).
		Padding(1, 2).
		Width(min(config.LogViewerWidth, m.GetRenderWidth())).
		Background(theme.SurfaceBg()).
		Render(logContent)

	centeredLogs := lipgloss.Place(m.GetRenderWidth(), m.GetRenderHeight(),
		lipgloss.Center, lipgloss.Center, logBox)

	return lipgloss.NewLayer(centeredLogs).
		X(0).Y(0).Z(config.ZIndexLogs).ID("logs")
}

// notificationOpacity is 1 until the last fade-out stretch of a
// notification's life, then falls linearly to 0.
func (m *OS) notificationOpacity(n Notification) float64 {
	timeLeft := n.Duration - m.now().Sub(n.StartTime)
	if timeLeft <= 0 {
		return 0
	}
	fade := config.GetNotificationFadeOut()
	if fade > 0 && timeLeft < fade {
		return float64(timeLeft) / float64(fade)
	}
	return 1
}

func (m *OS) renderNotifications() []*lipgloss.Layer {
	var layers []*lipgloss.Layer

	notifY := m.GetTopMargin()
	shown := 0
	for _, notif := range m.Notifications {
		if shown >= config.MaxVisibleNotifications {
			break
		}

		opacity := m.notificationOpacity(notif)
		if opacity <= 0 {
			continue
		}

		var accent color.Color
		var icon string
		switch notif.Type {
		case "error":
			accent = theme.NotificationError()
			icon = config.NotificationIconError
		case "warning":
			accent = theme.NotificationWarning()
			icon = config.NotificationIconWarning
		case "success":
			accent = theme.NotificationSuccess()
			icon = config.NotificationIconSuccess
		default:
			accent = theme.NotificationInfo()
			icon = config.NotificationIconInfo
		}

		maxNotifWidth := min(max(m.GetRenderWidth()-8, config.MinNotificationWidth), config.MaxNotificationWidth)

		message := notif.Message
		maxMessageLen := maxNotifWidth - 10
		if ansi.StringWidth(message) > maxMessageLen {
			message = ansi.Truncate(message, maxMessageLen, "...")
		}

		notifContent := fmt.Sprintf(" %s  %s ", icon, message)

		fg := theme.NotificationFg()
		if opacity < 0.5 {
			// Fading out
			fg = theme.Dimmed()
			accent = theme.Dimmed()
		}

		notifBox := lipgloss.NewStyle().
			Background(theme.NotificationBg()).
			Foreground(fg).
			Border(getBorder()).
			BorderForeground(accent).
			Padding(0, 1).
			Bold(true).
			MaxWidth(maxNotifWidth).
			Render(notifContent)

		notifX := max(m.GetRenderWidth()-lipgloss.Width(notifBox)-config.NotificationMargin, 0)
		currentY := notifY + shown*config.NotificationSpacing

		layers = append(layers, lipgloss.NewLayer(notifBox).
			X(notifX).Y(currentY).Z(config.ZIndexNotifications).
			ID(fmt.Sprintf("notif-%s", notif.ID)))
		shown++
	}
	return layers
}

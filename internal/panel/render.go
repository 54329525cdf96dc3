package panel

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/Gaurav-Gosain/deskfolio/internal/theme"
	"github.com/charmbracelet/x/ansi"
)

func headingStyle() lipgloss.Style { return lipgloss.NewStyle().Bold(true).Foreground(theme.Heading()) }
func accentStyle() lipgloss.Style  { return lipgloss.NewStyle().Foreground(theme.Accent()) }
func dimStyle() lipgloss.Style     { return lipgloss.NewStyle().Foreground(theme.Dimmed()) }
func linkStyle() lipgloss.Style    { return lipgloss.NewStyle().Underline(true).Foreground(theme.Link()) }
func errorStyle() lipgloss.Style   { return lipgloss.NewStyle().Foreground(theme.Error()) }
func successStyle() lipgloss.Style { return lipgloss.NewStyle().Foreground(theme.Success()) }

func selectedStyle() lipgloss.Style {
	return lipgloss.NewStyle().Background(theme.SelectionBg()).Foreground(theme.SelectionFg())
}

// wrap word-wraps text to width and splits it into lines.
func wrap(text string, width int) []string {
	if width <= 0 {
		return nil
	}
	return strings.Split(ansi.Wordwrap(text, width, ""), "\n")
}

// bullets renders items as wrapped "• " lines with a hanging indent.
func bullets(items []string, width int) []string {
	var out []string
	for _, item := range items {
		for i, l := range wrap(item, width-2) {
			if i == 0 {
				out = append(out, "• "+l)
			} else {
				out = append(out, "  "+l)
			}
		}
	}
	return out
}

// fit clips lines to a width x height box, indenting each by pad columns.
func fit(lines []string, width, height, pad int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	inner := max(width-2*pad, 1)
	indent := strings.Repeat(" ", min(pad, width-1))
	out := make([]string, height)
	for i := range out {
		if i < len(lines) {
			out[i] = indent + ansi.Truncate(lines[i], inner, "…")
		}
	}
	return strings.Join(out, "\n")
}

// scroller keeps a vertical offset into a list of lines.
type scroller struct {
	offset int
}

func (s *scroller) by(delta, total, height int) {
	s.offset = min(max(s.offset+delta, 0), max(total-height, 0))
}

func (s *scroller) visible(lines []string, height int) []string {
	s.by(0, len(lines), height)
	if s.offset >= len(lines) {
		return nil
	}
	return lines[s.offset:min(len(lines), s.offset+height)]
}

// scrollKey maps navigation keys onto a scroll delta for a page of height.
func scrollKey(key string, height int) (int, bool) {
	page := max(height-1, 1)
	switch key {
	case "up", "k":
		return -1, true
	case "down", "j":
		return 1, true
	case "pgup", "ctrl+u":
		return -page, true
	case "pgdown", "ctrl+d", "space":
		return page, true
	case "home", "g":
		return -1 << 20, true
	case "end", "G":
		return 1 << 20, true
	}
	return 0, false
}

// handleScroll applies scroll keys and wheel events for a plain text panel.
func handleScroll(s *scroller, msg tea.Msg, total, height int) bool {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		if d, ok := scrollKey(msg.String(), height); ok {
			s.by(d, total, height)
			return true
		}
	case WheelMsg:
		s.by(msg.Delta, total, height)
		return true
	}
	return false
}

// padding returns the content inset for the current font size.
func (e Env) padding() int {
	if e.Prefs == nil {
		return 1
	}
	return e.Prefs.Current().Padding() + 1
}

package app

import (
	"strings"
	"time"
	"unicode"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/Gaurav-Gosain/deskfolio/internal/config"
	"github.com/Gaurav-Gosain/deskfolio/internal/theme"
)

// BootStage is the progress of the boot screen.
type BootStage int

const (
	// BootOff means the desktop is showing.
	BootOff BootStage = iota
	// BootLogo shows the owner's initials.
	BootLogo
	// BootLoading fills the progress bar.
	BootLoading
	// BootComplete holds the full bar briefly.
	BootComplete
)

const (
	bootStepPercent = 2
	bootBarWidth    = 32
)

// BootTickMsg advances the boot screen.
type BootTickMsg struct{}

func bootTick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return BootTickMsg{} })
}

// Booting reports whether the boot screen covers the desktop.
func (m *OS) Booting() bool {
	return m.BootStage != BootOff
}

func (m *OS) advanceBoot() tea.Cmd {
	switch m.BootStage {
	case BootLogo:
		m.BootStage = BootLoading
		return bootTick(config.BootStepInterval)
	case BootLoading:
		m.BootProgress = min(m.BootProgress+bootStepPercent, 100)
		if m.BootProgress == 100 {
			m.BootStage = BootComplete
			return bootTick(config.BootHoldDuration)
		}
		return bootTick(config.BootStepInterval)
	case BootComplete:
		m.SkipBoot()
	}
	return nil
}

// SkipBoot drops the boot screen. Ticks still in flight are ignored.
func (m *OS) SkipBoot() {
	if !m.Booting() {
		return
	}
	m.BootStage = BootOff
	m.BootProgress = 0
	m.LogInfo("Boot complete")
}

// bootInitials is up to two letters from the owner's name, or the brand.
func (m *OS) bootInitials() string {
	name := m.Brand
	if m.Catalog != nil && m.Catalog.Owner.Name != "" {
		name = m.Catalog.Owner.Name
	}
	var initials []rune
	for _, word := range strings.Fields(name) {
		r := []rune(word)[0]
		initials = append(initials, unicode.ToUpper(r))
		if len(initials) == 2 {
			break
		}
	}
	return string(initials)
}

func (m *OS) renderBoot() string {
	bg := theme.DesktopBg()
	fg := theme.WindowFg()
	if m.BootStage == BootLogo {
		fg = theme.Dimmed()
	}

	badge := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(fg).
		BorderBackground(bg).
		Foreground(fg).
		Background(bg).
		Bold(true).
		Padding(1, 3).
		Render(m.bootInitials())

	name := m.Brand
	if m.Catalog != nil && m.Catalog.Owner.Name != "" {
		name = m.Catalog.Owner.Name
	}
	lines := []string{badge, "", lipgloss.NewStyle().Foreground(fg).Background(bg).Render(name), ""}

	if m.BootStage != BootLogo {
		full, empty := "█", "░"
		if config.UseASCIIOnly {
			full, empty = "#", "-"
		}
		filled := bootBarWidth * m.BootProgress / 100
		bar := lipgloss.NewStyle().Foreground(theme.Accent()).Background(bg).Render(strings.Repeat(full, filled)) +
			lipgloss.NewStyle().Foreground(theme.Dimmed()).Background(bg).Render(strings.Repeat(empty, bootBarWidth-filled))
		lines = append(lines, bar)
	}

	return lipgloss.NewStyle().
		Width(m.GetRenderWidth()).
		Height(m.GetRenderHeight()).
		Align(lipgloss.Center).
		AlignVertical(lipgloss.Center).
		Background(bg).
		Render(lipgloss.JoinVertical(lipgloss.Center, lines...))
}

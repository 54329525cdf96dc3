package app

import (
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/deskfolio/internal/config"
	"github.com/Gaurav-Gosain/deskfolio/internal/panel"
	"github.com/Gaurav-Gosain/deskfolio/internal/prefs"
	"github.com/Gaurav-Gosain/deskfolio/internal/request"
	"github.com/Gaurav-Gosain/deskfolio/internal/theme"
)

// TickerMsg represents a periodic tick event for updating the UI.
// This is exported so it can be used by the input package.
type TickerMsg time.Time

// InputHandler is a function type that handles input messages.
// This allows the Update method to delegate to the input package without creating a circular dependency.
type InputHandler func(msg tea.Msg, o *OS) (tea.Model, tea.Cmd)

// inputHandler is the registered input handler function.
// This will be set by the main package to break the circular dependency.
var inputHandler InputHandler

// SetInputHandler registers the input handler function.
// This must be called during initialization before the Update loop runs.
func SetInputHandler(handler InputHandler) {
	inputHandler = handler
}

// Init starts the clock, the request listener, the first stats sample and
// the boot screen when one is showing.
func (m *OS) Init() tea.Cmd {
	cmds := []tea.Cmd{
		TickCmd(),
		m.Requests.Listen(),
		m.sampleStatsCmd(),
	}
	if m.Booting() {
		cmds = append(cmds, bootTick(config.BootLogoDuration))
	}
	return tea.Batch(cmds...)
}

// TickCmd ticks once per clock interval. It keeps the menu bar clock and
// the stats current.
func TickCmd() tea.Cmd {
	return tea.Tick(config.ClockTickInterval, func(t time.Time) tea.Msg {
		return TickerMsg(t)
	})
}

// FastTickCmd ticks at the full frame rate while notifications fade.
func FastTickCmd() tea.Cmd {
	return tea.Tick(time.Second/config.NormalFPS, func(t time.Time) tea.Msg {
		return TickerMsg(t)
	})
}

func (m *OS) nextTick() tea.Cmd {
	if len(m.Notifications) > 0 && config.AnimationsEnabled {
		return FastTickCmd()
	}
	return TickCmd()
}

// Update handles all incoming messages and updates the application state.
func (m *OS) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TickerMsg:
		m.CleanupNotifications()
		cmds := []tea.Cmd{m.nextTick()}
		if time.Time(msg).Sub(m.LastStatsUpdate) >= config.StatsUpdateInterval {
			cmds = append(cmds, m.sampleStatsCmd())
		}
		return m, tea.Batch(cmds...)

	case BootTickMsg:
		return m, m.advanceBoot()

	case StatsMsg:
		m.applyStats(msg)
		return m, nil

	case request.Msg:
		cmd := m.Open(msg.Request)
		return m, tea.Batch(cmd, m.Requests.Listen())

	case panel.NotifyMsg:
		m.ShowNotification(msg.Message, msg.Type, config.NotificationDuration)
		return m, nil

	case prefs.ChangedMsg:
		theme.SetDark(msg.Prefs.DarkMode)
		m.refreshMenu()
		m.LogInfo("[PREFS] dark=%t font=%dpx", msg.Prefs.DarkMode, msg.Prefs.FontSize)
		// Panels that show preferences redraw from the new values.
		return m, m.Broadcast(msg)

	case tea.KeyPressMsg, tea.MouseClickMsg, tea.MouseMotionMsg,
		tea.MouseReleaseMsg, tea.MouseWheelMsg:
		if m.Booting() {
			switch msg.(type) {
			case tea.KeyPressMsg, tea.MouseClickMsg:
				m.SkipBoot()
			}
			return m, nil
		}
		// Delegate to the registered input handler
		if inputHandler != nil {
			return inputHandler(msg, m)
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.Resize(msg.Width, msg.Height)
		return m, nil

	case tea.MouseMsg:
		// Catch-all for any other mouse events to prevent them from leaking
		return m, nil
	}

	// Async panel results such as page loads and host info.
	return m, m.Broadcast(msg)
}

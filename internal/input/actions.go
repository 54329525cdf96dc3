package input

import (
	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/deskfolio/internal/app"
	"github.com/Gaurav-Gosain/deskfolio/internal/panel"
	"github.com/Gaurav-Gosain/deskfolio/internal/prefs"
)

// moveStep and resizeStep are the keyboard nudges in cells.
const (
	moveStep   = 2
	resizeStep = 2
)

// ActionHandler is a function that handles a specific action
type ActionHandler func(_ tea.KeyPressMsg, o *app.OS) (*app.OS, tea.Cmd)

// ActionDispatcher maps action names to handler functions
type ActionDispatcher struct {
	handlers map[string]ActionHandler
}

// NewActionDispatcher creates a new action dispatcher with all handlers registered
func NewActionDispatcher() *ActionDispatcher {
	d := &ActionDispatcher{
		handlers: make(map[string]ActionHandler),
	}
	d.registerHandlers()
	return d
}

// registerHandlers registers all action handlers
func (d *ActionDispatcher) registerHandlers() {
	// Window Management actions
	d.Register("next_window", handleNextWindow)
	d.Register("prev_window", handlePrevWindow)
	d.Register("close_window", handleCloseWindow)
	d.Register("minimize_window", handleMinimizeWindow)
	d.Register("maximize_window", handleMaximizeWindow)
	d.Register("restore_minimized", handleRestoreMinimized)
	d.Register("move_left", makeMoveHandler(-moveStep, 0))
	d.Register("move_right", makeMoveHandler(moveStep, 0))
	d.Register("move_up", makeMoveHandler(0, -1))
	d.Register("move_down", makeMoveHandler(0, 1))
	d.Register("resize_narrower", makeResizeHandler(-resizeStep, 0))
	d.Register("resize_wider", makeResizeHandler(resizeStep, 0))
	d.Register("resize_shorter", makeResizeHandler(0, -1))
	d.Register("resize_taller", makeResizeHandler(0, 1))

	// App launchers
	d.Register("open_terminal", makeOpenAppHandler(panel.Terminal))
	d.Register("open_about", makeOpenAppHandler(panel.About))
	d.Register("open_contact", makeOpenAppHandler(panel.Contact))
	d.Register("open_projects", makeOpenAppHandler(panel.Projects))
	d.Register("open_browser", makeOpenAppHandler(panel.Browser))
	d.Register("open_settings", makeOpenAppHandler(panel.Settings))

	// Mode control actions
	d.Register("enter_app_mode", handleEnterAppMode)
	d.Register("exit_app_mode", handleExitAppMode)
	d.Register("toggle_help", handleToggleHelp)
	d.Register("quit", handleQuit)

	// System actions
	d.Register("toggle_logs", handleToggleLogs)
	d.Register("toggle_control_center", handleToggleControlCenter)
	d.Register("toggle_dark_mode", handleToggleDarkMode)
	d.Register("font_larger", makeFontHandler(1))
	d.Register("font_smaller", makeFontHandler(-1))
}

// Register adds an action handler
func (d *ActionDispatcher) Register(action string, handler ActionHandler) {
	d.handlers[action] = handler
}

// Dispatch executes the handler for a given action
func (d *ActionDispatcher) Dispatch(action string, msg tea.KeyPressMsg, o *app.OS) (*app.OS, tea.Cmd) {
	if handler, ok := d.handlers[action]; ok {
		return handler(msg, o)
	}
	return o, nil
}

// HasAction checks if an action is registered
func (d *ActionDispatcher) HasAction(action string) bool {
	_, ok := d.handlers[action]
	return ok
}

// Global action dispatcher instance
var globalDispatcher = NewActionDispatcher()

// GetDispatcher returns the global action dispatcher
func GetDispatcher() *ActionDispatcher {
	return globalDispatcher
}

// ============================================================================
// Window Management Action Handlers
// ============================================================================

func handleNextWindow(_ tea.KeyPressMsg, o *app.OS) (*app.OS, tea.Cmd) {
	o.CycleWindow(1)
	return o, nil
}

func handlePrevWindow(_ tea.KeyPressMsg, o *app.OS) (*app.OS, tea.Cmd) {
	o.CycleWindow(-1)
	return o, nil
}

func handleCloseWindow(_ tea.KeyPressMsg, o *app.OS) (*app.OS, tea.Cmd) {
	if w, ok := o.FocusedWindow(); ok {
		o.Close(w.ID)
	}
	return o, nil
}

func handleMinimizeWindow(_ tea.KeyPressMsg, o *app.OS) (*app.OS, tea.Cmd) {
	if w, ok := o.FocusedWindow(); ok {
		o.Minimize(w.ID)
	}
	return o, nil
}

func handleMaximizeWindow(_ tea.KeyPressMsg, o *app.OS) (*app.OS, tea.Cmd) {
	if w, ok := o.FocusedWindow(); ok {
		o.ToggleMaximize(w.ID)
	}
	return o, nil
}

func handleRestoreMinimized(_ tea.KeyPressMsg, o *app.OS) (*app.OS, tea.Cmd) {
	o.RestoreLastMinimized()
	return o, nil
}

func makeMoveHandler(dx, dy int) ActionHandler {
	return func(_ tea.KeyPressMsg, o *app.OS) (*app.OS, tea.Cmd) {
		o.MoveFocused(dx, dy)
		return o, nil
	}
}

func makeResizeHandler(dw, dh int) ActionHandler {
	return func(_ tea.KeyPressMsg, o *app.OS) (*app.OS, tea.Cmd) {
		o.ResizeFocused(dw, dh)
		return o, nil
	}
}

func makeOpenAppHandler(appID string) ActionHandler {
	return func(_ tea.KeyPressMsg, o *app.OS) (*app.OS, tea.Cmd) {
		return o, o.OpenApp(appID)
	}
}

// ============================================================================
// Mode Control Action Handlers
// ============================================================================

func handleEnterAppMode(_ tea.KeyPressMsg, o *app.OS) (*app.OS, tea.Cmd) {
	o.EnterAppMode()
	return o, nil
}

func handleExitAppMode(_ tea.KeyPressMsg, o *app.OS) (*app.OS, tea.Cmd) {
	o.ExitAppMode()
	return o, nil
}

func handleToggleHelp(_ tea.KeyPressMsg, o *app.OS) (*app.OS, tea.Cmd) {
	o.ShowHelp = !o.ShowHelp
	if o.ShowHelp {
		o.HelpScrollOffset = 0 // Reset scroll when opening
	}
	return o, nil
}

// handleQuit asks for confirmation while a page is loading, otherwise quits.
func handleQuit(_ tea.KeyPressMsg, o *app.OS) (*app.OS, tea.Cmd) {
	if o.Busy() {
		o.ShowQuitConfirm = true
		o.QuitConfirmSelection = 0 // Default to Yes
		return o, nil
	}
	o.Cleanup()
	return o, tea.Quit
}

// ============================================================================
// System Action Handlers
// ============================================================================

func handleToggleLogs(_ tea.KeyPressMsg, o *app.OS) (*app.OS, tea.Cmd) {
	wasShowing := o.ShowLogs
	o.ShowLogs = !o.ShowLogs
	if o.ShowLogs && !wasShowing {
		// Opening the log viewer - log the message first
		o.LogInfo("Log viewer opened")

		// Scroll to bottom to show most recent entries
		o.ScrollLogs(len(o.LogMessages))
	}
	return o, nil
}

func handleToggleControlCenter(_ tea.KeyPressMsg, o *app.OS) (*app.OS, tea.Cmd) {
	o.ToggleControlCenter()
	return o, nil
}

func handleToggleDarkMode(_ tea.KeyPressMsg, o *app.OS) (*app.OS, tea.Cmd) {
	return o, panel.ChangePrefs(o.Prefs.ToggleDarkMode)
}

func makeFontHandler(delta int) ActionHandler {
	return func(_ tea.KeyPressMsg, o *app.OS) (*app.OS, tea.Cmd) {
		return o, panel.ChangePrefs(func() (prefs.Preferences, error) {
			return o.Prefs.AdjustFontSize(delta)
		})
	}
}

// Package input implements deskfolio input handling.
//
// Keys are routed by priority: the quit dialog, the help and log overlays,
// an open menu, then either the focused app (app mode) or the desktop
// keybindings (desktop mode). Mouse events drive the window surface.
package input

import (
	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/deskfolio/internal/app"
)

// HandleInput is the main input coordinator that routes messages to appropriate handlers
func HandleInput(msg tea.Msg, o *app.OS) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		return HandleKeyPress(msg, o)
	case tea.MouseClickMsg:
		return handleMouseClick(msg, o)
	case tea.MouseMotionMsg:
		return handleMouseMotion(msg, o)
	case tea.MouseReleaseMsg:
		return handleMouseRelease(msg, o)
	case tea.MouseWheelMsg:
		return handleMouseWheel(msg, o)
	}
	return o, nil
}

// HandleKeyPress handles all keyboard input and routes to mode-specific handlers
func HandleKeyPress(msg tea.KeyPressMsg, o *app.OS) (*app.OS, tea.Cmd) {
	// Handle quit confirmation dialog (highest priority - works in any mode)
	if o.ShowQuitConfirm {
		return handleQuitConfirmKey(msg, o)
	}
	if o.ShowHelp {
		return handleHelpKey(msg, o)
	}
	if o.ShowLogs {
		return handleLogViewerKey(msg, o)
	}
	if o.Menu != nil {
		return handleMenuKey(msg, o)
	}
	if o.Mode == app.AppMode {
		return HandleAppModeKey(msg, o)
	}
	return HandleDesktopModeKey(msg, o)
}

func handleQuitConfirmKey(msg tea.KeyPressMsg, o *app.OS) (*app.OS, tea.Cmd) {
	switch msg.String() {
	case "esc", "n":
		o.ShowQuitConfirm = false
		o.QuitConfirmSelection = 0
		return o, nil
	case "left", "h":
		o.QuitConfirmSelection = 0 // Yes (left)
		return o, nil
	case "right", "l":
		o.QuitConfirmSelection = 1 // No (right)
		return o, nil
	case "tab":
		o.QuitConfirmSelection = 1 - o.QuitConfirmSelection
		return o, nil
	case "y":
		o.Cleanup()
		return o, tea.Quit
	case "enter":
		if o.QuitConfirmSelection == 0 {
			o.Cleanup()
			return o, tea.Quit
		}
		o.ShowQuitConfirm = false
		o.QuitConfirmSelection = 0
		return o, nil
	}
	return o, nil
}

func handleHelpKey(msg tea.KeyPressMsg, o *app.OS) (*app.OS, tea.Cmd) {
	key := msg.String()
	if action, ok := o.KeybindRegistry.GetAction(key); ok && action == "toggle_help" {
		o.ShowHelp = false
		return o, nil
	}
	switch key {
	case "esc", "q":
		o.ShowHelp = false
	case "up", "k":
		o.ScrollHelp(-1)
	case "down", "j":
		o.ScrollHelp(1)
	case "pgup", "ctrl+u":
		o.ScrollHelp(-10)
	case "pgdown", "ctrl+d":
		o.ScrollHelp(10)
	case "g", "home":
		o.HelpScrollOffset = 0
	case "G", "end":
		o.ScrollHelp(1 << 16)
	}
	return o, nil
}

func handleLogViewerKey(msg tea.KeyPressMsg, o *app.OS) (*app.OS, tea.Cmd) {
	key := msg.String()

	// Close log viewer with q or esc
	if key == "q" || key == "esc" {
		o.ShowLogs = false
		o.LogScrollOffset = 0
		return o, nil
	}

	switch key {
	case "up", "k":
		o.ScrollLogs(-1)
	case "down", "j":
		o.ScrollLogs(1)
	case "pgup", "ctrl+u":
		o.ScrollLogs(-10)
	case "pgdown", "ctrl+d":
		o.ScrollLogs(10)
	case "g", "home":
		o.LogScrollOffset = 0
	case "G", "end":
		o.ScrollLogs(1 << 16)
	}

	// Ignore other keys when log viewer is active
	return o, nil
}

func handleMenuKey(msg tea.KeyPressMsg, o *app.OS) (*app.OS, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		o.CloseMenu()
	case "up", "k", "shift+tab":
		o.Menu.Move(-1)
	case "down", "j", "tab":
		o.Menu.Move(1)
	case "left", "h":
		return o, o.AdjustMenuItem(-1)
	case "right", "l":
		return o, o.AdjustMenuItem(1)
	case "enter", "space":
		return o, o.ActivateSelected()
	default:
		if action, ok := o.KeybindRegistry.GetAction(msg.String()); ok && action == "toggle_control_center" {
			o.CloseMenu()
		}
	}
	return o, nil
}

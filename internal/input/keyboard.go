package input

import (
	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/deskfolio/internal/app"
)

// HandleAppModeKey forwards keys to the focused window's panel. Only the
// exit_app_mode binding is kept back.
func HandleAppModeKey(msg tea.KeyPressMsg, o *app.OS) (*app.OS, tea.Cmd) {
	if _, ok := o.FocusedWindow(); !ok {
		o.ExitAppMode()
		return HandleDesktopModeKey(msg, o)
	}
	if action, ok := o.KeybindRegistry.GetAction(msg.String()); ok && action == "exit_app_mode" {
		o.ExitAppMode()
		return o, nil
	}
	return o, o.SendToFocused(msg)
}

// HandleDesktopModeKey runs the action bound to the key, if any.
func HandleDesktopModeKey(msg tea.KeyPressMsg, o *app.OS) (*app.OS, tea.Cmd) {
	action, ok := o.KeybindRegistry.GetAction(msg.String())
	if !ok {
		return o, nil
	}
	return GetDispatcher().Dispatch(action, msg, o)
}

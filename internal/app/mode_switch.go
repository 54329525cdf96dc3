package app

// EnterAppMode sends further keys to the focused window. Without a focused
// window the desktop stays in desktop mode.
func (m *OS) EnterAppMode() {
	if _, ok := m.FocusedWindow(); !ok {
		return
	}
	if m.Mode != AppMode {
		m.Mode = AppMode
		m.LogInfo("[MODE] app")
	}
}

// ExitAppMode returns keys to window management.
func (m *OS) ExitAppMode() {
	if m.Mode != DesktopMode {
		m.Mode = DesktopMode
		m.LogInfo("[MODE] desktop")
	}
}

// Package config provides configuration constants, keybinding management, and user settings.
package config

import (
	"time"

	"charm.land/lipgloss/v2"
)

// =============================================================================
// Window Defaults
// =============================================================================

const (
	// DefaultWindowWidth is the width of a newly opened window in cells
	DefaultWindowWidth = 64

	// DefaultWindowHeight is the height of a newly opened window in cells
	DefaultWindowHeight = 20

	// MinWindowWidth is the minimum width a window can be resized to
	MinWindowWidth = 24

	// MinWindowHeight is the minimum height a window can be resized to
	MinWindowHeight = 8

	// WindowOriginX is the column of the first window
	WindowOriginX = 4

	// WindowOriginY is the row of the first window
	WindowOriginY = 2

	// WindowStagger is the offset applied to each further window on both axes
	WindowStagger = 2

	// KeepVisibleX is how many columns of a dragged window stay on screen
	KeepVisibleX = 20

	// KeepVisibleY is how many rows of a dragged window stay above the dock
	KeepVisibleY = 3
)

// =============================================================================
// Window Chrome
// =============================================================================

const (
	// TitleBarHeight is the number of rows the title bar takes. The title bar
	// is drawn on the top border.
	TitleBarHeight = 1

	// ResizeHandleSize is the thickness of the resize band (the border)
	ResizeHandleSize = 1

	// WindowButtonWidth is the width of one title-bar control
	WindowButtonWidth = 3

	// WindowButtonsRight is the gap between the close control and the right corner
	WindowButtonsRight = 1
)

// =============================================================================
// Durations and Intervals
// =============================================================================

const (
	// NotificationFadeOutDuration is the fade out duration for notifications
	NotificationFadeOutDuration = 500 * time.Millisecond

	// NotificationDuration is the default duration notifications remain visible
	NotificationDuration = 1500 * time.Millisecond

	// BootLogoDuration is how long the boot logo shows before the progress bar
	BootLogoDuration = 1500 * time.Millisecond

	// BootStepInterval is the time between boot progress steps
	BootStepInterval = 50 * time.Millisecond

	// BootHoldDuration keeps the full progress bar up before the desktop shows
	BootHoldDuration = 500 * time.Millisecond

	// StatsUpdateInterval is the interval between CPU and memory samples
	StatsUpdateInterval = 2 * time.Second

	// ClockTickInterval drives the clock and notification expiry
	ClockTickInterval = time.Second

	// DoubleClickInterval is the longest gap between two clicks on a title bar
	// that still counts as a double click
	DoubleClickInterval = 400 * time.Millisecond

	// DefaultBrowserTimeout bounds a single page load
	DefaultBrowserTimeout = 30 * time.Second
)

// =============================================================================
// FPS and Refresh Rates
// =============================================================================

const (
	// NormalFPS is the renderer frame cap
	NormalFPS = 60
)

// =============================================================================
// UI Layout Dimensions
// =============================================================================

const (
	// MenuBarHeight is the height of the menu bar at the top. Windows never
	// sit above it.
	MenuBarHeight = 1

	// DockHeight is the height of the dock area at the bottom
	DockHeight = 1

	// LogViewerWidth is the width of the log viewer overlay
	LogViewerWidth = 80

	// ControlCenterWidth is the width of the control center dropdown
	ControlCenterWidth = 34

	// ContextMenuWidth is the width of the desktop context menu
	ContextMenuWidth = 22

	// DesktopIconWidth is the width of a desktop icon label
	DesktopIconWidth = 11

	// DesktopIconHeight is the height of a desktop icon (glyph and label)
	DesktopIconHeight = 2

	// MaxNotificationWidth is the maximum width of notification messages
	MaxNotificationWidth = 60

	// MinNotificationWidth is the minimum width of notification messages
	MinNotificationWidth = 20

	// NotificationMargin is the margin from screen edge for notifications
	NotificationMargin = 2

	// NotificationSpacing is the vertical spacing between notifications
	NotificationSpacing = 4

	// MaxVisibleNotifications is the maximum number of notifications shown at once
	MaxVisibleNotifications = 3

	// MaxNameLengthDock is the maximum length of a window name in the dock
	MaxNameLengthDock = 12
)

// =============================================================================
// Limits
// =============================================================================

const (
	// MaxLogMessages is the size of the in-app log ring
	MaxLogMessages = 100

	// MaxTerminalHistory is the number of commands the terminal panel remembers
	MaxTerminalHistory = 100

	// MaxTerminalLines is the number of output lines the terminal panel keeps
	MaxTerminalLines = 500

	// RequestBusSize is the buffer of the open-request channel
	RequestBusSize = 16

	// MaxHelpLines caps the help overlay height
	MaxHelpLines = 50
)

// =============================================================================
// Layer Order
// =============================================================================

const (
	// ZIndexDesktop is the wallpaper and icon layer
	ZIndexDesktop = 0

	// ZIndexWindowBase is added to a window's stacking position
	ZIndexWindowBase = 1

	// ZIndexMenuBar is the menu bar layer
	ZIndexMenuBar = 1000

	// ZIndexDock is the dock layer
	ZIndexDock = 1000

	// ZIndexMenus is the control center and context menu layer
	ZIndexMenus = 1500

	// ZIndexHelp is the help overlay layer
	ZIndexHelp = 1800

	// ZIndexLogs is the log viewer layer
	ZIndexLogs = 1801

	// ZIndexNotifications is the notification layer
	ZIndexNotifications = 2000
)

// =============================================================================
// Servers
// =============================================================================

const (
	// DefaultSSHPort is the port "deskfolio ssh" listens on
	DefaultSSHPort = "2222"

	// DefaultSSHHost is the address "deskfolio ssh" binds to
	DefaultSSHHost = "localhost"

	// DefaultWebPort is the port "deskfolio web" listens on
	DefaultWebPort = "7681"

	// DefaultTerminalWidth is assumed when a client reports no size
	DefaultTerminalWidth = 80

	// DefaultTerminalHeight is assumed when a client reports no size
	DefaultTerminalHeight = 24
)

// =============================================================================
// Glyphs - Unicode (Default)
// =============================================================================

const (
	// ButtonMinimize is the minimize control
	ButtonMinimize = " ─ "

	// ButtonMaximize is the maximize control
	ButtonMaximize = " □ "

	// ButtonRestore replaces the maximize control on a maximized window
	ButtonRestore = " ❐ "

	// ButtonClose is the close control
	ButtonClose = " ✕ "

	// MenuBarBrand prefixes the brand in the menu bar
	MenuBarBrand = "◆"

	// MenuBarControlCenter opens the control center
	MenuBarControlCenter = "≡"

	// DockRunning marks a dock app that has a window
	DockRunning = "•"

	// DockMinimized prefixes a minimized window chip
	DockMinimized = "▭"

	// DockSeparator is the separator between dock sections
	DockSeparator = " │ "

	// LoadingIndicator is shown in a tab while its page loads
	LoadingIndicator = "◌"

	// TabClose closes a browser tab
	TabClose = "×"

	// TabAdd opens a new browser tab
	TabAdd = "+"

	// MenuSelected marks the highlighted menu row
	MenuSelected = "›"
)

// =============================================================================
// Glyphs - ASCII Fallback
// =============================================================================

const (
	// ButtonMinimizeASCII is the ASCII fallback for minimize
	ButtonMinimizeASCII = " _ "

	// ButtonMaximizeASCII is the ASCII fallback for maximize
	ButtonMaximizeASCII = "[ ]"

	// ButtonRestoreASCII is the ASCII fallback for restore
	ButtonRestoreASCII = "[=]"

	// ButtonCloseASCII is the ASCII fallback for close
	ButtonCloseASCII = " x "

	// MenuBarBrandASCII is the ASCII fallback for the brand mark
	MenuBarBrandASCII = "*"

	// MenuBarControlCenterASCII is the ASCII fallback for the control center
	MenuBarControlCenterASCII = "="

	// DockRunningASCII is the ASCII fallback for the running marker
	DockRunningASCII = "*"

	// DockMinimizedASCII is the ASCII fallback for the minimized chip marker
	DockMinimizedASCII = "_"

	// DockSeparatorASCII is the ASCII fallback separator
	DockSeparatorASCII = " | "

	// LoadingIndicatorASCII is the ASCII fallback for the loading marker
	LoadingIndicatorASCII = "~"

	// TabCloseASCII is the ASCII fallback for the tab close control
	TabCloseASCII = "x"

	// MenuSelectedASCII is the ASCII fallback for the selected row marker
	MenuSelectedASCII = ">"
)

// =============================================================================
// Notification Icons (ASCII-safe)
// =============================================================================

const (
	// NotificationIconError is the error notification icon
	NotificationIconError = "[X]"

	// NotificationIconWarning is the warning notification icon
	NotificationIconWarning = "[!]"

	// NotificationIconSuccess is the success notification icon
	NotificationIconSuccess = "[OK]"

	// NotificationIconInfo is the info notification icon
	NotificationIconInfo = "[i]"
)

// =============================================================================
// Runtime Configuration
// =============================================================================

// UseASCIIOnly controls whether to use ASCII fallback glyphs
// Set via --ascii-only command-line flag
var UseASCIIOnly = false

// AnimationsEnabled controls notification fades and the boot screen
// Set via --no-animations flag or appearance.animations_enabled config
var AnimationsEnabled = true

// BorderStyle controls which border style to use for windows
// Set via --border-style flag or appearance.border_style config
var BorderStyle = "rounded"

// DockbarPosition controls whether the dock is shown: bottom or hidden
// Set via --dockbar-position flag or appearance.dockbar_position config
var DockbarPosition = "bottom"

// HideWindowButtons controls whether to hide window control buttons
// Set via --hide-window-buttons flag or appearance.hide_window_buttons config
var HideWindowButtons = false

// HideClock controls whether the menu bar clock is hidden
// Set via --hide-clock flag or appearance.hide_clock config
var HideClock = false

// ShowIcons controls whether desktop icons are drawn
// Set via --no-icons flag or appearance.show_icons config
var ShowIcons = true

// GetNotificationFadeOut returns how long a notification takes to fade, or
// zero when animations are off.
func GetNotificationFadeOut() time.Duration {
	if !AnimationsEnabled {
		return 0
	}
	return NotificationFadeOutDuration
}

// GetDockHeight returns the rows reserved for the dock.
func GetDockHeight() int {
	if DockbarPosition == "hidden" {
		return 0
	}
	return DockHeight
}

func pick(unicode, ascii string) string {
	if UseASCIIOnly {
		return ascii
	}
	return unicode
}

// GetButtonMinimize returns the minimize control glyph
func GetButtonMinimize() string { return pick(ButtonMinimize, ButtonMinimizeASCII) }

// GetButtonMaximize returns the maximize control glyph
func GetButtonMaximize() string { return pick(ButtonMaximize, ButtonMaximizeASCII) }

// GetButtonRestore returns the restore control glyph
func GetButtonRestore() string { return pick(ButtonRestore, ButtonRestoreASCII) }

// GetButtonClose returns the close control glyph
func GetButtonClose() string { return pick(ButtonClose, ButtonCloseASCII) }

// GetMenuBarBrand returns the brand mark
func GetMenuBarBrand() string { return pick(MenuBarBrand, MenuBarBrandASCII) }

// GetMenuBarControlCenter returns the control center glyph
func GetMenuBarControlCenter() string {
	return pick(MenuBarControlCenter, MenuBarControlCenterASCII)
}

// GetDockRunning returns the running marker
func GetDockRunning() string { return pick(DockRunning, DockRunningASCII) }

// GetDockMinimized returns the minimized chip marker
func GetDockMinimized() string { return pick(DockMinimized, DockMinimizedASCII) }

// GetDockSeparator returns the dock section separator
func GetDockSeparator() string { return pick(DockSeparator, DockSeparatorASCII) }

// GetLoadingIndicator returns the tab loading marker
func GetLoadingIndicator() string { return pick(LoadingIndicator, LoadingIndicatorASCII) }

// GetTabClose returns the tab close glyph
func GetTabClose() string { return pick(TabClose, TabCloseASCII) }

// GetMenuSelected returns the selected row marker
func GetMenuSelected() string { return pick(MenuSelected, MenuSelectedASCII) }

// BorderStyles lists the accepted values of appearance.border_style.
var BorderStyles = []string{
	"rounded", "normal", "thick", "double", "hidden", "block", "ascii",
	"outer-half-block", "inner-half-block",
}

// GetBorderForStyle returns the lipgloss Border for the current style
func GetBorderForStyle() lipgloss.Border {
	if UseASCIIOnly || BorderStyle == "ascii" {
		return lipgloss.ASCIIBorder()
	}

	switch BorderStyle {
	case "normal":
		return lipgloss.NormalBorder()
	case "thick":
		return lipgloss.ThickBorder()
	case "double":
		return lipgloss.DoubleBorder()
	case "hidden":
		return lipgloss.HiddenBorder()
	case "block":
		return lipgloss.BlockBorder()
	case "outer-half-block":
		return lipgloss.OuterHalfBlockBorder()
	case "inner-half-block":
		return lipgloss.InnerHalfBlockBorder()
	default:
		return lipgloss.RoundedBorder()
	}
}

// Package app provides the deskfolio desktop: the Bubble Tea model that owns
// the window surface, the menu bar, the dock, desktop icons and overlays.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/Gaurav-Gosain/deskfolio/internal/browser"
	"github.com/Gaurav-Gosain/deskfolio/internal/catalog"
	"github.com/Gaurav-Gosain/deskfolio/internal/config"
	"github.com/Gaurav-Gosain/deskfolio/internal/panel"
	"github.com/Gaurav-Gosain/deskfolio/internal/prefs"
	"github.com/Gaurav-Gosain/deskfolio/internal/request"
	"github.com/Gaurav-Gosain/deskfolio/internal/surface"
	"github.com/Gaurav-Gosain/deskfolio/internal/theme"
	"github.com/charmbracelet/ssh"
	"github.com/google/uuid"
)

// Mode represents the current interaction mode of the application.
type Mode int

const (
	// DesktopMode routes keys to window management and app shortcuts.
	DesktopMode Mode = iota
	// AppMode passes keys to the focused window's panel.
	AppMode
)

func (m Mode) String() string {
	if m == AppMode {
		return "APP"
	}
	return "DESKTOP"
}

// OS is the desktop model. Window geometry lives in Surface; each window's
// Content is the panel.Panel drawn inside it.
type OS struct {
	Surface         *surface.Controller
	Registry        *panel.Registry
	Catalog         *catalog.Catalog
	Prefs           *prefs.Service
	Requests        *request.Bus
	KeybindRegistry *config.KeybindRegistry
	Stats           Sampler

	Width      int
	Height     int
	Mode       Mode
	LastMouseX int
	LastMouseY int

	// Title-bar double click tracking
	lastTitleClick   string
	lastTitleClickAt time.Time

	ShowHelp             bool
	HelpScrollOffset     int
	ShowLogs             bool
	LogMessages          []LogMessage
	LogScrollOffset      int
	Notifications        []Notification
	Menu                 *Menu // open control center or context menu, nil when closed
	ShowQuitConfirm      bool
	QuitConfirmSelection int // 0 = Yes (left), 1 = No (right)

	CPUPercent      float64
	RAMPercent      float64
	LastStatsUpdate time.Time
	sampling        bool

	Brand   string
	Version string

	BootStage    BootStage
	BootProgress int // percent, during BootLoading

	// SSH mode fields
	SSHSession ssh.Session // SSH session reference (nil in local mode)
	IsSSHMode  bool        // True when running over SSH

	now func() time.Time
}

// Notification represents a temporary notification message.
type Notification struct {
	ID        string
	Message   string
	Type      string // "info", "success", "warning", "error"
	StartTime time.Time
	Duration  time.Duration
}

// LogMessage represents a log entry with timestamp and level.
type LogMessage struct {
	Time    time.Time
	Level   string // INFO, WARN, ERROR
	Message string
}

// Options configures NewOS. Zero fields fall back to defaults.
type Options struct {
	Catalog    *catalog.Catalog
	Prefs      *prefs.Service
	Config     *config.UserConfig
	Stats      Sampler
	Brand      string
	Version    string
	SSHSession ssh.Session
	// Boot shows the boot screen until it finishes or a key is pressed.
	// It is ignored while animations are off.
	Boot bool
	// Now replaces the wall clock, for tests.
	Now func() time.Time
}

// NewOS builds the desktop. The catalog should already be validated.
func NewOS(opts Options) *OS {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	cat := opts.Catalog
	if cat == nil {
		cat = &catalog.Catalog{}
	}
	svc := opts.Prefs
	if svc == nil {
		svc, _ = prefs.NewService(context.Background(), prefs.NewMemory())
	}
	if opts.Brand == "" {
		opts.Brand = "deskfolio"
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	bus := request.NewBus(config.RequestBusSize)
	m := &OS{
		Surface:         surface.New(cfg.Windows.Limits(), surface.WithIDGenerator(createID)),
		Catalog:         cat,
		Prefs:           svc,
		Requests:        bus,
		KeybindRegistry: config.NewKeybindRegistry(cfg),
		Stats:           opts.Stats,
		Brand:           opts.Brand,
		Version:         opts.Version,
		SSHSession:      opts.SSHSession,
		IsSSHMode:       opts.SSHSession != nil,
		now:             opts.Now,
	}
	m.Registry = panel.NewRegistry(panel.Env{
		Requests: bus,
		Prefs:    svc,
		Catalog:  cat,
		Fetcher:  browser.NewFetcher(cfg.Browser.Timeout(), cfg.Browser.UserAgent),
		HomeURL:  cfg.Browser.HomeURL,
		Brand:    opts.Brand,
		Version:  opts.Version,
	})
	if opts.Boot && config.AnimationsEnabled {
		m.BootStage = BootLogo
	}
	theme.SetDark(svc.Current().DarkMode)
	return m
}

func createID() string {
	return uuid.New().String()
}

// logsPerPage is how many log lines the log overlay shows at once.
func (m *OS) logsPerPage() int {
	maxDisplayHeight := max(m.Height-8, 8)
	// Fixed overhead: title, blank, blank, hint. A scroll indicator adds two.
	fixedLines := 4
	if len(m.LogMessages) > maxDisplayHeight-fixedLines {
		fixedLines = 6
	}
	return max(maxDisplayHeight-fixedLines, 1)
}

func (m *OS) maxLogScroll() int {
	return max(len(m.LogMessages)-m.logsPerPage(), 0)
}

// Log adds a new log message to the log buffer.
func (m *OS) Log(level, format string, args ...any) {
	logMsg := LogMessage{
		Time:    m.now(),
		Level:   level,
		Message: fmt.Sprintf(format, args...),
	}

	// Within 2 lines of the end counts as following the tail
	wasAtBottom := m.ShowLogs && m.LogScrollOffset >= m.maxLogScroll()-2

	m.LogMessages = append(m.LogMessages, logMsg)
	if len(m.LogMessages) > config.MaxLogMessages {
		m.LogMessages = m.LogMessages[len(m.LogMessages)-config.MaxLogMessages:]
	}

	if wasAtBottom {
		m.LogScrollOffset = m.maxLogScroll()
	}
}

// LogInfo logs an informational message.
func (m *OS) LogInfo(format string, args ...any) {
	m.Log("INFO", format, args...)
}

// LogWarn logs a warning message.
func (m *OS) LogWarn(format string, args ...any) {
	m.Log("WARN", format, args...)
}

// LogError logs an error message.
func (m *OS) LogError(format string, args ...any) {
	m.Log("ERROR", format, args...)
}

// ScrollLogs moves the log overlay by delta lines.
func (m *OS) ScrollLogs(delta int) {
	m.LogScrollOffset = min(max(m.LogScrollOffset+delta, 0), m.maxLogScroll())
}

// ShowNotification displays a temporary notification.
func (m *OS) ShowNotification(message, notifType string, duration time.Duration) {
	m.Notifications = append(m.Notifications, Notification{
		ID:        createID(),
		Message:   message,
		Type:      notifType,
		StartTime: m.now(),
		Duration:  duration,
	})

	// Also log the notification
	switch notifType {
	case "error":
		m.LogError("%s", message)
	case "warning":
		m.LogWarn("%s", message)
	default:
		m.LogInfo("%s", message)
	}
}

// CleanupNotifications removes expired notifications.
func (m *OS) CleanupNotifications() {
	now := m.now()
	var active []Notification

	for _, notif := range m.Notifications {
		if now.Sub(notif.StartTime) < notif.Duration {
			active = append(active, notif)
		}
	}

	m.Notifications = active
}

// GetTopMargin returns the first row windows may occupy.
func (m *OS) GetTopMargin() int {
	return config.MenuBarHeight
}

// GetRenderWidth returns the width of the screen.
func (m *OS) GetRenderWidth() int {
	return max(m.Width, 1)
}

// GetRenderHeight returns the height of the screen.
func (m *OS) GetRenderHeight() int {
	return max(m.Height, 1)
}

// GetUsableHeight returns the rows between the menu bar and the dock.
func (m *OS) GetUsableHeight() int {
	return max(m.Height-m.GetTopMargin()-config.GetDockHeight(), 1)
}

// GetDockY returns the dock row.
func (m *OS) GetDockY() int {
	return m.Height - config.GetDockHeight()
}

// Resize records a new screen size. Maximized windows refit through the
// surface. Floating windows keep their geometry and may hang off screen;
// only windows left entirely outside the desktop are moved back.
func (m *OS) Resize(width, height int) {
	m.Width, m.Height = width, height
	m.Surface.SetViewport(width, height-config.GetDockHeight())
	m.RescueOffscreenWindows()
}

// RescueOffscreenWindows moves floating windows that have no cell left on
// the desktop back within reach. Sizes are never changed.
func (m *OS) RescueOffscreenWindows() {
	renderWidth := m.GetRenderWidth()
	top, bottom := m.GetTopMargin(), m.GetDockY()
	moved := 0

	for _, win := range m.Surface.Windows() {
		if win.Minimized || win.Maximized {
			continue
		}
		onScreen := win.Position.X < renderWidth && win.Position.X+win.Size.Width > 0 &&
			win.Position.Y < bottom && win.Position.Y+win.Size.Height > top
		if onScreen {
			continue
		}
		pos := m.keepVisible(win.Position, win.Size)
		if pos != win.Position {
			m.Surface.Update(win.ID, surface.Patch{Position: &pos})
			moved++
		}
	}

	if moved > 0 {
		m.LogInfo("[RESCUE] Moved %d off-screen windows into %dx%d", moved, renderWidth, m.GetRenderHeight())
	}
}

// keepVisible moves pos so a window of the given size keeps the drag
// margins on screen and stays between the menu bar and the dock.
func (m *OS) keepVisible(pos surface.Point, size surface.Size) surface.Point {
	keep := m.Surface.Limits().KeepVisible
	renderWidth := m.GetRenderWidth()
	topMargin := m.GetTopMargin()

	if pos.X+size.Width < keep.Width {
		pos.X = keep.Width - size.Width
	}
	if pos.X > renderWidth-keep.Width {
		pos.X = renderWidth - keep.Width
	}
	maxY := topMargin + m.GetUsableHeight() - keep.Height
	pos.Y = max(min(pos.Y, maxY), topMargin)
	return pos
}

// Cleanup stops background channels. Call it once the program exits.
func (m *OS) Cleanup() {
	m.Requests.Close()
}

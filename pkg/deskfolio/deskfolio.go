// Package deskfolio provides the portfolio desktop as a Bubble Tea model that
// can be embedded in other applications or served over SSH and the web.
//
// # Basic Usage
//
//	model := deskfolio.New()
//	p := tea.NewProgram(model, deskfolio.ProgramOptions()...)
//	if _, err := p.Run(); err != nil {
//		log.Fatal(err)
//	}
//
// # Custom Configuration
//
//	cat, _ := catalog.LoadFile("me.yaml")
//	model := deskfolio.New(
//		deskfolio.WithCatalog(cat),
//		deskfolio.WithTheme("dracula"),
//		deskfolio.WithHideClock(true),
//	)
//
// # Using with sip (Web Terminal)
//
//	server := sip.NewServer(sip.DefaultConfig())
//	server.Serve(ctx, func(sess sip.Session) (tea.Model, []tea.ProgramOption) {
//		return deskfolio.NewForPTY(sess.Pty()), deskfolio.ProgramOptions()
//	})
package deskfolio

import (
	"context"
	"log"

	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/deskfolio/internal/app"
	"github.com/Gaurav-Gosain/deskfolio/internal/catalog"
	"github.com/Gaurav-Gosain/deskfolio/internal/config"
	"github.com/Gaurav-Gosain/deskfolio/internal/input"
	"github.com/Gaurav-Gosain/deskfolio/internal/prefs"
	"github.com/Gaurav-Gosain/deskfolio/internal/surface"
	"github.com/charmbracelet/ssh"
)

// Model is the desktop model. It implements tea.Model.
type Model = app.OS

// Mode is the desktop's input mode.
type Mode = app.Mode

const (
	// DesktopMode routes keys to window management.
	DesktopMode = app.DesktopMode
	// AppMode passes keys to the focused window.
	AppMode = app.AppMode
)

// Options configures a desktop.
type Options struct {
	// Catalog is the portfolio content. Nil uses the built-in catalog.
	Catalog *catalog.Catalog

	// Prefs holds the font size and dark mode. Nil keeps them in memory.
	Prefs *prefs.Service

	// UserConfig is a custom configuration. Nil loads the user's config file,
	// falling back to the defaults.
	UserConfig *config.UserConfig

	// Theme is the bubbletint theme id for both modes.
	Theme string

	// ASCIIOnly uses ASCII glyphs for the chrome.
	ASCIIOnly bool

	// BorderStyle sets the window border style.
	// Valid values: "rounded", "normal", "thick", "double", "hidden", "block", "ascii"
	BorderStyle string

	// DockbarPosition is "bottom" or "hidden".
	DockbarPosition string

	HideWindowButtons bool
	HideClock         bool
	NoIcons           bool

	// SystemStats shows host CPU and memory in the menu bar.
	SystemStats bool

	// SkipBoot starts on the desktop instead of the boot screen.
	SkipBoot bool

	// Brand replaces the menu bar name.
	Brand   string
	Version string

	// Width and Height are the initial screen size. A WindowSizeMsg
	// replaces them.
	Width  int
	Height int

	// SSHSession is set when serving over SSH.
	SSHSession ssh.Session
}

// Option is a functional option for New.
type Option func(*Options)

// WithCatalog sets the portfolio content.
func WithCatalog(c *catalog.Catalog) Option {
	return func(o *Options) {
		o.Catalog = c
	}
}

// WithPrefs sets the preferences service.
func WithPrefs(p *prefs.Service) Option {
	return func(o *Options) {
		o.Prefs = p
	}
}

// WithUserConfig sets a custom configuration.
func WithUserConfig(cfg *config.UserConfig) Option {
	return func(o *Options) {
		o.UserConfig = cfg
	}
}

// WithTheme sets the color theme.
func WithTheme(name string) Option {
	return func(o *Options) {
		o.Theme = name
	}
}

// WithASCIIOnly enables ASCII-only glyphs.
func WithASCIIOnly(enabled bool) Option {
	return func(o *Options) {
		o.ASCIIOnly = enabled
	}
}

// WithBorderStyle sets the window border style.
func WithBorderStyle(style string) Option {
	return func(o *Options) {
		o.BorderStyle = style
	}
}

// WithDockbarPosition sets the dockbar position.
func WithDockbarPosition(position string) Option {
	return func(o *Options) {
		o.DockbarPosition = position
	}
}

// WithHideWindowButtons hides the window controls.
func WithHideWindowButtons(hide bool) Option {
	return func(o *Options) {
		o.HideWindowButtons = hide
	}
}

// WithHideClock hides the menu bar clock.
func WithHideClock(hide bool) Option {
	return func(o *Options) {
		o.HideClock = hide
	}
}

// WithNoIcons hides the desktop icons.
func WithNoIcons(hide bool) Option {
	return func(o *Options) {
		o.NoIcons = hide
	}
}

// WithSystemStats samples the host for the menu bar.
func WithSystemStats(enabled bool) Option {
	return func(o *Options) {
		o.SystemStats = enabled
	}
}

// WithSkipBoot starts on the desktop instead of the boot screen.
func WithSkipBoot(skip bool) Option {
	return func(o *Options) {
		o.SkipBoot = skip
	}
}

// WithBrand sets the menu bar name and version.
func WithBrand(brand, version string) Option {
	return func(o *Options) {
		o.Brand = brand
		o.Version = version
	}
}

// WithSize sets the initial screen size.
func WithSize(width, height int) Option {
	return func(o *Options) {
		o.Width = width
		o.Height = height
	}
}

// WithSSHSession marks the desktop as served over SSH.
func WithSSHSession(s ssh.Session) Option {
	return func(o *Options) {
		o.SSHSession = s
	}
}

// New creates a desktop with the given options.
func New(opts ...Option) *Model {
	var options Options
	for _, opt := range opts {
		opt(&options)
	}
	return newModel(options)
}

// PTY is anything that knows its size, such as a web or SSH session's pty.
type PTY interface {
	Width() int
	Height() int
}

// NewForPTY creates a desktop sized to pty.
func NewForPTY(pty PTY, opts ...Option) *Model {
	return New(append(opts, WithSize(pty.Width(), pty.Height()))...)
}

func newModel(options Options) *Model {
	app.SetInputHandler(input.HandleInput)

	userConfig := options.UserConfig
	if userConfig == nil {
		var err error
		userConfig, err = config.LoadUserConfig()
		if err != nil {
			log.Printf("Warning: Failed to load config, using defaults: %v", err)
			userConfig = config.DefaultConfig()
		}
	}

	config.ApplyOverrides(config.Overrides{
		ASCIIOnly:         options.ASCIIOnly,
		BorderStyle:       options.BorderStyle,
		DockbarPosition:   options.DockbarPosition,
		HideWindowButtons: options.HideWindowButtons,
		HideClock:         options.HideClock,
		NoIcons:           options.NoIcons,
		ThemeName:         options.Theme,
	}, userConfig)

	cat := options.Catalog
	if cat == nil {
		var err error
		if cat, err = catalog.Default(); err != nil {
			log.Printf("Warning: built-in catalog: %v", err)
		}
	}

	svc := options.Prefs
	if svc == nil {
		svc, _ = prefs.NewService(context.Background(), prefs.NewMemory())
	}

	var stats app.Sampler
	if options.SystemStats {
		stats = app.SystemSampler{}
	}

	m := app.NewOS(app.Options{
		Catalog:    cat,
		Prefs:      svc,
		Config:     userConfig,
		Stats:      stats,
		Brand:      options.Brand,
		Version:    options.Version,
		SSHSession: options.SSHSession,
		Boot:       !options.SkipBoot,
	})
	if options.Width > 0 && options.Height > 0 {
		m.Resize(options.Width, options.Height)
	}
	return m
}

// ProgramOptions returns the tea.ProgramOption values the desktop runs best
// with:
//
//	p := tea.NewProgram(model, deskfolio.ProgramOptions()...)
func ProgramOptions() []tea.ProgramOption {
	return []tea.ProgramOption{
		tea.WithFPS(config.NormalFPS),
		tea.WithFilter(FilterMouseMotion),
	}
}

// FilterMouseMotion drops pointer motion unless a window is being dragged or
// resized. Nothing else reacts to motion.
func FilterMouseMotion(model tea.Model, msg tea.Msg) tea.Msg {
	if _, ok := msg.(tea.MouseMotionMsg); !ok {
		return msg
	}

	m, ok := model.(*Model)
	if !ok {
		return msg
	}

	if surface.GestureWindow(m.Surface.Gesture()) != "" {
		return msg
	}
	return nil
}

// Config re-exports the config loaders so embedders need not import
// internal packages.
var Config = struct {
	// LoadUserConfig loads the user's configuration file.
	LoadUserConfig func() (*config.UserConfig, error)
	// DefaultConfig returns the default configuration.
	DefaultConfig func() *config.UserConfig
	// GetConfigPath returns the path to the configuration file.
	GetConfigPath func() (string, error)
}{
	LoadUserConfig: config.LoadUserConfig,
	DefaultConfig:  config.DefaultConfig,
	GetConfigPath:  config.GetConfigPath,
}

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Gaurav-Gosain/deskfolio/internal/surface"
	"github.com/adrg/xdg"
	"github.com/pelletier/go-toml/v2"
)

// configFile is the config path relative to the XDG config home.
const configFile = "deskfolio/config.toml"

// UserConfig represents the user's custom configuration
type UserConfig struct {
	Appearance  AppearanceConfig  `toml:"appearance"`
	Windows     WindowsConfig     `toml:"windows"`
	Browser     BrowserConfig     `toml:"browser"`
	Keybindings KeybindingsConfig `toml:"keybindings"`
}

// AppearanceConfig holds appearance-related settings
type AppearanceConfig struct {
	BorderStyle       string `toml:"border_style"`        // Border style: rounded, normal, thick, double, hidden, block, ascii, outer-half-block, inner-half-block
	HideWindowButtons bool   `toml:"hide_window_buttons"` // Hide window control buttons (minimize, maximize, close)
	DockbarPosition   string `toml:"dockbar_position"`    // Dockbar position: bottom, hidden
	Theme             string `toml:"theme"`               // Theme for both modes (e.g., dracula, nord, my-custom-theme)
	DarkTheme         string `toml:"dark_theme"`          // Theme used in dark mode, overrides theme
	LightTheme        string `toml:"light_theme"`         // Theme used in light mode, overrides theme
	AnimationsEnabled *bool  `toml:"animations_enabled"`  // Fade notifications and show the boot screen (default: true)
	HideClock         bool   `toml:"hide_clock"`          // Hide the menu bar clock (default: false)
	ShowIcons         *bool  `toml:"show_icons"`          // Draw desktop icons (default: true)
}

// WindowsConfig holds window geometry, in cells
type WindowsConfig struct {
	MinWidth      int `toml:"min_width"`
	MinHeight     int `toml:"min_height"`
	Stagger       int `toml:"stagger"`
	DefaultWidth  int `toml:"default_width"`
	DefaultHeight int `toml:"default_height"`
	KeepVisibleX  int `toml:"keep_visible_x"`
	KeepVisibleY  int `toml:"keep_visible_y"`
}

// BrowserConfig holds settings of the browser app
type BrowserConfig struct {
	HomeURL        string `toml:"home_url"`        // Page a new tab opens (default: about:blank)
	TimeoutSeconds int    `toml:"timeout_seconds"` // Page load timeout (default: 30)
	UserAgent      string `toml:"user_agent"`      // User-Agent header (default: deskfolio)
}

// KeybindingsConfig holds all keybinding configurations
type KeybindingsConfig struct {
	WindowManagement map[string][]string `toml:"window_management"`
	Apps             map[string][]string `toml:"apps"`
	ModeControl      map[string][]string `toml:"mode_control"`
	System           map[string][]string `toml:"system"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *UserConfig {
	return &UserConfig{
		Appearance: AppearanceConfig{
			BorderStyle:     "rounded",
			DockbarPosition: "bottom",
		},
		Windows: WindowsConfig{
			MinWidth:      MinWindowWidth,
			MinHeight:     MinWindowHeight,
			Stagger:       WindowStagger,
			DefaultWidth:  DefaultWindowWidth,
			DefaultHeight: DefaultWindowHeight,
			KeepVisibleX:  KeepVisibleX,
			KeepVisibleY:  KeepVisibleY,
		},
		Browser: BrowserConfig{
			HomeURL:        "about:blank",
			TimeoutSeconds: int(DefaultBrowserTimeout / time.Second),
		},
		Keybindings: KeybindingsConfig{
			WindowManagement: map[string][]string{
				"next_window":       {"tab"},
				"prev_window":       {"shift+tab"},
				"close_window":      {"x", "w"},
				"minimize_window":   {"m"},
				"maximize_window":   {"z", "f"},
				"restore_minimized": {"r"},
				"move_left":         {"h", "left"},
				"move_right":        {"l", "right"},
				"move_up":           {"k", "up"},
				"move_down":         {"j", "down"},
				"resize_narrower":   {"H", "shift+left"},
				"resize_wider":      {"L", "shift+right"},
				"resize_shorter":    {"K", "shift+up"},
				"resize_taller":     {"J", "shift+down"},
			},
			Apps: map[string][]string{
				"open_terminal": {"t"},
				"open_about":    {"a"},
				"open_contact":  {"c"},
				"open_projects": {"p"},
				"open_browser":  {"b"},
				"open_settings": {"s"},
			},
			ModeControl: map[string][]string{
				"enter_app_mode": {"i", "enter"},
				"exit_app_mode":  {"ctrl+b"},
				"toggle_help":    {"?"},
				"quit":           {"q", "ctrl+c"},
			},
			System: map[string][]string{
				"toggle_logs":           {"ctrl+l", "O"},
				"toggle_control_center": {"C"},
				"toggle_dark_mode":      {"D"},
				"font_larger":           {"+", "="},
				"font_smaller":          {"-"},
			},
		},
	}
}

// LoadUserConfig loads the user configuration from XDG config directory
func LoadUserConfig() (*UserConfig, error) {
	configPath, err := xdg.SearchConfigFile(configFile)
	if err != nil {
		return createDefaultConfig()
	}
	return LoadUserConfigFile(configPath)
}

// LoadUserConfigFile loads, completes and validates the config at path.
// Warnings are printed to stderr; errors abort.
func LoadUserConfigFile(configPath string) (*UserConfig, error) {
	// #nosec G304 - configPath is from XDG search or the --config flag
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg, err := ParseUserConfig(data)
	if err != nil {
		return nil, err
	}

	validation := ValidateConfig(cfg)
	if validation.HasErrors() {
		for _, e := range validation.Errors {
			fmt.Fprintf(os.Stderr, "Config error in [%s]: %s - %s\n", e.Field, e.Key, e.Message)
		}
		return nil, fmt.Errorf("configuration has %d error(s), please fix and restart", len(validation.Errors))
	}
	for _, w := range validation.Warnings {
		fmt.Fprintf(os.Stderr, "Config warning in [%s]: %s - %s\n", w.Field, w.Key, w.Message)
	}

	return cfg, nil
}

// ParseUserConfig decodes TOML and fills in whatever the file leaves out.
func ParseUserConfig(data []byte) (*UserConfig, error) {
	var cfg UserConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	defaultCfg := DefaultConfig()
	fillMissingAppearance(&cfg, defaultCfg)
	fillMissingWindows(&cfg, defaultCfg)
	fillMissingBrowser(&cfg, defaultCfg)
	fillMissingKeybinds(&cfg, defaultCfg)
	return &cfg, nil
}

// createDefaultConfig creates a default config file in the user's config directory
func createDefaultConfig() (*UserConfig, error) {
	configPath, err := xdg.ConfigFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to get config path: %w", err)
	}
	cfg := DefaultConfig()
	if err := WriteDefaultConfig(configPath); err != nil {
		return nil, err
	}
	return cfg, nil
}

// WriteDefaultConfig writes the commented default config to configPath,
// replacing any file already there.
func WriteDefaultConfig(configPath string) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(DefaultConfig())
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	var sb strings.Builder
	sb.WriteString("# deskfolio Configuration File\n")
	sb.WriteString("#\n")
	sb.WriteString("# Configuration location: " + configPath + "\n")
	sb.WriteString("# For keybindings, run: deskfolio keybinds list\n\n")

	sb.WriteString("# ============================================================================\n")
	sb.WriteString("# APPEARANCE\n")
	sb.WriteString("# ============================================================================\n")
	sb.WriteString("# border_style: rounded, normal, thick, double, hidden, block, ascii,\n")
	sb.WriteString("#               outer-half-block, inner-half-block (default: rounded)\n")
	sb.WriteString("# dockbar_position: bottom, hidden (default: bottom)\n")
	sb.WriteString("# theme: bubbletint theme id used in both modes. dark_theme and light_theme\n")
	sb.WriteString("#   pick one per mode. Custom themes: ~/.config/deskfolio/themes/*.json\n")
	sb.WriteString("#   Leave all empty for the built-in palette.\n")
	sb.WriteString("#\n")
	sb.WriteString("# WINDOWS (cells)\n")
	sb.WriteString("# min_width/min_height: resize floor (at least 10x3)\n")
	sb.WriteString("# keep_visible_x/keep_visible_y: how much of a dragged window stays on screen\n")
	sb.WriteString("#\n")
	sb.WriteString("# BROWSER\n")
	sb.WriteString("# timeout_seconds: 1 to 300 (default: 30)\n")
	sb.WriteString("# ============================================================================\n\n")

	sb.Write(data)

	if err := os.WriteFile(configPath, []byte(sb.String()), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// fillMissingAppearance fills in any missing appearance settings with defaults
func fillMissingAppearance(cfg, defaultCfg *UserConfig) {
	if cfg.Appearance.BorderStyle == "" {
		cfg.Appearance.BorderStyle = defaultCfg.Appearance.BorderStyle
	}
	if cfg.Appearance.DockbarPosition == "" {
		cfg.Appearance.DockbarPosition = defaultCfg.Appearance.DockbarPosition
	}
}

// fillMissingWindows fills zero geometry with defaults. Stagger and the
// keep-visible margins may legitimately be zero, so only negative values
// are replaced there.
func fillMissingWindows(cfg, defaultCfg *UserConfig) {
	w, d := &cfg.Windows, defaultCfg.Windows
	if w.MinWidth <= 0 {
		w.MinWidth = d.MinWidth
	}
	if w.MinHeight <= 0 {
		w.MinHeight = d.MinHeight
	}
	if w.DefaultWidth <= 0 {
		w.DefaultWidth = d.DefaultWidth
	}
	if w.DefaultHeight <= 0 {
		w.DefaultHeight = d.DefaultHeight
	}
	if w.Stagger < 0 {
		w.Stagger = d.Stagger
	}
	if w.KeepVisibleX < 0 {
		w.KeepVisibleX = d.KeepVisibleX
	}
	if w.KeepVisibleY < 0 {
		w.KeepVisibleY = d.KeepVisibleY
	}
}

func fillMissingBrowser(cfg, defaultCfg *UserConfig) {
	if cfg.Browser.HomeURL == "" {
		cfg.Browser.HomeURL = defaultCfg.Browser.HomeURL
	}
	if cfg.Browser.TimeoutSeconds == 0 {
		cfg.Browser.TimeoutSeconds = defaultCfg.Browser.TimeoutSeconds
	}
}

// fillMissingKeybinds fills in any missing keybindings with defaults
func fillMissingKeybinds(cfg, defaultCfg *UserConfig) {
	if cfg.Keybindings.WindowManagement == nil {
		cfg.Keybindings.WindowManagement = make(map[string][]string)
	}
	if cfg.Keybindings.Apps == nil {
		cfg.Keybindings.Apps = make(map[string][]string)
	}
	if cfg.Keybindings.ModeControl == nil {
		cfg.Keybindings.ModeControl = make(map[string][]string)
	}
	if cfg.Keybindings.System == nil {
		cfg.Keybindings.System = make(map[string][]string)
	}

	fillMapDefaults(cfg.Keybindings.WindowManagement, defaultCfg.Keybindings.WindowManagement)
	fillMapDefaults(cfg.Keybindings.Apps, defaultCfg.Keybindings.Apps)
	fillMapDefaults(cfg.Keybindings.ModeControl, defaultCfg.Keybindings.ModeControl)
	fillMapDefaults(cfg.Keybindings.System, defaultCfg.Keybindings.System)
}

func fillMapDefaults(target, defaults map[string][]string) {
	for k, v := range defaults {
		if _, exists := target[k]; !exists {
			target[k] = v
		}
	}
}

// Limits converts the window settings into surface geometry rules.
func (w WindowsConfig) Limits() surface.Limits {
	return surface.Limits{
		MinWidth:        w.MinWidth,
		MinHeight:       w.MinHeight,
		MenuBarInset:    MenuBarHeight,
		Origin:          surface.Point{X: WindowOriginX, Y: WindowOriginY},
		Stagger:         w.Stagger,
		DefaultSize:     surface.Size{Width: max(w.DefaultWidth, w.MinWidth), Height: max(w.DefaultHeight, w.MinHeight)},
		RestorePosition: surface.Point{X: WindowOriginX, Y: WindowOriginY},
		KeepVisible:     surface.Size{Width: w.KeepVisibleX, Height: w.KeepVisibleY},
		Chrome: surface.Chrome{
			TitleHeight:  TitleBarHeight,
			HandleSize:   ResizeHandleSize,
			ButtonWidth:  WindowButtonWidth,
			ButtonsRight: WindowButtonsRight,
		},
	}
}

// Timeout returns the page load timeout.
func (b BrowserConfig) Timeout() time.Duration {
	if b.TimeoutSeconds <= 0 {
		return DefaultBrowserTimeout
	}
	return time.Duration(b.TimeoutSeconds) * time.Second
}

// GetConfigPath returns the path to the config file
func GetConfigPath() (string, error) {
	path, err := xdg.SearchConfigFile(configFile)
	if err != nil {
		return xdg.ConfigFile(configFile)
	}
	return path, nil
}

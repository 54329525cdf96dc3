package config

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestParseUserConfigFillsDefaults(t *testing.T) {
	cfg, err := ParseUserConfig([]byte(`
[appearance]
border_style = "double"

[windows]
min_width = 30

[keybindings.apps]
open_browser = ["B"]
`))
	if err != nil {
		t.Fatalf("ParseUserConfig: %v", err)
	}

	if cfg.Appearance.BorderStyle != "double" {
		t.Errorf("border_style = %q, want double", cfg.Appearance.BorderStyle)
	}
	if cfg.Appearance.DockbarPosition != "bottom" {
		t.Errorf("dockbar_position = %q, want bottom", cfg.Appearance.DockbarPosition)
	}
	if cfg.Windows.MinWidth != 30 || cfg.Windows.MinHeight != MinWindowHeight {
		t.Errorf("windows = %+v", cfg.Windows)
	}
	if cfg.Browser.HomeURL != "about:blank" || cfg.Browser.TimeoutSeconds != 30 {
		t.Errorf("browser = %+v", cfg.Browser)
	}
	if got := cfg.Keybindings.Apps["open_browser"]; len(got) != 1 || got[0] != "B" {
		t.Errorf("open_browser = %v, want [B]", got)
	}
	if got := cfg.Keybindings.Apps["open_terminal"]; len(got) == 0 {
		t.Error("open_terminal default was not filled in")
	}
}

func TestParseUserConfigRejectsBadTOML(t *testing.T) {
	if _, err := ParseUserConfig([]byte("[appearance\n")); err == nil {
		t.Fatal("expected a parse error")
	}
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*UserConfig)
		wantErr  string
		wantWarn string
	}{
		{"defaults", func(*UserConfig) {}, "", ""},
		{"bad border", func(c *UserConfig) { c.Appearance.BorderStyle = "wavy" }, "border_style", ""},
		{"top dock", func(c *UserConfig) { c.Appearance.DockbarPosition = "top" }, "", "dockbar_position"},
		{"bad dock", func(c *UserConfig) { c.Appearance.DockbarPosition = "left" }, "dockbar_position", ""},
		{"tiny floor", func(c *UserConfig) { c.Windows.MinWidth = 4 }, "min_width", ""},
		{"default below floor", func(c *UserConfig) { c.Windows.DefaultHeight = 2 }, "", "default_height"},
		{"timeout", func(c *UserConfig) { c.Browser.TimeoutSeconds = 900 }, "timeout_seconds", ""},
		{"relative home", func(c *UserConfig) { c.Browser.HomeURL = "example" }, "home_url", ""},
		{"unknown action", func(c *UserConfig) { c.Keybindings.System["launch_rockets"] = []string{"!"} }, "", "launch_rockets"},
		{"duplicate key", func(c *UserConfig) { c.Keybindings.Apps["open_browser"] = []string{"t"} }, "already bound", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			r := ValidateConfig(cfg)

			if tt.wantErr == "" && r.HasErrors() {
				t.Errorf("unexpected errors: %v", r.Errors)
			}
			if tt.wantErr != "" && !containsIssue(r.Errors, tt.wantErr) {
				t.Errorf("errors %v do not mention %q", r.Errors, tt.wantErr)
			}
			if tt.wantWarn != "" && !containsIssue(r.Warnings, tt.wantWarn) {
				t.Errorf("warnings %v do not mention %q", r.Warnings, tt.wantWarn)
			}
		})
	}
}

func containsIssue(issues []ValidationError, s string) bool {
	for _, e := range issues {
		if strings.Contains(e.Error(), s) {
			return true
		}
	}
	return false
}

func TestValidateRaisesDefaultSize(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Windows.DefaultWidth = 5
	ValidateConfig(cfg)
	if cfg.Windows.DefaultWidth != cfg.Windows.MinWidth {
		t.Errorf("default_width = %d, want raised to %d", cfg.Windows.DefaultWidth, cfg.Windows.MinWidth)
	}
}

func TestWriteDefaultConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deskfolio", "config.toml")
	if err := WriteDefaultConfig(path); err != nil {
		t.Fatalf("WriteDefaultConfig: %v", err)
	}
	cfg, err := LoadUserConfigFile(path)
	if err != nil {
		t.Fatalf("LoadUserConfigFile: %v", err)
	}
	def := DefaultConfig()
	if cfg.Windows != def.Windows || cfg.Browser != def.Browser {
		t.Errorf("round trip changed config: %+v", cfg)
	}
}

func TestWindowsLimits(t *testing.T) {
	l := DefaultConfig().Windows.Limits()
	if l.MinWidth != MinWindowWidth || l.MinHeight != MinWindowHeight {
		t.Errorf("floor = %dx%d", l.MinWidth, l.MinHeight)
	}
	if l.MenuBarInset != MenuBarHeight {
		t.Errorf("inset = %d, want %d", l.MenuBarInset, MenuBarHeight)
	}
	if l.Chrome.TitleHeight != 1 || l.Chrome.ButtonWidth != WindowButtonWidth {
		t.Errorf("chrome = %+v", l.Chrome)
	}
	if l.KeepVisible.Width != KeepVisibleX || l.KeepVisible.Height != KeepVisibleY {
		t.Errorf("keep visible = %+v", l.KeepVisible)
	}
}

func TestKeybindRegistry(t *testing.T) {
	r := NewKeybindRegistry(nil)

	tests := map[string]string{
		"tab":    "next_window",
		"x":      "close_window",
		"b":      "open_browser",
		"ctrl+b": "exit_app_mode",
		"?":      "toggle_help",
		"D":      "toggle_dark_mode",
	}
	for key, want := range tests {
		if got, ok := r.GetAction(key); !ok || got != want {
			t.Errorf("GetAction(%q) = %q, %v, want %q", key, got, ok, want)
		}
	}
	if _, ok := r.GetAction("F13"); ok {
		t.Error("unbound key resolved to an action")
	}
	if got := r.GetKeysForDisplay("maximize_window"); got != "f, z" {
		t.Errorf("GetKeysForDisplay = %q, want %q", got, "f, z")
	}
}

func TestKeybindRegistryIgnoresUnknownActions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Keybindings.System["launch_rockets"] = []string{"!"}
	r := NewKeybindRegistry(cfg)
	if _, ok := r.GetAction("!"); ok {
		t.Error("unknown action should not be bound")
	}
}

func TestNormalizeKey(t *testing.T) {
	tests := map[string]string{
		" q ":        "q",
		"Ctrl+B":     "ctrl+B",
		"opt+h":      "alt+h",
		"shift+Left": "shift+Left",
		"+":          "+",
		"ctrl++":     "ctrl++",
	}
	for in, want := range tests {
		if got := NormalizeKey(in); got != want {
			t.Errorf("NormalizeKey(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestGetKeybindingsSections(t *testing.T) {
	sections := GetKeybindings(nil)
	titles := make(map[string]int)
	for _, s := range sections {
		titles[s.Title] = len(s.Bindings)
	}
	for _, want := range []string{"WINDOWS", "APPS", "MODES", "SYSTEM", "MOUSE"} {
		if titles[want] == 0 {
			t.Errorf("section %q missing or empty", want)
		}
	}
}

func TestResolveThemes(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Appearance.Theme = "nord"
	cfg.Appearance.LightTheme = "catppuccin-latte"

	tests := []struct {
		name      string
		flag      string
		cfg       *UserConfig
		dark, lit string
	}{
		{"flag wins", "dracula", cfg, "dracula", "dracula"},
		{"per mode", "", cfg, "nord", "catppuccin-latte"},
		{"none", "", nil, "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dark, light := ResolveThemes(tt.flag, tt.cfg)
			if dark != tt.dark || light != tt.lit {
				t.Errorf("got %q/%q, want %q/%q", dark, light, tt.dark, tt.lit)
			}
		})
	}
}

func TestGlyphsFollowASCIIOnly(t *testing.T) {
	t.Cleanup(func() { UseASCIIOnly = false })

	UseASCIIOnly = false
	if GetButtonClose() != ButtonClose {
		t.Errorf("close = %q", GetButtonClose())
	}
	UseASCIIOnly = true
	if GetButtonClose() != ButtonCloseASCII || GetBorderForStyle().TopLeft != "+" {
		t.Error("ASCII mode should use ASCII glyphs and borders")
	}
}

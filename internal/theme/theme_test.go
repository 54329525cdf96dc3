package theme

import (
	"testing"

	"charm.land/lipgloss/v2"
	"github.com/adrg/xdg"
)

func TestBuiltinPaletteFollowsDarkMode(t *testing.T) {
	if err := Initialize("", ""); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	t.Cleanup(func() { SetDark(true) })

	if IsEnabled() {
		t.Fatal("theming should be disabled without theme ids")
	}
	if Current() != nil {
		t.Fatal("Current should be nil while disabled")
	}

	SetDark(true)
	if got, want := ColorToString(DesktopBg()), darkPalette.bg; got != want {
		t.Errorf("dark DesktopBg = %s, want %s", got, want)
	}
	SetDark(false)
	if got, want := ColorToString(DesktopBg()), lightPalette.bg; got != want {
		t.Errorf("light DesktopBg = %s, want %s", got, want)
	}
	if IsDark() {
		t.Error("IsDark should be false after SetDark(false)")
	}
}

func TestInitializeUnknownTheme(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	xdg.Reload()
	err := Initialize("no-such-theme-anywhere", "")
	t.Cleanup(func() { _ = Initialize("", "") })
	if err == nil {
		t.Fatal("expected an error for an unknown theme")
	}
	if !IsEnabled() {
		t.Error("theming should fall back to the default theme")
	}
}

func TestColorToString(t *testing.T) {
	tests := map[string]string{
		"#ff8000": "#ff8000",
		"#000000": "#000000",
	}
	for in, want := range tests {
		if got := ColorToString(lipgloss.Color(in)); got != want {
			t.Errorf("ColorToString(%s) = %s, want %s", in, got, want)
		}
	}
	if got := ColorToString(nil); got != "#000000" {
		t.Errorf("ColorToString(nil) = %s", got)
	}
}

package config

import (
	"log"

	"github.com/Gaurav-Gosain/deskfolio/internal/theme"
)

// Overrides contains CLI flag values that can override user config.
// Zero values indicate the flag was not set and should use the user config default.
type Overrides struct {
	// ASCIIOnly uses ASCII glyphs instead of Unicode symbols
	ASCIIOnly bool

	// BorderStyle overrides the window border style
	BorderStyle string

	// DockbarPosition overrides the dockbar position
	DockbarPosition string

	// HideWindowButtons overrides hiding window control buttons
	HideWindowButtons bool

	// HideClock overrides hiding the clock
	HideClock bool

	// NoIcons hides the desktop icons
	NoIcons bool

	// NoAnimations disables the notification fade
	NoAnimations bool

	// ThemeName is the theme to load for both modes
	ThemeName string
}

// ApplyOverrides applies CLI flag overrides to global config, falling back to user config defaults.
// If userConfig is nil, only CLI flag values (when set) are applied.
func ApplyOverrides(overrides Overrides, userConfig *UserConfig) {
	if overrides.ASCIIOnly {
		UseASCIIOnly = true
	}

	if overrides.BorderStyle != "" {
		BorderStyle = overrides.BorderStyle
	} else if userConfig != nil && userConfig.Appearance.BorderStyle != "" {
		BorderStyle = userConfig.Appearance.BorderStyle
	}

	if overrides.DockbarPosition != "" {
		DockbarPosition = overrides.DockbarPosition
	} else if userConfig != nil && userConfig.Appearance.DockbarPosition != "" {
		DockbarPosition = userConfig.Appearance.DockbarPosition
	}

	// Boolean hides are the OR of flag and config
	HideWindowButtons = overrides.HideWindowButtons
	HideClock = overrides.HideClock
	ShowIcons = !overrides.NoIcons
	if userConfig != nil {
		HideWindowButtons = HideWindowButtons || userConfig.Appearance.HideWindowButtons
		HideClock = HideClock || userConfig.Appearance.HideClock
		if userConfig.Appearance.ShowIcons != nil && !*userConfig.Appearance.ShowIcons {
			ShowIcons = false
		}
		if userConfig.Appearance.AnimationsEnabled != nil {
			AnimationsEnabled = *userConfig.Appearance.AnimationsEnabled
		}
	}
	if overrides.NoAnimations {
		AnimationsEnabled = false
	}

	dark, light := ResolveThemes(overrides.ThemeName, userConfig)
	if err := theme.Initialize(dark, light); err != nil {
		log.Printf("Warning: Failed to load theme: %v", err)
	}
}

// ResolveThemes picks the dark and light theme ids. The --theme flag wins
// for both modes; otherwise the per-mode settings fall back to theme.
func ResolveThemes(flagTheme string, userConfig *UserConfig) (dark, light string) {
	if flagTheme != "" {
		return flagTheme, flagTheme
	}
	if userConfig == nil {
		return "", ""
	}
	a := userConfig.Appearance
	dark, light = a.Theme, a.Theme
	if a.DarkTheme != "" {
		dark = a.DarkTheme
	}
	if a.LightTheme != "" {
		light = a.LightTheme
	}
	return dark, light
}

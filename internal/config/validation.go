package config

import (
	"fmt"
	"net/url"
	"slices"
	"sort"
	"strings"
)

// ValidationError is one problem found in the user config.
type ValidationError struct {
	Field   string
	Key     string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Field, e.Key, e.Message)
}

// ValidationResult collects config problems. Errors abort startup,
// warnings are printed and ignored.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationError
}

// HasErrors reports whether any error was found.
func (r *ValidationResult) HasErrors() bool { return len(r.Errors) > 0 }

// HasWarnings reports whether any warning was found.
func (r *ValidationResult) HasWarnings() bool { return len(r.Warnings) > 0 }

func (r *ValidationResult) errorf(field, key, format string, args ...any) {
	r.Errors = append(r.Errors, ValidationError{field, key, fmt.Sprintf(format, args...)})
}

func (r *ValidationResult) warnf(field, key, format string, args ...any) {
	r.Warnings = append(r.Warnings, ValidationError{field, key, fmt.Sprintf(format, args...)})
}

// ValidateConfig checks a filled-in config.
func ValidateConfig(cfg *UserConfig) *ValidationResult {
	r := &ValidationResult{}
	validateAppearance(cfg, r)
	validateWindows(cfg, r)
	validateBrowser(cfg, r)
	validateKeybindings(cfg, r)
	return r
}

func validateAppearance(cfg *UserConfig, r *ValidationResult) {
	a := cfg.Appearance
	if !slices.Contains(BorderStyles, a.BorderStyle) {
		r.errorf("appearance", "border_style", "unknown style %q (options: %s)", a.BorderStyle, strings.Join(BorderStyles, ", "))
	}
	switch a.DockbarPosition {
	case "bottom", "hidden":
	case "top":
		r.warnf("appearance", "dockbar_position", "top is taken by the menu bar, using bottom")
		cfg.Appearance.DockbarPosition = "bottom"
	default:
		r.errorf("appearance", "dockbar_position", "unknown position %q (options: bottom, hidden)", a.DockbarPosition)
	}
}

func validateWindows(cfg *UserConfig, r *ValidationResult) {
	w := &cfg.Windows
	if w.MinWidth < 10 {
		r.errorf("windows", "min_width", "must be at least 10, got %d", w.MinWidth)
	}
	if w.MinHeight < 3 {
		r.errorf("windows", "min_height", "must be at least 3, got %d", w.MinHeight)
	}
	if w.DefaultWidth < w.MinWidth {
		r.warnf("windows", "default_width", "%d is below min_width, using %d", w.DefaultWidth, w.MinWidth)
		w.DefaultWidth = w.MinWidth
	}
	if w.DefaultHeight < w.MinHeight {
		r.warnf("windows", "default_height", "%d is below min_height, using %d", w.DefaultHeight, w.MinHeight)
		w.DefaultHeight = w.MinHeight
	}
	if w.Stagger > 10 {
		r.warnf("windows", "stagger", "%d cells pushes windows off screen quickly", w.Stagger)
	}
}

func validateBrowser(cfg *UserConfig, r *ValidationResult) {
	b := cfg.Browser
	if b.TimeoutSeconds < 1 || b.TimeoutSeconds > 300 {
		r.errorf("browser", "timeout_seconds", "must be between 1 and 300, got %d", b.TimeoutSeconds)
	}
	if !strings.HasPrefix(b.HomeURL, "about:") {
		if u, err := url.Parse(b.HomeURL); err != nil || u.Host == "" {
			r.errorf("browser", "home_url", "%q is not an absolute URL", b.HomeURL)
		}
	}
}

func validateKeybindings(cfg *UserConfig, r *ValidationResult) {
	known := make(map[string]bool)
	for _, action := range AllActions() {
		known[action] = true
	}

	owner := make(map[string]string)
	for _, section := range keybindSections(&cfg.Keybindings) {
		actions := make([]string, 0, len(section.bindings))
		for action := range section.bindings {
			actions = append(actions, action)
		}
		sort.Strings(actions)

		for _, action := range actions {
			keys := section.bindings[action]
			if !known[action] {
				r.warnf("keybindings."+section.name, action, "unknown action, ignored")
				continue
			}
			if len(keys) == 0 {
				r.warnf("keybindings."+section.name, action, "no keys bound")
			}
			for _, key := range keys {
				key = NormalizeKey(key)
				if prev, taken := owner[key]; taken && prev != action {
					r.errorf("keybindings."+section.name, action, "key %q is already bound to %s", key, prev)
					continue
				}
				owner[key] = action
			}
		}
	}
}

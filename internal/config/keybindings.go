package config

import (
	"sort"
	"strings"
)

// Keybinding represents a single keybinding entry
type Keybinding struct {
	Key         string
	Description string
}

// KeybindingSection represents a section of related keybindings
type KeybindingSection struct {
	Title    string
	Bindings []Keybinding
}

// actionInfo describes a bindable action for help and validation.
type actionInfo struct {
	section     string
	description string
}

// actions lists every bindable action in display order.
var actions = []struct {
	name string
	actionInfo
}{
	{"next_window", actionInfo{"window_management", "Focus next window"}},
	{"prev_window", actionInfo{"window_management", "Focus previous window"}},
	{"close_window", actionInfo{"window_management", "Close window"}},
	{"minimize_window", actionInfo{"window_management", "Minimize window"}},
	{"maximize_window", actionInfo{"window_management", "Maximize / restore window"}},
	{"restore_minimized", actionInfo{"window_management", "Restore last minimized window"}},
	{"move_left", actionInfo{"window_management", "Move window left"}},
	{"move_right", actionInfo{"window_management", "Move window right"}},
	{"move_up", actionInfo{"window_management", "Move window up"}},
	{"move_down", actionInfo{"window_management", "Move window down"}},
	{"resize_narrower", actionInfo{"window_management", "Shrink window width"}},
	{"resize_wider", actionInfo{"window_management", "Grow window width"}},
	{"resize_shorter", actionInfo{"window_management", "Shrink window height"}},
	{"resize_taller", actionInfo{"window_management", "Grow window height"}},
	{"open_terminal", actionInfo{"apps", "Open Terminal"}},
	{"open_about", actionInfo{"apps", "Open About Me"}},
	{"open_contact", actionInfo{"apps", "Open Contact"}},
	{"open_projects", actionInfo{"apps", "Open Projects"}},
	{"open_browser", actionInfo{"apps", "Open Browser"}},
	{"open_settings", actionInfo{"apps", "Open Settings"}},
	{"enter_app_mode", actionInfo{"mode_control", "Send keys to the focused app"}},
	{"exit_app_mode", actionInfo{"mode_control", "Back to desktop keys"}},
	{"toggle_help", actionInfo{"mode_control", "Toggle help"}},
	{"quit", actionInfo{"mode_control", "Quit"}},
	{"toggle_logs", actionInfo{"system", "Toggle log viewer"}},
	{"toggle_control_center", actionInfo{"system", "Toggle control center"}},
	{"toggle_dark_mode", actionInfo{"system", "Toggle dark mode"}},
	{"font_larger", actionInfo{"system", "Larger text"}},
	{"font_smaller", actionInfo{"system", "Smaller text"}},
}

// AllActions returns every bindable action name.
func AllActions() []string {
	names := make([]string, len(actions))
	for i, a := range actions {
		names[i] = a.name
	}
	return names
}

// ActionDescription returns the help text for an action.
func ActionDescription(action string) string {
	for _, a := range actions {
		if a.name == action {
			return a.description
		}
	}
	return action
}

type keybindSection struct {
	name     string
	title    string
	bindings map[string][]string
}

func keybindSections(kb *KeybindingsConfig) []keybindSection {
	return []keybindSection{
		{"window_management", "WINDOWS", kb.WindowManagement},
		{"apps", "APPS", kb.Apps},
		{"mode_control", "MODES", kb.ModeControl},
		{"system", "SYSTEM", kb.System},
	}
}

// NormalizeKey canonicalizes a key string from config so it compares equal
// to the string Bubble Tea reports for the key press.
func NormalizeKey(key string) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return key
	}
	parts := strings.Split(key, "+")
	if len(parts) == 1 || parts[len(parts)-1] == "" {
		return key
	}
	for i := range parts[:len(parts)-1] {
		mod := strings.ToLower(parts[i])
		if mod == "opt" || mod == "option" {
			mod = "alt"
		}
		parts[i] = mod
	}
	return strings.Join(parts, "+")
}

// KeybindRegistry maps key presses to actions.
type KeybindRegistry struct {
	keyToAction map[string]string
	actionKeys  map[string][]string
}

// NewKeybindRegistry builds a registry from cfg. A nil cfg uses the defaults.
func NewKeybindRegistry(cfg *UserConfig) *KeybindRegistry {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	known := make(map[string]bool, len(actions))
	for _, a := range actions {
		known[a.name] = true
	}

	r := &KeybindRegistry{
		keyToAction: make(map[string]string),
		actionKeys:  make(map[string][]string),
	}
	for _, section := range keybindSections(&cfg.Keybindings) {
		for action, keys := range section.bindings {
			if !known[action] {
				continue
			}
			for _, key := range keys {
				key = NormalizeKey(key)
				if key == "" {
					continue
				}
				if _, taken := r.keyToAction[key]; taken {
					continue
				}
				r.keyToAction[key] = action
				r.actionKeys[action] = append(r.actionKeys[action], key)
			}
		}
	}
	return r
}

// GetAction returns the action bound to key.
func (r *KeybindRegistry) GetAction(key string) (string, bool) {
	action, ok := r.keyToAction[key]
	return action, ok
}

// GetKeys returns the keys bound to action.
func (r *KeybindRegistry) GetKeys(action string) []string {
	return r.actionKeys[action]
}

// GetKeysForDisplay returns the keys bound to action joined for display.
func (r *KeybindRegistry) GetKeysForDisplay(action string) string {
	keys := append([]string(nil), r.actionKeys[action]...)
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) < len(keys[j])
		}
		return keys[i] < keys[j]
	})
	return strings.Join(keys, ", ")
}

// GetKeybindings returns all keybinding sections for the help overlay and
// "keybinds list". A nil registry uses the defaults.
func GetKeybindings(registry *KeybindRegistry) []KeybindingSection {
	if registry == nil {
		registry = NewKeybindRegistry(nil)
	}

	var sections []KeybindingSection
	for _, s := range keybindSections(&KeybindingsConfig{}) {
		section := KeybindingSection{Title: s.title}
		for _, a := range actions {
			if a.section != s.name {
				continue
			}
			addBinding(&section, registry, a.name, a.description)
		}
		if len(section.Bindings) > 0 {
			sections = append(sections, section)
		}
	}
	return append(sections, getStaticHelpSections()...)
}

// addBinding adds a keybinding to a section if the action has keys configured
func addBinding(section *KeybindingSection, registry *KeybindRegistry, action, description string) {
	keys := registry.GetKeysForDisplay(action)
	if keys != "" {
		section.Bindings = append(section.Bindings, Keybinding{
			Key:         keys,
			Description: description,
		})
	}
}

// getStaticHelpSections returns help sections that don't need dynamic binding info
func getStaticHelpSections() []KeybindingSection {
	return []KeybindingSection{
		{
			Title: "MOUSE",
			Bindings: []Keybinding{
				{"Drag title bar", "Move window"},
				{"Drag border", "Resize window"},
				{"Right-drag", "Resize from nearest corner"},
				{"Double-click title", "Maximize / restore"},
				{"Click dock chip", "Restore minimized window"},
				{"Right-click desktop", "Context menu"},
			},
		},
		{
			Title: "BROWSER (app mode)",
			Bindings: []Keybinding{
				{"ctrl+t", "New tab"},
				{"ctrl+w", "Close tab"},
				{"ctrl+tab / ctrl+shift+tab", "Next / previous tab"},
				{"ctrl+l", "Edit address"},
				{"r, ctrl+r", "Reload"},
				{"1-9 then enter", "Follow link"},
				{"↑/↓, PgUp/PgDn", "Scroll"},
			},
		},
	}
}

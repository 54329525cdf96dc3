package theme

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	tint "github.com/lrstanley/bubbletint/v2"
)

const harborPair = `{
	"id": "harbor",
	"display_name": "Harbor",
	"modes": {
		"dark": {"bg": "#101820", "fg": "#d8dee9", "blue": "#5e81ac"},
		"light": {"bg": "#f4f1ea", "fg": "#20252b"}
	}
}`

func writeTheme(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFileSingleTheme(t *testing.T) {
	path := writeTheme(t, t.TempDir(), "Night-Owl.json", `{"dark": true, "bg": "#011627"}`)

	c, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if c.ID != "night-owl" {
		t.Errorf("id = %q, want name from file", c.ID)
	}
	if c.Light != nil || c.Dark == nil {
		t.Fatalf("dark theme landed on the wrong side: %+v", c)
	}
	if _, ok := c.Pair(); ok {
		t.Error("a single theme is not a pair")
	}
	if got := ColorToString(c.Dark.Bg); got != "#011627" {
		t.Errorf("bg = %s", got)
	}
	if got := ColorToString(c.Dark.Fg); got != darkPalette.fg {
		t.Errorf("missing fg = %s, want dark palette %s", got, darkPalette.fg)
	}
	if c.Dark.DisplayName != "night-owl" {
		t.Errorf("display name = %q", c.Dark.DisplayName)
	}
}

func TestLoadFileLightFillsFromLightPalette(t *testing.T) {
	path := writeTheme(t, t.TempDir(), "paper.json", `{"id": "paper", "fg": "#111111"}`)

	c, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if c.Light == nil {
		t.Fatal("theme without dark flag should be a light theme")
	}
	checks := map[string]struct {
		got  *tint.Color
		want string
	}{
		"fg":           {c.Light.Fg, "#111111"},
		"bg":           {c.Light.Bg, lightPalette.bg},
		"black":        {c.Light.Black, lightPalette.surface},
		"bright_black": {c.Light.BrightBlack, lightPalette.dim},
		"purple":       {c.Light.Purple, lightPalette.accent2},
	}
	for name, tc := range checks {
		t.Run(name, func(t *testing.T) {
			if got := ColorToString(tc.got); got != tc.want {
				t.Errorf("got %s, want %s", got, tc.want)
			}
		})
	}
}

func TestLoadFilePair(t *testing.T) {
	c, err := LoadFile(writeTheme(t, t.TempDir(), "harbor.json", harborPair))
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	p, ok := c.Pair()
	if !ok {
		t.Fatal("modes file should form a pair")
	}
	if p != (Pair{Dark: "harbor-dark", Light: "harbor-light"}) {
		t.Errorf("pair = %+v", p)
	}
	if !c.Dark.Dark || c.Light.Dark {
		t.Error("dark flags not set per side")
	}
	if got := ColorToString(c.Light.Blue); got != lightPalette.accent {
		t.Errorf("light blue = %s, want light palette accent", got)
	}
	if got := len(c.Tints()); got != 2 {
		t.Errorf("tints = %d, want 2", got)
	}
}

func TestLoadFileErrors(t *testing.T) {
	tests := map[string]string{
		"broken json": `{"id": `,
		"empty modes": `{"id": "x", "modes": {}}`,
		"bad mode":    `{"id": "x", "modes": {"dark": 3}}`,
	}
	dir := t.TempDir()
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := LoadFile(writeTheme(t, dir, "t.json", body)); err == nil {
				t.Error("expected an error")
			}
		})
	}
	if _, err := LoadFile(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("missing file loaded")
	}
}

func TestLoadDirSkipsBadFiles(t *testing.T) {
	tint.NewDefaultRegistry()
	dir := t.TempDir()
	writeTheme(t, dir, "harbor.json", harborPair)
	writeTheme(t, dir, "paper.JSON", `{"fg": "#111111"}`)
	writeTheme(t, dir, "broken.json", `{`)
	writeTheme(t, dir, "notes.txt", `{"id": "notes"}`)
	if err := os.Mkdir(filepath.Join(dir, "nested.json"), 0o700); err != nil {
		t.Fatal(err)
	}

	pairs, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir: %v", err)
	}
	if len(pairs) != 1 || pairs["harbor"].Light != "harbor-light" {
		t.Errorf("pairs = %+v", pairs)
	}
	ids := tint.TintIDs()
	for _, id := range []string{"harbor-dark", "harbor-light", "paper"} {
		if !slices.Contains(ids, id) {
			t.Errorf("%s not registered", id)
		}
	}
	if slices.Contains(ids, "notes") {
		t.Error("non-json file registered")
	}

	if _, err := LoadDir(filepath.Join(dir, "absent")); err == nil {
		t.Error("missing directory did not fail")
	}
}

func TestInitializeFollowsDarkModeThroughPair(t *testing.T) {
	dir := t.TempDir()
	writeTheme(t, dir, "harbor.json", harborPair)
	t.Cleanup(func() {
		_ = initialize("", "", "")
		SetDark(true)
	})

	if err := initialize("harbor", "harbor", dir); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	if dark, light := Themes(); dark != "harbor-dark" || light != "harbor-light" {
		t.Fatalf("themes = %s/%s", dark, light)
	}

	SetDark(true)
	if got := ColorToString(DesktopBg()); got != "#101820" {
		t.Errorf("dark bg = %s", got)
	}
	SetDark(false)
	if got := ColorToString(DesktopBg()); got != "#f4f1ea" {
		t.Errorf("light bg = %s", got)
	}
}

func TestResolvePair(t *testing.T) {
	pairs := map[string]Pair{"harbor": {Dark: "harbor-dark", Light: "harbor-light"}}
	tests := []struct {
		name              string
		dark, light       string
		wantDark, wantLit string
	}{
		{"pair for both", "harbor", "harbor", "harbor-dark", "harbor-light"},
		{"pair for dark only", "harbor", "nord", "harbor-dark", "nord"},
		{"plain ids", "dracula", "nord", "dracula", "nord"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, l := resolvePair(tt.dark, tt.light, pairs)
			if d != tt.wantDark || l != tt.wantLit {
				t.Errorf("got %s/%s, want %s/%s", d, l, tt.wantDark, tt.wantLit)
			}
		})
	}
}

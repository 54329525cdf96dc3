package theme

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	tint "github.com/lrstanley/bubbletint/v2"
)

// Pair names the registry entries used in dark and light mode.
type Pair struct {
	Dark, Light string
}

// Custom is a parsed theme file. A plain theme fills one side, picked by
// its "dark" flag; a file with "modes" fills both and forms a Pair.
type Custom struct {
	ID    string
	Dark  *tint.Tint
	Light *tint.Tint
}

// Pair reports the registry ids of both sides when the file defined both.
func (c Custom) Pair() (Pair, bool) {
	if c.Dark == nil || c.Light == nil {
		return Pair{}, false
	}
	return Pair{Dark: c.Dark.ID, Light: c.Light.ID}, true
}

// Tints returns the themes to register.
func (c Custom) Tints() []*tint.Tint {
	var out []*tint.Tint
	for _, t := range []*tint.Tint{c.Dark, c.Light} {
		if t != nil {
			out = append(out, t)
		}
	}
	return out
}

type customFile struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Modes       *struct {
		Dark  json.RawMessage `json:"dark"`
		Light json.RawMessage `json:"light"`
	} `json:"modes"`
}

// GetThemesDir returns $XDG_CONFIG_HOME/deskfolio/themes, creating it.
func GetThemesDir() (string, error) {
	keepFile, err := xdg.ConfigFile("deskfolio/themes/.keep")
	if err != nil {
		return "", fmt.Errorf("failed to get themes directory: %w", err)
	}
	return filepath.Dir(keepFile), nil
}

// LoadDir registers every *.json theme in dir with bubbletint and returns
// the dark/light pairs keyed by file id. Bad files are logged and skipped.
func LoadDir(dir string) (map[string]Pair, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read themes directory: %w", err)
	}

	pairs := make(map[string]Pair)
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".json") {
			continue
		}
		c, err := LoadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			log.Printf("Warning: skipping custom theme %s: %v", entry.Name(), err)
			continue
		}
		for _, t := range c.Tints() {
			tint.Register(t)
		}
		if p, ok := c.Pair(); ok {
			pairs[c.ID] = p
		}
	}
	return pairs, nil
}

// LoadFile parses one theme file. The id defaults to the file name. Colors
// the file leaves out come from the built-in palette of the same mode.
func LoadFile(path string) (Custom, error) {
	// #nosec G304 - themes are read from the user's config directory
	data, err := os.ReadFile(path)
	if err != nil {
		return Custom{}, fmt.Errorf("failed to read theme file: %w", err)
	}

	var head customFile
	if err := json.Unmarshal(data, &head); err != nil {
		return Custom{}, fmt.Errorf("failed to parse theme JSON: %w", err)
	}
	id := head.ID
	if id == "" {
		base := filepath.Base(path)
		id = strings.ToLower(strings.TrimSuffix(base, filepath.Ext(base)))
	}
	if id == "" {
		return Custom{}, errors.New("theme has no ID")
	}
	name := head.DisplayName
	if name == "" {
		name = id
	}

	c := Custom{ID: id}
	if head.Modes == nil {
		var t tint.Tint
		if err := json.Unmarshal(data, &t); err != nil {
			return Custom{}, fmt.Errorf("failed to parse theme JSON: %w", err)
		}
		t.ID, t.DisplayName = id, name
		if t.Dark {
			fillFromPalette(&t, darkPalette)
			c.Dark = &t
		} else {
			fillFromPalette(&t, lightPalette)
			c.Light = &t
		}
		return c, nil
	}

	if len(head.Modes.Dark) == 0 && len(head.Modes.Light) == 0 {
		return Custom{}, errors.New("modes needs a dark or light theme")
	}
	if c.Dark, err = decodeMode(head.Modes.Dark, id+"-dark", name+" (dark)", true); err != nil {
		return Custom{}, err
	}
	if c.Light, err = decodeMode(head.Modes.Light, id+"-light", name+" (light)", false); err != nil {
		return Custom{}, err
	}
	return c, nil
}

func decodeMode(raw json.RawMessage, id, name string, dark bool) (*tint.Tint, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var t tint.Tint
	if err := json.Unmarshal(raw, &t); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", id, err)
	}
	t.ID, t.DisplayName, t.Dark = id, name, dark
	p := lightPalette
	if dark {
		p = darkPalette
	}
	fillFromPalette(&t, p)
	return &t, nil
}

// resolvePair swaps pair ids for the side matching each mode.
func resolvePair(darkID, lightID string, pairs map[string]Pair) (string, string) {
	if p, ok := pairs[darkID]; ok && p.Dark != "" {
		darkID = p.Dark
	}
	if p, ok := pairs[lightID]; ok && p.Light != "" {
		lightID = p.Light
	}
	return darkID, lightID
}

// fillFromPalette maps the desktop palette onto the ANSI slots the color
// getters read, so a partial theme still looks like deskfolio.
func fillFromPalette(t *tint.Tint, p palette) {
	fill := func(c **tint.Color, hex string) {
		if *c == nil {
			*c = tint.FromHex(hex)
		}
	}
	fill(&t.Fg, p.fg)
	fill(&t.Bg, p.bg)
	fill(&t.Cursor, p.accent)
	fill(&t.Black, p.surface)
	fill(&t.Red, p.red)
	fill(&t.Green, p.green)
	fill(&t.Yellow, p.yellow)
	fill(&t.Blue, p.accent)
	fill(&t.Purple, p.accent2)
	fill(&t.Cyan, p.accent)
	fill(&t.White, p.fg)
	fill(&t.BrightBlack, p.dim)
	fill(&t.BrightRed, p.red)
	fill(&t.BrightGreen, p.green)
	fill(&t.BrightYellow, p.yellow)
	fill(&t.BrightBlue, p.accent)
	fill(&t.BrightPurple, p.accent2)
	fill(&t.BrightCyan, p.accent)
	fill(&t.BrightWhite, p.fg)
}

// Package prefs persists the desktop's user preferences: the font scale and
// the dark-mode flag.
package prefs

import (
	"context"
	"errors"
	"strconv"
	"sync"
)

// Storage keys.
const (
	KeyFontSize = "app-font-size"
	KeyDarkMode = "app-dark-mode"
)

// Font size bounds.
const (
	MinFontSize     = 12
	MaxFontSize     = 20
	DefaultFontSize = 16
)

// Preferences are the persisted UI settings.
type Preferences struct {
	FontSize int
	DarkMode bool
}

// Defaults returns the preferences used before anything is saved.
func Defaults() Preferences {
	return Preferences{FontSize: DefaultFontSize, DarkMode: true}
}

// ClampFontSize keeps n within [MinFontSize, MaxFontSize].
func ClampFontSize(n int) int {
	return min(max(n, MinFontSize), MaxFontSize)
}

// Padding maps the font size onto content padding in cells: 0 at the
// smallest size, 2 at the largest.
func (p Preferences) Padding() int {
	return (ClampFontSize(p.FontSize) - MinFontSize) / 4
}

// Load reads preferences from kv. Missing or malformed values keep their
// defaults.
func Load(ctx context.Context, kv KV) (Preferences, error) {
	p := Defaults()
	var errs []error

	if v, ok, err := kv.Get(ctx, KeyFontSize); err != nil {
		errs = append(errs, err)
	} else if ok {
		if n, err := strconv.Atoi(v); err == nil {
			p.FontSize = ClampFontSize(n)
		}
	}
	if v, ok, err := kv.Get(ctx, KeyDarkMode); err != nil {
		errs = append(errs, err)
	} else if ok {
		if b, err := strconv.ParseBool(v); err == nil {
			p.DarkMode = b
		}
	}
	return p, errors.Join(errs...)
}

// Save writes p to kv.
func Save(ctx context.Context, kv KV, p Preferences) error {
	return errors.Join(
		kv.Set(ctx, KeyFontSize, strconv.Itoa(ClampFontSize(p.FontSize))),
		kv.Set(ctx, KeyDarkMode, strconv.FormatBool(p.DarkMode)),
	)
}

// ChangedMsg announces new preferences to the desktop.
type ChangedMsg struct {
	Prefs Preferences
}

// Service holds the current preferences and writes every change through
// to storage.
type Service struct {
	mu  sync.Mutex
	kv  KV
	cur Preferences
}

// NewService loads preferences from kv. The returned error is informational:
// the service is always usable and falls back to defaults.
func NewService(ctx context.Context, kv KV) (*Service, error) {
	if kv == nil {
		kv = NewMemory()
	}
	p, err := Load(ctx, kv)
	return &Service{kv: kv, cur: p}, err
}

// Current returns the preferences in force.
func (s *Service) Current() Preferences {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cur
}

// SetFontSize sets the font size, clamped to the allowed range.
func (s *Service) SetFontSize(n int) (Preferences, error) {
	return s.apply(func(p *Preferences) { p.FontSize = ClampFontSize(n) })
}

// AdjustFontSize changes the font size by delta.
func (s *Service) AdjustFontSize(delta int) (Preferences, error) {
	return s.apply(func(p *Preferences) { p.FontSize = ClampFontSize(p.FontSize + delta) })
}

// SetDarkMode sets the dark-mode flag.
func (s *Service) SetDarkMode(on bool) (Preferences, error) {
	return s.apply(func(p *Preferences) { p.DarkMode = on })
}

// ToggleDarkMode flips the dark-mode flag.
func (s *Service) ToggleDarkMode() (Preferences, error) {
	return s.apply(func(p *Preferences) { p.DarkMode = !p.DarkMode })
}

// Reset restores and persists the defaults.
func (s *Service) Reset() (Preferences, error) {
	return s.apply(func(p *Preferences) { *p = Defaults() })
}

func (s *Service) apply(fn func(*Preferences)) (Preferences, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.cur)
	return s.cur, Save(context.Background(), s.kv, s.cur)
}

package prefs

import (
	"context"
	"path/filepath"
	"testing"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "state", "prefs.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	if err := store.Init(context.Background()); err != nil {
		t.Fatalf("init: %v", err)
	}
	return store
}

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)

	if _, ok, err := store.Get(ctx, "missing"); err != nil || ok {
		t.Fatalf("get missing: ok=%v err=%v", ok, err)
	}
	if err := store.Set(ctx, KeyFontSize, "18"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := store.Set(ctx, KeyFontSize, "14"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	v, ok, err := store.Get(ctx, KeyFontSize)
	if err != nil || !ok || v != "14" {
		t.Fatalf("get = %q %v %v, want 14", v, ok, err)
	}
	if err := store.Delete(ctx, KeyFontSize); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok, _ := store.Get(ctx, KeyFontSize); ok {
		t.Error("key still present after delete")
	}
}

func TestLoadDefaults(t *testing.T) {
	p, err := Load(context.Background(), NewMemory())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if p != Defaults() {
		t.Errorf("got %+v, want %+v", p, Defaults())
	}
	if p.FontSize != 16 || !p.DarkMode {
		t.Errorf("defaults = %+v, want font 16 dark", p)
	}
}

func TestLoadSanitizesValues(t *testing.T) {
	tests := []struct {
		name     string
		font     string
		dark     string
		wantFont int
		wantDark bool
	}{
		{"valid", "18", "false", 18, false},
		{"too small", "4", "true", 12, true},
		{"too large", "99", "true", 20, true},
		{"garbage", "big", "maybe", 16, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			kv := NewMemory()
			_ = kv.Set(ctx, KeyFontSize, tt.font)
			_ = kv.Set(ctx, KeyDarkMode, tt.dark)
			p, err := Load(ctx, kv)
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			if p.FontSize != tt.wantFont || p.DarkMode != tt.wantDark {
				t.Errorf("got %+v, want font %d dark %v", p, tt.wantFont, tt.wantDark)
			}
		})
	}
}

func TestServicePersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "prefs.db")

	store, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := store.Init(ctx); err != nil {
		t.Fatalf("init: %v", err)
	}
	svc, err := NewService(ctx, store)
	if err != nil {
		t.Fatalf("service: %v", err)
	}
	if _, err := svc.ToggleDarkMode(); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	for range 10 {
		if _, err := svc.AdjustFontSize(1); err != nil {
			t.Fatalf("adjust: %v", err)
		}
	}
	if got := svc.Current(); got.FontSize != 20 || got.DarkMode {
		t.Errorf("current = %+v, want font 20 light", got)
	}
	_ = store.Close()

	store, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	if err := store.Init(ctx); err != nil {
		t.Fatalf("init: %v", err)
	}
	p, err := Load(ctx, store)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if p.FontSize != 20 || p.DarkMode {
		t.Errorf("reloaded %+v, want font 20 light", p)
	}
}

func TestServiceReset(t *testing.T) {
	svc, _ := NewService(context.Background(), nil)
	_, _ = svc.SetFontSize(13)
	_, _ = svc.SetDarkMode(false)
	p, err := svc.Reset()
	if err != nil {
		t.Fatalf("reset: %v", err)
	}
	if p != Defaults() {
		t.Errorf("reset gave %+v", p)
	}
}

func TestPadding(t *testing.T) {
	tests := map[int]int{12: 0, 15: 0, 16: 1, 19: 1, 20: 2, 40: 2}
	for size, want := range tests {
		if got := (Preferences{FontSize: size}).Padding(); got != want {
			t.Errorf("Padding(%d) = %d, want %d", size, got, want)
		}
	}
}

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Gaurav-Gosain/deskfolio/internal/config"
	"github.com/Gaurav-Gosain/deskfolio/pkg/deskfolio"
)

func TestFindEditorPrefersEnvironment(t *testing.T) {
	t.Setenv("EDITOR", "hx")
	t.Setenv("VISUAL", "code --wait")
	got, err := findEditor()
	if err != nil {
		t.Fatalf("findEditor: %v", err)
	}
	if got != "hx" {
		t.Errorf("editor = %q, want hx", got)
	}

	t.Setenv("EDITOR", "")
	if got, _ := findEditor(); got != "code --wait" {
		t.Errorf("editor = %q, want $VISUAL", got)
	}
}

func TestLoadCatalog(t *testing.T) {
	t.Cleanup(func() { catalogPath = "" })

	catalogPath = ""
	cat, err := loadCatalog()
	if err != nil {
		t.Fatalf("built-in catalog: %v", err)
	}
	if len(cat.Projects) == 0 {
		t.Errorf("built-in catalog has no projects")
	}

	catalogPath = filepath.Join(t.TempDir(), "missing.yaml")
	if _, err := loadCatalog(); err == nil {
		t.Errorf("missing catalog file loaded")
	}
}

func TestLoadConfigFlag(t *testing.T) {
	t.Cleanup(func() { configPath = "" })
	dir := t.TempDir()

	configPath = filepath.Join(dir, "config.toml")
	if err := config.WriteDefaultConfig(configPath); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Browser.HomeURL == "" {
		t.Errorf("defaults not filled in")
	}

	bad := filepath.Join(dir, "bad.toml")
	if err := os.WriteFile(bad, []byte("[appearance\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	configPath = bad
	if _, err := loadConfig(); err == nil {
		t.Errorf("broken --config file did not fail")
	}
}

func TestSessionOptionsCarryFlags(t *testing.T) {
	t.Cleanup(func() {
		hideClock, noStats = false, false
		config.HideClock = false
	})
	hideClock, noStats = true, true

	cat, err := loadCatalog()
	if err != nil {
		t.Fatal(err)
	}
	m := deskfolio.New(sessionOptions(config.DefaultConfig(), cat)...)
	t.Cleanup(m.Cleanup)
	if m.Version != version {
		t.Errorf("version = %q", m.Version)
	}
	if m.Stats != nil {
		t.Errorf("--no-stats left a sampler")
	}
	if !config.HideClock {
		t.Errorf("--hide-clock not applied")
	}
}

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/deskfolio/internal/app"
	"github.com/Gaurav-Gosain/deskfolio/internal/catalog"
	"github.com/Gaurav-Gosain/deskfolio/internal/config"
	"github.com/Gaurav-Gosain/deskfolio/internal/input"
	"github.com/Gaurav-Gosain/deskfolio/internal/prefs"
	"github.com/Gaurav-Gosain/deskfolio/pkg/deskfolio"
	"github.com/adrg/xdg"
	charmlog "github.com/charmbracelet/log"
	"golang.org/x/term"
)

// loadConfig reads --config or the XDG config file. A broken file is fatal
// when named explicitly and falls back to the defaults otherwise.
func loadConfig() (*config.UserConfig, error) {
	if configPath != "" {
		return config.LoadUserConfigFile(configPath)
	}
	userConfig, err := config.LoadUserConfig()
	if err != nil {
		log.Printf("Warning: Failed to load config, using defaults: %v", err)
		userConfig = config.DefaultConfig()
	}
	return userConfig, nil
}

func applyFlags(userConfig *config.UserConfig) {
	config.ApplyOverrides(config.Overrides{
		ASCIIOnly:         asciiOnly,
		BorderStyle:       borderStyle,
		DockbarPosition:   dockbarPosition,
		HideWindowButtons: hideWindowButtons,
		HideClock:         hideClock,
		NoIcons:           noIcons,
		NoAnimations:      noAnimations,
		ThemeName:         themeName,
	}, userConfig)
}

// loadCatalog returns --catalog, validated, or the built-in portfolio.
func loadCatalog() (*catalog.Catalog, error) {
	if catalogPath == "" {
		return catalog.Default()
	}
	cat, err := catalog.LoadFile(catalogPath)
	if err != nil {
		return nil, err
	}
	if err := cat.Validate(); err != nil {
		return nil, fmt.Errorf("invalid catalog %s: %w", catalogPath, err)
	}
	return cat, nil
}

// openPrefs opens the preferences database. The returned close func is
// never nil.
func openPrefs(ctx context.Context) (*prefs.Service, func(), error) {
	path, err := prefs.DefaultPath()
	if err != nil {
		return nil, func() {}, fmt.Errorf("prefs path: %w", err)
	}
	store, err := prefs.Open(path)
	if err != nil {
		return nil, func() {}, fmt.Errorf("open prefs: %w", err)
	}
	closeStore := func() {
		if err := store.Close(); err != nil {
			log.Printf("Warning: failed to close preferences: %v", err)
		}
	}
	if err := store.Init(ctx); err != nil {
		closeStore()
		return nil, func() {}, fmt.Errorf("init prefs: %w", err)
	}
	svc, err := prefs.NewService(ctx, store)
	if err != nil {
		closeStore()
		return nil, func() {}, err
	}
	return svc, closeStore, nil
}

// newDebugLogger writes to debug.log under the state directory when --debug
// is set, and discards otherwise.
func newDebugLogger() (*charmlog.Logger, func(), error) {
	if !debugMode {
		return charmlog.New(io.Discard), func() {}, nil
	}
	path, err := xdg.StateFile(filepath.Join("deskfolio", "debug.log"))
	if err != nil {
		return nil, nil, fmt.Errorf("debug log path: %w", err)
	}
	// #nosec G304 - path comes from xdg
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("open debug log: %w", err)
	}
	logger := charmlog.NewWithOptions(f, charmlog.Options{
		ReportTimestamp: true,
		Prefix:          "deskfolio",
		Level:           charmlog.DebugLevel,
	})
	fmt.Printf("Debug log: %s\n", path)
	return logger, func() { _ = f.Close() }, nil
}

// debugFilter wraps the motion filter and records key presses and clicks.
func debugFilter(logger *charmlog.Logger) func(tea.Model, tea.Msg) tea.Msg {
	return func(model tea.Model, msg tea.Msg) tea.Msg {
		mode := ""
		if m, ok := model.(*app.OS); ok {
			mode = m.Mode.String()
		}
		switch msg := msg.(type) {
		case tea.KeyPressMsg:
			logger.Debug("key", "mode", mode, "key", msg.String(), "code", msg.Code, "mod", msg.Mod)
		case tea.MouseClickMsg:
			logger.Debug("click", "mode", mode, "x", msg.X, "y", msg.Y, "button", msg.Button)
		case tea.WindowSizeMsg:
			logger.Debug("resize", "width", msg.Width, "height", msg.Height)
		}
		return deskfolio.FilterMouseMotion(model, msg)
	}
}

func runLocal() error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("deskfolio needs an interactive terminal; try `deskfolio ssh` or `deskfolio web` to serve it")
	}

	logger, closeLog, err := newDebugLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	userConfig, err := loadConfig()
	if err != nil {
		return err
	}
	applyFlags(userConfig)

	cat, err := loadCatalog()
	if err != nil {
		return err
	}

	ctx := context.Background()
	svc, closePrefs, err := openPrefs(ctx)
	if err != nil {
		log.Printf("Warning: preferences will not be saved: %v", err)
		svc, _ = prefs.NewService(ctx, prefs.NewMemory())
	}
	defer closePrefs()

	app.SetInputHandler(input.HandleInput)

	if debugMode {
		path, _ := config.GetConfigPath()
		logger.Debug("starting", "config", path, "version", version, "projects", len(cat.Projects))
	}

	var stats app.Sampler
	if !noStats {
		stats = app.SystemSampler{}
	}

	initialOS := app.NewOS(app.Options{
		Catalog: cat,
		Prefs:   svc,
		Config:  userConfig,
		Stats:   stats,
		Version: version,
		Boot:    true,
	})

	p := tea.NewProgram(
		initialOS,
		tea.WithFPS(config.NormalFPS),
		tea.WithoutSignalHandler(),
		tea.WithFilter(debugFilter(logger)),
	)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		p.Send(tea.QuitMsg{})
	}()

	finalModel, err := p.Run()

	if finalOS, ok := finalModel.(*app.OS); ok {
		finalOS.Cleanup()
	}

	if err != nil {
		return fmt.Errorf("program error: %w", err)
	}

	return nil
}

package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/wish/v2"
	"charm.land/wish/v2/activeterm"
	"charm.land/wish/v2/bubbletea"
	"charm.land/wish/v2/logging"
	"github.com/Gaurav-Gosain/deskfolio/internal/catalog"
	"github.com/Gaurav-Gosain/deskfolio/internal/config"
	"github.com/Gaurav-Gosain/deskfolio/pkg/deskfolio"
	"github.com/Gaurav-Gosain/sip"
	"github.com/adrg/xdg"
	charmlog "github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
)

const shutdownTimeout = 10 * time.Second

func newServerLogger() *charmlog.Logger {
	level := charmlog.InfoLevel
	if debugMode {
		level = charmlog.DebugLevel
	}
	return charmlog.NewWithOptions(os.Stderr, charmlog.Options{
		ReportTimestamp: true,
		Prefix:          "deskfolio",
		Level:           level,
	})
}

// sessionOptions turns the global flags into per-session desktop options.
// Every session reuses the same config and catalog.
func sessionOptions(userConfig *config.UserConfig, cat *catalog.Catalog) []deskfolio.Option {
	return []deskfolio.Option{
		deskfolio.WithUserConfig(userConfig),
		deskfolio.WithCatalog(cat),
		deskfolio.WithTheme(themeName),
		deskfolio.WithASCIIOnly(asciiOnly),
		deskfolio.WithBorderStyle(borderStyle),
		deskfolio.WithDockbarPosition(dockbarPosition),
		deskfolio.WithHideWindowButtons(hideWindowButtons),
		deskfolio.WithHideClock(hideClock),
		deskfolio.WithNoIcons(noIcons),
		deskfolio.WithSystemStats(!noStats),
		deskfolio.WithBrand("", version),
	}
}

// loadServerState loads the config and catalog shared by every session.
func loadServerState() (*config.UserConfig, *catalog.Catalog, error) {
	userConfig, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	applyFlags(userConfig)
	cat, err := loadCatalog()
	if err != nil {
		return nil, nil, err
	}
	return userConfig, cat, nil
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext(logger *charmlog.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		select {
		case <-sigChan:
			logger.Info("Shutting down")
			cancel()
		case <-ctx.Done():
		}
	}()
	return ctx, cancel
}

func defaultHostKeyPath() (string, error) {
	return xdg.DataFile(filepath.Join("deskfolio", "ssh_host_ed25519"))
}

func runSSHServer(sshHost, sshPort, sshKeyPath string) error {
	logger := newServerLogger()

	userConfig, cat, err := loadServerState()
	if err != nil {
		return err
	}

	if sshKeyPath == "" {
		if sshKeyPath, err = defaultHostKeyPath(); err != nil {
			return fmt.Errorf("host key path: %w", err)
		}
	}

	teaHandler := func(s ssh.Session) (tea.Model, []tea.ProgramOption) {
		width, height := config.DefaultTerminalWidth, config.DefaultTerminalHeight
		if pty, _, ok := s.Pty(); ok && pty.Window.Width > 0 && pty.Window.Height > 0 {
			width, height = pty.Window.Width, pty.Window.Height
		}
		m := deskfolio.New(append(sessionOptions(userConfig, cat),
			deskfolio.WithSSHSession(s),
			deskfolio.WithSize(width, height),
		)...)
		logger.Info("Session started", "user", s.User(), "remote", s.RemoteAddr(), "size", fmt.Sprintf("%dx%d", width, height))
		go func() {
			<-s.Context().Done()
			m.Cleanup()
			logger.Info("Session ended", "user", s.User(), "remote", s.RemoteAddr())
		}()
		return m, deskfolio.ProgramOptions()
	}

	srv, err := wish.NewServer(
		wish.WithAddress(net.JoinHostPort(sshHost, sshPort)),
		wish.WithHostKeyPath(sshKeyPath),
		wish.WithMiddleware(
			bubbletea.Middleware(teaHandler),
			activeterm.Middleware(),
			logging.Middleware(),
		),
	)
	if err != nil {
		return fmt.Errorf("could not create SSH server: %w", err)
	}

	ctx, cancel := signalContext(logger)
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting SSH server", "addr", srv.Addr, "host_key", sshKeyPath)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("SSH server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, done := context.WithTimeout(context.Background(), shutdownTimeout)
	defer done()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
		return fmt.Errorf("SSH server shutdown: %w", err)
	}
	return nil
}

// sessions tracks the desktops a web server has handed out so their
// request channels are closed at shutdown.
type sessions struct {
	mu     sync.Mutex
	models []*deskfolio.Model
}

func (s *sessions) add(m *deskfolio.Model) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.models = append(s.models, m)
}

func (s *sessions) cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range s.models {
		m.Cleanup()
	}
	s.models = nil
}

func runWebServer(webHost, webPort string) error {
	logger := newServerLogger()

	userConfig, cat, err := loadServerState()
	if err != nil {
		return err
	}

	ctx, cancel := signalContext(logger)
	defer cancel()

	var live sessions
	defer live.cleanup()

	cfg := sip.DefaultConfig()
	cfg.Host = webHost
	cfg.Port = webPort
	server := sip.NewServer(cfg)

	logger.Info("Starting web server", "addr", net.JoinHostPort(webHost, webPort))
	err = server.Serve(ctx, func(sess sip.Session) (tea.Model, []tea.ProgramOption) {
		m := deskfolio.NewForPTY(sess.Pty(), sessionOptions(userConfig, cat)...)
		live.add(m)
		logger.Info("Web session started", "size", fmt.Sprintf("%dx%d", m.Width, m.Height))
		return m, deskfolio.ProgramOptions()
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("web server error: %w", err)
	}
	return nil
}

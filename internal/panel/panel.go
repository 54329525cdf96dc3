// Package panel implements the content of desktop windows. Each app id maps
// to a factory that builds a Panel; the desktop owns the window geometry and
// forwards keys, clicks and wheel events to the focused panel.
package panel

import (
	"fmt"
	"sort"

	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/deskfolio/internal/browser"
	"github.com/Gaurav-Gosain/deskfolio/internal/catalog"
	"github.com/Gaurav-Gosain/deskfolio/internal/prefs"
	"github.com/Gaurav-Gosain/deskfolio/internal/request"
)

// System app ids.
const (
	Terminal = "terminal"
	About    = "about"
	Contact  = "contact"
	Projects = "projects"
	Browser  = "browser"
	Settings = "settings"
	System   = "system"
)

// Panel is the content of one window.
type Panel interface {
	// Title is the window title. It may change, e.g. with the active tab.
	Title() string
	// Update handles a key press, ClickMsg, WheelMsg or any message the
	// desktop broadcasts.
	Update(msg tea.Msg) tea.Cmd
	// View renders the panel into exactly width x height cells.
	View(width, height int) string
}

// Initializer is implemented by panels that start work when opened.
type Initializer interface {
	Init() tea.Cmd
}

// Closer is implemented by panels that can ask for their window to close.
type Closer interface {
	WantsClose() bool
}

// Busy is implemented by panels with background work in flight.
type Busy interface {
	Busy() bool
}

// FixedSize is implemented by panels whose window cannot be resized.
type FixedSize interface {
	FixedSize() (width, height int)
}

// ClickMsg is a left click in content coordinates (0,0 is the top-left cell
// inside the border).
type ClickMsg struct {
	X, Y int
}

// WheelMsg is a wheel step in content coordinates. Delta is negative for up.
type WheelMsg struct {
	X, Y  int
	Delta int
}

// NotifyMsg asks the desktop to show a notification.
type NotifyMsg struct {
	Message string
	Type    string // "info", "success", "warning", "error"
}

// Notify returns a command that shows a notification.
func Notify(notifType, format string, args ...any) tea.Cmd {
	msg := NotifyMsg{Message: fmt.Sprintf(format, args...), Type: notifType}
	return func() tea.Msg { return msg }
}

// Env is what panels may use from the desktop.
type Env struct {
	Requests request.Sender
	Prefs    *prefs.Service
	Catalog  *catalog.Catalog
	Fetcher  *browser.Fetcher
	HomeURL  string
	Brand    string
	Version  string
}

// Factory builds a panel for a request.
type Factory func(env Env, req request.Request) Panel

// Registry maps app ids to panel factories.
type Registry struct {
	env       Env
	factories map[string]Factory
}

// NewRegistry returns a registry with the system apps and one entry per
// catalog project.
func NewRegistry(env Env) *Registry {
	if env.Requests == nil {
		env.Requests = request.Discard
	}
	if env.Catalog == nil {
		env.Catalog = &catalog.Catalog{}
	}
	if env.Fetcher == nil {
		env.Fetcher = browser.NewFetcher(0, "")
	}
	if env.HomeURL == "" {
		env.HomeURL = "about:blank"
	}

	r := &Registry{env: env, factories: make(map[string]Factory)}
	r.Register(Terminal, func(env Env, _ request.Request) Panel { return NewTerminal(env) })
	r.Register(About, func(env Env, _ request.Request) Panel { return NewAbout(env) })
	r.Register(Contact, func(env Env, _ request.Request) Panel { return NewContact(env) })
	r.Register(Projects, func(env Env, _ request.Request) Panel { return NewProjectList(env) })
	r.Register(Settings, func(env Env, _ request.Request) Panel { return NewSettings(env) })
	r.Register(System, func(env Env, _ request.Request) Panel { return NewSystemInfo(env) })
	r.Register(Browser, func(env Env, req request.Request) Panel {
		return NewBrowser(env, req.URL, req.Title)
	})
	for _, p := range env.Catalog.Projects {
		r.Register(p.ID, func(env Env, _ request.Request) Panel { return NewProject(env, p) })
	}
	return r
}

// Register adds or replaces the factory for an app id.
func (r *Registry) Register(appID string, f Factory) {
	r.factories[appID] = f
}

// Has reports whether appID can be opened.
func (r *Registry) Has(appID string) bool {
	_, ok := r.factories[appID]
	return ok
}

// AppIDs lists the registered app ids in sorted order.
func (r *Registry) AppIDs() []string {
	ids := make([]string, 0, len(r.factories))
	for id := range r.factories {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Build creates the panel for a request. Open-URL requests build a browser.
func (r *Registry) Build(req request.Request) (Panel, bool) {
	appID := req.AppID
	if req.Kind == request.OpenURL {
		appID = Browser
	}
	f, ok := r.factories[appID]
	if !ok {
		return nil, false
	}
	return f(r.env, req), true
}

// Env returns the environment panels are built with.
func (r *Registry) Env() Env { return r.env }

// Package surface owns the geometry of desktop windows: their positions and
// sizes, the stacking order, minimize/maximize state and the drag/resize
// gesture in flight. It draws nothing; the desktop renders what it returns.
//
// Every operation tolerates unknown window ids, so late events for a window
// that was already closed are dropped silently.
package surface

import (
	"slices"

	"github.com/google/uuid"
)

// Controller is the window surface. It is not safe for concurrent use; the
// desktop drives it from its update loop.
type Controller struct {
	limits   Limits
	viewport Size
	windows  []*Window
	active   string
	gesture  Gesture
	newID    func() string
}

// Option configures a Controller.
type Option func(*Controller)

// WithIDGenerator replaces the uuid window id generator.
func WithIDGenerator(fn func() string) Option {
	return func(c *Controller) {
		if fn != nil {
			c.newID = fn
		}
	}
}

// WithViewport sets the initial viewport dimensions.
func WithViewport(width, height int) Option {
	return func(c *Controller) {
		c.viewport = Size{Width: width, Height: height}
	}
}

// New creates an empty surface.
func New(limits Limits, opts ...Option) *Controller {
	c := &Controller{
		limits:  limits,
		gesture: Idle{},
		newID:   func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Limits returns the geometry rules in force.
func (c *Controller) Limits() Limits { return c.limits }

// Viewport returns the last viewport size passed to SetViewport.
func (c *Controller) Viewport() Size { return c.viewport }

// Len returns the number of open windows, minimized ones included.
func (c *Controller) Len() int { return len(c.windows) }

// Open opens a window for spec.AppID and returns its id. If a window for
// that app already exists it is restored and focused instead.
func (c *Controller) Open(spec WindowSpec) string {
	if w := c.byApp(spec.AppID); w != nil {
		if w.Minimized {
			w.Minimized = false
		}
		c.Focus(w.ID)
		return w.ID
	}

	n := len(c.windows)
	w := &Window{
		ID:        c.newID(),
		AppID:     spec.AppID,
		Title:     spec.Title,
		Content:   spec.Content,
		Position:  c.limits.Origin.Add(Point{X: n * c.limits.Stagger, Y: n * c.limits.Stagger}),
		Size:      c.limits.DefaultSize,
		Z:         c.maxZ() + 1,
		Resizable: true,
	}
	if spec.FixedSize != (Size{}) {
		w.Size = spec.FixedSize
		w.Resizable = false
	}
	w.Size = c.limits.floor(w.Size)
	w.Position.Y = max(w.Position.Y, c.limits.MenuBarInset)

	c.windows = append(c.windows, w)
	c.active = w.ID
	return w.ID
}

// Close removes a window. The active reference and any gesture on it are
// dropped with it.
func (c *Controller) Close(id string) {
	i := c.index(id)
	if i < 0 {
		return
	}
	c.windows = slices.Delete(c.windows, i, i+1)
	if c.active == id {
		c.active = ""
	}
	c.dropGesture(id)
}

// Update merges patch into the window. Size is floored at the minimum,
// the top edge is kept below the menu-bar inset, and position and size are
// ignored while the window is maximized.
func (c *Controller) Update(id string, patch Patch) {
	w := c.find(id)
	if w == nil {
		return
	}
	if patch.Title != nil {
		w.Title = *patch.Title
	}
	if patch.Content != nil {
		w.Content = *patch.Content
	}
	if patch.Maximized != nil && *patch.Maximized != w.Maximized {
		c.ToggleMaximize(id)
	}
	if patch.Minimized != nil {
		if *patch.Minimized {
			c.Minimize(id)
		} else {
			w.Minimized = false
		}
	}
	if w.Maximized {
		return
	}
	if patch.Size != nil {
		w.Size = c.limits.floor(*patch.Size)
	}
	if patch.Position != nil {
		p := *patch.Position
		p.Y = max(p.Y, c.limits.MenuBarInset)
		w.Position = p
	}
}

// Focus raises a window above every other and marks it active. A window
// that is already alone at the top keeps its Z, so repeated focus does not
// grow Z without bound; the stacking order is the same either way.
func (c *Controller) Focus(id string) {
	w := c.find(id)
	if w == nil {
		return
	}
	c.active = id
	top := c.maxZ()
	if w.Z == top && c.uniqueZ(top) {
		return
	}
	w.Z = top + 1
}

// Minimize hides a window. An active reference to it is cleared so the
// caller can pick the next window to focus.
func (c *Controller) Minimize(id string) {
	w := c.find(id)
	if w == nil || w.Minimized {
		return
	}
	w.Minimized = true
	if c.active == id {
		c.active = ""
	}
	c.dropGesture(id)
}

// Restore shows a minimized window and focuses it.
func (c *Controller) Restore(id string) {
	w := c.find(id)
	if w == nil {
		return
	}
	w.Minimized = false
	c.Focus(id)
}

// ToggleMaximize fills the viewport below the menu bar or returns to the
// geometry held before maximizing. Without a snapshot the window returns to
// the restore position at the default size.
func (c *Controller) ToggleMaximize(id string) {
	w := c.find(id)
	if w == nil {
		return
	}
	if w.Maximized {
		pos, size := c.limits.RestorePosition, c.limits.DefaultSize
		if w.PrevPosition != nil {
			pos = *w.PrevPosition
		}
		if w.PrevSize != nil {
			size = *w.PrevSize
		}
		w.Position = pos
		w.Size = c.limits.floor(size)
		w.PrevPosition, w.PrevSize = nil, nil
		w.Maximized = false
		return
	}

	pos, size := w.Position, w.Size
	w.PrevPosition, w.PrevSize = &pos, &size
	w.Maximized = true
	w.Position, w.Size = c.maximizedBounds()
	c.dropGesture(id)
}

// SetViewport records new viewport dimensions and refits every maximized
// window. Other windows are left where they are.
func (c *Controller) SetViewport(width, height int) {
	c.viewport = Size{Width: width, Height: height}
	pos, size := c.maximizedBounds()
	for _, w := range c.windows {
		if w.Maximized {
			w.Position, w.Size = pos, size
		}
	}
}

func (c *Controller) maximizedBounds() (Point, Size) {
	inset := c.limits.MenuBarInset
	return Point{X: 0, Y: inset}, c.limits.floor(Size{
		Width:  c.viewport.Width,
		Height: c.viewport.Height - inset,
	})
}

// Window returns a copy of the window with the given id.
func (c *Controller) Window(id string) (Window, bool) {
	if w := c.find(id); w != nil {
		return *w, true
	}
	return Window{}, false
}

// FindByApp returns the window hosting appID.
func (c *Controller) FindByApp(appID string) (Window, bool) {
	if w := c.byApp(appID); w != nil {
		return *w, true
	}
	return Window{}, false
}

// Windows returns every window in the order they were opened.
func (c *Controller) Windows() []Window {
	out := make([]Window, 0, len(c.windows))
	for _, w := range c.windows {
		out = append(out, *w)
	}
	return out
}

// Stack returns the visible windows from bottom to top.
func (c *Controller) Stack() []Window {
	out := make([]Window, 0, len(c.windows))
	for _, w := range c.windows {
		if !w.Minimized {
			out = append(out, *w)
		}
	}
	slices.SortStableFunc(out, func(a, b Window) int { return a.Z - b.Z })
	return out
}

// MinimizedWindows returns minimized windows in the order they were opened.
func (c *Controller) MinimizedWindows() []Window {
	var out []Window
	for _, w := range c.windows {
		if w.Minimized {
			out = append(out, *w)
		}
	}
	return out
}

// Topmost returns the visible window with the highest Z.
func (c *Controller) Topmost() (Window, bool) {
	stack := c.Stack()
	if len(stack) == 0 {
		return Window{}, false
	}
	return stack[len(stack)-1], true
}

// Active returns the id of the active window, or "".
func (c *Controller) Active() string { return c.active }

// Gesture returns the gesture in flight.
func (c *Controller) Gesture() Gesture { return c.gesture }

func (c *Controller) find(id string) *Window {
	if i := c.index(id); i >= 0 {
		return c.windows[i]
	}
	return nil
}

func (c *Controller) index(id string) int {
	if id == "" {
		return -1
	}
	return slices.IndexFunc(c.windows, func(w *Window) bool { return w.ID == id })
}

func (c *Controller) byApp(appID string) *Window {
	if appID == "" {
		return nil
	}
	for _, w := range c.windows {
		if w.AppID == appID {
			return w
		}
	}
	return nil
}

func (c *Controller) maxZ() int {
	top := 0
	for _, w := range c.windows {
		top = max(top, w.Z)
	}
	return top
}

func (c *Controller) uniqueZ(z int) bool {
	n := 0
	for _, w := range c.windows {
		if w.Z == z {
			n++
		}
	}
	return n == 1
}

func (c *Controller) dropGesture(id string) {
	if GestureWindow(c.gesture) == id {
		c.gesture = Idle{}
	}
}

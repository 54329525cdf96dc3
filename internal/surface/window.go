package surface

// Window is one open window on the surface.
//
// Position and Size are only changed by the Controller. While Maximized is
// set they are derived from the viewport and the menu-bar inset, and
// PrevPosition/PrevSize hold the geometry to return to.
type Window struct {
	ID      string
	AppID   string
	Title   string
	Content any

	Position Point
	Size     Size
	Z        int

	Minimized bool
	Maximized bool

	PrevPosition *Point
	PrevSize     *Size

	Resizable bool
}

// Contains reports whether p lies inside the window's outer bounds.
func (w Window) Contains(p Point) bool {
	return p.X >= w.Position.X && p.X < w.Position.X+w.Size.Width &&
		p.Y >= w.Position.Y && p.Y < w.Position.Y+w.Size.Height
}

// Right returns the first column past the window's right edge.
func (w Window) Right() int { return w.Position.X + w.Size.Width }

// Bottom returns the first row past the window's bottom edge.
func (w Window) Bottom() int { return w.Position.Y + w.Size.Height }

// WindowSpec describes a window to open.
type WindowSpec struct {
	AppID   string
	Title   string
	Content any
	// FixedSize opens a non-resizable window of this size. The zero value
	// opens a resizable window at the default size.
	FixedSize Size
}

// Patch carries the fields to merge in Update. Nil fields are left alone.
type Patch struct {
	Title     *string
	Content   *any
	Position  *Point
	Size      *Size
	Minimized *bool
	Maximized *bool
}

// Chrome describes the window decoration the controller hit-tests against.
type Chrome struct {
	// TitleHeight is the number of rows the title bar occupies.
	TitleHeight int
	// HandleSize is the thickness of the resize band along each edge.
	HandleSize int
	// ButtonWidth is the width of one title-bar control.
	ButtonWidth int
	// ButtonsRight is the gap between the right edge and the close control.
	ButtonsRight int
}

// ControlsWidth returns the width of the minimize/maximize/close cluster.
func (c Chrome) ControlsWidth() int { return 3 * c.ButtonWidth }

// Limits are the geometry rules the controller enforces.
type Limits struct {
	MinWidth  int
	MinHeight int
	// MenuBarInset is reserved at the top of the viewport. Windows never sit
	// above it and maximized windows start on it.
	MenuBarInset int

	// Origin is where the first window opens; each further window is
	// offset by Stagger on both axes.
	Origin  Point
	Stagger int

	DefaultSize     Size
	RestorePosition Point

	// KeepVisible is how much of a dragged window must stay inside the
	// viewport horizontally (Width) and above its bottom edge (Height).
	// Zero disables the constraint on that axis.
	KeepVisible Size

	Chrome Chrome
}

// DefaultLimits returns the pixel geometry of the web desktop.
func DefaultLimits() Limits {
	return Limits{
		MinWidth:        400,
		MinHeight:       300,
		MenuBarInset:    32,
		Origin:          Point{X: 100, Y: 100},
		Stagger:         30,
		DefaultSize:     Size{Width: 900, Height: 700},
		RestorePosition: Point{X: 100, Y: 100},
		KeepVisible:     Size{Width: 100, Height: 40},
		Chrome: Chrome{
			TitleHeight:  40,
			HandleSize:   6,
			ButtonWidth:  20,
			ButtonsRight: 8,
		},
	}
}

func (l Limits) floor(s Size) Size {
	return Size{Width: max(s.Width, l.MinWidth), Height: max(s.Height, l.MinHeight)}
}

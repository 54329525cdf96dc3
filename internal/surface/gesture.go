package surface

// Gesture is the single in-flight pointer interaction. It is one of Idle,
// Dragging or Resizing.
type Gesture interface {
	gesture()
}

// Idle means no pointer interaction is in progress.
type Idle struct{}

// Dragging moves a window by its title bar.
type Dragging struct {
	WindowID     string
	PointerStart Point
	WindowStart  Point
}

// Resizing moves one edge or corner of a window.
type Resizing struct {
	WindowID      string
	Direction     Direction
	PointerStart  Point
	StartSize     Size
	StartPosition Point
}

func (Idle) gesture()     {}
func (Dragging) gesture() {}
func (Resizing) gesture() {}

// GestureWindow returns the window a gesture targets, or "" for Idle.
func GestureWindow(g Gesture) string {
	switch g := g.(type) {
	case Dragging:
		return g.WindowID
	case Resizing:
		return g.WindowID
	}
	return ""
}

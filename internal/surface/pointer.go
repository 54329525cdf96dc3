package surface

// Part is the area of a window under the pointer.
type Part int

const (
	PartNone Part = iota
	PartContent
	PartTitleBar
	PartControl
	PartEdge
)

// Control is a title-bar button.
type Control int

const (
	ControlNone Control = iota
	ControlMinimize
	ControlMaximize
	ControlClose
)

func (c Control) String() string {
	switch c {
	case ControlMinimize:
		return "minimize"
	case ControlMaximize:
		return "maximize"
	case ControlClose:
		return "close"
	}
	return "none"
}

// Hit is the result of HitTest.
type Hit struct {
	WindowID  string
	Part      Part
	Direction Direction
	Control   Control
}

// BeginDrag starts moving a window from pointer. It is refused for unknown,
// minimized or maximized windows and when pointer is on a title-bar control.
// A new gesture replaces any gesture already in flight.
func (c *Controller) BeginDrag(id string, pointer Point) bool {
	w := c.find(id)
	if w == nil || w.Minimized || w.Maximized {
		return false
	}
	if c.controlAt(*w, pointer) != ControlNone {
		return false
	}
	c.gesture = Dragging{
		WindowID:     id,
		PointerStart: pointer,
		WindowStart:  w.Position,
	}
	return true
}

// BeginResize starts resizing a window from the edge or corner dir. It is
// refused for unknown, minimized, maximized or fixed-size windows.
func (c *Controller) BeginResize(id string, pointer Point, dir Direction) bool {
	w := c.find(id)
	if w == nil || w.Minimized || w.Maximized || !w.Resizable || !dir.Valid() {
		return false
	}
	c.gesture = Resizing{
		WindowID:      id,
		Direction:     dir,
		PointerStart:  pointer,
		StartSize:     w.Size,
		StartPosition: w.Position,
	}
	return true
}

// PointerMove applies the pointer position to the gesture in flight.
func (c *Controller) PointerMove(pointer Point) {
	switch g := c.gesture.(type) {
	case Dragging:
		w := c.find(g.WindowID)
		if w == nil || w.Maximized {
			return
		}
		w.Position = c.clampDrag(*w, g.WindowStart.Add(pointer.Sub(g.PointerStart)))
	case Resizing:
		w := c.find(g.WindowID)
		if w == nil || w.Maximized {
			return
		}
		w.Position, w.Size = c.resized(g, pointer.Sub(g.PointerStart))
	}
}

// EndGesture finishes whatever gesture is in flight. It is safe to call
// when nothing is in progress.
func (c *Controller) EndGesture() {
	c.gesture = Idle{}
}

// clampDrag keeps the window below the menu bar and, once the viewport is
// known, keeps KeepVisible of it on screen.
func (c *Controller) clampDrag(w Window, p Point) Point {
	keep := c.limits.KeepVisible
	if vw := c.viewport.Width; vw > 0 && keep.Width > 0 {
		kx := min(keep.Width, w.Size.Width)
		p.X = max(p.X, kx-w.Size.Width)
		p.X = min(p.X, vw-kx)
	}
	if vh := c.viewport.Height; vh > 0 && keep.Height > 0 {
		p.Y = min(p.Y, vh-min(keep.Height, w.Size.Height))
	}
	p.Y = max(p.Y, c.limits.MenuBarInset)
	return p
}

// resized computes the geometry for a resize delta. The west and north
// edges give up only as much delta as the minimum size allows and shift the
// position by the same amount, so the opposite edge does not move.
func (c *Controller) resized(g Resizing, delta Point) (Point, Size) {
	l := c.limits
	pos, size := g.StartPosition, g.StartSize

	if g.Direction.Has(East) {
		size.Width = max(l.MinWidth, g.StartSize.Width+delta.X)
	}
	if g.Direction.Has(South) {
		size.Height = max(l.MinHeight, g.StartSize.Height+delta.Y)
	}
	if g.Direction.Has(West) {
		change := min(delta.X, g.StartSize.Width-l.MinWidth)
		size.Width = g.StartSize.Width - change
		pos.X = g.StartPosition.X + change
	}
	if g.Direction.Has(North) {
		change := min(delta.Y, g.StartSize.Height-l.MinHeight)
		y := max(g.StartPosition.Y+change, l.MenuBarInset)
		size.Height = g.StartSize.Height - (y - g.StartPosition.Y)
		pos.Y = y
	}
	return pos, l.floor(size)
}

// HitTest reports which window and which part of it is under p. Windows are
// tested from the top of the stack down.
func (c *Controller) HitTest(p Point) Hit {
	stack := c.Stack()
	for i := len(stack) - 1; i >= 0; i-- {
		w := stack[i]
		if !w.Contains(p) {
			continue
		}
		hit := Hit{WindowID: w.ID, Part: PartContent}
		if ctl := c.controlAt(w, p); ctl != ControlNone {
			hit.Part, hit.Control = PartControl, ctl
			return hit
		}
		if dir := c.edgeAt(w, p); dir != NoDirection {
			hit.Part, hit.Direction = PartEdge, dir
			return hit
		}
		if p.Y < w.Position.Y+c.limits.Chrome.TitleHeight {
			hit.Part = PartTitleBar
		}
		return hit
	}
	return Hit{}
}

// ControlBounds returns the first column and width of a title-bar control
// for a window. Controls run right to left: close, maximize, minimize.
func (c *Controller) ControlBounds(w Window, ctl Control) (x, width int) {
	ch := c.limits.Chrome
	slot := 0
	switch ctl {
	case ControlClose:
		slot = 1
	case ControlMaximize:
		slot = 2
	case ControlMinimize:
		slot = 3
	default:
		return 0, 0
	}
	return w.Right() - ch.ButtonsRight - slot*ch.ButtonWidth, ch.ButtonWidth
}

func (c *Controller) controlAt(w Window, p Point) Control {
	ch := c.limits.Chrome
	if ch.ButtonWidth <= 0 || ch.TitleHeight <= 0 {
		return ControlNone
	}
	if p.Y < w.Position.Y || p.Y >= w.Position.Y+ch.TitleHeight {
		return ControlNone
	}
	for _, ctl := range []Control{ControlClose, ControlMaximize, ControlMinimize} {
		x, width := c.ControlBounds(w, ctl)
		if p.X >= x && p.X < x+width {
			return ctl
		}
	}
	return ControlNone
}

// edgeAt returns the resize handle under p. When the title bar is no taller
// than the handle band, the top edge only resizes from its corners so the
// title bar stays draggable.
func (c *Controller) edgeAt(w Window, p Point) Direction {
	if !w.Resizable || w.Maximized {
		return NoDirection
	}
	hs := c.limits.Chrome.HandleSize
	if hs <= 0 {
		return NoDirection
	}
	north := p.Y < w.Position.Y+hs
	south := p.Y >= w.Bottom()-hs
	west := p.X < w.Position.X+hs
	east := p.X >= w.Right()-hs
	if north && c.limits.Chrome.TitleHeight <= hs && !west && !east {
		north = false
	}
	return directionOf(north, south, east, west)
}

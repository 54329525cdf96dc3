package surface

import "testing"

func TestWestResizeStopsAtFloor(t *testing.T) {
	c := newTestController()
	id := c.Open(WindowSpec{AppID: "a"})
	start := mustWindow(t, c, id)

	grab := Point{start.Position.X, start.Position.Y + 200}
	if !c.BeginResize(id, grab, West) {
		t.Fatal("BeginResize refused")
	}
	c.PointerMove(grab.Add(Point{700, 0}))

	w := mustWindow(t, c, id)
	if w.Size.Width != 400 {
		t.Errorf("width = %d, want 400", w.Size.Width)
	}
	if got := w.Position.X - start.Position.X; got != 500 {
		t.Errorf("x moved by %d, want 500", got)
	}
	if w.Right() != start.Right() {
		t.Errorf("east edge moved from %d to %d", start.Right(), w.Right())
	}
}

func TestResizeFloorsHoldOnEveryMove(t *testing.T) {
	dirs := []Direction{North, South, East, West, NorthEast, NorthWest, SouthEast, SouthWest}
	deltas := []Point{
		{0, 0}, {5000, 5000}, {-5000, -5000}, {5000, -5000}, {-5000, 5000},
		{250, -40}, {-700, 900}, {1, 1},
	}
	for _, dir := range dirs {
		t.Run(dir.String(), func(t *testing.T) {
			c := newTestController()
			id := c.Open(WindowSpec{AppID: "a"})
			start := mustWindow(t, c, id)
			grab := Point{start.Position.X + 10, start.Position.Y + 10}
			c.BeginResize(id, grab, dir)
			for _, d := range deltas {
				c.PointerMove(grab.Add(d))
				w := mustWindow(t, c, id)
				if w.Size.Width < 400 || w.Size.Height < 300 {
					t.Fatalf("delta %v: size %v below floor", d, w.Size)
				}
				if w.Position.Y < 32 {
					t.Fatalf("delta %v: y = %d above inset", d, w.Position.Y)
				}
			}
		})
	}
}

func TestResizeEdgesAnchorOppositeSide(t *testing.T) {
	tests := []struct {
		name     string
		dir      Direction
		delta    Point
		wantPos  Point
		wantSize Size
	}{
		{"east grows", East, Point{100, 50}, Point{100, 100}, Size{1000, 700}},
		{"south grows", South, Point{50, 100}, Point{100, 100}, Size{900, 800}},
		{"west shrinks", West, Point{100, 0}, Point{200, 100}, Size{800, 700}},
		{"west grows", West, Point{-50, 0}, Point{50, 100}, Size{950, 700}},
		{"north shrinks", North, Point{0, 200}, Point{100, 300}, Size{900, 500}},
		{"north stops at floor", North, Point{0, 900}, Point{100, 500}, Size{900, 300}},
		{"north stops at inset", North, Point{0, -500}, Point{100, 32}, Size{900, 768}},
		{"south-east floors", SouthEast, Point{-900, -900}, Point{100, 100}, Size{400, 300}},
		{"north-west corner", NorthWest, Point{-20, -30}, Point{80, 70}, Size{920, 730}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestController()
			id := c.Open(WindowSpec{AppID: "a"})
			grab := Point{300, 300}
			c.BeginResize(id, grab, tt.dir)
			c.PointerMove(grab.Add(tt.delta))
			w := mustWindow(t, c, id)
			if w.Position != tt.wantPos || w.Size != tt.wantSize {
				t.Errorf("got %v %v, want %v %v", w.Position, w.Size, tt.wantPos, tt.wantSize)
			}
		})
	}
}

func TestDragClampsToInsetAndViewport(t *testing.T) {
	tests := []struct {
		name  string
		delta Point
		want  Point
	}{
		{"free move", Point{40, 60}, Point{140, 160}},
		{"above menu bar", Point{0, -500}, Point{100, 32}},
		{"far left keeps margin", Point{-5000, 0}, Point{100 - 900, 100}},
		{"far right keeps margin", Point{5000, 0}, Point{1920 - 100, 100}},
		{"below viewport keeps margin", Point{0, 5000}, Point{100, 1080 - 40}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestController()
			id := c.Open(WindowSpec{AppID: "a"})
			grab := Point{500, 110}
			if !c.BeginDrag(id, grab) {
				t.Fatal("BeginDrag refused")
			}
			c.PointerMove(grab.Add(tt.delta))
			if got := mustWindow(t, c, id).Position; got != tt.want {
				t.Errorf("position = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDragWithoutViewportOnlyClampsInset(t *testing.T) {
	c := New(DefaultLimits(), seqIDs())
	id := c.Open(WindowSpec{AppID: "a"})
	c.BeginDrag(id, Point{500, 110})
	c.PointerMove(Point{-5000, -5000})
	if got := mustWindow(t, c, id).Position; got != (Point{-5000 + 100 - 500, 32}) {
		t.Errorf("position = %v", got)
	}
}

func TestBeginDragRefusals(t *testing.T) {
	c := newTestController()
	id := c.Open(WindowSpec{AppID: "a"})
	w := mustWindow(t, c, id)

	x, _ := c.ControlBounds(w, ControlClose)
	if c.BeginDrag(id, Point{x, w.Position.Y + 1}) {
		t.Error("drag started on the close control")
	}

	c.ToggleMaximize(id)
	if c.BeginDrag(id, Point{300, 40}) {
		t.Error("drag started on a maximized window")
	}
	if c.BeginResize(id, Point{300, 40}, South) {
		t.Error("resize started on a maximized window")
	}
	if _, ok := c.Gesture().(Idle); !ok {
		t.Errorf("gesture = %T, want Idle", c.Gesture())
	}
}

func TestGestureSlotIsExclusive(t *testing.T) {
	c := newTestController()
	id := c.Open(WindowSpec{AppID: "a"})
	c.BeginDrag(id, Point{500, 110})
	c.BeginResize(id, Point{999, 799}, SouthEast)

	g, ok := c.Gesture().(Resizing)
	if !ok {
		t.Fatalf("gesture = %T, want Resizing", c.Gesture())
	}
	if g.Direction != SouthEast || g.WindowID != id {
		t.Errorf("resize gesture = %+v", g)
	}

	c.EndGesture()
	c.EndGesture()
	if _, ok := c.Gesture().(Idle); !ok {
		t.Errorf("gesture = %T after EndGesture, want Idle", c.Gesture())
	}
}

func TestCloseDuringDragIsTolerated(t *testing.T) {
	c := newTestController()
	a := c.Open(WindowSpec{AppID: "a"})
	b := c.Open(WindowSpec{AppID: "b"})
	before := mustWindow(t, c, b)

	c.BeginDrag(a, Point{500, 110})
	c.Close(a)
	c.PointerMove(Point{700, 300})
	c.EndGesture()

	if after := mustWindow(t, c, b); after.Position != before.Position {
		t.Errorf("unrelated window moved from %v to %v", before.Position, after.Position)
	}
	if GestureWindow(c.Gesture()) != "" {
		t.Error("gesture should be idle once its window closed")
	}
}

func TestHitTest(t *testing.T) {
	l := DefaultLimits()
	l.Chrome = Chrome{TitleHeight: 1, HandleSize: 1, ButtonWidth: 3, ButtonsRight: 1}
	l.MinWidth, l.MinHeight = 10, 5
	l.MenuBarInset = 1
	l.Origin = Point{10, 5}
	l.DefaultSize = Size{40, 12}
	c := New(l, seqIDs(), WithViewport(120, 40))
	id := c.Open(WindowSpec{AppID: "a"})
	// Window spans x 10..49, y 5..16.

	tests := []struct {
		name string
		p    Point
		want Hit
	}{
		{"outside", Point{0, 0}, Hit{}},
		{"content", Point{20, 10}, Hit{WindowID: id, Part: PartContent}},
		{"title", Point{20, 5}, Hit{WindowID: id, Part: PartTitleBar}},
		{"close", Point{46, 5}, Hit{WindowID: id, Part: PartControl, Control: ControlClose}},
		{"maximize", Point{43, 5}, Hit{WindowID: id, Part: PartControl, Control: ControlMaximize}},
		{"minimize", Point{40, 5}, Hit{WindowID: id, Part: PartControl, Control: ControlMinimize}},
		{"north-west corner", Point{10, 5}, Hit{WindowID: id, Part: PartEdge, Direction: NorthWest}},
		{"north-east corner", Point{49, 5}, Hit{WindowID: id, Part: PartEdge, Direction: NorthEast}},
		{"west", Point{10, 10}, Hit{WindowID: id, Part: PartEdge, Direction: West}},
		{"east", Point{49, 10}, Hit{WindowID: id, Part: PartEdge, Direction: East}},
		{"south", Point{20, 16}, Hit{WindowID: id, Part: PartEdge, Direction: South}},
		{"south-east", Point{49, 16}, Hit{WindowID: id, Part: PartEdge, Direction: SouthEast}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.HitTest(tt.p); got != tt.want {
				t.Errorf("HitTest(%v) = %+v, want %+v", tt.p, got, tt.want)
			}
		})
	}
}

func TestHitTestPrefersTopWindow(t *testing.T) {
	c := newTestController()
	a := c.Open(WindowSpec{AppID: "a"})
	b := c.Open(WindowSpec{AppID: "b"})
	p := Point{500, 500}
	if got := c.HitTest(p).WindowID; got != b {
		t.Errorf("hit %q, want top window %q", got, b)
	}
	c.Focus(a)
	if got := c.HitTest(p).WindowID; got != a {
		t.Errorf("hit %q after focus, want %q", got, a)
	}
	c.Minimize(a)
	if got := c.HitTest(p).WindowID; got != b {
		t.Errorf("hit %q, minimized windows should not be hit", got)
	}
}

func TestParseDirection(t *testing.T) {
	for _, s := range []string{"n", "s", "e", "w", "ne", "nw", "se", "sw"} {
		d, ok := ParseDirection(s)
		if !ok || !d.Valid() {
			t.Errorf("ParseDirection(%q) = %v, %v", s, d, ok)
			continue
		}
		if d.String() != s {
			t.Errorf("round trip %q -> %q", s, d.String())
		}
	}
	if _, ok := ParseDirection("up"); ok {
		t.Error("ParseDirection accepted garbage")
	}
	if (North | South).Valid() {
		t.Error("north|south should be invalid")
	}
}

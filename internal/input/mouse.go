package input

import (
	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/deskfolio/internal/app"
	"github.com/Gaurav-Gosain/deskfolio/internal/config"
	"github.com/Gaurav-Gosain/deskfolio/internal/panel"
	"github.com/Gaurav-Gosain/deskfolio/internal/surface"
)

// wheelStep is how many lines one wheel notch scrolls.
const wheelStep = 3

// contentPoint converts a screen cell to content coordinates of w, and
// reports whether it lies inside the border.
func contentPoint(w surface.Window, x, y int) (int, int, bool) {
	cx, cy := x-w.Position.X-1, y-w.Position.Y-1
	ok := cx >= 0 && cy >= 0 && cx < w.Size.Width-2 && cy < w.Size.Height-2
	return cx, cy, ok
}

// nearestCorner picks the corner of w closest to (x, y).
func nearestCorner(w surface.Window, x, y int) surface.Direction {
	dir := surface.South
	if y < w.Position.Y+w.Size.Height/2 {
		dir = surface.North
	}
	if x < w.Position.X+w.Size.Width/2 {
		return dir | surface.West
	}
	return dir | surface.East
}

// handleMouseClick handles mouse click events
func handleMouseClick(msg tea.MouseClickMsg, o *app.OS) (*app.OS, tea.Cmd) {
	mouse := msg.Mouse()
	X, Y := mouse.X, mouse.Y
	o.LastMouseX, o.LastMouseY = X, Y

	// Modal overlays swallow clicks; help and logs close on click
	if o.ShowQuitConfirm {
		return o, nil
	}
	if o.ShowHelp || o.ShowLogs {
		o.ShowHelp, o.ShowLogs = false, false
		return o, nil
	}

	if o.Menu != nil {
		if o.Menu.Contains(X, Y) {
			if i := o.Menu.ItemAt(X, Y); i >= 0 && mouse.Button == tea.MouseLeft {
				return o, o.ActivateMenuItem(i, X-o.Menu.X)
			}
			return o, nil
		}
		o.CloseMenu()
		// Clicking the glyph again only closes the control center
		if Y < o.GetTopMargin() && o.MenuBarPartAt(X) == app.MenuBarControlCenter {
			return o, nil
		}
	}

	// Menu bar
	if Y < o.GetTopMargin() {
		if mouse.Button != tea.MouseLeft {
			return o, nil
		}
		switch o.MenuBarPartAt(X) {
		case app.MenuBarBrand:
			return o, o.OpenApp(panel.System)
		case app.MenuBarControlCenter:
			o.ToggleControlCenter()
		}
		return o, nil
	}

	// Dock
	if config.GetDockHeight() > 0 && Y >= o.GetDockY() {
		if it, ok := o.DockItemAt(X, Y); ok && mouse.Button == tea.MouseLeft {
			return o, o.ActivateDockItem(it)
		}
		return o, nil
	}

	p := surface.Point{X: X, Y: Y}
	hit := o.Surface.HitTest(p)
	if hit.WindowID == "" {
		return handleDesktopClick(mouse.Button, X, Y, o)
	}

	w, _ := o.Surface.Window(hit.WindowID)

	if mouse.Button == tea.MouseRight {
		o.Focus(w.ID)
		if w.Resizable && !w.Maximized {
			o.Surface.BeginResize(w.ID, p, nearestCorner(w, X, Y))
		}
		return o, nil
	}
	if mouse.Button != tea.MouseLeft {
		return o, nil
	}

	part := hit.Part
	if part == surface.PartControl && config.HideWindowButtons {
		part = surface.PartTitleBar
	}

	switch part {
	case surface.PartControl:
		switch hit.Control {
		case surface.ControlClose:
			o.Close(w.ID)
		case surface.ControlMaximize:
			o.ToggleMaximize(w.ID)
		case surface.ControlMinimize:
			o.Minimize(w.ID)
		}
		return o, nil

	case surface.PartTitleBar:
		o.Focus(w.ID)
		if o.TitleClick(w.ID) {
			o.ToggleMaximize(w.ID)
			return o, nil
		}
		o.Surface.BeginDrag(w.ID, p)
		return o, nil

	case surface.PartEdge:
		o.Focus(w.ID)
		o.Surface.BeginResize(w.ID, p, hit.Direction)
		return o, nil
	}

	o.Focus(w.ID)
	o.EnterAppMode()
	if cx, cy, ok := contentPoint(w, X, Y); ok {
		return o, o.SendToWindow(w.ID, panel.ClickMsg{X: cx, Y: cy})
	}
	return o, nil
}

// handleDesktopClick handles clicks on the wallpaper: icons open their
// project, a right click opens the context menu.
func handleDesktopClick(button tea.MouseButton, x, y int, o *app.OS) (*app.OS, tea.Cmd) {
	switch button {
	case tea.MouseRight:
		o.OpenContextMenu(x, y)
	case tea.MouseLeft:
		if ic, ok := o.IconAt(x, y); ok {
			return o, o.OpenApp(ic.AppID)
		}
		o.ExitAppMode()
	}
	return o, nil
}

// handleMouseMotion feeds the pointer to an active drag or resize.
func handleMouseMotion(msg tea.MouseMotionMsg, o *app.OS) (*app.OS, tea.Cmd) {
	mouse := msg.Mouse()
	o.LastMouseX, o.LastMouseY = mouse.X, mouse.Y
	if surface.GestureWindow(o.Surface.Gesture()) == "" {
		return o, nil
	}
	o.Surface.PointerMove(surface.Point{X: mouse.X, Y: mouse.Y})
	return o, nil
}

// handleMouseRelease ends an active drag or resize.
func handleMouseRelease(msg tea.MouseReleaseMsg, o *app.OS) (*app.OS, tea.Cmd) {
	mouse := msg.Mouse()
	o.LastMouseX, o.LastMouseY = mouse.X, mouse.Y
	id := surface.GestureWindow(o.Surface.Gesture())
	if id == "" {
		return o, nil
	}
	o.Surface.EndGesture()
	if w, ok := o.Surface.Window(id); ok {
		o.LogInfo("[GESTURE] %s at %d,%d %dx%d", w.Title, w.Position.X, w.Position.Y, w.Size.Width, w.Size.Height)
	}
	return o, nil
}

// handleMouseWheel scrolls the open overlay, or the window under the
// pointer.
func handleMouseWheel(msg tea.MouseWheelMsg, o *app.OS) (*app.OS, tea.Cmd) {
	mouse := msg.Mouse()
	delta := 0
	switch mouse.Button {
	case tea.MouseWheelUp:
		delta = -1
	case tea.MouseWheelDown:
		delta = 1
	default:
		return o, nil
	}

	switch {
	case o.ShowLogs:
		o.ScrollLogs(delta)
		return o, nil
	case o.ShowHelp:
		o.ScrollHelp(delta)
		return o, nil
	case o.ShowQuitConfirm, o.Menu != nil:
		return o, nil
	}

	hit := o.Surface.HitTest(surface.Point{X: mouse.X, Y: mouse.Y})
	if hit.WindowID == "" {
		return o, nil
	}
	w, _ := o.Surface.Window(hit.WindowID)
	cx, cy, ok := contentPoint(w, mouse.X, mouse.Y)
	if !ok {
		return o, nil
	}
	return o, o.SendToWindow(w.ID, panel.WheelMsg{X: cx, Y: cy, Delta: delta * wheelStep})
}

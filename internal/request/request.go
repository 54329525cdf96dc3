// Package request carries open requests from window content to the desktop.
//
// Panels never reach into the window controller. They hold a Sender and
// post a Request; the desktop receives it as a Msg in its update loop and
// decides whether to open, focus, restore or add a browser tab.
package request

import (
	"sync"

	tea "charm.land/bubbletea/v2"
)

// Kind says what a request asks for.
type Kind int

const (
	// OpenApp opens or focuses the window for AppID.
	OpenApp Kind = iota
	// OpenURL shows URL in the browser window.
	OpenURL
)

func (k Kind) String() string {
	switch k {
	case OpenApp:
		return "open-app"
	case OpenURL:
		return "open-url"
	}
	return "unknown"
}

// Request is one open request.
type Request struct {
	Kind  Kind
	AppID string
	URL   string
	Title string
}

// App builds a request to open an app window.
func App(appID, title string) Request {
	return Request{Kind: OpenApp, AppID: appID, Title: title}
}

// URL builds a request to show a page in the browser.
func URL(url, title string) Request {
	return Request{Kind: OpenURL, URL: url, Title: title}
}

// Msg delivers a Request to the desktop's update loop.
type Msg struct {
	Request Request
}

// Sender is the side of the bus handed to panels.
type Sender interface {
	Send(Request) bool
}

// Bus is a buffered request channel.
type Bus struct {
	mu     sync.Mutex
	ch     chan Request
	closed bool
}

// NewBus returns a bus holding up to size pending requests.
func NewBus(size int) *Bus {
	return &Bus{ch: make(chan Request, max(size, 1))}
}

// Send queues r without blocking. It returns false when the bus is full or
// closed and the request was dropped.
func (b *Bus) Send(r Request) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return false
	}
	select {
	case b.ch <- r:
		return true
	default:
		return false
	}
}

// Listen returns a command that waits for the next request. The desktop
// re-issues it after each Msg. It yields nil once the bus is closed.
func (b *Bus) Listen() tea.Cmd {
	return func() tea.Msg {
		r, ok := <-b.ch
		if !ok {
			return nil
		}
		return Msg{Request: r}
	}
}

// Close stops the bus. Pending listeners return nil.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.closed {
		b.closed = true
		close(b.ch)
	}
}

// SenderFunc adapts a function to Sender.
type SenderFunc func(Request) bool

// Send calls f.
func (f SenderFunc) Send(r Request) bool { return f(r) }

// Discard drops every request.
var Discard Sender = SenderFunc(func(Request) bool { return false })

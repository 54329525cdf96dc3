// Package browser implements the tab strip and page loader behind the
// desktop's browser window.
package browser

import (
	mathrand "math/rand"
	"slices"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	entropyMu sync.Mutex
	entropy   = ulid.Monotonic(mathrand.New(mathrand.NewSource(time.Now().UnixNano())), 0)
)

func newTabID() string {
	entropyMu.Lock()
	defer entropyMu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String()
}

// State is the load state of a tab.
type State int

const (
	Loading State = iota
	Loaded
)

func (s State) String() string {
	if s == Loading {
		return "loading"
	}
	return "loaded"
}

// Tab is one page in the strip.
type Tab struct {
	ID     string
	URL    string
	Title  string
	State  State
	Page   Page
	Err    error
	Scroll int
}

// Strip is the ordered set of tabs in one browser window. Exactly one tab
// is active whenever the strip is not empty.
type Strip struct {
	tabs   []*Tab
	active string
}

// NewStrip returns an empty strip.
func NewStrip() *Strip {
	return &Strip{}
}

// AddTab appends a loading tab, makes it active and returns its id.
func (s *Strip) AddTab(url, title string) string {
	if title == "" {
		title = url
	}
	t := &Tab{ID: newTabID(), URL: url, Title: title, State: Loading}
	s.tabs = append(s.tabs, t)
	s.active = t.ID
	return t.ID
}

// CloseTab removes a tab. Closing the only tab removes nothing and returns
// true: the window should close instead. When the closed tab was active,
// the tab before it becomes active.
func (s *Strip) CloseTab(id string) (closeWindow bool) {
	i := s.index(id)
	if i < 0 {
		return false
	}
	if len(s.tabs) == 1 {
		return true
	}
	s.tabs = slices.Delete(s.tabs, i, i+1)
	if s.active == id {
		s.active = s.tabs[max(0, i-1)].ID
	}
	return false
}

// SwitchTab activates a tab. Unknown ids are ignored.
func (s *Strip) SwitchTab(id string) {
	if s.index(id) >= 0 {
		s.active = id
	}
}

// Next activates the tab after the active one, wrapping around.
func (s *Strip) Next() { s.cycle(1) }

// Prev activates the tab before the active one, wrapping around.
func (s *Strip) Prev() { s.cycle(-1) }

func (s *Strip) cycle(step int) {
	n := len(s.tabs)
	if n == 0 {
		return
	}
	i := s.index(s.active)
	s.active = s.tabs[((i+step)%n+n)%n].ID
}

// Navigate points a tab at a new URL and puts it back into Loading.
func (s *Strip) Navigate(id, url string) {
	t := s.find(id)
	if t == nil {
		return
	}
	t.URL, t.Title = url, url
	t.State = Loading
	t.Page, t.Err, t.Scroll = Page{}, nil, 0
}

// Complete records the result of loading a tab. It reports whether the
// window's loading indicator should clear, which is the case when the
// completed tab is the active one.
func (s *Strip) Complete(id string, page Page, err error) bool {
	t := s.find(id)
	if t == nil {
		return false
	}
	t.State = Loaded
	t.Err = err
	t.Page = page
	if err != nil {
		t.Page = ErrorPage(t.URL, err)
	}
	if t.Page.Title != "" {
		t.Title = t.Page.Title
	}
	return s.active == id
}

// ScrollBy moves the active tab's scroll offset, keeping it within
// [0, limit].
func (s *Strip) ScrollBy(delta, limit int) {
	t := s.find(s.active)
	if t == nil {
		return
	}
	t.Scroll = min(max(t.Scroll+delta, 0), max(limit, 0))
}

// Active returns the active tab.
func (s *Strip) Active() (Tab, bool) {
	if t := s.find(s.active); t != nil {
		return *t, true
	}
	return Tab{}, false
}

// ActiveID returns the id of the active tab.
func (s *Strip) ActiveID() string { return s.active }

// Address is the URL mirrored into the window's address bar.
func (s *Strip) Address() string {
	if t := s.find(s.active); t != nil {
		return t.URL
	}
	return ""
}

// Loading reports whether the window's loading indicator is lit.
func (s *Strip) Loading() bool {
	t := s.find(s.active)
	return t != nil && t.State == Loading
}

// Tabs returns the tabs in strip order.
func (s *Strip) Tabs() []Tab {
	out := make([]Tab, 0, len(s.tabs))
	for _, t := range s.tabs {
		out = append(out, *t)
	}
	return out
}

// Tab returns a tab by id.
func (s *Strip) Tab(id string) (Tab, bool) {
	if t := s.find(id); t != nil {
		return *t, true
	}
	return Tab{}, false
}

// Len returns the number of tabs.
func (s *Strip) Len() int { return len(s.tabs) }

func (s *Strip) index(id string) int {
	return slices.IndexFunc(s.tabs, func(t *Tab) bool { return t.ID == id })
}

func (s *Strip) find(id string) *Tab {
	if i := s.index(id); i >= 0 {
		return s.tabs[i]
	}
	return nil
}

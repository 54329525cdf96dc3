package panel

import (
	"fmt"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/deskfolio/internal/browser"
	"github.com/Gaurav-Gosain/deskfolio/internal/config"
	"github.com/charmbracelet/x/ansi"
)

const (
	maxTabTitle = 16
	// tab strip, address bar and status line
	browserChrome = 3
)

type tabRegion struct {
	id           string
	start, close int // close is the column of the "x"
	end          int
}

// BrowserPanel is a tabbed text browser.
type BrowserPanel struct {
	env   Env
	strip *browser.Strip

	editing bool
	draft   string
	linkBuf string

	regions []tabRegion
	addAt   int
	page    int // rows available to the page
	total   int // wrapped lines of the active page
	closing bool
}

// NewBrowser creates a browser with one tab at url. An empty url opens the
// home page.
func NewBrowser(env Env, url, title string) *BrowserPanel {
	p := &BrowserPanel{env: env, strip: browser.NewStrip(), addAt: -1}
	if url = browser.NormalizeURL(url); url == "" {
		url = env.HomeURL
		title = ""
	}
	p.strip.AddTab(url, title)
	return p
}

// Strip exposes the tab strip.
func (p *BrowserPanel) Strip() *browser.Strip { return p.strip }

func (p *BrowserPanel) Title() string {
	if t, ok := p.strip.Active(); ok && t.Title != "" {
		return t.Title
	}
	return p.env.Catalog.Title(Browser)
}

// Init starts loading the first tab.
func (p *BrowserPanel) Init() tea.Cmd {
	t, ok := p.strip.Active()
	if !ok {
		return nil
	}
	return p.env.Fetcher.Load(t.ID, t.URL)
}

// Busy reports whether the active tab is loading.
func (p *BrowserPanel) Busy() bool { return p.strip.Loading() }

// WantsClose is true once the last tab was closed.
func (p *BrowserPanel) WantsClose() bool { return p.closing }

// OpenTab adds a tab for url, activates it and starts loading it.
func (p *BrowserPanel) OpenTab(url, title string) tea.Cmd {
	if url = browser.NormalizeURL(url); url == "" {
		url = p.env.HomeURL
	}
	id := p.strip.AddTab(url, title)
	p.editing, p.linkBuf = false, ""
	return p.env.Fetcher.Load(id, url)
}

// CloseTab closes a tab. Closing the last one closes the window.
func (p *BrowserPanel) CloseTab(id string) {
	if p.strip.CloseTab(id) {
		p.closing = true
	}
}

func (p *BrowserPanel) navigate(url string) tea.Cmd {
	url = browser.NormalizeURL(url)
	if url == "" {
		return nil
	}
	id := p.strip.ActiveID()
	if id == "" {
		return p.OpenTab(url, "")
	}
	p.strip.Navigate(id, url)
	return p.env.Fetcher.Load(id, url)
}

// Reload fetches the active tab again.
func (p *BrowserPanel) Reload() tea.Cmd {
	return p.navigate(p.strip.Address())
}

func (p *BrowserPanel) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case browser.LoadedMsg:
		t, ok := p.strip.Tab(msg.TabID)
		if !ok || t.State != browser.Loading || t.URL != msg.URL {
			return nil
		}
		p.strip.Complete(msg.TabID, msg.Page, msg.Err)
		if msg.Err != nil {
			return Notify("error", "Failed to load %s", msg.URL)
		}
	case tea.KeyPressMsg:
		if p.editing {
			return p.editKey(msg)
		}
		return p.key(msg)
	case ClickMsg:
		return p.click(msg)
	case WheelMsg:
		p.strip.ScrollBy(msg.Delta, p.total-p.page)
	}
	return nil
}

func (p *BrowserPanel) editKey(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "enter":
		p.editing = false
		return p.navigate(p.draft)
	case "esc":
		p.editing = false
	case "backspace":
		if r := []rune(p.draft); len(r) > 0 {
			p.draft = string(r[:len(r)-1])
		}
	case "ctrl+u":
		p.draft = ""
	default:
		p.draft += msg.Text
	}
	return nil
}

func (p *BrowserPanel) key(msg tea.KeyPressMsg) tea.Cmd {
	key := msg.String()
	switch key {
	case "ctrl+t":
		return p.OpenTab(p.env.HomeURL, "")
	case "ctrl+w":
		p.CloseTab(p.strip.ActiveID())
		return nil
	case "ctrl+tab", "ctrl+pgdown":
		p.strip.Next()
		return nil
	case "ctrl+shift+tab", "ctrl+pgup":
		p.strip.Prev()
		return nil
	case "ctrl+l":
		p.startEditing()
		return nil
	case "r", "ctrl+r", "f5":
		return p.Reload()
	case "esc":
		p.linkBuf = ""
		return nil
	case "backspace":
		if p.linkBuf != "" {
			p.linkBuf = p.linkBuf[:len(p.linkBuf)-1]
		}
		return nil
	case "enter":
		return p.followLink()
	}
	if len(key) == 1 && key[0] >= '0' && key[0] <= '9' {
		if p.linkBuf != "" || key != "0" {
			p.linkBuf += key
		}
		return nil
	}
	if d, ok := scrollKey(key, p.page); ok {
		p.strip.ScrollBy(d, p.total-p.page)
	}
	return nil
}

func (p *BrowserPanel) startEditing() {
	p.editing = true
	p.draft = p.strip.Address()
	p.linkBuf = ""
}

func (p *BrowserPanel) followLink() tea.Cmd {
	if p.linkBuf == "" {
		return nil
	}
	n, _ := strconv.Atoi(p.linkBuf)
	p.linkBuf = ""
	t, ok := p.strip.Active()
	if !ok || n < 1 || n > len(t.Page.Links) {
		return Notify("warning", "No link [%d] on this page", n)
	}
	return p.navigate(t.Page.Links[n-1].URL)
}

func (p *BrowserPanel) click(msg ClickMsg) tea.Cmd {
	switch msg.Y {
	case 0:
		for _, r := range p.regions {
			if msg.X < r.start || msg.X >= r.end {
				continue
			}
			if msg.X == r.close {
				p.CloseTab(r.id)
			} else {
				p.strip.SwitchTab(r.id)
			}
			return nil
		}
		if p.addAt >= 0 && msg.X >= p.addAt && msg.X < p.addAt+3 {
			return p.OpenTab(p.env.HomeURL, "")
		}
	case 1:
		p.startEditing()
	}
	return nil
}

func (p *BrowserPanel) View(width, height int) string {
	p.page = max(height-browserChrome, 0)
	lines := []string{p.tabRow(width), p.addressRow(width)}

	active, ok := p.strip.Active()
	var body []string
	if ok {
		for _, l := range active.Page.Lines {
			if h, isHeading := strings.CutPrefix(l, "# "); isHeading {
				for _, w := range wrap(h, width-1) {
					body = append(body, " "+headingStyle().Render(w))
				}
				continue
			}
			for _, w := range wrap(l, width-1) {
				body = append(body, " "+w)
			}
		}
	}
	p.total = len(body)
	// keep the stored offset valid after a resize
	p.strip.ScrollBy(0, p.total-p.page)
	if ok {
		active, _ = p.strip.Active()
		start := min(active.Scroll, len(body))
		body = body[start:min(len(body), start+p.page)]
	}
	for len(body) < p.page {
		body = append(body, "")
	}
	lines = append(lines, body...)
	lines = append(lines, p.statusRow(active, ok))
	return fit(lines, width, height, 0)
}

func (p *BrowserPanel) tabRow(width int) string {
	p.regions = p.regions[:0]
	p.addAt = -1
	var b strings.Builder
	x := 0
	activeID := p.strip.ActiveID()
	for _, t := range p.strip.Tabs() {
		title := ansi.Truncate(t.Title, maxTabTitle, "…")
		if t.State == browser.Loading {
			title = config.GetLoadingIndicator() + " " + title
		}
		label := " " + title + " "
		cell := label + config.GetTabClose() + " "
		w := ansi.StringWidth(cell)
		if x+w > width-3 {
			break
		}
		p.regions = append(p.regions, tabRegion{id: t.ID, start: x, close: x + ansi.StringWidth(label), end: x + w})
		if t.ID == activeID {
			b.WriteString(selectedStyle().Render(cell))
		} else {
			b.WriteString(dimStyle().Render(cell))
		}
		b.WriteString("│")
		x += w + 1
	}
	p.addAt = x
	b.WriteString(accentStyle().Render(" " + config.TabAdd + " "))
	return b.String()
}

func (p *BrowserPanel) addressRow(width int) string {
	indicator := "  "
	if p.strip.Loading() {
		indicator = config.GetLoadingIndicator() + " "
	}
	if p.editing {
		return indicator + accentStyle().Render("› ") + p.draft + "█"
	}
	addr := p.strip.Address()
	return indicator + "  " + ansi.Truncate(addr, max(width-4, 1), "…")
}

func (p *BrowserPanel) statusRow(t browser.Tab, ok bool) string {
	var s string
	switch {
	case !ok:
		s = "no tabs"
	case p.editing:
		s = "enter go · esc cancel"
	case p.linkBuf != "":
		s = fmt.Sprintf("follow link [%s] · enter", p.linkBuf)
	case t.State == browser.Loading:
		s = "Loading " + t.URL
	case t.Err != nil:
		s = errorStyle().Render("Error: " + t.Err.Error())
	default:
		s = fmt.Sprintf("%d links · tab %d/%d · ctrl+l address · r reload", len(t.Page.Links), p.tabIndex()+1, p.strip.Len())
	}
	return dimStyle().Render(s)
}

func (p *BrowserPanel) tabIndex() int {
	for i, t := range p.strip.Tabs() {
		if t.ID == p.strip.ActiveID() {
			return i
		}
	}
	return 0
}

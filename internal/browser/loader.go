package browser

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"golang.org/x/net/html"
)

// maxBody caps how much of a response is read.
const maxBody = 4 << 20

// DefaultUserAgent is sent when the config leaves the user agent empty.
const DefaultUserAgent = "deskfolio/1.0 (+terminal)"

// ErrEmptyURL is returned when asked to load an empty address.
var ErrEmptyURL = errors.New("empty url")

// Link is a hyperlink found on a page.
type Link struct {
	Text string
	URL  string
}

// Page is a fetched document flattened to text lines.
type Page struct {
	Title string
	Lines []string
	Links []Link
}

// LoadedMsg reports the end of a tab load.
type LoadedMsg struct {
	TabID string
	URL   string
	Page  Page
	Err   error
}

// Fetcher downloads and flattens pages.
type Fetcher struct {
	Client    *http.Client
	UserAgent string
}

// NewFetcher returns a fetcher with the given request timeout.
func NewFetcher(timeout time.Duration, userAgent string) *Fetcher {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &Fetcher{
		Client:    &http.Client{Timeout: timeout},
		UserAgent: userAgent,
	}
}

// Load returns a command that fetches rawURL for a tab.
func (f *Fetcher) Load(tabID, rawURL string) tea.Cmd {
	return func() tea.Msg {
		page, err := f.Fetch(context.Background(), rawURL)
		return LoadedMsg{TabID: tabID, URL: rawURL, Page: page, Err: err}
	}
}

// Fetch downloads rawURL and converts it into a Page.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (Page, error) {
	target := NormalizeURL(rawURL)
	if target == "" {
		return Page{}, ErrEmptyURL
	}
	if strings.HasPrefix(target, "about:") {
		return aboutPage(target), nil
	}

	base, err := url.Parse(target)
	if err != nil {
		return Page{}, fmt.Errorf("parse url: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return Page{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", f.UserAgent)
	req.Header.Set("Accept", "text/html,text/plain;q=0.9,*/*;q=0.5")

	resp, err := f.Client.Do(req)
	if err != nil {
		return Page{}, fmt.Errorf("failed to connect: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return Page{}, fmt.Errorf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	body := io.LimitReader(resp.Body, maxBody)
	mediaType, _, _ := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	if mediaType == "text/plain" {
		raw, err := io.ReadAll(body)
		if err != nil {
			return Page{}, fmt.Errorf("read response: %w", err)
		}
		return Page{Title: base.Host, Lines: strings.Split(strings.TrimRight(string(raw), "\n"), "\n")}, nil
	}

	page, err := ParsePage(body, base)
	if err != nil {
		return Page{}, err
	}
	if page.Title == "" {
		page.Title = base.Host
	}
	return page, nil
}

// NormalizeURL trims s and adds https:// when it has no scheme.
func NormalizeURL(s string) string {
	s = strings.TrimSpace(s)
	switch {
	case s == "":
		return ""
	case strings.HasPrefix(s, "about:"),
		strings.HasPrefix(s, "http://"),
		strings.HasPrefix(s, "https://"):
		return s
	}
	return "https://" + s
}

// ErrorPage is shown in a tab whose load failed.
func ErrorPage(target string, err error) Page {
	return Page{
		Title: "Error",
		Lines: []string{
			"# Failed to load page",
			"",
			"URL:   " + target,
			"Error: " + err.Error(),
			"",
			"• Check your internet connection",
			"• Verify the address is correct",
			"• Some sites block text-only browsers",
		},
	}
}

func aboutPage(target string) Page {
	switch target {
	case "about:blank":
		return Page{Title: "New Tab"}
	}
	return Page{
		Title: "About",
		Lines: []string{
			"# deskfolio browser",
			"",
			"A text-only browser. Type an address with ctrl+l.",
		},
	}
}

// ParsePage flattens an HTML document into text lines. Relative links are
// resolved against base.
func ParsePage(r io.Reader, base *url.URL) (Page, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return Page{}, fmt.Errorf("parse html: %w", err)
	}
	f := &flattener{base: base}
	f.walk(doc)
	f.flush()
	return Page{Title: f.title, Lines: trimBlank(f.lines), Links: f.links}, nil
}

type flattener struct {
	base   *url.URL
	title  string
	lines  []string
	cur    strings.Builder
	links  []Link
	pre    int
	prefix string
}

var skipped = map[string]bool{
	"script": true, "style": true, "noscript": true, "template": true,
	"svg": true, "iframe": true, "head": true,
}

var blocks = map[string]bool{
	"p": true, "div": true, "section": true, "article": true, "header": true,
	"footer": true, "main": true, "nav": true, "aside": true, "ul": true,
	"ol": true, "table": true, "tr": true, "blockquote": true, "form": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"li": true, "pre": true, "hr": true, "br": true, "dt": true, "dd": true,
}

func (f *flattener) walk(n *html.Node) {
	switch n.Type {
	case html.ElementNode:
		tag := n.Data
		if tag == "title" && f.title == "" {
			f.title = strings.Join(strings.Fields(textOf(n)), " ")
			return
		}
		if tag == "head" {
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				if c.Type == html.ElementNode && c.Data == "title" {
					f.walk(c)
				}
			}
			return
		}
		if skipped[tag] {
			return
		}
		if blocks[tag] {
			f.flush()
		}
		switch tag {
		case "h1", "h2", "h3", "h4", "h5", "h6":
			f.prefix = strings.Repeat("#", int(tag[1]-'0')) + " "
		case "li":
			f.prefix = "• "
		case "hr":
			f.lines = append(f.lines, "────────")
		case "pre":
			f.pre++
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			f.walk(c)
		}
		if tag == "a" {
			f.addLink(n)
		}
		if tag == "pre" {
			f.pre--
		}
		if blocks[tag] {
			f.flush()
			f.prefix = ""
			if tag == "p" || (len(tag) == 2 && tag[0] == 'h' && tag[1] >= '1' && tag[1] <= '6') {
				f.blank()
			}
		}
	case html.TextNode:
		f.text(n.Data)
	default:
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			f.walk(c)
		}
	}
}

func (f *flattener) text(s string) {
	if f.pre > 0 {
		parts := strings.Split(s, "\n")
		for i, p := range parts {
			if i > 0 {
				f.flush()
			}
			f.write(p)
		}
		return
	}
	for _, word := range strings.Fields(s) {
		if f.cur.Len() > 0 {
			f.cur.WriteByte(' ')
		}
		f.write(word)
	}
}

func (f *flattener) write(s string) {
	if f.cur.Len() == 0 && f.prefix != "" {
		f.cur.WriteString(f.prefix)
		f.prefix = ""
	}
	f.cur.WriteString(s)
}

func (f *flattener) addLink(n *html.Node) {
	var href string
	for _, a := range n.Attr {
		if a.Key == "href" {
			href = strings.TrimSpace(a.Val)
		}
	}
	if href == "" || strings.HasPrefix(href, "#") || strings.HasPrefix(href, "javascript:") {
		return
	}
	if ref, err := url.Parse(href); err == nil && f.base != nil {
		href = f.base.ResolveReference(ref).String()
	}
	text := strings.Join(strings.Fields(textOf(n)), " ")
	if text == "" {
		text = href
	}
	f.links = append(f.links, Link{Text: text, URL: href})
	f.write(fmt.Sprintf("[%d]", len(f.links)))
}

func (f *flattener) flush() {
	if f.cur.Len() > 0 {
		f.lines = append(f.lines, f.cur.String())
		f.cur.Reset()
		f.prefix = ""
	}
}

func (f *flattener) blank() {
	if n := len(f.lines); n > 0 && f.lines[n-1] != "" {
		f.lines = append(f.lines, "")
	}
}

func textOf(n *html.Node) string {
	var b strings.Builder
	var rec func(*html.Node)
	rec = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			b.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			rec(c)
		}
	}
	rec(n)
	return b.String()
}

func trimBlank(lines []string) []string {
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for len(lines) > 0 && lines[0] == "" {
		lines = lines[1:]
	}
	return lines
}

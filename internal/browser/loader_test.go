package browser

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"slices"
	"strings"
	"testing"
	"time"
)

const samplePage = `<!doctype html>
<html><head><title> Hello
 World </title><style>body{}</style></head>
<body><h1>Title</h1><p>Some <a href="/x">link</a> text.</p>
<ul><li>One</li><li>Two</li></ul><script>bad()</script>
<a href="#top">skip</a></body></html>`

func TestParsePage(t *testing.T) {
	base, _ := url.Parse("https://example.com/dir/")
	page, err := ParsePage(strings.NewReader(samplePage), base)
	if err != nil {
		t.Fatalf("ParsePage: %v", err)
	}
	if page.Title != "Hello World" {
		t.Errorf("title = %q", page.Title)
	}
	want := []string{"# Title", "", "Some link[1] text.", "", "• One", "• Two", "skip"}
	if !slices.Equal(page.Lines, want) {
		t.Errorf("lines = %q, want %q", page.Lines, want)
	}
	if len(page.Links) != 1 || page.Links[0].URL != "https://example.com/x" || page.Links[0].Text != "link" {
		t.Errorf("links = %+v", page.Links)
	}
}

func TestNormalizeURL(t *testing.T) {
	tests := []struct{ in, want string }{
		{"", ""},
		{"  example.com ", "https://example.com"},
		{"http://x.dev", "http://x.dev"},
		{"https://x.dev/a", "https://x.dev/a"},
		{"about:blank", "about:blank"},
	}
	for _, tt := range tests {
		if got := NormalizeURL(tt.in); got != tt.want {
			t.Errorf("NormalizeURL(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFetch(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		switch r.URL.Path {
		case "/":
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			_, _ = w.Write([]byte(samplePage))
		case "/plain":
			w.Header().Set("Content-Type", "text/plain")
			_, _ = w.Write([]byte("line one\nline two\n"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	f := NewFetcher(5*time.Second, "test-agent")

	page, err := f.Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if page.Title != "Hello World" {
		t.Errorf("title = %q", page.Title)
	}
	if gotUA != "test-agent" {
		t.Errorf("user agent = %q", gotUA)
	}

	page, err = f.Fetch(context.Background(), srv.URL+"/plain")
	if err != nil {
		t.Fatalf("Fetch plain: %v", err)
	}
	if !slices.Equal(page.Lines, []string{"line one", "line two"}) {
		t.Errorf("plain lines = %q", page.Lines)
	}

	if _, err := f.Fetch(context.Background(), srv.URL+"/missing"); err == nil || !strings.Contains(err.Error(), "404") {
		t.Errorf("missing page err = %v, want HTTP 404", err)
	}
	if _, err := f.Fetch(context.Background(), "  "); err != ErrEmptyURL {
		t.Errorf("empty url err = %v", err)
	}
}

func TestLoadCompletesTab(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(samplePage))
	}))
	defer srv.Close()

	s := NewStrip()
	id := s.AddTab(srv.URL, "")
	msg, ok := NewFetcher(0, "").Load(id, srv.URL)().(LoadedMsg)
	if !ok {
		t.Fatal("Load did not return a LoadedMsg")
	}
	if msg.TabID != id || msg.Err != nil {
		t.Fatalf("msg = %+v", msg)
	}
	if !s.Complete(msg.TabID, msg.Page, msg.Err) {
		t.Error("active tab completion should clear the indicator")
	}
	if tab, _ := s.Active(); tab.Title != "Hello World" {
		t.Errorf("tab title = %q", tab.Title)
	}
}

func TestAboutPages(t *testing.T) {
	f := NewFetcher(time.Second, "")
	page, err := f.Fetch(context.Background(), "about:blank")
	if err != nil || page.Title != "New Tab" {
		t.Errorf("about:blank = %+v, %v", page, err)
	}
}

package panel

import (
	"errors"
	"strings"
	"testing"

	"github.com/Gaurav-Gosain/deskfolio/internal/browser"
)

func loaded(b *BrowserPanel, page browser.Page) {
	t, _ := b.Strip().Active()
	b.Update(browser.LoadedMsg{TabID: t.ID, URL: t.URL, Page: page})
}

func TestBrowserLoadLifecycle(t *testing.T) {
	env, _ := testEnv(t)
	b := NewBrowser(env, "", "")

	if !b.Busy() {
		t.Fatal("new browser should be loading")
	}
	if b.Init() == nil {
		t.Fatal("Init should start a load")
	}
	loaded(b, browser.Page{Title: "Home", Lines: []string{"# Welcome", "hello"}})
	if b.Busy() {
		t.Error("load did not clear the indicator")
	}
	if b.Title() != "Home" {
		t.Errorf("title = %q, want Home", b.Title())
	}
	if view := b.View(40, 8); !strings.Contains(view, "Welcome") {
		t.Errorf("page not rendered:\n%s", view)
	}
}

func TestBrowserIgnoresStaleLoads(t *testing.T) {
	env, _ := testEnv(t)
	b := NewBrowser(env, "https://a.example", "")
	first, _ := b.Strip().Active()

	b.Update(key("ctrl+l"))
	b.draft = "https://b.example"
	b.Update(key("enter"))

	b.Update(browser.LoadedMsg{TabID: first.ID, URL: "https://a.example", Page: browser.Page{Title: "A"}})
	if !b.Busy() {
		t.Error("stale load completed the tab")
	}
	b.Update(browser.LoadedMsg{TabID: first.ID, URL: "https://b.example", Page: browser.Page{Title: "B"}})
	if b.Busy() || b.Title() != "B" {
		t.Errorf("busy=%v title=%q after current load", b.Busy(), b.Title())
	}
}

func TestBrowserLoadErrorNotifies(t *testing.T) {
	env, _ := testEnv(t)
	b := NewBrowser(env, "https://down.example", "")
	tab, _ := b.Strip().Active()

	msgs := runCmd(b.Update(browser.LoadedMsg{TabID: tab.ID, URL: tab.URL, Err: errors.New("refused")}))
	if len(msgs) != 1 {
		t.Fatalf("got %d messages, want a notification", len(msgs))
	}
	if n := msgs[0].(NotifyMsg); n.Type != "error" {
		t.Errorf("notification type = %q", n.Type)
	}
	got, _ := b.Strip().Active()
	if got.Page.Title != "Error" {
		t.Errorf("error page not shown: %+v", got.Page)
	}
}

func TestBrowserTabKeys(t *testing.T) {
	env, _ := testEnv(t)
	b := NewBrowser(env, "https://a.example", "")

	b.Update(key("ctrl+t"))
	if b.Strip().Len() != 2 {
		t.Fatalf("ctrl+t: %d tabs", b.Strip().Len())
	}
	second := b.Strip().ActiveID()

	b.Update(key("ctrl+w"))
	if b.Strip().Len() != 1 || b.Strip().ActiveID() == second {
		t.Errorf("ctrl+w did not close the active tab")
	}
	b.Update(key("ctrl+w"))
	if !b.WantsClose() {
		t.Error("closing the last tab should close the window")
	}
}

func TestBrowserTabClicks(t *testing.T) {
	env, _ := testEnv(t)
	b := NewBrowser(env, "https://a.example", "A")
	b.OpenTab("https://b.example", "B")
	b.View(80, 10)

	if len(b.regions) != 2 {
		t.Fatalf("regions = %+v", b.regions)
	}
	first := b.regions[0]

	b.Update(ClickMsg{X: first.start + 1, Y: 0})
	if b.Strip().ActiveID() != first.id {
		t.Error("clicking a tab did not switch to it")
	}

	b.Update(ClickMsg{X: b.addAt + 1, Y: 0})
	if b.Strip().Len() != 3 {
		t.Errorf("clicking + gave %d tabs", b.Strip().Len())
	}

	b.View(80, 10)
	b.Update(ClickMsg{X: b.regions[0].close, Y: 0})
	if _, ok := b.Strip().Tab(first.id); ok {
		t.Error("clicking x did not close the tab")
	}
}

func TestBrowserFollowLink(t *testing.T) {
	env, _ := testEnv(t)
	b := NewBrowser(env, "https://a.example", "")
	loaded(b, browser.Page{
		Title: "A",
		Lines: []string{"see [1] and [2]"},
		Links: []browser.Link{{Text: "one", URL: "https://one.example"}, {Text: "two", URL: "https://two.example"}},
	})

	b.Update(key("2"))
	b.Update(key("enter"))
	if got := b.Strip().Address(); got != "https://two.example" {
		t.Errorf("address = %q, want the second link", got)
	}
	if !b.Busy() {
		t.Error("following a link should start a load")
	}

	b.Update(key("9"))
	msgs := runCmd(b.Update(key("enter")))
	if len(msgs) != 1 {
		t.Error("missing link should notify")
	}
}

func TestBrowserScroll(t *testing.T) {
	env, _ := testEnv(t)
	b := NewBrowser(env, "https://a.example", "")
	lines := make([]string, 30)
	for i := range lines {
		lines[i] = "line"
	}
	loaded(b, browser.Page{Title: "Long", Lines: lines})
	b.View(40, 13) // 10 page rows

	b.Update(key("down"))
	b.Update(WheelMsg{Delta: 3})
	if tab, _ := b.Strip().Active(); tab.Scroll != 4 {
		t.Errorf("scroll = %d, want 4", tab.Scroll)
	}
	b.Update(key("G"))
	if tab, _ := b.Strip().Active(); tab.Scroll != 20 {
		t.Errorf("scroll = %d, want 20", tab.Scroll)
	}
}

package panel

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/deskfolio/internal/browser"
	"github.com/Gaurav-Gosain/deskfolio/internal/catalog"
	"github.com/Gaurav-Gosain/deskfolio/internal/prefs"
	"github.com/Gaurav-Gosain/deskfolio/internal/request"
	"github.com/charmbracelet/x/ansi"
)

// testEnv returns an environment over the built-in catalog that records
// every open request.
func testEnv(t *testing.T) (Env, *[]request.Request) {
	t.Helper()
	cat, err := catalog.Default()
	if err != nil {
		t.Fatalf("catalog.Default: %v", err)
	}
	svc, _ := prefs.NewService(context.Background(), prefs.NewMemory())
	var sent []request.Request
	env := Env{
		Requests: request.SenderFunc(func(r request.Request) bool {
			sent = append(sent, r)
			return true
		}),
		Prefs:   svc,
		Catalog: cat,
		Fetcher: browser.NewFetcher(0, ""),
		HomeURL: "about:blank",
		Brand:   "deskfolio",
	}
	return env, &sent
}

func key(s string) tea.KeyPressMsg {
	switch s {
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case "esc":
		return tea.KeyPressMsg{Code: tea.KeyEscape}
	case "up":
		return tea.KeyPressMsg{Code: tea.KeyUp}
	case "down":
		return tea.KeyPressMsg{Code: tea.KeyDown}
	case "backspace":
		return tea.KeyPressMsg{Code: tea.KeyBackspace}
	}
	if rest, ok := strings.CutPrefix(s, "ctrl+"); ok {
		return tea.KeyPressMsg{Code: rune(rest[0]), Mod: tea.ModCtrl}
	}
	return tea.KeyPressMsg{Code: rune(s[0]), Text: s}
}

func typeText(p Panel, s string) {
	for _, r := range s {
		p.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
}

func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, runCmd(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func TestRegistryBuildsEveryApp(t *testing.T) {
	env, _ := testEnv(t)
	r := NewRegistry(env)

	for _, id := range []string{Terminal, About, Contact, Projects, Browser, Settings, System} {
		p, ok := r.Build(request.App(id, ""))
		if !ok || p == nil {
			t.Errorf("Build(%q) failed", id)
			continue
		}
		if got := p.View(40, 10); strings.Count(got, "\n") != 9 {
			t.Errorf("%s view has %d rows, want 10", id, strings.Count(got, "\n")+1)
		}
	}
	for _, pr := range env.Catalog.Projects {
		if !r.Has(pr.ID) {
			t.Errorf("project %q not registered", pr.ID)
		}
	}
	if _, ok := r.Build(request.App("solitaire", "")); ok {
		t.Error("unknown app should not build")
	}
}

func TestRegistryOpenURLBuildsBrowser(t *testing.T) {
	env, _ := testEnv(t)
	p, ok := NewRegistry(env).Build(request.URL("example.com", "Example"))
	if !ok {
		t.Fatal("OpenURL request did not build")
	}
	b, isBrowser := p.(*BrowserPanel)
	if !isBrowser {
		t.Fatalf("built %T, want *BrowserPanel", p)
	}
	if got := b.Strip().Address(); got != "https://example.com" {
		t.Errorf("address = %q", got)
	}
	if b.Title() != "Example" {
		t.Errorf("title = %q", b.Title())
	}
}

func TestFitClipsToBox(t *testing.T) {
	out := fit([]string{"a very long line that overflows", "b", "c", "d"}, 10, 3, 1)
	rows := strings.Split(out, "\n")
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}
	for _, r := range rows {
		if w := ansi.StringWidth(r); w > 10 {
			t.Errorf("row %q is %d wide", r, w)
		}
	}
	if !strings.HasPrefix(rows[1], " b") {
		t.Errorf("row 1 = %q, want padded b", rows[1])
	}
}

func TestScroller(t *testing.T) {
	var s scroller
	lines := []string{"1", "2", "3", "4", "5"}
	s.by(10, len(lines), 2)
	if s.offset != 3 {
		t.Errorf("offset = %d, want 3", s.offset)
	}
	if got := s.visible(lines, 2); len(got) != 2 || got[0] != "4" {
		t.Errorf("visible = %v", got)
	}
	s.by(-10, len(lines), 2)
	if s.offset != 0 {
		t.Errorf("offset = %d, want 0", s.offset)
	}
}

func TestTerminalCommands(t *testing.T) {
	env, sent := testEnv(t)
	p := NewTerminal(env)

	tests := []struct {
		input string
		want  string
	}{
		{"help", "Available commands:"},
		{"  WHOAMI ", env.Catalog.Owner.Name},
		{"projects", env.Catalog.Projects[0].Name},
		{"contact", "Email:"},
		{"sudo rm -rf /", "Command not found: sudo rm -rf /"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			p.Run(tt.input)
			if out := strings.Join(p.lines, "\n"); !strings.Contains(out, tt.want) {
				t.Errorf("output after %q does not contain %q", tt.input, tt.want)
			}
		})
	}

	p.Run("clear")
	if len(p.lines) != 1 || p.lines[0] != "Terminal cleared." {
		t.Errorf("after clear: %v", p.lines)
	}

	p.Run("open github.com")
	p.Run("open about")
	if len(*sent) != 2 {
		t.Fatalf("sent %d requests, want 2", len(*sent))
	}
	if r := (*sent)[0]; r.Kind != request.OpenURL || r.URL != "https://github.com" {
		t.Errorf("open url sent %+v", r)
	}
	if r := (*sent)[1]; r.Kind != request.OpenApp || r.AppID != About {
		t.Errorf("open app sent %+v", r)
	}

	p.Run("exit")
	if !p.WantsClose() {
		t.Error("exit should close the window")
	}
}

func TestTerminalTypingAndHistory(t *testing.T) {
	env, _ := testEnv(t)
	p := NewTerminal(env)

	typeText(p, "skills")
	p.Update(key("enter"))
	typeText(p, "help")
	p.Update(key("enter"))

	p.Update(key("up"))
	if p.input != "help" {
		t.Errorf("first recall = %q, want help", p.input)
	}
	p.Update(key("up"))
	if p.input != "skills" {
		t.Errorf("second recall = %q, want skills", p.input)
	}
	p.Update(key("down"))
	p.Update(key("down"))
	if p.input != "" {
		t.Errorf("recall past the end = %q, want empty", p.input)
	}

	typeText(p, "ab")
	p.Update(key("backspace"))
	if p.input != "a" {
		t.Errorf("input = %q, want a", p.input)
	}

	p.Run("")
	if last := p.lines[len(p.lines)-1]; last != p.prompt() {
		t.Errorf("empty command printed %q", last)
	}
}

func TestContactLinks(t *testing.T) {
	env, sent := testEnv(t)
	p := NewContact(env)

	// Rows follow the catalog order: Email, LinkedIn, ...
	msgs := runCmd(p.Update(ClickMsg{X: 3, Y: contactHeader}))
	if len(msgs) != 1 {
		t.Fatalf("mailto click produced %d messages", len(msgs))
	}
	if n, ok := msgs[0].(NotifyMsg); !ok || !strings.Contains(n.Message, "@") {
		t.Errorf("mailto click = %#v, want address notification", msgs[0])
	}

	p.Update(key("down"))
	p.Update(key("enter"))
	if len(*sent) != 1 || (*sent)[0].Kind != request.OpenURL {
		t.Fatalf("sent = %+v, want one URL request", *sent)
	}
	if (*sent)[0].Title != "LinkedIn" {
		t.Errorf("title = %q", (*sent)[0].Title)
	}

	resume := len(env.Catalog.Contact)
	msgs = runCmd(p.Update(ClickMsg{Y: contactHeader + resume}))
	if n, ok := msgs[0].(NotifyMsg); !ok || !strings.Contains(n.Message, "coming soon") {
		t.Errorf("resume = %#v", msgs[0])
	}
}

func TestProjectListOpensProjectWindow(t *testing.T) {
	env, sent := testEnv(t)
	p := NewProjectList(env)
	p.View(40, 10)

	p.Update(key("down"))
	p.Update(key("enter"))
	want := env.Catalog.Projects[1]
	if len(*sent) != 1 {
		t.Fatalf("sent %d requests", len(*sent))
	}
	if r := (*sent)[0]; r.Kind != request.OpenApp || r.AppID != want.ID || r.Title != want.Name {
		t.Errorf("request = %+v, want %s", r, want.ID)
	}

	p.Update(ClickMsg{Y: projectListHeader})
	if r := (*sent)[1]; r.AppID != env.Catalog.Projects[0].ID {
		t.Errorf("click opened %q", r.AppID)
	}
}

func TestProjectOpensRepoAndDemo(t *testing.T) {
	env, sent := testEnv(t)
	pr := env.Catalog.Projects[0]
	p := NewProject(env, pr)
	p.View(50, 12)

	p.Update(key("r"))
	p.Update(key("d"))
	if len(*sent) != 2 {
		t.Fatalf("sent %d requests, want 2", len(*sent))
	}
	if r := (*sent)[0]; r.URL != pr.Repo || r.Title != pr.Name+" - GitHub" {
		t.Errorf("repo request = %+v", r)
	}
	if r := (*sent)[1]; r.URL != pr.Demo || r.Title != pr.Name {
		t.Errorf("demo request = %+v", r)
	}

	msgs := runCmd(NewProject(env, catalog.Project{Name: "Secret"}).OpenRepo())
	if len(msgs) != 1 {
		t.Fatal("missing repo should notify")
	}
	if len(*sent) != 2 {
		t.Error("missing repo should not send a request")
	}
}

func TestSettingsChangePrefs(t *testing.T) {
	env, _ := testEnv(t)
	p := NewSettings(env)

	msgs := runCmd(p.Update(key("d")))
	changed, ok := msgs[0].(prefs.ChangedMsg)
	if !ok || changed.Prefs.DarkMode {
		t.Fatalf("toggle produced %#v, want dark mode off", msgs)
	}

	p.Update(key("+"))
	p.Update(key("+"))
	if got := env.Prefs.Current().FontSize; got != prefs.DefaultFontSize+2 {
		t.Errorf("font size = %d", got)
	}
	for range 10 {
		p.Update(key("-"))
	}
	if got := env.Prefs.Current().FontSize; got != prefs.MinFontSize {
		t.Errorf("font size = %d, want clamped to %d", got, prefs.MinFontSize)
	}

	p.Update(ClickMsg{X: 2, Y: 2 + rowReset})
	if env.Prefs.Current() != prefs.Defaults() {
		t.Errorf("after reset = %+v", env.Prefs.Current())
	}

	p.Update(key("l"))
	if !strings.Contains(p.View(46, 14), "Version") {
		t.Error("project info tab should show the version")
	}
	if w, h := p.FixedSize(); w != settingsWidth || h != settingsHeight {
		t.Errorf("fixed size = %dx%d", w, h)
	}
}

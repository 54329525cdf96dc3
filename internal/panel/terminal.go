package panel

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/deskfolio/internal/browser"
	"github.com/Gaurav-Gosain/deskfolio/internal/config"
	"github.com/Gaurav-Gosain/deskfolio/internal/request"
)

const notFoundHint = `Type "help" for available commands.`

// TerminalPanel is a small shell over the catalog's command table.
type TerminalPanel struct {
	env     Env
	lines   []string
	input   string
	history []string
	recall  int // index into history while browsing with up/down
	back    int // lines scrolled back from the bottom
	height  int
	closing bool
}

// NewTerminal creates a terminal showing the welcome banner.
func NewTerminal(env Env) *TerminalPanel {
	return &TerminalPanel{
		env:   env,
		lines: []string{"Terminal v1.0", notFoundHint, ""},
	}
}

func (p *TerminalPanel) Title() string { return p.env.Catalog.Title(Terminal) }

// WantsClose is true after "exit".
func (p *TerminalPanel) WantsClose() bool { return p.closing }

func (p *TerminalPanel) prompt() string {
	o := p.env.Catalog.Owner
	user, host := o.User, o.Host
	if user == "" {
		user = "guest"
	}
	if host == "" {
		host = "deskfolio"
	}
	return fmt.Sprintf("%s@%s:~$ ", user, host)
}

func (p *TerminalPanel) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		return p.handleKey(msg)
	case WheelMsg:
		p.scrollBack(-msg.Delta)
	}
	return nil
}

func (p *TerminalPanel) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "enter":
		line := p.input
		p.input = ""
		p.back = 0
		return p.Run(line)
	case "backspace":
		if r := []rune(p.input); len(r) > 0 {
			p.input = string(r[:len(r)-1])
		}
	case "ctrl+u":
		p.input = ""
	case "ctrl+l":
		p.lines = nil
	case "up":
		if p.recall > 0 {
			p.recall--
			p.input = p.history[p.recall]
		}
	case "down":
		if p.recall < len(p.history)-1 {
			p.recall++
			p.input = p.history[p.recall]
		} else {
			p.recall = len(p.history)
			p.input = ""
		}
	case "pgup":
		p.scrollBack(max(p.height-1, 1))
	case "pgdown":
		p.scrollBack(-max(p.height-1, 1))
	default:
		if msg.Text != "" {
			p.input += msg.Text
			p.back = 0
		}
	}
	return nil
}

func (p *TerminalPanel) scrollBack(n int) {
	p.back = min(max(p.back+n, 0), max(len(p.lines)-1, 0))
}

// Run executes one command line as if typed at the prompt.
func (p *TerminalPanel) Run(line string) tea.Cmd {
	p.print(p.prompt() + line)
	line = strings.TrimSpace(line)
	if line != "" {
		p.history = append(p.history, line)
		if len(p.history) > config.MaxTerminalHistory {
			p.history = p.history[len(p.history)-config.MaxTerminalHistory:]
		}
	}
	p.recall = len(p.history)
	if line == "" {
		return nil
	}

	name, arg, _ := strings.Cut(line, " ")
	name = strings.ToLower(name)
	arg = strings.TrimSpace(arg)

	switch name {
	case "clear":
		p.lines = []string{"Terminal cleared."}
		return nil
	case "exit":
		p.closing = true
		return nil
	case "help":
		p.print(p.help())
	case "projects":
		p.print(p.projects())
	case "contact":
		p.print(p.contact())
	case "apps":
		p.print(p.apps())
	case "open":
		return p.open(arg)
	default:
		if cmd, ok := p.env.Catalog.Command(name); ok && cmd.Output != "" {
			p.print(cmd.Output)
		} else {
			p.print(fmt.Sprintf("Command not found: %s\n%s", line, notFoundHint))
		}
	}
	return nil
}

func (p *TerminalPanel) print(text string) {
	p.lines = append(p.lines, strings.Split(text, "\n")...)
	if len(p.lines) > config.MaxTerminalLines {
		p.lines = p.lines[len(p.lines)-config.MaxTerminalLines:]
	}
}

func (p *TerminalPanel) help() string {
	var b strings.Builder
	b.WriteString("Available commands:")
	for _, c := range p.env.Catalog.Commands {
		fmt.Fprintf(&b, "\n%s - %s", c.Name, c.About)
	}
	b.WriteString("\napps - list apps\nopen <app|url> - open an app or web page\nexit - close this window")
	return b.String()
}

func (p *TerminalPanel) projects() string {
	var b strings.Builder
	b.WriteString("projects:")
	for _, pr := range p.env.Catalog.Projects {
		fmt.Fprintf(&b, "\n%s (%s) - %s", pr.Name, pr.ID, pr.Kind)
		if pr.Status != "" {
			fmt.Fprintf(&b, ", %s", pr.Status)
		}
	}
	return b.String()
}

func (p *TerminalPanel) contact() string {
	var b strings.Builder
	b.WriteString("contact information:")
	for _, c := range p.env.Catalog.Contact {
		fmt.Fprintf(&b, "\n%s: %s", c.Label, c.Value)
	}
	return b.String()
}

func (p *TerminalPanel) apps() string {
	var b strings.Builder
	b.WriteString("apps:")
	for _, a := range p.env.Catalog.Apps {
		fmt.Fprintf(&b, "\n%s - %s", a.ID, a.Name)
	}
	for _, pr := range p.env.Catalog.Projects {
		fmt.Fprintf(&b, "\n%s - %s", pr.ID, pr.Name)
	}
	return b.String()
}

func (p *TerminalPanel) open(target string) tea.Cmd {
	if target == "" {
		p.print("usage: open <app|url>")
		return nil
	}
	c := p.env.Catalog
	var req request.Request
	if _, isApp := c.App(target); isApp {
		req = request.App(target, c.Title(target))
	} else if _, isProject := c.Project(target); isProject {
		req = request.App(target, c.Title(target))
	} else {
		url := browser.NormalizeURL(target)
		req = request.URL(url, url)
	}
	if !p.env.Requests.Send(req) {
		p.print("open: desktop is busy, try again")
		return nil
	}
	p.print("opening " + req.Title + "...")
	return nil
}

func (p *TerminalPanel) View(width, height int) string {
	p.height = height
	pad := p.env.padding()
	inner := max(width-2*pad, 1)

	var wrapped []string
	for _, l := range p.lines {
		wrapped = append(wrapped, wrap(l, inner)...)
	}
	if p.back == 0 {
		input := accentStyle().Render(p.prompt()) + p.input + "█"
		wrapped = append(wrapped, input)
	}

	end := max(len(wrapped)-p.back, 0)
	start := max(end-height, 0)
	return fit(wrapped[start:end], width, height, pad)
}

package panel

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/deskfolio/internal/catalog"
	"github.com/Gaurav-Gosain/deskfolio/internal/request"
)

const projectListHeader = 2

// ProjectListPanel lists the catalog projects. Opening one asks the desktop
// for that project's window.
type ProjectListPanel struct {
	env      Env
	selected int
	scroll   scroller
	height   int
}

// NewProjectList creates the projects panel.
func NewProjectList(env Env) *ProjectListPanel {
	return &ProjectListPanel{env: env}
}

func (p *ProjectListPanel) Title() string { return p.env.Catalog.Title(Projects) }

func (p *ProjectListPanel) Update(msg tea.Msg) tea.Cmd {
	projects := p.env.Catalog.Projects
	if len(projects) == 0 {
		return nil
	}
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		switch msg.String() {
		case "up", "k":
			p.selected = max(p.selected-1, 0)
		case "down", "j":
			p.selected = min(p.selected+1, len(projects)-1)
		case "home", "g":
			p.selected = 0
		case "end", "G":
			p.selected = len(projects) - 1
		case "enter", "space", "o":
			return p.open(p.selected)
		}
	case ClickMsg:
		if i := msg.Y - projectListHeader + p.scroll.offset; msg.Y >= projectListHeader && i < len(projects) {
			p.selected = i
			return p.open(i)
		}
	case WheelMsg:
		p.selected = min(max(p.selected+msg.Delta, 0), len(projects)-1)
	}
	return nil
}

func (p *ProjectListPanel) open(i int) tea.Cmd {
	pr := p.env.Catalog.Projects[i]
	if !p.env.Requests.Send(request.App(pr.ID, pr.Name)) {
		return Notify("warning", "Could not open %s", pr.Name)
	}
	return nil
}

func (p *ProjectListPanel) View(width, height int) string {
	p.height = height
	rows := max(height-projectListHeader, 1)
	if p.selected < p.scroll.offset {
		p.scroll.offset = p.selected
	} else if p.selected >= p.scroll.offset+rows {
		p.scroll.offset = p.selected - rows + 1
	}

	lines := []string{headingStyle().Render("Projects"), dimStyle().Render("enter opens a project")}
	for i, pr := range p.env.Catalog.Projects {
		if i < p.scroll.offset {
			continue
		}
		line := pr.Name + "  " + dimStyle().Render(pr.Kind)
		if i == p.selected {
			line = selectedStyle().Render(pr.Name + "  " + pr.Kind)
		}
		lines = append(lines, line)
	}
	return fit(lines, width, height, p.env.padding())
}

// ProjectPanel shows one project.
type ProjectPanel struct {
	env     Env
	project catalog.Project
	scroll  scroller
	height  int
	total   int
	pad     int
}

// NewProject creates the window content for a catalog project.
func NewProject(env Env, project catalog.Project) *ProjectPanel {
	return &ProjectPanel{env: env, project: project}
}

func (p *ProjectPanel) Title() string { return p.project.Name }

func (p *ProjectPanel) Update(msg tea.Msg) tea.Cmd {
	if key, ok := msg.(tea.KeyPressMsg); ok {
		switch key.String() {
		case "r":
			return p.OpenRepo()
		case "d":
			return p.OpenDemo()
		}
	}
	if click, ok := msg.(ClickMsg); ok && click.Y == p.height-1 {
		// Footer: "[r] GitHub  [d] Demo"
		if click.X < p.pad+len("[r] GitHub")+1 {
			return p.OpenRepo()
		}
		return p.OpenDemo()
	}
	handleScroll(&p.scroll, msg, p.total, p.height-1)
	return nil
}

// OpenRepo opens the repository in the browser.
func (p *ProjectPanel) OpenRepo() tea.Cmd {
	if p.project.Repo == "" {
		return Notify("info", "%s has no public repository", p.project.Name)
	}
	return openLink(p.env, p.project.Repo, p.project.Name+" - GitHub", "")
}

// OpenDemo opens the live demo in the browser.
func (p *ProjectPanel) OpenDemo() tea.Cmd {
	if p.project.Demo == "" {
		return Notify("info", "%s has no demo", p.project.Name)
	}
	return openLink(p.env, p.project.Demo, p.project.Name, "")
}

func (p *ProjectPanel) View(width, height int) string {
	pad := p.env.padding()
	inner := width - 2*pad
	pr := p.project

	lines := []string{headingStyle().Render(pr.Name)}
	meta := pr.Kind
	if pr.Status != "" {
		meta += " · " + successStyle().Render(pr.Status)
	}
	lines = append(lines, meta, "")
	lines = append(lines, wrap(pr.Description, inner)...)
	if len(pr.Stack) > 0 {
		lines = append(lines, "", headingStyle().Render("Stack"))
		lines = append(lines, wrap(strings.Join(pr.Stack, ", "), inner)...)
	}
	if len(pr.Features) > 0 {
		lines = append(lines, "", headingStyle().Render("Features"))
		lines = append(lines, bullets(pr.Features, inner)...)
	}

	p.height, p.total, p.pad = height, len(lines), pad
	body := p.scroll.visible(lines, max(height-1, 0))
	for len(body) < height-1 {
		body = append(body, "")
	}
	footer := linkStyle().Render("[r] GitHub") + "  " + linkStyle().Render("[d] Demo")
	return fit(append(body, footer), width, height, pad)
}

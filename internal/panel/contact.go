package panel

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/deskfolio/internal/request"
)

const contactHeader = 2

type contactRow struct {
	label, value, url string
	action            func() tea.Cmd
}

// ContactPanel lists the ways to reach the owner plus quick actions.
type ContactPanel struct {
	env      Env
	rows     []contactRow
	selected int
}

// NewContact creates the contact panel.
func NewContact(env Env) *ContactPanel {
	p := &ContactPanel{env: env}
	for _, c := range env.Catalog.Contact {
		p.rows = append(p.rows, contactRow{label: c.Label, value: c.Value, url: c.URL})
	}
	p.rows = append(p.rows,
		contactRow{label: "Download Resume", action: func() tea.Cmd {
			return Notify("info", "Resume download coming soon")
		}},
		contactRow{label: "Send Message", action: p.sendMessage},
	)
	return p
}

func (p *ContactPanel) Title() string { return p.env.Catalog.Title(Contact) }

func (p *ContactPanel) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		switch msg.String() {
		case "up", "k", "shift+tab":
			p.selected = (p.selected - 1 + len(p.rows)) % len(p.rows)
		case "down", "j", "tab":
			p.selected = (p.selected + 1) % len(p.rows)
		case "enter", "space":
			return p.activate(p.selected)
		}
	case ClickMsg:
		if i := msg.Y - contactHeader; i >= 0 && i < len(p.rows) {
			p.selected = i
			return p.activate(i)
		}
	}
	return nil
}

func (p *ContactPanel) activate(i int) tea.Cmd {
	row := p.rows[i]
	if row.action != nil {
		return row.action()
	}
	return openLink(p.env, row.url, row.label, row.value)
}

func (p *ContactPanel) sendMessage() tea.Cmd {
	for _, c := range p.env.Catalog.Contact {
		if strings.HasPrefix(c.URL, "mailto:") {
			return Notify("info", "Write to %s", c.Value)
		}
	}
	return Notify("warning", "No email address configured")
}

// openLink sends web links to the browser. Mail links cannot be opened from
// a terminal, so the address is shown instead.
func openLink(env Env, url, title, fallback string) tea.Cmd {
	switch {
	case url == "":
		return nil
	case strings.HasPrefix(url, "mailto:"):
		return Notify("info", "Email: %s", strings.TrimPrefix(url, "mailto:"))
	case !env.Requests.Send(request.URL(url, title)):
		if fallback == "" {
			fallback = url
		}
		return Notify("warning", "Could not open %s", fallback)
	}
	return nil
}

func (p *ContactPanel) View(width, height int) string {
	lines := []string{headingStyle().Render("Get in touch"), ""}
	for i, row := range p.rows {
		line := row.label
		if row.value != "" {
			line = accentStyle().Render(row.label+": ") + row.value
		}
		if i == p.selected {
			line = selectedStyle().Render(row.plain())
		}
		lines = append(lines, line)
	}
	return fit(lines, width, height, p.env.padding())
}

func (r contactRow) plain() string {
	if r.value == "" {
		return r.label
	}
	return r.label + ": " + r.value
}

package panel

import (
	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/deskfolio/internal/catalog"
)

// AboutPanel shows the owner profile.
type AboutPanel struct {
	env    Env
	scroll scroller
	height int
	total  int
}

// NewAbout creates the profile panel.
func NewAbout(env Env) *AboutPanel {
	return &AboutPanel{env: env}
}

func (p *AboutPanel) Title() string { return p.env.Catalog.Title(About) }

func (p *AboutPanel) Update(msg tea.Msg) tea.Cmd {
	handleScroll(&p.scroll, msg, p.total, p.height)
	return nil
}

func (p *AboutPanel) View(width, height int) string {
	pad := p.env.padding()
	lines := profileLines(p.env.Catalog.Owner, width-2*pad)
	p.height, p.total = height, len(lines)
	return fit(p.scroll.visible(lines, height), width, height, pad)
}

func profileLines(o catalog.Owner, width int) []string {
	lines := []string{headingStyle().Render(o.Name)}
	if o.Role != "" {
		lines = append(lines, accentStyle().Render(o.Role))
	}
	if o.Summary != "" {
		lines = append(lines, "")
		lines = append(lines, wrap(o.Summary, width)...)
	}
	if len(o.Experience) > 0 {
		lines = append(lines, "", headingStyle().Render("Experience"))
		for _, e := range o.Experience {
			lines = append(lines, accentStyle().Render(e.Title)+" · "+e.Org)
			if e.Period != "" {
				lines = append(lines, dimStyle().Render(e.Period))
			}
			lines = append(lines, bullets(e.Points, width)...)
		}
	}
	if o.Education.Degree != "" {
		lines = append(lines, "", headingStyle().Render("Education"), o.Education.Degree)
		if o.Education.School != "" {
			lines = append(lines, o.Education.School)
		}
		if o.Education.Period != "" {
			lines = append(lines, dimStyle().Render(o.Education.Period))
		}
	}
	if len(o.Achievements) > 0 {
		lines = append(lines, "", headingStyle().Render("Achievements"))
		lines = append(lines, bullets(o.Achievements, width)...)
	}
	return lines
}

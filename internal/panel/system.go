package panel

import (
	"fmt"
	"runtime"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/shirou/gopsutil/v4/host"
)

const (
	systemWidth  = 44
	systemHeight = 12
)

type hostInfoMsg struct {
	info *host.InfoStat
	err  error
}

// SystemInfoPanel is the "About this desktop" window.
type SystemInfoPanel struct {
	env  Env
	info *host.InfoStat
	err  error
}

// NewSystemInfo creates the about-this-desktop panel.
func NewSystemInfo(env Env) *SystemInfoPanel {
	return &SystemInfoPanel{env: env}
}

func (p *SystemInfoPanel) Title() string {
	if p.env.Brand == "" {
		return "About"
	}
	return "About " + p.env.Brand
}

func (p *SystemInfoPanel) FixedSize() (int, int) { return systemWidth, systemHeight }

// Init looks up host details in the background.
func (p *SystemInfoPanel) Init() tea.Cmd {
	return func() tea.Msg {
		info, err := host.Info()
		return hostInfoMsg{info: info, err: err}
	}
}

func (p *SystemInfoPanel) Update(msg tea.Msg) tea.Cmd {
	if m, ok := msg.(hostInfoMsg); ok {
		p.info, p.err = m.info, m.err
	}
	return nil
}

func (p *SystemInfoPanel) View(width, height int) string {
	brand := p.env.Brand
	if brand == "" {
		brand = "deskfolio"
	}
	lines := []string{
		headingStyle().Render(brand),
		"Version " + p.env.versionOr("1.0"),
		"",
		fmt.Sprintf("Runtime  %s %s/%s", runtime.Version(), runtime.GOOS, runtime.GOARCH),
		fmt.Sprintf("CPUs     %d", runtime.NumCPU()),
	}
	switch {
	case p.info != nil:
		lines = append(lines,
			fmt.Sprintf("Host     %s", p.info.Hostname),
			fmt.Sprintf("OS       %s %s", p.info.Platform, p.info.PlatformVersion),
			fmt.Sprintf("Uptime   %s", (time.Duration(p.info.Uptime) * time.Second).String()),
		)
	case p.err != nil:
		lines = append(lines, errorStyle().Render("host details unavailable"))
	default:
		lines = append(lines, dimStyle().Render("loading host details..."))
	}
	if name := p.env.Catalog.Owner.Name; name != "" {
		lines = append(lines, "", dimStyle().Render("Portfolio of "+name))
	}
	return fit(lines, width, height, p.env.padding())
}

package app

import (
	"context"
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

// Stats is one CPU and memory sample for the menu bar.
type Stats struct {
	CPUPercent float64
	RAMPercent float64
}

// Sampler reads system usage.
type Sampler interface {
	Sample(ctx context.Context) (Stats, error)
}

// SystemSampler samples the host with gopsutil.
type SystemSampler struct{}

// Sample returns overall CPU usage since the previous call and the share of
// memory in use.
func (SystemSampler) Sample(ctx context.Context) (Stats, error) {
	percents, err := cpu.PercentWithContext(ctx, 0, false)
	if err != nil {
		return Stats{}, fmt.Errorf("cpu: %w", err)
	}
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("memory: %w", err)
	}
	var s Stats
	if len(percents) > 0 {
		s.CPUPercent = percents[0]
	}
	s.RAMPercent = vm.UsedPercent
	return s, nil
}

// StatsMsg carries a finished sample.
type StatsMsg struct {
	Stats Stats
	Err   error
}

const statsTimeout = time.Second

// sampleStatsCmd starts a sample unless one is in flight.
func (m *OS) sampleStatsCmd() tea.Cmd {
	if m.Stats == nil || m.sampling {
		return nil
	}
	m.sampling = true
	sampler := m.Stats
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), statsTimeout)
		defer cancel()
		s, err := sampler.Sample(ctx)
		return StatsMsg{Stats: s, Err: err}
	}
}

// applyStats records a sample. A failing sampler is switched off after
// the first error so the log is not flooded.
func (m *OS) applyStats(msg StatsMsg) {
	m.sampling = false
	m.LastStatsUpdate = m.now()
	if msg.Err != nil {
		m.LogWarn("[STATS] disabled: %v", msg.Err)
		m.Stats = nil
		return
	}
	m.CPUPercent = msg.Stats.CPUPercent
	m.RAMPercent = msg.Stats.RAMPercent
}

package dispatcher

import (
	"sort"
	"sync"
	"time"
)

// Metrics collects per-command run statistics.
type Metrics struct {
	mu sync.RWMutex

	commands map[string]*CommandMetrics

	totalRuns   uint64
	totalErrors uint64
	totalPanics uint64

	totalDuration time.Duration
}

// CommandMetrics holds metrics for one command.
type CommandMetrics struct {
	Name          string
	RunCount      uint64
	ErrorCount    uint64
	TotalDuration time.Duration
	MinDuration   time.Duration
	MaxDuration   time.Duration
	LastError     string
	LastRun       time.Time
}

// NewMetrics creates a new metrics collector.
func NewMetrics() *Metrics {
	return &Metrics{
		commands: make(map[string]*CommandMetrics),
	}
}

// RecordRun records a finished command.
func (m *Metrics) RecordRun(name string, duration time.Duration, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.totalRuns++
	m.totalDuration += duration

	cm := m.commands[name]
	if cm == nil {
		cm = &CommandMetrics{
			Name:        name,
			MinDuration: duration,
			MaxDuration: duration,
		}
		m.commands[name] = cm
	}

	cm.RunCount++
	cm.TotalDuration += duration
	cm.LastRun = time.Now()
	if duration < cm.MinDuration {
		cm.MinDuration = duration
	}
	if duration > cm.MaxDuration {
		cm.MaxDuration = duration
	}

	if err != nil {
		m.totalErrors++
		cm.ErrorCount++
		cm.LastError = err.Error()
	}
}

// RecordPanic records a recovered panic. The run itself is recorded
// separately by RecordRun.
func (m *Metrics) RecordPanic(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.totalPanics++
}

// TotalRuns returns the number of finished commands.
func (m *Metrics) TotalRuns() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.totalRuns
}

// TotalErrors returns the number of commands that failed.
func (m *Metrics) TotalErrors() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.totalErrors
}

// TotalPanics returns the number of recovered panics.
func (m *Metrics) TotalPanics() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.totalPanics
}

// AverageDuration returns the mean run duration.
func (m *Metrics) AverageDuration() time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.totalRuns == 0 {
		return 0
	}
	return m.totalDuration / time.Duration(m.totalRuns)
}

// CommandStats returns a copy of the metrics for name, or nil.
func (m *Metrics) CommandStats(name string) *CommandMetrics {
	m.mu.RLock()
	defer m.mu.RUnlock()

	cm := m.commands[name]
	if cm == nil {
		return nil
	}
	cp := *cm
	return &cp
}

// TopCommands returns the n most run commands.
func (m *Metrics) TopCommands(n int) []*CommandMetrics {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*CommandMetrics, 0, len(m.commands))
	for _, cm := range m.commands {
		cp := *cm
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].RunCount != out[j].RunCount {
			return out[i].RunCount > out[j].RunCount
		}
		return out[i].Name < out[j].Name
	})
	if n > len(out) {
		n = len(out)
	}
	return out[:n]
}

// Reset clears all metrics.
func (m *Metrics) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.commands = make(map[string]*CommandMetrics)
	m.totalRuns = 0
	m.totalErrors = 0
	m.totalPanics = 0
	m.totalDuration = 0
}

package input

import (
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

// Metrics tracks input processing counters and latency.
type Metrics struct {
	// Event counters
	eventsTotal          atomic.Uint64
	undefinedSequences   atomic.Uint64
	abortedSequences     atomic.Uint64
	hookConsumptions     atomic.Uint64
	commandsStarted      atomic.Uint64
	commandsFailed       atomic.Uint64
	prefixContinuations  atomic.Uint64
	nestedSequenceErrors atomic.Uint64

	// Latency tracking
	mu                sync.RWMutex
	eventLatencies    []time.Duration
	maxLatencySamples int
	latencyIdx        int

	// Peak latency (all time)
	peakEventLatency atomic.Int64

	startTime time.Time
	enabled   atomic.Bool
}

// NewMetrics creates a new metrics tracker.
func NewMetrics() *Metrics {
	m := &Metrics{
		eventLatencies:    make([]time.Duration, 1000),
		maxLatencySamples: 1000,
		startTime:         time.Now(),
	}
	m.enabled.Store(true)
	return m
}

// SetEnabled enables or disables metrics collection.
func (m *Metrics) SetEnabled(enabled bool) {
	m.enabled.Store(enabled)
}

// RecordEvent records a handled event with its processing time.
func (m *Metrics) RecordEvent(latency time.Duration) {
	if !m.enabled.Load() {
		return
	}
	m.eventsTotal.Add(1)

	latencyNs := latency.Nanoseconds()
	for {
		current := m.peakEventLatency.Load()
		if latencyNs <= current {
			break
		}
		if m.peakEventLatency.CompareAndSwap(current, latencyNs) {
			break
		}
	}

	// Store in circular buffer
	m.mu.Lock()
	m.eventLatencies[m.latencyIdx] = latency
	m.latencyIdx = (m.latencyIdx + 1) % m.maxLatencySamples
	m.mu.Unlock()
}

func (m *Metrics) add(c *atomic.Uint64) {
	if m.enabled.Load() {
		c.Add(1)
	}
}

// RecordUndefined records a sequence that resolved to nothing.
func (m *Metrics) RecordUndefined() { m.add(&m.undefinedSequences) }

// RecordAbort records a sequence resolved by the abort keymap.
func (m *Metrics) RecordAbort() { m.add(&m.abortedSequences) }

// RecordHookConsumption records an event handled by a keypress hook.
func (m *Metrics) RecordHookConsumption() { m.add(&m.hookConsumptions) }

// RecordCommandStarted records a dispatched command.
func (m *Metrics) RecordCommandStarted() { m.add(&m.commandsStarted) }

// RecordCommandFailed records a command that returned an error.
func (m *Metrics) RecordCommandFailed() { m.add(&m.commandsFailed) }

// RecordPrefixContinuation records a prefix command continuing a sequence.
func (m *Metrics) RecordPrefixContinuation() { m.add(&m.prefixContinuations) }

// RecordNestedSequence records a rejected nested sequence.
func (m *Metrics) RecordNestedSequence() { m.add(&m.nestedSequenceErrors) }

// MetricsSnapshot holds a point-in-time view of metrics.
type MetricsSnapshot struct {
	EventsTotal          uint64
	UndefinedSequences   uint64
	AbortedSequences     uint64
	HookConsumptions     uint64
	CommandsStarted      uint64
	CommandsFailed       uint64
	PrefixContinuations  uint64
	NestedSequenceErrors uint64

	AvgEventLatency  time.Duration
	MaxEventLatency  time.Duration
	P99EventLatency  time.Duration
	PeakEventLatency time.Duration

	EventsPerSecond float64
	Uptime          time.Duration
}

// Snapshot returns a point-in-time view of all metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	m.mu.RLock()
	latencies := make([]time.Duration, len(m.eventLatencies))
	copy(latencies, m.eventLatencies)
	uptime := time.Since(m.startTime)
	m.mu.RUnlock()

	events := m.eventsTotal.Load()
	snap := MetricsSnapshot{
		EventsTotal:          events,
		UndefinedSequences:   m.undefinedSequences.Load(),
		AbortedSequences:     m.abortedSequences.Load(),
		HookConsumptions:     m.hookConsumptions.Load(),
		CommandsStarted:      m.commandsStarted.Load(),
		CommandsFailed:       m.commandsFailed.Load(),
		PrefixContinuations:  m.prefixContinuations.Load(),
		NestedSequenceErrors: m.nestedSequenceErrors.Load(),
		PeakEventLatency:     time.Duration(m.peakEventLatency.Load()),
		Uptime:               uptime,
	}
	if uptime > 0 {
		snap.EventsPerSecond = float64(events) / uptime.Seconds()
	}
	snap.AvgEventLatency, snap.MaxEventLatency, snap.P99EventLatency = calculateLatencyStats(latencies)
	return snap
}

// calculateLatencyStats computes average, max, and p99 from a slice of latencies.
func calculateLatencyStats(latencies []time.Duration) (avg, maxLat, p99 time.Duration) {
	valid := make([]time.Duration, 0, len(latencies))
	for _, l := range latencies {
		if l > 0 {
			valid = append(valid, l)
		}
	}
	if len(valid) == 0 {
		return 0, 0, 0
	}

	var sum time.Duration
	for _, l := range valid {
		sum += l
		if l > maxLat {
			maxLat = l
		}
	}
	avg = sum / time.Duration(len(valid))

	sort.Slice(valid, func(i, j int) bool { return valid[i] < valid[j] })
	idx := int(float64(len(valid)) * 0.99)
	if idx >= len(valid) {
		idx = len(valid) - 1
	}
	return avg, maxLat, valid[idx]
}

// Reset clears all metrics.
func (m *Metrics) Reset() {
	for _, c := range []*atomic.Uint64{
		&m.eventsTotal, &m.undefinedSequences, &m.abortedSequences,
		&m.hookConsumptions, &m.commandsStarted, &m.commandsFailed,
		&m.prefixContinuations, &m.nestedSequenceErrors,
	} {
		c.Store(0)
	}
	m.peakEventLatency.Store(0)

	m.mu.Lock()
	m.eventLatencies = make([]time.Duration, m.maxLatencySamples)
	m.latencyIdx = 0
	m.startTime = time.Now()
	m.mu.Unlock()
}

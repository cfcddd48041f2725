package input

import (
	"sync/atomic"
	"time"
)

// Metrics counts what the resolver did.
type Metrics struct {
	eventsTotal  atomic.Uint64
	expansions   atomic.Uint64
	timeouts     atomic.Uint64
	interrupts   atomic.Uint64
	remapAborts  atomic.Uint64
	notDigits    atomic.Uint64
	fatalEvents  atomic.Uint64
	peakQueueLen atomic.Int64

	startTime time.Time
	enabled   atomic.Bool
}

// NewMetrics creates a new metrics tracker.
func NewMetrics() *Metrics {
	m := &Metrics{startTime: time.Now()}
	m.enabled.Store(true)
	return m
}

// SetEnabled enables or disables collection.
func (m *Metrics) SetEnabled(enabled bool) {
	m.enabled.Store(enabled)
}

func (m *Metrics) inc(c *atomic.Uint64) {
	if m.enabled.Load() {
		c.Add(1)
	}
}

func (m *Metrics) recordEvent() { m.inc(&m.eventsTotal) }
func (m *Metrics) recordExpansion() { m.inc(&m.expansions) }
func (m *Metrics) recordTimeout() { m.inc(&m.timeouts) }
func (m *Metrics) recordInterrupt() { m.inc(&m.interrupts) }
func (m *Metrics) recordRemapAbort() { m.inc(&m.remapAborts) }
func (m *Metrics) recordNotDigit() { m.inc(&m.notDigits) }
func (m *Metrics) recordFatalEvent() { m.inc(&m.fatalEvents) }

func (m *Metrics) recordQueueLen(n int) {
	if !m.enabled.Load() {
		return
	}
	for {
		cur := m.peakQueueLen.Load()
		if int64(n) <= cur || m.peakQueueLen.CompareAndSwap(cur, int64(n)) {
			return
		}
	}
}

// MetricsSnapshot holds a point-in-time view of metrics.
type MetricsSnapshot struct {
	EventsTotal  uint64
	Expansions   uint64
	Timeouts     uint64
	Interrupts   uint64
	RemapAborts  uint64
	NotDigits    uint64
	FatalEvents  uint64
	PeakQueueLen int
	Uptime       time.Duration
}

// Snapshot returns a point-in-time view of all metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		EventsTotal:  m.eventsTotal.Load(),
		Expansions:   m.expansions.Load(),
		Timeouts:     m.timeouts.Load(),
		Interrupts:   m.interrupts.Load(),
		RemapAborts:  m.remapAborts.Load(),
		NotDigits:    m.notDigits.Load(),
		FatalEvents:  m.fatalEvents.Load(),
		PeakQueueLen: int(m.peakQueueLen.Load()),
		Uptime:       time.Since(m.startTime),
	}
}

// Reset clears all metrics.
func (m *Metrics) Reset() {
	m.eventsTotal.Store(0)
	m.expansions.Store(0)
	m.timeouts.Store(0)
	m.interrupts.Store(0)
	m.remapAborts.Store(0)
	m.notDigits.Store(0)
	m.fatalEvents.Store(0)
	m.peakQueueLen.Store(0)
	m.startTime = time.Now()
}

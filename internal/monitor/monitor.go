// Package monitor implements the in-process error monitor: a capped,
// append-only ring buffer of structured log entries with derived statistics
// (per-level and per-endpoint counts, error rate, health predicate).
//
// The monitor is an observability sidecar, not a business component. Its
// invariants still matter for production stability: bounded memory,
// time-ordered ids, and non-blocking logging under concurrent handlers.
package monitor

import (
	"sync"
	"time"

	"github.com/gvnetwork/contacts-api/internal/logger"
	"github.com/gvnetwork/contacts-api/internal/utils"
)

// Level classifies a monitor entry.
type Level string

const (
	LevelError Level = "error"
	LevelWarn  Level = "warn"
	LevelInfo  Level = "info"
)

// Entry is one captured event. Entries are immutable once appended.
type Entry struct {
	// ID is a time-ordered unique identifier (UUIDv7).
	ID string `json:"id"`

	Timestamp time.Time `json:"timestamp"`
	Level     Level     `json:"level"`
	Message   string    `json:"message"`

	// Endpoint is the route that produced the entry, when known.
	Endpoint string `json:"endpoint,omitempty"`

	// Fields carries arbitrary structured context.
	Fields map[string]any `json:"fields,omitempty"`
}

// Stats aggregates the buffer at a point in time.
type Stats struct {
	Total      int            `json:"total"`
	ByLevel    map[Level]int  `json:"by_level"`
	ByEndpoint map[string]int `json:"by_endpoint"`

	// LastMinute is the number of entries recorded in the past minute.
	LastMinute int `json:"last_minute"`

	// ErrorRate is error-level entries per minute since process start.
	ErrorRate float64 `json:"error_rate"`
}

// maxEntries caps the ring buffer; the oldest entries drop first.
const maxEntries = 500

// healthyErrorRate is the errors-per-minute threshold below which
// IsHealthy reports true.
const healthyErrorRate = 10.0

// Monitor is the process-wide error buffer. Constructed once at startup and
// injected into handlers and services; safe for concurrent use.
type Monitor struct {
	mu        sync.Mutex
	entries   []Entry
	startedAt time.Time

	ids    *utils.UUIDGenerator
	logger *logger.Logger

	// now is swappable for tests.
	now func() time.Time
}

// New constructs an empty Monitor. Every captured entry is also mirrored to
// the given structured logger at the matching level.
func New(log *logger.Logger) *Monitor {
	return &Monitor{
		entries:   make([]Entry, 0, maxEntries),
		startedAt: time.Now(),
		ids:       utils.NewUUIDGenerator(),
		logger:    log,
		now:       time.Now,
	}
}

// LogError appends an error-level entry.
func (m *Monitor) LogError(message, endpoint string, fields map[string]any) {
	m.append(LevelError, message, endpoint, fields)
	m.logger.Error().Str("endpoint", endpoint).Fields(fields).Msg(message)
}

// LogWarning appends a warn-level entry.
func (m *Monitor) LogWarning(message, endpoint string, fields map[string]any) {
	m.append(LevelWarn, message, endpoint, fields)
	m.logger.Warn().Str("endpoint", endpoint).Fields(fields).Msg(message)
}

// LogInfo appends an info-level entry.
func (m *Monitor) LogInfo(message, endpoint string, fields map[string]any) {
	m.append(LevelInfo, message, endpoint, fields)
	m.logger.Info().Str("endpoint", endpoint).Fields(fields).Msg(message)
}

// GetErrorStats aggregates the current buffer.
func (m *Monitor) GetErrorStats() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	stats := Stats{
		Total:      len(m.entries),
		ByLevel:    make(map[Level]int),
		ByEndpoint: make(map[string]int),
	}

	for _, entry := range m.entries {
		stats.ByLevel[entry.Level]++
		if entry.Endpoint != "" {
			stats.ByEndpoint[entry.Endpoint]++
		}
		if now.Sub(entry.Timestamp) <= time.Minute {
			stats.LastMinute++
		}
	}

	minutes := now.Sub(m.startedAt).Minutes()
	if minutes < 1 {
		minutes = 1
	}
	stats.ErrorRate = float64(stats.ByLevel[LevelError]) / minutes

	return stats
}

// GetRecentErrors returns up to limit entries, newest first.
func (m *Monitor) GetRecentErrors(limit int) []Entry {
	m.mu.Lock()
	defer m.mu.Unlock()

	if limit <= 0 || limit > len(m.entries) {
		limit = len(m.entries)
	}

	recent := make([]Entry, 0, limit)
	for i := len(m.entries) - 1; i >= len(m.entries)-limit; i-- {
		recent = append(recent, m.entries[i])
	}

	return recent
}

// IsHealthy reports whether the error rate is below the healthy threshold.
func (m *Monitor) IsHealthy() bool {
	return m.GetErrorStats().ErrorRate < healthyErrorRate
}

// Sweep removes entries older than maxAge independent of the capacity cap
// and returns the number removed. Called periodically by a background
// worker.
func (m *Monitor) Sweep(maxAge time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	kept := m.entries[:0]
	for _, entry := range m.entries {
		if now.Sub(entry.Timestamp) <= maxAge {
			kept = append(kept, entry)
		}
	}

	removed := len(m.entries) - len(kept)
	m.entries = kept
	return removed
}

// Clear drops every entry. Also used by tests to isolate cases.
func (m *Monitor) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries = m.entries[:0]
}

func (m *Monitor) append(level Level, message, endpoint string, fields map[string]any) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.entries) >= maxEntries {
		// oldest drops first
		m.entries = m.entries[1:]
	}

	m.entries = append(m.entries, Entry{
		ID:        m.ids.Generate(),
		Timestamp: m.now(),
		Level:     level,
		Message:   message,
		Endpoint:  endpoint,
		Fields:    fields,
	})
}

package report

import "sync"

type memoKey struct {
	version uint64
	start   int64
	end     int64
}

// StatsMemo caches PeriodStats by (orders version, window). Entries for
// older versions are dropped the first time a newer version is seen.
type StatsMemo struct {
	mu      sync.Mutex
	version uint64
	entries map[memoKey]PeriodStats
}

// NewStatsMemo creates an empty memo.
func NewStatsMemo() *StatsMemo {
	return &StatsMemo{entries: make(map[memoKey]PeriodStats)}
}

// Get returns the cached stats for (version, w), calling compute on a miss.
func (m *StatsMemo) Get(version uint64, w Window, compute func() PeriodStats) PeriodStats {
	key := memoKey{version: version, start: w.Start.UnixNano(), end: w.End.UnixNano()}

	m.mu.Lock()
	if version != m.version {
		m.version = version
		m.entries = make(map[memoKey]PeriodStats)
	}
	if stats, ok := m.entries[key]; ok {
		m.mu.Unlock()
		return stats
	}
	m.mu.Unlock()

	stats := compute()

	m.mu.Lock()
	if version == m.version {
		m.entries[key] = stats
	}
	m.mu.Unlock()
	return stats
}

// Len returns the number of cached entries.
func (m *StatsMemo) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

package service

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/farmstore-admin/internal/clock"
	"github.com/sangkips/farmstore-admin/internal/domain/enum"
	"github.com/sangkips/farmstore-admin/internal/domain/report"
)

// relativeSpan is the widest a rolling window can grow before its start
// moves. Snapshots for these kinds are fetched wide enough to cover any
// prior window derived during their lifetime.
var relativeSpan = map[enum.PeriodKind]time.Duration{
	enum.PeriodDaily:  24 * time.Hour,
	enum.PeriodWeekly: 7 * 24 * time.Hour,
}

type snapshotKey struct {
	location string
	kind     enum.PeriodKind
	start    int64
	end      int64
}

// Snapshot is one fetched order set and the book built over it.
type Snapshot struct {
	Book      *report.OrderBook
	From      time.Time
	FetchedAt time.Time
}

func (s *Snapshot) covers(prior report.Window) bool {
	return !s.From.After(prior.Start)
}

// SnapshotStore caches order books per resolved window. Entries expire
// after ttl (zero keeps them until evicted); once more than max entries are held the oldest is evicted.
type SnapshotStore struct {
	mu      sync.Mutex
	clock   clock.Clock
	ttl     time.Duration
	max     int
	entries map[snapshotKey]*Snapshot
}

func NewSnapshotStore(clk clock.Clock, ttl time.Duration, max int) *SnapshotStore {
	if max < 1 {
		max = 1
	}
	return &SnapshotStore{
		clock:   clk,
		ttl:     ttl,
		max:     max,
		entries: make(map[snapshotKey]*Snapshot),
	}
}

func keyFor(kind enum.PeriodKind, current report.Window) snapshotKey {
	key := snapshotKey{
		location: current.Start.Location().String(),
		kind:     kind,
		start:    current.Start.UnixNano(),
	}
	// Rolling windows end at "now"; only custom windows have a fixed end.
	if kind == enum.PeriodCustom {
		key.end = current.End.UnixNano()
	}
	return key
}

// FetchFrom returns the lower bound to load orders from so that a
// snapshot for current can also serve its prior window.
func FetchFrom(kind enum.PeriodKind, current, prior report.Window) time.Time {
	from := prior.Start
	if span, ok := relativeSpan[kind]; ok {
		if widest := current.Start.Add(-span - time.Millisecond); widest.Before(from) {
			from = widest
		}
	}
	return from
}

// Get returns a live snapshot that covers both windows.
func (s *SnapshotStore) Get(kind enum.PeriodKind, current, prior report.Window) (*Snapshot, bool) {
	key := keyFor(kind, current)

	s.mu.Lock()
	defer s.mu.Unlock()
	snap, ok := s.entries[key]
	if !ok {
		return nil, false
	}
	if s.expired(snap) || !snap.covers(prior) {
		delete(s.entries, key)
		return nil, false
	}
	return snap, true
}

// Put stores a freshly fetched snapshot for current.
func (s *SnapshotStore) Put(kind enum.PeriodKind, current report.Window, snap *Snapshot) {
	key := keyFor(kind, current)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = snap
	for len(s.entries) > s.max {
		s.evictOldest()
	}
}

// Containing returns every live book that holds the order.
func (s *SnapshotStore) Containing(id uuid.UUID) []*report.OrderBook {
	s.mu.Lock()
	defer s.mu.Unlock()

	var books []*report.OrderBook
	for key, snap := range s.entries {
		if s.expired(snap) {
			delete(s.entries, key)
			continue
		}
		if snap.Book.Contains(id) {
			books = append(books, snap.Book)
		}
	}
	return books
}

// Len returns the number of cached snapshots, expired ones included.
func (s *SnapshotStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *SnapshotStore) expired(snap *Snapshot) bool {
	return s.ttl > 0 && s.clock.Now().Sub(snap.FetchedAt) >= s.ttl
}

func (s *SnapshotStore) evictOldest() {
	var (
		oldestKey snapshotKey
		oldest    *Snapshot
	)
	for key, snap := range s.entries {
		if oldest == nil || snap.FetchedAt.Before(oldest.FetchedAt) {
			oldestKey, oldest = key, snap
		}
	}
	delete(s.entries, oldestKey)
}

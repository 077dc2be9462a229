// Package state holds the snapshots the UI renders from.
package state

import (
	"time"

	"github.com/atomicstack/glazewm-top/internal/wm"
)

// SnapshotStore keeps the current snapshot plus the one before it, along
// with the freshness flags the view reports. Older history is discarded.
type SnapshotStore interface {
	Current() *wm.Snapshot
	Previous() *wm.Snapshot
	Apply(snap *wm.Snapshot)
	MarkStale()
	Stale() bool
	SetDegraded(degraded bool)
	Degraded() bool
	SetWarning(warning string)
	Warning() string
	LastUpdated() time.Time
}

type snapshotStore struct {
	current  *wm.Snapshot
	previous *wm.Snapshot
	stale    bool
	degraded bool
	warning  string
	updated  time.Time
}

func NewSnapshotStore() SnapshotStore {
	return &snapshotStore{}
}

func (s *snapshotStore) Current() *wm.Snapshot  { return s.current }
func (s *snapshotStore) Previous() *wm.Snapshot { return s.previous }

// Apply rotates the pair: the current snapshot becomes the previous one and
// the incoming snapshot clears staleness.
func (s *snapshotStore) Apply(snap *wm.Snapshot) {
	if snap == nil {
		return
	}
	s.previous = s.current
	s.current = snap
	s.stale = false
	s.updated = snap.CapturedAt
	if s.updated.IsZero() {
		s.updated = time.Now()
	}
}

// MarkStale flags the current snapshot as outdated without discarding it.
// The view keeps rendering the last good data.
func (s *snapshotStore) MarkStale() {
	if s.current != nil {
		s.stale = true
	}
}

func (s *snapshotStore) Stale() bool { return s.stale }

func (s *snapshotStore) SetDegraded(degraded bool) { s.degraded = degraded }
func (s *snapshotStore) Degraded() bool            { return s.degraded }

// SetWarning records a persistent consistency warning, cleared by passing
// the empty string.
func (s *snapshotStore) SetWarning(warning string) { s.warning = warning }
func (s *snapshotStore) Warning() string           { return s.warning }

func (s *snapshotStore) LastUpdated() time.Time { return s.updated }

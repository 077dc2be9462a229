package state

import (
	"testing"
	"time"

	"github.com/atomicstack/glazewm-top/internal/wm"
)

func snapshotAt(captured time.Time) *wm.Snapshot {
	return &wm.Snapshot{
		Monitors:   []wm.Monitor{{ID: "m1", HasFocus: true}},
		CapturedAt: captured,
	}
}

func TestApplyRotatesSnapshots(t *testing.T) {
	store := NewSnapshotStore()
	first := snapshotAt(time.Now())
	second := snapshotAt(time.Now())

	store.Apply(first)
	if store.Current() != first || store.Previous() != nil {
		t.Fatalf("first apply should set current only")
	}

	store.Apply(second)
	if store.Current() != second {
		t.Fatalf("second apply should replace current")
	}
	if store.Previous() != first {
		t.Fatalf("second apply should keep the prior snapshot as previous")
	}
}

func TestApplyIgnoresNil(t *testing.T) {
	store := NewSnapshotStore()
	snap := snapshotAt(time.Now())
	store.Apply(snap)
	store.Apply(nil)
	if store.Current() != snap {
		t.Fatalf("nil apply must not clobber the current snapshot")
	}
}

func TestMarkStaleKeepsLastGoodSnapshot(t *testing.T) {
	store := NewSnapshotStore()

	store.MarkStale()
	if store.Stale() {
		t.Fatalf("stale flag without data makes no sense")
	}

	snap := snapshotAt(time.Now())
	store.Apply(snap)
	store.MarkStale()
	if !store.Stale() {
		t.Fatalf("expected stale after MarkStale")
	}
	if store.Current() != snap {
		t.Fatalf("stale data must remain renderable")
	}

	store.Apply(snapshotAt(time.Now()))
	if store.Stale() {
		t.Fatalf("a fresh snapshot should clear staleness")
	}
}

func TestLastUpdatedTracksCaptureTime(t *testing.T) {
	store := NewSnapshotStore()
	captured := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store.Apply(snapshotAt(captured))
	if got := store.LastUpdated(); !got.Equal(captured) {
		t.Fatalf("expected %v, got %v", captured, got)
	}
}

func TestLastUpdatedFallsBackToNow(t *testing.T) {
	store := NewSnapshotStore()
	before := time.Now()
	store.Apply(snapshotAt(time.Time{}))
	if got := store.LastUpdated(); got.Before(before) {
		t.Fatalf("zero capture time should fall back to apply time, got %v", got)
	}
}

func TestDegradedAndWarningFlags(t *testing.T) {
	store := NewSnapshotStore()
	store.SetDegraded(true)
	if !store.Degraded() {
		t.Fatalf("expected degraded")
	}
	store.SetDegraded(false)
	if store.Degraded() {
		t.Fatalf("expected degraded cleared")
	}

	store.SetWarning("window focus is ambiguous")
	if store.Warning() != "window focus is ambiguous" {
		t.Fatalf("warning not recorded")
	}
	store.SetWarning("")
	if store.Warning() != "" {
		t.Fatalf("warning not cleared")
	}
}

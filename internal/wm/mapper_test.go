package wm

import (
	"errors"
	"strings"
	"testing"

	"github.com/atomicstack/glazewm-top/internal/testutil"
)

func TestMapSnapshotBuildsHierarchy(t *testing.T) {
	monitors := testutil.MonitorsPayload(t,
		testutil.Monitor("m1", 0, 0, 1920, 1080, true,
			testutil.Workspace("ws1", "1", true,
				testutil.Window("w1", "chrome", "GitHub", 0, 0, 960, 1080, true),
				testutil.Window("w2", "code", "main.go", 960, 0, 960, 1080, false),
			),
		),
	)
	windows := testutil.WindowsPayload(t,
		testutil.Window("w1", "chrome", "GitHub", 0, 0, 960, 1080, true),
		testutil.Window("w2", "code", "main.go", 960, 0, 960, 1080, false),
	)

	snap, err := MapSnapshot(monitors, windows)
	if err != nil {
		t.Fatalf("unexpected mapping error: %v", err)
	}
	if len(snap.Monitors) != 1 {
		t.Fatalf("expected 1 monitor, got %d", len(snap.Monitors))
	}
	monitor := snap.Monitors[0]
	if monitor.ID != "m1" || !monitor.HasFocus {
		t.Fatalf("unexpected monitor %+v", monitor)
	}
	if len(monitor.Workspaces) != 1 || monitor.Workspaces[0].Name != "1" {
		t.Fatalf("unexpected workspaces %+v", monitor.Workspaces)
	}
	if got := snap.WindowCount(); got != 2 {
		t.Fatalf("expected 2 windows, got %d", got)
	}
	focused := snap.FocusedWindow()
	if focused == nil || focused.ID != "w1" {
		t.Fatalf("expected w1 focused, got %+v", focused)
	}
	if snap.CapturedAt.IsZero() {
		t.Fatalf("expected CapturedAt to be set")
	}
}

func TestMapSnapshotMissingWindowID(t *testing.T) {
	win := testutil.Without(testutil.Window("w1", "chrome", "GitHub", 0, 0, 960, 1080, false), "id")
	monitors := testutil.MonitorsPayload(t,
		testutil.Monitor("m1", 0, 0, 1920, 1080, true,
			testutil.Workspace("ws1", "1", true, win),
		),
	)
	windows := testutil.WindowsPayload(t)

	_, err := MapSnapshot(monitors, windows)
	var mapErr *MapError
	if !errors.As(err, &mapErr) {
		t.Fatalf("expected MapError, got %v", err)
	}
	if mapErr.Kind != MapMissingField {
		t.Fatalf("expected missing field error, got kind %v", mapErr.Kind)
	}
	if !strings.HasSuffix(mapErr.Path, ".id") {
		t.Fatalf("expected path to name the id field, got %q", mapErr.Path)
	}
	if !strings.Contains(mapErr.Path, "children[0]") {
		t.Fatalf("expected path to locate the child, got %q", mapErr.Path)
	}
}

func TestMapSnapshotRejectsUnsuccessfulEnvelope(t *testing.T) {
	monitors := testutil.FailedEnvelope(t, "ipc failure")
	windows := testutil.WindowsPayload(t)

	_, err := MapSnapshot(monitors, windows)
	var mapErr *MapError
	if !errors.As(err, &mapErr) || mapErr.Kind != MapTopLevel {
		t.Fatalf("expected top-level error, got %v", err)
	}
	if !strings.Contains(mapErr.Error(), "ipc failure") {
		t.Fatalf("expected error message carried through, got %q", mapErr.Error())
	}
}

func TestMapSnapshotRejectsMalformedJSON(t *testing.T) {
	_, err := MapSnapshot([]byte(`{"data": [}`), testutil.WindowsPayload(t))
	var mapErr *MapError
	if !errors.As(err, &mapErr) || mapErr.Kind != MapTopLevel {
		t.Fatalf("expected top-level error, got %v", err)
	}
}

func TestMapSnapshotRejectsNullData(t *testing.T) {
	monitors := testutil.MustMarshal(t, map[string]interface{}{
		"data":    nil,
		"success": true,
		"error":   nil,
	})
	_, err := MapSnapshot(monitors, testutil.WindowsPayload(t))
	var mapErr *MapError
	if !errors.As(err, &mapErr) || mapErr.Kind != MapMissingField {
		t.Fatalf("expected missing data error, got %v", err)
	}
}

func TestMapSnapshotRejectsInvariantViolation(t *testing.T) {
	monitors := testutil.MonitorsPayload(t,
		testutil.Monitor("m1", 0, 0, 1920, 1080, true,
			testutil.Workspace("ws1", "1", true,
				testutil.Window("w1", "chrome", "GitHub", 0, 0, 960, 1080, true),
				testutil.Window("w2", "code", "main.go", 960, 0, 960, 1080, true),
			),
		),
	)
	windows := testutil.WindowsPayload(t,
		testutil.Window("w1", "chrome", "GitHub", 0, 0, 960, 1080, true),
		testutil.Window("w2", "code", "main.go", 960, 0, 960, 1080, true),
	)

	_, err := MapSnapshot(monitors, windows)
	var mapErr *MapError
	if !errors.As(err, &mapErr) || mapErr.Kind != MapInvariant {
		t.Fatalf("expected invariant rejection, got %v", err)
	}
}

func TestOverlayRefreshesWindowFields(t *testing.T) {
	monitors := testutil.MonitorsPayload(t,
		testutil.Monitor("m1", 0, 0, 1920, 1080, true,
			testutil.Workspace("ws1", "1", true,
				testutil.Window("w1", "chrome", "Old Title", 0, 0, 960, 1080, false),
			),
		),
	)
	windows := testutil.WindowsPayload(t,
		testutil.With(
			testutil.Window("w1", "chrome", "New Title", 0, 0, 960, 1080, true),
			map[string]interface{}{"state": map[string]interface{}{"type": "floating"}},
		),
	)

	snap, err := MapSnapshot(monitors, windows)
	if err != nil {
		t.Fatalf("unexpected mapping error: %v", err)
	}
	w := snap.FocusedWindow()
	if w == nil || w.ID != "w1" {
		t.Fatalf("expected overlay to set focus, got %+v", w)
	}
	if w.Title != "New Title" {
		t.Fatalf("expected overlaid title, got %q", w.Title)
	}
	if w.State.Kind != WindowFloating {
		t.Fatalf("expected overlaid state, got %v", w.State.Kind)
	}
}

func TestOverlayIgnoresUnknownWindowIDs(t *testing.T) {
	monitors := testutil.MonitorsPayload(t,
		testutil.Monitor("m1", 0, 0, 1920, 1080, true,
			testutil.Workspace("ws1", "1", true,
				testutil.Window("w1", "chrome", "GitHub", 0, 0, 960, 1080, true),
			),
		),
	)
	windows := testutil.WindowsPayload(t,
		testutil.Window("w1", "chrome", "GitHub", 0, 0, 960, 1080, true),
		testutil.Window("ghost", "mystery", "Not In Hierarchy", 0, 0, 100, 100, false),
	)

	snap, err := MapSnapshot(monitors, windows)
	if err != nil {
		t.Fatalf("unexpected mapping error: %v", err)
	}
	if got := snap.WindowCount(); got != 1 {
		t.Fatalf("expected unknown window ignored, got %d windows", got)
	}
}

func TestMapSnapshotSkipsNonWorkspaceChildren(t *testing.T) {
	monitors := testutil.MonitorsPayload(t,
		testutil.Monitor("m1", 0, 0, 1920, 1080, true,
			map[string]interface{}{"type": "split", "id": "s1"},
			testutil.Workspace("ws1", "1", true),
		),
	)
	snap, err := MapSnapshot(monitors, testutil.WindowsPayload(t))
	if err != nil {
		t.Fatalf("unexpected mapping error: %v", err)
	}
	if len(snap.Monitors[0].Workspaces) != 1 {
		t.Fatalf("expected only the workspace child mapped, got %d", len(snap.Monitors[0].Workspaces))
	}
}

func TestWorkspaceDisplayFallsBackToIsDisplayed(t *testing.T) {
	ws := testutil.Without(testutil.Workspace("ws1", "1", true), "displayState")
	ws["isDisplayed"] = false
	monitors := testutil.MonitorsPayload(t,
		testutil.Monitor("m1", 0, 0, 1920, 1080, true, ws),
	)
	snap, err := MapSnapshot(monitors, testutil.WindowsPayload(t))
	if err != nil {
		t.Fatalf("unexpected mapping error: %v", err)
	}
	if got := snap.Monitors[0].Workspaces[0].Display.Kind; got != DisplayHidden {
		t.Fatalf("expected hidden workspace, got %v", got)
	}
}

package wm

import "testing"

func TestParseWindowStatePreservesUnknownValues(t *testing.T) {
	state := ParseWindowState("pinned")
	if state.Kind != WindowUnknown {
		t.Fatalf("expected unknown kind, got %v", state.Kind)
	}
	if state.Raw != "pinned" {
		t.Fatalf("expected raw value preserved, got %q", state.Raw)
	}
	if state.String() != "pinned" {
		t.Fatalf("expected String to surface raw value, got %q", state.String())
	}
}

func TestParseDisplayStateUnknownCountsAsVisible(t *testing.T) {
	display := ParseDisplayState("materializing")
	if display.Kind != DisplayUnknown {
		t.Fatalf("expected unknown kind, got %v", display.Kind)
	}
	if !display.Visible() {
		t.Fatalf("unknown display states must stay visible")
	}
}

func TestStateIndicator(t *testing.T) {
	cases := []struct {
		name   string
		window Window
		want   string
	}{
		{"tiling", Window{State: WindowState{Kind: WindowTiling}}, "[T]"},
		{"floating", Window{State: WindowState{Kind: WindowFloating}}, "[F]"},
		{"fullscreen", Window{State: WindowState{Kind: WindowFullscreen}}, "[F]"},
		{"minimized", Window{State: WindowState{Kind: WindowMinimized}}, "[M]"},
		{"hidden wins over state", Window{State: WindowState{Kind: WindowTiling}, Display: DisplayState{Kind: DisplayHidden}}, "[H]"},
		{"hiding groups with hidden", Window{State: WindowState{Kind: WindowFloating}, Display: DisplayState{Kind: DisplayHiding}}, "[H]"},
	}
	for _, tc := range cases {
		if got := tc.window.StateIndicator(); got != tc.want {
			t.Fatalf("%s: expected %q, got %q", tc.name, tc.want, got)
		}
	}
}

func TestDisplayNameFallsBackToSingleField(t *testing.T) {
	w := Window{ProcessName: "chrome", Title: "GitHub"}
	if got := w.DisplayName(); got != "chrome: GitHub" {
		t.Fatalf("unexpected display name %q", got)
	}
	if got := (Window{Title: "GitHub"}).DisplayName(); got != "GitHub" {
		t.Fatalf("expected bare title, got %q", got)
	}
	if got := (Window{ProcessName: "chrome"}).DisplayName(); got != "chrome" {
		t.Fatalf("expected bare process, got %q", got)
	}
}

func TestMinimizedWindowIsOffScreenButNotFloating(t *testing.T) {
	w := Window{State: WindowState{Kind: WindowMinimized}}
	if w.Tiled() {
		t.Fatalf("minimized windows must not tile")
	}
	if w.Floats() {
		t.Fatalf("minimized windows must not float")
	}
	if !w.OffScreen() {
		t.Fatalf("minimized windows belong in the hidden summary")
	}
}

func TestValidateRejectsMultipleFocusedWindows(t *testing.T) {
	snap := &Snapshot{Monitors: []Monitor{{
		ID:       "m1",
		HasFocus: true,
		Workspaces: []Workspace{{
			ID:       "ws1",
			HasFocus: true,
			Windows: []Window{
				{ID: "w1", HasFocus: true},
				{ID: "w2", HasFocus: true},
			},
		}},
	}}}
	err := snap.Validate()
	if err == nil {
		t.Fatalf("expected invariant violation for two focused windows")
	}
	mapErr, ok := err.(*MapError)
	if !ok || mapErr.Kind != MapInvariant {
		t.Fatalf("expected MapInvariant, got %v", err)
	}
}

func TestValidateRequiresExactlyOneFocusedMonitor(t *testing.T) {
	snap := &Snapshot{Monitors: []Monitor{
		{ID: "m1"},
		{ID: "m2"},
	}}
	if err := snap.Validate(); err == nil {
		t.Fatalf("expected error when no monitor has focus")
	}
	snap.Monitors[0].HasFocus = true
	snap.Monitors[1].HasFocus = true
	if err := snap.Validate(); err == nil {
		t.Fatalf("expected error when two monitors have focus")
	}
	snap.Monitors[1].HasFocus = false
	if err := snap.Validate(); err != nil {
		t.Fatalf("expected single focused monitor to validate, got %v", err)
	}
}

func TestValidateRequiresFocusedWorkspacePerMonitor(t *testing.T) {
	snap := &Snapshot{Monitors: []Monitor{{
		ID:       "m1",
		HasFocus: true,
		Workspaces: []Workspace{
			{ID: "ws1"},
			{ID: "ws2"},
		},
	}}}
	if err := snap.Validate(); err == nil {
		t.Fatalf("expected error when monitor has no focused workspace")
	}
	snap.Monitors[0].Workspaces[0].HasFocus = true
	if err := snap.Validate(); err != nil {
		t.Fatalf("expected snapshot to validate, got %v", err)
	}
}

func TestValidateAllowsZeroFocusedWindows(t *testing.T) {
	snap := &Snapshot{Monitors: []Monitor{{
		ID:       "m1",
		HasFocus: true,
		Workspaces: []Workspace{{
			ID:       "ws1",
			HasFocus: true,
			Windows:  []Window{{ID: "w1"}},
		}},
	}}}
	if err := snap.Validate(); err != nil {
		t.Fatalf("zero focused windows should validate, got %v", err)
	}
}

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 5, 5)
	if !r.Contains(Point{X: 10, Y: 10}) {
		t.Fatalf("expected top-left corner inside")
	}
	if r.Contains(Point{X: 15, Y: 10}) {
		t.Fatalf("right edge is exclusive")
	}
	if r.Right() != 15 || r.Bottom() != 15 {
		t.Fatalf("unexpected edges %d,%d", r.Right(), r.Bottom())
	}
}

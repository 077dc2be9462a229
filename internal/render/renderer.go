package render

import (
	"github.com/atomicstack/glazewm-top/internal/theme"
	"github.com/atomicstack/glazewm-top/internal/wm"
)

// Mode selects how a snapshot is drawn.
type Mode int

const (
	// ModeDetailed draws monitors and windows as boxes proportional to
	// their real geometry.
	ModeDetailed Mode = iota
	// ModeCompact draws the hierarchy as an indented tree.
	ModeCompact
)

func (m Mode) String() string {
	if m == ModeCompact {
		return "compact"
	}
	return "detailed"
}

// Renderer produces frames from snapshots and diffs them against the
// previous frame so the caller knows which lines moved.
type Renderer struct {
	styles *theme.Styles
	mode   Mode
	last   Frame
	force  bool
}

func New(styles *theme.Styles) *Renderer {
	if styles == nil {
		styles = theme.Default()
	}
	return &Renderer{styles: styles, force: true}
}

func (r *Renderer) Mode() Mode { return r.mode }

// SetMode switches the drawing mode and forces a full redraw.
func (r *Renderer) SetMode(mode Mode) {
	if r.mode != mode {
		r.mode = mode
		r.Invalidate()
	}
}

// ToggleMode flips between detailed and compact.
func (r *Renderer) ToggleMode() Mode {
	if r.mode == ModeDetailed {
		r.SetMode(ModeCompact)
	} else {
		r.SetMode(ModeDetailed)
	}
	return r.mode
}

// Invalidate discards the cached frame so the next render reports every line
// as changed. Callers use it after a resize or a mode switch.
func (r *Renderer) Invalidate() {
	r.last = Frame{}
	r.force = true
}

// Render draws the snapshot at the given terminal size and returns the new
// frame together with the regions that differ from the previous one. The
// first render after New or Invalidate reports the whole frame.
func (r *Renderer) Render(snap *wm.Snapshot, size wm.Size, filter string) (Frame, []Region) {
	var frame Frame
	if r.mode == ModeCompact {
		frame = r.renderCompact(snap, size, filter)
	} else {
		frame = r.renderDetailed(snap, size, filter)
	}

	var regions []Region
	if r.force {
		if len(frame.Lines) > 0 {
			regions = []Region{{Top: 0, Bottom: len(frame.Lines) - 1}}
		}
		r.force = false
	} else {
		regions = Diff(r.last, frame)
	}
	r.last = frame
	return frame, regions
}

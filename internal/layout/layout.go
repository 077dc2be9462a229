// Package layout computes terminal-cell rectangles for the nested
// monitor/workspace/window hierarchy of a snapshot.
package layout

import (
	"math"
	"sort"

	"github.com/atomicstack/glazewm-top/internal/wm"
)

// ElementKind distinguishes positioned entities.
type ElementKind int

const (
	KindMonitor ElementKind = iota
	KindWorkspace
	KindWindow
)

// Element is one positioned entity in terminal cell space. Pointers reference
// the snapshot and are read-only by contract.
type Element struct {
	Kind      ElementKind
	ID        string
	Rect      wm.Rect
	Monitor   *wm.Monitor
	Workspace *wm.Workspace
	Window    *wm.Window
	// Share is the renormalized tiling fraction, set for tiled windows.
	Share float64
	// Floating marks windows anchored at their own geometry.
	Floating bool
	// Collapsed marks inactive workspaces reduced to a header line.
	Collapsed bool
}

// HiddenWindow is a window excluded from spatial layout.
type HiddenWindow struct {
	Window    *wm.Window
	Workspace string
}

// Layout is the ordered result of one compute pass.
type Layout struct {
	Elements []Element
	Hidden   []HiddenWindow
	Size     wm.Size
}

// Compute places all monitors proportionally inside the terminal, expands the
// active workspace on each, and partitions tiled windows along the workspace
// axis. Degenerate sizes truncate content rather than failing.
func Compute(snap *wm.Snapshot, size wm.Size) Layout {
	lay := Layout{Size: size}
	if snap == nil || len(snap.Monitors) == 0 || size.Width <= 0 || size.Height <= 0 {
		return lay
	}

	collectHidden(snap, &lay)

	order := monitorOrder(snap.Monitors)
	bounds := unionBounds(snap.Monitors)

	for _, idx := range order {
		monitor := &snap.Monitors[idx]
		rect := scaleRect(monitor.Geometry, bounds, size)
		if rect.Size.Width < 1 || rect.Size.Height < 1 {
			continue
		}
		lay.Elements = append(lay.Elements, Element{
			Kind:    KindMonitor,
			ID:      monitor.ID,
			Rect:    rect,
			Monitor: monitor,
		})
		layoutMonitor(monitor, rect, &lay)
	}
	return lay
}

func collectHidden(snap *wm.Snapshot, lay *Layout) {
	for i := range snap.Monitors {
		for j := range snap.Monitors[i].Workspaces {
			ws := &snap.Monitors[i].Workspaces[j]
			for k := range ws.Windows {
				if ws.Windows[k].OffScreen() {
					lay.Hidden = append(lay.Hidden, HiddenWindow{Window: &ws.Windows[k], Workspace: ws.Name})
				}
			}
		}
	}
}

// monitorOrder sorts monitor indexes left-to-right, then top-to-bottom.
func monitorOrder(monitors []wm.Monitor) []int {
	order := make([]int, len(monitors))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		ma, mb := monitors[order[a]].Geometry.Position, monitors[order[b]].Geometry.Position
		if ma.X != mb.X {
			return ma.X < mb.X
		}
		return ma.Y < mb.Y
	})
	return order
}

func unionBounds(monitors []wm.Monitor) wm.Rect {
	first := monitors[0].Geometry
	minX, minY := first.Position.X, first.Position.Y
	maxX, maxY := first.Right(), first.Bottom()
	for _, m := range monitors[1:] {
		g := m.Geometry
		if g.Position.X < minX {
			minX = g.Position.X
		}
		if g.Position.Y < minY {
			minY = g.Position.Y
		}
		if g.Right() > maxX {
			maxX = g.Right()
		}
		if g.Bottom() > maxY {
			maxY = g.Bottom()
		}
	}
	return wm.NewRect(minX, minY, maxX-minX, maxY-minY)
}

// scaleRect maps a pixel rect inside bounds onto terminal cells. Edges are
// rounded independently so adjacent monitors stay gap-free.
func scaleRect(geometry, bounds wm.Rect, size wm.Size) wm.Rect {
	if bounds.Size.Width <= 0 || bounds.Size.Height <= 0 {
		return wm.NewRect(0, 0, size.Width, size.Height)
	}
	x1 := scaleEdge(geometry.Position.X-bounds.Position.X, bounds.Size.Width, size.Width)
	x2 := scaleEdge(geometry.Right()-bounds.Position.X, bounds.Size.Width, size.Width)
	y1 := scaleEdge(geometry.Position.Y-bounds.Position.Y, bounds.Size.Height, size.Height)
	y2 := scaleEdge(geometry.Bottom()-bounds.Position.Y, bounds.Size.Height, size.Height)
	return wm.NewRect(x1, y1, x2-x1, y2-y1)
}

func scaleEdge(offset, total, target int) int {
	v := int(math.Round(float64(offset) * float64(target) / float64(total)))
	if v < 0 {
		return 0
	}
	if v > target {
		return target
	}
	return v
}

// layoutMonitor stacks workspaces inside the monitor interior: inactive ones
// collapse to one header line, the active one takes the remainder. Rows that
// do not fit are truncated.
func layoutMonitor(monitor *wm.Monitor, rect wm.Rect, lay *Layout) {
	interior := inset(rect)
	if interior.Size.Width < 1 || interior.Size.Height < 1 {
		return
	}

	collapsed := 0
	for i := range monitor.Workspaces {
		if !monitor.Workspaces[i].HasFocus {
			collapsed++
		}
	}

	y := interior.Position.Y
	remaining := interior.Size.Height
	for i := range monitor.Workspaces {
		ws := &monitor.Workspaces[i]
		if remaining < 1 {
			return
		}
		height := 1
		if ws.HasFocus {
			height = remaining - collapsed
			if height < 1 {
				height = 1
			}
		} else {
			collapsed--
		}
		if height > remaining {
			height = remaining
		}
		wsRect := wm.NewRect(interior.Position.X, y, interior.Size.Width, height)
		lay.Elements = append(lay.Elements, Element{
			Kind:      KindWorkspace,
			ID:        ws.ID,
			Rect:      wsRect,
			Monitor:   monitor,
			Workspace: ws,
			Collapsed: !ws.HasFocus,
		})
		if ws.HasFocus && height > 1 {
			content := wm.NewRect(wsRect.Position.X, wsRect.Position.Y+1, wsRect.Size.Width, height-1)
			layoutWorkspace(monitor, ws, content, lay)
		}
		y += height
		remaining -= height
	}
}

func layoutWorkspace(monitor *wm.Monitor, ws *wm.Workspace, content wm.Rect, lay *Layout) {
	tiled := make([]*wm.Window, 0, len(ws.Windows))
	for i := range ws.Windows {
		if ws.Windows[i].Tiled() {
			tiled = append(tiled, &ws.Windows[i])
		}
	}

	shares := Shares(tiled)
	edges := partition(content, ws.Tiling, shares)
	for i, w := range tiled {
		rect := edges[i]
		if rect.Size.Width < 1 || rect.Size.Height < 1 {
			continue
		}
		lay.Elements = append(lay.Elements, Element{
			Kind:      KindWindow,
			ID:        w.ID,
			Rect:      rect,
			Monitor:   monitor,
			Workspace: ws,
			Window:    w,
			Share:     shares[i],
		})
	}

	for i := range ws.Windows {
		w := &ws.Windows[i]
		if !w.Floats() {
			continue
		}
		rect := anchorFloating(w, monitor, content)
		lay.Elements = append(lay.Elements, Element{
			Kind:      KindWindow,
			ID:        w.ID,
			Rect:      rect,
			Monitor:   monitor,
			Workspace: ws,
			Window:    w,
			Floating:  true,
		})
	}
}

// Shares renormalizes tiling fractions so they sum to 1. Windows without a
// recorded fraction split the residual equally; when every fraction is
// missing or the sum degenerates, all windows share equally.
func Shares(windows []*wm.Window) []float64 {
	if len(windows) == 0 {
		return nil
	}
	shares := make([]float64, len(windows))
	present := 0.0
	missing := 0
	for i, w := range windows {
		if w.TilingSize != nil && *w.TilingSize > 0 {
			shares[i] = *w.TilingSize
			present += shares[i]
		} else {
			shares[i] = -1
			missing++
		}
	}
	if missing > 0 {
		residual := 1 - present
		if residual < 0 {
			residual = 0
		}
		fill := residual / float64(missing)
		for i := range shares {
			if shares[i] < 0 {
				shares[i] = fill
			}
		}
	}
	total := 0.0
	for _, s := range shares {
		total += s
	}
	if total <= 0 {
		equal := 1 / float64(len(shares))
		for i := range shares {
			shares[i] = equal
		}
		return shares
	}
	for i := range shares {
		shares[i] /= total
	}
	return shares
}

// partition splits the content rect along the tiling axis. Cumulative
// rounding guarantees the union exactly covers the rect with no gaps or
// overlaps.
func partition(content wm.Rect, direction wm.TilingDirection, shares []float64) []wm.Rect {
	rects := make([]wm.Rect, len(shares))
	total := content.Size.Width
	if direction == wm.TilingVertical {
		total = content.Size.Height
	}
	cum := 0.0
	prev := 0
	for i, share := range shares {
		cum += share
		edge := int(math.Round(cum * float64(total)))
		if i == len(shares)-1 {
			edge = total
		}
		span := edge - prev
		if direction == wm.TilingVertical {
			rects[i] = wm.NewRect(content.Position.X, content.Position.Y+prev, content.Size.Width, span)
		} else {
			rects[i] = wm.NewRect(content.Position.X+prev, content.Position.Y, span, content.Size.Height)
		}
		prev = edge
	}
	return rects
}

// anchorFloating scales the window's recorded geometry from monitor pixel
// space into the workspace content rect and clamps it inside.
func anchorFloating(w *wm.Window, monitor *wm.Monitor, content wm.Rect) wm.Rect {
	scaled := scaleRect(w.Geometry, monitor.Geometry, content.Size)
	rect := wm.NewRect(
		content.Position.X+scaled.Position.X,
		content.Position.Y+scaled.Position.Y,
		max(scaled.Size.Width, 1),
		max(scaled.Size.Height, 1),
	)
	if rect.Right() > content.Right() {
		rect.Position.X = content.Right() - rect.Size.Width
	}
	if rect.Bottom() > content.Bottom() {
		rect.Position.Y = content.Bottom() - rect.Size.Height
	}
	if rect.Position.X < content.Position.X {
		rect.Position.X = content.Position.X
	}
	if rect.Position.Y < content.Position.Y {
		rect.Position.Y = content.Position.Y
	}
	if rect.Right() > content.Right() {
		rect.Size.Width = content.Right() - rect.Position.X
	}
	if rect.Bottom() > content.Bottom() {
		rect.Size.Height = content.Bottom() - rect.Position.Y
	}
	return rect
}

// inset shrinks a rect by one cell on every side, reserving the border.
func inset(r wm.Rect) wm.Rect {
	return wm.NewRect(r.Position.X+1, r.Position.Y+1, r.Size.Width-2, r.Size.Height-2)
}

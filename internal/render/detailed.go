package render

import (
	"fmt"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/muesli/reflow/truncate"

	"github.com/atomicstack/glazewm-top/internal/layout"
	"github.com/atomicstack/glazewm-top/internal/wm"
)

type borderSet struct {
	topLeft, topRight, bottomLeft, bottomRight rune
	horizontal, vertical                       rune
}

var (
	singleBorder = borderSet{'┌', '┐', '└', '┘', '─', '│'}
	doubleBorder = borderSet{'╔', '╗', '╚', '╝', '═', '║'}
)

// renderDetailed draws the layout as nested boxes on a rune canvas. When any
// windows fall outside spatial layout, the bottom line becomes their summary.
// A non-empty filter leaves non-matching windows as blank space without
// disturbing the positions of the rest.
func (r *Renderer) renderDetailed(snap *wm.Snapshot, size wm.Size, filter string) Frame {
	if size.Width < 1 || size.Height < 1 {
		return Frame{}
	}
	if snap == nil || len(snap.Monitors) == 0 {
		return Frame{Lines: padLines([]string{"no monitors reported"}, size)}
	}

	canvasHeight := size.Height
	hasHidden := snap.HiddenWindowCount() > 0
	if hasHidden && canvasHeight > 1 {
		canvasHeight--
	}

	lay := layout.Compute(snap, wm.Size{Width: size.Width, Height: canvasHeight})
	c := newCanvas(size.Width, canvasHeight)

	for i := range lay.Elements {
		el := &lay.Elements[i]
		switch el.Kind {
		case layout.KindMonitor:
			r.drawMonitor(c, el)
		case layout.KindWorkspace:
			r.drawWorkspaceHeader(c, el)
		case layout.KindWindow:
			if filter != "" && !fuzzy.MatchFold(filter, el.Window.DisplayName()) {
				continue
			}
			r.drawWindow(c, el)
		}
	}

	lines := c.lines()
	if hasHidden {
		lines = append(lines, truncate.StringWithTail(hiddenSummary(lay.Hidden), uint(size.Width), "…"))
	}
	return Frame{Lines: padLines(lines, size)}
}

func (r *Renderer) drawMonitor(c *canvas, el *layout.Element) {
	c.box(el.Rect, singleBorder)
	label := fmt.Sprintf(" %s (%dx%d) ", el.Monitor.ID, el.Monitor.Geometry.Size.Width, el.Monitor.Geometry.Size.Height)
	if el.Monitor.HasFocus {
		label = fmt.Sprintf(" %s (%dx%d) [Active] ", el.Monitor.ID, el.Monitor.Geometry.Size.Width, el.Monitor.Geometry.Size.Height)
	}
	c.text(el.Rect.Position.X+1, el.Rect.Position.Y, el.Rect.Size.Width-2, label)
}

func (r *Renderer) drawWorkspaceHeader(c *canvas, el *layout.Element) {
	ws := el.Workspace
	header := fmt.Sprintf("WS %s (%d windows)", ws.Name, ws.WindowCount())
	if ws.HasFocus {
		header = fmt.Sprintf("WS %s [Active] (%d windows)", ws.Name, ws.WindowCount())
	}
	c.text(el.Rect.Position.X, el.Rect.Position.Y, el.Rect.Size.Width, header)
}

func (r *Renderer) drawWindow(c *canvas, el *layout.Element) {
	w := el.Window
	border := singleBorder
	if w.HasFocus {
		border = doubleBorder
	}
	rect := el.Rect

	if rect.Size.Width < 4 || rect.Size.Height < 3 {
		// Too small for a box, write the label straight into the cells.
		c.text(rect.Position.X, rect.Position.Y, rect.Size.Width, windowLabel(el))
		return
	}

	c.box(rect, border)
	inner := rect.Size.Width - 2
	c.text(rect.Position.X+1, rect.Position.Y+1, inner, windowLabel(el))
	if rect.Size.Height > 3 {
		c.text(rect.Position.X+1, rect.Position.Y+2, inner, w.DisplayName())
	}
}

// windowLabel summarizes a window: state indicator, tiling share for tiled
// windows, and the real pixel size.
func windowLabel(el *layout.Element) string {
	w := el.Window
	parts := []string{w.StateIndicator()}
	if !el.Floating && el.Share > 0 {
		parts = append(parts, fmt.Sprintf("%d%%", int(el.Share*100+0.5)))
	}
	parts = append(parts, fmt.Sprintf("%dx%d", w.Geometry.Size.Width, w.Geometry.Size.Height))
	if w.HasFocus {
		parts = append(parts, "(Focused)")
	}
	return strings.Join(parts, " ")
}

func hiddenSummary(hidden []layout.HiddenWindow) string {
	entries := make([]string, 0, len(hidden))
	for _, h := range hidden {
		entries = append(entries, fmt.Sprintf("%s %s (WS %s)", h.Window.StateIndicator(), h.Window.DisplayName(), h.Workspace))
	}
	return fmt.Sprintf("Hidden (%d): %s", len(hidden), strings.Join(entries, ", "))
}

func padLines(lines []string, size wm.Size) []string {
	for len(lines) < size.Height {
		lines = append(lines, "")
	}
	return lines[:size.Height]
}

// canvas is a fixed grid of runes used for box drawing.
type canvas struct {
	width, height int
	cells         [][]rune
}

func newCanvas(width, height int) *canvas {
	cells := make([][]rune, height)
	for y := range cells {
		row := make([]rune, width)
		for x := range row {
			row[x] = ' '
		}
		cells[y] = row
	}
	return &canvas{width: width, height: height, cells: cells}
}

func (c *canvas) set(x, y int, r rune) {
	if x < 0 || y < 0 || x >= c.width || y >= c.height {
		return
	}
	c.cells[y][x] = r
}

// text writes a clipped string starting at x,y using at most maxWidth cells.
func (c *canvas) text(x, y, maxWidth int, s string) {
	if maxWidth <= 0 {
		return
	}
	clipped := truncate.StringWithTail(s, uint(maxWidth), "…")
	for i, r := range []rune(clipped) {
		c.set(x+i, y, r)
	}
}

func (c *canvas) box(rect wm.Rect, b borderSet) {
	x1, y1 := rect.Position.X, rect.Position.Y
	x2, y2 := rect.Right()-1, rect.Bottom()-1
	if x2 <= x1 || y2 <= y1 {
		return
	}
	for x := x1 + 1; x < x2; x++ {
		c.set(x, y1, b.horizontal)
		c.set(x, y2, b.horizontal)
	}
	for y := y1 + 1; y < y2; y++ {
		c.set(x1, y, b.vertical)
		c.set(x2, y, b.vertical)
	}
	c.set(x1, y1, b.topLeft)
	c.set(x2, y1, b.topRight)
	c.set(x1, y2, b.bottomLeft)
	c.set(x2, y2, b.bottomRight)
}

func (c *canvas) lines() []string {
	lines := make([]string, c.height)
	for y, row := range c.cells {
		lines[y] = strings.TrimRight(string(row), " ")
	}
	return lines
}

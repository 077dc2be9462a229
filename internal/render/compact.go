package render

import (
	"fmt"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/muesli/reflow/truncate"

	"github.com/atomicstack/glazewm-top/internal/format/table"
	"github.com/atomicstack/glazewm-top/internal/wm"
)

// renderCompact draws the hierarchy as an indented tree. A non-empty filter
// keeps only windows whose display name fuzzy-matches it; workspaces and
// monitors always stay visible so the tree keeps its shape.
func (r *Renderer) renderCompact(snap *wm.Snapshot, size wm.Size, filter string) Frame {
	if size.Width < 1 || size.Height < 1 {
		return Frame{}
	}
	if snap == nil || len(snap.Monitors) == 0 {
		return Frame{Lines: padLines([]string{r.styles.Stale.Render("no monitors reported")}, size)}
	}

	var lines []string
	for i := range snap.Monitors {
		monitor := &snap.Monitors[i]
		lines = append(lines, r.monitorLine(monitor))
		for j := range monitor.Workspaces {
			ws := &monitor.Workspaces[j]
			lastWS := j == len(monitor.Workspaces)-1
			lines = append(lines, r.workspaceLine(ws, lastWS))
			lines = append(lines, r.windowLines(ws, lastWS, filter, size.Width)...)
		}
	}
	for i, line := range lines {
		lines[i] = truncate.StringWithTail(line, uint(size.Width), "…")
	}
	return Frame{Lines: padLines(lines, size)}
}

func (r *Renderer) monitorLine(monitor *wm.Monitor) string {
	active := ""
	style := r.styles.Monitor
	if monitor.HasFocus {
		active = " [Active]"
		style = r.styles.MonitorActive
	}
	return style.Render(fmt.Sprintf("Monitor %s (%dx%d)%s (%d windows)",
		monitor.ID, monitor.Geometry.Size.Width, monitor.Geometry.Size.Height, active, monitor.TotalWindowCount()))
}

func (r *Renderer) workspaceLine(ws *wm.Workspace, last bool) string {
	branch := "├─"
	if last {
		branch = "└─"
	}
	active := ""
	style := r.styles.Workspace
	if ws.HasFocus {
		active = " [Active]"
		style = r.styles.WorkspaceFoc
	}
	return fmt.Sprintf("%s %s", branch, style.Render(fmt.Sprintf("WS %s%s (%d windows)", ws.Name, active, ws.WindowCount())))
}

func (r *Renderer) windowLines(ws *wm.Workspace, lastWS bool, filter string, width int) []string {
	stem := "│   "
	if lastWS {
		stem = "    "
	}

	kept := make([]*wm.Window, 0, len(ws.Windows))
	for i := range ws.Windows {
		w := &ws.Windows[i]
		if filter != "" && !fuzzy.MatchFold(filter, w.DisplayName()) {
			continue
		}
		kept = append(kept, w)
	}

	rows := make([][]string, 0, len(kept))
	for _, w := range kept {
		focused := ""
		if w.HasFocus {
			focused = "(Focused)"
		}
		rows = append(rows, []string{w.StateIndicator(), w.DisplayName(), focused})
	}
	aligned := table.Format(rows, []table.Alignment{table.AlignLeft, table.AlignLeft, table.AlignLeft})

	lines := make([]string, 0, len(kept))
	for i, w := range kept {
		branch := "├─"
		if i == len(kept)-1 {
			branch = "└─"
		}
		style := r.styles.Window
		if w.HasFocus {
			style = r.styles.WindowFocused
		} else if w.OffScreen() {
			style = r.styles.WindowHidden
		}
		lines = append(lines, fmt.Sprintf("%s%s %s", stem, branch, style.Render(aligned[i])))
	}
	if filter != "" && len(kept) == 0 && len(ws.Windows) > 0 {
		lines = append(lines, fmt.Sprintf("%s%s", stem, r.styles.WindowHidden.Render(fmt.Sprintf("(%d filtered)", len(ws.Windows)))))
	}
	return lines
}

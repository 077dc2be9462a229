// Package render turns a computed layout into terminal frames and tracks
// which line ranges changed between consecutive frames.
package render

// Region is a contiguous range of changed lines, inclusive on both ends.
type Region struct {
	Top    int
	Bottom int
}

// Frame is one fully rendered screen as a slice of lines.
type Frame struct {
	Lines []string
}

// Diff compares two frames line by line and returns the merged regions that
// differ. A length change marks everything from the first divergence to the
// end of the longer frame.
func Diff(prev, curr Frame) []Region {
	limit := len(prev.Lines)
	if len(curr.Lines) > limit {
		limit = len(curr.Lines)
	}
	var regions []Region
	open := -1
	for i := 0; i < limit; i++ {
		var a, b string
		if i < len(prev.Lines) {
			a = prev.Lines[i]
		}
		if i < len(curr.Lines) {
			b = curr.Lines[i]
		}
		if a != b {
			if open < 0 {
				open = i
			}
			continue
		}
		if open >= 0 {
			regions = append(regions, Region{Top: open, Bottom: i - 1})
			open = -1
		}
	}
	if open >= 0 {
		regions = append(regions, Region{Top: open, Bottom: limit - 1})
	}
	return regions
}

// Package matrix decodes bitpacked switch-matrix snapshots and diffs
// consecutive snapshots into press/release events.
package matrix

// Grid is a pressed/released view of the switch matrix, indexed [row][col].
type Grid [][]bool

// Event is one switch transition derived by diffing snapshots.
type Event struct {
	Row     int
	Col     int
	Pressed bool
}

// BytesPerRow is the packed width of one matrix row.
func BytesPerRow(cols int) int {
	return (cols + 7) / 8
}

// NewGrid returns an all-released grid.
func NewGrid(rows, cols int) Grid {
	g := make(Grid, rows)
	for r := range g {
		g[r] = make([]bool, cols)
	}
	return g
}

// Decode unpacks a raw matrix buffer: bit col%8 of byte
// row*bytesPerRow + col/8 is the switch at (row, col). Bytes beyond the end
// of a truncated buffer read as released; a short read from a batched matrix
// query degrades to unset cells, never an error.
func Decode(raw []byte, rows, cols int) Grid {
	bytesPerRow := BytesPerRow(cols)
	g := NewGrid(rows, cols)
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			idx := row*bytesPerRow + col/8
			if idx >= len(raw) {
				continue
			}
			g[row][col] = (raw[idx]>>(col%8))&1 == 1
		}
	}
	return g
}

// Diff reports every cell whose state differs from prev, row-major. A nil
// prev is treated as all-released.
func (g Grid) Diff(prev Grid) []Event {
	var events []Event
	for row := range g {
		for col := range g[row] {
			was := false
			if prev != nil && row < len(prev) && col < len(prev[row]) {
				was = prev[row][col]
			}
			if g[row][col] != was {
				events = append(events, Event{Row: row, Col: col, Pressed: g[row][col]})
			}
		}
	}
	return events
}

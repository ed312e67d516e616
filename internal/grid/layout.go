package grid

import "github.com/codefionn/xl/internal/cellref"

// InsertRowAfter opens an empty row below row, shifting cells, styles and
// heights down.
func (s *Sheet) InsertRowAfter(row int) {
	below := func(r cellref.Ref) bool { return r.Row > row }
	down := func(r cellref.Ref) cellref.Ref { return cellref.Ref{Row: r.Row + 1, Col: r.Col} }
	s.cells = shiftRefs(s.cells, below, down)
	s.styles = shiftRefs(s.styles, below, down)
	s.rowHeights = shiftIndex(s.rowHeights, row, 1)
	s.rows++
	s.touch()
}

// InsertColAfter opens an empty column right of col.
func (s *Sheet) InsertColAfter(col int) {
	right := func(r cellref.Ref) bool { return r.Col > col }
	shift := func(r cellref.Ref) cellref.Ref { return cellref.Ref{Row: r.Row, Col: r.Col + 1} }
	s.cells = shiftRefs(s.cells, right, shift)
	s.styles = shiftRefs(s.styles, right, shift)
	s.colWidths = shiftIndex(s.colWidths, col, 1)
	s.cols++
	s.touch()
}

// DeleteRow removes row and shifts everything below up. At least one row
// remains.
func (s *Sheet) DeleteRow(row int) {
	if row < 0 || row >= s.rows {
		return
	}
	for ref := range s.cells {
		if ref.Row == row {
			delete(s.cells, ref)
		}
	}
	for ref := range s.styles {
		if ref.Row == row {
			delete(s.styles, ref)
		}
	}
	delete(s.rowHeights, row)

	below := func(r cellref.Ref) bool { return r.Row > row }
	up := func(r cellref.Ref) cellref.Ref { return cellref.Ref{Row: r.Row - 1, Col: r.Col} }
	s.cells = shiftRefs(s.cells, below, up)
	s.styles = shiftRefs(s.styles, below, up)
	s.rowHeights = shiftIndex(s.rowHeights, row, -1)
	s.rows = max(s.rows-1, 1)
	s.touch()
}

// DeleteCol removes col and shifts everything to its right left. At least
// one column remains.
func (s *Sheet) DeleteCol(col int) {
	if col < 0 || col >= s.cols {
		return
	}
	for ref := range s.cells {
		if ref.Col == col {
			delete(s.cells, ref)
		}
	}
	for ref := range s.styles {
		if ref.Col == col {
			delete(s.styles, ref)
		}
	}
	delete(s.colWidths, col)

	right := func(r cellref.Ref) bool { return r.Col > col }
	left := func(r cellref.Ref) cellref.Ref { return cellref.Ref{Row: r.Row, Col: r.Col - 1} }
	s.cells = shiftRefs(s.cells, right, left)
	s.styles = shiftRefs(s.styles, right, left)
	s.colWidths = shiftIndex(s.colWidths, col, -1)
	s.cols = max(s.cols-1, 1)
	s.touch()
}

// shiftRefs rebuilds m with every key matching moved by to.
func shiftRefs[V any](m map[cellref.Ref]V, match func(cellref.Ref) bool, to func(cellref.Ref) cellref.Ref) map[cellref.Ref]V {
	out := make(map[cellref.Ref]V, len(m))
	for ref, v := range m {
		if match(ref) {
			ref = to(ref)
		}
		out[ref] = v
	}
	return out
}

// shiftIndex moves every key greater than pivot by delta.
func shiftIndex(m map[int]int, pivot, delta int) map[int]int {
	out := make(map[int]int, len(m))
	for k, v := range m {
		if k > pivot {
			k += delta
		}
		out[k] = v
	}
	return out
}

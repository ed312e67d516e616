package cellref

import "strings"

// Rect is an inclusive rectangle of cells with Min <= Max on both axes.
type Rect struct {
	Min Ref
	Max Ref
}

// NewRect normalizes two corners given in any order.
func NewRect(a, b Ref) Rect {
	return Rect{
		Min: Ref{Row: min(a.Row, b.Row), Col: min(a.Col, b.Col)},
		Max: Ref{Row: max(a.Row, b.Row), Col: max(a.Col, b.Col)},
	}
}

// Single is the one-cell rectangle at r.
func Single(r Ref) Rect {
	return Rect{Min: r, Max: r}
}

// ParseRange reads "A1:B3". Both corners must be valid labels; the result is
// normalized so "B3:A1" and "A1:B3" are the same rectangle.
func ParseRange(text string) (Rect, bool) {
	start, end, found := strings.Cut(text, ":")
	if !found {
		return Rect{}, false
	}
	a, ok := ParseRef(start)
	if !ok {
		return Rect{}, false
	}
	b, ok := ParseRef(end)
	if !ok {
		return Rect{}, false
	}
	return NewRect(a, b), true
}

// Rows is the number of rows covered.
func (r Rect) Rows() int { return r.Max.Row - r.Min.Row + 1 }

// Cols is the number of columns covered.
func (r Rect) Cols() int { return r.Max.Col - r.Min.Col + 1 }

// IsSingle reports whether the rectangle covers exactly one cell.
func (r Rect) IsSingle() bool { return r.Min == r.Max }

// Contains reports whether (row, col) lies inside the rectangle.
func (r Rect) Contains(row, col int) bool {
	return row >= r.Min.Row && row <= r.Max.Row && col >= r.Min.Col && col <= r.Max.Col
}

// Each visits every cell in row-major order until fn returns false.
func (r Rect) Each(fn func(row, col int) bool) {
	for row := r.Min.Row; row <= r.Max.Row; row++ {
		for col := r.Min.Col; col <= r.Max.Col; col++ {
			if !fn(row, col) {
				return
			}
		}
	}
}

// String renders "A1" for a single cell and "A1:B3" otherwise.
func (r Rect) String() string {
	if r.IsSingle() {
		return r.Min.String()
	}
	return r.Min.String() + ":" + r.Max.String()
}

package grid

import (
	"strings"

	"github.com/codefionn/xl/internal/cellref"
)

// ClipCell is one copied cell, positioned relative to the clip origin.
type ClipCell struct {
	Row, Col int
	Raw      string
	Style    Style
	Styled   bool
}

// Clip is the internal clipboard: the cells of a copied rectangle plus its
// TSV rendering for the system clipboard.
type Clip struct {
	Cells  []ClipCell
	Cut    bool
	Origin cellref.Ref
	Text   string
}

// Copy captures r. Empty unstyled cells are left out of Cells but still
// take part in Text, so the TSV keeps its shape.
func (s *Sheet) Copy(r cellref.Rect, cut bool) Clip {
	clip := Clip{Cut: cut, Origin: r.Min}

	var b strings.Builder
	for row := r.Min.Row; row <= r.Max.Row; row++ {
		if row > r.Min.Row {
			b.WriteByte('\n')
		}
		for col := r.Min.Col; col <= r.Max.Col; col++ {
			if col > r.Min.Col {
				b.WriteByte('\t')
			}
			raw := s.Cell(row, col)
			b.WriteString(raw)

			st, styled := s.styles[cellref.Ref{Row: row, Col: col}]
			if raw != "" || styled {
				clip.Cells = append(clip.Cells, ClipCell{
					Row:    row - r.Min.Row,
					Col:    col - r.Min.Col,
					Raw:    raw,
					Style:  st,
					Styled: styled,
				})
			}
		}
	}
	clip.Text = b.String()
	return clip
}

// PasteClip writes clip with its origin at at. A cut clip first clears its
// source cells. The returned clip is what should stay on the clipboard: a
// pasted cut becomes a copy.
func (s *Sheet) PasteClip(clip Clip, at cellref.Ref) Clip {
	if clip.Cut {
		for _, c := range clip.Cells {
			src := cellref.Ref{Row: clip.Origin.Row + c.Row, Col: clip.Origin.Col + c.Col}
			delete(s.cells, src)
			delete(s.styles, src)
		}
	}

	for _, c := range clip.Cells {
		dst := cellref.Ref{Row: at.Row + c.Row, Col: at.Col + c.Col}
		s.Grow(dst.Row+1, dst.Col+1)
		if c.Raw != "" {
			s.cells[dst] = c.Raw
		}
		if c.Styled {
			s.styles[dst] = c.Style
		}
	}
	s.touch()

	clip.Cut = false
	return clip
}

// PasteText writes tab-separated text at at. Empty fields leave the
// destination untouched.
func (s *Sheet) PasteText(text string, at cellref.Ref) {
	text = strings.TrimSuffix(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	if text == "" {
		return
	}
	for i, line := range strings.Split(text, "\n") {
		row := at.Row + i
		s.Grow(row+1, 0)
		for j, value := range strings.Split(line, "\t") {
			col := at.Col + j
			s.Grow(0, col+1)
			if value != "" {
				s.cells[cellref.Ref{Row: row, Col: col}] = value
			}
		}
	}
	s.touch()
}

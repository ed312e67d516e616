// Package cellref converts between A1-style cell labels and zero-based
// (row, column) pairs.
//
// Columns use bijective base-26 (A=1 ... Z=26, AA=27); there is no zero
// digit. Rows are 1-based in text and 0-based in the returned pair.
package cellref

import (
	"strconv"
	"strings"
)

// Ref is a zero-based cell position.
type Ref struct {
	Row int
	Col int
}

// String returns the A1 label for the position.
func (r Ref) String() string {
	return Format(r.Row, r.Col)
}

// Parse reads a label such as "B7" or "aa10". It rejects empty runs,
// characters other than ASCII letters and digits, letters after digits and
// row zero.
func Parse(text string) (row, col int, ok bool) {
	s := strings.ToUpper(strings.TrimSpace(text))
	if s == "" {
		return 0, 0, false
	}

	i := 0
	for i < len(s) && s[i] >= 'A' && s[i] <= 'Z' {
		i++
	}
	letters, digits := s[:i], s[i:]
	if letters == "" || digits == "" {
		return 0, 0, false
	}
	for j := 0; j < len(digits); j++ {
		if digits[j] < '0' || digits[j] > '9' {
			return 0, 0, false
		}
	}

	col = 0
	for j := 0; j < len(letters); j++ {
		col = col*26 + int(letters[j]-'A'+1)
		if col > maxColumn {
			return 0, 0, false
		}
	}

	n, err := strconv.Atoi(digits)
	if err != nil || n == 0 {
		return 0, 0, false
	}
	return n - 1, col - 1, true
}

// maxColumn keeps absurd labels from overflowing int.
const maxColumn = 1 << 30

// ParseRef is Parse returning a Ref.
func ParseRef(text string) (Ref, bool) {
	row, col, ok := Parse(text)
	return Ref{Row: row, Col: col}, ok
}

// ColumnName renders a zero-based column index as letters.
func ColumnName(col int) string {
	if col < 0 {
		return ""
	}
	var buf [16]byte
	i := len(buf)
	n := col + 1
	for n > 0 {
		n--
		i--
		buf[i] = byte('A' + n%26)
		n /= 26
	}
	return string(buf[i:])
}

// Format renders a zero-based position as an A1 label.
func Format(row, col int) string {
	return ColumnName(col) + strconv.Itoa(row+1)
}

package cellref

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input   string
		row     int
		col     int
		wantErr bool
	}{
		{"A1", 0, 0, false},
		{"B2", 1, 1, false},
		{"Z1", 0, 25, false},
		{"a1", 0, 0, false},
		{" c10 ", 9, 2, false},
		{"AA5", 4, 26, false},
		{"AZ1", 0, 51, false},
		{"BA1", 0, 52, false},
		{"A0", 0, 0, true},
		{"1A", 0, 0, true},
		{"A1B", 0, 0, true},
		{"A", 0, 0, true},
		{"12", 0, 0, true},
		{"", 0, 0, true},
		{"A-1", 0, 0, true},
		{"A1+B1", 0, 0, true},
		{"$A$1", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			row, col, ok := Parse(tt.input)
			if tt.wantErr {
				assert.False(t, ok)
				return
			}
			require.True(t, ok)
			assert.Equal(t, tt.row, row)
			assert.Equal(t, tt.col, col)
		})
	}
}

func TestColumnName(t *testing.T) {
	tests := map[int]string{
		0:   "A",
		1:   "B",
		25:  "Z",
		26:  "AA",
		27:  "AB",
		51:  "AZ",
		52:  "BA",
		701: "ZZ",
		702: "AAA",
	}
	for col, want := range tests {
		assert.Equal(t, want, ColumnName(col), "col %d", col)
	}
	assert.Equal(t, "", ColumnName(-1))
}

func TestRoundTrip(t *testing.T) {
	for row := 0; row < 10000; row += 37 {
		for col := 0; col < 2000; col++ {
			r, c, ok := Parse(Format(row, col))
			if !ok || r != row || c != col {
				t.Fatalf("round trip failed for (%d,%d): got (%d,%d,%v)", row, col, r, c, ok)
			}
		}
	}
}

func TestParseRange(t *testing.T) {
	r, ok := ParseRange("A3:A1")
	require.True(t, ok)
	assert.Equal(t, Ref{Row: 0, Col: 0}, r.Min)
	assert.Equal(t, Ref{Row: 2, Col: 0}, r.Max)

	swapped, ok := ParseRange("B1:A3")
	require.True(t, ok)
	assert.Equal(t, "A1:B3", swapped.String())
	assert.Equal(t, 3, swapped.Rows())
	assert.Equal(t, 2, swapped.Cols())

	_, ok = ParseRange("A1")
	assert.False(t, ok)
	_, ok = ParseRange("A1:x")
	assert.False(t, ok)
}

func TestRectEach(t *testing.T) {
	r := NewRect(Ref{Row: 1, Col: 1}, Ref{Row: 0, Col: 0})
	var seen []string
	r.Each(func(row, col int) bool {
		seen = append(seen, Format(row, col))
		return true
	})
	assert.Equal(t, []string{"A1", "B1", "A2", "B2"}, seen)
	assert.True(t, r.Contains(1, 0))
	assert.False(t, r.Contains(2, 0))
	assert.Equal(t, "C4", Single(Ref{Row: 3, Col: 2}).String())
}

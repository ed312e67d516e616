package fileio

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codefionn/xl/internal/grid"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestSaveCSVQuotesFields(t *testing.T) {
	s := grid.NewDefault()
	s.SetCell(0, 0, "a,b")
	s.SetCell(0, 1, `say "hi"`)
	s.SetCell(1, 0, "1")
	s.SetCell(1, 1, "line\nbreak")

	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, Save(path, s, CSV))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "\"a,b\",\"say \"\"hi\"\"\"\n1,\"line\nbreak\"\n", string(data))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "a,b", loaded.Cell(0, 0))
	assert.Equal(t, `say "hi"`, loaded.Cell(0, 1))
	assert.Equal(t, "line\nbreak", loaded.Cell(1, 1))
	assert.Equal(t, 100, loaded.Rows())
	assert.Equal(t, 26, loaded.Cols())
}

func TestSaveTSVIsRaw(t *testing.T) {
	s := grid.NewDefault()
	s.SetCell(0, 0, "a,b")
	s.SetCell(0, 2, "=SUM(A1:A2)")

	path := filepath.Join(t.TempDir(), "out.tsv")
	require.NoError(t, Save(path, s, TSV))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a,b\t\t=SUM(A1:A2)\n", string(data))
}

func TestLoadRaggedCSV(t *testing.T) {
	path := writeFile(t, "ragged.csv", "a,b,c\n1\n,,x\n")
	s, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "c", s.Cell(0, 2))
	assert.Equal(t, "1", s.Cell(1, 0))
	assert.Equal(t, "", s.Cell(1, 1))
	assert.Equal(t, "x", s.Cell(2, 2))
	assert.Equal(t, 5, s.Len())
}

func TestLoadGrowsPastDefaults(t *testing.T) {
	path := writeFile(t, "wide.tsv", "a"+strings.Repeat("\t", 29)+"z\n")
	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "z", s.Cell(0, 29))
	assert.Equal(t, 30, s.Cols())
}

func TestLoadBuffer(t *testing.T) {
	tests := []struct {
		name  string
		input string
		cells map[[2]int]string
		count int
	}{
		{
			name:  "ls output",
			input: "total 8\n-rw-r--r-- 1 root root 42 a.txt\n",
			cells: map[[2]int]string{{0, 0}: "total", {0, 1}: "8", {1, 5}: "a.txt"},
			count: 8,
		},
		{
			name:  "blank lines skipped",
			input: "a b\n\n   \nc\n",
			cells: map[[2]int]string{{0, 1}: "b", {1, 0}: "c"},
			count: 3,
		},
		{
			name:  "unicode",
			input: "héllo wörld\n日本 語\n",
			cells: map[[2]int]string{{0, 0}: "héllo", {1, 1}: "語"},
			count: 4,
		},
		{
			name:  "empty",
			input: "",
			cells: map[[2]int]string{},
			count: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := LoadBuffer([]byte(tt.input))
			for pos, want := range tt.cells {
				assert.Equal(t, want, s.Cell(pos[0], pos[1]))
			}
			assert.Equal(t, tt.count, s.Len())
			assert.Equal(t, 100, s.Rows())
		})
	}
}

func TestXLSXRoundTrip(t *testing.T) {
	s := grid.NewDefault()
	s.SetCell(0, 0, "1")
	s.SetCell(1, 0, "2.5")
	s.SetCell(2, 0, "=SUM(A1:A2)")
	s.SetCell(0, 1, "name")
	s.SetCell(3, 3, "=A1*2")
	s.SetStyle(0, 1, grid.Style{FG: "#ff0000", Bold: true, Align: grid.AlignCenter})
	s.SetColWidth(1, 20)

	path := filepath.Join(t.TempDir(), "book.xlsx")
	require.NoError(t, Save(path, s, XLSX))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "1", loaded.Cell(0, 0))
	assert.Equal(t, "2.5", loaded.Cell(1, 0))
	assert.Equal(t, "=SUM(A1:A2)", loaded.Cell(2, 0))
	assert.Equal(t, "name", loaded.Cell(0, 1))
	assert.Equal(t, "=A1*2", loaded.Cell(3, 3))
}

func TestNormalizeNumber(t *testing.T) {
	tests := map[string]string{
		"3.0":   "3",
		"1E-3":  "0.001",
		"2.50":  "2.5",
		"007":   "007",
		"v1.2":  "v1.2",
		"hello": "hello",
	}
	for in, want := range tests {
		assert.Equal(t, want, normalizeNumber(in), in)
	}
}

func TestXLDBRoundTrip(t *testing.T) {
	s := grid.New(40, 8)
	s.SetCell(0, 0, "10")
	s.SetCell(0, 1, "=A1*2")
	s.SetCell(5, 3, "text, with comma")
	s.SetStyle(0, 1, grid.Style{FG: "#00ff00", BG: "#000000", Bold: true, Align: grid.AlignRight})
	s.SetColWidth(3, 25)
	s.SetRowHeight(5, 2)

	path := filepath.Join(t.TempDir(), "sheet.xldb")
	require.NoError(t, Save(path, s, XLDB))
	// Saving twice replaces rather than appends.
	require.NoError(t, Save(path, s, XLDB))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, s.Refs(), loaded.Refs())
	assert.Equal(t, "=A1*2", loaded.Cell(0, 1))
	assert.Equal(t, "text, with comma", loaded.Cell(5, 3))
	assert.Equal(t, s.Style(0, 1), loaded.Style(0, 1))
	assert.Equal(t, 25, loaded.ColWidth(3))
	assert.Equal(t, 2, loaded.RowHeight(5))
	assert.Equal(t, 40, loaded.Rows())
	assert.Equal(t, 8, loaded.Cols())
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(writeFile(t, "notes.txt", "hello"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = Load(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)

	_, err = Load(filepath.Join(t.TempDir(), "missing.xldb"))
	assert.Error(t, err)

	_, err = Load(writeFile(t, "broken.xlsx", "not a zip"))
	assert.Error(t, err)
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path string
		want Format
		ok   bool
	}{
		{"a.csv", CSV, true},
		{"a.CSV", CSV, true},
		{"a.tsv", TSV, true},
		{"a.tab", TSV, true},
		{"a.xlsx", XLSX, true},
		{"a.xlsm", XLSX, true},
		{"a.xldb", XLDB, true},
		{"a.txt", CSV, false},
		{"noext", CSV, false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, ok := FormatFromPath(tt.path)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEnsureExt(t *testing.T) {
	assert.Equal(t, "out.csv", EnsureExt("out", CSV))
	assert.Equal(t, "out.csv", EnsureExt("out.csv", CSV))
	assert.Equal(t, "out.csv.tsv", EnsureExt("out.csv", TSV))
	assert.Equal(t, "book.xlsx", EnsureExt("book", XLSX))
	assert.Equal(t, "sheet.xldb", EnsureExt("sheet", XLDB))
}

package fileio

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/codefionn/xl/internal/consts"
	"github.com/codefionn/xl/internal/grid"
)

func loadDelimited(path string, sep rune, sheet *grid.Sheet) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()
	return readDelimited(f, sep, sheet)
}

// readDelimited reads records without a header. Rows may be ragged and
// empty fields leave their cell absent.
func readDelimited(r io.Reader, sep rune, sheet *grid.Sheet) error {
	reader := csv.NewReader(r)
	reader.Comma = sep
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	for row := 0; ; row++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to parse row %d: %w", row+1, err)
		}
		for col, field := range record {
			if field != "" {
				sheet.SetCell(row, col, field)
			}
		}
	}
}

func saveDelimited(path string, sep byte, sheet *grid.Sheet) error {
	var buf bytes.Buffer
	writeDelimited(&buf, sep, sheet)
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// writeDelimited renders the data rectangle. CSV fields containing a comma,
// a quote or a newline are quoted with inner quotes doubled; TSV is raw.
func writeDelimited(w io.Writer, sep byte, sheet *grid.Sheet) {
	bw := bufio.NewWriter(w)
	defer bw.Flush()

	maxRow, maxCol := sheet.Bounds()
	for row := 0; row <= maxRow; row++ {
		for col := 0; col <= maxCol; col++ {
			if col > 0 {
				bw.WriteByte(sep)
			}
			bw.WriteString(escapeField(sheet.Cell(row, col), sep))
		}
		bw.WriteByte('\n')
	}
}

func escapeField(s string, sep byte) string {
	if sep != ',' || !strings.ContainsAny(s, ",\"\n") {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// LoadBuffer builds a sheet from whitespace-separated text such as piped
// command output. Blank lines are skipped and do not produce rows.
func LoadBuffer(data []byte) *grid.Sheet {
	sheet := grid.NewDefault()
	row := 0
	for _, line := range strings.Split(string(bytes.ToValidUTF8(data, []byte("�"))), "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		for col, field := range fields {
			sheet.SetCell(row, col, field)
		}
		row++
	}
	sheet.Fit(consts.DefaultRows, consts.DefaultCols)
	return sheet
}

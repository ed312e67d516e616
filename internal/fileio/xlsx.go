package fileio

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/codefionn/xl/internal/cellref"
	"github.com/codefionn/xl/internal/formula"
	"github.com/codefionn/xl/internal/grid"
)

const xlsxSheet = "Sheet1"

// loadXLSX reads the first worksheet. Formula cells keep their formula;
// numeric values that are integral drop their fractional part.
func loadXLSX(path string, sheet *grid.Sheet) error {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return fmt.Errorf("%w in %s", ErrNoWorksheet, path)
	}
	name := sheets[0]

	rows, err := f.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return fmt.Errorf("failed to read worksheet %q: %w", name, err)
	}
	maxRow, maxCol := xlsxExtent(f, name, rows)
	for r := range maxRow {
		for c := range maxCol {
			axis, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return err
			}
			if expr, err := f.GetCellFormula(name, axis); err == nil && expr != "" {
				sheet.SetCell(r, c, "="+expr)
				continue
			}
			if r < len(rows) && c < len(rows[r]) && rows[r][c] != "" {
				sheet.SetCell(r, c, normalizeNumber(rows[r][c]))
			}
		}
	}
	return nil
}

// xlsxExtent widens the GetRows extent by the recorded dimension. GetRows
// drops trailing cells without a value, which includes formulas that were
// never calculated.
func xlsxExtent(f *excelize.File, name string, rows [][]string) (maxRow, maxCol int) {
	maxRow = len(rows)
	for _, cols := range rows {
		maxCol = max(maxCol, len(cols))
	}
	dim, err := f.GetSheetDimension(name)
	if err != nil {
		return maxRow, maxCol
	}
	_, end, _ := strings.Cut(dim, ":")
	if end == "" {
		end = dim
	}
	if c, r, err := excelize.CellNameToCoordinates(end); err == nil {
		maxRow, maxCol = max(maxRow, r), max(maxCol, c)
	}
	return maxRow, maxCol
}

// normalizeNumber rewrites stored floats such as "3.0" or "1E-3" in the
// form cells display. Plain text, including "007", is left alone.
func normalizeNumber(value string) string {
	if !strings.ContainsAny(value, ".eE") {
		return value
	}
	v, ok := formula.ParseNumber(value)
	if !ok {
		return value
	}
	return formula.FormatNumber(v)
}

func saveXLSX(path string, sheet *grid.Sheet) error {
	f := excelize.NewFile()
	defer f.Close()

	for _, ref := range sheet.Refs() {
		axis, err := excelize.CoordinatesToCellName(ref.Col+1, ref.Row+1)
		if err != nil {
			return err
		}
		raw := sheet.Cell(ref.Row, ref.Col)
		switch v, isNum := formula.ParseNumber(raw); {
		case formula.IsFormula(raw):
			err = f.SetCellFormula(xlsxSheet, axis, strings.TrimPrefix(raw, "="))
		case isNum:
			err = f.SetCellValue(xlsxSheet, axis, v)
		default:
			err = f.SetCellValue(xlsxSheet, axis, raw)
		}
		if err != nil {
			return fmt.Errorf("failed to write %s: %w", axis, err)
		}
	}

	if sheet.Len() > 0 {
		maxRow, maxCol := sheet.Bounds()
		end, err := excelize.CoordinatesToCellName(maxCol+1, maxRow+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetDimension(xlsxSheet, "A1:"+end); err != nil {
			return fmt.Errorf("failed to set dimension: %w", err)
		}
	}

	if err := writeXLSXStyles(f, sheet); err != nil {
		return err
	}
	for col, width := range sheet.ColWidths() {
		name := cellref.ColumnName(col)
		if err := f.SetColWidth(xlsxSheet, name, name, float64(width)); err != nil {
			return fmt.Errorf("failed to set width of column %s: %w", name, err)
		}
	}
	for row, height := range sheet.RowHeights() {
		// Terminal rows are one line; 15pt is the default spreadsheet line.
		if err := f.SetRowHeight(xlsxSheet, row+1, float64(height)*15); err != nil {
			return fmt.Errorf("failed to set height of row %d: %w", row+1, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func writeXLSXStyles(f *excelize.File, sheet *grid.Sheet) error {
	ids := make(map[grid.Style]int)
	for _, ref := range sheet.StyledRefs() {
		st := sheet.Style(ref.Row, ref.Col)
		id, ok := ids[st]
		if !ok {
			var err error
			if id, err = f.NewStyle(xlsxStyle(st)); err != nil {
				return fmt.Errorf("failed to create style: %w", err)
			}
			ids[st] = id
		}
		axis, err := excelize.CoordinatesToCellName(ref.Col+1, ref.Row+1)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(xlsxSheet, axis, axis, id); err != nil {
			return fmt.Errorf("failed to style %s: %w", axis, err)
		}
	}
	return nil
}

func xlsxStyle(st grid.Style) *excelize.Style {
	style := &excelize.Style{
		Font: &excelize.Font{Bold: st.Bold, Color: strings.TrimPrefix(st.FG, "#")},
	}
	if st.BG != "" {
		style.Fill = excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{strings.TrimPrefix(st.BG, "#")}}
	}
	if st.Align != grid.AlignAuto {
		style.Alignment = &excelize.Alignment{Horizontal: st.Align.String()}
	}
	return style
}

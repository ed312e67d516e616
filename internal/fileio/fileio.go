// Package fileio loads and saves sheets as CSV, TSV, XLSX and the sqlite
// backed .xldb format.
package fileio

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/codefionn/xl/internal/consts"
	"github.com/codefionn/xl/internal/grid"
	"github.com/codefionn/xl/internal/logger"
)

var (
	// ErrUnsupportedFormat is returned for paths whose extension has no reader.
	ErrUnsupportedFormat = errors.New("unsupported file format")
	// ErrNoWorksheet is returned for workbooks without sheets.
	ErrNoWorksheet = errors.New("no worksheets found")
)

// Format is an on-disk sheet format.
type Format int

const (
	CSV Format = iota
	TSV
	XLSX
	XLDB
)

// Formats in the order the save prompt offers them.
var Formats = []Format{CSV, TSV, XLSX, XLDB}

func (f Format) String() string {
	switch f {
	case TSV:
		return "TSV"
	case XLSX:
		return "XLSX"
	case XLDB:
		return "XLDB"
	default:
		return "CSV"
	}
}

// Ext is the default extension, with the dot.
func (f Format) Ext() string {
	return "." + strings.ToLower(f.String())
}

// FormatFromPath maps a file extension to a format.
func FormatFromPath(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return CSV, true
	case ".tsv", ".tab":
		return TSV, true
	case ".xlsx", ".xlsm":
		return XLSX, true
	case ".xldb":
		return XLDB, true
	}
	return CSV, false
}

// EnsureExt appends the format's extension unless path already has it.
func EnsureExt(path string, f Format) string {
	if got, ok := FormatFromPath(path); ok && got == f {
		return path
	}
	return path + f.Ext()
}

// Load reads a sheet, choosing the reader by extension. The result is sized
// to its data plus one row and column, but never below the defaults.
func Load(path string) (*grid.Sheet, error) {
	f, ok := FormatFromPath(path)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, strings.TrimPrefix(filepath.Ext(path), "."))
	}

	log := logger.Global().WithPrefix("fileio")
	sheet := grid.NewDefault()
	var err error
	switch f {
	case CSV:
		err = loadDelimited(path, ',', sheet)
	case TSV:
		err = loadDelimited(path, '\t', sheet)
	case XLSX:
		err = loadXLSX(path, sheet)
	case XLDB:
		err = loadXLDB(path, sheet)
	}
	if err != nil {
		log.Warn("load %s failed: %v", path, err)
		return nil, err
	}
	if f != XLDB {
		sheet.Fit(consts.DefaultRows, consts.DefaultCols)
	}
	log.Info("loaded %d cells from %s", sheet.Len(), path)
	return sheet, nil
}

// Save writes the sheet in format f. Rows 0..max and columns 0..max of the
// data bounds are written for the text formats.
func Save(path string, sheet *grid.Sheet, f Format) error {
	var err error
	switch f {
	case CSV:
		err = saveDelimited(path, ',', sheet)
	case TSV:
		err = saveDelimited(path, '\t', sheet)
	case XLSX:
		err = saveXLSX(path, sheet)
	case XLDB:
		err = saveXLDB(path, sheet)
	default:
		err = fmt.Errorf("unknown format %d", f)
	}
	if err != nil {
		return err
	}
	logger.Global().WithPrefix("fileio").Info("saved %d cells to %s as %s", sheet.Len(), path, f)
	return nil
}

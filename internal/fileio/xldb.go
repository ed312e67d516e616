package fileio

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strconv"

	_ "github.com/mattn/go-sqlite3"

	"github.com/codefionn/xl/internal/grid"
)

// xldbVersion is stored in meta and bumped on incompatible schema changes.
const xldbVersion = 1

const xldbSchema = `
CREATE TABLE IF NOT EXISTS meta (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS cells (
	row INTEGER NOT NULL,
	col INTEGER NOT NULL,
	raw TEXT NOT NULL,
	PRIMARY KEY (row, col)
);

CREATE TABLE IF NOT EXISTS styles (
	row INTEGER NOT NULL,
	col INTEGER NOT NULL,
	fg TEXT NOT NULL DEFAULT '',
	bg TEXT NOT NULL DEFAULT '',
	bold BOOLEAN NOT NULL DEFAULT FALSE,
	align TEXT NOT NULL DEFAULT 'auto',
	PRIMARY KEY (row, col)
);

CREATE TABLE IF NOT EXISTS col_widths (
	col INTEGER PRIMARY KEY,
	width INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS row_heights (
	row INTEGER PRIMARY KEY,
	height INTEGER NOT NULL
);
`

func openXLDB(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if _, err := db.Exec(xldbSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return db, nil
}

func loadXLDB(path string, sheet *grid.Sheet) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	db, err := openXLDB(path)
	if err != nil {
		return err
	}
	defer db.Close()

	meta, err := readMeta(db)
	if err != nil {
		return err
	}
	if v, _ := strconv.Atoi(meta["version"]); v > xldbVersion {
		return fmt.Errorf("%s was written by a newer xl (schema %d)", path, v)
	}

	rows, err := db.Query(`SELECT row, col, raw FROM cells`)
	if err != nil {
		return fmt.Errorf("failed to query cells: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var r, c int
		var raw string
		if err := rows.Scan(&r, &c, &raw); err != nil {
			return fmt.Errorf("failed to scan cell: %w", err)
		}
		sheet.SetCell(r, c, raw)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	if err := loadXLDBStyles(db, sheet); err != nil {
		return err
	}
	if err := loadXLDBSizes(db, sheet); err != nil {
		return err
	}

	nrows, _ := strconv.Atoi(meta["rows"])
	ncols, _ := strconv.Atoi(meta["cols"])
	sheet.Fit(nrows, ncols)
	return nil
}

func readMeta(db *sql.DB) (map[string]string, error) {
	rows, err := db.Query(`SELECT key, value FROM meta`)
	if err != nil {
		return nil, fmt.Errorf("failed to query meta: %w", err)
	}
	defer rows.Close()

	meta := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, fmt.Errorf("failed to scan meta: %w", err)
		}
		meta[k] = v
	}
	return meta, rows.Err()
}

func loadXLDBStyles(db *sql.DB, sheet *grid.Sheet) error {
	rows, err := db.Query(`SELECT row, col, fg, bg, bold, align FROM styles`)
	if err != nil {
		return fmt.Errorf("failed to query styles: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var r, c int
		var st grid.Style
		var align string
		if err := rows.Scan(&r, &c, &st.FG, &st.BG, &st.Bold, &align); err != nil {
			return fmt.Errorf("failed to scan style: %w", err)
		}
		st.Align = grid.ParseAlign(align)
		sheet.SetStyle(r, c, st)
	}
	return rows.Err()
}

func loadXLDBSizes(db *sql.DB, sheet *grid.Sheet) error {
	widths, err := db.Query(`SELECT col, width FROM col_widths`)
	if err != nil {
		return fmt.Errorf("failed to query column widths: %w", err)
	}
	defer widths.Close()
	for widths.Next() {
		var c, w int
		if err := widths.Scan(&c, &w); err != nil {
			return err
		}
		sheet.SetColWidth(c, w)
	}
	if err := widths.Err(); err != nil {
		return err
	}

	heights, err := db.Query(`SELECT row, height FROM row_heights`)
	if err != nil {
		return fmt.Errorf("failed to query row heights: %w", err)
	}
	defer heights.Close()
	for heights.Next() {
		var r, h int
		if err := heights.Scan(&r, &h); err != nil {
			return err
		}
		sheet.SetRowHeight(r, h)
	}
	return heights.Err()
}

// saveXLDB replaces the file's contents in one transaction.
func saveXLDB(path string, sheet *grid.Sheet) (err error) {
	db, err := openXLDB(path)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, db.Close())
	}()

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, table := range []string{"meta", "cells", "styles", "col_widths", "row_heights"} {
		if _, err = tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	meta := map[string]string{
		"version": strconv.Itoa(xldbVersion),
		"rows":    strconv.Itoa(sheet.Rows()),
		"cols":    strconv.Itoa(sheet.Cols()),
	}
	for k, v := range meta {
		if _, err = tx.Exec(`INSERT INTO meta (key, value) VALUES (?, ?)`, k, v); err != nil {
			return fmt.Errorf("failed to write meta: %w", err)
		}
	}

	for _, ref := range sheet.Refs() {
		if _, err = tx.Exec(`INSERT INTO cells (row, col, raw) VALUES (?, ?, ?)`,
			ref.Row, ref.Col, sheet.Cell(ref.Row, ref.Col)); err != nil {
			return fmt.Errorf("failed to write cell %s: %w", ref, err)
		}
	}
	for _, ref := range sheet.StyledRefs() {
		st := sheet.Style(ref.Row, ref.Col)
		if _, err = tx.Exec(`INSERT INTO styles (row, col, fg, bg, bold, align) VALUES (?, ?, ?, ?, ?, ?)`,
			ref.Row, ref.Col, st.FG, st.BG, st.Bold, st.Align.String()); err != nil {
			return fmt.Errorf("failed to write style %s: %w", ref, err)
		}
	}
	for c, w := range sheet.ColWidths() {
		if _, err = tx.Exec(`INSERT INTO col_widths (col, width) VALUES (?, ?)`, c, w); err != nil {
			return fmt.Errorf("failed to write column width: %w", err)
		}
	}
	for r, h := range sheet.RowHeights() {
		if _, err = tx.Exec(`INSERT INTO row_heights (row, height) VALUES (?, ?)`, r, h); err != nil {
			return fmt.Errorf("failed to write row height: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

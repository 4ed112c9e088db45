// Package export writes report tables to CSV, JSON and Excel files and
// renders them for terminal display.
package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/360EntSecGroup-Skylar/excelize"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cast"

	"retail-analytics/core/report"
	"retail-analytics/internal/errors"
)

// RenderTable writes a table in aligned text form
func RenderTable(w io.Writer, t report.Table) {
	tw := tablewriter.NewWriter(w)
	tw.SetHeader(t.Columns)
	tw.SetBorder(false)
	tw.SetAutoWrapText(false)
	tw.SetAlignment(tablewriter.ALIGN_LEFT)
	for _, row := range t.Rows {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = cellString(v)
		}
		tw.Append(cells)
	}
	tw.Render()
}

// WriteCSV writes each table to <dir>/<slug>.csv
func WriteCSV(dir string, tables []report.Table) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrap(errors.TypeInternal, "failed to create output directory", err)
	}
	for _, t := range tables {
		if err := writeTableCSV(filepath.Join(dir, slug(t.Title)+".csv"), t); err != nil {
			return err
		}
	}
	return nil
}

func writeTableCSV(path string, t report.Table) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(errors.TypeInternal, err, "cannot create %s", path)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(t.Columns); err != nil {
		return errors.Wrapf(errors.TypeInternal, err, "cannot write %s", path)
	}
	for _, row := range t.Rows {
		record := make([]string, len(row))
		for i, v := range row {
			record[i] = cellString(v)
		}
		if err := w.Write(record); err != nil {
			return errors.Wrapf(errors.TypeInternal, err, "cannot write %s", path)
		}
	}
	w.Flush()
	return w.Error()
}

// WriteJSON writes v as indented JSON
func WriteJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrap(errors.TypeInternal, "failed to marshal output", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return errors.Wrapf(errors.TypeInternal, err, "cannot write %s", path)
	}
	return nil
}

// WriteExcel writes the tables to a single workbook, one sheet per table
func WriteExcel(path string, tables []report.Table) error {
	f := excelize.NewFile()
	for i, t := range tables {
		sheet := sheetName(t.Title)
		if i == 0 {
			f.SetSheetName("Sheet1", sheet)
		} else {
			f.NewSheet(i+1, sheet)
		}
		for c, col := range t.Columns {
			f.SetCellValue(sheet, cellAxis(c, 1), col)
		}
		for r, row := range t.Rows {
			for c, v := range row {
				f.SetCellValue(sheet, cellAxis(c, r+2), cellString(v))
			}
		}
	}
	if err := f.SaveAs(path); err != nil {
		return errors.Wrapf(errors.TypeInternal, err, "cannot write %s", path)
	}
	return nil
}

func cellAxis(col, row int) string {
	return excelize.ToAlphaString(col) + cast.ToString(row)
}

// cellString formats a cell for text output. Nil stands for an undefined
// value and becomes an empty cell.
func cellString(v any) string {
	if v == nil {
		return ""
	}
	return cast.ToString(v)
}

func slug(title string) string {
	s := strings.ToLower(title)
	s = strings.ReplaceAll(s, " ", "_")
	return strings.Map(func(r rune) rune {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '_' {
			return r
		}
		return -1
	}, s)
}

// Sheet names are capped at 31 characters by the xlsx format.
func sheetName(title string) string {
	if len(title) > 31 {
		return title[:31]
	}
	return title
}

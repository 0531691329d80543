package testkit

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

// Cell values accepted by WriteWorkbook: nil leaves the cell blank, anything
// else is written through excelize.SetCellValue.
type Cell = any

// WriteWorkbook writes headers and rows to Sheet1 of a new xlsx file in a
// temp directory and returns its path.
func WriteWorkbook(tb testing.TB, name string, headers []string, rows [][]Cell) string {
	tb.Helper()
	return WriteWorkbookSheet(tb, name, "Sheet1", headers, rows)
}

// WriteWorkbookSheet is WriteWorkbook with a custom sheet name.
func WriteWorkbookSheet(tb testing.TB, name, sheet string, headers []string, rows [][]Cell) string {
	tb.Helper()

	f := excelize.NewFile()
	defer f.Close()

	if sheet != "Sheet1" {
		if err := f.SetSheetName("Sheet1", sheet); err != nil {
			tb.Fatalf("rename sheet: %v", err)
		}
	}

	for j, h := range headers {
		if err := setCell(f, sheet, j, 1, h); err != nil {
			tb.Fatalf("write header: %v", err)
		}
	}
	for i, row := range rows {
		for j, v := range row {
			if v == nil {
				continue
			}
			if err := setCell(f, sheet, j, i+2, v); err != nil {
				tb.Fatalf("write row %d: %v", i, err)
			}
		}
	}

	path := filepath.Join(tb.TempDir(), name)
	if err := f.SaveAs(path); err != nil {
		tb.Fatalf("save workbook: %v", err)
	}
	return path
}

// WriteCSV writes raw string records to a csv file in a temp directory.
func WriteCSV(tb testing.TB, name string, records [][]string) string {
	tb.Helper()

	path := filepath.Join(tb.TempDir(), name)
	file, err := os.Create(path)
	if err != nil {
		tb.Fatalf("create csv: %v", err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.WriteAll(records); err != nil {
		tb.Fatalf("write csv: %v", err)
	}
	return path
}

// ReadingsWorkbook writes a two column SCADA/reference workbook.
func ReadingsWorkbook(tb testing.TB, scada, reference []Cell) string {
	tb.Helper()
	if len(scada) != len(reference) {
		tb.Fatalf("column lengths differ: %d vs %d", len(scada), len(reference))
	}
	rows := make([][]Cell, len(scada))
	for i := range scada {
		rows[i] = []Cell{scada[i], reference[i]}
	}
	return WriteWorkbook(tb, "readings.xlsx", []string{"SCADA", "Reference"}, rows)
}

func setCell(f *excelize.File, sheet string, col, row int, v any) error {
	ref, err := excelize.CoordinatesToCellName(col+1, row)
	if err != nil {
		return fmt.Errorf("cell name: %w", err)
	}
	return f.SetCellValue(sheet, ref, v)
}

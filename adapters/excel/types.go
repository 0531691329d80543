package excel

import (
	"scadaval/domain/core"
	"scadaval/domain/deviation"
)

// RawRowData represents a row of raw Excel data as string key-value pairs
type RawRowData map[string]string

// ExcelData represents the complete Excel dataset
type ExcelData struct {
	Name    string       // File name the data was read from
	Sheet   string       // Worksheet, empty for CSV
	Headers []string     // Column headers, unique after normalisation
	Rows    []RawRowData // Data rows
}

// Source implements ports.TableReaderPort
func (d *ExcelData) Source() string {
	if d.Sheet == "" {
		return d.Name
	}
	return d.Name + "[" + d.Sheet + "]"
}

// Columns implements ports.TableReaderPort
func (d *ExcelData) Columns() []string {
	return d.Headers
}

// RowCount implements ports.TableReaderPort
func (d *ExcelData) RowCount() int {
	return len(d.Rows)
}

// HasColumn reports whether name is one of the headers
func (d *ExcelData) HasColumn(name string) bool {
	for _, h := range d.Headers {
		if h == name {
			return true
		}
	}
	return false
}

// NumericColumn implements ports.TableReaderPort
func (d *ExcelData) NumericColumn(name string) ([]deviation.Value, error) {
	if !d.HasColumn(name) {
		return nil, core.NewColumnNotFoundError(name)
	}

	values := make([]deviation.Value, len(d.Rows))
	for i, row := range d.Rows {
		v, ok := ParseCell(row[name])
		if !ok {
			// +2: header row, 1-based spreadsheet rows
			return nil, core.NewNonNumericError(name, i+2, row[name])
		}
		values[i] = v
	}
	return values, nil
}

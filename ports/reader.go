package ports

import (
	"scadaval/domain/deviation"
)

// TableReaderPort is a loaded table the comparison service selects columns from.
// Implementations return columns of identical length, one value per data row.
type TableReaderPort interface {
	// Source names where the table came from (file name), for logs and reports.
	Source() string
	// Columns lists the column headers in sheet order.
	Columns() []string
	RowCount() int
	// NumericColumn returns the named column as nullable numbers. Blank cells
	// are missing; any other non-numeric cell is an error.
	NumericColumn(name string) ([]deviation.Value, error)
}

package excel

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"scadaval/domain/core"
	"scadaval/internal"

	"github.com/xuri/excelize/v2"
)

// DataReader handles reading Excel and CSV files
type DataReader struct {
	filePath string
	fileType string // "xlsx" or "csv"
	sheet    string
	logger   *internal.Logger
}

// NewDataReader creates a new data reader that handles both Excel and CSV files
func NewDataReader(filePath string) *DataReader {
	return &DataReader{
		filePath: filePath,
		fileType: fileTypeOf(filePath),
		logger:   internal.DefaultLogger,
	}
}

// NewDataReaderFromConfig creates a reader for the configured file and sheet
func NewDataReaderFromConfig(cfg ExcelConfig) *DataReader {
	return NewDataReader(cfg.FilePath).WithSheet(cfg.Sheet)
}

// WithSheet selects a worksheet by name; empty selects the first sheet
func (r *DataReader) WithSheet(sheet string) *DataReader {
	r.sheet = sheet
	return r
}

// WithLogger replaces the default logger
func (r *DataReader) WithLogger(logger *internal.Logger) *DataReader {
	r.logger = logger
	return r
}

func fileTypeOf(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv":
		return "csv"
	case ".xlsx", ".xlsm", ".xltx", ".xltm":
		return "xlsx"
	default:
		return ""
	}
}

// SupportedFile reports whether name has an extension the reader handles
func SupportedFile(name string) bool {
	return fileTypeOf(name) != ""
}

// ReadData reads data from Excel or CSV files into structured format
func (r *DataReader) ReadData() (*ExcelData, error) {
	r.logger.Debug("[DataReader] Starting to read %s file: %s", r.fileType, r.filePath)

	if r.fileType == "" {
		return nil, fmt.Errorf("%w: %s", core.ErrUnsupportedFile, filepath.Base(r.filePath))
	}

	file, err := os.Open(r.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: file %s", core.ErrNotFound, r.filePath)
		}
		return nil, fmt.Errorf("failed to open %s: %w", r.filePath, err)
	}
	defer file.Close()

	return r.read(file, filepath.Base(r.filePath))
}

// ReadFrom parses an uploaded file; name is only used for its extension and
// for labelling the data.
func ReadFrom(src io.Reader, name, sheet string) (*ExcelData, error) {
	r := &DataReader{filePath: name, fileType: fileTypeOf(name), sheet: sheet, logger: internal.DefaultLogger}
	if r.fileType == "" {
		return nil, fmt.Errorf("%w: %s", core.ErrUnsupportedFile, name)
	}
	return r.read(src, filepath.Base(name))
}

func (r *DataReader) read(src io.Reader, name string) (*ExcelData, error) {
	var (
		rows  [][]string
		sheet string
		err   error
	)

	start := time.Now()
	switch r.fileType {
	case "csv":
		rows, err = r.readCSVRows(src)
	case "xlsx":
		rows, sheet, err = r.readExcelRows(src)
	}
	if err != nil {
		return nil, err
	}
	r.logger.Debug("[DataReader] %s read in %.2fms (%d raw rows)", name, float64(time.Since(start).Nanoseconds())/1e6, len(rows))

	data, err := r.processRows(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	data.Name = name
	data.Sheet = sheet
	return data, nil
}

// readExcelRows reads raw cell values from the selected sheet
func (r *DataReader) readExcelRows(src io.Reader) ([][]string, string, error) {
	f, err := excelize.OpenReader(src)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheet := r.sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, "", core.ErrEmptyDataset
		}
		sheet = sheets[0]
	} else if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		return nil, "", fmt.Errorf("%w: sheet %q", core.ErrNotFound, sheet)
	}

	// Raw values skip number formats such as thousands separators or fixed decimals.
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, "", fmt.Errorf("failed to read sheet %s: %w", sheet, err)
	}
	return rows, sheet, nil
}

// readCSVRows reads CSV records; ragged rows are allowed
func (r *DataReader) readCSVRows(src io.Reader) ([][]string, error) {
	reader := csv.NewReader(src)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}
	return rows, nil
}

// processRows converts raw string rows into ExcelData format. The first row
// is the header; trailing blank rows are dropped, interior blank rows kept.
func (r *DataReader) processRows(rows [][]string) (*ExcelData, error) {
	for len(rows) > 0 && isBlankRow(rows[len(rows)-1]) {
		rows = rows[:len(rows)-1]
	}
	if len(rows) < 2 {
		return nil, core.ErrEmptyDataset
	}

	headers := normaliseHeaders(rows[0])

	dataRows := make([]RawRowData, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rowData := make(RawRowData, len(headers))
		for j, cell := range row {
			if j < len(headers) {
				rowData[headers[j]] = strings.TrimSpace(cell)
			}
		}
		dataRows = append(dataRows, rowData)
	}

	r.logger.Debug("[DataReader] %s file processed (%d columns, %d rows)",
		strings.ToUpper(r.fileType), len(headers), len(dataRows))

	return &ExcelData{
		Headers: headers,
		Rows:    dataRows,
	}, nil
}

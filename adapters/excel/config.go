package excel

// ExcelConfig holds configuration for Excel data source
type ExcelConfig struct {
	FilePath string `json:"file_path" yaml:"file_path"`
	// Sheet is the worksheet to read; empty selects the first sheet.
	Sheet string `json:"sheet" yaml:"sheet"`
}

// DefaultExcelConfig returns sensible defaults for Excel processing
func DefaultExcelConfig() ExcelConfig {
	return ExcelConfig{}
}

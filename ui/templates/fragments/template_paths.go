// Package fragments provides template path constants for the embedded page fragments
package fragments

// Fragment template names, as registered by ParseFS (base file name)
const (
	Results      = "results.html"
	Distribution = "distribution.html"
	ColumnPicker = "column_picker.html"
)

// Pages
const (
	IndexPage   = "index.html"
	DatasetPage = "dataset.html"
	ComparePage = "compare.html"
	ErrorPage   = "error.html"
)

// GetAllTemplatePaths returns the embed patterns holding every template
func GetAllTemplatePaths() []string {
	return []string{
		"templates/*.html",
		"templates/fragments/*.html",
	}
}

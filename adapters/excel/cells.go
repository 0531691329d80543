package excel

import (
	"math"
	"strconv"
	"strings"

	"scadaval/domain/deviation"
)

// naValues are the cell spellings read as missing, matching the usual
// spreadsheet/dataframe conventions.
var naValues = map[string]bool{
	"#N/A": true, "#N/A N/A": true, "#NA": true, "-1.#IND": true, "-1.#QNAN": true,
	"-NaN": true, "-nan": true, "1.#IND": true, "1.#QNAN": true, "<NA>": true,
	"N/A": true, "NA": true, "NULL": true, "NaN": true, "None": true,
	"n/a": true, "nan": true, "null": true,
}

// ParseCell converts a raw cell to a nullable number. Blank cells and the
// naValues spellings are missing. ok is false for text that is not a finite number.
func ParseCell(raw string) (deviation.Value, bool) {
	s := strings.TrimSpace(strings.ReplaceAll(raw, "\u00a0", " "))
	if s == "" || naValues[s] {
		return deviation.Missing(), true
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return deviation.Value{}, false
	}
	return deviation.Of(f), true
}

// normaliseHeaders trims headers, names blank ones "Unnamed: <i>" and
// suffixes duplicates with ".1", ".2", ...
func normaliseHeaders(raw []string) []string {
	headers := make([]string, len(raw))
	seen := make(map[string]int, len(raw))
	taken := make(map[string]bool, len(raw))

	for i, h := range raw {
		name := strings.TrimSpace(h)
		if name == "" {
			name = "Unnamed: " + strconv.Itoa(i)
		}
		base := name
		for taken[name] {
			seen[base]++
			name = base + "." + strconv.Itoa(seen[base])
		}
		taken[name] = true
		headers[i] = name
	}
	return headers
}

// isBlankRow reports whether every cell of a raw row is blank
func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

package excel

import (
	"fmt"
	"io"

	"scadaval/domain/deviation"
	"scadaval/internal/presentation"

	"github.com/xuri/excelize/v2"
)

const (
	resultsSheet = "Results"
	summarySheet = "Summary"
)

var resultHeaders = []interface{}{"Column1", "Column2", "Value1", "Value2", "Difference", "Percentage"}

// ExportResults writes a comparison as an xlsx workbook: one row per record
// filled with its tier colour, plus a Summary sheet.
func ExportResults(w io.Writer, columnA, columnB string, result *deviation.Result) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", resultsSheet); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}

	styles, err := tierStyles(f)
	if err != nil {
		return err
	}

	if err := f.SetSheetRow(resultsSheet, "A1", &resultHeaders); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}

	for i, row := range presentation.BuildRows(columnA, columnB, result.Records) {
		rec := result.Records[i]
		cells := []interface{}{
			row.Column1,
			row.Column2,
			cellValue(rec.ValueA),
			cellValue(rec.ValueB),
			row.Difference,
			row.Percentage,
		}
		if rec.Difference.Defined {
			cells[4] = rec.Difference.Value
		}

		start, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(resultsSheet, start, &cells); err != nil {
			return fmt.Errorf("failed to write row %d: %w", rec.Row, err)
		}
		if style, ok := styles[rec.Tier]; ok {
			end, _ := excelize.CoordinatesToCellName(len(cells), i+2)
			if err := f.SetCellStyle(resultsSheet, start, end, style); err != nil {
				return fmt.Errorf("failed to style row %d: %w", rec.Row, err)
			}
		}
	}

	if err := writeSummary(f, columnA, columnB, result.Summary); err != nil {
		return err
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func tierStyles(f *excelize.File) (map[deviation.Tier]int, error) {
	styles := make(map[deviation.Tier]int, len(deviation.Tiers))
	for _, tier := range deviation.Tiers {
		id, err := f.NewStyle(&excelize.Style{
			Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{presentation.TierHex(tier)}},
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create %s style: %w", tier, err)
		}
		styles[tier] = id
	}
	return styles, nil
}

func writeSummary(f *excelize.File, columnA, columnB string, s deviation.Summary) error {
	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("failed to create summary sheet: %w", err)
	}

	rows := [][]interface{}{
		{"Column1", columnA},
		{"Column2", columnB},
		{"Average percentage deviation", presentation.FormatMeanDeviation(s)},
		{"Result deviation", presentation.FormatCombinedRatio(s)},
		{"Sum " + columnA, metricValue(s.SumA)},
		{"Sum " + columnB, metricValue(s.SumB)},
	}
	for _, tier := range deviation.Tiers {
		rows = append(rows, []interface{}{presentation.TierLabel(tier), s.TierCounts[tier]})
	}
	rows = append(rows,
		[]interface{}{"Missing", s.MissingCount},
		[]interface{}{"Undefined", s.UndefinedCount},
	)

	for i := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(summarySheet, cell, &rows[i]); err != nil {
			return fmt.Errorf("failed to write summary: %w", err)
		}
	}
	return nil
}

func metricValue(m deviation.Metric) interface{} {
	if !m.Defined {
		return "N/A"
	}
	return m.Value
}

func cellValue(v deviation.Value) interface{} {
	if v.IsMissing() {
		return nil
	}
	return v.Number
}

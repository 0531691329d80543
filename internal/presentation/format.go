package presentation

import (
	"fmt"
	"math"
	"strconv"

	"scadaval/domain/deviation"
)

// Display strings for non-numeric states.
const (
	NotApplicable = "N/A"
	MissingValue  = "Missing value"
)

// Tier background colours used by the table, chart and xlsx export.
var tierColors = map[deviation.Tier]string{
	deviation.TierGreen:  "rgba(0, 255, 0, 0.3)",
	deviation.TierOrange: "rgba(255, 165, 0, 0.3)",
	deviation.TierRed:    "rgba(255, 0, 0, 0.3)",
}

// Hex equivalents of tierColors blended on white, for targets without alpha.
var tierHex = map[deviation.Tier]string{
	deviation.TierGreen:  "B2FFB2",
	deviation.TierOrange: "FFE4B2",
	deviation.TierRed:    "FFB2B2",
}

var tierLabels = map[deviation.Tier]string{
	deviation.TierGreen:  "Green (-2% to +2%)",
	deviation.TierOrange: "Orange (-5% to +5%)",
	deviation.TierRed:    "Red (> 5% or < -5%)",
}

// TierColor returns the rgba background for a tier, empty for TierNone.
func TierColor(t deviation.Tier) string {
	return tierColors[t]
}

// TierHex returns the opaque RRGGBB fill for a tier, empty for TierNone.
func TierHex(t deviation.Tier) string {
	return tierHex[t]
}

// TierLabel returns the chart label for a tier.
func TierLabel(t deviation.Tier) string {
	return tierLabels[t]
}

// FormatPercentage renders a record's percentage with two decimals and a
// trailing %, or N/A when it has none.
func FormatPercentage(rec deviation.Record) string {
	if !rec.Status.IsNumeric() {
		return NotApplicable
	}
	return fmt.Sprintf("%.2f%%", rec.Status.Percentage)
}

// FormatDifference renders a record's difference.
func FormatDifference(rec deviation.Record) string {
	if rec.Status.Kind == deviation.StatusMissing || !rec.Difference.Defined {
		return MissingValue
	}
	return FormatNumber(rec.Difference.Value)
}

// FormatValue renders an input cell, blank when missing.
func FormatValue(v deviation.Value) string {
	if v.IsMissing() {
		return ""
	}
	return FormatNumber(v.Number)
}

// FormatNumber prints up to six decimals without trailing zeros, hiding
// binary rounding noise such as 1.9000000000000057.
func FormatNumber(v float64) string {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	rounded := math.Round(v*1e6) / 1e6
	if rounded == 0 {
		rounded = 0 // drop negative zero
	}
	return strconv.FormatFloat(rounded, 'f', -1, 64)
}

// FormatMeanDeviation renders the mean absolute percentage, N/A when undefined.
func FormatMeanDeviation(s deviation.Summary) string {
	return formatMetric(s.MeanAbsolutePercentage, "%.2f%%")
}

// FormatCombinedRatio renders the combined deviation ratio, N/A when undefined.
func FormatCombinedRatio(s deviation.Summary) string {
	return formatMetric(s.CombinedDeviationRatio, "%.2f")
}

func formatMetric(m deviation.Metric, format string) string {
	if !m.Defined {
		return NotApplicable
	}
	return fmt.Sprintf(format, m.Value)
}

// Headline holds the two headline statistics shown above the chart.
type Headline struct {
	AverageDeviation string `json:"average_percentage_deviation"`
	ResultDeviation  string `json:"scada_result_deviation"`
}

// NewHeadline formats the summary headline.
func NewHeadline(s deviation.Summary) Headline {
	return Headline{
		AverageDeviation: FormatMeanDeviation(s),
		ResultDeviation:  FormatCombinedRatio(s),
	}
}

// Row is one formatted line of the comparison table.
type Row struct {
	Index      int
	Column1    string
	Column2    string
	Value1     string
	Value2     string
	Difference string
	Percentage string
	Tier       deviation.Tier
	Color      string
}

// BuildRows formats records for table output, preserving their order.
func BuildRows(columnA, columnB string, records []deviation.Record) []Row {
	rows := make([]Row, len(records))
	for i, rec := range records {
		rows[i] = Row{
			Index:      rec.Row,
			Column1:    columnA,
			Column2:    columnB,
			Value1:     FormatValue(rec.ValueA),
			Value2:     FormatValue(rec.ValueB),
			Difference: FormatDifference(rec),
			Percentage: FormatPercentage(rec),
			Tier:       rec.Tier,
			Color:      TierColor(rec.Tier),
		}
	}
	return rows
}

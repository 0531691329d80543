package deviation

import (
	"math"

	"scadaval/domain/deviation"
)

// RoundPercentage rounds to the two decimals a percentage is displayed with.
func RoundPercentage(pct float64) float64 {
	return math.Round(pct*100) / 100
}

// Classify maps a signed percentage deviation to its tier. The bounds are
// inclusive and tested as a cascade: green first, then orange, else red.
// NaN fails both bounds and lands in red.
func Classify(pct float64) deviation.Tier {
	switch {
	case pct >= -deviation.GreenBound && pct <= deviation.GreenBound:
		return deviation.TierGreen
	case pct >= -deviation.OrangeBound && pct <= deviation.OrangeBound:
		return deviation.TierOrange
	default:
		return deviation.TierRed
	}
}

// CompareRow builds the record for a single row.
func CompareRow(row int, a, b deviation.Value) deviation.Record {
	rec := deviation.Record{
		Row:        row,
		ValueA:     a,
		ValueB:     b,
		Difference: deviation.Undefined(),
		Percentage: deviation.Undefined(),
		Tier:       deviation.TierNone,
	}

	// Missing wins over a zero baseline.
	if a.IsMissing() || b.IsMissing() {
		rec.Status = deviation.Status{Kind: deviation.StatusMissing}
		return rec
	}

	// Overflow to an infinity is undefined, like a zero baseline.
	rec.Difference = deviation.FiniteMetric(a.Number - b.Number)
	if !rec.Difference.Defined || a.Number == 0 {
		rec.Status = deviation.Status{Kind: deviation.StatusUndefined}
		return rec
	}

	rec.Percentage = deviation.FiniteMetric(rec.Difference.Value / a.Number * 100)
	if !rec.Percentage.Defined {
		rec.Status = deviation.Status{Kind: deviation.StatusUndefined}
		return rec
	}
	pct := rec.Percentage.Value
	rec.Status = deviation.NumericStatus(pct)
	// Tiered on the displayed precision so 2.0000000001 reads and colours as 2.00%.
	rec.Tier = Classify(RoundPercentage(pct))
	return rec
}

package deviation

import (
	"scadaval/domain/deviation"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/floats"
)

// accumulator is the reduction state for one slice of records. Accumulators
// over disjoint slices merge into the accumulator of their union.
type accumulator struct {
	tiers     deviation.TierCounts
	missing   int
	undefined int

	// absolute percentages of numeric-status records
	absPct []float64

	// a and b for rows where both values are present
	pairedA []float64
	pairedB []float64
}

func newAccumulator(capacity int) *accumulator {
	return &accumulator{
		tiers:   deviation.NewTierCounts(),
		absPct:  make([]float64, 0, capacity),
		pairedA: make([]float64, 0, capacity),
		pairedB: make([]float64, 0, capacity),
	}
}

func (acc *accumulator) add(rec deviation.Record) {
	switch rec.Status.Kind {
	case deviation.StatusMissing:
		acc.missing++
		return
	case deviation.StatusUndefined:
		acc.undefined++
	case deviation.StatusNumeric:
		acc.tiers[rec.Tier]++
		pct := rec.Status.Percentage
		if pct < 0 {
			pct = -pct
		}
		acc.absPct = append(acc.absPct, pct)
	}

	// Zero-baseline rows still count towards the column sums.
	acc.pairedA = append(acc.pairedA, rec.ValueA.Number)
	acc.pairedB = append(acc.pairedB, rec.ValueB.Number)
}

func (acc *accumulator) merge(other *accumulator) {
	for _, t := range deviation.Tiers {
		acc.tiers[t] += other.tiers[t]
	}
	acc.missing += other.missing
	acc.undefined += other.undefined
	acc.absPct = append(acc.absPct, other.absPct...)
	acc.pairedA = append(acc.pairedA, other.pairedA...)
	acc.pairedB = append(acc.pairedB, other.pairedB...)
}

func (acc *accumulator) summary() deviation.Summary {
	s := deviation.Summary{
		TierCounts:               acc.tiers,
		NumericCount:             len(acc.absPct),
		MissingCount:             acc.missing,
		UndefinedCount:           acc.undefined,
		MeanAbsolutePercentage:   deviation.Undefined(),
		MedianAbsolutePercentage: deviation.Undefined(),
		MaxAbsolutePercentage:    deviation.Undefined(),
		SumA:                     deviation.Undefined(),
		SumB:                     deviation.Undefined(),
		PairedCount:              len(acc.pairedA),
		CombinedDeviationRatio:   deviation.Undefined(),
	}

	// stats returns an error for empty input, which is the undefined case.
	// Sums of finite values can still overflow, so results go through FiniteMetric.
	if mean, err := stats.Mean(acc.absPct); err == nil {
		s.MeanAbsolutePercentage = deviation.FiniteMetric(mean)
	}
	if median, err := stats.Median(acc.absPct); err == nil {
		s.MedianAbsolutePercentage = deviation.FiniteMetric(median)
	}
	if max, err := stats.Max(acc.absPct); err == nil {
		s.MaxAbsolutePercentage = deviation.FiniteMetric(max)
	}

	if len(acc.pairedA) > 0 {
		s.SumA = deviation.FiniteMetric(floats.Sum(acc.pairedA))
		s.SumB = deviation.FiniteMetric(floats.Sum(acc.pairedB))
		if s.SumA.Defined && s.SumB.Defined && s.SumA.Value != 0 {
			s.CombinedDeviationRatio = deviation.FiniteMetric((s.SumA.Value + s.SumB.Value) / s.SumA.Value)
		}
	}

	return s
}

// Summarize aggregates already computed records. Record order does not matter.
func Summarize(records []deviation.Record) deviation.Summary {
	acc := newAccumulator(len(records))
	for _, rec := range records {
		acc.add(rec)
	}
	return acc.summary()
}

package testkit

import (
	"math"
	"math/rand"

	"scadaval/domain/deviation"
)

// ColumnSpec configures SyntheticColumns.
type ColumnSpec struct {
	Rows int
	Seed int64
	// MissingRate is the chance that a row has a blank in either column.
	MissingRate float64
	// ZeroRate is the chance that the baseline reads exactly zero.
	ZeroRate float64
	// NoiseStdPct is the standard deviation of the reference deviation in percent.
	// Defaults to 4, which spreads rows over all three tiers.
	NoiseStdPct float64
}

// SyntheticColumns generates a deterministic baseline/reference pair of
// columns resembling meter readings compared with a reference source.
func SyntheticColumns(spec ColumnSpec) ([]deviation.Value, []deviation.Value) {
	rng := rand.New(rand.NewSource(spec.Seed))
	noise := spec.NoiseStdPct
	if noise == 0 {
		noise = 4
	}

	a := make([]deviation.Value, spec.Rows)
	b := make([]deviation.Value, spec.Rows)

	for i := 0; i < spec.Rows; i++ {
		base := 50 + rng.Float64()*100
		if rng.Float64() < 0.1 {
			base = -base
		}
		if rng.Float64() < spec.ZeroRate {
			base = 0
		}

		ref := base*(1+rng.NormFloat64()*noise/100) + rng.NormFloat64()*0.1
		ref = math.Round(ref*1000) / 1000

		a[i] = deviation.Of(base)
		b[i] = deviation.Of(ref)

		if rng.Float64() < spec.MissingRate {
			if rng.Intn(2) == 0 {
				a[i] = deviation.Missing()
			} else {
				b[i] = deviation.Missing()
			}
		}
	}

	return a, b
}

// AsCells converts values to workbook cells, blank for missing.
func AsCells(values []deviation.Value) []Cell {
	out := make([]Cell, len(values))
	for i, v := range values {
		if v.IsMissing() {
			continue
		}
		out[i] = v.Number
	}
	return out
}

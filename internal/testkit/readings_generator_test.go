package testkit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSyntheticColumns_Deterministic(t *testing.T) {
	spec := ColumnSpec{Rows: 200, Seed: 42, MissingRate: 0.1, ZeroRate: 0.05}

	a1, b1 := SyntheticColumns(spec)
	a2, b2 := SyntheticColumns(spec)

	require.Len(t, a1, 200)
	require.Len(t, b1, 200)
	assert.Equal(t, a1, a2)
	assert.Equal(t, b1, b2)
}

func TestSyntheticColumns_Rates(t *testing.T) {
	a, b := SyntheticColumns(ColumnSpec{Rows: 5000, Seed: 7, MissingRate: 0.2, ZeroRate: 0.1})

	missing, zeros := 0, 0
	for i := range a {
		if a[i].IsMissing() || b[i].IsMissing() {
			missing++
			continue
		}
		if a[i].Number == 0 {
			zeros++
		}
	}

	assert.InDelta(t, 0.2, float64(missing)/5000, 0.03)
	// zero baselines are only counted on rows that kept both values
	assert.InDelta(t, 0.08, float64(zeros)/5000, 0.02)
}

func TestAsCells_BlankForMissing(t *testing.T) {
	a, _ := SyntheticColumns(ColumnSpec{Rows: 300, Seed: 5, MissingRate: 0.5})
	cells := AsCells(a)

	for i, v := range a {
		if v.IsMissing() {
			assert.Nil(t, cells[i])
		} else {
			assert.Equal(t, v.Number, cells[i])
		}
	}
}

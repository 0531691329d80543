package deviation

import (
	"encoding/json"
	"fmt"
	"math"
)

// Value is a nullable numeric cell taken from one of the compared columns.
type Value struct {
	Number  float64
	Present bool
}

// Of returns a present value.
func Of(v float64) Value {
	return Value{Number: v, Present: true}
}

// Missing returns an absent value.
func Missing() Value {
	return Value{}
}

// Values wraps plain numbers as present values.
func Values(nums ...float64) []Value {
	out := make([]Value, len(nums))
	for i, n := range nums {
		out[i] = Of(n)
	}
	return out
}

// IsMissing reports whether the value is absent. NaN counts as absent.
func (v Value) IsMissing() bool {
	return !v.Present || math.IsNaN(v.Number)
}

func (v Value) String() string {
	if v.IsMissing() {
		return "None"
	}
	return fmt.Sprintf("%g", v.Number)
}

// MarshalJSON encodes a missing value as null.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.IsMissing() {
		return []byte("null"), nil
	}
	return json.Marshal(v.Number)
}

// UnmarshalJSON decodes null as a missing value.
func (v *Value) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*v = Missing()
		return nil
	}
	var n float64
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("value must be a number or null: %w", err)
	}
	*v = Of(n)
	return nil
}

// Metric is a derived number that may be undefined (missing inputs, zero denominator,
// empty input).
type Metric struct {
	Value   float64
	Defined bool
}

// DefinedMetric returns a defined metric.
func DefinedMetric(v float64) Metric {
	return Metric{Value: v, Defined: true}
}

// FiniteMetric returns a defined metric, or an undefined one when v overflowed
// to an infinity or is NaN.
func FiniteMetric(v float64) Metric {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return Undefined()
	}
	return DefinedMetric(v)
}

// Undefined returns an undefined metric.
func Undefined() Metric {
	return Metric{}
}

// MarshalJSON encodes an undefined or non-finite metric as null.
func (m Metric) MarshalJSON() ([]byte, error) {
	if !m.Defined || math.IsInf(m.Value, 0) || math.IsNaN(m.Value) {
		return []byte("null"), nil
	}
	return json.Marshal(m.Value)
}

// UnmarshalJSON decodes null as an undefined metric.
func (m *Metric) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*m = Undefined()
		return nil
	}
	var n float64
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*m = DefinedMetric(n)
	return nil
}

// StatusKind is the per-row outcome of a comparison.
type StatusKind string

const (
	StatusNumeric   StatusKind = "numeric"
	StatusMissing   StatusKind = "missing"
	StatusUndefined StatusKind = "undefined"
)

// Status is either a numeric percentage or one of the non-numeric states.
type Status struct {
	Kind       StatusKind
	Percentage float64
}

type statusJSON struct {
	Kind       StatusKind `json:"kind"`
	Percentage *float64   `json:"percentage,omitempty"`
}

// MarshalJSON only emits the percentage for numeric statuses.
func (s Status) MarshalJSON() ([]byte, error) {
	out := statusJSON{Kind: s.Kind}
	if s.IsNumeric() {
		pct := s.Percentage
		out.Percentage = &pct
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes the kind/percentage object.
func (s *Status) UnmarshalJSON(data []byte) error {
	var in statusJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	s.Kind = in.Kind
	s.Percentage = 0
	if in.Percentage != nil {
		s.Percentage = *in.Percentage
	}
	return nil
}

// NumericStatus wraps a percentage deviation.
func NumericStatus(pct float64) Status {
	return Status{Kind: StatusNumeric, Percentage: pct}
}

// IsNumeric reports whether the status carries a percentage.
func (s Status) IsNumeric() bool {
	return s.Kind == StatusNumeric
}

// Tier is a severity bucket for a percentage deviation.
type Tier string

const (
	TierGreen  Tier = "green"
	TierOrange Tier = "orange"
	TierRed    Tier = "red"
	// TierNone marks records without a numeric percentage.
	TierNone Tier = "none"
)

// Tiers lists the classified tiers in severity order.
var Tiers = []Tier{TierGreen, TierOrange, TierRed}

// Inclusive bounds applied to the signed percentage.
const (
	GreenBound  = 2.0
	OrangeBound = 5.0
)

// Record is the comparison result for one row.
type Record struct {
	Row        int    `json:"row"`
	ValueA     Value  `json:"value_a"`
	ValueB     Value  `json:"value_b"`
	Difference Metric `json:"difference"`
	Percentage Metric `json:"percentage"`
	Status     Status `json:"status"`
	// Tier is classified on the percentage rounded to two decimals, the
	// precision it is displayed with, so 2.004 is green.
	Tier Tier `json:"tier"`
}

// TierCounts maps each classified tier to its record count.
type TierCounts map[Tier]int

// NewTierCounts returns counts with every tier present at zero.
func NewTierCounts() TierCounts {
	tc := make(TierCounts, len(Tiers))
	for _, t := range Tiers {
		tc[t] = 0
	}
	return tc
}

// Total is the number of classified records.
func (tc TierCounts) Total() int {
	n := 0
	for _, t := range Tiers {
		n += tc[t]
	}
	return n
}

// Summary aggregates a full comparison run.
type Summary struct {
	TierCounts             TierCounts `json:"tier_counts"`
	NumericCount           int        `json:"numeric_count"`
	MissingCount           int        `json:"missing_count"`
	UndefinedCount         int        `json:"undefined_count"`
	MeanAbsolutePercentage Metric     `json:"mean_absolute_percentage"`
	// Median and max of the absolute percentages, undefined alongside the mean.
	MedianAbsolutePercentage Metric `json:"median_absolute_percentage"`
	MaxAbsolutePercentage    Metric `json:"max_absolute_percentage"`
	// Column sums over paired rows, undefined when nothing is paired or a sum overflows.
	SumA                   Metric `json:"sum_a"`
	SumB                   Metric `json:"sum_b"`
	PairedCount            int    `json:"paired_count"`
	CombinedDeviationRatio Metric `json:"combined_deviation_ratio"`
}

// Result is the ordered records of a comparison plus its summary.
type Result struct {
	Records []Record `json:"records"`
	Summary Summary  `json:"summary"`
}

package presentation

import (
	"fmt"
	"strings"

	"scadaval/domain/deviation"
)

// NoChartData is shown instead of the chart when no row was classified.
const NoChartData = "No data to display in the pie chart."

// Slice is one tier's share of the classified rows.
type Slice struct {
	Tier  deviation.Tier `json:"tier"`
	Label string         `json:"label"`
	Count int            `json:"count"`
	// Share is the fraction of classified rows, 0..1.
	Share float64 `json:"share"`
	Color string  `json:"color"`
}

// Percent is Share as a percentage.
func (s Slice) Percent() float64 {
	return s.Share * 100
}

// Distribution returns the three tier slices. ok is false when no row has a
// numeric percentage, in which case shares are all zero.
func Distribution(s deviation.Summary) (slices []Slice, ok bool) {
	total := s.TierCounts.Total()
	slices = make([]Slice, 0, len(deviation.Tiers))
	for _, t := range deviation.Tiers {
		sl := Slice{
			Tier:  t,
			Label: TierLabel(t),
			Count: s.TierCounts[t],
			Color: TierColor(t),
		}
		if total > 0 {
			sl.Share = float64(sl.Count) / float64(total)
		}
		slices = append(slices, sl)
	}
	return slices, total > 0
}

// ConicGradient renders slices as a CSS conic-gradient for a donut chart.
func ConicGradient(slices []Slice) string {
	var parts []string
	start := 0.0
	for _, sl := range slices {
		if sl.Count == 0 {
			continue
		}
		end := start + sl.Percent()
		parts = append(parts, fmt.Sprintf("%s %.2f%% %.2f%%", sl.Color, start, end))
		start = end
	}
	if len(parts) == 0 {
		return "none"
	}
	return "conic-gradient(" + strings.Join(parts, ", ") + ")"
}

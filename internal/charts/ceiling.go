package charts

import "math"

// MinAxisCeiling is the ceiling used when there is no data or only small values.
const MinAxisCeiling = 1000.0

// ceilingTiers lists the rounding step for each magnitude, checked in order.
var ceilingTiers = []struct {
	upTo float64
	step float64
}{
	{1_000, 100},
	{10_000, 1_000},
	{100_000, 10_000},
	{math.Inf(1), 100_000},
}

// AxisCeiling rounds a maximum observed value up to a readable axis bound.
// The step grows with the magnitude of v; values up to 1,000 always yield
// at least MinAxisCeiling.
func AxisCeiling(v float64) float64 {
	if math.IsNaN(v) {
		return MinAxisCeiling
	}
	for _, tier := range ceilingTiers {
		if v <= tier.upTo {
			ceiling := math.Ceil(v/tier.step) * tier.step
			if tier.upTo == 1_000 {
				return math.Max(ceiling, MinAxisCeiling)
			}
			return ceiling
		}
	}
	return MinAxisCeiling
}

// AxisCeilingOf applies AxisCeiling to the maximum of the present values.
// Nil and NaN entries are ignored; an empty or all-missing input yields
// MinAxisCeiling.
func AxisCeilingOf(values []*float64) float64 {
	found := false
	maxVal := 0.0
	for _, v := range values {
		if v == nil || math.IsNaN(*v) {
			continue
		}
		if !found || *v > maxVal {
			maxVal = *v
			found = true
		}
	}
	if !found {
		return MinAxisCeiling
	}
	return AxisCeiling(maxVal)
}

// Package plates computes which plates to load on each side of a
// barbell to reach a target total weight.
package plates

import "sort"

// PerSide returns the plates to put on one side of the bar, heaviest
// first, to reach target given the bar's own weight and the available
// denominations. The selection is greedy by descending denomination:
// when the denominations cannot sum exactly to the per-side remainder
// the result under-fills rather than overshooting. Target at or below
// the bar weight loads nothing.
func PerSide(target, bar float64, available []float64) []float64 {
	if target <= bar {
		return nil
	}

	denoms := make([]float64, 0, len(available))
	for _, w := range available {
		if w > 0 {
			denoms = append(denoms, w)
		}
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(denoms)))

	remaining := (target - bar) / 2
	var side []float64
	for _, w := range denoms {
		for remaining >= w {
			side = append(side, w)
			remaining -= w
		}
		if remaining <= 0 {
			break
		}
	}
	return side
}

// Total returns the full bar weight a per-side selection represents.
func Total(bar float64, side []float64) float64 {
	sum := bar
	for _, w := range side {
		sum += 2 * w
	}
	return sum
}

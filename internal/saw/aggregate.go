package saw

import (
	"fmt"
	"math"
)

// scoredRow is a normalized row with its weighted preference score.
type scoredRow struct {
	normalizedRow
	score float64
}

// aggregate computes the weighted sum of normalized values for every row.
// Weights are applied as given: no clamping and no rescaling by the weight
// total. The running sum is held at ±SaturatedValue, and a row whose sum is
// undefined (a NaN weight) scores -SaturatedValue. Both raise a
// DiagnosticOverflow.
func aggregate(criteria []Criterion, rows []normalizedRow) ([]scoredRow, []Diagnostic) {
	scored := make([]scoredRow, len(rows))
	var diags []Diagnostic
	for i, row := range rows {
		var total float64
		overflowed := false
		for _, c := range criteria {
			next := total + row.normalized[c.ID]*c.Weight
			if math.IsInf(next, 0) || math.IsNaN(next) {
				overflowed = true
			}
			total = saturate(next)
		}
		scored[i] = scoredRow{normalizedRow: row, score: total}
		if overflowed {
			diags = append(diags, Diagnostic{
				Kind:          DiagnosticOverflow,
				Message:       fmt.Sprintf("preference score of alternative %q left the float64 range; held at %g", row.name, total),
				AlternativeID: row.id,
			})
		}
	}
	return scored, diags
}

// saturate maps ±Inf to ±math.MaxFloat64 and NaN to -math.MaxFloat64.
func saturate(v float64) float64 {
	switch {
	case math.IsInf(v, 1):
		return math.MaxFloat64
	case math.IsInf(v, -1), math.IsNaN(v):
		return -math.MaxFloat64
	default:
		return v
	}
}

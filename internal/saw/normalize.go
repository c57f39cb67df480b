package saw

import (
	"fmt"
	"math"
)

// SaturatedValue stands in for an unbounded normalized ratio: a raw cost of
// zero in a column whose minimum is not zero. It is the largest finite
// float64, not +Inf, and is always reported with a DiagnosticSaturatedCost.
const SaturatedValue = math.MaxFloat64

// normalizedRow holds one alternative's raw and normalized values.
type normalizedRow struct {
	id         string
	name       string
	original   map[string]float64
	normalized map[string]float64
}

// normalize rescales every criterion column independently. Input must have
// passed Validate.
func normalize(criteria []Criterion, alternatives []Alternative) ([]normalizedRow, []Diagnostic) {
	rows := make([]normalizedRow, len(alternatives))
	for i, alt := range alternatives {
		rows[i] = normalizedRow{
			id:         alt.ID,
			name:       alt.Name,
			original:   make(map[string]float64, len(criteria)),
			normalized: make(map[string]float64, len(criteria)),
		}
		for _, c := range criteria {
			v, _ := alt.Scores[c.ID].Get()
			rows[i].original[c.ID] = v
		}
	}

	var diags []Diagnostic
	for _, c := range criteria {
		column := make([]float64, len(rows))
		for i := range rows {
			column[i] = rows[i].original[c.ID]
		}

		var out []float64
		var saturated, overflowed []int
		if c.Type == Cost {
			out, saturated, overflowed = normalizeCost(column)
		} else {
			out, overflowed = normalizeBenefit(column)
		}
		for i := range rows {
			rows[i].normalized[c.ID] = out[i]
		}
		for _, i := range saturated {
			diags = append(diags, Diagnostic{
				Kind:          DiagnosticSaturatedCost,
				Message:       fmt.Sprintf("alternative %q has a zero cost on criterion %q while the column minimum is non-zero; normalized value saturated", rows[i].name, c.Name),
				AlternativeID: rows[i].id,
				CriterionID:   c.ID,
			})
		}
		for _, i := range overflowed {
			diags = append(diags, Diagnostic{
				Kind:          DiagnosticOverflow,
				Message:       fmt.Sprintf("alternative %q has a normalized value on criterion %q outside the float64 range; held at %g", rows[i].name, c.Name, out[i]),
				AlternativeID: rows[i].id,
				CriterionID:   c.ID,
			})
		}
	}
	return rows, diags
}

// NormalizeBenefit maps a benefit column to raw/max. An all-zero column
// (max == 0) maps to zeros. Ratios beyond the float64 range are held at
// ±SaturatedValue.
func NormalizeBenefit(column []float64) []float64 {
	out, _ := normalizeBenefit(column)
	return out
}

func normalizeBenefit(column []float64) ([]float64, []int) {
	out := make([]float64, len(column))
	if len(column) == 0 {
		return out, nil
	}
	maxVal := column[0]
	for _, v := range column[1:] {
		maxVal = math.Max(maxVal, v)
	}
	if maxVal == 0 {
		return out, nil
	}
	var overflowed []int
	for i, v := range column {
		out[i] = v / maxVal
		if clamped, ok := clamp(out[i]); !ok {
			out[i] = clamped
			overflowed = append(overflowed, i)
		}
	}
	return out, overflowed
}

// NormalizeCost maps a cost column to min/raw. A zero minimum gives 1 to
// the zero entries and 0 to the rest. The returned indexes are the entries
// saturated to SaturatedValue. Ratios beyond the float64 range are held at
// ±SaturatedValue.
func NormalizeCost(column []float64) ([]float64, []int) {
	out, saturated, _ := normalizeCost(column)
	return out, saturated
}

func normalizeCost(column []float64) ([]float64, []int, []int) {
	out := make([]float64, len(column))
	if len(column) == 0 {
		return out, nil, nil
	}
	minVal := column[0]
	for _, v := range column[1:] {
		minVal = math.Min(minVal, v)
	}

	var saturated, overflowed []int
	for i, v := range column {
		switch {
		case minVal == 0 && v == 0:
			out[i] = 1
		case minVal == 0:
			out[i] = 0
		case v == 0:
			out[i] = SaturatedValue
			saturated = append(saturated, i)
		default:
			out[i] = minVal / v
			if clamped, ok := clamp(out[i]); !ok {
				out[i] = clamped
				overflowed = append(overflowed, i)
			}
		}
	}
	return out, saturated, overflowed
}

// clamp holds v inside the finite float64 range. NaN maps to 0. ok is false
// when v had to change.
func clamp(v float64) (float64, bool) {
	switch {
	case math.IsNaN(v):
		return 0, false
	case math.IsInf(v, 0):
		return saturate(v), false
	default:
		return v, true
	}
}

package saw

import (
	"fmt"
	"math"
)

// DefaultWeightTolerance is how far the weight sum may drift from 1.0
// before a DiagnosticWeightSum is raised.
const DefaultWeightTolerance = 0.001

// WeightSum returns the total of all criteria weights.
func WeightSum(criteria []Criterion) float64 {
	var sum float64
	for _, c := range criteria {
		sum += c.Weight
	}
	return sum
}

// Validate checks structural completeness of the matrix. It stops at the
// first violation, walking alternatives in the outer loop and criteria in
// the inner loop.
func Validate(criteria []Criterion, alternatives []Alternative) error {
	if len(criteria) == 0 {
		return ErrNoCriteria
	}
	if len(alternatives) == 0 {
		return ErrNoAlternatives
	}
	for _, alt := range alternatives {
		for _, c := range criteria {
			v, ok := alt.Scores[c.ID].Get()
			if !ok || math.IsNaN(v) || math.IsInf(v, 0) {
				return &MissingValueError{
					AlternativeID:   alt.ID,
					AlternativeName: alt.Name,
					CriterionID:     c.ID,
					CriterionName:   c.Name,
				}
			}
		}
	}
	return nil
}

// checkWeights returns a weight-sum diagnostic when the weights drift more
// than tolerance from 1.0. A NaN sum is always reported.
func checkWeights(criteria []Criterion, tolerance float64) (Diagnostic, bool) {
	sum := WeightSum(criteria)
	if math.Abs(sum-1.0) <= tolerance {
		return Diagnostic{}, false
	}
	d := Diagnostic{
		Kind:    DiagnosticWeightSum,
		Message: fmt.Sprintf("weights sum to %.4f, not 1.0; results are still computed", sum),
	}
	if !math.IsNaN(sum) && !math.IsInf(sum, 0) {
		d.WeightSum = &sum
	}
	return d, true
}

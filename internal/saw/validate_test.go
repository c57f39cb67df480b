package saw

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateInvalidNumbers(t *testing.T) {
	criteria := []Criterion{{ID: "c", Name: "C", Weight: 1, Type: Benefit}}

	tests := []struct {
		name  string
		value Value
	}{
		{"absent", Absent()},
		{"nan", Some(math.NaN())},
		{"positive infinity", Some(math.Inf(1))},
		{"negative infinity", Some(math.Inf(-1))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			alts := []Alternative{{ID: "a", Name: "A", Scores: map[string]Value{"c": tt.value}}}
			err := Validate(criteria, alts)
			assert.ErrorIs(t, err, ErrMissingValue)
		})
	}

	t.Run("missing key", func(t *testing.T) {
		alts := []Alternative{{ID: "a", Name: "A", Scores: map[string]Value{}}}
		assert.ErrorIs(t, Validate(criteria, alts), ErrMissingValue)
	})

	t.Run("nil scores", func(t *testing.T) {
		alts := []Alternative{{ID: "a", Name: "A"}}
		assert.ErrorIs(t, Validate(criteria, alts), ErrMissingValue)
	})

	t.Run("present zero is valid", func(t *testing.T) {
		alts := []Alternative{{ID: "a", Name: "A", Scores: map[string]Value{"c": Some(0)}}}
		assert.NoError(t, Validate(criteria, alts))
	})
}

func TestValidateReportsFirstViolation(t *testing.T) {
	criteria := []Criterion{
		{ID: "c1", Name: "First", Weight: 0.5, Type: Benefit},
		{ID: "c2", Name: "Second", Weight: 0.5, Type: Cost},
	}
	alternatives := []Alternative{
		{ID: "a1", Name: "One", Scores: map[string]Value{"c1": Some(1), "c2": Absent()}},
		{ID: "a2", Name: "Two", Scores: map[string]Value{"c1": Absent(), "c2": Absent()}},
	}

	err := Validate(criteria, alternatives)
	var mv *MissingValueError
	require.ErrorAs(t, err, &mv)
	assert.Equal(t, "One", mv.AlternativeName)
	assert.Equal(t, "Second", mv.CriterionName)
	assert.Equal(t, "a1", mv.AlternativeID)
	assert.Equal(t, "c2", mv.CriterionID)
}

func TestCheckWeights(t *testing.T) {
	ok := []Criterion{{Weight: 0.25}, {Weight: 0.75}}
	_, raised := checkWeights(ok, DefaultWeightTolerance)
	assert.False(t, raised)

	d, raised := checkWeights([]Criterion{{Weight: 0.5}}, DefaultWeightTolerance)
	require.True(t, raised)
	assert.Equal(t, DiagnosticWeightSum, d.Kind)
	assert.InDelta(t, 0.5, *d.WeightSum, 1e-12)

	d, raised = checkWeights([]Criterion{{Weight: math.NaN()}}, DefaultWeightTolerance)
	require.True(t, raised)
	assert.Nil(t, d.WeightSum)
}

func TestErrorKind(t *testing.T) {
	assert.Equal(t, "no_criteria", ErrorKind(ErrNoCriteria))
	assert.Equal(t, "no_alternatives", ErrorKind(ErrNoAlternatives))
	assert.Equal(t, "missing_value", ErrorKind(&MissingValueError{}))
	assert.Equal(t, "", ErrorKind(nil))
}

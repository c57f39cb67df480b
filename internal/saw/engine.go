// Package saw implements Simple Additive Weighting over a decision matrix
// of weighted benefit/cost criteria and scored alternatives.
//
// Compute runs the pipeline validate -> normalize -> aggregate -> rank. It
// is pure: it never mutates its input, keeps no state between calls and
// reports advisory findings as Diagnostics on the returned Evaluation.
package saw

// Option configures a single Compute call.
type Option func(*options)

type options struct {
	weightTolerance float64
	rankPolicy      RankPolicy
}

// WithWeightTolerance sets how far the weight sum may drift from 1.0 before
// a DiagnosticWeightSum is raised. Non-positive values are ignored.
func WithWeightTolerance(tol float64) Option {
	return func(o *options) {
		if tol > 0 {
			o.weightTolerance = tol
		}
	}
}

// WithRankPolicy selects the tie ranking policy. Unknown policies are
// ignored.
func WithRankPolicy(p RankPolicy) Option {
	return func(o *options) {
		if p == RankSequential || p == RankCompetition {
			o.rankPolicy = p
		}
	}
}

// Compute evaluates the decision matrix. On a validation failure it returns
// a nil Evaluation and one of ErrNoCriteria, ErrNoAlternatives or a
// *MissingValueError; no partial results are produced.
func Compute(criteria []Criterion, alternatives []Alternative, opts ...Option) (*Evaluation, error) {
	o := options{
		weightTolerance: DefaultWeightTolerance,
		rankPolicy:      RankSequential,
	}
	for _, opt := range opts {
		opt(&o)
	}

	if err := Validate(criteria, alternatives); err != nil {
		return nil, err
	}

	diags := []Diagnostic{}
	if d, ok := checkWeights(criteria, o.weightTolerance); ok {
		diags = append(diags, d)
	}

	rows, normDiags := normalize(criteria, alternatives)
	diags = append(diags, normDiags...)
	scored, aggDiags := aggregate(criteria, rows)
	diags = append(diags, aggDiags...)

	return &Evaluation{
		Results:     rank(scored, o.rankPolicy),
		Diagnostics: diags,
	}, nil
}

package saw

// CriterionType says which direction of a criterion's raw scores is preferred.
type CriterionType string

const (
	// Benefit criteria prefer higher raw values.
	Benefit CriterionType = "benefit"
	// Cost criteria prefer lower raw values.
	Cost CriterionType = "cost"
)

// Valid reports whether t is one of the known criterion types.
func (t CriterionType) Valid() bool {
	return t == Benefit || t == Cost
}

// Criterion is one weighted column of the decision matrix.
type Criterion struct {
	ID     string        `json:"id"`
	Name   string        `json:"name"`
	Weight float64       `json:"weight"`
	Type   CriterionType `json:"type"`
}

// Value is an optional raw score. The zero Value is absent, which is
// distinct from a present zero.
type Value struct {
	v       float64
	present bool
}

// Some returns a present Value holding v.
func Some(v float64) Value { return Value{v: v, present: true} }

// Absent returns a Value that has not been supplied yet.
func Absent() Value { return Value{} }

// Get returns the raw number and whether it is present.
func (v Value) Get() (float64, bool) { return v.v, v.present }

// Present reports whether a number was supplied.
func (v Value) Present() bool { return v.present }

// Alternative is one row of the decision matrix. Scores is keyed by
// criterion ID.
type Alternative struct {
	ID     string           `json:"id"`
	Name   string           `json:"name"`
	Scores map[string]Value `json:"-"`
}

// ResultItem is the computed outcome for a single alternative.
type ResultItem struct {
	AlternativeID    string             `json:"alternative_id"`
	AlternativeName  string             `json:"alternative_name"`
	OriginalValues   map[string]float64 `json:"original_values"`
	NormalizedValues map[string]float64 `json:"normalized_values"`
	PreferenceScore  float64            `json:"preference_score"`
	Rank             int                `json:"rank"`
}

// DiagnosticKind classifies a non-fatal finding reported with a result.
type DiagnosticKind string

const (
	// DiagnosticWeightSum means the criteria weights do not sum to 1.
	DiagnosticWeightSum DiagnosticKind = "weight_sum"
	// DiagnosticSaturatedCost means a zero raw value on a cost criterion
	// with a non-zero column minimum was mapped to SaturatedValue.
	DiagnosticSaturatedCost DiagnosticKind = "saturated_cost"
	// DiagnosticOverflow means a normalized value or a preference score
	// left the float64 range and was held at ±SaturatedValue.
	DiagnosticOverflow DiagnosticKind = "overflow"
)

// Diagnostic is advisory metadata returned alongside a successful
// evaluation. It never replaces a result.
type Diagnostic struct {
	Kind          DiagnosticKind `json:"kind"`
	Message       string         `json:"message"`
	WeightSum     *float64       `json:"weight_sum,omitempty"`
	AlternativeID string         `json:"alternative_id,omitempty"`
	CriterionID   string         `json:"criterion_id,omitempty"`
}

// Evaluation is the complete output of one Compute call. Results are sorted
// ascending by rank.
type Evaluation struct {
	Results     []ResultItem `json:"results"`
	Diagnostics []Diagnostic `json:"diagnostics"`
}

// Winner returns the rank-1 result, or false when there are no results.
func (e *Evaluation) Winner() (ResultItem, bool) {
	if e == nil || len(e.Results) == 0 {
		return ResultItem{}, false
	}
	return e.Results[0], true
}

// HasDiagnostic reports whether a diagnostic of the given kind was raised.
func (e *Evaluation) HasDiagnostic(kind DiagnosticKind) bool {
	if e == nil {
		return false
	}
	for _, d := range e.Diagnostics {
		if d.Kind == kind {
			return true
		}
	}
	return false
}

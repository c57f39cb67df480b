package hermes

import (
	"time"

	"github.com/MikeSquared-Agency/Verdict/internal/saw"
)

// Evaluation sources.
const (
	SourceCompute   = "compute"
	SourceWorkspace = "workspace"
)

type EvaluationComputedEvent struct {
	EvaluationID string           `json:"evaluation_id"`
	Source       string           `json:"source"`
	Criteria     int              `json:"criteria"`
	Alternatives int              `json:"alternatives"`
	WinnerID     string           `json:"winner_id"`
	WinnerName   string           `json:"winner_name"`
	TopScore     float64          `json:"top_score"`
	Diagnostics  []saw.Diagnostic `json:"diagnostics,omitempty"`
	Timestamp    time.Time        `json:"timestamp"`
}

type EvaluationRejectedEvent struct {
	EvaluationID string    `json:"evaluation_id"`
	Source       string    `json:"source"`
	Kind         string    `json:"kind"`
	Error        string    `json:"error"`
	Timestamp    time.Time `json:"timestamp"`
}

type WorkspaceEvent struct {
	Criteria     int       `json:"criteria"`
	Alternatives int       `json:"alternatives"`
	Actor        string    `json:"actor,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
}

// NewComputedEvent summarises a successful evaluation.
func NewComputedEvent(id, source string, criteria int, ev *saw.Evaluation) EvaluationComputedEvent {
	e := EvaluationComputedEvent{
		EvaluationID: id,
		Source:       source,
		Criteria:     criteria,
		Alternatives: len(ev.Results),
		Diagnostics:  ev.Diagnostics,
		Timestamp:    time.Now().UTC(),
	}
	if w, ok := ev.Winner(); ok {
		e.WinnerID = w.AlternativeID
		e.WinnerName = w.AlternativeName
		e.TopScore = w.PreferenceScore
	}
	return e
}

// NewRejectedEvent describes a validation failure.
func NewRejectedEvent(id, source string, err error) EvaluationRejectedEvent {
	return EvaluationRejectedEvent{
		EvaluationID: id,
		Source:       source,
		Kind:         saw.ErrorKind(err),
		Error:        err.Error(),
		Timestamp:    time.Now().UTC(),
	}
}

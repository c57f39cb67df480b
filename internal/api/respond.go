package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/MikeSquared-Agency/Verdict/internal/saw"
)

// EvaluationResponse is returned by /compute, /calculate and /results.
type EvaluationResponse struct {
	EvaluationID string           `json:"evaluation_id,omitempty"`
	Results      []saw.ResultItem `json:"results"`
	Diagnostics  []saw.Diagnostic `json:"diagnostics"`
}

// ErrorResponse carries a validation failure. Kind, Alternative and
// Criterion are set only for engine validation errors.
type ErrorResponse struct {
	Error        string `json:"error"`
	Kind         string `json:"kind,omitempty"`
	Alternative  string `json:"alternative,omitempty"`
	Criterion    string `json:"criterion,omitempty"`
	EvaluationID string `json:"evaluation_id,omitempty"`
}

// writeJSON encodes v before committing the status, so a value that cannot
// be encoded becomes a 500 instead of an empty success.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		status = http.StatusInternalServerError
		data, _ = json.Marshal(ErrorResponse{Error: "encode response: " + err.Error()})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(append(data, '\n')) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}

func writeEvaluation(w http.ResponseWriter, id string, ev *saw.Evaluation) {
	writeJSON(w, http.StatusOK, EvaluationResponse{
		EvaluationID: id,
		Results:      ev.Results,
		Diagnostics:  ev.Diagnostics,
	})
}

// writeEvaluationError maps engine validation errors to 422 and anything
// else to 500.
func writeEvaluationError(w http.ResponseWriter, id string, err error) {
	kind := saw.ErrorKind(err)
	if kind == "" {
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: err.Error(), EvaluationID: id})
		return
	}
	resp := ErrorResponse{Error: err.Error(), Kind: kind, EvaluationID: id}
	var mv *saw.MissingValueError
	if errors.As(err, &mv) {
		resp.Alternative = mv.AlternativeName
		resp.Criterion = mv.CriterionName
	}
	writeJSON(w, http.StatusUnprocessableEntity, resp)
}

func decodeJSON(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

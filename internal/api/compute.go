package api

import (
	"net/http"

	"github.com/MikeSquared-Agency/Verdict/internal/hermes"
	"github.com/MikeSquared-Agency/Verdict/internal/matrix"
	"github.com/MikeSquared-Agency/Verdict/internal/saw"
)

// ComputeHandler evaluates a matrix sent in the request body without
// touching the workspace.
type ComputeHandler struct {
	eval *evaluator
	opts []saw.Option
}

func NewComputeHandler(eval *evaluator, opts []saw.Option) *ComputeHandler {
	return &ComputeHandler{eval: eval, opts: opts}
}

func (h *ComputeHandler) Compute(w http.ResponseWriter, r *http.Request) {
	var doc matrix.Document
	if err := decodeJSON(r, &doc); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	criteria, alternatives, err := doc.Build()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	id, ev, err := h.eval.run(r.Context(), hermes.SourceCompute, func() evaluation {
		ev, err := saw.Compute(criteria, alternatives, h.opts...)
		return evaluation{criteria: len(criteria), ev: ev, err: err}
	})
	if err != nil {
		writeEvaluationError(w, id, err)
		return
	}
	writeEvaluation(w, id, ev)
}

package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MikeSquared-Agency/Verdict/internal/hermes"
	"github.com/MikeSquared-Agency/Verdict/internal/matrix"
	"github.com/MikeSquared-Agency/Verdict/internal/metrics"
	"github.com/MikeSquared-Agency/Verdict/internal/saw"
	"github.com/MikeSquared-Agency/Verdict/internal/workspace"
)

type CreateCriterionRequest struct {
	Name   string            `json:"name"`
	Weight float64           `json:"weight"`
	Type   saw.CriterionType `json:"type"`
}

type CreateAlternativeRequest struct {
	Name string `json:"name"`
}

// SetScoreRequest sets one matrix cell. A null or omitted value clears it.
type SetScoreRequest struct {
	Value *float64 `json:"value"`
}

// AlternativeView is an alternative with its scores; absent cells are null.
type AlternativeView struct {
	ID     string              `json:"id"`
	Name   string              `json:"name"`
	Scores map[string]*float64 `json:"scores"`
}

func newAlternativeView(a saw.Alternative) AlternativeView {
	scores := make(map[string]*float64, len(a.Scores))
	for id, v := range a.Scores {
		if f, ok := v.Get(); ok {
			scores[id] = &f
		} else {
			scores[id] = nil
		}
	}
	return AlternativeView{ID: a.ID, Name: a.Name, Scores: scores}
}

type WorkspaceHandler struct {
	ws      *workspace.Workspace
	eval    *evaluator
	metrics *metrics.Metrics
}

func NewWorkspaceHandler(ws *workspace.Workspace, eval *evaluator, m *metrics.Metrics) *WorkspaceHandler {
	return &WorkspaceHandler{ws: ws, eval: eval, metrics: m}
}

func (h *WorkspaceHandler) ListCriteria(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.ws.Criteria())
}

func (h *WorkspaceHandler) AddCriterion(w http.ResponseWriter, r *http.Request) {
	var req CreateCriterionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	c, err := h.ws.AddCriterion(req.Name, req.Weight, req.Type)
	if err != nil {
		writeWorkspaceError(w, err)
		return
	}
	h.syncSize()
	writeJSON(w, http.StatusCreated, c)
}

func (h *WorkspaceHandler) RemoveCriterion(w http.ResponseWriter, r *http.Request) {
	if err := h.ws.RemoveCriterion(chi.URLParam(r, "id")); err != nil {
		writeWorkspaceError(w, err)
		return
	}
	h.syncSize()
	w.WriteHeader(http.StatusNoContent)
}

func (h *WorkspaceHandler) ListAlternatives(w http.ResponseWriter, r *http.Request) {
	alts := h.ws.Alternatives()
	out := make([]AlternativeView, 0, len(alts))
	for _, a := range alts {
		out = append(out, newAlternativeView(a))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *WorkspaceHandler) AddAlternative(w http.ResponseWriter, r *http.Request) {
	var req CreateAlternativeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	a, err := h.ws.AddAlternative(req.Name)
	if err != nil {
		writeWorkspaceError(w, err)
		return
	}
	h.syncSize()
	writeJSON(w, http.StatusCreated, newAlternativeView(a))
}

func (h *WorkspaceHandler) RemoveAlternative(w http.ResponseWriter, r *http.Request) {
	if err := h.ws.RemoveAlternative(chi.URLParam(r, "id")); err != nil {
		writeWorkspaceError(w, err)
		return
	}
	h.syncSize()
	w.WriteHeader(http.StatusNoContent)
}

func (h *WorkspaceHandler) SetScore(w http.ResponseWriter, r *http.Request) {
	var req SetScoreRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	v := saw.Absent()
	if req.Value != nil {
		v = saw.Some(*req.Value)
	}

	altID := chi.URLParam(r, "id")
	if err := h.ws.SetScore(altID, chi.URLParam(r, "criterion_id"), v); err != nil {
		writeWorkspaceError(w, err)
		return
	}
	for _, a := range h.ws.Alternatives() {
		if a.ID == altID {
			writeJSON(w, http.StatusOK, newAlternativeView(a))
			return
		}
	}
	writeWorkspaceError(w, workspace.ErrAlternativeNotFound)
}

// Export returns the workspace as a matrix document that /workspace/import
// and the CLI accept.
func (h *WorkspaceHandler) Export(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, matrix.Export(h.ws.Criteria(), h.ws.Alternatives()))
}

func (h *WorkspaceHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	id, ev, err := h.eval.run(r.Context(), hermes.SourceWorkspace, func() evaluation {
		o := h.ws.Evaluate()
		return evaluation{criteria: o.Criteria, ev: o.Evaluation, err: o.Err}
	})
	if err != nil {
		writeEvaluationError(w, id, err)
		return
	}
	writeEvaluation(w, id, ev)
}

// Results replays the outcome of the last calculation.
func (h *WorkspaceHandler) Results(w http.ResponseWriter, r *http.Request) {
	last := h.ws.Last()
	if last == nil {
		writeError(w, http.StatusNotFound, "workspace has not been calculated")
		return
	}
	if last.Err != nil {
		writeEvaluationError(w, "", last.Err)
		return
	}
	writeEvaluation(w, "", last.Evaluation)
}

func (h *WorkspaceHandler) syncSize() {
	h.metrics.SetWorkspaceSize(h.ws.Size())
}

func writeWorkspaceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, workspace.ErrCriterionNotFound), errors.Is(err, workspace.ErrAlternativeNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, workspace.ErrInvalidName), errors.Is(err, workspace.ErrInvalidType), errors.Is(err, workspace.ErrInvalidWeight):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

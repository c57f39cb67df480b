package api

import (
	"log/slog"
	"net/http"

	"github.com/MikeSquared-Agency/Verdict/internal/hermes"
	"github.com/MikeSquared-Agency/Verdict/internal/matrix"
	"github.com/MikeSquared-Agency/Verdict/internal/metrics"
	"github.com/MikeSquared-Agency/Verdict/internal/workspace"
)

type AdminHandler struct {
	ws       *workspace.Workspace
	notifier *hermes.Notifier
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

func NewAdminHandler(ws *workspace.Workspace, n *hermes.Notifier, m *metrics.Metrics, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{ws: ws, notifier: n, metrics: m, logger: logger}
}

type WorkspaceSummary struct {
	Criteria     int `json:"criteria"`
	Alternatives int `json:"alternatives"`
}

func (h *AdminHandler) Reset(w http.ResponseWriter, r *http.Request) {
	h.ws.Reset()
	h.logger.Info("workspace reset", "client", clientKey(r))
	writeJSON(w, http.StatusOK, h.changed(r, hermes.SubjectWorkspaceReset()))
}

// Import replaces the whole workspace with a matrix document.
func (h *AdminHandler) Import(w http.ResponseWriter, r *http.Request) {
	doc, err := matrix.Decode(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid matrix document: "+err.Error())
		return
	}
	criteria, alternatives, err := doc.Build()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.ws.Replace(criteria, alternatives)
	h.logger.Info("workspace imported",
		"criteria", len(criteria),
		"alternatives", len(alternatives),
		"client", clientKey(r),
	)
	writeJSON(w, http.StatusOK, h.changed(r, hermes.SubjectWorkspaceImported()))
}

func (h *AdminHandler) changed(r *http.Request, subject string) WorkspaceSummary {
	c, a := h.ws.Size()
	h.metrics.SetWorkspaceSize(c, a)
	h.notifier.WorkspaceChanged(r.Context(), subject, c, a, clientKey(r))
	return WorkspaceSummary{Criteria: c, Alternatives: a}
}

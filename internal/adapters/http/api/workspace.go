package api

import (
	"context"
	"net/http"

	"github.com/okian/teamforge/internal/domain/model"
	"github.com/okian/teamforge/internal/domain/types"
)

// WorkspaceDependencies exposes the read side of the workspace.
type WorkspaceDependencies interface {
	Snapshot(ctx context.Context) types.Workspace
	Candidates(ctx context.Context) []model.Candidate
}

// WorkspaceHandler serves snapshots and the candidate catalog.
type WorkspaceHandler struct {
	deps WorkspaceDependencies
}

// NewWorkspaceHandler creates a new workspace handler.
func NewWorkspaceHandler(deps WorkspaceDependencies) *WorkspaceHandler {
	return &WorkspaceHandler{deps: deps}
}

// HandleGetWorkspace handles GET /workspace requests.
func (h *WorkspaceHandler) HandleGetWorkspace(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.Snapshot(r.Context()))
}

// HandleGetCandidates handles GET /candidates requests.
func (h *WorkspaceHandler) HandleGetCandidates(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.Candidates(r.Context()))
}

package api

import (
	"context"
	"net/http"

	"github.com/okian/teamforge/internal/domain/types"
)

// SelectorDependencies drives the saved-team dropdown.
type SelectorDependencies interface {
	Snapshot(ctx context.Context) types.Workspace
	ToggleSelector(ctx context.Context) bool
	SelectOutside(ctx context.Context) bool
	Pointer(ctx context.Context) int
	ChooseTeam(ctx context.Context, id *string) bool
}

type chooseRequest struct {
	TeamID *string `json:"team_id"`
}

type selectorResponse struct {
	Open      bool            `json:"open"`
	Applied   bool            `json:"applied"`
	Notified  int             `json:"notified"`
	Workspace types.Workspace `json:"workspace"`
}

// SelectorHandler handles /selector/* and /pointer requests.
type SelectorHandler struct {
	deps SelectorDependencies
}

// NewSelectorHandler creates a new selector handler.
func NewSelectorHandler(deps SelectorDependencies) *SelectorHandler {
	return &SelectorHandler{deps: deps}
}

// HandleToggle handles POST /selector/toggle.
func (h *SelectorHandler) HandleToggle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	open := h.deps.ToggleSelector(r.Context())
	h.respond(w, r, selectorResponse{Open: open, Applied: true})
}

// HandleOutside handles POST /selector/outside.
func (h *SelectorHandler) HandleOutside(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	closed := h.deps.SelectOutside(r.Context())
	h.respond(w, r, selectorResponse{Applied: closed})
}

// HandleChoose handles POST /selector/choose. A null team_id clears the
// selection; an unknown id only closes the dropdown.
func (h *SelectorHandler) HandleChoose(w http.ResponseWriter, r *http.Request) {
	const op = "api.selector_choose"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req chooseRequest
	if err := decodeBody(r, &req); err != nil {
		writeFailure(w, WrapKind(op, ErrBadRequest, err))
		return
	}
	applied := h.deps.ChooseTeam(r.Context(), req.TeamID)
	h.respond(w, r, selectorResponse{Applied: applied})
}

// HandlePointer handles POST /pointer: an interaction anywhere on the page.
func (h *SelectorHandler) HandlePointer(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	n := h.deps.Pointer(r.Context())
	h.respond(w, r, selectorResponse{Applied: n > 0, Notified: n})
}

func (h *SelectorHandler) respond(w http.ResponseWriter, r *http.Request, resp selectorResponse) { //nolint:gocritic // response value
	resp.Workspace = h.deps.Snapshot(r.Context())
	resp.Open = resp.Workspace.Selector.Open
	writeJSON(w, http.StatusOK, resp)
}

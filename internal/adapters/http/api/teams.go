package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/okian/teamforge/internal/domain/model"
)

// TeamDependencies manages saved teams.
type TeamDependencies interface {
	Teams(ctx context.Context) []model.Team
	Team(ctx context.Context, id string) (model.Team, error)
	SaveTeam(ctx context.Context, name, targetRole string) (model.Team, error)
	UpdateTeam(ctx context.Context, id, name, targetRole string) (model.Team, error)
	DeleteTeam(ctx context.Context, id string) error
}

type saveTeamRequest struct {
	Name       string `json:"name"`
	TargetRole string `json:"target_role"`
}

// TeamsHandler handles saved-team requests.
type TeamsHandler struct {
	deps TeamDependencies
}

// NewTeamsHandler creates a new teams handler.
func NewTeamsHandler(deps TeamDependencies) *TeamsHandler {
	return &TeamsHandler{deps: deps}
}

// HandleTeams handles GET and POST /teams.
func (h *TeamsHandler) HandleTeams(w http.ResponseWriter, r *http.Request) {
	const op = "api.teams"
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, h.deps.Teams(r.Context()))
	case http.MethodPost:
		var req saveTeamRequest
		if err := decodeBody(r, &req); err != nil {
			writeFailure(w, WrapKind(op, ErrBadRequest, err))
			return
		}
		if strings.TrimSpace(req.Name) == "" {
			writeFailure(w, WrapKind(op, ErrBadRequest, errors.New("missing name")))
			return
		}
		team, err := h.deps.SaveTeam(r.Context(), req.Name, req.TargetRole)
		if err != nil {
			writeFailure(w, Wrap(op, err))
			return
		}
		writeJSON(w, http.StatusCreated, team)
	default:
		http.NotFound(w, r)
	}
}

// HandleTeam handles GET, PUT and DELETE /teams/{id}. PUT renames the team
// or changes its target role; omitted fields are kept.
func (h *TeamsHandler) HandleTeam(w http.ResponseWriter, r *http.Request) {
	const op = "api.team"
	id := strings.TrimPrefix(r.URL.Path, "/teams/")
	if id == "" || strings.Contains(id, "/") {
		writeFailure(w, NewKind(op, ErrBadRequest))
		return
	}
	switch r.Method {
	case http.MethodGet:
		team, err := h.deps.Team(r.Context(), id)
		if err != nil {
			writeFailure(w, Wrap(op, err))
			return
		}
		writeJSON(w, http.StatusOK, team)
	case http.MethodPut:
		var req saveTeamRequest
		if err := decodeBody(r, &req); err != nil {
			writeFailure(w, WrapKind(op, ErrBadRequest, err))
			return
		}
		team, err := h.deps.UpdateTeam(r.Context(), id, req.Name, req.TargetRole)
		if err != nil {
			writeFailure(w, Wrap(op, err))
			return
		}
		writeJSON(w, http.StatusOK, team)
	case http.MethodDelete:
		if err := h.deps.DeleteTeam(r.Context(), id); err != nil {
			writeFailure(w, Wrap(op, err))
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		http.NotFound(w, r)
	}
}

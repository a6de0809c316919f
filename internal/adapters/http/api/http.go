// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	repository "github.com/okian/teamforge/internal/adapters/repository"
	"github.com/okian/teamforge/internal/domain/drag"
	"github.com/okian/teamforge/internal/domain/types"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	WorkspaceDependencies
	TeamDependencies
	DragDependencies
	MoveDependencies
	SelectorDependencies
}

// Server wires HTTP routes for the workspace API.
type Server struct {
	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	workspaceHandler *WorkspaceHandler
	teamsHandler     *TeamsHandler
	dragHandler      *DragHandler
	movesHandler     *MovesHandler
	selectorHandler  *SelectorHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:    NewHealthHandler(),
		statsHandler:     NewStatsHandler(statsProvider),
		workspaceHandler: NewWorkspaceHandler(deps),
		teamsHandler:     NewTeamsHandler(deps),
		dragHandler:      NewDragHandler(deps),
		movesHandler:     NewMovesHandler(deps),
		selectorHandler:  NewSelectorHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))

	mux.HandleFunc("/workspace", MetricsMiddleware(s.workspaceHandler.HandleGetWorkspace, "workspace"))
	mux.HandleFunc("/candidates", MetricsMiddleware(s.workspaceHandler.HandleGetCandidates, "candidates"))

	mux.HandleFunc("/teams", MetricsMiddleware(s.teamsHandler.HandleTeams, "teams"))
	mux.HandleFunc("/teams/", MetricsMiddleware(s.teamsHandler.HandleTeam, "team_by_id"))

	mux.HandleFunc("/drag/start", MetricsMiddleware(s.dragHandler.HandleStart, "drag_start"))
	mux.HandleFunc("/drag/over", MetricsMiddleware(s.dragHandler.HandleOver, "drag_over"))
	mux.HandleFunc("/drag/end", MetricsMiddleware(s.dragHandler.HandleEnd, "drag_end"))
	mux.HandleFunc("/drag/cancel", MetricsMiddleware(s.dragHandler.HandleCancel, "drag_cancel"))

	mux.HandleFunc("/team/add", MetricsMiddleware(s.movesHandler.HandleAdd, "team_add"))
	mux.HandleFunc("/team/move", MetricsMiddleware(s.movesHandler.HandleMove, "team_move"))
	mux.HandleFunc("/team/remove", MetricsMiddleware(s.movesHandler.HandleRemove, "team_remove"))

	mux.HandleFunc("/selector/toggle", MetricsMiddleware(s.selectorHandler.HandleToggle, "selector_toggle"))
	mux.HandleFunc("/selector/outside", MetricsMiddleware(s.selectorHandler.HandleOutside, "selector_outside"))
	mux.HandleFunc("/selector/choose", MetricsMiddleware(s.selectorHandler.HandleChoose, "selector_choose"))
	mux.HandleFunc("/pointer", MetricsMiddleware(s.selectorHandler.HandlePointer, "pointer"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// gestureResponse is returned by every committing gesture.
type gestureResponse struct {
	Status    string          `json:"status"`
	Op        string          `json:"op"`
	Index     int             `json:"index"`
	Changed   bool            `json:"changed"`
	Duplicate bool            `json:"duplicate"`
	Workspace types.Workspace `json:"workspace"`
}

func newGestureResponse(g types.GestureResult, ws types.Workspace) gestureResponse { //nolint:gocritic // small value types
	return gestureResponse{
		Status:    g.Status(),
		Op:        g.Op.String(),
		Index:     g.Index,
		Changed:   g.Changed,
		Duplicate: g.Duplicate,
		Workspace: ws,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeFailure maps domain and API error kinds to a status and code.
func writeFailure(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, drag.ErrInvalidTransition), errors.Is(err, ErrConflict):
		writeError(w, http.StatusConflict, "invalid_transition", err)
	case errors.Is(err, repository.ErrNotFound), errors.Is(err, ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", err)
	case errors.Is(err, drag.ErrUnknownCollection),
		errors.Is(err, repository.ErrInvalidTeam),
		errors.Is(err, ErrBadRequest):
		writeError(w, http.StatusBadRequest, "bad_request", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err)
	}
}

// decodeBody reads an optional JSON body into v. An empty body leaves v untouched.
func decodeBody(r *http.Request, v any) error {
	if r.Body == nil {
		return nil
	}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

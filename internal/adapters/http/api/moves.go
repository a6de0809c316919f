package api

import (
	"context"
	"errors"
	"math"
	"net/http"
	"strings"

	"github.com/okian/teamforge/internal/domain/types"
)

// MoveDependencies applies direct, non-pointer team edits.
type MoveDependencies interface {
	Snapshot(ctx context.Context) types.Workspace
	MoveToTeam(ctx context.Context, eventID, id string, atIndex int) (types.GestureResult, error)
	MoveWithinTeam(ctx context.Context, eventID, id string, toIndex int) (types.GestureResult, error)
	RemoveFromTeam(ctx context.Context, eventID, id string) (types.GestureResult, error)
}

type moveRequest struct {
	EventID string `json:"event_id"`
	ID      string `json:"id"`
	// Index defaults to the end of the team.
	Index *int `json:"index"`
}

func (m moveRequest) index() int {
	if m.Index == nil {
		return math.MaxInt32
	}
	return *m.Index
}

// MovesHandler handles /team/* requests.
type MovesHandler struct {
	deps MoveDependencies
}

// NewMovesHandler creates a new moves handler.
func NewMovesHandler(deps MoveDependencies) *MovesHandler {
	return &MovesHandler{deps: deps}
}

// HandleAdd handles POST /team/add.
func (h *MovesHandler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, "api.team_add", func(ctx context.Context, req moveRequest) (types.GestureResult, error) {
		return h.deps.MoveToTeam(ctx, req.EventID, req.ID, req.index())
	})
}

// HandleMove handles POST /team/move.
func (h *MovesHandler) HandleMove(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, "api.team_move", func(ctx context.Context, req moveRequest) (types.GestureResult, error) {
		return h.deps.MoveWithinTeam(ctx, req.EventID, req.ID, req.index())
	})
}

// HandleRemove handles POST /team/remove.
func (h *MovesHandler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, "api.team_remove", func(ctx context.Context, req moveRequest) (types.GestureResult, error) {
		return h.deps.RemoveFromTeam(ctx, req.EventID, req.ID)
	})
}

func (h *MovesHandler) handle(w http.ResponseWriter, r *http.Request, op string, apply func(context.Context, moveRequest) (types.GestureResult, error)) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req moveRequest
	if err := decodeBody(r, &req); err != nil {
		writeFailure(w, WrapKind(op, ErrBadRequest, err))
		return
	}
	req.ID = strings.TrimSpace(req.ID)
	req.EventID = strings.TrimSpace(req.EventID)
	if req.ID == "" {
		writeFailure(w, WrapKind(op, ErrBadRequest, errors.New("missing id")))
		return
	}
	res, err := apply(r.Context(), req)
	if err != nil {
		writeFailure(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, newGestureResponse(res, h.deps.Snapshot(r.Context())))
}

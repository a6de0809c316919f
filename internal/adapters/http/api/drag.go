package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/okian/teamforge/internal/domain/collection"
	"github.com/okian/teamforge/internal/domain/types"
)

// DragDependencies drives the drag session.
type DragDependencies interface {
	Snapshot(ctx context.Context) types.Workspace
	DragStart(ctx context.Context, id string, source collection.Kind, sourceIndex int) error
	DragOver(ctx context.Context, overID string, over collection.Kind) error
	DragEnd(ctx context.Context, eventID string) (types.GestureResult, error)
	DragCancel(ctx context.Context) (types.GestureResult, error)
}

type dragStartRequest struct {
	ID     string `json:"id"`
	Source string `json:"source"`
	Index  int    `json:"index"`
}

type dragOverRequest struct {
	OverID         string `json:"over_id"`
	OverCollection string `json:"over_collection"`
}

type dragEndRequest struct {
	EventID string `json:"event_id"`
}

// DragHandler handles /drag/* requests.
type DragHandler struct {
	deps DragDependencies
}

// NewDragHandler creates a new drag handler.
func NewDragHandler(deps DragDependencies) *DragHandler {
	return &DragHandler{deps: deps}
}

// HandleStart handles POST /drag/start.
func (h *DragHandler) HandleStart(w http.ResponseWriter, r *http.Request) {
	const op = "api.drag_start"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req dragStartRequest
	if err := decodeBody(r, &req); err != nil {
		writeFailure(w, WrapKind(op, ErrBadRequest, err))
		return
	}
	if strings.TrimSpace(req.ID) == "" {
		writeFailure(w, WrapKind(op, ErrBadRequest, errors.New("missing id")))
		return
	}
	if err := h.deps.DragStart(r.Context(), req.ID, collection.ParseKind(req.Source), req.Index); err != nil {
		writeFailure(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, h.deps.Snapshot(r.Context()))
}

// HandleOver handles POST /drag/over. An empty body clears the hover target.
func (h *DragHandler) HandleOver(w http.ResponseWriter, r *http.Request) {
	const op = "api.drag_over"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req dragOverRequest
	if err := decodeBody(r, &req); err != nil {
		writeFailure(w, WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := h.deps.DragOver(r.Context(), req.OverID, collection.ParseKind(req.OverCollection)); err != nil {
		writeFailure(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, h.deps.Snapshot(r.Context()))
}

// HandleEnd handles POST /drag/end.
func (h *DragHandler) HandleEnd(w http.ResponseWriter, r *http.Request) {
	const op = "api.drag_end"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req dragEndRequest
	if err := decodeBody(r, &req); err != nil {
		writeFailure(w, WrapKind(op, ErrBadRequest, err))
		return
	}
	res, err := h.deps.DragEnd(r.Context(), strings.TrimSpace(req.EventID))
	if err != nil {
		writeFailure(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, newGestureResponse(res, h.deps.Snapshot(r.Context())))
}

// HandleCancel handles POST /drag/cancel.
func (h *DragHandler) HandleCancel(w http.ResponseWriter, r *http.Request) {
	const op = "api.drag_cancel"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	res, err := h.deps.DragCancel(r.Context())
	if err != nil {
		writeFailure(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, newGestureResponse(res, h.deps.Snapshot(r.Context())))
}

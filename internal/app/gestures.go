package service

import (
	"context"

	"github.com/okian/teamforge/internal/domain/collection"
	"github.com/okian/teamforge/internal/domain/drag"
	"github.com/okian/teamforge/internal/domain/types"
	"github.com/okian/teamforge/pkg/logger"
	"github.com/okian/teamforge/pkg/metrics"
)

// GestureResult reports what a committing gesture did.
type GestureResult = types.GestureResult

// DragStart opens a drag session. The id is not checked against the
// catalog; the store accepts ids it has not seen.
func (w *Workspace) DragStart(ctx context.Context, id string, source collection.Kind, sourceIndex int) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.drag.Start(id, source, sourceIndex); err != nil {
		return w.transition(ctx, "start", err)
	}
	metrics.RecordDragStarted()
	w.logger.Debug(ctx, "drag started",
		logger.String("id", id),
		logger.String("source", source.String()),
		logger.Int("index", sourceIndex),
	)
	return nil
}

// DragOver records the hover target. An empty overID clears it.
func (w *Workspace) DragOver(ctx context.Context, overID string, over collection.Kind) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.transition(ctx, "over", w.drag.Over(overID, over))
}

// DragEnd resolves the active session against the store. A repeated
// eventID is acknowledged without touching the session.
func (w *Workspace) DragEnd(ctx context.Context, eventID string) (GestureResult, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.seen(ctx, eventID) {
		return GestureResult{Duplicate: true, Index: -1}, nil
	}
	out, err := w.drag.End(w.store)
	if err != nil {
		w.forget(ctx, eventID)
		if err = w.transition(ctx, "end", err); err != nil {
			return GestureResult{}, err
		}
		return GestureResult{Ignored: true, Index: -1}, nil
	}
	w.resolved(ctx, out)
	return GestureResult{Result: out.Result, Op: out.Op, Index: out.Index, Changed: out.Changed}, nil
}

// DragCancel discards the active session.
func (w *Workspace) DragCancel(ctx context.Context) (GestureResult, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	out, err := w.drag.Cancel()
	if err != nil {
		if err = w.transition(ctx, "cancel", err); err != nil {
			return GestureResult{}, err
		}
		return GestureResult{Ignored: true, Index: -1}, nil
	}
	w.resolved(ctx, out)
	return GestureResult{Result: out.Result, Op: out.Op, Index: out.Index}, nil
}

// MoveToTeam inserts a candidate into the team without a drag.
func (w *Workspace) MoveToTeam(ctx context.Context, eventID, id string, atIndex int) (GestureResult, error) {
	return w.mutate(ctx, eventID, id, drag.OpMoveToTeam, func() (int, bool) {
		changed := w.store.MoveToTeam(id, atIndex)
		return w.store.TeamIndex(id), changed
	})
}

// MoveWithinTeam reorders a team member without a drag.
func (w *Workspace) MoveWithinTeam(ctx context.Context, eventID, id string, toIndex int) (GestureResult, error) {
	return w.mutate(ctx, eventID, id, drag.OpMoveWithinTeam, func() (int, bool) {
		changed := w.store.MoveWithinTeam(id, toIndex)
		return w.store.TeamIndex(id), changed
	})
}

// RemoveFromTeam returns a team member to the pool without a drag.
func (w *Workspace) RemoveFromTeam(ctx context.Context, eventID, id string) (GestureResult, error) {
	return w.mutate(ctx, eventID, id, drag.OpRemoveFromTeam, func() (int, bool) {
		return -1, w.store.RemoveFromTeam(id)
	})
}

func (w *Workspace) mutate(ctx context.Context, eventID, id string, op drag.Op, apply func() (int, bool)) (GestureResult, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.seen(ctx, eventID) {
		return GestureResult{Duplicate: true, Index: -1}, nil
	}
	index, changed := apply()
	if changed {
		metrics.RecordCollectionMutation(op.String())
	}
	w.logger.Debug(ctx, "direct move",
		logger.String("op", op.String()),
		logger.String("id", id),
		logger.Bool("changed", changed),
	)
	return GestureResult{Result: drag.Committed, Op: op, Index: index, Changed: changed}, nil
}

func (w *Workspace) resolved(ctx context.Context, out drag.Outcome) {
	metrics.RecordDragResolved(out.Result.String(), out.Op.String())
	if out.Changed {
		metrics.RecordCollectionMutation(out.Op.String())
	}
	w.logger.Debug(ctx, "drag resolved",
		logger.String("id", out.Session.DraggedID),
		logger.String("result", out.Result.String()),
		logger.String("op", out.Op.String()),
		logger.Int("index", out.Index),
		logger.Bool("changed", out.Changed),
	)
}

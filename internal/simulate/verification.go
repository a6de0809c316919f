package simulate

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/okian/teamforge/pkg/logger"
)

// ErrInvariant reports a workspace snapshot that breaks the membership or
// metrics invariants.
var ErrInvariant = errors.New("workspace invariant violated")

// VerifySnapshot checks that every catalog id appears exactly once across
// pool and team, and that metrics agree with the team.
func VerifySnapshot(snap *Snapshot, catalog []string) error {
	seen := make(map[string]string, len(catalog))
	for _, where := range []struct {
		name string
		ids  []string
	}{{"pool", snap.Pool}, {"team", snap.Team}} {
		for _, id := range where.ids {
			if prev, ok := seen[id]; ok {
				return fmt.Errorf("%w: %s appears in %s and %s", ErrInvariant, id, prev, where.name)
			}
			seen[id] = where.name
		}
	}

	var missing []string
	for _, id := range catalog {
		if _, ok := seen[id]; !ok {
			missing = append(missing, id)
		}
		delete(seen, id)
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %v", ErrInvariant, missing)
	}
	if len(seen) > 0 {
		extra := make([]string, 0, len(seen))
		for id := range seen {
			extra = append(extra, id)
		}
		sort.Strings(extra)
		return fmt.Errorf("%w: unknown ids %v", ErrInvariant, extra)
	}

	switch {
	case len(snap.Team) == 0 && snap.Metrics != nil:
		return fmt.Errorf("%w: metrics reported for an empty team", ErrInvariant)
	case len(snap.Team) > 0 && snap.Metrics == nil:
		return fmt.Errorf("%w: no metrics for a team of %d", ErrInvariant, len(snap.Team))
	case snap.Metrics != nil && snap.Metrics.TeamSize != len(snap.Team):
		return fmt.Errorf("%w: team_size %d for a team of %d", ErrInvariant, snap.Metrics.TeamSize, len(snap.Team))
	case snap.Metrics != nil && snap.Metrics.Synergy != (len(snap.Team) > 1):
		return fmt.Errorf("%w: synergy %t for a team of %d", ErrInvariant, snap.Metrics.Synergy, len(snap.Team))
	case snap.Metrics != nil && (snap.Metrics.AvgScore < 0 || snap.Metrics.AvgScore > 100):
		return fmt.Errorf("%w: avg_score %d out of range", ErrInvariant, snap.Metrics.AvgScore)
	}
	return nil
}

// verifyResults fetches the final snapshot and checks it.
func verifyResults(ctx context.Context, client *HTTPClient, catalog []string) (*Snapshot, error) {
	logger.Get().Info(ctx, "verifying workspace")

	var snap Snapshot
	if err := client.Get(ctx, "/workspace", &snap); err != nil {
		return nil, fmt.Errorf("failed to fetch workspace: %w", err)
	}
	if err := VerifySnapshot(&snap, catalog); err != nil {
		return &snap, err
	}
	if snap.Drag != nil {
		return &snap, fmt.Errorf("%w: drag session for %s left open", ErrInvariant, snap.Drag.DraggedID)
	}

	logger.Get().Info(ctx, "workspace verified",
		logger.Int("team", len(snap.Team)),
		logger.Int("pool", len(snap.Pool)),
		logger.Any("revision", snap.Revision))
	return &snap, nil
}

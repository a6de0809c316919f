// Package service hosts the team-builder workspace: the collection store,
// the drag and selector machines, and the background compatibility scoring
// that the HTTP API drives.
package service

import (
	"context"
	"errors"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	eventqueue "github.com/okian/teamforge/internal/adapters/mq/queue"
	workerpool "github.com/okian/teamforge/internal/adapters/mq/worker"
	repository "github.com/okian/teamforge/internal/adapters/repository"
	"github.com/okian/teamforge/internal/domain/collection"
	"github.com/okian/teamforge/internal/domain/dedupe"
	"github.com/okian/teamforge/internal/domain/drag"
	"github.com/okian/teamforge/internal/domain/model"
	"github.com/okian/teamforge/internal/domain/scoring"
	"github.com/okian/teamforge/internal/domain/selector"
	"github.com/okian/teamforge/internal/domain/teamstats"
	"github.com/okian/teamforge/internal/domain/types"
	"github.com/okian/teamforge/pkg/logger"
	"github.com/okian/teamforge/pkg/metrics"
)

// scoringAdapter adapts scoring.Scorer to worker.Scorer.
type scoringAdapter struct {
	scorer scoring.Scorer
}

func (a *scoringAdapter) Score(ctx context.Context, r workerpool.Request) (int, error) { //nolint:gocritic // worker interface
	res, err := a.scorer.Score(ctx, scoring.Input{Revision: r.Revision, Members: r.Members})
	if err != nil {
		return 0, err
	}
	return res.Score, nil
}

// Workspace owns the working team and everything that reacts to it.
//
// All calls are serialised by one mutex, which stands in for the single
// UI event loop the machines expect. Listeners run with that mutex held
// and must not call back into the Workspace.
type Workspace struct {
	mu sync.Mutex

	store    *collection.Store
	drag     *drag.Machine
	selector *selector.Machine
	outside  *selector.Broadcaster

	catalog repository.Catalog
	teams   repository.TeamStore
	deduper dedupe.Deduper
	queue   eventqueue.Queue
	scorer  scoring.Scorer
	pool    *workerpool.Pool

	// revision is bumped on every team change. Workers read it without mu.
	revision      atomic.Uint64
	teamMetrics   *teamstats.Metrics
	skillGaps     []string
	levelMix      map[model.SkillLevel]int
	compatibility *int

	workerCount       int
	queueSize         int
	dedupeSize        int
	weights           scoring.Weights
	scoringMinLatency time.Duration
	scoringMaxLatency time.Duration
	strict            bool
	required          []string
	initialTeam       []string

	onTeamChanged          func([]string)
	onTeamSelected         func(*model.Team)
	onMetricsChanged       func(*teamstats.Metrics)
	onCompatibilityChanged func(*int)

	started bool
	stopped bool

	logger logger.Logger
}

// New builds a workspace over catalog and teams. Every catalog candidate
// starts in the pool unless WithInitialTeam places it on the team.
func New(catalog repository.Catalog, teams repository.TeamStore, opts ...Option) *Workspace {
	w := &Workspace{
		catalog:           catalog,
		teams:             teams,
		drag:              drag.New(),
		outside:           selector.NewBroadcaster(),
		workerCount:       runtime.NumCPU(),
		queueSize:         1024,
		dedupeSize:        10_000,
		weights:           scoring.Weights{Talent: 0.4, Diversity: 0.35, Coverage: 0.25},
		scoringMinLatency: 80 * time.Millisecond,
		scoringMaxLatency: 150 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.logger == nil {
		w.logger = logger.Get().Named("workspace")
	}
	if w.scorer == nil {
		w.scorer = scoring.NewInMemoryScorer(
			scoring.WithWeights(w.weights),
			scoring.WithLatencyRange(w.scoringMinLatency, w.scoringMaxLatency),
		)
	}
	w.deduper = dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(w.dedupeSize))
	w.queue = eventqueue.NewInMemoryQueue(eventqueue.WithCapacity(w.queueSize))

	ctx := context.Background()
	saved := teams.List(ctx)
	w.selector = selector.New(w.outside,
		selector.WithTeams(saved),
		selector.WithListener(w.teamSelected),
	)
	metrics.UpdateSavedTeams(len(saved))

	w.store = collection.New(collection.WithListener(w.teamChanged))
	w.store.Load(w.knownIDs(ctx, candidateIDs(catalog.List(ctx))), w.knownIDs(ctx, w.initialTeam))
	return w
}

// Start launches the scoring workers.
func (w *Workspace) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.started {
		return nil
	}
	w.logger.Info(ctx, "starting workspace...")

	w.pool = workerpool.NewPool(w.workerCount, w.queue, &scoringAdapter{scorer: w.scorer}, w)
	w.pool.Start(ctx)
	w.started = true

	w.logger.Info(ctx, "workspace started",
		logger.Int("workers", w.workerCount),
		logger.Int("queueSize", w.queueSize),
		logger.Int("dedupeSize", w.dedupeSize),
		logger.Int("candidates", w.store.PoolLen()+w.store.TeamLen()),
		logger.Bool("strict", w.strict),
	)
	return nil
}

// Stop drains the scoring workers and releases the selector subscription.
func (w *Workspace) Stop(ctx context.Context) error {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return nil
	}
	w.stopped = true
	pool := w.pool
	w.selector.Destroy()
	metrics.UpdateOutsideSubscriptions(w.outside.Subscribers())
	w.mu.Unlock()

	w.logger.Info(ctx, "stopping workspace...")
	// Workers re-enter through UpdateCompatibility, so mu must be free here.
	var err error
	if pool != nil {
		err = pool.Shutdown(ctx)
	} else {
		err = w.queue.Close()
	}
	w.logger.Info(ctx, "workspace stopped")
	return err
}

// IsCurrent reports whether revision is the latest team revision.
func (w *Workspace) IsCurrent(revision uint64) bool {
	return w.revision.Load() == revision
}

// Revision returns the current team revision.
func (w *Workspace) Revision() uint64 {
	return w.revision.Load()
}

// UpdateCompatibility stores score when revision is still current. Scores
// for older revisions are dropped and reported as false.
func (w *Workspace) UpdateCompatibility(ctx context.Context, revision uint64, score int) (bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if revision != w.revision.Load() {
		w.logger.Debug(ctx, "dropping stale compatibility score",
			logger.Any("revision", revision),
			logger.Any("current", w.revision.Load()),
		)
		return false, nil
	}
	s := model.ClampScore(score)
	w.compatibility = &s
	metrics.UpdateCompatibilityScore(s)
	if w.onCompatibilityChanged != nil {
		w.onCompatibilityChanged(&s)
	}
	return true, nil
}

// Snapshot returns a consistent view of the workspace.
func (w *Workspace) Snapshot(_ context.Context) types.Workspace {
	w.mu.Lock()
	defer w.mu.Unlock()

	snap := types.Workspace{
		Revision:  w.revision.Load(),
		Pool:      w.store.Pool(),
		Team:      w.store.Team(),
		SkillGaps: append([]string(nil), w.skillGaps...),
		Selector:  types.SelectorView{Open: w.selector.IsOpen()},
	}
	if w.teamMetrics != nil {
		m := *w.teamMetrics
		snap.Metrics = &m
	}
	if len(w.levelMix) > 0 {
		snap.LevelMix = make(map[model.SkillLevel]int, len(w.levelMix))
		for level, n := range w.levelMix {
			snap.LevelMix[level] = n
		}
	}
	if w.compatibility != nil {
		c := *w.compatibility
		snap.Compatibility = &c
	}
	if s, ok := w.drag.Session(); ok {
		snap.Drag = &types.DragView{
			DraggedID:      s.DraggedID,
			Source:         s.Source.String(),
			SourceIndex:    s.SourceIndex,
			OverID:         s.OverID,
			OverCollection: overCollection(s.OverCollection),
		}
	}
	if id, ok := w.selector.SelectedID(); ok {
		snap.Selector.SelectedTeamID = &id
		_, found := w.selector.Selected()
		snap.Selector.Stale = !found
	}
	return snap
}

// Candidates lists the catalog.
func (w *Workspace) Candidates(ctx context.Context) []model.Candidate {
	return w.catalog.List(ctx)
}

// Teams lists saved teams.
func (w *Workspace) Teams(ctx context.Context) []model.Team {
	return w.teams.List(ctx)
}

// GetStats returns workspace statistics for monitoring.
func (w *Workspace) GetStats() map[string]interface{} {
	w.mu.Lock()
	defer w.mu.Unlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":            w.started && !w.stopped,
		"workerCount":        w.workerCount,
		"queueSize":          w.queueSize,
		"dedupeSize":         w.dedupeSize,
		"strictTransitions":  w.strict,
		"revision":           w.revision.Load(),
		"teamSize":           w.store.TeamLen(),
		"poolSize":           w.store.PoolLen(),
		"savedTeams":         len(w.selector.Teams()),
		"dragActive":         w.drag.State() == drag.Active,
		"selectorOpen":       w.selector.IsOpen(),
		"outsideSubscribers": w.outside.Subscribers(),
		"seenGestures":       w.deduper.Size(),
		"queueLength":        w.queue.Len(ctx),
	}
	if w.pool != nil {
		stats["scored"] = w.pool.Processed()
	}
	metrics.UpdateQueueSize(w.queue.Len(ctx))
	metrics.UpdateTeamSize(w.store.TeamLen())
	metrics.UpdatePoolSize(w.store.PoolLen())
	return stats
}

// teamChanged runs inside every store mutation that changed state.
func (w *Workspace) teamChanged(team []string) {
	ctx := context.Background()
	rev := w.revision.Add(1)

	members := w.catalog.Lookup(ctx, team)
	w.teamMetrics = teamstats.Compute(members)
	w.skillGaps = nil
	if len(w.required) > 0 {
		w.skillGaps = teamstats.SkillGaps(members, w.required)
	}
	w.levelMix = nil
	if len(members) > 0 {
		w.levelMix = teamstats.LevelMix(members)
	}
	metrics.UpdateTeamSize(len(team))
	metrics.UpdatePoolSize(w.store.PoolLen())

	if w.onTeamChanged != nil {
		w.onTeamChanged(append([]string(nil), team...))
	}
	if w.onMetricsChanged != nil {
		w.onMetricsChanged(w.teamMetrics)
	}

	// The previous score describes another team.
	if w.compatibility != nil {
		w.compatibility = nil
		if w.onCompatibilityChanged != nil {
			w.onCompatibilityChanged(nil)
		}
	}
	if len(members) == 0 {
		return
	}
	if !w.queue.Enqueue(ctx, eventqueue.Request{Revision: rev, Members: members}) {
		w.logger.Warn(ctx, "scoring request not enqueued", logger.Any("revision", rev))
	}
}

// teamSelected applies a selector choice to the working team.
func (w *Workspace) teamSelected(team *model.Team) {
	ctx := context.Background()
	if team != nil {
		w.store.ReplaceTeam(w.knownIDs(ctx, team.MemberIDs()))
	}
	if w.onTeamSelected != nil {
		w.onTeamSelected(team)
	}
}

// knownIDs keeps the ids the catalog can resolve, in order.
func (w *Workspace) knownIDs(ctx context.Context, ids []string) []string {
	return candidateIDs(w.catalog.Lookup(ctx, ids))
}

// seen records eventID and reports whether it was already applied. Empty
// ids are never deduplicated.
func (w *Workspace) seen(ctx context.Context, eventID string) bool {
	if eventID == "" {
		return false
	}
	if w.deduper.SeenAndRecord(ctx, eventID) {
		metrics.RecordGestureDuplicate()
		w.logger.Debug(ctx, "duplicate gesture", logger.String("eventID", eventID))
		return true
	}
	return false
}

func (w *Workspace) forget(ctx context.Context, eventID string) {
	if eventID != "" {
		w.deduper.Unrecord(ctx, eventID)
	}
}

// transition applies the strict or lenient policy to machine errors.
func (w *Workspace) transition(ctx context.Context, action string, err error) error {
	if err == nil {
		return nil
	}
	if !errors.Is(err, drag.ErrInvalidTransition) {
		return err
	}
	metrics.RecordInvalidTransition(action)
	if w.strict {
		return err
	}
	w.logger.Warn(ctx, "ignoring invalid drag transition",
		logger.String("action", action),
		logger.Error(err),
	)
	return nil
}

func candidateIDs(cands []model.Candidate) []string {
	ids := make([]string, len(cands))
	for i, c := range cands {
		ids[i] = c.ID
	}
	return ids
}

func overCollection(k collection.Kind) string {
	if k == collection.None {
		return ""
	}
	return k.String()
}

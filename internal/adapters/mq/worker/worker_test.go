package worker_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	queue "github.com/okian/teamforge/internal/adapters/mq/queue"
	worker "github.com/okian/teamforge/internal/adapters/mq/worker"
	model "github.com/okian/teamforge/internal/domain/model"
	logging "github.com/okian/teamforge/pkg/logger"
	"github.com/smartystreets/goconvey/convey"
)

type mockQueue struct {
	requests chan queue.Request
	once     sync.Once
}

func newMockQueue() *mockQueue {
	return &mockQueue{requests: make(chan queue.Request, 10)}
}

func (mq *mockQueue) Dequeue(ctx context.Context) <-chan queue.Request {
	return mq.requests
}

func (mq *mockQueue) Close() error {
	mq.once.Do(func() { close(mq.requests) })
	return nil
}

func (mq *mockQueue) add(r queue.Request) { //nolint:gocritic // passed by value for channel semantics
	mq.requests <- r
}

type mockScorer struct {
	mu     sync.Mutex
	calls  []uint64
	scores map[uint64]int
	errs   map[uint64]error
}

func newMockScorer() *mockScorer {
	return &mockScorer{scores: make(map[uint64]int), errs: make(map[uint64]error)}
}

func (ms *mockScorer) Score(ctx context.Context, r queue.Request) (int, error) { //nolint:gocritic // interface signature
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.calls = append(ms.calls, r.Revision)
	if err, ok := ms.errs[r.Revision]; ok {
		return 0, err
	}
	if s, ok := ms.scores[r.Revision]; ok {
		return s, nil
	}
	return 75, nil
}

func (ms *mockScorer) called() []uint64 {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	return append([]uint64(nil), ms.calls...)
}

type mockUpdater struct {
	mu      sync.Mutex
	current uint64
	scores  map[uint64]int
	err     error
}

func newMockUpdater(current uint64) *mockUpdater {
	return &mockUpdater{current: current, scores: make(map[uint64]int)}
}

func (mu *mockUpdater) IsCurrent(revision uint64) bool {
	mu.mu.Lock()
	defer mu.mu.Unlock()
	return revision == mu.current
}

func (mu *mockUpdater) UpdateCompatibility(ctx context.Context, revision uint64, score int) (bool, error) {
	mu.mu.Lock()
	defer mu.mu.Unlock()
	if mu.err != nil {
		return false, mu.err
	}
	if revision != mu.current {
		return false, nil
	}
	mu.scores[revision] = score
	return true, nil
}

func (mu *mockUpdater) score(revision uint64) (int, bool) {
	mu.mu.Lock()
	defer mu.mu.Unlock()
	s, ok := mu.scores[revision]
	return s, ok
}

func request(rev uint64) queue.Request {
	return queue.Request{
		Revision: rev,
		Members: []model.Candidate{
			{ID: "c1", Name: "Ada", TalentFitScore: 90},
			{ID: "c2", Name: "Linus", TalentFitScore: 80},
		},
	}
}

func TestInMemoryWorker(t *testing.T) {
	convey.Convey("Given a worker reading score requests", t, func() {
		_ = logging.Init()

		q := newMockQueue()
		scorer := newMockScorer()
		updater := newMockUpdater(3)
		w := worker.NewInMemoryWorker(q, scorer, updater, worker.WithName("test-worker"))

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go w.Run(ctx)

		convey.Convey("When the current revision arrives", func() {
			scorer.scores[3] = 88
			q.add(request(3))
			time.Sleep(50 * time.Millisecond)

			convey.Convey("Then the score reaches the updater", func() {
				s, ok := updater.score(3)
				convey.So(ok, convey.ShouldBeTrue)
				convey.So(s, convey.ShouldEqual, 88)
				convey.So(w.Processed(), convey.ShouldEqual, 1)
			})
		})

		convey.Convey("When a stale revision arrives", func() {
			q.add(request(2))
			time.Sleep(50 * time.Millisecond)

			convey.Convey("Then the scorer is never called", func() {
				convey.So(scorer.called(), convey.ShouldBeEmpty)
				_, ok := updater.score(2)
				convey.So(ok, convey.ShouldBeFalse)
			})
		})

		convey.Convey("When scoring fails", func() {
			scorer.errs[3] = errors.New("scoring backend down")
			q.add(request(3))
			time.Sleep(50 * time.Millisecond)

			convey.Convey("Then nothing is stored and the worker keeps running", func() {
				_, ok := updater.score(3)
				convey.So(ok, convey.ShouldBeFalse)

				delete(scorer.errs, 3)
				q.add(request(3))
				time.Sleep(50 * time.Millisecond)
				_, ok = updater.score(3)
				convey.So(ok, convey.ShouldBeTrue)
			})
		})

		convey.Convey("When shut down", func() {
			shutdownCtx, stop := context.WithTimeout(context.Background(), time.Second)
			defer stop()
			err := w.Shutdown(shutdownCtx)

			convey.Convey("Then it stops without error", func() {
				convey.So(err, convey.ShouldBeNil)
			})
		})
	})
}

func TestPool(t *testing.T) {
	convey.Convey("Given a pool of workers", t, func() {
		_ = logging.Init()

		q := newMockQueue()
		scorer := newMockScorer()
		updater := newMockUpdater(1)
		pool := worker.NewPool(3, q, scorer, updater)

		convey.So(pool.Size(), convey.ShouldEqual, 3)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		pool.Start(ctx)

		convey.Convey("When requests are enqueued", func() {
			for i := 0; i < 5; i++ {
				q.add(request(1))
			}
			time.Sleep(100 * time.Millisecond)

			convey.Convey("Then every request is processed", func() {
				convey.So(pool.Processed(), convey.ShouldEqual, 5)
				s, ok := updater.score(1)
				convey.So(ok, convey.ShouldBeTrue)
				convey.So(s, convey.ShouldEqual, 75)
			})
		})

		convey.Convey("When shut down twice", func() {
			shutdownCtx, stop := context.WithTimeout(context.Background(), 2*time.Second)
			defer stop()

			convey.So(pool.Shutdown(shutdownCtx), convey.ShouldBeNil)
			convey.So(pool.Shutdown(shutdownCtx), convey.ShouldBeNil)
		})
	})

	convey.Convey("Given a non-positive worker count", t, func() {
		_ = logging.Init()
		pool := worker.NewPool(0, newMockQueue(), newMockScorer(), newMockUpdater(0))

		convey.Convey("Then the pool falls back to at least one worker", func() {
			convey.So(pool.Size(), convey.ShouldBeGreaterThan, 0)
		})
	})
}

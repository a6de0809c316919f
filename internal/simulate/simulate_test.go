package simulate

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/okian/teamforge/internal/adapters/http/api"
	repository "github.com/okian/teamforge/internal/adapters/repository"
	service "github.com/okian/teamforge/internal/app"
	"github.com/okian/teamforge/internal/domain/model"
	"github.com/okian/teamforge/pkg/logger"
	"github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(logger.WithLevel("error")); err != nil {
		panic(err)
	}
}

func newServer(strict bool) (*httptest.Server, *service.Workspace) {
	cands := []model.Candidate{
		{ID: "c1", Name: "Ada", TalentFitScore: 90},
		{ID: "c2", Name: "Linus", TalentFitScore: 70},
		{ID: "c3", Name: "Grace", TalentFitScore: 85},
		{ID: "c4", Name: "Alan", TalentFitScore: 60},
		{ID: "c5", Name: "Barbara", TalentFitScore: 75},
		{ID: "c6", Name: "Ken", TalentFitScore: 95},
	}
	teams := []model.Team{{ID: "t1", Name: "Core", Members: []model.Member{{ID: "c1"}, {ID: "c6"}}}}
	store, err := repository.NewInMemoryTeamStore(teams)
	if err != nil {
		panic(err)
	}
	ws := service.New(
		repository.NewInMemoryCatalog(cands),
		store,
		service.WithWorkerCount(2),
		service.WithScoringLatencyRange(0, time.Millisecond),
		service.WithStrictTransitions(strict),
	)
	mux := http.NewServeMux()
	api.NewServer(ws, ws).Register(context.Background(), mux)
	return httptest.NewServer(mux), ws
}

func TestRun(t *testing.T) {
	convey.Convey("Given a running service", t, func() {
		ctx := context.Background()
		for _, strict := range []bool{false, true} {
			srv, ws := newServer(strict)
			convey.So(ws.Start(ctx), convey.ShouldBeNil)

			stats, err := Run(ctx, &Config{
				BaseURL:  srv.URL,
				Gestures: 300,
				Workers:  4,
				Replay:   0.2,
				Timeout:  5 * time.Second,
			})

			convey.So(err, convey.ShouldBeNil)
			convey.So(stats.GesturesGenerated, convey.ShouldEqual, 360)
			convey.So(stats.Failed, convey.ShouldEqual, 0)
			convey.So(stats.Duplicates, convey.ShouldBeGreaterThan, 0)
			convey.So(stats.RequestsSent, convey.ShouldBeGreaterThanOrEqualTo, 360)

			convey.So(ws.Stop(ctx), convey.ShouldBeNil)
			srv.Close()
		}
	})

	convey.Convey("Given no service", t, func() {
		_, err := Run(context.Background(), &Config{
			BaseURL:  "http://127.0.0.1:1",
			Gestures: 10,
			Workers:  1,
			Timeout:  time.Second,
		})
		convey.So(err, convey.ShouldNotBeNil)
	})
}

func TestVerifySnapshot(t *testing.T) {
	convey.Convey("Given a catalog of three", t, func() {
		catalog := []string{"a", "b", "c"}

		convey.Convey("A consistent snapshot passes", func() {
			snap := &Snapshot{
				Pool:    []string{"c"},
				Team:    []string{"b", "a"},
				Metrics: &Metrics{AvgScore: 50, TeamSize: 2, Synergy: true},
			}
			convey.So(VerifySnapshot(snap, catalog), convey.ShouldBeNil)
		})

		convey.Convey("An id in both collections fails", func() {
			snap := &Snapshot{Pool: []string{"a", "b", "c"}, Team: []string{"a"}}
			err := VerifySnapshot(snap, catalog)
			convey.So(errors.Is(err, ErrInvariant), convey.ShouldBeTrue)
			convey.So(err.Error(), convey.ShouldContainSubstring, "appears in pool and team")
		})

		convey.Convey("A missing id fails", func() {
			err := VerifySnapshot(&Snapshot{Pool: []string{"a", "b"}}, catalog)
			convey.So(errors.Is(err, ErrInvariant), convey.ShouldBeTrue)
			convey.So(err.Error(), convey.ShouldContainSubstring, "missing [c]")
		})

		convey.Convey("An unknown id fails", func() {
			err := VerifySnapshot(&Snapshot{Pool: []string{"a", "b", "c", "z"}}, catalog)
			convey.So(err.Error(), convey.ShouldContainSubstring, "unknown ids [z]")
		})

		convey.Convey("A non-empty team without metrics fails", func() {
			err := VerifySnapshot(&Snapshot{Pool: []string{"a", "b"}, Team: []string{"c"}}, catalog)
			convey.So(errors.Is(err, ErrInvariant), convey.ShouldBeTrue)
		})
	})
}

func TestGenerateGestures(t *testing.T) {
	convey.Convey("Given candidates and teams", t, func() {
		ctx := context.Background()
		cands := []string{"a", "b", "c"}

		convey.Convey("It produces the requested count plus replays", func() {
			gestures := GenerateGestures(ctx, 100, cands, []string{"t1"}, 0.1)
			convey.So(len(gestures), convey.ShouldEqual, 110)

			ids := make(map[string]int)
			for _, g := range gestures {
				if g.EventID != "" {
					ids[g.EventID]++
				}
				if g.Kind == KindDrag || g.Kind == KindAdd || g.Kind == KindMove || g.Kind == KindRemove {
					convey.So(cands, convey.ShouldContain, g.ID)
				}
			}
			replayed := 0
			for _, n := range ids {
				if n == 2 {
					replayed++
				}
			}
			convey.So(replayed, convey.ShouldEqual, 10)
		})

		convey.Convey("It produces nothing without candidates", func() {
			convey.So(GenerateGestures(ctx, 10, nil, nil, 0), convey.ShouldBeEmpty)
		})
	})
}

func TestClassify(t *testing.T) {
	convey.Convey("Responses are classified by status and body", t, func() {
		convey.So(classify(http.StatusOK, []byte(`{"status":"committed"}`)), convey.ShouldEqual, outcomeCommitted)
		convey.So(classify(http.StatusOK, []byte(`{"status":"duplicate","duplicate":true}`)), convey.ShouldEqual, outcomeDuplicate)
		convey.So(classify(http.StatusOK, []byte(`{"status":"ignored"}`)), convey.ShouldEqual, outcomeConflict)
		convey.So(classify(http.StatusConflict, nil), convey.ShouldEqual, outcomeConflict)
		convey.So(classify(http.StatusBadRequest, nil), convey.ShouldEqual, outcomeRejected)
		convey.So(classify(http.StatusInternalServerError, nil), convey.ShouldEqual, outcomeFailed)
	})
}

package service_test

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"sync"
	"testing"
	"time"

	repository "github.com/okian/teamforge/internal/adapters/repository"
	service "github.com/okian/teamforge/internal/app"
	"github.com/okian/teamforge/internal/domain/collection"
	"github.com/okian/teamforge/internal/domain/drag"
	"github.com/okian/teamforge/internal/domain/model"
	"github.com/okian/teamforge/internal/domain/scoring"
	. "github.com/smartystreets/goconvey/convey"
)

func manyCandidates(n int) []model.Candidate {
	levels := model.Levels
	out := make([]model.Candidate, n)
	for i := range out {
		out[i] = model.Candidate{
			ID:             fmt.Sprintf("cand-%02d", i),
			Name:           fmt.Sprintf("Candidate %d", i),
			TalentFitScore: 50 + i%50,
			Skills: []model.Skill{
				{Name: fmt.Sprintf("skill-%d", i%7), Level: levels[i%len(levels)]},
			},
		}
	}
	return out
}

func TestWorkspaceConcurrency(t *testing.T) {
	Convey("Given a running workspace with many candidates", t, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		cands := manyCandidates(20)
		teams, err := repository.NewInMemoryTeamStore(nil)
		So(err, ShouldBeNil)
		ws := service.New(
			repository.NewInMemoryCatalog(cands),
			teams,
			service.WithWorkerCount(4),
			service.WithQueueSize(4096),
			service.WithScoringLatencyRange(0, time.Millisecond),
		)
		So(ws.Start(ctx), ShouldBeNil)
		defer func() { _ = ws.Stop(context.Background()) }()

		Convey("When clients race gestures against each other", func() {
			var wg sync.WaitGroup
			for g := 0; g < 8; g++ {
				wg.Add(1)
				go func(seed int64) {
					defer wg.Done()
					rng := rand.New(rand.NewSource(seed))
					for i := 0; i < 200; i++ {
						id := cands[rng.Intn(len(cands))].ID
						switch rng.Intn(4) {
						case 0:
							_, _ = ws.MoveToTeam(ctx, "", id, rng.Intn(10))
						case 1:
							_, _ = ws.MoveWithinTeam(ctx, "", id, rng.Intn(10))
						case 2:
							_, _ = ws.RemoveFromTeam(ctx, "", id)
						default:
							if ws.DragStart(ctx, id, collection.Pool, 0) == nil {
								_ = ws.DragOver(ctx, drag.TeamContainer, collection.Team)
								_, _ = ws.DragEnd(ctx, "")
							}
						}
					}
				}(int64(g))
			}
			wg.Wait()

			Convey("Then every candidate is in exactly one collection", func() {
				snap := ws.Snapshot(ctx)
				all := append(append([]string(nil), snap.Pool...), snap.Team...)
				sort.Strings(all)
				want := make([]string, len(cands))
				for i, c := range cands {
					want[i] = c.ID
				}
				So(all, ShouldResemble, want)
			})

			Convey("Then the final team converges to its own score", func() {
				snap := ws.Snapshot(ctx)
				if len(snap.Team) == 0 {
					So(snap.Compatibility, ShouldBeNil)
					return
				}
				byID := make(map[string]model.Candidate, len(cands))
				for _, c := range cands {
					byID[c.ID] = c
				}
				members := make([]model.Candidate, len(snap.Team))
				for i, id := range snap.Team {
					members[i] = byID[id].Normalize()
				}
				want := scoring.Compatibility(members, scoring.Weights{Talent: 0.4, Diversity: 0.35, Coverage: 0.25})
				So(eventually(func() bool {
					c := ws.Snapshot(ctx).Compatibility
					return c != nil && *c == want
				}), ShouldBeTrue)
			})
		})
	})
}

package scoring_test

import (
	"context"
	"testing"
	"time"

	"github.com/okian/teamforge/internal/domain/model"
	"github.com/okian/teamforge/internal/domain/scoring"
	. "github.com/smartystreets/goconvey/convey"
)

func cand(score int, skills ...model.Skill) model.Candidate {
	return model.Candidate{TalentFitScore: score, Skills: skills}
}

func TestCompatibility(t *testing.T) {
	w := scoring.Weights{Talent: 0.4, Diversity: 0.35, Coverage: 0.25}

	Convey("Given teams with fewer than two members", t, func() {
		So(scoring.Compatibility(nil, w), ShouldEqual, scoring.DefaultScore)
		So(scoring.Compatibility([]model.Candidate{cand(10)}, w), ShouldEqual, scoring.DefaultScore)
	})

	Convey("Given two members with distinct skills at every level", t, func() {
		members := []model.Candidate{
			cand(80, model.Skill{Name: "Go", Level: model.LevelExpert}, model.Skill{Name: "SQL", Level: model.LevelBeginner}),
			cand(90, model.Skill{Name: "React", Level: model.LevelAdvanced}, model.Skill{Name: "CSS", Level: model.LevelIntermediate}),
		}

		Convey("Then talent 85, diversity 100 and coverage 100 blend to 94", func() {
			// 0.4*85 + 0.35*100 + 0.25*100 = 94
			So(scoring.Compatibility(members, w), ShouldEqual, 94)
		})
	})

	Convey("Given two members with only overlapping skills", t, func() {
		members := []model.Candidate{
			cand(100, model.Skill{Name: "Go", Level: model.LevelExpert}),
			cand(100, model.Skill{Name: "Go", Level: model.LevelExpert}),
		}

		Convey("Then the score drops", func() {
			// 0.4*100 + 0.35*50 + 0.25*25 = 63.75
			So(scoring.Compatibility(members, w), ShouldEqual, 64)
		})
	})

	Convey("Given only talent weight", t, func() {
		members := []model.Candidate{cand(81), cand(90)}
		So(scoring.Compatibility(members, scoring.Weights{Talent: 1}), ShouldEqual, 86)
	})
}

func TestInMemoryScorer(t *testing.T) {
	Convey("Given a scorer without latency", t, func() {
		s := scoring.NewInMemoryScorer(scoring.WithLatencyRange(0, 0))

		Convey("When scoring a revision", func() {
			res, err := s.Score(context.Background(), scoring.Input{Revision: 7, Members: []model.Candidate{cand(50)}})

			So(err, ShouldBeNil)
			So(res.Revision, ShouldEqual, 7)
			So(res.Score, ShouldEqual, scoring.DefaultScore)
		})
	})

	Convey("Given a slow scorer and a cancelled context", t, func() {
		s := scoring.NewInMemoryScorer(scoring.WithLatencyRange(time.Second, 2*time.Second))
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := s.Score(ctx, scoring.Input{})
		So(err, ShouldNotBeNil)
	})

	Convey("Given invalid weights they are ignored", t, func() {
		s := scoring.NewInMemoryScorer(
			scoring.WithLatencyRange(0, 0),
			scoring.WithWeights(scoring.Weights{Talent: -1}),
		)
		members := []model.Candidate{cand(81), cand(90)}
		res, err := s.Score(context.Background(), scoring.Input{Members: members})
		So(err, ShouldBeNil)
		So(res.Score, ShouldBeBetweenOrEqual, 0, 100)
	})
}

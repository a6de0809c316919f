package model_test

import (
	"testing"

	"github.com/okian/teamforge/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestParseSkillLevel(t *testing.T) {
	Convey("Given free-form skill levels", t, func() {
		Convey("When the level is known", func() {
			So(model.ParseSkillLevel("expert"), ShouldEqual, model.LevelExpert)
			So(model.ParseSkillLevel(" Advanced "), ShouldEqual, model.LevelAdvanced)
			So(model.ParseSkillLevel("INTERMEDIATE"), ShouldEqual, model.LevelIntermediate)
		})

		Convey("When the level is unknown it should default to beginner", func() {
			So(model.ParseSkillLevel("guru"), ShouldEqual, model.LevelBeginner)
			So(model.ParseSkillLevel(""), ShouldEqual, model.LevelBeginner)
		})
	})
}

func TestClampScore(t *testing.T) {
	Convey("Given scores outside the valid range", t, func() {
		So(model.ClampScore(-5), ShouldEqual, 0)
		So(model.ClampScore(140), ShouldEqual, 100)
		So(model.ClampScore(42), ShouldEqual, 42)
	})
}

func TestCandidateNormalize(t *testing.T) {
	Convey("Given a candidate with an unrecognized skill level", t, func() {
		c := model.Candidate{ID: "c1", Skills: []model.Skill{{Name: "Go", Level: "wizard"}, {Name: "SQL", Level: "Expert"}}}
		n := c.Normalize()

		Convey("Then levels are parsed and the original is untouched", func() {
			So(n.Skills[0].Level, ShouldEqual, model.LevelBeginner)
			So(n.Skills[1].Level, ShouldEqual, model.LevelExpert)
			So(c.Skills[0].Level, ShouldEqual, model.SkillLevel("wizard"))
		})
	})
}

func TestTeamMemberIDs(t *testing.T) {
	Convey("Given a saved team", t, func() {
		team := model.Team{ID: "t1", Members: []model.Member{{ID: "b"}, {ID: "a"}}}
		So(team.MemberIDs(), ShouldResemble, []string{"b", "a"})
	})
}

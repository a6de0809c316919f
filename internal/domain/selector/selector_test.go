package selector_test

import (
	"testing"

	"github.com/okian/teamforge/internal/domain/model"
	"github.com/okian/teamforge/internal/domain/selector"
	. "github.com/smartystreets/goconvey/convey"
)

func strPtr(s string) *string { return &s }

func teams() []model.Team {
	return []model.Team{
		{ID: "team-1", Name: "Platform", Members: []model.Member{{ID: "a"}, {ID: "b"}}, CompatibilityScore: 81},
		{ID: "team-2", Name: "Mobile"},
	}
}

func TestMachine_Toggle(t *testing.T) {
	Convey("Given a closed selector", t, func() {
		b := selector.NewBroadcaster()
		m := selector.New(b, selector.WithTeams(teams()))
		So(m.IsOpen(), ShouldBeFalse)

		Convey("When toggled it opens and subscribes", func() {
			m.Toggle()
			So(m.IsOpen(), ShouldBeTrue)
			So(b.Subscribers(), ShouldEqual, 1)

			Convey("And toggled again it closes and releases", func() {
				m.Toggle()
				So(m.IsOpen(), ShouldBeFalse)
				So(b.Subscribers(), ShouldEqual, 0)
			})
		})
	})
}

func TestMachine_SelectOutside(t *testing.T) {
	Convey("Given a selector", t, func() {
		b := selector.NewBroadcaster()
		m := selector.New(b)

		Convey("When closed, an outside interaction is a no-op", func() {
			So(m.SelectOutside(), ShouldBeFalse)
			So(m.IsOpen(), ShouldBeFalse)
			So(b.Publish(), ShouldEqual, 0)
		})

		Convey("When open, a published outside interaction closes it", func() {
			m.Toggle()
			So(b.Publish(), ShouldEqual, 1)
			So(m.IsOpen(), ShouldBeFalse)
			So(b.Subscribers(), ShouldEqual, 0)
		})

		Convey("When open, a direct outside call closes it without changing the selection", func() {
			m.SetTeams(teams())
			m.Choose(strPtr("team-2"))
			m.Toggle()
			So(m.SelectOutside(), ShouldBeTrue)
			id, ok := m.SelectedID()
			So(ok, ShouldBeTrue)
			So(id, ShouldEqual, "team-2")
		})
	})
}

func TestMachine_Choose(t *testing.T) {
	Convey("Given an open selector with a listener", t, func() {
		var got []*model.Team
		b := selector.NewBroadcaster()
		m := selector.New(b,
			selector.WithTeams(teams()),
			selector.WithListener(func(team *model.Team) { got = append(got, team) }),
		)
		m.Toggle()

		Convey("When team-1 is chosen", func() {
			So(m.Choose(strPtr("team-1")), ShouldBeTrue)

			Convey("Then it is selected and the dropdown is closed", func() {
				id, ok := m.SelectedID()
				So(ok, ShouldBeTrue)
				So(id, ShouldEqual, "team-1")
				So(m.IsOpen(), ShouldBeFalse)
				So(b.Subscribers(), ShouldEqual, 0)
				So(got, ShouldHaveLength, 1)
				So(got[0].Name, ShouldEqual, "Platform")
			})
		})

		Convey("When the selection is cleared", func() {
			m.Choose(strPtr("team-1"))
			So(m.Choose(nil), ShouldBeTrue)

			_, ok := m.SelectedID()
			So(ok, ShouldBeFalse)
			So(got[len(got)-1], ShouldBeNil)
		})

		Convey("When an unknown id is chosen", func() {
			So(m.Choose(strPtr("ghost")), ShouldBeFalse)

			Convey("Then only the dropdown closes", func() {
				So(m.IsOpen(), ShouldBeFalse)
				_, ok := m.SelectedID()
				So(ok, ShouldBeFalse)
				So(got, ShouldBeEmpty)
			})
		})
	})
}

func TestMachine_StaleSelection(t *testing.T) {
	Convey("Given a selection that disappears from the teams list", t, func() {
		m := selector.New(nil, selector.WithTeams(teams()))
		m.Choose(strPtr("team-1"))
		m.SetTeams(teams()[1:])

		Convey("Then the raw id is kept but resolves as not found", func() {
			id, ok := m.SelectedID()
			So(ok, ShouldBeTrue)
			So(id, ShouldEqual, "team-1")
			_, found := m.Selected()
			So(found, ShouldBeFalse)
		})
	})

	Convey("Given an empty teams list", t, func() {
		m := selector.New(nil)
		m.Toggle()
		So(m.IsOpen(), ShouldBeTrue)
		So(m.Teams(), ShouldBeEmpty)
	})
}

func TestMachine_Destroy(t *testing.T) {
	Convey("Given an open selector", t, func() {
		b := selector.NewBroadcaster()
		m := selector.New(b)
		m.Toggle()

		Convey("When destroyed the subscription is released", func() {
			m.Destroy()
			So(b.Subscribers(), ShouldEqual, 0)
			So(m.IsOpen(), ShouldBeFalse)
		})
	})
}

func TestBroadcaster_UnsubscribeTwice(t *testing.T) {
	Convey("Given a subscription", t, func() {
		b := selector.NewBroadcaster()
		calls := 0
		release := b.Subscribe(func() { calls++ })
		other := b.Subscribe(func() {})

		release()
		release()
		So(b.Subscribers(), ShouldEqual, 1)
		b.Publish()
		So(calls, ShouldEqual, 0)
		other()
		So(b.Subscribers(), ShouldEqual, 0)
	})
}

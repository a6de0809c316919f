package drag_test

import (
	"errors"
	"testing"

	"github.com/okian/teamforge/internal/domain/collection"
	"github.com/okian/teamforge/internal/domain/drag"
	. "github.com/smartystreets/goconvey/convey"
)

func newStore(pool, team []string) *collection.Store {
	s := collection.New()
	s.Load(pool, team)
	return s
}

func TestMachine_Transitions(t *testing.T) {
	Convey("Given an idle machine", t, func() {
		m := drag.New()
		So(m.State(), ShouldEqual, drag.Idle)

		Convey("When a drag starts", func() {
			So(m.Start("A", collection.Pool, 0), ShouldBeNil)
			So(m.State(), ShouldEqual, drag.Active)

			Convey("Then a second start is rejected and the session is kept", func() {
				err := m.Start("B", collection.Pool, 1)
				So(errors.Is(err, drag.ErrInvalidTransition), ShouldBeTrue)
				s, ok := m.Session()
				So(ok, ShouldBeTrue)
				So(s.DraggedID, ShouldEqual, "A")
			})

			Convey("Then drag-over updates the hover target", func() {
				So(m.Over("X", collection.Team), ShouldBeNil)
				s, _ := m.Session()
				So(s.OverID, ShouldEqual, "X")
				So(s.OverCollection, ShouldEqual, collection.Team)

				So(m.Over("", collection.None), ShouldBeNil)
				s, _ = m.Session()
				So(s.OverID, ShouldEqual, "")
			})
		})

		Convey("When over, end or cancel arrive without a session", func() {
			So(errors.Is(m.Over("X", collection.Team), drag.ErrInvalidTransition), ShouldBeTrue)
			_, err := m.End(newStore(nil, nil))
			So(errors.Is(err, drag.ErrInvalidTransition), ShouldBeTrue)
			_, err = m.Cancel()
			So(errors.Is(err, drag.ErrInvalidTransition), ShouldBeTrue)
		})

		Convey("When the source collection is unknown", func() {
			err := m.Start("A", collection.None, 0)
			So(errors.Is(err, drag.ErrUnknownCollection), ShouldBeTrue)
			So(m.State(), ShouldEqual, drag.Idle)
		})
	})
}

func TestMachine_Commit(t *testing.T) {
	Convey("Given pool=[A,B,C] and team=[X,Y]", t, func() {
		store := newStore([]string{"A", "B", "C"}, []string{"X", "Y"})
		m := drag.New()

		Convey("When A is dropped on Y", func() {
			_ = m.Start("A", collection.Pool, 0)
			_ = m.Over("Y", collection.Team)
			out, err := m.End(store)

			Convey("Then A is inserted at Y's position", func() {
				So(err, ShouldBeNil)
				So(out.Result, ShouldEqual, drag.Committed)
				So(out.Op, ShouldEqual, drag.OpMoveToTeam)
				So(out.Index, ShouldEqual, 1)
				So(store.Team(), ShouldResemble, []string{"X", "A", "Y"})
				So(store.Pool(), ShouldResemble, []string{"B", "C"})
				So(m.State(), ShouldEqual, drag.Idle)
			})
		})

		Convey("When B is dropped on the empty team area", func() {
			_ = m.Start("B", collection.Pool, 1)
			_ = m.Over(drag.TeamContainer, collection.Team)
			out, _ := m.End(store)

			So(out.Op, ShouldEqual, drag.OpMoveToTeam)
			So(store.Team(), ShouldResemble, []string{"X", "Y", "B"})
		})

		Convey("When X is reordered onto Y", func() {
			_ = m.Start("X", collection.Team, 0)
			_ = m.Over("Y", collection.Team)
			out, _ := m.End(store)

			So(out.Op, ShouldEqual, drag.OpMoveWithinTeam)
			So(out.Changed, ShouldBeTrue)
			So(store.Team(), ShouldResemble, []string{"Y", "X"})
		})

		Convey("When X is dropped on itself", func() {
			_ = m.Start("X", collection.Team, 0)
			_ = m.Over("X", collection.Team)
			out, _ := m.End(store)

			So(out.Result, ShouldEqual, drag.Committed)
			So(out.Op, ShouldEqual, drag.OpNone)
			So(store.Team(), ShouldResemble, []string{"X", "Y"})
		})

		Convey("When Y is dragged back to the pool", func() {
			_ = m.Start("Y", collection.Team, 1)
			_ = m.Over(drag.PoolContainer, collection.Pool)
			out, _ := m.End(store)

			So(out.Op, ShouldEqual, drag.OpRemoveFromTeam)
			So(store.Team(), ShouldResemble, []string{"X"})
			So(store.Pool(), ShouldResemble, []string{"A", "B", "C", "Y"})
		})

		Convey("When a pool card is dropped inside the pool", func() {
			_ = m.Start("C", collection.Pool, 2)
			_ = m.Over("A", collection.Pool)
			out, _ := m.End(store)

			So(out.Result, ShouldEqual, drag.Committed)
			So(out.Op, ShouldEqual, drag.OpNone)
			So(store.Pool(), ShouldResemble, []string{"A", "B", "C"})
		})
	})
}

func TestMachine_Cancel(t *testing.T) {
	Convey("Given a store and an active drag", t, func() {
		store := newStore([]string{"A", "B"}, []string{"X", "Y"})
		pool, team := store.Pool(), store.Team()
		m := drag.New()
		_ = m.Start("A", collection.Pool, 0)
		_ = m.Over("Y", collection.Team)

		Convey("When it is cancelled explicitly", func() {
			out, err := m.Cancel()

			Convey("Then the store is element-for-element unchanged", func() {
				So(err, ShouldBeNil)
				So(out.Result, ShouldEqual, drag.Cancelled)
				So(store.Pool(), ShouldResemble, pool)
				So(store.Team(), ShouldResemble, team)
				So(m.State(), ShouldEqual, drag.Idle)
			})
		})

		Convey("When it ends outside any target", func() {
			_ = m.Over("", collection.None)
			out, _ := m.End(store)

			So(out.Result, ShouldEqual, drag.Cancelled)
			So(store.Pool(), ShouldResemble, pool)
			So(store.Team(), ShouldResemble, team)
		})

		Convey("Then a new drag can start afterwards", func() {
			_, _ = m.Cancel()
			So(m.Start("B", collection.Pool, 1), ShouldBeNil)
		})
	})
}

func TestMachine_RoundTrip(t *testing.T) {
	Convey("Given a candidate dragged to the team and back", t, func() {
		store := newStore([]string{"A", "B"}, []string{"X"})
		before := store.Team()
		m := drag.New()

		_ = m.Start("A", collection.Pool, 0)
		_ = m.Over("X", collection.Team)
		_, _ = m.End(store)

		_ = m.Start("A", collection.Team, store.TeamIndex("A"))
		_ = m.Over(drag.PoolContainer, collection.Pool)
		_, _ = m.End(store)

		So(store.Team(), ShouldResemble, before)
		So(store.Pool(), ShouldContain, "A")
	})
}

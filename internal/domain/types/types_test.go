package types_test

import (
	"encoding/json"
	"testing"

	"github.com/okian/teamforge/internal/domain/drag"
	types "github.com/okian/teamforge/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func TestWorkspaceJSON(t *testing.T) {
	Convey("Given an empty workspace", t, func() {
		ws := types.Workspace{Pool: []string{"a"}, Team: []string{}}
		raw, err := json.Marshal(ws)
		So(err, ShouldBeNil)

		var out map[string]any
		So(json.Unmarshal(raw, &out), ShouldBeNil)

		Convey("Then metrics, compatibility and drag are explicit nulls", func() {
			So(out, ShouldContainKey, "metrics")
			So(out["metrics"], ShouldBeNil)
			So(out["compatibility"], ShouldBeNil)
			So(out["drag"], ShouldBeNil)
		})

		Convey("Then a missing selection is null rather than empty", func() {
			sel := out["selector"].(map[string]any)
			So(sel, ShouldContainKey, "selected_team_id")
			So(sel["selected_team_id"], ShouldBeNil)
		})
	})
}

func TestGestureResultStatus(t *testing.T) {
	Convey("Given gesture results", t, func() {
		Convey("Then duplicates and ignored gestures take precedence", func() {
			So(types.GestureResult{Duplicate: true, Result: drag.Committed}.Status(), ShouldEqual, "duplicate")
			So(types.GestureResult{Ignored: true}.Status(), ShouldEqual, "ignored")
		})

		Convey("Then resolved gestures report their result", func() {
			So(types.GestureResult{Result: drag.Committed}.Status(), ShouldEqual, "committed")
			So(types.GestureResult{Result: drag.Cancelled}.Status(), ShouldEqual, "cancelled")
		})
	})
}

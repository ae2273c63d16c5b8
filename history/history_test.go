package history

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/vidqueue/vidqueue/catalog"
	"github.com/vidqueue/vidqueue/filesystem"
	"github.com/vidqueue/vidqueue/manifest"
	"github.com/vidqueue/vidqueue/track"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestHistory(t *testing.T) {
	Convey("Given an empty history", t, func() {
		So(Clear(), ShouldBeNil)

		Convey("When recording a failed result", func() {
			result := track.Result{
				Index: 3,
				Entry: catalog.Entry{Name: "Talk", URL: "https://cdn.example/t/master.json"},
				Err:   &manifest.ExpiredError{Index: 3},
			}
			So(Recorder{}.Record("run-1", result), ShouldBeNil)

			Convey("Then it can be read back", func() {
				saved, err := Get()
				So(err, ShouldBeNil)

				r := saved[result.Entry.URL]
				So(r, ShouldNotBeNil)
				So(r.Status, ShouldEqual, "failed")
				So(r.Expired, ShouldBeTrue)
				So(r.Run, ShouldEqual, "run-1")
				So(r.Error, ShouldContainSubstring, "position 3")
				So(r.String(), ShouldEqual, "4. Talk: failed")
			})

			Convey("And a later result replaces it", func() {
				result.Err = nil
				So(Recorder{}.Record("run-2", result), ShouldBeNil)

				saved, err := Get()
				So(err, ShouldBeNil)
				So(saved, ShouldHaveLength, 1)
				So(saved[result.Entry.URL].Status, ShouldEqual, "complete")
				So(saved[result.Entry.URL].Error, ShouldBeEmpty)
			})

			Convey("And it can be removed", func() {
				So(Remove(result.Entry.URL), ShouldBeNil)
				saved, err := Get()
				So(err, ShouldBeNil)
				So(saved, ShouldBeEmpty)
			})
		})

		Convey("List orders records by position", func() {
			So(Save(&Record{URL: "b", Index: 1, Name: "b"}), ShouldBeNil)
			So(Save(&Record{URL: "a", Index: 0, Name: "a"}), ShouldBeNil)

			records, err := List()
			So(err, ShouldBeNil)
			So(records, ShouldHaveLength, 2)
			So(records[0].URL, ShouldEqual, "a")
			So(records[0].UpdatedAt.IsZero(), ShouldBeFalse)
		})
	})
}

package catalog

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/afero"
)

func TestAt(t *testing.T) {
	Convey("Given a catalog with a sentinel entry", t, func() {
		c := New([]Entry{
			{Name: "first", URL: "https://a/master.json"},
			{Name: "second", URL: "https://b/master.json"},
			{},
			{Name: "hidden", URL: "https://c/master.json"},
		})

		Convey("Entries before the sentinel are returned", func() {
			e, ok := c.At(1)
			So(ok, ShouldBeTrue)
			So(e.Name, ShouldEqual, "second")
		})

		Convey("The sentinel ends iteration", func() {
			_, ok := c.At(2)
			So(ok, ShouldBeFalse)
			So(c.Len(), ShouldEqual, 2)
		})

		Convey("Indexes out of range end iteration", func() {
			_, ok := c.At(10)
			So(ok, ShouldBeFalse)
			_, ok = c.At(-1)
			So(ok, ShouldBeFalse)
		})

		Convey("An entry with only a name is not a sentinel", func() {
			c := New([]Entry{{Name: "no url"}})
			_, ok := c.At(0)
			So(ok, ShouldBeTrue)
		})
	})
}

func TestLoad(t *testing.T) {
	Convey("Given a catalog file", t, func() {
		fs := afero.NewMemMapFs()
		raw := `[{"name":" Talk ","url":"https://cdn.example/v/master.json?a=1\\u0026b=2"}]`
		So(afero.WriteFile(fs, "/catalog.json", []byte(raw), 0o644), ShouldBeNil)

		Convey("Escaped ampersands are decoded when enabled", func() {
			c, err := Load(fs, "/catalog.json", true)
			So(err, ShouldBeNil)
			e, _ := c.At(0)
			So(e.Name, ShouldEqual, "Talk")
			So(e.URL, ShouldEqual, "https://cdn.example/v/master.json?a=1&b=2")
		})

		Convey("Escaped ampersands are kept when disabled", func() {
			c, err := Load(fs, "/catalog.json", false)
			So(err, ShouldBeNil)
			e, _ := c.At(0)
			So(e.URL, ShouldEndWith, `a=1\u0026b=2`)
		})

		Convey("Invalid JSON is reported", func() {
			So(afero.WriteFile(fs, "/bad.json", []byte("{"), 0o644), ShouldBeNil)
			_, err := Load(fs, "/bad.json", true)
			So(err, ShouldNotBeNil)
		})

		Convey("A missing file is an empty catalog for LoadOrEmpty", func() {
			c, err := LoadOrEmpty(fs, "/nope.json", true)
			So(err, ShouldBeNil)
			So(c.Len(), ShouldEqual, 0)
		})

		Convey("Save then Load keeps order", func() {
			c, _ := Load(fs, "/catalog.json", true)
			c = c.Append(Entry{Name: "Next", URL: "https://cdn.example/w/master.json"})
			So(Save(fs, "/out/catalog.json", c), ShouldBeNil)

			loaded, err := Load(fs, "/out/catalog.json", true)
			So(err, ShouldBeNil)
			So(loaded.Entries(), ShouldResemble, c.Entries())
		})
	})
}

func TestSchema(t *testing.T) {
	Convey("The schema describes an array of entries", t, func() {
		s := Schema()
		So(s, ShouldNotBeNil)
		So(s.Type, ShouldEqual, "array")
	})
}

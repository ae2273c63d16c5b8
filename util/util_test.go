package util

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/vidqueue/vidqueue/filesystem"
)

func TestSanitizeFilename(t *testing.T) {
	Convey("SanitizeFilename", t, func() {
		Convey("Should replace reserved chars", func() {
			So(SanitizeFilename("Intro: part 1/2?"), ShouldEqual, "Intro_ part 1_2_")
		})
		Convey("Should keep and collapse spaces", func() {
			So(SanitizeFilename("1 -   My   Talk"), ShouldEqual, "1 - My Talk")
		})
		Convey("Should trim dots and spaces", func() {
			So(SanitizeFilename(" .hidden. "), ShouldEqual, "hidden")
		})
		Convey("Should never return an empty name", func() {
			So(SanitizeFilename("..."), ShouldEqual, "_")
		})
	})
}

func TestQuantify(t *testing.T) {
	Convey("Quantify", t, func() {
		So(Quantify(1, "segment", "segments"), ShouldEqual, "1 segment")
		So(Quantify(2, "segment", "segments"), ShouldEqual, "2 segments")
	})
}

func TestCapitalize(t *testing.T) {
	Convey("Capitalize", t, func() {
		So(Capitalize("video"), ShouldEqual, "Video")
		So(Capitalize(""), ShouldEqual, "")
	})
}

func TestFileStem(t *testing.T) {
	Convey("FileStem", t, func() {
		So(FileStem("parts/1 - Talk.m4v"), ShouldEqual, "1 - Talk")
		So(FileStem("file"), ShouldEqual, "file")
	})
}

func TestMax(t *testing.T) {
	Convey("Max", t, func() {
		So(Max(1, 5, 2), ShouldEqual, 5)
		So(Max[int](), ShouldEqual, 0)
	})
}

func TestDelete(t *testing.T) {
	Convey("Delete", t, func() {
		filesystem.SetMemMapFs()
		fs := filesystem.API()
		So(fs.MkdirAll("/tmp/x/y", 0o755), ShouldBeNil)
		So(fs.WriteFile("/tmp/x/y/z", []byte("1"), 0o644), ShouldBeNil)

		So(Delete("/tmp/x"), ShouldBeNil)
		exists, _ := fs.Exists("/tmp/x")
		So(exists, ShouldBeFalse)
		So(Delete("/tmp/x"), ShouldNotBeNil)
	})
}

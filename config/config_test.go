package config

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
	"github.com/vidqueue/vidqueue/filesystem"
	"github.com/vidqueue/vidqueue/key"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestSetup(t *testing.T) {
	Convey("Config Setup", t, func() {
		Convey("Should initialize without error", func() {
			err := Setup()
			So(err, ShouldBeNil)
		})

		Convey("Should have default values populated", func() {
			_ = Setup()
			for name := range Default {
				So(viper.Get(name), ShouldNotBeNil)
			}
		})

		Convey("Should default the segment timeout to seven seconds", func() {
			_ = Setup()
			So(viper.GetInt(key.DownloaderSegmentTimeout), ShouldEqual, 7)
			So(viper.GetStringSlice(key.DownloaderResolutions), ShouldResemble, []string{"1920x1080", "1280x720"})
		})

		Convey("EnvKeyReplacer should convert dots to underscores", func() {
			result := EnvKeyReplacer.Replace("downloader.segment_timeout")
			So(result, ShouldEqual, "downloader_segment_timeout")
		})
	})
}

func TestField(t *testing.T) {
	Convey("Given a registered field", t, func() {
		field := Default[key.DownloaderPartsDir]

		Convey("Env should carry the application prefix", func() {
			So(field.Env(), ShouldEqual, "VIDQUEUE_DOWNLOADER_PARTS_DIR")
		})

		Convey("Pretty should mention the key", func() {
			So(field.Pretty(), ShouldContainSubstring, key.DownloaderPartsDir)
		})
	})
}

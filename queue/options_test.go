package queue

import (
	"net/http"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
	"github.com/vidqueue/vidqueue/rendition"
	"github.com/vidqueue/vidqueue/track"
)

func validOptions() Options {
	return Options{
		PartsDir:       "parts",
		OutputDir:      "output",
		SegmentTimeout: 7,
		Selection:      "resolution",
		Resolutions:    []string{"1920x1080"},
		Naming:         "indexed",
	}
}

func TestOptions(t *testing.T) {
	Convey("Given valid options", t, func() {
		opts := validOptions()
		So(opts.Validate(), ShouldBeNil)

		Convey("Unknown policies are rejected", func() {
			opts.Selection = "fastest"
			So(opts.Validate(), ShouldNotBeNil)
		})

		Convey("The resolution policy needs resolutions", func() {
			opts.Resolutions = nil
			So(opts.Validate(), ShouldNotBeNil)

			opts.Selection = "bitrate"
			So(opts.Validate(), ShouldBeNil)
		})

		Convey("Negative retries and zero timeouts are rejected", func() {
			opts.MaxTimeoutRetries = -1
			So(opts.Validate(), ShouldNotBeNil)

			opts = validOptions()
			opts.SegmentTimeout = 0
			So(opts.Validate(), ShouldNotBeNil)
		})

		Convey("Unknown naming is rejected", func() {
			opts.Naming = "random"
			So(opts.Validate(), ShouldNotBeNil)
		})
	})
}

func TestLoadOptions(t *testing.T) {
	Convey("Options are read from the downloader section", t, func() {
		viper.Set("downloader.parts_dir", "p")
		viper.Set("downloader.output_dir", "o")
		viper.Set("downloader.segment_timeout", 3)
		viper.Set("downloader.max_timeout_retries", 2)
		viper.Set("downloader.selection", "bitrate")
		viper.Set("downloader.resolutions", []string{})
		viper.Set("downloader.naming", "plain")

		opts, err := LoadOptions()
		So(err, ShouldBeNil)
		So(opts.PartsDir, ShouldEqual, "p")
		So(opts.SegmentTimeout, ShouldEqual, 3)
		So(opts.MaxTimeoutRetries, ShouldEqual, 2)
		So(opts.Naming, ShouldEqual, "plain")
	})
}

func TestOptionsBuildPipeline(t *testing.T) {
	Convey("Given validated options", t, func() {
		opts := validOptions()
		opts.SegmentTimeout = 2.5
		opts.MaxTimeoutRetries = 4
		opts.Naming = "plain"
		So(opts.Validate(), ShouldBeNil)

		Convey("The sequencer takes its timeout and retry cap from them", func() {
			fs := afero.NewMemMapFs()
			s := opts.Sequencer(http.DefaultClient, fs)
			So(s.Timeout, ShouldEqual, 2500*time.Millisecond)
			So(s.MaxTimeoutRetries, ShouldEqual, 4)
			So(s.Fs, ShouldEqual, fs)
		})

		Convey("The selector follows the policy and resolutions", func() {
			sel, err := opts.Selector()
			So(err, ShouldBeNil)
			So(sel.Policy, ShouldEqual, rendition.PolicyResolution)
			So(sel.Resolutions, ShouldResemble, []rendition.Size{{Width: 1920, Height: 1080}})

			opts.Selection = "bitrate"
			sel, err = opts.Selector()
			So(err, ShouldBeNil)
			So(sel.Policy, ShouldEqual, rendition.PolicyBitrate)
		})

		Convey("The naming scheme is passed through", func() {
			So(opts.FileNaming(), ShouldEqual, track.NamingPlain)
		})
	})
}

package track

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/vidqueue/vidqueue/catalog"
	"github.com/vidqueue/vidqueue/manifest"
	"github.com/vidqueue/vidqueue/mux"
	"github.com/vidqueue/vidqueue/rendition"
	"github.com/vidqueue/vidqueue/segment"
)

type stubFetcher struct {
	m   *manifest.Manifest
	err error
}

func (f stubFetcher) Fetch(_ context.Context, index int, url string) (*manifest.Manifest, error) {
	if errors.Is(f.err, manifest.ErrManifestExpired) {
		return nil, &manifest.ExpiredError{Index: index, URL: url}
	}
	return f.m, f.err
}

type download struct {
	target segment.Target
	base   string
}

type stubDownloader struct {
	calls []download
	fail  segment.Kind
	// events is shared with stubMuxer to check ordering.
	events *[]string
}

func (d *stubDownloader) Download(_ context.Context, target segment.Target, base, _ string, segments []manifest.Segment) (segment.Outcome, error) {
	d.calls = append(d.calls, download{target: target, base: base})
	*d.events = append(*d.events, string(target.Kind))
	if target.Kind == d.fail {
		err := &segment.StatusError{Index: 0, Code: 404, Status: "404 Not Found"}
		return segment.Outcome{Target: target, Status: segment.StatusFailed, Err: err}, err
	}
	return segment.Outcome{Target: target, Status: segment.StatusComplete, Bytes: 10, Segments: len(segments)}, nil
}

type stubMuxer struct {
	events *[]string
}

func (m stubMuxer) Dispatch(context.Context) ([]mux.Outcome, error) {
	*m.events = append(*m.events, "mux")
	return []mux.Outcome{{Status: mux.StatusMuxed}}, nil
}

func testManifest(withAudio bool) *manifest.Manifest {
	m := &manifest.Manifest{
		BaseURL: "../",
		Video: []manifest.Rendition{
			{ID: "v", Width: 1920, Height: 1080, AvgBitrate: 10, BaseURL: "video/", Segments: []manifest.Segment{{URL: "s1"}, {URL: "s2"}}},
		},
	}
	if withAudio {
		m.Audio = []manifest.Rendition{{ID: "a", AvgBitrate: 1, BaseURL: "audio/", Segments: []manifest.Segment{{URL: "s1"}}}}
	}
	return m
}

func TestNaming(t *testing.T) {
	Convey("Stems are derived from the entry", t, func() {
		So(NamingIndexed.Stem(0, "Intro"), ShouldEqual, "1 - Intro")
		So(NamingPlain.Stem(4, "Intro"), ShouldEqual, "Intro")
		So(NamingIndexed.Stem(1, "a/b: c?"), ShouldEqual, "2 - a_b_ c_")

		video, audio := NamingIndexed.Targets("parts", 2, "Talk")
		So(video.Path, ShouldEqual, filepath.Join("parts", "3 - Talk.m4v"))
		So(audio.Path, ShouldEqual, filepath.Join("parts", "3 - Talk.m4a"))
		So(audio.Kind, ShouldEqual, segment.KindAudio)
	})
}

func TestAssemble(t *testing.T) {
	Convey("Given an assembler", t, func() {
		var events []string
		selector, err := rendition.New(rendition.PolicyResolution, nil)
		So(err, ShouldBeNil)

		downloader := &stubDownloader{events: &events}
		a := &Assembler{
			Fetcher:    stubFetcher{m: testManifest(true)},
			Selector:   selector,
			Downloader: downloader,
			Muxer:      stubMuxer{events: &events},
			PartsDir:   "parts",
			Naming:     NamingIndexed,
		}
		entry := catalog.Entry{Name: "Talk", URL: "https://cdn.example/p/sep/master.json"}
		ctx := context.Background()

		Convey("Both tracks are downloaded before the mux pass", func() {
			result, next := a.Assemble(ctx, 2, entry)
			So(next, ShouldEqual, 3)
			So(result.Err, ShouldBeNil)
			So(result.Status(), ShouldEqual, "complete")
			So(result.Bytes(), ShouldEqual, 20)
			So(events, ShouldResemble, []string{"video", "audio", "mux"})

			So(downloader.calls[0].target.Path, ShouldEqual, filepath.Join("parts", "3 - Talk.m4v"))
			So(downloader.calls[0].base, ShouldEqual, "https://cdn.example/p/video/")
			So(downloader.calls[1].base, ShouldEqual, "https://cdn.example/p/audio/")
			So(result.Mux, ShouldHaveLength, 1)
		})

		Convey("Video-only presentations skip the audio download", func() {
			a.Fetcher = stubFetcher{m: testManifest(false)}
			result, _ := a.Assemble(ctx, 0, entry)
			So(result.Err, ShouldBeNil)
			So(result.Audio.IsAbsent(), ShouldBeTrue)
			So(events, ShouldResemble, []string{"video", "mux"})
		})

		Convey("A failed video skips audio but still muxes", func() {
			downloader.fail = segment.KindVideo
			result, next := a.Assemble(ctx, 0, entry)
			So(next, ShouldEqual, 1)
			So(errors.Is(result.Err, segment.ErrNonSuccessStatus), ShouldBeTrue)
			So(result.Status(), ShouldEqual, "failed")
			So(events, ShouldResemble, []string{"video", "mux"})
		})

		Convey("An expired manifest advances without downloading", func() {
			a.Fetcher = stubFetcher{err: manifest.ErrManifestExpired}
			result, next := a.Assemble(ctx, 5, entry)
			So(next, ShouldEqual, 6)
			So(result.Expired(), ShouldBeTrue)
			So(events, ShouldBeEmpty)
		})

		Convey("No suitable rendition advances without downloading", func() {
			m := testManifest(true)
			m.Video[0].Width, m.Video[0].Height = 640, 360
			a.Fetcher = stubFetcher{m: m}
			result, next := a.Assemble(ctx, 0, entry)
			So(next, ShouldEqual, 1)
			So(errors.Is(result.Err, rendition.ErrNoSuitableRendition), ShouldBeTrue)
			So(result.Selection.IsAbsent(), ShouldBeTrue)
			So(events, ShouldBeEmpty)
		})

		Convey("Already downloaded tracks are reported as skipped", func() {
			a.Downloader = skipAll{}
			a.Muxer = nil
			result, _ := a.Assemble(ctx, 0, entry)
			So(result.Status(), ShouldEqual, "skipped")
			So(result.Mux, ShouldBeNil)
		})
	})
}

type skipAll struct{}

func (skipAll) Download(_ context.Context, target segment.Target, _, _ string, _ []manifest.Segment) (segment.Outcome, error) {
	return segment.Outcome{Target: target, Status: segment.StatusSkipped}, nil
}

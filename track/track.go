// Package track assembles one catalog entry: manifest, rendition choice, both downloads and the mux pass.
package track

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/vidqueue/vidqueue/catalog"
	"github.com/vidqueue/vidqueue/log"
	"github.com/vidqueue/vidqueue/manifest"
	"github.com/vidqueue/vidqueue/mux"
	"github.com/vidqueue/vidqueue/rendition"
	"github.com/vidqueue/vidqueue/segment"
)

// Fetcher retrieves a manifest.
type Fetcher interface {
	Fetch(ctx context.Context, index int, url string) (*manifest.Manifest, error)
}

// Downloader writes one rendition into a target.
type Downloader interface {
	Download(ctx context.Context, target segment.Target, baseURL, init string, segments []manifest.Segment) (segment.Outcome, error)
}

// Muxer combines whatever is ready in the working directory.
type Muxer interface {
	Dispatch(ctx context.Context) ([]mux.Outcome, error)
}

// Result is everything that happened to one entry.
type Result struct {
	Index int
	Entry catalog.Entry

	Selection mo.Option[rendition.Selection]
	Video     mo.Option[segment.Outcome]
	Audio     mo.Option[segment.Outcome]
	Mux       []mux.Outcome

	// Err is the first failure: fetch, selection, video or audio.
	Err      error
	Duration time.Duration
}

// Status summarizes the result as complete, skipped or failed.
func (r Result) Status() string {
	if r.Err != nil {
		return segment.StatusFailed.String()
	}

	outcomes := lo.Compact([]segment.Status{
		r.Video.OrEmpty().Status,
		r.Audio.OrEmpty().Status,
	})
	if len(outcomes) > 0 && lo.EveryBy(outcomes, func(s segment.Status) bool { return s == segment.StatusSkipped }) {
		return segment.StatusSkipped.String()
	}
	return segment.StatusComplete.String()
}

// Bytes is the amount written by both downloads.
func (r Result) Bytes() int64 {
	return r.Video.OrEmpty().Bytes + r.Audio.OrEmpty().Bytes
}

// Expired reports whether the entry's manifest is gone.
func (r Result) Expired() bool {
	return errors.Is(r.Err, manifest.ErrManifestExpired)
}

// Assembler runs the per-entry pipeline. Muxer may be nil to leave streams unmuxed.
type Assembler struct {
	Fetcher    Fetcher
	Selector   *rendition.Selector
	Downloader Downloader
	Muxer      Muxer

	PartsDir string
	Naming   Naming
}

// Assemble processes the entry at index and returns the index of the next entry.
// Failures end up in the Result and never stop the caller from advancing.
func (a *Assembler) Assemble(ctx context.Context, index int, entry catalog.Entry) (Result, int) {
	started := time.Now()
	result := Result{Index: index, Entry: entry}
	logger := log.With(log.Fields{"index": index, "name": entry.Name})

	logger.Info("fetching manifest")
	m, err := a.Fetcher.Fetch(ctx, index, entry.URL)
	if err != nil {
		result.Err = err
		logger.WithError(err).Error("manifest unavailable")
		return finish(result, started), index + 1
	}

	selection, err := a.Selector.Select(m)
	if err != nil {
		result.Err = fmt.Errorf("%s: %w", entry.Name, err)
		logger.WithError(err).Error("no rendition to download")
		return finish(result, started), index + 1
	}
	result.Selection = mo.Some(selection)
	logger.Infof("selected video %s", selection.Video)

	video, audio := a.Naming.Targets(a.PartsDir, index, entry.Name)

	videoOutcome, err := a.download(ctx, m, entry.URL, video, selection.Video)
	result.Video = mo.Some(videoOutcome)
	if err != nil {
		result.Err = err
	}

	if best, ok := selection.Audio.Get(); ok && err == nil {
		logger.Infof("selected audio %s", best)
		audioOutcome, err := a.download(ctx, m, entry.URL, audio, best)
		result.Audio = mo.Some(audioOutcome)
		if err != nil {
			result.Err = err
		}
	}

	if a.Muxer != nil && ctx.Err() == nil {
		outcomes, err := a.Muxer.Dispatch(ctx)
		if err != nil {
			logger.WithError(err).Error("mux pass failed")
		}
		result.Mux = outcomes
	}

	return finish(result, started), index + 1
}

func (a *Assembler) download(
	ctx context.Context,
	m *manifest.Manifest,
	manifestURL string,
	target segment.Target,
	r manifest.Rendition,
) (segment.Outcome, error) {
	base, err := m.RenditionBase(manifestURL, r)
	if err != nil {
		return segment.Outcome{Target: target, Status: segment.StatusFailed, Err: err}, err
	}
	return a.Downloader.Download(ctx, target, base, r.InitSegment, r.Segments)
}

func finish(result Result, started time.Time) Result {
	result.Duration = time.Since(started)
	return result
}

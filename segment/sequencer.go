// Package segment downloads the segments of one rendition into a single file, in order, resumably.
package segment

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/afero"
	"github.com/vidqueue/vidqueue/filesystem"
	"github.com/vidqueue/vidqueue/log"
	"github.com/vidqueue/vidqueue/manifest"
	"github.com/vidqueue/vidqueue/network"
	"github.com/vidqueue/vidqueue/util"
)

// DefaultTimeout is the idle timeout of a segment request.
const DefaultTimeout = 7 * time.Second

const bufferSize = 32 * 1024

// Sequencer fetches segments one after another and appends them to a target.
type Sequencer struct {
	Client network.Doer
	Fs     afero.Fs

	// Timeout is reset on every byte read. When it expires the same segment is requested again.
	Timeout time.Duration
	// MaxTimeoutRetries caps timeout retries per segment. Zero retries forever.
	MaxTimeoutRetries int

	Observer Observer
}

// New returns a sequencer with the default timeout.
func New(client network.Doer, fs afero.Fs) *Sequencer {
	return &Sequencer{
		Client:  client,
		Fs:      fs,
		Timeout: DefaultTimeout,
	}
}

func (s *Sequencer) observer() Observer {
	if s.Observer == nil {
		return nopObserver{}
	}
	return s.Observer
}

// Download writes init followed by every segment into target.Path.
//
// A destination without a marker is considered complete and is left untouched.
// A marker left by an interrupted run causes a full redo from the init segment.
func (s *Sequencer) Download(
	ctx context.Context,
	target Target,
	baseURL string,
	init string,
	segments []manifest.Segment,
) (Outcome, error) {
	outcome := Outcome{Target: target}
	logger := log.With(log.Fields{"kind": target.Kind, "file": filepath.Base(target.Path)})

	marker := target.MarkerPath()
	restarted, err := afero.Exists(s.Fs, marker)
	if err != nil {
		return s.fail(outcome, err)
	}
	if restarted {
		logger.Warn("previous download was interrupted, starting over")
	} else {
		exists, err := afero.Exists(s.Fs, target.Path)
		if err != nil {
			return s.fail(outcome, err)
		}
		if exists {
			logger.Info("already downloaded, skipping")
			outcome.Status = StatusSkipped
			return outcome, nil
		}
	}
	outcome.Restarted = restarted

	initData, err := validate(init, segments)
	if err != nil {
		return s.fail(outcome, err)
	}

	if err := s.Fs.MkdirAll(filepath.Dir(target.Path), os.ModePerm); err != nil {
		return s.fail(outcome, err)
	}
	if err := filesystem.Touch(s.Fs, marker); err != nil {
		return s.fail(outcome, fmt.Errorf("create marker: %w", err))
	}

	obs := s.observer()
	obs.Begin(target, len(segments), restarted)

	outcome, err = s.write(ctx, outcome, baseURL, initData, segments)
	if err != nil {
		outcome.Status = StatusFailed
		outcome.Err = err
		logger.WithError(err).Error("download failed")
		obs.End(target, outcome)
		return outcome, err
	}

	if err := filesystem.RemoveIfExists(s.Fs, marker); err != nil {
		outcome.Status = StatusFailed
		outcome.Err = fmt.Errorf("remove marker: %w", err)
		obs.End(target, outcome)
		return outcome, outcome.Err
	}

	outcome.Status = StatusComplete
	logger.WithField("bytes", outcome.Bytes).Info("download complete")
	obs.End(target, outcome)
	return outcome, nil
}

func (s *Sequencer) fail(outcome Outcome, err error) (Outcome, error) {
	outcome.Status = StatusFailed
	outcome.Err = err
	return outcome, err
}

// validate checks every segment before anything touches the network or the disk.
func validate(init string, segments []manifest.Segment) ([]byte, error) {
	for i, seg := range segments {
		if seg.URL == "" {
			return nil, &MalformedError{Index: i, Reason: "missing url"}
		}
	}

	data, err := base64.StdEncoding.DecodeString(init)
	if err != nil {
		return nil, &MalformedError{Index: -1, Reason: err.Error()}
	}
	return data, nil
}

func (s *Sequencer) write(
	ctx context.Context,
	outcome Outcome,
	baseURL string,
	initData []byte,
	segments []manifest.Segment,
) (Outcome, error) {
	file, err := s.Fs.OpenFile(outcome.Target.Path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return outcome, err
	}
	defer util.Ignore(file.Close)

	n, err := file.Write(initData)
	if err != nil {
		return outcome, fmt.Errorf("write init segment: %w", err)
	}
	outcome.Bytes = int64(n)

	obs := s.observer()
	buf := make([]byte, bufferSize)

	for i, seg := range segments {
		url := baseURL + seg.URL
		offset := outcome.Bytes

		for attempt := 0; ; attempt++ {
			if attempt > 0 {
				if s.MaxTimeoutRetries > 0 && attempt > s.MaxTimeoutRetries {
					return outcome, fmt.Errorf("segment %d: %w", i, ErrTimeout)
				}
				if err := rewind(file, offset); err != nil {
					return outcome, err
				}
				outcome.Retries++
				log.Warnf("segment %d of %s timed out, retrying", i, outcome.Target)
				obs.Retry(outcome.Target, i, attempt)
			}

			written, err := s.fetch(ctx, i, url, file, buf)
			if errors.Is(err, errIdle) {
				continue
			}
			if err != nil {
				return outcome, err
			}

			outcome.Bytes = offset + written
			break
		}

		outcome.Segments++
		obs.Segment(outcome.Target, i, outcome.Bytes-offset)
	}

	return outcome, file.Sync()
}

// rewind drops whatever a timed out attempt appended after offset.
func rewind(file afero.File, offset int64) error {
	if err := file.Truncate(offset); err != nil {
		return fmt.Errorf("truncate: %w", err)
	}
	if _, err := file.Seek(offset, io.SeekStart); err != nil {
		return fmt.Errorf("seek: %w", err)
	}
	return nil
}

// fetch streams one segment into w. It returns errIdle when no progress was
// made within the timeout, so the caller can retry the same index.
func (s *Sequencer) fetch(ctx context.Context, index int, url string, w io.Writer, buf []byte) (int64, error) {
	attemptCtx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)

	var watchdog *time.Timer
	if s.Timeout > 0 {
		watchdog = time.AfterFunc(s.Timeout, func() { cancel(errIdle) })
		defer watchdog.Stop()
	}
	touch := func() {
		if watchdog != nil {
			watchdog.Reset(s.Timeout)
		}
	}

	classify := func(err error) error {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if errors.Is(context.Cause(attemptCtx), errIdle) {
			return errIdle
		}
		return &TransportError{Index: index, URL: url, Err: err}
	}

	req, err := http.NewRequestWithContext(attemptCtx, http.MethodGet, url, nil)
	if err != nil {
		return 0, &TransportError{Index: index, URL: url, Err: err}
	}

	resp, err := s.Client.Do(req)
	if err != nil {
		return 0, classify(err)
	}
	defer util.Ignore(resp.Body.Close)

	if resp.StatusCode != http.StatusOK {
		return 0, &StatusError{Index: index, URL: url, Status: resp.Status, Code: resp.StatusCode}
	}
	touch()

	var written int64
	for {
		n, rerr := resp.Body.Read(buf)
		if n > 0 {
			touch()
			m, werr := w.Write(buf[:n])
			written += int64(m)
			if werr != nil {
				return written, fmt.Errorf("write segment %d: %w", index, werr)
			}
		}
		if rerr == io.EOF {
			return written, nil
		}
		if rerr != nil {
			return written, classify(rerr)
		}
	}
}

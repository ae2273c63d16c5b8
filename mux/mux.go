// Package mux combines finished video and audio streams into playable containers with ffmpeg.
package mux

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"al.essio.dev/pkg/shellescape"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
	"github.com/vidqueue/vidqueue/constant"
	"github.com/vidqueue/vidqueue/filesystem"
	"github.com/vidqueue/vidqueue/key"
	"github.com/vidqueue/vidqueue/log"
	"github.com/vidqueue/vidqueue/segment"
	"github.com/vidqueue/vidqueue/util"
	"github.com/vidqueue/vidqueue/where"
)

// ErrMux wraps every ffmpeg failure.
var ErrMux = errors.New("mux failed")

// Runner executes an external command.
type Runner func(ctx context.Context, name string, args ...string) error

// ExecRunner runs the command and folds its combined output into the error.
func ExecRunner(ctx context.Context, name string, args ...string) error {
	output, err := exec.CommandContext(ctx, name, args...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("%w: %s", err, strings.TrimSpace(string(output)))
	}
	return nil
}

// Status of a single mux job.
type Status int

const (
	StatusMuxed Status = iota + 1
	// StatusSkipped covers in-progress videos and already muxed outputs.
	StatusSkipped
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusMuxed:
		return "muxed"
	case StatusSkipped:
		return "skipped"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Outcome describes one video found in the parts directory.
type Outcome struct {
	Video  string
	Audio  string // empty for video-only remuxes
	Output string
	Status Status
	Reason string
	Err    error
}

// Dispatcher muxes every complete video of PartsDir into OutputDir.
type Dispatcher struct {
	Fs        afero.Fs
	Run       Runner
	FFmpeg    string
	PartsDir  string
	OutputDir string
	Overwrite bool
}

// FromConfig returns a dispatcher using the mux and downloader keys.
func FromConfig() *Dispatcher {
	return &Dispatcher{
		Fs:        filesystem.API().Fs,
		Run:       ExecRunner,
		FFmpeg:    viper.GetString(key.MuxFFmpeg),
		PartsDir:  where.Parts(),
		OutputDir: where.Output(),
		Overwrite: viper.GetBool(key.MuxOverwrite),
	}
}

// Args builds the ffmpeg arguments. audio may be empty.
func Args(video, audio, output string) []string {
	args := []string{"-y", "-v", "quiet"}
	if audio != "" {
		args = append(args, "-i", audio)
	}
	args = append(args, "-i", video, "-c", "copy", output)
	return args
}

// Dispatch scans the parts directory and muxes each video whose download is not in progress.
// Per-file failures are reported in the outcomes; the error is only set when the scan itself fails.
func (d *Dispatcher) Dispatch(ctx context.Context) ([]Outcome, error) {
	entries, err := afero.ReadDir(d.Fs, d.PartsDir)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", d.PartsDir, err)
	}

	var videos []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") || filepath.Ext(name) != constant.VideoExt {
			continue
		}
		videos = append(videos, filepath.Join(d.PartsDir, name))
	}
	sort.Strings(videos)

	if err := d.Fs.MkdirAll(d.OutputDir, os.ModePerm); err != nil {
		return nil, err
	}

	outcomes := make([]Outcome, 0, len(videos))
	for _, video := range videos {
		if err := ctx.Err(); err != nil {
			return outcomes, err
		}
		outcomes = append(outcomes, d.one(ctx, video))
	}

	return outcomes, nil
}

func (d *Dispatcher) one(ctx context.Context, video string) Outcome {
	base := util.FileStem(video)
	outcome := Outcome{
		Video:  video,
		Output: filepath.Join(d.OutputDir, base+constant.OutputExt),
	}
	logger := log.With(log.Fields{"video": filepath.Base(video)})

	inProgress, err := afero.Exists(d.Fs, segment.Target{Path: video}.MarkerPath())
	if err != nil {
		return failed(outcome, err)
	}
	if inProgress {
		outcome.Status, outcome.Reason = StatusSkipped, "download in progress"
		logger.Debug("download in progress, not muxing")
		return outcome
	}

	audio := filepath.Join(d.PartsDir, base+constant.AudioExt)
	state, err := d.audioState(audio)
	if err != nil {
		return failed(outcome, err)
	}
	switch state {
	case audioPending:
		outcome.Status, outcome.Reason = StatusSkipped, "audio in progress"
		logger.Debug("audio track not complete, not muxing")
		return outcome
	case audioComplete:
		outcome.Audio = audio
	default:
		logger.Debug("no audio track, remuxing video alone")
	}

	if !d.Overwrite {
		exists, err := afero.Exists(d.Fs, outcome.Output)
		if err != nil {
			return failed(outcome, err)
		}
		if exists {
			outcome.Status, outcome.Reason = StatusSkipped, "output exists"
			logger.Debug("output exists, not muxing")
			return outcome
		}
	}

	args := Args(outcome.Video, outcome.Audio, outcome.Output)
	logger.Debugf("running %s %s", d.FFmpeg, shellescape.QuoteCommand(args))

	if err := d.Run(ctx, d.FFmpeg, args...); err != nil {
		logger.WithError(err).Error("mux failed")
		return failed(outcome, fmt.Errorf("%w: %s: %w", ErrMux, filepath.Base(video), err))
	}

	outcome.Status = StatusMuxed
	logger.WithField("output", outcome.Output).Info("muxed")
	return outcome
}

type audioTrack int

const (
	audioAbsent audioTrack = iota
	audioPending
	audioComplete
)

// audioState tells a finished audio track from a missing one and from one
// whose download is interrupted or failed. Only a missing track allows a
// video-only remux.
func (d *Dispatcher) audioState(path string) (audioTrack, error) {
	inProgress, err := afero.Exists(d.Fs, segment.Target{Path: path}.MarkerPath())
	if err != nil {
		return audioAbsent, err
	}
	if inProgress {
		return audioPending, nil
	}
	exists, err := afero.Exists(d.Fs, path)
	if err != nil || !exists {
		return audioAbsent, err
	}
	return audioComplete, nil
}

func failed(outcome Outcome, err error) Outcome {
	outcome.Status = StatusFailed
	outcome.Err = err
	return outcome
}

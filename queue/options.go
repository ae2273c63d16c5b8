package queue

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
	"github.com/vidqueue/vidqueue/network"
	"github.com/vidqueue/vidqueue/rendition"
	"github.com/vidqueue/vidqueue/segment"
	"github.com/vidqueue/vidqueue/track"
)

// Options is the downloader section of the configuration.
type Options struct {
	PartsDir          string   `mapstructure:"parts_dir" validate:"required"`
	OutputDir         string   `mapstructure:"output_dir" validate:"required"`
	SegmentTimeout    float64  `mapstructure:"segment_timeout" validate:"gt=0"`
	MaxTimeoutRetries int      `mapstructure:"max_timeout_retries" validate:"gte=0"`
	Selection         string   `mapstructure:"selection" validate:"oneof=resolution bitrate"`
	Resolutions       []string `mapstructure:"resolutions" validate:"required_if=Selection resolution,dive,required"`
	Naming            string   `mapstructure:"naming" validate:"oneof=indexed plain"`
}

// LoadOptions reads and validates the downloader section.
func LoadOptions() (Options, error) {
	var opts Options
	if err := viper.UnmarshalKey("downloader", &opts); err != nil {
		return opts, fmt.Errorf("unmarshal downloader config: %w", err)
	}
	return opts, opts.Validate()
}

// Validate checks the options before a run starts.
func (o Options) Validate() error {
	if err := validator.New().Struct(o); err != nil {
		return fmt.Errorf("validate downloader config: %w", err)
	}
	return nil
}

// Selector builds the rendition selector for the configured policy.
func (o Options) Selector() (*rendition.Selector, error) {
	return rendition.New(rendition.Policy(o.Selection), o.Resolutions)
}

// Sequencer builds a segment sequencer writing to fs.
func (o Options) Sequencer(client network.Doer, fs afero.Fs) *segment.Sequencer {
	s := segment.New(client, fs)
	if o.SegmentTimeout > 0 {
		s.Timeout = time.Duration(o.SegmentTimeout * float64(time.Second))
	}
	s.MaxTimeoutRetries = o.MaxTimeoutRetries
	return s
}

// FileNaming returns the naming scheme for elementary streams.
func (o Options) FileNaming() track.Naming {
	return track.Naming(o.Naming)
}

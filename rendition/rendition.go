// Package rendition picks the video and audio renditions to download from a manifest.
package rendition

import (
	"errors"
	"fmt"
	"strings"

	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/vidqueue/vidqueue/manifest"
)

// ErrNoSuitableRendition means no video rendition satisfies the policy.
var ErrNoSuitableRendition = errors.New("no suitable video rendition")

// Policy chooses how video renditions are filtered before the bitrate comparison.
type Policy string

const (
	// PolicyResolution tries each configured resolution in order and stops at the first match.
	PolicyResolution Policy = "resolution"
	// PolicyBitrate ignores resolution entirely.
	PolicyBitrate Policy = "bitrate"
)

// DefaultResolutions is the priority list used when none is configured.
var DefaultResolutions = []string{"1920x1080", "1280x720"}

// Selection is the outcome of Select. Audio is absent for video-only presentations.
type Selection struct {
	Video manifest.Rendition
	Audio mo.Option[manifest.Rendition]
}

// Selector applies a single policy to a manifest.
type Selector struct {
	Policy      Policy
	Resolutions []Size
}

// Size is an exact width and height.
type Size struct {
	Width, Height int
}

func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// ParseSize parses WIDTHxHEIGHT.
func ParseSize(s string) (Size, error) {
	var size Size
	w, h, ok := strings.Cut(strings.ToLower(strings.TrimSpace(s)), "x")
	if !ok {
		return size, fmt.Errorf("invalid resolution %q, expected WIDTHxHEIGHT", s)
	}
	if _, err := fmt.Sscan(w, &size.Width); err != nil {
		return size, fmt.Errorf("invalid resolution %q: %w", s, err)
	}
	if _, err := fmt.Sscan(h, &size.Height); err != nil {
		return size, fmt.Errorf("invalid resolution %q: %w", s, err)
	}
	if size.Width <= 0 || size.Height <= 0 {
		return size, fmt.Errorf("invalid resolution %q", s)
	}
	return size, nil
}

// New builds a selector, parsing every resolution.
func New(policy Policy, resolutions []string) (*Selector, error) {
	switch policy {
	case PolicyResolution, PolicyBitrate:
	default:
		return nil, fmt.Errorf("unknown selection policy %q", policy)
	}

	if len(resolutions) == 0 {
		resolutions = DefaultResolutions
	}

	sizes := make([]Size, 0, len(resolutions))
	for _, r := range resolutions {
		size, err := ParseSize(r)
		if err != nil {
			return nil, err
		}
		sizes = append(sizes, size)
	}

	return &Selector{Policy: policy, Resolutions: sizes}, nil
}

// Select returns the best video rendition under the policy and the best audio rendition, if any.
func (s *Selector) Select(m *manifest.Manifest) (Selection, error) {
	var sel Selection

	video, ok := s.video(m.Video)
	if !ok {
		return sel, ErrNoSuitableRendition
	}
	sel.Video = video

	if m.HasAudio() {
		sel.Audio = mo.Some(highest(m.Audio))
	} else {
		sel.Audio = mo.None[manifest.Rendition]()
	}

	return sel, nil
}

func (s *Selector) video(renditions []manifest.Rendition) (manifest.Rendition, bool) {
	if len(renditions) == 0 {
		return manifest.Rendition{}, false
	}

	if s.Policy == PolicyBitrate {
		return highest(renditions), true
	}

	for _, size := range s.Resolutions {
		bucket := lo.Filter(renditions, func(r manifest.Rendition, _ int) bool {
			return r.Width == size.Width && r.Height == size.Height
		})
		if len(bucket) > 0 {
			return highest(bucket), true
		}
	}

	return manifest.Rendition{}, false
}

// highest returns the rendition with the greatest average bitrate.
// Equal bitrates resolve to the last one in list order.
func highest(renditions []manifest.Rendition) manifest.Rendition {
	return lo.MaxBy(renditions, func(a, b manifest.Rendition) bool {
		return a.AvgBitrate >= b.AvgBitrate
	})
}

// Package manifest models and fetches the JSON manifest of an adaptive-bitrate presentation.
package manifest

import (
	"fmt"
	"net/url"
)

// Manifest lists the renditions of one presentation.
// Audio is nil when the document carries "audio": null or omits it.
type Manifest struct {
	ClipID  string      `json:"clip_id"`
	BaseURL string      `json:"base_url"`
	Video   []Rendition `json:"video"`
	Audio   []Rendition `json:"audio"`
}

// Rendition is one encoding of a track.
type Rendition struct {
	ID          string    `json:"id"`
	Width       int       `json:"width"`
	Height      int       `json:"height"`
	AvgBitrate  float64   `json:"avg_bitrate"`
	Bitrate     float64   `json:"bitrate"`
	Codecs      string    `json:"codecs"`
	MimeType    string    `json:"mime_type"`
	Channels    int       `json:"channels"`
	SampleRate  int       `json:"sample_rate"`
	BaseURL     string    `json:"base_url"`
	InitSegment string    `json:"init_segment"`
	Segments    []Segment `json:"segments"`
}

// Segment is a piece of a rendition. Its order in Rendition.Segments is the byte order of the stream.
type Segment struct {
	URL   string  `json:"url"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Size  int64   `json:"size"`
}

// Resolution formats the rendition size as WIDTHxHEIGHT.
func (r Rendition) Resolution() string {
	return fmt.Sprintf("%dx%d", r.Width, r.Height)
}

func (r Rendition) String() string {
	if r.Width > 0 && r.Height > 0 {
		return fmt.Sprintf("%s @ %.0f bps", r.Resolution(), r.AvgBitrate)
	}
	return fmt.Sprintf("%.0f bps", r.AvgBitrate)
}

// HasAudio reports whether the presentation carries at least one audio rendition.
func (m *Manifest) HasAudio() bool {
	return len(m.Audio) > 0
}

// Resolve resolves the manifest-level base_url against the manifest's own URL.
func (m *Manifest) Resolve(manifestURL string) (*url.URL, error) {
	return resolve(manifestURL, m.BaseURL)
}

// RenditionBase resolves r.BaseURL against the manifest base, itself resolved against manifestURL.
func (m *Manifest) RenditionBase(manifestURL string, r Rendition) (string, error) {
	base, err := m.Resolve(manifestURL)
	if err != nil {
		return "", err
	}
	ref, err := url.Parse(r.BaseURL)
	if err != nil {
		return "", fmt.Errorf("parse rendition base %q: %w", r.BaseURL, err)
	}
	return base.ResolveReference(ref).String(), nil
}

func resolve(from, to string) (*url.URL, error) {
	base, err := url.Parse(from)
	if err != nil {
		return nil, fmt.Errorf("parse manifest url %q: %w", from, err)
	}
	ref, err := url.Parse(to)
	if err != nil {
		return nil, fmt.Errorf("parse base url %q: %w", to, err)
	}
	return base.ResolveReference(ref), nil
}

package segment

import (
	"fmt"
	"path/filepath"

	"github.com/vidqueue/vidqueue/constant"
)

// Kind is the track a target holds.
type Kind string

const (
	KindVideo Kind = "video"
	KindAudio Kind = "audio"
)

// Target is the destination file of one elementary stream.
type Target struct {
	Kind Kind
	Path string
}

// MarkerPath is the hidden in-progress marker next to the destination: <dir>/.<file>~
func (t Target) MarkerPath() string {
	dir, file := filepath.Split(t.Path)
	return filepath.Join(dir, "."+file+constant.MarkerSuffix)
}

func (t Target) String() string {
	return fmt.Sprintf("%s %s", t.Kind, filepath.Base(t.Path))
}

// Status is the terminal state of a target download.
type Status int

const (
	// StatusSkipped means the destination was already complete.
	StatusSkipped Status = iota + 1
	StatusComplete
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusSkipped:
		return "skipped"
	case StatusComplete:
		return "complete"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Outcome reports what Download did to a target.
type Outcome struct {
	Target   Target
	Status   Status
	Bytes    int64
	Segments int
	Retries  int
	// Restarted is set when an interrupted attempt was found and redone.
	Restarted bool
	Err       error
}

// OK reports whether the destination is complete after the download.
func (o Outcome) OK() bool {
	return o.Status == StatusSkipped || o.Status == StatusComplete
}

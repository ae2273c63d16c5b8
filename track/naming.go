package track

import (
	"fmt"
	"path/filepath"

	"github.com/vidqueue/vidqueue/constant"
	"github.com/vidqueue/vidqueue/segment"
	"github.com/vidqueue/vidqueue/util"
)

// Naming decides the stem of elementary stream files.
type Naming string

const (
	// NamingIndexed prefixes the 1-based catalog position: "3 - Talk".
	NamingIndexed Naming = "indexed"
	// NamingPlain uses the entry name alone.
	NamingPlain Naming = "plain"
)

// Stem returns the filesystem-safe base name for the entry at index.
func (n Naming) Stem(index int, name string) string {
	if n == NamingPlain {
		return util.SanitizeFilename(name)
	}
	return util.SanitizeFilename(fmt.Sprintf("%d - %s", index+1, name))
}

// Targets returns the video and audio destinations inside dir.
func (n Naming) Targets(dir string, index int, name string) (video, audio segment.Target) {
	stem := n.Stem(index, name)
	video = segment.Target{Kind: segment.KindVideo, Path: filepath.Join(dir, stem+constant.VideoExt)}
	audio = segment.Target{Kind: segment.KindAudio, Path: filepath.Join(dir, stem+constant.AudioExt)}
	return
}

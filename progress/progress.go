// Package progress renders segment downloads as terminal progress bars.
package progress

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
	"github.com/vidqueue/vidqueue/icon"
	"github.com/vidqueue/vidqueue/segment"
)

// Interactive reports whether w is a terminal a bar can redraw on.
func Interactive(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Bar is a segment.Observer drawing one bar per target.
type Bar struct {
	out     io.Writer
	bar     *progressbar.ProgressBar
	started time.Time
}

// New returns a bar writing to out.
func New(out io.Writer) *Bar {
	return &Bar{out: out}
}

func (b *Bar) Begin(t segment.Target, segments int, restarted bool) {
	description := fmt.Sprintf("%s %s", kindIcon(t.Kind), t)
	if restarted {
		description += " (restart)"
	}

	b.started = time.Now()
	b.bar = progressbar.NewOptions(segments,
		progressbar.OptionSetWriter(b.out),
		progressbar.OptionSetDescription(description),
		progressbar.OptionShowCount(),
		progressbar.OptionSetRenderBlankState(true),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionClearOnFinish(),
	)
}

func (b *Bar) Segment(_ segment.Target, _ int, _ int64) {
	if b.bar != nil {
		_ = b.bar.Add(1)
	}
}

func (b *Bar) Retry(t segment.Target, index int, attempt int) {
	if b.bar != nil {
		b.bar.Describe(fmt.Sprintf("%s %s (segment %d, retry %d)", icon.Get(icon.Warn), t, index, attempt))
	}
}

func (b *Bar) End(t segment.Target, outcome segment.Outcome) {
	if b.bar != nil {
		_ = b.bar.Finish()
		b.bar = nil
	}

	mark := icon.Get(icon.Success)
	if !outcome.OK() {
		mark = icon.Get(icon.Fail)
	}

	_, _ = fmt.Fprintf(b.out, "%s %s: %s, %s in %s\n",
		mark,
		t,
		outcome.Status,
		humanize.Bytes(uint64(outcome.Bytes)),
		time.Since(b.started).Round(time.Millisecond),
	)
}

func kindIcon(kind segment.Kind) string {
	if kind == segment.KindAudio {
		return icon.Get(icon.Audio)
	}
	return icon.Get(icon.Video)
}

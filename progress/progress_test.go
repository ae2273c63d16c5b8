package progress

import (
	"bytes"
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
	"github.com/vidqueue/vidqueue/key"
	"github.com/vidqueue/vidqueue/segment"
)

func TestBar(t *testing.T) {
	Convey("Given a bar writing to a buffer", t, func() {
		viper.Set(key.IconsVariant, "plain")
		var out bytes.Buffer
		b := New(&out)
		target := segment.Target{Kind: segment.KindAudio, Path: "parts/1 - Talk.m4a"}

		Convey("A finished target prints a summary line", func() {
			b.Begin(target, 2, false)
			b.Segment(target, 0, 3)
			b.Segment(target, 1, 4)
			b.End(target, segment.Outcome{Target: target, Status: segment.StatusComplete, Bytes: 2048})

			So(out.String(), ShouldContainSubstring, "✓ audio 1 - Talk.m4a: complete, 2.0 kB")
		})

		Convey("A failed target is marked as such", func() {
			b.Begin(target, 2, true)
			b.Retry(target, 1, 1)
			b.End(target, segment.Outcome{Target: target, Status: segment.StatusFailed, Err: errors.New("boom")})

			So(out.String(), ShouldContainSubstring, "✗ audio 1 - Talk.m4a: failed")
		})
	})
}

func TestInteractive(t *testing.T) {
	Convey("Buffers are never interactive", t, func() {
		So(Interactive(&bytes.Buffer{}), ShouldBeFalse)
	})
}

package queue

import (
	"context"
	"errors"
	"fmt"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/vidqueue/vidqueue/catalog"
	"github.com/vidqueue/vidqueue/manifest"
	"github.com/vidqueue/vidqueue/track"
)

type scriptedAssembler struct {
	seen   []int
	fail   map[int]error
	cancel context.CancelFunc
	// cancelAt cancels the run while processing this index.
	cancelAt int
	// abort makes the cancelled entry fail with the context error.
	abort bool
}

func (a *scriptedAssembler) Assemble(_ context.Context, index int, entry catalog.Entry) (track.Result, int) {
	a.seen = append(a.seen, index)
	result := track.Result{Index: index, Entry: entry, Err: a.fail[index]}
	if a.cancel != nil && index == a.cancelAt {
		a.cancel()
		if a.abort {
			result.Err = fmt.Errorf("%s: %w", entry.Name, context.Canceled)
		}
	}
	return result, index + 1
}

type memoryRecorder struct {
	runs    map[string]int
	indexes []int
}

func (r *memoryRecorder) Record(run string, result track.Result) error {
	r.runs[run]++
	r.indexes = append(r.indexes, result.Index)
	return nil
}

func entries(names ...string) catalog.Catalog {
	list := make([]catalog.Entry, 0, len(names))
	for _, n := range names {
		if n == "" {
			list = append(list, catalog.Entry{})
			continue
		}
		list = append(list, catalog.Entry{Name: n, URL: "https://cdn.example/" + n + "/master.json"})
	}
	return catalog.New(list)
}

func TestRun(t *testing.T) {
	Convey("Given a driver", t, func() {
		assembler := &scriptedAssembler{fail: map[int]error{}}
		recorder := &memoryRecorder{runs: map[string]int{}}
		d := &Driver{
			Catalog:   entries("a", "b", "c"),
			Assembler: assembler,
			Recorder:  recorder,
		}
		ctx := context.Background()

		Convey("Every entry is processed in order", func() {
			summary := d.Run(ctx, 0)
			So(assembler.seen, ShouldResemble, []int{0, 1, 2})
			So(summary.Next, ShouldEqual, 3)
			So(summary.Err, ShouldBeNil)
			So(summary.Count("complete"), ShouldEqual, 3)
			So(recorder.indexes, ShouldResemble, []int{0, 1, 2})
			So(recorder.runs[summary.Run], ShouldEqual, 3)
		})

		Convey("An expired manifest does not stop the next entry", func() {
			assembler.fail[1] = &manifest.ExpiredError{Index: 1}
			summary := d.Run(ctx, 0)
			So(assembler.seen, ShouldResemble, []int{0, 1, 2})
			So(summary.Count("failed"), ShouldEqual, 1)
			So(summary.Expired(), ShouldHaveLength, 1)
			So(summary.Expired()[0].Index, ShouldEqual, 1)
		})

		Convey("A start offset skips earlier entries", func() {
			summary := d.Run(ctx, 2)
			So(assembler.seen, ShouldResemble, []int{2})
			So(summary.Start, ShouldEqual, 2)
		})

		Convey("Starting past the end does nothing", func() {
			summary := d.Run(ctx, 10)
			So(assembler.seen, ShouldBeEmpty)
			So(summary.Results, ShouldBeEmpty)
		})

		Convey("The sentinel entry ends the run", func() {
			d.Catalog = entries("a", "", "c")
			summary := d.Run(ctx, 0)
			So(assembler.seen, ShouldResemble, []int{0})
			So(summary.Next, ShouldEqual, 1)
		})

		Convey("Cancellation after an entry finished moves past it", func() {
			cancelled, cancel := context.WithCancel(ctx)
			defer cancel()
			assembler.cancel, assembler.cancelAt = cancel, 1

			summary := d.Run(cancelled, 0)
			So(assembler.seen, ShouldResemble, []int{0, 1})
			So(errors.Is(summary.Err, context.Canceled), ShouldBeTrue)
			So(summary.Next, ShouldEqual, 2)
		})

		Convey("An entry cut short by cancellation is resumed, not skipped", func() {
			cancelled, cancel := context.WithCancel(ctx)
			defer cancel()
			assembler.cancel, assembler.cancelAt, assembler.abort = cancel, 1, true

			summary := d.Run(cancelled, 0)
			So(assembler.seen, ShouldResemble, []int{0, 1})
			So(errors.Is(summary.Err, context.Canceled), ShouldBeTrue)
			So(summary.Next, ShouldEqual, 1)
			So(summary.Results, ShouldHaveLength, 2)
		})

		Convey("The recorder is optional", func() {
			d.Recorder = nil
			summary := d.Run(ctx, 0)
			So(summary.Results, ShouldHaveLength, 3)
		})
	})
}

func TestLock(t *testing.T) {
	Convey("Given a working directory", t, func() {
		dir := t.TempDir()

		Convey("A second lock is refused until the first is released", func() {
			unlock, err := Lock(dir)
			So(err, ShouldBeNil)

			_, err = Lock(dir)
			So(errors.Is(err, ErrLocked), ShouldBeTrue)

			So(unlock(), ShouldBeNil)

			unlock, err = Lock(dir)
			So(err, ShouldBeNil)
			So(unlock(), ShouldBeNil)
		})
	})
}

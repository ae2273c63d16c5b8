// Package queue walks the catalog one entry at a time.
package queue

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/vidqueue/vidqueue/catalog"
	"github.com/vidqueue/vidqueue/log"
	"github.com/vidqueue/vidqueue/track"
)

// Assembler processes one entry and returns the index to continue from.
type Assembler interface {
	Assemble(ctx context.Context, index int, entry catalog.Entry) (track.Result, int)
}

// Recorder persists results as they are produced.
type Recorder interface {
	Record(run string, result track.Result) error
}

// Summary of a run.
type Summary struct {
	Run      string
	Start    int
	Next     int
	Results  []track.Result
	Duration time.Duration
	// Err is set when the run was interrupted.
	Err error
}

// Count returns how many results have the given status.
func (s Summary) Count(status string) int {
	n := 0
	for _, r := range s.Results {
		if r.Status() == status {
			n++
		}
	}
	return n
}

// Expired returns the results whose manifest is gone.
func (s Summary) Expired() []track.Result {
	var expired []track.Result
	for _, r := range s.Results {
		if r.Expired() {
			expired = append(expired, r)
		}
	}
	return expired
}

// Driver owns the catalog and feeds its entries to the assembler in order.
type Driver struct {
	Catalog   catalog.Catalog
	Assembler Assembler
	// Recorder is optional.
	Recorder Recorder
}

// Run processes entries from start until the end of the catalog, its sentinel, or cancellation.
func (d *Driver) Run(ctx context.Context, start int) Summary {
	started := time.Now()
	summary := Summary{Run: uuid.NewString(), Start: start}
	logger := log.With(log.Fields{"run": summary.Run})

	logger.Infof("starting at entry %d of %d", start+1, d.Catalog.Len())

	index := start
	for {
		if err := ctx.Err(); err != nil {
			logger.Warnf("interrupted before entry %d", index+1)
			summary.Err = err
			break
		}

		entry, ok := d.Catalog.At(index)
		if !ok {
			break
		}

		result, next := d.Assembler.Assemble(ctx, index, entry)
		summary.Results = append(summary.Results, result)

		if d.Recorder != nil {
			if err := d.Recorder.Record(summary.Run, result); err != nil {
				logger.WithError(err).Warn("could not record result")
			}
		}

		if interrupted(result) {
			logger.Warnf("entry %d was interrupted and will be redone", index+1)
			summary.Err = ctx.Err()
			break
		}

		index = next
	}

	summary.Next = index
	summary.Duration = time.Since(started)
	logger.WithField("duration", summary.Duration.Round(time.Second)).Infof("finished with %d entries processed", len(summary.Results))

	return summary
}

// interrupted reports whether the entry stopped because the run was cancelled,
// leaving its streams unfinished.
func interrupted(result track.Result) bool {
	return errors.Is(result.Err, context.Canceled) || errors.Is(result.Err, context.DeadlineExceeded)
}

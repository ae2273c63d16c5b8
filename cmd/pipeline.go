package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/viper"
	"github.com/vidqueue/vidqueue/color"
	"github.com/vidqueue/vidqueue/filesystem"
	"github.com/vidqueue/vidqueue/icon"
	"github.com/vidqueue/vidqueue/key"
	"github.com/vidqueue/vidqueue/manifest"
	"github.com/vidqueue/vidqueue/mux"
	"github.com/vidqueue/vidqueue/network"
	"github.com/vidqueue/vidqueue/progress"
	"github.com/vidqueue/vidqueue/queue"
	"github.com/vidqueue/vidqueue/style"
	"github.com/vidqueue/vidqueue/track"
	"github.com/vidqueue/vidqueue/where"
)

// pipelineOptions are the command-line switches shared by run and fetch.
type pipelineOptions struct {
	mux      bool
	progress bool
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// newAssembler validates the downloader configuration and wires the per-entry pipeline.
func newAssembler(opts pipelineOptions) (*track.Assembler, error) {
	downloader, err := queue.LoadOptions()
	if err != nil {
		return nil, err
	}

	selector, err := downloader.Selector()
	if err != nil {
		return nil, err
	}

	client := network.FromConfig()

	sequencer := downloader.Sequencer(client, filesystem.API().Fs)
	if opts.progress && progress.Interactive(os.Stderr) {
		sequencer.Observer = progress.New(os.Stderr)
	}

	assembler := &track.Assembler{
		Fetcher:    manifest.NewFetcher(client),
		Selector:   selector,
		Downloader: sequencer,
		PartsDir:   where.Parts(),
		Naming:     downloader.FileNaming(),
	}

	if opts.mux {
		checkMuxer()
		assembler.Muxer = mux.FromConfig()
	}

	return assembler, nil
}

func readPipelineOptions(noMux bool) pipelineOptions {
	return pipelineOptions{
		mux:      viper.GetBool(key.MuxEnabled) && !noMux,
		progress: viper.GetBool(key.CliProgress),
	}
}

func printResult(out io.Writer, r track.Result) {
	mark := icon.Get(icon.Success)
	switch r.Status() {
	case "failed":
		mark = icon.Get(icon.Fail)
	case "skipped":
		mark = icon.Get(icon.Skip)
	}

	_, _ = fmt.Fprintf(out, "%s %s %s", mark, style.Faint(fmt.Sprintf("%d.", r.Index+1)), style.Bold(r.Entry.Name))
	if r.Err != nil {
		_, _ = fmt.Fprintf(out, " %s", style.Fg(color.Red)(r.Err.Error()))
	}
	_, _ = fmt.Fprintln(out)

	for _, m := range r.Mux {
		if m.Status != mux.StatusMuxed {
			continue
		}
		_, _ = fmt.Fprintf(out, "  %s %s\n", icon.Get(icon.Finish), m.Output)
	}
}

func printSummary(out io.Writer, s queue.Summary) {
	_, _ = fmt.Fprintln(out)
	for _, r := range s.Results {
		printResult(out, r)
	}

	_, _ = fmt.Fprintf(out, "\n%s complete, %s skipped, %s failed %s\n",
		style.Fg(color.Green)(fmt.Sprint(s.Count("complete"))),
		style.Fg(color.Yellow)(fmt.Sprint(s.Count("skipped"))),
		style.Fg(color.Red)(fmt.Sprint(s.Count("failed"))),
		style.Faint(fmt.Sprintf("(run %s)", s.Run)),
	)

	for _, r := range s.Expired() {
		_, _ = fmt.Fprintf(out, "%s %s\n", icon.Get(icon.Warn), r.Err)
	}

	if s.Err != nil {
		_, _ = fmt.Fprintf(out, "%s interrupted, resume with --from %d\n", icon.Get(icon.Warn), s.Next+1)
	}
}

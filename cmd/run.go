package cmd

import (
	"errors"
	"fmt"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/vidqueue/vidqueue/catalog"
	"github.com/vidqueue/vidqueue/filesystem"
	"github.com/vidqueue/vidqueue/history"
	"github.com/vidqueue/vidqueue/key"
	"github.com/vidqueue/vidqueue/log"
	"github.com/vidqueue/vidqueue/queue"
	"github.com/vidqueue/vidqueue/where"
)

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().IntP("from", "f", 1, "Catalog position (1-based) to start from")
	runCmd.Flags().Bool("no-mux", false, "Only download the streams, do not run ffmpeg")

	runCmd.Flags().BoolP("progress", "p", true, "Show a progress bar per stream")
	lo.Must0(viper.BindPFlag(key.CliProgress, runCmd.Flags().Lookup("progress")))
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Download every presentation of the catalog, one after another",
	Long: `Download every presentation of the catalog in order.
Interrupted downloads are restarted from scratch on the next run, finished ones are skipped.`,
	Example: "  vidqueue run --from 4 --catalog talks.json",
	Args:    cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		from := lo.Must(cmd.Flags().GetInt("from"))
		if from < 1 {
			handleErr(errors.New("--from starts at 1"))
		}

		entries, err := catalog.Load(filesystem.API(), where.Catalog(), viper.GetBool(key.CatalogDecodeEscapes))
		handleErr(err)
		if entries.Len() == 0 {
			handleErr(fmt.Errorf("catalog %s is empty", where.Catalog()))
		}

		opts := readPipelineOptions(lo.Must(cmd.Flags().GetBool("no-mux")))
		assembler, err := newAssembler(opts)
		handleErr(err)

		unlock, err := queue.Lock(where.Parts())
		handleErr(err)
		defer func() {
			if err := unlock(); err != nil {
				log.Warn(err)
			}
		}()

		driver := &queue.Driver{
			Catalog:   entries,
			Assembler: assembler,
		}
		if viper.GetBool(key.HistorySave) {
			driver.Recorder = history.Recorder{}
		}

		ctx, stop := signalContext()
		defer stop()

		printSummary(cmd.OutOrStdout(), driver.Run(ctx, from-1))
	},
}

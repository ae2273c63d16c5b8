package cmd

import (
	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/vidqueue/vidqueue/catalog"
	"github.com/vidqueue/vidqueue/history"
	"github.com/vidqueue/vidqueue/key"
	"github.com/vidqueue/vidqueue/log"
	"github.com/vidqueue/vidqueue/queue"
	"github.com/vidqueue/vidqueue/where"
)

func init() {
	rootCmd.AddCommand(fetchCmd)

	fetchCmd.Flags().StringP("name", "n", "video", "Name of the presentation, used for file names")
	fetchCmd.Flags().Bool("no-mux", false, "Only download the streams, do not run ffmpeg")
}

var fetchCmd = &cobra.Command{
	Use:     "fetch <manifest-url>",
	Short:   "Download a single presentation without a catalog",
	Example: `  vidqueue fetch "https://cdn.example/v/master.json" --name "Keynote"`,
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		entry := catalog.Entry{
			Name: lo.Must(cmd.Flags().GetString("name")),
			URL:  args[0],
		}
		if viper.GetBool(key.CatalogDecodeEscapes) {
			entry.URL = catalog.DecodeURL(entry.URL)
		}

		assembler, err := newAssembler(readPipelineOptions(lo.Must(cmd.Flags().GetBool("no-mux"))))
		handleErr(err)

		unlock, err := queue.Lock(where.Parts())
		handleErr(err)
		defer func() {
			if err := unlock(); err != nil {
				log.Warn(err)
			}
		}()

		ctx, stop := signalContext()
		defer stop()

		result, _ := assembler.Assemble(ctx, 0, entry)
		if viper.GetBool(key.HistorySave) {
			if err := (history.Recorder{}).Record(uuid.NewString(), result); err != nil {
				log.Warn(err)
			}
		}

		printResult(cmd.OutOrStdout(), result)
	},
}

package cmd

import (
	"fmt"
	"os"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/vidqueue/vidqueue/color"
	"github.com/vidqueue/vidqueue/icon"
	"github.com/vidqueue/vidqueue/key"
	"github.com/vidqueue/vidqueue/mux"
	"github.com/vidqueue/vidqueue/style"
	"github.com/vidqueue/vidqueue/util"
)

func init() {
	rootCmd.AddCommand(muxCmd)

	muxCmd.Flags().BoolP("overwrite", "w", false, "Replace existing output files")
	lo.Must0(viper.BindPFlag(key.MuxOverwrite, muxCmd.Flags().Lookup("overwrite")))

	muxCmd.SetOut(os.Stdout)
}

var muxCmd = &cobra.Command{
	Use:   "mux",
	Short: "Mux every finished stream of the working directory",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		checkMuxer()

		ctx, stop := signalContext()
		defer stop()

		outcomes, err := mux.FromConfig().Dispatch(ctx)
		handleErr(err)

		if len(outcomes) == 0 {
			cmd.Println("nothing to mux")
			return
		}

		muxed := 0
		for _, o := range outcomes {
			switch o.Status {
			case mux.StatusMuxed:
				muxed++
				cmd.Printf("%s %s\n", icon.Get(icon.Success), o.Output)
			case mux.StatusSkipped:
				cmd.Printf("%s %s %s\n", icon.Get(icon.Skip), o.Video, style.Faint(fmt.Sprintf("(%s)", o.Reason)))
			default:
				cmd.Printf("%s %s %s\n", icon.Get(icon.Fail), o.Video, style.Fg(color.Red)(o.Err.Error()))
			}
		}

		cmd.Printf("\n%s muxed\n", util.Quantify(muxed, "container", "containers"))
	},
}

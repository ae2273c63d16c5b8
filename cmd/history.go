package cmd

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/vidqueue/vidqueue/color"
	"github.com/vidqueue/vidqueue/history"
	"github.com/vidqueue/vidqueue/icon"
	"github.com/vidqueue/vidqueue/style"
)

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().Bool("clear", false, "Delete every record")
	historyCmd.Flags().BoolP("failed", "f", false, "Only show failed entries")

	historyCmd.SetOut(os.Stdout)
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the last outcome of every catalog entry",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if lo.Must(cmd.Flags().GetBool("clear")) {
			handleErr(history.Clear())
			cmd.Printf("%s history cleared\n", style.Fg(color.Green)(icon.Get(icon.Success)))
			return
		}

		records, err := history.List()
		handleErr(err)

		if lo.Must(cmd.Flags().GetBool("failed")) {
			records = lo.Filter(records, func(r *history.Record, _ int) bool {
				return r.Status == "failed"
			})
		}

		if len(records) == 0 {
			cmd.Println("history is empty")
			return
		}

		cmd.Println(renderHistory(records))
	},
}

func renderHistory(records []*history.Record) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"#", "Name", "Status", "Size", "Updated", "Error"})

	for _, r := range records {
		status := r.Status
		if r.Expired {
			status += " (expired)"
		}
		tw.AppendRow(table.Row{
			r.Index + 1,
			r.Name,
			status,
			humanize.Bytes(uint64(r.Bytes)),
			humanize.Time(r.UpdatedAt),
			r.Error,
		})
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
		{Number: 6, WidthMax: 60},
	})
	tw.SetCaption(fmt.Sprintf("%d entries", len(records)))

	return tw.Render()
}

package cmd

import (
	"fmt"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/vidqueue/vidqueue/open"
	"github.com/vidqueue/vidqueue/where"
)

var openTargets = map[string]func() string{
	"output": where.Output,
	"parts":  where.Parts,
	"config": where.Config,
	"logs":   where.Logs,
}

func init() {
	rootCmd.AddCommand(openCmd)
}

var openCmd = &cobra.Command{
	Use:       "open [output|parts|config|logs]",
	Short:     "Open a directory in the file manager",
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: lo.Keys(openTargets),
	Run: func(cmd *cobra.Command, args []string) {
		target := "output"
		if len(args) > 0 {
			target = args[0]
		}

		location, ok := openTargets[target]
		if !ok {
			handleErr(fmt.Errorf("unknown target %s", target))
		}
		handleErr(open.Start(location()))
	},
}

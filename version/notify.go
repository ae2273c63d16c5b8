package version

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/viper"
	"github.com/vidqueue/vidqueue/color"
	"github.com/vidqueue/vidqueue/constant"
	"github.com/vidqueue/vidqueue/icon"
	"github.com/vidqueue/vidqueue/key"
	"github.com/vidqueue/vidqueue/network"
	"github.com/vidqueue/vidqueue/style"
	"github.com/vidqueue/vidqueue/util"
)

// Notify prints a notice to out when a newer release exists. Lookup failures are silent.
func Notify(ctx context.Context, out io.Writer, client network.Doer) {
	if !viper.GetBool(key.CliVersionCheck) {
		return
	}

	erase := util.PrintErasable(fmt.Sprintf("%s Checking for a new version...", icon.Get(icon.Progress)))
	latest, err := Latest(ctx, client)
	erase()
	if err != nil {
		return
	}

	if comp, err := Compare(latest, constant.Version); err != nil || comp <= 0 {
		return
	}

	_, _ = fmt.Fprintf(out, "\n%s %s %s\n%s\n\n",
		style.Fg(color.Green)("▇▇▇"),
		style.Bold("vidqueue "+latest+" is available"),
		style.Faint(fmt.Sprintf("(you have %s)", constant.Version)),
		style.Faint(fmt.Sprintf("https://github.com/%s/releases/tag/v%s", constant.Repository, latest)),
	)
}

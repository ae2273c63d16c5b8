package cmd

import (
	"context"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"text/template"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/vidqueue/vidqueue/color"
	"github.com/vidqueue/vidqueue/constant"
	"github.com/vidqueue/vidqueue/key"
	"github.com/vidqueue/vidqueue/network"
	"github.com/vidqueue/vidqueue/style"
	"github.com/vidqueue/vidqueue/version"
)

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.SetOut(os.Stdout)
	versionCmd.Flags().BoolP("short", "s", false, "Display only the version string without metadata")
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version and build information",
	Run: func(cmd *cobra.Command, args []string) {
		if lo.Must(cmd.Flags().GetBool("short")) {
			cmd.Println(constant.Version)
			return
		}

		defer version.Notify(context.Background(), cmd.OutOrStdout(), network.FromConfig())

		versionInfo := struct {
			Version  string
			OS       string
			Arch     string
			BuiltAt  string
			BuiltBy  string
			Revision string
			App      string
			FFmpeg   string
		}{
			Version:  constant.Version,
			App:      constant.App,
			OS:       runtime.GOOS,
			Arch:     runtime.GOARCH,
			BuiltAt:  strings.TrimSpace(constant.BuiltAt),
			BuiltBy:  constant.BuiltBy,
			Revision: constant.Revision,
			FFmpeg:   ffmpegPath(),
		}

		t, err := template.New("version").Funcs(map[string]any{
			"faint":   style.Faint,
			"bold":    style.Bold,
			"magenta": style.Fg(color.Purple),
		}).Parse(`{{ magenta "▇▇▇" }} {{ magenta .App }}

  {{ faint "Version" }}    {{ bold .Version }}
  {{ faint "Revision" }}   {{ bold .Revision }}
  {{ faint "Built at" }}   {{ bold .BuiltAt }}
  {{ faint "Built by" }}   {{ bold .BuiltBy }}
  {{ faint "Platform" }}   {{ bold .OS }}/{{ bold .Arch }}
  {{ faint "ffmpeg" }}     {{ bold .FFmpeg }}
`)
		handleErr(err)
		handleErr(t.Execute(cmd.OutOrStdout(), versionInfo))
	},
}

func ffmpegPath() string {
	path, err := exec.LookPath(viper.GetString(key.MuxFFmpeg))
	if err != nil {
		return "not found"
	}
	return path
}

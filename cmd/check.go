package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/viper"
	"github.com/vidqueue/vidqueue/constant"
	"github.com/vidqueue/vidqueue/icon"
	"github.com/vidqueue/vidqueue/key"
	"github.com/vidqueue/vidqueue/style"
)

// checkMuxer exits with install instructions when the configured ffmpeg binary is missing.
func checkMuxer() {
	bin := viper.GetString(key.MuxFFmpeg)
	if _, err := exec.LookPath(bin); err != nil {
		printMissingDependency(bin)
		os.Exit(1)
	}
}

func printMissingDependency(dep string) {
	var install string
	switch runtime.GOOS {
	case constant.Darwin:
		install = "brew install ffmpeg"
	case constant.Linux:
		install = "sudo apt install ffmpeg"
	case constant.Windows:
		install = "scoop install ffmpeg"
	case constant.Android:
		install = "pkg install ffmpeg"
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(style.ErrorColor).
		Padding(1, 2).
		Margin(1, 0)

	title := style.New().Bold(true).Foreground(style.ErrorColor).Render(fmt.Sprintf("%s Missing dependency", icon.Get(icon.Fail)))
	body := style.New().Foreground(style.TextColor).Render(
		fmt.Sprintf("'%s' was not found in your PATH. It is needed to mux video and audio.\nUse --no-mux to only download the streams.", dep),
	)

	suggestion := ""
	if install != "" {
		suggestion = fmt.Sprintf("\n\nTo install it, try running:\n  %s", style.New().Foreground(style.AccentColor).Bold(true).Render(install))
	}

	fmt.Println(box.Render(lipgloss.JoinVertical(lipgloss.Left, title, "\n", body, suggestion)))
}

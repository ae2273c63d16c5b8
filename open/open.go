// Package open shows files and directories with the desktop's default handler.
package open

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/vidqueue/vidqueue/constant"
)

// Start opens path without waiting for the handler to exit.
func Start(path string) error {
	name, args, ok := Command(runtime.GOOS, path)
	if !ok {
		return fmt.Errorf("opening files is not supported on %s", runtime.GOOS)
	}
	return exec.Command(name, args...).Start()
}

// Command returns the launcher invocation for goos.
func Command(goos, path string) (name string, args []string, ok bool) {
	switch goos {
	case constant.Windows:
		return filepath.Join(os.Getenv("SYSTEMROOT"), "System32", "rundll32.exe"),
			[]string{"url.dll,FileProtocolHandler", path}, true
	case constant.Darwin:
		return "open", []string{path}, true
	case constant.Linux:
		return "xdg-open", []string{path}, true
	case constant.Android:
		return "termux-open", []string{path}, true
	default:
		return "", nil, false
	}
}

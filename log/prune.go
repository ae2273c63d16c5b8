package log

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/afero"
	"github.com/vidqueue/vidqueue/filesystem"
	"github.com/vidqueue/vidqueue/where"
)

// Retention is how long dated log files are kept.
const Retention = 30 * 24 * time.Hour

// CollectGarbage removes log files older than Retention from the logs directory.
func CollectGarbage() {
	collect(filesystem.API().Fs, where.Logs(), time.Now().Add(-Retention))
}

func collect(fs afero.Fs, dir string, before time.Time) {
	if err := prune(fs, dir, before); err != nil {
		Debugf("pruning logs: %v", err)
	}
}

// prune keeps going past files it cannot stat or remove and reports them all at the end.
func prune(fs afero.Fs, dir string, before time.Time) error {
	var errs []error
	walkErr := afero.Walk(fs, dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			errs = append(errs, err)
			return nil
		}
		if info.IsDir() || filepath.Ext(path) != ".log" {
			return nil
		}
		if info.ModTime().Before(before) {
			if err := fs.Remove(path); err != nil {
				errs = append(errs, fmt.Errorf("remove %s: %w", path, err))
			}
		}
		return nil
	})
	return errors.Join(append(errs, walkErr)...)
}

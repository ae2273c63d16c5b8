// Package where implements a cross-platform resolver for application-specific filesystem paths.
package where

import (
	"os"
	"path/filepath"

	"github.com/samber/lo"
	"github.com/spf13/viper"
	"github.com/vidqueue/vidqueue/constant"
	"github.com/vidqueue/vidqueue/filesystem"
	"github.com/vidqueue/vidqueue/key"
)

// EnvConfigPath is the environment variable identifier used to override the default configuration directory.
const EnvConfigPath = "VIDQUEUE_CONFIG_PATH"

func ensureDir(path string) string {
	lo.Must0(filesystem.API().MkdirAll(path, os.ModePerm))
	return path
}

// Config resolves the absolute path to the primary application configuration directory.
// The VIDQUEUE_CONFIG_PATH environment variable takes precedence over the platform default.
func Config() string {
	if custom, ok := os.LookupEnv(EnvConfigPath); ok {
		return ensureDir(custom)
	}

	base := lo.Must(os.UserConfigDir())
	return ensureDir(filepath.Join(base, constant.App))
}

// Cache resolves the absolute path to the application's persistent cache directory.
func Cache() string {
	base, err := os.UserCacheDir()
	if err != nil {
		base = filepath.Join(".", "cache")
	}
	return ensureDir(filepath.Join(base, constant.App))
}

// Logs resolves the directory used for diagnostic logs.
func Logs() string {
	return ensureDir(filepath.Join(Config(), "logs"))
}

// History resolves the path to the per-entry outcome registry.
func History() string {
	return filepath.Join(Config(), "history.json")
}

// Parts resolves the working directory holding elementary streams and in-progress markers.
func Parts() string {
	return ensureDir(viper.GetString(key.DownloaderPartsDir))
}

// Output resolves the directory receiving muxed containers.
func Output() string {
	return ensureDir(viper.GetString(key.DownloaderOutputDir))
}

// Catalog resolves the configured catalog file path.
func Catalog() string {
	return viper.GetString(key.CatalogPath)
}

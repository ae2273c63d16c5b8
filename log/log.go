// Package log provides structured logging on top of logrus, with console output and optional file persistence.
package log

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	logrus "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/vidqueue/vidqueue/filesystem"
	"github.com/vidqueue/vidqueue/key"
	"github.com/vidqueue/vidqueue/where"
)

// Fields is an alias kept so callers do not import logrus directly.
type Fields = logrus.Fields

var console io.Writer = os.Stderr

// SetConsole redirects console output. Tests use it to capture or silence log lines.
func SetConsole(w io.Writer) {
	console = w
	logrus.SetOutput(w)
}

// Setup initializes logging from the global configuration.
// Console output always goes to stderr; logs.write additionally appends to a dated file.
func Setup() error {
	lvl, err := logrus.ParseLevel(viper.GetString(key.LogsLevel))
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logrus.SetLevel(lvl)
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "15:04:05",
		PadLevelText:    true,
	})
	logrus.SetOutput(console)

	if !viper.GetBool(key.LogsWrite) {
		return nil
	}

	path := filepath.Join(where.Logs(), fmt.Sprintf("%s.log", time.Now().Format("2006-01-02")))
	f, err := filesystem.API().OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0o666)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}

	var formatter logrus.Formatter = &logrus.TextFormatter{DisableColors: true, FullTimestamp: true}
	if viper.GetBool(key.LogsJson) {
		formatter = &logrus.JSONFormatter{}
	}
	logrus.AddHook(&fileHook{out: f, formatter: formatter})

	return nil
}

// fileHook mirrors every entry into the log file with its own formatter,
// so the console keeps colors while the file stays machine-readable.
type fileHook struct {
	out       io.Writer
	formatter logrus.Formatter
}

func (h *fileHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (h *fileHook) Fire(entry *logrus.Entry) error {
	b, err := h.formatter.Format(entry)
	if err != nil {
		return err
	}
	_, err = h.out.Write(b)
	return err
}

// With returns an entry carrying the given fields.
func With(fields Fields) *logrus.Entry {
	return logrus.WithFields(fields)
}

func Error(args ...interface{}) {
	logrus.Error(args...)
}
func Errorf(format string, args ...interface{}) {
	logrus.Errorf(format, args...)
}
func Warn(args ...interface{}) {
	logrus.Warn(args...)
}
func Warnf(format string, args ...interface{}) {
	logrus.Warnf(format, args...)
}
func Info(args ...interface{}) {
	logrus.Info(args...)
}
func Infof(format string, args ...interface{}) {
	logrus.Infof(format, args...)
}
func Debug(args ...interface{}) {
	logrus.Debug(args...)
}
func Debugf(format string, args ...interface{}) {
	logrus.Debugf(format, args...)
}

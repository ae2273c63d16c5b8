// Package config provides centralized management for application settings, defaults, and the Viper-based configuration engine.
package config

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"text/template"

	"github.com/samber/lo"
	"github.com/spf13/viper"
	"github.com/vidqueue/vidqueue/color"
	"github.com/vidqueue/vidqueue/constant"
	"github.com/vidqueue/vidqueue/key"
	"github.com/vidqueue/vidqueue/style"
)

// Field represents a configuration field definition.
type Field struct {
	Key         string
	Value       any
	Description string
}

// Pretty returns a colored string representation of the field for display.
func (f *Field) Pretty() string {
	var b strings.Builder
	lo.Must0(prettyTemplate.Execute(&b, f))
	return b.String()
}

// Env returns the environment variable name for this field.
func (f *Field) Env() string {
	env := strings.ToUpper(EnvKeyReplacer.Replace(f.Key))
	prefix := strings.ToUpper(constant.App + "_")
	if strings.HasPrefix(env, prefix) {
		return env
	}
	return prefix + env
}

// MarshalJSON customizes JSON output to include current and default values.
func (f *Field) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Key         string `json:"key"`
		Value       any    `json:"value"`
		Default     any    `json:"default"`
		Description string `json:"description"`
		Type        string `json:"type"`
	}{
		Key:         f.Key,
		Value:       viper.Get(f.Key),
		Default:     f.Value,
		Description: f.Description,
		Type:        f.typeName(),
	})
}

// typeName returns the string representation of the field's underlying value type.
func (f *Field) typeName() string {
	switch f.Value.(type) {
	case string:
		return "string"
	case int:
		return "int"
	case bool:
		return "bool"
	case []string:
		return "[]string"
	case []int:
		return "[]int"
	default:
		return "unknown"
	}
}

// Default holds the map of all configuration fields.
var Default = make(map[string]Field)

// EnvExposed holds keys that are bound to environment variables.
var EnvExposed []string

func init() {
	register := func(k string, v any, desc string) {
		if _, exists := Default[k]; exists {
			panic("Duplicate config key: " + k)
		}
		Default[k] = Field{Key: k, Value: v, Description: desc}
		EnvExposed = append(EnvExposed, k)
	}

	register(key.CatalogPath, "catalog.json", "Path to the JSON catalog of presentations.\nEach entry is {\"name\": \"...\", \"url\": \"...\"}")
	register(key.CatalogDecodeEscapes, true, "Decode literal \\u0026 sequences in catalog URLs into '&'")
	register(key.DownloaderPartsDir, "parts", "Working directory for elementary streams and in-progress markers")
	register(key.DownloaderOutputDir, "output", "Directory that receives the muxed containers")
	register(key.DownloaderSegmentTimeout, 7, "Idle timeout in seconds for a single segment request.\nA timed out segment is retried at the same index")
	register(key.DownloaderMaxTimeoutRetries, 0, "Maximum timeout retries per segment. 0 retries forever")
	register(key.DownloaderSelection, "resolution", "Video rendition policy.\nAvailable options are: resolution (prefer the resolutions list), bitrate (highest bitrate overall)")
	register(key.DownloaderResolutions, []string{"1920x1080", "1280x720"}, "Resolutions tried in order by the resolution policy")
	register(key.DownloaderNaming, "indexed", "Elementary stream naming.\nAvailable options are: indexed (\"<n> - <name>\"), plain (\"<name>\")")
	register(key.MuxEnabled, true, "Mux finished video/audio pairs after every presentation")
	register(key.MuxFFmpeg, "ffmpeg", "ffmpeg executable used for stream-copy muxing")
	register(key.MuxOverwrite, false, "Re-mux pairs whose output container already exists")
	register(key.NetworkUserAgent, constant.UserAgent, "User-Agent header sent with every request")
	register(key.NetworkReferer, "", "Referer header sent with every request. Empty to omit")
	register(key.NetworkTLSFingerprint, false, "Use a browser TLS fingerprint for HTTPS connections")
	register(key.HistorySave, true, "Record the outcome of every processed catalog entry")
	register(key.LogsWrite, false, "Write logs to a dated file in the logs directory")
	register(key.LogsLevel, "info", "Available options are: (from less to most verbose)\npanic, fatal, error, warn, info, debug, trace")
	register(key.LogsJson, false, "Use json format for log files")
	register(key.CliColored, true, "Enable colored CLI output")
	register(key.CliVersionCheck, true, "Enable automatic version check")
	register(key.CliProgress, true, "Show a progress bar while downloading segments (terminal only)")
	register(key.IconsVariant, "plain", "Icons variant.\nAvailable options are: emoji, kaomoji, plain, squares, nerd (nerd-font required)")
}

var prettyTemplate = lo.Must(template.New("pretty").Funcs(template.FuncMap{
	"faint":    style.Faint,
	"bold":     style.Bold,
	"purple":   style.Fg(color.Purple),
	"blue":     style.Fg(color.Blue),
	"cyan":     style.Fg(color.Cyan),
	"value":    func(k string) any { return viper.Get(k) },
	"typename": func(v any) string { return reflect.TypeOf(v).String() },
	"hl": func(v any) string {
		switch value := v.(type) {
		case bool:
			b := strconv.FormatBool(value)
			if value {
				return style.Fg(color.Green)(b)
			}
			return style.Fg(color.Red)(b)
		case string:
			return style.Fg(color.Yellow)(value)
		default:
			return fmt.Sprint(value)
		}
	},
}).Parse(`{{ faint .Description }}
{{ blue "Key:" }}     {{ purple .Key }}
{{ blue "Env:" }}     {{ .Env }}
{{ blue "Value:" }}   {{ hl (value .Key) }}
{{ blue "Default:" }} {{ hl (.Value) }}
{{ blue "Type:" }}    {{ typename .Value }}`))
